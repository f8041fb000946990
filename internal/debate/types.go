package debate

import (
	"context"
	"time"

	"github.com/lorenzotomasdiez/owls/internal/openai"
)

// RoleKind identifies one of the fixed debate roles.
type RoleKind int

const (
	RolePro RoleKind = iota
	RoleCon
	RoleMediator
)

// Role is a debate participant: a display name plus static instruction
// text. Roles carry no runtime behavior and are immutable once built.
type Role struct {
	Kind         RoleKind
	Name         string
	SystemPrompt string
}

// Status describes a transcript's lifecycle state.
type Status string

const (
	StatusInProgress Status = "in-progress"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
)

// Turn is one generated message from exactly one role. Turns are
// append-only and never mutated after creation.
type Turn struct {
	Index     int
	Role      Role
	Content   string
	Timestamp time.Time
}

// Transcript holds the full state of a debate session. The convener's
// premise seeds the message log but never appears as a Turn.
type Transcript struct {
	Topic     string
	Premise   string
	StartedAt time.Time
	EndedAt   time.Time
	Status    Status
	Turns     []Turn
}

// LLMClient is the external generation capability. Any failure is fatal
// to the session that issued the call.
type LLMClient interface {
	ChatCompletion(ctx context.Context, req openai.ChatRequest) (*openai.ChatResponse, error)
}

// GenerationParams parameterize each chat completion call.
type GenerationParams struct {
	Model       string
	Temperature float64
	MaxTokens   int
}
