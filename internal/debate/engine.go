package debate

import (
	"context"
	"fmt"
	"time"

	"github.com/lorenzotomasdiez/owls/internal/openai"
)

// Engine drives a round-robin debate over a fixed roster. It owns the
// accumulating transcript; there is no shared state beyond it and no
// concurrent speaking — each generation call blocks before the next
// turn starts.
type Engine struct {
	roster     []Role
	llm        LLMClient
	generation GenerationParams
	language   string
	maxTurns   int
	transcript *Transcript
	clock      func() time.Time

	// OnTurn is invoked after each completed turn, before the next one
	// starts. A non-nil error aborts the remaining schedule.
	OnTurn func(Turn) error
}

// EngineOptions parameterize a debate session.
type EngineOptions struct {
	Premise    string
	Language   string
	Generation GenerationParams
	// MaxTurns is the absolute ceiling on individual speaker turns,
	// not full cycles over the roster.
	MaxTurns int
	// Clock overrides time.Now, for tests.
	Clock func() time.Time
}

// NewEngine creates an engine for one session on the given topic.
func NewEngine(topic string, roster []Role, llm LLMClient, opts EngineOptions) *Engine {
	clock := opts.Clock
	if clock == nil {
		clock = time.Now
	}
	return &Engine{
		roster:     roster,
		llm:        llm,
		generation: opts.Generation,
		language:   opts.Language,
		maxTurns:   opts.MaxTurns,
		clock:      clock,
		transcript: &Transcript{
			Topic:   topic,
			Premise: opts.Premise,
			Status:  StatusInProgress,
		},
	}
}

// Run executes the schedule. The transcript is always returned, sealed
// with a terminal status: on failure it holds every turn completed
// before the failing call.
func (e *Engine) Run(ctx context.Context) (*Transcript, error) {
	e.transcript.StartedAt = e.clock()

	for i := 0; i < e.maxTurns; i++ {
		role := e.roster[i%len(e.roster)]

		if err := ctx.Err(); err != nil {
			return e.seal(StatusFailed), fmt.Errorf("debate: %w", err)
		}

		resp, err := e.llm.ChatCompletion(ctx, openai.ChatRequest{
			Model:       e.generation.Model,
			Messages:    buildMessages(role, e.transcript, e.language),
			Temperature: e.generation.Temperature,
			MaxTokens:   e.generation.MaxTokens,
		})
		if err != nil {
			return e.seal(StatusFailed), fmt.Errorf("debate: turn %d (%s): %w", i+1, role.Name, err)
		}
		content := ""
		if len(resp.Choices) > 0 {
			content = resp.Choices[0].Message.Content
		}

		turn := Turn{
			Index:     i + 1,
			Role:      role,
			Content:   content,
			Timestamp: e.clock(),
		}
		e.transcript.Turns = append(e.transcript.Turns, turn)

		if e.OnTurn != nil {
			if err := e.OnTurn(turn); err != nil {
				return e.seal(StatusFailed), fmt.Errorf("debate: recording turn %d: %w", turn.Index, err)
			}
		}
	}

	return e.seal(StatusCompleted), nil
}

func (e *Engine) seal(status Status) *Transcript {
	e.transcript.Status = status
	e.transcript.EndedAt = e.clock()
	return e.transcript
}
