package debate

import (
	"fmt"
	"sort"
	"strings"

	"github.com/lorenzotomasdiez/owls/internal/openai"
)

// PremiseInput describes what the convener announces before the first
// real role speaks.
type PremiseInput struct {
	Topic       string
	ProjectName string
	Constraints map[string]any
	Conditions  map[string]any
	MaxTurns    int
	Language    string
}

var premiseText = map[string]struct{ theme, project, constraints, conditions, order string }{
	"ja": {
		theme:       "テーマ: %s",
		project:     "プロジェクト: %s",
		constraints: "制約条件:",
		conditions:  "前提条件:",
		order:       "%d回の発言で議論を行います。Pro、Con、Mediatorの順番で発言してください。",
	},
	"en": {
		theme:       "Topic: %s",
		project:     "Project: %s",
		constraints: "Constraints:",
		conditions:  "Conditions:",
		order:       "The debate runs for %d turns. Speak in the order Pro, Con, Mediator.",
	},
	"zh": {
		theme:       "主题: %s",
		project:     "项目: %s",
		constraints: "约束条件:",
		conditions:  "前提条件:",
		order:       "本次讨论共%d次发言。请按Pro、Con、Mediator的顺序发言。",
	},
}

// Premise builds the convener's opening message. Project constraints and
// conditions are free-form key/value pairs rendered as bullets; they
// exist only as prompt text.
func Premise(in PremiseInput) string {
	t, ok := premiseText[in.Language]
	if !ok {
		t = premiseText["ja"]
	}

	var b strings.Builder
	fmt.Fprintf(&b, t.theme, in.Topic)
	b.WriteString("\n\n")
	if in.ProjectName != "" {
		fmt.Fprintf(&b, t.project, in.ProjectName)
		b.WriteString("\n\n")
	}
	writeKV(&b, t.constraints, in.Constraints)
	writeKV(&b, t.conditions, in.Conditions)
	fmt.Fprintf(&b, t.order, in.MaxTurns)
	return b.String()
}

func writeKV(b *strings.Builder, heading string, kv map[string]any) {
	if len(kv) == 0 {
		return
	}
	keys := make([]string, 0, len(kv))
	for k := range kv {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	b.WriteString(heading)
	b.WriteString("\n")
	for _, k := range keys {
		fmt.Fprintf(b, "- %s: %v\n", k, kv[k])
	}
	b.WriteString("\n")
}

var turnNudge = map[string]string{
	"ja": "あなたの番です。これまでの議論を踏まえて発言してください。",
	"en": "It's your turn to speak. Respond to the discussion so far.",
	"zh": "轮到你发言了。请根据目前的讨论发表意见。",
}

// buildMessages assembles the chat history a role sees on its turn: its
// own system prompt, the convener premise, every prior turn in order,
// and a closing nudge.
func buildMessages(role Role, transcript *Transcript, language string) []openai.Message {
	nudge, ok := turnNudge[language]
	if !ok {
		nudge = turnNudge["ja"]
	}

	msgs := make([]openai.Message, 0, len(transcript.Turns)+3)
	msgs = append(msgs, openai.Message{Role: "system", Content: role.SystemPrompt})
	msgs = append(msgs, openai.Message{Role: "user", Content: transcript.Premise})
	for _, turn := range transcript.Turns {
		msgs = append(msgs, openai.Message{
			Role:    "user",
			Content: fmt.Sprintf("%s: %s", turn.Role.Name, turn.Content),
		})
	}
	msgs = append(msgs, openai.Message{Role: "user", Content: nudge})
	return msgs
}
