// Package output renders session progress and summaries to the terminal.
package output

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/lorenzotomasdiez/owls/internal/config"
	"github.com/lorenzotomasdiez/owls/internal/debate"
)

var (
	titleStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
	speakerStyle   = lipgloss.NewStyle().Bold(true)
	turnLabelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	timeStyle      = lipgloss.NewStyle().Faint(true)
	okStyle        = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("2"))
	errStyle       = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("1"))
	keyStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
)

const timeLayout = "2006-01-02 15:04:05"

// Console prints session progress according to the console logging
// options.
type Console struct {
	enabled        bool
	showTimestamps bool
	showProgress   bool
}

// NewConsole creates a Console from the resolved console options.
func NewConsole(cfg config.ConsoleConfig) *Console {
	return &Console{
		enabled:        cfg.Enabled,
		showTimestamps: cfg.ShowTimestamps,
		showProgress:   cfg.ShowProgress,
	}
}

// Banner prints the session opening line.
func (c *Console) Banner(topic string, start time.Time) {
	if !c.enabled {
		return
	}
	fmt.Println(titleStyle.Render("Debate: " + topic))
	if c.showTimestamps {
		fmt.Println(timeStyle.Render("Started: " + start.Format(timeLayout)))
	}
	fmt.Println()
}

// Turn echoes one completed turn.
func (c *Console) Turn(turn debate.Turn) {
	if !c.enabled || !c.showProgress {
		return
	}
	label := turnLabelStyle.Render(fmt.Sprintf("[Turn %d]", turn.Index))
	line := fmt.Sprintf("%s %s: %s", label, speakerStyle.Render(turn.Role.Name), turn.Content)
	if c.showTimestamps {
		line += " " + timeStyle.Render(turn.Timestamp.Format("15:04:05"))
	}
	fmt.Println(line)
}

// Summary prints the closing summary for a sealed transcript.
func (c *Console) Summary(t *debate.Transcript, path string) {
	if !c.enabled {
		return
	}
	fmt.Println()
	switch t.Status {
	case debate.StatusCompleted:
		fmt.Println(okStyle.Render("Debate complete.") + fmt.Sprintf(" %d turns in %.1fs", len(t.Turns), t.EndedAt.Sub(t.StartedAt).Seconds()))
	case debate.StatusFailed:
		fmt.Println(errStyle.Render("Debate failed.") + fmt.Sprintf(" %d turns preserved (%.1fs)", len(t.Turns), t.EndedAt.Sub(t.StartedAt).Seconds()))
	}
	if path != "" {
		fmt.Println("Transcript: " + path)
	}
}

// ConfigSummary prints the effective configuration, as used by the
// normal run preamble and by --dry-run.
func ConfigSummary(cfg *config.Config, dryRun bool) {
	if dryRun {
		fmt.Println(titleStyle.Render("Dry run - effective configuration"))
	} else {
		fmt.Println(titleStyle.Render("Effective configuration"))
	}

	apiKey := "not set"
	if cfg.OpenAI.APIKey != "" {
		apiKey = "set"
	}
	file := cfg.FilePath
	if file == "" {
		file = "none (defaults)"
	}

	row := func(k, v string) { fmt.Printf("  %s %s\n", keyStyle.Render(k+":"), v) }
	row("model", cfg.OpenAI.Model)
	row("api key", apiKey)
	row("temperature", fmt.Sprintf("%v", cfg.OpenAI.Temperature))
	row("max tokens", fmt.Sprintf("%d", cfg.OpenAI.MaxTokens))
	row("max rounds", fmt.Sprintf("%d", cfg.Debate.MaxRounds))
	row("language", cfg.Project.Language)
	row("output dir", cfg.Logging.Output.Directory)
	row("config file", file)

	if dryRun {
		fmt.Println(okStyle.Render("Configuration OK.") + " No session was run.")
	}
	fmt.Println()
}
