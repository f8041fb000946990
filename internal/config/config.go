// Package config resolves the effective session configuration from CLI
// flags, environment variables, and an optional YAML file. Precedence is
// CLI > environment > file > built-in default, evaluated per dotted key
// as an ordered chain of lookup sources.
package config

import (
	"os"

	"github.com/spf13/cast"
)

// Config is the effective configuration for one session. It is fully
// populated after Resolve and never mutated afterwards.
type Config struct {
	OpenAI  OpenAIConfig
	Debate  DebateConfig
	Project ProjectConfig
	Logging LoggingConfig

	// FilePath is the config file that was loaded, empty if none.
	FilePath string
}

// OpenAIConfig holds generation parameters.
type OpenAIConfig struct {
	APIKey      string
	BaseURL     string
	Model       string
	Temperature float64
	MaxTokens   int
}

// DebateConfig holds debate parameters.
type DebateConfig struct {
	// MaxRounds is the absolute ceiling on individual speaker turns.
	MaxRounds        int
	SpeakerSelection string
}

// ProjectConfig holds the project premise fed to the agents. Constraints
// and Conditions are free-form key/value maps used only for prompt text.
type ProjectConfig struct {
	Name        string
	Language    string
	Constraints map[string]any
	Conditions  map[string]any
}

// LoggingConfig holds transcript and console output options.
type LoggingConfig struct {
	Output  OutputConfig
	Console ConsoleConfig
}

// OutputConfig controls the transcript file.
type OutputConfig struct {
	Enabled        bool
	Directory      string
	FilenamePrefix string
	Format         string
}

// ConsoleConfig controls terminal output.
type ConsoleConfig struct {
	Enabled        bool
	ShowTimestamps bool
	ShowProgress   bool
}

// Default returns the built-in defaults, the lowest-precedence source.
func Default() *Config {
	return &Config{
		OpenAI: OpenAIConfig{
			BaseURL:     "https://api.openai.com/v1",
			Model:       "gpt-4",
			Temperature: 0.7,
			MaxTokens:   2000,
		},
		Debate: DebateConfig{
			MaxRounds:        10,
			SpeakerSelection: "round_robin",
		},
		Project: ProjectConfig{
			Name:     "新規顧客向けSaaSダッシュボード開発",
			Language: "ja",
			Constraints: map[string]any{
				"internal_engineers": 2,
				"monthly_hours":      80,
				"budget_yen":         10000000,
				"deadline_months":    6,
			},
			Conditions: map[string]any{
				"internal_has_domain_knowledge": true,
				"external_has_cloud_experience": true,
				"external_has_domain_knowledge": false,
			},
		},
		Logging: LoggingConfig{
			Output: OutputConfig{
				Enabled:        true,
				Directory:      ".",
				FilenamePrefix: "debate",
				Format:         "markdown",
			},
			Console: ConsoleConfig{
				Enabled:        true,
				ShowTimestamps: true,
				ShowProgress:   true,
			},
		},
	}
}

// Options carries the raw inputs to Resolve.
type Options struct {
	// CLI holds values for flags the user explicitly set, keyed by
	// dotted config key (e.g. "openai.temperature"). Unset flags must
	// not appear in the map.
	CLI map[string]any

	// FilePath is an explicitly requested config file. Empty means
	// search the default locations and fall back to defaults if none
	// exists; a named file that does not exist is a fatal error.
	FilePath string

	// Getenv looks up an environment variable. Defaults to os.Getenv.
	Getenv func(string) string
}

// Resolve merges all sources into an effective configuration and
// validates it. Validation reports every violated constraint at once.
func Resolve(opts Options) (*Config, error) {
	getenv := opts.Getenv
	if getenv == nil {
		getenv = os.Getenv
	}

	doc, filePath, err := loadFile(opts.FilePath)
	if err != nil {
		return nil, err
	}

	r := resolver{sources: []source{
		cliSource(opts.CLI),
		envSource(getenv),
		fileSource(doc),
	}}

	def := Default()
	cfg := &Config{FilePath: filePath}

	cfg.OpenAI = OpenAIConfig{
		APIKey:      cast.ToString(r.lookup("openai.api_key", def.OpenAI.APIKey)),
		BaseURL:     cast.ToString(r.lookup("openai.base_url", def.OpenAI.BaseURL)),
		Model:       cast.ToString(r.lookup("openai.model", def.OpenAI.Model)),
		Temperature: cast.ToFloat64(r.lookup("openai.temperature", def.OpenAI.Temperature)),
		MaxTokens:   cast.ToInt(r.lookup("openai.max_tokens", def.OpenAI.MaxTokens)),
	}
	cfg.Debate = DebateConfig{
		MaxRounds:        cast.ToInt(r.lookup("debate.max_rounds", def.Debate.MaxRounds)),
		SpeakerSelection: cast.ToString(r.lookup("debate.speaker_selection", def.Debate.SpeakerSelection)),
	}
	cfg.Project = ProjectConfig{
		Name:        cast.ToString(r.lookup("project.name", def.Project.Name)),
		Language:    cast.ToString(r.lookup("project.language", def.Project.Language)),
		Constraints: r.lookupMap("project.constraints", def.Project.Constraints),
		Conditions:  r.lookupMap("project.conditions", def.Project.Conditions),
	}
	cfg.Logging = LoggingConfig{
		Output: OutputConfig{
			Enabled:        cast.ToBool(r.lookup("logging.output.enabled", def.Logging.Output.Enabled)),
			Directory:      cast.ToString(r.lookup("logging.output.directory", def.Logging.Output.Directory)),
			FilenamePrefix: cast.ToString(r.lookup("logging.output.filename_prefix", def.Logging.Output.FilenamePrefix)),
			Format:         cast.ToString(r.lookup("logging.output.format", def.Logging.Output.Format)),
		},
		Console: ConsoleConfig{
			Enabled:        cast.ToBool(r.lookup("logging.console.enabled", def.Logging.Console.Enabled)),
			ShowTimestamps: cast.ToBool(r.lookup("logging.console.show_timestamps", def.Logging.Console.ShowTimestamps)),
			ShowProgress:   cast.ToBool(r.lookup("logging.console.show_progress", def.Logging.Console.ShowProgress)),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
