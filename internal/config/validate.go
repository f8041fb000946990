package config

import (
	"fmt"
	"slices"
	"strings"
)

// SupportedModels is the allow-list of model identifiers.
var SupportedModels = []string{"gpt-4", "gpt-3.5-turbo", "gpt-4-turbo", "gpt-4o", "gpt-5"}

// SupportedLanguages is the allow-list of debate languages.
var SupportedLanguages = []string{"ja", "en", "zh"}

// ConfigError reports every violated constraint found during validation.
type ConfigError struct {
	Violations []string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config: %d invalid setting(s): %s", len(e.Violations), strings.Join(e.Violations, "; "))
}

// validate checks the merged configuration. All violations are collected
// before reporting; a bad value is never partially applied.
func (c *Config) validate() error {
	var violations []string

	if c.OpenAI.APIKey == "" {
		violations = append(violations, "openai.api_key is required (set OPENAI_API_KEY or --api-key)")
	}
	if !slices.Contains(SupportedModels, c.OpenAI.Model) {
		violations = append(violations, fmt.Sprintf("openai.model %q is not supported (want one of %s)", c.OpenAI.Model, strings.Join(SupportedModels, ", ")))
	}
	if c.OpenAI.Temperature < 0.0 || c.OpenAI.Temperature > 2.0 {
		violations = append(violations, fmt.Sprintf("openai.temperature must be in [0.0, 2.0], got %v", c.OpenAI.Temperature))
	}
	if c.OpenAI.MaxTokens < 1 || c.OpenAI.MaxTokens > 32000 {
		violations = append(violations, fmt.Sprintf("openai.max_tokens must be in [1, 32000], got %d", c.OpenAI.MaxTokens))
	}
	if c.Debate.MaxRounds < 1 || c.Debate.MaxRounds > 100 {
		violations = append(violations, fmt.Sprintf("debate.max_rounds must be in [1, 100], got %d", c.Debate.MaxRounds))
	}
	if c.Debate.SpeakerSelection != "round_robin" {
		violations = append(violations, fmt.Sprintf("debate.speaker_selection %q is not supported (only round_robin)", c.Debate.SpeakerSelection))
	}
	if !slices.Contains(SupportedLanguages, c.Project.Language) {
		violations = append(violations, fmt.Sprintf("project.language %q is not supported (want one of %s)", c.Project.Language, strings.Join(SupportedLanguages, ", ")))
	}

	if len(violations) > 0 {
		return &ConfigError{Violations: violations}
	}
	return nil
}
