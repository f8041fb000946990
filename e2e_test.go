package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/lorenzotomasdiez/owls/internal/config"
	"github.com/lorenzotomasdiez/owls/internal/debate"
	"github.com/lorenzotomasdiez/owls/internal/openai"
	"github.com/lorenzotomasdiez/owls/internal/transcript"
)

// newMockServer returns an OpenAI-compatible server that answers with a
// numbered reply per request, failing permanently from failAt on (0 = never).
func newMockServer(t *testing.T, failAt int) (*httptest.Server, *int) {
	t.Helper()
	calls := new(int)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*calls++
		if auth := r.Header.Get("Authorization"); auth != "Bearer test-key" {
			t.Errorf("bad auth header: %s", auth)
		}
		if failAt > 0 && *calls >= failAt {
			http.Error(w, "model overloaded", http.StatusServiceUnavailable)
			return
		}
		resp := openai.ChatResponse{
			Choices: []openai.Choice{{Message: openai.Message{Role: "assistant", Content: fmt.Sprintf("argument %d", *calls)}}},
		}
		json.NewEncoder(w).Encode(resp)
	}))
	t.Cleanup(server.Close)
	return server, calls
}

// runPipeline wires the real components the way the CLI does and returns
// the sealed transcript, the file path, and the run error.
func runPipeline(t *testing.T, baseURL string, maxTurns int) (*debate.Transcript, string, error) {
	t.Helper()

	dir := t.TempDir()
	cfg, err := config.Resolve(config.Options{
		CLI: map[string]any{
			"debate.max_rounds":        maxTurns,
			"project.language":         "en",
			"logging.output.directory": dir,
		},
		Getenv: func(key string) string {
			if key == "OPENAI_API_KEY" {
				return "test-key"
			}
			return ""
		},
	})
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}

	topic := "Plan A vs Plan B"
	roster := debate.Roster(cfg.Project.Language)
	premise := debate.Premise(debate.PremiseInput{
		Topic:       topic,
		ProjectName: cfg.Project.Name,
		Constraints: cfg.Project.Constraints,
		Conditions:  cfg.Project.Conditions,
		MaxTurns:    cfg.Debate.MaxRounds,
		Language:    cfg.Project.Language,
	})

	start := time.Now()
	writer, err := transcript.Open(dir, cfg.Logging.Output.FilenamePrefix, topic, "e2e-session", debate.Legend(), premise, start)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}

	client := openai.NewClientWithBaseURL("test-key", baseURL)
	engine := debate.NewEngine(topic, roster, client, debate.EngineOptions{
		Premise:  premise,
		Language: cfg.Project.Language,
		Generation: debate.GenerationParams{
			Model:       cfg.OpenAI.Model,
			Temperature: cfg.OpenAI.Temperature,
			MaxTokens:   cfg.OpenAI.MaxTokens,
		},
		MaxTurns: cfg.Debate.MaxRounds,
	})
	engine.OnTurn = func(turn debate.Turn) error {
		return writer.AppendTurn(turn.Role.Name, turn.Content, turn.Index, turn.Timestamp)
	}

	result, runErr := engine.Run(context.Background())
	if err := writer.Finalize(result.EndedAt, len(result.Turns), result.Status); err != nil {
		t.Fatalf("Finalize() error = %v", err)
	}
	return result, writer.Path(), runErr
}

func TestE2EFullDebate(t *testing.T) {
	server, _ := newMockServer(t, 0)

	result, path, err := runPipeline(t, server.URL, 9)
	if err != nil {
		t.Fatalf("pipeline error = %v", err)
	}
	if result.Status != debate.StatusCompleted {
		t.Errorf("Status = %q, want completed", result.Status)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading transcript: %v", err)
	}
	text := string(data)

	if base := filepath.Base(path); !strings.HasPrefix(base, "debate_") || !strings.HasSuffix(base, ".md") {
		t.Errorf("unexpected transcript filename %q", base)
	}
	if got := strings.Count(text, "## Turn"); got != 9 {
		t.Errorf("turn blocks = %d, want 9", got)
	}
	for i, want := range []string{"Pro", "Con", "Mediator", "Pro", "Con", "Mediator", "Pro", "Con", "Mediator"} {
		if !strings.Contains(text, fmt.Sprintf("## Turn %d: %s", i+1, want)) {
			t.Errorf("missing block for turn %d speaker %s", i+1, want)
		}
	}
	if !strings.Contains(text, "**Status:** completed") {
		t.Error("transcript should be sealed completed")
	}
	if !strings.Contains(text, "**Turns:** 9") {
		t.Error("header turn count should be 9")
	}
}

func TestE2EGenerationFailureSealsPartialTranscript(t *testing.T) {
	server, _ := newMockServer(t, 5)

	result, path, err := runPipeline(t, server.URL, 9)
	if err == nil {
		t.Fatal("expected pipeline error")
	}
	if result.Status != debate.StatusFailed {
		t.Errorf("Status = %q, want failed", result.Status)
	}
	if len(result.Turns) != 4 {
		t.Errorf("completed turns = %d, want 4", len(result.Turns))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading transcript: %v", err)
	}
	text := string(data)

	if got := strings.Count(text, "## Turn"); got != 4 {
		t.Errorf("turn blocks = %d, want 4", got)
	}
	if !strings.Contains(text, "**Status:** failed") {
		t.Error("transcript should be sealed failed")
	}
	if !strings.Contains(text, "**Turns:** 4") {
		t.Error("header turn count should be 4")
	}
}
