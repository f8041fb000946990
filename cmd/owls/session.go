package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/google/uuid"

	"github.com/lorenzotomasdiez/owls/internal/config"
	"github.com/lorenzotomasdiez/owls/internal/debate"
	"github.com/lorenzotomasdiez/owls/internal/openai"
	"github.com/lorenzotomasdiez/owls/internal/output"
	"github.com/lorenzotomasdiez/owls/internal/transcript"
)

// runSession drives one debate from topic to sealed transcript. The
// transcript is finalized on every exit path, success or failure.
func runSession(ctx context.Context, cfg *config.Config, topic string, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	sessionID := uuid.NewString()
	roster := debate.Roster(cfg.Project.Language)
	premise := debate.Premise(debate.PremiseInput{
		Topic:       topic,
		ProjectName: cfg.Project.Name,
		Constraints: cfg.Project.Constraints,
		Conditions:  cfg.Project.Conditions,
		MaxTurns:    cfg.Debate.MaxRounds,
		Language:    cfg.Project.Language,
	})

	console := output.NewConsole(cfg.Logging.Console)
	start := time.Now()
	console.Banner(topic, start)
	logger.Debug("session starting", "session_id", sessionID, "topic", topic, "turns", cfg.Debate.MaxRounds)

	var writer *transcript.Writer
	if cfg.Logging.Output.Enabled {
		var err error
		writer, err = transcript.Open(
			cfg.Logging.Output.Directory,
			cfg.Logging.Output.FilenamePrefix,
			topic, sessionID, debate.Legend(), premise, start,
		)
		if err != nil {
			return err
		}
		logger.Debug("transcript opened", "path", writer.Path())
	}

	client := openai.NewClientWithBaseURL(cfg.OpenAI.APIKey, cfg.OpenAI.BaseURL)
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
		console.Turn(turn)
		if writer == nil {
			return nil
		}
		return writer.AppendTurn(turn.Role.Name, turn.Content, turn.Index, turn.Timestamp)
	}

	// Run always returns the sealed transcript, holding every turn that
	// completed before any failure.
	result, runErr := engine.Run(ctx)
	if runErr != nil {
		logger.Error("session aborted", "session_id", sessionID, "error", runErr)
	}

	if writer != nil {
		if err := writer.Finalize(result.EndedAt, len(result.Turns), result.Status); err != nil {
			logger.Error("finalizing transcript", "path", writer.Path(), "error", err)
			if runErr == nil {
				runErr = err
			}
		}
	}

	path := ""
	if writer != nil {
		path = writer.Path()
	}
	console.Summary(result, path)
	return runErr
}
