package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/lorenzotomasdiez/owls/internal/config"
	"github.com/lorenzotomasdiez/owls/internal/logging"
	"github.com/lorenzotomasdiez/owls/internal/output"
)

// version is injected at build time via -ldflags.
var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:     "owls [topic]",
		Short:   "AI debate orchestrator",
		Long:    "OWLS runs a scripted debate between Pro, Con, and Mediator agents on a topic\nand saves the transcript to a markdown file.",
		Version: version,
		Args:    cobra.MaximumNArgs(1),
		RunE:    run,

		SilenceUsage: true,
	}

	// Flag defaults mirror config.Default for the help text; only flags
	// the user actually set enter the resolver's CLI source.
	root.Flags().StringP("config", "c", "", "Config file path (default: search config.yml)")
	root.Flags().String("api-key", "", "OpenAI API key (overrides OPENAI_API_KEY)")
	root.Flags().String("model", "gpt-4", "Model identifier")
	root.Flags().Int("rounds", 10, "Number of speaker turns [1-100]")
	root.Flags().Float64("temperature", 0.7, "Sampling temperature [0.0-2.0]")
	root.Flags().Int("max-tokens", 2000, "Maximum tokens per reply [1-32000]")
	root.Flags().String("language", "ja", "Debate language (ja/en/zh)")
	root.Flags().String("output-dir", ".", "Transcript output directory")
	root.Flags().Bool("verbose", false, "Enable verbose console output")
	root.Flags().Bool("dry-run", false, "Resolve and validate configuration, then exit")

	return root
}

func run(cmd *cobra.Command, args []string) error {
	// Values from a .env file never override the real environment.
	_ = godotenv.Load()

	flags := cmd.Flags()
	cli := map[string]any{}
	if flags.Changed("api-key") {
		cli["openai.api_key"], _ = flags.GetString("api-key")
	}
	if flags.Changed("model") {
		cli["openai.model"], _ = flags.GetString("model")
	}
	if flags.Changed("temperature") {
		cli["openai.temperature"], _ = flags.GetFloat64("temperature")
	}
	if flags.Changed("max-tokens") {
		cli["openai.max_tokens"], _ = flags.GetInt("max-tokens")
	}
	if flags.Changed("rounds") {
		cli["debate.max_rounds"], _ = flags.GetInt("rounds")
	}
	if flags.Changed("language") {
		cli["project.language"], _ = flags.GetString("language")
	}
	if flags.Changed("output-dir") {
		cli["logging.output.directory"], _ = flags.GetString("output-dir")
	}
	if flags.Changed("verbose") {
		cli["logging.console.enabled"], _ = flags.GetBool("verbose")
	}

	filePath, _ := flags.GetString("config")
	cfg, err := config.Resolve(config.Options{CLI: cli, FilePath: filePath})
	if err != nil {
		return err
	}

	verbose, _ := flags.GetBool("verbose")
	logger := logging.New(verbose)
	if cfg.FilePath != "" {
		logger.Debug("config file loaded", "path", cfg.FilePath)
	}

	dryRun, _ := flags.GetBool("dry-run")
	output.ConfigSummary(cfg, dryRun)
	if dryRun {
		return nil
	}

	topic := defaultTopic(cfg.Project.Language)
	if len(args) > 0 && args[0] != "" {
		topic = args[0]
	}

	return runSession(cmd.Context(), cfg, topic, logger)
}

var defaultTopics = map[string]string{
	"ja": "Plan A 原子力発電推進 vs Plan B 再生可能エネルギー集中",
	"en": "Plan A: expand nuclear power vs Plan B: focus on renewables",
	"zh": "Plan A 推进核电 vs Plan B 集中发展可再生能源",
}

func defaultTopic(language string) string {
	if t, ok := defaultTopics[language]; ok {
		return t
	}
	return defaultTopics["ja"]
}
