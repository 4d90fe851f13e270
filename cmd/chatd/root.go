package main

import (
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"chatd/internal/config"
	"chatd/internal/llm"
	"chatd/internal/session"
)

func envStr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// buildRootCmd constructs the Cobra command tree.
func buildRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "chatd",
		Short:         "Local chat daemon for gguf models",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().String("config", envStr("CHATD_CONFIG", ""), "Config file (.yaml/.json/.toml)")
	root.PersistentFlags().String("models-dir", envStr("CHATD_MODELS_DIR", "~/models/llm"), "Directory to scan for *.gguf model files")
	root.PersistentFlags().String("default-model", "", "Default model id when request omits model")
	root.PersistentFlags().Int("context-size", 0, "Context window capacity in tokens (0=default)")
	root.PersistentFlags().Int("batch-size", 0, "Max decode batch (0=context size)")
	root.PersistentFlags().Int("gpu-layers", 0, "Layers to offload to GPU")
	root.PersistentFlags().String("log-level", envStr("CHATD_LOG_LEVEL", "info"), "Log level: debug|info|warn|error|off")

	root.AddCommand(buildServeCmd(), buildChatCmd(), buildModelsCmd())
	return root
}

// resolveConfig merges the optional config file with command line flags.
// Flags that were set explicitly win over file values.
func resolveConfig(cmd *cobra.Command) (config.Config, error) {
	var cfg config.Config
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
	}
	flags := cmd.Flags()
	if v, _ := flags.GetString("models-dir"); cfg.ModelsDir == "" || flags.Changed("models-dir") {
		cfg.ModelsDir = v
	}
	if flags.Changed("default-model") {
		cfg.DefaultModel, _ = flags.GetString("default-model")
	}
	if v, _ := flags.GetInt("context-size"); flags.Changed("context-size") {
		cfg.ContextSize = v
	}
	if v, _ := flags.GetInt("batch-size"); flags.Changed("batch-size") {
		cfg.BatchSize = v
	}
	if v, _ := flags.GetInt("gpu-layers"); flags.Changed("gpu-layers") {
		cfg.GPULayers = v
	}
	if v, _ := flags.GetString("log-level"); cfg.LogLevel == "" || flags.Changed("log-level") {
		cfg.LogLevel = v
	}
	return cfg, nil
}

// newLogger builds a console zerolog logger at the configured level.
func newLogger(level string) zerolog.Logger {
	lvl := zerolog.InfoLevel
	switch strings.ToLower(level) {
	case "debug":
		lvl = zerolog.DebugLevel
	case "warn":
		lvl = zerolog.WarnLevel
	case "error":
		lvl = zerolog.ErrorLevel
	case "off":
		lvl = zerolog.Disabled
	}
	out := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	return zerolog.New(out).Level(lvl).With().Timestamp().Logger()
}

// newManager wires a session manager from the resolved config.
func newManager(cfg config.Config, pollPub session.EventPublisher) *session.Manager {
	return session.NewWithConfig(session.Config{
		ModelsDir:    cfg.ModelsDir,
		DefaultModel: cfg.DefaultModel,
		Binding:      llm.NewBinding(),
		Runtime: llm.Params{
			ContextSize: cfg.ContextSize,
			BatchSize:   cfg.BatchSize,
			GPULayers:   cfg.GPULayers,
			Sampler: llm.SamplerParams{
				Temperature: cfg.Sampler.Temperature,
				TopK:        int32(cfg.Sampler.TopK),
				TopP:        cfg.Sampler.TopP,
				MinP:        cfg.Sampler.MinP,
				Seed:        cfg.Sampler.Seed,
			},
		},
		Publisher: pollPub,
	})
}

// pollInterval converts the configured cadence to a duration, falling back
// to the package default when unset.
func pollInterval(cfg config.Config) time.Duration {
	if cfg.PollIntervalMS <= 0 {
		return 0
	}
	return time.Duration(cfg.PollIntervalMS) * time.Millisecond
}

func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		out = append(out, part)
	}
	return out
}
