package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"cvalign-lens/internal/config"
	"cvalign-lens/internal/shared/telemetry"
)

const app = "cvalign"

// Actual version can be specified in build command.
var version = "unknown"

var rootCmd = &cobra.Command{
	Use:           app,
	Short:         "cvalign scores how well a resume fits a job description",
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: false,
}

func init() {
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", true, "json format for logging")
	rootCmd.PersistentFlags().String("provider", "", "LLM provider: openai, gemini or anthropic")
	rootCmd.PersistentFlags().String("model", "", "LLM model override")
}

// loadConfig resolves env, .env files and the command's flags.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	v := config.New()
	if err := config.BindFlags(v, cmd.Flags()); err != nil {
		return config.Config{}, err
	}
	return config.Load(v), nil
}

func newLogger(cfg config.Config) (*zap.Logger, error) {
	logger, err := telemetry.New(cfg.LogJSON, cfg.Debug)
	if err != nil {
		return nil, fmt.Errorf("creating a logger: %w", err)
	}
	return logger, nil
}
