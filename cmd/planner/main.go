package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"studyplanner/internal/config"
	"studyplanner/internal/llm"
	"studyplanner/internal/logging"
	"studyplanner/internal/schedule"
)

var (
	// Global flags
	verbose    bool
	configPath string
	timeout    time.Duration

	// Loaded in PersistentPreRunE
	cfg    *config.Config
	logger *zap.Logger

	// newLLMClient is swapped out in tests.
	newLLMClient = llm.NewClientFromConfig
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "planner",
	Short: "Study planner - AI-generated weekly study schedules",
	Long: `planner turns a list of courses and a weekly hour budget into a
personalized study schedule.

Input is validated locally (at least one course, 1 to 100 hours) before a
single call is made to the configured model provider.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if verbose {
			loaded.Logging.DebugMode = true
		}
		cfg = loaded

		logger, err = logging.Initialize(cfg.Logging)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logging.Sync()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", config.DefaultConfigPath, "Config file path")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 0, "Model call timeout (default: llm.timeout from config)")

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(formCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(coursesCmd)
	rootCmd.AddCommand(configCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// llmTimeout prefers the --timeout flag over the config file.
func llmTimeout() time.Duration {
	if timeout > 0 {
		return timeout
	}
	return cfg.GetLLMTimeout()
}

// buildService wires the configured provider behind a tracing wrapper.
func buildService(ctx context.Context) (*schedule.Service, error) {
	client, err := newLLMClient(ctx, cfg.LLM)
	if err != nil {
		return nil, err
	}
	provider := cfg.LLM.Provider
	if provider == "" {
		provider = config.ProviderGemini
	}
	traced := llm.NewTracingClient(client, provider, nil)
	logging.Get(logging.CategoryBoot).Debugw("model client ready", "provider", provider, "model", cfg.LLM.Model)
	return schedule.NewService(traced), nil
}
