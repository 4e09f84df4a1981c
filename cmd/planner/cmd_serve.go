package main

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"studyplanner/internal/catalog"
	"studyplanner/internal/server"
)

var serveAddr string

// serveCmd runs the HTTP API
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the schedule and catalog HTTP API",
	Long: `Starts the HTTP API:
  POST /api/schedule        generate a schedule
  GET  /api/courses         list or filter catalog courses
  GET  /api/courses/:id     one course with its lessons
  GET  /api/catalog/facets  categories and skill levels
  GET  /healthz             liveness`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (default: server.addr from config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(commandContext(cmd), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	svc, err := buildService(ctx)
	if err != nil {
		return err
	}

	serverCfg := cfg.Server
	if serveAddr != "" {
		serverCfg.Addr = serveAddr
	}

	logger.Info("Starting API server",
		zap.String("addr", serverCfg.Addr),
		zap.String("provider", cfg.LLM.Provider),
		zap.Duration("llm_timeout", llmTimeout()))

	srv := server.New(svc, catalog.Default(), server.Options{
		Server:     serverCfg,
		LLMTimeout: llmTimeout(),
	})
	return srv.ListenAndServe(ctx)
}
