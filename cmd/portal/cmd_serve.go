package main

import (
	"github.com/spf13/cobra"

	"github.com/DulithM/disrupt-asia-investor-platform-dev/internal/app"
	"github.com/DulithM/disrupt-asia-investor-platform-dev/internal/config"
	"github.com/DulithM/disrupt-asia-investor-platform-dev/internal/logger"
)

// serveCmd runs the HTTP service until SIGINT/SIGTERM
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP service",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	loggerClient := logger.New(cfg.LogLevel, cfg.PrettyLog)
	defer func() { _ = loggerClient.Sync() }()

	a, err := app.New(cfg, loggerClient)
	if err != nil {
		return err
	}
	return a.Run()
}
