// Command web serves the sales analysis over HTTP.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"salespulse/internal/app"
	"salespulse/internal/config"
	"salespulse/internal/infrastructure"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if err := applyPortEnv(cfg, os.Getenv); err != nil {
		slog.Error("Invalid PORT", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Error("Failed to initialize logger", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer infrastructure.CloseLogFile()

	application, err := app.NewApplication(cfg, logger)
	if err != nil {
		logger.Error("Failed to initialize application", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if err := application.Run(); err != nil {
		logger.Error("Application error", slog.String("error", err.Error()))
		infrastructure.CloseLogFile()
		os.Exit(1)
	}
}

// applyPortEnv honours the platform PORT variable when the port was not
// configured explicitly.
func applyPortEnv(cfg *config.Config, getenv func(string) string) error {
	if getenv(config.EnvPrefix+"_SERVER_PORT") != "" {
		return nil
	}
	raw := getenv("PORT")
	if raw == "" {
		return nil
	}
	port, err := strconv.Atoi(raw)
	if err != nil || port <= 0 || port > 65535 {
		return fmt.Errorf("PORT must be a TCP port, got %q", raw)
	}
	cfg.Server.Port = port
	return nil
}
