package main

import (
	"fmt"
	"log/slog"

	"github.com/phrazzld/todo-api/internal/config"
)

// loadAppConfig loads the application configuration from environment variables or config file.
// Returns the loaded config and any loading error.
func loadAppConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	slog.Info("Server configuration loaded",
		"addr", cfg.Server.Addr(),
		"log_level", cfg.Server.LogLevel,
		"storage_path", cfg.Storage.Path)

	slog.Debug("Effective configuration", "config", cfg.String())

	if len(cfg.Server.AllowedOrigins) > 0 {
		slog.Debug("CORS configuration", "allowed_origins", cfg.Server.AllowedOrigins)
	}

	return cfg, nil
}
