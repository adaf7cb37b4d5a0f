package main

import (
	"fmt"
	"log/slog"

	"github.com/phrazzld/tasks-api/internal/config"
	"github.com/phrazzld/tasks-api/internal/platform/logger"
	"github.com/phrazzld/tasks-api/internal/redact"
)

// setupAppLogger configures and initializes the application logger based on config settings.
// It also logs the loaded configuration without secrets.
func setupAppLogger(cfg *config.Config) (*slog.Logger, error) {
	l, err := logger.Setup(logger.LoggerConfig{Level: cfg.Server.LogLevel})
	if err != nil {
		return nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	attrs := []any{
		slog.Int("port", cfg.Server.Port),
		slog.String("log_level", cfg.Server.LogLevel),
		slog.String("database_driver", cfg.Database.Driver),
	}
	switch cfg.Database.Driver {
	case config.DriverPostgres:
		attrs = append(attrs, slog.String("database_url", redact.URL(cfg.Database.URL)))
	case config.DriverSQLite:
		attrs = append(attrs, slog.String("database_path", cfg.Database.Path))
	}
	l.Info("Server configuration loaded", attrs...)

	return l, nil
}
