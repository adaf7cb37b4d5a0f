package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/phrazzld/tasks-api/internal/config"
	"github.com/phrazzld/tasks-api/internal/platform/postgres"
)

// handleMigrations executes a goose migration command against PostgreSQL.
// It's called from main() when the -migrate flag is given.
func handleMigrations(ctx context.Context, cfg *config.Config, command string, logger *slog.Logger) error {
	if cfg.Database.Driver != config.DriverPostgres {
		return fmt.Errorf("migrations require the postgres driver, got %q", cfg.Database.Driver)
	}

	logger.Info("Executing migrations",
		slog.String("command", command),
		slog.String("mode", getExecutionMode()))

	db, err := setupAppDatabase(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("Error closing database connection", slog.String("error", err.Error()))
		}
	}()

	return postgres.Migrate(ctx, db, command, logger)
}

// getExecutionMode returns "ci" under a CI system and "local" otherwise.
func getExecutionMode() string {
	if os.Getenv("CI") != "" || os.Getenv("GITHUB_ACTIONS") != "" {
		return "ci"
	}
	return "local"
}
