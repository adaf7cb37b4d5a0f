// Package main implements the entry point for the tasks API server, which
// exposes CRUD operations over tasks backed by PostgreSQL, SQLite or memory.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/phrazzld/tasks-api/internal/config"
	"github.com/phrazzld/tasks-api/internal/redact"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file (overrides TASKS_CONFIG_FILE)")
	migrateCmd := flag.String("migrate", "", "run a migration command and exit: up, down, reset, status, version")
	flag.Parse()

	os.Exit(run(context.Background(), *configPath, *migrateCmd))
}

// run wires the application and returns the process exit code.
func run(ctx context.Context, configPath, migrateCmd string) int {
	cfg, err := loadAppConfig(configPath)
	if err != nil {
		log.Printf("Failed to load configuration: %v", err)
		return 1
	}

	logger, err := setupAppLogger(cfg)
	if err != nil {
		log.Printf("Failed to set up logger: %v", err)
		return 1
	}

	if migrateCmd != "" {
		if err := handleMigrations(ctx, cfg, migrateCmd, logger); err != nil {
			logger.Error("Migration failed", slog.String("error", redact.Error(err)))
			return 1
		}
		return 0
	}

	app, err := newApplication(ctx, cfg, logger)
	if err != nil {
		logger.Error("Failed to initialize application", slog.String("error", redact.Error(err)))
		return 1
	}

	return app.Run(ctx)
}

// loadAppConfig loads the configuration from an explicit file when given,
// otherwise from the default search paths and environment.
func loadAppConfig(path string) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if path != "" {
		cfg, err = config.LoadFromFile(path)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, nil
}
