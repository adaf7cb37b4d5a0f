package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" driver
	"github.com/phrazzld/tasks-api/internal/config"
	"github.com/phrazzld/tasks-api/internal/platform/memory"
	"github.com/phrazzld/tasks-api/internal/platform/postgres"
	"github.com/phrazzld/tasks-api/internal/platform/sqlite"
	"github.com/phrazzld/tasks-api/internal/redact"
	"github.com/phrazzld/tasks-api/internal/store"
)

// pingTimeout bounds the connectivity check performed at startup.
const pingTimeout = 5 * time.Second

// setupAppDatabase establishes a PostgreSQL connection and configures the pool.
// Returns the database connection if successful, or an error if the connection fails.
func setupAppDatabase(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*sql.DB, error) {
	db, err := sql.Open("pgx", cfg.Database.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Info("Database connection established",
		slog.String("url", redact.URL(cfg.Database.URL)))
	return db, nil
}

// setupTaskStore builds the task store selected by database.driver.
// The returned close function releases the store's resources and is never nil.
func setupTaskStore(
	ctx context.Context,
	cfg *config.Config,
	logger *slog.Logger,
) (store.TaskStore, func() error, error) {
	switch cfg.Database.Driver {
	case config.DriverPostgres:
		db, err := setupAppDatabase(ctx, cfg, logger)
		if err != nil {
			return nil, nil, err
		}
		if cfg.Database.AutoMigrate {
			if err := postgres.Migrate(ctx, db, "up", logger); err != nil {
				_ = db.Close()
				return nil, nil, fmt.Errorf("failed to apply migrations: %w", err)
			}
		}
		return postgres.NewPostgresTaskStore(db, logger), db.Close, nil

	case config.DriverSQLite:
		gormDB, err := sqlite.Open(cfg.Database.Path, logger)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open sqlite database: %w", err)
		}
		taskStore := sqlite.NewTaskStore(gormDB, logger)
		logger.Info("SQLite database opened", slog.String("path", cfg.Database.Path))
		return taskStore, taskStore.Close, nil

	case config.DriverMemory:
		logger.Warn("Using in-memory task store; data is lost on restart")
		return memory.NewTaskStore(logger), func() error { return nil }, nil

	default:
		return nil, nil, fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
	}
}
