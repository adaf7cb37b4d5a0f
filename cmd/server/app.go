package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/phrazzld/tasks-api/internal/config"
	"github.com/phrazzld/tasks-api/internal/redact"
	"github.com/phrazzld/tasks-api/internal/service"
	"github.com/phrazzld/tasks-api/internal/store"
)

// application holds all the shared application dependencies to simplify management
// and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger

	taskStore      store.TaskStore
	closeTaskStore func() error

	taskService service.TaskService
}

// newApplication creates a new application instance with all dependencies initialized.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*application, error) {
	taskStore, closeStore, err := setupTaskStore(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to set up task store: %w", err)
	}

	return newApplicationWithStore(cfg, logger, taskStore, closeStore)
}

// newApplicationWithStore wires the services around an already opened store.
func newApplicationWithStore(
	cfg *config.Config,
	logger *slog.Logger,
	taskStore store.TaskStore,
	closeStore func() error,
) (*application, error) {
	taskService, err := service.NewTaskService(taskStore, logger)
	if err != nil {
		if closeStore != nil {
			_ = closeStore()
		}
		return nil, fmt.Errorf("failed to create task service: %w", err)
	}

	logger.Info("Application initialized successfully",
		slog.String("database_driver", cfg.Database.Driver))

	return &application{
		config:         cfg,
		logger:         logger,
		taskStore:      taskStore,
		closeTaskStore: closeStore,
		taskService:    taskService,
	}, nil
}

// Run starts the HTTP server and blocks until it has shut down.
// It returns the process exit code.
func (app *application) Run(ctx context.Context) int {
	router := app.setupRouter()

	exitCode, err := app.startHTTPServer(ctx, router)
	if err != nil {
		app.logger.Error("Server error", slog.String("error", redact.Error(err)))
		app.cleanup()
		return 1
	}
	return exitCode
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.closeTaskStore != nil {
		if err := app.closeTaskStore(); err != nil {
			app.logger.Error("Error closing task store", slog.String("error", redact.Error(err)))
		}
	}

	app.logger.Info("Application shutdown completed")
}
