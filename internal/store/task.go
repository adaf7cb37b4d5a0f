package store

import (
	"context"

	"github.com/phrazzld/tasks-api/internal/domain"
)

// TaskStore defines the interface for task data persistence.
// Implementations exist for PostgreSQL, SQLite and process memory; all of
// them must behave identically as seen through this interface.
type TaskStore interface {
	// Save inserts the task when its ID is zero and assigns a fresh identity,
	// otherwise it replaces the stored record with the same ID.
	// Returns the stored task. Returns ErrTaskNotFound when updating an ID
	// that does not exist.
	Save(ctx context.Context, task *domain.Task) (*domain.Task, error)

	// FindByID retrieves a task by its identity.
	// Returns ErrTaskNotFound if the task does not exist.
	FindByID(ctx context.Context, id int64) (*domain.Task, error)

	// FindAll returns every stored task ordered by ID.
	// Returns an empty slice when the store is empty.
	FindAll(ctx context.Context) ([]*domain.Task, error)

	// FindByStatus returns the tasks whose status equals the given one,
	// ordered by ID. Returns an empty slice if no task matches.
	FindByStatus(ctx context.Context, status domain.TaskStatus) ([]*domain.Task, error)

	// DeleteByID removes the task with the given ID.
	// Deleting a missing ID is not an error.
	DeleteByID(ctx context.Context, id int64) error

	// Ping reports whether the backing storage is reachable.
	Ping(ctx context.Context) error
}
