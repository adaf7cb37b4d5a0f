package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/phrazzld/tasks-api/internal/domain"
	"github.com/phrazzld/tasks-api/internal/platform/logger"
	"github.com/phrazzld/tasks-api/internal/redact"
	"github.com/phrazzld/tasks-api/internal/store"
)

const taskColumns = `id, title, description, status, due_date_time`

// PostgresTaskStore implements the store.TaskStore interface
// using a PostgreSQL database as the storage backend.
type PostgresTaskStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresTaskStore creates a new PostgreSQL implementation of the TaskStore interface.
// It accepts a database connection or transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresTaskStore(db store.DBTX, logger *slog.Logger) *PostgresTaskStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresTaskStore{
		db:     db,
		logger: logger.With(slog.String("component", "task_store")),
	}
}

// Ensure PostgresTaskStore implements store.TaskStore interface
var _ store.TaskStore = (*PostgresTaskStore)(nil)

// Save implements store.TaskStore.Save.
// New tasks are inserted and receive their ID from the BIGSERIAL sequence;
// existing tasks are replaced in full.
func (s *PostgresTaskStore) Save(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var (
		query string
		args  []any
		op    string
	)
	if task.IsNew() {
		op = "insert"
		query = `
			INSERT INTO tasks (title, description, status, due_date_time)
			VALUES ($1, $2, $3, $4)
			RETURNING ` + taskColumns
		args = []any{task.Title, nullString(task.Description), string(task.Status), task.DueDateTime.UTC()}
	} else {
		op = "update"
		query = `
			UPDATE tasks
			SET title = $1, description = $2, status = $3, due_date_time = $4
			WHERE id = $5
			RETURNING ` + taskColumns
		args = []any{task.Title, nullString(task.Description), string(task.Status), task.DueDateTime.UTC(), task.ID}
	}

	saved, err := scanTask(s.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("task not found for update", slog.Int64("task_id", task.ID))
			return nil, store.ErrTaskNotFound
		}
		log.Error("failed to save task",
			slog.String("operation", op),
			slog.Int64("task_id", task.ID),
			slog.String("error", redact.Error(err)))
		return nil, store.NewStoreError("task", op, "failed to save task", MapError(err))
	}

	log.Debug("task saved",
		slog.String("operation", op),
		slog.Int64("task_id", saved.ID),
		slog.String("status", saved.Status.String()))
	return saved, nil
}

// FindByID implements store.TaskStore.FindByID.
// Returns store.ErrTaskNotFound if the task does not exist.
func (s *PostgresTaskStore) FindByID(ctx context.Context, id int64) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = $1`

	task, err := scanTask(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("task not found", slog.Int64("task_id", id))
			return nil, store.ErrTaskNotFound
		}
		log.Error("failed to get task by ID",
			slog.Int64("task_id", id),
			slog.String("error", redact.Error(err)))
		return nil, store.NewStoreError("task", "find_by_id", "failed to get task", MapError(err))
	}

	return task, nil
}

// FindAll implements store.TaskStore.FindAll.
func (s *PostgresTaskStore) FindAll(ctx context.Context) ([]*domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks ORDER BY id`
	return s.queryTasks(ctx, "find_all", query)
}

// FindByStatus implements store.TaskStore.FindByStatus.
func (s *PostgresTaskStore) FindByStatus(ctx context.Context, status domain.TaskStatus) ([]*domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE status = $1 ORDER BY id`
	return s.queryTasks(ctx, "find_by_status", query, string(status))
}

// DeleteByID implements store.TaskStore.DeleteByID.
// Deleting a missing ID affects no rows and is not an error.
func (s *PostgresTaskStore) DeleteByID(ctx context.Context, id int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete task",
			slog.Int64("task_id", id),
			slog.String("error", redact.Error(err)))
		return store.NewStoreError("task", "delete", "failed to delete task", MapError(err))
	}

	if rows, err := result.RowsAffected(); err == nil {
		log.Debug("task delete executed",
			slog.Int64("task_id", id),
			slog.Int64("rows_affected", rows))
	}
	return nil
}

// Ping implements store.TaskStore.Ping.
func (s *PostgresTaskStore) Ping(ctx context.Context) error {
	var one int
	if err := s.db.QueryRowContext(ctx, `SELECT 1`).Scan(&one); err != nil {
		return store.NewStoreError("task", "ping", "database unreachable", err)
	}
	return nil
}

func (s *PostgresTaskStore) queryTasks(ctx context.Context, op, query string, args ...any) ([]*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query tasks",
			slog.String("operation", op),
			slog.String("error", redact.Error(err)))
		return nil, store.NewStoreError("task", op, "failed to query tasks", MapError(err))
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			log.Warn("failed to close rows", slog.String("error", closeErr.Error()))
		}
	}()

	tasks := make([]*domain.Task, 0)
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			log.Error("failed to scan task row",
				slog.String("operation", op),
				slog.String("error", redact.Error(err)))
			return nil, store.NewStoreError("task", op, "failed to scan task", err)
		}
		tasks = append(tasks, task)
	}

	if err := rows.Err(); err != nil {
		log.Error("error iterating task rows",
			slog.String("operation", op),
			slog.String("error", redact.Error(err)))
		return nil, store.NewStoreError("task", op, "failed to read tasks", MapError(err))
	}

	log.Debug("tasks retrieved",
		slog.String("operation", op),
		slog.Int("count", len(tasks)))
	return tasks, nil
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (*domain.Task, error) {
	var (
		task        domain.Task
		description sql.NullString
		status      string
	)

	if err := row.Scan(&task.ID, &task.Title, &description, &status, &task.DueDateTime); err != nil {
		return nil, err
	}

	if description.Valid {
		task.Description = &description.String
	}
	task.Status = domain.TaskStatus(status)
	task.DueDateTime = task.DueDateTime.UTC()
	return &task, nil
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}
