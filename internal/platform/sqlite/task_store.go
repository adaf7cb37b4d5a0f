package sqlite

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/phrazzld/tasks-api/internal/domain"
	"github.com/phrazzld/tasks-api/internal/platform/logger"
	"github.com/phrazzld/tasks-api/internal/redact"
	"github.com/phrazzld/tasks-api/internal/store"
	"gorm.io/gorm"
)

// taskRecord is the row model for the tasks table.
type taskRecord struct {
	ID          int64     `gorm:"primaryKey;autoIncrement"`
	Title       string    `gorm:"not null"`
	Description *string
	Status      string    `gorm:"size:20;not null;index:idx_tasks_status"`
	DueDateTime time.Time `gorm:"not null"`
}

// TableName returns the table name for the task model.
func (taskRecord) TableName() string {
	return "tasks"
}

func toRecord(t *domain.Task) taskRecord {
	var description *string
	if t.Description != nil {
		d := *t.Description
		description = &d
	}
	return taskRecord{
		ID:          t.ID,
		Title:       t.Title,
		Description: description,
		Status:      string(t.Status),
		DueDateTime: t.DueDateTime.UTC(),
	}
}

func (r taskRecord) toDomain() *domain.Task {
	return &domain.Task{
		ID:          r.ID,
		Title:       r.Title,
		Description: r.Description,
		Status:      domain.TaskStatus(r.Status),
		DueDateTime: r.DueDateTime.UTC(),
	}
}

// TaskStore implements store.TaskStore on top of gorm.
type TaskStore struct {
	db     *gorm.DB
	logger *slog.Logger
}

// NewTaskStore creates a task store over an opened gorm database.
// If logger is nil, a default logger will be used.
func NewTaskStore(db *gorm.DB, logger *slog.Logger) *TaskStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &TaskStore{
		db:     db,
		logger: logger.With(slog.String("component", "sqlite_task_store")),
	}
}

var _ store.TaskStore = (*TaskStore)(nil)

// Save implements store.TaskStore.Save.
func (s *TaskStore) Save(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	rec := toRecord(task)

	if task.IsNew() {
		if err := s.db.WithContext(ctx).Create(&rec).Error; err != nil {
			log.Error("failed to insert task", slog.String("error", redact.Error(err)))
			return nil, store.NewStoreError("task", "insert", "failed to save task", err)
		}
		log.Debug("task inserted", slog.Int64("task_id", rec.ID))
		return rec.toDomain(), nil
	}

	result := s.db.WithContext(ctx).
		Model(&taskRecord{}).
		Where("id = ?", rec.ID).
		Updates(map[string]any{
			"title":         rec.Title,
			"description":   rec.Description,
			"status":        rec.Status,
			"due_date_time": rec.DueDateTime,
		})
	if err := result.Error; err != nil {
		log.Error("failed to update task",
			slog.Int64("task_id", rec.ID),
			slog.String("error", redact.Error(err)))
		return nil, store.NewStoreError("task", "update", "failed to save task", err)
	}
	if result.RowsAffected == 0 {
		return nil, store.ErrTaskNotFound
	}

	log.Debug("task updated", slog.Int64("task_id", rec.ID))
	return rec.toDomain(), nil
}

// FindByID implements store.TaskStore.FindByID.
func (s *TaskStore) FindByID(ctx context.Context, id int64) (*domain.Task, error) {
	var rec taskRecord
	if err := s.db.WithContext(ctx).First(&rec, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, store.ErrTaskNotFound
		}
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to find task",
			slog.Int64("task_id", id),
			slog.String("error", redact.Error(err)))
		return nil, store.NewStoreError("task", "find_by_id", "failed to get task", err)
	}
	return rec.toDomain(), nil
}

// FindAll implements store.TaskStore.FindAll.
func (s *TaskStore) FindAll(ctx context.Context) ([]*domain.Task, error) {
	return s.find(ctx, "find_all", s.db.WithContext(ctx))
}

// FindByStatus implements store.TaskStore.FindByStatus.
func (s *TaskStore) FindByStatus(ctx context.Context, status domain.TaskStatus) ([]*domain.Task, error) {
	return s.find(ctx, "find_by_status", s.db.WithContext(ctx).Where("status = ?", string(status)))
}

// DeleteByID implements store.TaskStore.DeleteByID.
func (s *TaskStore) DeleteByID(ctx context.Context, id int64) error {
	if err := s.db.WithContext(ctx).Delete(&taskRecord{}, "id = ?", id).Error; err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to delete task",
			slog.Int64("task_id", id),
			slog.String("error", redact.Error(err)))
		return store.NewStoreError("task", "delete", "failed to delete task", err)
	}
	return nil
}

// Ping implements store.TaskStore.Ping.
func (s *TaskStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return store.NewStoreError("task", "ping", "database unavailable", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return store.NewStoreError("task", "ping", "database unreachable", err)
	}
	return nil
}

// Close releases the underlying connection pool.
func (s *TaskStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (s *TaskStore) find(ctx context.Context, op string, query *gorm.DB) ([]*domain.Task, error) {
	var recs []taskRecord
	if err := query.Order("id").Find(&recs).Error; err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to query tasks",
			slog.String("operation", op),
			slog.String("error", redact.Error(err)))
		return nil, store.NewStoreError("task", op, "failed to query tasks", err)
	}

	tasks := make([]*domain.Task, 0, len(recs))
	for _, rec := range recs {
		tasks = append(tasks, rec.toDomain())
	}
	return tasks, nil
}
