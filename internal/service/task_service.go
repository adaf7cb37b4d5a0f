package service

import (
	"context"
	"log/slog"

	"github.com/phrazzld/tasks-api/internal/domain"
	"github.com/phrazzld/tasks-api/internal/platform/logger"
	"github.com/phrazzld/tasks-api/internal/redact"
	"github.com/phrazzld/tasks-api/internal/store"
)

// TaskService provides task-related operations
type TaskService interface {
	// CreateTask stores a new task and returns it with its assigned ID.
	// The task is expected to have been validated by the caller.
	CreateTask(ctx context.Context, task *domain.Task) (*domain.Task, error)

	// GetTask retrieves a task by its ID. A missing task is reported through
	// found == false rather than an error.
	GetTask(ctx context.Context, id int64) (task *domain.Task, found bool, err error)

	// ListTasks returns every task ordered by ID.
	ListTasks(ctx context.Context) ([]*domain.Task, error)

	// ListTasksByStatus returns the tasks currently in the given status.
	ListTasksByStatus(ctx context.Context, status domain.TaskStatus) ([]*domain.Task, error)

	// UpdateTaskStatus moves a task to a new status.
	// Returns ErrTaskNotFound if the task does not exist.
	UpdateTaskStatus(ctx context.Context, id int64, status domain.TaskStatus) (*domain.Task, error)

	// UpdateTask merges the fields present in patch into the stored task.
	// Returns ErrTaskNotFound if the task does not exist.
	UpdateTask(ctx context.Context, id int64, patch domain.TaskPatch) (*domain.Task, error)

	// DeleteTask removes a task. Deleting a missing task is not an error.
	DeleteTask(ctx context.Context, id int64) error
}

// taskServiceImpl implements the TaskService interface
type taskServiceImpl struct {
	taskStore store.TaskStore
	logger    *slog.Logger
}

// NewTaskService creates a new TaskService.
// It returns an error if the task store is nil.
func NewTaskService(taskStore store.TaskStore, logger *slog.Logger) (TaskService, error) {
	if taskStore == nil {
		return nil, &TaskServiceError{
			Operation: "create_service",
			Message:   "taskStore cannot be nil",
		}
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &taskServiceImpl{
		taskStore: taskStore,
		logger:    logger.With(slog.String("component", "task_service")),
	}, nil
}

// CreateTask implements TaskService.CreateTask
func (s *taskServiceImpl) CreateTask(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	// Identity always comes from the store.
	toSave := *task
	toSave.ID = 0

	saved, err := s.taskStore.Save(ctx, &toSave)
	if err != nil {
		log.Error("failed to create task", slog.String("error", redact.Error(err)))
		return nil, NewTaskServiceError("create_task", "failed to save task", err)
	}

	log.Info("task created",
		slog.Int64("task_id", saved.ID),
		slog.String("status", saved.Status.String()))
	return saved, nil
}

// GetTask implements TaskService.GetTask
func (s *taskServiceImpl) GetTask(ctx context.Context, id int64) (*domain.Task, bool, error) {
	task, err := s.taskStore.FindByID(ctx, id)
	if err != nil {
		if store.IsNotFoundError(err) {
			return nil, false, nil
		}
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to retrieve task",
			slog.Int64("task_id", id),
			slog.String("error", redact.Error(err)))
		return nil, false, NewTaskServiceError("get_task", "failed to retrieve task", err)
	}
	return task, true, nil
}

// ListTasks implements TaskService.ListTasks
func (s *taskServiceImpl) ListTasks(ctx context.Context) ([]*domain.Task, error) {
	tasks, err := s.taskStore.FindAll(ctx)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to list tasks",
			slog.String("error", redact.Error(err)))
		return nil, NewTaskServiceError("list_tasks", "failed to list tasks", err)
	}
	return nonNil(tasks), nil
}

// ListTasksByStatus implements TaskService.ListTasksByStatus
func (s *taskServiceImpl) ListTasksByStatus(
	ctx context.Context,
	status domain.TaskStatus,
) ([]*domain.Task, error) {
	tasks, err := s.taskStore.FindByStatus(ctx, status)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to list tasks by status",
			slog.String("status", status.String()),
			slog.String("error", redact.Error(err)))
		return nil, NewTaskServiceError("list_tasks_by_status", "failed to list tasks", err)
	}
	return nonNil(tasks), nil
}

// UpdateTaskStatus implements TaskService.UpdateTaskStatus
func (s *taskServiceImpl) UpdateTaskStatus(
	ctx context.Context,
	id int64,
	status domain.TaskStatus,
) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	task, err := s.taskStore.FindByID(ctx, id)
	if err != nil {
		if !store.IsNotFoundError(err) {
			log.Error("failed to load task for status update",
				slog.Int64("task_id", id),
				slog.String("error", redact.Error(err)))
		}
		return nil, NewTaskServiceError("update_task_status", "failed to load task", err)
	}

	previous := task.Status
	if err := task.UpdateStatus(status); err != nil {
		return nil, NewTaskServiceError("update_task_status", "invalid status", err)
	}

	saved, err := s.taskStore.Save(ctx, task)
	if err != nil {
		log.Error("failed to save task status",
			slog.Int64("task_id", id),
			slog.String("error", redact.Error(err)))
		return nil, NewTaskServiceError("update_task_status", "failed to save task", err)
	}

	log.Info("task status updated",
		slog.Int64("task_id", id),
		slog.String("from", previous.String()),
		slog.String("to", saved.Status.String()))
	return saved, nil
}

// UpdateTask implements TaskService.UpdateTask
func (s *taskServiceImpl) UpdateTask(
	ctx context.Context,
	id int64,
	patch domain.TaskPatch,
) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	task, err := s.taskStore.FindByID(ctx, id)
	if err != nil {
		if !store.IsNotFoundError(err) {
			log.Error("failed to load task for update",
				slog.Int64("task_id", id),
				slog.String("error", redact.Error(err)))
		}
		return nil, NewTaskServiceError("update_task", "failed to load task", err)
	}

	if patch.IsEmpty() {
		return task, nil
	}
	task.ApplyPatch(patch)

	saved, err := s.taskStore.Save(ctx, task)
	if err != nil {
		log.Error("failed to save updated task",
			slog.Int64("task_id", id),
			slog.String("error", redact.Error(err)))
		return nil, NewTaskServiceError("update_task", "failed to save task", err)
	}

	log.Info("task updated", slog.Int64("task_id", id))
	return saved, nil
}

// DeleteTask implements TaskService.DeleteTask
func (s *taskServiceImpl) DeleteTask(ctx context.Context, id int64) error {
	if err := s.taskStore.DeleteByID(ctx, id); err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to delete task",
			slog.Int64("task_id", id),
			slog.String("error", redact.Error(err)))
		return NewTaskServiceError("delete_task", "failed to delete task", err)
	}

	logger.FromContextOrDefault(ctx, s.logger).Info("task deleted", slog.Int64("task_id", id))
	return nil
}

func nonNil(tasks []*domain.Task) []*domain.Task {
	if tasks == nil {
		return []*domain.Task{}
	}
	return tasks
}
