package memory

import (
	"context"
	"log/slog"
	"slices"
	"sync"

	"github.com/phrazzld/tasks-api/internal/domain"
	"github.com/phrazzld/tasks-api/internal/platform/logger"
	"github.com/phrazzld/tasks-api/internal/store"
)

// TaskStore keeps tasks in memory. Tasks are indexed by ID and by status,
// and the insertion order of IDs is tracked so listings come back ordered.
// Returned tasks are copies; callers cannot mutate stored state.
type TaskStore struct {
	mu       sync.RWMutex
	byID     map[int64]*domain.Task
	byStatus map[domain.TaskStatus][]int64
	ids      []int64
	counter  int64
	logger   *slog.Logger
}

// NewTaskStore creates an empty in-memory task store.
// If logger is nil, a default logger will be used.
func NewTaskStore(logger *slog.Logger) *TaskStore {
	if logger == nil {
		logger = slog.Default()
	}

	return &TaskStore{
		byID:     make(map[int64]*domain.Task),
		byStatus: make(map[domain.TaskStatus][]int64),
		ids:      make([]int64, 0),
		logger:   logger.With(slog.String("component", "memory_task_store")),
	}
}

var _ store.TaskStore = (*TaskStore)(nil)

// Save implements store.TaskStore.Save.
func (s *TaskStore) Save(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	log := logger.FromContextOrDefault(ctx, s.logger)

	s.mu.Lock()
	defer s.mu.Unlock()

	stored := cloneTask(task)

	if stored.IsNew() {
		s.counter++
		stored.ID = s.counter
		s.byID[stored.ID] = stored
		s.byStatus[stored.Status] = append(s.byStatus[stored.Status], stored.ID)
		s.ids = append(s.ids, stored.ID)

		log.Debug("task inserted", slog.Int64("task_id", stored.ID))
		return cloneTask(stored), nil
	}

	existing, ok := s.byID[stored.ID]
	if !ok {
		return nil, store.ErrTaskNotFound
	}

	if existing.Status != stored.Status {
		s.byStatus[existing.Status] = removeID(s.byStatus[existing.Status], stored.ID)
		s.byStatus[stored.Status] = insertOrdered(s.byStatus[stored.Status], stored.ID)
	}
	s.byID[stored.ID] = stored

	log.Debug("task updated", slog.Int64("task_id", stored.ID))
	return cloneTask(stored), nil
}

// FindByID implements store.TaskStore.FindByID.
func (s *TaskStore) FindByID(ctx context.Context, id int64) (*domain.Task, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	task, ok := s.byID[id]
	if !ok {
		return nil, store.ErrTaskNotFound
	}
	return cloneTask(task), nil
}

// FindAll implements store.TaskStore.FindAll.
func (s *TaskStore) FindAll(ctx context.Context) ([]*domain.Task, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.collect(s.ids), nil
}

// FindByStatus implements store.TaskStore.FindByStatus.
func (s *TaskStore) FindByStatus(ctx context.Context, status domain.TaskStatus) ([]*domain.Task, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.collect(s.byStatus[status]), nil
}

// DeleteByID implements store.TaskStore.DeleteByID.
func (s *TaskStore) DeleteByID(ctx context.Context, id int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	log := logger.FromContextOrDefault(ctx, s.logger)

	s.mu.Lock()
	defer s.mu.Unlock()

	task, ok := s.byID[id]
	if !ok {
		log.Debug("delete of unknown task ignored", slog.Int64("task_id", id))
		return nil
	}

	delete(s.byID, id)
	s.byStatus[task.Status] = removeID(s.byStatus[task.Status], id)
	s.ids = removeID(s.ids, id)

	log.Debug("task deleted", slog.Int64("task_id", id))
	return nil
}

// Ping implements store.TaskStore.Ping. An in-memory store is always reachable.
func (s *TaskStore) Ping(ctx context.Context) error {
	return ctx.Err()
}

// collect must be called with the lock held.
func (s *TaskStore) collect(ids []int64) []*domain.Task {
	result := make([]*domain.Task, 0, len(ids))
	for _, id := range ids {
		result = append(result, cloneTask(s.byID[id]))
	}
	return result
}

func cloneTask(t *domain.Task) *domain.Task {
	c := *t
	if t.Description != nil {
		description := *t.Description
		c.Description = &description
	}
	return &c
}

func removeID(ids []int64, id int64) []int64 {
	if i := slices.Index(ids, id); i >= 0 {
		return slices.Delete(ids, i, i+1)
	}
	return ids
}

func insertOrdered(ids []int64, id int64) []int64 {
	i, found := slices.BinarySearch(ids, id)
	if found {
		return ids
	}
	return slices.Insert(ids, i, id)
}
