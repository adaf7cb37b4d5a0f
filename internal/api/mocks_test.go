package api

import (
	"context"

	"github.com/phrazzld/tasks-api/internal/domain"
)

// MockTaskService is a mock implementation of service.TaskService for testing
type MockTaskService struct {
	CreateTaskFn        func(ctx context.Context, task *domain.Task) (*domain.Task, error)
	GetTaskFn           func(ctx context.Context, id int64) (*domain.Task, bool, error)
	ListTasksFn         func(ctx context.Context) ([]*domain.Task, error)
	ListTasksByStatusFn func(ctx context.Context, status domain.TaskStatus) ([]*domain.Task, error)
	UpdateTaskStatusFn  func(ctx context.Context, id int64, status domain.TaskStatus) (*domain.Task, error)
	UpdateTaskFn        func(ctx context.Context, id int64, patch domain.TaskPatch) (*domain.Task, error)
	DeleteTaskFn        func(ctx context.Context, id int64) error

	calls []string
}

func (m *MockTaskService) record(name string) {
	m.calls = append(m.calls, name)
}

// Called reports whether the named method was invoked.
func (m *MockTaskService) Called(name string) bool {
	for _, c := range m.calls {
		if c == name {
			return true
		}
	}
	return false
}

// CreateTask implements service.TaskService
func (m *MockTaskService) CreateTask(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	m.record("CreateTask")
	if m.CreateTaskFn != nil {
		return m.CreateTaskFn(ctx, task)
	}
	return nil, nil
}

// GetTask implements service.TaskService
func (m *MockTaskService) GetTask(ctx context.Context, id int64) (*domain.Task, bool, error) {
	m.record("GetTask")
	if m.GetTaskFn != nil {
		return m.GetTaskFn(ctx, id)
	}
	return nil, false, nil
}

// ListTasks implements service.TaskService
func (m *MockTaskService) ListTasks(ctx context.Context) ([]*domain.Task, error) {
	m.record("ListTasks")
	if m.ListTasksFn != nil {
		return m.ListTasksFn(ctx)
	}
	return []*domain.Task{}, nil
}

// ListTasksByStatus implements service.TaskService
func (m *MockTaskService) ListTasksByStatus(
	ctx context.Context,
	status domain.TaskStatus,
) ([]*domain.Task, error) {
	m.record("ListTasksByStatus")
	if m.ListTasksByStatusFn != nil {
		return m.ListTasksByStatusFn(ctx, status)
	}
	return []*domain.Task{}, nil
}

// UpdateTaskStatus implements service.TaskService
func (m *MockTaskService) UpdateTaskStatus(
	ctx context.Context,
	id int64,
	status domain.TaskStatus,
) (*domain.Task, error) {
	m.record("UpdateTaskStatus")
	if m.UpdateTaskStatusFn != nil {
		return m.UpdateTaskStatusFn(ctx, id, status)
	}
	return nil, nil
}

// UpdateTask implements service.TaskService
func (m *MockTaskService) UpdateTask(
	ctx context.Context,
	id int64,
	patch domain.TaskPatch,
) (*domain.Task, error) {
	m.record("UpdateTask")
	if m.UpdateTaskFn != nil {
		return m.UpdateTaskFn(ctx, id, patch)
	}
	return nil, nil
}

// DeleteTask implements service.TaskService
func (m *MockTaskService) DeleteTask(ctx context.Context, id int64) error {
	m.record("DeleteTask")
	if m.DeleteTaskFn != nil {
		return m.DeleteTaskFn(ctx, id)
	}
	return nil
}

// MockPinger is a mock implementation of Pinger for testing
type MockPinger struct {
	PingFn func(ctx context.Context) error
}

// Ping implements Pinger
func (m *MockPinger) Ping(ctx context.Context) error {
	if m.PingFn != nil {
		return m.PingFn(ctx)
	}
	return nil
}
