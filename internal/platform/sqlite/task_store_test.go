package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/phrazzld/tasks-api/internal/domain"
	"github.com/phrazzld/tasks-api/internal/platform/sqlite"
	"github.com/phrazzld/tasks-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestStore creates a task store over an in-memory SQLite database.
func setupTestStore(t *testing.T) *sqlite.TaskStore {
	t.Helper()

	db, err := sqlite.Open(":memory:", nil)
	require.NoError(t, err, "failed to open test database")

	s := sqlite.NewTaskStore(db, nil)
	t.Cleanup(func() {
		_ = s.Close()
	})
	return s
}

func newTask(title string, status domain.TaskStatus) *domain.Task {
	return &domain.Task{
		Title:       title,
		Status:      status,
		DueDateTime: time.Date(2031, time.June, 15, 8, 30, 0, 0, time.UTC),
	}
}

func TestTaskStore_SaveAndFind(t *testing.T) {
	ctx := context.Background()
	s := setupTestStore(t)

	description := "outline sections"
	input := newTask("Write report", domain.TaskStatusPending)
	input.Description = &description

	saved, err := s.Save(ctx, input)
	require.NoError(t, err)
	assert.Equal(t, int64(1), saved.ID)
	assert.Zero(t, input.ID)

	found, err := s.FindByID(ctx, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, "Write report", found.Title)
	require.NotNil(t, found.Description)
	assert.Equal(t, description, *found.Description)
	assert.Equal(t, domain.TaskStatusPending, found.Status)
	assert.True(t, input.DueDateTime.Equal(found.DueDateTime))
}

func TestTaskStore_UpdateClearsDescription(t *testing.T) {
	ctx := context.Background()
	s := setupTestStore(t)

	description := "temporary"
	input := newTask("Write report", domain.TaskStatusPending)
	input.Description = &description
	saved, err := s.Save(ctx, input)
	require.NoError(t, err)

	saved.Description = nil
	saved.Status = domain.TaskStatusInProgress
	_, err = s.Save(ctx, saved)
	require.NoError(t, err)

	found, err := s.FindByID(ctx, saved.ID)
	require.NoError(t, err)
	assert.Nil(t, found.Description)
	assert.Equal(t, domain.TaskStatusInProgress, found.Status)
}

func TestTaskStore_UpdateUnchangedRowStillSucceeds(t *testing.T) {
	ctx := context.Background()
	s := setupTestStore(t)

	saved, err := s.Save(ctx, newTask("Same", domain.TaskStatusPending))
	require.NoError(t, err)

	_, err = s.Save(ctx, saved)
	assert.NoError(t, err)
}

func TestTaskStore_UpdateUnknownID(t *testing.T) {
	s := setupTestStore(t)

	task := newTask("ghost", domain.TaskStatusPending)
	task.ID = 404
	_, err := s.Save(context.Background(), task)
	assert.ErrorIs(t, err, store.ErrTaskNotFound)
}

func TestTaskStore_FindByIDNotFound(t *testing.T) {
	s := setupTestStore(t)

	_, err := s.FindByID(context.Background(), 12)
	assert.ErrorIs(t, err, store.ErrTaskNotFound)
}

func TestTaskStore_FindAllAndByStatus(t *testing.T) {
	ctx := context.Background()
	s := setupTestStore(t)

	empty, err := s.FindAll(ctx)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	for _, status := range []domain.TaskStatus{
		domain.TaskStatusPending,
		domain.TaskStatusCompleted,
		domain.TaskStatusCompleted,
	} {
		_, err := s.Save(ctx, newTask(string(status), status))
		require.NoError(t, err)
	}

	all, err := s.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []int64{1, 2, 3}, []int64{all[0].ID, all[1].ID, all[2].ID})

	completed, err := s.FindByStatus(ctx, domain.TaskStatusCompleted)
	require.NoError(t, err)
	require.Len(t, completed, 2)
	assert.Equal(t, int64(2), completed[0].ID)
	assert.Equal(t, int64(3), completed[1].ID)

	inProgress, err := s.FindByStatus(ctx, domain.TaskStatusInProgress)
	require.NoError(t, err)
	assert.NotNil(t, inProgress)
	assert.Empty(t, inProgress)
}

func TestTaskStore_DeleteByID(t *testing.T) {
	ctx := context.Background()
	s := setupTestStore(t)

	saved, err := s.Save(ctx, newTask("Delete me", domain.TaskStatusPending))
	require.NoError(t, err)

	require.NoError(t, s.DeleteByID(ctx, saved.ID))
	require.NoError(t, s.DeleteByID(ctx, saved.ID), "deleting twice is a no-op")

	_, err = s.FindByID(ctx, saved.ID)
	assert.ErrorIs(t, err, store.ErrTaskNotFound)
}

func TestTaskStore_Ping(t *testing.T) {
	s := setupTestStore(t)
	assert.NoError(t, s.Ping(context.Background()))

	require.NoError(t, s.Close())
	assert.Error(t, s.Ping(context.Background()))
}

func TestNewTaskStorePanicsOnNilDB(t *testing.T) {
	assert.Panics(t, func() {
		sqlite.NewTaskStore(nil, nil)
	})
}
