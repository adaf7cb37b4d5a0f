package domain

import (
	"slices"
	"strings"
	"time"
)

// TaskStatus represents the lifecycle stage of a task.
type TaskStatus string

// Possible task status values
const (
	TaskStatusPending    TaskStatus = "PENDING"
	TaskStatusInProgress TaskStatus = "IN_PROGRESS"
	TaskStatusCompleted  TaskStatus = "COMPLETED"
)

// TaskStatuses lists every valid status in lifecycle order.
func TaskStatuses() []TaskStatus {
	return []TaskStatus{TaskStatusPending, TaskStatusInProgress, TaskStatusCompleted}
}

// ParseTaskStatus converts a wire token into a TaskStatus.
// Tokens are matched exactly; anything else yields ErrInvalidTaskStatus.
func ParseTaskStatus(token string) (TaskStatus, error) {
	status := TaskStatus(token)
	if !status.IsValid() {
		return "", ErrInvalidTaskStatus
	}
	return status, nil
}

// IsValid reports whether s is one of the enumerated statuses.
func (s TaskStatus) IsValid() bool {
	return slices.Contains(TaskStatuses(), s)
}

// String implements fmt.Stringer.
func (s TaskStatus) String() string {
	return string(s)
}

// Task is a unit of work with a due time and a lifecycle status.
// A zero ID means the task has not been stored yet; the store assigns
// the identity on first save and it never changes afterwards.
type Task struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Description *string    `json:"description"`
	Status      TaskStatus `json:"status"`
	DueDateTime time.Time  `json:"dueDateTime"`
}

// IsNew reports whether the task still needs an identity from the store.
func (t *Task) IsNew() bool {
	return t.ID == 0
}

// UpdateStatus moves the task to the given status.
func (t *Task) UpdateStatus(status TaskStatus) error {
	if !status.IsValid() {
		return ErrInvalidTaskStatus
	}
	t.Status = status
	return nil
}

// ApplyPatch overwrites the fields present in the patch and leaves the rest
// untouched. The identity is never part of a patch.
func (t *Task) ApplyPatch(patch TaskPatch) {
	if patch.Title != nil {
		t.Title = *patch.Title
	}
	if patch.Description != nil {
		description := *patch.Description
		t.Description = &description
	}
	if patch.Status != nil {
		t.Status = *patch.Status
	}
	if patch.DueDateTime != nil {
		t.DueDateTime = *patch.DueDateTime
	}
}

// TaskPatch carries a partial update. Nil fields are left unchanged.
type TaskPatch struct {
	Title       *string
	Description *string
	Status      *TaskStatus
	DueDateTime *time.Time
}

// IsEmpty reports whether the patch would change nothing.
func (p TaskPatch) IsEmpty() bool {
	return p.Title == nil && p.Description == nil && p.Status == nil && p.DueDateTime == nil
}

// Validate checks the invariants a patch must keep intact: a title, when
// given, must not be blank, and a status, when given, must be enumerated.
func (p TaskPatch) Validate() error {
	if p.Title != nil && strings.TrimSpace(*p.Title) == "" {
		return ErrTaskTitleEmpty
	}
	if p.Status != nil && !p.Status.IsValid() {
		return ErrInvalidTaskStatus
	}
	return nil
}
