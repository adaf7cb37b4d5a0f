package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/phrazzld/tasks-api/internal/domain"
)

// timestampLayouts are tried in order when decoding a Timestamp. The zone-less
// forms are what browser datetime-local inputs send; they are read as UTC.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
}

// Timestamp is a time.Time with lenient ISO-8601 decoding.
// It always encodes as RFC 3339 in UTC.
type Timestamp time.Time

// ParseTimestamp parses an ISO-8601 date-time in any accepted layout.
func ParseTimestamp(value string) (Timestamp, error) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return Timestamp(t.UTC()), nil
		}
	}
	return Timestamp{}, fmt.Errorf("invalid date-time %q", value)
}

// Time returns the underlying time in UTC.
func (t Timestamp) Time() time.Time {
	return time.Time(t).UTC()
}

// MarshalJSON implements json.Marshaler.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Time().Format(time.RFC3339Nano))
}

// UnmarshalJSON implements json.Unmarshaler.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("date-time must be a string: %w", err)
	}
	parsed, err := ParseTimestamp(raw)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// CreateTaskRequest defines the payload for POST /api/tasks.
// A client-supplied id is accepted and ignored.
type CreateTaskRequest struct {
	ID          *int64     `json:"id,omitempty"`
	Title       string     `json:"title"       validate:"required,notblank"`
	Description *string    `json:"description"`
	Status      string     `json:"status"      validate:"required,taskstatus"`
	DueDateTime *Timestamp `json:"dueDateTime" validate:"required,future"`
}

// ToDomain converts a validated request into a new, unsaved task.
func (r CreateTaskRequest) ToDomain() *domain.Task {
	return &domain.Task{
		Title:       r.Title,
		Description: r.Description,
		Status:      domain.TaskStatus(r.Status),
		DueDateTime: r.DueDateTime.Time(),
	}
}

// UpdateTaskRequest defines the payload for PATCH /api/tasks/{id}.
// Absent or null fields are left unchanged.
type UpdateTaskRequest struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	Status      *string    `json:"status"`
	DueDateTime *Timestamp `json:"dueDateTime"`
}

// ToPatch converts the request into a domain patch.
func (r UpdateTaskRequest) ToPatch() domain.TaskPatch {
	patch := domain.TaskPatch{
		Title:       r.Title,
		Description: r.Description,
	}
	if r.Status != nil {
		status := domain.TaskStatus(*r.Status)
		patch.Status = &status
	}
	if r.DueDateTime != nil {
		due := r.DueDateTime.Time()
		patch.DueDateTime = &due
	}
	return patch
}

// UpdateStatusRequest is the JSON form of PATCH /api/tasks/{id}/status.
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// TaskResponse is the wire form of a task.
type TaskResponse struct {
	ID          int64             `json:"id"`
	Title       string            `json:"title"`
	Description *string           `json:"description"`
	Status      domain.TaskStatus `json:"status"`
	DueDateTime Timestamp         `json:"dueDateTime"`
}

// HealthResponse is returned by GET /health.
type HealthResponse struct {
	Status string `json:"status"`
}

func taskToResponse(task *domain.Task) TaskResponse {
	return TaskResponse{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		Status:      task.Status,
		DueDateTime: Timestamp(task.DueDateTime),
	}
}

func tasksToResponse(tasks []*domain.Task) []TaskResponse {
	responses := make([]TaskResponse, 0, len(tasks))
	for _, task := range tasks {
		responses = append(responses, taskToResponse(task))
	}
	return responses
}
