package api

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/tasks-api/internal/api/shared"
	"github.com/phrazzld/tasks-api/internal/domain"
	"github.com/phrazzld/tasks-api/internal/platform/logger"
	"github.com/phrazzld/tasks-api/internal/service"
)

// TaskHandler handles task-related HTTP requests
type TaskHandler struct {
	taskService service.TaskService
	logger      *slog.Logger
}

// NewTaskHandler creates a new TaskHandler
func NewTaskHandler(taskService service.TaskService, logger *slog.Logger) *TaskHandler {
	if taskService == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("taskService cannot be nil for TaskHandler")
	}
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for TaskHandler")
	}

	return &TaskHandler{
		taskService: taskService,
		logger:      logger.With(slog.String("component", "task_handler")),
	}
}

// Routes mounts the task endpoints on r.
func (h *TaskHandler) Routes(r chi.Router) {
	r.Post("/", h.CreateTask)
	r.Get("/", h.ListTasks)
	r.Get("/status/{status}", h.ListTasksByStatus)
	r.Get("/{id}", h.GetTask)
	r.Patch("/{id}", h.UpdateTask)
	r.Patch("/{id}/status", h.UpdateTaskStatus)
	r.Delete("/{id}", h.DeleteTask)
}

// CreateTask handles POST /api/tasks requests
func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req CreateTaskRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		h.respondWithBadRequest(w, r, err)
		return
	}

	if err := validateRequest(&req); err != nil {
		h.respondWithServiceError(w, r, err)
		return
	}

	task, err := h.taskService.CreateTask(r.Context(), req.ToDomain())
	if err != nil {
		h.respondWithServiceError(w, r, err)
		return
	}

	log.Debug("task created", slog.Int64("task_id", task.ID))
	shared.RespondWithJSON(w, r, http.StatusOK, taskToResponse(task))
}

// GetTask handles GET /api/tasks/{id} requests
func (h *TaskHandler) GetTask(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	task, found, err := h.taskService.GetTask(r.Context(), id)
	if err != nil {
		h.respondWithServiceError(w, r, err)
		return
	}
	if !found {
		shared.RespondWithError(w, r, http.StatusNotFound, msgTaskNotFound)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, taskToResponse(task))
}

// ListTasks handles GET /api/tasks requests
func (h *TaskHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.taskService.ListTasks(r.Context())
	if err != nil {
		h.respondWithServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, tasksToResponse(tasks))
}

// ListTasksByStatus handles GET /api/tasks/status/{status} requests
func (h *TaskHandler) ListTasksByStatus(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "status")
	status, err := domain.ParseTaskStatus(token)
	if err != nil {
		logger.FromContextOrDefault(r.Context(), h.logger).
			Debug("unknown status token", slog.String("status", token))
		shared.RespondWithError(w, r, http.StatusBadRequest, msgInvalidStatus)
		return
	}

	tasks, err := h.taskService.ListTasksByStatus(r.Context(), status)
	if err != nil {
		h.respondWithServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, tasksToResponse(tasks))
}

// UpdateTaskStatus handles PATCH /api/tasks/{id}/status requests.
// The status is read from the query string, a form body or a JSON body.
func (h *TaskHandler) UpdateTaskStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	token, err := statusParam(r)
	if err != nil {
		h.respondWithBadRequest(w, r, err)
		return
	}
	if err := validateRequest(statusOnly{Status: token}); err != nil {
		h.respondWithServiceError(w, r, err)
		return
	}

	task, err := h.taskService.UpdateTaskStatus(r.Context(), id, domain.TaskStatus(token))
	if err != nil {
		h.respondWithServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, taskToResponse(task))
}

// UpdateTask handles PATCH /api/tasks/{id} requests
func (h *TaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	var req UpdateTaskRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		h.respondWithBadRequest(w, r, err)
		return
	}

	patch := req.ToPatch()
	if err := validatePatch(patch); err != nil {
		h.respondWithServiceError(w, r, err)
		return
	}

	task, err := h.taskService.UpdateTask(r.Context(), id, patch)
	if err != nil {
		h.respondWithServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, taskToResponse(task))
}

// DeleteTask handles DELETE /api/tasks/{id} requests.
// Deleting a missing task still succeeds.
func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	if err := h.taskService.DeleteTask(r.Context(), id); err != nil {
		h.respondWithServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}

// statusOnly lets the status endpoint share the create request's messages.
type statusOnly struct {
	Status string `json:"status" validate:"required,taskstatus"`
}

// pathID parses the {id} URL parameter, writing a 400 response on failure.
func (h *TaskHandler) pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := parseTaskID(chi.URLParam(r, "id"))
	if err != nil {
		h.respondWithServiceError(w, r, err)
		return 0, false
	}
	return id, true
}

// parseTaskID converts a path segment into a task ID.
func parseTaskID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", domain.ErrInvalidID, raw)
	}
	return id, nil
}

// statusParam extracts the requested status from the query string, a JSON
// body, or a form body, in that order.
func statusParam(r *http.Request) (string, error) {
	if status := r.URL.Query().Get("status"); status != "" {
		return status, nil
	}

	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		var req UpdateStatusRequest
		if err := shared.DecodeJSON(r, &req); err != nil && !errors.Is(err, shared.ErrEmptyBody) {
			return "", err
		}
		return req.Status, nil
	}

	return r.PostFormValue("status"), nil
}

// respondWithBadRequest answers a request body that could not be decoded,
// logging it at WARN.
func (h *TaskHandler) respondWithBadRequest(w http.ResponseWriter, r *http.Request, err error) {
	shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, msgInvalidRequest, err,
		shared.WithElevatedLogLevel())
}

// respondWithServiceError writes the sanitized response for err.
func (h *TaskHandler) respondWithServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var opts []shared.ResponseOption

	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		opts = append(opts, shared.WithViolations(validationErr.Violations))
	}

	shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err, opts...)
}
