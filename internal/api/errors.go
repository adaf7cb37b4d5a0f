package api

import (
	"errors"
	"net/http"

	"github.com/phrazzld/tasks-api/internal/domain"
	"github.com/phrazzld/tasks-api/internal/service"
	"github.com/phrazzld/tasks-api/internal/store"
)

// Safe messages returned to clients.
const (
	msgTaskNotFound    = "Task not found"
	msgValidation      = "Validation failed"
	msgInvalidStatus   = "Invalid task status"
	msgInvalidID       = "Invalid task ID"
	msgInvalidRequest  = "Invalid request format"
	msgUnexpectedError = "An unexpected error occurred"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	var validationErr *ValidationError

	switch {
	// Not found errors
	case errors.Is(err, service.ErrTaskNotFound),
		errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound

	// Bad request errors
	case errors.As(err, &validationErr),
		errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidTaskStatus),
		errors.Is(err, domain.ErrInvalidID),
		errors.Is(err, store.ErrInvalidEntity):
		return http.StatusBadRequest

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return msgUnexpectedError
	}

	var validationErr *ValidationError

	switch {
	case errors.Is(err, service.ErrTaskNotFound),
		errors.Is(err, store.ErrNotFound):
		return msgTaskNotFound

	case errors.As(err, &validationErr),
		errors.Is(err, domain.ErrValidation):
		return msgValidation

	case errors.Is(err, domain.ErrInvalidTaskStatus):
		return msgInvalidStatus

	case errors.Is(err, domain.ErrInvalidID):
		return msgInvalidID

	case errors.Is(err, store.ErrInvalidEntity):
		return "Invalid task data"

	default:
		return msgUnexpectedError
	}
}
