package api

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/phrazzld/tasks-api/internal/api/shared"
	"github.com/phrazzld/tasks-api/internal/domain"
)

// FieldViolation describes a single failed constraint on a request field.
type FieldViolation = shared.FieldViolation

// ValidationError carries every violation found while validating a request.
type ValidationError struct {
	Violations []FieldViolation
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		parts = append(parts, fmt.Sprintf("%s: %s", v.Field, v.Message))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Unwrap returns domain.ErrValidation so callers can match with errors.Is.
func (e *ValidationError) Unwrap() error {
	return domain.ErrValidation
}

// violationMessages maps field and tag to the message shown to clients.
var violationMessages = map[string]map[string]string{
	"title": {
		"required": "Title is required",
		"notblank": "Title is required",
	},
	"status": {
		"required":   "Status is required",
		"taskstatus": "Status must be one of " + statusChoices(),
	},
	"dueDateTime": {
		"required": "Due Date and Time is required",
		"future":   "Due date must be in the future",
	},
}

// validateRequest runs struct validation and converts failures into a
// *ValidationError. Non-validation errors are returned unchanged.
func validateRequest(req interface{}) error {
	err := shared.ValidateRequest(req)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	violations := make([]FieldViolation, 0, len(verrs))
	for _, fe := range verrs {
		violations = append(violations, FieldViolation{
			Field:   fe.Field(),
			Message: violationMessage(fe.Field(), fe.Tag()),
		})
	}
	return &ValidationError{Violations: violations}
}

// statusChoices lists the accepted status tokens, comma separated.
func statusChoices() string {
	statuses := domain.TaskStatuses()
	tokens := make([]string, 0, len(statuses))
	for _, s := range statuses {
		tokens = append(tokens, s.String())
	}
	return strings.Join(tokens, ", ")
}

func violationMessage(field, tag string) string {
	if msg, ok := violationMessages[field][tag]; ok {
		return msg
	}
	return fmt.Sprintf("%s is invalid", field)
}

// validatePatch checks a partial update against the task invariants.
func validatePatch(patch domain.TaskPatch) error {
	err := patch.Validate()
	switch {
	case err == nil:
		return nil
	case errors.Is(err, domain.ErrTaskTitleEmpty):
		return &ValidationError{Violations: []FieldViolation{
			{Field: "title", Message: violationMessage("title", "notblank")},
		}}
	case errors.Is(err, domain.ErrInvalidTaskStatus):
		return &ValidationError{Violations: []FieldViolation{
			{Field: "status", Message: violationMessage("status", "taskstatus")},
		}}
	default:
		return err
	}
}
