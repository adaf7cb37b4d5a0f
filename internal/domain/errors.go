package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidID is returned when an ID is malformed or invalid.
	ErrInvalidID = errors.New("invalid ID")

	// ErrInvalidTaskStatus is returned when a status token is not one of
	// PENDING, IN_PROGRESS or COMPLETED.
	ErrInvalidTaskStatus = errors.New("invalid task status")

	// ErrTaskTitleEmpty is returned when a task title is blank.
	ErrTaskTitleEmpty = errors.New("task title cannot be empty")
)
