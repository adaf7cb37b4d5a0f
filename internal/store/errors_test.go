package store

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsNotFoundError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{
			name:     "nil error",
			err:      nil,
			expected: false,
		},
		{
			name:     "generic error",
			err:      errors.New("some error"),
			expected: false,
		},
		{
			name:     "ErrNotFound",
			err:      ErrNotFound,
			expected: true,
		},
		{
			name:     "wrapped ErrNotFound",
			err:      fmt.Errorf("failed to do something: %w", ErrNotFound),
			expected: true,
		},
		{
			name:     "ErrTaskNotFound",
			err:      ErrTaskNotFound,
			expected: true,
		},
		{
			name:     "StoreError wrapping ErrTaskNotFound",
			err:      NewStoreError("task", "save", "no such task", ErrTaskNotFound),
			expected: true,
		},
		{
			name:     "ErrDuplicate",
			err:      ErrDuplicate,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsNotFoundError(tt.err))
		})
	}
}

func TestErrTaskNotFoundMessage(t *testing.T) {
	assert.Equal(t, "entity not found: task", ErrTaskNotFound.Error())
}

func TestStoreError(t *testing.T) {
	originalErr := errors.New("database connection failed")
	storeErr := NewStoreError("task", "save", "database error", originalErr)

	assert.Equal(t,
		"save operation on task failed: database error: database connection failed",
		storeErr.Error())
	assert.Equal(t, originalErr, storeErr.Unwrap())
	assert.True(t, errors.Is(storeErr, originalErr))

	var target *StoreError
	assert.True(t, errors.As(fmt.Errorf("outer: %w", storeErr), &target))
	assert.Equal(t, "task", target.Entity)
}

func TestStoreError_ErrorWithoutWrappedError(t *testing.T) {
	storeErr := &StoreError{
		Entity:    "task",
		Operation: "find_all",
		Message:   "validation failed",
	}

	assert.Equal(t, "find_all operation on task failed: validation failed", storeErr.Error())
	assert.Nil(t, storeErr.Unwrap())
}
