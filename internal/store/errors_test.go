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
		{"nil error", nil, false},
		{"generic error", errors.New("some error"), false},
		{"ErrNotFound", ErrNotFound, true},
		{"ErrTaskNotFound", ErrTaskNotFound, true},
		{"wrapped ErrTaskNotFound", fmt.Errorf("get task 42: %w", ErrTaskNotFound), true},
		{"store failure", ErrStoreFailure, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsNotFoundError(tt.err))
		})
	}
}

func TestStoreError(t *testing.T) {
	cause := errors.New("disk full")
	err := NewStoreError("tasks", "write", "could not write file", cause)

	assert.Equal(t, "write tasks failed: could not write file: disk full", err.Error())
	assert.ErrorIs(t, err, cause)

	bare := NewStoreError("settings", "read", "corrupt", nil)
	assert.Equal(t, "read settings failed: corrupt", bare.Error())
}

func TestFailure(t *testing.T) {
	cause := errors.New("permission denied")
	err := Failure("tasks", "write", cause)

	assert.True(t, IsStoreFailure(err))
	assert.ErrorIs(t, err, cause)

	var se *StoreError
	assert.True(t, errors.As(err, &se))
	assert.Equal(t, "tasks", se.Entity)
	assert.Equal(t, "write", se.Operation)

	again := Failure("tasks", "save", err)
	assert.True(t, IsStoreFailure(again))
}
