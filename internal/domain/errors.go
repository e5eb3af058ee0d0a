package domain

import (
	"errors"
	"fmt"
)

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidID is returned when an ID is malformed or invalid.
	ErrInvalidID = errors.New("invalid ID")

	// ErrEmptyTitle is returned when a task title is empty after trimming.
	ErrEmptyTitle = errors.New("task title cannot be empty")

	// ErrInvalidReviewKind is returned when a review kind is not one of the
	// four known kinds.
	ErrInvalidReviewKind = errors.New("invalid review kind")

	// ErrInvalidTaskKind is returned when a task kind cannot be decoded.
	ErrInvalidTaskKind = errors.New("invalid task kind")

	// ErrConfiguration is returned when review intervals are not positive
	// and strictly increasing. It must surface before any schedule is
	// generated with the rejected intervals.
	ErrConfiguration = errors.New("invalid review interval configuration")
)

// ValidationError describes a single invalid input field.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

// NewValidationError creates a ValidationError for field wrapping err.
func NewValidationError(field, message string, err error) *ValidationError {
	return &ValidationError{Field: field, Message: message, Err: err}
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s %s: %v", e.Field, e.Message, e.Err)
	}
	return fmt.Sprintf("%s %s", e.Field, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ValidationError) Unwrap() error {
	return e.Err
}
