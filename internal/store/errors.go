package store

import (
	"errors"
	"fmt"
)

// Common store errors used across all store implementations.
var (
	// ErrNotFound is returned when a requested entity does not exist in the store.
	ErrNotFound = errors.New("entity not found")

	// ErrStoreFailure is returned when the backing storage fails to read or
	// write, for example because the disk is full or read-only or the
	// database is unreachable.
	ErrStoreFailure = errors.New("store failure")

	// ErrDuplicate is returned when a write would create a second entity
	// with the same identifier.
	ErrDuplicate = errors.New("entity already exists")

	// ErrInvalidEntity is returned when an entity fails validation before
	// being stored or is corrupt when read back.
	ErrInvalidEntity = errors.New("invalid entity")

	// ErrTransactionFailed is returned when a database transaction fails
	// to commit or when an operation within a transaction fails.
	ErrTransactionFailed = errors.New("transaction failed")

	// ErrTaskNotFound indicates that the requested task does not exist.
	ErrTaskNotFound = fmt.Errorf("%w: task", ErrNotFound)
)

// IsNotFoundError checks if the error is any kind of "not found" error.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsStoreFailure reports whether err came from the backing storage.
func IsStoreFailure(err error) bool {
	return errors.Is(err, ErrStoreFailure)
}

// StoreError is a custom error type for store-specific errors with additional context.
type StoreError struct {
	Entity    string // The entity type (e.g., "tasks", "settings")
	Operation string // The operation that failed (e.g., "read", "write")
	Message   string // Error message
	Err       error  // Original error
}

// Error implements the error interface for StoreError.
func (e *StoreError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s %s failed: %s: %v", e.Operation, e.Entity, e.Message, e.Err)
	}
	return fmt.Sprintf("%s %s failed: %s", e.Operation, e.Entity, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *StoreError) Unwrap() error {
	return e.Err
}

// NewStoreError creates a new StoreError with the given entity, operation, message, and wrapped error.
func NewStoreError(entity, operation, message string, err error) *StoreError {
	return &StoreError{
		Entity:    entity,
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}

// Failure wraps cause as a StoreError that matches ErrStoreFailure. A cause
// that already matches ErrStoreFailure is wrapped without doubling it.
func Failure(entity, operation string, cause error) error {
	if errors.Is(cause, ErrStoreFailure) {
		return NewStoreError(entity, operation, "storage unavailable", cause)
	}
	return NewStoreError(entity, operation, "storage unavailable", fmt.Errorf("%w: %w", ErrStoreFailure, cause))
}
