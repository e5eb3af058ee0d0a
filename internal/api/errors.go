package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/phrazzld/scry-planner/internal/api/shared"
	"github.com/phrazzld/scry-planner/internal/backup"
	"github.com/phrazzld/scry-planner/internal/domain"
	"github.com/phrazzld/scry-planner/internal/domain/calendar"
	"github.com/phrazzld/scry-planner/internal/domain/srs"
	"github.com/phrazzld/scry-planner/internal/store"
)

const genericErrorMessage = "An unexpected error occurred"

// MapErrorToStatusCode maps internal errors to HTTP status codes without
// leaking internal error types to clients.
func MapErrorToStatusCode(err error) int {
	var verr *domain.ValidationError

	switch {
	// Not found errors
	case errors.Is(err, store.ErrTaskNotFound),
		errors.Is(err, srs.ErrReviewNotFound),
		errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound

	// Rejected review intervals
	case errors.Is(err, domain.ErrConfiguration):
		return http.StatusUnprocessableEntity

	// Bad request errors
	case errors.As(err, &verr),
		errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrEmptyTitle),
		errors.Is(err, domain.ErrInvalidTaskKind),
		errors.Is(err, domain.ErrInvalidReviewKind),
		errors.Is(err, calendar.ErrInvalidDate),
		errors.Is(err, srs.ErrInvalidDays),
		errors.Is(err, srs.ErrNotStudyTask),
		errors.Is(err, backup.ErrMalformedBackup),
		errors.Is(err, store.ErrInvalidEntity):
		return http.StatusBadRequest

	// Conflict errors
	case errors.Is(err, store.ErrDuplicate):
		return http.StatusConflict

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a user-facing message for err. Messages are
// fixed strings or field messages this module writes itself; raw error
// text is never returned.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return genericErrorMessage
	}

	var verr *domain.ValidationError
	switch {
	case errors.Is(err, store.ErrTaskNotFound):
		return "Task not found"
	case errors.Is(err, srs.ErrReviewNotFound):
		return "Review not found"
	case errors.Is(err, store.ErrNotFound):
		return "Not found"

	case errors.Is(err, domain.ErrConfiguration):
		return "Review intervals must be at least one day and strictly increasing"

	case errors.Is(err, calendar.ErrInvalidDate):
		return "Invalid date"
	case errors.Is(err, domain.ErrEmptyTitle):
		return "Title is required"
	case errors.Is(err, domain.ErrInvalidTaskKind):
		return "Unknown task type"
	case errors.Is(err, domain.ErrInvalidReviewKind):
		return "Unknown review type"
	case errors.Is(err, srs.ErrInvalidDays):
		return "Days must be at least 1"
	case errors.Is(err, srs.ErrNotStudyTask):
		return "Only study tasks have reviews"
	case errors.Is(err, backup.ErrMalformedBackup):
		return "Invalid backup file"
	case errors.As(err, &verr):
		return fmt.Sprintf("Invalid %s: %s", verr.Field, verr.Message)
	case errors.Is(err, store.ErrInvalidEntity):
		return "Invalid entity data"

	case errors.Is(err, store.ErrDuplicate):
		return "Task already exists"
	case errors.Is(err, store.ErrStoreFailure):
		return "Storage is unavailable"

	default:
		return genericErrorMessage
	}
}

// SanitizeValidationError turns validator errors on request DTOs into a
// short message naming the first failing field.
func SanitizeValidationError(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "Validation error"
	}

	fe := verrs[0]
	return fmt.Sprintf("Invalid %s: %s", strings.ToLower(fe.Field()), getValidationTagMessage(fe.Tag()))
}

// getValidationTagMessage maps validation tags to user-friendly error messages
func getValidationTagMessage(tag string) string {
	switch tag {
	case "required", "required_without":
		return "required field"
	case "min", "gte", "gt":
		return "too small"
	case "max", "lte", "lt":
		return "too large"
	case "oneof":
		return "invalid value"
	default:
		return "validation failed"
	}
}

// HandleAPIError writes the status and safe message for err. A non-empty
// fallback replaces the generic message for errors with no specific one.
func HandleAPIError(
	w http.ResponseWriter,
	r *http.Request,
	err error,
	fallback string,
	opts ...shared.ResponseOption,
) {
	status := MapErrorToStatusCode(err)
	message := GetSafeErrorMessage(err)
	if message == genericErrorMessage && fallback != "" {
		message = fallback
	}
	shared.RespondWithErrorAndLog(w, r, status, message, err, opts...)
}
