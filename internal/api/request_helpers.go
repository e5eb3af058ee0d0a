package api

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/scry-planner/internal/domain"
	"github.com/phrazzld/scry-planner/internal/domain/calendar"
	"github.com/phrazzld/scry-planner/internal/platform/logger"
)

// getPathID extracts a non-empty task ID from the URL path. Task IDs are
// opaque: backups from older versions carry non-UUID IDs.
func getPathID(r *http.Request, paramName string) (string, error) {
	id := strings.TrimSpace(chi.URLParam(r, paramName))
	if id == "" {
		return "", domain.NewValidationError(paramName, "is required", domain.ErrInvalidID)
	}
	return id, nil
}

// getPathReviewKind extracts a review kind identifier or label from the
// URL path.
func getPathReviewKind(r *http.Request, paramName string) (domain.ReviewKind, error) {
	kind, err := domain.ParseReviewKind(chi.URLParam(r, paramName))
	if err != nil {
		return "", domain.NewValidationError(paramName, "is unknown", err)
	}
	return kind, nil
}

// getQueryDate parses the "date" query parameter.
func getQueryDate(r *http.Request) (calendar.Date, error) {
	raw := r.URL.Query().Get("date")
	if strings.TrimSpace(raw) == "" {
		return calendar.Date{}, domain.NewValidationError("date", "is required", calendar.ErrInvalidDate)
	}
	d, err := calendar.Parse(raw)
	if err != nil {
		return calendar.Date{}, domain.NewValidationError("date", "must be a valid YYYY/MM/DD date", err)
	}
	return d, nil
}

// handleTaskAndReviewKind extracts the task ID and review kind path
// parameters, writing an error response when either is invalid.
func handleTaskAndReviewKind(
	w http.ResponseWriter,
	r *http.Request,
	log *slog.Logger,
) (string, domain.ReviewKind, bool) {
	if log == nil {
		log = logger.FromContextOrDefault(r.Context(), slog.Default())
	}

	id, err := getPathID(r, "id")
	if err != nil {
		log.Warn("invalid task id")
		HandleAPIError(w, r, err, "")
		return "", "", false
	}

	kind, err := getPathReviewKind(r, "kind")
	if err != nil {
		log.Warn("invalid review kind", slog.String("kind", chi.URLParam(r, "kind")))
		HandleAPIError(w, r, err, "")
		return "", "", false
	}

	return id, kind, true
}
