package api

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/phrazzld/scry-planner/internal/api/shared"
	"github.com/phrazzld/scry-planner/internal/platform/logger"
	"github.com/phrazzld/scry-planner/internal/redact"
	"github.com/phrazzld/scry-planner/internal/service"
)

// defaultPostponeDays applies when the postpone body is empty or omits days.
const defaultPostponeDays = 1

// ReviewHandler handles review queries and review state changes.
type ReviewHandler struct {
	planner service.PlannerService
	logger  *slog.Logger
}

// NewReviewHandler creates a new ReviewHandler
func NewReviewHandler(planner service.PlannerService, logger *slog.Logger) *ReviewHandler {
	if planner == nil {
		panic("planner cannot be nil for ReviewHandler")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ReviewHandler{
		planner: planner,
		logger:  logger.With(slog.String("component", "review_handler")),
	}
}

// TodayReviews handles GET /reviews/today
func (h *ReviewHandler) TodayReviews(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.planner.TodayReviews(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list reviews")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, nonNil(reviews))
}

// OverdueReviews handles GET /reviews/overdue
func (h *ReviewHandler) OverdueReviews(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.planner.OverdueReviews(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list reviews")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, nonNil(reviews))
}

// Exams handles GET /reviews/exams
func (h *ReviewHandler) Exams(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.planner.Exams(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list exams")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, nonNil(reviews))
}

// ReviewsByDate handles GET /reviews/by-date?date=YYYY/MM/DD
func (h *ReviewHandler) ReviewsByDate(w http.ResponseWriter, r *http.Request) {
	date, err := getQueryDate(r)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	reviews, err := h.planner.DueReviews(r.Context(), date)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list reviews")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, nonNil(reviews))
}

// CompleteReview handles POST /tasks/{id}/reviews/{kind}/complete
func (h *ReviewHandler) CompleteReview(w http.ResponseWriter, r *http.Request) {
	id, kind, ok := handleTaskAndReviewKind(w, r, h.logger)
	if !ok {
		return
	}

	task, err := h.planner.CompleteReview(r.Context(), id, kind)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to complete review")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, task)
}

// ReopenReview handles POST /tasks/{id}/reviews/{kind}/reopen
func (h *ReviewHandler) ReopenReview(w http.ResponseWriter, r *http.Request) {
	id, kind, ok := handleTaskAndReviewKind(w, r, h.logger)
	if !ok {
		return
	}

	task, err := h.planner.ReopenReview(r.Context(), id, kind)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to reopen review")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, task)
}

// PostponeReview handles POST /tasks/{id}/reviews/{kind}/postpone. The
// body is optional and days defaults to 1.
func (h *ReviewHandler) PostponeReview(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, kind, ok := handleTaskAndReviewKind(w, r, h.logger)
	if !ok {
		return
	}

	var req PostponeRequest
	if err := shared.DecodeJSON(r, &req); err != nil && !errors.Is(err, io.EOF) {
		log.Warn("invalid request format", slog.String("error", redact.Error(err)))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(&req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return
	}

	days := defaultPostponeDays
	if req.Days != nil {
		days = *req.Days
	}

	task, err := h.planner.PostponeReview(r.Context(), id, kind, days)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to postpone review")
		return
	}

	log.Debug("review postponed",
		slog.String("task_id", id),
		slog.String("kind", string(kind)),
		slog.Int("days", days))
	shared.RespondWithJSON(w, r, http.StatusOK, task)
}

// Stats handles GET /stats
func (h *ReviewHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.planner.ReviewStats(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to compute statistics")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, stats)
}

// Summary handles GET /summary
func (h *ReviewHandler) Summary(w http.ResponseWriter, r *http.Request) {
	sum, err := h.planner.Summary(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to compute summary")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, sum)
}
