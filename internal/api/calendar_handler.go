package api

import (
	"net/http"

	"github.com/phrazzld/scry-planner/internal/api/shared"
	"github.com/phrazzld/scry-planner/internal/service"
)

// CalendarHandler serves calendar lookups.
type CalendarHandler struct {
	planner service.PlannerService
}

// NewCalendarHandler creates a new CalendarHandler
func NewCalendarHandler(planner service.PlannerService) *CalendarHandler {
	if planner == nil {
		panic("planner cannot be nil for CalendarHandler")
	}
	return &CalendarHandler{planner: planner}
}

// Today handles GET /calendar/today
func (h *CalendarHandler) Today(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, calendarResponse(h.planner.Today()))
}

// Convert handles GET /calendar/convert?date=YYYY/MM/DD
func (h *CalendarHandler) Convert(w http.ResponseWriter, r *http.Request) {
	date, err := getQueryDate(r)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, calendarResponse(date))
}
