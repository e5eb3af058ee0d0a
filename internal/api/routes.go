package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/scry-planner/internal/api/shared"
	"github.com/phrazzld/scry-planner/internal/service"
)

// RegisterRoutes mounts the planner endpoints on r. Callers add the
// /api prefix and middleware.
func RegisterRoutes(r chi.Router, planner service.PlannerService, logger *slog.Logger) {
	tasks := NewTaskHandler(planner, logger)
	reviews := NewReviewHandler(planner, logger)
	settings := NewSettingsHandler(planner, logger)
	cal := NewCalendarHandler(planner)

	r.Route("/tasks", func(r chi.Router) {
		r.Get("/", tasks.ListTasks)
		r.Post("/", tasks.CreateTask)
		r.Get("/today", tasks.TodayTasks)
		r.Get("/by-date", tasks.TasksByDate)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", tasks.GetTask)
			r.Patch("/", tasks.UpdateTask)
			r.Delete("/", tasks.DeleteTask)

			r.Post("/reviews/{kind}/complete", reviews.CompleteReview)
			r.Post("/reviews/{kind}/reopen", reviews.ReopenReview)
			r.Post("/reviews/{kind}/postpone", reviews.PostponeReview)
		})
	})

	r.Route("/reviews", func(r chi.Router) {
		r.Get("/today", reviews.TodayReviews)
		r.Get("/overdue", reviews.OverdueReviews)
		r.Get("/exams", reviews.Exams)
		r.Get("/by-date", reviews.ReviewsByDate)
	})

	r.Get("/stats", reviews.Stats)
	r.Get("/summary", reviews.Summary)

	r.Get("/settings", settings.GetSettings)
	r.Put("/settings", settings.UpdateSettings)
	r.Get("/backup", settings.DownloadBackup)
	r.Post("/backup", settings.RestoreBackup)
	r.Delete("/data", settings.ClearData)
	r.Get("/storage", settings.StorageInfo)

	r.Get("/calendar/today", cal.Today)
	r.Get("/calendar/convert", cal.Convert)
}

// HealthHandler handles GET /health
func HealthHandler(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, HealthResponse{Status: "ok"})
}
