package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/scry-planner/internal/api"
	apiMiddleware "github.com/phrazzld/scry-planner/internal/api/middleware"
)

// setupRouter creates the application router with middleware and routes.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.NewTraceMiddleware(app.logger))

	r.Route("/api", func(r chi.Router) {
		api.RegisterRoutes(r, app.planner, app.logger)
	})
	r.Get("/health", api.HealthHandler)

	return r
}
