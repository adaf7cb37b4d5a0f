package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/handlers"
	"github.com/phrazzld/tasks-api/internal/api"
	apiMiddleware "github.com/phrazzld/tasks-api/internal/api/middleware"
)

// setupRouter creates and configures the application router with all routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(apiMiddleware.TraceMiddleware(app.logger))
	r.Use(middleware.Recoverer)
	if app.config.Server.WriteTimeout > 0 {
		r.Use(middleware.Timeout(app.config.Server.WriteTimeout))
	}

	taskHandler := api.NewTaskHandler(app.taskService, app.logger)
	healthHandler := api.NewHealthHandler(app.taskStore, app.logger)

	r.Route("/api", func(r chi.Router) {
		r.Route("/tasks", taskHandler.Routes)
	})

	r.Method(http.MethodGet, "/health", healthHandler)

	cors := handlers.CORS(
		handlers.AllowedOrigins(app.config.Server.CORSAllowedOrigins),
		handlers.AllowedMethods([]string{
			http.MethodGet,
			http.MethodPost,
			http.MethodPatch,
			http.MethodDelete,
			http.MethodOptions,
		}),
		handlers.AllowedHeaders([]string{"Content-Type"}),
		handlers.ExposedHeaders([]string{"X-Trace-ID"}),
	)

	return cors(r)
}
