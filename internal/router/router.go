// Package router sets up all HTTP routes and middleware chains for the
// QuillPress content API.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"quillpress/internal/handlers"
	"quillpress/internal/middleware"
)

// New creates and returns the configured Chi router with all middleware
// and routes wired up.
func New(users middleware.UserFinder, content *handlers.Content) chi.Router {
	r := chi.NewRouter()

	// Global middleware — applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.ResolveActor(users))
	r.Use(middleware.Logger)

	// Health check — no actor required.
	r.Get("/health", healthHandler)

	r.Route("/content", func(r chi.Router) {
		r.Get("/", content.List)
		r.Post("/", content.Create)
		r.Get("/{id}", content.Get)
		r.Put("/{id}", content.Update)
		r.Delete("/{id}", content.Delete)
		r.Get("/{id}/revisions", content.Revisions)
	})

	return r
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
