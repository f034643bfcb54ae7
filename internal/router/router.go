// Package router assembles the HTTP routes and middleware stack.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	"github.com/MiadHasan/freecodecamp-boilerplate-project-exercisetracker/internal/middleware"
	"github.com/MiadHasan/freecodecamp-boilerplate-project-exercisetracker/internal/tracker"
	"github.com/MiadHasan/freecodecamp-boilerplate-project-exercisetracker/web"
)

// New returns the service's root handler.
func New(log zerolog.Logger, allowedOrigins []string, h *tracker.Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logger(log))
	r.Use(chimw.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", middleware.RequestIDHeader},
		ExposedHeaders: []string{middleware.RequestIDHeader},
		MaxAge:         300,
	}))

	// Landing page and assets
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write(web.IndexHTML)
	})
	r.Handle("/public/*", http.StripPrefix("/public/", http.FileServer(http.FS(web.Public()))))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api/users", func(r chi.Router) {
		r.Post("/", h.CreateUser)
		r.Get("/", h.ListUsers)
		r.Post("/{"+tracker.UserIDParam+"}/exercises", h.CreateExercise)
		r.Get("/{"+tracker.UserIDParam+"}/logs", h.Logs)
	})

	return r
}
