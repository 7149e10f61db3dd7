package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// RegisterRoutes sets up all the API endpoints and middleware for the application.
func (s *Server) RegisterRoutes(r *chi.Mux) {
	// --- Global Middleware (Applied to ALL routes) ---
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(s.metrics.instrument)
	r.Use(middleware.Recoverer) // Recovers from panics and returns a 500 error

	origins := []string{"*"}
	if s.config != nil && len(s.config.CorsOrigins) > 0 {
		origins = s.config.CorsOrigins
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300, // How long the browser can cache preflight results
	}))

	// --- Operational routes ---
	r.Get("/healthz", s.handleHealth)
	r.Handle("/metrics", s.metrics.handler())

	// --- Auth ---
	r.Post("/token", s.handleLogin)

	// --- Authenticated Routes ---
	// Every route in this group needs a bearer token for an active user.
	r.Group(func(r chi.Router) {
		r.Use(s.authMiddleware)

		r.Get("/users/me", s.handleGetMyProfile)

		r.Route("/group", func(r chi.Router) {
			r.Post("/", s.handleCreateGroup)
			r.Get("/", s.handleListGroups)
			r.Get("/extreme/", s.handleExtremeGroups)
			r.Get("/list/batteries/{id}", s.handleGroupBatteries)
			r.Get("/{id}", s.handleGetGroup)
			r.Put("/{id}", s.handleUpdateGroup)
			r.Delete("/{id}", s.handleDeleteGroup)
		})

		r.Route("/battery", func(r chi.Router) {
			r.Post("/", s.handleCreateBattery)
			r.Get("/", s.handleListBatteries)
			r.Get("/params/", s.handleFilterBatteries)
			r.Get("/{id}", s.handleGetBattery)
			r.Put("/{id}", s.handleUpdateBattery)
			r.Delete("/{id}", s.handleDeleteBattery)
		})
	})
}
