package handler

import (
	"database/sql"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	"github.com/hookscope/hookscope-be/internal/service"
)

// SetupRouter creates the main Chi router for the application.
// It takes the service and a logger as dependencies to inject into the handlers.
func SetupRouter(s service.IWebhookService, db *sql.DB, logger zerolog.Logger) *chi.Mux {
	r := chi.NewRouter()

	// Logger logs request details; Recoverer turns panics into 500s
	// instead of killing the process.
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// The dashboard runs on a different origin.
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	webhookHandler := NewWebhookHandler(s, logger)
	apiHandler := NewAPIHandler(s, logger)
	healthHandler := NewHealthHandler(db, logger)

	r.Get("/health", healthHandler.Check)

	// Catch-all capture endpoint: any method, any sub-path. The remainder
	// after /webhook/ is opaque data, never matched against a route table.
	r.HandleFunc("/webhook", webhookHandler.Capture)
	r.HandleFunc("/webhook/*", webhookHandler.Capture)

	r.Route("/api", func(r chi.Router) {
		r.Get("/webhooks", apiHandler.List)
		r.Get("/webhooks/types", apiHandler.ListTypes)
		r.Get("/webhooks/{id}", apiHandler.Get)
		r.Delete("/webhooks/{id}", apiHandler.Delete)
	})

	return r
}
