package api

import (
	"time"

	"github.com/Project-Sylos/Studio/internal/api/handlers"
	apimiddleware "github.com/Project-Sylos/Studio/internal/api/middleware"
	"github.com/Project-Sylos/Studio/internal/logging"
	"github.com/Project-Sylos/Studio/internal/metrics"
	"github.com/Project-Sylos/Studio/sdk"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Router represents the HTTP API router
type Router struct {
	studio *sdk.Studio
}

// NewRouter creates a new API router
func NewRouter(studio *sdk.Studio) *Router {
	return &Router{studio: studio}
}

// SetupRoutes configures all API routes using modular handlers
func (r *Router) SetupRoutes() *chi.Mux {
	router := chi.NewRouter()

	// Standard middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(logging.Middleware)
	router.Use(metrics.Middleware)
	router.Use(middleware.Recoverer)

	// Custom middleware
	router.Use(apimiddleware.CORS)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler()
	sessionHandler := handlers.NewSessionHandler(r.studio)
	projectHandler := handlers.NewProjectHandler(r.studio)
	fileHandler := handlers.NewFileHandler(r.studio)
	chatHandler := handlers.NewChatHandler(r.studio)
	systemHandler := handlers.NewSystemHandler(r.studio)

	// Health check and metrics
	router.Get("/health", healthHandler.HealthCheck)
	router.Handle("/metrics", metrics.Handler())

	// API routes
	router.Route("/api/v1", func(api chi.Router) {
		// Suggestion calls can be slow; everything else is in-memory
		api.Use(middleware.Timeout(2 * time.Minute))
		api.Use(apimiddleware.MaxBodySize(apimiddleware.UploadBodyLimit(r.studio.GetConfig().Studio.MaxUploadBytes)))

		api.Get("/config", systemHandler.GetConfig)
		api.Get("/variants", systemHandler.GetVariants)

		api.Route("/sessions", func(sessions chi.Router) {
			sessions.Post("/", sessionHandler.CreateSession)
			sessions.Get("/", sessionHandler.ListSessions)

			sessions.Route("/{sessionID}", func(s chi.Router) {
				s.Get("/", sessionHandler.GetSession)
				s.Delete("/", sessionHandler.CloseSession)

				// Project operations
				s.Get("/project", projectHandler.GetProject)
				s.Get("/project/export", projectHandler.ExportProject)
				s.Post("/project/import", projectHandler.ImportProject)
				s.Post("/project/reset", projectHandler.ResetProject)

				// File operations
				s.Get("/files/*", fileHandler.GetFileData)
				s.Put("/files/*", fileHandler.UpdateFile)
				s.Get("/active", fileHandler.GetActiveFile)
				s.Put("/active", fileHandler.SelectFile)
				s.Put("/active/content", fileHandler.UpdateActiveFile)

				// Chat operations
				s.Get("/messages", chatHandler.GetMessages)
				s.Post("/messages", chatHandler.SendMessage)
				s.Delete("/messages", chatHandler.ClearMessages)
				s.Post("/upload", chatHandler.Upload)
				s.Post("/styles", chatHandler.GenerateStyles)
			})
		})
	})

	return router
}
