package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/Project-Sylos/Studio/internal/logging"
	"github.com/Project-Sylos/Studio/internal/types"
	"github.com/Project-Sylos/Studio/sdk"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Server represents the HTTP API server
type Server struct {
	router     *chi.Mux
	studio     *sdk.Studio
	config     *types.APIConfig
	httpServer *http.Server
}

// NewServer creates a new API server
func NewServer(studio *sdk.Studio, config *types.APIConfig) *Server {
	router := NewRouter(studio).SetupRoutes()

	return &Server{
		router: router,
		studio: studio,
		config: config,
		httpServer: &http.Server{
			Addr:              fmt.Sprintf("%s:%d", config.Host, config.Port),
			Handler:           router,
			ReadHeaderTimeout: 15 * time.Second,
			// Suggestion requests wait on the model
			WriteTimeout: 3 * time.Minute,
			IdleTimeout:  60 * time.Second,
		},
	}
}

// Start serves until Stop is called. It returns nil after a clean shutdown.
func (s *Server) Start() error {
	logging.L().Info("starting studio API server",
		zap.String("addr", s.httpServer.Addr),
		zap.String("api", fmt.Sprintf("http://%s/api/v1/", s.httpServer.Addr)),
	)

	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// GetRouter returns the configured router
func (s *Server) GetRouter() *chi.Mux {
	return s.router
}

// Stop drains in-flight requests and closes the studio
func (s *Server) Stop(ctx context.Context) error {
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shut down HTTP server: %w", err)
	}
	return s.studio.Close()
}
