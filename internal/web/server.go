package web

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/kozaktomas/print-layout/internal/config"
	"github.com/kozaktomas/print-layout/internal/constants"
	"github.com/kozaktomas/print-layout/internal/layout"
	"github.com/kozaktomas/print-layout/internal/session"
	"github.com/kozaktomas/print-layout/internal/web/middleware"
)

// Server represents the web server
type Server struct {
	config     *config.Config
	catalog    *layout.Catalog
	router     *chi.Mux
	httpServer *http.Server
	sessions   *session.MemoryStore[*session.Collage]
}

// NewServer creates a new web server
func NewServer(cfg *config.Config, catalog *layout.Catalog, port int, host string) *Server {
	r := chi.NewRouter()

	// Collage editing sessions expire after the configured idle time
	sessions := session.NewMemoryStore[*session.Collage](cfg.Web.SessionTTL())
	sessions.StartCleanup(constants.SessionCleanupMinutes * time.Minute)

	s := &Server{
		config:   cfg,
		catalog:  catalog,
		router:   r,
		sessions: sessions,
	}

	// Set up middleware stack
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Timeout(5 * time.Minute))
	r.Use(middleware.CORS(cfg.Web.AllowedOrigins))
	r.Use(middleware.SecurityHeaders())

	// Set up routes
	s.setupRoutes()

	// Create HTTP server
	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", host, port),
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 5 * time.Minute, // Long timeout for PDF export
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// Start starts the HTTP server
func (s *Server) Start() error {
	log.Printf("Starting web server on %s", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	log.Println("Shutting down web server...")

	// Stop the session cleanup goroutine
	s.sessions.Stop()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutting down server: %w", err)
	}
	return nil
}

// Router returns the chi router for testing
func (s *Server) Router() *chi.Mux {
	return s.router
}
