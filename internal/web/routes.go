package web

import (
	"github.com/go-chi/chi/v5"

	"github.com/kozaktomas/print-layout/internal/web/handlers"
)

func (s *Server) setupRoutes() {
	// Create handlers
	configHandler := handlers.NewConfigHandler(s.config)
	templatesHandler := handlers.NewTemplatesHandler(s.catalog)
	layoutHandler := handlers.NewLayoutHandler(s.config, s.catalog)
	sessionsHandler := handlers.NewSessionsHandler(s.config, s.catalog, s.sessions)
	exportHandler := handlers.NewExportHandler(s.config, s.catalog)

	s.router.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", handlers.HealthCheck)

		// Config
		r.Get("/config", configHandler.Get)
		r.Get("/page-sizes", configHandler.PageSizes)

		// Templates
		r.Get("/templates", templatesHandler.List)
		r.Get("/templates/{id}", templatesHandler.Get)

		// Layout computation
		r.Post("/layout/grid", layoutHandler.Grid)
		r.Post("/layout/flyer", layoutHandler.Flyer)
		r.Post("/layout/collage", layoutHandler.Collage)

		// Collage editing sessions
		r.Post("/collage/sessions", sessionsHandler.Create)
		r.Get("/collage/sessions/{id}", sessionsHandler.Get)
		r.Delete("/collage/sessions/{id}", sessionsHandler.Delete)
		r.Post("/collage/sessions/{id}/events", sessionsHandler.Events)
		r.Put("/collage/sessions/{id}/template", sessionsHandler.SetTemplate)

		// PDF export (multipart uploads)
		r.Post("/export/grid", exportHandler.Grid)
		r.Post("/export/flyer", exportHandler.Flyer)
		r.Post("/export/collage", exportHandler.Collage)
	})
}
