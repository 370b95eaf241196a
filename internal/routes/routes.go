package routes

import (
	"github.com/NYTimes/gziphandler"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"themed-error-pages/internal/handler"
	"themed-error-pages/internal/metrics"
	"themed-error-pages/internal/middleware"
)

// Setup registriert globale Middleware, das Stylesheet und die Fehlerseite für alle übrigen Pfade am Router.
func Setup(r chi.Router, h *handler.ErrorPageHandler, m *metrics.Metrics, logger *zap.Logger, rps float64) {
	r.Use(chimw.RequestID)
	r.Use(chimw.GetHead)
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.Logging(logger))
	r.Use(m.Middleware)
	r.Use(middleware.RateLimit(rps, logger))
	r.Use(gziphandler.GzipHandler)

	r.Get("/style.css", h.Stylesheet)
	r.NotFound(h.Page)
	r.MethodNotAllowed(h.Page)
}
