package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"themed-error-pages/internal/domain"
)

const namespace = "errorpages"

// Metrics bündelt alle Prometheus-Kollektoren des Dienstes in einer eigenen Registry.
type Metrics struct {
	registry *prometheus.Registry

	pagesRendered       *prometheus.CounterVec
	stylesheetsRendered *prometheus.CounterVec
	assetFailures       *prometheus.CounterVec
	requestDuration     *prometheus.HistogramVec
}

// New legt eine neue Registry an und registriert alle Kollektoren.
func New() *Metrics {
	reg := prometheus.NewRegistry()

	return &Metrics{
		registry: reg,

		pagesRendered: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "pages_rendered_total",
				Help:      "Rendered error pages by status code and theme.",
			}, []string{"status", "theme"},
		),
		stylesheetsRendered: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "stylesheets_rendered_total",
				Help:      "Rendered stylesheets by theme and whether colors were generated.",
			}, []string{"theme", "generated"},
		),
		assetFailures: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "asset_fetch_failures_total",
				Help:      "Failed asset fetches by asset name.",
			}, []string{"asset"},
		),
		requestDuration: promauto.With(reg).NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request latency by route and status code.",
				Buckets:   prometheus.DefBuckets,
			}, []string{"route", "status"},
		),
	}
}

// PageRendered zählt eine ausgelieferte Fehlerseite.
func (m *Metrics) PageRendered(status int, theme domain.Theme) {
	m.pagesRendered.WithLabelValues(strconv.Itoa(status), string(theme)).Inc()
}

// StylesheetRendered zählt ein ausgeliefertes Stylesheet.
func (m *Metrics) StylesheetRendered(theme domain.Theme, generated bool) {
	m.stylesheetsRendered.WithLabelValues(string(theme), strconv.FormatBool(generated)).Inc()
}

// AssetFailed zählt einen fehlgeschlagenen Asset-Abruf.
func (m *Metrics) AssetFailed(asset string) {
	m.assetFailures.WithLabelValues(asset).Inc()
}

// Handler gibt den /metrics-Endpunkt für die eigene Registry zurück.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Middleware misst die Dauer jeder Anfrage. Nicht zugeordnete Pfade werden als "unmatched" gezählt,
// damit beliebige URLs keine neuen Label-Werte erzeugen.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		m.requestDuration.
			WithLabelValues(route, strconv.Itoa(ww.Status())).
			Observe(time.Since(start).Seconds())
	})
}
