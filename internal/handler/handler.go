package handler

import (
	"context"
	"errors"
	"net/http"

	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"themed-error-pages/internal/domain"
	"themed-error-pages/internal/repository"
)

// Feste Antworten, wenn ein Asset nicht geladen werden kann.
const (
	pageFallbackBody       = "Internal Server Error"
	stylesheetFallbackBody = "/* css error */"
)

// PageService definiert den Vertrag, den der Handler vom Seiten-Renderer erwartet.
type PageService interface {
	Render(ctx context.Context) (domain.Page, error)
}

// StylesheetService definiert den Vertrag, den der Handler vom Stylesheet-Renderer erwartet.
type StylesheetService interface {
	Render(ctx context.Context, theme string) (domain.Stylesheet, error)
}

// Recorder nimmt Kennzahlen über ausgelieferte Antworten auf.
type Recorder interface {
	PageRendered(status int, theme domain.Theme)
	StylesheetRendered(theme domain.Theme, generated bool)
	AssetFailed(asset string)
}

// ErrorPageHandler stellt Fehlerseite und Stylesheet über HTTP bereit.
type ErrorPageHandler struct {
	pages   PageService
	styles  StylesheetService
	metrics Recorder
	logger  *zap.Logger
}

// NewErrorPageHandler erstellt einen neuen ErrorPageHandler.
func NewErrorPageHandler(pages PageService, styles StylesheetService, metrics Recorder, logger *zap.Logger) *ErrorPageHandler {
	return &ErrorPageHandler{pages: pages, styles: styles, metrics: metrics, logger: logger}
}

// Page beantwortet jeden nicht zugeordneten Pfad mit einer zufälligen Fehlerseite.
func (h *ErrorPageHandler) Page(w http.ResponseWriter, r *http.Request) {
	page, err := h.pages.Render(r.Context())
	if err != nil {
		h.assetFailure(r, repository.PageTemplate, err)
		writeBody(w, http.StatusInternalServerError, "text/plain; charset=utf-8", "", []byte(pageFallbackBody))
		return
	}

	h.metrics.PageRendered(page.Status, page.Config.Theme)
	writeBody(w, page.Status, "text/html; charset=utf-8", page.CacheControl, page.Body)
}

// Stylesheet liefert das Stylesheet für den Query-Parameter theme.
func (h *ErrorPageHandler) Stylesheet(w http.ResponseWriter, r *http.Request) {
	css, err := h.styles.Render(r.Context(), r.URL.Query().Get("theme"))
	if err != nil {
		h.assetFailure(r, repository.BaseStylesheet, err)
		writeBody(w, http.StatusInternalServerError, "text/css; charset=utf-8", "", []byte(stylesheetFallbackBody))
		return
	}

	h.metrics.StylesheetRendered(css.Theme, css.Generated)
	writeBody(w, http.StatusOK, "text/css; charset=utf-8", css.CacheControl, css.Body)
}

// assetFailure protokolliert einen fehlgeschlagenen Abruf und zählt ihn.
func (h *ErrorPageHandler) assetFailure(r *http.Request, asset string, err error) {
	h.metrics.AssetFailed(asset)

	level := h.logger.Error
	if errors.Is(err, domain.ErrAssetNotFound) || errors.Is(err, context.Canceled) {
		level = h.logger.Warn
	}
	level("asset konnte nicht geladen werden",
		zap.String("request_id", chimw.GetReqID(r.Context())),
		zap.String("asset", asset),
		zap.Error(err),
	)
}

// writeBody setzt Content-Type und optional Cache-Control und schreibt body mit status in w.
func writeBody(w http.ResponseWriter, status int, contentType, cacheControl string, body []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("X-Content-Type-Options", "nosniff")
	if cacheControl != "" {
		w.Header().Set("Cache-Control", cacheControl)
	} else {
		w.Header().Set("Cache-Control", "no-store")
	}
	w.WriteHeader(status)
	_, _ = w.Write(body)
}
