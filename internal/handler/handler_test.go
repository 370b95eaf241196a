package handler

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"themed-error-pages/internal/domain"
)

// mockPages implementiert PageService für Handler-Tests.
type mockPages struct {
	page domain.Page
	err  error
}

func (m *mockPages) Render(_ context.Context) (domain.Page, error) {
	return m.page, m.err
}

// mockStyles implementiert StylesheetService und merkt sich die angefragte Variante.
type mockStyles struct {
	gotTheme string
	err      error
}

func (m *mockStyles) Render(_ context.Context, theme string) (domain.Stylesheet, error) {
	m.gotTheme = theme
	if m.err != nil {
		return domain.Stylesheet{}, m.err
	}
	resolved, _ := domain.ParseTheme(theme)
	if resolved.Procedural() {
		return domain.Stylesheet{Theme: resolved, Generated: true, CacheControl: "no-cache", Body: []byte("/* pastell */")}, nil
	}
	return domain.Stylesheet{Theme: resolved, CacheControl: "public, max-age=3600", Body: []byte("/* basis */")}, nil
}

// mockRecorder zählt die Aufrufe an den Recorder.
type mockRecorder struct {
	pages, styles, failures int
}

func (m *mockRecorder) PageRendered(int, domain.Theme) { m.pages++ }
func (m *mockRecorder) StylesheetRendered(domain.Theme, bool) { m.styles++ }
func (m *mockRecorder) AssetFailed(string) { m.failures++ }

func setupRouter(h *ErrorPageHandler) *chi.Mux {
	r := chi.NewRouter()
	r.Get("/style.css", h.Stylesheet)
	r.NotFound(h.Page)
	r.MethodNotAllowed(h.Page)
	return r
}

func neuerTestHandler(pages *mockPages, styles *mockStyles) (*mockRecorder, *chi.Mux) {
	logger, _ := zap.NewDevelopment()
	rec := &mockRecorder{}
	h := NewErrorPageHandler(pages, styles, rec, logger)
	return rec, setupRouter(h)
}

func teapotPage() *mockPages {
	return &mockPages{page: domain.Page{
		Status:       http.StatusTeapot,
		CacheControl: "no-cache",
		Body:         []byte("<html>418</html>"),
		Config:       domain.ErrorConfig{StatusCode: 418, Theme: domain.ThemePastel},
	}}
}

func TestPage_BeliebigerPfad(t *testing.T) {
	for _, path := range []string{"/", "/gibt/es/nicht", "/index.html?x=1"} {
		t.Run(path, func(t *testing.T) {
			metrics, router := neuerTestHandler(teapotPage(), &mockStyles{})
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))

			assert.Equal(t, http.StatusTeapot, rec.Code)
			assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
			assert.Equal(t, "no-cache", rec.Header().Get("Cache-Control"))
			assert.Equal(t, "<html>418</html>", rec.Body.String())
			assert.Equal(t, 1, metrics.pages)
		})
	}
}

func TestPage_FalscheMethodeAufStylesheet(t *testing.T) {
	_, router := neuerTestHandler(teapotPage(), &mockStyles{})
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/style.css", nil))

	assert.Equal(t, http.StatusTeapot, rec.Code)
}

func TestPage_TemplateFehlt(t *testing.T) {
	pages := &mockPages{err: fmt.Errorf("seiten-template laden: %w", domain.ErrAssetNotFound)}
	metrics, router := neuerTestHandler(pages, &mockStyles{})
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/foo", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "text/plain; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Equal(t, "Internal Server Error", rec.Body.String())
	assert.Equal(t, 1, metrics.failures)
	assert.Equal(t, 0, metrics.pages)
}

func TestStylesheet_Varianten(t *testing.T) {
	tests := []struct {
		query     string
		wantTheme string
		wantBody  string
		wantCache string
	}{
		{"", "", "/* basis */", "public, max-age=3600"},
		{"?theme=pink", "pink", "/* basis */", "public, max-age=3600"},
		{"?theme=white", "white", "/* basis */", "public, max-age=3600"},
		{"?theme=pastel", "pastel", "/* pastell */", "no-cache"},
		{"?theme=%3Cscript%3E", "<script>", "/* basis */", "public, max-age=3600"},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			styles := &mockStyles{}
			metrics, router := neuerTestHandler(teapotPage(), styles)
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/style.css"+tt.query, nil))

			require.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, tt.wantTheme, styles.gotTheme)
			assert.Equal(t, "text/css; charset=utf-8", rec.Header().Get("Content-Type"))
			assert.Equal(t, tt.wantCache, rec.Header().Get("Cache-Control"))
			assert.Equal(t, tt.wantBody, rec.Body.String())
			assert.Equal(t, 1, metrics.styles)
		})
	}
}

func TestStylesheet_BasisFehlt(t *testing.T) {
	styles := &mockStyles{err: fmt.Errorf("basis-stylesheet laden: %w", domain.ErrAssetNotFound)}
	metrics, router := neuerTestHandler(teapotPage(), styles)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/style.css?theme=pastel", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "text/css; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Equal(t, "/* css error */", rec.Body.String())
	assert.Equal(t, 1, metrics.failures)
}
