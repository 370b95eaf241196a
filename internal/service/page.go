package service

import (
	"context"
	_ "embed"
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"themed-error-pages/internal/domain"
	"themed-error-pages/internal/repository"
)

// Platzhalter im Seiten-Template.
const (
	MarkerCode        = "{{ERROR_CODE}}"
	MarkerMessage     = "{{ERROR_MESSAGE}}"
	MarkerDescription = "{{ERROR_DESCRIPTION}}"
	MarkerTitle       = "{{TITLE}}"
	MarkerStylesheet  = "{{STYLESHEET}}"
)

// PageMarkers listet alle Platzhalter, die ein Seiten-Template enthalten muss.
var PageMarkers = []string{MarkerCode, MarkerMessage, MarkerDescription, MarkerTitle, MarkerStylesheet}

// BodyClose ist die Stelle, vor der das Theme-Skript eingefügt wird.
const BodyClose = "</body>"

const (
	titleSuffix      = "invalid subdomain"
	pageCacheControl = "no-cache"
)

//go:embed theme_script.html
var themeScript string

// PageRenderer erzeugt zufällig gewählte Fehlerseiten.
type PageRenderer struct {
	assets  repository.AssetRepository
	configs []domain.ErrorConfig
	rnd     *rand.Rand
	logger  *zap.Logger
}

// NewPageRenderer gibt einen einsatzbereiten PageRenderer zurück. Ein leerer Katalog ist ein Konfigurationsfehler.
func NewPageRenderer(assets repository.AssetRepository, configs []domain.ErrorConfig, rnd *rand.Rand, logger *zap.Logger) (*PageRenderer, error) {
	if len(configs) == 0 {
		return nil, domain.ErrEmptyCatalog
	}
	own := make([]domain.ErrorConfig, len(configs))
	copy(own, configs)
	return &PageRenderer{assets: assets, configs: own, rnd: rnd, logger: logger}, nil
}

// SelectIndex wählt gleichverteilt einen Index aus [0, n). n muss positiv sein.
func SelectIndex(rnd *rand.Rand, n int) int {
	return rnd.IntN(n)
}

// Render wählt eine Fehlerkonfiguration, lädt das Template und füllt es aus.
func (s *PageRenderer) Render(ctx context.Context) (domain.Page, error) {
	cfg := s.configs[SelectIndex(s.rnd, len(s.configs))]

	tmpl, err := s.assets.Fetch(ctx, repository.PageTemplate)
	if err != nil {
		return domain.Page{}, fmt.Errorf("seiten-template laden: %w", err)
	}

	s.logger.Debug("fehlerseite gewählt",
		zap.Int("status", cfg.StatusCode),
		zap.String("theme", string(cfg.Theme)),
	)

	return domain.Page{
		Status:       cfg.StatusCode,
		CacheControl: pageCacheControl,
		Body:         []byte(FillTemplate(string(tmpl), cfg)),
		Config:       cfg,
	}, nil
}

// FillTemplate ersetzt alle Platzhalter in einem Durchgang und fügt das Theme-Skript
// vor dem ersten </body> ein; fehlt es, wird das Skript angehängt.
func FillTemplate(tmpl string, cfg domain.ErrorConfig) string {
	code := strconv.Itoa(cfg.StatusCode)
	filled := strings.NewReplacer(
		MarkerCode, code,
		MarkerMessage, cfg.Message,
		MarkerDescription, cfg.Description,
		MarkerTitle, code+" - "+titleSuffix,
		MarkerStylesheet, StylesheetURL(cfg.Theme),
	).Replace(tmpl)

	script := strings.ReplaceAll(themeScript, "{{THEME}}", string(cfg.Theme))
	if i := strings.Index(filled, BodyClose); i >= 0 {
		return filled[:i] + script + filled[i:]
	}
	return filled + script
}

// StylesheetURL gibt den Pfad des Stylesheets für theme zurück.
func StylesheetURL(theme domain.Theme) string {
	return "/style.css?theme=" + string(theme)
}
