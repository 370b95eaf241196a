package service

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"

	"go.uber.org/zap"

	"themed-error-pages/internal/domain"
	"themed-error-pages/internal/pastel"
	"themed-error-pages/internal/repository"
)

// PastelSelector leitet den Block ein, in den die generierten Farben eingefügt werden.
const PastelSelector = `[data-theme="pastel"] {`

const (
	staticCacheControl    = "public, max-age=3600"
	generatedCacheControl = "no-cache"
)

// StylesheetRenderer liefert das Basis-Stylesheet und ergänzt für die prozedurale Variante eine Zufallspalette.
type StylesheetRenderer struct {
	assets repository.AssetRepository
	rnd    *rand.Rand
	rng    pastel.Range
	logger *zap.Logger
}

// NewStylesheetRenderer gibt einen einsatzbereiten StylesheetRenderer zurück.
func NewStylesheetRenderer(assets repository.AssetRepository, rnd *rand.Rand, rng pastel.Range, logger *zap.Logger) *StylesheetRenderer {
	return &StylesheetRenderer{assets: assets, rnd: rnd, rng: rng, logger: logger}
}

// Render lädt das Basis-Stylesheet für theme. Unbekannte Varianten erhalten das Basis-Stylesheet unverändert.
func (s *StylesheetRenderer) Render(ctx context.Context, theme string) (domain.Stylesheet, error) {
	resolved, known := domain.ParseTheme(theme)
	if !known {
		s.logger.Debug("unbekannte variante angefragt", zap.String("theme", theme))
	}

	base, err := s.assets.Fetch(ctx, repository.BaseStylesheet)
	if err != nil {
		return domain.Stylesheet{}, fmt.Errorf("basis-stylesheet laden: %w", err)
	}

	if !resolved.Procedural() {
		return domain.Stylesheet{
			Theme:        resolved,
			CacheControl: staticCacheControl,
			Body:         base,
		}, nil
	}

	color := pastel.Random(s.rnd, s.rng)
	s.logger.Debug("pastellfarbe erzeugt", zap.Stringer("hsl", color))

	return domain.Stylesheet{
		Theme:        resolved,
		Generated:    true,
		CacheControl: generatedCacheControl,
		Body:         []byte(InjectPalette(string(base), PaletteDeclarations(color))),
	}, nil
}

// PaletteDeclarations erzeugt die CSS-Custom-Properties für eine Grundfarbe.
func PaletteDeclarations(c pastel.HSL) string {
	rgb := pastel.HSLToRGB(c)

	var b strings.Builder
	decl := func(name, value string) {
		fmt.Fprintf(&b, "\n    %s: %s;", name, value)
	}
	decl("--text", rgb.RGBA(0.85))
	decl("--text-muted", rgb.RGBA(0.5))
	decl("--text-bright", rgb.RGBA(0.95))
	decl("--card-bg", rgb.RGBA(0.1))
	decl("--card-hover", rgb.RGBA(0.15))
	decl("--border", rgb.RGBA(0.2))
	decl("--hover-border", rgb.RGBA(0.4))
	decl("--button-bg", rgb.RGBA(0.15))
	decl("--button-hover", rgb.RGBA(0.25))
	decl("--link-color", rgb.Hex())
	decl("--link-hover", rgb.RGBA(0.8))
	decl("--accent-soft", rgb.Lighten(0.35).Hex())
	decl("--notification-success-bg", "rgba(80, 250, 123, 0.8)")
	decl("--notification-error-bg", "rgba(255, 85, 85, 0.8)")
	decl("--notification-info-bg", rgb.RGBA(0.8))
	return b.String()
}

// InjectPalette fügt decls direkt hinter dem ersten PastelSelector ein. Fehlt der Block,
// wird ein vollständiger Block angehängt.
func InjectPalette(css, decls string) string {
	if i := strings.Index(css, PastelSelector); i >= 0 {
		at := i + len(PastelSelector)
		return css[:at] + decls + css[at:]
	}
	return css + "\n" + PastelSelector + decls + "\n}\n"
}
