package domain

import "errors"

var (
	ErrAssetNotFound = errors.New("asset nicht gefunden")
	ErrEmptyCatalog  = errors.New("fehlerkatalog ist leer")
	ErrInvalidInput  = errors.New("ungültige eingabe")
)

// Theme benennt eine visuelle Variante von Seite und Stylesheet.
type Theme string

const (
	ThemePink   Theme = "pink"
	ThemeWhite  Theme = "white"
	ThemePastel Theme = "pastel"
)

// DefaultTheme wird verwendet, wenn keine oder eine unbekannte Variante angefragt wird.
const DefaultTheme = ThemePink

// ParseTheme meldet, ob s exakt eine bekannte Variante benennt. Groß- und Kleinschreibung
// zählt; ein leerer Wert ergibt DefaultTheme.
func ParseTheme(s string) (Theme, bool) {
	switch t := Theme(s); t {
	case "":
		return DefaultTheme, true
	case ThemePink, ThemeWhite, ThemePastel:
		return t, true
	default:
		return DefaultTheme, false
	}
}

// Procedural meldet, ob die Farben der Variante pro Anfrage neu berechnet werden.
func (t Theme) Procedural() bool {
	return t == ThemePastel
}

// ErrorConfig beschreibt eine mögliche Fehlerseite: Statuscode, Variante und Texte.
type ErrorConfig struct {
	StatusCode  int    `json:"status"`
	Theme       Theme  `json:"theme"`
	Message     string `json:"message"`
	Description string `json:"description"`
}

// AllowedStatusCodes enthält die Statuscodes, die eine Fehlerseite tragen darf.
var AllowedStatusCodes = []int{404, 501, 418}

const defaultDescription = "the subdomain you entered is not valid or doesn't exist </3"

// DefaultErrorConfigs gibt den eingebauten Fehlerkatalog zurück. Jeder Aufruf liefert eine neue Kopie.
func DefaultErrorConfigs() []ErrorConfig {
	return []ErrorConfig{
		{StatusCode: 404, Theme: ThemePink, Message: "invalid subdomain - this page doesn't exist", Description: defaultDescription},
		{StatusCode: 501, Theme: ThemeWhite, Message: "not implemented - feature unavailable", Description: defaultDescription},
		{StatusCode: 418, Theme: ThemePastel, Message: "i'm a teapot - cannot brew coffee", Description: defaultDescription},
	}
}

// Page ist eine fertig gerenderte Fehlerseite.
type Page struct {
	Status       int
	CacheControl string
	Body         []byte
	Config       ErrorConfig
}

// Stylesheet ist ein fertig gerendertes Stylesheet. Generated ist gesetzt,
// wenn der Inhalt pro Anfrage zufällig erzeugt wurde.
type Stylesheet struct {
	Theme        Theme
	Generated    bool
	CacheControl string
	Body         []byte
}
