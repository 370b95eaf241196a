package pastel

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/lucasb-eyer/go-colorful"
)

// HSL ist ein Farbwert im HSL-Raum. H in Grad [0,360), S und L in Prozent [0,100].
type HSL struct {
	H, S, L float64
}

// String formatiert die Farbe als CSS-Funktion hsl().
func (c HSL) String() string {
	return fmt.Sprintf("hsl(%g, %g%%, %g%%)", c.H, c.S, c.L)
}

// RGB ist ein Farbwert mit Kanälen im Bereich 0–255.
type RGB struct {
	R, G, B uint8
}

// Hex formatiert die Farbe als #rrggbb.
func (c RGB) Hex() string {
	return c.colorful().Hex()
}

// RGBA formatiert die Farbe als CSS-Funktion rgba() mit der angegebenen Deckkraft.
func (c RGB) RGBA(alpha float64) string {
	return fmt.Sprintf("rgba(%d, %d, %d, %g)", c.R, c.G, c.B, alpha)
}

// Lighten mischt die Farbe um den Anteil f (0–1) in Richtung Weiß.
func (c RGB) Lighten(f float64) RGB {
	f = math.Max(0, math.Min(1, f))
	r, g, b := c.colorful().BlendRgb(colorful.Color{R: 1, G: 1, B: 1}, f).Clamped().RGB255()
	return RGB{R: r, G: g, B: b}
}

func (c RGB) colorful() colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

// Range legt die Zufallsbereiche für Sättigung und Helligkeit fest (untere Grenze inklusive, obere exklusive).
type Range struct {
	SatMin, SatMax     int
	LightMin, LightMax int
}

// DefaultRange ergibt helle, mäßig gesättigte Pastelltöne.
var DefaultRange = Range{SatMin: 30, SatMax: 70, LightMin: 70, LightMax: 90}

// Random zieht einen Pastellton aus rnd. Alle Komponenten sind ganzzahlig.
func Random(rnd *rand.Rand, r Range) HSL {
	return HSL{
		H: float64(rnd.IntN(360)),
		S: float64(between(rnd, r.SatMin, r.SatMax)),
		L: float64(between(rnd, r.LightMin, r.LightMax)),
	}
}

func between(rnd *rand.Rand, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + rnd.IntN(hi-lo)
}

// HSLToRGB rechnet c über Chroma und Sextant nach RGB um.
// Der Farbton wird modulo 360 normalisiert, S und L werden auf [0,100] begrenzt.
func HSLToRGB(c HSL) RGB {
	h := math.Mod(c.H, 360)
	if h < 0 {
		h += 360
	}
	s := clamp01(c.S / 100)
	l := clamp01(c.L / 100)

	chroma := (1 - math.Abs(2*l-1)) * s
	x := chroma * (1 - math.Abs(math.Mod(h/60, 2)-1))
	m := l - chroma/2

	var r, g, b float64
	switch {
	case h < 60:
		r, g, b = chroma, x, 0
	case h < 120:
		r, g, b = x, chroma, 0
	case h < 180:
		r, g, b = 0, chroma, x
	case h < 240:
		r, g, b = 0, x, chroma
	case h < 300:
		r, g, b = x, 0, chroma
	default:
		r, g, b = chroma, 0, x
	}

	return RGB{R: channel(r + m), G: channel(g + m), B: channel(b + m)}
}

func channel(v float64) uint8 {
	return uint8(math.Max(0, math.Min(255, math.Round(v*255))))
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
