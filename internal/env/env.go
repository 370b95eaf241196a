package env

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"

	"themed-error-pages/internal/domain"
	"themed-error-pages/internal/pastel"
)

// Config enthält alle konfigurierbaren Werte der Anwendung, die über Umgebungsvariablen gesetzt werden können.
type Config struct {
	ServerAddr   string        `validate:"required"`                                   // SERVER_ADDR – Adresse des HTTP-Servers (Standard: ":" + PORT oder ":3000")
	MetricsAddr  string                                                                // METRICS_ADDR – Adresse des Metrik-Servers, leer = deaktiviert
	AssetSource  string        `validate:"oneof=embed dir http sqlite"`                // ASSET_SOURCE – "embed", "dir", "http" oder "sqlite" (Standard: "embed")
	AssetDir     string        `validate:"required_if=AssetSource dir"`                // ASSET_DIR – Verzeichnis, das über die eingebetteten Assets gelegt wird (Standard: "public")
	AssetOrigin  string        `validate:"required_if=AssetSource http,omitempty,url"` // ASSET_ORIGIN – Basis-URL für ASSET_SOURCE=http
	AssetDB      string        `validate:"required_if=AssetSource sqlite"`             // ASSET_DB – SQLite-Datei für ASSET_SOURCE=sqlite (Standard: "assets.db")
	AssetTimeout time.Duration `validate:"gt=0"`                                       // ASSET_TIMEOUT – Timeout für HTTP-Abrufe (Standard: 5s)
	ErrorsFile   string                                                                // ERRORS_FILE – optionaler CSV-Fehlerkatalog
	RateLimit    float64       `validate:"gt=0"`                                       // RATE_LIMIT – Erlaubte Anfragen pro Sekunde (Standard: 100)
	RandomSeed   uint64                                                                // RANDOM_SEED – fester Seed für reproduzierbare Auswahl
	Seeded       bool                                                                  // gesetzt, wenn RANDOM_SEED angegeben wurde
	SatMin       int           `validate:"gte=0,lte=100"`                              // PASTEL_SATURATION_MIN – untere Sättigungsgrenze (Standard: 30)
	SatMax       int           `validate:"gte=0,lte=100,gtefield=SatMin"`              // PASTEL_SATURATION_MAX – obere Sättigungsgrenze (Standard: 70)
	LogLevel     string        `validate:"oneof=debug info warn error"`                // LOG_LEVEL – (Standard: "info")
	LogFormat    string        `validate:"oneof=auto json console"`                    // LOG_FORMAT – "auto", "json" oder "console" (Standard: "auto")
}

// MustLoad liest die Konfiguration aus Umgebungsvariablen und bricht bei ungültigen Werten ab.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}

// Load liest und validiert die Konfiguration aus Umgebungsvariablen.
func Load() (Config, error) {
	defaultAddr := ":3000"
	if port := os.Getenv("PORT"); port != "" {
		defaultAddr = ":" + port
	}

	seed, seeded := getUint("RANDOM_SEED")

	cfg := Config{
		ServerAddr:   getOr("SERVER_ADDR", defaultAddr),
		MetricsAddr:  os.Getenv("METRICS_ADDR"),
		AssetSource:  getOr("ASSET_SOURCE", "embed"),
		AssetDir:     getOr("ASSET_DIR", "public"),
		AssetOrigin:  os.Getenv("ASSET_ORIGIN"),
		AssetDB:      getOr("ASSET_DB", "assets.db"),
		AssetTimeout: getDurationOr("ASSET_TIMEOUT", 5*time.Second),
		ErrorsFile:   os.Getenv("ERRORS_FILE"),
		RateLimit:    getFloatOr("RATE_LIMIT", 100),
		RandomSeed:   seed,
		Seeded:       seeded,
		SatMin:       getIntOr("PASTEL_SATURATION_MIN", pastel.DefaultRange.SatMin),
		SatMax:       getIntOr("PASTEL_SATURATION_MAX", pastel.DefaultRange.SatMax),
		LogLevel:     getOr("LOG_LEVEL", "info"),
		LogFormat:    getOr("LOG_FORMAT", "auto"),
	}

	if err := validator.New(validator.WithRequiredStructEnabled()).Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("konfiguration: %s: %w", err.Error(), domain.ErrInvalidInput)
	}
	return cfg, nil
}

// PastelRange gibt den konfigurierten Zufallsbereich für Pastelltöne zurück.
func (c Config) PastelRange() pastel.Range {
	rng := pastel.DefaultRange
	rng.SatMin = c.SatMin
	rng.SatMax = c.SatMax
	return rng
}

func getOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getIntOr(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getFloatOr(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func getDurationOr(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func getUint(key string) (uint64, bool) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseUint(v, 10, 64); err == nil {
			return n, true
		}
	}
	return 0, false
}
