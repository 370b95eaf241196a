package env

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"themed-error-pages/internal/domain"
	"themed-error-pages/internal/pastel"
)

var allKeys = []string{
	"PORT", "SERVER_ADDR", "METRICS_ADDR", "ASSET_SOURCE", "ASSET_DIR", "ASSET_ORIGIN", "ASSET_DB",
	"ASSET_TIMEOUT", "ERRORS_FILE", "RATE_LIMIT", "RANDOM_SEED", "PASTEL_SATURATION_MIN",
	"PASTEL_SATURATION_MAX", "LOG_LEVEL", "LOG_FORMAT",
}

// leereUmgebung setzt alle bekannten Variablen für die Dauer des Tests auf leer.
func leereUmgebung(t *testing.T) {
	t.Helper()
	for _, key := range allKeys {
		t.Setenv(key, "")
	}
}

func TestLoad_Standardwerte(t *testing.T) {
	leereUmgebung(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":3000", cfg.ServerAddr)
	assert.Empty(t, cfg.MetricsAddr)
	assert.Equal(t, "embed", cfg.AssetSource)
	assert.Equal(t, 5*time.Second, cfg.AssetTimeout)
	assert.Equal(t, 100.0, cfg.RateLimit)
	assert.False(t, cfg.Seeded)
	assert.Equal(t, pastel.DefaultRange, cfg.PastelRange())
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "auto", cfg.LogFormat)
}

func TestLoad_PortAlsFallback(t *testing.T) {
	leereUmgebung(t)
	t.Setenv("PORT", "8080")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.ServerAddr)

	t.Setenv("SERVER_ADDR", "127.0.0.1:9000")
	cfg, err = Load()
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:9000", cfg.ServerAddr)
}

func TestLoad_Ueberschreibungen(t *testing.T) {
	leereUmgebung(t)
	t.Setenv("ASSET_SOURCE", "http")
	t.Setenv("ASSET_ORIGIN", "https://assets.example.com")
	t.Setenv("ASSET_TIMEOUT", "750ms")
	t.Setenv("RANDOM_SEED", "42")
	t.Setenv("PASTEL_SATURATION_MIN", "25")
	t.Setenv("PASTEL_SATURATION_MAX", "55")
	t.Setenv("RATE_LIMIT", "2.5")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://assets.example.com", cfg.AssetOrigin)
	assert.Equal(t, 750*time.Millisecond, cfg.AssetTimeout)
	assert.True(t, cfg.Seeded)
	assert.Equal(t, uint64(42), cfg.RandomSeed)
	assert.Equal(t, 2.5, cfg.RateLimit)
	assert.Equal(t, pastel.Range{SatMin: 25, SatMax: 55, LightMin: 70, LightMax: 90}, cfg.PastelRange())
}

func TestLoad_UngueltigeWerte(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"unbekannte asset-quelle", map[string]string{"ASSET_SOURCE": "s3"}},
		{"http ohne origin", map[string]string{"ASSET_SOURCE": "http"}},
		{"origin keine url", map[string]string{"ASSET_SOURCE": "http", "ASSET_ORIGIN": "kein url"}},
		{"sättigung vertauscht", map[string]string{"PASTEL_SATURATION_MIN": "60", "PASTEL_SATURATION_MAX": "40"}},
		{"sättigung über 100", map[string]string{"PASTEL_SATURATION_MAX": "120"}},
		{"unbekanntes log-format", map[string]string{"LOG_FORMAT": "xml"}},
		{"negatives rate-limit", map[string]string{"RATE_LIMIT": "-1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			leereUmgebung(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := Load()
			require.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestMustLoad_PanikBeiFehler(t *testing.T) {
	leereUmgebung(t)
	t.Setenv("LOG_LEVEL", "laut")

	assert.Panics(t, func() { MustLoad() })
}
