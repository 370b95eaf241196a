package fs

import (
	"context"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"themed-error-pages/internal/domain"
	"themed-error-pages/internal/web"
)

func testLogger() *zap.Logger {
	l, _ := zap.NewDevelopment()
	return l
}

func TestFetch_EingebetteteAssets(t *testing.T) {
	repo := NewAssetRepository(web.FS(), testLogger())

	for _, name := range []string{"index.html", "/style.css"} {
		data, err := repo.Fetch(context.Background(), name)
		require.NoError(t, err, name)
		assert.NotEmpty(t, data)
	}
}

func TestFetch_FehlendesAsset(t *testing.T) {
	repo := NewAssetRepository(fstest.MapFS{}, testLogger())

	_, err := repo.Fetch(context.Background(), "index.html")
	require.ErrorIs(t, err, domain.ErrAssetNotFound)
}

func TestFetch_PfadAusserhalbWirdNormalisiert(t *testing.T) {
	repo := NewAssetRepository(fstest.MapFS{
		"style.css": {Data: []byte("body{}")},
	}, testLogger())

	data, err := repo.Fetch(context.Background(), "../../style.css")
	require.NoError(t, err)
	assert.Equal(t, "body{}", string(data))

	_, err = repo.Fetch(context.Background(), "")
	require.ErrorIs(t, err, domain.ErrAssetNotFound)
}

func TestFetch_AbgebrochenerKontext(t *testing.T) {
	repo := NewAssetRepository(web.FS(), testLogger())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := repo.Fetch(ctx, "index.html")
	require.ErrorIs(t, err, context.Canceled)
}

func TestOverlay_ObereEbeneGewinnt(t *testing.T) {
	upper := fstest.MapFS{"style.css": {Data: []byte("/* eigen */")}}
	lower := fstest.MapFS{
		"style.css":  {Data: []byte("/* standard */")},
		"index.html": {Data: []byte("<html></html>")},
	}
	repo := NewAssetRepository(Overlay(upper, lower), testLogger())

	css, err := repo.Fetch(context.Background(), "style.css")
	require.NoError(t, err)
	assert.Equal(t, "/* eigen */", string(css))

	html, err := repo.Fetch(context.Background(), "index.html")
	require.NoError(t, err)
	assert.Equal(t, "<html></html>", string(html))

	_, err = repo.Fetch(context.Background(), "robots.txt")
	require.ErrorIs(t, err, domain.ErrAssetNotFound)
}
