package http

import (
	"context"
	"fmt"
	"io"
	stdhttp "net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"themed-error-pages/internal/domain"
)

// maxAssetSize begrenzt die Größe eines geladenen Assets auf 4 MegaByte
const maxAssetSize = 4 << 20

// AssetRepository implementiert repository.AssetRepository und lädt Assets relativ zu einem Origin per HTTP.
type AssetRepository struct {
	origin *url.URL
	client *stdhttp.Client
	logger *zap.Logger
}

// NewAssetRepository prüft origin und legt einen Client mit dem angegebenen Timeout an.
func NewAssetRepository(origin string, timeout time.Duration, logger *zap.Logger) (*AssetRepository, error) {
	u, err := url.Parse(origin)
	if err != nil {
		return nil, fmt.Errorf("origin %q: %w", origin, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" || u.Host == "" {
		return nil, fmt.Errorf("origin %q muss eine absolute http(s)-url sein: %w", origin, domain.ErrInvalidInput)
	}
	return &AssetRepository{
		origin: u,
		client: &stdhttp.Client{Timeout: timeout},
		logger: logger,
	}, nil
}

// Fetch lädt <origin>/<name>. Ein 404 wird als domain.ErrAssetNotFound gemeldet.
func (r *AssetRepository) Fetch(ctx context.Context, name string) ([]byte, error) {
	target := r.origin.JoinPath(strings.TrimPrefix(name, "/"))

	req, err := stdhttp.NewRequestWithContext(ctx, stdhttp.MethodGet, target.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("anfrage erstellen: %w", err)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("asset %q abrufen: %w", name, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == stdhttp.StatusNotFound:
		return nil, fmt.Errorf("asset %q: %w", name, domain.ErrAssetNotFound)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return nil, fmt.Errorf("asset %q: %s antwortet mit status %d", name, target, resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxAssetSize+1))
	if err != nil {
		return nil, fmt.Errorf("asset %q lesen: %w", name, err)
	}
	if len(data) > maxAssetSize {
		return nil, fmt.Errorf("asset %q größer als %d bytes", name, maxAssetSize)
	}
	r.logger.Debug("asset geladen", zap.String("url", target.String()), zap.Int("bytes", len(data)))
	return data, nil
}
