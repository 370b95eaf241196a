package repository

import (
	"context"

	"themed-error-pages/internal/domain"
)

// Feste Namen der beiden Assets, die die Renderer benötigen.
const (
	PageTemplate   = "index.html"
	BaseStylesheet = "style.css"
)

// AssetRepository abstrahiert den Zugriff auf statische Assets.
// Fehlt ein Asset, wird ein Fehler zurückgegeben, der domain.ErrAssetNotFound umhüllt.
type AssetRepository interface {
	Fetch(ctx context.Context, name string) ([]byte, error)
}

// ErrorConfigRepository liefert den beim Start geladenen Fehlerkatalog
type ErrorConfigRepository interface {
	All(ctx context.Context) ([]domain.ErrorConfig, error)
}
