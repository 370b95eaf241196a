package main

import (
	"context"
	"fmt"
	"os"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"themed-error-pages/internal/domain"
	"themed-error-pages/internal/env"
	"themed-error-pages/internal/handler"
	"themed-error-pages/internal/metrics"
	"themed-error-pages/internal/randsrc"
	"themed-error-pages/internal/repository"
	csvrepo "themed-error-pages/internal/repository/csv"
	fsrepo "themed-error-pages/internal/repository/fs"
	httprepo "themed-error-pages/internal/repository/http"
	sqliterepo "themed-error-pages/internal/repository/sqlite"
	"themed-error-pages/internal/routes"
	"themed-error-pages/internal/service"
	"themed-error-pages/internal/web"
)

// initAssets erstellt je nach ASSET_SOURCE das passende AssetRepository.
// Die zurückgegebene cleanup-Funktion ist nie nil.
func initAssets(cfg env.Config, logger *zap.Logger) (repository.AssetRepository, func(), error) {
	noop := func() {}

	switch cfg.AssetSource {
	case "dir":
		return fsrepo.NewAssetRepository(fsrepo.Overlay(os.DirFS(cfg.AssetDir), web.FS()), logger), noop, nil

	case "http":
		repo, err := httprepo.NewAssetRepository(cfg.AssetOrigin, cfg.AssetTimeout, logger)
		if err != nil {
			return nil, noop, fmt.Errorf("http-asset-repository: %w", err)
		}
		return repo, noop, nil

	case "sqlite":
		repo, err := sqliterepo.NewAssetRepository(cfg.AssetDB, logger)
		if err != nil {
			return nil, noop, fmt.Errorf("sqlite-asset-repository: %w", err)
		}
		return repo, func() { _ = repo.Close() }, nil

	default:
		return fsrepo.NewAssetRepository(web.FS(), logger), noop, nil
	}
}

// loadCatalog lädt den Fehlerkatalog aus ERRORS_FILE oder verwendet den eingebauten.
func loadCatalog(ctx context.Context, cfg env.Config, logger *zap.Logger) ([]domain.ErrorConfig, error) {
	var (
		repo repository.ErrorConfigRepository
		err  error
	)
	if cfg.ErrorsFile != "" {
		repo, err = csvrepo.NewErrorConfigRepository(cfg.ErrorsFile, logger)
	} else {
		repo, err = csvrepo.NewStaticErrorConfigRepository(domain.DefaultErrorConfigs(), logger)
	}
	if err != nil {
		return nil, err
	}
	return repo.All(ctx)
}

// newRouter verdrahtet Renderer, Handler und Middleware zu einem fertigen Router.
func newRouter(cfg env.Config, assets repository.AssetRepository, configs []domain.ErrorConfig, m *metrics.Metrics, logger *zap.Logger) (*chi.Mux, error) {
	rnd := randsrc.New(cfg.RandomSeed, cfg.Seeded)

	pages, err := service.NewPageRenderer(assets, configs, rnd, logger)
	if err != nil {
		return nil, fmt.Errorf("seiten-renderer: %w", err)
	}
	styles := service.NewStylesheetRenderer(assets, rnd, cfg.PastelRange(), logger)
	h := handler.NewErrorPageHandler(pages, styles, m, logger)

	r := chi.NewRouter()
	routes.Setup(r, h, m, logger, cfg.RateLimit)
	return r, nil
}
