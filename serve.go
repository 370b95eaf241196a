package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"themed-error-pages/internal/metrics"
)

const shutdownTimeout = 5 * time.Second

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the error page server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := setup()
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			logger.Info("konfiguration geladen",
				zap.String("server_addr", cfg.ServerAddr),
				zap.String("metrics_addr", cfg.MetricsAddr),
				zap.String("asset_source", cfg.AssetSource),
				zap.String("errors_file", cfg.ErrorsFile),
				zap.Float64("rate_limit", cfg.RateLimit),
				zap.Bool("seeded", cfg.Seeded),
			)

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			assets, cleanup, err := initAssets(cfg, logger)
			if err != nil {
				logger.Error("asset-repository konnte nicht initialisiert werden", zap.Error(err))
				return err
			}
			defer cleanup()

			configs, err := loadCatalog(ctx, cfg, logger)
			if err != nil {
				logger.Error("fehlerkatalog konnte nicht geladen werden", zap.Error(err))
				return err
			}

			m := metrics.New()
			r, err := newRouter(cfg, assets, configs, m, logger)
			if err != nil {
				logger.Error("router konnte nicht erstellt werden", zap.Error(err))
				return err
			}

			servers := []*http.Server{newServer(cfg.ServerAddr, r)}
			if cfg.MetricsAddr != "" {
				mr := chi.NewRouter()
				mr.Handle("/metrics", m.Handler())
				servers = append(servers, newServer(cfg.MetricsAddr, mr))
			}
			return run(ctx, servers, logger)
		},
	}
}

func newServer(addr string, h http.Handler) *http.Server {
	return &http.Server{
		Addr:         addr,
		Handler:      h,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}
}

// run startet alle Server und fährt sie herunter, sobald ctx beendet ist
// oder einer der Server mit einem Fehler abbricht.
func run(ctx context.Context, servers []*http.Server, logger *zap.Logger) error {
	g, gctx := errgroup.WithContext(ctx)

	for _, srv := range servers {
		g.Go(func() error {
			logger.Info("server wird gestartet", zap.String("adresse", srv.Addr))
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("listen", zap.String("adresse", srv.Addr), zap.Error(err))
				return err
			}
			return nil
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("server wird heruntergefahren")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		var errs []error
		for _, srv := range servers {
			if err := srv.Shutdown(shutdownCtx); err != nil {
				logger.Error("erzwungenes herunterfahren", zap.String("adresse", srv.Addr), zap.Error(err))
				errs = append(errs, err)
			}
		}
		return errors.Join(errs...)
	})

	if err := g.Wait(); err != nil {
		return err
	}
	logger.Info("server gestoppt")
	return nil
}
