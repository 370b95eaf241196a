package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"themed-error-pages/internal/domain"
	"themed-error-pages/internal/repository"
	"themed-error-pages/internal/service"
)

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Verify that the configured assets and error catalog are usable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := setup()
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			assets, cleanup, err := initAssets(cfg, logger)
			if err != nil {
				return err
			}
			defer cleanup()

			configs, err := loadCatalog(cmd.Context(), cfg, logger)
			if err != nil {
				return err
			}

			if err := checkAssets(cmd.Context(), assets, cmd.OutOrStdout()); err != nil {
				logger.Error("asset-prüfung fehlgeschlagen", zap.Error(err))
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "ok  %d fehlerkonfigurationen\n", len(configs))
			return nil
		},
	}
}

// checkAssets prüft, ob Template und Stylesheet vorhanden sind und alle nötigen
// Platzhalter enthalten. Ein fehlendes </body> ist nur eine Warnung. Alle Mängel werden gesammelt zurückgegeben.
func checkAssets(ctx context.Context, assets repository.AssetRepository, out io.Writer) error {
	var errs []error

	tmpl, err := assets.Fetch(ctx, repository.PageTemplate)
	if err != nil {
		errs = append(errs, fmt.Errorf("%s: %w", repository.PageTemplate, err))
	} else {
		before := len(errs)
		for _, marker := range service.PageMarkers {
			if !strings.Contains(string(tmpl), marker) {
				errs = append(errs, fmt.Errorf("%s: %s fehlt: %w", repository.PageTemplate, marker, domain.ErrInvalidInput))
			}
		}
		if !strings.Contains(string(tmpl), service.BodyClose) {
			fmt.Fprintf(out, "warn %s: %s fehlt, theme-skript wird angehängt\n", repository.PageTemplate, service.BodyClose)
		}
		if len(errs) == before {
			fmt.Fprintf(out, "ok  %s (%d bytes)\n", repository.PageTemplate, len(tmpl))
		}
	}

	css, err := assets.Fetch(ctx, repository.BaseStylesheet)
	if err != nil {
		errs = append(errs, fmt.Errorf("%s: %w", repository.BaseStylesheet, err))
	} else if !strings.Contains(string(css), service.PastelSelector) {
		errs = append(errs, fmt.Errorf("%s: %s fehlt: %w", repository.BaseStylesheet, service.PastelSelector, domain.ErrInvalidInput))
	} else {
		fmt.Fprintf(out, "ok  %s (%d bytes)\n", repository.BaseStylesheet, len(css))
	}

	return errors.Join(errs...)
}
