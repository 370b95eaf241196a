package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"themed-error-pages/internal/env"
	"themed-error-pages/internal/logging"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// newRootCmd baut den Befehlsbaum. Ohne Unterbefehl wird der Server gestartet.
func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "errorpages",
		Short: "Serve randomized, themed error pages",
		Long: `errorpages answers every unmatched route with a randomly chosen error page
(404, 501 or 418) and serves a per-theme stylesheet with a procedurally
generated pastel palette.

Configuration is read from environment variables (SERVER_ADDR, ASSET_SOURCE, ...).`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	serve := newServeCmd()
	root.RunE = serve.RunE
	root.AddCommand(serve, newCheckCmd(), newImportAssetsCmd())
	return root
}

// setup lädt Konfiguration und Logger für einen Befehl.
func setup() (env.Config, *zap.Logger, error) {
	cfg, err := env.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return env.Config{}, nil, err
	}
	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return env.Config{}, nil, err
	}
	return cfg, logger, nil
}
