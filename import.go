package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"themed-error-pages/internal/repository"
	fsrepo "themed-error-pages/internal/repository/fs"
	sqliterepo "themed-error-pages/internal/repository/sqlite"
	"themed-error-pages/internal/web"
)

func newImportAssetsCmd() *cobra.Command {
	var from string

	cmd := &cobra.Command{
		Use:   "import-assets",
		Short: "Copy the page template and stylesheet into the SQLite asset store",
		Long: `import-assets writes index.html and style.css into the SQLite database named by
ASSET_DB. Without --from the embedded assets are imported; with --from the files
of that directory take precedence over the embedded ones.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := setup()
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			src := fsrepo.NewAssetRepository(web.FS(), logger)
			if from != "" {
				src = fsrepo.NewAssetRepository(fsrepo.Overlay(os.DirFS(from), web.FS()), logger)
			}

			dst, err := sqliterepo.NewAssetRepository(cfg.AssetDB, logger)
			if err != nil {
				return err
			}
			defer func() { _ = dst.Close() }()

			if err := importAssets(cmd.Context(), src, dst, cmd.OutOrStdout()); err != nil {
				logger.Error("import fehlgeschlagen", zap.Error(err))
				return err
			}
			logger.Info("assets importiert", zap.String("asset_db", cfg.AssetDB))
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "directory to import assets from (default: embedded assets)")
	return cmd
}

type assetWriter interface {
	Put(ctx context.Context, name string, content []byte) error
}

// importAssets kopiert Template und Stylesheet von src nach dst.
func importAssets(ctx context.Context, src repository.AssetRepository, dst assetWriter, out io.Writer) error {
	for _, name := range []string{repository.PageTemplate, repository.BaseStylesheet} {
		content, err := src.Fetch(ctx, name)
		if err != nil {
			return fmt.Errorf("%s lesen: %w", name, err)
		}
		if err := dst.Put(ctx, name, content); err != nil {
			return fmt.Errorf("%s schreiben: %w", name, err)
		}
		fmt.Fprintf(out, "importiert  %s (%d bytes)\n", name, len(content))
	}
	return nil
}
