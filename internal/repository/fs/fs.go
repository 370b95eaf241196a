package fs

import (
	"context"
	"errors"
	"fmt"
	iofs "io/fs"
	"path"
	"strings"

	"go.uber.org/zap"

	"themed-error-pages/internal/domain"
)

// AssetRepository implementiert repository.AssetRepository auf Basis eines io/fs.FS.
type AssetRepository struct {
	fsys   iofs.FS
	logger *zap.Logger
}

// NewAssetRepository legt ein Repository über fsys an.
func NewAssetRepository(fsys iofs.FS, logger *zap.Logger) *AssetRepository {
	return &AssetRepository{fsys: fsys, logger: logger}
}

// Fetch liest das Asset name. Führende Schrägstriche werden ignoriert.
func (r *AssetRepository) Fetch(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	clean := strings.TrimPrefix(path.Clean("/"+name), "/")
	if !iofs.ValidPath(clean) || clean == "." {
		return nil, fmt.Errorf("asset %q: %w", name, domain.ErrAssetNotFound)
	}

	data, err := iofs.ReadFile(r.fsys, clean)
	if errors.Is(err, iofs.ErrNotExist) {
		r.logger.Debug("asset nicht im dateisystem", zap.String("asset", clean))
		return nil, fmt.Errorf("asset %q: %w", clean, domain.ErrAssetNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("asset %q lesen: %w", clean, err)
	}
	return data, nil
}

type overlayFS struct{ layers []iofs.FS }

func (o *overlayFS) Open(name string) (iofs.File, error) {
	for _, layer := range o.layers {
		f, err := layer.Open(name)
		if err != nil {
			if errors.Is(err, iofs.ErrNotExist) {
				continue
			}
			return nil, err
		}
		return f, nil
	}
	return nil, &iofs.PathError{Op: "open", Path: name, Err: iofs.ErrNotExist}
}

// Overlay fasst mehrere Dateisysteme zusammen; die erste Ebene, die eine Datei enthält, gewinnt.
func Overlay(layers ...iofs.FS) iofs.FS {
	return &overlayFS{layers: layers}
}
