package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"themed-error-pages/internal/domain"
)

// AssetRepository implementiert repository.AssetRepository und legt Assets als BLOBs in SQLite ab.
type AssetRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewAssetRepository öffnet die SQLite-Datenbank unter dsn, erstellt das
// Schema und gibt ein einsatzbereites Repository zurück.
func NewAssetRepository(dsn string, logger *zap.Logger) (*AssetRepository, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlite öffnen: %w", err)
	}
	// :memory: existiert pro Verbindung; mit einer Verbindung bleibt der Inhalt erhalten.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite ping: %w", err)
	}

	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS assets (
			path       TEXT PRIMARY KEY,
			content    BLOB NOT NULL,
			updated_at TEXT NOT NULL
		)
	`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("tabelle erstellen: %w", err)
	}

	logger.Info("sqlite-asset-repository initialisiert", zap.String("dsn", dsn))
	return &AssetRepository{db: db, logger: logger}, nil
}

// Close schließt die zugrunde liegende Datenbankverbindung.
func (r *AssetRepository) Close() error {
	return r.db.Close()
}

// Fetch liest den Inhalt des Assets name.
func (r *AssetRepository) Fetch(ctx context.Context, name string) ([]byte, error) {
	key := normalize(name)

	var content []byte
	err := r.db.QueryRowContext(ctx, "SELECT content FROM assets WHERE path = ?", key).Scan(&content)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("asset %q: %w", key, domain.ErrAssetNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("abfrage asset %q: %w", key, err)
	}
	return content, nil
}

// Put legt das Asset name an oder überschreibt es.
func (r *AssetRepository) Put(ctx context.Context, name string, content []byte) error {
	key := normalize(name)
	if key == "" {
		return fmt.Errorf("leerer asset-name: %w", domain.ErrInvalidInput)
	}

	if _, err := r.db.ExecContext(ctx, `
		INSERT INTO assets (path, content, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(path) DO UPDATE SET content = excluded.content, updated_at = excluded.updated_at
	`, key, content, time.Now().UTC().Format(time.RFC3339)); err != nil {
		return fmt.Errorf("asset %q speichern: %w", key, err)
	}

	r.logger.Debug("asset gespeichert", zap.String("asset", key), zap.Int("bytes", len(content)))
	return nil
}

// List gibt die Namen aller gespeicherten Assets sortiert zurück.
func (r *AssetRepository) List(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT path FROM assets ORDER BY path")
	if err != nil {
		return nil, fmt.Errorf("abfrage: %w", err)
	}
	defer rows.Close()

	out := make([]string, 0)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("zeile lesen: %w", err)
		}
		out = append(out, name)
	}
	return out, rows.Err()
}

func normalize(name string) string {
	return strings.TrimPrefix(strings.TrimSpace(name), "/")
}
