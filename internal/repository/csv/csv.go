package csv

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gocarina/gocsv"
	"go.uber.org/zap"

	"themed-error-pages/internal/domain"
)

// errorConfigDTO bildet eine Zeile der Katalogdatei ab.
type errorConfigDTO struct {
	Status      string `csv:"status" validate:"required,oneof=404 501 418"`
	Theme       string `csv:"theme" validate:"required,oneof=pink white pastel"`
	Message     string `csv:"message" validate:"required"`
	Description string `csv:"description" validate:"required"`
}

// ErrorConfigRepository implementiert repository.ErrorConfigRepository. Der Katalog wird
// einmalig geladen und danach nie verändert.
type ErrorConfigRepository struct {
	configs []domain.ErrorConfig
	logger  *zap.Logger
}

// NewErrorConfigRepository lädt den Katalog aus filePath. Jede ungültige Zeile
// und eine leere Datei führen zu einem Fehler.
func NewErrorConfigRepository(filePath string, logger *zap.Logger) (*ErrorConfigRepository, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("csv-katalog: datei lesen %s: %w", filePath, err)
	}

	configs, err := parseCatalog(data)
	if err != nil {
		return nil, fmt.Errorf("csv-katalog %s: %w", filePath, err)
	}

	logger.Info("fehlerkatalog aus CSV geladen",
		zap.Int("anzahl", len(configs)),
		zap.String("datei", filePath),
	)
	return &ErrorConfigRepository{configs: configs, logger: logger}, nil
}

// NewStaticErrorConfigRepository umhüllt einen bereits bekannten Katalog, z.B. domain.DefaultErrorConfigs().
func NewStaticErrorConfigRepository(configs []domain.ErrorConfig, logger *zap.Logger) (*ErrorConfigRepository, error) {
	if len(configs) == 0 {
		return nil, domain.ErrEmptyCatalog
	}
	out := make([]domain.ErrorConfig, len(configs))
	copy(out, configs)
	return &ErrorConfigRepository{configs: out, logger: logger}, nil
}

// parseCatalog dekodiert und validiert die CSV-Daten.
func parseCatalog(data []byte) ([]domain.ErrorConfig, error) {
	data = bytes.ReplaceAll(data, []byte("\r\n"), []byte("\n"))

	var rows []errorConfigDTO
	if err := gocsv.UnmarshalBytes(data, &rows); err != nil {
		if errors.Is(err, gocsv.ErrEmptyCSVFile) {
			return nil, domain.ErrEmptyCatalog
		}
		return nil, fmt.Errorf("csv dekodieren: %w", err)
	}
	if len(rows) == 0 {
		return nil, domain.ErrEmptyCatalog
	}

	validate := validator.New(validator.WithRequiredStructEnabled())
	configs := make([]domain.ErrorConfig, 0, len(rows))
	for i, row := range rows {
		cfg, err := toErrorConfig(validate, &row)
		if err != nil {
			// Zeile 1 ist die Kopfzeile.
			return nil, fmt.Errorf("zeile %d: %w", i+2, err)
		}
		configs = append(configs, cfg)
	}
	return configs, nil
}

// toErrorConfig normalisiert, validiert und konvertiert eine Katalogzeile.
func toErrorConfig(validate *validator.Validate, dto *errorConfigDTO) (domain.ErrorConfig, error) {
	dto.Status = strings.TrimSpace(dto.Status)
	dto.Theme = strings.ToLower(strings.TrimSpace(dto.Theme))
	dto.Message = strings.TrimSpace(dto.Message)
	dto.Description = strings.TrimSpace(dto.Description)

	if err := validate.Struct(dto); err != nil {
		return domain.ErrorConfig{}, fmt.Errorf("%s: %w", err.Error(), domain.ErrInvalidInput)
	}

	status, err := strconv.Atoi(dto.Status)
	if err != nil {
		return domain.ErrorConfig{}, fmt.Errorf("ungültiger status %q: %w", dto.Status, domain.ErrInvalidInput)
	}

	return domain.ErrorConfig{
		StatusCode:  status,
		Theme:       domain.Theme(dto.Theme),
		Message:     dto.Message,
		Description: dto.Description,
	}, nil
}

// All gibt eine Kopie des Katalogs zurück.
func (r *ErrorConfigRepository) All(_ context.Context) ([]domain.ErrorConfig, error) {
	out := make([]domain.ErrorConfig, len(r.configs))
	copy(out, r.configs)
	return out, nil
}
