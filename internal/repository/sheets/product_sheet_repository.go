package sheets

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"stocktake/internal/config"
	"stocktake/internal/domain/models"
)

// Repository reads product rows from a spreadsheet for bulk catalog import.
type Repository interface {
	ReadProducts(ctx context.Context) ([]models.Product, error)
}

// GoogleSheetRepository implements Repository using the official Google
// Sheets API.
type GoogleSheetRepository struct {
	service       *sheetsapi.Service
	spreadsheetID string
	readRange     string
	logger        *zap.Logger
}

// NewGoogleSheetRepository builds a Google Sheets backed repository instance.
func NewGoogleSheetRepository(ctx context.Context, cfg config.SheetsConfig, logger *zap.Logger) (*GoogleSheetRepository, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	service, err := sheetsapi.NewService(ctx,
		option.WithCredentialsFile(cfg.CredentialsPath),
		option.WithScopes(sheetsapi.SpreadsheetsReadonlyScope))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize sheets client: %w", err)
	}

	return &GoogleSheetRepository{
		service:       service,
		spreadsheetID: cfg.SpreadsheetID,
		readRange:     cfg.ReadRange,
		logger:        logger,
	}, nil
}

// ReadProducts fetches the configured range and parses each data row
// into a product. The first row is treated as a header. Expected
// columns: name, unit, quantityPerBox, boxUnit, currentQuantity,
// category, location.
func (r *GoogleSheetRepository) ReadProducts(ctx context.Context) ([]models.Product, error) {
	resp, err := r.service.Spreadsheets.Values.Get(r.spreadsheetID, r.readRange).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("read range %s: %w", r.readRange, err)
	}

	products := []models.Product{}
	for i, row := range resp.Values {
		if i == 0 {
			continue
		}
		products = append(products, parseRow(row))
	}

	r.logger.Info("spreadsheet rows read",
		zap.String("range", r.readRange),
		zap.Int("rows", len(products)))
	return products, nil
}

func parseRow(row []interface{}) models.Product {
	product := models.Product{
		Name:            cellString(row, 0),
		Unit:            models.Unit(cellString(row, 1)),
		QuantityPerBox:  cellFloat(row, 2),
		BoxUnit:         models.ContentUnit(cellString(row, 3)),
		CurrentQuantity: cellFloat(row, 4),
		Category:        cellString(row, 5),
		Location:        cellString(row, 6),
	}
	if product.Unit == "" {
		product.Unit = models.UnitPiece
	}
	return product
}

func cellString(row []interface{}, idx int) string {
	if idx >= len(row) {
		return ""
	}
	s, _ := row[idx].(string)
	return strings.TrimSpace(s)
}

func cellFloat(row []interface{}, idx int) float64 {
	raw := cellString(row, idx)
	if raw == "" {
		return 0
	}
	value, err := strconv.ParseFloat(strings.ReplaceAll(raw, ",", "."), 64)
	if err != nil {
		return 0
	}
	return value
}
