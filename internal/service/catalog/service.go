package catalog

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"stocktake/internal/domain/models"
	"stocktake/internal/repository/mongodb"
)

// Service owns the product catalog.
type Service struct {
	repo   mongodb.Repository
	logger *zap.Logger
}

// NewService constructs the catalog service.
func NewService(repo mongodb.Repository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repo, logger: logger}
}

// Create validates and stores a new product. Name, unit, category and
// location are required; classification defaults are not applied here
// because the API contract treats them as mandatory on create.
func (s *Service) Create(ctx context.Context, product *models.Product) (*models.Product, error) {
	if product.Category == "" || product.Location == "" {
		return nil, models.NewValidationError("name, unit, category, and location are required")
	}
	if err := product.Validate(); err != nil {
		return nil, err
	}
	product.ApplyDefaults()
	if product.QuantityHistory == nil {
		product.QuantityHistory = []models.QuantityHistoryEntry{}
	}
	now := time.Now().UTC()
	product.CreatedAt = now
	product.UpdatedAt = now

	created, err := s.repo.InsertProduct(ctx, product)
	if err != nil {
		return nil, err
	}
	s.logger.Info("product created",
		zap.String("product_id", created.ID.Hex()),
		zap.String("name", created.Name))
	return created, nil
}

// List returns all products, newest first.
func (s *Service) List(ctx context.Context) ([]models.Product, error) {
	return s.repo.ListProducts(ctx)
}

// Get loads one product by id.
func (s *Service) Get(ctx context.Context, id string) (*models.Product, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	return s.repo.FindProductByID(ctx, oid)
}

// Update applies an allow-listed patch. Patching currentQuantity here
// overwrites the running total without reconciliation; that bypass is
// part of the catalog contract.
func (s *Service) Update(ctx context.Context, id string, patch models.ProductPatch) (*models.Product, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	if err := patch.Validate(); err != nil {
		return nil, err
	}
	return s.repo.UpdateProduct(ctx, oid, patch)
}

// Delete removes a product. Inventory entries referencing it are
// orphaned; there is no cascade.
func (s *Service) Delete(ctx context.Context, id string) error {
	oid, err := parseID(id)
	if err != nil {
		return err
	}
	if err := s.repo.DeleteProduct(ctx, oid); err != nil {
		return err
	}
	s.logger.Info("product deleted", zap.String("product_id", id))
	return nil
}

// ImportResult summarizes a bulk import run.
type ImportResult struct {
	Created int
	Updated int
	Skipped int
}

// Import upserts products by name: rows matching an existing product
// update it, the rest create new products. Rows that fail validation
// are skipped with a warning rather than aborting the run.
func (s *Service) Import(ctx context.Context, rows []models.Product) (ImportResult, error) {
	var result ImportResult
	for i := range rows {
		row := rows[i]
		if row.Name == "" {
			s.logger.Warn("skipping import row without a name", zap.Int("row", i))
			result.Skipped++
			continue
		}
		row.ApplyDefaults()
		if err := row.Validate(); err != nil {
			s.logger.Warn("skipping invalid import row",
				zap.Int("row", i), zap.String("name", row.Name), zap.Error(err))
			result.Skipped++
			continue
		}

		existing, err := s.repo.FindProductByName(ctx, row.Name)
		switch {
		case err == nil:
			patch := models.ProductPatch{
				Unit:            &row.Unit,
				QuantityPerBox:  &row.QuantityPerBox,
				BoxUnit:         &row.BoxUnit,
				CurrentQuantity: &row.CurrentQuantity,
				Category:        &row.Category,
				Location:        &row.Location,
			}
			if _, err := s.repo.UpdateProduct(ctx, existing.ID, patch); err != nil {
				return result, err
			}
			result.Updated++
		case errors.Is(err, models.ErrNotFound):
			if _, err := s.Create(ctx, &row); err != nil {
				return result, err
			}
			result.Created++
		default:
			return result, err
		}
	}
	return result, nil
}

func parseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, models.NewValidationError("invalid product id %q", id)
	}
	return oid, nil
}
