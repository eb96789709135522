package inventory

import (
	"context"
	"time"

	"go.uber.org/zap"

	"stocktake/internal/domain/models"
)

// Create validates and stores a new inventory snapshot. The date is
// normalized to UTC midnight so history matching works on calendar days.
func (s *Service) Create(ctx context.Context, inv *models.Inventory) (*models.Inventory, error) {
	if err := inv.Validate(); err != nil {
		return nil, err
	}
	inv.Date = models.DateOnly(inv.Date)
	inv.CreatedAt = time.Now().UTC()
	if inv.Products == nil {
		inv.Products = []models.InventoryEntry{}
	}

	created, err := s.repo.InsertInventory(ctx, inv)
	if err != nil {
		return nil, err
	}
	s.logger.Info("inventory created",
		zap.String("inventory_id", created.ID.Hex()),
		zap.String("store", created.StoreName))
	return created, nil
}

// List returns all inventories, most recent date first.
func (s *Service) List(ctx context.Context) ([]models.Inventory, error) {
	return s.repo.ListInventories(ctx)
}

// Get loads one inventory by id.
func (s *Service) Get(ctx context.Context, id string) (*models.Inventory, error) {
	oid, err := parseID(id, "inventory")
	if err != nil {
		return nil, err
	}
	return s.repo.FindInventoryByID(ctx, oid)
}

// Update applies a header patch to an inventory.
func (s *Service) Update(ctx context.Context, id string, patch models.InventoryPatch) (*models.Inventory, error) {
	oid, err := parseID(id, "inventory")
	if err != nil {
		return nil, err
	}
	if err := patch.Validate(); err != nil {
		return nil, err
	}
	return s.repo.UpdateInventory(ctx, oid, patch)
}

// Delete removes an inventory. Product running totals contributed by
// its entries are not rolled back.
func (s *Service) Delete(ctx context.Context, id string) error {
	oid, err := parseID(id, "inventory")
	if err != nil {
		return err
	}
	if err := s.repo.DeleteInventory(ctx, oid); err != nil {
		return err
	}
	s.logger.Info("inventory deleted", zap.String("inventory_id", id))
	return nil
}
