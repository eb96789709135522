package inventory

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"stocktake/internal/domain/models"
	"stocktake/internal/repository/mongodb"
)

// Service owns inventory snapshots and the quantity reconciliation
// between inventory entries and product running totals.
type Service struct {
	repo   mongodb.Repository
	logger *zap.Logger
}

// NewService constructs the inventory service.
func NewService(repo mongodb.Repository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repo, logger: logger}
}

// AddOrIncrement adds delta to the inventory's entry for productID,
// appending a new entry when none exists, and increments the product's
// running quantity by the same delta. The contribution is also recorded
// in the product's per-(store, day) quantity history.
func (s *Service) AddOrIncrement(ctx context.Context, inventoryID, productID string, delta float64, notes *string) (*models.Inventory, error) {
	if delta < 0 {
		return nil, models.NewValidationError("quantity cannot be negative")
	}
	if err := models.ValidateNotes(notes); err != nil {
		return nil, err
	}

	inv, product, err := s.loadPair(ctx, inventoryID, productID)
	if err != nil {
		return nil, err
	}

	idx := inv.EntryIndex(product.ID)
	if idx >= 0 {
		inv.Products[idx].Quantity += delta
		if notes != nil {
			inv.Products[idx].Notes = *notes
		}
	} else {
		entry := models.InventoryEntry{ProductID: product.ID, Quantity: delta}
		if notes != nil {
			entry.Notes = *notes
		}
		inv.Products = append(inv.Products, entry)
	}

	product.CurrentQuantity += delta
	product.RecordHistory(inv.StoreName, inv.Date, delta)

	if err := s.repo.SaveReconciliation(ctx, inv, product, delta); err != nil {
		return nil, err
	}

	s.logger.Info("entry incremented",
		zap.String("inventory_id", inv.ID.Hex()),
		zap.String("product_id", product.ID.Hex()),
		zap.Float64("delta", delta))
	return inv, nil
}

// Replace sets the entry's quantity to newQuantity and adjusts the
// product's running total by the difference. The entry must already be
// tracked in the inventory; replacing an absent entry is NotFound, not
// an implicit insert.
func (s *Service) Replace(ctx context.Context, inventoryID, productID string, newQuantity float64, notes *string) (*models.Inventory, error) {
	if newQuantity < 0 {
		return nil, models.NewValidationError("quantity cannot be negative")
	}
	if err := models.ValidateNotes(notes); err != nil {
		return nil, err
	}

	inv, product, err := s.loadPair(ctx, inventoryID, productID)
	if err != nil {
		return nil, err
	}

	idx := inv.EntryIndex(product.ID)
	if idx < 0 {
		return nil, fmt.Errorf("product %s not tracked in inventory %s: %w",
			product.ID.Hex(), inv.ID.Hex(), models.ErrNotFound)
	}

	delta := newQuantity - inv.Products[idx].Quantity
	inv.Products[idx].Quantity = newQuantity
	if notes != nil {
		inv.Products[idx].Notes = *notes
	}
	product.CurrentQuantity += delta

	if err := s.repo.SaveReconciliation(ctx, inv, product, delta); err != nil {
		return nil, err
	}

	s.logger.Info("entry replaced",
		zap.String("inventory_id", inv.ID.Hex()),
		zap.String("product_id", product.ID.Hex()),
		zap.Float64("delta", delta))
	return inv, nil
}

// Remove deletes the entry for productID from the inventory's list.
// The product's currentQuantity is deliberately NOT decremented here:
// the tracked behavior has no compensating adjustment on removal, so a
// removed entry's contribution stays in the running total. Possibly a
// bug in the workflow this system tracks, kept until product decides
// otherwise.
func (s *Service) Remove(ctx context.Context, inventoryID, productID string) (*models.Inventory, error) {
	invID, err := parseID(inventoryID, "inventory")
	if err != nil {
		return nil, err
	}
	prodID, err := parseID(productID, "product")
	if err != nil {
		return nil, err
	}

	inv, err := s.repo.FindInventoryByID(ctx, invID)
	if err != nil {
		return nil, err
	}

	// Removing an absent entry is a no-op, matching delete idempotency
	// elsewhere in the API.
	inv.RemoveEntry(prodID)

	if err := s.repo.SaveInventoryEntries(ctx, inv); err != nil {
		return nil, err
	}

	s.logger.Info("entry removed",
		zap.String("inventory_id", inv.ID.Hex()),
		zap.String("product_id", prodID.Hex()))
	return inv, nil
}

// QuickAdd converts a (boxes/packets, extra units) pair into a base
// unit quantity for the product and feeds it through AddOrIncrement.
func (s *Service) QuickAdd(ctx context.Context, inventoryID, productID string, boxesOrPackets, extraUnits float64, notes *string) (*models.Inventory, error) {
	prodID, err := parseID(productID, "product")
	if err != nil {
		return nil, err
	}
	product, err := s.repo.FindProductByID(ctx, prodID)
	if err != nil {
		return nil, err
	}

	total, err := ConvertQuickAdd(product, boxesOrPackets, extraUnits)
	if err != nil {
		return nil, err
	}
	return s.AddOrIncrement(ctx, inventoryID, productID, total, notes)
}

// ConvertQuickAdd normalizes a quick-add input to base units. Box
// products multiply by quantityPerBox, packet products by
// packetQuantity; for everything else the box/packet count is ignored
// and only the extra units count. A negative result is rejected.
func ConvertQuickAdd(product *models.Product, boxesOrPackets, extraUnits float64) (float64, error) {
	var total float64
	switch product.Unit {
	case models.UnitBox:
		total = boxesOrPackets*product.QuantityPerBox + extraUnits
	case models.UnitPacket:
		total = boxesOrPackets*product.PacketQuantity + extraUnits
	default:
		total = extraUnits
	}
	if total < 0 {
		return 0, models.NewValidationError("quantity cannot be negative")
	}
	return total, nil
}

func (s *Service) loadPair(ctx context.Context, inventoryID, productID string) (*models.Inventory, *models.Product, error) {
	invID, err := parseID(inventoryID, "inventory")
	if err != nil {
		return nil, nil, err
	}
	prodID, err := parseID(productID, "product")
	if err != nil {
		return nil, nil, err
	}

	inv, err := s.repo.FindInventoryByID(ctx, invID)
	if err != nil {
		return nil, nil, err
	}
	product, err := s.repo.FindProductByID(ctx, prodID)
	if err != nil {
		return nil, nil, err
	}
	return inv, product, nil
}

func parseID(id, kind string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, models.NewValidationError("invalid %s id %q", kind, id)
	}
	return oid, nil
}
