package reporting

import (
	"context"
	"errors"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"stocktake/internal/domain/models"
)

type fakeRepo struct {
	products     []models.Product
	inventories  []models.Inventory
	lastSnapshot *models.DashboardSnapshot
}

func (f *fakeRepo) ListProducts(context.Context) ([]models.Product, error) {
	return f.products, nil
}

func (f *fakeRepo) ListInventories(context.Context) ([]models.Inventory, error) {
	return f.inventories, nil
}

func (f *fakeRepo) InsertSnapshot(_ context.Context, s *models.DashboardSnapshot) error {
	f.lastSnapshot = s
	return nil
}

func (f *fakeRepo) InsertProduct(context.Context, *models.Product) (*models.Product, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeRepo) FindProductByID(context.Context, primitive.ObjectID) (*models.Product, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeRepo) FindProductByName(context.Context, string) (*models.Product, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeRepo) UpdateProduct(context.Context, primitive.ObjectID, models.ProductPatch) (*models.Product, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeRepo) DeleteProduct(context.Context, primitive.ObjectID) error {
	return errors.New("not implemented")
}

func (f *fakeRepo) InsertInventory(context.Context, *models.Inventory) (*models.Inventory, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeRepo) FindInventoryByID(context.Context, primitive.ObjectID) (*models.Inventory, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeRepo) UpdateInventory(context.Context, primitive.ObjectID, models.InventoryPatch) (*models.Inventory, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeRepo) DeleteInventory(context.Context, primitive.ObjectID) error {
	return errors.New("not implemented")
}

func (f *fakeRepo) SaveInventoryEntries(context.Context, *models.Inventory) error {
	return errors.New("not implemented")
}

func (f *fakeRepo) SaveReconciliation(context.Context, *models.Inventory, *models.Product, float64) error {
	return errors.New("not implemented")
}

func TestDashboard(t *testing.T) {
	repo := &fakeRepo{
		products: sampleProducts(),
		inventories: []models.Inventory{
			{Name: "one", StoreName: "Downtown"},
			{Name: "two", StoreName: "Airport"},
		},
	}
	svc := NewService(repo, 5, nil)

	view, err := svc.Dashboard(context.Background())
	if err != nil {
		t.Fatalf("Dashboard: %v", err)
	}
	if len(view.CategoryTotals) != 2 {
		t.Errorf("expected 2 category totals, got %d", len(view.CategoryTotals))
	}
	if len(view.StoreGroups) != 2 || len(view.StoreNames) != 2 {
		t.Errorf("unexpected store rollups: %+v", view)
	}
}

func TestSnapshotRecordsLowStock(t *testing.T) {
	repo := &fakeRepo{products: sampleProducts()}
	svc := NewService(repo, 5, nil)

	snapshot, low, err := svc.Snapshot(context.Background())
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}

	if repo.lastSnapshot != snapshot {
		t.Errorf("snapshot not persisted")
	}
	// Only Red Wine (4 boxes) is at or below threshold 5.
	if len(low) != 1 || low[0].Name != "Red Wine" {
		t.Errorf("low stock = %+v, want Red Wine only", low)
	}
	if len(snapshot.LowStock) != 1 || snapshot.LowStock[0] != "Red Wine" {
		t.Errorf("snapshot low stock = %v", snapshot.LowStock)
	}
	if len(snapshot.CategoryTotals) != 2 {
		t.Errorf("snapshot totals = %+v", snapshot.CategoryTotals)
	}
}
