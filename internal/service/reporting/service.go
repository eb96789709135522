package reporting

import (
	"context"
	"time"

	"go.uber.org/zap"

	"stocktake/internal/domain/models"
	"stocktake/internal/repository/mongodb"
)

// Service produces read-only rollups over the catalog and inventories
// and persists periodic dashboard snapshots. It never mutates products
// or inventories.
type Service struct {
	repo              mongodb.Repository
	lowStockThreshold float64
	logger            *zap.Logger
}

// NewService constructs the reporting service.
func NewService(repo mongodb.Repository, lowStockThreshold float64, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repo, lowStockThreshold: lowStockThreshold, logger: logger}
}

// DashboardView is the aggregate payload served to the dashboard.
type DashboardView struct {
	CategoryTotals []CategoryTotal `json:"categoryTotals"`
	StoreGroups    []StoreGroup    `json:"storeGroups"`
	StoreNames     []string        `json:"storeNames"`
}

// Dashboard recomputes all rollups from current data.
func (s *Service) Dashboard(ctx context.Context) (*DashboardView, error) {
	products, err := s.repo.ListProducts(ctx)
	if err != nil {
		return nil, err
	}
	inventories, err := s.repo.ListInventories(ctx)
	if err != nil {
		return nil, err
	}

	return &DashboardView{
		CategoryTotals: CategoryTotals(products),
		StoreGroups:    StoreGroups(inventories),
		StoreNames:     StoreNames(inventories),
	}, nil
}

// LowStock returns the products at or below the configured threshold.
func (s *Service) LowStock(products []models.Product) []models.Product {
	low := []models.Product{}
	for _, p := range products {
		if p.CurrentQuantity <= s.lowStockThreshold {
			low = append(low, p)
		}
	}
	return low
}

// Snapshot computes the category totals and low-stock list and persists
// them as a dashboard snapshot document.
func (s *Service) Snapshot(ctx context.Context) (*models.DashboardSnapshot, []models.Product, error) {
	products, err := s.repo.ListProducts(ctx)
	if err != nil {
		return nil, nil, err
	}

	totals := CategoryTotals(products)
	low := s.LowStock(products)

	snapshot := &models.DashboardSnapshot{
		Date:      models.DateOnly(time.Now()),
		CreatedAt: time.Now().UTC(),
	}
	for _, t := range totals {
		snapshot.CategoryTotals = append(snapshot.CategoryTotals, models.SnapshotCategoryTotal{
			Category:      t.Category,
			TotalQuantity: t.TotalQuantity,
			Unit:          t.Unit,
		})
	}
	for _, p := range low {
		snapshot.LowStock = append(snapshot.LowStock, p.Name)
	}

	if err := s.repo.InsertSnapshot(ctx, snapshot); err != nil {
		return nil, nil, err
	}

	s.logger.Info("dashboard snapshot stored",
		zap.Int("categories", len(snapshot.CategoryTotals)),
		zap.Int("low_stock", len(snapshot.LowStock)))
	return snapshot, low, nil
}
