package reporting

import (
	"sort"
	"strings"

	"stocktake/internal/domain/models"
)

// CategoryTotal is one per-category rollup for dashboard display.
// Products preserves the input ordering of the catalog list.
type CategoryTotal struct {
	Category      string           `json:"category"`
	TotalQuantity float64          `json:"totalQuantity"`
	Unit          string           `json:"unit"`
	Products      []models.Product `json:"products"`
}

// StoreGroup collects the inventories recorded for one store, in input
// order. Groups appear in first-appearance order of the store name.
type StoreGroup struct {
	StoreName   string             `json:"storeName"`
	Inventories []models.Inventory `json:"inventories"`
}

// CategoryTotals groups products by category and totals their
// quantities. Box products contribute currentQuantity*quantityPerBox
// in their box content unit; everything else contributes
// currentQuantity as-is. Categories holding products with mismatched
// display units keep the last product's unit; no cross-unit conversion
// is attempted. Groups are returned sorted by category name so the
// result does not depend on input permutation.
func CategoryTotals(products []models.Product) []CategoryTotal {
	byCategory := make(map[string]*CategoryTotal)
	for _, p := range products {
		group, ok := byCategory[p.Category]
		if !ok {
			group = &CategoryTotal{Category: p.Category}
			byCategory[p.Category] = group
		}

		if p.Unit == models.UnitBox {
			group.TotalQuantity += p.CurrentQuantity * p.QuantityPerBox
		} else {
			group.TotalQuantity += p.CurrentQuantity
		}
		group.Unit = p.DisplayUnit()
		group.Products = append(group.Products, p)
	}

	totals := make([]CategoryTotal, 0, len(byCategory))
	for _, group := range byCategory {
		totals = append(totals, *group)
	}
	sort.Slice(totals, func(i, j int) bool {
		return totals[i].Category < totals[j].Category
	})
	return totals
}

// StoreGroups buckets inventories per store in first-appearance order.
func StoreGroups(inventories []models.Inventory) []StoreGroup {
	index := make(map[string]int)
	groups := []StoreGroup{}
	for _, inv := range inventories {
		i, ok := index[inv.StoreName]
		if !ok {
			i = len(groups)
			index[inv.StoreName] = i
			groups = append(groups, StoreGroup{StoreName: inv.StoreName})
		}
		groups[i].Inventories = append(groups[i].Inventories, inv)
	}
	return groups
}

// StoreNames returns the unique store names across inventories in
// first-appearance order. It is recomputed on demand; there is no
// cached list to go stale.
func StoreNames(inventories []models.Inventory) []string {
	seen := make(map[string]bool)
	names := []string{}
	for _, inv := range inventories {
		if inv.StoreName == "" || seen[inv.StoreName] {
			continue
		}
		seen[inv.StoreName] = true
		names = append(names, inv.StoreName)
	}
	return names
}

// ProductSortField selects the product sort key.
type ProductSortField string

const (
	SortProductsByName     ProductSortField = "name"
	SortProductsByCategory ProductSortField = "category"
	SortProductsByLocation ProductSortField = "location"
	SortProductsByQuantity ProductSortField = "quantity"
)

// SortProducts returns a sorted copy of products. Text fields compare
// case-insensitively, quantity compares numerically; the sort is stable
// so equal keys keep their input order.
func SortProducts(products []models.Product, field ProductSortField, ascending bool) []models.Product {
	sorted := make([]models.Product, len(products))
	copy(sorted, products)

	sort.SliceStable(sorted, func(i, j int) bool {
		var less bool
		switch field {
		case SortProductsByCategory:
			less = lexLess(sorted[i].Category, sorted[j].Category)
		case SortProductsByLocation:
			less = lexLess(sorted[i].Location, sorted[j].Location)
		case SortProductsByQuantity:
			less = sorted[i].CurrentQuantity < sorted[j].CurrentQuantity
		default:
			less = lexLess(sorted[i].Name, sorted[j].Name)
		}
		if !ascending {
			return !less && !equalKey(sorted[i], sorted[j], field)
		}
		return less
	})
	return sorted
}

// InventorySortField selects the inventory sort key.
type InventorySortField string

const (
	SortInventoriesByStore InventorySortField = "store"
	SortInventoriesByDate  InventorySortField = "date"
	SortInventoriesByName  InventorySortField = "name"
)

// SortInventories returns a sorted copy of inventories.
func SortInventories(inventories []models.Inventory, field InventorySortField, ascending bool) []models.Inventory {
	sorted := make([]models.Inventory, len(inventories))
	copy(sorted, inventories)

	sort.SliceStable(sorted, func(i, j int) bool {
		var less, equal bool
		switch field {
		case SortInventoriesByStore:
			less = lexLess(sorted[i].StoreName, sorted[j].StoreName)
			equal = strings.EqualFold(sorted[i].StoreName, sorted[j].StoreName)
		case SortInventoriesByDate:
			less = sorted[i].Date.Before(sorted[j].Date)
			equal = sorted[i].Date.Equal(sorted[j].Date)
		default:
			less = lexLess(sorted[i].Name, sorted[j].Name)
			equal = strings.EqualFold(sorted[i].Name, sorted[j].Name)
		}
		if !ascending {
			return !less && !equal
		}
		return less
	})
	return sorted
}

// FilterProducts keeps products whose name, category or location
// contains the query, case-insensitively. An empty query keeps everything.
func FilterProducts(products []models.Product, query string) []models.Product {
	if query == "" {
		return products
	}
	q := strings.ToLower(query)
	filtered := []models.Product{}
	for _, p := range products {
		if strings.Contains(strings.ToLower(p.Name), q) ||
			strings.Contains(strings.ToLower(p.Category), q) ||
			strings.Contains(strings.ToLower(p.Location), q) {
			filtered = append(filtered, p)
		}
	}
	return filtered
}

func lexLess(a, b string) bool {
	return strings.ToLower(a) < strings.ToLower(b)
}

func equalKey(a, b models.Product, field ProductSortField) bool {
	switch field {
	case SortProductsByCategory:
		return strings.EqualFold(a.Category, b.Category)
	case SortProductsByLocation:
		return strings.EqualFold(a.Location, b.Location)
	case SortProductsByQuantity:
		return a.CurrentQuantity == b.CurrentQuantity
	default:
		return strings.EqualFold(a.Name, b.Name)
	}
}
