package reporting

import (
	"testing"
	"time"

	"stocktake/internal/domain/models"
)

func sampleProducts() []models.Product {
	return []models.Product{
		{Name: "Red Wine", Unit: models.UnitBox, QuantityPerBox: 6, BoxUnit: models.ContentPiece, CurrentQuantity: 4, Category: "Drinks", Location: "Cellar"},
		{Name: "flour", Unit: models.UnitKilogram, CurrentQuantity: 25, Category: "Pantry", Location: "Shelf 1"},
		{Name: "Sparkling Water", Unit: models.UnitLiter, CurrentQuantity: 18, Category: "Drinks", Location: "Cellar"},
		{Name: "Sugar", Unit: models.UnitKilogram, CurrentQuantity: 10, Category: "Pantry", Location: "Shelf 2"},
	}
}

func TestCategoryTotals(t *testing.T) {
	totals := CategoryTotals(sampleProducts())

	if len(totals) != 2 {
		t.Fatalf("expected 2 categories, got %d", len(totals))
	}

	drinks := totals[0]
	if drinks.Category != "Drinks" {
		t.Fatalf("expected Drinks first, got %q", drinks.Category)
	}
	// 4 boxes * 6 per box + 18 liters.
	if drinks.TotalQuantity != 42 {
		t.Errorf("Drinks total = %v, want 42", drinks.TotalQuantity)
	}
	if got := totals[1].TotalQuantity; got != 35 {
		t.Errorf("Pantry total = %v, want 35", got)
	}

	// Display list preserves catalog input order.
	if drinks.Products[0].Name != "Red Wine" || drinks.Products[1].Name != "Sparkling Water" {
		t.Errorf("display order not preserved: %+v", []string{drinks.Products[0].Name, drinks.Products[1].Name})
	}
	// Mismatched units inside a category: last product wins the display unit.
	if drinks.Unit != string(models.UnitLiter) {
		t.Errorf("Drinks unit = %q, want %q", drinks.Unit, models.UnitLiter)
	}
}

func TestCategoryTotalsPermutationInvariant(t *testing.T) {
	products := sampleProducts()
	reversed := make([]models.Product, len(products))
	for i, p := range products {
		reversed[len(products)-1-i] = p
	}

	a := CategoryTotals(products)
	b := CategoryTotals(reversed)

	if len(a) != len(b) {
		t.Fatalf("group counts differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i].Category != b[i].Category || a[i].TotalQuantity != b[i].TotalQuantity {
			t.Errorf("group %d differs under permutation: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestSortProducts(t *testing.T) {
	products := sampleProducts()

	byName := SortProducts(products, SortProductsByName, true)
	if byName[0].Name != "flour" {
		t.Errorf("case-insensitive name sort should put %q first, got %q", "flour", byName[0].Name)
	}

	byQuantityDesc := SortProducts(products, SortProductsByQuantity, false)
	if byQuantityDesc[0].CurrentQuantity != 25 {
		t.Errorf("quantity desc should start at 25, got %v", byQuantityDesc[0].CurrentQuantity)
	}

	// Stability: equal categories keep their input order.
	byCategory := SortProducts(products, SortProductsByCategory, true)
	if byCategory[0].Name != "Red Wine" || byCategory[1].Name != "Sparkling Water" {
		t.Errorf("stable category sort broke input order: %q, %q", byCategory[0].Name, byCategory[1].Name)
	}

	// Input slice untouched.
	if products[0].Name != "Red Wine" {
		t.Errorf("sort mutated its input: %q", products[0].Name)
	}
}

func TestSortInventories(t *testing.T) {
	invs := []models.Inventory{
		{Name: "B", StoreName: "downtown", Date: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)},
		{Name: "a", StoreName: "Airport", Date: time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)},
	}

	byStore := SortInventories(invs, SortInventoriesByStore, true)
	if byStore[0].StoreName != "Airport" {
		t.Errorf("store sort: got %q first", byStore[0].StoreName)
	}

	byDateDesc := SortInventories(invs, SortInventoriesByDate, false)
	if !byDateDesc[0].Date.After(byDateDesc[1].Date) {
		t.Errorf("date desc sort out of order")
	}

	byName := SortInventories(invs, SortInventoriesByName, true)
	if byName[0].Name != "a" {
		t.Errorf("case-insensitive name sort: got %q first", byName[0].Name)
	}
}

func TestStoreGroupsAndNames(t *testing.T) {
	invs := []models.Inventory{
		{Name: "one", StoreName: "Downtown"},
		{Name: "two", StoreName: "Airport"},
		{Name: "three", StoreName: "Downtown"},
		{Name: "four", StoreName: ""},
	}

	groups := StoreGroups(invs)
	if len(groups) != 3 {
		t.Fatalf("expected 3 store groups, got %d", len(groups))
	}
	if groups[0].StoreName != "Downtown" || len(groups[0].Inventories) != 2 {
		t.Errorf("unexpected first group: %+v", groups[0])
	}

	names := StoreNames(invs)
	if len(names) != 2 || names[0] != "Downtown" || names[1] != "Airport" {
		t.Errorf("unexpected store names: %v", names)
	}
}

func TestFilterProducts(t *testing.T) {
	products := sampleProducts()

	if got := FilterProducts(products, "cellar"); len(got) != 2 {
		t.Errorf("location filter matched %d, want 2", len(got))
	}
	if got := FilterProducts(products, "PANTRY"); len(got) != 2 {
		t.Errorf("category filter matched %d, want 2", len(got))
	}
	if got := FilterProducts(products, "wine"); len(got) != 1 || got[0].Name != "Red Wine" {
		t.Errorf("name filter result: %+v", got)
	}
	if got := FilterProducts(products, ""); len(got) != len(products) {
		t.Errorf("empty query should keep everything")
	}
}
