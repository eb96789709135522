package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// InventoryEntry tracks one product's absolute quantity inside an
// inventory snapshot. ProductID is unique within one inventory's list;
// updates modify the entry in place rather than appending duplicates.
type InventoryEntry struct {
	ProductID primitive.ObjectID `bson:"productId" json:"productId"`
	Quantity  float64            `bson:"quantity" json:"quantity"`
	Notes     string             `bson:"notes,omitempty" json:"notes,omitempty"`
}

// Inventory is a named per-store snapshot holding product quantities
// recorded on one calendar date.
type Inventory struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	StoreName   string             `bson:"storeName,omitempty" json:"storeName,omitempty"`
	Date        time.Time          `bson:"date" json:"date"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Products    []InventoryEntry   `bson:"products" json:"products"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
}

// Validate checks the inventory creation rules.
func (inv *Inventory) Validate() error {
	if inv.Name == "" {
		return NewValidationError("inventory name is required")
	}
	if inv.Date.IsZero() {
		return NewValidationError("inventory date is required")
	}
	for _, entry := range inv.Products {
		if entry.Quantity < 0 {
			return NewValidationError("entry quantity cannot be negative")
		}
	}
	return nil
}

// EntryIndex returns the position of the entry for productID, or -1.
func (inv *Inventory) EntryIndex(productID primitive.ObjectID) int {
	for i := range inv.Products {
		if inv.Products[i].ProductID == productID {
			return i
		}
	}
	return -1
}

// RemoveEntry drops the entry for productID from the list, reporting
// whether an entry was present. Removal never compensates the product's
// running quantity; that asymmetry is part of the tracked behavior.
func (inv *Inventory) RemoveEntry(productID primitive.ObjectID) bool {
	idx := inv.EntryIndex(productID)
	if idx < 0 {
		return false
	}
	inv.Products = append(inv.Products[:idx], inv.Products[idx+1:]...)
	return true
}
