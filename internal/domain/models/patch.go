package models

import "time"

// ProductPatch is the allow-list of product fields a catalog update may
// touch. Nil fields are left unchanged. CurrentQuantity is included on
// purpose: direct catalog edits overwrite the running total without
// going through the reconciliation engine.
type ProductPatch struct {
	Name            *string      `json:"name,omitempty"`
	Unit            *Unit        `json:"unit,omitempty"`
	QuantityPerBox  *float64     `json:"quantityPerBox,omitempty"`
	BoxUnit         *ContentUnit `json:"boxUnit,omitempty"`
	PacketQuantity  *float64     `json:"packetQuantity,omitempty"`
	PacketUnit      *ContentUnit `json:"packetUnit,omitempty"`
	CurrentQuantity *float64     `json:"currentQuantity,omitempty"`
	Category        *string      `json:"category,omitempty"`
	Location        *string      `json:"location,omitempty"`
	StoreName       *string      `json:"storeName,omitempty"`
}

// Validate rejects patches that would put the product into an invalid
// state on their own: empty names, unknown enums, negative quantities.
func (p ProductPatch) Validate() error {
	if p.Name != nil && *p.Name == "" {
		return NewValidationError("product name cannot be empty")
	}
	if p.Unit != nil && !ValidUnit(*p.Unit) {
		return NewValidationError("unknown unit %q", *p.Unit)
	}
	if p.BoxUnit != nil && !ValidContentUnit(*p.BoxUnit) {
		return NewValidationError("unknown box unit %q", *p.BoxUnit)
	}
	if p.PacketUnit != nil && !ValidContentUnit(*p.PacketUnit) {
		return NewValidationError("unknown packet unit %q", *p.PacketUnit)
	}
	if p.QuantityPerBox != nil && *p.QuantityPerBox < 0 {
		return NewValidationError("quantityPerBox cannot be negative")
	}
	if p.PacketQuantity != nil && *p.PacketQuantity < 0 {
		return NewValidationError("packetQuantity cannot be negative")
	}
	if p.CurrentQuantity != nil && *p.CurrentQuantity < 0 {
		return NewValidationError("currentQuantity cannot be negative")
	}
	return nil
}

// IsEmpty reports whether the patch changes nothing.
func (p ProductPatch) IsEmpty() bool {
	return p.Name == nil && p.Unit == nil && p.QuantityPerBox == nil &&
		p.BoxUnit == nil && p.PacketQuantity == nil && p.PacketUnit == nil &&
		p.CurrentQuantity == nil && p.Category == nil && p.Location == nil &&
		p.StoreName == nil
}

// InventoryPatch is the allow-list of inventory header fields an update
// may touch. Entries are never patched through here; they go through
// the reconciliation engine.
type InventoryPatch struct {
	Name        *string    `json:"name,omitempty"`
	StoreName   *string    `json:"storeName,omitempty"`
	Date        *time.Time `json:"date,omitempty"`
	Description *string    `json:"description,omitempty"`
}

// Validate rejects patches with empty names or zero dates.
func (p InventoryPatch) Validate() error {
	if p.Name != nil && *p.Name == "" {
		return NewValidationError("inventory name cannot be empty")
	}
	if p.Date != nil && p.Date.IsZero() {
		return NewValidationError("inventory date cannot be empty")
	}
	return nil
}

// IsEmpty reports whether the patch changes nothing.
func (p InventoryPatch) IsEmpty() bool {
	return p.Name == nil && p.StoreName == nil && p.Date == nil && p.Description == nil
}
