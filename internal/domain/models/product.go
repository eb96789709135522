package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Unit enumerates how a product's stock is counted.
type Unit string

const (
	UnitBox      Unit = "box"
	UnitPiece    Unit = "unit"
	UnitKilogram Unit = "kilogram"
	UnitLiter    Unit = "liter"
	UnitBarrel   Unit = "barrel"
	UnitPacket   Unit = "packet"
)

// ContentUnit describes what one box or packet contains.
type ContentUnit string

const (
	ContentPiece    ContentUnit = "unit"
	ContentKilogram ContentUnit = "kilogram"
	ContentLiter    ContentUnit = "liter"
)

const (
	DefaultCategory = "Uncategorized"
	DefaultLocation = "Unspecified"

	// MaxNotesLength bounds free-text notes on inventory entries.
	MaxNotesLength = 500
)

// QuantityHistoryEntry records how much of a product was contributed by
// one store on one calendar day. Entries accumulate per (store, day)
// pair rather than being replaced.
type QuantityHistoryEntry struct {
	StoreName string    `bson:"storeName" json:"storeName"`
	Date      time.Time `bson:"date" json:"date"`
	Quantity  float64   `bson:"quantity" json:"quantity"`
}

// Product is a catalog entry. CurrentQuantity is the running total in
// base units and is maintained by the reconciliation engine; direct
// catalog updates overwrite it without reconciliation, which is the one
// sanctioned bypass.
type Product struct {
	ID              primitive.ObjectID     `bson:"_id,omitempty" json:"id"`
	Name            string                 `bson:"name" json:"name"`
	Unit            Unit                   `bson:"unit" json:"unit"`
	QuantityPerBox  float64                `bson:"quantityPerBox,omitempty" json:"quantityPerBox,omitempty"`
	BoxUnit         ContentUnit            `bson:"boxUnit,omitempty" json:"boxUnit,omitempty"`
	PacketQuantity  float64                `bson:"packetQuantity,omitempty" json:"packetQuantity,omitempty"`
	PacketUnit      ContentUnit            `bson:"packetUnit,omitempty" json:"packetUnit,omitempty"`
	CurrentQuantity float64                `bson:"currentQuantity" json:"currentQuantity"`
	QuantityHistory []QuantityHistoryEntry `bson:"quantityHistory" json:"quantityHistory"`
	Category        string                 `bson:"category" json:"category"`
	Location        string                 `bson:"location" json:"location"`
	StoreName       string                 `bson:"storeName,omitempty" json:"storeName,omitempty"`
	CreatedAt       time.Time              `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time              `bson:"updatedAt" json:"updatedAt"`
}

// ValidUnit reports whether u is one of the recognized stock units.
func ValidUnit(u Unit) bool {
	switch u {
	case UnitBox, UnitPiece, UnitKilogram, UnitLiter, UnitBarrel, UnitPacket:
		return true
	}
	return false
}

// ValidContentUnit reports whether u is a recognized box/packet content unit.
// The zero value is accepted; defaults are applied at creation time.
func ValidContentUnit(u ContentUnit) bool {
	switch u {
	case "", ContentPiece, ContentKilogram, ContentLiter:
		return true
	}
	return false
}

// ApplyDefaults fills the classification fields and content units that
// the catalog treats as always present.
func (p *Product) ApplyDefaults() {
	if p.Category == "" {
		p.Category = DefaultCategory
	}
	if p.Location == "" {
		p.Location = DefaultLocation
	}
	if p.Unit == UnitBox && p.BoxUnit == "" {
		p.BoxUnit = ContentPiece
	}
	if p.Unit == UnitPacket && p.PacketUnit == "" {
		p.PacketUnit = ContentPiece
	}
}

// Validate checks the catalog creation rules: required fields, unit
// enums, conditional box/packet metadata and non-negative quantities.
func (p *Product) Validate() error {
	if p.Name == "" {
		return NewValidationError("product name is required")
	}
	if p.Unit == "" {
		return NewValidationError("product unit is required")
	}
	if !ValidUnit(p.Unit) {
		return NewValidationError("unknown unit %q", p.Unit)
	}
	if !ValidContentUnit(p.BoxUnit) {
		return NewValidationError("unknown box unit %q", p.BoxUnit)
	}
	if !ValidContentUnit(p.PacketUnit) {
		return NewValidationError("unknown packet unit %q", p.PacketUnit)
	}
	if p.Unit == UnitBox && p.QuantityPerBox <= 0 {
		return NewValidationError("quantityPerBox must be positive when unit is box")
	}
	if p.Unit == UnitPacket && p.PacketQuantity <= 0 {
		return NewValidationError("packetQuantity must be positive when unit is packet")
	}
	if p.QuantityPerBox < 0 {
		return NewValidationError("quantityPerBox cannot be negative")
	}
	if p.PacketQuantity < 0 {
		return NewValidationError("packetQuantity cannot be negative")
	}
	if p.CurrentQuantity < 0 {
		return NewValidationError("currentQuantity cannot be negative")
	}
	return nil
}

// DisplayUnit resolves the unit shown next to the product's quantity:
// the box or packet content unit for compound products, the stock unit
// otherwise.
func (p *Product) DisplayUnit() string {
	switch p.Unit {
	case UnitBox:
		if p.BoxUnit != "" {
			return string(p.BoxUnit)
		}
		return string(ContentPiece)
	case UnitPacket:
		if p.PacketUnit != "" {
			return string(p.PacketUnit)
		}
		return string(ContentPiece)
	default:
		return string(p.Unit)
	}
}

// RecordHistory accumulates delta into the history entry matching the
// given store and calendar day, appending a new entry when none matches.
func (p *Product) RecordHistory(storeName string, date time.Time, delta float64) {
	for i := range p.QuantityHistory {
		h := &p.QuantityHistory[i]
		if h.StoreName == storeName && SameDay(h.Date, date) {
			h.Quantity += delta
			return
		}
	}
	p.QuantityHistory = append(p.QuantityHistory, QuantityHistoryEntry{
		StoreName: storeName,
		Date:      DateOnly(date),
		Quantity:  delta,
	})
}

// ValidateNotes enforces the single notes policy used on every path
// that writes entry notes: optional, at most MaxNotesLength characters.
func ValidateNotes(notes *string) error {
	if notes == nil {
		return nil
	}
	if len(*notes) > MaxNotesLength {
		return NewValidationError("notes cannot exceed %d characters", MaxNotesLength)
	}
	return nil
}

// DateOnly truncates t to UTC midnight.
func DateOnly(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// SameDay reports calendar-day equality in UTC.
func SameDay(a, b time.Time) bool {
	return DateOnly(a).Equal(DateOnly(b))
}
