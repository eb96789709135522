package models

import "time"

// SnapshotCategoryTotal is one category rollup line persisted with a
// dashboard snapshot.
type SnapshotCategoryTotal struct {
	Category      string  `bson:"category" json:"category"`
	TotalQuantity float64 `bson:"totalQuantity" json:"totalQuantity"`
	Unit          string  `bson:"unit" json:"unit"`
}

// DashboardSnapshot captures the aggregated catalog state at a point in
// time, written by the nightly snapshot job.
type DashboardSnapshot struct {
	Date           time.Time               `bson:"date" json:"date"`
	CategoryTotals []SnapshotCategoryTotal `bson:"categoryTotals" json:"categoryTotals"`
	LowStock       []string                `bson:"lowStock,omitempty" json:"lowStock,omitempty"`
	CreatedAt      time.Time               `bson:"createdAt" json:"createdAt"`
}
