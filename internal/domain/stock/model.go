// Package stock implements atomic stock adjustments.
//
// Adjusting a product's stock and consuming its raw materials is one
// transaction: either the product gains units and every material loses
// its share, or nothing changes at all.
package stock

import (
	"almacen/internal/core/types"
)

// AdjustmentRequest asks for a change to a product's stock level.
//
// A positive delta produces units, consuming raw materials per the
// product's recipe. A negative delta withdraws units, returning the
// recipe materials to stock. Zero is rejected.
type AdjustmentRequest struct {
	ProductID int64
	Delta     int64

	// Locale selects the language for material names in responses
	// and shortage reports.
	Locale string

	// SkipMaterials bypasses the recipe entirely; only the product
	// stock changes. Must be requested explicitly.
	SkipMaterials bool
}

// Movement records the stock change of one material.
type Movement struct {
	MaterialID int64          `json:"material_id"`
	Name       string         `json:"name"`
	Consumed   types.Quantity `json:"consumed"` // negative when returned to stock
	Remaining  types.Quantity `json:"remaining"`
}

// AdjustmentResult reports a completed adjustment.
type AdjustmentResult struct {
	ProductID     int64      `json:"product_id"`
	PreviousUnits int64      `json:"previous_units"`
	NewUnits      int64      `json:"new_units"`
	Movements     []Movement `json:"movements"`
}

// Shortfall describes one material that blocks an adjustment.
// A rejected adjustment reports every shortfall, not just the first.
type Shortfall struct {
	MaterialID int64          `json:"material_id"`
	Name       string         `json:"name"`
	Required   types.Quantity `json:"required"`
	Available  types.Quantity `json:"available"`
}
