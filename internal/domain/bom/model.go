// Package bom maintains the bill of materials: how much of each raw
// material one unit of a product consumes.
package bom

import (
	"time"

	"almacen/internal/core/types"
)

// Entry links a product to one of its raw materials.
type Entry struct {
	ProductID  int64          `db:"product_id" json:"product_id"`
	MaterialID int64          `db:"material_id" json:"material_id"`
	PerUnitQty types.Quantity `db:"per_unit_qty" json:"per_unit_qty"`

	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// SetInput holds one entry of a product recipe.
type SetInput struct {
	MaterialID int64
	PerUnitQty types.Quantity
}
