// Package product implements the finished products catalog.
package product

import (
	"time"

	"almacen/internal/core/types"
)

// Product is a sellable item assembled from raw materials.
type Product struct {
	ID      int64       `db:"id" json:"id"`
	Name    string      `db:"name" json:"name"`
	Price   types.Money `db:"price" json:"price"`
	Units   int64       `db:"units" json:"units"`
	Version int64       `db:"version" json:"version"`

	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// CreateInput holds the data needed to register a new product.
// Stock always starts at zero; units are gained through production.
type CreateInput struct {
	Name  string
	Price types.Money
}

// UpdateInput holds a partial update. Nil fields are left untouched.
// Units are deliberately absent; stock changes go through the stock
// adjustment flow.
type UpdateInput struct {
	Name    *string
	Price   *types.Money
	Version int64
}

// SearchCriteria combines optional AND predicates for product search.
type SearchCriteria struct {
	ID        *int64
	Name      *string // case-insensitive substring
	PriceFrom *types.Money
	PriceTo   *types.Money
	UnitsFrom *int64
	UnitsTo   *int64
}
