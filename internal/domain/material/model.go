// Package material implements the raw materials catalog.
// A material carries its price, available stock and unit of measure,
// plus a name translated into one or more locales.
package material

import (
	"time"

	"almacen/internal/core/types"
)

// DefaultLocale is the fallback locale for material names.
const DefaultLocale = "es"

// RequiredLocales must all be present when a material is created.
var RequiredLocales = []string{"es", "en", "gl"}

// Material is a raw material used to produce products.
type Material struct {
	ID      int64          `db:"id" json:"id"`
	Name    string         `db:"name" json:"name"`
	Price   types.Money    `db:"price" json:"price"`
	Units   types.Quantity `db:"units" json:"units"`
	Unit    string         `db:"unit_code" json:"unit"`
	Version int64          `db:"version" json:"version"`

	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// Translation is a localized name for a material.
type Translation struct {
	Locale string `db:"locale" json:"locale"`
	Name   string `db:"name" json:"name"`
}

// CreateInput holds the data needed to register a new material.
type CreateInput struct {
	Translations map[string]string // locale -> name, must cover RequiredLocales
	Price        types.Money
	Units        types.Quantity
	Unit         string
}

// UpdateInput holds a partial update. Nil fields are left untouched.
type UpdateInput struct {
	Translations map[string]string // merged with existing translations
	Price        *types.Money
	Units        *types.Quantity
	Unit         *string
	Version      int64
}

// SearchCriteria combines optional AND predicates for material search.
type SearchCriteria struct {
	ID        *int64
	Name      *string // case-insensitive substring against the locale name
	PriceFrom *types.Money
	PriceTo   *types.Money
	UnitsFrom *types.Quantity
	UnitsTo   *types.Quantity
	Locale    string // locale for name resolution, defaults to DefaultLocale
}
