package product

import (
	"context"

	"almacen/internal/domain/criteria"
)

// Repository defines persistence operations for products.
type Repository interface {
	Create(ctx context.Context, p *Product) (*Product, error)
	GetByID(ctx context.Context, id int64) (*Product, error)
	Search(ctx context.Context, sc SearchCriteria, page criteria.Page) (criteria.Result[Product], error)
	Update(ctx context.Context, p *Product) error
	Delete(ctx context.Context, id int64) error

	// GetForUpdate locks the product row for the duration of the
	// surrounding transaction.
	GetForUpdate(ctx context.Context, id int64) (*Product, error)

	// SetUnits stores a new stock level for a locked product.
	SetUnits(ctx context.Context, id int64, units int64) error
}
