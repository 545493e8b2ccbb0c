package material

import (
	"context"

	"almacen/internal/core/types"
	"almacen/internal/domain/criteria"
)

// Repository defines persistence operations for materials.
type Repository interface {
	// Create inserts the material and its translations, returning the
	// assigned id.
	Create(ctx context.Context, m *Material, translations []Translation) (*Material, error)

	// GetByID returns the material without a resolved name.
	GetByID(ctx context.Context, id int64) (*Material, error)

	// GetTranslations returns every stored translation for the material.
	GetTranslations(ctx context.Context, id int64) ([]Translation, error)

	// Search returns one page of materials matching the criteria, with
	// names resolved for the criteria locale. Total count covers all pages.
	Search(ctx context.Context, sc SearchCriteria, page criteria.Page) (criteria.Result[Material], error)

	// Update overwrites mutable fields using optimistic locking and
	// upserts the given translations.
	Update(ctx context.Context, m *Material, translations []Translation) error

	// Delete removes the material and its translations.
	Delete(ctx context.Context, id int64) error

	// GetManyForUpdate locks the given materials in ascending id order
	// and returns them with names resolved for the locale. Missing ids
	// produce a not found error.
	GetManyForUpdate(ctx context.Context, ids []int64, locale string) ([]Material, error)

	// SetUnits stores a new stock level for a locked material.
	SetUnits(ctx context.Context, id int64, units types.Quantity) error
}
