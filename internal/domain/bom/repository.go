package bom

import "context"

// Repository defines persistence operations for bill of materials entries.
type Repository interface {
	// EntriesForProduct returns the recipe of a product ordered by
	// material id.
	EntriesForProduct(ctx context.Context, productID int64) ([]Entry, error)

	// Upsert inserts or replaces one recipe entry.
	Upsert(ctx context.Context, e *Entry) error

	// Delete removes one recipe entry.
	Delete(ctx context.Context, productID, materialID int64) error
}
