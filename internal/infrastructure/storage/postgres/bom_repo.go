package postgres

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"almacen/internal/core/apperror"
	"almacen/internal/domain/bom"
)

const bomTable = "prd_bom_entry"

// BOMRepository implements bom.Repository on PostgreSQL.
type BOMRepository struct {
	txManager *TxManager
	builder   sq.StatementBuilderType
}

// NewBOMRepository creates a bill of materials repository.
func NewBOMRepository(txManager *TxManager) *BOMRepository {
	return &BOMRepository{
		txManager: txManager,
		builder:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (r *BOMRepository) EntriesForProduct(ctx context.Context, productID int64) ([]bom.Entry, error) {
	q := r.txManager.GetQuerier(ctx)

	query, args, err := r.builder.
		Select("product_id", "material_id", "per_unit_qty", "created_at", "updated_at").
		From(bomTable).
		Where(sq.Eq{"product_id": productID}).
		OrderBy("material_id ASC").
		ToSql()
	if err != nil {
		return nil, apperror.NewInternal(err)
	}

	var entries []bom.Entry
	if err := pgxscan.Select(ctx, q, &entries, query, args...); err != nil {
		return nil, translateError(err, "recipe", productID)
	}
	return entries, nil
}

func (r *BOMRepository) Upsert(ctx context.Context, e *bom.Entry) error {
	q := r.txManager.GetQuerier(ctx)

	query, args, err := r.builder.
		Insert(bomTable).
		Columns("product_id", "material_id", "per_unit_qty").
		Values(e.ProductID, e.MaterialID, e.PerUnitQty).
		Suffix("ON CONFLICT (product_id, material_id) DO UPDATE SET per_unit_qty = EXCLUDED.per_unit_qty, updated_at = now()").
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return apperror.NewInternal(err)
	}

	err = q.QueryRow(ctx, query, args...).Scan(&e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return translateError(err, "recipe entry", e.ProductID)
	}
	return nil
}

func (r *BOMRepository) Delete(ctx context.Context, productID, materialID int64) error {
	q := r.txManager.GetQuerier(ctx)

	query, args, err := r.builder.
		Delete(bomTable).
		Where(sq.Eq{"product_id": productID, "material_id": materialID}).
		ToSql()
	if err != nil {
		return apperror.NewInternal(err)
	}

	tag, err := q.Exec(ctx, query, args...)
	if err != nil {
		return translateError(err, "recipe entry", productID)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewNotFound("recipe entry", materialID)
	}
	return nil
}
