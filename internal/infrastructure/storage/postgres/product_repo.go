package postgres

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"almacen/internal/core/apperror"
	"almacen/internal/domain/criteria"
	"almacen/internal/domain/product"
)

const productTable = "cat_product"

// ProductRepository implements product.Repository on PostgreSQL.
type ProductRepository struct {
	txManager *TxManager
	builder   sq.StatementBuilderType
}

// NewProductRepository creates a product repository.
func NewProductRepository(txManager *TxManager) *ProductRepository {
	return &ProductRepository{
		txManager: txManager,
		builder:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (r *ProductRepository) Create(ctx context.Context, p *product.Product) (*product.Product, error) {
	q := r.txManager.GetQuerier(ctx)

	query, args, err := r.builder.
		Insert(productTable).
		Columns("name", "price", "units").
		Values(p.Name, p.Price, p.Units).
		Suffix("RETURNING id, version, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, apperror.NewInternal(err)
	}

	err = q.QueryRow(ctx, query, args...).
		Scan(&p.ID, &p.Version, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, translateError(err, "product", nil)
	}
	return p, nil
}

func (r *ProductRepository) GetByID(ctx context.Context, id int64) (*product.Product, error) {
	return r.get(ctx, id, false)
}

func (r *ProductRepository) GetForUpdate(ctx context.Context, id int64) (*product.Product, error) {
	return r.get(ctx, id, true)
}

func (r *ProductRepository) get(ctx context.Context, id int64, forUpdate bool) (*product.Product, error) {
	q := r.txManager.GetQuerier(ctx)

	sel := r.builder.
		Select("id", "name", "price", "units", "version", "created_at", "updated_at").
		From(productTable).
		Where(sq.Eq{"id": id})
	if forUpdate {
		sel = sel.Suffix("FOR UPDATE")
	}

	query, args, err := sel.ToSql()
	if err != nil {
		return nil, apperror.NewInternal(err)
	}

	var p product.Product
	if err := pgxscan.Get(ctx, q, &p, query, args...); err != nil {
		return nil, translateError(err, "product", id)
	}
	return &p, nil
}

func (r *ProductRepository) searchSelect(sc product.SearchCriteria) sq.SelectBuilder {
	sel := r.builder.
		Select("id", "name", "price", "units", "version", "created_at", "updated_at").
		From(productTable)

	if sc.ID != nil {
		sel = sel.Where(sq.Eq{"id": *sc.ID})
	}
	if sc.Name != nil && *sc.Name != "" {
		sel = sel.Where("name ILIKE ?", "%"+*sc.Name+"%")
	}
	if sc.PriceFrom != nil {
		sel = sel.Where(sq.GtOrEq{"price": *sc.PriceFrom})
	}
	if sc.PriceTo != nil {
		sel = sel.Where(sq.LtOrEq{"price": *sc.PriceTo})
	}
	if sc.UnitsFrom != nil {
		sel = sel.Where(sq.GtOrEq{"units": *sc.UnitsFrom})
	}
	if sc.UnitsTo != nil {
		sel = sel.Where(sq.LtOrEq{"units": *sc.UnitsTo})
	}
	return sel
}

func (r *ProductRepository) Search(ctx context.Context, sc product.SearchCriteria, page criteria.Page) (criteria.Result[product.Product], error) {
	q := r.txManager.GetQuerier(ctx)
	result := criteria.Result[product.Product]{Page: page}

	countQuery, countArgs, err := r.builder.
		Select("COUNT(*)").
		FromSelect(r.searchSelect(sc), "sub").
		ToSql()
	if err != nil {
		return result, apperror.NewInternal(err)
	}
	if err := pgxscan.Get(ctx, q, &result.TotalCount, countQuery, countArgs...); err != nil {
		return result, translateError(err, "product", nil)
	}

	query, args, err := r.searchSelect(sc).
		OrderBy("id ASC").
		Limit(uint64(page.Size)).
		Offset(uint64(page.Offset())).
		ToSql()
	if err != nil {
		return result, apperror.NewInternal(err)
	}

	result.Items = []product.Product{}
	if err := pgxscan.Select(ctx, q, &result.Items, query, args...); err != nil {
		return result, translateError(err, "product", nil)
	}
	return result, nil
}

func (r *ProductRepository) Update(ctx context.Context, p *product.Product) error {
	q := r.txManager.GetQuerier(ctx)

	query, args, err := r.builder.
		Update(productTable).
		Set("name", p.Name).
		Set("price", p.Price).
		Set("version", sq.Expr("version + 1")).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": p.ID, "version": p.Version}).
		ToSql()
	if err != nil {
		return apperror.NewInternal(err)
	}

	tag, err := q.Exec(ctx, query, args...)
	if err != nil {
		return translateError(err, "product", p.ID)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewConcurrentModification("product", p.ID)
	}
	p.Version++
	return nil
}

func (r *ProductRepository) Delete(ctx context.Context, id int64) error {
	q := r.txManager.GetQuerier(ctx)

	query, args, err := r.builder.
		Delete(productTable).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return apperror.NewInternal(err)
	}

	tag, err := q.Exec(ctx, query, args...)
	if err != nil {
		return translateError(err, "product", id)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewNotFound("product", id)
	}
	return nil
}

func (r *ProductRepository) SetUnits(ctx context.Context, id int64, units int64) error {
	q := r.txManager.GetQuerier(ctx)

	query, args, err := r.builder.
		Update(productTable).
		Set("units", units).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return apperror.NewInternal(err)
	}

	tag, err := q.Exec(ctx, query, args...)
	if err != nil {
		return translateError(err, "product", id)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewNotFound("product", id)
	}
	return nil
}
