package postgres

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"almacen/internal/core/apperror"
	"almacen/internal/core/types"
	"almacen/internal/domain/criteria"
	"almacen/internal/domain/i18n"
	"almacen/internal/domain/material"
)

const (
	materialTable     = "mat_raw_material"
	materialI18nTable = "mat_raw_material_i18n"
)

// MaterialRepository implements material.Repository on PostgreSQL.
type MaterialRepository struct {
	txManager *TxManager
	builder   sq.StatementBuilderType
}

// NewMaterialRepository creates a material repository.
func NewMaterialRepository(txManager *TxManager) *MaterialRepository {
	return &MaterialRepository{
		txManager: txManager,
		builder:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (r *MaterialRepository) Create(ctx context.Context, m *material.Material, translations []material.Translation) (*material.Material, error) {
	q := r.txManager.GetQuerier(ctx)

	query, args, err := r.builder.
		Insert(materialTable).
		Columns("price", "units", "unit_code").
		Values(m.Price, m.Units, m.Unit).
		Suffix("RETURNING id, version, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, apperror.NewInternal(err)
	}

	err = q.QueryRow(ctx, query, args...).
		Scan(&m.ID, &m.Version, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return nil, translateError(err, "material", nil)
	}

	for _, t := range translations {
		if err := r.upsertTranslation(ctx, m.ID, t); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (r *MaterialRepository) GetByID(ctx context.Context, id int64) (*material.Material, error) {
	q := r.txManager.GetQuerier(ctx)

	query, args, err := r.builder.
		Select("id", "price", "units", "unit_code", "version", "created_at", "updated_at").
		From(materialTable).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, apperror.NewInternal(err)
	}

	var m material.Material
	if err := pgxscan.Get(ctx, q, &m, query, args...); err != nil {
		return nil, translateError(err, "material", id)
	}
	return &m, nil
}

func (r *MaterialRepository) GetTranslations(ctx context.Context, id int64) ([]material.Translation, error) {
	q := r.txManager.GetQuerier(ctx)

	query, args, err := r.builder.
		Select("locale", "name").
		From(materialI18nTable).
		Where(sq.Eq{"material_id": id}).
		OrderBy("locale").
		ToSql()
	if err != nil {
		return nil, apperror.NewInternal(err)
	}

	var translations []material.Translation
	if err := pgxscan.Select(ctx, q, &translations, query, args...); err != nil {
		return nil, translateError(err, "material", id)
	}
	return translations, nil
}

// searchSelect builds the filtered select shared by Search and its
// count query. Names come from the requested locale with a fallback
// to the default locale.
func (r *MaterialRepository) searchSelect(sc material.SearchCriteria) sq.SelectBuilder {
	locale := i18n.Normalize(sc.Locale)

	sel := r.builder.
		Select(
			"m.id",
			"COALESCE(t.name, td.name, '') AS name",
			"m.price",
			"m.units",
			"m.unit_code",
			"m.version",
			"m.created_at",
			"m.updated_at",
		).
		From(materialTable + " m").
		LeftJoin(materialI18nTable+" t ON t.material_id = m.id AND t.locale = ?", locale).
		LeftJoin(materialI18nTable+" td ON td.material_id = m.id AND td.locale = ?", material.DefaultLocale)

	if sc.ID != nil {
		sel = sel.Where(sq.Eq{"m.id": *sc.ID})
	}
	if sc.Name != nil && *sc.Name != "" {
		sel = sel.Where("COALESCE(t.name, td.name, '') ILIKE ?", "%"+*sc.Name+"%")
	}
	if sc.PriceFrom != nil {
		sel = sel.Where(sq.GtOrEq{"m.price": *sc.PriceFrom})
	}
	if sc.PriceTo != nil {
		sel = sel.Where(sq.LtOrEq{"m.price": *sc.PriceTo})
	}
	if sc.UnitsFrom != nil {
		sel = sel.Where(sq.GtOrEq{"m.units": *sc.UnitsFrom})
	}
	if sc.UnitsTo != nil {
		sel = sel.Where(sq.LtOrEq{"m.units": *sc.UnitsTo})
	}
	return sel
}

func (r *MaterialRepository) Search(ctx context.Context, sc material.SearchCriteria, page criteria.Page) (criteria.Result[material.Material], error) {
	q := r.txManager.GetQuerier(ctx)
	result := criteria.Result[material.Material]{Page: page}

	countQuery, countArgs, err := r.builder.
		Select("COUNT(*)").
		FromSelect(r.searchSelect(sc), "sub").
		ToSql()
	if err != nil {
		return result, apperror.NewInternal(err)
	}
	if err := pgxscan.Get(ctx, q, &result.TotalCount, countQuery, countArgs...); err != nil {
		return result, translateError(err, "material", nil)
	}

	query, args, err := r.searchSelect(sc).
		OrderBy("m.id ASC").
		Limit(uint64(page.Size)).
		Offset(uint64(page.Offset())).
		ToSql()
	if err != nil {
		return result, apperror.NewInternal(err)
	}

	result.Items = []material.Material{}
	if err := pgxscan.Select(ctx, q, &result.Items, query, args...); err != nil {
		return result, translateError(err, "material", nil)
	}
	return result, nil
}

func (r *MaterialRepository) Update(ctx context.Context, m *material.Material, translations []material.Translation) error {
	q := r.txManager.GetQuerier(ctx)

	query, args, err := r.builder.
		Update(materialTable).
		Set("price", m.Price).
		Set("units", m.Units).
		Set("unit_code", m.Unit).
		Set("version", sq.Expr("version + 1")).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": m.ID, "version": m.Version}).
		ToSql()
	if err != nil {
		return apperror.NewInternal(err)
	}

	tag, err := q.Exec(ctx, query, args...)
	if err != nil {
		return translateError(err, "material", m.ID)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewConcurrentModification("material", m.ID)
	}
	m.Version++

	for _, t := range translations {
		if err := r.upsertTranslation(ctx, m.ID, t); err != nil {
			return err
		}
	}
	return nil
}

func (r *MaterialRepository) upsertTranslation(ctx context.Context, materialID int64, t material.Translation) error {
	q := r.txManager.GetQuerier(ctx)

	query, args, err := r.builder.
		Insert(materialI18nTable).
		Columns("material_id", "locale", "name").
		Values(materialID, t.Locale, t.Name).
		Suffix("ON CONFLICT (material_id, locale) DO UPDATE SET name = EXCLUDED.name").
		ToSql()
	if err != nil {
		return apperror.NewInternal(err)
	}
	if _, err := q.Exec(ctx, query, args...); err != nil {
		return translateError(err, "material", materialID)
	}
	return nil
}

func (r *MaterialRepository) Delete(ctx context.Context, id int64) error {
	q := r.txManager.GetQuerier(ctx)

	query, args, err := r.builder.
		Delete(materialTable).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return apperror.NewInternal(err)
	}

	tag, err := q.Exec(ctx, query, args...)
	if err != nil {
		return translateError(err, "material", id)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewNotFound("material", id)
	}
	return nil
}

func (r *MaterialRepository) GetManyForUpdate(ctx context.Context, ids []int64, locale string) ([]material.Material, error) {
	q := r.txManager.GetQuerier(ctx)
	loc := i18n.Normalize(locale)

	query, args, err := r.builder.
		Select(
			"m.id",
			"COALESCE(t.name, td.name, '') AS name",
			"m.price",
			"m.units",
			"m.unit_code",
			"m.version",
			"m.created_at",
			"m.updated_at",
		).
		From(materialTable + " m").
		LeftJoin(materialI18nTable+" t ON t.material_id = m.id AND t.locale = ?", loc).
		LeftJoin(materialI18nTable+" td ON td.material_id = m.id AND td.locale = ?", material.DefaultLocale).
		Where(sq.Expr("m.id = ANY(?)", ids)).
		OrderBy("m.id ASC").
		Suffix("FOR UPDATE OF m").
		ToSql()
	if err != nil {
		return nil, apperror.NewInternal(err)
	}

	var materials []material.Material
	if err := pgxscan.Select(ctx, q, &materials, query, args...); err != nil {
		return nil, translateError(err, "material", nil)
	}

	if len(materials) != len(ids) {
		found := make(map[int64]bool, len(materials))
		for _, m := range materials {
			found[m.ID] = true
		}
		for _, id := range ids {
			if !found[id] {
				return nil, apperror.NewNotFound("material", id)
			}
		}
	}
	return materials, nil
}

func (r *MaterialRepository) SetUnits(ctx context.Context, id int64, units types.Quantity) error {
	q := r.txManager.GetQuerier(ctx)

	query, args, err := r.builder.
		Update(materialTable).
		Set("units", units).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return apperror.NewInternal(err)
	}

	tag, err := q.Exec(ctx, query, args...)
	if err != nil {
		return translateError(err, "material", id)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewNotFound("material", id)
	}
	return nil
}
