package postgres

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"almacen/internal/core/types"
	"almacen/internal/domain/material"
	"almacen/internal/domain/product"
	"almacen/internal/domain/user"
)

func TestProductSearchSelect(t *testing.T) {
	repo := NewProductRepository(nil)

	t.Run("no criteria", func(t *testing.T) {
		sql, args, err := repo.searchSelect(product.SearchCriteria{}).ToSql()
		require.NoError(t, err)
		assert.Equal(t, "SELECT id, name, price, units, version, created_at, updated_at FROM cat_product", sql)
		assert.Empty(t, args)
	})

	t.Run("name substring is case-insensitive", func(t *testing.T) {
		name := "mesa"
		sql, args, err := repo.searchSelect(product.SearchCriteria{Name: &name}).ToSql()
		require.NoError(t, err)
		assert.Contains(t, sql, "name ILIKE $1")
		assert.Equal(t, []any{"%mesa%"}, args)
	})

	t.Run("all criteria combine with AND", func(t *testing.T) {
		id := int64(3)
		name := "mesa"
		priceFrom := types.MustMoney("1.50")
		priceTo := types.MustMoney("9.99")
		unitsFrom := int64(1)
		unitsTo := int64(10)

		sql, args, err := repo.searchSelect(product.SearchCriteria{
			ID:        &id,
			Name:      &name,
			PriceFrom: &priceFrom,
			PriceTo:   &priceTo,
			UnitsFrom: &unitsFrom,
			UnitsTo:   &unitsTo,
		}).ToSql()
		require.NoError(t, err)

		assert.Contains(t, sql, "id = $")
		assert.Contains(t, sql, "name ILIKE $")
		assert.Contains(t, sql, "price >= $")
		assert.Contains(t, sql, "price <= $")
		assert.Contains(t, sql, "units >= $")
		assert.Contains(t, sql, "units <= $")
		assert.Equal(t, 5, strings.Count(sql, " AND "))
		assert.Len(t, args, 6)
	})

	t.Run("pagination clauses", func(t *testing.T) {
		sql, _, err := repo.searchSelect(product.SearchCriteria{}).
			OrderBy("id ASC").
			Limit(10).
			Offset(20).
			ToSql()
		require.NoError(t, err)
		assert.Contains(t, sql, "ORDER BY id ASC")
		assert.Contains(t, sql, "LIMIT 10")
		assert.Contains(t, sql, "OFFSET 20")
	})
}

func TestMaterialSearchSelect(t *testing.T) {
	repo := NewMaterialRepository(nil)

	t.Run("joins translations for requested and default locale", func(t *testing.T) {
		sql, args, err := repo.searchSelect(material.SearchCriteria{Locale: "gl_ES"}).ToSql()
		require.NoError(t, err)

		assert.Contains(t, sql, "LEFT JOIN mat_raw_material_i18n t ON t.material_id = m.id AND t.locale = $1")
		assert.Contains(t, sql, "LEFT JOIN mat_raw_material_i18n td ON td.material_id = m.id AND td.locale = $2")
		assert.Contains(t, sql, "COALESCE(t.name, td.name, '') AS name")
		require.Len(t, args, 2)
		assert.Equal(t, "gl", args[0])
		assert.Equal(t, "es", args[1])
	})

	t.Run("name predicate uses resolved name", func(t *testing.T) {
		name := "madera"
		sql, args, err := repo.searchSelect(material.SearchCriteria{Name: &name}).ToSql()
		require.NoError(t, err)
		assert.Contains(t, sql, "COALESCE(t.name, td.name, '') ILIKE $3")
		assert.Equal(t, "%madera%", args[2])
	})

	t.Run("range predicates", func(t *testing.T) {
		from := types.MustQuantity("5")
		to := types.MustQuantity("50")
		sql, args, err := repo.searchSelect(material.SearchCriteria{UnitsFrom: &from, UnitsTo: &to}).ToSql()
		require.NoError(t, err)
		assert.Contains(t, sql, "m.units >= $")
		assert.Contains(t, sql, "m.units <= $")
		assert.Len(t, args, 4)
	})
}

func TestMaterialLockQuery(t *testing.T) {
	repo := NewMaterialRepository(nil)

	query, args, err := repo.builder.
		Select("m.id").
		From(materialTable + " m").
		Where("m.id = ANY($1)").
		OrderBy("m.id ASC").
		Suffix("FOR UPDATE OF m").
		ToSql()
	require.NoError(t, err)
	assert.Contains(t, query, "ORDER BY m.id ASC FOR UPDATE OF m")
	assert.Empty(t, args)
}

func TestUserSearchSelect(t *testing.T) {
	repo := NewUserRepository(nil)

	username := "mar"
	roleID := int64(2)
	sql, args, err := repo.searchSelect(user.SearchCriteria{Username: &username, RoleID: &roleID}).ToSql()
	require.NoError(t, err)

	assert.Contains(t, sql, "username ILIKE $1")
	assert.Contains(t, sql, "role_id = $2")
	assert.NotContains(t, sql, "password_hash ILIKE")
	assert.Equal(t, []any{"%mar%", int64(2)}, args)
}
