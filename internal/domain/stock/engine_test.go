package stock

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"almacen/internal/core/apperror"
	"almacen/internal/core/types"
	"almacen/internal/domain/bom"
	"almacen/internal/domain/material"
	"almacen/internal/domain/product"
)

// serialTxManager serializes transactions with a mutex, standing in
// for database row locks.
type serialTxManager struct {
	mu sync.Mutex
}

func (m *serialTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return fn(ctx)
}

type fakeProductStore struct {
	products map[int64]*product.Product
}

func (s *fakeProductStore) GetForUpdate(_ context.Context, id int64) (*product.Product, error) {
	p, ok := s.products[id]
	if !ok {
		return nil, apperror.NewNotFound("product", id)
	}
	cp := *p
	return &cp, nil
}

func (s *fakeProductStore) SetUnits(_ context.Context, id int64, units int64) error {
	p, ok := s.products[id]
	if !ok {
		return apperror.NewNotFound("product", id)
	}
	p.Units = units
	return nil
}

type fakeMaterialStore struct {
	materials map[int64]*material.Material
}

func (s *fakeMaterialStore) GetManyForUpdate(_ context.Context, ids []int64, _ string) ([]material.Material, error) {
	out := make([]material.Material, 0, len(ids))
	for _, id := range ids {
		m, ok := s.materials[id]
		if !ok {
			return nil, apperror.NewNotFound("material", id)
		}
		out = append(out, *m)
	}
	return out, nil
}

func (s *fakeMaterialStore) SetUnits(_ context.Context, id int64, units types.Quantity) error {
	m, ok := s.materials[id]
	if !ok {
		return apperror.NewNotFound("material", id)
	}
	m.Units = units
	return nil
}

type fakeRecipeSource struct {
	entries map[int64][]bom.Entry
}

func (s *fakeRecipeSource) EntriesForProduct(_ context.Context, productID int64) ([]bom.Entry, error) {
	return s.entries[productID], nil
}

func qty(s string) types.Quantity {
	return types.MustQuantity(s)
}

func newFixture() (*Engine, *fakeProductStore, *fakeMaterialStore, *fakeRecipeSource) {
	products := &fakeProductStore{products: map[int64]*product.Product{
		1: {ID: 1, Name: "mesa", Units: 5},
	}}
	materials := &fakeMaterialStore{materials: map[int64]*material.Material{
		10: {ID: 10, Name: "madera", Units: qty("100")},
		20: {ID: 20, Name: "tornillos", Units: qty("40")},
	}}
	recipes := &fakeRecipeSource{entries: map[int64][]bom.Entry{
		1: {
			{ProductID: 1, MaterialID: 10, PerUnitQty: qty("4")},
			{ProductID: 1, MaterialID: 20, PerUnitQty: qty("8")},
		},
	}}
	engine := NewEngine(products, materials, recipes, &serialTxManager{})
	return engine, products, materials, recipes
}

func TestAdjust_ProductionConsumesMaterials(t *testing.T) {
	engine, products, materials, _ := newFixture()

	result, err := engine.Adjust(context.Background(), AdjustmentRequest{ProductID: 1, Delta: 3})
	require.NoError(t, err)

	assert.Equal(t, int64(5), result.PreviousUnits)
	assert.Equal(t, int64(8), result.NewUnits)
	assert.Equal(t, int64(8), products.products[1].Units)

	// 3 units * 4 per unit = 12 consumed, 100 - 12 = 88
	assert.True(t, materials.materials[10].Units.Equal(qty("88")))
	// 3 units * 8 per unit = 24 consumed, 40 - 24 = 16
	assert.True(t, materials.materials[20].Units.Equal(qty("16")))

	require.Len(t, result.Movements, 2)
	assert.Equal(t, int64(10), result.Movements[0].MaterialID)
	assert.True(t, result.Movements[0].Consumed.Equal(qty("12")))
	assert.True(t, result.Movements[1].Consumed.Equal(qty("24")))
}

func TestAdjust_ShortageReportsAllShortfallsAndWritesNothing(t *testing.T) {
	engine, products, materials, _ := newFixture()

	// 6 units need 24 of material 10 (have 100, fine) and 48 of
	// material 20 (have 40, short). Push material 10 down so both run
	// short: set it to 20.
	materials.materials[10].Units = qty("20")

	_, err := engine.Adjust(context.Background(), AdjustmentRequest{ProductID: 1, Delta: 6})
	require.Error(t, err)
	assert.True(t, apperror.IsInsufficientStock(err))

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	shortfalls, ok := appErr.Details["shortfalls"].([]Shortfall)
	require.True(t, ok)
	require.Len(t, shortfalls, 2)

	assert.Equal(t, int64(10), shortfalls[0].MaterialID)
	assert.True(t, shortfalls[0].Required.Equal(qty("24")))
	assert.True(t, shortfalls[0].Available.Equal(qty("20")))
	assert.Equal(t, int64(20), shortfalls[1].MaterialID)
	assert.True(t, shortfalls[1].Required.Equal(qty("48")))
	assert.True(t, shortfalls[1].Available.Equal(qty("40")))

	// Nothing changed.
	assert.Equal(t, int64(5), products.products[1].Units)
	assert.True(t, materials.materials[10].Units.Equal(qty("20")))
	assert.True(t, materials.materials[20].Units.Equal(qty("40")))
}

func TestAdjust_WithdrawalReturnsMaterials(t *testing.T) {
	engine, products, materials, _ := newFixture()

	result, err := engine.Adjust(context.Background(), AdjustmentRequest{ProductID: 1, Delta: -2})
	require.NoError(t, err)

	assert.Equal(t, int64(3), result.NewUnits)
	assert.Equal(t, int64(3), products.products[1].Units)

	// 2 units * 4 per unit = 8 returned, 100 + 8 = 108
	assert.True(t, materials.materials[10].Units.Equal(qty("108")))
	assert.True(t, materials.materials[20].Units.Equal(qty("56")))

	require.Len(t, result.Movements, 2)
	assert.True(t, result.Movements[0].Consumed.Equal(qty("-8")))
}

func TestAdjust_WithdrawalBelowZeroRefused(t *testing.T) {
	engine, products, materials, _ := newFixture()

	_, err := engine.Adjust(context.Background(), AdjustmentRequest{ProductID: 1, Delta: -6})
	require.Error(t, err)
	assert.True(t, apperror.IsInsufficientStock(err))

	assert.Equal(t, int64(5), products.products[1].Units)
	assert.True(t, materials.materials[10].Units.Equal(qty("100")))
}

func TestAdjust_ZeroDeltaRejected(t *testing.T) {
	engine, _, _, _ := newFixture()

	_, err := engine.Adjust(context.Background(), AdjustmentRequest{ProductID: 1, Delta: 0})
	require.Error(t, err)
	assert.True(t, apperror.IsValidation(err))
}

func TestAdjust_SkipMaterialsLeavesMaterialsAlone(t *testing.T) {
	engine, products, materials, _ := newFixture()

	result, err := engine.Adjust(context.Background(), AdjustmentRequest{ProductID: 1, Delta: 10, SkipMaterials: true})
	require.NoError(t, err)

	assert.Equal(t, int64(15), result.NewUnits)
	assert.Empty(t, result.Movements)
	assert.Equal(t, int64(15), products.products[1].Units)
	assert.True(t, materials.materials[10].Units.Equal(qty("100")))
	assert.True(t, materials.materials[20].Units.Equal(qty("40")))
}

func TestAdjust_NoRecipeMovesOnlyProduct(t *testing.T) {
	engine, products, _, recipes := newFixture()
	recipes.entries = map[int64][]bom.Entry{}

	result, err := engine.Adjust(context.Background(), AdjustmentRequest{ProductID: 1, Delta: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(7), result.NewUnits)
	assert.Empty(t, result.Movements)
	assert.Equal(t, int64(7), products.products[1].Units)
}

func TestAdjust_UnknownProduct(t *testing.T) {
	engine, _, _, _ := newFixture()

	_, err := engine.Adjust(context.Background(), AdjustmentRequest{ProductID: 99, Delta: 1})
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))
}

// With N concurrent single-unit productions and material for only K,
// exactly K must succeed and no balance may go negative.
func TestAdjust_ConcurrentAdmission(t *testing.T) {
	products := &fakeProductStore{products: map[int64]*product.Product{
		1: {ID: 1, Name: "silla", Units: 0},
	}}
	materials := &fakeMaterialStore{materials: map[int64]*material.Material{
		10: {ID: 10, Name: "madera", Units: qty("7")},
	}}
	recipes := &fakeRecipeSource{entries: map[int64][]bom.Entry{
		1: {{ProductID: 1, MaterialID: 10, PerUnitQty: qty("1")}},
	}}
	engine := NewEngine(products, materials, recipes, &serialTxManager{})

	const n = 25
	var wg sync.WaitGroup
	var successes int64
	var mu sync.Mutex

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := engine.Adjust(context.Background(), AdjustmentRequest{ProductID: 1, Delta: 1})
			if err == nil {
				mu.Lock()
				successes++
				mu.Unlock()
			} else {
				assert.True(t, apperror.IsInsufficientStock(err))
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(7), successes)
	assert.Equal(t, int64(7), products.products[1].Units)
	assert.True(t, materials.materials[10].Units.Equal(qty("0")))
	assert.False(t, materials.materials[10].Units.IsNegative())
}
