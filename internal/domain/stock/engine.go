package stock

import (
	"context"
	"sort"

	"almacen/internal/core/apperror"
	"almacen/internal/core/tx"
	"almacen/internal/core/types"
	"almacen/internal/domain/bom"
	"almacen/internal/domain/material"
	"almacen/internal/domain/product"
	"almacen/pkg/logger"
)

// ProductStore is the slice of product persistence the engine needs.
type ProductStore interface {
	GetForUpdate(ctx context.Context, id int64) (*product.Product, error)
	SetUnits(ctx context.Context, id int64, units int64) error
}

// MaterialStore is the slice of material persistence the engine needs.
type MaterialStore interface {
	GetManyForUpdate(ctx context.Context, ids []int64, locale string) ([]material.Material, error)
	SetUnits(ctx context.Context, id int64, units types.Quantity) error
}

// RecipeSource provides the bill of materials for a product.
type RecipeSource interface {
	EntriesForProduct(ctx context.Context, productID int64) ([]bom.Entry, error)
}

// Engine performs atomic stock adjustments.
//
// All row locks are taken in a fixed order (product first, then
// materials by ascending id) so concurrent adjustments cannot deadlock.
type Engine struct {
	products  ProductStore
	materials MaterialStore
	recipes   RecipeSource
	txManager tx.Manager
}

// NewEngine creates a stock adjustment engine.
func NewEngine(products ProductStore, materials MaterialStore, recipes RecipeSource, txManager tx.Manager) *Engine {
	return &Engine{
		products:  products,
		materials: materials,
		recipes:   recipes,
		txManager: txManager,
	}
}

// Adjust applies one stock adjustment in a single transaction.
//
// On a material shortage nothing is written and the returned error
// carries the complete shortfall list.
func (e *Engine) Adjust(ctx context.Context, req AdjustmentRequest) (*AdjustmentResult, error) {
	if req.Delta == 0 {
		return nil, apperror.NewValidation("delta must not be zero")
	}

	var result *AdjustmentResult
	err := e.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		p, err := e.products.GetForUpdate(ctx, req.ProductID)
		if err != nil {
			return err
		}

		newUnits := p.Units + req.Delta
		if newUnits < 0 {
			return apperror.NewInsufficientStock("product stock would go negative").
				WithDetail("product_id", req.ProductID).
				WithDetail("requested", -req.Delta).
				WithDetail("available", p.Units)
		}

		var movements []Movement
		if !req.SkipMaterials {
			movements, err = e.moveMaterials(ctx, req)
			if err != nil {
				return err
			}
		}

		if err := e.products.SetUnits(ctx, req.ProductID, newUnits); err != nil {
			return err
		}

		result = &AdjustmentResult{
			ProductID:     req.ProductID,
			PreviousUnits: p.Units,
			NewUnits:      newUnits,
			Movements:     movements,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "stock adjusted",
		"product_id", req.ProductID,
		"delta", req.Delta,
		"new_units", result.NewUnits,
		"materials_moved", len(result.Movements),
	)
	return result, nil
}

// moveMaterials locks the recipe materials, verifies sufficiency and
// writes the new balances. Returns one movement per recipe entry.
func (e *Engine) moveMaterials(ctx context.Context, req AdjustmentRequest) ([]Movement, error) {
	entries, err := e.recipes.EntriesForProduct(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, nil
	}

	ids := make([]int64, 0, len(entries))
	perUnit := make(map[int64]types.Quantity, len(entries))
	for _, entry := range entries {
		ids = append(ids, entry.MaterialID)
		perUnit[entry.MaterialID] = entry.PerUnitQty
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	locked, err := e.materials.GetManyForUpdate(ctx, ids, req.Locale)
	if err != nil {
		return nil, err
	}

	deltaQty := types.NewQuantity(req.Delta)
	movements := make([]Movement, 0, len(locked))
	var shortfalls []Shortfall

	for _, m := range locked {
		consumed := perUnit[m.ID].Mul(deltaQty)
		remaining := m.Units.Sub(consumed)
		if remaining.IsNegative() {
			shortfalls = append(shortfalls, Shortfall{
				MaterialID: m.ID,
				Name:       m.Name,
				Required:   consumed,
				Available:  m.Units,
			})
			continue
		}
		movements = append(movements, Movement{
			MaterialID: m.ID,
			Name:       m.Name,
			Consumed:   consumed,
			Remaining:  remaining,
		})
	}

	if len(shortfalls) > 0 {
		return nil, apperror.NewInsufficientStock("insufficient material stock").
			WithDetail("product_id", req.ProductID).
			WithDetail("shortfalls", shortfalls)
	}

	for _, mv := range movements {
		if err := e.materials.SetUnits(ctx, mv.MaterialID, mv.Remaining); err != nil {
			return nil, err
		}
	}
	return movements, nil
}
