package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"almacen/internal/domain/product"
	"almacen/internal/domain/stock"
)

// CreateProductRequest registers a new product. Stock starts at zero.
type CreateProductRequest struct {
	Name  string          `json:"name" binding:"required"`
	Price decimal.Decimal `json:"price"`
}

// UpdateProductRequest is a partial update. Absent fields keep their
// current value. Units are not updatable here.
type UpdateProductRequest struct {
	Name    *string          `json:"name,omitempty"`
	Price   *decimal.Decimal `json:"price,omitempty"`
	Version int64            `json:"version"`
}

// UpdateStockRequest asks for a stock adjustment.
type UpdateStockRequest struct {
	Delta         int64  `json:"delta"`
	Locale        string `json:"locale"`
	SkipMaterials bool   `json:"skipMaterials"`
}

// ProductResponse is the API shape of a product.
type ProductResponse struct {
	ID        int64           `json:"id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Units     int64           `json:"units"`
	Version   int64           `json:"version"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// StockAdjustmentResponse reports a completed adjustment.
type StockAdjustmentResponse struct {
	ProductID     int64            `json:"product_id"`
	PreviousUnits int64            `json:"previous_units"`
	NewUnits      int64            `json:"new_units"`
	Movements     []stock.Movement `json:"movements"`
}

// RecipeEntryRequest is one bill of materials line.
type RecipeEntryRequest struct {
	MaterialID int64           `json:"material_id" binding:"required"`
	PerUnitQty decimal.Decimal `json:"per_unit_qty"`
}

// RecipeEntryResponse is the API shape of a bill of materials line.
type RecipeEntryResponse struct {
	ProductID  int64           `json:"product_id"`
	MaterialID int64           `json:"material_id"`
	PerUnitQty decimal.Decimal `json:"per_unit_qty"`
}

// ToProductResponse converts a domain product.
func ToProductResponse(p *product.Product) ProductResponse {
	return ProductResponse{
		ID:        p.ID,
		Name:      p.Name,
		Price:     p.Price,
		Units:     p.Units,
		Version:   p.Version,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

// ToStockAdjustmentResponse converts an adjustment result.
func ToStockAdjustmentResponse(r *stock.AdjustmentResult) StockAdjustmentResponse {
	return StockAdjustmentResponse{
		ProductID:     r.ProductID,
		PreviousUnits: r.PreviousUnits,
		NewUnits:      r.NewUnits,
		Movements:     r.Movements,
	}
}
