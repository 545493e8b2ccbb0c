package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"almacen/internal/domain/material"
)

// CreateMaterialRequest registers a new raw material.
// Names must cover every supported locale.
type CreateMaterialRequest struct {
	Names map[string]string `json:"names" binding:"required"`
	Price decimal.Decimal   `json:"price"`
	Units decimal.Decimal   `json:"units"`
	Unit  string            `json:"unit" binding:"required"`
}

// UpdateMaterialRequest is a partial update. Absent fields keep their
// current value.
type UpdateMaterialRequest struct {
	Names   map[string]string `json:"names,omitempty"`
	Price   *decimal.Decimal  `json:"price,omitempty"`
	Units   *decimal.Decimal  `json:"units,omitempty"`
	Unit    *string           `json:"unit,omitempty"`
	Version int64             `json:"version"`
}

// MaterialResponse is the API shape of a raw material.
type MaterialResponse struct {
	ID        int64           `json:"id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Units     decimal.Decimal `json:"units"`
	Unit      string          `json:"unit"`
	Version   int64           `json:"version"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// TranslationResponse is one localized material name.
type TranslationResponse struct {
	Locale string `json:"locale"`
	Name   string `json:"name"`
}

// ToMaterialResponse converts a domain material.
func ToMaterialResponse(m *material.Material) MaterialResponse {
	return MaterialResponse{
		ID:        m.ID,
		Name:      m.Name,
		Price:     m.Price,
		Units:     m.Units,
		Unit:      m.Unit,
		Version:   m.Version,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}
