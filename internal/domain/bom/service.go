package bom

import (
	"context"

	"almacen/internal/core/apperror"
	"almacen/internal/core/tx"
	"almacen/internal/domain/material"
	"almacen/internal/domain/product"
	"almacen/pkg/logger"
)

// Service manages product recipes.
type Service struct {
	repo      Repository
	products  product.Repository
	materials material.Repository
	txManager tx.Manager
}

// NewService creates a bill of materials service.
func NewService(repo Repository, products product.Repository, materials material.Repository, txManager tx.Manager) *Service {
	return &Service{
		repo:      repo,
		products:  products,
		materials: materials,
		txManager: txManager,
	}
}

// Recipe returns the full recipe of a product.
func (s *Service) Recipe(ctx context.Context, productID int64) ([]Entry, error) {
	if _, err := s.products.GetByID(ctx, productID); err != nil {
		return nil, err
	}
	return s.repo.EntriesForProduct(ctx, productID)
}

// Set inserts or replaces one recipe entry. The per-unit quantity must
// be strictly positive; both sides of the link must exist.
func (s *Service) Set(ctx context.Context, productID int64, input SetInput) (*Entry, error) {
	if !input.PerUnitQty.IsPositive() {
		return nil, apperror.NewValidation("per-unit quantity must be greater than zero")
	}

	e := &Entry{
		ProductID:  productID,
		MaterialID: input.MaterialID,
		PerUnitQty: input.PerUnitQty,
	}

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.products.GetByID(ctx, productID); err != nil {
			return err
		}
		if _, err := s.materials.GetByID(ctx, input.MaterialID); err != nil {
			return err
		}
		return s.repo.Upsert(ctx, e)
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "recipe entry set",
		"product_id", productID,
		"material_id", input.MaterialID,
		"per_unit_qty", input.PerUnitQty.String(),
	)
	return e, nil
}

// Remove deletes one recipe entry.
func (s *Service) Remove(ctx context.Context, productID, materialID int64) error {
	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.products.GetByID(ctx, productID); err != nil {
			return err
		}
		return s.repo.Delete(ctx, productID, materialID)
	})
	if err != nil {
		return err
	}
	logger.Info(ctx, "recipe entry removed", "product_id", productID, "material_id", materialID)
	return nil
}
