package product

import (
	"context"
	"strings"

	"almacen/internal/core/apperror"
	"almacen/internal/core/tx"
	"almacen/internal/domain/criteria"
	"almacen/pkg/logger"
)

// Service implements product catalog use cases.
type Service struct {
	repo      Repository
	txManager tx.Manager
}

// NewService creates a product service.
func NewService(repo Repository, txManager tx.Manager) *Service {
	return &Service{repo: repo, txManager: txManager}
}

// Create registers a new product with zero stock.
// Name must be non-empty and price strictly positive.
func (s *Service) Create(ctx context.Context, input CreateInput) (*Product, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, apperror.NewValidation("name is required")
	}
	if !input.Price.IsPositive() {
		return nil, apperror.NewValidation("price must be greater than zero")
	}

	p := &Product{
		Name:  name,
		Price: input.Price,
		Units: 0,
	}

	var created *Product
	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		var txErr error
		created, txErr = s.repo.Create(ctx, p)
		return txErr
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "product created", "product_id", created.ID)
	return created, nil
}

// Get returns a product by id.
func (s *Service) Get(ctx context.Context, id int64) (*Product, error) {
	return s.repo.GetByID(ctx, id)
}

// Search returns one page of products matching the criteria.
// An empty page is a normal result, not an error.
func (s *Service) Search(ctx context.Context, sc SearchCriteria, page criteria.Page) (criteria.Result[Product], error) {
	page, err := page.Normalize()
	if err != nil {
		return criteria.Result[Product]{}, err
	}
	if sc.PriceFrom != nil && sc.PriceTo != nil && sc.PriceFrom.GreaterThan(*sc.PriceTo) {
		return criteria.Result[Product]{}, apperror.NewValidation("price range is inverted")
	}
	if sc.UnitsFrom != nil && sc.UnitsTo != nil && *sc.UnitsFrom > *sc.UnitsTo {
		return criteria.Result[Product]{}, apperror.NewValidation("units range is inverted")
	}
	return s.repo.Search(ctx, sc, page)
}

// Update applies a partial update with optimistic locking.
func (s *Service) Update(ctx context.Context, id int64, input UpdateInput) (*Product, error) {
	var updated *Product
	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		p, err := s.repo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if p.Version != input.Version {
			return apperror.NewConcurrentModification("product", id)
		}

		if input.Name != nil {
			name := strings.TrimSpace(*input.Name)
			if name == "" {
				return apperror.NewValidation("name is required")
			}
			p.Name = name
		}
		if input.Price != nil {
			if !input.Price.IsPositive() {
				return apperror.NewValidation("price must be greater than zero")
			}
			p.Price = *input.Price
		}

		if err := s.repo.Update(ctx, p); err != nil {
			return err
		}
		updated = p
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "product updated", "product_id", id)
	return updated, nil
}

// Delete removes a product.
func (s *Service) Delete(ctx context.Context, id int64) error {
	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.repo.GetByID(ctx, id); err != nil {
			return err
		}
		return s.repo.Delete(ctx, id)
	})
	if err != nil {
		return err
	}
	logger.Info(ctx, "product deleted", "product_id", id)
	return nil
}
