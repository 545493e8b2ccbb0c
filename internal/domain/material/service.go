package material

import (
	"context"
	"sort"
	"strings"

	"almacen/internal/core/apperror"
	"almacen/internal/core/tx"
	"almacen/internal/domain/criteria"
	"almacen/pkg/logger"
)

// Service implements material catalog use cases.
type Service struct {
	repo      Repository
	txManager tx.Manager
	resolve   NameResolver
}

// NameResolver resolves a localized name from stored translations.
type NameResolver func(materialID int64, locale string, translations []Translation) (string, error)

// NewService creates a material service.
func NewService(repo Repository, txManager tx.Manager, resolve NameResolver) *Service {
	return &Service{
		repo:      repo,
		txManager: txManager,
		resolve:   resolve,
	}
}

// Create registers a new material. Names for every required locale are
// mandatory; price and units must be non-negative.
func (s *Service) Create(ctx context.Context, input CreateInput) (*Material, error) {
	translations, err := validateTranslations(input.Translations)
	if err != nil {
		return nil, err
	}
	if input.Price.IsNegative() {
		return nil, apperror.NewValidation("price must not be negative")
	}
	if input.Units.IsNegative() {
		return nil, apperror.NewValidation("units must not be negative")
	}
	if strings.TrimSpace(input.Unit) == "" {
		return nil, apperror.NewValidation("unit of measure is required")
	}

	m := &Material{
		Price: input.Price,
		Units: input.Units,
		Unit:  strings.TrimSpace(input.Unit),
	}

	var created *Material
	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		var txErr error
		created, txErr = s.repo.Create(ctx, m, translations)
		return txErr
	})
	if err != nil {
		return nil, err
	}
	created.Name = input.Translations[DefaultLocale]

	logger.Info(ctx, "material created", "material_id", created.ID)
	return created, nil
}

// Get returns the material with its name resolved for the locale.
func (s *Service) Get(ctx context.Context, id int64, locale string) (*Material, error) {
	m, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	translations, err := s.repo.GetTranslations(ctx, id)
	if err != nil {
		return nil, err
	}
	name, err := s.resolve(id, locale, translations)
	if err != nil {
		return nil, err
	}
	m.Name = name
	return m, nil
}

// Translations returns every stored translation for a material.
func (s *Service) Translations(ctx context.Context, id int64) ([]Translation, error) {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return nil, err
	}
	return s.repo.GetTranslations(ctx, id)
}

// Search returns one page of materials matching the criteria.
// An empty page is a normal result, not an error.
func (s *Service) Search(ctx context.Context, sc SearchCriteria, page criteria.Page) (criteria.Result[Material], error) {
	page, err := page.Normalize()
	if err != nil {
		return criteria.Result[Material]{}, err
	}
	if err := validateRanges(sc); err != nil {
		return criteria.Result[Material]{}, err
	}
	return s.repo.Search(ctx, sc, page)
}

// Update applies a partial update with optimistic locking.
func (s *Service) Update(ctx context.Context, id int64, input UpdateInput) (*Material, error) {
	var updated *Material
	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		m, err := s.repo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if m.Version != input.Version {
			return apperror.NewConcurrentModification("material", id)
		}

		if input.Price != nil {
			if input.Price.IsNegative() {
				return apperror.NewValidation("price must not be negative")
			}
			m.Price = *input.Price
		}
		if input.Units != nil {
			if input.Units.IsNegative() {
				return apperror.NewValidation("units must not be negative")
			}
			m.Units = *input.Units
		}
		if input.Unit != nil {
			if strings.TrimSpace(*input.Unit) == "" {
				return apperror.NewValidation("unit of measure is required")
			}
			m.Unit = strings.TrimSpace(*input.Unit)
		}

		var translations []Translation
		for locale, name := range input.Translations {
			if strings.TrimSpace(name) == "" {
				return apperror.NewValidation("translation name must not be empty").
					WithDetail("locale", locale)
			}
			translations = append(translations, Translation{Locale: locale, Name: strings.TrimSpace(name)})
		}
		sort.Slice(translations, func(i, j int) bool { return translations[i].Locale < translations[j].Locale })

		if err := s.repo.Update(ctx, m, translations); err != nil {
			return err
		}
		updated = m
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "material updated", "material_id", id)
	return updated, nil
}

// Delete removes a material and its translations.
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
	logger.Info(ctx, "material deleted", "material_id", id)
	return nil
}

func validateTranslations(names map[string]string) ([]Translation, error) {
	translations := make([]Translation, 0, len(names))
	for _, locale := range RequiredLocales {
		name, ok := names[locale]
		if !ok || strings.TrimSpace(name) == "" {
			return nil, apperror.NewValidation("translation is required for every supported locale").
				WithDetail("locale", locale)
		}
	}
	for locale, name := range names {
		translations = append(translations, Translation{Locale: locale, Name: strings.TrimSpace(name)})
	}
	sort.Slice(translations, func(i, j int) bool { return translations[i].Locale < translations[j].Locale })
	return translations, nil
}

func validateRanges(sc SearchCriteria) error {
	if sc.PriceFrom != nil && sc.PriceTo != nil && sc.PriceFrom.GreaterThan(*sc.PriceTo) {
		return apperror.NewValidation("price range is inverted")
	}
	if sc.UnitsFrom != nil && sc.UnitsTo != nil && sc.UnitsFrom.GreaterThan(*sc.UnitsTo) {
		return apperror.NewValidation("units range is inverted")
	}
	return nil
}
