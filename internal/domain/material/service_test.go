package material

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"almacen/internal/core/apperror"
	"almacen/internal/core/types"
	"almacen/internal/domain/criteria"
)

type passthroughTxManager struct{}

func (passthroughTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type memMaterialRepo struct {
	nextID       int64
	materials    map[int64]*Material
	translations map[int64][]Translation
}

func newMemMaterialRepo() *memMaterialRepo {
	return &memMaterialRepo{
		nextID:       1,
		materials:    map[int64]*Material{},
		translations: map[int64][]Translation{},
	}
}

func (r *memMaterialRepo) Create(_ context.Context, m *Material, translations []Translation) (*Material, error) {
	m.ID = r.nextID
	m.Version = 1
	r.nextID++
	cp := *m
	r.materials[m.ID] = &cp
	r.translations[m.ID] = translations
	return m, nil
}

func (r *memMaterialRepo) GetByID(_ context.Context, id int64) (*Material, error) {
	m, ok := r.materials[id]
	if !ok {
		return nil, apperror.NewNotFound("material", id)
	}
	cp := *m
	return &cp, nil
}

func (r *memMaterialRepo) GetTranslations(_ context.Context, id int64) ([]Translation, error) {
	return r.translations[id], nil
}

func (r *memMaterialRepo) Search(_ context.Context, _ SearchCriteria, page criteria.Page) (criteria.Result[Material], error) {
	return criteria.Result[Material]{Page: page}, nil
}

func (r *memMaterialRepo) Update(_ context.Context, m *Material, translations []Translation) error {
	stored, ok := r.materials[m.ID]
	if !ok {
		return apperror.NewNotFound("material", m.ID)
	}
	if stored.Version != m.Version {
		return apperror.NewConcurrentModification("material", m.ID)
	}
	m.Version++
	cp := *m
	r.materials[m.ID] = &cp
	for _, t := range translations {
		r.upsert(m.ID, t)
	}
	return nil
}

func (r *memMaterialRepo) upsert(id int64, t Translation) {
	for i, existing := range r.translations[id] {
		if existing.Locale == t.Locale {
			r.translations[id][i] = t
			return
		}
	}
	r.translations[id] = append(r.translations[id], t)
}

func (r *memMaterialRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.materials[id]; !ok {
		return apperror.NewNotFound("material", id)
	}
	delete(r.materials, id)
	delete(r.translations, id)
	return nil
}

func (r *memMaterialRepo) GetManyForUpdate(_ context.Context, ids []int64, _ string) ([]Material, error) {
	out := make([]Material, 0, len(ids))
	for _, id := range ids {
		m, ok := r.materials[id]
		if !ok {
			return nil, apperror.NewNotFound("material", id)
		}
		out = append(out, *m)
	}
	return out, nil
}

func (r *memMaterialRepo) SetUnits(_ context.Context, id int64, units types.Quantity) error {
	m, ok := r.materials[id]
	if !ok {
		return apperror.NewNotFound("material", id)
	}
	m.Units = units
	return nil
}

// resolveFirst is a trivial resolver for tests: exact locale or default.
func resolveFirst(materialID int64, locale string, translations []Translation) (string, error) {
	for _, t := range translations {
		if t.Locale == locale {
			return t.Name, nil
		}
	}
	for _, t := range translations {
		if t.Locale == DefaultLocale {
			return t.Name, nil
		}
	}
	return "", apperror.NewMissingTranslation(materialID, locale)
}

func validCreate() CreateInput {
	return CreateInput{
		Translations: map[string]string{"es": "madera", "en": "wood", "gl": "madeira"},
		Price:        types.MustMoney("2.50"),
		Units:        types.MustQuantity("100"),
		Unit:         "kg",
	}
}

func newTestService() (*Service, *memMaterialRepo) {
	repo := newMemMaterialRepo()
	return NewService(repo, passthroughTxManager{}, resolveFirst), repo
}

func TestCreate_RequiresEveryLocale(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	for _, missing := range RequiredLocales {
		t.Run("missing "+missing, func(t *testing.T) {
			in := validCreate()
			delete(in.Translations, missing)
			_, err := svc.Create(ctx, in)
			require.Error(t, err)
			assert.True(t, apperror.IsValidation(err))
		})
	}

	t.Run("blank name counts as missing", func(t *testing.T) {
		in := validCreate()
		in.Translations["gl"] = "   "
		_, err := svc.Create(ctx, in)
		require.Error(t, err)
		assert.True(t, apperror.IsValidation(err))
	})
}

func TestCreate_Validation(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	t.Run("negative price", func(t *testing.T) {
		in := validCreate()
		in.Price = types.MustMoney("-1")
		_, err := svc.Create(ctx, in)
		require.Error(t, err)
		assert.True(t, apperror.IsValidation(err))
	})

	t.Run("negative units", func(t *testing.T) {
		in := validCreate()
		in.Units = types.MustQuantity("-3")
		_, err := svc.Create(ctx, in)
		require.Error(t, err)
		assert.True(t, apperror.IsValidation(err))
	})

	t.Run("empty unit of measure", func(t *testing.T) {
		in := validCreate()
		in.Unit = " "
		_, err := svc.Create(ctx, in)
		require.Error(t, err)
		assert.True(t, apperror.IsValidation(err))
	})

	t.Run("valid input stores all translations", func(t *testing.T) {
		created, err := svc.Create(ctx, validCreate())
		require.NoError(t, err)
		assert.Equal(t, "madera", created.Name)
	})
}

func TestGet_ResolvesLocale(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	created, err := svc.Create(ctx, validCreate())
	require.NoError(t, err)

	m, err := svc.Get(ctx, created.ID, "en")
	require.NoError(t, err)
	assert.Equal(t, "wood", m.Name)

	m, err = svc.Get(ctx, created.ID, "fr")
	require.NoError(t, err)
	assert.Equal(t, "madera", m.Name)
}

func TestUpdate_MergesTranslationsAndChecksVersion(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	created, err := svc.Create(ctx, validCreate())
	require.NoError(t, err)

	t.Run("stale version refused", func(t *testing.T) {
		_, err := svc.Update(ctx, created.ID, UpdateInput{Version: 99})
		require.Error(t, err)
		appErr, _ := apperror.AsAppError(err)
		assert.Equal(t, apperror.CodeConcurrentModification, appErr.Code)
	})

	t.Run("translation merge keeps others", func(t *testing.T) {
		updated, err := svc.Update(ctx, created.ID, UpdateInput{
			Translations: map[string]string{"en": "timber"},
			Version:      created.Version,
		})
		require.NoError(t, err)
		assert.Equal(t, created.Version+1, updated.Version)

		translations := repo.translations[created.ID]
		byLocale := map[string]string{}
		for _, tr := range translations {
			byLocale[tr.Locale] = tr.Name
		}
		assert.Equal(t, "timber", byLocale["en"])
		assert.Equal(t, "madera", byLocale["es"])
	})

	t.Run("empty translation refused", func(t *testing.T) {
		m, err := svc.Get(ctx, created.ID, "")
		require.NoError(t, err)
		_, err = svc.Update(ctx, created.ID, UpdateInput{
			Translations: map[string]string{"en": "  "},
			Version:      m.Version,
		})
		require.Error(t, err)
		assert.True(t, apperror.IsValidation(err))
	})
}

func TestSearch_InvertedRanges(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	from := types.MustMoney("10")
	to := types.MustMoney("1")
	_, err := svc.Search(ctx, SearchCriteria{PriceFrom: &from, PriceTo: &to}, criteria.Page{})
	require.Error(t, err)
	assert.True(t, apperror.IsValidation(err))
}
