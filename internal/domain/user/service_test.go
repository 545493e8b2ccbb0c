package user

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"almacen/internal/core/apperror"
	"almacen/internal/domain/criteria"
)

type passthroughTxManager struct{}

func (passthroughTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type memUserRepo struct {
	nextID int64
	users  map[int64]*User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{nextID: 1, users: map[int64]*User{}}
}

func (r *memUserRepo) Create(_ context.Context, u *User) (*User, error) {
	u.ID = r.nextID
	r.nextID++
	cp := *u
	r.users[u.ID] = &cp
	return u, nil
}

func (r *memUserRepo) GetByID(_ context.Context, id int64) (*User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, apperror.NewNotFound("user", id)
	}
	cp := *u
	return &cp, nil
}

func (r *memUserRepo) GetByUsername(_ context.Context, username string) (*User, error) {
	for _, u := range r.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, apperror.NewNotFound("user", username)
}

func (r *memUserRepo) Search(_ context.Context, _ SearchCriteria, page criteria.Page) (criteria.Result[User], error) {
	return criteria.Result[User]{Page: page}, nil
}

func (r *memUserRepo) Update(_ context.Context, u *User) error {
	if _, ok := r.users[u.ID]; !ok {
		return apperror.NewNotFound("user", u.ID)
	}
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *memUserRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.users[id]; !ok {
		return apperror.NewNotFound("user", id)
	}
	delete(r.users, id)
	return nil
}

func validInput() RegisterInput {
	return RegisterInput{
		Username: "maria",
		Password: "secreto",
		FullName: "Maria Lopez",
		Email:    "maria@example.com",
		RoleID:   1,
	}
}

func newTestService() (*Service, *memUserRepo) {
	repo := newMemUserRepo()
	return NewService(repo, passthroughTxManager{}), repo
}

func TestRegister_AllFieldsMandatory(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	mutations := map[string]func(*RegisterInput){
		"username": func(in *RegisterInput) { in.Username = " " },
		"password": func(in *RegisterInput) { in.Password = "" },
		"name":     func(in *RegisterInput) { in.FullName = "" },
		"email":    func(in *RegisterInput) { in.Email = "" },
		"role":     func(in *RegisterInput) { in.RoleID = 0 },
	}
	for name, mutate := range mutations {
		t.Run(name, func(t *testing.T) {
			in := validInput()
			mutate(&in)
			_, err := svc.Register(ctx, in)
			require.Error(t, err)
			assert.True(t, apperror.IsValidation(err))
		})
	}
}

func TestRegister_HashesPassword(t *testing.T) {
	svc, repo := newTestService()

	created, err := svc.Register(context.Background(), validInput())
	require.NoError(t, err)

	stored := repo.users[created.ID]
	assert.NotEqual(t, "secreto", stored.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("secreto")))
}

func TestRegister_DuplicateUsername(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Register(ctx, validInput())
	require.NoError(t, err)

	_, err = svc.Register(ctx, validInput())
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeDuplicate, appErr.Code)
}

func TestUpdate_PartialOverwrite(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	created, err := svc.Register(ctx, validInput())
	require.NoError(t, err)

	email := "nueva@example.com"
	updated, err := svc.Update(ctx, created.ID, UpdateInput{Email: &email})
	require.NoError(t, err)

	assert.Equal(t, "nueva@example.com", updated.Email)
	assert.Equal(t, "maria", updated.Username)
	assert.Equal(t, "Maria Lopez", updated.FullName)

	// Password change rehashes.
	newPass := "otra"
	_, err = svc.Update(ctx, created.ID, UpdateInput{Password: &newPass})
	require.NoError(t, err)
	stored := repo.users[created.ID]
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("otra")))
}

func TestVerifyCredentials(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Register(ctx, validInput())
	require.NoError(t, err)

	t.Run("valid", func(t *testing.T) {
		u, err := svc.VerifyCredentials(ctx, "maria", "secreto")
		require.NoError(t, err)
		assert.Equal(t, "maria", u.Username)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.VerifyCredentials(ctx, "maria", "incorrecto")
		require.Error(t, err)
		appErr, _ := apperror.AsAppError(err)
		assert.Equal(t, apperror.CodeUnauthorized, appErr.Code)
	})

	t.Run("unknown user", func(t *testing.T) {
		_, err := svc.VerifyCredentials(ctx, "nadie", "secreto")
		require.Error(t, err)
		appErr, _ := apperror.AsAppError(err)
		assert.Equal(t, apperror.CodeUnauthorized, appErr.Code)
	})
}

func TestDelete(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	created, err := svc.Register(ctx, validInput())
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, created.ID))
	assert.Empty(t, repo.users)

	err = svc.Delete(ctx, created.ID)
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))
}
