package user

import (
	"context"

	"almacen/internal/domain/criteria"
)

// Repository defines persistence operations for accounts.
type Repository interface {
	Create(ctx context.Context, u *User) (*User, error)
	GetByID(ctx context.Context, id int64) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
	Search(ctx context.Context, sc SearchCriteria, page criteria.Page) (criteria.Result[User], error)
	Update(ctx context.Context, u *User) error
	Delete(ctx context.Context, id int64) error
}
