package postgres

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"almacen/internal/core/apperror"
	"almacen/internal/domain/criteria"
	"almacen/internal/domain/user"
)

const userTable = "sec_user"

// UserRepository implements user.Repository on PostgreSQL.
type UserRepository struct {
	txManager *TxManager
	builder   sq.StatementBuilderType
}

// NewUserRepository creates a user repository.
func NewUserRepository(txManager *TxManager) *UserRepository {
	return &UserRepository{
		txManager: txManager,
		builder:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (r *UserRepository) Create(ctx context.Context, u *user.User) (*user.User, error) {
	q := r.txManager.GetQuerier(ctx)

	query, args, err := r.builder.
		Insert(userTable).
		Columns("username", "full_name", "email", "role_id", "password_hash").
		Values(u.Username, u.FullName, u.Email, u.RoleID, u.PasswordHash).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, apperror.NewInternal(err)
	}

	err = q.QueryRow(ctx, query, args...).
		Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, translateError(err, "user", nil)
	}
	return u, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*user.User, error) {
	q := r.txManager.GetQuerier(ctx)

	query, args, err := r.userSelect().
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, apperror.NewInternal(err)
	}

	var u user.User
	if err := pgxscan.Get(ctx, q, &u, query, args...); err != nil {
		return nil, translateError(err, "user", id)
	}
	return &u, nil
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*user.User, error) {
	q := r.txManager.GetQuerier(ctx)

	query, args, err := r.userSelect().
		Where(sq.Eq{"username": username}).
		ToSql()
	if err != nil {
		return nil, apperror.NewInternal(err)
	}

	var u user.User
	if err := pgxscan.Get(ctx, q, &u, query, args...); err != nil {
		return nil, translateError(err, "user", username)
	}
	return &u, nil
}

func (r *UserRepository) userSelect() sq.SelectBuilder {
	return r.builder.
		Select("id", "username", "full_name", "email", "role_id", "password_hash", "created_at", "updated_at").
		From(userTable)
}

func (r *UserRepository) searchSelect(sc user.SearchCriteria) sq.SelectBuilder {
	sel := r.userSelect()

	if sc.ID != nil {
		sel = sel.Where(sq.Eq{"id": *sc.ID})
	}
	if sc.Username != nil && *sc.Username != "" {
		sel = sel.Where("username ILIKE ?", "%"+*sc.Username+"%")
	}
	if sc.FullName != nil && *sc.FullName != "" {
		sel = sel.Where("full_name ILIKE ?", "%"+*sc.FullName+"%")
	}
	if sc.Email != nil && *sc.Email != "" {
		sel = sel.Where("email ILIKE ?", "%"+*sc.Email+"%")
	}
	if sc.RoleID != nil {
		sel = sel.Where(sq.Eq{"role_id": *sc.RoleID})
	}
	return sel
}

func (r *UserRepository) Search(ctx context.Context, sc user.SearchCriteria, page criteria.Page) (criteria.Result[user.User], error) {
	q := r.txManager.GetQuerier(ctx)
	result := criteria.Result[user.User]{Page: page}

	countQuery, countArgs, err := r.builder.
		Select("COUNT(*)").
		FromSelect(r.searchSelect(sc), "sub").
		ToSql()
	if err != nil {
		return result, apperror.NewInternal(err)
	}
	if err := pgxscan.Get(ctx, q, &result.TotalCount, countQuery, countArgs...); err != nil {
		return result, translateError(err, "user", nil)
	}

	query, args, err := r.searchSelect(sc).
		OrderBy("id ASC").
		Limit(uint64(page.Size)).
		Offset(uint64(page.Offset())).
		ToSql()
	if err != nil {
		return result, apperror.NewInternal(err)
	}

	result.Items = []user.User{}
	if err := pgxscan.Select(ctx, q, &result.Items, query, args...); err != nil {
		return result, translateError(err, "user", nil)
	}
	return result, nil
}

func (r *UserRepository) Update(ctx context.Context, u *user.User) error {
	q := r.txManager.GetQuerier(ctx)

	query, args, err := r.builder.
		Update(userTable).
		Set("username", u.Username).
		Set("full_name", u.FullName).
		Set("email", u.Email).
		Set("role_id", u.RoleID).
		Set("password_hash", u.PasswordHash).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": u.ID}).
		ToSql()
	if err != nil {
		return apperror.NewInternal(err)
	}

	tag, err := q.Exec(ctx, query, args...)
	if err != nil {
		return translateError(err, "user", u.ID)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewNotFound("user", u.ID)
	}
	return nil
}

func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	q := r.txManager.GetQuerier(ctx)

	query, args, err := r.builder.
		Delete(userTable).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return apperror.NewInternal(err)
	}

	tag, err := q.Exec(ctx, query, args...)
	if err != nil {
		return translateError(err, "user", id)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewNotFound("user", id)
	}
	return nil
}
