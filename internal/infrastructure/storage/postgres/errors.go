package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"almacen/internal/core/apperror"
)

// PostgreSQL error codes
const (
	pgForeignKeyViolation = "23503"
	pgUniqueViolation     = "23505"
)

// translateError maps low-level database errors to application errors.
// The entity name feeds not-found and conflict messages.
func translateError(err error, entity string, id any) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return apperror.NewNotFound(entity, id)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return apperror.NewConflict(entity + " already exists").WithCause(err)
		case pgForeignKeyViolation:
			return apperror.NewConflict(entity + " is referenced by other records").WithCause(err)
		}
	}
	return apperror.NewInternal(err)
}
