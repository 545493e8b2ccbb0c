// Package user implements account management.
package user

import (
	"time"
)

// User is a registered account.
// PasswordHash is never serialized.
type User struct {
	ID           int64  `db:"id" json:"id"`
	Username     string `db:"username" json:"username"`
	FullName     string `db:"full_name" json:"full_name"`
	Email        string `db:"email" json:"email"`
	RoleID       int64  `db:"role_id" json:"role_id"`
	PasswordHash string `db:"password_hash" json:"-"`

	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// RegisterInput holds the data needed to create an account.
// Every field is mandatory.
type RegisterInput struct {
	Username string
	Password string
	FullName string
	Email    string
	RoleID   int64
}

// UpdateInput holds a partial update. Nil fields are left untouched.
type UpdateInput struct {
	Username *string
	Password *string
	FullName *string
	Email    *string
	RoleID   *int64
}

// SearchCriteria combines optional AND predicates for account search.
type SearchCriteria struct {
	ID       *int64
	Username *string // case-insensitive substring
	FullName *string // case-insensitive substring
	Email    *string // case-insensitive substring
	RoleID   *int64
}
