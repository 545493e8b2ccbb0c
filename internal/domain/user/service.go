package user

import (
	"context"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"almacen/internal/core/apperror"
	"almacen/internal/core/tx"
	"almacen/internal/domain/criteria"
	"almacen/pkg/logger"
)

// Service implements account use cases.
type Service struct {
	repo      Repository
	txManager tx.Manager
}

// NewService creates an account service.
func NewService(repo Repository, txManager tx.Manager) *Service {
	return &Service{repo: repo, txManager: txManager}
}

// Register creates a new account. Every field is mandatory; the
// password is stored as a bcrypt hash.
func (s *Service) Register(ctx context.Context, input RegisterInput) (*User, error) {
	if err := validateRegister(input); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperror.NewInternal(err)
	}

	u := &User{
		Username:     strings.TrimSpace(input.Username),
		FullName:     strings.TrimSpace(input.FullName),
		Email:        strings.TrimSpace(input.Email),
		RoleID:       input.RoleID,
		PasswordHash: string(hash),
	}

	var created *User
	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if existing, err := s.repo.GetByUsername(ctx, u.Username); err == nil && existing != nil {
			return apperror.NewDuplicate("user", "username", u.Username)
		} else if err != nil && !apperror.IsNotFound(err) {
			return err
		}
		var txErr error
		created, txErr = s.repo.Create(ctx, u)
		return txErr
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "user registered", "user_id", created.ID, "username", created.Username)
	return created, nil
}

// Get returns an account by id.
func (s *Service) Get(ctx context.Context, id int64) (*User, error) {
	return s.repo.GetByID(ctx, id)
}

// Search returns one page of accounts matching the criteria.
// An empty page is a normal result, not an error.
func (s *Service) Search(ctx context.Context, sc SearchCriteria, page criteria.Page) (criteria.Result[User], error) {
	page, err := page.Normalize()
	if err != nil {
		return criteria.Result[User]{}, err
	}
	return s.repo.Search(ctx, sc, page)
}

// Update applies a partial update; only non-nil fields are changed.
// A new password is rehashed before storage.
func (s *Service) Update(ctx context.Context, id int64, input UpdateInput) (*User, error) {
	var updated *User
	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		u, err := s.repo.GetByID(ctx, id)
		if err != nil {
			return err
		}

		if input.Username != nil {
			username := strings.TrimSpace(*input.Username)
			if username == "" {
				return apperror.NewValidation("username must not be empty")
			}
			if username != u.Username {
				if existing, err := s.repo.GetByUsername(ctx, username); err == nil && existing != nil {
					return apperror.NewDuplicate("user", "username", username)
				} else if err != nil && !apperror.IsNotFound(err) {
					return err
				}
			}
			u.Username = username
		}
		if input.Password != nil {
			if *input.Password == "" {
				return apperror.NewValidation("password must not be empty")
			}
			hash, err := bcrypt.GenerateFromPassword([]byte(*input.Password), bcrypt.DefaultCost)
			if err != nil {
				return apperror.NewInternal(err)
			}
			u.PasswordHash = string(hash)
		}
		if input.FullName != nil {
			if strings.TrimSpace(*input.FullName) == "" {
				return apperror.NewValidation("full name must not be empty")
			}
			u.FullName = strings.TrimSpace(*input.FullName)
		}
		if input.Email != nil {
			if strings.TrimSpace(*input.Email) == "" {
				return apperror.NewValidation("email must not be empty")
			}
			u.Email = strings.TrimSpace(*input.Email)
		}
		if input.RoleID != nil {
			if *input.RoleID <= 0 {
				return apperror.NewValidation("role id must be positive")
			}
			u.RoleID = *input.RoleID
		}

		if err := s.repo.Update(ctx, u); err != nil {
			return err
		}
		updated = u
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "user updated", "user_id", id)
	return updated, nil
}

// Delete removes an account.
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
	logger.Info(ctx, "user deleted", "user_id", id)
	return nil
}

// VerifyCredentials checks a username/password pair and returns the
// account on success. Failures are indistinguishable to the caller.
func (s *Service) VerifyCredentials(ctx context.Context, username, password string) (*User, error) {
	u, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewUnauthorized("invalid credentials")
		}
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return nil, apperror.NewUnauthorized("invalid credentials")
	}
	return u, nil
}

func validateRegister(input RegisterInput) error {
	if strings.TrimSpace(input.Username) == "" {
		return apperror.NewValidation("username is required")
	}
	if input.Password == "" {
		return apperror.NewValidation("password is required")
	}
	if strings.TrimSpace(input.FullName) == "" {
		return apperror.NewValidation("full name is required")
	}
	if strings.TrimSpace(input.Email) == "" {
		return apperror.NewValidation("email is required")
	}
	if input.RoleID <= 0 {
		return apperror.NewValidation("role id is required")
	}
	return nil
}
