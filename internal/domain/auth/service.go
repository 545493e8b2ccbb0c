package auth

import (
	"context"
	"time"

	"almacen/internal/domain/user"
	"almacen/pkg/logger"
)

// Token is an issued access token.
type Token struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// Service implements the login flow.
type Service struct {
	users *user.Service
	jwt   *JWTService
}

// NewService creates an auth service.
func NewService(users *user.Service, jwt *JWTService) *Service {
	return &Service{users: users, jwt: jwt}
}

// Login verifies credentials and issues an access token.
func (s *Service) Login(ctx context.Context, username, password string) (*Token, error) {
	u, err := s.users.VerifyCredentials(ctx, username, password)
	if err != nil {
		logger.Warn(ctx, "login failed", "username", username)
		return nil, err
	}

	accessToken, expiresAt, err := s.jwt.Generate(u.ID, u.Username, u.RoleID)
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "login succeeded", "user_id", u.ID, "username", u.Username)
	return &Token{
		AccessToken: accessToken,
		TokenType:   "Bearer",
		ExpiresAt:   expiresAt,
	}, nil
}
