package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTRoundTrip(t *testing.T) {
	svc := NewJWTService("test-secret", time.Hour, "almacen")

	token, expiresAt, err := svc.Generate(42, "maria", 1)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, time.Minute)

	claims, err := svc.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "maria", claims.Username)
	assert.Equal(t, int64(1), claims.RoleID)
	assert.Equal(t, "almacen", claims.Issuer)
}

func TestValidate_WrongSecret(t *testing.T) {
	issuer := NewJWTService("secret-a", time.Hour, "almacen")
	verifier := NewJWTService("secret-b", time.Hour, "almacen")

	token, _, err := issuer.Generate(1, "maria", 1)
	require.NoError(t, err)

	_, err = verifier.Validate(token)
	assert.Error(t, err)
}

func TestValidate_ExpiredToken(t *testing.T) {
	svc := NewJWTService("test-secret", -time.Minute, "almacen")

	token, _, err := svc.Generate(1, "maria", 1)
	require.NoError(t, err)

	_, err = svc.Validate(token)
	assert.Error(t, err)
}

func TestValidate_Garbage(t *testing.T) {
	svc := NewJWTService("test-secret", time.Hour, "almacen")
	_, err := svc.Validate("not.a.token")
	assert.Error(t, err)
}
