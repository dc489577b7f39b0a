package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestTokenService_GenerateAndValidate(t *testing.T) {
	svc := NewTokenService("test-secret", 0)
	assert.Equal(t, DefaultTokenTTL, svc.TTL())

	token, err := svc.Generate(42, "jane@example.com")
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := svc.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "jane@example.com", claims.Email)
	assert.Equal(t, "42", claims.Subject)
	assert.WithinDuration(t, time.Now().Add(DefaultTokenTTL), claims.ExpiresAt.Time, time.Minute)
}

func TestTokenService_ValidateWrongSecret(t *testing.T) {
	token, err := NewTokenService("secret-a", time.Hour).Generate(1, "a@example.com")
	require.NoError(t, err)

	_, err = NewTokenService("secret-b", time.Hour).Validate(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenService_ValidateExpired(t *testing.T) {
	svc := NewTokenService("secret", time.Hour)
	svc.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	token, err := svc.Generate(1, "a@example.com")
	require.NoError(t, err)

	_, err = svc.Validate(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenService_ValidateEmptyAndGarbage(t *testing.T) {
	svc := NewTokenService("secret", time.Hour)

	_, err := svc.Validate("")
	assert.ErrorIs(t, err, ErrEmptyToken)

	_, err = svc.Validate("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenService_RejectsOtherAlgorithms(t *testing.T) {
	svc := NewTokenService("secret", time.Hour)
	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"user_id": 1})
	token, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = svc.Validate(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestPasswordHasher(t *testing.T) {
	h := NewPasswordHasher(bcrypt.MinCost)

	hash, err := h.Hash("password123")
	require.NoError(t, err)
	assert.NotEqual(t, "password123", hash)
	assert.True(t, h.Compare(hash, "password123"))
	assert.False(t, h.Compare(hash, "password124"))

	assert.Equal(t, bcrypt.DefaultCost, NewPasswordHasher(0).Cost)
}
