package services

import (
	"sync"
	"testing"
	"time"

	"github.com/anonto42/socialfeed/backend/internal/apperrors"
	"github.com/anonto42/socialfeed/backend/internal/auth"
	"github.com/anonto42/socialfeed/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newAuthService(e *env) (AuthService, *auth.TokenService) {
	tokens := auth.NewTokenService("test-secret", time.Hour)
	return NewAuthService(e.store, tokens, auth.NewPasswordHasher(bcrypt.MinCost), e.log, nil), tokens
}

func registerRequest(email string) models.RegisterRequest {
	return models.RegisterRequest{
		FirstName:   "Jane",
		LastName:    "Doe",
		Email:       email,
		Password:    "password123",
		DateOfBirth: "1990-01-15",
	}
}

func TestAuthService_Register(t *testing.T) {
	e := newEnv(t)
	svc, tokens := newAuthService(e)

	req := registerRequest("  Jane@Example.COM ")
	req.PhoneNumber = "+15551234567"
	res, err := svc.Register(e.ctx, req)
	require.NoError(t, err)

	assert.Equal(t, "jane@example.com", res.User.Email)
	assert.NotEqual(t, "password123", res.User.PasswordHash)
	assert.Equal(t, time.Date(1990, time.January, 15, 0, 0, 0, 0, time.UTC), res.User.DateOfBirth.UTC())

	claims, err := tokens.Validate(res.Token)
	require.NoError(t, err)
	assert.Equal(t, res.User.ID, claims.UserID)

	phones, err := e.store.Users.GetPhoneNumbers(res.User.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"+15551234567"}, phones)
}

func TestAuthService_RegisterDuplicateEmail(t *testing.T) {
	e := newEnv(t)
	svc, _ := newAuthService(e)

	_, err := svc.Register(e.ctx, registerRequest("jane@example.com"))
	require.NoError(t, err)

	_, err = svc.Register(e.ctx, registerRequest("JANE@example.com"))
	assertKind(t, err, apperrors.KindConflict)
	assert.Equal(t, "Email already registered", err.(*apperrors.Error).Message)
}

func TestAuthService_RegisterConcurrentDuplicates(t *testing.T) {
	e := newEnv(t)
	svc, _ := newAuthService(e)

	var wg sync.WaitGroup
	errs := make([]error, 4)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.Register(e.ctx, registerRequest("race@example.com"))
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		assertKind(t, err, apperrors.KindConflict)
	}
	assert.Equal(t, 1, succeeded)
}

func TestAuthService_RegisterValidation(t *testing.T) {
	e := newEnv(t)
	svc, _ := newAuthService(e)

	short := registerRequest("a@example.com")
	short.Password = "12345"
	_, err := svc.Register(e.ctx, short)
	assertKind(t, err, apperrors.KindValidation)

	badDate := registerRequest("b@example.com")
	badDate.DateOfBirth = "not a date"
	_, err = svc.Register(e.ctx, badDate)
	assertKind(t, err, apperrors.KindValidation)

	future := registerRequest("c@example.com")
	future.DateOfBirth = time.Now().AddDate(1, 0, 0).Format("2006-01-02")
	_, err = svc.Register(e.ctx, future)
	assertKind(t, err, apperrors.KindValidation)

	missing := registerRequest("d@example.com")
	missing.FirstName = "   "
	_, err = svc.Register(e.ctx, missing)
	assertKind(t, err, apperrors.KindValidation)
}

func TestAuthService_Login(t *testing.T) {
	e := newEnv(t)
	svc, tokens := newAuthService(e)

	registered, err := svc.Register(e.ctx, registerRequest("jane@example.com"))
	require.NoError(t, err)

	res, err := svc.Login(e.ctx, models.LoginRequest{Email: "JANE@example.com", Password: "password123"})
	require.NoError(t, err)
	assert.Equal(t, registered.User.ID, res.User.ID)
	_, err = tokens.Validate(res.Token)
	assert.NoError(t, err)

	_, err = svc.Login(e.ctx, models.LoginRequest{Email: "jane@example.com", Password: "wrong"})
	assertKind(t, err, apperrors.KindUnauthenticated)
	assert.Equal(t, "Invalid credentials", err.(*apperrors.Error).Message)

	_, err = svc.Login(e.ctx, models.LoginRequest{Email: "nobody@example.com", Password: "password123"})
	assertKind(t, err, apperrors.KindUnauthenticated)
}

func TestAuthService_CurrentUser(t *testing.T) {
	e := newEnv(t)
	svc, _ := newAuthService(e)
	user := e.user(t, "Jane", "Doe", "jane@example.com")

	got, err := svc.CurrentUser(e.ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.Email, got.Email)

	_, err = svc.CurrentUser(e.ctx, 9999)
	assertKind(t, err, apperrors.KindNotFound)
}
