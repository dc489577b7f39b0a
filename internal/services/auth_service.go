package services

import (
	"context"
	"strings"
	"time"

	"github.com/anonto42/socialfeed/backend/internal/apperrors"
	"github.com/anonto42/socialfeed/backend/internal/auth"
	"github.com/anonto42/socialfeed/backend/internal/models"
	"github.com/anonto42/socialfeed/backend/internal/repositories"
	"github.com/anonto42/socialfeed/backend/pkg/metrics"
	"github.com/araddon/dateparse"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// AuthResult is returned by Register and Login.
type AuthResult struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

type AuthService interface {
	Register(ctx context.Context, req models.RegisterRequest) (*AuthResult, error)
	Login(ctx context.Context, req models.LoginRequest) (*AuthResult, error)
	CurrentUser(ctx context.Context, userID uint) (*models.User, error)
}

type authService struct {
	store   *repositories.Store
	tokens  *auth.TokenService
	hasher  *auth.PasswordHasher
	log     logrus.FieldLogger
	metrics *metrics.Metrics
	now     func() time.Time
}

func NewAuthService(store *repositories.Store, tokens *auth.TokenService, hasher *auth.PasswordHasher, log logrus.FieldLogger, m *metrics.Metrics) AuthService {
	return &authService{store: store, tokens: tokens, hasher: hasher, log: log, metrics: m, now: time.Now}
}

func (s *authService) Register(ctx context.Context, req models.RegisterRequest) (*AuthResult, error) {
	firstName := strings.TrimSpace(req.FirstName)
	lastName := strings.TrimSpace(req.LastName)
	email := strings.ToLower(strings.TrimSpace(req.Email))

	if firstName == "" || lastName == "" || email == "" || req.Password == "" || strings.TrimSpace(req.DateOfBirth) == "" {
		return nil, apperrors.Validation("First name, last name, email, password and date of birth are required")
	}
	if len(req.Password) < 6 {
		return nil, apperrors.Validation("Password must be at least 6 characters")
	}

	dob, err := dateparse.ParseIn(strings.TrimSpace(req.DateOfBirth), time.UTC)
	if err != nil {
		return nil, apperrors.Validation("Invalid date of birth")
	}
	if dob.After(s.now()) {
		return nil, apperrors.Validation("Date of birth cannot be in the future")
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, apperrors.Internal("Failed to register user", err)
	}

	user := &models.User{
		FirstName:    firstName,
		LastName:     lastName,
		Email:        email,
		PasswordHash: hash,
		DateOfBirth:  dob,
	}
	if pic := strings.TrimSpace(req.ProfilePicURL); pic != "" {
		user.ProfilePicURL = &pic
	}

	err = s.store.Transaction(ctx, func(tx *repositories.Store) error {
		if _, err := tx.Users.GetUserByEmail(email); err == nil {
			return apperrors.Conflict("Email already registered")
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return internalErr("Failed to register user", err)
		}

		if err := tx.Users.CreateUser(user); err != nil {
			return conflictOr(err, "Email already registered", "Failed to register user")
		}
		if phone := strings.TrimSpace(req.PhoneNumber); phone != "" {
			if err := tx.Users.AddPhoneNumber(user.ID, phone); err != nil {
				return internalErr("Failed to register user", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	token, err := s.tokens.Generate(user.ID, user.Email)
	if err != nil {
		return nil, apperrors.Internal("Failed to register user", err)
	}

	s.metrics.RecordEvent("user_registered")
	s.log.WithField("user_id", user.ID).Info("user registered")
	return &AuthResult{Token: token, User: user}, nil
}

func (s *authService) Login(ctx context.Context, req models.LoginRequest) (*AuthResult, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || req.Password == "" {
		return nil, apperrors.Validation("Email and password are required")
	}

	user, err := s.store.WithContext(ctx).Users.GetUserByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.Unauthenticated("Invalid credentials")
		}
		return nil, internalErr("Failed to log in", err)
	}
	if !s.hasher.Compare(user.PasswordHash, req.Password) {
		return nil, apperrors.Unauthenticated("Invalid credentials")
	}

	token, err := s.tokens.Generate(user.ID, user.Email)
	if err != nil {
		return nil, apperrors.Internal("Failed to log in", err)
	}

	s.metrics.RecordEvent("user_login")
	return &AuthResult{Token: token, User: user}, nil
}

func (s *authService) CurrentUser(ctx context.Context, userID uint) (*models.User, error) {
	user, err := s.store.WithContext(ctx).Users.GetUserByID(userID)
	if err != nil {
		return nil, notFoundOr(err, "User not found", "Failed to get user")
	}
	return user, nil
}
