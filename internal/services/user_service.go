package services

import (
	"context"
	"strings"
	"time"

	"github.com/anonto42/socialfeed/backend/internal/apperrors"
	"github.com/anonto42/socialfeed/backend/internal/models"
	"github.com/anonto42/socialfeed/backend/internal/repositories"
	"github.com/sirupsen/logrus"
)

const (
	DefaultSearchLimit = 10
	MaxSearchLimit     = 50
)

// Profile is a user together with derived statistics. The count fields
// shadow the cached columns of the embedded user with live COUNTs.
type Profile struct {
	*models.User
	Age            int      `json:"age"`
	PhoneNumbers   []string `json:"phone_numbers"`
	FollowersCount int64    `json:"followers_count"`
	FollowingCount int64    `json:"following_count"`
	TotalLikes     int64    `json:"total_likes"`
}

type UserService interface {
	Profile(ctx context.Context, userID uint) (*Profile, error)
	Posts(ctx context.Context, userID uint, page Page) ([]models.Post, int64, error)
	Search(ctx context.Context, query string, limit int) ([]models.UserCompact, error)
	UpdateProfilePicture(ctx context.Context, userID, actorID uint, url string) (*models.User, error)
}

type userService struct {
	store *repositories.Store
	log   logrus.FieldLogger
	now   func() time.Time
}

func NewUserService(store *repositories.Store, log logrus.FieldLogger) UserService {
	return &userService{store: store, log: log, now: time.Now}
}

func (s *userService) Profile(ctx context.Context, userID uint) (*Profile, error) {
	store := s.store.WithContext(ctx)

	user, err := store.Users.GetUserByID(userID)
	if err != nil {
		return nil, notFoundOr(err, "User not found", "Failed to get user profile")
	}

	profile := &Profile{User: user, Age: user.AgeAt(s.now())}
	if profile.PhoneNumbers, err = store.Users.GetPhoneNumbers(userID); err != nil {
		return nil, internalErr("Failed to get user profile", err)
	}
	if profile.FollowersCount, err = store.Follows.GetFollowersCount(userID); err != nil {
		return nil, internalErr("Failed to get user profile", err)
	}
	if profile.FollowingCount, err = store.Follows.GetFollowingCount(userID); err != nil {
		return nil, internalErr("Failed to get user profile", err)
	}
	if profile.TotalLikes, err = store.Posts.SumLikesByUser(userID); err != nil {
		return nil, internalErr("Failed to get user profile", err)
	}
	return profile, nil
}

func (s *userService) Posts(ctx context.Context, userID uint, page Page) ([]models.Post, int64, error) {
	store := s.store.WithContext(ctx)

	if _, err := store.Users.GetUserByID(userID); err != nil {
		return nil, 0, notFoundOr(err, "User not found", "Failed to get user posts")
	}
	total, err := store.Posts.CountPostsByUser(userID)
	if err != nil {
		return nil, 0, internalErr("Failed to get user posts", err)
	}
	posts, err := store.Posts.ListPostsByUser(userID, page.Offset(), page.Limit)
	if err != nil {
		return nil, 0, internalErr("Failed to get user posts", err)
	}
	if err := attachPostAuthors(store, posts); err != nil {
		return nil, 0, internalErr("Failed to get user posts", err)
	}
	return posts, total, nil
}

// Search matches names case-insensitively. A blank query returns no users.
func (s *userService) Search(ctx context.Context, query string, limit int) ([]models.UserCompact, error) {
	results := []models.UserCompact{}
	query = strings.TrimSpace(query)
	if query == "" {
		return results, nil
	}
	if limit < 1 {
		limit = DefaultSearchLimit
	}
	if limit > MaxSearchLimit {
		limit = MaxSearchLimit
	}

	users, err := s.store.WithContext(ctx).Users.SearchUsers(query, limit)
	if err != nil {
		return nil, internalErr("Failed to search users", err)
	}
	for i := range users {
		results = append(results, users[i].ToCompact())
	}
	return results, nil
}

func (s *userService) UpdateProfilePicture(ctx context.Context, userID, actorID uint, url string) (*models.User, error) {
	if userID != actorID {
		return nil, apperrors.Forbidden("You can only update your own profile picture")
	}
	url = strings.TrimSpace(url)
	if url == "" {
		return nil, apperrors.Validation("Profile picture URL is required")
	}

	var user *models.User
	err := s.store.Transaction(ctx, func(tx *repositories.Store) error {
		if err := tx.Users.UpdateProfilePicture(userID, url); err != nil {
			return notFoundOr(err, "User not found", "Failed to update profile picture")
		}
		var err error
		user, err = tx.Users.GetUserByID(userID)
		if err != nil {
			return notFoundOr(err, "User not found", "Failed to update profile picture")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}
