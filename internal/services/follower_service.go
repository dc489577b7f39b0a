package services

import (
	"context"

	"github.com/anonto42/socialfeed/backend/internal/apperrors"
	"github.com/anonto42/socialfeed/backend/internal/models"
	"github.com/anonto42/socialfeed/backend/internal/repositories"
	"github.com/anonto42/socialfeed/backend/pkg/metrics"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type FollowerService interface {
	Follow(ctx context.Context, followerID, targetID uint) error
	Unfollow(ctx context.Context, followerID, targetID uint) error
	Followers(ctx context.Context, userID uint) ([]models.FollowEntry, error)
	Following(ctx context.Context, userID uint) ([]models.FollowEntry, error)
	IsFollowing(ctx context.Context, followerID, targetID uint) (bool, error)
	Stats(ctx context.Context, userID uint) (*models.FollowStats, error)
}

type followerService struct {
	store   *repositories.Store
	log     logrus.FieldLogger
	metrics *metrics.Metrics
}

func NewFollowerService(store *repositories.Store, log logrus.FieldLogger, m *metrics.Metrics) FollowerService {
	return &followerService{store: store, log: log, metrics: m}
}

func (s *followerService) Follow(ctx context.Context, followerID, targetID uint) error {
	if followerID == targetID {
		return apperrors.Validation("You cannot follow yourself")
	}

	err := s.store.Transaction(ctx, func(tx *repositories.Store) error {
		if _, err := tx.Users.GetUserByID(targetID); err != nil {
			return notFoundOr(err, "User not found", "Failed to follow user")
		}

		following, err := tx.Follows.IsFollowing(followerID, targetID)
		if err != nil {
			return internalErr("Failed to follow user", err)
		}
		if following {
			return apperrors.Conflict("You are already following this user")
		}

		if err := tx.Follows.CreateFollow(&models.Follow{FollowerID: followerID, FollowingID: targetID}); err != nil {
			return conflictOr(err, "You are already following this user", "Failed to follow user")
		}
		if err := tx.Users.IncrementFollowingCount(followerID); err != nil {
			return internalErr("Failed to follow user", err)
		}
		if err := tx.Users.IncrementFollowersCount(targetID); err != nil {
			return internalErr("Failed to follow user", err)
		}
		if err := notify(tx, targetID, followerID, models.NotificationOther, "started following you"); err != nil {
			return internalErr("Failed to follow user", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.metrics.RecordEvent("follow")
	s.metrics.RecordNotification(string(models.NotificationOther))
	return nil
}

func (s *followerService) Unfollow(ctx context.Context, followerID, targetID uint) error {
	err := s.store.Transaction(ctx, func(tx *repositories.Store) error {
		if err := tx.Follows.DeleteFollow(followerID, targetID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.Validation("You are not following this user")
			}
			return internalErr("Failed to unfollow user", err)
		}
		if err := tx.Users.DecrementFollowingCount(followerID); err != nil {
			return internalErr("Failed to unfollow user", err)
		}
		if err := tx.Users.DecrementFollowersCount(targetID); err != nil {
			return internalErr("Failed to unfollow user", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.metrics.RecordEvent("unfollow")
	return nil
}

func (s *followerService) Followers(ctx context.Context, userID uint) ([]models.FollowEntry, error) {
	store := s.store.WithContext(ctx)
	follows, err := store.Follows.GetFollowers(userID)
	if err != nil {
		return nil, internalErr("Failed to get followers", err)
	}
	entries, err := followEntries(store, follows, func(f models.Follow) uint { return f.FollowerID })
	if err != nil {
		return nil, internalErr("Failed to get followers", err)
	}
	return entries, nil
}

func (s *followerService) Following(ctx context.Context, userID uint) ([]models.FollowEntry, error) {
	store := s.store.WithContext(ctx)
	follows, err := store.Follows.GetFollowing(userID)
	if err != nil {
		return nil, internalErr("Failed to get following", err)
	}
	entries, err := followEntries(store, follows, func(f models.Follow) uint { return f.FollowingID })
	if err != nil {
		return nil, internalErr("Failed to get following", err)
	}
	return entries, nil
}

// followEntries resolves the user on the far side of each edge, keeping edge order.
func followEntries(store *repositories.Store, follows []models.Follow, other func(models.Follow) uint) ([]models.FollowEntry, error) {
	ids := make([]uint, 0, len(follows))
	for _, f := range follows {
		ids = append(ids, other(f))
	}
	users, err := compactUsers(store, ids)
	if err != nil {
		return nil, err
	}

	entries := make([]models.FollowEntry, 0, len(follows))
	for _, f := range follows {
		user, ok := users[other(f)]
		if !ok {
			continue
		}
		entries = append(entries, models.FollowEntry{UserCompact: user, FollowedAt: f.CreatedAt})
	}
	return entries, nil
}

func (s *followerService) IsFollowing(ctx context.Context, followerID, targetID uint) (bool, error) {
	following, err := s.store.WithContext(ctx).Follows.IsFollowing(followerID, targetID)
	if err != nil {
		return false, internalErr("Failed to check follow status", err)
	}
	return following, nil
}

// Stats counts edges directly rather than trusting the cached user columns.
func (s *followerService) Stats(ctx context.Context, userID uint) (*models.FollowStats, error) {
	store := s.store.WithContext(ctx)

	if _, err := store.Users.GetUserByID(userID); err != nil {
		return nil, notFoundOr(err, "User not found", "Failed to get follow stats")
	}
	followers, err := store.Follows.GetFollowersCount(userID)
	if err != nil {
		return nil, internalErr("Failed to get follow stats", err)
	}
	following, err := store.Follows.GetFollowingCount(userID)
	if err != nil {
		return nil, internalErr("Failed to get follow stats", err)
	}
	return &models.FollowStats{UserID: userID, FollowersCount: followers, FollowingCount: following}, nil
}
