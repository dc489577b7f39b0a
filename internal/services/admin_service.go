package services

import (
	"context"
	"time"

	"github.com/anonto42/socialfeed/backend/internal/models"
	"github.com/anonto42/socialfeed/backend/internal/repositories"
)

const (
	topUsersLimit = 10
	recentWindow  = 7 * 24 * time.Hour
)

type AdminService interface {
	Stats(ctx context.Context) (*models.PlatformStats, error)
}

type adminService struct {
	store *repositories.Store
	now   func() time.Time
}

func NewAdminService(store *repositories.Store) AdminService {
	return &adminService{store: store, now: time.Now}
}

func (s *adminService) Stats(ctx context.Context) (*models.PlatformStats, error) {
	store := s.store.WithContext(ctx)
	stats := &models.PlatformStats{TopUsers: []models.UserCompact{}}

	var err error
	if stats.TotalUsers, err = store.Users.CountUsers(); err != nil {
		return nil, internalErr("Failed to get stats", err)
	}
	if stats.TotalPosts, err = store.Posts.CountPosts(); err != nil {
		return nil, internalErr("Failed to get stats", err)
	}
	if stats.TotalComments, err = store.Comments.CountComments(); err != nil {
		return nil, internalErr("Failed to get stats", err)
	}
	if stats.TotalLikes, err = store.Likes.CountLikes(); err != nil {
		return nil, internalErr("Failed to get stats", err)
	}
	if stats.TotalFriendships, err = store.Friendships.CountAccepted(); err != nil {
		return nil, internalErr("Failed to get stats", err)
	}
	if stats.TotalPostLikes, err = store.Posts.SumLikes(); err != nil {
		return nil, internalErr("Failed to get stats", err)
	}
	if stats.RecentPosts7Days, err = store.Posts.CountPostsSince(s.now().Add(-recentWindow)); err != nil {
		return nil, internalErr("Failed to get stats", err)
	}

	top, err := store.Users.GetTopPosters(topUsersLimit)
	if err != nil {
		return nil, internalErr("Failed to get stats", err)
	}
	for i := range top {
		stats.TopUsers = append(stats.TopUsers, top[i].ToCompact())
	}
	return stats, nil
}
