package repositories

import (
	"context"

	"github.com/anonto42/socialfeed/backend/internal/models"
	"gorm.io/gorm"
)

// Store bundles every repository over one *gorm.DB so that a service can run
// several of them inside a single transaction.
type Store struct {
	db *gorm.DB

	Users         UserRepository
	Posts         PostRepository
	Comments      CommentRepository
	Likes         LikeRepository
	Friendships   FriendshipRepository
	Follows       FollowRepository
	Notifications NotificationRepository
}

// NewStore creates a Store backed by db
func NewStore(db *gorm.DB) *Store {
	return &Store{
		db:            db,
		Users:         NewPostgresUserRepository(db),
		Posts:         NewPostgresPostRepository(db),
		Comments:      NewPostgresCommentRepository(db),
		Likes:         NewPostgresLikeRepository(db),
		Friendships:   NewPostgresFriendshipRepository(db),
		Follows:       NewPostgresFollowRepository(db),
		Notifications: NewPostgresNotificationRepository(db),
	}
}

// DB exposes the underlying handle, used by health checks.
func (s *Store) DB() *gorm.DB {
	return s.db
}

// WithContext returns a Store whose queries are bound to ctx.
func (s *Store) WithContext(ctx context.Context) *Store {
	return NewStore(s.db.WithContext(ctx))
}

// Transaction runs fn against a transactional Store. Returning an error from
// fn rolls back every write made through tx.
func (s *Store) Transaction(ctx context.Context, fn func(tx *Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewStore(tx))
	})
}

// AutoMigrate creates or updates the schema for every model.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.PhoneNumber{},
		&models.Post{},
		&models.Comment{},
		&models.Like{},
		&models.Friendship{},
		&models.Follow{},
		&models.Notification{},
	)
}
