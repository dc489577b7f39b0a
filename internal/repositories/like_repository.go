package repositories

import (
	"github.com/anonto42/socialfeed/backend/internal/models"
	"gorm.io/gorm"
)

// LikeRepository defines the interface for like data operations
type LikeRepository interface {
	CreateLike(like *models.Like) error
	DeleteLike(userID uint, likeType models.LikeType, targetID uint) error
	HasUserLiked(userID uint, likeType models.LikeType, targetID uint) (bool, error)
	DeleteLikesForPost(postID uint, commentIDs []uint) error
	CountLikes() (int64, error)
}

// PostgresLikeRepository implements LikeRepository for PostgreSQL
type PostgresLikeRepository struct {
	db *gorm.DB
}

// NewPostgresLikeRepository creates a new PostgresLikeRepository
func NewPostgresLikeRepository(db *gorm.DB) *PostgresLikeRepository {
	return &PostgresLikeRepository{db: db}
}

// CreateLike creates a new like. A repeated like surfaces as gorm.ErrDuplicatedKey.
func (r *PostgresLikeRepository) CreateLike(like *models.Like) error {
	return r.db.Create(like).Error
}

// DeleteLike removes a like, returning gorm.ErrRecordNotFound if there was none
func (r *PostgresLikeRepository) DeleteLike(userID uint, likeType models.LikeType, targetID uint) error {
	res := r.db.Where("user_id = ? AND like_type = ? AND target_id = ?", userID, likeType, targetID).
		Delete(&models.Like{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// HasUserLiked checks if a user has liked a specific target
func (r *PostgresLikeRepository) HasUserLiked(userID uint, likeType models.LikeType, targetID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.Like{}).
		Where("user_id = ? AND like_type = ? AND target_id = ?", userID, likeType, targetID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// DeleteLikesForPost removes the likes on a post and on the given comments
func (r *PostgresLikeRepository) DeleteLikesForPost(postID uint, commentIDs []uint) error {
	q := r.db.Where("post_id = ?", postID)
	if len(commentIDs) > 0 {
		q = q.Or("comment_id IN ?", commentIDs)
	}
	return q.Delete(&models.Like{}).Error
}

func (r *PostgresLikeRepository) CountLikes() (int64, error) {
	var count int64
	err := r.db.Model(&models.Like{}).Count(&count).Error
	return count, err
}
