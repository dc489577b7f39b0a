package repositories

import (
	"time"

	"github.com/anonto42/socialfeed/backend/internal/models"
	"gorm.io/gorm"
)

// PostRepository defines the interface for post data operations
type PostRepository interface {
	CreatePost(post *models.Post) error
	GetPostByID(id uint) (*models.Post, error)
	ListPosts(offset, limit int) ([]models.Post, error)
	CountPosts() (int64, error)
	ListPostsByUser(userID uint, offset, limit int) ([]models.Post, error)
	CountPostsByUser(userID uint) (int64, error)
	GetTopLiked(limit int) ([]models.Post, error)
	DeletePost(id uint) error
	IncrementLikesCount(id uint) error
	DecrementLikesCount(id uint) error
	IncrementCommentsCount(id uint) error
	SumLikesByUser(userID uint) (int64, error)
	SumLikes() (int64, error)
	CountPostsSince(since time.Time) (int64, error)
}

// PostgresPostRepository implements PostRepository for PostgreSQL
type PostgresPostRepository struct {
	db *gorm.DB
}

// NewPostgresPostRepository creates a new PostgresPostRepository
func NewPostgresPostRepository(db *gorm.DB) *PostgresPostRepository {
	return &PostgresPostRepository{db: db}
}

func (r *PostgresPostRepository) CreatePost(post *models.Post) error {
	return r.db.Create(post).Error
}

func (r *PostgresPostRepository) GetPostByID(id uint) (*models.Post, error) {
	var post models.Post
	if err := r.db.First(&post, id).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

// ListPosts returns a page of posts, newest first
func (r *PostgresPostRepository) ListPosts(offset, limit int) ([]models.Post, error) {
	var posts []models.Post
	err := r.db.Order("created_at DESC, id DESC").Offset(offset).Limit(limit).Find(&posts).Error
	return posts, err
}

func (r *PostgresPostRepository) CountPosts() (int64, error) {
	var count int64
	err := r.db.Model(&models.Post{}).Count(&count).Error
	return count, err
}

func (r *PostgresPostRepository) ListPostsByUser(userID uint, offset, limit int) ([]models.Post, error) {
	var posts []models.Post
	err := r.db.Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Offset(offset).Limit(limit).
		Find(&posts).Error
	return posts, err
}

func (r *PostgresPostRepository) CountPostsByUser(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Post{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

// GetTopLiked returns posts ordered by like count, newest first on ties
func (r *PostgresPostRepository) GetTopLiked(limit int) ([]models.Post, error) {
	var posts []models.Post
	err := r.db.Order("likes_count DESC, created_at DESC, id DESC").Limit(limit).Find(&posts).Error
	return posts, err
}

func (r *PostgresPostRepository) DeletePost(id uint) error {
	res := r.db.Delete(&models.Post{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *PostgresPostRepository) IncrementLikesCount(id uint) error {
	return r.db.Model(&models.Post{}).Where("id = ?", id).
		UpdateColumn("likes_count", gorm.Expr("likes_count + ?", 1)).Error
}

func (r *PostgresPostRepository) DecrementLikesCount(id uint) error {
	return r.db.Model(&models.Post{}).Where("id = ? AND likes_count > 0", id).
		UpdateColumn("likes_count", gorm.Expr("likes_count - ?", 1)).Error
}

func (r *PostgresPostRepository) IncrementCommentsCount(id uint) error {
	return r.db.Model(&models.Post{}).Where("id = ?", id).
		UpdateColumn("comments_count", gorm.Expr("comments_count + ?", 1)).Error
}

// SumLikesByUser totals likes_count across every post the user wrote
func (r *PostgresPostRepository) SumLikesByUser(userID uint) (int64, error) {
	var total int64
	err := r.db.Model(&models.Post{}).Where("user_id = ?", userID).
		Select("COALESCE(SUM(likes_count), 0)").Scan(&total).Error
	return total, err
}

func (r *PostgresPostRepository) SumLikes() (int64, error) {
	var total int64
	err := r.db.Model(&models.Post{}).Select("COALESCE(SUM(likes_count), 0)").Scan(&total).Error
	return total, err
}

func (r *PostgresPostRepository) CountPostsSince(since time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&models.Post{}).Where("created_at >= ?", since).Count(&count).Error
	return count, err
}
