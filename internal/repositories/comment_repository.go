package repositories

import (
	"github.com/anonto42/socialfeed/backend/internal/models"
	"gorm.io/gorm"
)

// CommentRepository defines the interface for comment data operations
type CommentRepository interface {
	CreateComment(comment *models.Comment) error
	GetCommentByID(id uint) (*models.Comment, error)
	GetCommentsByPostID(postID uint) ([]models.Comment, error)
	GetCommentIDsByPostID(postID uint) ([]uint, error)
	DeleteCommentsByPostID(postID uint) error
	IncrementLikesCount(id uint) error
	DecrementLikesCount(id uint) error
	CountComments() (int64, error)
}

// PostgresCommentRepository implements CommentRepository for PostgreSQL
type PostgresCommentRepository struct {
	db *gorm.DB
}

// NewPostgresCommentRepository creates a new PostgresCommentRepository
func NewPostgresCommentRepository(db *gorm.DB) *PostgresCommentRepository {
	return &PostgresCommentRepository{db: db}
}

// CreateComment creates a new comment or reply
func (r *PostgresCommentRepository) CreateComment(comment *models.Comment) error {
	return r.db.Create(comment).Error
}

// GetCommentByID retrieves a comment by its ID
func (r *PostgresCommentRepository) GetCommentByID(id uint) (*models.Comment, error) {
	var comment models.Comment
	if err := r.db.First(&comment, id).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

// GetCommentsByPostID retrieves every comment and reply of a post, oldest first
func (r *PostgresCommentRepository) GetCommentsByPostID(postID uint) ([]models.Comment, error) {
	comments := []models.Comment{}
	if err := r.db.Where("post_id = ?", postID).Order("created_at ASC, id ASC").Find(&comments).Error; err != nil {
		return nil, err
	}
	return comments, nil
}

func (r *PostgresCommentRepository) GetCommentIDsByPostID(postID uint) ([]uint, error) {
	var ids []uint
	err := r.db.Model(&models.Comment{}).Where("post_id = ?", postID).Pluck("id", &ids).Error
	return ids, err
}

func (r *PostgresCommentRepository) DeleteCommentsByPostID(postID uint) error {
	return r.db.Where("post_id = ?", postID).Delete(&models.Comment{}).Error
}

func (r *PostgresCommentRepository) IncrementLikesCount(id uint) error {
	return r.db.Model(&models.Comment{}).Where("id = ?", id).
		UpdateColumn("likes_count", gorm.Expr("likes_count + ?", 1)).Error
}

func (r *PostgresCommentRepository) DecrementLikesCount(id uint) error {
	return r.db.Model(&models.Comment{}).Where("id = ? AND likes_count > 0", id).
		UpdateColumn("likes_count", gorm.Expr("likes_count - ?", 1)).Error
}

func (r *PostgresCommentRepository) CountComments() (int64, error) {
	var count int64
	err := r.db.Model(&models.Comment{}).Count(&count).Error
	return count, err
}
