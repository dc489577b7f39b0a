package repositories

import (
	"github.com/anonto42/socialfeed/backend/internal/models"
	"gorm.io/gorm"
)

// FriendshipRepository defines the interface for friendship data operations
type FriendshipRepository interface {
	CreateFriendship(friendship *models.Friendship) error
	GetFriendshipByID(id uint) (*models.Friendship, error)
	GetFriendshipBetween(userA, userB uint) (*models.Friendship, error)
	UpdateStatus(id uint, status models.FriendshipStatus) error
	DeleteFriendship(id uint) error
	GetAcceptedFriendships(userID uint) ([]models.Friendship, error)
	GetPendingRequests(recipientID uint) ([]models.Friendship, error)
	CountAccepted() (int64, error)
}

// PostgresFriendshipRepository implements FriendshipRepository for PostgreSQL
type PostgresFriendshipRepository struct {
	db *gorm.DB
}

// NewPostgresFriendshipRepository creates a new PostgresFriendshipRepository
func NewPostgresFriendshipRepository(db *gorm.DB) *PostgresFriendshipRepository {
	return &PostgresFriendshipRepository{db: db}
}

// CreateFriendship inserts a row; a second row for the same pair in either
// direction surfaces as gorm.ErrDuplicatedKey.
func (r *PostgresFriendshipRepository) CreateFriendship(friendship *models.Friendship) error {
	return r.db.Create(friendship).Error
}

func (r *PostgresFriendshipRepository) GetFriendshipByID(id uint) (*models.Friendship, error) {
	var friendship models.Friendship
	if err := r.db.First(&friendship, id).Error; err != nil {
		return nil, err
	}
	return &friendship, nil
}

// GetFriendshipBetween finds the row for an unordered pair of users
func (r *PostgresFriendshipRepository) GetFriendshipBetween(userA, userB uint) (*models.Friendship, error) {
	low, high := userA, userB
	if low > high {
		low, high = high, low
	}
	var friendship models.Friendship
	if err := r.db.Where("pair_low = ? AND pair_high = ?", low, high).First(&friendship).Error; err != nil {
		return nil, err
	}
	return &friendship, nil
}

func (r *PostgresFriendshipRepository) UpdateStatus(id uint, status models.FriendshipStatus) error {
	res := r.db.Model(&models.Friendship{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *PostgresFriendshipRepository) DeleteFriendship(id uint) error {
	res := r.db.Delete(&models.Friendship{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// GetAcceptedFriendships lists accepted friendships on either side, most recently accepted first
func (r *PostgresFriendshipRepository) GetAcceptedFriendships(userID uint) ([]models.Friendship, error) {
	var friendships []models.Friendship
	err := r.db.Where("status = ? AND (requester_id = ? OR recipient_id = ?)", models.FriendshipAccepted, userID, userID).
		Order("updated_at DESC, id DESC").
		Find(&friendships).Error
	return friendships, err
}

// GetPendingRequests lists requests waiting on the recipient, newest first
func (r *PostgresFriendshipRepository) GetPendingRequests(recipientID uint) ([]models.Friendship, error) {
	var friendships []models.Friendship
	err := r.db.Where("status = ? AND recipient_id = ?", models.FriendshipPending, recipientID).
		Order("created_at DESC, id DESC").
		Find(&friendships).Error
	return friendships, err
}

func (r *PostgresFriendshipRepository) CountAccepted() (int64, error) {
	var count int64
	err := r.db.Model(&models.Friendship{}).Where("status = ?", models.FriendshipAccepted).Count(&count).Error
	return count, err
}
