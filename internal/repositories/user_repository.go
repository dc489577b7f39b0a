package repositories

import (
	"strings"

	"github.com/anonto42/socialfeed/backend/internal/models"
	"gorm.io/gorm"
)

// UserRepository defines the interface for user data operations
type UserRepository interface {
	CreateUser(user *models.User) error
	GetUserByID(id uint) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetUsersByIDs(ids []uint) ([]models.User, error)
	SearchUsers(query string, limit int) ([]models.User, error)
	UpdateProfilePicture(id uint, url string) error
	AddPhoneNumber(userID uint, number string) error
	GetPhoneNumbers(userID uint) ([]string, error)
	IncrementPostCount(id uint) error
	DecrementPostCount(id uint) error
	IncrementFollowersCount(id uint) error
	DecrementFollowersCount(id uint) error
	IncrementFollowingCount(id uint) error
	DecrementFollowingCount(id uint) error
	CountUsers() (int64, error)
	GetTopPosters(limit int) ([]models.User, error)
}

// PostgresUserRepository implements UserRepository for PostgreSQL
type PostgresUserRepository struct {
	db *gorm.DB
}

// NewPostgresUserRepository creates a new PostgresUserRepository
func NewPostgresUserRepository(db *gorm.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

// CreateUser creates a new user. A duplicate email surfaces as gorm.ErrDuplicatedKey.
func (r *PostgresUserRepository) CreateUser(user *models.User) error {
	return r.db.Create(user).Error
}

// GetUserByID retrieves a user by ID
func (r *PostgresUserRepository) GetUserByID(id uint) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUserByEmail retrieves a user by (lower-cased) email
func (r *PostgresUserRepository) GetUserByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("email = ?", strings.ToLower(email)).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUsersByIDs loads several users at once; missing ids are skipped.
func (r *PostgresUserRepository) GetUsersByIDs(ids []uint) ([]models.User, error) {
	var users []models.User
	if len(ids) == 0 {
		return users, nil
	}
	if err := r.db.Where("id IN ?", ids).Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// SearchUsers matches first name, last name or full name case-insensitively
func (r *PostgresUserRepository) SearchUsers(query string, limit int) ([]models.User, error) {
	var users []models.User
	pattern := "%" + strings.ToLower(query) + "%"
	err := r.db.
		Where("LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ? OR LOWER(first_name || ' ' || last_name) LIKE ?",
			pattern, pattern, pattern).
		Order("first_name ASC, last_name ASC, id ASC").
		Limit(limit).
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}

func (r *PostgresUserRepository) UpdateProfilePicture(id uint, url string) error {
	res := r.db.Model(&models.User{}).Where("id = ?", id).Update("profile_pic_url", url)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *PostgresUserRepository) AddPhoneNumber(userID uint, number string) error {
	return r.db.Create(&models.PhoneNumber{UserID: userID, PhoneNumber: number}).Error
}

func (r *PostgresUserRepository) GetPhoneNumbers(userID uint) ([]string, error) {
	numbers := []string{}
	err := r.db.Model(&models.PhoneNumber{}).
		Where("user_id = ?", userID).
		Order("id ASC").
		Pluck("phone_number", &numbers).Error
	return numbers, err
}

func (r *PostgresUserRepository) IncrementPostCount(id uint) error {
	return r.adjust(id, "post_count", 1)
}

func (r *PostgresUserRepository) DecrementPostCount(id uint) error {
	return r.adjust(id, "post_count", -1)
}

func (r *PostgresUserRepository) IncrementFollowersCount(id uint) error {
	return r.adjust(id, "followers_count", 1)
}

func (r *PostgresUserRepository) DecrementFollowersCount(id uint) error {
	return r.adjust(id, "followers_count", -1)
}

func (r *PostgresUserRepository) IncrementFollowingCount(id uint) error {
	return r.adjust(id, "following_count", 1)
}

func (r *PostgresUserRepository) DecrementFollowingCount(id uint) error {
	return r.adjust(id, "following_count", -1)
}

// adjust moves a counter column by delta without letting it go negative.
func (r *PostgresUserRepository) adjust(id uint, column string, delta int) error {
	q := r.db.Model(&models.User{}).Where("id = ?", id)
	if delta < 0 {
		q = q.Where(column+" >= ?", -delta)
	}
	return q.UpdateColumn(column, gorm.Expr(column+" + ?", delta)).Error
}

func (r *PostgresUserRepository) CountUsers() (int64, error) {
	var count int64
	err := r.db.Model(&models.User{}).Count(&count).Error
	return count, err
}

// GetTopPosters returns the users with the most posts.
func (r *PostgresUserRepository) GetTopPosters(limit int) ([]models.User, error) {
	var users []models.User
	err := r.db.Order("post_count DESC, id ASC").Limit(limit).Find(&users).Error
	return users, err
}
