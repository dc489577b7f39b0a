package repositories

import (
	"time"

	"github.com/anonto42/socialfeed/backend/internal/models"
	"gorm.io/gorm"
)

// NotificationRepository defines the interface for notification operations
type NotificationRepository interface {
	CreateNotification(notification *models.Notification) error
	GetByRecipientID(recipientID uint, page, limit int) ([]models.Notification, int64, error)
	GetGrouped(recipientID uint, now time.Time) (*models.GroupedNotifications, error)
	GetUnreadCount(recipientID uint) (int64, error)
	MarkAsRead(recipientID uint, ids []uint) (int64, error)
	MarkAllAsRead(recipientID uint) (int64, error)
	DeleteNotification(recipientID, id uint) error
}

type postgresNotificationRepository struct {
	db *gorm.DB
}

func NewPostgresNotificationRepository(db *gorm.DB) NotificationRepository {
	return &postgresNotificationRepository{db: db}
}

func (r *postgresNotificationRepository) CreateNotification(notification *models.Notification) error {
	return r.db.Create(notification).Error
}

func (r *postgresNotificationRepository) GetByRecipientID(recipientID uint, page, limit int) ([]models.Notification, int64, error) {
	notifications := []models.Notification{}
	var total int64

	if err := r.db.Model(&models.Notification{}).Where("user_id = ?", recipientID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	err := r.db.Where("user_id = ?", recipientID).
		Order("created_at DESC, id DESC").
		Offset(offset).Limit(limit).
		Find(&notifications).Error

	return notifications, total, err
}

func (r *postgresNotificationRepository) GetGrouped(recipientID uint, now time.Time) (*models.GroupedNotifications, error) {
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	yesterdayStart := todayStart.AddDate(0, 0, -1)
	weekStart := todayStart.AddDate(0, 0, -7)

	grouped := &models.GroupedNotifications{
		Today:     []models.Notification{},
		Yesterday: []models.Notification{},
		ThisWeek:  []models.Notification{},
		Earlier:   []models.Notification{},
	}

	// Today
	if err := r.db.Where("user_id = ? AND created_at >= ?", recipientID, todayStart).
		Order("created_at DESC, id DESC").Find(&grouped.Today).Error; err != nil {
		return nil, err
	}

	// Yesterday
	if err := r.db.Where("user_id = ? AND created_at >= ? AND created_at < ?", recipientID, yesterdayStart, todayStart).
		Order("created_at DESC, id DESC").Find(&grouped.Yesterday).Error; err != nil {
		return nil, err
	}

	// This week (excluding today and yesterday)
	if err := r.db.Where("user_id = ? AND created_at >= ? AND created_at < ?", recipientID, weekStart, yesterdayStart).
		Order("created_at DESC, id DESC").Find(&grouped.ThisWeek).Error; err != nil {
		return nil, err
	}

	// Older
	if err := r.db.Where("user_id = ? AND created_at < ?", recipientID, weekStart).
		Order("created_at DESC, id DESC").Limit(50).Find(&grouped.Earlier).Error; err != nil {
		return nil, err
	}

	return grouped, nil
}

func (r *postgresNotificationRepository) GetUnreadCount(recipientID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Notification{}).Where("user_id = ? AND is_read = ?", recipientID, false).Count(&count).Error
	return count, err
}

// MarkAsRead marks the listed notifications read; ids owned by someone else are ignored.
func (r *postgresNotificationRepository) MarkAsRead(recipientID uint, ids []uint) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	res := r.db.Model(&models.Notification{}).
		Where("user_id = ? AND id IN ? AND is_read = ?", recipientID, ids, false).
		Update("is_read", true)
	return res.RowsAffected, res.Error
}

func (r *postgresNotificationRepository) MarkAllAsRead(recipientID uint) (int64, error) {
	res := r.db.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", recipientID, false).
		Update("is_read", true)
	return res.RowsAffected, res.Error
}

// DeleteNotification deletes one notification belonging to recipientID
func (r *postgresNotificationRepository) DeleteNotification(recipientID, id uint) error {
	res := r.db.Where("id = ? AND user_id = ?", id, recipientID).Delete(&models.Notification{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
