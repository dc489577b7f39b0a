package services

import (
	"context"
	"time"

	"github.com/anonto42/socialfeed/backend/internal/apperrors"
	"github.com/anonto42/socialfeed/backend/internal/models"
	"github.com/anonto42/socialfeed/backend/internal/repositories"
	"github.com/anonto42/socialfeed/backend/pkg/metrics"
	"github.com/sirupsen/logrus"
)

const (
	DefaultNotificationLimit = 50
	MaxNotificationLimit     = 100
)

// NotificationList is the payload of GET /notifications.
type NotificationList struct {
	Notifications []models.Notification `json:"notifications"`
	UnreadCount   int64                 `json:"unread_count"`
	Total         int64                 `json:"total"`
}

type NotificationService interface {
	List(ctx context.Context, userID uint, page, limit int) (*NotificationList, error)
	Grouped(ctx context.Context, userID uint) (*models.GroupedNotifications, error)
	MarkRead(ctx context.Context, userID uint, ids []uint) (int64, error)
	Delete(ctx context.Context, userID, id uint) error
	UnreadCount(ctx context.Context, userID uint) (int64, error)
}

type notificationService struct {
	store   *repositories.Store
	log     logrus.FieldLogger
	metrics *metrics.Metrics
	now     func() time.Time
}

func NewNotificationService(store *repositories.Store, log logrus.FieldLogger, m *metrics.Metrics) NotificationService {
	return &notificationService{store: store, log: log, metrics: m, now: time.Now}
}

// List returns the newest notifications. limit 0 means the default; other
// values must be within 1..100.
func (s *notificationService) List(ctx context.Context, userID uint, page, limit int) (*NotificationList, error) {
	if limit == 0 {
		limit = DefaultNotificationLimit
	}
	if limit < 1 || limit > MaxNotificationLimit {
		return nil, apperrors.Validationf("Limit must be between 1 and %d", MaxNotificationLimit)
	}
	if page < 1 {
		page = 1
	}

	store := s.store.WithContext(ctx)
	notifications, total, err := store.Notifications.GetByRecipientID(userID, page, limit)
	if err != nil {
		return nil, internalErr("Failed to get notifications", err)
	}
	unread, err := store.Notifications.GetUnreadCount(userID)
	if err != nil {
		return nil, internalErr("Failed to get notifications", err)
	}
	return &NotificationList{Notifications: notifications, UnreadCount: unread, Total: total}, nil
}

func (s *notificationService) Grouped(ctx context.Context, userID uint) (*models.GroupedNotifications, error) {
	grouped, err := s.store.WithContext(ctx).Notifications.GetGrouped(userID, s.now())
	if err != nil {
		return nil, internalErr("Failed to get notifications", err)
	}
	return grouped, nil
}

// MarkRead marks notifications read and returns how many changed. A nil ids
// slice means every unread notification of the user; a non-nil empty slice
// marks nothing.
func (s *notificationService) MarkRead(ctx context.Context, userID uint, ids []uint) (int64, error) {
	store := s.store.WithContext(ctx)

	var (
		updated int64
		err     error
	)
	if ids == nil {
		updated, err = store.Notifications.MarkAllAsRead(userID)
	} else {
		updated, err = store.Notifications.MarkAsRead(userID, ids)
	}
	if err != nil {
		return 0, internalErr("Failed to mark notifications as read", err)
	}
	return updated, nil
}

func (s *notificationService) Delete(ctx context.Context, userID, id uint) error {
	if err := s.store.WithContext(ctx).Notifications.DeleteNotification(userID, id); err != nil {
		return notFoundOr(err, "Notification not found", "Failed to delete notification")
	}
	return nil
}

func (s *notificationService) UnreadCount(ctx context.Context, userID uint) (int64, error) {
	count, err := s.store.WithContext(ctx).Notifications.GetUnreadCount(userID)
	if err != nil {
		return 0, internalErr("Failed to get unread count", err)
	}
	return count, nil
}
