package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/anonto42/socialfeed/backend/internal/apperrors"
	"github.com/anonto42/socialfeed/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedNotifications(t *testing.T, e *env, userID uint, n int) []models.Notification {
	t.Helper()
	out := make([]models.Notification, 0, n)
	for i := 0; i < n; i++ {
		note := models.Notification{UserID: userID, NotificationType: models.NotificationOther, Content: fmt.Sprintf("note %d", i)}
		require.NoError(t, e.store.Notifications.CreateNotification(&note))
		out = append(out, note)
	}
	return out
}

func TestNotificationService_ListLimits(t *testing.T) {
	e := newEnv(t)
	svc := NewNotificationService(e.store, e.log, nil)
	user := e.user(t, "Jane", "Doe", "jane@example.com")
	seedNotifications(t, e, user.ID, 3)

	list, err := svc.List(e.ctx, user.ID, 1, 0)
	require.NoError(t, err)
	assert.Len(t, list.Notifications, 3)
	assert.Equal(t, int64(3), list.UnreadCount)
	assert.Equal(t, "note 2", list.Notifications[0].Content)

	list, err = svc.List(e.ctx, user.ID, 1, 2)
	require.NoError(t, err)
	assert.Len(t, list.Notifications, 2)
	assert.Equal(t, int64(3), list.Total)

	_, err = svc.List(e.ctx, user.ID, 1, 101)
	assertKind(t, err, apperrors.KindValidation)
	_, err = svc.List(e.ctx, user.ID, 1, -1)
	assertKind(t, err, apperrors.KindValidation)
}

func TestNotificationService_MarkRead(t *testing.T) {
	e := newEnv(t)
	svc := NewNotificationService(e.store, e.log, nil)
	jane := e.user(t, "Jane", "Doe", "jane@example.com")
	john := e.user(t, "John", "Smith", "john@example.com")
	mine := seedNotifications(t, e, jane.ID, 3)
	theirs := seedNotifications(t, e, john.ID, 1)

	// an empty list marks nothing
	n, err := svc.MarkRead(e.ctx, jane.ID, []uint{})
	require.NoError(t, err)
	assert.Zero(t, n)

	// someone else's id is ignored
	n, err = svc.MarkRead(e.ctx, jane.ID, []uint{mine[0].ID, theirs[0].ID})
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	unread, err := svc.UnreadCount(e.ctx, jane.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), unread)

	n, err = svc.MarkRead(e.ctx, jane.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	unread, err = svc.UnreadCount(e.ctx, jane.ID)
	require.NoError(t, err)
	assert.Zero(t, unread)

	unread, err = svc.UnreadCount(e.ctx, john.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), unread)
}

func TestNotificationService_Delete(t *testing.T) {
	e := newEnv(t)
	svc := NewNotificationService(e.store, e.log, nil)
	jane := e.user(t, "Jane", "Doe", "jane@example.com")
	john := e.user(t, "John", "Smith", "john@example.com")
	mine := seedNotifications(t, e, jane.ID, 1)
	theirs := seedNotifications(t, e, john.ID, 1)

	assertKind(t, svc.Delete(e.ctx, jane.ID, theirs[0].ID), apperrors.KindNotFound)
	require.NoError(t, svc.Delete(e.ctx, jane.ID, mine[0].ID))
	assertKind(t, svc.Delete(e.ctx, jane.ID, mine[0].ID), apperrors.KindNotFound)
}

func TestNotificationService_Grouped(t *testing.T) {
	e := newEnv(t)
	svc := NewNotificationService(e.store, e.log, nil).(*notificationService)
	now := time.Date(2024, time.May, 10, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }
	user := e.user(t, "Jane", "Doe", "jane@example.com")

	require.NoError(t, e.store.Notifications.CreateNotification(&models.Notification{
		UserID: user.ID, NotificationType: models.NotificationLike, Content: "today", CreatedAt: now.Add(-time.Minute),
	}))
	require.NoError(t, e.store.Notifications.CreateNotification(&models.Notification{
		UserID: user.ID, NotificationType: models.NotificationLike, Content: "old", CreatedAt: now.AddDate(0, -1, 0),
	}))

	grouped, err := svc.Grouped(e.ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, grouped.Today, 1)
	assert.Equal(t, "today", grouped.Today[0].Content)
	assert.Empty(t, grouped.Yesterday)
	assert.Empty(t, grouped.ThisWeek)
	assert.Len(t, grouped.Earlier, 1)
}
