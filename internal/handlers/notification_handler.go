package handlers

import (
	"net/http"

	"github.com/anonto42/socialfeed/backend/internal/models"
	"github.com/anonto42/socialfeed/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// NotificationHandler handles notification-related HTTP requests
type NotificationHandler struct {
	notificationService services.NotificationService
}

// NewNotificationHandler creates a new NotificationHandler
func NewNotificationHandler(notificationService services.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

// RegisterNotificationRoutes registers notification routes; the group is
// expected to require authentication.
func (h *NotificationHandler) RegisterNotificationRoutes(g *echo.Group) {
	g.GET("", h.GetNotifications)
	g.GET("/grouped", h.GetGroupedNotifications)
	g.GET("/unread-count", h.GetUnreadCount)
	g.POST("/mark-read", h.MarkAsRead)
	g.DELETE("/:id", h.DeleteNotification)
}

// GetNotifications returns the newest notifications with the unread count
func (h *NotificationHandler) GetNotifications(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return err
	}
	page, err := queryInt(c, "page", 1)
	if err != nil {
		return err
	}
	limit, err := queryInt(c, "limit", services.DefaultNotificationLimit)
	if err != nil {
		return err
	}

	list, err := h.notificationService.List(c.Request().Context(), userID, page, limit)
	if err != nil {
		return err
	}
	return ok(c, list)
}

// GetGroupedNotifications buckets notifications into today, yesterday,
// this week and earlier
func (h *NotificationHandler) GetGroupedNotifications(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return err
	}
	grouped, err := h.notificationService.Grouped(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return ok(c, grouped)
}

func (h *NotificationHandler) GetUnreadCount(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return err
	}
	count, err := h.notificationService.UnreadCount(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return ok(c, echo.Map{"unread_count": count})
}

// MarkAsRead marks the listed notifications read, or all of them when
// notificationIds is omitted
func (h *NotificationHandler) MarkAsRead(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return err
	}

	var req models.MarkReadRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	updated, err := h.notificationService.MarkRead(c.Request().Context(), userID, req.NotificationIDs)
	if err != nil {
		return err
	}
	return success(c, http.StatusOK, "Notifications marked as read", echo.Map{"updated": updated})
}

func (h *NotificationHandler) DeleteNotification(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return err
	}
	notificationID, err := parseIDParam(c, "id", "notification")
	if err != nil {
		return err
	}

	if err := h.notificationService.Delete(c.Request().Context(), userID, notificationID); err != nil {
		return err
	}
	return success(c, http.StatusOK, "Notification deleted", nil)
}
