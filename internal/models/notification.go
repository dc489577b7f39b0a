package models

import "time"

// NotificationType is the event that produced a notification.
type NotificationType string

const (
	NotificationLike          NotificationType = "like"
	NotificationComment       NotificationType = "comment" // comments and replies
	NotificationFriendRequest NotificationType = "friend_request"
	NotificationOther         NotificationType = "other" // follows
)

// Notification is an event delivered to a single user
type Notification struct {
	ID               uint             `json:"notification_id" gorm:"primaryKey"`
	UserID           uint             `json:"user_id" gorm:"index;not null"` // recipient
	NotificationType NotificationType `json:"notification_type" gorm:"type:varchar(30);not null"`
	Content          string           `json:"content" gorm:"type:text;not null"`
	IsRead           bool             `json:"is_read" gorm:"not null;default:false;index"`
	CreatedAt        time.Time        `json:"created_at" gorm:"index"`
}

// MarkReadRequest defines the request body for marking notifications read.
// A missing notificationIds marks everything; an empty list marks nothing.
type MarkReadRequest struct {
	NotificationIDs []uint `json:"notificationIds"`
}

// GroupedNotifications buckets a user's notifications by age.
type GroupedNotifications struct {
	Today     []Notification `json:"today"`
	Yesterday []Notification `json:"yesterday"`
	ThisWeek  []Notification `json:"this_week"`
	Earlier   []Notification `json:"earlier"`
}
