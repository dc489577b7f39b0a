package models

import "time"

// LikeType discriminates what a like points at.
type LikeType string

const (
	LikeTypePost    LikeType = "post"
	LikeTypeComment LikeType = "comment"
)

// Like represents a like on a post or a comment. The composite unique index
// keeps one like per (user, type, target).
type Like struct {
	ID        uint      `json:"like_id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"not null;uniqueIndex:idx_like_user_target"`
	LikeType  LikeType  `json:"like_type" gorm:"type:varchar(10);not null;uniqueIndex:idx_like_user_target"`
	TargetID  uint      `json:"target_id" gorm:"not null;uniqueIndex:idx_like_user_target"`
	PostID    *uint     `json:"post_id,omitempty" gorm:"index"`    // set when LikeType is post
	CommentID *uint     `json:"comment_id,omitempty" gorm:"index"` // set when LikeType is comment
	CreatedAt time.Time `json:"created_at"`
}
