package models

import "time"

// Comment represents a comment on a post. Replies point at their parent
// through ReplyTo and always share the parent's PostID.
type Comment struct {
	ID         uint         `json:"comment_id" gorm:"primaryKey"`
	PostID     uint         `json:"post_id" gorm:"index;not null"`
	UserID     uint         `json:"user_id" gorm:"index;not null"`
	ReplyTo    *uint        `json:"reply_to" gorm:"index"` // nil for top-level comments
	Content    string       `json:"content" gorm:"type:text;not null"`
	LikesCount int64        `json:"likes_count" gorm:"not null;default:0"`
	CreatedAt  time.Time    `json:"created_at"`
	Author     *UserCompact `json:"author,omitempty" gorm:"-"`
}

// CreateCommentRequest defines the request body for commenting or replying
type CreateCommentRequest struct {
	Content string `json:"content" validate:"max=2000"`
}
