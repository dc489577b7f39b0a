package models

import "time"

// Post represents a social media post
type Post struct {
	ID            uint         `json:"post_id" gorm:"primaryKey"`
	UserID        uint         `json:"user_id" gorm:"index;not null"` // author
	Content       string       `json:"content" gorm:"type:text;not null"`
	ImageURL      *string      `json:"image_url"`
	VideoURL      *string      `json:"video_url"`
	LikesCount    int64        `json:"likes_count" gorm:"not null;default:0;index"`
	CommentsCount int64        `json:"comments_count" gorm:"not null;default:0"`
	CreatedAt     time.Time    `json:"created_at" gorm:"index"`
	UpdatedAt     time.Time    `json:"updated_at"`
	Author        *UserCompact `json:"author,omitempty" gorm:"-"`
}

// PostDetail is a post together with its full comment list, oldest first.
type PostDetail struct {
	Post
	Comments []Comment `json:"comments"`
}

// CreatePostRequest defines the request body for creating a new post
type CreatePostRequest struct {
	Content  string `json:"content" validate:"max=5000"`
	ImageURL string `json:"imageUrl,omitempty" validate:"omitempty,url"`
	VideoURL string `json:"videoUrl,omitempty" validate:"omitempty,url"`
}
