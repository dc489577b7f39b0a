package models

import "time"

// Follow represents an Instagram-style follow relationship
type Follow struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	FollowerID  uint      `json:"follower_id" gorm:"index;not null;uniqueIndex:idx_follower_following"`
	FollowingID uint      `json:"following_id" gorm:"index;not null;uniqueIndex:idx_follower_following"`
	CreatedAt   time.Time `json:"created_at"`
}

// FollowEntry is one row of a followers or following list.
type FollowEntry struct {
	UserCompact
	FollowedAt time.Time `json:"followed_at"`
}

// FollowStats summarizes both sides of a user's follow graph.
type FollowStats struct {
	UserID         uint  `json:"user_id"`
	FollowersCount int64 `json:"followers_count"`
	FollowingCount int64 `json:"following_count"`
}
