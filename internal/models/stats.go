package models

// PlatformStats is the administrative overview returned by /admin/stats.
type PlatformStats struct {
	TotalUsers       int64         `json:"total_users"`
	TotalPosts       int64         `json:"total_posts"`
	TotalComments    int64         `json:"total_comments"`
	TotalLikes       int64         `json:"total_likes"`
	TotalFriendships int64         `json:"total_friendships"`
	TotalPostLikes   int64         `json:"total_post_likes"`
	TopUsers         []UserCompact `json:"top_users"`
	RecentPosts7Days int64         `json:"recent_posts_7_days"`
}
