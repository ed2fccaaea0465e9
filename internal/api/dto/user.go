package dto

import "time"

// UserHomeDTO 用户公开主页
type UserHomeDTO struct {
	ID             uint64    `json:"id"`
	Name           string    `json:"name"`
	Avatar         string    `json:"avatar"`
	Bio            string    `json:"bio"`
	JoinedAt       time.Time `json:"joinedAt"`
	FollowerCount  int64     `json:"followerCount"`
	FollowingCount int64     `json:"followingCount"`
	ProfileViews   int64     `json:"profileViews"`
}

// UserSimpleDTO 用户摘要
type UserSimpleDTO struct {
	ID        uint64 `json:"id"`
	Nickname  string `json:"nickname"`
	AvatarURL string `json:"avatarUrl"`
	Bio       string `json:"bio"`
}

// BanUserDTO 封禁/解封请求
type BanUserDTO struct {
	UserID uint64 `json:"user_id" binding:"required"`
}
