package dto

import "time"

// FollowResultDTO 关注操作结果
type FollowResultDTO struct {
	BecameFriends bool   `json:"becameFriends"`
	TargetName    string `json:"targetName"`
}

// UnfollowResultDTO 取消关注操作结果
type UnfollowResultDTO struct {
	WasUnfriended bool   `json:"wasUnfriended"`
	TargetName    string `json:"targetName"`
}

// FollowUserDTO 关注/粉丝/好友列表项
type FollowUserDTO struct {
	ID             uint64    `json:"id"`
	Name           string    `json:"name"`
	Avatar         string    `json:"avatar"`
	Bio            string    `json:"bio"`
	FollowersCount int64     `json:"followersCount"`
	FollowedAt     time.Time `json:"followedAt"`
}

// SuggestedUserDTO 推荐关注列表项
type SuggestedUserDTO struct {
	ID              uint64 `json:"id"`
	Name            string `json:"name"`
	Avatar          string `json:"avatar"`
	Bio             string `json:"bio"`
	FollowersCount  int64  `json:"followersCount"`
	MutualFollowers int64  `json:"mutualFollowers"`
	IsFollowing     bool   `json:"isFollowing"`
}
