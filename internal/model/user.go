package model

import (
	"time"
)

// User 用户身份记录（由外部身份服务写入，本服务只读取与封禁标记）
type User struct {
	ID             uint64  `gorm:"primaryKey" json:"id"`
	Username       *string `gorm:"type:varchar(50);uniqueIndex:idx_username" json:"username,omitempty"`
	Nickname       string  `gorm:"type:varchar(50);not null" json:"nickname"`
	AvatarURL      string  `gorm:"type:varchar(512);column:avatar_url;default:'default_avatar.png'" json:"avatarUrl"`
	Bio            *string `gorm:"type:varchar(255);default:''" json:"bio,omitempty"`
	IsActive       bool    `gorm:"type:tinyint(1);default:1" json:"isActive"`
	IsBan          bool    `gorm:"type:tinyint(1);default:0" json:"isBan"`
	FollowerCount  int64   `gorm:"type:bigint;not null;default:0" json:"followerCount"`
	FollowingCount int64   `gorm:"type:bigint;not null;default:0" json:"followingCount"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (User) TableName() string {
	return "users"
}
