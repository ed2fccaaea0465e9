package model

import "time"

// ProfileView 主页访问记录，(viewer_id, viewed_id) 联合主键
// 重复访问只刷新 viewed_at，访客数 = 行数
type ProfileView struct {
	ViewerID uint64    `gorm:"primaryKey" json:"viewerId"`
	ViewedID uint64    `gorm:"primaryKey;index:idx_viewed_id" json:"viewedId"`
	ViewedAt time.Time `gorm:"not null" json:"viewedAt"`
}

func (ProfileView) TableName() string {
	return "profile_views"
}
