package model

import "time"

type UserMetrics struct {
	ID             uint64    `gorm:"primaryKey" json:"id"`
	UserID         uint64    `gorm:"not null;uniqueIndex:idx_user_date" json:"userId"`
	MetricDate     time.Time `gorm:"type:date;not null;uniqueIndex:idx_user_date" json:"metricDate"`
	TotalFollowers int       `gorm:"type:int;not null;default:0" json:"totalFollowers"`
	CreatedAt      time.Time `json:"createdAt"`
}

func (UserMetrics) TableName() string {
	return "user_metrics"
}
