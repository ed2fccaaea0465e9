package dto

// UserMetricDTO 单日粉丝数快照
type UserMetricDTO struct {
	Date           string `json:"date"`
	TotalFollowers int    `json:"totalFollowers"`
}
