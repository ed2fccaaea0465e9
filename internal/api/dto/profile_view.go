package dto

// ProfileViewRecordedDTO 主页访问记录结果
type ProfileViewRecordedDTO struct {
	Recorded bool `json:"recorded"`
}

// ProfileViewCountDTO 主页独立访客数
type ProfileViewCountDTO struct {
	Views int64 `json:"views"`
}
