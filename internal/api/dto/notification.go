package dto

// NotificationDTO 通知列表项
type NotificationDTO struct {
	ID         string `json:"id"`
	SenderID   uint64 `json:"senderId"`
	SenderName string `json:"senderName"`
	AvatarURL  string `json:"avatarUrl"`
	Type       int8   `json:"type"`
	Content    string `json:"content"`
	IsRead     bool   `json:"isRead"`
	CreatedAt  string `json:"createdAt"`
}

// NotificationUnreadDTO 未读数
type NotificationUnreadDTO struct {
	UnreadCount int64 `json:"unreadCount"`
}
