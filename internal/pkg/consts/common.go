package consts

// 通知类型
const (
	NoticeTypeInfo    int8 = 1 // 普通动态（被关注、被取关）
	NoticeTypeSuccess int8 = 2 // 正向事件（成为好友）
)

// Canal 变更类型
const (
	INSERT = "INSERT"
	UPDATE = "UPDATE"
	DELETE = "DELETE"
)

const (
	DefaultAvatarURL = "default_avatar.png"
)
