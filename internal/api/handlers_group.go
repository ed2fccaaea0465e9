package api

import "Meridian/internal/api/handler"

// HandlersGroup 封装所有已初始化的 Handler 实例
type HandlersGroup struct {
	UserHandler        *handler.UserHandler
	UserFollowHandler  *handler.UserFollowHandler
	ProfileViewHandler *handler.ProfileViewHandler
	NoticeHandler      *handler.NoticeHandler
	UserMetricsHandler *handler.UserMetricsHandler
}
