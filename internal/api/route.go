package api

import (
	"Meridian/internal/api/middleware"
	"Meridian/internal/pkg/logger"
	"net/http"

	"github.com/gin-gonic/gin"
)

func SetupRouter(group *HandlersGroup) *gin.Engine {
	r := gin.New()
	_ = r.SetTrustedProxies([]string{"localhost"})

	// TraceId & Logger & CORS
	r.Use(middleware.TraceMiddleware())
	r.Use(middleware.CORSMiddleware())
	logger.SetupGin(r)

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/ping", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"Code":    200,
				"Message": "pong",
				"Data":    nil,
			})
		})

		userGroup := apiGroup.Group("/user")
		{
			// 无需登录即可访问的接口
			userGroup.GET("/:user_id/home", group.UserHandler.GetUserHomeInfo)
			userGroup.GET("/batch/simple", group.UserHandler.GetUserSimpleInfoByIds)

			// 需要登录 & 拥有 admin 角色
			adminGroup := userGroup.Group("")
			adminGroup.Use(middleware.AuthMiddleware(), middleware.CheckRoles("ADMIN"))
			{
				adminGroup.POST("/ban", group.UserHandler.BanUser)
				adminGroup.POST("/unban", group.UserHandler.UnbanUser)
			}
		}

		userFollowGroup := apiGroup.Group("/user-relation")
		{
			userFollowGroup.Use(middleware.AuthMiddleware())
			{
				userFollowGroup.GET("/followers", group.UserFollowHandler.GetUserFollowers)
				userFollowGroup.GET("/followers/count", group.UserFollowHandler.GetUserFollowersCount)
				userFollowGroup.GET("/followings", group.UserFollowHandler.GetUserFollowings)
				userFollowGroup.GET("/followings/count", group.UserFollowHandler.GetUserFollowingCount)
				userFollowGroup.GET("/friends", group.UserFollowHandler.GetFriends)
				userFollowGroup.GET("/isfollow/:following_id", group.UserFollowHandler.GetSomeoneIsFollowing)
				userFollowGroup.POST("/follow/:following_id", group.UserFollowHandler.Follow)
				userFollowGroup.DELETE("/follow/:following_id", group.UserFollowHandler.Unfollow)
				userFollowGroup.GET("/suggested", group.UserHandler.GetSuggestedConnections)
			}
		}

		profileViewGroup := apiGroup.Group("/profile-view")
		{
			profileViewGroup.Use(middleware.AuthMiddleware())
			{
				profileViewGroup.POST("/:user_id", group.ProfileViewHandler.RecordView)
				profileViewGroup.GET("/count", group.ProfileViewHandler.GetViewCount)
			}
		}

		noticeGroup := apiGroup.Group("/notice")
		noticeGroup.Use(middleware.AuthMiddleware())
		{
			noticeGroup.GET("/list", group.NoticeHandler.GetNotificationList)
			noticeGroup.GET("/unread", group.NoticeHandler.GetUnreadCount)
			noticeGroup.POST("/read", group.NoticeHandler.MarkRead)
			noticeGroup.POST("/read/all", group.NoticeHandler.MarkAllRead)
		}

		metricsGroup := apiGroup.Group("/metrics")
		{
			metricsGroup.Use(middleware.AuthMiddleware())
			{
				metricsGroup.GET("/user/7d", group.UserMetricsHandler.GetMetricsBy7Days)
				metricsGroup.GET("/user/30d", group.UserMetricsHandler.GetMetricsBy30Days)
			}
		}
	}

	return r
}
