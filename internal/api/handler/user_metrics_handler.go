package handler

import (
	"Meridian/internal/pkg/response"
	"Meridian/internal/service"

	"github.com/gin-gonic/gin"
)

type UserMetricsHandler struct {
	userMetricsSvc service.UserMetricsService
}

func NewUserMetricsHandler(userMetricsSvc service.UserMetricsService) *UserMetricsHandler {
	return &UserMetricsHandler{userMetricsSvc: userMetricsSvc}
}

// GetMetricsBy7Days 近7日粉丝数趋势
func (s *UserMetricsHandler) GetMetricsBy7Days(c *gin.Context) {
	userId := c.GetUint64("user_id")

	metrics, err := s.userMetricsSvc.GetUserMetricsBy7Days(c.Request.Context(), userId)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, metrics)
}

// GetMetricsBy30Days 近30日粉丝数趋势
func (s *UserMetricsHandler) GetMetricsBy30Days(c *gin.Context) {
	userId := c.GetUint64("user_id")

	metrics, err := s.userMetricsSvc.GetUserMetricsBy30Days(c.Request.Context(), userId)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, metrics)
}
