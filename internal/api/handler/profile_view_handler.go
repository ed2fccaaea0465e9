package handler

import (
	"Meridian/internal/pkg/response"
	"Meridian/internal/service"

	"github.com/gin-gonic/gin"
)

type ProfileViewHandler struct {
	profileViewSvc service.ProfileViewService
}

func NewProfileViewHandler(profileViewSvc service.ProfileViewService) *ProfileViewHandler {
	return &ProfileViewHandler{profileViewSvc: profileViewSvc}
}

// RecordView 记录对指定用户主页的一次访问
func (s *ProfileViewHandler) RecordView(c *gin.Context) {
	viewerId := c.GetUint64("user_id")
	viewedId, err := parseUintParam(c, "user_id")
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	result, err := s.profileViewSvc.RecordView(c.Request.Context(), viewerId, viewedId)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// GetViewCount 获取自己主页的独立访客数
func (s *ProfileViewHandler) GetViewCount(c *gin.Context) {
	userId := c.GetUint64("user_id")

	result, err := s.profileViewSvc.GetProfileViewCount(c.Request.Context(), userId)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}
