package handler

import (
	"Meridian/internal/api/dto"
	"Meridian/internal/pkg/response"
	"Meridian/internal/pkg/util"
	"Meridian/internal/service"
	"strings"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	userSvc service.UserService
}

func NewUserHandler(userSvc service.UserService) *UserHandler {
	return &UserHandler{userSvc: userSvc}
}

// GetUserHomeInfo 用户公开主页，无需登录
func (s *UserHandler) GetUserHomeInfo(c *gin.Context) {
	userId, err := parseUintParam(c, "user_id")
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	home, err := s.userSvc.GetUserHomeInfo(c.Request.Context(), userId)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, home)
}

// GetUserSimpleInfoByIds 批量获取用户摘要，ids 为逗号分隔
func (s *UserHandler) GetUserSimpleInfoByIds(c *gin.Context) {
	idsStr := c.Query("ids")
	if idsStr == "" {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	ids, err := util.StrSliceToUInt64Slice(strings.Split(idsStr, ","))
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	list, err := s.userSvc.GetUserSimpleInfoByIds(c.Request.Context(), ids)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, list)
}

// GetSuggestedConnections 推荐关注
func (s *UserHandler) GetSuggestedConnections(c *gin.Context) {
	userId := c.GetUint64("user_id")

	list, err := s.userSvc.GetSuggestedConnections(c.Request.Context(), userId)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, list)
}

// BanUser 封禁用户，仅管理员
func (s *UserHandler) BanUser(c *gin.Context) {
	var req dto.BanUserDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	operatorId := c.GetUint64("user_id")
	if err := s.userSvc.BanUser(c.Request.Context(), operatorId, req.UserID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

// UnbanUser 解封用户，仅管理员
func (s *UserHandler) UnbanUser(c *gin.Context) {
	var req dto.BanUserDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	operatorId := c.GetUint64("user_id")
	if err := s.userSvc.UnbanUser(c.Request.Context(), operatorId, req.UserID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}
