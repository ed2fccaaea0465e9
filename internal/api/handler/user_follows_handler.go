package handler

import (
	"Meridian/internal/pkg/response"
	"Meridian/internal/service"
	"strconv"

	"github.com/gin-gonic/gin"
)

type UserFollowHandler struct {
	userFollowSvc service.UserFollowService
}

func NewUserFollowHandler(userFollowSvc service.UserFollowService) *UserFollowHandler {
	return &UserFollowHandler{userFollowSvc: userFollowSvc}
}

func (s *UserFollowHandler) GetUserFollowers(c *gin.Context) {
	userId := c.GetUint64("user_id")

	limit, offset := getPagination(c)

	followers, err := s.userFollowSvc.GetUserFollowers(c.Request.Context(), userId, limit, offset)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, followers)
}

func (s *UserFollowHandler) GetUserFollowings(c *gin.Context) {
	userId := c.GetUint64("user_id")

	limit, offset := getPagination(c)

	followings, err := s.userFollowSvc.GetUserFollowings(c.Request.Context(), userId, limit, offset)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, followings)
}

func (s *UserFollowHandler) GetUserFollowersCount(c *gin.Context) {
	userId := c.GetUint64("user_id")
	count, err := s.userFollowSvc.GetUserFollowerCount(c.Request.Context(), userId)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, map[string]int64{"count": count})
}

func (s *UserFollowHandler) GetUserFollowingCount(c *gin.Context) {
	userId := c.GetUint64("user_id")
	count, err := s.userFollowSvc.GetUserFollowingCount(c.Request.Context(), userId)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, map[string]int64{"count": count})
}

func (s *UserFollowHandler) GetFriends(c *gin.Context) {
	userId := c.GetUint64("user_id")
	friends, err := s.userFollowSvc.GetFriends(c.Request.Context(), userId)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, friends)
}

func (s *UserFollowHandler) GetSomeoneIsFollowing(c *gin.Context) {
	userId := c.GetUint64("user_id")
	followingId, err := parseUintParam(c, "following_id")
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	isFollowing, err := s.userFollowSvc.GetSomeoneIsFollowing(c.Request.Context(), userId, followingId)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, map[string]bool{"isFollowing": isFollowing})
}

func (s *UserFollowHandler) Follow(c *gin.Context) {
	userId := c.GetUint64("user_id")
	followingId, err := parseUintParam(c, "following_id")
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	result, err := s.userFollowSvc.Follow(c.Request.Context(), userId, followingId)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

func (s *UserFollowHandler) Unfollow(c *gin.Context) {
	userId := c.GetUint64("user_id")
	followingId, err := parseUintParam(c, "following_id")
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	result, err := s.userFollowSvc.Unfollow(c.Request.Context(), userId, followingId)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

func getPagination(c *gin.Context) (int, int) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	pageSize, err := strconv.Atoi(c.DefaultQuery("page_size", "10"))
	if err != nil || pageSize < 1 || pageSize > 100 {
		pageSize = 10
	}
	return pageSize, (page - 1) * pageSize
}

func parseUintParam(c *gin.Context, name string) (uint64, error) {
	return strconv.ParseUint(c.Param(name), 10, 64)
}
