package service

import (
	"errors"
)

const (
	BadRequest          = 400
	Unauthorized        = 401
	NotFound            = 404
	InternalServerError = 500
)

var (
	ErrParamInvalid         = errors.New("参数错误")
	ErrUserNotFound         = errors.New("用户不存在")
	ErrUserBanSelf          = errors.New("不能封禁自己")
	ErrUserFollowSelf       = errors.New("用户不能关注自己")
	ErrUserFollowExist      = errors.New("已经关注该用户")
	ErrUserFollowNotFound   = errors.New("尚未关注该用户")
	ErrUserFollowLimit      = errors.New("用户关注数量超过限制")
	ErrProfileViewSelf      = errors.New("不能记录对自己主页的访问")
	ErrNotificationNotFound = errors.New("通知不存在")
	UnauthorizedError       = errors.New("权限不足")
	UnExpectedError         = errors.New("系统异常，请稍后重试")
)

var ErrorMap = map[error]int{
	ErrParamInvalid:         BadRequest,
	ErrUserNotFound:         NotFound,
	ErrUserBanSelf:          Unauthorized,
	ErrUserFollowSelf:       BadRequest,
	ErrUserFollowExist:      BadRequest,
	ErrUserFollowNotFound:   NotFound,
	ErrUserFollowLimit:      BadRequest,
	ErrProfileViewSelf:      BadRequest,
	ErrNotificationNotFound: NotFound,
	UnauthorizedError:       Unauthorized,
	UnExpectedError:         InternalServerError,
}
