package service

import (
	"Meridian/internal/api/dto"
	"Meridian/internal/pkg/consts"
	"Meridian/internal/pkg/minio"
	"Meridian/internal/pkg/redis"
	"Meridian/internal/repository"
	"context"
	"log/slog"
	"strconv"
	"time"

	"github.com/goccy/go-json"
)

const (
	// SuggestedConnectionLimit 推荐关注的返回条数
	SuggestedConnectionLimit = 10

	userSimpleCacheTTL = time.Hour
)

type UserService interface {
	GetUserHomeInfo(ctx context.Context, userID uint64) (*dto.UserHomeDTO, error)
	GetUserSimpleInfoByIds(ctx context.Context, ids []uint64) ([]*dto.UserSimpleDTO, error)
	GetSuggestedConnections(ctx context.Context, userID uint64) ([]*dto.SuggestedUserDTO, error)
	BanUser(ctx context.Context, operatorID, targetID uint64) error
	UnbanUser(ctx context.Context, operatorID, targetID uint64) error
}

type UserServiceImpl struct {
	userRepo        repository.UserRepo
	userFollowRepo  repository.UserFollowRepo
	profileViewRepo repository.ProfileViewRepo
}

func NewUserService(
	userRepo repository.UserRepo,
	userFollowRepo repository.UserFollowRepo,
	profileViewRepo repository.ProfileViewRepo,
) UserService {
	return &UserServiceImpl{
		userRepo:        userRepo,
		userFollowRepo:  userFollowRepo,
		profileViewRepo: profileViewRepo,
	}
}

// GetUserHomeInfo 获取用户公开主页：基础信息 + 关注/粉丝/访客统计
func (s *UserServiceImpl) GetUserHomeInfo(ctx context.Context, userID uint64) (*dto.UserHomeDTO, error) {
	user, err := s.userRepo.GetUserById(ctx, userID)
	if err != nil {
		slog.ErrorContext(ctx, "获取用户信息失败", "user_id", userID, "error", err)
		return nil, UnExpectedError
	}
	if user == nil || !user.IsActive || user.IsBan {
		return nil, ErrUserNotFound
	}

	followerCount, err := s.userFollowRepo.GetUserFollowerCount(ctx, userID)
	if err != nil {
		slog.ErrorContext(ctx, "获取粉丝数失败", "user_id", userID, "error", err)
		return nil, UnExpectedError
	}
	followingCount, err := s.userFollowRepo.GetUserFollowingCount(ctx, userID)
	if err != nil {
		slog.ErrorContext(ctx, "获取关注数失败", "user_id", userID, "error", err)
		return nil, UnExpectedError
	}
	views, err := s.profileViewRepo.CountProfileViews(ctx, userID)
	if err != nil {
		slog.ErrorContext(ctx, "获取主页访客数失败", "user_id", userID, "error", err)
		return nil, UnExpectedError
	}

	return &dto.UserHomeDTO{
		ID:             user.ID,
		Name:           user.Nickname,
		Avatar:         minio.GetPublicURL(user.AvatarURL),
		Bio:            bioOf(user),
		JoinedAt:       user.CreatedAt,
		FollowerCount:  followerCount,
		FollowingCount: followingCount,
		ProfileViews:   views,
	}, nil
}

// GetUserSimpleInfoByIds 批量获取用户摘要，单用户维度走 Redis 缓存
func (s *UserServiceImpl) GetUserSimpleInfoByIds(ctx context.Context, ids []uint64) ([]*dto.UserSimpleDTO, error) {
	found := make(map[uint64]*dto.UserSimpleDTO, len(ids))
	missed := make([]uint64, 0, len(ids))
	for _, id := range ids {
		key := consts.UserSimpleInfoKey + strconv.FormatUint(id, 10)
		value, err := redis.GetValue(ctx, key)
		if err != nil || value == "" {
			missed = append(missed, id)
			continue
		}
		simple := &dto.UserSimpleDTO{}
		if err := json.Unmarshal([]byte(value), simple); err != nil {
			missed = append(missed, id)
			continue
		}
		found[id] = simple
	}

	if len(missed) > 0 {
		users, err := s.userRepo.GetUserByIds(ctx, missed)
		if err != nil {
			slog.ErrorContext(ctx, "批量获取用户信息失败", "error", err)
			return nil, UnExpectedError
		}
		for _, user := range users {
			simple := &dto.UserSimpleDTO{
				ID:        user.ID,
				Nickname:  user.Nickname,
				AvatarURL: minio.GetPublicURL(user.AvatarURL),
				Bio:       bioOf(user),
			}
			found[user.ID] = simple
			if raw, err := json.Marshal(simple); err == nil {
				key := consts.UserSimpleInfoKey + strconv.FormatUint(user.ID, 10)
				if err := redis.SetWithExpiration(ctx, key, raw, userSimpleCacheTTL); err != nil {
					slog.WarnContext(ctx, "用户摘要缓存写入失败", "key", key, "error", err)
				}
			}
		}
	}

	list := make([]*dto.UserSimpleDTO, 0, len(ids))
	for _, id := range ids {
		if simple, ok := found[id]; ok {
			list = append(list, simple)
		}
	}
	return list, nil
}

// GetSuggestedConnections 推荐关注
// 候选集排除自己和已关注用户，按注册时间倒序取前 N 条，
// 共同关注数逐个精确统计（候选人的粉丝 ∩ 请求者的关注）
func (s *UserServiceImpl) GetSuggestedConnections(ctx context.Context, userID uint64) ([]*dto.SuggestedUserDTO, error) {
	followingIDs, err := s.userFollowRepo.GetFollowingIDs(ctx, userID)
	if err != nil {
		slog.ErrorContext(ctx, "获取关注ID集合失败", "user_id", userID, "error", err)
		return nil, UnExpectedError
	}
	excludedIDs := append(followingIDs, userID)

	candidates, err := s.userRepo.GetSuggestedUsers(ctx, excludedIDs, SuggestedConnectionLimit)
	if err != nil {
		slog.ErrorContext(ctx, "获取推荐候选用户失败", "user_id", userID, "error", err)
		return nil, UnExpectedError
	}

	list := make([]*dto.SuggestedUserDTO, 0, len(candidates))
	for _, candidate := range candidates {
		mutual, err := s.userFollowRepo.CountMutualFollowers(ctx, candidate.ID, followingIDs)
		if err != nil {
			slog.ErrorContext(ctx, "统计共同关注数失败", "user_id", userID, "candidate_id", candidate.ID, "error", err)
			return nil, UnExpectedError
		}
		list = append(list, &dto.SuggestedUserDTO{
			ID:              candidate.ID,
			Name:            candidate.Nickname,
			Avatar:          minio.GetPublicURL(candidate.AvatarURL),
			Bio:             bioOf(candidate),
			FollowersCount:  candidate.FollowerCount,
			MutualFollowers: mutual,
			// 候选集已排除关注中的用户
			IsFollowing: false,
		})
	}
	return list, nil
}

// BanUser 封禁用户
func (s *UserServiceImpl) BanUser(ctx context.Context, operatorID, targetID uint64) error {
	return s.updateBanState(ctx, operatorID, targetID, true)
}

// UnbanUser 解封用户
func (s *UserServiceImpl) UnbanUser(ctx context.Context, operatorID, targetID uint64) error {
	return s.updateBanState(ctx, operatorID, targetID, false)
}

func (s *UserServiceImpl) updateBanState(ctx context.Context, operatorID, targetID uint64, isBan bool) error {
	if operatorID == targetID {
		return ErrUserBanSelf
	}

	affected, err := s.userRepo.UpdateUserIsBan(ctx, targetID, isBan)
	if err != nil {
		slog.ErrorContext(ctx, "更新封禁状态失败", "target_id", targetID, "is_ban", isBan, "error", err)
		return UnExpectedError
	}
	if affected == 0 {
		user, err := s.userRepo.GetUserById(ctx, targetID)
		if err != nil {
			slog.ErrorContext(ctx, "查询用户失败", "target_id", targetID, "error", err)
			return UnExpectedError
		}
		if user == nil {
			return ErrUserNotFound
		}
		// 状态未变化视为成功
	}

	key := consts.UserSimpleInfoKey + strconv.FormatUint(targetID, 10)
	if err := redis.DeleteKey(ctx, key); err != nil {
		slog.WarnContext(ctx, "用户摘要缓存失效失败", "key", key, "error", err)
	}
	return nil
}
