package service

import (
	"Meridian/internal/api/dto"
	"Meridian/internal/model"
	"Meridian/internal/pkg/consts"
	"Meridian/internal/pkg/redis"
	"Meridian/internal/repository"
	"context"
	"log/slog"
	"strconv"
	"time"
)

const profileViewCountTTL = time.Minute * 10

type ProfileViewService interface {
	RecordView(ctx context.Context, viewerID, viewedID uint64) (*dto.ProfileViewRecordedDTO, error)
	GetProfileViewCount(ctx context.Context, userID uint64) (*dto.ProfileViewCountDTO, error)
}

type ProfileViewServiceImpl struct {
	profileViewRepo repository.ProfileViewRepo
	userRepo        repository.UserRepo
}

func NewProfileViewService(profileViewRepo repository.ProfileViewRepo, userRepo repository.UserRepo) ProfileViewService {
	return &ProfileViewServiceImpl{
		profileViewRepo: profileViewRepo,
		userRepo:        userRepo,
	}
}

// RecordView 记录一次主页访问
// 同一访问者重复访问只刷新 viewed_at，访客数不会增长；访问自己的主页不记录
func (s *ProfileViewServiceImpl) RecordView(ctx context.Context, viewerID, viewedID uint64) (*dto.ProfileViewRecordedDTO, error) {
	if viewerID == viewedID {
		return nil, ErrProfileViewSelf
	}

	target, err := s.userRepo.GetUserById(ctx, viewedID)
	if err != nil {
		slog.ErrorContext(ctx, "查询被访问用户失败", "viewed_id", viewedID, "error", err)
		return nil, UnExpectedError
	}
	if target == nil {
		return nil, ErrUserNotFound
	}

	err = s.profileViewRepo.UpsertProfileView(ctx, &model.ProfileView{
		ViewerID: viewerID,
		ViewedID: viewedID,
		ViewedAt: time.Now(),
	})
	if err != nil {
		slog.ErrorContext(ctx, "写入主页访问记录失败", "viewer_id", viewerID, "viewed_id", viewedID, "error", err)
		return nil, UnExpectedError
	}

	key := consts.ProfileViewCountKey + strconv.FormatUint(viewedID, 10)
	if err := redis.DeleteKey(ctx, key); err != nil {
		slog.WarnContext(ctx, "主页访客数缓存失效失败", "key", key, "error", err)
	}

	return &dto.ProfileViewRecordedDTO{Recorded: true}, nil
}

// GetProfileViewCount 获取独立访客数
func (s *ProfileViewServiceImpl) GetProfileViewCount(ctx context.Context, userID uint64) (*dto.ProfileViewCountDTO, error) {
	key := consts.ProfileViewCountKey + strconv.FormatUint(userID, 10)
	if value, err := redis.GetValue(ctx, key); err == nil && value != "" {
		if count, err := strconv.ParseInt(value, 10, 64); err == nil {
			return &dto.ProfileViewCountDTO{Views: count}, nil
		}
	}

	count, err := s.profileViewRepo.CountProfileViews(ctx, userID)
	if err != nil {
		slog.ErrorContext(ctx, "统计主页访客数失败", "user_id", userID, "error", err)
		return nil, UnExpectedError
	}
	if err := redis.SetWithExpiration(ctx, key, count, profileViewCountTTL); err != nil {
		slog.WarnContext(ctx, "主页访客数缓存写入失败", "key", key, "error", err)
	}
	return &dto.ProfileViewCountDTO{Views: count}, nil
}
