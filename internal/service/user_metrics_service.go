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

	"github.com/goccy/go-json"
	"github.com/google/uuid"
)

const (
	metricLockTTL     = time.Second * 10
	metricListTTL     = time.Minute * 30
	metricLockRetries = 3
)

type UserMetricsService interface {
	SyncUserDailyMetric(ctx context.Context, userID uint64) error
	AddCountUserMetrics(ctx context.Context, userID uint64, delta int) error
	GetUserMetricsBy7Days(ctx context.Context, userID uint64) ([]*dto.UserMetricDTO, error)
	GetUserMetricsBy30Days(ctx context.Context, userID uint64) ([]*dto.UserMetricDTO, error)
}

type UserMetricsServiceImpl struct {
	userMetricsRepo repository.UserMetricsRepo
	userFollowRepo  repository.UserFollowRepo
}

func NewUserMetricsService(userMetricsRepo repository.UserMetricsRepo, userFollowRepo repository.UserFollowRepo) UserMetricsService {
	return &UserMetricsServiceImpl{
		userMetricsRepo: userMetricsRepo,
		userFollowRepo:  userFollowRepo,
	}
}

// SyncUserDailyMetric 把用户当前粉丝数快照到当日指标，定时任务调用
func (s *UserMetricsServiceImpl) SyncUserDailyMetric(ctx context.Context, userID uint64) error {
	unlock, ok := s.lockDaily(ctx, userID)
	if !ok {
		slog.WarnContext(ctx, "获取每日指标锁失败", "user_id", userID)
		return nil
	}
	defer unlock()

	count, err := s.userFollowRepo.GetUserFollowerCount(ctx, userID)
	if err != nil {
		slog.ErrorContext(ctx, "获取粉丝数失败", "user_id", userID, "error", err)
		return UnExpectedError
	}

	today := midnight(time.Now())
	metric, err := s.userMetricsRepo.GetUserMetricsByDate(ctx, userID, today)
	if err != nil {
		slog.ErrorContext(ctx, "查询当日指标失败", "user_id", userID, "error", err)
		return UnExpectedError
	}

	if metric == nil {
		err = s.userMetricsRepo.CreateUserMetric(ctx, &model.UserMetrics{
			UserID:         userID,
			MetricDate:     today,
			TotalFollowers: int(count),
		})
	} else {
		metric.TotalFollowers = int(count)
		err = s.userMetricsRepo.UpdateUserMetric(ctx, metric)
	}
	if err != nil {
		slog.ErrorContext(ctx, "写入当日指标失败", "user_id", userID, "error", err)
		return UnExpectedError
	}

	s.invalidateMetricCache(ctx, userID)
	return nil
}

// AddCountUserMetrics 增量修正当日指标，由关注边变更事件驱动
// 当日指标不存在时用实时粉丝数建档（此时粉丝数已包含本次变更）
func (s *UserMetricsServiceImpl) AddCountUserMetrics(ctx context.Context, userID uint64, delta int) error {
	unlock, ok := s.lockDaily(ctx, userID)
	if !ok {
		slog.WarnContext(ctx, "获取每日指标锁失败", "user_id", userID)
		return nil
	}
	defer unlock()

	today := midnight(time.Now())
	metric, err := s.userMetricsRepo.GetUserMetricsByDate(ctx, userID, today)
	if err != nil {
		slog.ErrorContext(ctx, "查询当日指标失败", "user_id", userID, "error", err)
		return UnExpectedError
	}

	if metric != nil {
		metric.TotalFollowers += delta
		err = s.userMetricsRepo.UpdateUserMetric(ctx, metric)
	} else {
		var count int64
		count, err = s.userFollowRepo.GetUserFollowerCount(ctx, userID)
		if err == nil {
			err = s.userMetricsRepo.CreateUserMetric(ctx, &model.UserMetrics{
				UserID:         userID,
				MetricDate:     today,
				TotalFollowers: int(count),
			})
		}
	}
	if err != nil {
		slog.ErrorContext(ctx, "更新当日指标失败", "user_id", userID, "error", err)
		return UnExpectedError
	}

	s.invalidateMetricCache(ctx, userID)
	return nil
}

// GetUserMetricsBy7Days 近7日粉丝数趋势
func (s *UserMetricsServiceImpl) GetUserMetricsBy7Days(ctx context.Context, userID uint64) ([]*dto.UserMetricDTO, error) {
	key := consts.UserMetrics7DaysKey + strconv.FormatUint(userID, 10)
	return s.getMetricsCommon(ctx, userID, key, s.userMetricsRepo.GetUserMetricsBy7Days)
}

// GetUserMetricsBy30Days 近30日粉丝数趋势
func (s *UserMetricsServiceImpl) GetUserMetricsBy30Days(ctx context.Context, userID uint64) ([]*dto.UserMetricDTO, error) {
	key := consts.UserMetrics30DaysKey + strconv.FormatUint(userID, 10)
	return s.getMetricsCommon(ctx, userID, key, s.userMetricsRepo.GetUserMetricsBy30Days)
}

func (s *UserMetricsServiceImpl) getMetricsCommon(ctx context.Context, userID uint64, key string,
	fetch func(ctx context.Context, userID uint64) ([]*model.UserMetrics, error)) ([]*dto.UserMetricDTO, error) {

	if cached, err := redis.GetList(ctx, key); err == nil && len(cached) > 0 {
		list := make([]*dto.UserMetricDTO, 0, len(cached))
		for _, raw := range cached {
			item := &dto.UserMetricDTO{}
			if err := json.Unmarshal([]byte(raw), item); err != nil {
				list = nil
				break
			}
			list = append(list, item)
		}
		if list != nil {
			return list, nil
		}
	}

	metrics, err := fetch(ctx, userID)
	if err != nil {
		slog.ErrorContext(ctx, "获取粉丝数趋势失败", "user_id", userID, "error", err)
		return nil, UnExpectedError
	}

	list := make([]*dto.UserMetricDTO, 0, len(metrics))
	raws := make([]string, 0, len(metrics))
	for _, metric := range metrics {
		item := &dto.UserMetricDTO{
			Date:           metric.MetricDate.Format(time.DateOnly),
			TotalFollowers: metric.TotalFollowers,
		}
		list = append(list, item)
		if raw, err := json.Marshal(item); err == nil {
			raws = append(raws, string(raw))
		}
	}
	if len(raws) > 0 {
		if err := redis.SetListWithExpiration(ctx, key, raws, metricListTTL); err != nil {
			slog.WarnContext(ctx, "粉丝数趋势缓存写入失败", "key", key, "error", err)
		}
	}
	return list, nil
}

func (s *UserMetricsServiceImpl) lockDaily(ctx context.Context, userID uint64) (func(), bool) {
	key := consts.UserMetricDailyLock + strconv.FormatUint(userID, 10)
	token := uuid.NewString()
	locked, err := redis.TryLock(ctx, key, token, metricLockTTL, metricLockRetries)
	if err != nil || !locked {
		return nil, false
	}
	return func() { redis.UnLock(ctx, key, token) }, true
}

func (s *UserMetricsServiceImpl) invalidateMetricCache(ctx context.Context, userID uint64) {
	id := strconv.FormatUint(userID, 10)
	for _, key := range []string{consts.UserMetrics7DaysKey + id, consts.UserMetrics30DaysKey + id} {
		if err := redis.DeleteKey(ctx, key); err != nil {
			slog.WarnContext(ctx, "粉丝数趋势缓存失效失败", "key", key, "error", err)
		}
	}
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
