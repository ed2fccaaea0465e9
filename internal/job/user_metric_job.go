package job

import (
	"Meridian/internal/pkg/consts"
	"Meridian/internal/pkg/logger"
	"Meridian/internal/pkg/redis"
	"Meridian/internal/pkg/util"
	"Meridian/internal/repository"
	"Meridian/internal/service"
	"context"
	log "log/slog"
	"time"

	"github.com/google/uuid"
)

// UserMetricsJob 每日回刷任务
// 把 CDC 累积的脏用户集重命名为处理中副本后逐个处理：
// 快照当日粉丝指标，并用实时计数刷新用户表上的冗余关注/粉丝数
type UserMetricsJob struct {
	userRepo      repository.UserRepo
	userMetricSvc service.UserMetricsService
	userFollowSvc service.UserFollowService
}

func NewUserMetricsJob(
	userRepo repository.UserRepo,
	userMetricSvc service.UserMetricsService,
	userFollowSvc service.UserFollowService,
) *UserMetricsJob {
	return &UserMetricsJob{
		userRepo:      userRepo,
		userMetricSvc: userMetricSvc,
		userFollowSvc: userFollowSvc,
	}
}

func (s *UserMetricsJob) Run() {
	traceID := "job-" + uuid.NewString()
	ctx := context.WithValue(context.Background(), logger.TraceIDKey, traceID)

	processingKey := consts.UserFollowDirtyKey + ":processing"
	if err := redis.Rename(ctx, consts.UserFollowDirtyKey, processingKey); err != nil {
		// 脏集为空或 Redis 不可用，本轮无事可做
		return
	}

	tempSet, err := redis.GetSet(ctx, processingKey)
	if err != nil {
		log.ErrorContext(ctx, "读取脏用户集失败", "err", err)
		return
	}

	userIDs, err := util.StrSliceToUInt64Slice(tempSet)
	if err != nil {
		log.ErrorContext(ctx, "脏用户集解析失败", "err", err)
		return
	}

	for _, userID := range userIDs {
		if err := s.userMetricSvc.SyncUserDailyMetric(ctx, userID); err != nil {
			log.ErrorContext(ctx, "快照用户粉丝指标失败", "user_id", userID, "err", err)
		}
		followerCount, err := s.userFollowSvc.GetUserFollowerCount(ctx, userID)
		if err != nil {
			log.ErrorContext(ctx, "获取粉丝数失败", "user_id", userID, "err", err)
			continue
		}
		followingCount, err := s.userFollowSvc.GetUserFollowingCount(ctx, userID)
		if err != nil {
			log.ErrorContext(ctx, "获取关注数失败", "user_id", userID, "err", err)
			continue
		}
		if err := s.userRepo.UpdateUserFollowCount(ctx, userID, followerCount, followingCount); err != nil {
			log.ErrorContext(ctx, "刷新冗余关注计数失败", "user_id", userID, "err", err)
		}
	}

	if err := redis.DeleteKey(ctx, processingKey); err != nil {
		log.ErrorContext(ctx, "清理处理中脏集失败", "err", err)
	}

	log.InfoContext(ctx, "用户关注指标回刷完成", "count", len(userIDs), "date", time.Now().Format(time.DateOnly))
}
