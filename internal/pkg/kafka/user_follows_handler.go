package kafka

import (
	"Meridian/internal/pkg/consts"
	"Meridian/internal/pkg/redis"
	"Meridian/internal/service"
	"context"
	log "log/slog"
	"strconv"
	"time"

	"github.com/IBM/sarama"
	redisv9 "github.com/redis/go-redis/v9"
)

// UserFollowsHandler 消费 user_follows 表的行变更
// 维护关注/粉丝的有序集合与计数缓存，累积脏用户集供定时任务回刷，
// 同时增量修正双方当日的粉丝数指标
type UserFollowsHandler struct {
	userMetricsService service.UserMetricsService
}

func NewUserFollowsHandler(userMetricsService service.UserMetricsService) *UserFollowsHandler {
	return &UserFollowsHandler{
		userMetricsService: userMetricsService,
	}
}

func (s *UserFollowsHandler) Setup(sarama.ConsumerGroupSession) error {
	log.Info("user follows consumer setup")
	return nil
}

func (s *UserFollowsHandler) Cleanup(sarama.ConsumerGroupSession) error {
	log.Info("user follows consumer cleanup")
	return nil
}

func (s *UserFollowsHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	log.Info("topic-user-follows consume claim")
	err := pullMessageBatch(session, claim, s.logic)
	if err != nil {
		log.Error("topic-user-follows process batch error", "err", err)
		return err
	}
	log.Info("topic-user-follows consume claim end")
	return nil
}

func (s *UserFollowsHandler) logic(ctx context.Context, msg *sarama.ConsumerMessage) error {
	canalMsg, err := ToCanalMessage(msg, "user_follows")
	if err != nil || canalMsg == nil {
		return nil
	}
	if canalMsg.Type != consts.INSERT && canalMsg.Type != consts.DELETE {
		return nil
	}

	if err := s.refreshFollowCache(ctx, canalMsg, msg); err != nil {
		return err
	}

	for _, row := range canalMsg.Data {
		followingID := StrToUint64(row["following_id"])
		if followingID == 0 {
			continue
		}
		delta := 1
		if canalMsg.Type == consts.DELETE {
			delta = -1
		}
		if err := s.userMetricsService.AddCountUserMetrics(ctx, followingID, delta); err != nil {
			log.Error("增量修正粉丝指标失败", "user_id", followingID, "err", err)
		}
	}
	return nil
}

func (s *UserFollowsHandler) refreshFollowCache(ctx context.Context, canalMsg *CanalMessage, msg *sarama.ConsumerMessage) error {
	rdb := redis.GetRdbClient()
	if rdb == nil {
		return nil
	}

	pipe := rdb.Pipeline()
	var affectedUIDs []interface{}

	for _, row := range canalMsg.Data {
		followerID := StrToUint64(row["follower_id"])
		followingID := StrToUint64(row["following_id"])
		if followerID == 0 || followingID == 0 {
			continue
		}
		affectedUIDs = append(affectedUIDs, followerID, followingID)

		fdrKey := consts.UserFollowerKey + strconv.FormatUint(followingID, 10)
		fngKey := consts.UserFollowingKey + strconv.FormatUint(followerID, 10)
		fdrCountKey := consts.UserFollowerCountKey + strconv.FormatUint(followingID, 10)
		fngCountKey := consts.UserFollowingCountKey + strconv.FormatUint(followerID, 10)

		if canalMsg.Type == consts.INSERT {
			now := float64(time.Now().Unix())
			pipe.ZAdd(ctx, fdrKey, redisv9.Z{Score: now, Member: followerID})
			pipe.ZRemRangeByRank(ctx, fdrKey, 0, -1001)
			pipe.ZAdd(ctx, fngKey, redisv9.Z{Score: now, Member: followingID})
			pipe.ZRemRangeByRank(ctx, fngKey, 0, -1001)
			pipe.Incr(ctx, fdrCountKey)
			pipe.Incr(ctx, fngCountKey)
		} else {
			pipe.ZRem(ctx, fdrKey, followerID)
			pipe.ZRem(ctx, fngKey, followingID)
			pipe.Decr(ctx, fdrCountKey)
			pipe.Decr(ctx, fngCountKey)
		}
	}

	if len(affectedUIDs) > 0 {
		pipe.SAdd(ctx, consts.UserFollowDirtyKey, affectedUIDs...)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		log.Error("关注缓存维护失败", "err", err, "msg_key", string(msg.Key))
		return err
	}
	return nil
}
