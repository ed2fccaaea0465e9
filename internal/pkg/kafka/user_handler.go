package kafka

import (
	"Meridian/internal/pkg/consts"
	"Meridian/internal/pkg/redis"
	"context"
	log "log/slog"
	"strconv"

	"github.com/IBM/sarama"
)

// UserHandler 消费 users 表的行变更，失效用户摘要缓存
type UserHandler struct {
}

func NewUserHandler() *UserHandler {
	return &UserHandler{}
}

func (s *UserHandler) Setup(sarama.ConsumerGroupSession) error {
	log.Info("user consumer setup")
	return nil
}

func (s *UserHandler) Cleanup(sarama.ConsumerGroupSession) error {
	log.Info("user consumer cleanup")
	return nil
}

func (s *UserHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	log.Info("topic-user consume claim")
	err := pullMessageBatch(session, claim, s.logic)
	if err != nil {
		log.Error("topic-user process batch error", "err", err)
		return err
	}
	log.Info("topic-user consume claim end")
	return nil
}

func (s *UserHandler) logic(ctx context.Context, msg *sarama.ConsumerMessage) error {
	canalMsg, err := ToCanalMessage(msg, "users")
	if err != nil || canalMsg == nil {
		return nil
	}
	if canalMsg.Type != consts.UPDATE && canalMsg.Type != consts.DELETE {
		return nil
	}

	for _, row := range canalMsg.Data {
		userID := StrToUint64(row["id"])
		if userID == 0 {
			continue
		}
		key := consts.UserSimpleInfoKey + strconv.FormatUint(userID, 10)
		if err := redis.DeleteKey(ctx, key); err != nil {
			log.Error("用户摘要缓存失效失败", "key", key, "err", err)
			return err
		}
	}
	return nil
}
