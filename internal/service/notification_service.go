package service

import (
	"Meridian/internal/api/dto"
	"Meridian/internal/pkg/minio"
	mongodb "Meridian/internal/pkg/mongo"
	"Meridian/internal/repository"
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/jinzhu/copier"
	"go.mongodb.org/mongo-driver/mongo"
)

type NotificationService interface {
	Notify(ctx context.Context, receiverID, senderID uint64, noticeType int8, content string) error
	GetNotificationList(ctx context.Context, userID uint64, limit, offset int64) ([]*dto.NotificationDTO, error)
	GetUnreadCount(ctx context.Context, userID uint64) (*dto.NotificationUnreadDTO, error)
	MarkRead(ctx context.Context, userID uint64, msgID string) error
	MarkAllRead(ctx context.Context, userID uint64) error
}

type NotificationServiceImpl struct {
	notificationRepo mongodb.NotificationRepo
	userRepo         repository.UserRepo
}

func NewNotificationService(notificationRepo mongodb.NotificationRepo, userRepo repository.UserRepo) NotificationService {
	return &NotificationServiceImpl{
		notificationRepo: notificationRepo,
		userRepo:         userRepo,
	}
}

// Notify 写入一条站内通知
func (s *NotificationServiceImpl) Notify(ctx context.Context, receiverID, senderID uint64, noticeType int8, content string) error {
	msg := &mongodb.NotificationModel{
		ReceiverID: receiverID,
		SenderID:   senderID,
		Type:       noticeType,
		Content:    content,
		IsRead:     false,
		CreatedAt:  time.Now(),
	}
	return s.notificationRepo.CreateNotification(ctx, msg)
}

// GetNotificationList 分页获取通知列表，附带发送者昵称和头像
func (s *NotificationServiceImpl) GetNotificationList(ctx context.Context, userID uint64, limit, offset int64) ([]*dto.NotificationDTO, error) {
	msgs, err := s.notificationRepo.GetNotificationList(ctx, userID, limit, offset)
	if err != nil {
		slog.ErrorContext(ctx, "获取通知列表失败", "user_id", userID, "error", err)
		return nil, UnExpectedError
	}

	senderIDs := make([]uint64, 0, len(msgs))
	for _, msg := range msgs {
		senderIDs = append(senderIDs, msg.SenderID)
	}
	senderMap := make(map[uint64]*dto.UserSimpleDTO)
	if len(senderIDs) > 0 {
		senders, err := s.userRepo.GetUserByIds(ctx, senderIDs)
		if err != nil {
			slog.ErrorContext(ctx, "获取通知发送者信息失败", "user_id", userID, "error", err)
			return nil, UnExpectedError
		}
		for _, sender := range senders {
			simple := &dto.UserSimpleDTO{}
			if err := copier.Copy(simple, sender); err != nil {
				continue
			}
			simple.AvatarURL = minio.GetPublicURL(sender.AvatarURL)
			senderMap[sender.ID] = simple
		}
	}

	list := make([]*dto.NotificationDTO, 0, len(msgs))
	for _, msg := range msgs {
		item := &dto.NotificationDTO{}
		if err := copier.Copy(item, msg); err != nil {
			slog.WarnContext(ctx, "通知转换失败", "msg_id", msg.ID.Hex(), "error", err)
			continue
		}
		item.ID = msg.ID.Hex()
		item.CreatedAt = msg.CreatedAt.Format(time.DateTime)
		if sender, ok := senderMap[msg.SenderID]; ok {
			item.SenderName = sender.Nickname
			item.AvatarURL = sender.AvatarURL
		}
		list = append(list, item)
	}
	return list, nil
}

// GetUnreadCount 获取未读通知数
func (s *NotificationServiceImpl) GetUnreadCount(ctx context.Context, userID uint64) (*dto.NotificationUnreadDTO, error) {
	count, err := s.notificationRepo.GetUnreadCount(ctx, userID)
	if err != nil {
		slog.ErrorContext(ctx, "获取未读通知数失败", "user_id", userID, "error", err)
		return nil, UnExpectedError
	}
	return &dto.NotificationUnreadDTO{UnreadCount: count}, nil
}

// MarkRead 标记单条通知已读，只能操作属于自己的通知
func (s *NotificationServiceImpl) MarkRead(ctx context.Context, userID uint64, msgID string) error {
	err := s.notificationRepo.MarkAsRead(ctx, userID, msgID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) || errors.Is(err, mongo.ErrInvalidIndexValue) {
			return ErrNotificationNotFound
		}
		slog.ErrorContext(ctx, "标记通知已读失败", "user_id", userID, "msg_id", msgID, "error", err)
		return UnExpectedError
	}
	return nil
}

// MarkAllRead 标记用户全部通知已读
func (s *NotificationServiceImpl) MarkAllRead(ctx context.Context, userID uint64) error {
	if err := s.notificationRepo.MarkAllAsRead(ctx, userID); err != nil {
		slog.ErrorContext(ctx, "标记全部通知已读失败", "user_id", userID, "error", err)
		return UnExpectedError
	}
	return nil
}
