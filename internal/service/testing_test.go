package service

import (
	"Meridian/internal/api/dto"
	"Meridian/internal/model"
	"Meridian/internal/repository"
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("打开测试数据库失败: %v", err)
	}

	if err := db.AutoMigrate(&model.User{}, &model.UserFollow{}, &model.ProfileView{}, &model.UserMetrics{}); err != nil {
		t.Fatalf("建表失败: %v", err)
	}
	return db
}

func seedUser(t *testing.T, db *gorm.DB, user *model.User) {
	t.Helper()
	if user.Nickname == "" {
		user.Nickname = fmt.Sprintf("用户%d", user.ID)
	}
	user.IsActive = true
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("写入用户失败: %v", err)
	}
}

type recordedNotice struct {
	receiverID uint64
	senderID   uint64
	noticeType int8
	content    string
}

// noticeRecorder 记录通知调用，fail=true 时模拟通知链路故障
type noticeRecorder struct {
	fail  bool
	items []recordedNotice
}

func (r *noticeRecorder) Notify(_ context.Context, receiverID, senderID uint64, noticeType int8, content string) error {
	if r.fail {
		return errors.New("通知服务不可用")
	}
	r.items = append(r.items, recordedNotice{
		receiverID: receiverID,
		senderID:   senderID,
		noticeType: noticeType,
		content:    content,
	})
	return nil
}

func (r *noticeRecorder) GetNotificationList(context.Context, uint64, int64, int64) ([]*dto.NotificationDTO, error) {
	return nil, nil
}

func (r *noticeRecorder) GetUnreadCount(context.Context, uint64) (*dto.NotificationUnreadDTO, error) {
	return nil, nil
}

func (r *noticeRecorder) MarkRead(context.Context, uint64, string) error { return nil }

func (r *noticeRecorder) MarkAllRead(context.Context, uint64) error { return nil }

type followFixture struct {
	db        *gorm.DB
	followSvc UserFollowService
	userSvc   UserService
	viewSvc   ProfileViewService
	notices   *noticeRecorder
}

func newFollowFixture(t *testing.T) *followFixture {
	t.Helper()

	db := newTestDB(t)
	userRepo := repository.NewUserRepo(db)
	followRepo := repository.NewUserFollowRepo(db)
	viewRepo := repository.NewProfileViewRepo(db)
	notices := &noticeRecorder{}

	return &followFixture{
		db:        db,
		followSvc: NewUserFollowService(followRepo, userRepo, notices),
		userSvc:   NewUserService(userRepo, followRepo, viewRepo),
		viewSvc:   NewProfileViewService(viewRepo, userRepo),
		notices:   notices,
	}
}

func (f *followFixture) seedUsers(t *testing.T, ids ...uint64) {
	t.Helper()
	for i, id := range ids {
		seedUser(t, f.db, &model.User{ID: id, CreatedAt: time.Now().Add(time.Duration(i) * time.Second)})
	}
}
