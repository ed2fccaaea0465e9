package service

import (
	"Meridian/internal/model"
	"context"
	"errors"
	"testing"
	"time"
)

func TestGetSuggestedConnectionsExcludesSelfAndFollowed(t *testing.T) {
	f := newFollowFixture(t)
	f.seedUsers(t, 1, 2, 3, 4)
	ctx := context.Background()

	if _, err := f.followSvc.Follow(ctx, 1, 2); err != nil {
		t.Fatalf("关注失败: %v", err)
	}

	list, err := f.userSvc.GetSuggestedConnections(ctx, 1)
	if err != nil {
		t.Fatalf("获取推荐失败: %v", err)
	}

	for _, item := range list {
		if item.ID == 1 {
			t.Fatal("推荐不应包含自己")
		}
		if item.ID == 2 {
			t.Fatal("推荐不应包含已关注用户")
		}
		if item.IsFollowing {
			t.Fatalf("推荐条目 isFollowing 应恒为 false: %+v", item)
		}
	}
	if len(list) != 2 {
		t.Fatalf("推荐数量应为 2, 实际 %d", len(list))
	}
}

func TestGetSuggestedConnectionsMutualFollowers(t *testing.T) {
	f := newFollowFixture(t)
	f.seedUsers(t, 1, 2, 3, 4, 5)
	ctx := context.Background()

	// 1 关注 2、3；2 和 3 都关注 4；5 没有共同关注
	for _, edge := range [][2]uint64{{1, 2}, {1, 3}, {2, 4}, {3, 4}} {
		if _, err := f.followSvc.Follow(ctx, edge[0], edge[1]); err != nil {
			t.Fatalf("关注失败: %v", err)
		}
	}

	list, err := f.userSvc.GetSuggestedConnections(ctx, 1)
	if err != nil {
		t.Fatalf("获取推荐失败: %v", err)
	}

	mutualByID := make(map[uint64]int64)
	for _, item := range list {
		mutualByID[item.ID] = item.MutualFollowers
	}
	if mutualByID[4] != 2 {
		t.Fatalf("用户4 的共同关注数应为 2, 实际 %d", mutualByID[4])
	}
	if mutualByID[5] != 0 {
		t.Fatalf("用户5 的共同关注数应为 0, 实际 %d", mutualByID[5])
	}
}

func TestGetSuggestedConnectionsNewestFirst(t *testing.T) {
	f := newFollowFixture(t)
	ctx := context.Background()

	base := time.Now().Add(-time.Hour)
	for i, id := range []uint64{1, 2, 3, 4} {
		seedUser(t, f.db, &model.User{ID: id, CreatedAt: base.Add(time.Duration(i) * time.Minute)})
	}

	list, err := f.userSvc.GetSuggestedConnections(ctx, 1)
	if err != nil {
		t.Fatalf("获取推荐失败: %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("推荐数量应为 3, 实际 %d", len(list))
	}
	// 注册最晚的排最前
	if list[0].ID != 4 || list[2].ID != 2 {
		t.Fatalf("推荐应按注册时间倒序, 实际 %d, %d, %d", list[0].ID, list[1].ID, list[2].ID)
	}
}

func TestGetSuggestedConnectionsSkipsBannedAndInactive(t *testing.T) {
	f := newFollowFixture(t)
	f.seedUsers(t, 1, 2)
	ctx := context.Background()

	if err := f.db.Create(&model.User{ID: 3, Nickname: "封禁用户", IsActive: true, IsBan: true}).Error; err != nil {
		t.Fatalf("写入用户失败: %v", err)
	}
	// is_active 带默认值，零值写入会被忽略，显式更新
	if err := f.db.Create(&model.User{ID: 4, Nickname: "注销用户", IsActive: true}).Error; err != nil {
		t.Fatalf("写入用户失败: %v", err)
	}
	if err := f.db.Model(&model.User{}).Where("id = ?", 4).Update("is_active", false).Error; err != nil {
		t.Fatalf("更新用户失败: %v", err)
	}

	list, err := f.userSvc.GetSuggestedConnections(ctx, 1)
	if err != nil {
		t.Fatalf("获取推荐失败: %v", err)
	}
	if len(list) != 1 || list[0].ID != 2 {
		t.Fatalf("封禁与注销用户不应出现在推荐中: %+v", list)
	}
}

func TestGetUserHomeInfo(t *testing.T) {
	f := newFollowFixture(t)
	f.seedUsers(t, 1, 2, 3)
	ctx := context.Background()

	if _, err := f.followSvc.Follow(ctx, 2, 1); err != nil {
		t.Fatalf("关注失败: %v", err)
	}
	if _, err := f.followSvc.Follow(ctx, 1, 3); err != nil {
		t.Fatalf("关注失败: %v", err)
	}
	if _, err := f.viewSvc.RecordView(ctx, 2, 1); err != nil {
		t.Fatalf("记录访问失败: %v", err)
	}

	home, err := f.userSvc.GetUserHomeInfo(ctx, 1)
	if err != nil {
		t.Fatalf("获取主页失败: %v", err)
	}
	if home.FollowerCount != 1 || home.FollowingCount != 1 || home.ProfileViews != 1 {
		t.Fatalf("主页统计不正确: %+v", home)
	}
}

func TestGetUserHomeInfoBannedUserHidden(t *testing.T) {
	f := newFollowFixture(t)
	ctx := context.Background()

	if err := f.db.Create(&model.User{ID: 1, Nickname: "封禁用户", IsActive: true, IsBan: true}).Error; err != nil {
		t.Fatalf("写入用户失败: %v", err)
	}

	if _, err := f.userSvc.GetUserHomeInfo(ctx, 1); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("封禁用户主页应返回 ErrUserNotFound, 实际 %v", err)
	}
}

func TestBanUser(t *testing.T) {
	f := newFollowFixture(t)
	f.seedUsers(t, 1, 2)
	ctx := context.Background()

	if err := f.userSvc.BanUser(ctx, 1, 1); !errors.Is(err, ErrUserBanSelf) {
		t.Fatalf("封禁自己应返回 ErrUserBanSelf, 实际 %v", err)
	}
	if err := f.userSvc.BanUser(ctx, 1, 99); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("封禁不存在的用户应返回 ErrUserNotFound, 实际 %v", err)
	}

	if err := f.userSvc.BanUser(ctx, 1, 2); err != nil {
		t.Fatalf("封禁失败: %v", err)
	}
	if _, err := f.userSvc.GetUserHomeInfo(ctx, 2); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("封禁后主页应不可见, 实际 %v", err)
	}

	if err := f.userSvc.UnbanUser(ctx, 1, 2); err != nil {
		t.Fatalf("解封失败: %v", err)
	}
	if _, err := f.userSvc.GetUserHomeInfo(ctx, 2); err != nil {
		t.Fatalf("解封后主页应可见: %v", err)
	}
}

func TestGetUserSimpleInfoByIds(t *testing.T) {
	f := newFollowFixture(t)
	f.seedUsers(t, 1, 2)
	ctx := context.Background()

	list, err := f.userSvc.GetUserSimpleInfoByIds(ctx, []uint64{1, 2, 99})
	if err != nil {
		t.Fatalf("批量获取失败: %v", err)
	}
	// 不存在的ID直接跳过
	if len(list) != 2 {
		t.Fatalf("应返回 2 条, 实际 %d", len(list))
	}
	if list[0].ID != 1 || list[1].ID != 2 {
		t.Fatalf("应保持请求顺序: %+v", list)
	}
}
