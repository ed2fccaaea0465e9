package repository

import (
	"Meridian/internal/model"
	"context"
	"testing"
	"time"
)

func TestCreateUserFollowDuplicate(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserFollowRepo(db)
	ctx := context.Background()

	created, err := repo.CreateUserFollow(ctx, &model.UserFollow{FollowerID: 1, FollowingID: 2, CreatedAt: time.Now()})
	if err != nil {
		t.Fatalf("首次创建失败: %v", err)
	}
	if !created {
		t.Fatal("首次创建应返回 created=true")
	}

	created, err = repo.CreateUserFollow(ctx, &model.UserFollow{FollowerID: 1, FollowingID: 2, CreatedAt: time.Now()})
	if err != nil {
		t.Fatalf("重复创建不应报错: %v", err)
	}
	if created {
		t.Fatal("重复创建应返回 created=false")
	}

	count, err := repo.GetUserFollowerCount(ctx, 2)
	if err != nil {
		t.Fatalf("统计粉丝数失败: %v", err)
	}
	if count != 1 {
		t.Fatalf("粉丝数应为 1, 实际 %d", count)
	}
}

func TestDeleteUserFollow(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserFollowRepo(db)
	ctx := context.Background()

	if _, err := repo.CreateUserFollow(ctx, &model.UserFollow{FollowerID: 1, FollowingID: 2, CreatedAt: time.Now()}); err != nil {
		t.Fatalf("创建失败: %v", err)
	}

	affected, err := repo.DeleteUserFollow(ctx, &model.UserFollow{FollowerID: 1, FollowingID: 2})
	if err != nil {
		t.Fatalf("删除失败: %v", err)
	}
	if affected != 1 {
		t.Fatalf("删除行数应为 1, 实际 %d", affected)
	}

	affected, err = repo.DeleteUserFollow(ctx, &model.UserFollow{FollowerID: 1, FollowingID: 2})
	if err != nil {
		t.Fatalf("删除不存在的边不应报错: %v", err)
	}
	if affected != 0 {
		t.Fatalf("重复删除行数应为 0, 实际 %d", affected)
	}
}

func TestGetUserFollowDirectional(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserFollowRepo(db)
	ctx := context.Background()

	if _, err := repo.CreateUserFollow(ctx, &model.UserFollow{FollowerID: 1, FollowingID: 2, CreatedAt: time.Now()}); err != nil {
		t.Fatalf("创建失败: %v", err)
	}

	follow, err := repo.GetUserFollow(ctx, 1, 2)
	if err != nil {
		t.Fatalf("查询失败: %v", err)
	}
	if follow == nil {
		t.Fatal("正向边应存在")
	}

	follow, err = repo.GetUserFollow(ctx, 2, 1)
	if err != nil {
		t.Fatalf("查询失败: %v", err)
	}
	if follow != nil {
		t.Fatal("反向边不应存在")
	}
}

func TestGetUserFollowersOrder(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserFollowRepo(db)
	ctx := context.Background()

	base := time.Now().Add(-time.Hour)
	for i, followerID := range []uint64{10, 11, 12} {
		edge := &model.UserFollow{FollowerID: followerID, FollowingID: 1, CreatedAt: base.Add(time.Duration(i) * time.Minute)}
		if _, err := repo.CreateUserFollow(ctx, edge); err != nil {
			t.Fatalf("创建失败: %v", err)
		}
	}

	followers, err := repo.GetUserFollowers(ctx, 1, 10, 0)
	if err != nil {
		t.Fatalf("查询粉丝列表失败: %v", err)
	}
	if len(followers) != 3 {
		t.Fatalf("粉丝列表长度应为 3, 实际 %d", len(followers))
	}
	// 最新关注的排最前
	if followers[0].FollowerID != 12 || followers[2].FollowerID != 10 {
		t.Fatalf("粉丝列表应按关注时间倒序, 实际 %d, %d, %d",
			followers[0].FollowerID, followers[1].FollowerID, followers[2].FollowerID)
	}

	page, err := repo.GetUserFollowers(ctx, 1, 2, 2)
	if err != nil {
		t.Fatalf("分页查询失败: %v", err)
	}
	if len(page) != 1 || page[0].FollowerID != 10 {
		t.Fatalf("分页结果不正确: %+v", page)
	}
}

func TestCountMutualFollowers(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserFollowRepo(db)
	ctx := context.Background()

	// 用户1 关注 2 和 3；候选人 4 的粉丝是 2 和 5
	edges := []model.UserFollow{
		{FollowerID: 1, FollowingID: 2},
		{FollowerID: 1, FollowingID: 3},
		{FollowerID: 2, FollowingID: 4},
		{FollowerID: 5, FollowingID: 4},
	}
	for i := range edges {
		edges[i].CreatedAt = time.Now()
		if _, err := repo.CreateUserFollow(ctx, &edges[i]); err != nil {
			t.Fatalf("创建失败: %v", err)
		}
	}

	followingIDs, err := repo.GetFollowingIDs(ctx, 1)
	if err != nil {
		t.Fatalf("获取关注ID失败: %v", err)
	}

	mutual, err := repo.CountMutualFollowers(ctx, 4, followingIDs)
	if err != nil {
		t.Fatalf("统计共同关注失败: %v", err)
	}
	if mutual != 1 {
		t.Fatalf("共同关注数应为 1, 实际 %d", mutual)
	}

	mutual, err = repo.CountMutualFollowers(ctx, 4, nil)
	if err != nil {
		t.Fatalf("空关注集不应报错: %v", err)
	}
	if mutual != 0 {
		t.Fatalf("空关注集共同关注数应为 0, 实际 %d", mutual)
	}
}
