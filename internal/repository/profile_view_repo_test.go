package repository

import (
	"Meridian/internal/model"
	"context"
	"testing"
	"time"
)

func TestUpsertProfileViewDeduplicates(t *testing.T) {
	db := newTestDB(t)
	repo := NewProfileViewRepo(db)
	ctx := context.Background()

	first := time.Now().Add(-time.Hour).Truncate(time.Second)
	if err := repo.UpsertProfileView(ctx, &model.ProfileView{ViewerID: 1, ViewedID: 2, ViewedAt: first}); err != nil {
		t.Fatalf("首次写入失败: %v", err)
	}

	second := time.Now().Truncate(time.Second)
	if err := repo.UpsertProfileView(ctx, &model.ProfileView{ViewerID: 1, ViewedID: 2, ViewedAt: second}); err != nil {
		t.Fatalf("重复写入失败: %v", err)
	}

	count, err := repo.CountProfileViews(ctx, 2)
	if err != nil {
		t.Fatalf("统计访客数失败: %v", err)
	}
	if count != 1 {
		t.Fatalf("同一访问者重复访问应只计一次, 实际 %d", count)
	}

	view, err := repo.GetProfileView(ctx, 1, 2)
	if err != nil {
		t.Fatalf("查询访问记录失败: %v", err)
	}
	if view == nil {
		t.Fatal("访问记录应存在")
	}
	if !view.ViewedAt.After(first) {
		t.Fatalf("重复访问应刷新 viewed_at, 仍为 %v", view.ViewedAt)
	}
}

func TestCountProfileViewsDistinctViewers(t *testing.T) {
	db := newTestDB(t)
	repo := NewProfileViewRepo(db)
	ctx := context.Background()

	for _, viewerID := range []uint64{1, 3, 4} {
		if err := repo.UpsertProfileView(ctx, &model.ProfileView{ViewerID: viewerID, ViewedID: 2, ViewedAt: time.Now()}); err != nil {
			t.Fatalf("写入失败: %v", err)
		}
	}
	// 用户2 访问别人不影响自己的访客数
	if err := repo.UpsertProfileView(ctx, &model.ProfileView{ViewerID: 2, ViewedID: 1, ViewedAt: time.Now()}); err != nil {
		t.Fatalf("写入失败: %v", err)
	}

	count, err := repo.CountProfileViews(ctx, 2)
	if err != nil {
		t.Fatalf("统计访客数失败: %v", err)
	}
	if count != 3 {
		t.Fatalf("访客数应为 3, 实际 %d", count)
	}
}
