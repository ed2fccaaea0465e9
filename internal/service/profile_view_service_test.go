package service

import (
	"context"
	"errors"
	"testing"
)

func TestRecordViewDeduplicates(t *testing.T) {
	f := newFollowFixture(t)
	f.seedUsers(t, 1, 2, 3)
	ctx := context.Background()

	result, err := f.viewSvc.RecordView(ctx, 1, 2)
	if err != nil {
		t.Fatalf("记录访问失败: %v", err)
	}
	if !result.Recorded {
		t.Fatal("访问应被记录")
	}

	// 同一访问者重复访问
	if _, err := f.viewSvc.RecordView(ctx, 1, 2); err != nil {
		t.Fatalf("重复访问不应报错: %v", err)
	}

	count, err := f.viewSvc.GetProfileViewCount(ctx, 2)
	if err != nil {
		t.Fatalf("获取访客数失败: %v", err)
	}
	if count.Views != 1 {
		t.Fatalf("重复访问访客数应保持 1, 实际 %d", count.Views)
	}

	// 新访问者使访客数恰好加一
	if _, err := f.viewSvc.RecordView(ctx, 3, 2); err != nil {
		t.Fatalf("记录访问失败: %v", err)
	}
	count, err = f.viewSvc.GetProfileViewCount(ctx, 2)
	if err != nil {
		t.Fatalf("获取访客数失败: %v", err)
	}
	if count.Views != 2 {
		t.Fatalf("新增访问者后访客数应为 2, 实际 %d", count.Views)
	}
}

func TestRecordViewSelfRejected(t *testing.T) {
	f := newFollowFixture(t)
	f.seedUsers(t, 1)
	ctx := context.Background()

	if _, err := f.viewSvc.RecordView(ctx, 1, 1); !errors.Is(err, ErrProfileViewSelf) {
		t.Fatalf("访问自己主页应返回 ErrProfileViewSelf, 实际 %v", err)
	}
}

func TestRecordViewMissingTarget(t *testing.T) {
	f := newFollowFixture(t)
	f.seedUsers(t, 1)
	ctx := context.Background()

	if _, err := f.viewSvc.RecordView(ctx, 1, 99); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("访问不存在的用户应返回 ErrUserNotFound, 实际 %v", err)
	}
}
