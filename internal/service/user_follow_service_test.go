package service

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestFollowFirstDirectionIsNotFriendship(t *testing.T) {
	f := newFollowFixture(t)
	f.seedUsers(t, 1, 2)
	ctx := context.Background()

	result, err := f.followSvc.Follow(ctx, 1, 2)
	if err != nil {
		t.Fatalf("关注失败: %v", err)
	}
	if result.BecameFriends {
		t.Fatal("单向关注不应成为好友")
	}
	if result.TargetName != "用户2" {
		t.Fatalf("目标昵称不正确: %s", result.TargetName)
	}

	if len(f.notices.items) != 1 {
		t.Fatalf("应产生一条通知, 实际 %d", len(f.notices.items))
	}
	notice := f.notices.items[0]
	if notice.receiverID != 2 || notice.senderID != 1 {
		t.Fatalf("通知收发方不正确: %+v", notice)
	}
	if !strings.Contains(notice.content, "开始关注你") {
		t.Fatalf("关注通知文案不正确: %s", notice.content)
	}
}

func TestFollowBackBecomesFriends(t *testing.T) {
	f := newFollowFixture(t)
	f.seedUsers(t, 1, 2)
	ctx := context.Background()

	if _, err := f.followSvc.Follow(ctx, 1, 2); err != nil {
		t.Fatalf("关注失败: %v", err)
	}

	result, err := f.followSvc.Follow(ctx, 2, 1)
	if err != nil {
		t.Fatalf("回关失败: %v", err)
	}
	if !result.BecameFriends {
		t.Fatal("回关应成为好友")
	}

	if len(f.notices.items) != 2 {
		t.Fatalf("应产生两条通知, 实际 %d", len(f.notices.items))
	}
	notice := f.notices.items[1]
	if notice.receiverID != 1 {
		t.Fatalf("好友通知应发给被回关方: %+v", notice)
	}
	if !strings.Contains(notice.content, "成为了好友") {
		t.Fatalf("好友通知文案不正确: %s", notice.content)
	}
}

func TestFollowDuplicateReturnsExist(t *testing.T) {
	f := newFollowFixture(t)
	f.seedUsers(t, 1, 2)
	ctx := context.Background()

	if _, err := f.followSvc.Follow(ctx, 1, 2); err != nil {
		t.Fatalf("关注失败: %v", err)
	}

	_, err := f.followSvc.Follow(ctx, 1, 2)
	if !errors.Is(err, ErrUserFollowExist) {
		t.Fatalf("重复关注应返回 ErrUserFollowExist, 实际 %v", err)
	}

	// 失败的操作不应产生通知
	if len(f.notices.items) != 1 {
		t.Fatalf("重复关注不应追加通知, 实际 %d 条", len(f.notices.items))
	}
}

func TestFollowSelfRejected(t *testing.T) {
	f := newFollowFixture(t)
	f.seedUsers(t, 1)
	ctx := context.Background()

	if _, err := f.followSvc.Follow(ctx, 1, 1); !errors.Is(err, ErrUserFollowSelf) {
		t.Fatalf("关注自己应返回 ErrUserFollowSelf, 实际 %v", err)
	}
	if _, err := f.followSvc.Unfollow(ctx, 1, 1); !errors.Is(err, ErrUserFollowSelf) {
		t.Fatalf("取关自己应返回 ErrUserFollowSelf, 实际 %v", err)
	}
}

func TestFollowMissingTarget(t *testing.T) {
	f := newFollowFixture(t)
	f.seedUsers(t, 1)
	ctx := context.Background()

	if _, err := f.followSvc.Follow(ctx, 1, 99); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("关注不存在的用户应返回 ErrUserNotFound, 实际 %v", err)
	}
}

func TestFollowSucceedsWhenNotificationFails(t *testing.T) {
	f := newFollowFixture(t)
	f.seedUsers(t, 1, 2)
	f.notices.fail = true
	ctx := context.Background()

	result, err := f.followSvc.Follow(ctx, 1, 2)
	if err != nil {
		t.Fatalf("通知失败不应影响关注结果: %v", err)
	}
	if result.BecameFriends {
		t.Fatal("单向关注不应成为好友")
	}

	isFollowing, err := f.followSvc.GetSomeoneIsFollowing(ctx, 1, 2)
	if err != nil {
		t.Fatalf("查询关注状态失败: %v", err)
	}
	if !isFollowing {
		t.Fatal("关注边应已写入")
	}
}

func TestUnfollowBreaksFriendshipAsymmetrically(t *testing.T) {
	f := newFollowFixture(t)
	f.seedUsers(t, 1, 2)
	ctx := context.Background()

	if _, err := f.followSvc.Follow(ctx, 1, 2); err != nil {
		t.Fatalf("关注失败: %v", err)
	}
	if _, err := f.followSvc.Follow(ctx, 2, 1); err != nil {
		t.Fatalf("回关失败: %v", err)
	}

	result, err := f.followSvc.Unfollow(ctx, 1, 2)
	if err != nil {
		t.Fatalf("取关失败: %v", err)
	}
	if !result.WasUnfriended {
		t.Fatal("互关状态下取关应解除好友关系")
	}

	// 反向边保留
	isFollowing, err := f.followSvc.GetSomeoneIsFollowing(ctx, 2, 1)
	if err != nil {
		t.Fatalf("查询关注状态失败: %v", err)
	}
	if !isFollowing {
		t.Fatal("取关不应影响对方的关注边")
	}

	notice := f.notices.items[len(f.notices.items)-1]
	if notice.receiverID != 2 || !strings.Contains(notice.content, "不再是好友") {
		t.Fatalf("解除好友通知不正确: %+v", notice)
	}
}

func TestUnfollowWithoutEdge(t *testing.T) {
	f := newFollowFixture(t)
	f.seedUsers(t, 1, 2)
	ctx := context.Background()

	_, err := f.followSvc.Unfollow(ctx, 1, 2)
	if !errors.Is(err, ErrUserFollowNotFound) {
		t.Fatalf("取关未关注的用户应返回 ErrUserFollowNotFound, 实际 %v", err)
	}
	if len(f.notices.items) != 0 {
		t.Fatalf("失败的取关不应产生通知, 实际 %d 条", len(f.notices.items))
	}
}

func TestUnfollowNonFriendDoesNotUnfriend(t *testing.T) {
	f := newFollowFixture(t)
	f.seedUsers(t, 1, 2)
	ctx := context.Background()

	if _, err := f.followSvc.Follow(ctx, 1, 2); err != nil {
		t.Fatalf("关注失败: %v", err)
	}

	result, err := f.followSvc.Unfollow(ctx, 1, 2)
	if err != nil {
		t.Fatalf("取关失败: %v", err)
	}
	if result.WasUnfriended {
		t.Fatal("单向关注取关不应触发解除好友")
	}

	notice := f.notices.items[len(f.notices.items)-1]
	if !strings.Contains(notice.content, "取消关注了你") {
		t.Fatalf("取关通知文案不正确: %s", notice.content)
	}
}

func TestGetFriendsDerivedFromBothEdges(t *testing.T) {
	f := newFollowFixture(t)
	f.seedUsers(t, 1, 2, 3)
	ctx := context.Background()

	// 1↔2 互关，1→3 单向
	if _, err := f.followSvc.Follow(ctx, 1, 2); err != nil {
		t.Fatalf("关注失败: %v", err)
	}
	if _, err := f.followSvc.Follow(ctx, 2, 1); err != nil {
		t.Fatalf("回关失败: %v", err)
	}
	if _, err := f.followSvc.Follow(ctx, 1, 3); err != nil {
		t.Fatalf("关注失败: %v", err)
	}

	friends, err := f.followSvc.GetFriends(ctx, 1)
	if err != nil {
		t.Fatalf("获取好友列表失败: %v", err)
	}
	if len(friends) != 1 || friends[0].ID != 2 {
		t.Fatalf("好友列表应只有用户2, 实际 %+v", friends)
	}

	friends, err = f.followSvc.GetFriends(ctx, 3)
	if err != nil {
		t.Fatalf("获取好友列表失败: %v", err)
	}
	if len(friends) != 0 {
		t.Fatalf("用户3 不应有好友, 实际 %+v", friends)
	}
}

func TestFollowCounts(t *testing.T) {
	f := newFollowFixture(t)
	f.seedUsers(t, 1, 2, 3)
	ctx := context.Background()

	if _, err := f.followSvc.Follow(ctx, 1, 3); err != nil {
		t.Fatalf("关注失败: %v", err)
	}
	if _, err := f.followSvc.Follow(ctx, 2, 3); err != nil {
		t.Fatalf("关注失败: %v", err)
	}

	followerCount, err := f.followSvc.GetUserFollowerCount(ctx, 3)
	if err != nil {
		t.Fatalf("获取粉丝数失败: %v", err)
	}
	if followerCount != 2 {
		t.Fatalf("粉丝数应为 2, 实际 %d", followerCount)
	}

	followingCount, err := f.followSvc.GetUserFollowingCount(ctx, 1)
	if err != nil {
		t.Fatalf("获取关注数失败: %v", err)
	}
	if followingCount != 1 {
		t.Fatalf("关注数应为 1, 实际 %d", followingCount)
	}
}

func TestGetUserFollowersList(t *testing.T) {
	f := newFollowFixture(t)
	f.seedUsers(t, 1, 2, 3)
	ctx := context.Background()

	if _, err := f.followSvc.Follow(ctx, 2, 1); err != nil {
		t.Fatalf("关注失败: %v", err)
	}
	if _, err := f.followSvc.Follow(ctx, 3, 1); err != nil {
		t.Fatalf("关注失败: %v", err)
	}

	followers, err := f.followSvc.GetUserFollowers(ctx, 1, 10, 0)
	if err != nil {
		t.Fatalf("获取粉丝列表失败: %v", err)
	}
	if len(followers) != 2 {
		t.Fatalf("粉丝列表长度应为 2, 实际 %d", len(followers))
	}
	for _, follower := range followers {
		if follower.Name == "" {
			t.Fatalf("粉丝条目应补全昵称: %+v", follower)
		}
	}
}
