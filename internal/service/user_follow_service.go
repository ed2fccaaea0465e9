package service

import (
	"Meridian/internal/api/dto"
	"Meridian/internal/model"
	"Meridian/internal/pkg/consts"
	"Meridian/internal/pkg/minio"
	"Meridian/internal/pkg/redis"
	"Meridian/internal/repository"
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

const (
	// MaxCacheSize 关注/粉丝有序集合最多缓存的边数
	MaxCacheSize = 1000
	// MaxFollowingCount 单个用户允许的关注上限
	MaxFollowingCount = 1000

	followCacheTTL = time.Hour
	countCacheTTL  = time.Hour
)

type UserFollowService interface {
	Follow(ctx context.Context, followerID, followingID uint64) (*dto.FollowResultDTO, error)
	Unfollow(ctx context.Context, followerID, followingID uint64) (*dto.UnfollowResultDTO, error)
	GetUserFollowers(ctx context.Context, userID uint64, limit, offset int) ([]*dto.FollowUserDTO, error)
	GetUserFollowings(ctx context.Context, userID uint64, limit, offset int) ([]*dto.FollowUserDTO, error)
	GetFriends(ctx context.Context, userID uint64) ([]*dto.FollowUserDTO, error)
	GetSomeoneIsFollowing(ctx context.Context, followerID, followingID uint64) (bool, error)
	GetUserFollowerCount(ctx context.Context, userID uint64) (int64, error)
	GetUserFollowingCount(ctx context.Context, userID uint64) (int64, error)
}

type UserFollowServiceImpl struct {
	userFollowRepo repository.UserFollowRepo
	userRepo       repository.UserRepo
	noticeService  NotificationService
}

func NewUserFollowService(
	userFollowRepo repository.UserFollowRepo,
	userRepo repository.UserRepo,
	noticeService NotificationService,
) UserFollowService {
	return &UserFollowServiceImpl{
		userFollowRepo: userFollowRepo,
		userRepo:       userRepo,
		noticeService:  noticeService,
	}
}

// Follow 关注用户
// becameFriends 表示本次操作使双方进入互关状态，
// 反向边必须在写入之前读取，否则无法区分"本次成为好友"和"早已是好友"
func (s *UserFollowServiceImpl) Follow(ctx context.Context, followerID, followingID uint64) (*dto.FollowResultDTO, error) {
	if followerID == followingID {
		return nil, ErrUserFollowSelf
	}

	target, err := s.userRepo.GetUserById(ctx, followingID)
	if err != nil {
		slog.ErrorContext(ctx, "查询被关注用户失败", "following_id", followingID, "error", err)
		return nil, UnExpectedError
	}
	if target == nil {
		return nil, ErrUserNotFound
	}

	followingCount, err := s.GetUserFollowingCount(ctx, followerID)
	if err != nil {
		return nil, err
	}
	if followingCount >= MaxFollowingCount {
		return nil, ErrUserFollowLimit
	}

	reverse, err := s.userFollowRepo.GetUserFollow(ctx, followingID, followerID)
	if err != nil {
		slog.ErrorContext(ctx, "查询反向关注关系失败", "follower_id", followerID, "following_id", followingID, "error", err)
		return nil, UnExpectedError
	}

	created, err := s.userFollowRepo.CreateUserFollow(ctx, &model.UserFollow{
		FollowerID:  followerID,
		FollowingID: followingID,
		CreatedAt:   time.Now(),
	})
	if err != nil {
		slog.ErrorContext(ctx, "创建关注关系失败", "follower_id", followerID, "following_id", followingID, "error", err)
		return nil, UnExpectedError
	}
	if !created {
		return nil, ErrUserFollowExist
	}

	becameFriends := reverse != nil
	s.notifyFollowed(ctx, followerID, followingID, becameFriends)

	return &dto.FollowResultDTO{
		BecameFriends: becameFriends,
		TargetName:    target.Nickname,
	}, nil
}

// Unfollow 取消关注
// wasUnfriended 表示取关之前双方处于互关状态
func (s *UserFollowServiceImpl) Unfollow(ctx context.Context, followerID, followingID uint64) (*dto.UnfollowResultDTO, error) {
	if followerID == followingID {
		return nil, ErrUserFollowSelf
	}

	target, err := s.userRepo.GetUserById(ctx, followingID)
	if err != nil {
		slog.ErrorContext(ctx, "查询被取关用户失败", "following_id", followingID, "error", err)
		return nil, UnExpectedError
	}
	if target == nil {
		return nil, ErrUserNotFound
	}

	reverse, err := s.userFollowRepo.GetUserFollow(ctx, followingID, followerID)
	if err != nil {
		slog.ErrorContext(ctx, "查询反向关注关系失败", "follower_id", followerID, "following_id", followingID, "error", err)
		return nil, UnExpectedError
	}

	affected, err := s.userFollowRepo.DeleteUserFollow(ctx, &model.UserFollow{
		FollowerID:  followerID,
		FollowingID: followingID,
	})
	if err != nil {
		slog.ErrorContext(ctx, "删除关注关系失败", "follower_id", followerID, "following_id", followingID, "error", err)
		return nil, UnExpectedError
	}
	if affected == 0 {
		return nil, ErrUserFollowNotFound
	}

	wasUnfriended := reverse != nil
	s.notifyUnfollowed(ctx, followerID, followingID, wasUnfriended)

	return &dto.UnfollowResultDTO{
		WasUnfriended: wasUnfriended,
		TargetName:    target.Nickname,
	}, nil
}

// GetUserFollowers 获取粉丝列表
func (s *UserFollowServiceImpl) GetUserFollowers(ctx context.Context, userID uint64, limit, offset int) ([]*dto.FollowUserDTO, error) {
	follows, err := s.getFollowListCommon(ctx, userID, limit, offset, consts.UserFollowerKey, s.userFollowRepo.GetUserFollowers, true)
	if err != nil {
		slog.ErrorContext(ctx, "获取粉丝列表失败", "user_id", userID, "error", err)
		return nil, UnExpectedError
	}
	return s.buildFollowUserDTOs(ctx, userID, follows)
}

// GetUserFollowings 获取关注列表
func (s *UserFollowServiceImpl) GetUserFollowings(ctx context.Context, userID uint64, limit, offset int) ([]*dto.FollowUserDTO, error) {
	follows, err := s.getFollowListCommon(ctx, userID, limit, offset, consts.UserFollowingKey, s.userFollowRepo.GetUserFollowing, false)
	if err != nil {
		slog.ErrorContext(ctx, "获取关注列表失败", "user_id", userID, "error", err)
		return nil, UnExpectedError
	}
	return s.buildFollowUserDTOs(ctx, userID, follows)
}

// GetFriends 获取好友列表：关注列表中同时回关自己的用户
// 好友关系不落库，始终由两条边即时推导
func (s *UserFollowServiceImpl) GetFriends(ctx context.Context, userID uint64) ([]*dto.FollowUserDTO, error) {
	followings, err := s.userFollowRepo.GetUserFollowing(ctx, userID, MaxFollowingCount, 0)
	if err != nil {
		slog.ErrorContext(ctx, "获取关注列表失败", "user_id", userID, "error", err)
		return nil, UnExpectedError
	}

	followerIDs, err := s.userFollowRepo.GetFollowerIDs(ctx, userID)
	if err != nil {
		slog.ErrorContext(ctx, "获取粉丝ID集合失败", "user_id", userID, "error", err)
		return nil, UnExpectedError
	}
	followerSet := make(map[uint64]struct{}, len(followerIDs))
	for _, id := range followerIDs {
		followerSet[id] = struct{}{}
	}

	friends := make([]*model.UserFollow, 0)
	for _, follow := range followings {
		if _, ok := followerSet[follow.FollowingID]; ok {
			friends = append(friends, follow)
		}
	}
	return s.buildFollowUserDTOs(ctx, userID, friends)
}

// GetSomeoneIsFollowing 判断 followerID 是否关注了 followingID
func (s *UserFollowServiceImpl) GetSomeoneIsFollowing(ctx context.Context, followerID, followingID uint64) (bool, error) {
	key := consts.UserFollowingKey + strconv.FormatUint(followerID, 10)
	score, err := redis.ZScore(ctx, key, strconv.FormatUint(followingID, 10))
	if err == nil && score > 0 {
		return true, nil
	}

	follow, err := s.userFollowRepo.GetUserFollow(ctx, followerID, followingID)
	if err != nil {
		slog.ErrorContext(ctx, "查询关注关系失败", "follower_id", followerID, "following_id", followingID, "error", err)
		return false, UnExpectedError
	}
	return follow != nil, nil
}

// GetUserFollowerCount 获取粉丝数
func (s *UserFollowServiceImpl) GetUserFollowerCount(ctx context.Context, userID uint64) (int64, error) {
	return s.getCountCommon(ctx, userID, consts.UserFollowerCountKey, s.userFollowRepo.GetUserFollowerCount)
}

// GetUserFollowingCount 获取关注数
func (s *UserFollowServiceImpl) GetUserFollowingCount(ctx context.Context, userID uint64) (int64, error) {
	return s.getCountCommon(ctx, userID, consts.UserFollowingCountKey, s.userFollowRepo.GetUserFollowingCount)
}

// notifyFollowed 关注成功后的通知，失败只记日志，不影响关注结果
func (s *UserFollowServiceImpl) notifyFollowed(ctx context.Context, followerID, followingID uint64, becameFriends bool) {
	if s.noticeService == nil {
		return
	}

	actorName := "有人"
	if actor, err := s.userRepo.GetUserById(ctx, followerID); err == nil && actor != nil {
		actorName = actor.Nickname
	}

	noticeType := consts.NoticeTypeInfo
	content := fmt.Sprintf("%s 开始关注你", actorName)
	if becameFriends {
		noticeType = consts.NoticeTypeSuccess
		content = fmt.Sprintf("🎉 你和 %s 成为了好友！", actorName)
	}

	if err := s.noticeService.Notify(ctx, followingID, followerID, noticeType, content); err != nil {
		slog.WarnContext(ctx, "关注通知发送失败", "receiver_id", followingID, "sender_id", followerID, "error", err)
	}
}

// notifyUnfollowed 取关成功后的通知，失败只记日志
func (s *UserFollowServiceImpl) notifyUnfollowed(ctx context.Context, followerID, followingID uint64, wasUnfriended bool) {
	if s.noticeService == nil {
		return
	}

	actorName := "有人"
	if actor, err := s.userRepo.GetUserById(ctx, followerID); err == nil && actor != nil {
		actorName = actor.Nickname
	}

	content := fmt.Sprintf("%s 取消关注了你", actorName)
	if wasUnfriended {
		content = fmt.Sprintf("💔 你和 %s 不再是好友了", actorName)
	}

	if err := s.noticeService.Notify(ctx, followingID, followerID, consts.NoticeTypeInfo, content); err != nil {
		slog.WarnContext(ctx, "取关通知发送失败", "receiver_id", followingID, "sender_id", followerID, "error", err)
	}
}

type followFetcher func(ctx context.Context, userID uint64, limit, offset int) ([]*model.UserFollow, error)

// getFollowListCommon 粉丝/关注列表的通用读取路径
// 优先读 Redis 有序集合，未命中则回源数据库并异步回填前 MaxCacheSize 条
func (s *UserFollowServiceImpl) getFollowListCommon(ctx context.Context, userID uint64, limit, offset int,
	cachePrefix string, fetch followFetcher, fromFollower bool) ([]*model.UserFollow, error) {

	key := cachePrefix + strconv.FormatUint(userID, 10)
	cached, err := redis.ZRevRangeWithScores(ctx, key, int64(offset), int64(offset+limit-1))
	if err != nil {
		slog.WarnContext(ctx, "读取关注关系缓存失败", "key", key, "error", err)
	}
	if len(cached) > 0 {
		return zSetToUserFollows(userID, cached, fromFollower), nil
	}

	follows, err := fetch(ctx, userID, MaxCacheSize, 0)
	if err != nil {
		return nil, err
	}
	s.cacheFollowList(key, userID, follows)

	if offset >= len(follows) {
		return []*model.UserFollow{}, nil
	}
	end := offset + limit
	if end > len(follows) {
		end = len(follows)
	}
	return follows[offset:end], nil
}

// cacheFollowList 异步回填有序集合缓存，成员为对端用户ID，分数为关注时间
func (s *UserFollowServiceImpl) cacheFollowList(key string, userID uint64, follows []*model.UserFollow) {
	if len(follows) == 0 {
		return
	}

	go func() {
		rdb := redis.GetRdbClient()
		if rdb == nil {
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
		defer cancel()

		members := make([]goredis.Z, 0, len(follows))
		for _, follow := range follows {
			members = append(members, goredis.Z{
				Score:  float64(follow.CreatedAt.Unix()),
				Member: strconv.FormatUint(counterpartID(follow, userID), 10),
			})
		}

		pipe := rdb.TxPipeline()
		pipe.ZAdd(ctx, key, members...)
		pipe.ZRemRangeByRank(ctx, key, 0, int64(-(MaxCacheSize + 1)))
		pipe.Expire(ctx, key, followCacheTTL)
		if _, err := pipe.Exec(ctx); err != nil {
			slog.Warn("关注关系缓存回填失败", "key", key, "error", err)
		}
	}()
}

// getCountCommon 计数的通用读取路径：字符串缓存 -> 数据库
func (s *UserFollowServiceImpl) getCountCommon(ctx context.Context, userID uint64, cachePrefix string,
	fetch func(ctx context.Context, userID uint64) (int64, error)) (int64, error) {

	key := cachePrefix + strconv.FormatUint(userID, 10)
	if value, err := redis.GetValue(ctx, key); err == nil && value != "" {
		if count, err := strconv.ParseInt(value, 10, 64); err == nil {
			return count, nil
		}
	}

	count, err := fetch(ctx, userID)
	if err != nil {
		slog.ErrorContext(ctx, "获取关注计数失败", "user_id", userID, "error", err)
		return 0, UnExpectedError
	}
	if err := redis.SetWithExpiration(ctx, key, count, countCacheTTL); err != nil {
		slog.WarnContext(ctx, "关注计数缓存写入失败", "key", key, "error", err)
	}
	return count, nil
}

// buildFollowUserDTOs 批量补全对端用户信息，保持传入顺序
func (s *UserFollowServiceImpl) buildFollowUserDTOs(ctx context.Context, userID uint64, follows []*model.UserFollow) ([]*dto.FollowUserDTO, error) {
	if len(follows) == 0 {
		return []*dto.FollowUserDTO{}, nil
	}

	ids := make([]uint64, 0, len(follows))
	for _, follow := range follows {
		ids = append(ids, counterpartID(follow, userID))
	}
	users, err := s.userRepo.GetUserByIds(ctx, ids)
	if err != nil {
		slog.ErrorContext(ctx, "批量获取用户信息失败", "user_id", userID, "error", err)
		return nil, UnExpectedError
	}
	userMap := make(map[uint64]*model.User, len(users))
	for _, user := range users {
		userMap[user.ID] = user
	}

	list := make([]*dto.FollowUserDTO, 0, len(follows))
	for _, follow := range follows {
		user, ok := userMap[counterpartID(follow, userID)]
		if !ok {
			// 用户可能已注销
			continue
		}
		list = append(list, &dto.FollowUserDTO{
			ID:             user.ID,
			Name:           user.Nickname,
			Avatar:         minio.GetPublicURL(user.AvatarURL),
			Bio:            bioOf(user),
			FollowersCount: user.FollowerCount,
			FollowedAt:     follow.CreatedAt,
		})
	}
	return list, nil
}

// zSetToUserFollows 从缓存条目重建关注边，分数即关注时间戳
func zSetToUserFollows(userID uint64, items []goredis.Z, fromFollower bool) []*model.UserFollow {
	follows := make([]*model.UserFollow, 0, len(items))
	for _, item := range items {
		member, ok := item.Member.(string)
		if !ok {
			continue
		}
		counterpart, err := strconv.ParseUint(member, 10, 64)
		if err != nil {
			continue
		}
		follow := &model.UserFollow{CreatedAt: time.Unix(int64(item.Score), 0)}
		if fromFollower {
			follow.FollowerID = counterpart
			follow.FollowingID = userID
		} else {
			follow.FollowerID = userID
			follow.FollowingID = counterpart
		}
		follows = append(follows, follow)
	}
	return follows
}

func counterpartID(follow *model.UserFollow, userID uint64) uint64 {
	if follow.FollowerID == userID {
		return follow.FollowingID
	}
	return follow.FollowerID
}

func bioOf(user *model.User) string {
	if user.Bio == nil {
		return ""
	}
	return *user.Bio
}
