package repository

import (
	"Meridian/internal/model"
	"context"
	"errors"

	"gorm.io/gorm"
)

type UserRepo interface {
	GetUserById(ctx context.Context, id uint64) (*model.User, error)
	GetUserByIds(ctx context.Context, ids []uint64) ([]*model.User, error)
	GetSuggestedUsers(ctx context.Context, excludedIDs []uint64, limit int) ([]*model.User, error)
	UpdateUserIsBan(ctx context.Context, id uint64, isBan bool) (int64, error)
	UpdateUserFollowCount(ctx context.Context, id uint64, followerCount int64, followingCount int64) error
}

type UserRepoImpl struct {
	db *gorm.DB
}

func NewUserRepo(db *gorm.DB) UserRepo {
	return &UserRepoImpl{db: db}
}

func (s *UserRepoImpl) GetUserById(ctx context.Context, id uint64) (*model.User, error) {
	user := &model.User{}
	result := s.db.WithContext(ctx).First(user, id)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}

	return user, nil
}

func (s *UserRepoImpl) GetUserByIds(ctx context.Context, ids []uint64) ([]*model.User, error) {
	users := make([]*model.User, 0)
	result := s.db.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&users)
	if result.Error != nil {
		return nil, result.Error
	}
	return users, nil
}

// GetSuggestedUsers 获取候选用户：活跃、未封禁、不在排除集中，按注册时间倒序
// 排序策略集中在这一个查询里，后续更换推荐模型只需替换此实现
func (s *UserRepoImpl) GetSuggestedUsers(ctx context.Context, excludedIDs []uint64, limit int) ([]*model.User, error) {
	users := make([]*model.User, 0)
	result := s.db.WithContext(ctx).
		Where("id NOT IN ?", excludedIDs).
		Where("is_active = ?", true).
		Where("is_ban = ?", false).
		Order("created_at desc").
		Limit(limit).
		Find(&users)

	if result.Error != nil {
		return nil, result.Error
	}
	return users, nil
}

func (s *UserRepoImpl) UpdateUserIsBan(ctx context.Context, id uint64, isBan bool) (int64, error) {
	result := s.db.WithContext(ctx).
		Model(&model.User{}).
		Where("id = ?", id).
		Update("is_ban", isBan)

	return result.RowsAffected, result.Error
}

// UpdateUserFollowCount 刷新冗余的关注/粉丝计数
func (s *UserRepoImpl) UpdateUserFollowCount(ctx context.Context, id uint64, followerCount int64, followingCount int64) error {
	result := s.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).Updates(map[string]interface{}{
		"follower_count":  followerCount,
		"following_count": followingCount,
	})
	if result.Error != nil {
		return result.Error
	}
	return nil
}
