package repository

import (
	"Meridian/internal/model"
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProfileViewRepo interface {
	UpsertProfileView(ctx context.Context, view *model.ProfileView) error
	GetProfileView(ctx context.Context, viewerID, viewedID uint64) (*model.ProfileView, error)
	CountProfileViews(ctx context.Context, viewedID uint64) (int64, error)
}

type ProfileViewRepoImpl struct {
	db *gorm.DB
}

func NewProfileViewRepo(db *gorm.DB) ProfileViewRepo {
	return &ProfileViewRepoImpl{db: db}
}

// UpsertProfileView 写入访问记录
// (viewer_id, viewed_id) 已存在时只刷新 viewed_at，访客数不随重复访问增长
func (s *ProfileViewRepoImpl) UpsertProfileView(ctx context.Context, view *model.ProfileView) error {
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "viewer_id"}, {Name: "viewed_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{"viewed_at": view.ViewedAt}),
		}).
		Create(view).Error
}

// GetProfileView 获取单条访问记录，不存在返回 nil
func (s *ProfileViewRepoImpl) GetProfileView(ctx context.Context, viewerID, viewedID uint64) (*model.ProfileView, error) {
	var view model.ProfileView
	result := s.db.WithContext(ctx).
		Where("viewer_id = ? AND viewed_id = ?", viewerID, viewedID).
		First(&view)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return &view, nil
}

// CountProfileViews 统计独立访客数（每个访问者至多计一次）
func (s *ProfileViewRepoImpl) CountProfileViews(ctx context.Context, viewedID uint64) (int64, error) {
	var count int64
	result := s.db.WithContext(ctx).
		Model(&model.ProfileView{}).
		Where("viewed_id = ?", viewedID).
		Count(&count)

	if result.Error != nil {
		return 0, result.Error
	}
	return count, nil
}
