package repository

import (
	"Meridian/internal/model"
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

type UserMetricsRepo interface {
	GetUserMetricsByDate(ctx context.Context, userID uint64, date time.Time) (*model.UserMetrics, error)
	GetUserMetricsBy7Days(ctx context.Context, userID uint64) ([]*model.UserMetrics, error)
	GetUserMetricsBy30Days(ctx context.Context, userID uint64) ([]*model.UserMetrics, error)
	CreateUserMetric(ctx context.Context, metric *model.UserMetrics) error
	UpdateUserMetric(ctx context.Context, metric *model.UserMetrics) error
}

type UserMetricsRepoImpl struct {
	db *gorm.DB
}

func NewUserMetricsRepository(db *gorm.DB) UserMetricsRepo {
	return &UserMetricsRepoImpl{db: db}
}

func (s *UserMetricsRepoImpl) GetUserMetricsByDate(ctx context.Context, userID uint64, date time.Time) (*model.UserMetrics, error) {
	var metric model.UserMetrics
	result := s.db.WithContext(ctx).
		Where("user_id = ? AND metric_date = ?", userID, date.Format(time.DateOnly)).
		First(&metric)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return &metric, nil
}

func (s *UserMetricsRepoImpl) GetUserMetricsBy7Days(ctx context.Context, userID uint64) ([]*model.UserMetrics, error) {
	return s.getUserMetricsByDays(ctx, userID, 7)
}

func (s *UserMetricsRepoImpl) GetUserMetricsBy30Days(ctx context.Context, userID uint64) ([]*model.UserMetrics, error) {
	return s.getUserMetricsByDays(ctx, userID, 30)
}

func (s *UserMetricsRepoImpl) getUserMetricsByDays(ctx context.Context, userID uint64, days int) ([]*model.UserMetrics, error) {
	since := time.Now().AddDate(0, 0, -days)

	metrics := make([]*model.UserMetrics, 0, days)
	result := s.db.WithContext(ctx).
		Where("user_id = ? AND metric_date >= ?", userID, since.Format(time.DateOnly)).
		Order("metric_date asc").
		Find(&metrics)
	if result.Error != nil {
		return nil, result.Error
	}
	return metrics, nil
}

func (s *UserMetricsRepoImpl) CreateUserMetric(ctx context.Context, metric *model.UserMetrics) error {
	return s.db.WithContext(ctx).Create(metric).Error
}

func (s *UserMetricsRepoImpl) UpdateUserMetric(ctx context.Context, metric *model.UserMetrics) error {
	return s.db.WithContext(ctx).
		Model(&model.UserMetrics{}).
		Where("id = ?", metric.ID).
		Update("total_followers", metric.TotalFollowers).Error
}
