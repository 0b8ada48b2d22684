package sqlite

import (
	"context"

	errwrap "github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/rahmatrdn/go-flight-analytics/entity"
	"github.com/rahmatrdn/go-flight-analytics/internal/helper"
)

type SearchHistoryRepository interface {
	Create(ctx context.Context, history *entity.SearchHistory) error
	FindRecent(ctx context.Context, limit int) ([]*entity.SearchHistory, error)
	Prune(ctx context.Context, maxLimit int) error
}

type searchHistoryRepo struct {
	db *gorm.DB
}

func NewSearchHistoryRepository(db *gorm.DB) SearchHistoryRepository {
	return &searchHistoryRepo{db: db}
}

func (r *searchHistoryRepo) Create(ctx context.Context, history *entity.SearchHistory) error {
	funcName := "SearchHistoryRepository.Create"
	if err := helper.CheckDeadline(ctx); err != nil {
		return errwrap.Wrap(err, funcName)
	}

	return r.db.WithContext(ctx).Create(history).Error
}

func (r *searchHistoryRepo) FindRecent(ctx context.Context, limit int) ([]*entity.SearchHistory, error) {
	funcName := "SearchHistoryRepository.FindRecent"
	if err := helper.CheckDeadline(ctx); err != nil {
		return nil, errwrap.Wrap(err, funcName)
	}

	var histories []*entity.SearchHistory
	err := r.db.WithContext(ctx).
		Order("created_at desc").
		Limit(limit).
		Find(&histories).Error

	if err != nil {
		return nil, errwrap.Wrap(err, funcName)
	}
	return histories, nil
}

// Prune drops everything past the newest maxLimit runs.
func (r *searchHistoryRepo) Prune(ctx context.Context, maxLimit int) error {
	funcName := "SearchHistoryRepository.Prune"
	if err := helper.CheckDeadline(ctx); err != nil {
		return errwrap.Wrap(err, funcName)
	}

	return r.db.WithContext(ctx).
		Where("id NOT IN (?)",
			r.db.Model(&entity.SearchHistory{}).
				Select("id").
				Order("created_at desc").
				Limit(maxLimit),
		).
		Delete(&entity.SearchHistory{}).Error
}
