package sqlite

import (
	"context"

	errwrap "github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/rahmatrdn/go-flight-analytics/entity"
	"github.com/rahmatrdn/go-flight-analytics/internal/helper"
)

type FavoriteRouteRepository interface {
	Create(ctx context.Context, favorite *entity.FavoriteRoute) error
	FindAll(ctx context.Context) ([]*entity.FavoriteRoute, error)
	FindByID(ctx context.Context, id int64) (*entity.FavoriteRoute, error)
	Delete(ctx context.Context, id int64) error
}

type favoriteRouteRepo struct {
	db *gorm.DB
}

func NewFavoriteRouteRepository(db *gorm.DB) FavoriteRouteRepository {
	return &favoriteRouteRepo{db: db}
}

func (r *favoriteRouteRepo) Create(ctx context.Context, favorite *entity.FavoriteRoute) error {
	funcName := "FavoriteRouteRepository.Create"
	if err := helper.CheckDeadline(ctx); err != nil {
		return errwrap.Wrap(err, funcName)
	}

	return r.db.WithContext(ctx).Create(favorite).Error
}

func (r *favoriteRouteRepo) FindAll(ctx context.Context) ([]*entity.FavoriteRoute, error) {
	funcName := "FavoriteRouteRepository.FindAll"
	if err := helper.CheckDeadline(ctx); err != nil {
		return nil, errwrap.Wrap(err, funcName)
	}

	var favorites []*entity.FavoriteRoute
	err := r.db.WithContext(ctx).
		Order("created_at desc").
		Find(&favorites).Error

	if err != nil {
		return nil, errwrap.Wrap(err, funcName)
	}
	return favorites, nil
}

func (r *favoriteRouteRepo) FindByID(ctx context.Context, id int64) (*entity.FavoriteRoute, error) {
	funcName := "FavoriteRouteRepository.FindByID"
	if err := helper.CheckDeadline(ctx); err != nil {
		return nil, errwrap.Wrap(err, funcName)
	}

	var favorite entity.FavoriteRoute
	err := r.db.WithContext(ctx).
		First(&favorite, id).Error

	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, errwrap.Wrap(err, funcName)
	}
	return &favorite, nil
}

func (r *favoriteRouteRepo) Delete(ctx context.Context, id int64) error {
	funcName := "FavoriteRouteRepository.Delete"
	if err := helper.CheckDeadline(ctx); err != nil {
		return errwrap.Wrap(err, funcName)
	}

	return r.db.WithContext(ctx).Delete(&entity.FavoriteRoute{}, id).Error
}
