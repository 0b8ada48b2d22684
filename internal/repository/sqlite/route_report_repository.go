package sqlite

import (
	"context"

	errwrap "github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/rahmatrdn/go-flight-analytics/entity"
	"github.com/rahmatrdn/go-flight-analytics/internal/helper"
)

type RouteReportRepository interface {
	GetRouteStatReports(ctx context.Context) ([]*entity.RouteStatReport, error)
	SaveRouteStatReports(ctx context.Context, reports []*entity.RouteStatReport) error
}

type routeReportRepo struct {
	db *gorm.DB
}

func NewRouteReportRepository(db *gorm.DB) RouteReportRepository {
	return &routeReportRepo{db: db}
}

func (r *routeReportRepo) GetRouteStatReports(ctx context.Context) ([]*entity.RouteStatReport, error) {
	funcName := "RouteReportRepository.GetRouteStatReports"
	if err := helper.CheckDeadline(ctx); err != nil {
		return nil, errwrap.Wrap(err, funcName)
	}

	var reports []*entity.RouteStatReport
	err := r.db.WithContext(ctx).Order("origin, destination").Find(&reports).Error
	if err != nil {
		return nil, errwrap.Wrap(err, funcName)
	}

	return reports, nil
}

// SaveRouteStatReports replaces the cached report set atomically.
func (r *routeReportRepo) SaveRouteStatReports(ctx context.Context, reports []*entity.RouteStatReport) error {
	funcName := "RouteReportRepository.SaveRouteStatReports"
	if err := helper.CheckDeadline(ctx); err != nil {
		return errwrap.Wrap(err, funcName)
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&entity.RouteStatReport{}).Error; err != nil {
			return errwrap.Wrap(err, funcName)
		}

		if len(reports) > 0 {
			if err := tx.Create(reports).Error; err != nil {
				return errwrap.Wrap(err, funcName)
			}
		}
		return nil
	})
}
