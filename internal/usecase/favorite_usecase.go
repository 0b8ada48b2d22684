package usecase

import (
	"context"
	"strings"

	errwrap "github.com/pkg/errors"

	"github.com/rahmatrdn/go-flight-analytics/entity"
	"github.com/rahmatrdn/go-flight-analytics/internal/helper"
	"github.com/rahmatrdn/go-flight-analytics/internal/repository/sqlite"
)

// FavoriteUsecase manages saved routes for the map view.
type FavoriteUsecase struct {
	favRepo sqlite.FavoriteRouteRepository
}

func NewFavoriteUsecase(favRepo sqlite.FavoriteRouteRepository) *FavoriteUsecase {
	return &FavoriteUsecase{favRepo: favRepo}
}

// SaveFavoriteRoute normalizes both codes to uppercase and stores the pair.
// An empty title defaults to "ORG -> DST".
func (u *FavoriteUsecase) SaveFavoriteRoute(ctx context.Context, fav *entity.FavoriteRoute) error {
	fav.Origin = strings.ToUpper(strings.TrimSpace(fav.Origin))
	fav.Destination = strings.ToUpper(strings.TrimSpace(fav.Destination))

	if !helper.ValidIATA(fav.Origin) || !helper.ValidIATA(fav.Destination) {
		return errwrap.Wrapf(entity.ErrInvalidIATA, "%s -> %s", fav.Origin, fav.Destination)
	}

	fav.Title = strings.TrimSpace(fav.Title)
	if fav.Title == "" {
		fav.Title = fav.Origin + " -> " + fav.Destination
	}

	return u.favRepo.Create(ctx, fav)
}

func (u *FavoriteUsecase) FavoriteRoutes(ctx context.Context) ([]*entity.FavoriteRoute, error) {
	return u.favRepo.FindAll(ctx)
}

func (u *FavoriteUsecase) DeleteFavoriteRoute(ctx context.Context, id int64) error {
	return u.favRepo.Delete(ctx, id)
}
