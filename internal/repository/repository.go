package repository

import (
	"context"

	errwrap "github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/rahmatrdn/go-flight-analytics/config"
	"github.com/rahmatrdn/go-flight-analytics/entity"
	"github.com/rahmatrdn/go-flight-analytics/internal/repository/clickhouse"
	"github.com/rahmatrdn/go-flight-analytics/internal/repository/sqlite"
)

// Backend names accepted by Open.
const (
	BackendSQLite     = "sqlite"
	BackendClickHouse = "clickhouse"
)

// FlightRepository is the read contract over the flight snapshot. Both
// backends implement it; every caller-supplied value is bound as a query
// parameter, never interpolated into query text.
//
// Row queries return a possibly empty slice; aggregate queries return
// grouped counts for callers to turn into percentages. Close releases the
// underlying connection.
type FlightRepository interface {
	FlightByID(ctx context.Context, id int64) ([]entity.FlightRow, error)
	FlightsByDate(ctx context.Context, day, month, year int) ([]entity.FlightRow, error)
	DelayedFlightsByAirline(ctx context.Context, nameFragment string) ([]entity.FlightRow, error)
	DelayedFlightsByAirport(ctx context.Context, codeFragment string) ([]entity.FlightRow, error)

	DelayCountsByAirline(ctx context.Context) ([]entity.AirlineDelayStat, error)
	DepartureSamples(ctx context.Context) ([]entity.DepartureSample, error)
	DelayCountsByRoute(ctx context.Context) ([]entity.RouteDelayStat, error)
	RouteCounts(ctx context.Context, origin, destination string) (delayed, total int64, err error)
	AirportsByCode(ctx context.Context, codes ...string) ([]entity.Airport, error)

	Close() error
}

// Open builds the flight repository for the configured backend.
func Open(cfg *config.Config) (FlightRepository, error) {
	switch cfg.Backend {
	case BackendSQLite:
		db, err := sqlite.OpenFlightsDB(cfg.FlightsDB)
		if err != nil {
			return nil, errwrap.Wrap(err, "repository.Open")
		}
		return sqlite.NewFlightRepository(db), nil

	case BackendClickHouse:
		return clickhouse.NewFlightRepository(clickhouse.Open(cfg.ClickHouse)), nil

	default:
		return nil, errwrap.Wrapf(entity.ErrUnknownBackend, "repository.Open: %q", cfg.Backend)
	}
}

// OpenState opens the application state database used by the history,
// favorite and report repositories.
func OpenState(cfg *config.Config) (*gorm.DB, error) {
	db, err := sqlite.OpenStateDB(cfg.StateDB)
	if err != nil {
		return nil, errwrap.Wrap(err, "repository.OpenState")
	}
	return db, nil
}
