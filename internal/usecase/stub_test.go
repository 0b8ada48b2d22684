package usecase

import (
	"context"
	"testing"

	glebarez "github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/rahmatrdn/go-flight-analytics/entity"
	"github.com/rahmatrdn/go-flight-analytics/internal/repository"
)

// flightRepoStub hands back canned results and counts calls, so tests can
// assert which queries ran without a database.
type flightRepoStub struct {
	rows         []entity.FlightRow
	airlineStats []entity.AirlineDelayStat
	samples      []entity.DepartureSample
	routeStats   []entity.RouteDelayStat
	airports     []entity.Airport
	delayed      int64
	total        int64
	err          error

	calls           map[string]int
	lastOrigin      string
	lastDestination string
}

var _ repository.FlightRepository = (*flightRepoStub)(nil)

func newFlightRepoStub() *flightRepoStub {
	return &flightRepoStub{calls: make(map[string]int)}
}

func (s *flightRepoStub) FlightByID(ctx context.Context, id int64) ([]entity.FlightRow, error) {
	s.calls["FlightByID"]++
	return s.rows, s.err
}

func (s *flightRepoStub) FlightsByDate(ctx context.Context, day, month, year int) ([]entity.FlightRow, error) {
	s.calls["FlightsByDate"]++
	return s.rows, s.err
}

func (s *flightRepoStub) DelayedFlightsByAirline(ctx context.Context, nameFragment string) ([]entity.FlightRow, error) {
	s.calls["DelayedFlightsByAirline"]++
	return s.rows, s.err
}

func (s *flightRepoStub) DelayedFlightsByAirport(ctx context.Context, codeFragment string) ([]entity.FlightRow, error) {
	s.calls["DelayedFlightsByAirport"]++
	return s.rows, s.err
}

func (s *flightRepoStub) DelayCountsByAirline(ctx context.Context) ([]entity.AirlineDelayStat, error) {
	s.calls["DelayCountsByAirline"]++
	return s.airlineStats, s.err
}

func (s *flightRepoStub) DepartureSamples(ctx context.Context) ([]entity.DepartureSample, error) {
	s.calls["DepartureSamples"]++
	return s.samples, s.err
}

func (s *flightRepoStub) DelayCountsByRoute(ctx context.Context) ([]entity.RouteDelayStat, error) {
	s.calls["DelayCountsByRoute"]++
	return s.routeStats, s.err
}

func (s *flightRepoStub) RouteCounts(ctx context.Context, origin, destination string) (int64, int64, error) {
	s.calls["RouteCounts"]++
	s.lastOrigin, s.lastDestination = origin, destination
	return s.delayed, s.total, s.err
}

func (s *flightRepoStub) AirportsByCode(ctx context.Context, codes ...string) ([]entity.Airport, error) {
	s.calls["AirportsByCode"]++
	return s.airports, s.err
}

func (s *flightRepoStub) Close() error { return nil }

func newStateDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(glebarez.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	err = db.AutoMigrate(
		&entity.SearchHistory{},
		&entity.FavoriteRoute{},
		&entity.RouteStatReport{},
	)
	require.NoError(t, err)
	return db
}

func i64(v int64) *int64 { return &v }
