package console

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	glebarez "github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/rahmatrdn/go-flight-analytics/entity"
	"github.com/rahmatrdn/go-flight-analytics/internal/repository"
	"github.com/rahmatrdn/go-flight-analytics/internal/repository/sqlite"
	"github.com/rahmatrdn/go-flight-analytics/internal/usecase"
)

// fakeFlights serves canned rows for menu tests.
type fakeFlights struct {
	rows       []entity.FlightRow
	routeStats []entity.RouteDelayStat
	airports   []entity.Airport
	delayed    int64
	total      int64
}

var _ repository.FlightRepository = (*fakeFlights)(nil)

func (f *fakeFlights) FlightByID(ctx context.Context, id int64) ([]entity.FlightRow, error) {
	return f.rows, nil
}

func (f *fakeFlights) FlightsByDate(ctx context.Context, day, month, year int) ([]entity.FlightRow, error) {
	return f.rows, nil
}

func (f *fakeFlights) DelayedFlightsByAirline(ctx context.Context, nameFragment string) ([]entity.FlightRow, error) {
	return f.rows, nil
}

func (f *fakeFlights) DelayedFlightsByAirport(ctx context.Context, codeFragment string) ([]entity.FlightRow, error) {
	return f.rows, nil
}

func (f *fakeFlights) DelayCountsByAirline(ctx context.Context) ([]entity.AirlineDelayStat, error) {
	return nil, nil
}

func (f *fakeFlights) DepartureSamples(ctx context.Context) ([]entity.DepartureSample, error) {
	return nil, nil
}

func (f *fakeFlights) DelayCountsByRoute(ctx context.Context) ([]entity.RouteDelayStat, error) {
	return f.routeStats, nil
}

func (f *fakeFlights) RouteCounts(ctx context.Context, origin, destination string) (int64, int64, error) {
	return f.delayed, f.total, nil
}

func (f *fakeFlights) AirportsByCode(ctx context.Context, codes ...string) ([]entity.Airport, error) {
	return f.airports, nil
}

func (f *fakeFlights) Close() error { return nil }

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

func newTestConsole(t *testing.T, flights repository.FlightRepository, script string) (*Console, *bytes.Buffer, string) {
	t.Helper()

	log := zap.NewNop()
	db := newStateDB(t)
	search := usecase.NewSearchUsecase(flights, sqlite.NewSearchHistoryRepository(db), 20, log)
	stats := usecase.NewStatsUsecase(flights, sqlite.NewRouteReportRepository(db), log)
	favorites := usecase.NewFavoriteUsecase(sqlite.NewFavoriteRouteRepository(db))

	dir := t.TempDir()
	exporter, err := NewExporter(dir)
	require.NoError(t, err)

	out := &bytes.Buffer{}
	return New(search, stats, favorites, exporter, strings.NewReader(script), out), out, dir
}

func TestConsoleFlightByID(t *testing.T) {
	delay := int64(25)
	flights := &fakeFlights{rows: []entity.FlightRow{
		{FlightID: 42, OriginAirport: "ORD", DestinationAirport: "LAX", Airline: "American Airlines Inc.", Delay: &delay},
	}}

	// A bad menu pick and a bad id each get one retry prompt; recent
	// searches then shows the recorded run.
	c, out, _ := newTestConsole(t, flights, "99\n1\nabc\n42\n9\n10\n")
	c.Run(context.Background())

	output := out.String()
	assert.Contains(t, output, "Menu:")
	assert.Contains(t, output, "1. Show flight by ID")
	assert.Contains(t, output, "10. Exit")
	assert.Equal(t, 2, strings.Count(output, "Try again..."))
	assert.Contains(t, output, "Enter flight ID: ")
	assert.Contains(t, output, "Got 1 results.")
	assert.Contains(t, output, "42. ORD -> LAX by American Airlines Inc., Delay: 25 Minutes")
	assert.Contains(t, output, "flight_by_id")
	assert.Contains(t, output, "flight id 42")
}

func TestConsoleDelayedByAirlineHidesOnTimeRows(t *testing.T) {
	delay := int64(25)
	flights := &fakeFlights{rows: []entity.FlightRow{
		{FlightID: 1, OriginAirport: "ORD", DestinationAirport: "LAX", Airline: "American Airlines Inc.", Delay: &delay},
		{FlightID: 2, OriginAirport: "ORD", DestinationAirport: "LAX", Airline: "American Airlines Inc."},
	}}

	c, out, _ := newTestConsole(t, flights, "3\namerican\n10\n")
	c.Run(context.Background())

	output := out.String()
	assert.Contains(t, output, "Got 2 results.")
	assert.Contains(t, output, "1. ORD -> LAX by American Airlines Inc., Delay: 25 Minutes")
	assert.NotContains(t, output, "2. ORD -> LAX by American Airlines Inc.\n")
}

func TestConsoleFlightsByDateRejectsBadDates(t *testing.T) {
	flights := &fakeFlights{}

	c, out, _ := newTestConsole(t, flights, "2\nnot-a-date\n31/02/2015\n01/01/2015\n10\n")
	c.Run(context.Background())

	output := out.String()
	assert.Equal(t, 2, strings.Count(output, "Try again..."))
	assert.Contains(t, output, "Got 0 results.")
}

func TestConsoleRouteMapNotFound(t *testing.T) {
	flights := &fakeFlights{}

	c, out, _ := newTestConsole(t, flights, "8\nord\nlax\n10\n")
	c.Run(context.Background())

	assert.Contains(t, out.String(), "No results found.")
}

func TestConsoleRouteMapSavesFavoriteAndExports(t *testing.T) {
	lat1, lon1 := 41.9796, -87.90446
	lat2, lon2 := 33.94254, -118.40807
	flights := &fakeFlights{
		delayed: 2,
		total:   20,
		airports: []entity.Airport{
			{IATACode: "ORD", Airport: "Chicago O'Hare International Airport", Latitude: &lat1, Longitude: &lon1},
			{IATACode: "LAX", Airport: "Los Angeles International Airport", Latitude: &lat2, Longitude: &lon2},
		},
	}

	c, out, dir := newTestConsole(t, flights, "8\nord\nlax\ny\nMy route\n10\n")
	c.Run(context.Background())

	output := out.String()
	assert.Contains(t, output, "10.0% of 20 flights delayed")
	assert.Contains(t, output, "severity medium")
	assert.Contains(t, output, `Saved favorite "My route"`)
	assert.Contains(t, output, "Written to ")

	data, err := os.ReadFile(filepath.Join(dir, "route_map.html"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "ORD")
	assert.Contains(t, string(data), "LAX")
}

func TestConsoleExportsReportEmptySnapshot(t *testing.T) {
	flights := &fakeFlights{}

	c, out, _ := newTestConsole(t, flights, "5\n6\n7\n10\n")
	c.Run(context.Background())

	assert.Equal(t, 3, strings.Count(out.String(), "No results found."))
}
