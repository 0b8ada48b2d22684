package usecase

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/rahmatrdn/go-flight-analytics/entity"
	"github.com/rahmatrdn/go-flight-analytics/internal/repository"
	"github.com/rahmatrdn/go-flight-analytics/internal/repository/sqlite"
)

// Operation labels recorded with every search run.
const (
	OpFlightByID       = "flight_by_id"
	OpFlightsByDate    = "flights_by_date"
	OpDelayedByAirline = "delayed_by_airline"
	OpDelayedByAirport = "delayed_by_airport"
)

// SearchUsecase fronts the row-returning queries. A rejected criteria or a
// failed query is logged under its run id and comes back as an empty slice,
// the same shape as "no matches"; callers never see an error from here.
type SearchUsecase struct {
	flights     repository.FlightRepository
	historyRepo sqlite.SearchHistoryRepository
	criteria    *CriteriaValidator
	historyMax  int
	log         *zap.Logger
}

func NewSearchUsecase(
	flights repository.FlightRepository,
	historyRepo sqlite.SearchHistoryRepository,
	historyMax int,
	log *zap.Logger,
) *SearchUsecase {
	return &SearchUsecase{
		flights:     flights,
		historyRepo: historyRepo,
		criteria:    NewCriteriaValidator(),
		historyMax:  historyMax,
		log:         log,
	}
}

func (u *SearchUsecase) FlightByID(ctx context.Context, id int64) []entity.FlightRow {
	c := entity.FlightIDCriteria{ID: id}
	return u.run(ctx, OpFlightByID, c, func(ctx context.Context) ([]entity.FlightRow, error) {
		return u.flights.FlightByID(ctx, id)
	})
}

func (u *SearchUsecase) FlightsByDate(ctx context.Context, day, month, year int) []entity.FlightRow {
	c := entity.DateCriteria{Day: day, Month: month, Year: year}
	return u.run(ctx, OpFlightsByDate, c, func(ctx context.Context) ([]entity.FlightRow, error) {
		return u.flights.FlightsByDate(ctx, day, month, year)
	})
}

func (u *SearchUsecase) DelayedByAirline(ctx context.Context, name string) []entity.FlightRow {
	c := entity.AirlineCriteria{Name: name}
	return u.run(ctx, OpDelayedByAirline, c, func(ctx context.Context) ([]entity.FlightRow, error) {
		return u.flights.DelayedFlightsByAirline(ctx, name)
	})
}

func (u *SearchUsecase) DelayedByAirport(ctx context.Context, code string) []entity.FlightRow {
	c := entity.AirportCriteria{Code: code}
	return u.run(ctx, OpDelayedByAirport, c, func(ctx context.Context) ([]entity.FlightRow, error) {
		return u.flights.DelayedFlightsByAirport(ctx, code)
	})
}

// RecentSearches lists the latest recorded runs, newest first.
func (u *SearchUsecase) RecentSearches(ctx context.Context, limit int) ([]*entity.SearchHistory, error) {
	if limit <= 0 || limit > u.historyMax {
		limit = u.historyMax
	}
	return u.historyRepo.FindRecent(ctx, limit)
}

func (u *SearchUsecase) run(
	ctx context.Context,
	operation string,
	c entity.Criteria,
	query func(context.Context) ([]entity.FlightRow, error),
) []entity.FlightRow {
	runID := uuid.NewString()
	log := u.log.With(zap.String("run_id", runID), zap.String("operation", operation))

	// 1. Reject unusable criteria before touching storage.
	if err := u.criteria.Check(c); err != nil {
		log.Warn("criteria rejected", zap.String("criteria", c.Summary()), zap.Error(err))
		return nil
	}

	// 2. Execute. A failed query degrades to an empty result.
	rows, err := query(ctx)
	if err != nil {
		log.Error("query failed", zap.String("criteria", c.Summary()), zap.Error(err))
		return nil
	}

	// 3. Record the run and trim history to the retention cap. Best effort;
	// the search result stands either way.
	u.record(ctx, runID, operation, c, len(rows))

	return rows
}

func (u *SearchUsecase) record(ctx context.Context, runID, operation string, c entity.Criteria, results int) {
	if u.historyRepo == nil {
		return
	}

	history := &entity.SearchHistory{
		RunID:     runID,
		Operation: operation,
		Criteria:  c.Summary(),
		Results:   results,
	}
	if err := u.historyRepo.Create(ctx, history); err != nil {
		u.log.Warn("history not recorded", zap.String("run_id", runID), zap.Error(err))
		return
	}
	if err := u.historyRepo.Prune(ctx, u.historyMax); err != nil {
		u.log.Warn("history not pruned", zap.Error(err))
	}
}
