package usecase

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
	"go.uber.org/zap"

	"github.com/rahmatrdn/go-flight-analytics/entity"
	"github.com/rahmatrdn/go-flight-analytics/internal/repository"
	"github.com/rahmatrdn/go-flight-analytics/internal/repository/sqlite"
)

// StatsUsecase computes the aggregate views: delay percentages per airline,
// per departure hour, the route heatmap and single-route details. Like the
// search path, failures degrade to empty results and are logged, never
// surfaced.
type StatsUsecase struct {
	flights    repository.FlightRepository
	reportRepo sqlite.RouteReportRepository
	log        *zap.Logger
}

func NewStatsUsecase(
	flights repository.FlightRepository,
	reportRepo sqlite.RouteReportRepository,
	log *zap.Logger,
) *StatsUsecase {
	return &StatsUsecase{
		flights:    flights,
		reportRepo: reportRepo,
		log:        log,
	}
}

// DelayPercentageByAirline returns grouped delay counts per airline, ordered
// by airline name. Airlines with no flights in the snapshot do not appear.
func (u *StatsUsecase) DelayPercentageByAirline(ctx context.Context) []entity.AirlineDelayStat {
	stats, err := u.flights.DelayCountsByAirline(ctx)
	if err != nil {
		u.log.Error("airline delay counts failed", zap.Error(err))
		return nil
	}
	return stats
}

// DelayPercentageByHour folds departure samples into hour-of-day buckets.
// Hours nothing departed in are absent rather than present with a zero total.
func (u *StatsUsecase) DelayPercentageByHour(ctx context.Context) []entity.HourlyDelayStat {
	samples, err := u.flights.DepartureSamples(ctx)
	if err != nil {
		u.log.Error("departure samples failed", zap.Error(err))
		return nil
	}

	var buckets [24]entity.HourlyDelayStat
	for _, s := range samples {
		hour, ok := departureHour(s.Time)
		if !ok {
			continue
		}
		buckets[hour].TotalCount++
		if s.Delay != nil && *s.Delay > 0 {
			buckets[hour].DelayedCount++
		}
	}

	stats := make([]entity.HourlyDelayStat, 0, len(buckets))
	for hour, b := range buckets {
		if b.TotalCount == 0 {
			continue
		}
		b.Hour = hour
		stats = append(stats, b)
	}
	return stats
}

// RouteHeatmap returns the origin×destination percentage matrix plus the time
// the underlying counts were computed. The grouped counts come from the
// report cache unless forceRefresh recomputes them.
func (u *StatsUsecase) RouteHeatmap(ctx context.Context, forceRefresh bool) (*entity.RouteHeatmap, *time.Time) {
	stats, refreshedAt := u.routeStats(ctx, forceRefresh)
	if len(stats) == 0 {
		return nil, nil
	}

	origins := make(map[string]bool)
	destinations := make(map[string]bool)
	cells := make(map[string]map[string]float64)

	for _, s := range stats {
		origins[s.Origin] = true
		destinations[s.Destination] = true
		if cells[s.Origin] == nil {
			cells[s.Origin] = make(map[string]float64)
		}
		cells[s.Origin][s.Destination] = s.Percentage()
	}

	heatmap := &entity.RouteHeatmap{
		Origins:      sortedKeys(origins),
		Destinations: sortedKeys(destinations),
		Cells:        cells,
	}
	return heatmap, refreshedAt
}

// RouteDetail resolves one route for the map view: counts, both endpoints and
// the great-circle midpoint. ok is false when the route has no flights, an
// endpoint is unknown, or coordinates are missing; such routes are skipped,
// not rendered at zero.
func (u *StatsUsecase) RouteDetail(ctx context.Context, origin, destination string) (*entity.RouteDetail, bool) {
	origin = strings.ToUpper(strings.TrimSpace(origin))
	destination = strings.ToUpper(strings.TrimSpace(destination))
	log := u.log.With(zap.String("origin", origin), zap.String("destination", destination))

	// 1. Count the route's flights.
	delayed, total, err := u.flights.RouteCounts(ctx, origin, destination)
	if err != nil {
		log.Error("route counts failed", zap.Error(err))
		return nil, false
	}
	if total == 0 {
		return nil, false
	}

	// 2. Resolve both endpoints.
	airports, err := u.flights.AirportsByCode(ctx, origin, destination)
	if err != nil {
		log.Error("airport lookup failed", zap.Error(err))
		return nil, false
	}

	from, ok := airportPoint(airports, origin)
	if !ok {
		log.Info("route skipped, origin coordinates missing")
		return nil, false
	}
	to, ok := airportPoint(airports, destination)
	if !ok {
		log.Info("route skipped, destination coordinates missing")
		return nil, false
	}

	// 3. Midpoint and distance on the sphere.
	fromPt := orb.Point{from.Longitude, from.Latitude}
	toPt := orb.Point{to.Longitude, to.Latitude}
	mid := geo.Midpoint(fromPt, toPt)

	stat := entity.RouteDelayStat{DelayedCount: delayed, TotalCount: total}
	pct := stat.Percentage()

	return &entity.RouteDetail{
		Origin:       from,
		Destination:  to,
		MidLatitude:  mid.Lat(),
		MidLongitude: mid.Lon(),
		DistanceKm:   geo.DistanceHaversine(fromPt, toPt) / 1000,
		DelayedCount: delayed,
		TotalCount:   total,
		Percentage:   pct,
		Severity:     entity.SeverityFor(pct),
	}, true
}

func (u *StatsUsecase) routeStats(ctx context.Context, forceRefresh bool) ([]entity.RouteDelayStat, *time.Time) {
	// 1. Serve from the cache unless a refresh was forced.
	if !forceRefresh && u.reportRepo != nil {
		cached, err := u.reportRepo.GetRouteStatReports(ctx)
		if err != nil {
			u.log.Warn("route report cache unavailable", zap.Error(err))
		}
		if len(cached) > 0 {
			lastRefresh := cached[0].RefreshedAt
			stats := make([]entity.RouteDelayStat, 0, len(cached))
			for _, report := range cached {
				stats = append(stats, report.Stat())
			}
			return stats, &lastRefresh
		}
	}

	// 2. Group on the analytics backend.
	stats, err := u.flights.DelayCountsByRoute(ctx)
	if err != nil {
		u.log.Error("route delay counts failed", zap.Error(err))
		return nil, nil
	}

	// 3. Replace the cache. A cache write failure is not fatal.
	now := time.Now()
	if u.reportRepo != nil {
		reports := make([]*entity.RouteStatReport, 0, len(stats))
		for _, s := range stats {
			reports = append(reports, &entity.RouteStatReport{
				Origin:       s.Origin,
				Destination:  s.Destination,
				DelayedCount: s.DelayedCount,
				TotalCount:   s.TotalCount,
				RefreshedAt:  now,
				CreatedAt:    now,
			})
		}
		if err := u.reportRepo.SaveRouteStatReports(ctx, reports); err != nil {
			u.log.Warn("route report cache not saved", zap.Error(err))
		}
	}

	return stats, &now
}

// departureHour extracts the hour from a raw HHMM departure time. Short
// values are zero-padded first ("5" means 00:05). Anything whose hour lands
// outside 0..23, such as the 2400 sentinel, is dropped.
func departureHour(raw string) (int, bool) {
	s := strings.TrimSpace(raw)
	if s == "" || len(s) > 4 {
		return 0, false
	}
	if len(s) < 4 {
		s = strings.Repeat("0", 4-len(s)) + s
	}
	hour, err := strconv.Atoi(s[:2])
	if err != nil || hour < 0 || hour > 23 {
		return 0, false
	}
	return hour, true
}

func airportPoint(airports []entity.Airport, code string) (entity.AirportPoint, bool) {
	for _, a := range airports {
		if a.IATACode != code {
			continue
		}
		if a.Latitude == nil || a.Longitude == nil {
			return entity.AirportPoint{}, false
		}
		return entity.AirportPoint{
			Code:      a.IATACode,
			Name:      a.Airport,
			Latitude:  *a.Latitude,
			Longitude: *a.Longitude,
		}, true
	}
	return entity.AirportPoint{}, false
}

func sortedKeys(set map[string]bool) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
