package sqlite

import (
	"context"
	"strings"

	errwrap "github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/rahmatrdn/go-flight-analytics/entity"
	"github.com/rahmatrdn/go-flight-analytics/internal/helper"
)

// Row queries join the airline display name and alias every column to the
// lowercase names the entities bind to; the snapshot declares its columns in
// uppercase. Results are ordered by flight id so repeated runs print
// identically.
const (
	queryFlightByID = `
SELECT flights.id AS flight_id,
       flights.origin_airport AS origin_airport,
       flights.destination_airport AS destination_airport,
       airlines.airline AS airline,
       flights.departure_delay AS delay
FROM flights
JOIN airlines ON flights.airline = airlines.id
WHERE flights.id = @id`

	queryFlightsByDate = `
SELECT flights.id AS flight_id,
       flights.origin_airport AS origin_airport,
       flights.destination_airport AS destination_airport,
       airlines.airline AS airline,
       flights.departure_delay AS delay
FROM flights
JOIN airlines ON flights.airline = airlines.id
WHERE flights.day = @day AND flights.month = @month AND flights.year = @year
ORDER BY flights.id`

	// A flight counts as airline-delayed only when its departure slipped AND
	// some cause column (or the arrival delay) was recorded.
	queryDelayedByAirline = `
SELECT flights.id AS flight_id,
       flights.origin_airport AS origin_airport,
       flights.destination_airport AS destination_airport,
       airlines.airline AS airline,
       flights.departure_delay AS delay
FROM flights
JOIN airlines ON flights.airline = airlines.id
WHERE flights.departure_delay IS NOT NULL
  AND (flights.airline_delay IS NOT NULL
       OR flights.weather_delay IS NOT NULL
       OR flights.late_aircraft_delay IS NOT NULL
       OR flights.security_delay IS NOT NULL
       OR flights.air_system_delay IS NOT NULL
       OR flights.arrival_delay IS NOT NULL)
  AND LOWER(airlines.airline) LIKE @airline
ORDER BY flights.id`

	// The airport family is looser: any recorded delay column qualifies,
	// departure delay included in the OR group.
	queryDelayedByAirport = `
SELECT flights.id AS flight_id,
       flights.origin_airport AS origin_airport,
       flights.destination_airport AS destination_airport,
       airlines.airline AS airline,
       flights.departure_delay AS delay
FROM flights
JOIN airports ON flights.origin_airport = airports.iata_code
JOIN airlines ON flights.airline = airlines.id
WHERE (flights.departure_delay IS NOT NULL
       OR flights.airline_delay IS NOT NULL
       OR flights.weather_delay IS NOT NULL
       OR flights.late_aircraft_delay IS NOT NULL
       OR flights.security_delay IS NOT NULL
       OR flights.air_system_delay IS NOT NULL
       OR flights.arrival_delay IS NOT NULL)
  AND LOWER(airports.iata_code) LIKE @airport
ORDER BY flights.id`

	// Aggregate queries. Delayed means a strictly positive departure delay;
	// NULL delays stay in the denominator as on-time.
	queryDelayCountsByAirline = `
SELECT airlines.airline AS airline,
       COUNT(CASE WHEN flights.departure_delay > 0 THEN 1 END) AS delayed_count,
       COUNT(*) AS total_count
FROM airlines
JOIN flights ON airlines.id = flights.airline
GROUP BY airlines.airline
ORDER BY airlines.airline`

	queryDepartureSamples = `
SELECT CAST(flights.departure_time AS TEXT) AS departure_time,
       flights.departure_delay AS departure_delay
FROM flights
WHERE flights.departure_time IS NOT NULL`

	queryDelayCountsByRoute = `
SELECT flights.origin_airport AS origin,
       flights.destination_airport AS destination,
       COUNT(CASE WHEN flights.departure_delay > 0 THEN 1 END) AS delayed_count,
       COUNT(*) AS total_count
FROM flights
WHERE flights.origin_airport IS NOT NULL AND flights.origin_airport <> ''
  AND flights.destination_airport IS NOT NULL AND flights.destination_airport <> ''
GROUP BY flights.origin_airport, flights.destination_airport
ORDER BY flights.origin_airport, flights.destination_airport`

	queryRouteCounts = `
SELECT COUNT(CASE WHEN flights.departure_delay > 0 THEN 1 END) AS delayed_count,
       COUNT(*) AS total_count
FROM flights
WHERE flights.origin_airport = @origin
  AND flights.destination_airport = @destination`

	queryAirportsByCode = `
SELECT airports.iata_code AS iata_code,
       airports.airport AS airport,
       airports.city AS city,
       airports.state AS state,
       airports.country AS country,
       airports.latitude AS latitude,
       airports.longitude AS longitude
FROM airports
WHERE airports.iata_code IN ?`
)

type routeCounts struct {
	DelayedCount int64 `gorm:"column:delayed_count"`
	TotalCount   int64 `gorm:"column:total_count"`
}

// FlightRepository reads the flights snapshot. Every caller-supplied value is
// bound as a query parameter; nothing is spliced into query text.
type FlightRepository struct {
	db *gorm.DB
}

func NewFlightRepository(db *gorm.DB) *FlightRepository {
	return &FlightRepository{db: db}
}

func (r *FlightRepository) FlightByID(ctx context.Context, id int64) ([]entity.FlightRow, error) {
	funcName := "FlightRepository.FlightByID"
	if err := helper.CheckDeadline(ctx); err != nil {
		return nil, errwrap.Wrap(err, funcName)
	}

	var rows []entity.FlightRow
	err := r.db.WithContext(ctx).
		Raw(queryFlightByID, map[string]interface{}{"id": id}).
		Scan(&rows).Error
	if err != nil {
		return nil, errwrap.Wrap(err, funcName)
	}
	return rows, nil
}

func (r *FlightRepository) FlightsByDate(ctx context.Context, day, month, year int) ([]entity.FlightRow, error) {
	funcName := "FlightRepository.FlightsByDate"
	if err := helper.CheckDeadline(ctx); err != nil {
		return nil, errwrap.Wrap(err, funcName)
	}

	var rows []entity.FlightRow
	err := r.db.WithContext(ctx).
		Raw(queryFlightsByDate, map[string]interface{}{
			"day":   day,
			"month": month,
			"year":  year,
		}).
		Scan(&rows).Error
	if err != nil {
		return nil, errwrap.Wrap(err, funcName)
	}
	return rows, nil
}

// DelayedFlightsByAirline matches the fragment anywhere in the airline name,
// case-insensitively.
func (r *FlightRepository) DelayedFlightsByAirline(ctx context.Context, nameFragment string) ([]entity.FlightRow, error) {
	funcName := "FlightRepository.DelayedFlightsByAirline"
	if err := helper.CheckDeadline(ctx); err != nil {
		return nil, errwrap.Wrap(err, funcName)
	}

	var rows []entity.FlightRow
	err := r.db.WithContext(ctx).
		Raw(queryDelayedByAirline, map[string]interface{}{
			"airline": likePattern(nameFragment),
		}).
		Scan(&rows).Error
	if err != nil {
		return nil, errwrap.Wrap(err, funcName)
	}
	return rows, nil
}

// DelayedFlightsByAirport matches the fragment anywhere in the origin
// airport's IATA code, case-insensitively.
func (r *FlightRepository) DelayedFlightsByAirport(ctx context.Context, codeFragment string) ([]entity.FlightRow, error) {
	funcName := "FlightRepository.DelayedFlightsByAirport"
	if err := helper.CheckDeadline(ctx); err != nil {
		return nil, errwrap.Wrap(err, funcName)
	}

	var rows []entity.FlightRow
	err := r.db.WithContext(ctx).
		Raw(queryDelayedByAirport, map[string]interface{}{
			"airport": likePattern(codeFragment),
		}).
		Scan(&rows).Error
	if err != nil {
		return nil, errwrap.Wrap(err, funcName)
	}
	return rows, nil
}

func (r *FlightRepository) DelayCountsByAirline(ctx context.Context) ([]entity.AirlineDelayStat, error) {
	funcName := "FlightRepository.DelayCountsByAirline"
	if err := helper.CheckDeadline(ctx); err != nil {
		return nil, errwrap.Wrap(err, funcName)
	}

	var stats []entity.AirlineDelayStat
	err := r.db.WithContext(ctx).Raw(queryDelayCountsByAirline).Scan(&stats).Error
	if err != nil {
		return nil, errwrap.Wrap(err, funcName)
	}
	return stats, nil
}

// DepartureSamples returns every recorded departure time with its delay. The
// time is cast to text so snapshots that store "0005" as the integer 5 still
// bind; callers re-pad before extracting the hour.
func (r *FlightRepository) DepartureSamples(ctx context.Context) ([]entity.DepartureSample, error) {
	funcName := "FlightRepository.DepartureSamples"
	if err := helper.CheckDeadline(ctx); err != nil {
		return nil, errwrap.Wrap(err, funcName)
	}

	var samples []entity.DepartureSample
	err := r.db.WithContext(ctx).Raw(queryDepartureSamples).Scan(&samples).Error
	if err != nil {
		return nil, errwrap.Wrap(err, funcName)
	}
	return samples, nil
}

func (r *FlightRepository) DelayCountsByRoute(ctx context.Context) ([]entity.RouteDelayStat, error) {
	funcName := "FlightRepository.DelayCountsByRoute"
	if err := helper.CheckDeadline(ctx); err != nil {
		return nil, errwrap.Wrap(err, funcName)
	}

	var stats []entity.RouteDelayStat
	err := r.db.WithContext(ctx).Raw(queryDelayCountsByRoute).Scan(&stats).Error
	if err != nil {
		return nil, errwrap.Wrap(err, funcName)
	}
	return stats, nil
}

// RouteCounts returns the delayed and total flight counts for one exact
// origin/destination pair. Codes are matched uppercase, as stored.
func (r *FlightRepository) RouteCounts(ctx context.Context, origin, destination string) (int64, int64, error) {
	funcName := "FlightRepository.RouteCounts"
	if err := helper.CheckDeadline(ctx); err != nil {
		return 0, 0, errwrap.Wrap(err, funcName)
	}

	var counts routeCounts
	err := r.db.WithContext(ctx).
		Raw(queryRouteCounts, map[string]interface{}{
			"origin":      strings.ToUpper(origin),
			"destination": strings.ToUpper(destination),
		}).
		Scan(&counts).Error
	if err != nil {
		return 0, 0, errwrap.Wrap(err, funcName)
	}
	return counts.DelayedCount, counts.TotalCount, nil
}

func (r *FlightRepository) AirportsByCode(ctx context.Context, codes ...string) ([]entity.Airport, error) {
	funcName := "FlightRepository.AirportsByCode"
	if err := helper.CheckDeadline(ctx); err != nil {
		return nil, errwrap.Wrap(err, funcName)
	}
	if len(codes) == 0 {
		return nil, nil
	}

	upper := make([]string, 0, len(codes))
	for _, code := range codes {
		upper = append(upper, strings.ToUpper(code))
	}

	var airports []entity.Airport
	err := r.db.WithContext(ctx).Raw(queryAirportsByCode, upper).Scan(&airports).Error
	if err != nil {
		return nil, errwrap.Wrap(err, funcName)
	}
	return airports, nil
}

func (r *FlightRepository) Close() error {
	return CloseDB(r.db)
}

func likePattern(fragment string) string {
	return "%" + strings.ToLower(strings.TrimSpace(fragment)) + "%"
}
