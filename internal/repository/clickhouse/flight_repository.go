package clickhouse

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	errwrap "github.com/pkg/errors"

	"github.com/rahmatrdn/go-flight-analytics/entity"
	"github.com/rahmatrdn/go-flight-analytics/internal/helper"
)

// The mirror keeps the snapshot's tables under the same lowercase names, so
// queries stay parallel to the SQLite ones with ClickHouse idioms (countIf,
// toString) where they pay off.
const (
	queryFlightByID = `
SELECT flights.id AS flight_id,
       flights.origin_airport AS origin_airport,
       flights.destination_airport AS destination_airport,
       airlines.airline AS airline,
       flights.departure_delay AS delay
FROM flights
JOIN airlines ON flights.airline = airlines.id
WHERE flights.id = ?`

	queryFlightsByDate = `
SELECT flights.id AS flight_id,
       flights.origin_airport AS origin_airport,
       flights.destination_airport AS destination_airport,
       airlines.airline AS airline,
       flights.departure_delay AS delay
FROM flights
JOIN airlines ON flights.airline = airlines.id
WHERE flights.day = ? AND flights.month = ? AND flights.year = ?
ORDER BY flights.id`

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
  AND lower(airlines.airline) LIKE ?
ORDER BY flights.id`

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
  AND lower(airports.iata_code) LIKE ?
ORDER BY flights.id`

	queryDelayCountsByAirline = `
SELECT airlines.airline AS airline,
       countIf(flights.departure_delay > 0) AS delayed_count,
       count() AS total_count
FROM airlines
JOIN flights ON airlines.id = flights.airline
GROUP BY airlines.airline
ORDER BY airlines.airline`

	queryDepartureSamples = `
SELECT toString(flights.departure_time) AS departure_time,
       flights.departure_delay AS departure_delay
FROM flights
WHERE flights.departure_time IS NOT NULL`

	queryDelayCountsByRoute = `
SELECT flights.origin_airport AS origin,
       flights.destination_airport AS destination,
       countIf(flights.departure_delay > 0) AS delayed_count,
       count() AS total_count
FROM flights
WHERE flights.origin_airport IS NOT NULL AND flights.origin_airport <> ''
  AND flights.destination_airport IS NOT NULL AND flights.destination_airport <> ''
GROUP BY flights.origin_airport, flights.destination_airport
ORDER BY flights.origin_airport, flights.destination_airport`

	queryRouteCounts = `
SELECT countIf(flights.departure_delay > 0) AS delayed_count,
       count() AS total_count
FROM flights
WHERE flights.origin_airport = ?
  AND flights.destination_airport = ?`

	// The IN list is expanded to one placeholder per code; only placeholder
	// marks are formatted in, values are always bound.
	queryAirportsByCode = `
SELECT airports.iata_code AS iata_code,
       airports.airport AS airport,
       airports.city AS city,
       airports.state AS state,
       airports.country AS country,
       airports.latitude AS latitude,
       airports.longitude AS longitude
FROM airports
WHERE airports.iata_code IN (%s)`
)

// FlightRepository serves the same query families as the SQLite snapshot,
// against a ClickHouse mirror.
type FlightRepository struct {
	db *sql.DB
}

func NewFlightRepository(db *sql.DB) *FlightRepository {
	return &FlightRepository{db: db}
}

func (r *FlightRepository) FlightByID(ctx context.Context, id int64) ([]entity.FlightRow, error) {
	funcName := "FlightRepository.FlightByID"
	if err := helper.CheckDeadline(ctx); err != nil {
		return nil, errwrap.Wrap(err, funcName)
	}

	rows, err := r.db.QueryContext(ctx, queryFlightByID, id)
	if err != nil {
		return nil, errwrap.Wrap(err, funcName)
	}
	defer rows.Close()

	out, err := scanFlightRows(rows)
	if err != nil {
		return nil, errwrap.Wrap(err, funcName)
	}
	return out, nil
}

func (r *FlightRepository) FlightsByDate(ctx context.Context, day, month, year int) ([]entity.FlightRow, error) {
	funcName := "FlightRepository.FlightsByDate"
	if err := helper.CheckDeadline(ctx); err != nil {
		return nil, errwrap.Wrap(err, funcName)
	}

	rows, err := r.db.QueryContext(ctx, queryFlightsByDate, day, month, year)
	if err != nil {
		return nil, errwrap.Wrap(err, funcName)
	}
	defer rows.Close()

	out, err := scanFlightRows(rows)
	if err != nil {
		return nil, errwrap.Wrap(err, funcName)
	}
	return out, nil
}

func (r *FlightRepository) DelayedFlightsByAirline(ctx context.Context, nameFragment string) ([]entity.FlightRow, error) {
	funcName := "FlightRepository.DelayedFlightsByAirline"
	if err := helper.CheckDeadline(ctx); err != nil {
		return nil, errwrap.Wrap(err, funcName)
	}

	rows, err := r.db.QueryContext(ctx, queryDelayedByAirline, likePattern(nameFragment))
	if err != nil {
		return nil, errwrap.Wrap(err, funcName)
	}
	defer rows.Close()

	out, err := scanFlightRows(rows)
	if err != nil {
		return nil, errwrap.Wrap(err, funcName)
	}
	return out, nil
}

func (r *FlightRepository) DelayedFlightsByAirport(ctx context.Context, codeFragment string) ([]entity.FlightRow, error) {
	funcName := "FlightRepository.DelayedFlightsByAirport"
	if err := helper.CheckDeadline(ctx); err != nil {
		return nil, errwrap.Wrap(err, funcName)
	}

	rows, err := r.db.QueryContext(ctx, queryDelayedByAirport, likePattern(codeFragment))
	if err != nil {
		return nil, errwrap.Wrap(err, funcName)
	}
	defer rows.Close()

	out, err := scanFlightRows(rows)
	if err != nil {
		return nil, errwrap.Wrap(err, funcName)
	}
	return out, nil
}

func (r *FlightRepository) DelayCountsByAirline(ctx context.Context) ([]entity.AirlineDelayStat, error) {
	funcName := "FlightRepository.DelayCountsByAirline"
	if err := helper.CheckDeadline(ctx); err != nil {
		return nil, errwrap.Wrap(err, funcName)
	}

	rows, err := r.db.QueryContext(ctx, queryDelayCountsByAirline)
	if err != nil {
		return nil, errwrap.Wrap(err, funcName)
	}
	defer rows.Close()

	var stats []entity.AirlineDelayStat
	for rows.Next() {
		var s entity.AirlineDelayStat
		if err := rows.Scan(&s.Airline, &s.DelayedCount, &s.TotalCount); err != nil {
			return nil, errwrap.Wrap(err, funcName)
		}
		stats = append(stats, s)
	}
	if err := rows.Err(); err != nil {
		return nil, errwrap.Wrap(err, funcName)
	}
	return stats, nil
}

func (r *FlightRepository) DepartureSamples(ctx context.Context) ([]entity.DepartureSample, error) {
	funcName := "FlightRepository.DepartureSamples"
	if err := helper.CheckDeadline(ctx); err != nil {
		return nil, errwrap.Wrap(err, funcName)
	}

	rows, err := r.db.QueryContext(ctx, queryDepartureSamples)
	if err != nil {
		return nil, errwrap.Wrap(err, funcName)
	}
	defer rows.Close()

	var samples []entity.DepartureSample
	for rows.Next() {
		var (
			s     entity.DepartureSample
			delay sql.NullInt64
		)
		if err := rows.Scan(&s.Time, &delay); err != nil {
			return nil, errwrap.Wrap(err, funcName)
		}
		if delay.Valid {
			v := delay.Int64
			s.Delay = &v
		}
		samples = append(samples, s)
	}
	if err := rows.Err(); err != nil {
		return nil, errwrap.Wrap(err, funcName)
	}
	return samples, nil
}

func (r *FlightRepository) DelayCountsByRoute(ctx context.Context) ([]entity.RouteDelayStat, error) {
	funcName := "FlightRepository.DelayCountsByRoute"
	if err := helper.CheckDeadline(ctx); err != nil {
		return nil, errwrap.Wrap(err, funcName)
	}

	rows, err := r.db.QueryContext(ctx, queryDelayCountsByRoute)
	if err != nil {
		return nil, errwrap.Wrap(err, funcName)
	}
	defer rows.Close()

	var stats []entity.RouteDelayStat
	for rows.Next() {
		var s entity.RouteDelayStat
		if err := rows.Scan(&s.Origin, &s.Destination, &s.DelayedCount, &s.TotalCount); err != nil {
			return nil, errwrap.Wrap(err, funcName)
		}
		stats = append(stats, s)
	}
	if err := rows.Err(); err != nil {
		return nil, errwrap.Wrap(err, funcName)
	}
	return stats, nil
}

func (r *FlightRepository) RouteCounts(ctx context.Context, origin, destination string) (int64, int64, error) {
	funcName := "FlightRepository.RouteCounts"
	if err := helper.CheckDeadline(ctx); err != nil {
		return 0, 0, errwrap.Wrap(err, funcName)
	}

	var delayed, total int64
	err := r.db.QueryRowContext(ctx, queryRouteCounts,
		strings.ToUpper(origin), strings.ToUpper(destination)).
		Scan(&delayed, &total)
	if err != nil {
		return 0, 0, errwrap.Wrap(err, funcName)
	}
	return delayed, total, nil
}

func (r *FlightRepository) AirportsByCode(ctx context.Context, codes ...string) ([]entity.Airport, error) {
	funcName := "FlightRepository.AirportsByCode"
	if err := helper.CheckDeadline(ctx); err != nil {
		return nil, errwrap.Wrap(err, funcName)
	}
	if len(codes) == 0 {
		return nil, nil
	}

	args := make([]interface{}, 0, len(codes))
	marks := make([]string, 0, len(codes))
	for _, code := range codes {
		args = append(args, strings.ToUpper(code))
		marks = append(marks, "?")
	}
	query := fmt.Sprintf(queryAirportsByCode, strings.Join(marks, ", "))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errwrap.Wrap(err, funcName)
	}
	defer rows.Close()

	var airports []entity.Airport
	for rows.Next() {
		var (
			a        entity.Airport
			lat, lon sql.NullFloat64
		)
		if err := rows.Scan(&a.IATACode, &a.Airport, &a.City, &a.State, &a.Country, &lat, &lon); err != nil {
			return nil, errwrap.Wrap(err, funcName)
		}
		if lat.Valid {
			v := lat.Float64
			a.Latitude = &v
		}
		if lon.Valid {
			v := lon.Float64
			a.Longitude = &v
		}
		airports = append(airports, a)
	}
	if err := rows.Err(); err != nil {
		return nil, errwrap.Wrap(err, funcName)
	}
	return airports, nil
}

func (r *FlightRepository) Close() error {
	return r.db.Close()
}

func scanFlightRows(rows *sql.Rows) ([]entity.FlightRow, error) {
	var out []entity.FlightRow
	for rows.Next() {
		var (
			row          entity.FlightRow
			origin, dest sql.NullString
			delay        sql.NullInt64
		)
		if err := rows.Scan(&row.FlightID, &origin, &dest, &row.Airline, &delay); err != nil {
			return nil, err
		}
		row.OriginAirport = origin.String
		row.DestinationAirport = dest.String
		if delay.Valid {
			v := delay.Int64
			row.Delay = &v
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

func likePattern(fragment string) string {
	return "%" + strings.ToLower(strings.TrimSpace(fragment)) + "%"
}
