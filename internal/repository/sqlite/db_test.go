package sqlite

import (
	"testing"

	glebarez "github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/rahmatrdn/go-flight-analytics/entity"
)

// The snapshot schema declares its columns uppercase, exactly like the
// dataset the tool ships against. SQLite matches column names
// case-insensitively, so the lowercase aliases in the queries are what the
// scanner sees.
var flightsSchema = []string{
	`CREATE TABLE airlines (
		ID      INTEGER PRIMARY KEY,
		AIRLINE TEXT
	)`,
	`CREATE TABLE airports (
		IATA_CODE TEXT PRIMARY KEY,
		AIRPORT   TEXT,
		CITY      TEXT,
		STATE     TEXT,
		COUNTRY   TEXT,
		LATITUDE  REAL,
		LONGITUDE REAL
	)`,
	`CREATE TABLE flights (
		ID                  INTEGER PRIMARY KEY,
		YEAR                INTEGER,
		MONTH               INTEGER,
		DAY                 INTEGER,
		DAY_OF_WEEK         INTEGER,
		AIRLINE             INTEGER,
		FLIGHT_NUMBER       TEXT,
		TAIL_NUMBER         TEXT,
		ORIGIN_AIRPORT      TEXT,
		DESTINATION_AIRPORT TEXT,
		SCHEDULED_DEPARTURE TEXT,
		DEPARTURE_TIME      TEXT,
		DEPARTURE_DELAY     INTEGER,
		ARRIVAL_DELAY       INTEGER,
		AIR_SYSTEM_DELAY    INTEGER,
		SECURITY_DELAY      INTEGER,
		AIRLINE_DELAY       INTEGER,
		LATE_AIRCRAFT_DELAY INTEGER,
		WEATHER_DELAY       INTEGER
	)`,
}

// Seven flights covering every filter branch: present/absent departure
// delays, recorded/unrecorded causes, an early departure, a missing
// destination and a departure time stored as a bare integer.
var flightsSeed = []string{
	`INSERT INTO airlines (ID, AIRLINE) VALUES
		(1, 'American Airlines Inc.'),
		(2, 'Delta Air Lines Inc.')`,
	`INSERT INTO airports (IATA_CODE, AIRPORT, CITY, STATE, COUNTRY, LATITUDE, LONGITUDE) VALUES
		('ORD', 'Chicago O''Hare International Airport', 'Chicago', 'IL', 'USA', 41.9796, -87.90446),
		('LAX', 'Los Angeles International Airport', 'Los Angeles', 'CA', 'USA', 33.94254, -118.40807),
		('JFK', 'John F. Kennedy International Airport', 'New York', 'NY', 'USA', 40.63975, -73.77893),
		('XNA', 'Northwest Arkansas Regional Airport', 'Fayetteville', 'AR', 'USA', NULL, NULL)`,
	`INSERT INTO flights
		(ID, YEAR, MONTH, DAY, DAY_OF_WEEK, AIRLINE, FLIGHT_NUMBER, TAIL_NUMBER,
		 ORIGIN_AIRPORT, DESTINATION_AIRPORT, SCHEDULED_DEPARTURE, DEPARTURE_TIME,
		 DEPARTURE_DELAY, ARRIVAL_DELAY, AIR_SYSTEM_DELAY, SECURITY_DELAY,
		 AIRLINE_DELAY, LATE_AIRCRAFT_DELAY, WEATHER_DELAY)
	 VALUES
		(1, 2015, 1, 1, 4, 1, 'AA98',  'N001', 'ORD', 'LAX', '2355', '0014', 25,   30,   NULL, NULL, 25,   NULL, NULL),
		(2, 2015, 1, 1, 4, 1, 'AA112', 'N002', 'ORD', 'LAX', '0935', '0930', -5,   NULL, NULL, NULL, NULL, NULL, NULL),
		(3, 2015, 1, 2, 5, 2, 'DL200', 'N003', 'LAX', 'JFK', '1245', '1245', NULL, 10,   NULL, NULL, NULL, NULL, NULL),
		(4, 2015, 1, 2, 5, 2, 'DL201', 'N004', 'LAX', 'ORD', '0700', NULL,   NULL, NULL, NULL, NULL, NULL, NULL, NULL),
		(5, 2015, 1, 3, 6, 1, 'AA300', 'N005', 'ORD', 'LAX', '2320', 5,      45,   50,   NULL, NULL, NULL, NULL, 45),
		(6, 2015, 1, 3, 6, 2, 'DL310', 'N006', 'ORD', NULL,  '2230', '2400', 90,   95,   NULL, NULL, NULL, 90,   NULL),
		(7, 2015, 2, 14, 6, 1, 'AA77', 'N007', 'JFK', 'ORD', '2350', '2359', 5,    NULL, NULL, 5,    NULL, NULL, NULL)`,
}

// newTestDB opens a private in-memory database pinned to a single connection
// so every statement sees the same store.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(glebarez.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	return db
}

func newFlightsDB(t *testing.T) *gorm.DB {
	t.Helper()

	db := newTestDB(t)
	for _, stmt := range flightsSchema {
		require.NoError(t, db.Exec(stmt).Error)
	}
	for _, stmt := range flightsSeed {
		require.NoError(t, db.Exec(stmt).Error)
	}
	return db
}

func newStateDB(t *testing.T) *gorm.DB {
	t.Helper()

	db := newTestDB(t)
	err := db.AutoMigrate(
		&entity.SearchHistory{},
		&entity.FavoriteRoute{},
		&entity.RouteStatReport{},
	)
	require.NoError(t, err)
	return db
}
