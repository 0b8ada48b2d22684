package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rahmatrdn/go-flight-analytics/config"
)

func TestNewDefaults(t *testing.T) {
	cfg, err := config.New()
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "sqlite", cfg.Backend)
	assert.Equal(t, "data/flights.sqlite3", cfg.FlightsDB)
	assert.Equal(t, "data/app_state.sqlite3", cfg.StateDB)
	assert.Equal(t, "exports", cfg.ExportDir)
	assert.Equal(t, 50, cfg.HistoryLimit)
	assert.Equal(t, "127.0.0.1:8085", cfg.HTTP.Addr)
	assert.Equal(t, 15*time.Minute, cfg.HTTP.PruneInterval)
	assert.Equal(t, time.Hour, cfg.HTTP.RouteCacheRefresh)
	assert.Equal(t, "127.0.0.1:9000", cfg.ClickHouse.Addr)
}

func TestNewFromEnvironment(t *testing.T) {
	t.Setenv("FLIGHTS_BACKEND", "clickhouse")
	t.Setenv("FLIGHTS_DB", "/var/lib/flights/flights.sqlite3")
	t.Setenv("HISTORY_LIMIT", "10")
	t.Setenv("HISTORY_PRUNE_INTERVAL", "5m")
	t.Setenv("CLICKHOUSE_ADDR", "ch.internal:9000")

	cfg, err := config.New()
	require.NoError(t, err)

	assert.Equal(t, "clickhouse", cfg.Backend)
	assert.Equal(t, "/var/lib/flights/flights.sqlite3", cfg.FlightsDB)
	assert.Equal(t, 10, cfg.HistoryLimit)
	assert.Equal(t, 5*time.Minute, cfg.HTTP.PruneInterval)
	assert.Equal(t, "ch.internal:9000", cfg.ClickHouse.Addr)
}
