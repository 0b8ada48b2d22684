package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPercentage(t *testing.T) {
	assert.Equal(t, 50.0, AirlineDelayStat{DelayedCount: 1, TotalCount: 2}.Percentage())
	assert.Equal(t, 0.0, AirlineDelayStat{DelayedCount: 0, TotalCount: 3}.Percentage())
	assert.Equal(t, 10.0, RouteDelayStat{DelayedCount: 2, TotalCount: 20}.Percentage())
	assert.Equal(t, 100.0, HourlyDelayStat{DelayedCount: 4, TotalCount: 4}.Percentage())

	// A group with no flights never divides by zero.
	assert.Equal(t, 0.0, AirlineDelayStat{}.Percentage())
}

func TestSeverityFor(t *testing.T) {
	tests := []struct {
		pct  float64
		want Severity
	}{
		{0, SeverityLow},
		{9.99, SeverityLow},
		{10, SeverityMedium},
		{29.99, SeverityMedium},
		{30, SeverityHigh},
		{100, SeverityHigh},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, SeverityFor(tt.pct), "pct %v", tt.pct)
	}
}

func TestRouteHeatmapCell(t *testing.T) {
	h := RouteHeatmap{
		Origins:      []string{"LAX", "ORD"},
		Destinations: []string{"JFK", "LAX"},
		Cells: map[string]map[string]float64{
			"ORD": {"LAX": 10.0},
			"LAX": {"JFK": 0.0},
		},
	}

	pct, ok := h.Cell("ORD", "LAX")
	assert.True(t, ok)
	assert.Equal(t, 10.0, pct)

	// A zero percentage cell is still an observed route.
	pct, ok = h.Cell("LAX", "JFK")
	assert.True(t, ok)
	assert.Equal(t, 0.0, pct)

	_, ok = h.Cell("ORD", "JFK")
	assert.False(t, ok)

	_, ok = h.Cell("JFK", "ORD")
	assert.False(t, ok)
}

func TestFlightRowDelay(t *testing.T) {
	late := int64(21)
	early := int64(-3)

	row := FlightRow{Delay: &late}
	assert.True(t, row.Delayed())
	assert.Equal(t, int64(21), row.DelayMinutes())

	row = FlightRow{Delay: &early}
	assert.False(t, row.Delayed())

	row = FlightRow{}
	assert.False(t, row.Delayed())
	assert.Equal(t, int64(0), row.DelayMinutes())
}
