package entity

// A flight counts as delayed iff its departure delay is present and strictly
// positive. NULL delays stay in the denominator as on-time flights, so every
// stat type shares the same percentage rule and no group ever has a zero
// total.

type AirlineDelayStat struct {
	Airline      string `gorm:"column:airline" json:"airline"`
	DelayedCount int64  `gorm:"column:delayed_count" json:"delayed_count"`
	TotalCount   int64  `gorm:"column:total_count" json:"total_count"`
}

func (s AirlineDelayStat) Percentage() float64 {
	return percentage(s.DelayedCount, s.TotalCount)
}

type HourlyDelayStat struct {
	Hour         int   `json:"hour"`
	DelayedCount int64 `json:"delayed_count"`
	TotalCount   int64 `json:"total_count"`
}

func (s HourlyDelayStat) Percentage() float64 {
	return percentage(s.DelayedCount, s.TotalCount)
}

type RouteDelayStat struct {
	Origin       string `gorm:"column:origin" json:"origin"`
	Destination  string `gorm:"column:destination" json:"destination"`
	DelayedCount int64  `gorm:"column:delayed_count" json:"delayed_count"`
	TotalCount   int64  `gorm:"column:total_count" json:"total_count"`
}

func (s RouteDelayStat) Percentage() float64 {
	return percentage(s.DelayedCount, s.TotalCount)
}

// RouteHeatmap is the origin×destination percentage matrix. A route that was
// never flown has no cell at all, which is different from a cell holding 0.
type RouteHeatmap struct {
	Origins      []string                      `json:"origins"`
	Destinations []string                      `json:"destinations"`
	Cells        map[string]map[string]float64 `json:"cells"`
}

// Cell returns the delay percentage for origin→destination and whether the
// route was observed at all.
func (h RouteHeatmap) Cell(origin, destination string) (float64, bool) {
	row, ok := h.Cells[origin]
	if !ok {
		return 0, false
	}
	pct, ok := row[destination]
	return pct, ok
}

// Severity buckets route delay percentages for map color-coding.
type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// SeverityFor buckets a percentage: below 10 is low, 10 up to but excluding
// 30 is medium, 30 and above is high. Both boundaries are lower-inclusive.
func SeverityFor(pct float64) Severity {
	switch {
	case pct < 10:
		return SeverityLow
	case pct < 30:
		return SeverityMedium
	default:
		return SeverityHigh
	}
}

// AirportPoint is one renderable endpoint of a route: a code plus known
// coordinates.
type AirportPoint struct {
	Code      string  `json:"code"`
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// RouteDetail carries everything the map needs to draw one route: both
// endpoints, the great-circle midpoint for label placement, counts and the
// severity bucket.
type RouteDetail struct {
	Origin       AirportPoint `json:"origin"`
	Destination  AirportPoint `json:"destination"`
	MidLatitude  float64      `json:"mid_latitude"`
	MidLongitude float64      `json:"mid_longitude"`
	DistanceKm   float64      `json:"distance_km"`
	DelayedCount int64        `json:"delayed_count"`
	TotalCount   int64        `json:"total_count"`
	Percentage   float64      `json:"percentage"`
	Severity     Severity     `json:"severity"`
}

func percentage(delayed, total int64) float64 {
	if total == 0 {
		return 0
	}
	return 100 * float64(delayed) / float64(total)
}
