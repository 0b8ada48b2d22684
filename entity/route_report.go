package entity

import (
	"time"
)

// RouteStatReport is one cached row of the route delay report. The heatmap
// groups millions of flight rows, so the grouped counts are materialized in
// the state database and reused until a refresh recomputes them.
type RouteStatReport struct {
	ID           int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Origin       string    `gorm:"index;not null" json:"origin"`
	Destination  string    `gorm:"index;not null" json:"destination"`
	DelayedCount int64     `json:"delayed_count"`
	TotalCount   int64     `json:"total_count"`
	RefreshedAt  time.Time `json:"refreshed_at"`
	CreatedAt    time.Time `json:"created_at"`
}

// TableName overrides the table name used by gorm to `route_stat_reports`
func (RouteStatReport) TableName() string {
	return "route_stat_reports"
}

// Stat converts the cached row back into the aggregate form the heatmap
// consumes.
func (r RouteStatReport) Stat() RouteDelayStat {
	return RouteDelayStat{
		Origin:       r.Origin,
		Destination:  r.Destination,
		DelayedCount: r.DelayedCount,
		TotalCount:   r.TotalCount,
	}
}
