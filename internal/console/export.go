package console

import (
	"os"
	"path/filepath"
	"time"

	"github.com/gofiber/template/html/v2"
	errwrap "github.com/pkg/errors"

	"github.com/rahmatrdn/go-flight-analytics/entity"
	"github.com/rahmatrdn/go-flight-analytics/views"
)

// Exporter renders the same templates the HTTP server serves, wrapped in the
// bare export layout, into standalone HTML files.
type Exporter struct {
	engine *html.Engine
	dir    string
}

func NewExporter(dir string) (*Exporter, error) {
	engine := views.Engine()
	if err := engine.Load(); err != nil {
		return nil, errwrap.Wrap(err, "console.NewExporter")
	}
	return &Exporter{engine: engine, dir: dir}, nil
}

func (e *Exporter) AirlineChart(stats []entity.AirlineDelayStat) (string, error) {
	return e.render("stats/airlines", "delay_by_airline.html", map[string]interface{}{
		"Title":  "Delay percentage by airline",
		"Static": true,
		"Stats":  stats,
	})
}

func (e *Exporter) HourChart(stats []entity.HourlyDelayStat) (string, error) {
	return e.render("stats/hours", "delay_by_hour.html", map[string]interface{}{
		"Title":  "Delay percentage by hour of day",
		"Static": true,
		"Stats":  stats,
	})
}

func (e *Exporter) Heatmap(heatmap *entity.RouteHeatmap, lastRefresh *time.Time) (string, error) {
	var destinations []string
	if heatmap != nil {
		destinations = heatmap.Destinations
	}

	return e.render("stats/heatmap", "route_heatmap.html", map[string]interface{}{
		"Title":        "Route delay heatmap",
		"Static":       true,
		"Destinations": destinations,
		"Rows":         views.HeatmapTable(heatmap),
		"LastRefresh":  lastRefresh,
	})
}

func (e *Exporter) RouteMap(details []entity.RouteDetail) (string, error) {
	return e.render("maps/routes", "route_map.html", map[string]interface{}{
		"Title":   "Route map",
		"Static":  true,
		"Details": details,
	})
}

func (e *Exporter) render(view, filename string, bind map[string]interface{}) (string, error) {
	if err := os.MkdirAll(e.dir, 0o755); err != nil {
		return "", errwrap.Wrap(err, "Exporter.render")
	}

	path := filepath.Join(e.dir, filename)
	f, err := os.Create(path)
	if err != nil {
		return "", errwrap.Wrap(err, "Exporter.render")
	}

	if err := e.engine.Render(f, view, bind, "layouts/export"); err != nil {
		f.Close()
		return "", errwrap.Wrap(err, "Exporter.render")
	}
	if err := f.Close(); err != nil {
		return "", errwrap.Wrap(err, "Exporter.render")
	}
	return path, nil
}
