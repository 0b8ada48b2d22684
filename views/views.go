package views

import (
	"embed"
	"fmt"
	"net/http"

	"github.com/gofiber/template/html/v2"

	"github.com/rahmatrdn/go-flight-analytics/entity"
)

//go:embed layouts search history stats maps
var files embed.FS

// Engine builds the template engine shared by the HTTP server and the
// console exporter. Templates are embedded so exports work from any working
// directory.
func Engine() *html.Engine {
	engine := html.NewFileSystem(http.FS(files), ".html")
	engine.AddFunc("pct", func(v float64) string {
		return fmt.Sprintf("%.1f", v)
	})
	engine.AddFunc("severity", func(pct float64) entity.Severity {
		return entity.SeverityFor(pct)
	})
	return engine
}

// HeatmapRow is one origin's row of the rendered matrix, cell order matching
// the heatmap's destination order.
type HeatmapRow struct {
	Origin string
	Cells  []HeatmapCell
}

// HeatmapCell distinguishes a route that was never flown (Known false) from
// one whose delay percentage is zero.
type HeatmapCell struct {
	Known      bool
	Percentage float64
}

// HeatmapTable reshapes the matrix for row-major template iteration.
func HeatmapTable(h *entity.RouteHeatmap) []HeatmapRow {
	if h == nil {
		return nil
	}

	rows := make([]HeatmapRow, 0, len(h.Origins))
	for _, origin := range h.Origins {
		row := HeatmapRow{
			Origin: origin,
			Cells:  make([]HeatmapCell, 0, len(h.Destinations)),
		}
		for _, destination := range h.Destinations {
			pct, ok := h.Cell(origin, destination)
			row.Cells = append(row.Cells, HeatmapCell{Known: ok, Percentage: pct})
		}
		rows = append(rows, row)
	}
	return rows
}
