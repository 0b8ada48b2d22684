package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/rahmatrdn/go-flight-analytics/entity"
)

// wantsJSON picks the JSON branch for API clients; everything else gets the
// rendered page.
func wantsJSON(c *fiber.Ctx) bool {
	return c.Query("format") == "json" || c.Get("Accept") == "application/json"
}

func heatmapDestinations(h *entity.RouteHeatmap) []string {
	if h == nil {
		return nil
	}
	return h.Destinations
}
