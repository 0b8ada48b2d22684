package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/rahmatrdn/go-flight-analytics/internal/usecase"
	"github.com/rahmatrdn/go-flight-analytics/views"
)

type StatsHandler struct {
	statsUsecase *usecase.StatsUsecase
}

func NewStatsHandler(statsUsecase *usecase.StatsUsecase) *StatsHandler {
	return &StatsHandler{statsUsecase: statsUsecase}
}

func (h *StatsHandler) Register(app *fiber.App) {
	group := app.Group("/stats")
	group.Get("/airlines", h.Airlines)
	group.Get("/hours", h.Hours)
	group.Get("/heatmap", h.Heatmap)
}

func (h *StatsHandler) Airlines(c *fiber.Ctx) error {
	stats := h.statsUsecase.DelayPercentageByAirline(c.Context())

	if wantsJSON(c) {
		return c.JSON(fiber.Map{"data": stats})
	}

	return c.Render("stats/airlines", fiber.Map{
		"ActiveMenu": "airlines",
		"Stats":      stats,
	}, "layouts/main")
}

func (h *StatsHandler) Hours(c *fiber.Ctx) error {
	stats := h.statsUsecase.DelayPercentageByHour(c.Context())

	if wantsJSON(c) {
		return c.JSON(fiber.Map{"data": stats})
	}

	return c.Render("stats/hours", fiber.Map{
		"ActiveMenu": "hours",
		"Stats":      stats,
	}, "layouts/main")
}

func (h *StatsHandler) Heatmap(c *fiber.Ctx) error {
	refresh := c.Query("refresh") == "true"

	heatmap, lastRefresh := h.statsUsecase.RouteHeatmap(c.Context(), refresh)

	if wantsJSON(c) {
		return c.JSON(fiber.Map{
			"data":         heatmap,
			"last_refresh": lastRefresh,
		})
	}

	return c.Render("stats/heatmap", fiber.Map{
		"ActiveMenu":   "heatmap",
		"Destinations": heatmapDestinations(heatmap),
		"Rows":         views.HeatmapTable(heatmap),
		"LastRefresh":  lastRefresh,
	}, "layouts/main")
}
