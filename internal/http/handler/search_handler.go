package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/rahmatrdn/go-flight-analytics/entity"
	"github.com/rahmatrdn/go-flight-analytics/internal/helper"
	"github.com/rahmatrdn/go-flight-analytics/internal/usecase"
)

type SearchHandler struct {
	searchUsecase *usecase.SearchUsecase
}

func NewSearchHandler(searchUsecase *usecase.SearchUsecase) *SearchHandler {
	return &SearchHandler{searchUsecase: searchUsecase}
}

func (h *SearchHandler) Register(app *fiber.App) {
	app.Get("/", h.Search)
	app.Get("/search", h.Search)
	app.Get("/history", h.History)
}

// Search runs the operation named by ?op= and renders the results. Without
// an op it just shows the form. An empty result set renders the same way
// whether nothing matched or the query failed upstream.
func (h *SearchHandler) Search(c *fiber.Ctx) error {
	op := c.Query("op")

	var (
		rows     []entity.FlightRow
		criteria string
	)

	switch op {
	case "":
		// Plain form page.

	case usecase.OpFlightByID:
		id, err := strconv.ParseInt(c.Query("id"), 10, 64)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).SendString("Invalid flight ID")
		}
		rows = h.searchUsecase.FlightByID(c.Context(), id)
		criteria = c.Query("id")

	case usecase.OpFlightsByDate:
		day, month, year, err := helper.ParseDate(c.Query("date"))
		if err != nil {
			return c.Status(fiber.StatusBadRequest).SendString("Invalid date, use DD/MM/YYYY")
		}
		rows = h.searchUsecase.FlightsByDate(c.Context(), day, month, year)
		criteria = c.Query("date")

	case usecase.OpDelayedByAirline:
		criteria = c.Query("airline")
		rows = h.searchUsecase.DelayedByAirline(c.Context(), criteria)

	case usecase.OpDelayedByAirport:
		criteria = c.Query("airport")
		rows = h.searchUsecase.DelayedByAirport(c.Context(), criteria)

	default:
		return c.Status(fiber.StatusBadRequest).SendString("Unknown operation")
	}

	if wantsJSON(c) {
		return c.JSON(fiber.Map{
			"operation": op,
			"criteria":  criteria,
			"count":     len(rows),
			"rows":      rows,
		})
	}

	return c.Render("search/index", fiber.Map{
		"ActiveMenu": "search",
		"Op":         op,
		"Criteria":   criteria,
		"Rows":       rows,
		"Searched":   op != "",
	}, "layouts/main")
}

func (h *SearchHandler) History(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 20)

	histories, err := h.searchUsecase.RecentSearches(c.Context(), limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).SendString(err.Error())
	}

	if wantsJSON(c) {
		return c.JSON(fiber.Map{"data": histories})
	}

	return c.Render("history/index", fiber.Map{
		"ActiveMenu": "history",
		"Histories":  histories,
	}, "layouts/main")
}
