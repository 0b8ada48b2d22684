package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/rahmatrdn/go-flight-analytics/entity"
	"github.com/rahmatrdn/go-flight-analytics/internal/usecase"
)

type MapHandler struct {
	statsUsecase    *usecase.StatsUsecase
	favoriteUsecase *usecase.FavoriteUsecase
}

func NewMapHandler(statsUsecase *usecase.StatsUsecase, favoriteUsecase *usecase.FavoriteUsecase) *MapHandler {
	return &MapHandler{
		statsUsecase:    statsUsecase,
		favoriteUsecase: favoriteUsecase,
	}
}

func (h *MapHandler) Register(app *fiber.App) {
	app.Get("/map", h.Map)
	app.Post("/favorites", h.SaveFavorite)
	app.Delete("/favorites/:id", h.DeleteFavorite)
	app.Post("/favorites/:id/delete", h.DeleteFavorite)
}

// Map renders the searched route (when origin and destination are given)
// together with every favorite that still resolves. Routes with unknown
// endpoints or missing coordinates are left off the map rather than drawn at
// zero.
func (h *MapHandler) Map(c *fiber.Ctx) error {
	origin := c.Query("origin")
	destination := c.Query("destination")

	var (
		details            []entity.RouteDetail
		searched, notFound bool
		searchedOrigin     string
		searchedDest       string
	)

	if origin != "" && destination != "" {
		searched = true
		if detail, ok := h.statsUsecase.RouteDetail(c.Context(), origin, destination); ok {
			details = append(details, *detail)
			searchedOrigin, searchedDest = detail.Origin.Code, detail.Destination.Code
		} else {
			notFound = true
		}
	}

	favorites, err := h.favoriteUsecase.FavoriteRoutes(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).SendString(err.Error())
	}

	// A favorite matching the searched route is already on the map.
	for _, fav := range favorites {
		if fav.Origin == searchedOrigin && fav.Destination == searchedDest {
			continue
		}
		if detail, ok := h.statsUsecase.RouteDetail(c.Context(), fav.Origin, fav.Destination); ok {
			details = append(details, *detail)
		}
	}

	if wantsJSON(c) {
		return c.JSON(fiber.Map{
			"data":      details,
			"favorites": favorites,
		})
	}

	return c.Render("maps/routes", fiber.Map{
		"ActiveMenu":  "map",
		"Details":     details,
		"Favorites":   favorites,
		"Origin":      origin,
		"Destination": destination,
		"Searched":    searched,
		"NotFound":    notFound,
	}, "layouts/main")
}

func (h *MapHandler) SaveFavorite(c *fiber.Ctx) error {
	fav := &entity.FavoriteRoute{
		Title:       c.FormValue("title"),
		Origin:      c.FormValue("origin"),
		Destination: c.FormValue("destination"),
	}

	if err := h.favoriteUsecase.SaveFavoriteRoute(c.Context(), fav); err != nil {
		return c.Status(fiber.StatusBadRequest).SendString(err.Error())
	}

	if wantsJSON(c) {
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": fav})
	}
	return c.Redirect("/map", fiber.StatusSeeOther)
}

func (h *MapHandler) DeleteFavorite(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).SendString("Invalid favorite ID")
	}

	if err := h.favoriteUsecase.DeleteFavoriteRoute(c.Context(), id); err != nil {
		return c.Status(fiber.StatusInternalServerError).SendString(err.Error())
	}

	if wantsJSON(c) {
		return c.JSON(fiber.Map{"deleted": id})
	}
	return c.Redirect("/map", fiber.StatusSeeOther)
}
