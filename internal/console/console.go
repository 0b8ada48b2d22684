package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rahmatrdn/go-flight-analytics/entity"
	"github.com/rahmatrdn/go-flight-analytics/internal/helper"
	"github.com/rahmatrdn/go-flight-analytics/internal/usecase"
)

// operation is one menu entry: a label and the input-gathering routine that
// runs it. The menu is this closed list; there is no free-form dispatch.
type operation struct {
	Label string
	Run   func(ctx context.Context)
}

// Console drives the interactive menu over stdin/stdout (or any
// reader/writer in tests).
type Console struct {
	search    *usecase.SearchUsecase
	stats     *usecase.StatsUsecase
	favorites *usecase.FavoriteUsecase
	exporter  *Exporter

	in  *bufio.Scanner
	out io.Writer
}

func New(
	search *usecase.SearchUsecase,
	stats *usecase.StatsUsecase,
	favorites *usecase.FavoriteUsecase,
	exporter *Exporter,
	in io.Reader,
	out io.Writer,
) *Console {
	return &Console{
		search:    search,
		stats:     stats,
		favorites: favorites,
		exporter:  exporter,
		in:        bufio.NewScanner(in),
		out:       out,
	}
}

// Run shows the menu until the user picks Exit or the input ends.
func (c *Console) Run(ctx context.Context) {
	ops := []operation{
		{"Show flight by ID", c.flightByID},
		{"Show flights by date", c.flightsByDate},
		{"Delayed flights by airline", c.delayedByAirline},
		{"Delayed flights by origin airport", c.delayedByAirport},
		{"Export delay percentage by airline chart", c.exportAirlineChart},
		{"Export delay percentage by hour chart", c.exportHourChart},
		{"Export route delay heatmap", c.exportHeatmap},
		{"Show route on map", c.routeMap},
		{"Show recent searches", c.recentSearches},
	}

	for {
		choice, ok := c.menuChoice(ops)
		if !ok || choice == len(ops) {
			return
		}
		ops[choice].Run(ctx)
	}
}

// menuChoice prints the menu and reads selections until one is valid. The
// returned index equal to len(ops) means Exit; ok is false when input ended.
func (c *Console) menuChoice(ops []operation) (int, bool) {
	fmt.Fprintln(c.out, "Menu:")
	for i, op := range ops {
		fmt.Fprintf(c.out, "%d. %s\n", i+1, op.Label)
	}
	fmt.Fprintf(c.out, "%d. Exit\n", len(ops)+1)

	for {
		line, ok := c.readLine("")
		if !ok {
			return 0, false
		}
		choice, err := strconv.Atoi(strings.TrimSpace(line))
		if err == nil && choice >= 1 && choice <= len(ops)+1 {
			return choice - 1, true
		}
		fmt.Fprintln(c.out, "Try again...")
	}
}

func (c *Console) readLine(prompt string) (string, bool) {
	if prompt != "" {
		fmt.Fprint(c.out, prompt)
	}
	if !c.in.Scan() {
		return "", false
	}
	return c.in.Text(), true
}

func (c *Console) flightByID(ctx context.Context) {
	for {
		line, ok := c.readLine("Enter flight ID: ")
		if !ok {
			return
		}
		id, err := strconv.ParseInt(strings.TrimSpace(line), 10, 64)
		if err != nil {
			fmt.Fprintln(c.out, "Try again...")
			continue
		}
		PrintResults(c.out, c.search.FlightByID(ctx, id), false)
		return
	}
}

func (c *Console) flightsByDate(ctx context.Context) {
	for {
		line, ok := c.readLine("Enter date in DD/MM/YYYY format: ")
		if !ok {
			return
		}
		day, month, year, err := helper.ParseDate(line)
		if err == nil {
			_, err = entity.DateCriteria{Day: day, Month: month, Year: year}.Date()
		}
		if err != nil {
			fmt.Fprintln(c.out, "Try again...")
			continue
		}
		PrintResults(c.out, c.search.FlightsByDate(ctx, day, month, year), false)
		return
	}
}

func (c *Console) delayedByAirline(ctx context.Context) {
	line, ok := c.readLine("Enter airline name: ")
	if !ok {
		return
	}
	PrintResults(c.out, c.search.DelayedByAirline(ctx, line), true)
}

func (c *Console) delayedByAirport(ctx context.Context) {
	code, ok := c.promptIATA("Enter origin airport IATA code: ")
	if !ok {
		return
	}
	PrintResults(c.out, c.search.DelayedByAirport(ctx, code), true)
}

// promptIATA re-asks until the input is a three-letter code.
func (c *Console) promptIATA(prompt string) (string, bool) {
	for {
		line, ok := c.readLine(prompt)
		if !ok {
			return "", false
		}
		code := strings.TrimSpace(line)
		if helper.ValidIATA(code) {
			return code, true
		}
	}
}

func (c *Console) exportAirlineChart(ctx context.Context) {
	stats := c.stats.DelayPercentageByAirline(ctx)
	if len(stats) == 0 {
		fmt.Fprintln(c.out, "No results found.")
		return
	}
	c.report(c.exporter.AirlineChart(stats))
}

func (c *Console) exportHourChart(ctx context.Context) {
	stats := c.stats.DelayPercentageByHour(ctx)
	if len(stats) == 0 {
		fmt.Fprintln(c.out, "No results found.")
		return
	}
	c.report(c.exporter.HourChart(stats))
}

func (c *Console) exportHeatmap(ctx context.Context) {
	heatmap, lastRefresh := c.stats.RouteHeatmap(ctx, false)
	if heatmap == nil {
		fmt.Fprintln(c.out, "No results found.")
		return
	}
	c.report(c.exporter.Heatmap(heatmap, lastRefresh))
}

func (c *Console) routeMap(ctx context.Context) {
	origin, ok := c.promptIATA("Enter origin airport IATA code: ")
	if !ok {
		return
	}
	destination, ok := c.promptIATA("Enter destination airport IATA code: ")
	if !ok {
		return
	}

	detail, found := c.stats.RouteDetail(ctx, origin, destination)
	if !found {
		fmt.Fprintln(c.out, "No results found.")
		return
	}

	fmt.Fprintf(c.out, "%s (%s) -> %s (%s): %.1f%% of %d flights delayed, %.0f km, severity %s\n",
		detail.Origin.Code, detail.Origin.Name,
		detail.Destination.Code, detail.Destination.Name,
		detail.Percentage, detail.TotalCount, detail.DistanceKm, detail.Severity)

	if line, ok := c.readLine("Save as favorite? (y/N): "); ok && strings.EqualFold(strings.TrimSpace(line), "y") {
		title, _ := c.readLine("Title (optional): ")
		fav := &entity.FavoriteRoute{
			Title:       strings.TrimSpace(title),
			Origin:      detail.Origin.Code,
			Destination: detail.Destination.Code,
		}
		if err := c.favorites.SaveFavoriteRoute(ctx, fav); err != nil {
			fmt.Fprintf(c.out, "Not saved: %v\n", err)
		} else {
			fmt.Fprintf(c.out, "Saved favorite %q\n", fav.Title)
		}
	}

	// The export draws the searched route plus every favorite that still
	// resolves to coordinates.
	details := []entity.RouteDetail{*detail}
	if favs, err := c.favorites.FavoriteRoutes(ctx); err == nil {
		for _, fav := range favs {
			if fav.Origin == detail.Origin.Code && fav.Destination == detail.Destination.Code {
				continue
			}
			if d, ok := c.stats.RouteDetail(ctx, fav.Origin, fav.Destination); ok {
				details = append(details, *d)
			}
		}
	}
	c.report(c.exporter.RouteMap(details))
}

func (c *Console) recentSearches(ctx context.Context) {
	histories, err := c.search.RecentSearches(ctx, 20)
	if err != nil {
		fmt.Fprintf(c.out, "History unavailable: %v\n", err)
		return
	}
	if len(histories) == 0 {
		fmt.Fprintln(c.out, "No searches recorded yet.")
		return
	}
	for _, h := range histories {
		fmt.Fprintf(c.out, "%s  %-20s %-24s %d results\n",
			h.CreatedAt.Format("2006-01-02 15:04:05"), h.Operation, h.Criteria, h.Results)
	}
}

func (c *Console) report(path string, err error) {
	if err != nil {
		fmt.Fprintf(c.out, "Export failed: %v\n", err)
		return
	}
	fmt.Fprintf(c.out, "Written to %s\n", path)
}
