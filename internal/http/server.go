package http

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/gofiber/fiber/v2"
	errwrap "github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/rahmatrdn/go-flight-analytics/config"
	"github.com/rahmatrdn/go-flight-analytics/internal/http/handler"
	"github.com/rahmatrdn/go-flight-analytics/internal/repository/sqlite"
	"github.com/rahmatrdn/go-flight-analytics/internal/usecase"
	"github.com/rahmatrdn/go-flight-analytics/views"
)

// Server hosts the HTML and JSON interface plus the scheduled maintenance
// jobs: history pruning and route report refresh.
type Server struct {
	cfg *config.Config
	app *fiber.App
	log *zap.Logger

	statsUsecase *usecase.StatsUsecase
	historyRepo  sqlite.SearchHistoryRepository
}

func New(
	cfg *config.Config,
	log *zap.Logger,
	searchUsecase *usecase.SearchUsecase,
	statsUsecase *usecase.StatsUsecase,
	favoriteUsecase *usecase.FavoriteUsecase,
	historyRepo sqlite.SearchHistoryRepository,
) *Server {
	app := fiber.New(fiber.Config{
		Views:                 views.Engine(),
		DisableStartupMessage: true,
	})

	handler.NewSearchHandler(searchUsecase).Register(app)
	handler.NewStatsHandler(statsUsecase).Register(app)
	handler.NewMapHandler(statsUsecase, favoriteUsecase).Register(app)

	return &Server{
		cfg:          cfg,
		app:          app,
		log:          log,
		statsUsecase: statsUsecase,
		historyRepo:  historyRepo,
	}
}

// App exposes the underlying fiber app for tests.
func (s *Server) App() *fiber.App {
	return s.app
}

// Run serves until the context is cancelled or SIGINT/SIGTERM arrives.
func (s *Server) Run(ctx context.Context) error {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return errwrap.Wrap(err, "http.Server.Run")
	}

	if _, err := scheduler.NewJob(
		gocron.DurationJob(s.cfg.HTTP.PruneInterval),
		gocron.NewTask(s.pruneHistory),
	); err != nil {
		return errwrap.Wrap(err, "http.Server.Run")
	}

	if _, err := scheduler.NewJob(
		gocron.DurationJob(s.cfg.HTTP.RouteCacheRefresh),
		gocron.NewTask(s.refreshRouteReports),
	); err != nil {
		return errwrap.Wrap(err, "http.Server.Run")
	}

	scheduler.Start()
	defer func() { _ = scheduler.Shutdown() }()

	errCh := make(chan error, 1)
	go func() { errCh <- s.app.Listen(s.cfg.HTTP.Addr) }()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(stop)

	s.log.Info("listening", zap.String("addr", s.cfg.HTTP.Addr))

	select {
	case err := <-errCh:
		return errwrap.Wrap(err, "http.Server.Run")
	case <-stop:
	case <-ctx.Done():
	}

	s.log.Info("shutting down")
	return errwrap.Wrap(s.app.ShutdownWithTimeout(5*time.Second), "http.Server.Run")
}

func (s *Server) pruneHistory() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	if err := s.historyRepo.Prune(ctx, s.cfg.HistoryLimit); err != nil {
		s.log.Warn("scheduled history prune failed", zap.Error(err))
	}
}

func (s *Server) refreshRouteReports() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	if heatmap, _ := s.statsUsecase.RouteHeatmap(ctx, true); heatmap == nil {
		s.log.Warn("scheduled route report refresh returned no data")
	}
}
