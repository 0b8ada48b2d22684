package main

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/rahmatrdn/go-flight-analytics/config"
	"github.com/rahmatrdn/go-flight-analytics/internal/console"
	server "github.com/rahmatrdn/go-flight-analytics/internal/http"
	"github.com/rahmatrdn/go-flight-analytics/internal/logger"
	"github.com/rahmatrdn/go-flight-analytics/internal/repository"
	"github.com/rahmatrdn/go-flight-analytics/internal/repository/sqlite"
	"github.com/rahmatrdn/go-flight-analytics/internal/usecase"
)

// The default mode is the interactive console; `serve` starts the HTTP
// interface on the configured address instead.
func main() {
	cfg, err := config.New()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	if err := run(cfg, log); err != nil {
		log.Fatal("exited", zap.Error(err))
	}
}

func run(cfg *config.Config, log *zap.Logger) error {
	flights, err := repository.Open(cfg)
	if err != nil {
		return err
	}
	defer flights.Close()

	stateDB, err := repository.OpenState(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = sqlite.CloseDB(stateDB) }()

	historyRepo := sqlite.NewSearchHistoryRepository(stateDB)
	favoriteRepo := sqlite.NewFavoriteRouteRepository(stateDB)
	reportRepo := sqlite.NewRouteReportRepository(stateDB)

	searchUsecase := usecase.NewSearchUsecase(flights, historyRepo, cfg.HistoryLimit, log)
	statsUsecase := usecase.NewStatsUsecase(flights, reportRepo, log)
	favoriteUsecase := usecase.NewFavoriteUsecase(favoriteRepo)

	ctx := context.Background()

	if len(os.Args) > 1 && os.Args[1] == "serve" {
		srv := server.New(cfg, log, searchUsecase, statsUsecase, favoriteUsecase, historyRepo)
		return srv.Run(ctx)
	}

	exporter, err := console.NewExporter(cfg.ExportDir)
	if err != nil {
		return err
	}

	console.New(searchUsecase, statsUsecase, favoriteUsecase, exporter, os.Stdin, os.Stdout).Run(ctx)
	return nil
}
