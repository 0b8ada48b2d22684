package config

import (
	"time"

	"github.com/joeshaw/envdecode"
	errwrap "github.com/pkg/errors"
	"github.com/subosito/gotenv"
)

// Config carries everything the process needs, decoded from the environment.
// A .env file in the working directory is loaded first when present.
type Config struct {
	LogLevel string `env:"LOG_LEVEL,default=info"`

	// Backend selects the analytics store: "sqlite" reads the snapshot
	// database directly, "clickhouse" queries a mirrored cluster.
	Backend string `env:"FLIGHTS_BACKEND,default=sqlite"`

	// FlightsDB is the path to the flights snapshot. It is opened read-only;
	// the tool never writes to it.
	FlightsDB string `env:"FLIGHTS_DB,default=data/flights.sqlite3"`

	// StateDB holds application state (search history, favorites, cached
	// route reports) and lives apart from the snapshot.
	StateDB string `env:"STATE_DB,default=data/app_state.sqlite3"`

	// ExportDir receives HTML charts and maps written by the console.
	ExportDir string `env:"EXPORT_DIR,default=exports"`

	// HistoryLimit caps how many search runs are retained.
	HistoryLimit int `env:"HISTORY_LIMIT,default=50"`

	HTTP       HTTP
	ClickHouse ClickHouse
}

type HTTP struct {
	Addr string `env:"HTTP_ADDR,default=127.0.0.1:8085"`

	// PruneInterval schedules history trimming while serving.
	PruneInterval time.Duration `env:"HISTORY_PRUNE_INTERVAL,default=15m"`

	// RouteCacheRefresh schedules background refresh of the per-route
	// delay report cache.
	RouteCacheRefresh time.Duration `env:"ROUTE_CACHE_REFRESH,default=1h"`
}

type ClickHouse struct {
	Addr     string `env:"CLICKHOUSE_ADDR,default=127.0.0.1:9000"`
	Database string `env:"CLICKHOUSE_DATABASE,default=flights"`
	Username string `env:"CLICKHOUSE_USERNAME,default=default"`
	Password string `env:"CLICKHOUSE_PASSWORD,default="`
}

func New() (*Config, error) {
	_ = gotenv.Load()

	var cfg Config
	if err := envdecode.Decode(&cfg); err != nil {
		return nil, errwrap.Wrap(err, "config.New")
	}
	return &cfg, nil
}
