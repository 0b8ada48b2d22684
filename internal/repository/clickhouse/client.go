package clickhouse

import (
	"database/sql"
	"time"

	ch "github.com/ClickHouse/clickhouse-go/v2"

	"github.com/rahmatrdn/go-flight-analytics/config"
)

// Open builds a database/sql handle over the native protocol. The driver
// dials lazily, so a bad address surfaces on the first query rather than
// here.
func Open(cfg config.ClickHouse) *sql.DB {
	db := ch.OpenDB(&ch.Options{
		Addr: []string{cfg.Addr},
		Auth: ch.Auth{
			Database: cfg.Database,
			Username: cfg.Username,
			Password: cfg.Password,
		},
		Compression: &ch.Compression{
			Method: ch.CompressionLZ4,
		},
		DialTimeout: 5 * time.Second,
	})

	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(time.Hour)

	return db
}
