package sqlite

import (
	"fmt"

	errwrap "github.com/pkg/errors"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/rahmatrdn/go-flight-analytics/entity"
)

// OpenFlightsDB opens the flights snapshot read-only. The snapshot is never
// written to; mode=ro makes SQLite enforce that.
func OpenFlightsDB(path string) (*gorm.DB, error) {
	dsn := fmt.Sprintf("file:%s?mode=ro", path)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, errwrap.Wrap(err, "sqlite.OpenFlightsDB")
	}
	return db, nil
}

// OpenStateDB opens (and migrates) the application state database holding
// search history, favorite routes and cached route reports.
func OpenStateDB(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, errwrap.Wrap(err, "sqlite.OpenStateDB")
	}

	err = db.AutoMigrate(
		&entity.SearchHistory{},
		&entity.FavoriteRoute{},
		&entity.RouteStatReport{},
	)
	if err != nil {
		return nil, errwrap.Wrap(err, "sqlite.OpenStateDB")
	}
	return db, nil
}

// CloseDB releases the underlying connection pool of a gorm handle.
func CloseDB(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return errwrap.Wrap(err, "sqlite.CloseDB")
	}
	return sqlDB.Close()
}
