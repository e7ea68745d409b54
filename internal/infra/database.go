package infra

import (
	"fmt"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase opens the embedded SQLite store. The schema is managed
// exclusively via SQL migrations (see internal/migrate), never by GORM
// AutoMigrate, to keep precise control over column types and constraints.
//
// The store is private to a single application instance, so the pool is
// pinned to one connection: SQLite allows a single writer anyway, and with
// ":memory:" databases additional connections would each see their own
// empty database.
func NewDatabase(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, p := range pragmas {
		if err := db.Exec(p).Error; err != nil {
			return nil, fmt.Errorf("pragma %q: %w", p, err)
		}
	}

	return db, nil
}
