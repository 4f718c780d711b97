package database

import (
	"fmt"
	"strings"

	"github.com/casbin/gorm-adapter/v3"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Debmalya06/Mess-Milega-sub000/internal/infrastructure/repositories"
)

// IsPostgresDSN reports whether dsn addresses a PostgreSQL server. Anything
// else is treated as a SQLite file path (or ":memory:").
func IsPostgresDSN(dsn string) bool {
	return strings.HasPrefix(dsn, "postgres://") ||
		strings.HasPrefix(dsn, "postgresql://") ||
		strings.HasPrefix(dsn, "host=")
}

// Open creates a new database connection. verbose turns on SQL logging.
func Open(dsn string, verbose bool) (*gorm.DB, error) {
	level := logger.Warn
	if verbose {
		level = logger.Info
	}
	config := &gorm.Config{Logger: logger.Default.LogMode(level)}

	if IsPostgresDSN(dsn) {
		return gorm.Open(postgres.Open(dsn), config)
	}

	db, err := gorm.Open(sqlite.Open(dsn), config)
	if err != nil {
		return nil, err
	}
	// SQLite allows one writer; an in-memory database also exists per connection.
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)
	return db, nil
}

// AutoMigrate performs database migration for the listing tables and the
// Casbin policy table
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(repositories.Models()...); err != nil {
		return fmt.Errorf("failed to migrate listing tables: %w", err)
	}

	// The adapter creates casbin_rule if it doesn't exist
	if _, err := gormadapter.NewAdapterByDB(db); err != nil {
		return fmt.Errorf("failed to initialize Casbin GORM adapter: %w", err)
	}
	return nil
}
