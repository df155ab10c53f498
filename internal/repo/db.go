// Package repo implements the data persistence layer for the legacy feed
// schema, backed by GORM. This file contains database bootstrapping helpers
// for SQLite (pure Go driver, dev/tests) and Postgres (production), plus
// schema migrations.
package repo

import (
	"os"
	"path/filepath"
	"time"

	sqlite "github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/plugin/opentelemetry/tracing"

	"github.com/frlmedia/seofeed/internal/domain"
)

// OpenSQLite opens (or creates) a SQLite database and applies PRAGMAs.
func OpenSQLite(path string) (*gorm.DB, error) {
	// Fail early if parent directory does not exist (instead of sqlite "out of memory (14)" on Windows).
	if dir := filepath.Dir(path); dir != "." {
		if _, err := os.Stat(dir); err != nil {
			return nil, err
		}
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	// PRAGMAs
	db.Exec("PRAGMA journal_mode=WAL;")
	db.Exec("PRAGMA synchronous=NORMAL;")
	db.Exec("PRAGMA foreign_keys=ON;")
	db.Exec("PRAGMA busy_timeout=5000;")

	tunePool(db)
	return db, nil
}

// OpenPostgres connects to the shared production database using a DSN.
func OpenPostgres(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	tunePool(db)
	return db, nil
}

func tunePool(db *gorm.DB) {
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.SetMaxOpenConns(10)
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetConnMaxIdleTime(5 * time.Minute)
		sqlDB.SetConnMaxLifetime(30 * time.Minute)
	}
}

// EnableTracing attaches the GORM OpenTelemetry plugin so every query shows
// up as a span under the request trace. Metrics are left to the HTTP layer.
func EnableTracing(db *gorm.DB) error {
	return db.Use(tracing.NewPlugin(tracing.WithoutMetrics()))
}

// AutoMigrate creates or updates the legacy tables. The admin system owns the
// real schema; migrations here exist for dev databases and tests.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.Domain{},
		&domain.DomainSettings{},
		&domain.ContentItem{},
		&domain.SupportContent{},
		&domain.DripContent{},
		&domain.Category{},
		&domain.FeedTemplate{},
		&domain.LinkPlacement{},
		&domain.Service{},
		&domain.Register{},
	)
}
