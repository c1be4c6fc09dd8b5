// Package gormrepo stores the aggregates in a relational database through
// GORM. Nested blocks, sets and metrics are kept in JSON columns so every
// aggregate maps to a single row.
package gormrepo

import (
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"alcyxob/fitness-tracker/internal/domain"
)

// Open connects to the SQLite database at dsn and migrates the schema.
// LIKE is switched to case-sensitive so "contains" behaves the same on
// every storage backend.
func Open(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(withCaseSensitiveLike(dsn)), &gorm.Config{
		Logger: logger.New(log.StandardLogger(), logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
		}),
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	if strings.Contains(dsn, ":memory:") {
		// every pooled connection would otherwise see its own empty database
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate creates or updates the tables of all row models.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.User{},
		&exerciseRow{},
		&exerciseMetricRow{},
		&routineRow{},
		&workoutRow{},
	)
}

// Close releases the underlying connection pool.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func withCaseSensitiveLike(dsn string) string {
	if strings.Contains(dsn, "_cslike") || strings.Contains(dsn, "_case_sensitive_like") {
		return dsn
	}
	if strings.Contains(dsn, "?") {
		return dsn + "&_cslike=1"
	}
	return dsn + "?_cslike=1"
}
