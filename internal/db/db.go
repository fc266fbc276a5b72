package db

import (
	"fmt"
	"os"
	"strings"

	"github.com/jhbridge/billing/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// IsPostgresDSN reports whether the DSN targets postgres. Everything
// else is treated as a sqlite path, the local-storage default.
func IsPostgresDSN(dsn string) bool {
	lower := strings.ToLower(strings.TrimSpace(dsn))
	if strings.HasPrefix(lower, "postgres://") || strings.HasPrefix(lower, "postgresql://") {
		return true
	}
	// lib/pq key=value form
	return strings.Contains(lower, "host=") && strings.Contains(lower, "dbname=")
}

// Connect opens the database for the given DSN and runs migrations.
func Connect(dsn string) (*gorm.DB, error) {
	if strings.TrimSpace(dsn) == "" {
		return nil, fmt.Errorf("empty DATABASE_DSN")
	}
	logLevel := logger.Silent
	if os.Getenv("DB_DEBUG") == "1" {
		logLevel = logger.Info
	}
	cfg := &gorm.Config{Logger: logger.Default.LogMode(logLevel)}

	var (
		conn *gorm.DB
		err  error
	)
	if IsPostgresDSN(dsn) {
		conn, err = gorm.Open(postgres.Open(dsn), cfg)
	} else {
		conn, err = gorm.Open(sqlite.Open(dsn), cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := Migrate(conn); err != nil {
		return nil, err
	}
	return conn, nil
}

// Migrate creates or updates the schema. The app persists a single
// key-value table, so AutoMigrate is all that is needed.
func Migrate(conn *gorm.DB) error {
	if err := conn.AutoMigrate(&models.Setting{}); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}
