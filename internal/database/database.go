package database

import (
	"context"
	"fmt"
	"strings"

	"github.com/18Abhinav07/SuavePay/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const sqlitePrefix = "sqlite:"

// Connect opens the shared database handle. An empty URL or ":memory:" selects an
// in-memory sqlite database, "sqlite:<path>" a sqlite file, anything else is
// treated as a postgres DSN.
func Connect(databaseURL string) (*gorm.DB, error) {
	config := &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	}

	var dialector gorm.Dialector
	inMemory := false

	switch {
	case databaseURL == "" || databaseURL == ":memory:" || databaseURL == sqlitePrefix+":memory:":
		dialector = sqlite.Open(":memory:")
		inMemory = true
	case strings.HasPrefix(databaseURL, sqlitePrefix):
		dbPath := strings.TrimPrefix(databaseURL, sqlitePrefix)
		dialector = sqlite.Open(dbPath + "?_journal_mode=WAL&_busy_timeout=5000")
	default:
		dialector = postgres.Open(databaseURL)
	}

	db, err := Open(dialector, config)
	if err != nil {
		return nil, err
	}

	if inMemory {
		// every new connection to ":memory:" is a separate, empty database
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to get database handle: %w", err)
		}
		sqlDB.SetMaxOpenConns(1)
	}

	return db, nil
}

// Open opens a handle on an explicit dialector and verifies it with a ping.
func Open(dialector gorm.Dialector, config *gorm.Config) (*gorm.DB, error) {
	db, err := gorm.Open(dialector, config)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := Ping(context.Background(), db); err != nil {
		return nil, err
	}

	return db, nil
}

func Ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database handle: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}
	return nil
}

func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.Transaction{},
	)
	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	return nil
}

func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database handle: %w", err)
	}
	return sqlDB.Close()
}
