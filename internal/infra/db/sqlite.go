package db

import (
	"fmt"
	"log/slog"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/finsight/backend/config"
)

// NewFallbackConnection opens the local SQLite fallback store. It serves
// reads and writes while PostgreSQL is unreachable so the application
// keeps working offline.
func NewFallbackConnection(cfg *config.FallbackConfig) (*Database, error) {
	db, err := gorm.Open(sqlite.Open(cfg.Path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open fallback store: %w", err)
	}

	slog.Warn("Using local fallback store; data will sync only to this file",
		"path", cfg.Path,
	)

	return &Database{
		db:   db,
		mode: ModeFallback,
	}, nil
}
