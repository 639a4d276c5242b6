package store

import (
	"fmt"

	"sentient-journal/internal/model"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Embedded is the single-process file-based backend. It has no access
// control of its own; every query in gormStore carries the user_id filter.
type Embedded struct {
	*gormStore
}

// OpenEmbedded opens (creating if needed) the SQLite database at path and
// bootstraps the schema. ":memory:" is accepted for tests.
func OpenEmbedded(path string) (*Embedded, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// SQLite allows one writer at a time; a single pooled connection keeps
	// concurrent request handlers from tripping over SQLITE_BUSY.
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("sqlite pool: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&model.User{}, &model.JournalEntry{}); err != nil {
		return nil, fmt.Errorf("migrate schema: %w", err)
	}

	return &Embedded{gormStore: &gormStore{db: db}}, nil
}
