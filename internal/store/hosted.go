package store

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Hosted is the managed multi-tenant Postgres backend. Row-level security
// policies on users and journal_entries are declared server-side; the
// user_id filters in gormStore are kept anyway so both backends give the
// same visibility guarantee.
type Hosted struct {
	*gormStore
}

// OpenHosted connects to the hosted backend and verifies the connection.
// Schema and RLS policies are managed out-of-band, so there is no migration
// step here.
func OpenHosted(dsn string) (*Hosted, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("postgres pool: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	return &Hosted{gormStore: &gormStore{db: db, classify: classifyPostgres}}, nil
}

// classifyPostgres maps driver errors to sentinels by SQLSTATE instead of
// pattern-matching message text.
func classifyPostgres(err error) error {
	var pg *pgconn.PgError
	if !errors.As(err, &pg) {
		return nil
	}
	switch {
	case pg.Code == "23505":
		return ErrConflict
	case strings.HasPrefix(pg.Code, "53"):
		// Class 53: insufficient resources (connection caps, throttling).
		return ErrRateLimited
	}
	return nil
}
