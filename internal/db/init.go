// Package db opens the PostgreSQL connection and keeps the schema current.
package db

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
)

// InitPostgres opens and verifies the database connection, then brings the
// schema up to date.
func InitPostgres(dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	if err := runMigrations(db); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return db, nil
}
