// Package store persists the catalog, the user directory, and the purchase ledger.
// Queries use "?" placeholders and are rebound for the connected driver.
package store

import (
	"context"
	"database/sql"
	"embed"
	"errors"

	"github.com/jmoiron/sqlx"
)

// Migrations holds one schema directory per driver under MigrationsRoot.
//
//go:embed migrations
var Migrations embed.FS

// MigrationsRoot is the directory inside Migrations passed to the migrator.
const MigrationsRoot = "migrations"

// Store wraps a sqlx connection pool. Every method runs a single auto-committed statement.
type Store struct {
	db *sqlx.DB
}

// New wraps db.
func New(db *sqlx.DB) *Store {
	return &Store{db: db}
}

// DB exposes the underlying pool.
func (s *Store) DB() *sqlx.DB {
	return s.db
}

func (s *Store) q(query string) string {
	return s.db.Rebind(query)
}

// getOne runs a single-row query into dest and maps no rows to (false, nil).
func (s *Store) getOne(ctx context.Context, dest any, query string, args ...any) (bool, error) {
	err := s.db.GetContext(ctx, dest, s.q(query), args...)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
