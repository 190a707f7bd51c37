package database

import (
	"io/fs"
	"testing"

	"github.com/jmoiron/sqlx"
)

// NewTestDB opens a private in-memory SQLite database with the migrations in fsys applied.
func NewTestDB(t testing.TB, fsys fs.FS, root string) *sqlx.DB {
	t.Helper()

	cfg := Config{Driver: DriverSQLite, Path: ":memory:"}
	if err := cfg.Normalize(""); err != nil {
		t.Fatalf("normalizing test database config: %v", err)
	}
	db, err := Connect(cfg)
	if err != nil {
		t.Fatalf("opening test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := RunMigrations(db, cfg, fsys, root); err != nil {
		t.Fatalf("migrating test database: %v", err)
	}
	return db
}
