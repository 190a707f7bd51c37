package store

import (
	"testing"

	"github.com/m3rciful/petshop/core/database"
)

// NewTestStore returns a Store over a migrated in-memory SQLite database.
func NewTestStore(t testing.TB) *Store {
	t.Helper()
	return New(database.NewTestDB(t, Migrations, MigrationsRoot))
}
