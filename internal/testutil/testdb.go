package testutil

import (
	"database/sql"
	"testing"

	"github.com/danielbarros/scrumcore/internal/db"
)

// NewTestDB opens a fresh in-memory SQLite database, fully migrated, and
// closes it when the test ends. Every test gets its own database.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := db.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("opening test database: %v", err)
	}
	t.Cleanup(func() { database.Close() })
	return database
}

// NewTestUoW wraps the test database in a UnitOfWork for service tests.
func NewTestUoW(database *sql.DB) db.UnitOfWork {
	return db.NewSQLiteUnitOfWork(database)
}
