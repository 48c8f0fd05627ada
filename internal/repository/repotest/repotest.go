// Package repotest provides an in-memory SQLite database for tests.
package repotest

import (
	"context"
	"testing"

	"github.com/Navneet-kaur7/todo-app/internal/config"
	"github.com/Navneet-kaur7/todo-app/internal/repository"
)

// NewDB opens a migrated in-memory SQLite database that is closed when the test ends.
func NewDB(t testing.TB) *repository.DB {
	t.Helper()

	db, err := repository.NewDB(context.Background(), config.Database{
		Driver: "sqlite",
		DSN:    "file::memory:?_pragma=foreign_keys(1)",
	})
	if err != nil {
		t.Fatalf("failed to open sqlite in-memory db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := repository.Migrate(context.Background(), db); err != nil {
		t.Fatalf("failed to migrate schema: %v", err)
	}

	return db
}
