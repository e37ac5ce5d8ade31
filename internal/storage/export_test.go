package storage

import (
	"context"
	"testing"
)

// SQLiteRepositoryForTest returns an in-memory repository holding one row
// whose description column is NULL.
func SQLiteRepositoryForTest(t *testing.T) Repository {
	t.Helper()

	repo, err := NewSQLiteRepository(":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { repo.Close() })

	ctx := context.Background()
	if err := repo.CreateSchema(ctx); err != nil {
		t.Fatalf("create schema: %v", err)
	}
	if _, err := repo.db.ExecContext(ctx, `INSERT INTO sessions (title, duration, type, description) VALUES ('Silent Sit', 3, 'GUIDED', NULL)`); err != nil {
		t.Fatalf("insert: %v", err)
	}

	return repo
}

// ExecForTest runs a statement directly on a sqlite repository.
func ExecForTest(t *testing.T, repo Repository, query string) {
	t.Helper()

	sqlite, ok := repo.(*SQLiteRepository)
	if !ok {
		t.Fatalf("not a sqlite repository: %T", repo)
	}
	if _, err := sqlite.db.ExecContext(context.Background(), query); err != nil {
		t.Fatalf("exec: %v", err)
	}
}
