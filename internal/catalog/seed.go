package catalog

import (
	"context"
	"fmt"

	"github.com/hperssn/meditate/internal/storage"
)

// Seed creates the sessions table and fills it with the demo set so a fresh
// database serves the same catalog as the fallback. A table that already
// holds sessions is left alone and Seed reports zero inserted rows.
func Seed(ctx context.Context, repo storage.Repository) (int, error) {
	if err := repo.CreateSchema(ctx); err != nil {
		return 0, fmt.Errorf("create schema: %w", err)
	}

	sessions := FallbackSessions()
	rows := make([]storage.SessionRow, 0, len(sessions))
	for _, s := range sessions {
		rows = append(rows, storage.FromDomainSession(s))
	}

	n, err := repo.SeedSessions(ctx, rows)
	if err != nil {
		return 0, fmt.Errorf("seed sessions: %w", err)
	}
	return n, nil
}
