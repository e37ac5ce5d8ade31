package storage_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hperssn/meditate/internal/domain"
	"github.com/hperssn/meditate/internal/storage"
)

func newMemoryRepo(t *testing.T) storage.Repository {
	t.Helper()

	repo, err := storage.Open(context.Background(), storage.DriverSQLite, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })

	require.NoError(t, repo.CreateSchema(context.Background()))
	return repo
}

func TestSQLiteRepository_ListEmpty(t *testing.T) {
	repo := newMemoryRepo(t)

	rows, err := repo.ListSessions(context.Background())
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestSQLiteRepository_InsertAndListKeepsOrder(t *testing.T) {
	repo := newMemoryRepo(t)
	ctx := context.Background()

	want := []storage.SessionRow{
		{Title: "Morning Calm", Duration: 10, Type: "GUIDED", Description: "Relax and focus your mind"},
		{Title: "Box Breathing", Duration: 4, Type: "BREATHING", Description: ""},
		{Title: "Body Scan", Duration: 20, Type: "GUIDED", Description: "Head to toe"},
	}
	for _, row := range want {
		require.NoError(t, repo.InsertSession(ctx, row))
	}

	got, err := repo.ListSessions(ctx)
	require.NoError(t, err)
	require.Len(t, got, len(want))

	for i := range want {
		assert.Equal(t, int64(i+1), got[i].ID)
		assert.Equal(t, want[i].Title, got[i].Title)
		assert.Equal(t, want[i].Duration, got[i].Duration)
		assert.Equal(t, want[i].Type, got[i].Type)
		assert.Equal(t, want[i].Description, got[i].Description)
	}
}

func TestSQLiteRepository_NullDescription(t *testing.T) {
	repo := storage.SQLiteRepositoryForTest(t)

	rows, err := repo.ListSessions(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "", rows[0].Description)
}

func TestSQLiteRepository_ListWithoutSchemaFails(t *testing.T) {
	repo, err := storage.Open(context.Background(), storage.DriverSQLite, ":memory:")
	require.NoError(t, err)
	defer repo.Close()

	_, err = repo.ListSessions(context.Background())
	assert.Error(t, err)
}

func TestOpen_UnsupportedDriver(t *testing.T) {
	_, err := storage.Open(context.Background(), "oracle", "whatever")
	assert.ErrorIs(t, err, storage.ErrUnsupportedDriver)
}

func TestOpen_BadMySQLDSN(t *testing.T) {
	_, err := storage.Open(context.Background(), storage.DriverMySQL, "not a dsn")
	assert.Error(t, err)
}

func TestSessionRow_ToDomain(t *testing.T) {
	rec, err := storage.SessionRow{ID: 1, Title: "Deep Breathing", Duration: 5, Type: "BREATHING", Description: "4-7-8 technique"}.ToDomain()
	require.NoError(t, err)
	assert.Equal(t, domain.SessionRecord{Title: "Deep Breathing", DurationMinutes: 5, Kind: domain.KindBreathing, Description: "4-7-8 technique"}, rec)

	_, err = storage.SessionRow{ID: 2, Title: "Broken", Duration: 0, Type: "GUIDED"}.ToDomain()
	assert.ErrorIs(t, err, domain.ErrInvalidDuration)
}

func TestFromDomainSession(t *testing.T) {
	row := storage.FromDomainSession(domain.SessionRecord{Title: "Sleep Meditation", DurationMinutes: 15, Kind: domain.KindGuided, Description: "Perfect for bedtime"})

	assert.Equal(t, "GUIDED", row.Type)
	assert.Equal(t, 15, row.Duration)

	back, err := row.ToDomain()
	require.NoError(t, err)
	assert.Equal(t, domain.KindGuided, back.Kind)
}

func seedRows() []storage.SessionRow {
	return []storage.SessionRow{
		{Title: "Morning Calm", Duration: 10, Type: "GUIDED", Description: "Relax and focus your mind"},
		{Title: "Box Breathing", Duration: 4, Type: "BREATHING"},
	}
}

func TestSQLiteRepository_SeedSkipsFilledTable(t *testing.T) {
	repo := newMemoryRepo(t)
	ctx := context.Background()

	n, err := repo.SeedSessions(ctx, seedRows())
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	n, err = repo.SeedSessions(ctx, seedRows())
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	rows, err := repo.ListSessions(ctx)
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}

func TestSQLiteRepository_SeedRollsBackOnFailure(t *testing.T) {
	repo := newMemoryRepo(t)
	ctx := context.Background()

	storage.ExecForTest(t, repo, `CREATE TRIGGER reject_broken BEFORE INSERT ON sessions
		WHEN NEW.title = 'Broken'
		BEGIN SELECT RAISE(ABORT, 'broken row'); END`)

	rows := append(seedRows(), storage.SessionRow{Title: "Broken", Duration: 1, Type: "GUIDED"})
	_, err := repo.SeedSessions(ctx, rows)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `insert "Broken"`)

	got, err := repo.ListSessions(ctx)
	require.NoError(t, err)
	assert.Empty(t, got, "earlier rows of the failed seed are rolled back")
}
