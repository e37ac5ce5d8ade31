package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

var ErrUnsupportedDriver = errors.New("unsupported database driver")

// Repository is the relational source of the session catalog.
type Repository interface {
	ListSessions(ctx context.Context) ([]SessionRow, error)

	CreateSchema(ctx context.Context) error

	InsertSession(ctx context.Context, row SessionRow) error

	// SeedSessions inserts rows in one transaction, but only into an empty
	// table. It returns how many rows were inserted.
	SeedSessions(ctx context.Context, rows []SessionRow) (int, error)

	Close() error
}

// Open connects to the catalog database for the given driver and verifies the
// connection with a ping. The caller owns the returned repository.
func Open(ctx context.Context, driver, dsn string) (Repository, error) {
	var (
		repo Repository
		err  error
	)

	switch driver {
	case DriverSQLite:
		repo, err = NewSQLiteRepository(dsn)
	case DriverPostgres:
		repo, err = NewPostgresRepository(dsn)
	case DriverMySQL:
		repo, err = NewMySQLRepository(dsn)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedDriver, driver)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", driver, err)
	}

	if p, ok := repo.(interface{ ping(context.Context) error }); ok {
		if err := p.ping(ctx); err != nil {
			repo.Close()
			return nil, fmt.Errorf("ping %s: %w", driver, err)
		}
	}

	return repo, nil
}

// sqlRepository holds the queries shared by every driver. Only the schema and
// the placeholder style differ between dialects.
type sqlRepository struct {
	db     *sql.DB
	schema string
	insert string
}

func (r *sqlRepository) ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

func (r *sqlRepository) CreateSchema(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, r.schema)
	return err
}

func (r *sqlRepository) InsertSession(ctx context.Context, row SessionRow) error {
	_, err := r.db.ExecContext(
		ctx,
		r.insert,
		row.Title,
		row.Duration,
		row.Type,
		row.Description,
	)

	return err
}

func (r *sqlRepository) SeedSessions(ctx context.Context, rows []SessionRow) (int, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	var existing int
	if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM sessions`).Scan(&existing); err != nil {
		return 0, fmt.Errorf("count sessions: %w", err)
	}
	if existing > 0 {
		return 0, nil
	}

	for _, row := range rows {
		if _, err := tx.ExecContext(ctx, r.insert, row.Title, row.Duration, row.Type, row.Description); err != nil {
			return 0, fmt.Errorf("insert %q: %w", row.Title, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return len(rows), nil
}

func (r *sqlRepository) ListSessions(ctx context.Context) ([]SessionRow, error) {
	query := `
		SELECT id, title, duration, type, description
		FROM sessions
		ORDER BY id
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanSessions(rows)
}

func (r *sqlRepository) Close() error {
	return r.db.Close()
}

func scanSessions(rows *sql.Rows) ([]SessionRow, error) {
	var out []SessionRow

	for rows.Next() {
		var row SessionRow
		var description sql.NullString

		err := rows.Scan(
			&row.ID,
			&row.Title,
			&row.Duration,
			&row.Type,
			&description,
		)
		if err != nil {
			return nil, err
		}

		row.Description = description.String
		out = append(out, row)
	}

	return out, rows.Err()
}
