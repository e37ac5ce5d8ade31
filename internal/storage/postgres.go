package storage

import (
	"database/sql"

	_ "github.com/lib/pq"
)

type PostgresRepository struct {
	sqlRepository
}

func NewPostgresRepository(connStr string) (*PostgresRepository, error) {
	db, err := sql.Open(DriverPostgres, connStr)
	if err != nil {
		return nil, err
	}

	return &PostgresRepository{sqlRepository{
		db: db,
		schema: `
		CREATE TABLE IF NOT EXISTS sessions (
			id SERIAL PRIMARY KEY,
			title TEXT NOT NULL,
			duration INTEGER NOT NULL,
			type TEXT NOT NULL,
			description TEXT
		);
		`,
		insert: `
		INSERT INTO sessions (title, duration, type, description)
		VALUES ($1, $2, $3, $4)
		`,
	}}, nil
}
