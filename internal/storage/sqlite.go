package storage

import (
	"database/sql"

	_ "github.com/mattn/go-sqlite3"
)

type SQLiteRepository struct {
	sqlRepository
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	db, err := sql.Open(DriverSQLite, dbPath)
	if err != nil {
		return nil, err
	}

	// a second connection to ":memory:" would see an empty database
	db.SetMaxOpenConns(1)

	return &SQLiteRepository{sqlRepository{
		db: db,
		schema: `
		CREATE TABLE IF NOT EXISTS sessions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			title TEXT NOT NULL,
			duration INTEGER NOT NULL,
			type TEXT NOT NULL,
			description TEXT
		);
		`,
		insert: `
		INSERT INTO sessions (title, duration, type, description)
		VALUES (?, ?, ?, ?)
		`,
	}}, nil
}
