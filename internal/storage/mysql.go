package storage

import (
	"database/sql"
	"time"

	"github.com/go-sql-driver/mysql"
)

type MySQLRepository struct {
	sqlRepository
}

// NewMySQLRepository accepts a go-sql-driver DSN such as
// "root:password@tcp(localhost:3306)/meditation_app".
func NewMySQLRepository(dsn string) (*MySQLRepository, error) {
	cfg, err := mysql.ParseDSN(dsn)
	if err != nil {
		return nil, err
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 5 * time.Second
	}

	connector, err := mysql.NewConnector(cfg)
	if err != nil {
		return nil, err
	}

	return &MySQLRepository{sqlRepository{
		db: sql.OpenDB(connector),
		schema: `
		CREATE TABLE IF NOT EXISTS sessions (
			id INT AUTO_INCREMENT PRIMARY KEY,
			title VARCHAR(255) NOT NULL,
			duration INT NOT NULL,
			type VARCHAR(32) NOT NULL,
			description TEXT
		)
		`,
		insert: `
		INSERT INTO sessions (title, duration, type, description)
		VALUES (?, ?, ?, ?)
		`,
	}}, nil
}
