package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"go-simpler.org/env"
)

type Config struct {
	DBDriver       string        `env:"MEDITATE_DB_DRIVER" default:"mysql"`
	DatabaseURL    string        `env:"MEDITATE_DATABASE_URL" default:"root:password@tcp(localhost:3306)/meditation_app"`
	CatalogTimeout time.Duration `env:"MEDITATE_CATALOG_TIMEOUT" default:"5s"`
	HTTPAddr       string        `env:"MEDITATE_HTTP_ADDR" default:":8080"`
	RunRetention   time.Duration `env:"MEDITATE_RUN_RETENTION" default:"1h"`
	LogLevel       string        `env:"LOG_LEVEL" default:"info"`
	LogFormat      string        `env:"LOG_FORMAT" default:"text"`
}

// Load reads an optional .env file and then the process environment.
// It reports whether a .env file was found so the caller can log it once a
// logger exists.
func Load() (*Config, bool, error) {
	dotenv := godotenv.Load() == nil

	var cfg Config
	if err := env.Load(&cfg, nil); err != nil {
		return nil, dotenv, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, dotenv, err
	}

	return &cfg, dotenv, nil
}

func (c *Config) Validate() error {
	if c.CatalogTimeout <= 0 {
		return errors.New("MEDITATE_CATALOG_TIMEOUT must be positive")
	}
	if c.RunRetention <= 0 {
		return errors.New("MEDITATE_RUN_RETENTION must be positive")
	}
	if c.HTTPAddr == "" {
		return errors.New("MEDITATE_HTTP_ADDR is required")
	}
	return nil
}
