package config

import (
	"context"
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
)

// App holds core runtime configuration shared across services.
type App struct {
	Name                    string        `env:"APP_NAME" envDefault:"studydrill"`
	Env                     string        `env:"APP_ENV" envDefault:"development"`
	HTTPAddr                string        `env:"HTTP_ADDR" envDefault:"0.0.0.0:8080"`
	GracefulShutdownTimeout time.Duration `env:"GRACEFUL_SHUTDOWN_SECONDS" envDefault:"20s"`

	Postgres Postgres
	Ingest   Ingest
	Practice Practice
}

// Postgres captures connection info for the SQL database.
type Postgres struct {
	Host     string `env:"PG_HOST,notEmpty"`
	Port     int    `env:"PG_PORT" envDefault:"5432"`
	User     string `env:"PG_USER,notEmpty"`
	Password string `env:"PG_PASSWORD,notEmpty"`
	Database string `env:"PG_DATABASE,notEmpty"`
	SSLMode  string `env:"PG_SSL_MODE" envDefault:"disable"`
}

// Ingest governs spreadsheet import behavior.
type Ingest struct {
	// WorkbookPaths is tried in order on startup when the store is empty.
	WorkbookPaths []string `env:"INGEST_WORKBOOK_PATHS" envSeparator:"," envDefault:"questions.xlsx,qa.xlsx"`
	AutoLoad      bool     `env:"INGEST_AUTO_LOAD" envDefault:"true"`
}

// Practice groups question-selection and stats defaults.
type Practice struct {
	MostMissedDefault int `env:"MOST_MISSED_DEFAULT_LIMIT" envDefault:"10"`
	MostMissedMax     int `env:"MOST_MISSED_MAX_LIMIT" envDefault:"50"`
}

// Load parses environment variables into App config.
func Load(ctx context.Context) (*App, error) {
	cfg := &App{}
	if err := env.ParseWithOptions(cfg, env.Options{RequiredIfNoDef: true}); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}
