package source

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	// Database drivers registered for the supported engines.
	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog"

	"github.com/reconlab/tabdiff/pkg/dataset"
	"github.com/reconlab/tabdiff/pkg/errors"
	"github.com/reconlab/tabdiff/pkg/logging"
)

// defaultPasswordEnvVar names the environment variable consulted when the
// config does not specify one. Passwords never live in config files.
const defaultPasswordEnvVar = "TABDIFF_DB_PASSWORD"

// SQLConfig describes a SQL-backed dataset.
type SQLConfig struct {
	// Engine selects the driver: "mysql", "postgres", or "sqlite3".
	Engine   string `yaml:"engine" json:"engine"`
	Host     string `yaml:"host,omitempty" json:"host,omitempty"`
	Port     int    `yaml:"port,omitempty" json:"port,omitempty"`
	Database string `yaml:"database" json:"database"`
	Username string `yaml:"username,omitempty" json:"username,omitempty"`

	// PasswordEnvVar names the environment variable holding the password.
	PasswordEnvVar string `yaml:"password_env_var,omitempty" json:"password_env_var,omitempty"`

	// Query is the SELECT producing the dataset. When a filter is set, the
	// query must carry exactly one placeholder for the filter value.
	Query string `yaml:"query" json:"query"`
}

// SQLSource loads a dataset from a SQL query.
type SQLSource struct {
	name   string
	cfg    SQLConfig
	filter Filter
	logger zerolog.Logger

	// openDB is swappable for tests.
	openDB func(driver, dsn string) (*sql.DB, error)
}

// NewSQLSource creates a SQL loader after checking the engine is supported.
func NewSQLSource(name string, cfg SQLConfig, filter Filter) (*SQLSource, error) {
	switch cfg.Engine {
	case "mysql", "postgres", "sqlite3":
	default:
		return nil, errors.NewConfigError("source", "unsupported sql engine: "+cfg.Engine, nil)
	}
	if cfg.Query == "" {
		return nil, errors.NewConfigError("source", "sql source requires a query", nil)
	}
	if name == "" {
		name = cfg.Database
	}
	return &SQLSource{
		name:   name,
		cfg:    cfg,
		filter: filter,
		logger: *logging.Default(),
		openDB: sql.Open,
	}, nil
}

// Name returns the source's identity.
func (s *SQLSource) Name() string {
	return s.name
}

// Load runs the configured query and materializes every row as strings.
// NULL columns become null values; the filter value binds as the query's
// single parameter.
func (s *SQLSource) Load(ctx context.Context) (*dataset.Dataset, error) {
	dsn, err := s.dsn()
	if err != nil {
		return nil, err
	}

	db, err := s.openDB(s.cfg.Engine, dsn)
	if err != nil {
		return nil, errors.WrapSource("sql", s.name, err)
	}
	defer db.Close()

	var rows *sql.Rows
	if s.filter.Empty() {
		rows, err = db.QueryContext(ctx, s.cfg.Query)
	} else {
		rows, err = db.QueryContext(ctx, s.cfg.Query, s.filter.Value)
	}
	if err != nil {
		return nil, errors.WrapSource("sql", s.name, err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, errors.WrapSource("sql", s.name, err)
	}

	ds := dataset.New(s.name, columns)
	scanned := make([]sql.NullString, len(columns))
	targets := make([]any, len(columns))
	for i := range scanned {
		targets[i] = &scanned[i]
	}

	for rows.Next() {
		if err := rows.Scan(targets...); err != nil {
			return nil, errors.WrapSource("sql", s.name, err)
		}
		values := make([]dataset.Value, len(columns))
		for i, c := range scanned {
			if c.Valid {
				values[i] = dataset.String(c.String)
			} else {
				values[i] = dataset.Null()
			}
		}
		ds.Append(values...)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.WrapSource("sql", s.name, err)
	}

	s.logger.Info().
		Str("source", s.name).
		Str("engine", s.cfg.Engine).
		Int("rows_loaded", ds.Len()).
		Msg("Loaded SQL dataset")

	return ds, nil
}

// dsn builds the driver connection string. The password comes from the
// environment, never the config file.
func (s *SQLSource) dsn() (string, error) {
	if s.cfg.Engine == "sqlite3" {
		return s.cfg.Database, nil
	}

	envVar := s.cfg.PasswordEnvVar
	if envVar == "" {
		envVar = defaultPasswordEnvVar
	}
	password := os.Getenv(envVar)
	if password == "" {
		return "", errors.NewConfigError("source", "database password not set, expected env var "+envVar, nil)
	}

	switch s.cfg.Engine {
	case "mysql":
		return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s",
			s.cfg.Username, password, s.cfg.Host, s.cfg.Port, s.cfg.Database), nil
	case "postgres":
		return fmt.Sprintf("postgres://%s:%s@%s:%d/%s",
			s.cfg.Username, password, s.cfg.Host, s.cfg.Port, s.cfg.Database), nil
	default:
		return "", errors.NewConfigError("source", "unsupported sql engine: "+s.cfg.Engine, nil)
	}
}
