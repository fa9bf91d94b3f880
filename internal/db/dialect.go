package db

import (
	"fmt"

	sq "github.com/Masterminds/squirrel"
	// registers the "pgx" database/sql driver
	_ "github.com/jackc/pgx/v5/stdlib"
	// registers the "sqlite3" database/sql driver
	_ "github.com/mattn/go-sqlite3"

	"github.com/SergeyParamoshkin/gamereviews/internal/config"
)

// Dialect covers the differences between the supported databases.
type Dialect interface {
	// Name is reported in metrics as db.system.
	Name() string
	// DriverName is the database/sql driver to open.
	DriverName() string
	PlaceholderFormat() sq.PlaceholderFormat
	// SerialKey is the column definition of an auto increment primary key.
	SerialKey() string
}

var (
	Postgres Dialect = postgresDialect{}
	SQLite   Dialect = sqliteDialect{}
)

type postgresDialect struct{}

func (postgresDialect) Name() string                            { return "postgresql" }
func (postgresDialect) DriverName() string                      { return "pgx" }
func (postgresDialect) PlaceholderFormat() sq.PlaceholderFormat { return sq.Dollar }
func (postgresDialect) SerialKey() string                       { return "SERIAL PRIMARY KEY" }

type sqliteDialect struct{}

func (sqliteDialect) Name() string                            { return "sqlite" }
func (sqliteDialect) DriverName() string                      { return "sqlite3" }
func (sqliteDialect) PlaceholderFormat() sq.PlaceholderFormat { return sq.Question }
func (sqliteDialect) SerialKey() string                       { return "INTEGER PRIMARY KEY AUTOINCREMENT" }

// DialectFor maps a configured driver name to its dialect.
func DialectFor(driver string) (Dialect, error) {
	switch driver {
	case config.DriverPostgres, "pgx":
		return Postgres, nil
	case config.DriverSQLite, "sqlite":
		return SQLite, nil
	default:
		return nil, fmt.Errorf("unsupported db driver %q", driver)
	}
}
