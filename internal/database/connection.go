package database

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"
	_ "modernc.org/sqlite"
)

// Supported drivers. "sqlite3" needs cgo, "sqlite" is the pure Go build.
const (
	DriverSQLite3  = "sqlite3"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// DB wraps the sqlx handle with the dialect it was opened with
type DB struct {
	*sqlx.DB
	dialect dialect
}

type dialect struct {
	primaryKey string
	timestamp  string
	bigint     string
}

var dialects = map[string]dialect{
	DriverSQLite3:  {primaryKey: "INTEGER PRIMARY KEY AUTOINCREMENT", timestamp: "TIMESTAMP", bigint: "INTEGER"},
	DriverSQLite:   {primaryKey: "INTEGER PRIMARY KEY AUTOINCREMENT", timestamp: "TIMESTAMP", bigint: "INTEGER"},
	DriverPostgres: {primaryKey: "BIGSERIAL PRIMARY KEY", timestamp: "TIMESTAMPTZ", bigint: "BIGINT"},
}

// Connect establishes a connection to the database
func Connect(ctx context.Context, driver, dsn string) (*DB, error) {
	d, ok := dialects[driver]
	if !ok {
		return nil, errors.Errorf("unsupported database driver %q", driver)
	}

	if driver != DriverPostgres {
		// Create data directory if it doesn't exist
		if path := sqlitePath(dsn); path != "" {
			if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
				return nil, errors.Wrap(err, "failed to create data directory")
			}
		}
		if driver == DriverSQLite && !strings.Contains(dsn, "_time_format") {
			dsn = withParam(dsn, "_time_format=sqlite")
		}
	}

	db, err := sqlx.ConnectContext(ctx, driver, dsn)
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to database")
	}

	if driver == DriverPostgres {
		db.SetMaxOpenConns(10)
		db.SetMaxIdleConns(5)
		db.SetConnMaxLifetime(time.Hour)
	} else {
		if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys = ON"); err != nil {
			db.Close()
			return nil, errors.Wrap(err, "failed to enable foreign keys")
		}
		// SQLite doesn't support multiple writers, and an in-memory database
		// lives only as long as its single connection.
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
		db.SetConnMaxLifetime(0)
	}

	return &DB{DB: db, dialect: d}, nil
}

func sqlitePath(dsn string) string {
	path := strings.TrimPrefix(dsn, "file:")
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path = path[:i]
	}
	if path == "" || strings.Contains(path, ":memory:") || strings.HasPrefix(path, "mode=memory") {
		return ""
	}
	return path
}

func withParam(dsn, param string) string {
	if strings.Contains(dsn, "?") {
		return dsn + "&" + param
	}
	return dsn + "?" + param
}

// Migrate creates the tables and indexes that don't exist yet
func (db *DB) Migrate(ctx context.Context) error {
	for _, stmt := range schema {
		ddl := stmt.ddl
		if strings.Contains(ddl, "%[") {
			ddl = fmt.Sprintf(ddl, db.dialect.primaryKey, db.dialect.timestamp, db.dialect.bigint)
		}
		if _, err := db.ExecContext(ctx, ddl); err != nil {
			return errors.Wrapf(err, "failed to create %s", stmt.name)
		}
	}
	return nil
}

// inTx runs fn in a transaction, rolling back when it fails
func (db *DB) inTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "failed to start transaction")
	}
	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return errors.Wrap(err, "failed to commit transaction")
	}
	return nil
}
