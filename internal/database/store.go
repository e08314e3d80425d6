package database

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/example/studytrack/internal/core"
)

// Store is the relational implementation of the tracker's persistence.
// Every query that touches user data is scoped by the owning user.
type Store struct {
	db *DB
}

// NewStore creates a store on top of an open database
func NewStore(db *DB) *Store {
	return &Store{db: db}
}

// DB returns the underlying database handle
func (s *Store) DB() *DB {
	return s.db
}

// insert runs an INSERT and returns the generated id
func (s *Store) insert(ctx context.Context, q sqlx.QueryerContext, query string, args ...interface{}) (int64, error) {
	var id int64
	if err := q.QueryRowxContext(ctx, s.db.Rebind(query+" RETURNING id"), args...).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

// execOne runs a statement that must touch at least one row
func (s *Store) execOne(ctx context.Context, e sqlx.ExecerContext, query string, args ...interface{}) error {
	result, err := e.ExecContext(ctx, s.db.Rebind(query), args...)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "failed to get rows affected")
	}
	if rows == 0 {
		return core.ErrNotFound
	}
	return nil
}

// get loads one row into dest and reports whether it was found
func (s *Store) get(ctx context.Context, dest interface{}, query string, args ...interface{}) (bool, error) {
	err := s.db.GetContext(ctx, dest, s.db.Rebind(query), args...)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *Store) selectRows(ctx context.Context, dest interface{}, query string, args ...interface{}) error {
	return s.db.SelectContext(ctx, dest, s.db.Rebind(query), args...)
}

func (s *Store) count(ctx context.Context, query string, args ...interface{}) (int, error) {
	var n int
	if err := s.db.GetContext(ctx, &n, s.db.Rebind(query), args...); err != nil {
		return 0, err
	}
	return n, nil
}

// cleanup is one statement of a cascading delete
type cleanup struct {
	what  string
	query string
	args  []interface{}
}

// runCleanup executes the statements in order inside tx
func (s *Store) runCleanup(ctx context.Context, tx *sqlx.Tx, steps []cleanup) error {
	for _, st := range steps {
		if _, err := tx.ExecContext(ctx, s.db.Rebind(st.query), st.args...); err != nil {
			return errors.Wrapf(err, "failed to %s", st.what)
		}
	}
	return nil
}
