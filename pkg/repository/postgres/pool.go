// Package postgres contains PostgreSQL implementations of repository interfaces.
package postgres

import (
	"context"
	"errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxPool is the part of a connection pool the repositories use. It is
// implemented by *pgxpool.Pool and pgxmock.PgxPoolIface.
type PgxPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Close()
}

// DB wraps a pool so repositories can be built over a mock in tests.
type DB struct{ Pool PgxPool }

// NewDB wraps an already connected pool.
func NewDB(pool *pgxpool.Pool) *DB { return &DB{Pool: pool} }

// Close closes the underlying pool.
func (db *DB) Close() { db.Pool.Close() }

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// isUniqueViolation reports whether the error is a unique constraint violation.
func isUniqueViolation(err error) bool {
	var pg *pgconn.PgError
	return errors.As(err, &pg) && pg.Code == "23505"
}
