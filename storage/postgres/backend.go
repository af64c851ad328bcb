package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/lib/pq"
)

const (
	defaultMaxOpenConns = 10
	defaultMaxIdleConns = 5
)

// Backend wraps a PostgreSQL connection pool and provides low-level access
// for the repositories in this package.
type Backend struct {
	db     *sql.DB
	logger *slog.Logger
}

// OpenBackend opens a PostgreSQL connection pool for the given DSN and
// verifies connectivity with a ping.
func OpenBackend(ctx context.Context, dsn string) (*Backend, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres: %w", err)
	}

	db.SetMaxOpenConns(defaultMaxOpenConns)
	db.SetMaxIdleConns(defaultMaxIdleConns)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(5 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping postgres: %w", err)
	}

	return NewBackend(db), nil
}

// NewBackend wraps an existing database handle. Used by tests to inject a
// mocked *sql.DB.
func NewBackend(db *sql.DB) *Backend {
	return &Backend{
		db:     db,
		logger: slog.Default().With("component", "postgres"),
	}
}

// Ping tests the database connection.
func (b *Backend) Ping(ctx context.Context) error {
	return b.db.PingContext(ctx)
}

// Close closes the connection pool.
func (b *Backend) Close() error {
	if b.db != nil {
		return b.db.Close()
	}
	return nil
}

// DB returns the underlying *sql.DB.
func (b *Backend) DB() *sql.DB {
	return b.db
}
