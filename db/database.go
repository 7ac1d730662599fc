package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// ErrClosed is returned by operations on a closed Database.
var ErrClosed = errors.New("db: database connection is closed")

// Database owns the ledger connection and its schema.
//
// Usage:
//
//	ledger, err := db.Open("icons.db")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer ledger.Close()
type Database struct {
	db   *sql.DB
	path string
	mu   sync.RWMutex
}

// NewDatabase opens the database at path without migrating it. Parent
// directories are created if needed.
func NewDatabase(path string) (*Database, error) {
	if path == "" {
		return nil, fmt.Errorf("database path is required")
	}

	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory %s: %w", dir, err)
		}
	}

	conn, err := NewSQLiteConnectionWithDefaults(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create database connection: %w", err)
	}
	return &Database{db: conn, path: path}, nil
}

// Open opens the database at path and applies pending migrations.
func Open(path string) (*Database, error) {
	d, err := NewDatabase(path)
	if err != nil {
		return nil, err
	}
	if err := d.Migrate(); err != nil {
		d.Close()
		return nil, err
	}
	return d, nil
}

// Migrate applies pending migrations. Safe to call repeatedly.
// golang-migrate closes the connection it is given, so migrations run on a
// separate connection.
func (d *Database) Migrate() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := MigrateUpFromPath(d.path); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	return nil
}

// Path returns the database file path.
func (d *Database) Path() string {
	return d.path
}

// Close closes the connection. Calling Close twice is a no-op.
func (d *Database) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.db == nil {
		return nil
	}
	if err := d.db.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}
	d.db = nil
	return nil
}

// Ping verifies the connection is alive.
func (d *Database) Ping(ctx context.Context) error {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.db == nil {
		return ErrClosed
	}
	return d.db.PingContext(ctx)
}

// ExecContext executes a statement without returning rows.
func (d *Database) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.db == nil {
		return nil, ErrClosed
	}
	return d.db.ExecContext(ctx, query, args...)
}

// QueryContext executes a query that returns rows.
func (d *Database) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.db == nil {
		return nil, ErrClosed
	}
	return d.db.QueryContext(ctx, query, args...)
}

// QueryRowContext executes a query that returns at most one row.
func (d *Database) QueryRowContext(ctx context.Context, query string, args ...any) (*sql.Row, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.db == nil {
		return nil, ErrClosed
	}
	return d.db.QueryRowContext(ctx, query, args...), nil
}
