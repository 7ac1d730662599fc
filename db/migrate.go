package db

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// SchemaVersion is the newest migration shipped with the binary.
const SchemaVersion = 1

// MigrateUp applies all pending migrations. ErrNoChange is not an error.
//
// IMPORTANT: the migrator takes ownership of conn and closes it.
func MigrateUp(conn *sql.DB) error {
	m, err := newMigrator(conn)
	if err != nil {
		return fmt.Errorf("failed to create migrator: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	return nil
}

// MigrateUpFromPath applies all pending migrations on its own connection.
func MigrateUpFromPath(dbPath string) error {
	conn, err := NewSQLiteConnectionWithDefaults(dbPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	return MigrateUp(conn)
}

// MigrationVersionFromPath returns the applied version and dirty flag.
// Version 0 means no migration has run.
func MigrationVersionFromPath(dbPath string) (uint, bool, error) {
	conn, err := NewSQLiteConnectionWithDefaults(dbPath)
	if err != nil {
		return 0, false, fmt.Errorf("failed to open database: %w", err)
	}
	m, err := newMigrator(conn)
	if err != nil {
		return 0, false, fmt.Errorf("failed to create migrator: %w", err)
	}
	defer m.Close()

	version, dirty, err := m.Version()
	if err != nil {
		if errors.Is(err, migrate.ErrNilVersion) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("failed to get migration version: %w", err)
	}
	return version, dirty, nil
}

// newMigrator wires the embedded migrations to conn.
// The returned migrator owns conn; m.Close() closes it.
func newMigrator(conn *sql.DB) (*migrate.Migrate, error) {
	if conn == nil {
		return nil, errors.New("database connection is required")
	}

	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return nil, fmt.Errorf("failed to load embedded migrations: %w", err)
	}

	driver, err := sqlite.WithInstance(conn, &sqlite.Config{DatabaseName: "main"})
	if err != nil {
		src.Close()
		return nil, fmt.Errorf("failed to create sqlite driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, "sqlite", driver)
	if err != nil {
		return nil, fmt.Errorf("failed to create migrate instance: %w", err)
	}
	return m, nil
}
