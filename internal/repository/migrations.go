package repository

import (
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

const migrationsSource = "file://internal/repository/migrations"

// RunMigrations applies all pending schema migrations. A process that
// died mid-migration leaves the schema_migrations table dirty; that
// state is forced back to the last clean version and the run retried
// once before giving up.
func RunMigrations(databaseURL string) error {
	m, err := migrate.New(migrationsSource, databaseURL)
	if err != nil {
		return fmt.Errorf("create migration instance: %w", err)
	}
	defer m.Close()

	err = m.Up()
	if err == nil || err == migrate.ErrNoChange {
		return nil
	}

	if _, ok := err.(migrate.ErrDirty); ok {
		return recoverDirtyState(m)
	}

	return fmt.Errorf("run migrations: %w", err)
}

func recoverDirtyState(m *migrate.Migrate) error {
	version, dirty, err := m.Version()
	if err != nil {
		return fmt.Errorf("get current migration version: %w", err)
	}

	if !dirty {
		return fmt.Errorf("migrations reported dirty at version %d but state is clean", version)
	}

	forceVersion := int(version) - 1
	if forceVersion < 0 {
		forceVersion = 0
	}

	if err := m.Force(forceVersion); err != nil {
		return fmt.Errorf("force clean migration version %d: %w", forceVersion, err)
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("rerun migrations after dirty recovery: %w", err)
	}

	return nil
}
