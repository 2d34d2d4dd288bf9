// migrate.go brings the favorites schema up to date at startup.
//
// Schema changes live as paired up/down SQL files under the migrations
// directory (MIGRATIONS_PATH, default "migrations"). golang-migrate records
// the applied version in a schema_migrations table, so restarting the server
// against an already-migrated database is a no-op.
package database

import (
	"errors"
	"fmt"
	"log"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file" // file:// source for the SQL files
)

// RunMigrations applies any pending schema migrations from migrationsPath.
func (db *DB) RunMigrations(migrationsPath string) error {
	driver, err := postgres.WithInstance(db.DB.DB, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("failed to create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance("file://"+migrationsPath, "postgres", driver)
	if err != nil {
		return fmt.Errorf("failed to create migrator: %w", err)
	}

	switch err := m.Up(); {
	case errors.Is(err, migrate.ErrNoChange):
		log.Println("📦 Favorites schema already up to date")
	case err != nil:
		return fmt.Errorf("migration failed: %w", err)
	default:
		version, dirty, _ := m.Version()
		log.Printf("📦 Favorites schema migrated to version %d (dirty=%v)", version, dirty)
	}

	return nil
}
