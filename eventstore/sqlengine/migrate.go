package sqlengine

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"io/fs"

	"github.com/pressly/goose/v3"

	"github.com/babytracker/babytracker/eventstore"
)

//go:embed migrations
var migrationsFS embed.FS

// Migrate creates or upgrades the care_events table on db for the given dialect.
//
// goose needs a *sql.DB. With a pgx pool, open one with stdlib.OpenDBFromPool.
func Migrate(ctx context.Context, db *sql.DB, dialect string) error {
	if db == nil {
		return eventstore.ErrNilDatabaseConnection
	}

	var gooseDialect goose.Dialect
	var dir string

	switch dialect {
	case DialectPostgres:
		gooseDialect, dir = goose.DialectPostgres, "migrations/postgres"
	case DialectSQLite:
		gooseDialect, dir = goose.DialectSQLite3, "migrations/sqlite"
	default:
		return eventstore.ErrUnsupportedDialect
	}

	migrations, err := fs.Sub(migrationsFS, dir)
	if err != nil {
		return errors.Join(eventstore.ErrMigrationFailed, err)
	}

	provider, err := goose.NewProvider(gooseDialect, db, migrations)
	if err != nil {
		return errors.Join(eventstore.ErrMigrationFailed, err)
	}

	if _, err := provider.Up(ctx); err != nil {
		return errors.Join(eventstore.ErrMigrationFailed, err)
	}

	return nil
}
