package helper

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/babytracker/babytracker/config"
	"github.com/babytracker/babytracker/eventstore/sqlengine"
)

// GivenMigratedSQLiteDB opens a fresh sqlite file below t.TempDir and applies the migrations.
func GivenMigratedSQLiteDB(t testing.TB) *sql.DB {
	t.Helper()

	db, err := config.SQLiteDB(context.Background(), filepath.Join(t.TempDir(), "care.db"))
	require.NoError(t, err, "error opening sqlite in test setup")

	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, sqlengine.Migrate(context.Background(), db, sqlengine.DialectSQLite), "error migrating sqlite in test setup")

	return db
}

// GivenSQLiteEventStore returns an EventStore on a fresh migrated sqlite database.
func GivenSQLiteEventStore(t testing.TB, options ...sqlengine.Option) (sqlengine.EventStore, *sql.DB) {
	t.Helper()

	db := GivenMigratedSQLiteDB(t)

	options = append([]sqlengine.Option{sqlengine.WithDialect(sqlengine.DialectSQLite)}, options...)
	es, err := sqlengine.NewEventStoreFromSQLDB(db, options...)
	require.NoError(t, err, "error creating event store in test setup")

	return es, db
}

// CleanUp empties the care_events table.
func CleanUp(t testing.TB, db *sql.DB) {
	t.Helper()

	_, err := db.ExecContext(context.Background(), "DELETE FROM care_events")
	require.NoError(t, err, "error cleaning up the care_events table")
}
