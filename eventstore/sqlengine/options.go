package sqlengine

import (
	"github.com/babytracker/babytracker/eventstore"
)

// Option defines a functional option for configuring EventStore.
type Option func(*EventStore) error

// WithTableName sets the table name for the EventStore.
// The table must have the columns of the care_events table that Migrate creates.
func WithTableName(tableName string) Option {
	return func(es *EventStore) error {
		if tableName == "" {
			return eventstore.ErrEmptyEventsTableName
		}

		es.eventTableName = tableName

		return nil
	}
}

// WithLogger sets the logger for the EventStore.
//
// Debug level: SQL statements with execution timing
// Info level: added, updated and deleted events, query result counts
// Warn level: failures while closing rows
// Error level: failures that make an operation fail.
func WithLogger(logger eventstore.Logger) Option {
	return func(es *EventStore) error {
		es.logger = logger
		return nil
	}
}

// WithDialect selects the SQL dialect the statements are rendered in, DialectPostgres or DialectSQLite.
func WithDialect(dialect string) Option {
	return func(es *EventStore) error {
		if !isSupportedDialect(dialect) {
			return eventstore.ErrUnsupportedDialect
		}

		es.dialect = dialect

		return nil
	}
}

func isSupportedDialect(dialect string) bool {
	return dialect == DialectPostgres || dialect == DialectSQLite
}
