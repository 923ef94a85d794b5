// Package sqlengine provides a relational implementation of the care event store.
//
// All kinds share one table (care_events) and its identity column, so ids interleave across
// feedings, dejections and weights just like in the JSON document store. The kind-specific
// fields are stored as a JSON payload (see eventstore.StorableEvent).
//
// Key features:
//   - PostgreSQL and SQLite dialects (statements rendered with goqu)
//   - pgx, database/sql and sqlx connections
//   - Embedded goose migrations (Migrate)
//   - Configurable table name and logger
//
// Usage examples:
//
//	db, _ := sql.Open("sqlite", path)
//	_ = sqlengine.Migrate(ctx, db, sqlengine.DialectSQLite)
//	store, _ := sqlengine.NewEventStoreFromSQLDB(db, sqlengine.WithDialect(sqlengine.DialectSQLite))
//
//	pool, _ := pgxpool.New(ctx, dsn)
//	store, _ := sqlengine.NewEventStoreFromPGXPool(pool, sqlengine.WithLogger(logger))
//
//	id, _ := store.Add(ctx, feeding)
//	history, _ := store.Query(ctx, filter)
package sqlengine
