package main

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/jackc/pgx/v5/stdlib"

	"github.com/babytracker/babytracker/config"
	"github.com/babytracker/babytracker/eventstore/sqlengine"
	"github.com/babytracker/babytracker/tracker"
)

// backend is a Tracker plus what it takes to persist and release its storage.
type backend struct {
	tracker *tracker.Tracker
	persist func() error
	close   func()
}

func noop() {}

func openBackend(ctx context.Context, cfg config.Config, logger *slog.Logger) (backend, error) {
	switch cfg.Backend {
	case config.BackendSQLite:
		return openSQLite(ctx, cfg, logger)
	case config.BackendPostgres:
		return openPostgres(ctx, cfg, logger)
	default:
		return openDocument(cfg, logger)
	}
}

// openDocument loads the JSON document, or starts empty if the file does not exist yet.
func openDocument(cfg config.Config, logger *slog.Logger) (backend, error) {
	path, err := cfg.DataFilePath()
	if err != nil {
		return backend{}, err
	}

	var t *tracker.Tracker

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		t = tracker.NewInMemory(tracker.WithLogger(logger))
	case err != nil:
		return backend{}, err
	default:
		if t, err = tracker.LoadTracker(data, tracker.WithLogger(logger)); err != nil {
			return backend{}, err
		}
	}

	persist := func() error {
		doc, exportErr := t.Export()
		if exportErr != nil {
			return exportErr
		}

		return writeFileAtomically(path, doc)
	}

	return backend{tracker: t, persist: persist, close: noop}, nil
}

// writeFileAtomically replaces path with data through a temp file in the same directory.
func writeFileAtomically(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
	}

	if err := tmp.Close(); err != nil {
		return err
	}

	return os.Rename(tmp.Name(), path)
}

func openSQLite(ctx context.Context, cfg config.Config, logger *slog.Logger) (backend, error) {
	path, err := cfg.SQLiteFilePath()
	if err != nil {
		return backend{}, err
	}

	options := []sqlengine.Option{sqlengine.WithDialect(sqlengine.DialectSQLite), sqlengine.WithLogger(logger)}

	if cfg.SQLiteAdapter == config.AdapterSQLX {
		db, err := config.SQLiteSQLX(ctx, path)
		if err != nil {
			return backend{}, err
		}

		closeDB := func() { _ = db.Close() }

		if err := sqlengine.Migrate(ctx, db.DB, sqlengine.DialectSQLite); err != nil {
			closeDB()
			return backend{}, err
		}

		es, err := sqlengine.NewEventStoreFromSQLX(db, options...)
		if err != nil {
			closeDB()
			return backend{}, err
		}

		return sqlBackend(es, logger, closeDB), nil
	}

	db, err := config.SQLiteDB(ctx, path)
	if err != nil {
		return backend{}, err
	}

	closeDB := func() { _ = db.Close() }

	if err := sqlengine.Migrate(ctx, db, sqlengine.DialectSQLite); err != nil {
		closeDB()
		return backend{}, err
	}

	es, err := sqlengine.NewEventStoreFromSQLDB(db, options...)
	if err != nil {
		closeDB()
		return backend{}, err
	}

	return sqlBackend(es, logger, closeDB), nil
}

func openPostgres(ctx context.Context, cfg config.Config, logger *slog.Logger) (backend, error) {
	switch cfg.PostgresAdapter {
	case config.AdapterSQL:
		db, err := config.PostgresSQLDB(ctx, cfg.PostgresDSN)
		if err != nil {
			return backend{}, err
		}

		closeDB := func() { _ = db.Close() }

		if err := sqlengine.Migrate(ctx, db, sqlengine.DialectPostgres); err != nil {
			closeDB()
			return backend{}, err
		}

		es, err := sqlengine.NewEventStoreFromSQLDB(db, sqlengine.WithLogger(logger))
		if err != nil {
			closeDB()
			return backend{}, err
		}

		return sqlBackend(es, logger, closeDB), nil

	case config.AdapterSQLX:
		db, err := config.PostgresSQLX(ctx, cfg.PostgresDSN)
		if err != nil {
			return backend{}, err
		}

		closeDB := func() { _ = db.Close() }

		if err := sqlengine.Migrate(ctx, db.DB, sqlengine.DialectPostgres); err != nil {
			closeDB()
			return backend{}, err
		}

		es, err := sqlengine.NewEventStoreFromSQLX(db, sqlengine.WithLogger(logger))
		if err != nil {
			closeDB()
			return backend{}, err
		}

		return sqlBackend(es, logger, closeDB), nil

	default:
		pool, err := config.PostgresPGXPool(ctx, cfg.PostgresDSN)
		if err != nil {
			return backend{}, err
		}

		closePool := func() { pool.Close() }

		migrationDB := stdlib.OpenDBFromPool(pool)
		migrateErr := sqlengine.Migrate(ctx, migrationDB, sqlengine.DialectPostgres)
		_ = migrationDB.Close()

		if migrateErr != nil {
			closePool()
			return backend{}, migrateErr
		}

		es, err := sqlengine.NewEventStoreFromPGXPool(pool, sqlengine.WithLogger(logger))
		if err != nil {
			closePool()
			return backend{}, err
		}

		return sqlBackend(es, logger, closePool), nil
	}
}

// sqlBackend persists on every statement, so there is nothing left to save.
func sqlBackend(es sqlengine.EventStore, logger *slog.Logger, closeFn func()) backend {
	return backend{
		tracker: tracker.New(es, tracker.WithLogger(logger)),
		persist: func() error { return nil },
		close:   closeFn,
	}
}
