package config

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // sqlite driver
)

const sqlitePragmas = "?_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)"

// SQLiteDB opens the sqlite file at path, creating its directory if needed.
// The pool is limited to one connection, sqlite serializes writers anyway.
func SQLiteDB(ctx context.Context, path string) (*sql.DB, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.Join(ErrConnectingFailed, errors.New("sqlite path is required"))
	}

	cleanPath := filepath.Clean(path)
	if err := os.MkdirAll(filepath.Dir(cleanPath), 0o755); err != nil {
		return nil, errors.Join(ErrConnectingFailed, err)
	}

	db, err := sql.Open("sqlite", cleanPath+sqlitePragmas)
	if err != nil {
		return nil, errors.Join(ErrConnectingFailed, err)
	}

	db.SetMaxOpenConns(1)

	if pingErr := db.PingContext(ctx); pingErr != nil {
		_ = db.Close()
		return nil, errors.Join(ErrConnectingFailed, pingErr)
	}

	return db, nil
}

// SQLiteSQLX wraps SQLiteDB for callers that work with sqlx.
func SQLiteSQLX(ctx context.Context, path string) (*sqlx.DB, error) {
	db, err := SQLiteDB(ctx, path)
	if err != nil {
		return nil, err
	}

	return sqlx.NewDb(db, "sqlite"), nil
}
