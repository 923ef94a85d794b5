package postgreswrapper

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/babytracker/babytracker/config"
	"github.com/babytracker/babytracker/eventstore/sqlengine"
)

const (
	TypePGXPool = "pgxpool"
	TypeSQLDB   = "sqldb"
	TypeSQLX    = "sqlx"
)

var (
	once      sync.Once
	sharedDSN string
	initErr   error
)

// Wrapper abstracts over the connection types an EventStore can run on.
type Wrapper interface {
	GetEventStore() sqlengine.EventStore
	CleanUp(t testing.TB)
	Close()
}

type pgxPoolWrapper struct {
	pool *pgxpool.Pool
	es   sqlengine.EventStore
}

func (w *pgxPoolWrapper) GetEventStore() sqlengine.EventStore {
	return w.es
}

func (w *pgxPoolWrapper) CleanUp(t testing.TB) {
	_, err := w.pool.Exec(context.Background(), "TRUNCATE TABLE care_events RESTART IDENTITY")
	require.NoError(t, err, "error cleaning up the care_events table")
}

func (w *pgxPoolWrapper) Close() {
	w.pool.Close()
}

type sqlDBWrapper struct {
	db *sql.DB
	es sqlengine.EventStore
}

func (w *sqlDBWrapper) GetEventStore() sqlengine.EventStore {
	return w.es
}

func (w *sqlDBWrapper) CleanUp(t testing.TB) {
	_, err := w.db.ExecContext(context.Background(), "TRUNCATE TABLE care_events RESTART IDENTITY")
	require.NoError(t, err, "error cleaning up the care_events table")
}

func (w *sqlDBWrapper) Close() {
	_ = w.db.Close()
}

type sqlxWrapper struct {
	db *sqlx.DB
	es sqlengine.EventStore
}

func (w *sqlxWrapper) GetEventStore() sqlengine.EventStore {
	return w.es
}

func (w *sqlxWrapper) CleanUp(t testing.TB) {
	_, err := w.db.ExecContext(context.Background(), "TRUNCATE TABLE care_events RESTART IDENTITY")
	require.NoError(t, err, "error cleaning up the care_events table")
}

func (w *sqlxWrapper) Close() {
	_ = w.db.Close()
}

// CreateWrapper starts the shared container on first use, migrates it and connects with the given type.
func CreateWrapper(t testing.TB, wrapperType string) Wrapper {
	t.Helper()

	once.Do(func() {
		sharedDSN, initErr = startContainerAndMigrate()
	})
	require.NoError(t, initErr, "error starting postgres container")

	ctx := context.Background()

	switch wrapperType {
	case TypePGXPool:
		pool, err := config.PostgresPGXPool(ctx, sharedDSN)
		require.NoError(t, err, "error connecting to DB pool in test setup")
		es, err := sqlengine.NewEventStoreFromPGXPool(pool)
		require.NoError(t, err)

		return &pgxPoolWrapper{pool: pool, es: es}

	case TypeSQLDB:
		db, err := config.PostgresSQLDB(ctx, sharedDSN)
		require.NoError(t, err, "error connecting to DB in test setup")
		es, err := sqlengine.NewEventStoreFromSQLDB(db)
		require.NoError(t, err)

		return &sqlDBWrapper{db: db, es: es}

	case TypeSQLX:
		db, err := config.PostgresSQLX(ctx, sharedDSN)
		require.NoError(t, err, "error connecting to DB in test setup")
		es, err := sqlengine.NewEventStoreFromSQLX(db)
		require.NoError(t, err)

		return &sqlxWrapper{db: db, es: es}

	default:
		panic(fmt.Sprintf("unsupported wrapper type: %s", wrapperType))
	}
}

func startContainerAndMigrate() (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 120*time.Second)
	defer cancel()

	req := testcontainers.ContainerRequest{
		Image:        "postgres:17-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "test",
			"POSTGRES_PASSWORD": "test",
			"POSTGRES_DB":       "babytracker",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		return "", fmt.Errorf("start container: %w", err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		return "", fmt.Errorf("get container host: %w", err)
	}

	port, err := container.MappedPort(ctx, "5432")
	if err != nil {
		return "", fmt.Errorf("get mapped port: %w", err)
	}

	dsn := fmt.Sprintf("postgres://test:test@%s:%s/babytracker?sslmode=disable", host, port.Port())

	db, err := config.PostgresSQLDB(ctx, dsn)
	if err != nil {
		return "", err
	}
	defer func() { _ = db.Close() }()

	if err := sqlengine.Migrate(ctx, db, sqlengine.DialectPostgres); err != nil {
		return "", err
	}

	return dsn, nil
}
