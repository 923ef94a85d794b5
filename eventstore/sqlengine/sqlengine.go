package sqlengine

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"

	"github.com/babytracker/babytracker/eventstore"
	"github.com/babytracker/babytracker/eventstore/sqlengine/internal/adapters"
	"github.com/babytracker/babytracker/events"
)

const (
	// DialectPostgres renders statements for PostgreSQL (pgx, lib/pq or sqlx connections).
	DialectPostgres = "postgres"

	// DialectSQLite renders statements for SQLite (modernc.org/sqlite through database/sql or sqlx).
	DialectSQLite = "sqlite3"

	defaultEventTableName = "care_events"
	colID                 = "id"
	colKind               = "kind"
	colBabyName           = "baby_name"
	colOccurredAt         = "occurred_at"
	colPayload            = "payload"

	// occurredAtLayout has a fixed width, so the text column sorts chronologically.
	occurredAtLayout = "2006-01-02T15:04:05.000000"
)

// EventStore keeps care events in one relational table.
// Its verbs mirror the in-memory eventstore.Store, with ids assigned by the table's identity column.
type EventStore struct {
	db             adapters.DBAdapter
	eventTableName string
	dialect        string
	logger         eventstore.Logger
}

type queryResultRow struct {
	id         int64
	kind       string
	babyName   string
	occurredAt string
	payload    []byte
}

// NewEventStoreFromPGXPool creates a new EventStore using a pgx Pool with optional configuration.
// Only DialectPostgres is accepted.
func NewEventStoreFromPGXPool(db *pgxpool.Pool, options ...Option) (EventStore, error) {
	if db == nil {
		return EventStore{}, eventstore.ErrNilDatabaseConnection
	}

	es, err := newEventStore(adapters.NewPGXAdapter(db), options)
	if err != nil {
		return EventStore{}, err
	}

	if es.dialect != DialectPostgres {
		return EventStore{}, eventstore.ErrUnsupportedDialect
	}

	return es, nil
}

// NewEventStoreFromSQLDB creates a new EventStore using a sql.DB with optional configuration.
func NewEventStoreFromSQLDB(db *sql.DB, options ...Option) (EventStore, error) {
	if db == nil {
		return EventStore{}, eventstore.ErrNilDatabaseConnection
	}

	return newEventStore(adapters.NewSQLAdapter(db), options)
}

// NewEventStoreFromSQLX creates a new EventStore using a sqlx.DB with optional configuration.
func NewEventStoreFromSQLX(db *sqlx.DB, options ...Option) (EventStore, error) {
	if db == nil {
		return EventStore{}, eventstore.ErrNilDatabaseConnection
	}

	return newEventStore(adapters.NewSQLXAdapter(db), options)
}

func newEventStore(db adapters.DBAdapter, options []Option) (EventStore, error) {
	es := EventStore{
		db:             db,
		eventTableName: defaultEventTableName,
		dialect:        DialectPostgres,
	}

	for _, option := range options {
		if err := option(&es); err != nil {
			return EventStore{}, err
		}
	}

	return es, nil
}

// Add inserts event as a new row and returns the id the table assigned to it.
func (es EventStore) Add(ctx context.Context, event events.Event) (uint64, error) {
	storable, err := eventstore.StorableEventFrom(event)
	if err != nil {
		return 0, err
	}

	sqlQuery, err := es.buildInsertQuery(storable)
	if err != nil {
		es.logError(logMsgBuildQueryFailed, err, logAttrKind, storable.Kind)
		return 0, err
	}

	rows, _, err := es.executeQuery(ctx, sqlQuery, logActionAdd, eventstore.ErrAppendingEventFailed)
	if err != nil {
		return 0, err
	}
	defer es.closeRows(rows)

	var id int64
	if !rows.Next() {
		return 0, errors.Join(eventstore.ErrAppendingEventFailed, rowsErrOrMissing(rows))
	}

	if err := rows.Scan(&id); err != nil {
		es.logError(logMsgScanRowFailed, err)
		return 0, errors.Join(eventstore.ErrScanningDBRowFailed, err)
	}

	es.logOperation(logMsgEventAdded, logAttrKind, storable.Kind, logAttrID, uint64(id))

	return uint64(id), nil
}

// Update replaces the timestamp and the kind-specific fields of the event of kind with id.
// The stored baby name is kept. It returns false if there is no such event.
func (es EventStore) Update(ctx context.Context, kind events.Kind, id uint64, event events.Event) (bool, error) {
	if event.EventKind() != kind {
		return false, eventstore.ErrKindMismatch
	}

	storable, err := eventstore.StorableEventFrom(event)
	if err != nil {
		return false, err
	}

	sqlQuery, err := es.buildUpdateQuery(kind, id, storable)
	if err != nil {
		es.logError(logMsgBuildQueryFailed, err, logAttrKind, kind)
		return false, err
	}

	found, err := es.executeAndCheckFound(ctx, sqlQuery, logActionUpdate, kind, id)
	if err != nil || !found {
		return false, err
	}

	es.logOperation(logMsgEventUpdated, logAttrKind, kind, logAttrID, id)

	return true, nil
}

// Delete removes the event of kind with id. It returns false if there is no such event.
func (es EventStore) Delete(ctx context.Context, kind events.Kind, id uint64) (bool, error) {
	if _, err := events.ParseKind(string(kind)); err != nil {
		return false, errors.Join(eventstore.ErrKindMismatch, err)
	}

	sqlQuery, err := es.buildDeleteQuery(kind, id)
	if err != nil {
		es.logError(logMsgBuildQueryFailed, err, logAttrKind, kind)
		return false, err
	}

	found, err := es.executeAndCheckFound(ctx, sqlQuery, logActionDelete, kind, id)
	if err != nil || !found {
		return false, err
	}

	es.logOperation(logMsgEventDeleted, logAttrKind, kind, logAttrID, id)

	return true, nil
}

// ListFeedings returns at most limit feedings of babyName, newest first.
// Feedings with the same timestamp keep their insertion order. A blank name lists all babies.
func (es EventStore) ListFeedings(ctx context.Context, babyName string, limit int) ([]events.Feeding, error) {
	if limit <= 0 {
		return []events.Feeding{}, nil
	}

	filter := eventstore.BuildEventFilter().ForBaby(babyName).Finalize()

	sqlQuery, err := es.buildListFeedingsQuery(filter, limit)
	if err != nil {
		es.logError(logMsgBuildQueryFailed, err)
		return nil, err
	}

	history, err := es.queryHistory(ctx, sqlQuery)
	if err != nil {
		return nil, err
	}

	return history.Feedings, nil
}

// Query returns all events matching filter, each kind in id order.
func (es EventStore) Query(ctx context.Context, filter eventstore.Filter) (eventstore.History, error) {
	sqlQuery, err := es.buildSelectQuery(filter)
	if err != nil {
		es.logError(logMsgBuildQueryFailed, err)
		return eventstore.History{}, err
	}

	return es.queryHistory(ctx, sqlQuery)
}

func (es EventStore) queryHistory(ctx context.Context, sqlQuery string) (eventstore.History, error) {
	rows, duration, err := es.executeQuery(ctx, sqlQuery, logActionQuery, eventstore.ErrQueryingEventsFailed)
	if err != nil {
		return eventstore.History{}, err
	}
	defer es.closeRows(rows)

	history, err := es.processQueryResults(rows)
	if err != nil {
		return eventstore.History{}, err
	}

	es.logOperation(
		logMsgQueryCompleted,
		logAttrEventCount, history.Len(),
		logAttrDurationMS, toMilliseconds(duration),
	)

	return history, nil
}

// executeQuery runs a statement that returns rows. Failures are wrapped in failedErr.
func (es EventStore) executeQuery(ctx context.Context, sqlQuery string, action string, failedErr error) (
	adapters.DBRows,
	time.Duration,
	error,
) {

	start := time.Now()
	rows, queryErr := es.db.Query(ctx, sqlQuery)
	duration := time.Since(start)
	es.logQueryWithDuration(sqlQuery, action, duration)

	if queryErr != nil {
		es.logError(logMsgDBQueryFailed, queryErr, logAttrQuery, sqlQuery)
		return nil, duration, errors.Join(failedErr, queryErr)
	}

	return rows, duration, nil
}

// executeAndCheckFound runs an UPDATE or DELETE and reports whether it hit a row.
func (es EventStore) executeAndCheckFound(
	ctx context.Context,
	sqlQuery string,
	action string,
	kind events.Kind,
	id uint64,
) (bool, error) {

	start := time.Now()
	result, execErr := es.db.Exec(ctx, sqlQuery)
	es.logQueryWithDuration(sqlQuery, action, time.Since(start))

	if execErr != nil {
		es.logError(logMsgDBExecFailed, execErr, logAttrQuery, sqlQuery)
		return false, errors.Join(eventstore.ErrAppendingEventFailed, execErr)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		es.logError(logMsgRowsAffectedFailed, err)
		return false, errors.Join(eventstore.ErrGettingRowsAffectedFailed, err)
	}

	if rowsAffected == 0 {
		if es.logger != nil {
			es.logger.Debug(logMsgLookupMiss, logAttrKind, kind, logAttrID, id)
		}

		return false, nil
	}

	return true, nil
}

// closeRows safely closes database rows and logs any errors.
func (es EventStore) closeRows(rows adapters.DBRows) {
	if closeErr := rows.Close(); closeErr != nil {
		if es.logger != nil {
			es.logger.Warn(logMsgCloseRowsFailed, logAttrError, closeErr.Error())
		}
	}
}

// processQueryResults rebuilds domain events from rows, re-validating every one of them.
func (es EventStore) processQueryResults(rows adapters.DBRows) (eventstore.History, error) {
	history := eventstore.NewHistory()
	result := queryResultRow{}

	for rows.Next() {
		scanErr := rows.Scan(&result.id, &result.kind, &result.babyName, &result.occurredAt, &result.payload)
		if scanErr != nil {
			es.logError(logMsgScanRowFailed, scanErr)
			return eventstore.History{}, errors.Join(eventstore.ErrScanningDBRowFailed, scanErr)
		}

		event, err := es.eventFromRow(result)
		if err != nil {
			es.logError(logMsgBuildStorableEventFailed, err, logAttrKind, result.kind, logAttrID, result.id)
			return eventstore.History{}, errors.Join(eventstore.ErrBuildingStorableEventFailed, err)
		}

		history.Append(event)
	}

	if err := rows.Err(); err != nil {
		es.logError(logMsgScanRowFailed, err)
		return eventstore.History{}, errors.Join(eventstore.ErrScanningDBRowFailed, err)
	}

	return history, nil
}

func (es EventStore) eventFromRow(row queryResultRow) (events.Event, error) {
	if row.id <= 0 {
		return nil, fmt.Errorf("invalid id %d", row.id)
	}

	occurredAt, err := time.Parse(occurredAtLayout, row.occurredAt)
	if err != nil {
		return nil, err
	}

	storable, err := eventstore.BuildStorableEvent(
		eventstore.IDUint(row.id),
		events.Kind(row.kind),
		row.babyName,
		occurredAt,
		row.payload,
	)
	if err != nil {
		return nil, err
	}

	return storable.ToEvent()
}

func rowsErrOrMissing(rows adapters.DBRows) error {
	if err := rows.Err(); err != nil {
		return err
	}

	return errors.New("insert returned no id")
}

func formatOccurredAt(t time.Time) string {
	return events.ToOccurredAt(t).Format(occurredAtLayout)
}
