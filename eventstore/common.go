package eventstore

import (
	"errors"
)

// ErrMalformedDocument is wrapped by every error returned from Import and Load.
var ErrMalformedDocument = errors.New("malformed store document")

var ErrInvalidPayloadJSON = errors.New("payload json is not valid")
var ErrKindMismatch = errors.New("event kind does not match")

// Errors of the relational engines.
var (
	ErrEmptyEventsTableName        = errors.New("empty eventTableName supplied")
	ErrNilDatabaseConnection       = errors.New("database connection must not be nil")
	ErrUnsupportedDialect          = errors.New("unsupported sql dialect")
	ErrBuildingQueryFailed         = errors.New("building the sql query failed")
	ErrQueryingEventsFailed        = errors.New("querying events failed")
	ErrScanningDBRowFailed         = errors.New("scanning a database row failed")
	ErrBuildingStorableEventFailed = errors.New("building a storable event from a database row failed")
	ErrAppendingEventFailed        = errors.New("appending the event failed")
	ErrGettingRowsAffectedFailed   = errors.New("getting the affected rows failed")
	ErrMigrationFailed             = errors.New("applying the schema migrations failed")
)

// IDUint is the identity assigned by a store. It is shared across all event kinds.
type IDUint = uint64
