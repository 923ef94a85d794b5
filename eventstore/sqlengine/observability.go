package sqlengine

import (
	"math"
	"time"
)

const (
	logMsgBuildQueryFailed         = "failed to build sql statement"
	logMsgDBQueryFailed            = "database query execution failed"
	logMsgDBExecFailed             = "database execution failed"
	logMsgCloseRowsFailed          = "failed to close database rows"
	logMsgScanRowFailed            = "failed to scan database row"
	logMsgBuildStorableEventFailed = "failed to build storable event from database row"
	logMsgRowsAffectedFailed       = "failed to get rows affected count"
	logMsgQueryCompleted           = "query completed"
	logMsgEventAdded               = "event added"
	logMsgEventUpdated             = "event updated"
	logMsgEventDeleted             = "event deleted"
	logMsgLookupMiss               = "no event with this id"
	logMsgSQLExecuted              = "executed sql for: "
	logMsgOperation                = "eventstore operation: "
	logAttrError                   = "error"
	logAttrQuery                   = "query"
	logAttrKind                    = "kind"
	logAttrID                      = "id"
	logAttrEventCount              = "event_count"
	logAttrDurationMS              = "duration_ms"
	logActionQuery                 = "query"
	logActionAdd                   = "add"
	logActionUpdate                = "update"
	logActionDelete                = "delete"
)

// logQueryWithDuration logs SQL statements with execution time at debug level if the logger is configured.
func (es EventStore) logQueryWithDuration(sqlQuery string, action string, duration time.Duration) {
	if es.logger != nil {
		es.logger.Debug(logMsgSQLExecuted+action, logAttrDurationMS, toMilliseconds(duration), logAttrQuery, sqlQuery)
	}
}

// logOperation logs operational information at info level if the logger is configured.
func (es EventStore) logOperation(action string, args ...any) {
	if es.logger != nil {
		es.logger.Info(logMsgOperation+action, args...)
	}
}

func (es EventStore) logError(msg string, err error, args ...any) {
	if es.logger != nil {
		es.logger.Error(msg, append([]any{logAttrError, err.Error()}, args...)...)
	}
}

// toMilliseconds converts a time.Duration to float64 milliseconds with 3 decimal places.
func toMilliseconds(d time.Duration) float64 {
	return math.Round(float64(d.Nanoseconds())/1e6*1000) / 1000
}
