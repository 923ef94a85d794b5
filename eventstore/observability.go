package eventstore

// Logger interface for operational logging, warnings, and error reporting.
// *slog.Logger satisfies it.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

const (
	logMsgEventAdded      = "eventstore: event added"
	logMsgEventUpdated    = "eventstore: event updated"
	logMsgEventDeleted    = "eventstore: event deleted"
	logMsgLookupMiss      = "eventstore: no event with this id"
	logMsgDocumentLoaded  = "eventstore: document imported"
	logMsgDocumentSaved   = "eventstore: document exported"
	logMsgImportFailed    = "eventstore: document import failed"
	logAttrKind           = "kind"
	logAttrID             = "id"
	logAttrNextID         = "next_id"
	logAttrFeedingCount   = "feedings"
	logAttrDejectionCount = "dejections"
	logAttrWeightCount    = "weights"
	logAttrError          = "error"
)

func (s *Store) logDebug(msg string, args ...any) {
	if s.logger != nil {
		s.logger.Debug(msg, args...)
	}
}

func (s *Store) logInfo(msg string, args ...any) {
	if s.logger != nil {
		s.logger.Info(msg, args...)
	}
}

func (s *Store) logCounts(msg string) {
	s.logInfo(
		msg,
		logAttrFeedingCount, len(s.feedings),
		logAttrDejectionCount, len(s.dejections),
		logAttrWeightCount, len(s.weights),
		logAttrNextID, s.nextID,
	)
}
