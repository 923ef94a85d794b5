package tracker

import (
	"context"
	"errors"
	"time"

	"github.com/babytracker/babytracker/eventstore"
	"github.com/babytracker/babytracker/events"
	"github.com/babytracker/babytracker/projection"
)

// ErrExportNotSupported is returned by Export when the repository cannot serialize its state.
var ErrExportNotSupported = errors.New("repository does not support export")

// keptBabyName satisfies the constructor on update. Repositories keep the stored name.
const keptBabyName = "unchanged"

const (
	logMsgEventAdded   = "tracker: event added"
	logMsgEventUpdated = "tracker: event updated"
	logMsgEventDeleted = "tracker: event deleted"
	logMsgRejected     = "tracker: input rejected"
	logAttrKind        = "kind"
	logAttrID          = "id"
	logAttrFound       = "found"
	logAttrError       = "error"
)

// Tracker turns raw input into domain values, delegates to a Repository, and returns JSON results.
type Tracker struct {
	repo   Repository
	logger eventstore.Logger
}

// Option defines a functional option for configuring a Tracker.
type Option func(*Tracker)

// WithLogger sets the logger for the Tracker.
func WithLogger(logger eventstore.Logger) Option {
	return func(t *Tracker) {
		t.logger = logger
	}
}

// New returns a Tracker that stores events in repo.
func New(repo Repository, options ...Option) *Tracker {
	t := &Tracker{repo: repo}

	for _, option := range options {
		option(t)
	}

	return t
}

// NewInMemory returns a Tracker over an empty document store.
func NewInMemory(options ...Option) *Tracker {
	return New(NewDocumentRepository(eventstore.NewStore()), options...)
}

// LoadTracker returns a Tracker over a document store imported from data.
func LoadTracker(data []byte, options ...Option) (*Tracker, error) {
	t := New(nil, options...)

	var storeOptions []eventstore.Option
	if t.logger != nil {
		storeOptions = append(storeOptions, eventstore.WithLogger(t.logger))
	}

	store, err := eventstore.Import(data, storeOptions...)
	if err != nil {
		return nil, err
	}

	t.repo = NewDocumentRepository(store)

	return t, nil
}

// Export returns the whole state as a document, if the repository supports it.
func (t *Tracker) Export() ([]byte, error) {
	exporter, ok := t.repo.(Exporter)
	if !ok {
		return nil, ErrExportNotSupported
	}

	return exporter.Export()
}

/***** Feeding *****/

func (t *Tracker) AddFeeding(
	ctx context.Context,
	babyName string,
	feedingType string,
	amountML *float64,
	durationMinutes *uint32,
	notes *string,
	timestamp string,
) (uint64, error) {

	f, err := buildFeeding(babyName, feedingType, amountML, durationMinutes, notes, timestamp)
	if err != nil {
		return 0, t.rejected(err)
	}

	return t.add(ctx, f)
}

// UpdateFeeding replaces everything but the id and baby name. It returns false if the id is not a feeding.
func (t *Tracker) UpdateFeeding(
	ctx context.Context,
	id uint64,
	feedingType string,
	amountML *float64,
	durationMinutes *uint32,
	notes *string,
	timestamp string,
) (bool, error) {

	f, err := buildFeeding(keptBabyName, feedingType, amountML, durationMinutes, notes, timestamp)
	if err != nil {
		return false, t.rejected(err)
	}

	return t.update(ctx, events.KindFeeding, id, f)
}

func (t *Tracker) DeleteFeeding(ctx context.Context, id uint64) (bool, error) {
	return t.Delete(ctx, events.KindFeeding, id)
}

func buildFeeding(
	babyName string,
	feedingType string,
	amountML *float64,
	durationMinutes *uint32,
	notes *string,
	timestamp string,
) (events.Feeding, error) {

	ft, err := events.ParseFeedingType(feedingType)
	if err != nil {
		return events.Feeding{}, err
	}

	ts, err := events.ParseTimestamp(timestamp)
	if err != nil {
		return events.Feeding{}, err
	}

	return events.BuildFeeding(babyName, ft, amountML, durationMinutes, notes, ts)
}

/***** Dejection *****/

func (t *Tracker) AddDejection(ctx context.Context, babyName, dejectionType string, notes *string, timestamp string) (uint64, error) {
	d, err := buildDejection(babyName, dejectionType, notes, timestamp)
	if err != nil {
		return 0, t.rejected(err)
	}

	return t.add(ctx, d)
}

func (t *Tracker) UpdateDejection(ctx context.Context, id uint64, dejectionType string, notes *string, timestamp string) (bool, error) {
	d, err := buildDejection(keptBabyName, dejectionType, notes, timestamp)
	if err != nil {
		return false, t.rejected(err)
	}

	return t.update(ctx, events.KindDejection, id, d)
}

func (t *Tracker) DeleteDejection(ctx context.Context, id uint64) (bool, error) {
	return t.Delete(ctx, events.KindDejection, id)
}

func buildDejection(babyName, dejectionType string, notes *string, timestamp string) (events.Dejection, error) {
	dt, err := events.ParseDejectionType(dejectionType)
	if err != nil {
		return events.Dejection{}, err
	}

	ts, err := events.ParseTimestamp(timestamp)
	if err != nil {
		return events.Dejection{}, err
	}

	return events.BuildDejection(babyName, dt, notes, ts)
}

/***** Weight *****/

func (t *Tracker) AddWeight(ctx context.Context, babyName string, weightKG float64, notes *string, timestamp string) (uint64, error) {
	w, err := buildWeight(babyName, weightKG, notes, timestamp)
	if err != nil {
		return 0, t.rejected(err)
	}

	return t.add(ctx, w)
}

func (t *Tracker) UpdateWeight(ctx context.Context, id uint64, weightKG float64, notes *string, timestamp string) (bool, error) {
	w, err := buildWeight(keptBabyName, weightKG, notes, timestamp)
	if err != nil {
		return false, t.rejected(err)
	}

	return t.update(ctx, events.KindWeight, id, w)
}

func (t *Tracker) DeleteWeight(ctx context.Context, id uint64) (bool, error) {
	return t.Delete(ctx, events.KindWeight, id)
}

func buildWeight(babyName string, weightKG float64, notes *string, timestamp string) (events.Weight, error) {
	ts, err := events.ParseTimestamp(timestamp)
	if err != nil {
		return events.Weight{}, err
	}

	return events.BuildWeight(babyName, weightKG, notes, ts)
}

/***** shared *****/

// Delete removes the event of kind with id. It returns false if there is none.
func (t *Tracker) Delete(ctx context.Context, kind events.Kind, id uint64) (bool, error) {
	found, err := t.repo.Delete(ctx, kind, id)
	if err != nil {
		return false, err
	}

	t.logDebug(logMsgEventDeleted, logAttrKind, kind, logAttrID, id, logAttrFound, found)

	return found, nil
}

func (t *Tracker) add(ctx context.Context, event events.Event) (uint64, error) {
	id, err := t.repo.Add(ctx, event)
	if err != nil {
		return 0, err
	}

	t.logDebug(logMsgEventAdded, logAttrKind, event.EventKind(), logAttrID, id)

	return id, nil
}

func (t *Tracker) update(ctx context.Context, kind events.Kind, id uint64, event events.Event) (bool, error) {
	found, err := t.repo.Update(ctx, kind, id, event)
	if err != nil {
		return false, err
	}

	t.logDebug(logMsgEventUpdated, logAttrKind, kind, logAttrID, id, logAttrFound, found)

	return found, nil
}

func (t *Tracker) rejected(err error) error {
	t.logDebug(logMsgRejected, logAttrError, err.Error())

	return err
}

func (t *Tracker) logDebug(msg string, args ...any) {
	if t.logger != nil {
		t.logger.Debug(msg, args...)
	}
}

/***** queries *****/

// ListFeedings returns at most limit feedings of babyName (any baby if blank), newest first.
func (t *Tracker) ListFeedings(ctx context.Context, babyName string, limit int) ([]byte, error) {
	feedings, err := t.repo.ListFeedings(ctx, babyName, limit)
	if err != nil {
		return nil, err
	}

	return marshalResult(toFeedingResults(feedings))
}

// TimelineForDay returns the merged timeline of one day (YYYY-MM-DD), oldest first.
func (t *Tracker) TimelineForDay(ctx context.Context, babyName string, date string) ([]byte, error) {
	day, err := events.ParseDate(date)
	if err != nil {
		return nil, t.rejected(err)
	}

	filter := windowFilter(babyName, day, day.AddDate(0, 0, 1))

	history, err := t.repo.Query(ctx, filter)
	if err != nil {
		return nil, err
	}

	return marshalResult(toTimelineResults(projection.ProjectTimeline(history, filter)))
}

// Summary returns the summary of one day (YYYY-MM-DD).
func (t *Tracker) Summary(ctx context.Context, babyName string, date string) ([]byte, error) {
	day, err := events.ParseDate(date)
	if err != nil {
		return nil, t.rejected(err)
	}

	return t.summary(ctx, windowFilter(babyName, day, day.AddDate(0, 0, 1)))
}

// SummaryBetween returns the summary of [since, until). Both bounds are timestamps or dates.
func (t *Tracker) SummaryBetween(ctx context.Context, babyName string, since, until string) ([]byte, error) {
	from, err := parseBound(since)
	if err != nil {
		return nil, t.rejected(err)
	}

	to, err := parseBound(until)
	if err != nil {
		return nil, t.rejected(err)
	}

	return t.summary(ctx, windowFilter(babyName, from, to))
}

func (t *Tracker) summary(ctx context.Context, filter eventstore.Filter) ([]byte, error) {
	history, err := t.repo.Query(ctx, filter)
	if err != nil {
		return nil, err
	}

	return marshalResult(toSummaryResult(projection.ProjectSummary(history, filter)))
}

// Report returns one day report per day from startDate up to, not including, endDate.
func (t *Tracker) Report(ctx context.Context, babyName string, startDate, endDate string) ([]byte, error) {
	start, err := events.ParseDate(startDate)
	if err != nil {
		return nil, t.rejected(err)
	}

	end, err := events.ParseDate(endDate)
	if err != nil {
		return nil, t.rejected(err)
	}

	filter := windowFilter(babyName, start, end)

	history, err := t.repo.Query(ctx, filter)
	if err != nil {
		return nil, err
	}

	return marshalResult(toDayReportResults(projection.ProjectDayReports(history, filter)))
}

func windowFilter(babyName string, from, until time.Time) eventstore.Filter {
	return eventstore.BuildEventFilter().
		ForBaby(babyName).
		OccurredFrom(from).
		AndOccurredUntil(until).
		Finalize()
}

func parseBound(s string) (time.Time, error) {
	if ts, err := events.ParseTimestamp(s); err == nil {
		return ts, nil
	}

	return events.ParseDate(s)
}
