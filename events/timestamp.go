package events

import (
	"fmt"
	"strings"
	"time"
)

// Timestamps are naive wall-clock values: they carry no zone and are kept in UTC so that
// comparisons and day arithmetic never see a DST transition.

const (
	// DateLayout is the layout of day labels and date arguments.
	DateLayout = "2006-01-02"

	// DocumentLayout is the layout timestamps are written with in stored documents.
	DocumentLayout = "2006-01-02T15:04:05.999999999"
)

// TimestampLayouts are tried in order by ParseTimestamp.
var TimestampLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

// OccurredAt represents when an event occurred.
type OccurredAt = time.Time

// ToOccurredAt keeps the wall clock of t, drops its location and truncates to microseconds.
func ToOccurredAt(t time.Time) OccurredAt {
	return time.Date(
		t.Year(), t.Month(), t.Day(),
		t.Hour(), t.Minute(), t.Second(), t.Nanosecond(),
		time.UTC,
	).Truncate(time.Microsecond)
}

// ParseTimestamp uses the first of TimestampLayouts that parses s.
func ParseTimestamp(s string) (OccurredAt, error) {
	trimmed := strings.TrimSpace(s)

	for _, layout := range TimestampLayouts {
		if ts, err := time.ParseInLocation(layout, trimmed, time.UTC); err == nil {
			return ToOccurredAt(ts), nil
		}
	}

	return time.Time{}, newValidationError(
		fieldTimestamp,
		fmt.Sprintf("cannot parse %q, use YYYY-MM-DDTHH:MM:SS", s),
	)
}

// ParseDate parses a YYYY-MM-DD date to midnight of that day.
func ParseDate(s string) (OccurredAt, error) {
	day, err := time.ParseInLocation(DateLayout, strings.TrimSpace(s), time.UTC)
	if err != nil {
		return time.Time{}, newValidationError(fieldDate, fmt.Sprintf("cannot parse %q, use YYYY-MM-DD", s))
	}

	return day, nil
}

// FormatTimestamp renders ts with DocumentLayout.
func FormatTimestamp(ts time.Time) string {
	return ts.Format(DocumentLayout)
}

// FormatDate renders the day label of ts.
func FormatDate(ts time.Time) string {
	return ts.Format(DateLayout)
}
