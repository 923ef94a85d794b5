package projection

import (
	"time"

	"github.com/babytracker/babytracker/eventstore"
	"github.com/babytracker/babytracker/events"
)

const secondsPerDay = 24 * 60 * 60

// DayReport holds the figures of one 24 hour bucket.
type DayReport struct {
	Date          string
	TotalFeedings uint64
	TotalML       float64
	TotalMinutes  uint64
	BreastLeft    uint64
	BreastRight   uint64
	Bottle        uint64
	Solid         uint64
	TotalUrine    uint64
	TotalPoop     uint64
	WeightKG      *float64
}

// ProjectDayReports implements the query logic for the per-day report.
//
// Query Logic:
//
//	GIVEN: a history and a filter with both bounds set
//	THEN: one DayReport per 24 hour bucket starting at OccurredFrom, in order
//	EMPTY DAYS: still reported, with zero counts and no weight
//	OPEN WINDOW: an unset bound yields no buckets
//
// A last bucket that is cut short by OccurredUntil still counts as a day.
func ProjectDayReports(history eventstore.History, filter eventstore.Filter) []DayReport {
	start, end := filter.OccurredFrom(), filter.OccurredUntil()
	if !filter.HasOccurredFrom() || !filter.HasOccurredUntil() || !start.Before(end) {
		return []DayReport{}
	}

	buckets := make([]tally, DayCount(start, end))

	bucketOf := func(e events.Event) (*tally, bool) {
		if !filter.Matches(e) {
			return nil, false
		}

		return &buckets[dayIndex(start, e.HasOccurredAt())], true
	}

	for _, f := range history.Feedings {
		if t, ok := bucketOf(f); ok {
			t.addFeeding(f)
		}
	}

	for _, d := range history.Dejections {
		if t, ok := bucketOf(d); ok {
			t.addDejection(d)
		}
	}

	for _, w := range history.Weights {
		if t, ok := bucketOf(w); ok {
			t.addWeight(w)
		}
	}

	reports := make([]DayReport, 0, len(buckets))
	for i := range buckets {
		t := &buckets[i]
		reports = append(reports, DayReport{
			Date:          events.FormatDate(start.AddDate(0, 0, i)),
			TotalFeedings: t.feedings,
			TotalML:       t.totalML,
			TotalMinutes:  t.totalMinutes,
			BreastLeft:    t.countOf(events.BreastLeft),
			BreastRight:   t.countOf(events.BreastRight),
			Bottle:        t.countOf(events.Bottle),
			Solid:         t.countOf(events.Solid),
			TotalUrine:    t.urine,
			TotalPoop:     t.poop,
			WeightKG:      t.latestWeightKG(),
		})
	}

	return reports
}

// DayCount returns how many 24 hour buckets [start, end) spans, counting a partial last bucket.
func DayCount(start, end time.Time) int {
	if !start.Before(end) {
		return 0
	}

	seconds, nanos := secondsBetween(start, end)
	days := seconds / secondsPerDay
	if seconds%secondsPerDay != 0 || nanos > 0 {
		days++
	}

	return int(days)
}

// dayIndex returns the number of whole days from start to ts, for ts not before start.
func dayIndex(start, ts time.Time) int {
	seconds, _ := secondsBetween(start, ts)

	return int(seconds / secondsPerDay)
}

// secondsBetween splits end - start into whole seconds and a non-negative nanosecond remainder.
// time.Duration saturates after about 292 years, Unix seconds do not.
func secondsBetween(start, end time.Time) (int64, int) {
	seconds := end.Unix() - start.Unix()
	nanos := end.Nanosecond() - start.Nanosecond()
	if nanos < 0 {
		seconds--
		nanos += int(time.Second)
	}

	return seconds, nanos
}
