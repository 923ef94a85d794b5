package projection

import (
	"slices"
	"time"

	"github.com/babytracker/babytracker/eventstore"
	"github.com/babytracker/babytracker/events"
)

// SubtypeWeight is the subtype of every weight entry.
const SubtypeWeight = "weight"

// TimelineEntry is one event of any kind, flattened for display.
// Exactly one of AmountML/DurationMinutes (feedings) or WeightKG (weights) can be set.
type TimelineEntry struct {
	ID              uint64
	Kind            events.Kind
	BabyName        string
	Subtype         string
	AmountML        *float64
	DurationMinutes *uint32
	WeightKG        *float64
	Notes           *string
	Timestamp       time.Time
}

// ProjectTimeline implements the query logic for the merged timeline.
//
// Query Logic:
//
//	GIVEN: a history and a filter (baby, [from, until))
//	THEN: all matching events as TimelineEntry, oldest first
//	TIES: equal timestamps keep scan order, feedings before dejections before weights
func ProjectTimeline(history eventstore.History, filter eventstore.Filter) []TimelineEntry {
	entries := make([]TimelineEntry, 0, history.Len())

	for _, f := range history.Feedings {
		if filter.Matches(f) {
			entries = append(entries, timelineEntryOfFeeding(f))
		}
	}

	for _, d := range history.Dejections {
		if filter.Matches(d) {
			entries = append(entries, timelineEntryOfDejection(d))
		}
	}

	for _, w := range history.Weights {
		if filter.Matches(w) {
			entries = append(entries, timelineEntryOfWeight(w))
		}
	}

	slices.SortStableFunc(entries, func(a, b TimelineEntry) int {
		return a.Timestamp.Compare(b.Timestamp)
	})

	return entries
}

func timelineEntryOfFeeding(f events.Feeding) TimelineEntry {
	return TimelineEntry{
		ID:              f.ID,
		Kind:            events.KindFeeding,
		BabyName:        f.BabyName,
		Subtype:         f.FeedingType.Tag(),
		AmountML:        f.AmountML,
		DurationMinutes: f.DurationMinutes,
		Notes:           f.Notes,
		Timestamp:       f.Timestamp,
	}
}

func timelineEntryOfDejection(d events.Dejection) TimelineEntry {
	return TimelineEntry{
		ID:        d.ID,
		Kind:      events.KindDejection,
		BabyName:  d.BabyName,
		Subtype:   d.DejectionType.Tag(),
		Notes:     d.Notes,
		Timestamp: d.Timestamp,
	}
}

func timelineEntryOfWeight(w events.Weight) TimelineEntry {
	weightKG := w.WeightKG

	return TimelineEntry{
		ID:        w.ID,
		Kind:      events.KindWeight,
		BabyName:  w.BabyName,
		Subtype:   SubtypeWeight,
		WeightKG:  &weightKG,
		Notes:     w.Notes,
		Timestamp: w.Timestamp,
	}
}
