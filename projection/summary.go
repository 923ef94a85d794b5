package projection

import (
	"github.com/babytracker/babytracker/eventstore"
	"github.com/babytracker/babytracker/events"
)

// FeedingTypeCount is one entry of Summary.ByType.
type FeedingTypeCount struct {
	FeedingType events.FeedingType
	Count       uint64
}

// Summary holds aggregate figures over a filtered history.
type Summary struct {
	TotalFeedings  uint64
	TotalML        float64
	TotalMinutes   uint64
	ByType         []FeedingTypeCount
	TotalUrine     uint64
	TotalPoop      uint64
	LatestWeightKG *float64
}

// ProjectSummary implements the query logic for the bounded summary.
//
// Query Logic:
//
//	GIVEN: a history and a filter (baby, [since, until))
//	THEN: counts and sums over the matching events
//	BY TYPE: feeding types in declared order, types without feedings are left out
//	LATEST WEIGHT: the matching weight with the latest timestamp, nil if there is none
func ProjectSummary(history eventstore.History, filter eventstore.Filter) Summary {
	var t tally

	for _, f := range history.Feedings {
		if filter.Matches(f) {
			t.addFeeding(f)
		}
	}

	for _, d := range history.Dejections {
		if filter.Matches(d) {
			t.addDejection(d)
		}
	}

	for _, w := range history.Weights {
		if filter.Matches(w) {
			t.addWeight(w)
		}
	}

	byType := make([]FeedingTypeCount, 0, len(feedingTypeOrder))
	for _, ft := range feedingTypeOrder {
		if count := t.countOf(ft); count > 0 {
			byType = append(byType, FeedingTypeCount{FeedingType: ft, Count: count})
		}
	}

	return Summary{
		TotalFeedings:  t.feedings,
		TotalML:        t.totalML,
		TotalMinutes:   t.totalMinutes,
		ByType:         byType,
		TotalUrine:     t.urine,
		TotalPoop:      t.poop,
		LatestWeightKG: t.latestWeightKG(),
	}
}
