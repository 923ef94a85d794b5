package projection

import (
	"github.com/babytracker/babytracker/events"
)

// tally accumulates the figures shared by Summary and DayReport.
type tally struct {
	feedings     uint64
	totalML      float64
	totalMinutes uint64
	byType       [len(feedingTypeOrder)]uint64
	urine        uint64
	poop         uint64
	latestWeight *events.Weight
}

var feedingTypeOrder = [...]events.FeedingType{events.BreastLeft, events.BreastRight, events.Bottle, events.Solid}

func (t *tally) addFeeding(f events.Feeding) {
	t.feedings++

	if f.AmountML != nil {
		t.totalML += *f.AmountML
	}

	if f.DurationMinutes != nil {
		t.totalMinutes += uint64(*f.DurationMinutes)
	}

	for i, ft := range feedingTypeOrder {
		if f.FeedingType == ft {
			t.byType[i]++
		}
	}
}

func (t *tally) addDejection(d events.Dejection) {
	switch d.DejectionType {
	case events.Urine:
		t.urine++
	case events.Poop:
		t.poop++
	}
}

// addWeight keeps the weight with the latest timestamp. On equal timestamps the one added last wins.
func (t *tally) addWeight(w events.Weight) {
	if t.latestWeight == nil || !w.Timestamp.Before(t.latestWeight.Timestamp) {
		t.latestWeight = &w
	}
}

func (t *tally) countOf(ft events.FeedingType) uint64 {
	for i, candidate := range feedingTypeOrder {
		if candidate == ft {
			return t.byType[i]
		}
	}

	return 0
}

func (t *tally) latestWeightKG() *float64 {
	if t.latestWeight == nil {
		return nil
	}

	kg := t.latestWeight.WeightKG

	return &kg
}
