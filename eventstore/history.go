package eventstore

import (
	"github.com/babytracker/babytracker/events"
)

// History is the read side handed to projections: copies of the matching records of each kind,
// in collection order.
type History struct {
	Feedings   []events.Feeding
	Dejections []events.Dejection
	Weights    []events.Weight
}

// NewHistory returns a History with non-nil, empty collections.
func NewHistory() History {
	return History{
		Feedings:   []events.Feeding{},
		Dejections: []events.Dejection{},
		Weights:    []events.Weight{},
	}
}

// Append adds a copy of event to the collection of its kind.
func (h *History) Append(event events.Event) {
	switch e := event.(type) {
	case events.Feeding:
		h.Feedings = append(h.Feedings, cloneFeeding(e))
	case events.Dejection:
		h.Dejections = append(h.Dejections, cloneDejection(e))
	case events.Weight:
		h.Weights = append(h.Weights, cloneWeight(e))
	}
}

func (h History) Len() int {
	return len(h.Feedings) + len(h.Dejections) + len(h.Weights)
}

// Events returns all records in scan order: feedings, then dejections, then weights.
func (h History) Events() events.Events {
	all := make(events.Events, 0, h.Len())

	for _, f := range h.Feedings {
		all = append(all, f)
	}

	for _, d := range h.Dejections {
		all = append(all, d)
	}

	for _, w := range h.Weights {
		all = append(all, w)
	}

	return all
}

func cloneFeeding(f events.Feeding) events.Feeding {
	f.AmountML = clonePtr(f.AmountML)
	f.DurationMinutes = clonePtr(f.DurationMinutes)
	f.Notes = clonePtr(f.Notes)

	return f
}

func cloneDejection(d events.Dejection) events.Dejection {
	d.Notes = clonePtr(d.Notes)

	return d
}

func cloneWeight(w events.Weight) events.Weight {
	w.Notes = clonePtr(w.Notes)

	return w
}

func clonePtr[T any](v *T) *T {
	if v == nil {
		return nil
	}

	c := *v

	return &c
}
