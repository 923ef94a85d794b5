package eventstore

import (
	"slices"

	"github.com/babytracker/babytracker/events"
)

const firstID IDUint = 1

// Store owns the three care event collections and the identity sequence they share.
//
// A Store is not safe for concurrent use. Callers that share one must serialize access.
type Store struct {
	feedings   []events.Feeding
	dejections []events.Dejection
	weights    []events.Weight
	nextID     IDUint
	logger     Logger
}

// Option defines a functional option for configuring a Store.
type Option func(*Store)

// WithLogger sets the logger for the Store.
func WithLogger(logger Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

// NewStore creates an empty Store whose first assigned id is 1.
func NewStore(options ...Option) *Store {
	s := &Store{
		feedings:   []events.Feeding{},
		dejections: []events.Dejection{},
		weights:    []events.Weight{},
		nextID:     firstID,
	}

	for _, option := range options {
		option(s)
	}

	return s
}

// NextID returns the id the next Add call will assign.
func (s *Store) NextID() IDUint {
	return s.nextID
}

func (s *Store) assignID(kind events.Kind) IDUint {
	id := s.nextID
	s.nextID++

	s.logDebug(logMsgEventAdded, logAttrKind, kind, logAttrID, id)

	return id
}

// AddFeeding stores f under the next id and returns that id. The id f carries is ignored.
func (s *Store) AddFeeding(f events.Feeding) IDUint {
	f = cloneFeeding(f)
	f.ID = s.assignID(events.KindFeeding)
	s.feedings = append(s.feedings, f)

	return f.ID
}

// AddDejection stores d under the next id and returns that id.
func (s *Store) AddDejection(d events.Dejection) IDUint {
	d = cloneDejection(d)
	d.ID = s.assignID(events.KindDejection)
	s.dejections = append(s.dejections, d)

	return d.ID
}

// AddWeight stores w under the next id and returns that id.
func (s *Store) AddWeight(w events.Weight) IDUint {
	w = cloneWeight(w)
	w.ID = s.assignID(events.KindWeight)
	s.weights = append(s.weights, w)

	return w.ID
}

// Add dispatches to the Add method of the event's kind.
func (s *Store) Add(event events.Event) IDUint {
	switch e := event.(type) {
	case events.Feeding:
		return s.AddFeeding(e)
	case events.Dejection:
		return s.AddDejection(e)
	case events.Weight:
		return s.AddWeight(e)
	}

	return 0
}

// UpdateFeeding replaces every field of the feeding with this id except ID and BabyName.
// It returns false when there is no such feeding.
func (s *Store) UpdateFeeding(id IDUint, f events.Feeding) bool {
	i := indexByID(s.feedings, id)
	if i < 0 {
		s.logLookupMiss(events.KindFeeding, id)
		return false
	}

	f = cloneFeeding(f)
	f.ID = id
	f.BabyName = s.feedings[i].BabyName
	s.feedings[i] = f

	s.logDebug(logMsgEventUpdated, logAttrKind, events.KindFeeding, logAttrID, id)

	return true
}

// UpdateDejection replaces the dejection with this id, keeping ID and BabyName.
// It returns false when there is no such dejection.
func (s *Store) UpdateDejection(id IDUint, d events.Dejection) bool {
	i := indexByID(s.dejections, id)
	if i < 0 {
		s.logLookupMiss(events.KindDejection, id)
		return false
	}

	d = cloneDejection(d)
	d.ID = id
	d.BabyName = s.dejections[i].BabyName
	s.dejections[i] = d

	s.logDebug(logMsgEventUpdated, logAttrKind, events.KindDejection, logAttrID, id)

	return true
}

// UpdateWeight replaces the weight with this id, keeping ID and BabyName.
// It returns false when there is no such weight.
func (s *Store) UpdateWeight(id IDUint, w events.Weight) bool {
	i := indexByID(s.weights, id)
	if i < 0 {
		s.logLookupMiss(events.KindWeight, id)
		return false
	}

	w = cloneWeight(w)
	w.ID = id
	w.BabyName = s.weights[i].BabyName
	s.weights[i] = w

	s.logDebug(logMsgEventUpdated, logAttrKind, events.KindWeight, logAttrID, id)

	return true
}

// DeleteFeeding removes the feeding with this id. It returns false when there is none.
func (s *Store) DeleteFeeding(id IDUint) bool {
	var found bool
	s.feedings, found = deleteByID(s.feedings, id)
	s.logDelete(events.KindFeeding, id, found)

	return found
}

// DeleteDejection removes the dejection with this id. It returns false when there is none.
func (s *Store) DeleteDejection(id IDUint) bool {
	var found bool
	s.dejections, found = deleteByID(s.dejections, id)
	s.logDelete(events.KindDejection, id, found)

	return found
}

// DeleteWeight removes the weight with this id. It returns false when there is none.
func (s *Store) DeleteWeight(id IDUint) bool {
	var found bool
	s.weights, found = deleteByID(s.weights, id)
	s.logDelete(events.KindWeight, id, found)

	return found
}

// ListFeedings returns at most limit feedings of babyName (any baby if blank), newest first.
// Feedings with equal timestamps keep their insertion order.
func (s *Store) ListFeedings(babyName string, limit int) []events.Feeding {
	filter := BuildEventFilter().ForBaby(babyName).Finalize()

	matching := make([]events.Feeding, 0)
	for _, f := range s.feedings {
		if filter.MatchesBaby(f.BabyName) {
			matching = append(matching, cloneFeeding(f))
		}
	}

	SortFeedingsNewestFirst(matching)

	return truncate(matching, limit)
}

// Query returns copies of all records that match filter, in collection order.
func (s *Store) Query(filter Filter) History {
	history := NewHistory()

	for _, f := range s.feedings {
		if filter.Matches(f) {
			history.Feedings = append(history.Feedings, cloneFeeding(f))
		}
	}

	for _, d := range s.dejections {
		if filter.Matches(d) {
			history.Dejections = append(history.Dejections, cloneDejection(d))
		}
	}

	for _, w := range s.weights {
		if filter.Matches(w) {
			history.Weights = append(history.Weights, cloneWeight(w))
		}
	}

	return history
}

// SortFeedingsNewestFirst sorts by timestamp descending with a stable sort.
func SortFeedingsNewestFirst(feedings []events.Feeding) {
	slices.SortStableFunc(feedings, func(a, b events.Feeding) int {
		return b.Timestamp.Compare(a.Timestamp)
	})
}

func truncate[T any](items []T, limit int) []T {
	if limit <= 0 {
		return items[:0]
	}

	if len(items) > limit {
		return items[:limit]
	}

	return items
}

func indexByID[T events.Event](items []T, id IDUint) int {
	return slices.IndexFunc(items, func(item T) bool {
		return item.EventID() == id
	})
}

func deleteByID[T events.Event](items []T, id IDUint) ([]T, bool) {
	i := indexByID(items, id)
	if i < 0 {
		return items, false
	}

	return slices.Delete(items, i, i+1), true
}

func (s *Store) logDelete(kind events.Kind, id IDUint, found bool) {
	if !found {
		s.logLookupMiss(kind, id)
		return
	}

	s.logDebug(logMsgEventDeleted, logAttrKind, kind, logAttrID, id)
}

func (s *Store) logLookupMiss(kind events.Kind, id IDUint) {
	s.logDebug(logMsgLookupMiss, logAttrKind, kind, logAttrID, id)
}
