package eventstore

import (
	"strings"
	"time"

	"github.com/babytracker/babytracker/events"
)

/***** Filter *****/

// Filter restricts queries to one baby (or any baby) and to the half-open window [from, until).
// A bound is only applied if it was set through the builder, so the zero time is a valid bound.
type Filter struct {
	babyName         string
	occurredFrom     time.Time
	occurredUntil    time.Time
	hasOccurredFrom  bool
	hasOccurredUntil bool
}

// BabyName returns the baby name to match, or "" for any baby.
func (f Filter) BabyName() string {
	return f.babyName
}

func (f Filter) OccurredFrom() time.Time {
	return f.occurredFrom
}

func (f Filter) OccurredUntil() time.Time {
	return f.occurredUntil
}

// HasOccurredFrom reports whether the window has a lower bound.
func (f Filter) HasOccurredFrom() bool {
	return f.hasOccurredFrom
}

// HasOccurredUntil reports whether the window has an upper bound.
func (f Filter) HasOccurredUntil() bool {
	return f.hasOccurredUntil
}

// MatchesBaby compares with the (trimmed) name the filter was built with.
func (f Filter) MatchesBaby(babyName string) bool {
	return f.babyName == "" || f.babyName == babyName
}

// MatchesOccurredAt reports whether ts lies in [from, until).
func (f Filter) MatchesOccurredAt(ts time.Time) bool {
	if f.hasOccurredFrom && ts.Before(f.occurredFrom) {
		return false
	}

	if f.hasOccurredUntil && !ts.Before(f.occurredUntil) {
		return false
	}

	return true
}

func (f Filter) Matches(event events.Event) bool {
	return f.MatchesBaby(event.Baby()) && f.MatchesOccurredAt(event.HasOccurredAt())
}

/***** FilterBuilder *****/

// FilterBuilder builds a Filter. It only allows these combinations:
//
//   - empty filter (any baby, any time)
//   - (baby)
//   - (baby AND occurredFrom)
//   - (baby AND occurredUntil)
//   - (baby AND occurredFrom AND occurredUntil)
//   - the same without a baby, started with ForAnyBaby()
type FilterBuilder interface {
	// ForBaby restricts the filter to one baby. The name is trimmed; a blank name matches any baby.
	ForBaby(babyName string) TimeWindowFilterBuilder

	// ForAnyBaby does not restrict the baby name.
	ForAnyBaby() TimeWindowFilterBuilder

	// MatchingAnyEvent directly creates an empty Filter.
	MatchingAnyEvent() Filter
}

type TimeWindowFilterBuilder interface {
	// OccurredFrom sets the inclusive lower bound.
	OccurredFrom(from time.Time) FilterBuilderLackingUntil

	// OccurredUntil sets the exclusive upper bound.
	OccurredUntil(until time.Time) CompletedFilterBuilder

	Finalize() Filter
}

type FilterBuilderLackingUntil interface {
	// AndOccurredUntil sets the exclusive upper bound.
	AndOccurredUntil(until time.Time) CompletedFilterBuilder

	Finalize() Filter
}

type CompletedFilterBuilder interface {
	Finalize() Filter
}

// filterBuilder implements all the interfaces of FilterBuilder
type filterBuilder struct {
	filter Filter
}

// BuildEventFilter creates a FilterBuilder which must eventually be finalized with Finalize() or MatchingAnyEvent().
func BuildEventFilter() FilterBuilder {
	return filterBuilder{}
}

func (fb filterBuilder) ForBaby(babyName string) TimeWindowFilterBuilder {
	fb.filter.babyName = strings.TrimSpace(babyName)

	return fb
}

func (fb filterBuilder) ForAnyBaby() TimeWindowFilterBuilder {
	fb.filter.babyName = ""

	return fb
}

func (fb filterBuilder) MatchingAnyEvent() Filter {
	return Filter{}
}

func (fb filterBuilder) OccurredFrom(from time.Time) FilterBuilderLackingUntil {
	fb.filter.occurredFrom = events.ToOccurredAt(from)
	fb.filter.hasOccurredFrom = true

	return fb
}

func (fb filterBuilder) OccurredUntil(until time.Time) CompletedFilterBuilder {
	fb.filter.occurredUntil = events.ToOccurredAt(until)
	fb.filter.hasOccurredUntil = true

	return fb
}

func (fb filterBuilder) AndOccurredUntil(until time.Time) CompletedFilterBuilder {
	return fb.OccurredUntil(until)
}

func (fb filterBuilder) Finalize() Filter {
	return fb.filter
}
