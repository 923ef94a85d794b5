package fixtures

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/babytracker/babytracker/eventstore"
	"github.com/babytracker/babytracker/events"
)

// FakeClock is midnight of the day the Emma scenario happens on.
var FakeClock = time.Date(2026, 2, 15, 0, 0, 0, 0, time.UTC)

// Ptr returns a pointer to a copy of v.
func Ptr[T any](v T) *T {
	return &v
}

// At returns FakeClock shifted by d.
func At(d time.Duration) time.Time {
	return FakeClock.Add(d)
}

func FixtureFeeding(
	t testing.TB,
	babyName string,
	feedingType events.FeedingType,
	amountML *float64,
	durationMinutes *uint32,
	occurredAt time.Time,
) events.Feeding {

	f, err := events.BuildFeeding(babyName, feedingType, amountML, durationMinutes, nil, occurredAt)
	require.NoError(t, err, "error in arranging test data")

	return f
}

func FixtureBottleFeeding(t testing.TB, babyName string, amountML float64, occurredAt time.Time) events.Feeding {
	return FixtureFeeding(t, babyName, events.Bottle, &amountML, nil, occurredAt)
}

func FixtureDejection(t testing.TB, babyName string, dejectionType events.DejectionType, occurredAt time.Time) events.Dejection {
	d, err := events.BuildDejection(babyName, dejectionType, nil, occurredAt)
	require.NoError(t, err, "error in arranging test data")

	return d
}

func FixtureWeight(t testing.TB, babyName string, weightKG float64, occurredAt time.Time) events.Weight {
	w, err := events.BuildWeight(babyName, weightKG, nil, occurredAt)
	require.NoError(t, err, "error in arranging test data")

	return w
}

// EmmaScenario holds the ids assigned by GivenEmmaScenario.
type EmmaScenario struct {
	FeedingID   uint64
	DejectionID uint64
	WeightID    uint64
}

// GivenEmmaScenario adds, in this order: a 120 ml bottle feeding at 08:00, a poop at 09:00,
// and a 3.5 kg weight at 10:00, all for Emma on 2026-02-15.
func GivenEmmaScenario(t testing.TB, store *eventstore.Store) EmmaScenario {
	return EmmaScenario{
		FeedingID:   store.AddFeeding(FixtureBottleFeeding(t, "Emma", 120, At(8*time.Hour))),
		DejectionID: store.AddDejection(FixtureDejection(t, "Emma", events.Poop, At(9*time.Hour))),
		WeightID:    store.AddWeight(FixtureWeight(t, "Emma", 3.5, At(10*time.Hour))),
	}
}

// DayWindow returns the filter for the whole day of FakeClock shifted by days.
func DayWindow(babyName string, days int) eventstore.Filter {
	from := FakeClock.AddDate(0, 0, days)

	return eventstore.BuildEventFilter().
		ForBaby(babyName).
		OccurredFrom(from).
		AndOccurredUntil(from.AddDate(0, 0, 1)).
		Finalize()
}
