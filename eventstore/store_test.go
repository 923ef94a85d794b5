package eventstore_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/babytracker/babytracker/eventstore"
	"github.com/babytracker/babytracker/events"
	. "github.com/babytracker/babytracker/testutil/fixtures"
)

func Test_Store_Add_AssignsSharedIncreasingIDs(t *testing.T) {
	// setup
	store := eventstore.NewStore()

	// act
	ids := []uint64{
		store.AddWeight(FixtureWeight(t, "Emma", 3.4, At(time.Hour))),
		store.AddFeeding(FixtureBottleFeeding(t, "Emma", 60, At(2*time.Hour))),
		store.AddDejection(FixtureDejection(t, "Emma", events.Urine, At(3*time.Hour))),
		store.AddFeeding(FixtureBottleFeeding(t, "Noah", 60, At(4*time.Hour))),
		store.AddWeight(FixtureWeight(t, "Noah", 4.1, At(5*time.Hour))),
	}

	// assert
	assert.Equal(t, []uint64{1, 2, 3, 4, 5}, ids)
	assert.Equal(t, uint64(6), store.NextID())
}

func Test_Store_Add_IgnoresCarriedID(t *testing.T) {
	store := eventstore.NewStore()
	feeding := FixtureBottleFeeding(t, "Emma", 60, At(time.Hour))
	feeding.ID = 42

	id := store.AddFeeding(feeding)

	assert.Equal(t, uint64(1), id)
	assert.Equal(t, uint64(1), store.ListFeedings("", 10)[0].ID)
}

func Test_Store_Add_DispatchesByKind(t *testing.T) {
	store := eventstore.NewStore()

	store.Add(FixtureWeight(t, "Emma", 3.4, At(time.Hour)))
	store.Add(FixtureDejection(t, "Emma", events.Poop, At(time.Hour)))

	history := store.Query(eventstore.BuildEventFilter().MatchingAnyEvent())
	assert.Len(t, history.Weights, 1)
	assert.Len(t, history.Dejections, 1)
	assert.Empty(t, history.Feedings)
}

func Test_Store_Delete(t *testing.T) {
	// setup
	store := eventstore.NewStore()
	scenario := GivenEmmaScenario(t, store)

	// act + assert
	assert.False(t, store.DeleteFeeding(scenario.DejectionID), "ids of other kinds are not found")
	assert.False(t, store.DeleteWeight(99))
	assert.Equal(t, 3, store.Query(eventstore.BuildEventFilter().MatchingAnyEvent()).Len())

	assert.True(t, store.DeleteDejection(scenario.DejectionID))
	assert.False(t, store.DeleteDejection(scenario.DejectionID), "a second delete finds nothing")

	history := store.Query(eventstore.BuildEventFilter().MatchingAnyEvent())
	assert.Equal(t, 2, history.Len())
	assert.Empty(t, history.Dejections)
	assert.Equal(t, uint64(4), store.NextID(), "deleting does not free ids")
}

func Test_Store_UpdateFeeding_PreservesIDAndBabyName(t *testing.T) {
	// setup
	store := eventstore.NewStore()
	scenario := GivenEmmaScenario(t, store)

	// arrange
	replacement := FixtureFeeding(t, "Noah", events.BreastLeft, nil, Ptr(uint32(15)), At(7*time.Hour))
	replacement.ID = 77

	// act
	found := store.UpdateFeeding(scenario.FeedingID, replacement)

	// assert
	require.True(t, found)
	updated := store.ListFeedings("", 10)[0]
	assert.Equal(t, scenario.FeedingID, updated.ID)
	assert.Equal(t, "Emma", updated.BabyName)
	assert.Equal(t, events.BreastLeft, updated.FeedingType)
	assert.Nil(t, updated.AmountML, "absent fields replace present ones")
	assert.Equal(t, uint32(15), *updated.DurationMinutes)
	assert.Equal(t, At(7*time.Hour), updated.Timestamp)
}

func Test_Store_UpdateDejectionAndWeight(t *testing.T) {
	store := eventstore.NewStore()
	scenario := GivenEmmaScenario(t, store)

	assert.True(t, store.UpdateDejection(scenario.DejectionID, FixtureDejection(t, "x", events.Urine, At(time.Hour))))
	assert.True(t, store.UpdateWeight(scenario.WeightID, FixtureWeight(t, "x", 3.6, At(time.Hour))))
	assert.False(t, store.UpdateWeight(scenario.FeedingID, FixtureWeight(t, "x", 3.6, At(time.Hour))))

	history := store.Query(eventstore.BuildEventFilter().MatchingAnyEvent())
	assert.Equal(t, events.Urine, history.Dejections[0].DejectionType)
	assert.Equal(t, "Emma", history.Dejections[0].BabyName)
	assert.Equal(t, 3.6, history.Weights[0].WeightKG)
	assert.Equal(t, "Emma", history.Weights[0].BabyName)
}

func Test_Store_ListFeedings(t *testing.T) {
	// setup
	store := eventstore.NewStore()
	first := store.AddFeeding(FixtureBottleFeeding(t, "Emma", 10, At(8*time.Hour)))
	late := store.AddFeeding(FixtureBottleFeeding(t, "Emma", 20, At(12*time.Hour)))
	tie := store.AddFeeding(FixtureBottleFeeding(t, "Emma", 30, At(8*time.Hour)))
	noah := store.AddFeeding(FixtureBottleFeeding(t, "Noah", 40, At(9*time.Hour)))

	ids := func(feedings []events.Feeding) []uint64 {
		result := make([]uint64, 0, len(feedings))
		for _, f := range feedings {
			result = append(result, f.ID)
		}

		return result
	}

	tests := []struct {
		name     string
		babyName string
		limit    int
		expected []uint64
	}{
		{name: "newest first, ties keep insertion order", babyName: "Emma", limit: 10, expected: []uint64{late, first, tie}},
		{name: "truncated to limit", babyName: "Emma", limit: 2, expected: []uint64{late, first}},
		{name: "blank name matches all", babyName: "", limit: 10, expected: []uint64{late, noah, first, tie}},
		{name: "unknown baby", babyName: "Mia", limit: 10, expected: []uint64{}},
		{name: "zero limit", babyName: "", limit: 0, expected: []uint64{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ids(store.ListFeedings(tt.babyName, tt.limit)))
		})
	}
}

func Test_Store_Query_FiltersAndKeepsCollectionOrder(t *testing.T) {
	// setup
	store := eventstore.NewStore()
	GivenEmmaScenario(t, store)
	store.AddFeeding(FixtureBottleFeeding(t, "Emma", 80, At(6*time.Hour)))
	store.AddFeeding(FixtureBottleFeeding(t, "Noah", 80, At(6*time.Hour)))
	store.AddFeeding(FixtureBottleFeeding(t, "Emma", 80, At(30*time.Hour)))

	// act
	history := store.Query(DayWindow("Emma", 0))

	// assert
	require.Len(t, history.Feedings, 2)
	assert.Equal(t, uint64(1), history.Feedings[0].ID)
	assert.Equal(t, uint64(4), history.Feedings[1].ID)
	assert.Len(t, history.Dejections, 1)
	assert.Len(t, history.Weights, 1)
}

func Test_Store_Query_ReturnsCopies(t *testing.T) {
	store := eventstore.NewStore()
	store.AddFeeding(FixtureBottleFeeding(t, "Emma", 80, At(time.Hour)))

	history := store.Query(eventstore.BuildEventFilter().MatchingAnyEvent())
	*history.Feedings[0].AmountML = 1
	history.Feedings[0].BabyName = "Mallory"

	again := store.Query(eventstore.BuildEventFilter().MatchingAnyEvent())
	assert.Equal(t, 80.0, *again.Feedings[0].AmountML)
	assert.Equal(t, "Emma", again.Feedings[0].BabyName)
}

func Test_Store_Query_EmptyStoreYieldsEmptyCollections(t *testing.T) {
	history := eventstore.NewStore().Query(eventstore.BuildEventFilter().MatchingAnyEvent())

	assert.NotNil(t, history.Feedings)
	assert.NotNil(t, history.Dejections)
	assert.NotNil(t, history.Weights)
	assert.Empty(t, history.Events())
}

func Test_History_Events_ScanOrder(t *testing.T) {
	store := eventstore.NewStore()
	store.AddWeight(FixtureWeight(t, "Emma", 3.4, At(time.Hour)))
	store.AddDejection(FixtureDejection(t, "Emma", events.Poop, At(time.Hour)))
	store.AddFeeding(FixtureBottleFeeding(t, "Emma", 60, At(time.Hour)))

	all := store.Query(eventstore.BuildEventFilter().MatchingAnyEvent()).Events()

	require.Len(t, all, 3)
	assert.Equal(t, events.KindFeeding, all[0].EventKind())
	assert.Equal(t, events.KindDejection, all[1].EventKind())
	assert.Equal(t, events.KindWeight, all[2].EventKind())
}

func Test_Store_LogsWithLogger(t *testing.T) {
	// setup
	logger, spy := NewSpyLogger()
	store := eventstore.NewStore(eventstore.WithLogger(logger))

	// act
	id := store.AddFeeding(FixtureBottleFeeding(t, "Emma", 60, At(time.Hour)))
	store.DeleteWeight(id)

	// assert
	assert.True(t, spy.HasLogWithAttr("eventstore: event added", "id", id))
	assert.True(t, spy.HasDebugLog("eventstore: no event with this id"))
}
