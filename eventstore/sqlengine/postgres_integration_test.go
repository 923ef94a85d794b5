//go:build integration

package sqlengine_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/babytracker/babytracker/eventstore"
	"github.com/babytracker/babytracker/events"
	. "github.com/babytracker/babytracker/testutil/fixtures"
	"github.com/babytracker/babytracker/testutil/sqlengine/postgreswrapper"
)

func Test_Postgres_AllAdapters(t *testing.T) {
	for _, wrapperType := range []string{
		postgreswrapper.TypePGXPool,
		postgreswrapper.TypeSQLDB,
		postgreswrapper.TypeSQLX,
	} {
		t.Run(wrapperType, func(t *testing.T) {
			// setup
			ctx := context.Background()
			wrapper := postgreswrapper.CreateWrapper(t, wrapperType)
			defer wrapper.Close()
			wrapper.CleanUp(t)
			es := wrapper.GetEventStore()
			store := eventstore.NewStore()

			// arrange
			notes := "spit up a little, it's fine"
			feeding, err := events.BuildFeeding("Emma", events.Bottle, Ptr(120.5), nil, &notes, At(8*time.Hour+250*time.Microsecond))
			require.NoError(t, err)

			for _, event := range []events.Event{
				feeding,
				FixtureDejection(t, "Emma", events.Poop, At(9*time.Hour)),
				FixtureWeight(t, "Emma", 3.5, At(10*time.Hour)),
				FixtureBottleFeeding(t, "Noah", 90, At(8*time.Hour)),
			} {
				sqlID, addErr := es.Add(ctx, event)
				require.NoError(t, addErr)
				assert.Equal(t, store.Add(event), sqlID)
			}

			// act
			updated, err := es.Update(ctx, events.KindWeight, 3, FixtureWeight(t, "unchanged", 3.55, At(10*time.Hour)))
			require.NoError(t, err)
			store.UpdateWeight(3, FixtureWeight(t, "unchanged", 3.55, At(10*time.Hour)))

			deleted, err := es.Delete(ctx, events.KindDejection, 2)
			require.NoError(t, err)
			store.DeleteDejection(2)

			// assert
			assert.True(t, updated)
			assert.True(t, deleted)

			for _, filter := range []eventstore.Filter{
				eventstore.BuildEventFilter().MatchingAnyEvent(),
				DayWindow("Emma", 0),
			} {
				history, queryErr := es.Query(ctx, filter)
				require.NoError(t, queryErr)
				assert.Equal(t, store.Query(filter), history)
			}

			feedings, err := es.ListFeedings(ctx, "Emma", 5)
			require.NoError(t, err)
			assert.Equal(t, store.ListFeedings("Emma", 5), feedings)
		})
	}
}
