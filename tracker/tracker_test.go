package tracker_test

import (
	"context"
	"errors"
	"testing"

	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/babytracker/babytracker/eventstore"
	"github.com/babytracker/babytracker/events"
	. "github.com/babytracker/babytracker/testutil/fixtures"
	"github.com/babytracker/babytracker/tracker"
)

func givenEmmaTracker(t *testing.T) *tracker.Tracker {
	ctx := context.Background()
	tr := tracker.NewInMemory()

	id, err := tr.AddFeeding(ctx, "Emma", "bottle", Ptr(120.0), nil, nil, "2026-02-15T08:00:00")
	require.NoError(t, err)
	require.Equal(t, uint64(1), id)

	id, err = tr.AddDejection(ctx, "Emma", "p", nil, "2026-02-15 09:00")
	require.NoError(t, err)
	require.Equal(t, uint64(2), id)

	id, err = tr.AddWeight(ctx, "Emma", 3.5, nil, "2026-02-15T10:00")
	require.NoError(t, err)
	require.Equal(t, uint64(3), id)

	return tr
}

func decode[T any](t *testing.T, data []byte) T {
	var v T
	require.NoError(t, jsoniter.Unmarshal(data, &v))

	return v
}

func Test_Tracker_TimelineForDay(t *testing.T) {
	// setup
	tr := givenEmmaTracker(t)

	// act
	data, err := tr.TimelineForDay(context.Background(), "", "2026-02-15")

	// assert
	require.NoError(t, err)
	entries := decode[[]map[string]any](t, data)
	require.Len(t, entries, 3)

	assert.Equal(t, "feeding", entries[0]["kind"])
	assert.Equal(t, "bottle", entries[0]["subtype"])
	assert.Equal(t, 120.0, entries[0]["amount_ml"])
	assert.Nil(t, entries[0]["weight_kg"])
	assert.Equal(t, "2026-02-15T08:00:00", entries[0]["timestamp"])

	assert.Equal(t, "dejection", entries[1]["kind"])
	assert.Equal(t, "poop", entries[1]["subtype"])

	assert.Equal(t, "weight", entries[2]["kind"])
	assert.Equal(t, "weight", entries[2]["subtype"])
	assert.Equal(t, 3.5, entries[2]["weight_kg"])
	assert.Equal(t, "Emma", entries[2]["baby_name"])
}

func Test_Tracker_TimelineForDay_EmptyIsArray(t *testing.T) {
	data, err := givenEmmaTracker(t).TimelineForDay(context.Background(), "Noah", "2026-02-15")

	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(data))
}

func Test_Tracker_Summary(t *testing.T) {
	data, err := givenEmmaTracker(t).Summary(context.Background(), "Emma", "2026-02-15")

	require.NoError(t, err)
	assert.JSONEq(t, `{
		"total_feedings": 1,
		"total_ml": 120,
		"total_minutes": 0,
		"by_type": [["bottle", 1]],
		"total_urine": 0,
		"total_poop": 1,
		"latest_weight_kg": 3.5
	}`, string(data))
}

func Test_Tracker_SummaryBetween(t *testing.T) {
	tr := givenEmmaTracker(t)

	data, err := tr.SummaryBetween(context.Background(), "", "2026-02-15T08:30", "2026-02-16")

	require.NoError(t, err)
	summary := decode[map[string]any](t, data)
	assert.Equal(t, 0.0, summary["total_feedings"])
	assert.Equal(t, []any{}, summary["by_type"])
	assert.Equal(t, 1.0, summary["total_poop"])
	assert.Equal(t, 3.5, summary["latest_weight_kg"])

	_, err = tr.SummaryBetween(context.Background(), "", "soon", "2026-02-16")
	assert.ErrorIs(t, err, events.ErrValidation)
}

func Test_Tracker_SummaryBetween_When_UntilIsYearOne(t *testing.T) {
	tr := givenEmmaTracker(t)

	data, err := tr.SummaryBetween(context.Background(), "", "2026-02-15T00:00:00", "0001-01-01T00:00:00")

	require.NoError(t, err)
	summary := decode[map[string]any](t, data)
	assert.Equal(t, 0.0, summary["total_feedings"])
	assert.Equal(t, 0.0, summary["total_poop"])
	assert.Nil(t, summary["latest_weight_kg"])
}

func Test_Tracker_Report_When_WindowSpansCenturies(t *testing.T) {
	data, err := givenEmmaTracker(t).Report(context.Background(), "Emma", "1700-01-01", "2100-01-01")

	require.NoError(t, err)
	reports := decode[[]map[string]any](t, data)
	require.Len(t, reports, 146097)
	assert.Equal(t, "2026-02-15", reports[119114]["date"])
	assert.Equal(t, 1.0, reports[119114]["total_feedings"])
}

func Test_Tracker_Report(t *testing.T) {
	data, err := givenEmmaTracker(t).Report(context.Background(), "", "2026-02-15", "2026-02-17")

	require.NoError(t, err)
	assert.JSONEq(t, `[
		{"date": "2026-02-15", "total_feedings": 1, "total_ml": 120, "total_minutes": 0,
		 "breast_left": 0, "breast_right": 0, "bottle": 1, "solid": 0,
		 "total_urine": 0, "total_poop": 1, "weight_kg": 3.5},
		{"date": "2026-02-16", "total_feedings": 0, "total_ml": 0, "total_minutes": 0,
		 "breast_left": 0, "breast_right": 0, "bottle": 0, "solid": 0,
		 "total_urine": 0, "total_poop": 0, "weight_kg": null}
	]`, string(data))
}

func Test_Tracker_RejectsInvalidInput(t *testing.T) {
	ctx := context.Background()
	tr := tracker.NewInMemory()

	tests := []struct {
		name string
		act  func() error
	}{
		{name: "unknown feeding type", act: func() error {
			_, err := tr.AddFeeding(ctx, "Emma", "juice", nil, nil, nil, "2026-02-15T08:00:00")
			return err
		}},
		{name: "empty name", act: func() error {
			_, err := tr.AddFeeding(ctx, "", "bottle", nil, nil, nil, "2026-02-15T08:00:00")
			return err
		}},
		{name: "bad timestamp", act: func() error {
			_, err := tr.AddFeeding(ctx, "Emma", "bottle", nil, nil, nil, "not-a-date")
			return err
		}},
		{name: "negative amount", act: func() error {
			_, err := tr.AddFeeding(ctx, "Emma", "bottle", Ptr(-5.0), nil, nil, "2026-02-15T08:00:00")
			return err
		}},
		{name: "unknown dejection type", act: func() error {
			_, err := tr.AddDejection(ctx, "Emma", "vomit", nil, "2026-02-15T08:00:00")
			return err
		}},
		{name: "zero weight", act: func() error {
			_, err := tr.AddWeight(ctx, "Emma", 0, nil, "2026-02-15T08:00:00")
			return err
		}},
		{name: "bad date", act: func() error {
			_, err := tr.Summary(ctx, "Emma", "15.02.2026")
			return err
		}},
		{name: "bad report end", act: func() error {
			_, err := tr.Report(ctx, "Emma", "2026-02-15", "")
			return err
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.act(), events.ErrValidation)
		})
	}

	data, err := tr.Export()
	require.NoError(t, err)
	assert.Contains(t, string(data), `"next_id": 1`, "nothing was stored")
}

func Test_Tracker_UpdateFeeding(t *testing.T) {
	// setup
	ctx := context.Background()
	tr := givenEmmaTracker(t)

	// act
	found, err := tr.UpdateFeeding(ctx, 1, "solid", Ptr(200.0), Ptr(uint32(5)), Ptr("Edited"), "2026-02-15T09:30:00")

	// assert
	require.NoError(t, err)
	assert.True(t, found)

	data, err := tr.ListFeedings(ctx, "Emma", 10)
	require.NoError(t, err)
	feedings := decode[[]map[string]any](t, data)
	require.Len(t, feedings, 1)
	assert.Equal(t, "solid", feedings[0]["feeding_type"])
	assert.Equal(t, 200.0, feedings[0]["amount_ml"])
	assert.Equal(t, "Edited", feedings[0]["notes"])
	assert.Equal(t, "Emma", feedings[0]["baby_name"])
}

func Test_Tracker_Update_Misses(t *testing.T) {
	ctx := context.Background()
	tr := givenEmmaTracker(t)

	found, err := tr.UpdateFeeding(ctx, 2, "bottle", nil, nil, nil, "2026-02-15T09:30:00")
	assert.NoError(t, err)
	assert.False(t, found, "id 2 is a dejection")

	found, err = tr.UpdateDejection(ctx, 99, "urine", nil, "2026-02-15T09:30:00")
	assert.NoError(t, err)
	assert.False(t, found)

	_, err = tr.UpdateWeight(ctx, 3, -1, nil, "2026-02-15T09:30:00")
	assert.ErrorIs(t, err, events.ErrValidation)
}

func Test_Tracker_UpdateDejectionAndWeight(t *testing.T) {
	ctx := context.Background()
	tr := givenEmmaTracker(t)

	found, err := tr.UpdateDejection(ctx, 2, "urine", Ptr("wet"), "2026-02-15T09:00:00")
	require.NoError(t, err)
	assert.True(t, found)

	found, err = tr.UpdateWeight(ctx, 3, 3.6, nil, "2026-02-15T10:00:00")
	require.NoError(t, err)
	assert.True(t, found)

	data, err := tr.Summary(ctx, "Emma", "2026-02-15")
	require.NoError(t, err)
	summary := decode[map[string]any](t, data)
	assert.Equal(t, 1.0, summary["total_urine"])
	assert.Equal(t, 0.0, summary["total_poop"])
	assert.Equal(t, 3.6, summary["latest_weight_kg"])
}

func Test_Tracker_Delete(t *testing.T) {
	ctx := context.Background()
	tr := givenEmmaTracker(t)

	found, err := tr.DeleteWeight(ctx, 1)
	require.NoError(t, err)
	assert.False(t, found, "id 1 is a feeding")

	found, err = tr.DeleteFeeding(ctx, 1)
	require.NoError(t, err)
	assert.True(t, found)

	found, err = tr.DeleteFeeding(ctx, 1)
	require.NoError(t, err)
	assert.False(t, found)

	found, err = tr.Delete(ctx, events.KindDejection, 2)
	require.NoError(t, err)
	assert.True(t, found)
}

func Test_Tracker_ListFeedings(t *testing.T) {
	ctx := context.Background()
	tr := givenEmmaTracker(t)
	_, err := tr.AddFeeding(ctx, "Noah", "br", nil, Ptr(uint32(9)), nil, "2026-02-15T11:00:00")
	require.NoError(t, err)

	data, err := tr.ListFeedings(ctx, "", 1)
	require.NoError(t, err)
	feedings := decode[[]map[string]any](t, data)
	require.Len(t, feedings, 1)
	assert.Equal(t, "Noah", feedings[0]["baby_name"])
	assert.Equal(t, "breast-right", feedings[0]["feeding_type"])
	assert.Equal(t, 9.0, feedings[0]["duration_minutes"])
	assert.Nil(t, feedings[0]["amount_ml"])

	data, err = tr.ListFeedings(ctx, "Mia", 10)
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(data))
}

func Test_Tracker_ExportAndLoad(t *testing.T) {
	// setup
	ctx := context.Background()
	original := givenEmmaTracker(t)

	// act
	data, err := original.Export()
	require.NoError(t, err)
	loaded, err := tracker.LoadTracker(data)
	require.NoError(t, err)

	// assert
	before, err := original.Report(ctx, "Emma", "2026-02-14", "2026-02-18")
	require.NoError(t, err)
	after, err := loaded.Report(ctx, "Emma", "2026-02-14", "2026-02-18")
	require.NoError(t, err)
	assert.JSONEq(t, string(before), string(after))

	id, err := loaded.AddWeight(ctx, "Emma", 3.6, nil, "2026-02-16T10:00:00")
	require.NoError(t, err)
	assert.Equal(t, uint64(4), id)
}

func Test_LoadTracker_Malformed(t *testing.T) {
	logger, spy := NewSpyLogger()

	_, err := tracker.LoadTracker([]byte(`{"feedings": "nope"}`), tracker.WithLogger(logger))

	assert.ErrorIs(t, err, eventstore.ErrMalformedDocument)
	assert.True(t, spy.HasWarnLog("eventstore: document import failed"))
}

type failingRepository struct {
	tracker.Repository
	err error
}

func (r failingRepository) Add(context.Context, events.Event) (uint64, error) {
	return 0, r.err
}

func (r failingRepository) Query(context.Context, eventstore.Filter) (eventstore.History, error) {
	return eventstore.History{}, r.err
}

func Test_Tracker_PropagatesRepositoryErrors(t *testing.T) {
	ctx := context.Background()
	repoErr := errors.New("database is gone")
	tr := tracker.New(failingRepository{err: repoErr})

	_, err := tr.AddWeight(ctx, "Emma", 3.5, nil, "2026-02-15T10:00:00")
	assert.ErrorIs(t, err, repoErr)

	_, err = tr.TimelineForDay(ctx, "Emma", "2026-02-15")
	assert.ErrorIs(t, err, repoErr)

	_, err = tr.Export()
	assert.ErrorIs(t, err, tracker.ErrExportNotSupported)
}

func Test_Tracker_LogsMutations(t *testing.T) {
	logger, spy := NewSpyLogger()
	tr := tracker.NewInMemory(tracker.WithLogger(logger))

	id, err := tr.AddWeight(context.Background(), "Emma", 3.5, nil, "2026-02-15T10:00:00")
	require.NoError(t, err)

	assert.True(t, spy.HasLogWithAttr("tracker: event added", "id", id))
}
