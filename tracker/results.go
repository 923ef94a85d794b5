package tracker

import (
	jsoniter "github.com/json-iterator/go"

	"github.com/babytracker/babytracker/events"
	"github.com/babytracker/babytracker/projection"
)

var resultJSON = jsoniter.ConfigCompatibleWithStandardLibrary

type feedingResult struct {
	ID              uint64   `json:"id"`
	BabyName        string   `json:"baby_name"`
	FeedingType     string   `json:"feeding_type"`
	AmountML        *float64 `json:"amount_ml"`
	DurationMinutes *uint32  `json:"duration_minutes"`
	Notes           *string  `json:"notes"`
	Timestamp       string   `json:"timestamp"`
}

type timelineEntryResult struct {
	ID              uint64   `json:"id"`
	Kind            string   `json:"kind"`
	BabyName        string   `json:"baby_name"`
	Subtype         string   `json:"subtype"`
	AmountML        *float64 `json:"amount_ml"`
	DurationMinutes *uint32  `json:"duration_minutes"`
	WeightKG        *float64 `json:"weight_kg"`
	Notes           *string  `json:"notes"`
	Timestamp       string   `json:"timestamp"`
}

// summaryResult renders ByType as [tag, count] pairs, e.g. [["bottle", 2]].
type summaryResult struct {
	TotalFeedings  uint64   `json:"total_feedings"`
	TotalML        float64  `json:"total_ml"`
	TotalMinutes   uint64   `json:"total_minutes"`
	ByType         [][]any  `json:"by_type"`
	TotalUrine     uint64   `json:"total_urine"`
	TotalPoop      uint64   `json:"total_poop"`
	LatestWeightKG *float64 `json:"latest_weight_kg"`
}

type dayReportResult struct {
	Date          string   `json:"date"`
	TotalFeedings uint64   `json:"total_feedings"`
	TotalML       float64  `json:"total_ml"`
	TotalMinutes  uint64   `json:"total_minutes"`
	BreastLeft    uint64   `json:"breast_left"`
	BreastRight   uint64   `json:"breast_right"`
	Bottle        uint64   `json:"bottle"`
	Solid         uint64   `json:"solid"`
	TotalUrine    uint64   `json:"total_urine"`
	TotalPoop     uint64   `json:"total_poop"`
	WeightKG      *float64 `json:"weight_kg"`
}

func marshalResult(v any) ([]byte, error) {
	return resultJSON.Marshal(v)
}

func toFeedingResults(feedings []events.Feeding) []feedingResult {
	results := make([]feedingResult, 0, len(feedings))

	for _, f := range feedings {
		results = append(results, feedingResult{
			ID:              f.ID,
			BabyName:        f.BabyName,
			FeedingType:     f.FeedingType.Tag(),
			AmountML:        f.AmountML,
			DurationMinutes: f.DurationMinutes,
			Notes:           f.Notes,
			Timestamp:       events.FormatTimestamp(f.Timestamp),
		})
	}

	return results
}

func toTimelineResults(entries []projection.TimelineEntry) []timelineEntryResult {
	results := make([]timelineEntryResult, 0, len(entries))

	for _, e := range entries {
		results = append(results, timelineEntryResult{
			ID:              e.ID,
			Kind:            string(e.Kind),
			BabyName:        e.BabyName,
			Subtype:         e.Subtype,
			AmountML:        e.AmountML,
			DurationMinutes: e.DurationMinutes,
			WeightKG:        e.WeightKG,
			Notes:           e.Notes,
			Timestamp:       events.FormatTimestamp(e.Timestamp),
		})
	}

	return results
}

func toSummaryResult(s projection.Summary) summaryResult {
	byType := make([][]any, 0, len(s.ByType))
	for _, c := range s.ByType {
		byType = append(byType, []any{c.FeedingType.Tag(), c.Count})
	}

	return summaryResult{
		TotalFeedings:  s.TotalFeedings,
		TotalML:        s.TotalML,
		TotalMinutes:   s.TotalMinutes,
		ByType:         byType,
		TotalUrine:     s.TotalUrine,
		TotalPoop:      s.TotalPoop,
		LatestWeightKG: s.LatestWeightKG,
	}
}

func toDayReportResults(reports []projection.DayReport) []dayReportResult {
	results := make([]dayReportResult, 0, len(reports))

	for _, r := range reports {
		results = append(results, dayReportResult{
			Date:          r.Date,
			TotalFeedings: r.TotalFeedings,
			TotalML:       r.TotalML,
			TotalMinutes:  r.TotalMinutes,
			BreastLeft:    r.BreastLeft,
			BreastRight:   r.BreastRight,
			Bottle:        r.Bottle,
			Solid:         r.Solid,
			TotalUrine:    r.TotalUrine,
			TotalPoop:     r.TotalPoop,
			WeightKG:      r.WeightKG,
		})
	}

	return results
}
