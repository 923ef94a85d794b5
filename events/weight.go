package events

import (
	"fmt"
	"time"
)

// Weight records one weight measurement in kilograms.
type Weight struct {
	ID        uint64
	BabyName  BabyNameString
	WeightKG  float64
	Notes     *string
	Timestamp OccurredAt
}

// BuildWeight validates and normalizes its input into a Weight with ID 0.
// Zero and negative weights are rejected.
func BuildWeight(
	babyName string,
	weightKG float64,
	notes *string,
	timestamp time.Time,
) (Weight, error) {

	name, err := normalizeBabyName(babyName)
	if err != nil {
		return Weight{}, err
	}

	if !isFinite(weightKG) || weightKG <= 0 {
		return Weight{}, newValidationError(fieldWeightKG, fmt.Sprintf("weight must be positive, got %v", weightKG))
	}

	return Weight{
		BabyName:  name,
		WeightKG:  weightKG,
		Notes:     normalizeNotes(notes),
		Timestamp: ToOccurredAt(timestamp),
	}, nil
}

// EventKind returns KindWeight.
func (w Weight) EventKind() Kind {
	return KindWeight
}

// EventID returns the assigned identity.
func (w Weight) EventID() uint64 {
	return w.ID
}

// Baby returns the baby's name.
func (w Weight) Baby() string {
	return w.BabyName
}

// HasOccurredAt returns when the measurement was taken.
func (w Weight) HasOccurredAt() time.Time {
	return w.Timestamp
}
