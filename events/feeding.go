package events

import (
	"fmt"
	"time"
)

// Feeding records one feeding. AmountML is typical for bottles, DurationMinutes for breastfeeding;
// both are optional.
type Feeding struct {
	ID              uint64
	BabyName        BabyNameString
	FeedingType     FeedingType
	AmountML        *float64
	DurationMinutes *uint32
	Notes           *string
	Timestamp       OccurredAt
}

// BuildFeeding validates and normalizes its input into a Feeding with ID 0.
func BuildFeeding(
	babyName string,
	feedingType FeedingType,
	amountML *float64,
	durationMinutes *uint32,
	notes *string,
	timestamp time.Time,
) (Feeding, error) {

	name, err := normalizeBabyName(babyName)
	if err != nil {
		return Feeding{}, err
	}

	if !feedingType.IsValid() {
		return Feeding{}, newValidationError(
			fieldFeedingType,
			fmt.Sprintf("unknown feeding type, use: %s", feedingTypeForms),
		)
	}

	if amountML != nil && (!isFinite(*amountML) || *amountML < 0) {
		return Feeding{}, newValidationError(fieldAmountML, fmt.Sprintf("amount must be non-negative, got %v", *amountML))
	}

	return Feeding{
		BabyName:        name,
		FeedingType:     feedingType,
		AmountML:        copyOf(amountML),
		DurationMinutes: copyOf(durationMinutes),
		Notes:           normalizeNotes(notes),
		Timestamp:       ToOccurredAt(timestamp),
	}, nil
}

// EventKind returns KindFeeding.
func (f Feeding) EventKind() Kind {
	return KindFeeding
}

// EventID returns the assigned identity.
func (f Feeding) EventID() uint64 {
	return f.ID
}

// Baby returns the baby's name.
func (f Feeding) Baby() string {
	return f.BabyName
}

// HasOccurredAt returns when this feeding happened.
func (f Feeding) HasOccurredAt() time.Time {
	return f.Timestamp
}
