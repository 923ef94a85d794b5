package events

import (
	"fmt"
	"time"
)

// Dejection records one diaper event.
type Dejection struct {
	ID            uint64
	BabyName      BabyNameString
	DejectionType DejectionType
	Notes         *string
	Timestamp     OccurredAt
}

// BuildDejection validates and normalizes its input into a Dejection with ID 0.
func BuildDejection(
	babyName string,
	dejectionType DejectionType,
	notes *string,
	timestamp time.Time,
) (Dejection, error) {

	name, err := normalizeBabyName(babyName)
	if err != nil {
		return Dejection{}, err
	}

	if !dejectionType.IsValid() {
		return Dejection{}, newValidationError(
			fieldDejectionType,
			fmt.Sprintf("unknown dejection type, use: %s", dejectionTypeForms),
		)
	}

	return Dejection{
		BabyName:      name,
		DejectionType: dejectionType,
		Notes:         normalizeNotes(notes),
		Timestamp:     ToOccurredAt(timestamp),
	}, nil
}

// EventKind returns KindDejection.
func (d Dejection) EventKind() Kind {
	return KindDejection
}

// EventID returns the assigned identity.
func (d Dejection) EventID() uint64 {
	return d.ID
}

// Baby returns the baby's name.
func (d Dejection) Baby() string {
	return d.BabyName
}

// HasOccurredAt returns when this dejection happened.
func (d Dejection) HasOccurredAt() time.Time {
	return d.Timestamp
}
