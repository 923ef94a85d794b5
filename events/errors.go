package events

import (
	"errors"
)

// ErrValidation is matched (via errors.Is) by every *ValidationError.
var ErrValidation = errors.New("validation failed")

const (
	fieldKind           = "kind"
	fieldBabyName       = "baby_name"
	fieldFeedingType    = "feeding_type"
	fieldDejectionType  = "dejection_type"
	fieldAmountML       = "amount_ml"
	fieldWeightKG       = "weight_kg"
	fieldTimestamp      = "timestamp"
	fieldDate           = "date"
	reasonEmptyBabyName = "baby name cannot be empty"
)

// ValidationError reports raw input that cannot become a domain value.
// Nothing is stored when one is returned.
type ValidationError struct {
	Field  string
	Reason string
}

func newValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

func (e *ValidationError) Error() string {
	return "invalid " + e.Field + ": " + e.Reason
}

// Unwrap makes errors.Is(err, ErrValidation) hold.
func (e *ValidationError) Unwrap() error {
	return ErrValidation
}
