package events

import (
	"math"
	"strings"
)

// BabyNameString represents the name a care event is recorded for.
type BabyNameString = string

func normalizeBabyName(babyName string) (BabyNameString, error) {
	trimmed := strings.TrimSpace(babyName)
	if trimmed == "" {
		return "", newValidationError(fieldBabyName, reasonEmptyBabyName)
	}

	return trimmed, nil
}

// normalizeNotes turns blank notes into "no notes".
func normalizeNotes(notes *string) *string {
	if notes == nil {
		return nil
	}

	trimmed := strings.TrimSpace(*notes)
	if trimmed == "" {
		return nil
	}

	return &trimmed
}

// copyOf keeps constructed values from aliasing the caller's variables.
func copyOf[T any](v *T) *T {
	if v == nil {
		return nil
	}

	c := *v

	return &c
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
