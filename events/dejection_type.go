package events

import (
	"fmt"
	"strings"
)

// DejectionType is the closed set of diaper events.
// The zero value is not a valid DejectionType.
type DejectionType uint8

const (
	Urine DejectionType = iota + 1
	Poop
)

const dejectionTypeForms = "urine (pee, u), poop (p)"

// AllDejectionTypes returns every DejectionType in declared order.
func AllDejectionTypes() []DejectionType {
	return []DejectionType{Urine, Poop}
}

// ParseDejectionType matches full names and short aliases case-insensitively.
func ParseDejectionType(s string) (DejectionType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "urine", "pee", "u":
		return Urine, nil
	case "poop", "p":
		return Poop, nil
	}

	return 0, newValidationError(
		fieldDejectionType,
		fmt.Sprintf("unknown dejection type %q, use: %s", s, dejectionTypeForms),
	)
}

// DejectionTypeFromTag is the strict inverse of Tag.
func DejectionTypeFromTag(tag string) (DejectionType, error) {
	for _, dt := range AllDejectionTypes() {
		if dt.Tag() == tag {
			return dt, nil
		}
	}

	return 0, newValidationError(fieldDejectionType, fmt.Sprintf("unknown dejection type tag %q", tag))
}

// Tag returns the fixed lowercase identifier used in stored documents.
func (dt DejectionType) Tag() string {
	switch dt {
	case Urine:
		return "urine"
	case Poop:
		return "poop"
	}

	return ""
}

// Label returns a human-readable name.
func (dt DejectionType) Label() string {
	switch dt {
	case Urine:
		return "Urine"
	case Poop:
		return "Poop"
	}

	return "Unknown"
}

// IsValid reports whether dt is one of the declared values.
func (dt DejectionType) IsValid() bool {
	return dt == Urine || dt == Poop
}

func (dt DejectionType) String() string {
	return dt.Tag()
}
