package events

import (
	"fmt"
	"strings"
)

// FeedingType is the closed set of ways a baby can be fed.
// The zero value is not a valid FeedingType.
type FeedingType uint8

const (
	BreastLeft FeedingType = iota + 1
	BreastRight
	Bottle
	Solid
)

const feedingTypeForms = "breast-left (bl), breast-right (br), bottle (b), solid (s)"

// AllFeedingTypes returns every FeedingType in declared order.
func AllFeedingTypes() []FeedingType {
	return []FeedingType{BreastLeft, BreastRight, Bottle, Solid}
}

// ParseFeedingType matches full names and short aliases case-insensitively.
func ParseFeedingType(s string) (FeedingType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "breast-left", "bl":
		return BreastLeft, nil
	case "breast-right", "br":
		return BreastRight, nil
	case "bottle", "b":
		return Bottle, nil
	case "solid", "s":
		return Solid, nil
	}

	return 0, newValidationError(
		fieldFeedingType,
		fmt.Sprintf("unknown feeding type %q, use: %s", s, feedingTypeForms),
	)
}

// FeedingTypeFromTag is the strict inverse of Tag. Aliases are not accepted.
func FeedingTypeFromTag(tag string) (FeedingType, error) {
	for _, ft := range AllFeedingTypes() {
		if ft.Tag() == tag {
			return ft, nil
		}
	}

	return 0, newValidationError(fieldFeedingType, fmt.Sprintf("unknown feeding type tag %q", tag))
}

// Tag returns the fixed lowercase-hyphenated identifier used in stored documents.
func (ft FeedingType) Tag() string {
	switch ft {
	case BreastLeft:
		return "breast-left"
	case BreastRight:
		return "breast-right"
	case Bottle:
		return "bottle"
	case Solid:
		return "solid"
	}

	return ""
}

// Label returns a human-readable name, e.g. "Breast (Left)".
func (ft FeedingType) Label() string {
	switch ft {
	case BreastLeft:
		return "Breast (Left)"
	case BreastRight:
		return "Breast (Right)"
	case Bottle:
		return "Bottle"
	case Solid:
		return "Solid"
	}

	return "Unknown"
}

// IsValid reports whether ft is one of the declared values.
func (ft FeedingType) IsValid() bool {
	return ft >= BreastLeft && ft <= Solid
}

func (ft FeedingType) String() string {
	return ft.Tag()
}
