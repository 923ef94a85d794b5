package events

import (
	"fmt"
	"strings"
	"time"
)

// Kind names one of the three care event collections.
type Kind string

const (
	KindFeeding   Kind = "feeding"
	KindDejection Kind = "dejection"
	KindWeight    Kind = "weight"
)

// Events is a slice of Event instances.
type Events = []Event

// Event is implemented by Feeding, Dejection and Weight.
type Event interface {
	// EventKind returns which collection the event belongs to.
	EventKind() Kind

	// EventID returns the identity assigned by a store, or 0 while unassigned.
	EventID() uint64

	// Baby returns the (trimmed) name of the baby the event was recorded for.
	Baby() string

	// HasOccurredAt returns when this event occurred.
	HasOccurredAt() time.Time
}

// ParseKind parses a kind name case-insensitively.
func ParseKind(s string) (Kind, error) {
	switch Kind(strings.ToLower(strings.TrimSpace(s))) {
	case KindFeeding:
		return KindFeeding, nil
	case KindDejection:
		return KindDejection, nil
	case KindWeight:
		return KindWeight, nil
	}

	return "", newValidationError(
		fieldKind,
		fmt.Sprintf("unknown kind %q, use: feeding, dejection, weight", s),
	)
}
