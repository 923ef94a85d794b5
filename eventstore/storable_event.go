package eventstore

import (
	"errors"
	"fmt"
	"time"

	"github.com/babytracker/babytracker/events"
)

// StorableEvents is an alias type for a slice of StorableEvent
type StorableEvents = []StorableEvent

// StorableEvent is a DTO (data transfer object) used by relational engines to store events and query them back.
//
// The columns every kind shares are scalars, the kind-specific fields travel as PayloadJSON.
//
// While its properties are exported, it should only be constructed with the supplied factory methods:
//   - BuildStorableEvent
//   - StorableEventFrom
type StorableEvent struct {
	ID          IDUint
	Kind        events.Kind
	BabyName    string
	OccurredAt  time.Time
	PayloadJSON []byte
}

type feedingPayload struct {
	FeedingType     string   `json:"feeding_type"`
	AmountML        *float64 `json:"amount_ml"`
	DurationMinutes *uint32  `json:"duration_minutes"`
	Notes           *string  `json:"notes"`
}

type dejectionPayload struct {
	DejectionType string  `json:"dejection_type"`
	Notes         *string `json:"notes"`
}

type weightPayload struct {
	WeightKG float64 `json:"weight_kg"`
	Notes    *string `json:"notes"`
}

// BuildStorableEvent is a factory method for StorableEvent.
//
// It populates the StorableEvent with the given scalar input.
// Returns an error if kind is unknown or payloadJSON is not valid JSON.
func BuildStorableEvent(
	id IDUint,
	kind events.Kind,
	babyName string,
	occurredAt time.Time,
	payloadJSON []byte,
) (StorableEvent, error) {

	parsedKind, err := events.ParseKind(string(kind))
	if err != nil {
		return StorableEvent{}, err
	}

	if !documentJSON.Valid(payloadJSON) {
		return StorableEvent{}, ErrInvalidPayloadJSON
	}

	return StorableEvent{
		ID:          id,
		Kind:        parsedKind,
		BabyName:    babyName,
		OccurredAt:  events.ToOccurredAt(occurredAt),
		PayloadJSON: payloadJSON,
	}, nil
}

// StorableEventFrom converts a domain event into its storable form.
func StorableEventFrom(event events.Event) (StorableEvent, error) {
	var payload any

	switch e := event.(type) {
	case events.Feeding:
		payload = feedingPayload{
			FeedingType:     e.FeedingType.Tag(),
			AmountML:        e.AmountML,
			DurationMinutes: e.DurationMinutes,
			Notes:           e.Notes,
		}
	case events.Dejection:
		payload = dejectionPayload{DejectionType: e.DejectionType.Tag(), Notes: e.Notes}
	case events.Weight:
		payload = weightPayload{WeightKG: e.WeightKG, Notes: e.Notes}
	default:
		return StorableEvent{}, ErrKindMismatch
	}

	payloadJSON, err := documentJSON.Marshal(payload)
	if err != nil {
		return StorableEvent{}, err
	}

	return BuildStorableEvent(event.EventID(), event.EventKind(), event.Baby(), event.HasOccurredAt(), payloadJSON)
}

// ToEvent rebuilds the domain event through its validating constructor.
func (se StorableEvent) ToEvent() (events.Event, error) {
	switch se.Kind {
	case events.KindFeeding:
		var payload feedingPayload
		if err := unmarshalPayload(se.PayloadJSON, &payload); err != nil {
			return nil, err
		}

		feedingType, err := events.FeedingTypeFromTag(payload.FeedingType)
		if err != nil {
			return nil, err
		}

		f, err := events.BuildFeeding(
			se.BabyName, feedingType, payload.AmountML, payload.DurationMinutes, payload.Notes, se.OccurredAt,
		)
		if err != nil {
			return nil, err
		}

		f.ID = se.ID

		return f, nil

	case events.KindDejection:
		var payload dejectionPayload
		if err := unmarshalPayload(se.PayloadJSON, &payload); err != nil {
			return nil, err
		}

		dejectionType, err := events.DejectionTypeFromTag(payload.DejectionType)
		if err != nil {
			return nil, err
		}

		d, err := events.BuildDejection(se.BabyName, dejectionType, payload.Notes, se.OccurredAt)
		if err != nil {
			return nil, err
		}

		d.ID = se.ID

		return d, nil

	case events.KindWeight:
		var payload weightPayload
		if err := unmarshalPayload(se.PayloadJSON, &payload); err != nil {
			return nil, err
		}

		w, err := events.BuildWeight(se.BabyName, payload.WeightKG, payload.Notes, se.OccurredAt)
		if err != nil {
			return nil, err
		}

		w.ID = se.ID

		return w, nil
	}

	return nil, errors.Join(ErrKindMismatch, fmt.Errorf("cannot rebuild an event of kind %q", se.Kind))
}

func unmarshalPayload(payloadJSON []byte, payload any) error {
	if err := documentJSON.Unmarshal(payloadJSON, payload); err != nil {
		return errors.Join(ErrInvalidPayloadJSON, err)
	}

	return nil
}
