package eventstore

import (
	"errors"
	"fmt"
	"io"

	jsoniter "github.com/json-iterator/go"

	"github.com/babytracker/babytracker/events"
)

// documentJSON keeps floats exact, which jsoniter.ConfigFastest does not.
var documentJSON = jsoniter.ConfigCompatibleWithStandardLibrary

// document is the interchange shape of a whole Store. Optional fields are written as null.
// Missing "dejections" or "weights" keys read as empty collections; "feedings" and "next_id" are required.
type document struct {
	Feedings   *[]feedingRecord  `json:"feedings"`
	Dejections []dejectionRecord `json:"dejections"`
	Weights    []weightRecord    `json:"weights"`
	NextID     *IDUint           `json:"next_id"`
}

type feedingRecord struct {
	ID              IDUint   `json:"id"`
	BabyName        string   `json:"baby_name"`
	FeedingType     string   `json:"feeding_type"`
	AmountML        *float64 `json:"amount_ml"`
	DurationMinutes *uint32  `json:"duration_minutes"`
	Notes           *string  `json:"notes"`
	Timestamp       string   `json:"timestamp"`
}

type dejectionRecord struct {
	ID            IDUint  `json:"id"`
	BabyName      string  `json:"baby_name"`
	DejectionType string  `json:"dejection_type"`
	Notes         *string `json:"notes"`
	Timestamp     string  `json:"timestamp"`
}

type weightRecord struct {
	ID        IDUint  `json:"id"`
	BabyName  string  `json:"baby_name"`
	WeightKG  float64 `json:"weight_kg"`
	Notes     *string `json:"notes"`
	Timestamp string  `json:"timestamp"`
}

// Export serializes the whole Store, including the id counter, to one JSON document.
func (s *Store) Export() ([]byte, error) {
	doc := document{
		Feedings:   new([]feedingRecord),
		Dejections: make([]dejectionRecord, 0, len(s.dejections)),
		Weights:    make([]weightRecord, 0, len(s.weights)),
		NextID:     &s.nextID,
	}

	*doc.Feedings = make([]feedingRecord, 0, len(s.feedings))
	for _, f := range s.feedings {
		*doc.Feedings = append(*doc.Feedings, feedingRecord{
			ID:              f.ID,
			BabyName:        f.BabyName,
			FeedingType:     f.FeedingType.Tag(),
			AmountML:        f.AmountML,
			DurationMinutes: f.DurationMinutes,
			Notes:           f.Notes,
			Timestamp:       events.FormatTimestamp(f.Timestamp),
		})
	}

	for _, d := range s.dejections {
		doc.Dejections = append(doc.Dejections, dejectionRecord{
			ID:            d.ID,
			BabyName:      d.BabyName,
			DejectionType: d.DejectionType.Tag(),
			Notes:         d.Notes,
			Timestamp:     events.FormatTimestamp(d.Timestamp),
		})
	}

	for _, w := range s.weights {
		doc.Weights = append(doc.Weights, weightRecord{
			ID:        w.ID,
			BabyName:  w.BabyName,
			WeightKG:  w.WeightKG,
			Notes:     w.Notes,
			Timestamp: events.FormatTimestamp(w.Timestamp),
		})
	}

	data, err := documentJSON.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, err
	}

	s.logCounts(logMsgDocumentSaved)

	return data, nil
}

// Save writes the exported document to w.
func (s *Store) Save(w io.Writer) error {
	data, err := s.Export()
	if err != nil {
		return err
	}

	_, err = w.Write(data)

	return err
}

// Import reconstructs a Store from a document produced by Export.
// Every record is validated again. Nothing is recovered from a malformed document.
func Import(data []byte, options ...Option) (*Store, error) {
	s := NewStore(options...)

	if err := s.importDocument(data); err != nil {
		if s.logger != nil {
			s.logger.Warn(logMsgImportFailed, logAttrError, err.Error())
		}

		return nil, errors.Join(ErrMalformedDocument, err)
	}

	s.logCounts(logMsgDocumentLoaded)

	return s, nil
}

// Load reads a whole document from r and imports it.
func Load(r io.Reader, options ...Option) (*Store, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	return Import(data, options...)
}

func (s *Store) importDocument(data []byte) error {
	var doc document
	if err := documentJSON.Unmarshal(data, &doc); err != nil {
		return err
	}

	if doc.Feedings == nil {
		return errors.New(`missing "feedings"`)
	}

	if doc.NextID == nil {
		return errors.New(`missing "next_id"`)
	}

	seen := make(map[IDUint]events.Kind)
	claim := func(kind events.Kind, id IDUint) error {
		if id == 0 {
			return fmt.Errorf("%s has no id", kind)
		}

		if other, ok := seen[id]; ok {
			return fmt.Errorf("id %d is used by a %s and a %s", id, other, kind)
		}

		seen[id] = kind

		return nil
	}

	for _, r := range *doc.Feedings {
		f, err := r.toFeeding()
		if err != nil {
			return fmt.Errorf("feeding %d: %w", r.ID, err)
		}

		if err = claim(events.KindFeeding, f.ID); err != nil {
			return err
		}

		s.feedings = append(s.feedings, f)
	}

	for _, r := range doc.Dejections {
		d, err := r.toDejection()
		if err != nil {
			return fmt.Errorf("dejection %d: %w", r.ID, err)
		}

		if err = claim(events.KindDejection, d.ID); err != nil {
			return err
		}

		s.dejections = append(s.dejections, d)
	}

	for _, r := range doc.Weights {
		w, err := r.toWeight()
		if err != nil {
			return fmt.Errorf("weight %d: %w", r.ID, err)
		}

		if err = claim(events.KindWeight, w.ID); err != nil {
			return err
		}

		s.weights = append(s.weights, w)
	}

	if *doc.NextID < firstID {
		return fmt.Errorf("next_id must be at least %d", firstID)
	}

	for id := range seen {
		if id >= *doc.NextID {
			return fmt.Errorf("id %d is not below next_id %d", id, *doc.NextID)
		}
	}

	s.nextID = *doc.NextID

	return nil
}

func (r feedingRecord) toFeeding() (events.Feeding, error) {
	feedingType, err := events.FeedingTypeFromTag(r.FeedingType)
	if err != nil {
		return events.Feeding{}, err
	}

	timestamp, err := events.ParseTimestamp(r.Timestamp)
	if err != nil {
		return events.Feeding{}, err
	}

	f, err := events.BuildFeeding(r.BabyName, feedingType, r.AmountML, r.DurationMinutes, r.Notes, timestamp)
	if err != nil {
		return events.Feeding{}, err
	}

	f.ID = r.ID

	return f, nil
}

func (r dejectionRecord) toDejection() (events.Dejection, error) {
	dejectionType, err := events.DejectionTypeFromTag(r.DejectionType)
	if err != nil {
		return events.Dejection{}, err
	}

	timestamp, err := events.ParseTimestamp(r.Timestamp)
	if err != nil {
		return events.Dejection{}, err
	}

	d, err := events.BuildDejection(r.BabyName, dejectionType, r.Notes, timestamp)
	if err != nil {
		return events.Dejection{}, err
	}

	d.ID = r.ID

	return d, nil
}

func (r weightRecord) toWeight() (events.Weight, error) {
	timestamp, err := events.ParseTimestamp(r.Timestamp)
	if err != nil {
		return events.Weight{}, err
	}

	w, err := events.BuildWeight(r.BabyName, r.WeightKG, r.Notes, timestamp)
	if err != nil {
		return events.Weight{}, err
	}

	w.ID = r.ID

	return w, nil
}
