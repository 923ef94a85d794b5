package tracker

import (
	"context"
	"errors"

	"github.com/babytracker/babytracker/eventstore"
	"github.com/babytracker/babytracker/events"
)

// Repository is the storage contract a Tracker delegates to.
// The JSON document store (DocumentRepository) and sqlengine.EventStore both implement it.
type Repository interface {
	// Add stores event under the next id of the shared sequence and returns that id.
	Add(ctx context.Context, event events.Event) (uint64, error)

	// Update replaces all fields except id and baby name. It returns false if there is no event of kind with id.
	Update(ctx context.Context, kind events.Kind, id uint64, event events.Event) (bool, error)

	// Delete returns false if there is no event of kind with id.
	Delete(ctx context.Context, kind events.Kind, id uint64) (bool, error)

	ListFeedings(ctx context.Context, babyName string, limit int) ([]events.Feeding, error)

	Query(ctx context.Context, filter eventstore.Filter) (eventstore.History, error)
}

// Exporter is implemented by repositories that can serialize their whole state.
type Exporter interface {
	Export() ([]byte, error)
}

// DocumentRepository adapts an in-memory eventstore.Store to Repository.
type DocumentRepository struct {
	store *eventstore.Store
}

func NewDocumentRepository(store *eventstore.Store) DocumentRepository {
	return DocumentRepository{store: store}
}

// Store returns the wrapped store.
func (r DocumentRepository) Store() *eventstore.Store {
	return r.store
}

func (r DocumentRepository) Add(_ context.Context, event events.Event) (uint64, error) {
	switch event.(type) {
	case events.Feeding, events.Dejection, events.Weight:
		return r.store.Add(event), nil
	}

	return 0, eventstore.ErrKindMismatch
}

func (r DocumentRepository) Update(_ context.Context, kind events.Kind, id uint64, event events.Event) (bool, error) {
	switch e := event.(type) {
	case events.Feeding:
		if kind == events.KindFeeding {
			return r.store.UpdateFeeding(id, e), nil
		}
	case events.Dejection:
		if kind == events.KindDejection {
			return r.store.UpdateDejection(id, e), nil
		}
	case events.Weight:
		if kind == events.KindWeight {
			return r.store.UpdateWeight(id, e), nil
		}
	}

	return false, eventstore.ErrKindMismatch
}

func (r DocumentRepository) Delete(_ context.Context, kind events.Kind, id uint64) (bool, error) {
	switch kind {
	case events.KindFeeding:
		return r.store.DeleteFeeding(id), nil
	case events.KindDejection:
		return r.store.DeleteDejection(id), nil
	case events.KindWeight:
		return r.store.DeleteWeight(id), nil
	}

	return false, errors.Join(eventstore.ErrKindMismatch, errors.New("unknown kind "+string(kind)))
}

func (r DocumentRepository) ListFeedings(_ context.Context, babyName string, limit int) ([]events.Feeding, error) {
	return r.store.ListFeedings(babyName, limit), nil
}

func (r DocumentRepository) Query(_ context.Context, filter eventstore.Filter) (eventstore.History, error) {
	return r.store.Query(filter), nil
}

func (r DocumentRepository) Export() ([]byte, error) {
	return r.store.Export()
}
