// Package eventstore owns the recorded care events.
//
// A Store keeps three ordered collections (feedings, dejections, weights) and one identity
// sequence shared by all of them, so ids interleave across kinds and are never reused.
// The whole Store is persisted as a single JSON document (Export/Import, Save/Load).
//
// Reads go through a Filter, built with a small fluent builder:
//
//	filter := BuildEventFilter().
//		ForBaby("Emma").
//		OccurredFrom(day).
//		AndOccurredUntil(day.AddDate(0, 0, 1)).
//		Finalize()
//
//	history := store.Query(filter)
//
// History is the input of the projections in package projection. StorableEvent is the
// DTO relational engines (see package sqlengine) use to map events to rows.
package eventstore
