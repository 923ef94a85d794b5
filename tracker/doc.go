// Package tracker is the boundary of the babytracker engine.
//
// A Tracker accepts raw strings and primitives, validates them into domain values from
// package events, delegates to a Repository and serializes results to JSON. It never
// renders text for humans; that is left to its callers.
//
// Two repositories exist: DocumentRepository keeps everything in memory and persists one
// JSON document, sqlengine.EventStore keeps events in a relational database.
package tracker
