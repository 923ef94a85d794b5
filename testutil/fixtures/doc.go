// Package fixtures contains shared test data and test doubles for the babytracker packages.
//
// Fixture* functions build valid domain events and fail the test if construction fails.
// Given* functions arrange state in a store. LogHandlerSpy captures slog records so tests
// can assert on what was logged.
//
// This is testing infrastructure - not production code.
package fixtures
