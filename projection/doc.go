// Package projection derives read models from an eventstore.History.
//
// Every function here is pure: it takes the history and a filter and returns a value,
// without touching any store. The Tracker facade and the SQL engine both feed their
// query results through these functions, so a summary means the same thing on every backend.
//
// In Domain-Driven Design or Hexagonal Architecture terminology, this would be
// called the 'query' side of the 'application' layer.
package projection
