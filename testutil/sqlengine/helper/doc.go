// Package helper provides test helpers for the sql engine: migrated sqlite databases and
// event stores on top of them.
package helper
