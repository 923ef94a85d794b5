// Package config reads the babytracker settings from the environment and opens the
// database connections the selected storage backend needs.
package config
