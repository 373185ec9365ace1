// Package history persists the outcome of every downloaded URL in a local
// SQLite database.
package history
