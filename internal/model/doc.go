// Package model defines the domain data structures shared across the app:
// batches and their immutable options, quality presets, clip ranges,
// progress events, per-item results and task statuses. The types carry no
// behavior beyond validation and small derived views.
package model
