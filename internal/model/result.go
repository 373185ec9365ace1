package model

import "time"

// ItemResult is the outcome of one request in a batch
type ItemResult struct {
	URL        string
	Status     TaskStatus
	Err        error
	StartedAt  time.Time
	FinishedAt time.Time
}

// BatchResult summarizes a finished batch. Items are in input order and
// cover every URL, including the ones skipped after cancellation.
type BatchResult struct {
	BatchID    string
	Items      []ItemResult
	StartedAt  time.Time
	FinishedAt time.Time
}

// Completed returns the number of items that finished successfully
func (r *BatchResult) Completed() int {
	n := 0
	for _, it := range r.Items {
		if it.Status == TaskStatusCompleted {
			n++
		}
	}
	return n
}

// Failed returns the items that ended in error
func (r *BatchResult) Failed() []ItemResult {
	var failed []ItemResult
	for _, it := range r.Items {
		if it.Status == TaskStatusError {
			failed = append(failed, it)
		}
	}
	return failed
}

// Cancelled reports whether any item was cut short by cancellation
func (r *BatchResult) Cancelled() bool {
	for _, it := range r.Items {
		if it.Status == TaskStatusCancelled {
			return true
		}
	}
	return false
}

// Duration returns the wall time of the batch
func (r *BatchResult) Duration() time.Duration {
	if r.FinishedAt.IsZero() {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}

// Outcome is the persisted record of a single request
type Outcome struct {
	BatchID    string
	URL        string
	Quality    string
	Format     Format
	Clip       string
	Status     TaskStatus
	Error      string
	StartedAt  time.Time
	FinishedAt time.Time
}

// NewOutcome combines an item result with the options it ran with
func NewOutcome(batchID string, opts BatchOptions, item ItemResult) Outcome {
	o := Outcome{
		BatchID:    batchID,
		URL:        item.URL,
		Quality:    opts.Quality.Label,
		Format:     opts.Format,
		Clip:       opts.Clip.Section(),
		Status:     item.Status,
		StartedAt:  item.StartedAt,
		FinishedAt: item.FinishedAt,
	}
	if item.Err != nil {
		o.Error = item.Err.Error()
	}
	return o
}
