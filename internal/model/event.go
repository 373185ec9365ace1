package model

// Progress is the latest parsed progress of the item in flight.
// Percent is in the 0..100 range; Speed and ETA are copied verbatim from
// yt-dlp output when present.
type Progress struct {
	Percent float64
	Speed   string
	ETA     string
}

// EventKind identifies what happened in a running batch
type EventKind int

const (
	EventItemStarted EventKind = iota
	EventProgress
	EventItemCompleted
	EventItemFailed
	EventBatchFinished
)

// String returns a short name for logs
func (k EventKind) String() string {
	switch k {
	case EventItemStarted:
		return "item_started"
	case EventProgress:
		return "progress"
	case EventItemCompleted:
		return "item_completed"
	case EventItemFailed:
		return "item_failed"
	case EventBatchFinished:
		return "batch_finished"
	default:
		return "unknown"
	}
}

// Event is posted by the orchestrator to whoever renders the batch.
// Index is zero based; Result is only set on EventBatchFinished.
type Event struct {
	Kind     EventKind
	BatchID  string
	Index    int
	Total    int
	URL      string
	Progress Progress
	Err      error
	Result   *BatchResult
}
