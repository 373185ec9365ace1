package download

import (
	"context"

	"github.com/ytget/yt-batch/internal/model"
)

// Runner executes one yt-dlp invocation and reports parsed progress.
// A nil error means the process exited with status zero.
type Runner interface {
	Run(ctx context.Context, args []string, onProgress func(model.Progress)) error
}

// Recorder persists per-URL outcomes. Errors are logged by the caller and
// never fail a batch.
type Recorder interface {
	Record(ctx context.Context, outcome model.Outcome) error
}

// Downloader defines the interface for the batch download service.
type Downloader interface {
	// Run processes the batch on the calling goroutine, emitting events
	// in order, and returns when every URL has been handled.
	Run(ctx context.Context, batch *model.Batch, emit func(model.Event)) *model.BatchResult

	// Start runs the batch on a background goroutine. Only one batch may
	// run at a time.
	Start(ctx context.Context, batch *model.Batch) (*Job, error)
}
