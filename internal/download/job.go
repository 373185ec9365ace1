package download

import (
	"context"
	"sync"

	"github.com/ytget/yt-batch/internal/model"
)

// EventBufferSize is the capacity of a job's event channel
const EventBufferSize = 64

// Job is a batch running in the background.
type Job struct {
	ID    string
	Total int

	events chan model.Event
	cancel context.CancelFunc
	done   chan struct{}

	once   sync.Once
	result *model.BatchResult
}

func newJob(id string, total int, cancel context.CancelFunc) *Job {
	return &Job{
		ID:     id,
		Total:  total,
		events: make(chan model.Event, EventBufferSize),
		cancel: cancel,
		done:   make(chan struct{}),
	}
}

// Events returns the event stream. It is closed right after
// EventBatchFinished has been delivered.
func (j *Job) Events() <-chan model.Event {
	return j.events
}

// Cancel stops the running yt-dlp process and skips the remaining URLs
func (j *Job) Cancel() {
	j.cancel()
}

// Wait blocks until the batch is over and returns its result
func (j *Job) Wait() *model.BatchResult {
	<-j.done
	return j.result
}

// emit delivers an event. Progress events are dropped when the consumer
// lags behind; every other kind is always delivered.
func (j *Job) emit(ev model.Event) {
	if ev.Kind == model.EventProgress {
		select {
		case j.events <- ev:
		default:
		}
		return
	}
	j.events <- ev
}

func (j *Job) finish(result *model.BatchResult) {
	j.once.Do(func() {
		j.result = result
		close(j.events)
		close(j.done)
	})
}
