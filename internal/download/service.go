package download

import (
	"context"
	"log/slog"
	"runtime/debug"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/ytget/yt-batch/internal/model"
)

var ErrBatchRunning = goerr.New("a batch is already running")

// Service runs download batches. URLs of a batch are processed strictly in
// order, one yt-dlp process at a time.
type Service struct {
	runner   Runner
	recorder Recorder
	logger   *slog.Logger

	mu     sync.Mutex
	active *Job
}

// Option configures a Service
type Option func(*Service)

// WithRecorder persists an outcome for every URL processed
func WithRecorder(r Recorder) Option {
	return func(s *Service) {
		s.recorder = r
	}
}

// WithLogger sets the service logger
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewService creates a new download service
func NewService(runner Runner, opts ...Option) *Service {
	s := &Service{
		runner: runner,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run processes every URL of the batch in order and returns the result.
// A failed URL does not stop the batch. Once ctx is cancelled the remaining
// URLs are marked cancelled without starting a process. EventBatchFinished
// is always emitted last, exactly once.
func (s *Service) Run(ctx context.Context, batch *model.Batch, emit func(model.Event)) *model.BatchResult {
	if emit == nil {
		emit = func(model.Event) {}
	}

	reqs := batch.Requests()
	total := len(reqs)
	result := &model.BatchResult{
		BatchID:   batch.ID,
		Items:     make([]model.ItemResult, 0, total),
		StartedAt: time.Now(),
	}

	logger := s.logger.With(slog.String("batch_id", batch.ID))
	logger.Info("batch started",
		slog.Int("urls", total),
		slog.String("quality", batch.Options.Quality.Label),
		slog.String("format", string(batch.Options.Format)),
		slog.String("output_dir", batch.Options.OutputDir))

	for i, req := range reqs {
		item := s.runRequest(ctx, logger, batch.ID, i, total, req, emit)
		result.Items = append(result.Items, item)
		s.record(ctx, logger, batch, item)
	}

	result.FinishedAt = time.Now()
	logger.Info("batch finished",
		slog.Int("completed", result.Completed()),
		slog.Int("failed", len(result.Failed())),
		slog.Bool("cancelled", result.Cancelled()),
		slog.Duration("elapsed", result.Duration()))

	emit(model.Event{
		Kind:    model.EventBatchFinished,
		BatchID: batch.ID,
		Index:   total,
		Total:   total,
		Result:  result,
	})
	return result
}

// runRequest launches exactly one yt-dlp process for the request
func (s *Service) runRequest(ctx context.Context, logger *slog.Logger, batchID string, index, total int, req model.DownloadRequest, emit func(model.Event)) model.ItemResult {
	item := model.ItemResult{URL: req.URL, Status: model.TaskStatusPending}

	if err := ctx.Err(); err != nil {
		item.Status = model.TaskStatusCancelled
		item.Err = err
		return item
	}

	base := model.Event{BatchID: batchID, Index: index, Total: total, URL: req.URL}

	item.StartedAt = time.Now()
	item.Status = model.TaskStatusDownloading
	started := base
	started.Kind = model.EventItemStarted
	emit(started)

	args := BuildArgs(req)
	logger.Debug("running yt-dlp", slog.Int("index", index), slog.Any("args", args))

	err := s.runner.Run(ctx, args, func(p model.Progress) {
		ev := base
		ev.Kind = model.EventProgress
		ev.Progress = p
		emit(ev)
	})
	item.FinishedAt = time.Now()

	switch {
	case err == nil:
		item.Status = model.TaskStatusCompleted
		done := base
		done.Kind = model.EventItemCompleted
		done.Progress = model.Progress{Percent: 100}
		emit(done)
		logger.Info("download completed", slog.String("url", req.URL))

	case ctx.Err() != nil:
		item.Status = model.TaskStatusCancelled
		item.Err = ctx.Err()
		logger.Info("download cancelled", slog.String("url", req.URL))

	default:
		item.Status = model.TaskStatusError
		item.Err = err
		failed := base
		failed.Kind = model.EventItemFailed
		failed.Err = err
		emit(failed)
		logger.Warn("download failed", slog.String("url", req.URL), slog.Any("error", err))
	}

	return item
}

// record stores the outcome; failures only get logged
func (s *Service) record(ctx context.Context, logger *slog.Logger, batch *model.Batch, item model.ItemResult) {
	if s.recorder == nil {
		return
	}
	outcome := model.NewOutcome(batch.ID, batch.Options, item)
	// A cancelled batch still records what happened to each URL
	if err := s.recorder.Record(context.WithoutCancel(ctx), outcome); err != nil {
		logger.Warn("failed to record outcome", slog.String("url", item.URL), slog.Any("error", err))
	}
}

// Start runs the batch on a single background goroutine and returns a Job
// whose Events channel must be drained until it is closed.
func (s *Service) Start(ctx context.Context, batch *model.Batch) (*Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.active != nil {
		return nil, goerr.Wrap(ErrBatchRunning, "cannot start batch",
			goerr.V("active_batch_id", s.active.ID),
			goerr.V("batch_id", batch.ID))
	}

	jobCtx, cancel := context.WithCancel(ctx)
	job := newJob(batch.ID, len(batch.URLs), cancel)
	s.active = job

	go s.runJob(jobCtx, batch, job)

	return job, nil
}

// runJob drives a background batch and guarantees the job is finished
func (s *Service) runJob(ctx context.Context, batch *model.Batch, job *Job) {
	var result *model.BatchResult

	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("panic in batch worker",
				slog.String("batch_id", batch.ID),
				slog.Any("recover", r),
				slog.String("stack", string(debug.Stack())))
			s.release(job)
			result = &model.BatchResult{BatchID: batch.ID, FinishedAt: time.Now()}
			job.emit(model.Event{Kind: model.EventBatchFinished, BatchID: batch.ID, Total: job.Total, Result: result})
		}
		job.finish(result)
		job.cancel()
	}()

	result = s.Run(ctx, batch, func(ev model.Event) {
		if ev.Kind == model.EventBatchFinished {
			// Free the slot before the consumer learns the batch is over
			s.release(job)
		}
		job.emit(ev)
	})
}

func (s *Service) release(job *Job) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active == job {
		s.active = nil
	}
}
