package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
)

const BatchIDPrefix = "batch-"

var (
	ErrNoURLs      = goerr.New("no URLs provided")
	ErrNoOutputDir = goerr.New("no output directory provided")
)

// BatchOptions is the configuration captured once when a batch starts.
// Later edits in the form do not affect a batch already running.
type BatchOptions struct {
	Quality   QualityPreset
	Format    Format
	Clip      Clip
	OutputDir string
}

// Validate checks the options that every request of the batch depends on
func (o BatchOptions) Validate() error {
	if strings.TrimSpace(o.OutputDir) == "" {
		return ErrNoOutputDir
	}
	if o.Quality.Code == "" {
		return goerr.Wrap(ErrUnknownQuality, "quality code is empty", goerr.V("label", o.Quality.Label))
	}
	if o.Format != FormatVideo && o.Format != FormatAudio {
		return goerr.Wrap(ErrUnknownFormat, "validate options", goerr.V("format", o.Format))
	}
	return o.Clip.Validate()
}

// DownloadRequest is one URL plus the batch options; it yields exactly one
// yt-dlp invocation.
type DownloadRequest struct {
	URL string
	BatchOptions
}

// Batch is the ordered set of requests derived from one submission
type Batch struct {
	ID        string
	URLs      []string
	Options   BatchOptions
	CreatedAt time.Time
}

// NewBatch validates the input and creates a batch with a fresh ID.
// The URL slice is copied so the caller may reuse it.
func NewBatch(urls []string, opts BatchOptions) (*Batch, error) {
	if len(urls) == 0 {
		return nil, ErrNoURLs
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	owned := make([]string, len(urls))
	copy(owned, urls)

	return &Batch{
		ID:        generateBatchID(),
		URLs:      owned,
		Options:   opts,
		CreatedAt: time.Now(),
	}, nil
}

// Requests expands the batch into one request per URL, in input order
func (b *Batch) Requests() []DownloadRequest {
	reqs := make([]DownloadRequest, 0, len(b.URLs))
	for _, u := range b.URLs {
		reqs = append(reqs, DownloadRequest{URL: u, BatchOptions: b.Options})
	}
	return reqs
}

// ParseURLList splits free text into URLs, one per line. Blank lines and
// lines starting with '#' are skipped.
func ParseURLList(text string) []string {
	var urls []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(strings.TrimSuffix(line, "\r"))
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		urls = append(urls, line)
	}
	return urls
}

// generateBatchID uses UUID v7 so IDs sort by creation time
func generateBatchID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return fmt.Sprintf(BatchIDPrefix+"%d", time.Now().UnixNano())
	}
	return BatchIDPrefix + id.String()
}
