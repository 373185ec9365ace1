package model

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func validOptions() BatchOptions {
	return BatchOptions{
		Quality:   QualityPreset{Label: "720p (HD)", Code: "18"},
		Format:    FormatVideo,
		OutputDir: "/tmp/out",
	}
}

func TestNewBatch(t *testing.T) {
	urls := []string{"https://youtube.com/watch?v=a", "https://youtube.com/watch?v=b"}

	batch, err := NewBatch(urls, validOptions())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if !strings.HasPrefix(batch.ID, BatchIDPrefix) {
		t.Errorf("Expected ID to start with %q, got %s", BatchIDPrefix, batch.ID)
	}

	if len(batch.ID) != len(BatchIDPrefix)+36 {
		t.Errorf("Expected ID length %d, got %d for ID: %s", len(BatchIDPrefix)+36, len(batch.ID), batch.ID)
	}

	// The batch owns its URL slice
	urls[0] = "changed"
	if batch.URLs[0] != "https://youtube.com/watch?v=a" {
		t.Errorf("Batch URLs should not alias the input slice, got %s", batch.URLs[0])
	}
}

func TestNewBatch_Errors(t *testing.T) {
	tests := []struct {
		name    string
		urls    []string
		mutate  func(*BatchOptions)
		wantErr error
	}{
		{
			name:    "empty URL list",
			urls:    nil,
			mutate:  func(*BatchOptions) {},
			wantErr: ErrNoURLs,
		},
		{
			name:    "missing output directory",
			urls:    []string{"https://x"},
			mutate:  func(o *BatchOptions) { o.OutputDir = "  " },
			wantErr: ErrNoOutputDir,
		},
		{
			name:    "empty quality code",
			urls:    []string{"https://x"},
			mutate:  func(o *BatchOptions) { o.Quality = QualityPreset{} },
			wantErr: ErrUnknownQuality,
		},
		{
			name:    "unknown format",
			urls:    []string{"https://x"},
			mutate:  func(o *BatchOptions) { o.Format = "Gif" },
			wantErr: ErrUnknownFormat,
		},
		{
			name:    "reversed clip",
			urls:    []string{"https://x"},
			mutate:  func(o *BatchOptions) { o.Clip = Clip{Start: "00:01:00", End: "00:00:30"} },
			wantErr: ErrInvalidClip,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := validOptions()
			tt.mutate(&opts)

			_, err := NewBatch(tt.urls, opts)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestBatch_Requests(t *testing.T) {
	batch, err := NewBatch([]string{"u1", "u2", "u3"}, validOptions())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	reqs := batch.Requests()
	if len(reqs) != 3 {
		t.Fatalf("Expected 3 requests, got %d", len(reqs))
	}

	for i, want := range []string{"u1", "u2", "u3"} {
		if reqs[i].URL != want {
			t.Errorf("Request %d: expected URL %s, got %s", i, want, reqs[i].URL)
		}
		if reqs[i].Quality.Code != "18" {
			t.Errorf("Request %d: expected quality code 18, got %s", i, reqs[i].Quality.Code)
		}
	}
}

func TestParseURLList(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{"empty", "", nil},
		{"only whitespace", "  \n\t\n", nil},
		{"single", "https://a", []string{"https://a"}},
		{"trims and skips blanks", "  https://a  \n\n https://b\r\n", []string{"https://a", "https://b"}},
		{"skips comments", "# mine\nhttps://a\n#https://b", []string{"https://a"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseURLList(tt.input)
			if len(got) != len(tt.expected) {
				t.Fatalf("expected %v, got %v", tt.expected, got)
			}
			for i := range got {
				if got[i] != tt.expected[i] {
					t.Errorf("item %d: expected %q, got %q", i, tt.expected[i], got[i])
				}
			}
		})
	}
}

func TestBatchResult(t *testing.T) {
	start := time.Now()
	res := &BatchResult{
		BatchID: "b",
		Items: []ItemResult{
			{URL: "a", Status: TaskStatusCompleted},
			{URL: "b", Status: TaskStatusError, Err: errors.New("exit 1")},
			{URL: "c", Status: TaskStatusCancelled},
		},
		StartedAt:  start,
		FinishedAt: start.Add(3 * time.Second),
	}

	if res.Completed() != 1 {
		t.Errorf("Expected 1 completed, got %d", res.Completed())
	}
	if failed := res.Failed(); len(failed) != 1 || failed[0].URL != "b" {
		t.Errorf("Expected only b to fail, got %+v", failed)
	}
	if !res.Cancelled() {
		t.Error("Expected batch to be reported as cancelled")
	}
	if res.Duration() != 3*time.Second {
		t.Errorf("Expected duration 3s, got %v", res.Duration())
	}
}

func TestNewOutcome(t *testing.T) {
	opts := validOptions()
	opts.Clip = Clip{Start: "00:00:10", End: "00:00:20"}

	o := NewOutcome("batch-1", opts, ItemResult{URL: "u", Status: TaskStatusError, Err: errors.New("boom")})

	if o.Clip != "*00:00:10-00:00:20" {
		t.Errorf("Expected clip section, got %q", o.Clip)
	}
	if o.Quality != "720p (HD)" {
		t.Errorf("Expected quality label, got %q", o.Quality)
	}
	if o.Error != "boom" {
		t.Errorf("Expected error text, got %q", o.Error)
	}
}
