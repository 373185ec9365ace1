package platform

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/ytget/yt-batch/internal/model"
)

type fakeFetcher struct {
	playlists map[string][]model.PlaylistEntry
	err       error
	calls     []string
}

func (f *fakeFetcher) Fetch(_ context.Context, playlistID string) ([]model.PlaylistEntry, error) {
	f.calls = append(f.calls, playlistID)
	if f.err != nil {
		return nil, f.err
	}
	return f.playlists[playlistID], nil
}

func newTestExpander(f PlaylistFetcher) *PlaylistExpander {
	e := NewPlaylistExpander(slog.New(slog.NewTextHandler(io.Discard, nil)))
	e.fetcher = f
	return e
}

func entry(id string) model.PlaylistEntry {
	return model.PlaylistEntry{VideoID: id, Title: "Video " + id, URL: "https://www.youtube.com/watch?v=" + id}
}

func TestIsPlaylistURL(t *testing.T) {
	tests := []struct {
		name     string
		url      string
		expected bool
	}{
		{"playlist page", "https://www.youtube.com/playlist?list=PL123", true},
		{"video in playlist", "https://www.youtube.com/watch?v=abc&list=PL123", true},
		{"single video", "https://www.youtube.com/watch?v=abc", false},
		{"short link", "https://youtu.be/abc", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsPlaylistURL(tt.url); got != tt.expected {
				t.Errorf("IsPlaylistURL(%s) = %v, expected %v", tt.url, got, tt.expected)
			}
		})
	}
}

func TestExtractPlaylistID(t *testing.T) {
	tests := []struct {
		name     string
		url      string
		expected string
	}{
		{"playlist page", "https://www.youtube.com/playlist?list=PL123", "PL123"},
		{"list after video", "https://www.youtube.com/watch?v=abc&list=PL456&index=2", "PL456"},
		{"list first", "https://www.youtube.com/watch?list=PL789&v=abc", "PL789"},
		{"not a url", "list=PLraw&x=1", "PLraw"},
		{"no list", "https://www.youtube.com/watch?v=abc", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractPlaylistID(tt.url); got != tt.expected {
				t.Errorf("ExtractPlaylistID(%s) = %q, expected %q", tt.url, got, tt.expected)
			}
		})
	}
}

func TestPlaylistExpander_Resolve(t *testing.T) {
	fetcher := &fakeFetcher{playlists: map[string][]model.PlaylistEntry{
		"PL1": {entry("a"), entry("b"), entry("a"), {VideoID: ""}},
	}}
	e := newTestExpander(fetcher)

	playlist, err := e.Resolve(context.Background(), "https://www.youtube.com/playlist?list=PL1")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if playlist.ID != "PL1" {
		t.Errorf("expected ID PL1, got %s", playlist.ID)
	}
	// Duplicates and entries without ID are dropped
	if len(playlist.Entries) != 2 {
		t.Errorf("expected 2 entries, got %d", len(playlist.Entries))
	}

	_, err = e.Resolve(context.Background(), "https://www.youtube.com/watch?v=x")
	if !errors.Is(err, ErrNotPlaylist) {
		t.Errorf("expected ErrNotPlaylist, got %v", err)
	}
}

func TestPlaylistExpander_Expand(t *testing.T) {
	fetcher := &fakeFetcher{playlists: map[string][]model.PlaylistEntry{
		"PL1":   {entry("a"), entry("b")},
		"EMPTY": {},
	}}
	e := newTestExpander(fetcher)

	input := []string{
		"https://youtu.be/first",
		"https://www.youtube.com/playlist?list=PL1",
		"https://www.youtube.com/playlist?list=EMPTY",
		"https://youtu.be/last",
	}

	got := e.Expand(context.Background(), input)
	expected := []string{
		"https://youtu.be/first",
		"https://www.youtube.com/watch?v=a",
		"https://www.youtube.com/watch?v=b",
		"https://www.youtube.com/playlist?list=EMPTY",
		"https://youtu.be/last",
	}

	if len(got) != len(expected) {
		t.Fatalf("expected %v, got %v", expected, got)
	}
	for i := range expected {
		if got[i] != expected[i] {
			t.Errorf("position %d: expected %s, got %s", i, expected[i], got[i])
		}
	}
	if len(fetcher.calls) != 2 {
		t.Errorf("expected 2 fetches, got %d", len(fetcher.calls))
	}
}

func TestPlaylistExpander_ExpandKeepsURLOnError(t *testing.T) {
	e := newTestExpander(&fakeFetcher{err: errors.New("network down")})

	input := []string{"https://www.youtube.com/playlist?list=PL1"}
	got := e.Expand(context.Background(), input)

	if len(got) != 1 || got[0] != input[0] {
		t.Errorf("expected original URL to be kept, got %v", got)
	}
}

type deadlineFetcher struct {
	remaining time.Duration
	hasLimit  bool
}

func (f *deadlineFetcher) Fetch(ctx context.Context, _ string) ([]model.PlaylistEntry, error) {
	deadline, ok := ctx.Deadline()
	f.hasLimit = ok
	if ok {
		f.remaining = time.Until(deadline)
	}
	return []model.PlaylistEntry{entry("a")}, nil
}

func TestPlaylistExpander_SetTimeout(t *testing.T) {
	fetcher := &deadlineFetcher{}
	e := newTestExpander(fetcher)

	e.SetTimeout(2 * time.Second)
	if _, err := e.Resolve(context.Background(), "https://www.youtube.com/playlist?list=PL1"); err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if !fetcher.hasLimit || fetcher.remaining > 2*time.Second {
		t.Errorf("expected a deadline within 2s, got limit=%v remaining=%v", fetcher.hasLimit, fetcher.remaining)
	}

	e.SetTimeout(0)
	if _, err := e.Resolve(context.Background(), "https://www.youtube.com/playlist?list=PL1"); err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if fetcher.hasLimit {
		t.Error("expected no deadline with a zero timeout")
	}
}
