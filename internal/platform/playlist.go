package platform

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/ytget/ytdlp/v2"

	"github.com/ytget/yt-batch/internal/model"
)

// Timeout constants
const (
	DefaultExpandTimeout = 60 * time.Second
)

// URL parameters
const (
	PlaylistParam           = "list="
	PlaylistQueryKey        = "list"
	ParamSeparator          = "&"
	YouTubeVideoURLTemplate = "https://www.youtube.com/watch?v=%s"
)

var ErrNotPlaylist = goerr.New("not a playlist URL")

// PlaylistFetcher lists the videos of a playlist
type PlaylistFetcher interface {
	Fetch(ctx context.Context, playlistID string) ([]model.PlaylistEntry, error)
}

// ytdlpFetcher lists playlist items through the ytdlp library
type ytdlpFetcher struct{}

func (ytdlpFetcher) Fetch(ctx context.Context, playlistID string) ([]model.PlaylistEntry, error) {
	items, err := ytdlp.New().GetPlaylistItemsAll(ctx, playlistID, 0)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get playlist items", goerr.V("playlist_id", playlistID))
	}

	entries := make([]model.PlaylistEntry, 0, len(items))
	for _, it := range items {
		entries = append(entries, model.PlaylistEntry{
			VideoID: it.VideoID,
			Title:   it.Title,
			URL:     fmt.Sprintf(YouTubeVideoURLTemplate, it.VideoID),
		})
	}
	return entries, nil
}

// PlaylistExpander replaces playlist URLs with the watch URLs of their videos
type PlaylistExpander struct {
	fetcher PlaylistFetcher
	timeout time.Duration
	logger  *slog.Logger
}

// NewPlaylistExpander creates an expander backed by the ytdlp library
func NewPlaylistExpander(logger *slog.Logger) *PlaylistExpander {
	if logger == nil {
		logger = slog.Default()
	}
	return &PlaylistExpander{
		fetcher: ytdlpFetcher{},
		timeout: DefaultExpandTimeout,
		logger:  logger,
	}
}

// SetTimeout sets the timeout for a single playlist lookup
func (e *PlaylistExpander) SetTimeout(timeout time.Duration) {
	e.timeout = timeout
}

// Resolve lists the videos of one playlist URL
func (e *PlaylistExpander) Resolve(ctx context.Context, rawURL string) (*model.Playlist, error) {
	if !IsPlaylistURL(rawURL) {
		return nil, goerr.Wrap(ErrNotPlaylist, "resolve playlist", goerr.V("url", rawURL))
	}
	playlistID := ExtractPlaylistID(rawURL)
	if playlistID == "" {
		return nil, goerr.Wrap(ErrNotPlaylist, "could not extract playlist ID", goerr.V("url", rawURL))
	}

	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	entries, err := e.fetcher.Fetch(ctx, playlistID)
	if err != nil {
		return nil, err
	}

	playlist := model.NewPlaylist(playlistID, rawURL)
	for i := range entries {
		if entries[i].VideoID == "" {
			continue
		}
		playlist.AddEntry(&entries[i])
	}
	return playlist, nil
}

// Expand returns urls with every playlist URL replaced by its videos, in
// order. A playlist that cannot be resolved, or resolves to nothing, is kept
// as is so yt-dlp can still try it.
func (e *PlaylistExpander) Expand(ctx context.Context, urls []string) []string {
	out := make([]string, 0, len(urls))
	for _, u := range urls {
		if !IsPlaylistURL(u) {
			out = append(out, u)
			continue
		}

		playlist, err := e.Resolve(ctx, u)
		if err != nil {
			e.logger.Warn("failed to expand playlist", slog.String("url", u), slog.Any("error", err))
			out = append(out, u)
			continue
		}
		if len(playlist.Entries) == 0 {
			e.logger.Warn("playlist is empty", slog.String("url", u))
			out = append(out, u)
			continue
		}

		e.logger.Info("expanded playlist",
			slog.String("playlist_id", playlist.ID),
			slog.Int("videos", len(playlist.Entries)))
		out = append(out, playlist.URLs()...)
	}
	return out
}

// IsPlaylistURL checks whether the URL carries a playlist ID
func IsPlaylistURL(rawURL string) bool {
	return strings.Contains(rawURL, PlaylistParam)
}

// ExtractPlaylistID extracts the playlist ID from the "list" query parameter
func ExtractPlaylistID(rawURL string) string {
	if u, err := url.Parse(rawURL); err == nil {
		if id := u.Query().Get(PlaylistQueryKey); id != "" {
			return id
		}
	}

	parts := strings.SplitN(rawURL, PlaylistParam, 2)
	if len(parts) < 2 {
		return ""
	}
	return strings.SplitN(parts[1], ParamSeparator, 2)[0]
}
