package history

import (
	"context"
	"database/sql"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/m-mizutani/goerr/v2"
	_ "modernc.org/sqlite"

	"github.com/ytget/yt-batch/internal/model"
)

// MemoryPath opens a private in-memory database
const MemoryPath = ":memory:"

// DefaultRecentLimit is the number of entries Recent returns for limit <= 0
const DefaultRecentLimit = 20

// Entry is a stored outcome
type Entry struct {
	ID int64
	model.Outcome
}

// Store records download outcomes. It satisfies the orchestrator's Recorder.
type Store struct {
	db     *sql.DB
	logger *slog.Logger
}

// Open opens or creates the database at path and runs migrations
func Open(ctx context.Context, path string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}

	if path != MemoryPath {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, goerr.Wrap(err, "failed to create history directory", goerr.V("path", path))
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to open history database", goerr.V("path", path))
	}
	// Writers come from one batch at a time; a single connection also keeps
	// an in-memory database alive across calls
	db.SetMaxOpenConns(1)

	s := &Store{db: db, logger: logger}
	if err := s.migrate(ctx); err != nil {
		db.Close()
		return nil, err
	}

	return s, nil
}

// ErrNotFinished is returned when recording an item that is still pending or running
var ErrNotFinished = goerr.New("outcome is not final")

// Record inserts one outcome. Only finished items are stored.
func (s *Store) Record(ctx context.Context, o model.Outcome) error {
	if !o.Status.IsFinished() {
		return goerr.Wrap(ErrNotFinished, "refusing to record download",
			goerr.V("url", o.URL), goerr.V("status", o.Status))
	}

	query := `
		INSERT INTO downloads
		(batch_id, url, quality, format, clip, status, error, started_at, finished_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query,
		o.BatchID,
		o.URL,
		o.Quality,
		string(o.Format),
		o.Clip,
		o.Status.String(),
		o.Error,
		toMillis(o.StartedAt),
		toMillis(o.FinishedAt),
	)
	if err != nil {
		return goerr.Wrap(err, "failed to record download",
			goerr.V("batch_id", o.BatchID),
			goerr.V("url", o.URL))
	}
	return nil
}

// Recent returns the latest entries, newest first
func (s *Store) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}

	query := `
		SELECT id, batch_id, url, quality, format, clip, status, error, started_at, finished_at
		FROM downloads
		ORDER BY started_at DESC, id DESC
		LIMIT ?
	`
	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to query history")
	}
	defer rows.Close()

	return scanEntries(rows)
}

// ByBatch returns the entries of one batch in insertion order
func (s *Store) ByBatch(ctx context.Context, batchID string) ([]Entry, error) {
	query := `
		SELECT id, batch_id, url, quality, format, clip, status, error, started_at, finished_at
		FROM downloads
		WHERE batch_id = ?
		ORDER BY id ASC
	`
	rows, err := s.db.QueryContext(ctx, query, batchID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to query batch history", goerr.V("batch_id", batchID))
	}
	defer rows.Close()

	return scanEntries(rows)
}

// Close closes the database
func (s *Store) Close() error {
	return s.db.Close()
}

func scanEntries(rows *sql.Rows) ([]Entry, error) {
	var entries []Entry
	for rows.Next() {
		var (
			e                   Entry
			format, status      string
			startedAt, finished int64
		)
		if err := rows.Scan(&e.ID, &e.BatchID, &e.URL, &e.Quality, &format, &e.Clip,
			&status, &e.Error, &startedAt, &finished); err != nil {
			return nil, goerr.Wrap(err, "failed to scan history row")
		}
		e.Format = model.Format(format)
		e.Status = model.TaskStatus(status)
		e.StartedAt = fromMillis(startedAt)
		e.FinishedAt = fromMillis(finished)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, goerr.Wrap(err, "failed to iterate history rows")
	}
	return entries, nil
}

func toMillis(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UnixMilli()
}

func fromMillis(ms int64) time.Time {
	if ms == 0 {
		return time.Time{}
	}
	return time.UnixMilli(ms)
}
