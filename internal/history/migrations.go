package history

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
)

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS downloads (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		batch_id TEXT NOT NULL,
		url TEXT NOT NULL,
		quality TEXT NOT NULL,
		format TEXT NOT NULL,
		clip TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL,
		error TEXT NOT NULL DEFAULT '',
		started_at INTEGER NOT NULL DEFAULT 0,
		finished_at INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE INDEX IF NOT EXISTS idx_downloads_batch_id ON downloads(batch_id)`,
	`CREATE INDEX IF NOT EXISTS idx_downloads_started_at ON downloads(started_at)`,
}

// migrate runs all schema migrations
func (s *Store) migrate(ctx context.Context) error {
	s.logger.Debug("running history migrations")

	for i, migration := range migrations {
		if _, err := s.db.ExecContext(ctx, migration); err != nil {
			return goerr.Wrap(err, "migration failed", goerr.V("index", i))
		}
	}
	return nil
}
