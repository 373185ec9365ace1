package cli

import (
	"context"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/ytget/yt-batch/internal/history"
	"github.com/ytget/yt-batch/internal/model"
)

func TestToggledRecorder(t *testing.T) {
	ctx := context.Background()
	store, err := history.Open(ctx, history.MemoryPath, nil)
	gt.NoError(t, err)
	defer store.Close()

	enabled := false
	rec := &toggledRecorder{store: store, enabled: func() bool { return enabled }}

	gt.NoError(t, rec.Record(ctx, model.Outcome{BatchID: "b1", URL: "https://youtu.be/off", Status: model.TaskStatusCompleted}))
	enabled = true
	gt.NoError(t, rec.Record(ctx, model.Outcome{BatchID: "b1", URL: "https://youtu.be/on", Status: model.TaskStatusCompleted}))

	entries, err := store.ByBatch(ctx, "b1")
	gt.NoError(t, err)
	gt.Equal(t, len(entries), 1)
	gt.Equal(t, entries[0].URL, "https://youtu.be/on")
}
