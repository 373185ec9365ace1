package cli

import (
	"context"
	"fmt"
	"log/slog"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"

	"github.com/ytget/yt-batch/internal/config"
	"github.com/ytget/yt-batch/internal/download"
	"github.com/ytget/yt-batch/internal/history"
	"github.com/ytget/yt-batch/internal/model"
	"github.com/ytget/yt-batch/internal/ui"
)

const (
	AppID   = "com.ytget.yt-batch"
	AppName = "YT Batch"
)

// toggledRecorder writes to the history store only while the preference
// allows it, so the settings dialog takes effect without a restart.
type toggledRecorder struct {
	store   download.Recorder
	enabled func() bool
}

func (r *toggledRecorder) Record(ctx context.Context, o model.Outcome) error {
	if !r.enabled() {
		return nil
	}
	return r.store.Record(ctx, o)
}

func runGUI(ctx context.Context, g *globals) error {
	logger := g.logger
	logger.Info("starting GUI", slog.String("version", Version))

	myApp := app.NewWithID(AppID)
	myApp.Settings().SetTheme(ui.NewCompactTheme())

	settings := config.NewSettings(myApp)

	// Flag or config file first, then the saved preference
	if g.ytdlp == "" {
		g.ytdlp = settings.GetYTDLPPath()
	}
	binary := g.bootstrap(ctx)

	opts := []download.Option{download.WithLogger(logger)}

	store, err := history.Open(ctx, g.historyDB, logger)
	if err != nil {
		logger.Warn("history disabled", slog.Any("error", err))
	} else {
		defer store.Close()
		opts = append(opts, download.WithRecorder(&toggledRecorder{
			store:   store,
			enabled: settings.GetHistoryEnabled,
		}))
	}

	svc := download.NewService(download.NewExecRunner(binary, logger), opts...)

	myWindow := myApp.NewWindow(fmt.Sprintf("%s v%s", AppName, Version))
	myWindow.Resize(fyne.NewSize(ui.WindowWidth, ui.WindowHeight))

	ui.NewRootUI(myWindow, myApp, svc,
		ui.WithLogger(logger),
		ui.WithExpander(g.newExpander()))

	myWindow.ShowAndRun()
	return nil
}
