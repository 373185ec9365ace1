package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"

	"github.com/ytget/yt-batch/internal/download"
	"github.com/ytget/yt-batch/internal/history"
	"github.com/ytget/yt-batch/internal/model"
	"github.com/ytget/yt-batch/internal/platform"
)

// ErrItemsFailed is returned when at least one URL of a headless batch failed
var ErrItemsFailed = goerr.New("some downloads failed")

// barNameWidth bounds the URL shown in front of a progress bar
const barNameWidth = 48

type downloadFlags struct {
	output    string
	quality   string
	format    string
	start     string
	end       string
	input     string
	expand    bool
	noHistory bool
}

func cmdDownload(g *globals) *cli.Command {
	var f downloadFlags

	return &cli.Command{
		Name:      "download",
		Usage:     "Download URLs without the GUI",
		ArgsUsage: "[urls...]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "output",
				Aliases:     []string{"o"},
				Usage:       "Output directory",
				Destination: &f.output,
			},
			&cli.StringFlag{
				Name:        "quality",
				Aliases:     []string{"q"},
				Usage:       "Quality preset label",
				Value:       model.DefaultQualityLabel,
				Destination: &f.quality,
			},
			&cli.StringFlag{
				Name:        "format",
				Aliases:     []string{"f"},
				Usage:       "Video or Audio",
				Value:       string(model.FormatVideo),
				Destination: &f.format,
			},
			&cli.StringFlag{
				Name:        "start",
				Usage:       "Clip start (HH:MM:SS or mm:ss)",
				Destination: &f.start,
			},
			&cli.StringFlag{
				Name:        "end",
				Usage:       "Clip end (HH:MM:SS or mm:ss)",
				Destination: &f.end,
			},
			&cli.StringFlag{
				Name:        "input",
				Aliases:     []string{"i"},
				Usage:       "File with one URL per line",
				Destination: &f.input,
			},
			&cli.BoolFlag{
				Name:        "expand-playlists",
				Usage:       "Replace playlist URLs with their videos",
				Destination: &f.expand,
			},
			&cli.BoolFlag{
				Name:        "no-history",
				Usage:       "Do not record outcomes",
				Destination: &f.noHistory,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			f.applyFile(c, g)
			return runDownload(ctx, c, g, &f)
		},
	}
}

// applyFile fills the options left unset on the command line from the config file
func (f *downloadFlags) applyFile(c *cli.Command, g *globals) {
	file := g.file
	if file == nil {
		return
	}
	if !c.IsSet("output") && file.OutputDir != "" {
		f.output = file.OutputDir
	}
	if !c.IsSet("quality") && file.Quality != "" {
		f.quality = file.Quality
	}
	if !c.IsSet("format") && file.Format != "" {
		f.format = file.Format
	}
	if !c.IsSet("expand-playlists") && file.ExpandPlaylists {
		f.expand = true
	}
	if !c.IsSet("no-history") && file.NoHistory {
		f.noHistory = true
	}
}

// batchInput collects URLs and options. Nothing has been started when it fails.
func (f *downloadFlags) batchInput(args []string) ([]string, model.BatchOptions, error) {
	var urls []string
	if f.input != "" {
		data, err := os.ReadFile(f.input)
		if err != nil {
			return nil, model.BatchOptions{}, goerr.Wrap(err, "failed to read URL file", goerr.V("path", f.input))
		}
		urls = model.ParseURLList(string(data))
	}
	for _, arg := range args {
		urls = append(urls, model.ParseURLList(arg)...)
	}
	if len(urls) == 0 {
		return nil, model.BatchOptions{}, model.ErrNoURLs
	}

	quality, err := model.LookupQuality(f.quality)
	if err != nil {
		return nil, model.BatchOptions{}, err
	}
	format, err := model.ParseFormat(f.format)
	if err != nil {
		return nil, model.BatchOptions{}, err
	}

	opts := model.BatchOptions{
		Quality:   quality,
		Format:    format,
		Clip:      model.Clip{Start: f.start, End: f.end},
		OutputDir: f.output,
	}
	if err := opts.Validate(); err != nil {
		return nil, model.BatchOptions{}, err
	}
	return urls, opts, nil
}

func runDownload(ctx context.Context, c *cli.Command, g *globals, f *downloadFlags) error {
	logger := g.logger

	urls, opts, err := f.batchInput(c.Args().Slice())
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	binary := g.bootstrap(ctx)

	if f.expand {
		urls = g.newExpander().Expand(ctx, urls)
	}

	if err := platform.CreateDirectoryIfNotExists(opts.OutputDir); err != nil {
		return goerr.Wrap(err, "failed to create output directory", goerr.V("dir", opts.OutputDir))
	}
	if low, free, err := platform.IsLowOnSpace(ctx, opts.OutputDir); err != nil {
		logger.Debug("free space check failed", slog.Any("error", err))
	} else if low {
		logger.Warn("low disk space", slog.String("dir", opts.OutputDir), slog.Uint64("free_bytes", free))
	}

	batch, err := model.NewBatch(urls, opts)
	if err != nil {
		return err
	}

	svcOpts := []download.Option{download.WithLogger(logger)}
	if !f.noHistory {
		store, err := history.Open(ctx, g.historyDB, logger)
		if err != nil {
			logger.Warn("history disabled", slog.Any("error", err))
		} else {
			defer store.Close()
			svcOpts = append(svcOpts, download.WithRecorder(store))
		}
	}

	svc := download.NewService(download.NewExecRunner(binary, logger), svcOpts...)

	out := c.Root().Writer
	bars := newBarSet(out)
	result := svc.Run(ctx, batch, bars.handle)
	bars.wait()

	printSummary(out, result)

	if n := len(result.Failed()); n > 0 {
		return goerr.Wrap(ErrItemsFailed, "batch finished with failures",
			goerr.V("batch_id", result.BatchID), goerr.V("failed", n))
	}
	if result.Cancelled() {
		return goerr.Wrap(context.Canceled, "batch cancelled", goerr.V("batch_id", result.BatchID))
	}
	return nil
}

// barSet draws one progress bar per URL
type barSet struct {
	progress *mpb.Progress
	bars     map[int]*mpb.Bar
}

func newBarSet(w io.Writer) *barSet {
	return &barSet{
		progress: mpb.New(mpb.WithOutput(w), mpb.WithAutoRefresh()),
		bars:     make(map[int]*mpb.Bar),
	}
}

// handle runs on the batch goroutine, so no locking is needed
func (s *barSet) handle(ev model.Event) {
	switch ev.Kind {
	case model.EventItemStarted:
		name := fmt.Sprintf("[%d/%d] %s", ev.Index+1, ev.Total, truncate(ev.URL, barNameWidth))
		s.bars[ev.Index] = s.progress.AddBar(100,
			mpb.PrependDecorators(decor.Name(name, decor.WCSyncSpaceR)),
			mpb.AppendDecorators(decor.Percentage(decor.WCSyncSpace)),
		)

	case model.EventProgress:
		if bar, ok := s.bars[ev.Index]; ok {
			bar.SetCurrent(int64(ev.Progress.Percent))
		}

	case model.EventItemCompleted:
		if bar, ok := s.bars[ev.Index]; ok {
			bar.SetCurrent(100)
		}

	case model.EventItemFailed:
		if bar, ok := s.bars[ev.Index]; ok {
			bar.Abort(false)
		}

	case model.EventBatchFinished:
		// Cancelled items never complete their bar
		for _, bar := range s.bars {
			if !bar.Completed() {
				bar.Abort(false)
			}
		}
	}
}

func (s *barSet) wait() {
	s.progress.Wait()
}

func printSummary(w io.Writer, result *model.BatchResult) {
	green := color.New(color.FgGreen).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()

	for _, item := range result.Items {
		switch item.Status {
		case model.TaskStatusCompleted:
			fmt.Fprintf(w, "%s %s\n", green("OK    "), item.URL)
		case model.TaskStatusError:
			fmt.Fprintf(w, "%s %s: %v\n", red("FAILED"), item.URL, item.Err)
		case model.TaskStatusCancelled:
			fmt.Fprintf(w, "%s %s\n", yellow("SKIP  "), item.URL)
		}
	}

	fmt.Fprintf(w, "%d/%d completed in %s\n",
		result.Completed(), len(result.Items), result.Duration().Round(time.Millisecond))
}

func truncate(s string, limit int) string {
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return string(r[:limit-1]) + "…"
}
