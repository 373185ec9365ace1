package cli

import (
	"context"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/ytget/yt-batch/internal/config"
	"github.com/ytget/yt-batch/internal/platform"
)

// Version is set during build via -ldflags "-X github.com/ytget/yt-batch/internal/cli.Version=X.Y.Z"
var Version = "dev"

// globals holds the options shared by every command
type globals struct {
	loggerCfg     config.Logger
	ytdlp         string
	configPath    string
	historyDB     string
	skipBootstrap bool

	playlistTimeout time.Duration

	file   *config.FileConfig
	logger *slog.Logger
}

func (g *globals) flags() []cli.Flag {
	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "ytdlp",
			Usage:       "yt-dlp executable name or path",
			Destination: &g.ytdlp,
			Sources:     cli.EnvVars("YTBATCH_YTDLP"),
		},
		&cli.StringFlag{
			Name:        "config",
			Usage:       "TOML config file (default: <user config dir>/yt-batch/config.toml)",
			Destination: &g.configPath,
			Sources:     cli.EnvVars("YTBATCH_CONFIG"),
		},
		&cli.StringFlag{
			Name:        "history-db",
			Usage:       "SQLite download history database",
			Destination: &g.historyDB,
			Sources:     cli.EnvVars("YTBATCH_HISTORY_DB"),
		},
		&cli.DurationFlag{
			Name:        "playlist-timeout",
			Usage:       "Time limit for listing one playlist (0 disables it)",
			Value:       platform.DefaultExpandTimeout,
			Destination: &g.playlistTimeout,
			Sources:     cli.EnvVars("YTBATCH_PLAYLIST_TIMEOUT"),
		},
		&cli.BoolFlag{
			Name:        "skip-bootstrap",
			Usage:       "Do not install or update yt-dlp on startup",
			Destination: &g.skipBootstrap,
			Sources:     cli.EnvVars("YTBATCH_SKIP_BOOTSTRAP"),
		},
	}
	return append(flags, g.loggerCfg.Flags()...)
}

// before loads the config file and fills every option the command line left unset
func (g *globals) before(ctx context.Context, c *cli.Command) (context.Context, error) {
	path := g.configPath
	required := path != ""
	if path == "" {
		if p, err := config.DefaultConfigPath(); err == nil {
			path = p
		}
	}

	g.file = &config.FileConfig{}
	if path != "" {
		file, err := config.LoadFile(path, required)
		if err != nil {
			return nil, err
		}
		g.file = file
	}

	if !c.IsSet("log-level") && g.file.Log.Level != "" {
		g.loggerCfg.Level = g.file.Log.Level
	}
	if !c.IsSet("log-json") && g.file.Log.JSON {
		g.loggerCfg.JSON = true
	}
	if g.loggerCfg.Output == nil {
		g.loggerCfg.Output = c.Root().ErrWriter
	}

	logger, err := g.loggerCfg.Configure()
	if err != nil {
		return nil, err
	}
	g.logger = logger
	slog.SetDefault(logger)

	if !c.IsSet("ytdlp") && g.file.YTDLP != "" {
		g.ytdlp = g.file.YTDLP
	}
	if !c.IsSet("playlist-timeout") && g.file.PlaylistTimeout != "" {
		timeout, err := time.ParseDuration(g.file.PlaylistTimeout)
		if err != nil {
			return nil, goerr.Wrap(err, "invalid playlist_timeout in config file",
				goerr.V("value", g.file.PlaylistTimeout))
		}
		g.playlistTimeout = timeout
	}
	if !c.IsSet("history-db") {
		g.historyDB = g.file.HistoryDB
	}
	if g.historyDB == "" {
		p, err := config.DefaultHistoryPath()
		if err != nil {
			return nil, goerr.Wrap(err, "no history database path")
		}
		g.historyDB = p
	}

	return ctx, nil
}

// bootstrap installs or updates yt-dlp and returns the binary to run.
// Failures are logged and never stop the caller.
func (g *globals) bootstrap(ctx context.Context) string {
	if g.skipBootstrap {
		return g.ytdlp
	}

	binary, err := platform.NewBootstrapper(g.ytdlp, g.logger).Ensure(ctx)
	if err != nil {
		g.logger.Warn("yt-dlp bootstrap failed, continuing", slog.Any("error", err))
	}
	if g.ytdlp != "" {
		// Keep an explicit path even when lookup resolved it
		return g.ytdlp
	}
	return binary
}

func (g *globals) newExpander() *platform.PlaylistExpander {
	expander := platform.NewPlaylistExpander(g.logger)
	expander.SetTimeout(g.playlistTimeout)
	return expander
}

func newApp(stdout, stderr io.Writer) *cli.Command {
	g := &globals{}

	return &cli.Command{
		Name:      "yt-batch",
		Usage:     "Batch video and audio downloader driving yt-dlp",
		Version:   Version,
		Writer:    stdout,
		ErrWriter: stderr,
		Flags:     g.flags(),
		Before:    g.before,
		Action: func(ctx context.Context, c *cli.Command) error {
			return runGUI(ctx, g)
		},
		Commands: []*cli.Command{
			cmdDownload(g),
			cmdHistory(g),
		},
	}
}

// Run runs the CLI application
func Run(ctx context.Context, args []string) error {
	app := newApp(os.Stdout, os.Stderr)

	if err := app.Run(ctx, args); err != nil {
		slog.Default().Error("CLI execution failed", slog.Any("error", err))
		return err
	}

	return nil
}
