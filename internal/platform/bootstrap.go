package platform

import (
	"context"
	"log/slog"
	"os/exec"

	"github.com/m-mizutani/goerr/v2"
)

// Bootstrap commands
var (
	PythonCommands = []string{"python3", "python"}
	PipInstallArgs = []string{"-m", "pip", "install", "-U", "yt-dlp"}
)

const selfUpdateFlag = "-U"

var ErrBootstrapFailed = goerr.New("could not install or update yt-dlp")

// Bootstrapper makes sure a usable yt-dlp exists before the first batch.
// Both steps are best effort; the caller decides whether to continue.
type Bootstrapper struct {
	binary string
	logger *slog.Logger

	lookPath func(string) (string, error)
	run      func(ctx context.Context, name string, args ...string) error
}

// NewBootstrapper creates a bootstrapper for the given yt-dlp binary name or path
func NewBootstrapper(binary string, logger *slog.Logger) *Bootstrapper {
	if binary == "" {
		binary = "yt-dlp"
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Bootstrapper{
		binary:   binary,
		logger:   logger,
		lookPath: exec.LookPath,
		run:      runCommand,
	}
}

// Ensure self-updates an installed yt-dlp, or installs it with pip when it
// is missing. It returns the binary to use, which is the original name when
// the installation could not be confirmed.
func (b *Bootstrapper) Ensure(ctx context.Context) (string, error) {
	if path, err := b.lookPath(b.binary); err == nil {
		b.logger.Info("updating yt-dlp", slog.String("path", path))
		if err := b.run(ctx, path, selfUpdateFlag); err != nil {
			// An outdated yt-dlp is still usable
			b.logger.Warn("yt-dlp self-update failed", slog.Any("error", err))
		}
		return path, nil
	}

	b.logger.Info("yt-dlp not found, installing with pip", slog.String("binary", b.binary))

	var lastErr error
	for _, python := range PythonCommands {
		if _, err := b.lookPath(python); err != nil {
			continue
		}
		if err := b.run(ctx, python, PipInstallArgs...); err != nil {
			lastErr = err
			b.logger.Warn("pip install failed", slog.String("python", python), slog.Any("error", err))
			continue
		}
		if path, err := b.lookPath(b.binary); err == nil {
			return path, nil
		}
		// pip may install outside PATH; the runner will report it later
		return b.binary, nil
	}

	if lastErr == nil {
		return b.binary, goerr.Wrap(ErrBootstrapFailed, "no python interpreter found",
			goerr.V("tried", PythonCommands))
	}
	return b.binary, goerr.Wrap(ErrBootstrapFailed, lastErr.Error())
}

func runCommand(ctx context.Context, name string, args ...string) error {
	out, err := exec.CommandContext(ctx, name, args...).CombinedOutput()
	if err != nil {
		return goerr.Wrap(err, "command failed",
			goerr.V("command", name),
			goerr.V("args", args),
			goerr.V("output", string(out)))
	}
	return nil
}
