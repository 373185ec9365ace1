package download

import (
	"bufio"
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"os/exec"

	"github.com/m-mizutani/goerr/v2"

	"github.com/ytget/yt-batch/internal/model"
)

// Executable and I/O constants
const (
	DefaultYTDLPCommand = "yt-dlp"
	maxOutputLineSize   = 1024 * 1024
)

// ExecRunner runs yt-dlp as a child process with stdout and stderr merged
// into a single pipe.
type ExecRunner struct {
	binary string
	logger *slog.Logger
}

// NewExecRunner creates a runner for the given yt-dlp binary. An empty
// binary falls back to "yt-dlp" on PATH.
func NewExecRunner(binary string, logger *slog.Logger) *ExecRunner {
	if binary == "" {
		binary = DefaultYTDLPCommand
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ExecRunner{binary: binary, logger: logger}
}

// Binary returns the executable the runner invokes
func (r *ExecRunner) Binary() string {
	return r.binary
}

// Run starts yt-dlp, feeds every parsed progress line to onProgress and
// waits for the process to exit. Lines that are not progress are logged at
// debug level and otherwise ignored.
func (r *ExecRunner) Run(ctx context.Context, args []string, onProgress func(model.Progress)) error {
	cmd := exec.CommandContext(ctx, r.binary, args...)
	killProcessGroup(cmd)

	pr, pw, err := os.Pipe()
	if err != nil {
		return goerr.Wrap(err, "failed to create output pipe")
	}
	defer pr.Close()

	// The same *os.File for both streams gives one merged, ordered stream
	cmd.Stdout = pw
	cmd.Stderr = pw

	if err := cmd.Start(); err != nil {
		pw.Close()
		return goerr.Wrap(err, "failed to start yt-dlp", goerr.V("binary", r.binary))
	}
	// The child holds its own copy; closing ours lets the reader see EOF
	pw.Close()

	r.monitorOutput(pr, onProgress)

	if err := cmd.Wait(); err != nil {
		if ctx.Err() != nil {
			return goerr.Wrap(ctx.Err(), "yt-dlp interrupted", goerr.V("binary", r.binary))
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return goerr.Wrap(err, "yt-dlp exited with error",
				goerr.V("binary", r.binary),
				goerr.V("exit_code", exitErr.ExitCode()))
		}
		return goerr.Wrap(err, "failed to wait for yt-dlp", goerr.V("binary", r.binary))
	}

	return nil
}

// monitorOutput reads the merged output until EOF
func (r *ExecRunner) monitorOutput(out io.Reader, onProgress func(model.Progress)) {
	scanner := bufio.NewScanner(out)
	scanner.Buffer(make([]byte, 0, 64*1024), maxOutputLineSize)
	scanner.Split(scanOutputLines)

	for scanner.Scan() {
		line := scanner.Text()
		if p, ok := ParseProgress(line); ok {
			if onProgress != nil {
				onProgress(p)
			}
			continue
		}
		if line != "" {
			r.logger.Debug("yt-dlp output", slog.String("line", line))
		}
	}

	if err := scanner.Err(); err != nil {
		r.logger.Warn("failed to read yt-dlp output", slog.Any("error", err))
		// Keep draining so the child never blocks on a full pipe
		_, _ = io.Copy(io.Discard, out)
	}
}
