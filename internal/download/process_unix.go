//go:build unix

package download

import (
	"os/exec"
	"syscall"
)

// killProcessGroup runs the child in its own process group and kills the
// whole group on cancellation. ffmpeg started by yt-dlp for merges and clip
// sections inherits the output pipe and must die with its parent.
func killProcessGroup(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	cmd.Cancel = func() error {
		return syscall.Kill(-cmd.Process.Pid, syscall.SIGKILL)
	}
}
