//go:build !unix

package download

import "os/exec"

// killProcessGroup keeps exec's default cancellation, which kills the child only
func killProcessGroup(cmd *exec.Cmd) {}
