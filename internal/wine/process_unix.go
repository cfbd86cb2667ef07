//go:build !windows

package wine

import (
	"os/exec"
	"syscall"
)

// Detach puts the command in its own process group so it outlives signals
// sent to the caller's terminal.
func Detach(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
}
