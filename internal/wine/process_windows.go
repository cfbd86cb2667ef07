//go:build windows

package wine

import (
	"os/exec"
)

// Detach is a no-op on Windows (Setpgid not supported).
func Detach(_ *exec.Cmd) {}
