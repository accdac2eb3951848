// Package process holds small process-liveness helpers used by the
// embedded-backend transport during teardown.
package process

import (
	"os"
	"syscall"
)

// IsProcessAlive checks if a process with the given PID is still running.
// It uses a signal-sending method that is cross-platform for Unix-like
// systems (macOS, Linux).
func IsProcessAlive(pid int) bool {
	if pid <= 0 {
		return false
	}

	proc, err := os.FindProcess(pid)
	if err != nil {
		return false // should not happen on Unix-like systems
	}

	// Signal 0 checks for existence without actually sending a signal.
	err = proc.Signal(syscall.Signal(0))

	// nil means alive and permitted; EPERM means alive but owned by
	// another user; anything else (typically ESRCH) means gone.
	return err == nil || os.IsPermission(err)
}
