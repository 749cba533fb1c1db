//go:build !windows

package supervisor

import (
	"os"
	"os/exec"
	"syscall"
)

// terminate asks the worker to shut down gracefully.
func terminate(p *os.Process) error {
	return p.Signal(syscall.SIGTERM)
}

// hideConsole is a no-op outside Windows.
func hideConsole(cmd *exec.Cmd) {}
