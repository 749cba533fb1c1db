//go:build windows

package supervisor

import (
	"os"
	"os/exec"
	"syscall"
)

const createNoWindow = 0x08000000

// terminate has no graceful signal on Windows; the bounded wait in Stop
// escalates to Kill either way.
func terminate(p *os.Process) error {
	return p.Kill()
}

// hideConsole keeps the worker from flashing a console window when the
// supervisor runs packaged without one.
func hideConsole(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{
		HideWindow:    true,
		CreationFlags: createNoWindow,
	}
}
