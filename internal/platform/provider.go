package platform

import (
	"fmt"
	"runtime"
)

// ErrUnsupported is returned when no automation backend is registered for
// the current OS.
var ErrUnsupported = fmt.Errorf("no UI automation backend registered on %s/%s", runtime.GOOS, runtime.GOARCH)

// NewDesktopFunc is set by backend packages via init().
var NewDesktopFunc func() (Desktop, error)

// NewDesktop returns the registered Desktop backend.
func NewDesktop() (Desktop, error) {
	if NewDesktopFunc == nil {
		return nil, ErrUnsupported
	}
	return NewDesktopFunc()
}
