package engine

import (
	"regexp"
	"time"

	"github.com/rs/zerolog"

	"github.com/unprompted/unprompted/internal/geometry"
	"github.com/unprompted/unprompted/internal/platform"
)

// settleDelay gives a just-restored window time to report real bounds.
const settleDelay = 300 * time.Millisecond

// ScopedWindow pairs a window handle with the region the engine is
// allowed to search. The region starts as the window's usable bounds and
// is narrowed by scope filtering.
type ScopedWindow struct {
	Window platform.Window
	Region geometry.Region
}

// Discoverer finds the windows whose title matches the configured
// pattern and ensures they have usable bounds.
type Discoverer struct {
	desktop platform.Desktop
	titleRE *regexp.Regexp
	settle  time.Duration
	log     zerolog.Logger
}

// NewDiscoverer builds a Discoverer over the provider surface. titleRE is
// the case-insensitive window title pattern.
func NewDiscoverer(desktop platform.Desktop, titleRE *regexp.Regexp, log zerolog.Logger) *Discoverer {
	return &Discoverer{desktop: desktop, titleRE: titleRE, settle: settleDelay, log: log}
}

// Matches returns every matching window with its usable bounds.
// Provider failures are logged and yield zero matches, never an error:
// the next poll cycle retries from scratch.
func (d *Discoverer) Matches() []ScopedWindow {
	windows, err := d.desktop.Windows()
	if err != nil {
		d.log.Debug().Err(err).Msg("window enumeration failed")
		return nil
	}

	var matches []ScopedWindow
	for _, w := range windows {
		title, err := w.Title()
		if err != nil {
			continue
		}
		if !d.titleRE.MatchString(title) {
			continue
		}
		region, ok := d.ensureReady(w, title)
		if !ok {
			continue
		}
		matches = append(matches, ScopedWindow{Window: w, Region: region})
	}
	return matches
}

// ensureReady restores a minimized window so unattended runs can proceed,
// then re-reads its bounds. Windows whose bounds stay degenerate are
// reported unusable.
func (d *Discoverer) ensureReady(w platform.Window, title string) (geometry.Region, bool) {
	if isMinimized(w) {
		d.log.Debug().Str("window", title).Msg("restoring window from minimized state")
		_ = w.Restore()
		_ = w.Maximize()
		time.Sleep(d.settle)
	}

	rect, err := w.Rect()
	if err != nil {
		return geometry.Region{}, false
	}
	if rect.Width <= 1 || rect.Height <= 1 {
		return geometry.Region{}, false
	}
	return rect, true
}

// isMinimized combines the provider's answer with geometric heuristics:
// near-zero dimensions, or the parked coordinates minimized windows
// report on some desktops.
func isMinimized(w platform.Window) bool {
	if w.Minimized() {
		return true
	}
	rect, err := w.Rect()
	if err != nil {
		return false
	}
	if rect.Width <= 1 || rect.Height <= 1 {
		return true
	}
	if rect.Left <= -30000 && rect.Top <= -30000 {
		return true
	}
	return false
}
