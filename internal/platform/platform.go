// Package platform defines the capability surface consumed by the click
// engine. The real UI-Automation backend registers itself here; the core
// only ever sees these narrow interfaces.
package platform

import "github.com/unprompted/unprompted/internal/geometry"

// Control types searched in priority order: the button-like widgets seen
// across desktop/webview/Electron toolkits.
const (
	ControlButton      = "Button"
	ControlHyperlink   = "Hyperlink"
	ControlMenuItem    = "MenuItem"
	ControlSplitButton = "SplitButton"
)

// Window is a read-only handle to a top-level window. The core never owns
// window lifetime; it re-reads state every poll cycle.
type Window interface {
	// Title returns the window's current title text.
	Title() (string, error)

	// Rect returns the window's bounds in virtual-desktop coordinates.
	Rect() (geometry.Region, error)

	// Minimized reports the provider's notion of minimized state.
	// Best-effort: callers also apply geometric heuristics.
	Minimized() bool

	Restore() error
	Maximize() error

	// Descendants enumerates controls nested anywhere under the window.
	// controlType narrows the enumeration to one type; empty means all.
	Descendants(controlType string) ([]Control, error)
}

// Control is a candidate UI element exposing text, a rectangle, and two
// activation primitives.
type Control interface {
	Text() (string, error)
	Rect() (geometry.Region, error)

	// Invoke triggers the element's semantic default action.
	Invoke() error

	// ClickInput simulates a pointer click on the element.
	ClickInput() error
}

// Desktop is the top of the provider surface.
type Desktop interface {
	// Windows enumerates all top-level windows.
	Windows() ([]Window, error)

	// VirtualScreen returns the bounding rectangle spanning all monitors.
	VirtualScreen() (geometry.Region, error)

	// ClickAt performs a raw screen click at absolute coordinates. Used
	// as the last activation tier when element-level actions fail.
	ClickAt(x, y int) error
}
