// Package engine implements the region-scoped target search, the layered
// activation chain, and the poll loop that drives them.
package engine

import (
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/unprompted/unprompted/internal/geometry"
	"github.com/unprompted/unprompted/internal/match"
	"github.com/unprompted/unprompted/internal/platform"
	"github.com/unprompted/unprompted/internal/scope"
)

// preferredControlTypes is the fixed search order for typed enumeration.
var preferredControlTypes = []string{
	platform.ControlButton,
	platform.ControlHyperlink,
	platform.ControlMenuItem,
	platform.ControlSplitButton,
}

// Activation describes one successful control activation.
type Activation struct {
	Time        time.Time
	WindowTitle string
	ControlText string
	ControlType string
	Target      string
	Tier        string
	Rect        geometry.Region
}

// Options configures an Engine.
type Options struct {
	// Targets in configured order; order defines global activation
	// priority.
	Targets []match.Target

	// Scope is the scope block of the configuration.
	Scope scope.Config

	// GlobalScope is the pre-resolved screen region when scoping is
	// enabled in global mode; nil otherwise.
	GlobalScope *geometry.Region

	// OnActivation, when set, is called after each successful activation
	// (at most once per poll cycle).
	OnActivation func(Activation)
}

// Engine performs the priority search over targets, windows, control
// types and candidates, and activates the first match.
type Engine struct {
	desktop platform.Desktop
	opts    Options
	tokens  []string
	log     zerolog.Logger
	seen    map[traceKey]struct{}
}

// New builds an Engine. Targets must already be compiled and non-empty
// entries only.
func New(desktop platform.Desktop, opts Options, log zerolog.Logger) *Engine {
	return &Engine{
		desktop: desktop,
		opts:    opts,
		tokens:  match.Tokens(opts.Targets),
		log:     log,
		seen:    make(map[traceKey]struct{}),
	}
}

// ApplyScope clips each window's searchable region to the configured
// scope. In per-window mode the scope is resolved against each window's
// own bounds every cycle; a window whose scoped region collapses is
// dropped silently.
func (e *Engine) ApplyScope(windows []ScopedWindow) []ScopedWindow {
	if e.opts.Scope.RelativeToWindow {
		if !e.opts.Scope.Enabled {
			return windows
		}
		var scoped []ScopedWindow
		for _, sw := range windows {
			local, err := scope.ResolveForBase(sw.Region, e.opts.Scope)
			if err != nil {
				continue
			}
			clipped, ok := sw.Region.Intersect(local)
			if !ok {
				continue
			}
			scoped = append(scoped, ScopedWindow{Window: sw.Window, Region: clipped})
		}
		return scoped
	}

	if e.opts.GlobalScope == nil {
		return windows
	}
	var scoped []ScopedWindow
	for _, sw := range windows {
		clipped, ok := sw.Region.Intersect(*e.opts.GlobalScope)
		if !ok {
			continue
		}
		scoped = append(scoped, ScopedWindow{Window: sw.Window, Region: clipped})
	}
	return scoped
}

// ClickTargets runs one search cycle over the scoped windows. Targets are
// processed in configured order and every window is searched for a target
// before the next target is attempted anywhere. Reports whether any
// activation occurred; at most one control is activated per call.
func (e *Engine) ClickTargets(windows []ScopedWindow) bool {
	if len(e.opts.Targets) == 0 {
		return false
	}
	for _, target := range e.opts.Targets {
		for _, sw := range windows {
			if e.searchTyped(target, sw) {
				return true
			}
		}
		// No typed control matched this target in any window: retry with
		// an unfiltered enumeration, for toolkits that don't expose
		// native button control types.
		for _, sw := range windows {
			if e.searchUntyped(target, sw) {
				return true
			}
		}
	}
	return false
}

func (e *Engine) searchTyped(target match.Target, sw ScopedWindow) bool {
	title := windowTitle(sw.Window)
	for _, controlType := range preferredControlTypes {
		controls, err := sw.Window.Descendants(controlType)
		if err != nil {
			e.log.Trace().Err(err).Str("control_type", controlType).Msg("descendant enumeration failed")
			continue
		}
		for _, c := range controls {
			if e.tryCandidate(target, sw, title, c, controlType, false) {
				return true
			}
		}
	}
	return false
}

func (e *Engine) searchUntyped(target match.Target, sw ScopedWindow) bool {
	title := windowTitle(sw.Window)
	controls, err := sw.Window.Descendants("")
	if err != nil {
		e.log.Trace().Err(err).Msg("unfiltered descendant enumeration failed")
		return false
	}
	for _, c := range controls {
		if e.tryCandidate(target, sw, title, c, "Any", true) {
			return true
		}
	}
	return false
}

// tryCandidate checks one control against the current target and, on a
// match, runs the activation chain. dropDegenerate additionally rejects
// ≤1px rectangles (fallback pass only).
func (e *Engine) tryCandidate(target match.Target, sw ScopedWindow, title string, c platform.Control, controlType string, dropDegenerate bool) bool {
	text, err := c.Text()
	if err != nil || text == "" {
		return false
	}
	rect, err := c.Rect()
	if err != nil {
		e.log.Trace().Err(err).Str("text", text).Msg("candidate rect query failed")
		return false
	}

	inScope := sw.Region.ContainsRect(rect)
	e.trace(title, text, rect, controlType, inScope)

	if !target.Matches(text) {
		return false
	}
	if !inScope {
		return false
	}
	if dropDegenerate && (rect.Width <= 1 || rect.Height <= 1) {
		return false
	}

	tier := e.activate(c, rect, sw.Region)
	if tier == "" {
		return false
	}

	e.log.Info().
		Str("window", title).
		Str("text", text).
		Str("type", controlType).
		Str("tier", tier).
		Str("rect", rect.String()).
		Msg("activated control")

	if e.opts.OnActivation != nil {
		e.opts.OnActivation(Activation{
			Time:        time.Now(),
			WindowTitle: title,
			ControlText: text,
			ControlType: controlType,
			Target:      target.Text,
			Tier:        tier,
			Rect:        rect,
		})
	}
	return true
}

// activate runs the layered fallback chain: semantic invoke, simulated
// pointer click, then a raw screen click at the center of the rectangle
// clipped to the scoped region. Each tier is attempted only after the
// previous one failed. Returns the name of the tier that succeeded, or ""
// when all tiers are exhausted.
func (e *Engine) activate(c platform.Control, rect, scoped geometry.Region) string {
	attempts := []struct {
		tier string
		run  func() error
	}{
		{"invoke", c.Invoke},
		{"click_input", c.ClickInput},
		{"screen_click", func() error {
			clipped, ok := scoped.Intersect(rect)
			if !ok {
				return fmt.Errorf("rect %v does not intersect scope %v", rect, scoped)
			}
			x, y := clipped.Center()
			return e.desktop.ClickAt(x, y)
		}},
	}
	for _, a := range attempts {
		if err := a.run(); err != nil {
			e.log.Trace().Err(err).Str("tier", a.tier).Msg("activation tier failed")
			continue
		}
		return a.tier
	}
	return ""
}

func windowTitle(w platform.Window) string {
	title, err := w.Title()
	if err != nil {
		return ""
	}
	return title
}

type traceKey struct {
	title string
	text  string
	rect  geometry.Region
}

// trace prints a first-seen candidate whose normalized text shares a
// token with any configured target, with per-target verdicts. Purely
// observational; enabled only at trace level (debug_mode).
func (e *Engine) trace(title, rawText string, rect geometry.Region, controlType string, inScope bool) {
	if e.log.GetLevel() > zerolog.TraceLevel {
		return
	}
	norm := match.Normalize(rawText)
	relevant := false
	for _, tok := range e.tokens {
		if strings.Contains(norm, tok) {
			relevant = true
			break
		}
	}
	if !relevant {
		return
	}
	key := traceKey{title: title, text: norm, rect: rect}
	if _, ok := e.seen[key]; ok {
		return
	}
	e.seen[key] = struct{}{}

	checks := make([]string, 0, len(e.opts.Targets))
	for _, t := range e.opts.Targets {
		checks = append(checks, fmt.Sprintf("%s=%v(%s)", t.Text, t.Matches(rawText), t.Mode()))
	}
	e.log.Trace().
		Str("window", title).
		Str("text", rawText).
		Str("label", match.NormalizeLabel(rawText)).
		Str("type", controlType).
		Bool("in_scope", inScope).
		Str("rect", rect.String()).
		Str("checks", strings.Join(checks, ", ")).
		Msg("candidate")
}
