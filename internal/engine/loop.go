package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

// Loop drives one discovery → scope → click cycle per interval.
type Loop struct {
	engine          *Engine
	disc            *Discoverer
	interval        time.Duration
	continueOnError bool
	uiaEnabled      bool
	scopeEnabled    bool
	log             zerolog.Logger
}

// LoopOptions configures a Loop.
type LoopOptions struct {
	Interval        time.Duration
	ContinueOnError bool
	UIAEnabled      bool
	ScopeEnabled    bool
}

// NewLoop assembles the poll loop over an engine and a discoverer.
func NewLoop(eng *Engine, disc *Discoverer, opts LoopOptions, log zerolog.Logger) *Loop {
	return &Loop{
		engine:          eng,
		disc:            disc,
		interval:        opts.Interval,
		continueOnError: opts.ContinueOnError,
		uiaEnabled:      opts.UIAEnabled,
		scopeEnabled:    opts.ScopeEnabled,
		log:             log,
	}
}

// Run polls until ctx is cancelled. Iteration failures are logged and the
// loop continues, unless continue-on-error is disabled, in which case the
// failure is returned and terminates the process. A cancelled context is
// a clean stop (nil).
func (l *Loop) Run(ctx context.Context) error {
	for {
		if err := l.runOnce(); err != nil {
			l.log.Error().Err(err).Msg("poll iteration failed")
			if !l.continueOnError {
				return err
			}
		}

		select {
		case <-ctx.Done():
			l.log.Debug().Msg("stop requested; leaving poll loop")
			return nil
		case <-time.After(l.interval):
		}
	}
}

// runOnce executes a single cycle. Panics from provider adapters are
// converted to iteration errors so the error-continuation policy applies
// to them too.
func (l *Loop) runOnce() (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("poll iteration panic: %v", r)
		}
	}()

	windows := l.disc.Matches()
	scoped := l.engine.ApplyScope(windows)

	switch {
	case len(windows) == 0:
		l.log.Debug().Msg("no windows matched the title pattern")
	case len(scoped) == 0 && l.scopeEnabled:
		l.log.Debug().Msg("matching windows exist, but none intersect the configured scope")
	}

	clicked := false
	if l.uiaEnabled && len(scoped) > 0 {
		clicked = l.engine.ClickTargets(scoped)
	}
	if !clicked {
		l.log.Debug().Msg("no target found")
	}
	return nil
}
