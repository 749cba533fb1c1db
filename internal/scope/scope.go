// Package scope resolves the configured search region against either the
// virtual desktop or an individual window's bounds.
package scope

import (
	"errors"
	"fmt"
	"strings"

	"github.com/unprompted/unprompted/internal/geometry"
	"github.com/unprompted/unprompted/internal/match"
)

// Config is the scope block of the worker configuration. Loaded once at
// startup, read-only thereafter.
type Config struct {
	Enabled          bool    `yaml:"enabled"`
	RelativeToWindow bool    `yaml:"relative_to_window"`
	Preset           string  `yaml:"preset"`
	InsetPercent     float64 `yaml:"inset_percent"`
	LeftFraction     float64 `yaml:"left_fraction"`
	TopFraction      float64 `yaml:"top_fraction"`
	WidthFraction    float64 `yaml:"width_fraction"`
	HeightFraction   float64 `yaml:"height_fraction"`
}

// DefaultPreset is used when the config omits scope.preset.
const DefaultPreset = "right_half"

// Default returns the scope config applied before unmarshalling.
func Default() Config {
	return Config{
		Preset:         DefaultPreset,
		WidthFraction:  1.0,
		HeightFraction: 1.0,
	}
}

// ValidPresets lists every accepted scope.preset value.
var ValidPresets = []string{
	"full_screen",
	"left_half",
	"right_half",
	"top_half",
	"bottom_half",
	"top_left_quarter",
	"top_right_quarter",
	"bottom_left_quarter",
	"bottom_right_quarter",
	"center_box",
	"custom_fractions",
}

// fraction quadruples are (left, top, width, height) of the base region.
var presetFractions = map[string][4]float64{
	"left_half":            {0.0, 0.0, 0.5, 1.0},
	"right_half":           {0.5, 0.0, 0.5, 1.0},
	"top_half":             {0.0, 0.0, 1.0, 0.5},
	"bottom_half":          {0.0, 0.5, 1.0, 0.5},
	"top_left_quarter":     {0.0, 0.0, 0.5, 0.5},
	"top_right_quarter":    {0.5, 0.0, 0.5, 0.5},
	"bottom_left_quarter":  {0.0, 0.5, 0.5, 0.5},
	"bottom_right_quarter": {0.5, 0.5, 0.5, 0.5},
	"center_box":           {0.2, 0.2, 0.6, 0.6},
}

// ErrEmptyRegion is returned when the configured scope collapses to no
// area. Fatal in global mode; per-window mode drops the window instead.
var ErrEmptyRegion = errors.New("scope region resolved to empty area")

// ResolveForBase resolves the configured preset against base and applies
// the inset. An unrecognized preset is a configuration error reported with
// the full valid-preset list.
func ResolveForBase(base geometry.Region, cfg Config) (geometry.Region, error) {
	preset := match.Normalize(cfg.Preset)
	if preset == "" {
		preset = DefaultPreset
	}

	var (
		region geometry.Region
		ok     bool
	)
	switch preset {
	case "full", "full screen", "full_screen":
		region, ok = base, !base.Empty()
	case "custom_fractions":
		region, ok = geometry.FromFractions(base,
			cfg.LeftFraction, cfg.TopFraction, cfg.WidthFraction, cfg.HeightFraction)
	default:
		fracs, known := presetFractions[preset]
		if !known {
			return geometry.Region{}, fmt.Errorf(
				"invalid scope.preset %q; valid options: %s",
				cfg.Preset, strings.Join(ValidPresets, ", "))
		}
		region, ok = geometry.FromFractions(base, fracs[0], fracs[1], fracs[2], fracs[3])
	}
	if !ok {
		return geometry.Region{}, ErrEmptyRegion
	}

	if cfg.InsetPercent > 0 {
		region = region.Inset(cfg.InsetPercent)
	}
	return region, nil
}

// Resolve resolves the global scope against the virtual desktop bounds.
// Returns ok=false when scoping is disabled or configured per-window (the
// per-window path resolves each cycle instead).
func Resolve(screen geometry.Region, cfg Config) (geometry.Region, bool, error) {
	if !cfg.Enabled || cfg.RelativeToWindow {
		return geometry.Region{}, false, nil
	}
	region, err := ResolveForBase(screen, cfg)
	if err != nil {
		return geometry.Region{}, false, err
	}
	return region, true, nil
}
