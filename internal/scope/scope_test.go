package scope

import (
	"errors"
	"strings"
	"testing"

	"github.com/unprompted/unprompted/internal/geometry"
)

var screen = geometry.NewRegion(0, 0, 1000, 800)

func TestResolveForBase_Presets(t *testing.T) {
	tests := []struct {
		preset string
		want   geometry.Region
	}{
		{"full_screen", geometry.NewRegion(0, 0, 1000, 800)},
		{"full screen", geometry.NewRegion(0, 0, 1000, 800)},
		{"full", geometry.NewRegion(0, 0, 1000, 800)},
		{"left_half", geometry.NewRegion(0, 0, 500, 800)},
		{"right_half", geometry.NewRegion(500, 0, 500, 800)},
		{"top_half", geometry.NewRegion(0, 0, 1000, 400)},
		{"bottom_half", geometry.NewRegion(0, 400, 1000, 400)},
		{"top_left_quarter", geometry.NewRegion(0, 0, 500, 400)},
		{"top_right_quarter", geometry.NewRegion(500, 0, 500, 400)},
		{"bottom_left_quarter", geometry.NewRegion(0, 400, 500, 400)},
		{"bottom_right_quarter", geometry.NewRegion(500, 400, 500, 400)},
		{"center_box", geometry.NewRegion(200, 160, 600, 480)},
	}
	for _, tt := range tests {
		t.Run(tt.preset, func(t *testing.T) {
			got, err := ResolveForBase(screen, Config{Preset: tt.preset})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestResolveForBase_PresetIsCaseAndSpaceInsensitive(t *testing.T) {
	got, err := ResolveForBase(screen, Config{Preset: "  Right_Half "})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != geometry.NewRegion(500, 0, 500, 800) {
		t.Errorf("got %v", got)
	}
}

func TestResolveForBase_EmptyPresetFallsBackToDefault(t *testing.T) {
	got, err := ResolveForBase(screen, Config{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != geometry.NewRegion(500, 0, 500, 800) {
		t.Errorf("default should be right_half, got %v", got)
	}
}

func TestResolveForBase_CustomFractions(t *testing.T) {
	cfg := Config{
		Preset:         "custom_fractions",
		LeftFraction:   0.25,
		TopFraction:    0.25,
		WidthFraction:  0.5,
		HeightFraction: 0.5,
	}
	got, err := ResolveForBase(screen, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != geometry.NewRegion(250, 200, 500, 400) {
		t.Errorf("got %v", got)
	}
}

func TestResolveForBase_InvalidPresetListsOptions(t *testing.T) {
	_, err := ResolveForBase(screen, Config{Preset: "diagonal_half"})
	if err == nil {
		t.Fatal("expected error")
	}
	for _, p := range ValidPresets {
		if !strings.Contains(err.Error(), p) {
			t.Errorf("error should list preset %q: %v", p, err)
		}
	}
}

func TestResolveForBase_EmptyRegion(t *testing.T) {
	cfg := Config{Preset: "custom_fractions", WidthFraction: 0, HeightFraction: 1}
	_, err := ResolveForBase(screen, cfg)
	if !errors.Is(err, ErrEmptyRegion) {
		t.Errorf("expected ErrEmptyRegion, got %v", err)
	}
}

func TestResolveForBase_AppliesInset(t *testing.T) {
	got, err := ResolveForBase(screen, Config{Preset: "full_screen", InsetPercent: 10})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != geometry.NewRegion(100, 80, 800, 640) {
		t.Errorf("got %v", got)
	}
}

func TestResolve_DisabledOrPerWindow(t *testing.T) {
	if _, ok, err := Resolve(screen, Config{Enabled: false}); ok || err != nil {
		t.Errorf("disabled scope should resolve to nothing: ok=%v err=%v", ok, err)
	}
	cfg := Config{Enabled: true, RelativeToWindow: true, Preset: "left_half"}
	if _, ok, err := Resolve(screen, cfg); ok || err != nil {
		t.Errorf("per-window scope should defer resolution: ok=%v err=%v", ok, err)
	}
}

func TestResolve_Global(t *testing.T) {
	region, ok, err := Resolve(screen, Config{Enabled: true, Preset: "bottom_half"})
	if err != nil || !ok {
		t.Fatalf("ok=%v err=%v", ok, err)
	}
	if region != geometry.NewRegion(0, 400, 1000, 400) {
		t.Errorf("got %v", region)
	}
}
