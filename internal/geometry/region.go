// Package geometry provides the rectangle algebra used for scope
// resolution and control hit-testing.
package geometry

import "fmt"

// Region is a screen rectangle. Width and height are never negative.
type Region struct {
	Left   int `yaml:"left"   json:"left"`
	Top    int `yaml:"top"    json:"top"`
	Width  int `yaml:"width"  json:"width"`
	Height int `yaml:"height" json:"height"`
}

// NewRegion builds a Region, clamping negative width/height to zero.
func NewRegion(left, top, width, height int) Region {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return Region{Left: left, Top: top, Width: width, Height: height}
}

// Right returns the exclusive right edge (Left + Width).
func (r Region) Right() int { return r.Left + r.Width }

// Bottom returns the exclusive bottom edge (Top + Height).
func (r Region) Bottom() int { return r.Top + r.Height }

// Empty reports whether the region covers no area.
func (r Region) Empty() bool { return r.Width <= 0 || r.Height <= 0 }

func (r Region) String() string {
	return fmt.Sprintf("%d,%d %dx%d", r.Left, r.Top, r.Width, r.Height)
}

// Intersect returns the overlap of r and other. ok is false when the
// rectangles do not overlap (degenerate after clamping).
func (r Region) Intersect(other Region) (Region, bool) {
	left := max(r.Left, other.Left)
	top := max(r.Top, other.Top)
	right := min(r.Right(), other.Right())
	bottom := min(r.Bottom(), other.Bottom())
	if right <= left || bottom <= top {
		return Region{}, false
	}
	return Region{Left: left, Top: top, Width: right - left, Height: bottom - top}, true
}

// ContainsRect reports whether rect touches r at all. This is overlap,
// not strict containment, so a control straddling a scope edge still
// counts as in scope.
func (r Region) ContainsRect(rect Region) bool {
	return !(rect.Right() < r.Left || rect.Left > r.Right() ||
		rect.Bottom() < r.Top || rect.Top > r.Bottom())
}

// FromFractions carves a sub-region out of base. Each fraction is clamped
// to [0,1] before scaling, and the result is intersected with base so the
// output can never exceed it. ok is false when the sub-region is empty.
func FromFractions(base Region, leftFrac, topFrac, widthFrac, heightFrac float64) (Region, bool) {
	leftFrac = clamp01(leftFrac)
	topFrac = clamp01(topFrac)
	widthFrac = clamp01(widthFrac)
	heightFrac = clamp01(heightFrac)

	left := base.Left + int(float64(base.Width)*leftFrac)
	top := base.Top + int(float64(base.Height)*topFrac)
	right := left + int(float64(base.Width)*widthFrac)
	bottom := top + int(float64(base.Height)*heightFrac)

	return base.Intersect(NewRegion(left, top, right-left, bottom-top))
}

// Inset shrinks r symmetrically by pct percent of its width/height on each
// side. pct is clamped to [0,40]; the result keeps at least 1px per axis.
func (r Region) Inset(pct float64) Region {
	if pct < 0 {
		pct = 0
	}
	if pct > 40 {
		pct = 40
	}
	if pct == 0 {
		return r
	}
	dx := int(float64(r.Width) * pct / 100.0)
	dy := int(float64(r.Height) * pct / 100.0)
	return Region{
		Left:   r.Left + dx,
		Top:    r.Top + dy,
		Width:  max(1, r.Width-2*dx),
		Height: max(1, r.Height-2*dy),
	}
}

// Center returns the midpoint of the region.
func (r Region) Center() (x, y int) {
	return r.Left + r.Width/2, r.Top + r.Height/2
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
