package geometry

import "testing"

func TestNewRegion_ClampsNegativeDims(t *testing.T) {
	r := NewRegion(10, 20, -5, -1)
	if r.Width != 0 || r.Height != 0 {
		t.Errorf("expected clamped dims, got %dx%d", r.Width, r.Height)
	}
	if !r.Empty() {
		t.Error("clamped region should be empty")
	}
}

func TestIntersect(t *testing.T) {
	tests := []struct {
		name   string
		a, b   Region
		want   Region
		wantOK bool
	}{
		{"overlapping", NewRegion(0, 0, 100, 100), NewRegion(50, 50, 100, 100), NewRegion(50, 50, 50, 50), true},
		{"contained", NewRegion(0, 0, 200, 200), NewRegion(50, 50, 10, 10), NewRegion(50, 50, 10, 10), true},
		{"adjacent_edges", NewRegion(0, 0, 100, 100), NewRegion(100, 0, 100, 100), Region{}, false},
		{"disjoint", NewRegion(0, 0, 10, 10), NewRegion(20, 20, 10, 10), Region{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.a.Intersect(tt.b)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIntersect_Commutative(t *testing.T) {
	rects := []Region{
		NewRegion(0, 0, 100, 100),
		NewRegion(50, 25, 200, 10),
		NewRegion(-30, -30, 60, 60),
		NewRegion(500, 500, 5, 5),
	}
	for _, a := range rects {
		for _, b := range rects {
			ab, okAB := a.Intersect(b)
			ba, okBA := b.Intersect(a)
			if okAB != okBA || ab != ba {
				t.Errorf("intersect(%v,%v) not commutative: %v/%v vs %v/%v", a, b, ab, okAB, ba, okBA)
			}
			if okAB {
				if !containsFully(a, ab) || !containsFully(b, ab) {
					t.Errorf("intersection %v not contained in both %v and %v", ab, a, b)
				}
			}
		}
	}
}

// containsFully is strict containment, used only to verify intersections.
func containsFully(outer, inner Region) bool {
	return inner.Left >= outer.Left && inner.Top >= outer.Top &&
		inner.Right() <= outer.Right() && inner.Bottom() <= outer.Bottom()
}

func TestContainsRect_OverlapIsEnough(t *testing.T) {
	scope := NewRegion(0, 0, 100, 100)
	tests := []struct {
		name string
		rect Region
		want bool
	}{
		{"fully_inside", NewRegion(10, 10, 20, 20), true},
		{"straddles_edge", NewRegion(90, 90, 50, 50), true},
		{"touching_edge", NewRegion(100, 0, 20, 20), true},
		{"fully_outside", NewRegion(200, 200, 20, 20), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := scope.ContainsRect(tt.rect); got != tt.want {
				t.Errorf("ContainsRect(%v) = %v, want %v", tt.rect, got, tt.want)
			}
		})
	}
}

func TestFromFractions_ContainedInBase(t *testing.T) {
	base := NewRegion(100, 50, 1920, 1080)
	fracs := []float64{-0.5, 0.0, 0.25, 0.5, 1.0, 1.5}
	for _, lf := range fracs {
		for _, wf := range fracs {
			sub, ok := FromFractions(base, lf, 0.0, wf, 1.0)
			if !ok {
				continue
			}
			if !containsFully(base, sub) {
				t.Errorf("FromFractions(lf=%v, wf=%v) = %v exceeds base %v", lf, wf, sub, base)
			}
		}
	}
}

func TestFromFractions_RightHalf(t *testing.T) {
	base := NewRegion(0, 0, 1000, 800)
	sub, ok := FromFractions(base, 0.5, 0.0, 0.5, 1.0)
	if !ok {
		t.Fatal("expected non-empty region")
	}
	want := NewRegion(500, 0, 500, 800)
	if sub != want {
		t.Errorf("got %v, want %v", sub, want)
	}
}

func TestFromFractions_EmptyResult(t *testing.T) {
	base := NewRegion(0, 0, 1000, 800)
	if _, ok := FromFractions(base, 1.0, 0.0, 0.0, 1.0); ok {
		t.Error("zero-width sub-region should report not ok")
	}
}

func TestInset(t *testing.T) {
	r := NewRegion(0, 0, 100, 100)
	got := r.Inset(10)
	want := NewRegion(10, 10, 80, 80)
	if got != want {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestInset_ClampsAndFloors(t *testing.T) {
	r := NewRegion(0, 0, 10, 10)
	got := r.Inset(95) // clamped to 40
	if got.Width < 1 || got.Height < 1 {
		t.Errorf("inset collapsed region: %v", got)
	}
	if got != r.Inset(40) {
		t.Errorf("pct above 40 should clamp: %v vs %v", got, r.Inset(40))
	}
	if r.Inset(-5) != r {
		t.Error("negative pct should be a no-op")
	}
}

func TestCenter(t *testing.T) {
	x, y := NewRegion(10, 20, 100, 50).Center()
	if x != 60 || y != 45 {
		t.Errorf("got (%d,%d), want (60,45)", x, y)
	}
}
