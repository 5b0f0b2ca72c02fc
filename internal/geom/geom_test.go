package geom

import "testing"

func TestSolveIncrementSnap(t *testing.T) {
	tests := []struct {
		name  string
		r     Rect
		h     Hints
		wantW int
	}{
		{
			name:  "snap down to increment from min",
			r:     Rect{X: 0, Y: 0, W: 47, H: 100},
			h:     Hints{IncW: 10, MinW: 20},
			wantW: 40,
		},
		{
			name:  "already aligned",
			r:     Rect{X: 0, Y: 0, W: 40, H: 100},
			h:     Hints{IncW: 10, MinW: 20},
			wantW: 40,
		},
		{
			name:  "min wins over snap",
			r:     Rect{X: 0, Y: 0, W: 23, H: 100},
			h:     Hints{IncW: 10, MinW: 25},
			wantW: 25,
		},
		{
			name:  "zero increment disables snapping",
			r:     Rect{X: 0, Y: 0, W: 47, H: 100},
			h:     Hints{MinW: 20},
			wantW: 47,
		},
	}

	ctx := SolveContext{
		Screen: Rect{W: 1920, H: 1080},
		Work:   Rect{W: 1920, H: 1080},
		Honor:  true,
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Solve(tt.r, tt.h, ctx)
			if got.W != tt.wantW {
				t.Errorf("Solve() width = %d, want %d", got.W, tt.wantW)
			}
		})
	}
}

func TestSolveMinMaxClamp(t *testing.T) {
	ctx := SolveContext{
		Screen: Rect{W: 1920, H: 1080},
		Work:   Rect{W: 1920, H: 1080},
		Honor:  true,
	}

	got := Solve(Rect{W: 5000, H: 5000}, Hints{MaxW: 800, MaxH: 600}, ctx)
	if got.W != 800 || got.H != 600 {
		t.Errorf("max clamp: got %dx%d, want 800x600", got.W, got.H)
	}

	got = Solve(Rect{W: 10, H: 10}, Hints{MinW: 200, MinH: 100}, ctx)
	if got.W != 200 || got.H != 100 {
		t.Errorf("min clamp: got %dx%d, want 200x100", got.W, got.H)
	}
}

func TestSolveAspect(t *testing.T) {
	ctx := SolveContext{
		Screen: Rect{W: 1920, H: 1080},
		Work:   Rect{W: 1920, H: 1080},
		Honor:  true,
	}

	// Too wide for a 16:9 maximum aspect, width gets corrected.
	h := Hints{MinAspect: 9.0 / 16.0, MaxAspect: 16.0 / 9.0}
	got := Solve(Rect{W: 1000, H: 100}, h, ctx)
	if got.W != 178 {
		t.Errorf("aspect width = %d, want 178", got.W)
	}
	if got.H != 100 {
		t.Errorf("aspect height = %d, want 100", got.H)
	}

	// Too tall, height gets corrected.
	got = Solve(Rect{W: 100, H: 1000}, h, ctx)
	if got.H != 56 {
		t.Errorf("aspect height = %d, want 56", got.H)
	}

	// Zero aspect fields disable clamping entirely.
	got = Solve(Rect{W: 1000, H: 100}, Hints{}, ctx)
	if got.W != 1000 || got.H != 100 {
		t.Errorf("no aspect: got %dx%d, want 1000x100", got.W, got.H)
	}
}

func TestSolveWorkAreaClamp(t *testing.T) {
	ctx := SolveContext{
		Screen: Rect{W: 1920, H: 1080},
		Work:   Rect{X: 0, Y: 24, W: 1920, H: 1056},
	}

	// Fully left of the work area snaps back in.
	got := Solve(Rect{X: -500, Y: 100, W: 300, H: 200}, Hints{}, ctx)
	if got.X != 0 {
		t.Errorf("left clamp: x = %d, want 0", got.X)
	}

	// Beyond the right edge gets pulled back.
	got = Solve(Rect{X: 3000, Y: 100, W: 300, H: 200}, Hints{}, ctx)
	if got.X != 1920-300 {
		t.Errorf("right clamp: x = %d, want %d", got.X, 1920-300)
	}

	// Interactive mode allows partial off-screen but not full.
	ctx.Interactive = true
	got = Solve(Rect{X: 1900, Y: 100, W: 300, H: 200}, Hints{}, ctx)
	if got.X != 1900 {
		t.Errorf("interactive: x = %d, want 1900 unchanged", got.X)
	}
}

func TestSolveBarFloor(t *testing.T) {
	ctx := SolveContext{
		Screen:    Rect{W: 1920, H: 1080},
		Work:      Rect{W: 1920, H: 1080},
		BarHeight: 24,
	}
	got := Solve(Rect{W: 5, H: 5}, Hints{}, ctx)
	if got.W != 24 || got.H != 24 {
		t.Errorf("bar floor: got %dx%d, want 24x24", got.W, got.H)
	}
}

func TestHintsFixed(t *testing.T) {
	if (Hints{}).Fixed() {
		t.Error("zero hints must not be fixed")
	}
	if !(Hints{MinW: 100, MinH: 50, MaxW: 100, MaxH: 50}).Fixed() {
		t.Error("equal min/max must be fixed")
	}
	if (Hints{MinW: 100, MinH: 50, MaxW: 200, MaxH: 50}).Fixed() {
		t.Error("differing width bounds must not be fixed")
	}
}

func TestRectOverlap(t *testing.T) {
	a := Rect{X: 0, Y: 0, W: 100, H: 100}
	b := Rect{X: 50, Y: 50, W: 100, H: 100}
	if got := a.Overlap(b); got != 2500 {
		t.Errorf("Overlap = %d, want 2500", got)
	}
	c := Rect{X: 200, Y: 200, W: 10, H: 10}
	if got := a.Overlap(c); got != 0 {
		t.Errorf("disjoint Overlap = %d, want 0", got)
	}
}
