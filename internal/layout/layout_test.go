package layout

import (
	"testing"

	"github.com/slabwm/slab/internal/geom"
)

var work = geom.Rect{X: 0, Y: 24, W: 1920, H: 1056}

func TestTileMasterSplit(t *testing.T) {
	// One master, one stack client: master width is floor(W*mfact) and
	// the stack gets the remainder, summing to the full width.
	frames := Tile(work, 2, 1, 0.55, 0)
	if len(frames) != 2 {
		t.Fatalf("got %d frames, want 2", len(frames))
	}
	wantMaster := int(float64(work.W) * 0.55)
	if frames[0].W != wantMaster {
		t.Errorf("master width = %d, want %d", frames[0].W, wantMaster)
	}
	if frames[1].W != work.W-wantMaster {
		t.Errorf("stack width = %d, want %d", frames[1].W, work.W-wantMaster)
	}
	if frames[0].W+frames[1].W != work.W {
		t.Errorf("widths sum to %d, want %d", frames[0].W+frames[1].W, work.W)
	}
}

func TestTileScenario(t *testing.T) {
	// Windows opened in sequence under nmaster=1: the first occupies the
	// full work area, the second splits it, the third divides the stack
	// column into two equal-height cells.
	one := Tile(work, 1, 1, 0.55, 0)
	if one[0] != (geom.Rect{X: 0, Y: 24, W: 1920, H: 1056}) {
		t.Errorf("single client frame = %+v, want full work area", one[0])
	}

	two := Tile(work, 2, 1, 0.55, 0)
	if two[0].H != work.H || two[1].H != work.H {
		t.Errorf("two clients: heights %d/%d, want full height both", two[0].H, two[1].H)
	}

	three := Tile(work, 3, 1, 0.55, 0)
	if three[1].H != work.H/2 || three[2].H != work.H/2 {
		t.Errorf("stack heights %d/%d, want %d each", three[1].H, three[2].H, work.H/2)
	}
	if three[2].Y != work.Y+work.H/2 {
		t.Errorf("second stack cell y = %d, want %d", three[2].Y, work.Y+work.H/2)
	}
}

func TestTileRemainderAccumulates(t *testing.T) {
	// 1056 does not divide by 5; the last stack slot absorbs the
	// remainder instead of leaving a gap.
	frames := Tile(work, 6, 1, 0.5, 0)
	bottom := 0
	for _, f := range frames[1:] {
		bottom = f.Y + f.H
	}
	if bottom != work.Bottom() {
		t.Errorf("stack column ends at %d, want %d", bottom, work.Bottom())
	}
}

func TestTileAllMasters(t *testing.T) {
	// nmaster beyond the client count degenerates to full-width masters.
	frames := Tile(work, 2, 5, 0.55, 0)
	for i, f := range frames {
		if f.W != work.W {
			t.Errorf("frame %d width = %d, want %d", i, f.W, work.W)
		}
	}
}

func TestTileZeroMaster(t *testing.T) {
	// nmaster=0 puts everything in the stack column at full width.
	frames := Tile(work, 2, 0, 0.55, 0)
	for i, f := range frames {
		if f.X != work.X || f.W != work.W {
			t.Errorf("frame %d = %+v, want full-width stack", i, f)
		}
	}
}

func TestTileBorders(t *testing.T) {
	frames := Tile(work, 2, 1, 0.5, 2)
	if frames[0].W != work.W/2-4 {
		t.Errorf("master width = %d, want %d", frames[0].W, work.W/2-4)
	}
	if frames[0].H != work.H-4 {
		t.Errorf("master height = %d, want %d", frames[0].H, work.H-4)
	}
}

func TestTileEmpty(t *testing.T) {
	for _, fn := range []Func{Tile, BStack, BStackHoriz, Monocle} {
		if frames := fn(work, 0, 1, 0.55, 1); len(frames) != 0 {
			t.Errorf("empty layout returned %d frames", len(frames))
		}
	}
}

func TestBStack(t *testing.T) {
	frames := BStack(work, 3, 1, 0.5, 0)
	if len(frames) != 3 {
		t.Fatalf("got %d frames, want 3", len(frames))
	}
	mh := int(0.5 * float64(work.H))
	if frames[0].H != mh || frames[0].W != work.W {
		t.Errorf("master = %+v, want full width, height %d", frames[0], mh)
	}
	for i, f := range frames[1:] {
		if f.Y != work.Y+mh {
			t.Errorf("stack %d y = %d, want %d", i, f.Y, work.Y+mh)
		}
		if f.W != work.W/2 {
			t.Errorf("stack %d width = %d, want %d", i, f.W, work.W/2)
		}
		if f.H != work.H-mh {
			t.Errorf("stack %d height = %d, want %d", i, f.H, work.H-mh)
		}
	}
	if frames[2].X != work.X+work.W/2 {
		t.Errorf("second stack x = %d, want %d", frames[2].X, work.X+work.W/2)
	}
}

func TestBStackHoriz(t *testing.T) {
	frames := BStackHoriz(work, 3, 1, 0.5, 0)
	mh := int(0.5 * float64(work.H))
	th := (work.H - mh) / 2
	for i, f := range frames[1:] {
		if f.W != work.W {
			t.Errorf("strip %d width = %d, want full width", i, f.W)
		}
		if f.H != th {
			t.Errorf("strip %d height = %d, want %d", i, f.H, th)
		}
		if f.Y != work.Y+mh+i*th {
			t.Errorf("strip %d y = %d, want %d", i, f.Y, work.Y+mh+i*th)
		}
	}
}

func TestMonocle(t *testing.T) {
	frames := Monocle(work, 4, 1, 0.55, 1)
	for i, f := range frames {
		want := geom.Rect{X: work.X, Y: work.Y, W: work.W - 2, H: work.H - 2}
		if f != want {
			t.Errorf("frame %d = %+v, want %+v", i, f, want)
		}
	}
	if got := MonocleSymbol(4); got != "[4]" {
		t.Errorf("symbol = %q, want [4]", got)
	}
}

func TestArrangeIdempotent(t *testing.T) {
	a := Tile(work, 5, 2, 0.6, 1)
	b := Tile(work, 5, 2, 0.6, 1)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("frame %d differs between runs: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestByName(t *testing.T) {
	l, err := ByName(NameMonocle)
	if err != nil {
		t.Fatal(err)
	}
	if l.Symbol != "[M]" {
		t.Errorf("symbol = %q, want [M]", l.Symbol)
	}
	if _, err := ByName("spiral"); err == nil {
		t.Error("unknown layout must error")
	}
	fl, err := ByName(NameFloating)
	if err != nil {
		t.Fatal(err)
	}
	if fl.Arrange != nil {
		t.Error("floating layout must have nil arrange")
	}
}
