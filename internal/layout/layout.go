// Package layout implements the placement algorithms. Each function is
// pure: given the work area and the count of visible tiled clients it
// returns one frame per client, in arrangement order. Frames exclude the
// client border; the border width is subtracted the same way on every
// side.
package layout

import (
	"fmt"

	"github.com/slabwm/slab/internal/geom"
)

// Name identifies a layout in config and over the control API.
type Name string

const (
	NameTile        Name = "tile"
	NameBStack      Name = "bstack"
	NameBStackHoriz Name = "bstackhoriz"
	NameMonocle     Name = "monocle"
	NameFloating    Name = "floating"
)

// Func computes frames for n visible tiled clients inside work.
type Func func(work geom.Rect, n, nmaster int, mfact float64, bw int) []geom.Rect

// Layout pairs a symbol with an arrange function. A nil Arrange means
// floating: clients keep whatever geometry they have.
type Layout struct {
	Name    Name
	Symbol  string
	Arrange Func
}

var layouts = []Layout{
	{Name: NameTile, Symbol: "[]=", Arrange: Tile},
	{Name: NameFloating, Symbol: "><>", Arrange: nil},
	{Name: NameMonocle, Symbol: "[M]", Arrange: Monocle},
	{Name: NameBStack, Symbol: "TTT", Arrange: BStack},
	{Name: NameBStackHoriz, Symbol: "===", Arrange: BStackHoriz},
}

// All returns the layout table in cycle order.
func All() []Layout { return layouts }

// ByName returns the layout registered under name.
func ByName(name Name) (Layout, error) {
	for _, l := range layouts {
		if l.Name == name {
			return l, nil
		}
	}
	return Layout{}, fmt.Errorf("layout %q: unknown", name)
}

// MonocleSymbol overrides the monocle symbol with the visible count.
func MonocleSymbol(n int) string { return fmt.Sprintf("[%d]", n) }

// Tile places up to nmaster clients in a left master column of width
// work.W*mfact and the rest in a right stack column. Heights are an equal
// share of the space remaining below the clients placed so far, so
// rounding remainders accumulate into the last slot.
func Tile(work geom.Rect, n, nmaster int, mfact float64, bw int) []geom.Rect {
	if n == 0 {
		return nil
	}

	var mw int
	if n > nmaster {
		if nmaster > 0 {
			mw = int(float64(work.W) * mfact)
		}
	} else {
		mw = work.W
	}

	frames := make([]geom.Rect, 0, n)
	my, ty := 0, 0
	for i := 0; i < n; i++ {
		if i < nmaster {
			h := (work.H - my) / (min(n, nmaster) - i)
			frames = append(frames, geom.Rect{
				X: work.X, Y: work.Y + my,
				W: mw - 2*bw, H: h - 2*bw,
			})
			if my+h < work.H {
				my += h
			}
		} else {
			h := (work.H - ty) / (n - i)
			frames = append(frames, geom.Rect{
				X: work.X + mw, Y: work.Y + ty,
				W: work.W - mw - 2*bw, H: h - 2*bw,
			})
			if ty+h < work.H {
				ty += h
			}
		}
	}
	return frames
}

// BStack is Tile rotated: masters form a top row sharing the full width,
// the rest form a bottom row of equal-width columns.
func BStack(work geom.Rect, n, nmaster int, mfact float64, bw int) []geom.Rect {
	if n == 0 {
		return nil
	}

	var mh, tw, ty int
	if n > nmaster {
		if nmaster > 0 {
			mh = int(mfact * float64(work.H))
		}
		tw = work.W / (n - nmaster)
		ty = work.Y + mh
	} else {
		mh = work.H
		tw = work.W
		ty = work.Y
	}

	frames := make([]geom.Rect, 0, n)
	mx, tx := 0, work.X
	for i := 0; i < n; i++ {
		if i < nmaster {
			w := (work.W - mx) / (min(n, nmaster) - i)
			frames = append(frames, geom.Rect{
				X: work.X + mx, Y: work.Y,
				W: w - 2*bw, H: mh - 2*bw,
			})
			mx += w
		} else {
			frames = append(frames, geom.Rect{
				X: tx, Y: ty,
				W: tw - 2*bw, H: work.H - mh - 2*bw,
			})
			if tw != work.W {
				tx += tw
			}
		}
	}
	return frames
}

// BStackHoriz stacks the bottom area horizontally: each stack client gets
// a full-width strip of equal height below the master row.
func BStackHoriz(work geom.Rect, n, nmaster int, mfact float64, bw int) []geom.Rect {
	if n == 0 {
		return nil
	}

	var mh, th, ty int
	if n > nmaster {
		if nmaster > 0 {
			mh = int(mfact * float64(work.H))
		}
		th = (work.H - mh) / (n - nmaster)
		ty = work.Y + mh
	} else {
		mh = work.H
		th = work.H
		ty = work.Y
	}

	frames := make([]geom.Rect, 0, n)
	mx, tx := 0, work.X
	for i := 0; i < n; i++ {
		if i < nmaster {
			w := (work.W - mx) / (min(n, nmaster) - i)
			frames = append(frames, geom.Rect{
				X: work.X + mx, Y: work.Y,
				W: w - 2*bw, H: mh - 2*bw,
			})
			mx += w
		} else {
			frames = append(frames, geom.Rect{
				X: tx, Y: ty,
				W: work.W - 2*bw, H: th - 2*bw,
			})
			if th != work.H {
				ty += th
			}
		}
	}
	return frames
}

// Monocle gives every visible client the full work area.
func Monocle(work geom.Rect, n, nmaster int, mfact float64, bw int) []geom.Rect {
	frames := make([]geom.Rect, 0, n)
	for i := 0; i < n; i++ {
		frames = append(frames, geom.Rect{
			X: work.X, Y: work.Y,
			W: work.W - 2*bw, H: work.H - 2*bw,
		})
	}
	return frames
}
