// Package geom holds the rectangle math and the size-hint solver used by
// the window engine. Everything here is pure.
package geom

// Rect is a screen-space rectangle. W and H never include borders; callers
// account for border width themselves.
type Rect struct {
	X int `json:"x"`
	Y int `json:"y"`
	W int `json:"w"`
	H int `json:"h"`
}

func (r Rect) Right() int  { return r.X + r.W }
func (r Rect) Bottom() int { return r.Y + r.H }

func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Overlap returns the area of the intersection of r and o, 0 when disjoint.
func (r Rect) Overlap(o Rect) int {
	w := min(r.Right(), o.Right()) - max(r.X, o.X)
	h := min(r.Bottom(), o.Bottom()) - max(r.Y, o.Y)
	return max(0, w) * max(0, h)
}

// Hints are the ICCCM WM_NORMAL_HINTS fields that constrain a window's
// geometry. Zero values disable the corresponding constraint.
type Hints struct {
	BaseW, BaseH int
	IncW, IncH   int
	MinW, MinH   int
	MaxW, MaxH   int
	MinAspect    float64
	MaxAspect    float64
}

// Fixed reports whether the hints pin the window to a single size.
func (h Hints) Fixed() bool {
	return h.MaxW != 0 && h.MaxH != 0 && h.MaxW == h.MinW && h.MaxH == h.MinH
}

// SolveContext carries the environment a candidate rectangle is resolved
// against.
type SolveContext struct {
	Screen      Rect // whole display, used for interactive clamping
	Work        Rect // owning monitor's work area, used otherwise
	BarHeight   int  // lower bound on both dimensions
	Border      int  // client border width
	Interactive bool
	Honor       bool // run full hint resolution (floating, no-arrange layout, or resize-hints on)
}

// Solve resolves a candidate rectangle against hints and the context,
// returning a conforming rectangle. Callers compare the result with the
// client's current geometry to skip redundant configure requests.
func Solve(r Rect, h Hints, c SolveContext) Rect {
	r.W = max(1, r.W)
	r.H = max(1, r.H)

	bw2 := 2 * c.Border
	if c.Interactive {
		// Keep at least part of the window reachable on the display.
		if r.X > c.Screen.Right() {
			r.X = c.Screen.Right() - r.W - bw2
		}
		if r.Y > c.Screen.Bottom() {
			r.Y = c.Screen.Bottom() - r.H - bw2
		}
		if r.X+r.W+bw2 < c.Screen.X {
			r.X = c.Screen.X
		}
		if r.Y+r.H+bw2 < c.Screen.Y {
			r.Y = c.Screen.Y
		}
	} else {
		if r.X >= c.Work.Right() {
			r.X = c.Work.Right() - r.W - bw2
		}
		if r.Y >= c.Work.Bottom() {
			r.Y = c.Work.Bottom() - r.H - bw2
		}
		if r.X+r.W+bw2 <= c.Work.X {
			r.X = c.Work.X
		}
		if r.Y+r.H+bw2 <= c.Work.Y {
			r.Y = c.Work.Y
		}
	}
	if r.H < c.BarHeight {
		r.H = c.BarHeight
	}
	if r.W < c.BarHeight {
		r.W = c.BarHeight
	}

	if !c.Honor {
		return r
	}

	baseIsMin := h.BaseW == h.MinW && h.BaseH == h.MinH
	if !baseIsMin {
		r.W -= h.BaseW
		r.H -= h.BaseH
	}
	if h.MinAspect > 0 && h.MaxAspect > 0 {
		switch {
		case h.MaxAspect < float64(r.W)/float64(r.H):
			r.W = int(float64(r.H)*h.MaxAspect + 0.5)
		case h.MinAspect < float64(r.H)/float64(r.W):
			r.H = int(float64(r.W)*h.MinAspect + 0.5)
		}
	}
	if baseIsMin {
		r.W -= h.BaseW
		r.H -= h.BaseH
	}
	if h.IncW > 0 {
		r.W -= r.W % h.IncW
	}
	if h.IncH > 0 {
		r.H -= r.H % h.IncH
	}
	r.W = max(r.W+h.BaseW, h.MinW)
	r.H = max(r.H+h.BaseH, h.MinH)
	if h.MaxW > 0 {
		r.W = min(r.W, h.MaxW)
	}
	if h.MaxH > 0 {
		r.H = min(r.H, h.MaxH)
	}
	return r
}
