package wm

import (
	"github.com/jezek/xgb/xproto"
	"github.com/slabwm/slab/internal/geom"
)

// Client is one managed window. It is owned by exactly one Monitor and
// appears exactly once in that monitor's arrangement and stack lists.
type Client struct {
	Win  xproto.Window
	Name string

	Geom      geom.Rect // current geometry, border excluded
	OldGeom   geom.Rect // previous geometry, for restores
	FloatGeom geom.Rect // saved floating geometry
	BW        int
	OldBW     int

	Hints geom.Hints
	Tags  uint
	Mon   *Monitor

	IsFixed        bool
	IsFloating     bool
	OldState       bool // floating state before fullscreen
	IsUrgent       bool
	NeverFocus     bool
	IsFullscreen   bool
	FakeFullscreen bool
	IsLocked       bool
	IsSticky       bool
	IsHidden       bool // iconified
}

// TotalW and TotalH include the border on both sides.
func (c *Client) TotalW() int { return c.Geom.W + 2*c.BW }
func (c *Client) TotalH() int { return c.Geom.H + 2*c.BW }

// Tiled reports whether the layout engine places this client.
func (c *Client) Tiled() bool {
	return !c.IsFloating && !c.IsHidden && c.Mon.Visible(c)
}
