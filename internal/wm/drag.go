package wm

import (
	"fmt"

	"github.com/jezek/xgb/xproto"
	"github.com/slabwm/slab/internal/core"
	"github.com/slabwm/slab/internal/geom"
)

// Pointer controllers hold an exclusive grab and run a nested receive
// loop on the event channel. Administrative events are forwarded to the
// normal handlers so other clients stay serviced during a drag; a
// controller never starts while another one runs.

// Motion events faster than this interval are coalesced.
const motionInterval = 1000 / 120 // ms

// dragCommitThreshold is the squared pointer travel past which the
// tag-drag controller commits.
const dragCommitThreshold = 4069

// dragLoop runs fn for every event until fn reports done or the
// connection drops. The pointer grab must already be held.
func (s *Session) dragLoop(fn func(ev any) (done bool)) error {
	for {
		ev, ok := <-s.eventC
		if !ok {
			return fmt.Errorf("wm: X connection lost")
		}
		switch e := ev.(type) {
		case xproto.ConfigureRequestEvent:
			s.onConfigureRequest(e)
		case xproto.MapRequestEvent:
			s.onMapRequest(e)
		case xproto.ExposeEvent:
		case execMsg:
			e.done <- e.fn(s)
		default:
			if fn(ev) {
				return nil
			}
		}
	}
}

// beginDrag acquires the pointer for a controller. The returned release
// function is safe on every exit path.
func (s *Session) beginDrag(cursor xproto.Cursor) (release func(), ok bool) {
	if s.dragging || !s.grabPointer(cursor) {
		return nil, false
	}
	s.dragging = true
	return func() {
		s.ungrabPointer()
		s.dragging = false
	}, true
}

// moveMouse drags the focused client with the pointer, snapping to work
// area edges and pulling tiled clients out into floating once they move
// past the snap tolerance.
func (s *Session) moveMouse() error {
	m := s.sel
	c := m.Sel
	if c == nil || (c.IsFullscreen && !c.FakeFullscreen) {
		return nil
	}
	s.restack(m)

	release, ok := s.beginDrag(s.cursorMove)
	if !ok {
		return nil
	}
	defer release()

	startX, startY, ok := s.pointer()
	if !ok {
		return nil
	}
	origX, origY := c.Geom.X, c.Geom.Y
	snap := s.cfg.Snap

	var lastTime xproto.Timestamp
	err := s.dragLoop(func(ev any) bool {
		switch e := ev.(type) {
		case xproto.MotionNotifyEvent:
			if e.Time-lastTime <= motionInterval {
				return false
			}
			lastTime = e.Time

			nx := origX + int(e.RootX) - startX
			ny := origY + int(e.RootY) - startY
			if core.Abs(m.Work.X-nx) < snap {
				nx = m.Work.X
			} else if core.Abs(m.Work.Right()-(nx+c.TotalW())) < snap {
				nx = m.Work.Right() - c.TotalW()
			}
			if core.Abs(m.Work.Y-ny) < snap {
				ny = m.Work.Y
			} else if core.Abs(m.Work.Bottom()-(ny+c.TotalH())) < snap {
				ny = m.Work.Bottom() - c.TotalH()
			}
			if !c.IsFloating && m.Layout().Arrange != nil &&
				(core.Abs(nx-c.Geom.X) > snap || core.Abs(ny-c.Geom.Y) > snap) {
				s.toggleFloatingClient(c)
			}
			if m.Layout().Arrange == nil || c.IsFloating {
				s.resize(c, geom.Rect{X: nx, Y: ny, W: c.Geom.W, H: c.Geom.H}, true)
			}
			return false
		case xproto.ButtonReleaseEvent:
			return true
		}
		return false
	})
	if err != nil {
		return err
	}

	if target := RectToMon(s.mons, m, c.Geom); target != m {
		s.sendMon(c, target)
		s.sel = target
		s.focus(nil)
	}
	return nil
}

// resize zones, row-major thirds of the client rectangle. The center
// falls through to the bottom-right corner.
type resizeZone struct {
	left, right, top, bottom bool
	cursor                   int
}

func zoneAt(c *Client, px, py int) resizeZone {
	hz := third(px-c.Geom.X, c.Geom.W)
	vz := third(py-c.Geom.Y, c.Geom.H)
	if hz == 1 && vz == 1 {
		hz, vz = 2, 2
	}
	z := resizeZone{
		left:   hz == 0,
		right:  hz == 2,
		top:    vz == 0,
		bottom: vz == 2,
	}
	switch {
	case z.top && z.left:
		z.cursor = 0
	case z.top && z.right:
		z.cursor = 2
	case z.top:
		z.cursor = 1
	case z.bottom && z.left:
		z.cursor = 5
	case z.bottom && z.right:
		z.cursor = 7
	case z.bottom:
		z.cursor = 6
	case z.left:
		z.cursor = 3
	default:
		z.cursor = 4
	}
	return z
}

func third(v, span int) int {
	if span <= 0 {
		return 2
	}
	switch {
	case v < span/3:
		return 0
	case v < 2*span/3:
		return 1
	default:
		return 2
	}
}

// resizeMouse drags one corner or edge of the focused client, anchoring
// the opposite side. The zone under the pointer at press time decides
// which edges move.
func (s *Session) resizeMouse() error {
	m := s.sel
	c := m.Sel
	if c == nil || (c.IsFullscreen && !c.FakeFullscreen) {
		return nil
	}
	s.restack(m)

	px, py, ok := s.pointer()
	if !ok {
		return nil
	}
	z := zoneAt(c, px, py)

	release, ok := s.beginDrag(s.cursorResize[z.cursor])
	if !ok {
		return nil
	}
	defer release()

	orig := c.Geom
	snap := s.cfg.Snap

	// Park the pointer on the dragged corner or edge so the drag feels
	// anchored there.
	warpX, warpY := int16(c.Geom.W/2), int16(c.Geom.H/2)
	if z.left {
		warpX = -1
	} else if z.right {
		warpX = int16(c.Geom.W + c.BW - 1)
	}
	if z.top {
		warpY = -1
	} else if z.bottom {
		warpY = int16(c.Geom.H + c.BW - 1)
	}
	xproto.WarpPointer(s.conn, xproto.WindowNone, c.Win, 0, 0, 0, 0, warpX, warpY)

	var lastTime xproto.Timestamp
	err := s.dragLoop(func(ev any) bool {
		switch e := ev.(type) {
		case xproto.MotionNotifyEvent:
			if e.Time-lastTime <= motionInterval {
				return false
			}
			lastTime = e.Time

			next := c.Geom
			rx, ry := int(e.RootX), int(e.RootY)
			if z.left {
				next.W = max(orig.Right()-rx, 1)
				next.X = orig.Right() - next.W
			} else if z.right {
				next.W = max(rx-orig.X-2*c.BW+1, 1)
			}
			if z.top {
				next.H = max(orig.Bottom()-ry, 1)
				next.Y = orig.Bottom() - next.H
			} else if z.bottom {
				next.H = max(ry-orig.Y-2*c.BW+1, 1)
			}
			if !c.IsFloating && m.Layout().Arrange != nil &&
				(core.Abs(next.W-c.Geom.W) > snap || core.Abs(next.H-c.Geom.H) > snap) {
				s.toggleFloatingClient(c)
			}
			if m.Layout().Arrange == nil || c.IsFloating {
				s.resize(c, next, true)
			}
			return false
		case xproto.ButtonReleaseEvent:
			return true
		}
		return false
	})
	if err != nil {
		return err
	}

	if target := RectToMon(s.mons, m, c.Geom); target != m {
		s.sendMon(c, target)
		s.sel = target
		s.focus(nil)
	}
	return nil
}

// resizeAspect drags the bottom-right corner while holding the client's
// aspect ratio at press time.
func (s *Session) resizeAspect() error {
	m := s.sel
	c := m.Sel
	if c == nil || (c.IsFullscreen && !c.FakeFullscreen) {
		return nil
	}
	if c.Geom.W <= 0 || c.Geom.H <= 0 {
		return nil
	}
	s.restack(m)

	release, ok := s.beginDrag(s.cursorResize[7])
	if !ok {
		return nil
	}
	defer release()

	orig := c.Geom
	snap := s.cfg.Snap
	xproto.WarpPointer(s.conn, xproto.WindowNone, c.Win, 0, 0, 0, 0,
		int16(c.Geom.W+c.BW-1), int16(c.Geom.H+c.BW-1))

	var lastTime xproto.Timestamp
	err := s.dragLoop(func(ev any) bool {
		switch e := ev.(type) {
		case xproto.MotionNotifyEvent:
			if e.Time-lastTime <= motionInterval {
				return false
			}
			lastTime = e.Time

			nw := max(int(e.RootX)-orig.X-2*c.BW+1, 1)
			nh := max(int(e.RootY)-orig.Y-2*c.BW+1, 1)
			// The larger relative growth wins, the other axis follows.
			if nw*orig.H > nh*orig.W {
				nh = nw * orig.H / orig.W
			} else {
				nw = nh * orig.W / orig.H
			}
			if !c.IsFloating && m.Layout().Arrange != nil &&
				(core.Abs(nw-c.Geom.W) > snap || core.Abs(nh-c.Geom.H) > snap) {
				s.toggleFloatingClient(c)
			}
			if m.Layout().Arrange == nil || c.IsFloating {
				s.resize(c, geom.Rect{X: orig.X, Y: orig.Y, W: nw, H: nh}, true)
			}
			return false
		case xproto.ButtonReleaseEvent:
			return true
		}
		return false
	})
	if err != nil {
		return err
	}

	if target := RectToMon(s.mons, m, c.Geom); target != m {
		s.sendMon(c, target)
		s.sel = target
		s.focus(nil)
	}
	return nil
}

// dragTag retags the focused client by dragging it past the commit
// threshold and releasing over a tag cell. The monitor width is split
// into one cell per tag.
func (s *Session) dragTag() error {
	m := s.sel
	c := m.Sel
	if c == nil {
		return nil
	}

	release, ok := s.beginDrag(s.cursorMove)
	if !ok {
		return nil
	}
	defer release()

	startX, startY, ok := s.pointer()
	if !ok {
		return nil
	}

	committed := false
	lastX := startX
	err := s.dragLoop(func(ev any) bool {
		switch e := ev.(type) {
		case xproto.MotionNotifyEvent:
			lastX = int(e.RootX)
			dx := int(e.RootX) - startX
			dy := int(e.RootY) - startY
			committed = committed || dx*dx+dy*dy > dragCommitThreshold
			return false
		case xproto.ButtonReleaseEvent:
			lastX = int(e.RootX)
			return true
		}
		return false
	})
	if err != nil {
		return err
	}
	if !committed {
		return nil
	}

	cell := (lastX - m.Geom.X) * m.NumTags / max(m.Geom.W, 1)
	cell = min(max(cell, 0), m.NumTags-1)
	c.Tags = 1 << uint(cell)
	s.focus(nil)
	s.arrange(m)
	return nil
}

// gesture waits for a vertical swipe: down past the threshold shows the
// overlay, up past it hides the overlay. Ends as soon as the threshold
// is crossed.
func (s *Session) gesture() error {
	m := s.sel
	release, ok := s.beginDrag(s.cursorNormal)
	if !ok {
		return nil
	}
	defer release()

	_, startY, ok := s.pointer()
	if !ok {
		return nil
	}
	threshold := max(m.Work.H/30, 1)

	var dir int
	err := s.dragLoop(func(ev any) bool {
		switch e := ev.(type) {
		case xproto.MotionNotifyEvent:
			dy := int(e.RootY) - startY
			if dy > threshold {
				dir = 1
				return true
			}
			if dy < -threshold {
				dir = -1
				return true
			}
			return false
		case xproto.ButtonReleaseEvent:
			return true
		}
		return false
	})
	if err != nil {
		return err
	}

	switch dir {
	case 1:
		s.showOverlay()
	case -1:
		s.hideOverlay()
	}
	return nil
}
