package wm

import (
	"github.com/jezek/xgb/xproto"
	"github.com/slabwm/slab/internal/bus"
	"github.com/slabwm/slab/internal/geom"
	"github.com/slabwm/slab/internal/layout"
)

// focus settles input focus on c, or on the best stack candidate of the
// selected monitor when c is nil or not focusable.
func (s *Session) focus(c *Client) {
	if c == nil || !c.Mon.Visible(c) || c.IsHidden {
		c = s.sel.FocusCandidate(nil)
	}
	if s.sel.Sel != nil && s.sel.Sel != c {
		s.unfocus(s.sel.Sel, false)
	}
	if c != nil {
		if c.Mon != s.sel {
			s.sel = c.Mon
		}
		if c.IsUrgent {
			s.setUrgent(c, false)
		}
		c.Mon.DetachStack(c)
		c.Mon.AttachStack(c)
		s.grabButtons(c, true)
		if c.IsFloating {
			s.setBorderColor(c, s.colorFloat)
		} else {
			s.setBorderColor(c, s.colorFocus)
		}
		s.setFocus(c)
	} else {
		xproto.SetInputFocus(s.conn, xproto.InputFocusPointerRoot, s.root, xproto.TimeCurrentTime)
		xproto.DeleteProperty(s.conn, s.root, s.atoms.NetActive)
	}
	s.sel.Sel = c

	ev := bus.EventFocusChanged{Monitor: s.sel.Num}
	if c != nil {
		ev.Window = uint32(c.Win)
		ev.Name = c.Name
	}
	bus.Publish(ev)
	bus.Publish(bus.EventRedraw{Monitor: s.sel.Num})
}

func (s *Session) unfocus(c *Client, revertToRoot bool) {
	if c == nil {
		return
	}
	s.grabButtons(c, false)
	s.setBorderColor(c, s.colorNormal)
	if revertToRoot {
		xproto.SetInputFocus(s.conn, xproto.InputFocusPointerRoot, s.root, xproto.TimeCurrentTime)
		xproto.DeleteProperty(s.conn, s.root, s.atoms.NetActive)
	}
}

func (s *Session) setFocus(c *Client) {
	if !c.NeverFocus {
		xproto.SetInputFocus(s.conn, xproto.InputFocusPointerRoot, c.Win, xproto.TimeCurrentTime)
		s.changeProp32(s.root, s.atoms.NetActive, xproto.AtomWindow, uint32(c.Win))
	}
	s.sendProtocol(c.Win, s.atoms.WMTakeFocus)
}

func (s *Session) setUrgent(c *Client, urgent bool) {
	c.IsUrgent = urgent
	// WM_HINTS urgency bit, kept in sync so other clients see it.
	data, err := s.getProp32(c.Win, s.atoms.WMHints, s.atoms.WMHints, 9)
	if err != nil || len(data) == 0 {
		return
	}
	if urgent {
		data[0] |= hintUrgency
	} else {
		data[0] &^= hintUrgency
	}
	s.changeProp32(c.Win, s.atoms.WMHints, s.atoms.WMHints, data...)
}

// restack raises a floating selection and keeps tiled clients in
// most-recently-focused z-order.
func (s *Session) restack(m *Monitor) {
	bus.Publish(bus.EventRedraw{Monitor: m.Num})
	if m.Sel == nil {
		return
	}
	if m.Sel.IsFloating || m.Layout().Arrange == nil {
		s.raiseWindow(m.Sel.Win)
	}
	if m.Layout().Arrange != nil {
		var sibling xproto.Window
		for _, c := range m.Stack {
			if c.IsFloating || !m.Visible(c) {
				continue
			}
			if sibling != 0 {
				s.stackBelow(c.Win, sibling)
			}
			sibling = c.Win
		}
	}
}

// resize runs the candidate rectangle through the geometry solver and
// applies it when it differs from the current geometry.
func (s *Session) resize(c *Client, r geom.Rect, interactive bool) {
	solved := geom.Solve(r, c.Hints, geom.SolveContext{
		Screen:      s.screenRect(),
		Work:        c.Mon.Work,
		BarHeight:   c.Mon.BarHeight,
		Border:      c.BW,
		Interactive: interactive,
		Honor:       s.cfg.ResizeHints || c.IsFloating || c.Mon.Layout().Arrange == nil,
	})
	if solved != c.Geom {
		s.resizeClient(c, solved)
	}
}

func (s *Session) resizeClient(c *Client, r geom.Rect) {
	c.OldGeom = c.Geom
	c.Geom = r
	s.configureClient(c, r)
	s.sendConfigureNotify(c)
}

// showHide moves visible clients to their place and parks invisible ones
// off-screen, stack order down for shows and up for hides.
func (s *Session) showHide(m *Monitor) {
	var hide []*Client
	for _, c := range m.Stack {
		if m.Visible(c) && !c.IsHidden {
			s.moveWindow(c.Win, c.Geom.X, c.Geom.Y)
			if (m.Layout().Arrange == nil || c.IsFloating) && (!c.IsFullscreen || c.FakeFullscreen) {
				s.resize(c, c.Geom, false)
			}
		} else {
			hide = append(hide, c)
		}
	}
	for i := len(hide) - 1; i >= 0; i-- {
		c := hide[i]
		s.moveWindow(c.Win, c.TotalW()*-2, c.Geom.Y)
	}
}

// arrange recomputes geometry for m, or for every monitor when m is nil.
func (s *Session) arrange(m *Monitor) {
	if m == nil {
		for _, each := range s.mons {
			s.showHide(each)
			s.arrangeMonitor(each)
		}
		return
	}
	s.showHide(m)
	s.arrangeMonitor(m)
	s.restack(m)
}

func (s *Session) arrangeMonitor(m *Monitor) {
	lt := m.Layout()
	m.Symbol = lt.Symbol
	if lt.Arrange == nil {
		return
	}
	tiled := m.TiledClients()
	if lt.Name == layout.NameMonocle && len(tiled) > 0 {
		m.Symbol = layout.MonocleSymbol(len(tiled))
	}
	frames := lt.Arrange(m.Work, len(tiled), m.NMaster, m.MFact, 0)
	for i, c := range tiled {
		f := frames[i]
		s.resize(c, geom.Rect{X: f.X, Y: f.Y, W: f.W - 2*c.BW, H: f.H - 2*c.BW}, false)
	}
}

// sendMon moves a client to another monitor, retagging it to the target's
// active tag-set.
func (s *Session) sendMon(c *Client, m *Monitor) {
	if c.Mon == m {
		return
	}
	s.unfocus(c, true)
	c.Mon.Detach(c)
	c.Mon.DetachStack(c)
	c.Mon = m
	c.Tags = m.TagSet[m.SelTags]
	m.Attach(c)
	m.AttachStack(c)
	s.focus(nil)
	s.arrange(nil)
}

// setFullscreen switches a client into or out of fullscreen. Fake
// fullscreen only sets the property and keeps the client in the layout.
func (s *Session) setFullscreen(c *Client, full bool) {
	if full && !c.IsFullscreen {
		s.changeProp32(c.Win, s.atoms.NetWMState, xproto.AtomAtom, uint32(s.atoms.NetWMFull))
		c.IsFullscreen = true
		if c.FakeFullscreen {
			return
		}
		c.OldState = c.IsFloating
		c.OldBW = c.BW
		c.BW = 0
		c.IsFloating = true
		s.resizeClient(c, c.Mon.Geom)
		s.raiseWindow(c.Win)
	} else if !full && c.IsFullscreen {
		s.changeProp32(c.Win, s.atoms.NetWMState, xproto.AtomAtom)
		c.IsFullscreen = false
		if c.FakeFullscreen {
			return
		}
		c.IsFloating = c.OldState
		c.BW = c.OldBW
		c.Geom = c.OldGeom
		s.resizeClient(c, c.Geom)
		s.arrange(c.Mon)
	}
}

// hideClient iconifies a client and refocuses from the stack. The unmap
// happens with notify masks dropped so the dispatcher does not mistake it
// for a client withdrawing itself.
func (s *Session) hideClient(c *Client) {
	if c == nil || c.IsHidden {
		return
	}
	c.IsHidden = true
	xproto.GrabServer(s.conn)
	xproto.ChangeWindowAttributes(s.conn, s.root, xproto.CwEventMask,
		[]uint32{rootEventMask &^ xproto.EventMaskSubstructureNotify})
	xproto.ChangeWindowAttributes(s.conn, c.Win, xproto.CwEventMask,
		[]uint32{clientEventMask &^ xproto.EventMaskStructureNotify})
	xproto.UnmapWindow(s.conn, c.Win)
	s.setClientState(c, iconicState)
	xproto.ChangeWindowAttributes(s.conn, s.root, xproto.CwEventMask, []uint32{rootEventMask})
	xproto.ChangeWindowAttributes(s.conn, c.Win, xproto.CwEventMask, []uint32{clientEventMask})
	xproto.UngrabServer(s.conn)
	s.focus(nil)
	s.arrange(c.Mon)
}

// showClient restores an iconified client.
func (s *Session) showClient(c *Client) {
	if c == nil || !c.IsHidden {
		return
	}
	c.IsHidden = false
	xproto.MapWindow(s.conn, c.Win)
	s.setClientState(c, normalState)
	s.raiseWindow(c.Win)
	s.arrange(c.Mon)
}

const hintUrgency = 1 << 8
