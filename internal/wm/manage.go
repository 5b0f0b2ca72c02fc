package wm

import (
	"strings"

	"github.com/jezek/xgb/xproto"
	"github.com/slabwm/slab/internal/geom"
)

// WM_NORMAL_HINTS flag bits, ICCCM 4.1.2.3.
const (
	hintPMinSize   = 1 << 4
	hintPMaxSize   = 1 << 5
	hintPResizeInc = 1 << 6
	hintPAspect    = 1 << 7
	hintPBaseSize  = 1 << 8
)

// WM_HINTS flag bits.
const hintInput = 1 << 0

// manage adopts a top-level window as a client.
func (s *Session) manage(win xproto.Window) {
	if WinToClient(s.mons, uint32(win)) != nil {
		return
	}
	g, err := xproto.GetGeometry(s.conn, xproto.Drawable(win)).Reply()
	if err != nil {
		// Vanished between the map request and now.
		return
	}

	c := &Client{
		Win: win,
		Geom: geom.Rect{
			X: int(g.X), Y: int(g.Y),
			W: int(g.Width), H: int(g.Height),
		},
		OldBW: int(g.BorderWidth),
		BW:    s.cfg.BorderWidth,
	}
	c.OldGeom = c.Geom
	c.Name = s.windowTitle(win)

	if trans := s.transientFor(win); trans != 0 {
		if parent := WinToClient(s.mons, uint32(trans)); parent != nil {
			c.Mon = parent.Mon
			c.Tags = parent.Tags
			c.IsFloating = true
		}
	}
	if c.Mon == nil {
		c.Mon = s.sel
		s.applyRules(c)
	}
	m := c.Mon
	if c.Tags&m.TagMask() == 0 {
		c.Tags = m.TagSet[m.SelTags]
	}

	// Keep the window inside its monitor.
	if c.Geom.Right()+2*c.BW > m.Geom.Right() {
		c.Geom.X = m.Geom.Right() - c.TotalW()
	}
	if c.Geom.Bottom()+2*c.BW > m.Geom.Bottom() {
		c.Geom.Y = m.Geom.Bottom() - c.TotalH()
	}
	c.Geom.X = max(c.Geom.X, m.Geom.X)
	c.Geom.Y = max(c.Geom.Y, m.Geom.Y)

	s.updateWindowType(c)
	s.updateSizeHints(c)
	s.updateWMHints(c)
	if !c.IsFloating {
		c.IsFloating = c.IsFixed
		c.OldState = c.IsFloating
	}
	c.FloatGeom = c.Geom

	xproto.ConfigureWindow(s.conn, win, xproto.ConfigWindowBorderWidth, []uint32{uint32(c.BW)})
	s.setBorderColor(c, s.colorNormal)
	s.sendConfigureNotify(c)
	xproto.ChangeWindowAttributes(s.conn, win, xproto.CwEventMask, []uint32{clientEventMask})
	s.grabButtons(c, false)
	if c.IsFloating {
		s.raiseWindow(win)
	}

	m.Attach(c)
	m.AttachStack(c)
	s.appendProp32(s.root, s.atoms.NetClients, xproto.AtomWindow, uint32(win))
	s.setClientState(c, normalState)
	xproto.MapWindow(s.conn, win)
	if m == s.sel {
		s.unfocus(s.sel.Sel, false)
		m.Sel = c
	}
	s.arrange(m)
	s.focus(nil)
}

// unmanage drops a client. destroyed means the window is already gone and
// no cleanup commands should be sent its way.
func (s *Session) unmanage(c *Client, destroyed bool) {
	m := c.Mon
	if m.Overlay == c {
		m.Overlay = nil
		m.OverlayShown = false
	}
	m.Detach(c)
	m.DetachStack(c)
	if !destroyed {
		xproto.GrabServer(s.conn)
		xproto.ConfigureWindow(s.conn, c.Win, xproto.ConfigWindowBorderWidth, []uint32{uint32(c.OldBW)})
		xproto.UngrabButton(s.conn, xproto.ButtonIndexAny, c.Win, xproto.ModMaskAny)
		s.setClientState(c, withdrawnState)
		xproto.UngrabServer(s.conn)
	}
	s.focus(nil)
	s.updateClientList()
	s.arrange(m)
}

// applyRules assigns tags, floating state and monitor from the first
// matching rules. Substring matching, empty pattern matches everything.
func (s *Session) applyRules(c *Client) {
	instance, class := s.windowClass(c.Win)
	for _, r := range s.cfg.Rules {
		if r.Class != "" && !strings.Contains(class, r.Class) {
			continue
		}
		if r.Instance != "" && !strings.Contains(instance, r.Instance) {
			continue
		}
		if r.Title != "" && !strings.Contains(c.Name, r.Title) {
			continue
		}
		c.IsFloating = c.IsFloating || r.Floating
		c.Tags |= r.Tags
		if r.Monitor >= 0 && r.Monitor < len(s.mons) {
			c.Mon = s.mons[r.Monitor]
		}
	}
	c.Tags &= c.Mon.TagMask()
}

// updateSizeHints reads WM_NORMAL_HINTS into the solver's hint fields.
func (s *Session) updateSizeHints(c *Client) {
	c.Hints = geom.Hints{}
	data, err := s.getProp32(c.Win, s.atoms.WMNormal, s.atoms.WMNormal, 18)
	if err != nil || len(data) < 18 {
		c.Hints.MinW, c.Hints.MinH = 1, 1
		c.IsFixed = false
		return
	}
	flags := data[0]
	if flags&hintPBaseSize != 0 {
		c.Hints.BaseW = int(int32(data[15]))
		c.Hints.BaseH = int(int32(data[16]))
	} else if flags&hintPMinSize != 0 {
		c.Hints.BaseW = int(int32(data[5]))
		c.Hints.BaseH = int(int32(data[6]))
	}
	if flags&hintPResizeInc != 0 {
		c.Hints.IncW = int(int32(data[9]))
		c.Hints.IncH = int(int32(data[10]))
	}
	if flags&hintPMaxSize != 0 {
		c.Hints.MaxW = int(int32(data[7]))
		c.Hints.MaxH = int(int32(data[8]))
	}
	if flags&hintPMinSize != 0 {
		c.Hints.MinW = int(int32(data[5]))
		c.Hints.MinH = int(int32(data[6]))
	} else if flags&hintPBaseSize != 0 {
		c.Hints.MinW = int(int32(data[15]))
		c.Hints.MinH = int(int32(data[16]))
	}
	if flags&hintPAspect != 0 {
		// min aspect numerator/denominator, then max.
		if data[11] != 0 && data[12] != 0 {
			c.Hints.MinAspect = float64(data[12]) / float64(data[11])
		}
		if data[13] != 0 && data[14] != 0 {
			c.Hints.MaxAspect = float64(data[13]) / float64(data[14])
		}
	}
	c.IsFixed = c.Hints.Fixed()
}

func (s *Session) updateWMHints(c *Client) {
	data, err := s.getProp32(c.Win, s.atoms.WMHints, s.atoms.WMHints, 9)
	if err != nil || len(data) == 0 {
		return
	}
	flags := data[0]
	if c == s.sel.Sel && flags&hintUrgency != 0 {
		// The focused client never stays urgent.
		data[0] = flags &^ hintUrgency
		s.changeProp32(c.Win, s.atoms.WMHints, s.atoms.WMHints, data...)
	} else {
		c.IsUrgent = flags&hintUrgency != 0
	}
	if flags&hintInput != 0 && len(data) > 1 {
		c.NeverFocus = data[1] == 0
	} else {
		c.NeverFocus = false
	}
}

// updateWindowType floats dialogs and honors a fullscreen state property.
func (s *Session) updateWindowType(c *Client) {
	if s.atomProp(c.Win, s.atoms.NetWMState) == s.atoms.NetWMFull {
		s.setFullscreen(c, true)
	}
	if s.atomProp(c.Win, s.atoms.NetWMType) == s.atoms.NetWMDialog {
		c.IsFloating = true
	}
}

func (s *Session) updateTitle(c *Client) {
	c.Name = s.windowTitle(c.Win)
}

// toggleFloatingClient flips a client out of or into the layout,
// restoring the saved floating geometry on the way out.
func (s *Session) toggleFloatingClient(c *Client) {
	if c == nil || (c.IsFullscreen && !c.FakeFullscreen) {
		return
	}
	c.IsFloating = !c.IsFloating || c.IsFixed
	if c == c.Mon.Sel {
		if c.IsFloating {
			s.setBorderColor(c, s.colorFloat)
		} else {
			s.setBorderColor(c, s.colorFocus)
		}
	}
	if c.IsFloating {
		s.resize(c, c.FloatGeom, false)
	} else {
		c.FloatGeom = c.Geom
	}
	s.arrange(c.Mon)
}
