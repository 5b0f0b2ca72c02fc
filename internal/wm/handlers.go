package wm

import (
	"log/slog"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
	"github.com/slabwm/slab/internal/bus"
	"github.com/slabwm/slab/internal/geom"
)

// handle processes one message from the event channel. Everything that
// mutates engine state funnels through here, on one goroutine.
func (s *Session) handle(ev any) {
	switch e := ev.(type) {
	case execMsg:
		e.done <- e.fn(s)
	case xgb.Error:
		// Requests against windows that vanished race the dispatch
		// loop constantly. Not fatal.
		slog.Debug("X error", "error", e)
	case xproto.ConfigureRequestEvent:
		s.onConfigureRequest(e)
	case xproto.ConfigureNotifyEvent:
		s.onConfigureNotify(e)
	case xproto.MapRequestEvent:
		s.onMapRequest(e)
	case xproto.DestroyNotifyEvent:
		if c := WinToClient(s.mons, uint32(e.Window)); c != nil {
			s.unmanage(c, true)
		}
	case xproto.UnmapNotifyEvent:
		if c := WinToClient(s.mons, uint32(e.Window)); c != nil {
			s.unmanage(c, false)
		}
	case xproto.EnterNotifyEvent:
		s.onEnterNotify(e)
	case xproto.MotionNotifyEvent:
		s.onMotionNotify(e)
	case xproto.FocusInEvent:
		s.onFocusIn(e)
	case xproto.PropertyNotifyEvent:
		s.onPropertyNotify(e)
	case xproto.ClientMessageEvent:
		s.onClientMessage(e)
	case xproto.ButtonPressEvent:
		s.onButtonPress(e)
	case xproto.KeyPressEvent:
		s.onKeyPress(e)
	case xproto.MappingNotifyEvent:
		if e.Request == xproto.MappingKeyboard {
			if err := s.initKeymap(); err != nil {
				slog.Warn("Keymap reload failed", "error", err)
			}
			s.grabKeys()
		}
	}
}

// onConfigureRequest answers geometry requests. Floating clients and
// clients under a nil layout get what they ask for, tiled clients get a
// synthetic notify restating their assigned geometry.
func (s *Session) onConfigureRequest(e xproto.ConfigureRequestEvent) {
	c := WinToClient(s.mons, uint32(e.Window))
	if c == nil {
		s.forwardConfigureRequest(e)
		return
	}

	if e.ValueMask&xproto.ConfigWindowBorderWidth != 0 {
		c.BW = int(e.BorderWidth)
		return
	}
	if !c.IsFloating && c.Mon.Layout().Arrange != nil {
		s.sendConfigureNotify(c)
		return
	}

	m := c.Mon
	if e.ValueMask&xproto.ConfigWindowX != 0 {
		c.OldGeom.X = c.Geom.X
		c.Geom.X = m.Geom.X + int(e.X)
	}
	if e.ValueMask&xproto.ConfigWindowY != 0 {
		c.OldGeom.Y = c.Geom.Y
		c.Geom.Y = m.Geom.Y + int(e.Y)
	}
	if e.ValueMask&xproto.ConfigWindowWidth != 0 {
		c.OldGeom.W = c.Geom.W
		c.Geom.W = int(e.Width)
	}
	if e.ValueMask&xproto.ConfigWindowHeight != 0 {
		c.OldGeom.H = c.Geom.H
		c.Geom.H = int(e.Height)
	}
	if c.Geom.Right() > m.Geom.Right() && c.IsFloating {
		c.Geom.X = m.Geom.X + (m.Geom.W-c.TotalW())/2
	}
	if c.Geom.Bottom() > m.Geom.Bottom() && c.IsFloating {
		c.Geom.Y = m.Geom.Y + (m.Geom.H-c.TotalH())/2
	}
	const sizeMask = xproto.ConfigWindowWidth | xproto.ConfigWindowHeight
	if e.ValueMask&(xproto.ConfigWindowX|xproto.ConfigWindowY) != 0 && e.ValueMask&sizeMask == 0 {
		s.sendConfigureNotify(c)
	}
	if m.Visible(c) {
		s.configureClient(c, c.Geom)
	}
}

// forwardConfigureRequest passes an unmanaged window's request through
// unchanged. Values must be packed in value-mask bit order.
func (s *Session) forwardConfigureRequest(e xproto.ConfigureRequestEvent) {
	var values []uint32
	for _, f := range []struct {
		bit uint16
		v   uint32
	}{
		{xproto.ConfigWindowX, uint32(int32(e.X))},
		{xproto.ConfigWindowY, uint32(int32(e.Y))},
		{xproto.ConfigWindowWidth, uint32(e.Width)},
		{xproto.ConfigWindowHeight, uint32(e.Height)},
		{xproto.ConfigWindowBorderWidth, uint32(e.BorderWidth)},
		{xproto.ConfigWindowSibling, uint32(e.Sibling)},
		{xproto.ConfigWindowStackMode, uint32(e.StackMode)},
	} {
		if e.ValueMask&f.bit != 0 {
			values = append(values, f.v)
		}
	}
	xproto.ConfigureWindow(s.conn, e.Window, e.ValueMask, values)
}

// onConfigureNotify reacts to root window size changes, typically a
// RandR mode switch.
func (s *Session) onConfigureNotify(e xproto.ConfigureNotifyEvent) {
	if e.Window != s.root {
		return
	}
	if int(e.Width) == int(s.screen.WidthInPixels) && int(e.Height) == int(s.screen.HeightInPixels) {
		return
	}
	s.screen.WidthInPixels = e.Width
	s.screen.HeightInPixels = e.Height
	if err := s.updateGeom(); err != nil {
		slog.Warn("Monitor reconfiguration failed", "error", err)
		return
	}
	s.focus(nil)
	s.arrange(nil)
}

func (s *Session) onMapRequest(e xproto.MapRequestEvent) {
	attr, err := xproto.GetWindowAttributes(s.conn, e.Window).Reply()
	if err != nil || attr.OverrideRedirect {
		return
	}
	s.manage(e.Window)
}

// onEnterNotify implements focus-follows-pointer.
func (s *Session) onEnterNotify(e xproto.EnterNotifyEvent) {
	if (e.Mode != xproto.NotifyModeNormal || e.Detail == xproto.NotifyDetailInferior) && e.Event != s.root {
		return
	}
	c := WinToClient(s.mons, uint32(e.Event))
	m := s.sel
	if c != nil {
		m = c.Mon
	}
	if m != s.sel {
		s.unfocus(s.sel.Sel, true)
		s.sel = m
	} else if c == nil || c == s.sel.Sel {
		return
	}
	s.focus(c)
}

// onMotionNotify switches the selected monitor as the pointer crosses
// output boundaries over the root window.
func (s *Session) onMotionNotify(e xproto.MotionNotifyEvent) {
	if e.Event != s.root {
		return
	}
	at := geom.Rect{X: int(e.RootX), Y: int(e.RootY), W: 1, H: 1}
	m := RectToMon(s.mons, s.sel, at)
	if m == s.sel {
		return
	}
	s.unfocus(s.sel.Sel, true)
	s.sel = m
	s.focus(nil)
}

// onFocusIn reclaims input focus from clients that grab it directly.
func (s *Session) onFocusIn(e xproto.FocusInEvent) {
	if c := s.sel.Sel; c != nil && e.Event != c.Win {
		s.setFocus(c)
	}
}

func (s *Session) onPropertyNotify(e xproto.PropertyNotifyEvent) {
	if e.State == xproto.PropertyDelete {
		return
	}
	c := WinToClient(s.mons, uint32(e.Window))
	if c == nil {
		return
	}
	switch e.Atom {
	case s.atoms.WMTransient:
		if !c.IsFloating && s.transientFor(c.Win) != 0 {
			c.IsFloating = true
			s.arrange(c.Mon)
		}
	case s.atoms.WMNormal:
		s.updateSizeHints(c)
	case s.atoms.WMHints:
		s.updateWMHints(c)
		bus.Publish(bus.EventRedraw{Monitor: c.Mon.Num})
	case s.atoms.WMName, s.atoms.NetWMName:
		s.updateTitle(c)
		if c == s.sel.Sel {
			bus.Publish(bus.EventFocusChanged{
				Monitor: s.sel.Num,
				Window:  uint32(c.Win),
				Name:    c.Name,
			})
		}
	case s.atoms.NetWMType:
		s.updateWindowType(c)
	}
}

func (s *Session) onClientMessage(e xproto.ClientMessageEvent) {
	c := WinToClient(s.mons, uint32(e.Window))
	if c == nil {
		return
	}
	data := e.Data.Data32
	switch e.Type {
	case s.atoms.NetWMState:
		if len(data) < 3 {
			return
		}
		if xproto.Atom(data[1]) == s.atoms.NetWMFull || xproto.Atom(data[2]) == s.atoms.NetWMFull {
			full := data[0] == netWMStateAdd ||
				(data[0] == netWMStateToggle && !c.IsFullscreen)
			s.setFullscreen(c, full)
		}
	case s.atoms.NetActive:
		if c != s.sel.Sel && !c.IsUrgent {
			s.setUrgent(c, true)
		}
	}
}

// onButtonPress focuses the clicked client, replays the click to it, and
// runs any matching button binding.
func (s *Session) onButtonPress(e xproto.ButtonPressEvent) {
	at := geom.Rect{X: int(e.RootX), Y: int(e.RootY), W: 1, H: 1}
	if m := RectToMon(s.mons, s.sel, at); m != s.sel {
		s.unfocus(s.sel.Sel, true)
		s.sel = m
		s.focus(nil)
	}

	c := WinToClient(s.mons, uint32(e.Event))
	if c == nil {
		return
	}
	s.focus(c)
	s.restack(c.Mon)
	xproto.AllowEvents(s.conn, xproto.AllowReplayPointer, e.Time)

	for _, b := range s.buttons {
		if b.button != xproto.Button(e.Detail) || s.cleanMask(b.mod) != s.cleanMask(e.State) {
			continue
		}
		if err := s.RunCommand(b.action, b.arg); err != nil {
			slog.Warn("Button command failed", "action", b.action, "error", err)
		}
		return
	}
}

func (s *Session) onKeyPress(e xproto.KeyPressEvent) {
	sym, ok := s.keycodes[e.Detail]
	if !ok {
		return
	}
	for _, k := range s.keys {
		if k.keysym != sym || s.cleanMask(k.mod) != s.cleanMask(e.State) {
			continue
		}
		if err := s.RunCommand(k.action, k.arg); err != nil {
			slog.Warn("Key command failed", "action", k.action, "error", err)
		}
		return
	}
}
