package wm

import (
	"bytes"
	"fmt"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
	"github.com/slabwm/slab/internal/geom"
)

func (s *Session) changeProp32(win xproto.Window, prop, typ xproto.Atom, data ...uint32) {
	buf := make([]byte, 4*len(data))
	for i, v := range data {
		xgb.Put32(buf[4*i:], v)
	}
	xproto.ChangeProperty(s.conn, xproto.PropModeReplace, win, prop, typ, 32,
		uint32(len(data)), buf)
}

func (s *Session) appendProp32(win xproto.Window, prop, typ xproto.Atom, v uint32) {
	buf := make([]byte, 4)
	xgb.Put32(buf, v)
	xproto.ChangeProperty(s.conn, xproto.PropModeAppend, win, prop, typ, 32, 1, buf)
}

func (s *Session) changePropString(win xproto.Window, prop, typ xproto.Atom, v string) {
	xproto.ChangeProperty(s.conn, xproto.PropModeReplace, win, prop, typ, 8,
		uint32(len(v)), []byte(v))
}

func (s *Session) getProp(win xproto.Window, prop, typ xproto.Atom, length uint32) ([]byte, error) {
	reply, err := xproto.GetProperty(s.conn, false, win, prop, typ, 0, length).Reply()
	if err != nil {
		return nil, err
	}
	if reply.Format == 0 {
		return nil, fmt.Errorf("wm: window %#x has no property %d", win, prop)
	}
	return reply.Value, nil
}

func (s *Session) getProp32(win xproto.Window, prop, typ xproto.Atom, length uint32) ([]uint32, error) {
	value, err := s.getProp(win, prop, typ, length)
	if err != nil {
		return nil, err
	}
	out := make([]uint32, 0, len(value)/4)
	for i := 0; i+4 <= len(value); i += 4 {
		out = append(out, xgb.Get32(value[i:]))
	}
	return out, nil
}

// allocColor turns "#rrggbb" into a pixel of the default colormap.
func (s *Session) allocColor(hex string) (uint32, error) {
	var r, g, b uint16
	if _, err := fmt.Sscanf(hex, "#%02x%02x%02x", &r, &g, &b); err != nil {
		return 0, fmt.Errorf("wm: color %q: %w", hex, err)
	}
	reply, err := xproto.AllocColor(s.conn, s.screen.DefaultColormap,
		r<<8|r, g<<8|g, b<<8|b).Reply()
	if err != nil {
		return 0, err
	}
	return reply.Pixel, nil
}

// getWMState reads the ICCCM WM_STATE, withdrawnState when unset.
func (s *Session) getWMState(win xproto.Window) uint32 {
	data, err := s.getProp32(win, s.atoms.WMState, s.atoms.WMState, 2)
	if err != nil || len(data) == 0 {
		return withdrawnState
	}
	return data[0]
}

func (s *Session) setClientState(c *Client, state uint32) {
	s.changeProp32(c.Win, s.atoms.WMState, s.atoms.WMState, state, 0)
}

// transientFor returns the WM_TRANSIENT_FOR target, 0 when unset.
func (s *Session) transientFor(win xproto.Window) xproto.Window {
	data, err := s.getProp32(win, s.atoms.WMTransient, xproto.AtomWindow, 1)
	if err != nil || len(data) == 0 {
		return 0
	}
	return xproto.Window(data[0])
}

func (s *Session) atomProp(win xproto.Window, prop xproto.Atom) xproto.Atom {
	data, err := s.getProp32(win, prop, xproto.AtomAtom, 1)
	if err != nil || len(data) == 0 {
		return 0
	}
	return xproto.Atom(data[0])
}

// windowTitle prefers _NET_WM_NAME over WM_NAME.
func (s *Session) windowTitle(win xproto.Window) string {
	if v, err := s.getProp(win, s.atoms.NetWMName, s.atoms.UTF8String, 64); err == nil && len(v) > 0 {
		return string(v)
	}
	if v, err := s.getProp(win, s.atoms.WMName, xproto.AtomString, 64); err == nil && len(v) > 0 {
		return string(v)
	}
	return "broken"
}

// windowClass returns the WM_CLASS instance and class strings.
func (s *Session) windowClass(win xproto.Window) (instance, class string) {
	v, err := s.getProp(win, s.atoms.WMClass, xproto.AtomString, 64)
	if err != nil {
		return "", ""
	}
	parts := bytes.Split(v, []byte{0})
	if len(parts) > 0 {
		instance = string(parts[0])
	}
	if len(parts) > 1 {
		class = string(parts[1])
	}
	return instance, class
}

// supportsProtocol checks the window's WM_PROTOCOLS list for proto.
func (s *Session) supportsProtocol(win xproto.Window, proto xproto.Atom) bool {
	data, err := s.getProp32(win, s.atoms.WMProtocols, xproto.AtomAtom, 32)
	if err != nil {
		return false
	}
	for _, a := range data {
		if xproto.Atom(a) == proto {
			return true
		}
	}
	return false
}

// sendProtocol delivers a WM_PROTOCOLS client message when the window
// advertises proto. Reports whether it was sent.
func (s *Session) sendProtocol(win xproto.Window, proto xproto.Atom) bool {
	if !s.supportsProtocol(win, proto) {
		return false
	}
	ev := xproto.ClientMessageEvent{
		Format: 32,
		Window: win,
		Type:   s.atoms.WMProtocols,
		Data: xproto.ClientMessageDataUnionData32New([]uint32{
			uint32(proto), uint32(xproto.TimeCurrentTime), 0, 0, 0,
		}),
	}
	xproto.SendEvent(s.conn, false, win, xproto.EventMaskNoEvent, string(ev.Bytes()))
	return true
}

// sendConfigureNotify tells the client its current geometry, as required
// after configure requests the engine answers without moving anything.
func (s *Session) sendConfigureNotify(c *Client) {
	ev := xproto.ConfigureNotifyEvent{
		Event:            c.Win,
		Window:           c.Win,
		AboveSibling:     xproto.WindowNone,
		X:                int16(c.Geom.X),
		Y:                int16(c.Geom.Y),
		Width:            uint16(c.Geom.W),
		Height:           uint16(c.Geom.H),
		BorderWidth:      uint16(c.BW),
		OverrideRedirect: false,
	}
	xproto.SendEvent(s.conn, false, c.Win, xproto.EventMaskStructureNotify, string(ev.Bytes()))
}

func (s *Session) setBorderColor(c *Client, pixel uint32) {
	xproto.ChangeWindowAttributes(s.conn, c.Win, xproto.CwBorderPixel, []uint32{pixel})
}

func (s *Session) moveWindow(win xproto.Window, x, y int) {
	xproto.ConfigureWindow(s.conn, win,
		xproto.ConfigWindowX|xproto.ConfigWindowY,
		[]uint32{uint32(int32(x)), uint32(int32(y))})
}

func (s *Session) configureClient(c *Client, r geom.Rect) {
	xproto.ConfigureWindow(s.conn, c.Win,
		xproto.ConfigWindowX|xproto.ConfigWindowY|
			xproto.ConfigWindowWidth|xproto.ConfigWindowHeight|
			xproto.ConfigWindowBorderWidth,
		[]uint32{
			uint32(int32(r.X)), uint32(int32(r.Y)),
			uint32(r.W), uint32(r.H), uint32(c.BW),
		})
}

func (s *Session) raiseWindow(win xproto.Window) {
	xproto.ConfigureWindow(s.conn, win, xproto.ConfigWindowStackMode,
		[]uint32{xproto.StackModeAbove})
}

func (s *Session) stackBelow(win, sibling xproto.Window) {
	xproto.ConfigureWindow(s.conn, win,
		xproto.ConfigWindowSibling|xproto.ConfigWindowStackMode,
		[]uint32{uint32(sibling), xproto.StackModeBelow})
}

// warpPointer centers the pointer on the client.
func (s *Session) warpPointer(c *Client) {
	if !s.cfg.WarpPointer || c == nil {
		return
	}
	xproto.WarpPointer(s.conn, xproto.WindowNone, c.Win, 0, 0, 0, 0,
		int16(c.Geom.W/2), int16(c.Geom.H/2))
}

func (s *Session) pointer() (x, y int, ok bool) {
	reply, err := xproto.QueryPointer(s.conn, s.root).Reply()
	if err != nil {
		return 0, 0, false
	}
	return int(reply.RootX), int(reply.RootY), true
}

// updateClientList rebuilds _NET_CLIENT_LIST from scratch.
func (s *Session) updateClientList() {
	xproto.DeleteProperty(s.conn, s.root, s.atoms.NetClients)
	for _, m := range s.mons {
		for _, c := range m.Clients {
			s.appendProp32(s.root, s.atoms.NetClients, xproto.AtomWindow, uint32(c.Win))
		}
	}
}
