package wm

import (
	"fmt"
	"strconv"

	"github.com/jezek/xgb/xproto"
	"github.com/slabwm/slab/internal/bus"
	"github.com/slabwm/slab/internal/layout"
)

// CommandFunc is a named engine operation, invokable from key bindings,
// button bindings and the control API. arg comes from the binding.
type CommandFunc func(s *Session, arg string) error

var commands = map[string]CommandFunc{
	"focusstack":           cmdFocusStack,
	"zoom":                 cmdZoom,
	"view":                 cmdView,
	"toggleview":           cmdToggleView,
	"tag":                  cmdTag,
	"toggletag":            cmdToggleTag,
	"followtag":            cmdFollowTag,
	"viewtoleft":           cmdViewToLeft,
	"viewtoright":          cmdViewToRight,
	"tagtoleft":            cmdTagToLeft,
	"tagtoright":           cmdTagToRight,
	"shiftview":            cmdShiftView,
	"setlayout":            cmdSetLayout,
	"togglelayout":         cmdToggleLayout,
	"setmfact":             cmdSetMFact,
	"incnmaster":           cmdIncNMaster,
	"togglebar":            cmdToggleBar,
	"togglefloating":       cmdToggleFloating,
	"togglesticky":         cmdToggleSticky,
	"togglefullscreen":     cmdToggleFullscreen,
	"togglefakefullscreen": cmdToggleFakeFullscreen,
	"hideclient":           cmdHideClient,
	"unhideall":            cmdUnhideAll,
	"toggleoverlay":        cmdToggleOverlay,
	"focusmon":             cmdFocusMon,
	"tagmon":               cmdTagMon,
	"killclient":           cmdKillClient,
	"quit":                 cmdQuit,
	"movemouse":            cmdMoveMouse,
	"resizemouse":          cmdResizeMouse,
	"resizeaspect":         cmdResizeAspect,
	"dragtag":              cmdDragTag,
	"gesture":              cmdGesture,
}

// RunCommand executes a named command. Callers outside the dispatch
// goroutine must go through Dispatch.
func (s *Session) RunCommand(name, arg string) error {
	fn, ok := commands[name]
	if !ok {
		return fmt.Errorf("wm: unknown action %q", name)
	}
	return fn(s, arg)
}

// CommandNames lists every invokable action.
func CommandNames() []string {
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	return names
}

// tagMaskArg parses a tag argument: a 1-based tag number, "all", or the
// empty string for the zero mask.
func tagMaskArg(m *Monitor, arg string) (uint, error) {
	switch arg {
	case "":
		return 0, nil
	case "all":
		return AllTags, nil
	}
	n, err := strconv.Atoi(arg)
	if err != nil || n < 1 || n > m.NumTags {
		return 0, fmt.Errorf("wm: bad tag %q", arg)
	}
	return 1 << uint(n-1), nil
}

func intArg(arg string) (int, error) {
	n, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("wm: bad integer argument %q", arg)
	}
	return n, nil
}

// applyBar syncs the monitor's bar visibility with its per-tag setting
// after a view change reported a difference.
func (s *Session) applyBar(m *Monitor, changed bool) {
	if !changed {
		return
	}
	m.ShowBar = m.Pertag.ShowBars[m.Pertag.Cur]
	m.UpdateWorkArea()
}

func (s *Session) afterViewChange(m *Monitor, barChanged bool) {
	s.applyBar(m, barChanged)
	s.focus(nil)
	s.arrange(m)
	bus.Publish(bus.EventViewChanged{Monitor: m.Num, Tags: m.TagSet[m.SelTags]})
	s.warpPointer(m.Sel)
}

func cmdFocusStack(s *Session, arg string) error {
	dir, err := intArg(arg)
	if err != nil {
		return err
	}
	m := s.sel
	if m.Sel != nil && m.Sel.IsFullscreen && !m.Sel.FakeFullscreen {
		return nil
	}
	c := m.NextInStackDir(dir)
	if c == nil {
		return nil
	}
	s.focus(c)
	s.restack(m)
	s.warpPointer(c)
	return nil
}

// cmdZoom moves the focused tiled client to the master position, or the
// next tiled client when it already is the master.
func cmdZoom(s *Session, arg string) error {
	m := s.sel
	c := m.Sel
	if c == nil || c.IsFloating || m.Layout().Arrange == nil {
		return nil
	}
	tiled := m.TiledClients()
	if len(tiled) == 0 {
		return nil
	}
	if c == tiled[0] {
		if len(tiled) < 2 {
			return nil
		}
		c = tiled[1]
	}
	m.Detach(c)
	m.Attach(c)
	s.focus(c)
	s.arrange(m)
	return nil
}

func cmdView(s *Session, arg string) error {
	m := s.sel
	mask, err := tagMaskArg(m, arg)
	if err != nil {
		return err
	}
	s.afterViewChange(m, m.View(mask))
	return nil
}

func cmdToggleView(s *Session, arg string) error {
	m := s.sel
	mask, err := tagMaskArg(m, arg)
	if err != nil {
		return err
	}
	changed, barChanged := m.ToggleView(mask)
	if changed {
		s.afterViewChange(m, barChanged)
	}
	return nil
}

func cmdTag(s *Session, arg string) error {
	m := s.sel
	c := m.Sel
	if c == nil {
		return nil
	}
	mask, err := tagMaskArg(m, arg)
	if err != nil {
		return err
	}
	if mask&m.TagMask() == 0 {
		return nil
	}
	c.Tags = mask & m.TagMask()
	s.focus(nil)
	s.arrange(m)
	return nil
}

func cmdToggleTag(s *Session, arg string) error {
	m := s.sel
	c := m.Sel
	if c == nil {
		return nil
	}
	mask, err := tagMaskArg(m, arg)
	if err != nil {
		return err
	}
	newtags := c.Tags ^ (mask & m.TagMask())
	if newtags == 0 {
		return nil
	}
	c.Tags = newtags
	s.focus(nil)
	s.arrange(m)
	return nil
}

// cmdFollowTag retags the focused client and views the same tag.
func cmdFollowTag(s *Session, arg string) error {
	if err := cmdTag(s, arg); err != nil {
		return err
	}
	return cmdView(s, arg)
}

func cmdViewToLeft(s *Session, arg string) error {
	m := s.sel
	if ok, barChanged := m.ViewToLeft(); ok {
		s.afterViewChange(m, barChanged)
	}
	return nil
}

func cmdViewToRight(s *Session, arg string) error {
	m := s.sel
	if ok, barChanged := m.ViewToRight(); ok {
		s.afterViewChange(m, barChanged)
	}
	return nil
}

func cmdTagToLeft(s *Session, arg string) error {
	m := s.sel
	if m.TagToLeft() {
		s.afterViewChange(m, m.View(m.TagSet[m.SelTags]>>1))
	}
	return nil
}

func cmdTagToRight(s *Session, arg string) error {
	m := s.sel
	if m.TagToRight() {
		s.afterViewChange(m, m.View(m.TagSet[m.SelTags]<<1))
	}
	return nil
}

func cmdShiftView(s *Session, arg string) error {
	dir, err := intArg(arg)
	if err != nil {
		return err
	}
	m := s.sel
	if mask, ok := m.ShiftView(dir); ok {
		s.afterViewChange(m, m.View(mask))
	}
	return nil
}

func cmdSetLayout(s *Session, arg string) error {
	lt, err := layout.ByName(layout.Name(arg))
	if err != nil {
		return err
	}
	s.setLayout(s.sel, &lt)
	return nil
}

func cmdToggleLayout(s *Session, arg string) error {
	s.setLayout(s.sel, nil)
	return nil
}

// setLayout installs lt as the live layout, flipping the layout buffer
// when lt differs from the current one. A nil lt just flips.
func (s *Session) setLayout(m *Monitor, lt *layout.Layout) {
	p := m.Pertag
	if lt == nil || lt.Name != m.Layout().Name {
		p.SelLts[p.Cur] ^= 1
		m.SelLt = p.SelLts[p.Cur]
	}
	if lt != nil {
		m.Layouts[m.SelLt] = *lt
		p.Layouts[p.Cur][m.SelLt] = *lt
	}
	m.Symbol = m.Layout().Symbol
	if m.Sel != nil {
		s.arrange(m)
	}
	bus.Publish(bus.EventLayoutChanged{Monitor: m.Num, Symbol: m.Symbol})
}

func cmdSetMFact(s *Session, arg string) error {
	delta, err := strconv.ParseFloat(arg, 64)
	if err != nil {
		return fmt.Errorf("wm: bad factor argument %q", arg)
	}
	m := s.sel
	if m.Layout().Arrange == nil {
		return nil
	}
	f := m.MFact + delta
	if f < 0.05 || f > 0.95 {
		return nil
	}
	m.MFact = f
	m.Pertag.MFacts[m.Pertag.Cur] = f
	s.arrange(m)
	return nil
}

func cmdIncNMaster(s *Session, arg string) error {
	delta, err := intArg(arg)
	if err != nil {
		return err
	}
	m := s.sel
	n := max(m.NMaster+delta, 0)
	m.NMaster = n
	m.Pertag.NMasters[m.Pertag.Cur] = n
	s.arrange(m)
	return nil
}

func cmdToggleBar(s *Session, arg string) error {
	m := s.sel
	m.ShowBar = !m.ShowBar
	m.Pertag.ShowBars[m.Pertag.Cur] = m.ShowBar
	m.UpdateWorkArea()
	s.arrange(m)
	bus.Publish(bus.EventRedraw{Monitor: m.Num})
	return nil
}

func cmdToggleFloating(s *Session, arg string) error {
	s.toggleFloatingClient(s.sel.Sel)
	return nil
}

func cmdToggleSticky(s *Session, arg string) error {
	c := s.sel.Sel
	if c == nil {
		return nil
	}
	c.IsSticky = !c.IsSticky
	s.arrange(c.Mon)
	return nil
}

func cmdToggleFullscreen(s *Session, arg string) error {
	c := s.sel.Sel
	if c == nil {
		return nil
	}
	s.setFullscreen(c, !c.IsFullscreen)
	return nil
}

// cmdToggleFakeFullscreen flips whether fullscreen is real geometry or
// just the advertised property. A currently fullscreen client moves
// between the two modes in place.
func cmdToggleFakeFullscreen(s *Session, arg string) error {
	c := s.sel.Sel
	if c == nil {
		return nil
	}
	c.FakeFullscreen = !c.FakeFullscreen
	if !c.IsFullscreen {
		return nil
	}
	if c.FakeFullscreen {
		c.IsFloating = c.OldState
		c.BW = c.OldBW
		c.Geom = c.OldGeom
		s.resizeClient(c, c.Geom)
		s.arrange(c.Mon)
	} else {
		c.OldState = c.IsFloating
		c.OldBW = c.BW
		c.BW = 0
		c.IsFloating = true
		s.resizeClient(c, c.Mon.Geom)
		s.raiseWindow(c.Win)
	}
	return nil
}

func cmdHideClient(s *Session, arg string) error {
	s.hideClient(s.sel.Sel)
	return nil
}

func cmdUnhideAll(s *Session, arg string) error {
	m := s.sel
	for _, c := range m.Clients {
		if c.IsHidden {
			s.showClient(c)
		}
	}
	s.focus(nil)
	return nil
}

func cmdFocusMon(s *Session, arg string) error {
	dir, err := intArg(arg)
	if err != nil {
		return err
	}
	m := DirToMon(s.mons, s.sel, dir)
	if m == s.sel {
		return nil
	}
	s.unfocus(s.sel.Sel, true)
	s.sel = m
	s.focus(nil)
	s.warpPointer(m.Sel)
	return nil
}

func cmdTagMon(s *Session, arg string) error {
	dir, err := intArg(arg)
	if err != nil {
		return err
	}
	c := s.sel.Sel
	if c == nil || len(s.mons) < 2 {
		return nil
	}
	s.sendMon(c, DirToMon(s.mons, c.Mon, dir))
	return nil
}

// cmdKillClient asks the client to close itself, killing the connection
// when it does not speak WM_DELETE_WINDOW.
func cmdKillClient(s *Session, arg string) error {
	c := s.sel.Sel
	if c == nil || c.IsLocked {
		return nil
	}
	if !s.sendProtocol(c.Win, s.atoms.WMDelete) {
		xproto.GrabServer(s.conn)
		xproto.KillClient(s.conn, uint32(c.Win))
		xproto.UngrabServer(s.conn)
	}
	return nil
}

func cmdQuit(s *Session, arg string) error {
	s.running = false
	return nil
}

func cmdMoveMouse(s *Session, arg string) error   { return s.moveMouse() }
func cmdResizeMouse(s *Session, arg string) error { return s.resizeMouse() }

func cmdResizeAspect(s *Session, arg string) error { return s.resizeAspect() }
func cmdDragTag(s *Session, arg string) error      { return s.dragTag() }
func cmdGesture(s *Session, arg string) error      { return s.gesture() }

func cmdToggleOverlay(s *Session, arg string) error {
	s.toggleOverlay()
	return nil
}
