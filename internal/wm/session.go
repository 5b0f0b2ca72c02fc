// Package wm implements the window arrangement and focus engine: the
// client/monitor/tag model, the dispatch loop over the X connection, the
// layout application, and the interactive pointer controllers.
package wm

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xinerama"
	"github.com/jezek/xgb/xproto"
	"github.com/slabwm/slab/internal/bus"
	"github.com/slabwm/slab/internal/config"
	"github.com/slabwm/slab/internal/geom"
	"github.com/slabwm/slab/internal/layout"
	"github.com/slabwm/slab/internal/xcursor"
	"github.com/thejerf/suture/v4"
)

type Session struct {
	conn   *xgb.Conn
	screen *xproto.ScreenInfo
	root   xproto.Window
	atoms  Atoms

	cfg      config.Config
	defaults Defaults

	mons []*Monitor
	sel  *Monitor

	check xproto.Window // _NET_SUPPORTING_WM_CHECK window

	colorNormal uint32
	colorFocus  uint32
	colorFloat  uint32

	cursorNormal xproto.Cursor
	cursorMove   xproto.Cursor
	cursorResize [8]xproto.Cursor

	numlockMask uint16
	keycodes    map[xproto.Keycode]uint32 // keycode to keysym, first column
	keys        []keyBinding
	buttons     []buttonBinding

	xinerama bool
	dragging bool
	running  bool

	eventC chan any
}

func NewSession(conn *xgb.Conn, cfg config.Config) (*Session, error) {
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	lt, err := layout.ByName(layout.Name(cfg.Layout))
	if err != nil {
		return nil, err
	}

	screen := xproto.Setup(conn).DefaultScreen(conn)
	s := &Session{
		conn:   conn,
		screen: screen,
		root:   screen.Root,
		cfg:    cfg,
		defaults: Defaults{
			NumTags:   len(cfg.Tags),
			MFact:     cfg.MFact,
			NMaster:   cfg.NMaster,
			ShowBar:   cfg.ShowBar,
			TopBar:    cfg.TopBar,
			BarHeight: cfg.BarHeight,
			Layout:    lt,
		},
		eventC: make(chan any),
	}
	return s, nil
}

func (s *Session) String() string { return "wm.Session" }

// Serve takes ownership of the display, processes events until ctx is
// done or quit is requested, then restores what it changed.
func (s *Session) Serve(ctx context.Context) error {
	if err := s.setup(); err != nil {
		return err
	}
	defer s.cleanup()

	go ReceiveEvents(ctx, s.conn, s.eventC)

	s.running = true
	for s.running {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-s.eventC:
			if !ok {
				return fmt.Errorf("wm: X connection lost")
			}
			s.handle(ev)
		}
	}
	// A deliberate quit takes the whole process down, not just this
	// service.
	return suture.ErrTerminateSupervisorTree
}

// Dispatch runs fn on the dispatch goroutine and waits for it. It is the
// only safe entry point for other goroutines.
func (s *Session) Dispatch(ctx context.Context, fn func(s *Session) error) error {
	msg := execMsg{fn: fn, done: make(chan error, 1)}
	select {
	case s.eventC <- msg:
	case <-ctx.Done():
		return ctx.Err()
	}
	select {
	case err := <-msg.done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Session) setup() error {
	if err := s.becomeWM(); err != nil {
		return err
	}

	atoms, err := InternAtoms(s.conn)
	if err != nil {
		return err
	}
	s.atoms = atoms

	if err := xinerama.Init(s.conn); err == nil {
		s.xinerama = true
	} else {
		slog.Debug("Xinerama unavailable", "error", err)
	}

	if err := s.initColors(); err != nil {
		return err
	}
	if err := s.initCursors(); err != nil {
		return err
	}

	if err := s.updateGeom(); err != nil {
		return err
	}
	s.sel = s.mons[0]

	if err := s.initEWMH(); err != nil {
		return err
	}

	s.updateNumlockMask()
	if err := s.initKeymap(); err != nil {
		return err
	}
	if err := s.parseBindings(); err != nil {
		return err
	}
	s.grabKeys()

	if err := s.selectRootEvents(); err != nil {
		return err
	}
	if err := s.scan(); err != nil {
		return err
	}
	s.focus(nil)
	s.arrange(nil)

	slog.Info("Managing display",
		"monitors", len(s.mons),
		"tags", len(s.cfg.Tags),
		"layout", s.cfg.Layout)
	return nil
}

// becomeWM registers for substructure redirection on the root window.
// Only one client may hold it; failure means another window manager is
// already running.
func (s *Session) becomeWM() error {
	err := xproto.ChangeWindowAttributesChecked(s.conn, s.root,
		xproto.CwEventMask, []uint32{
			xproto.EventMaskSubstructureRedirect,
		}).Check()
	if err != nil {
		return fmt.Errorf("wm: another window manager is already running: %w", err)
	}
	return nil
}

const rootEventMask = xproto.EventMaskSubstructureRedirect |
	xproto.EventMaskSubstructureNotify |
	xproto.EventMaskButtonPress |
	xproto.EventMaskPointerMotion |
	xproto.EventMaskEnterWindow |
	xproto.EventMaskLeaveWindow |
	xproto.EventMaskStructureNotify |
	xproto.EventMaskPropertyChange

const clientEventMask = xproto.EventMaskEnterWindow |
	xproto.EventMaskFocusChange |
	xproto.EventMaskPropertyChange |
	xproto.EventMaskStructureNotify

func (s *Session) selectRootEvents() error {
	return xproto.ChangeWindowAttributesChecked(s.conn, s.root,
		xproto.CwEventMask|xproto.CwCursor, []uint32{
			rootEventMask,
			uint32(s.cursorNormal),
		}).Check()
}

func (s *Session) initColors() error {
	var err error
	if s.colorNormal, err = s.allocColor(s.cfg.BorderNormal); err != nil {
		return err
	}
	if s.colorFocus, err = s.allocColor(s.cfg.BorderFocus); err != nil {
		return err
	}
	if s.colorFloat, err = s.allocColor(s.cfg.BorderFloat); err != nil {
		return err
	}
	return nil
}

func (s *Session) initCursors() error {
	var err error
	if s.cursorNormal, err = xcursor.CreateCursor(s.conn, xcursor.LeftPtr); err != nil {
		return err
	}
	if s.cursorMove, err = xcursor.CreateCursor(s.conn, xcursor.Fleur); err != nil {
		return err
	}
	glyphs := [8]uint16{
		xcursor.TopLeftCorner, xcursor.TopSide, xcursor.TopRightCorner,
		xcursor.LeftSide, xcursor.RightSide,
		xcursor.BottomLeftCorner, xcursor.BottomSide, xcursor.BottomRightCorner,
	}
	for i, g := range glyphs {
		if s.cursorResize[i], err = xcursor.CreateCursor(s.conn, g); err != nil {
			return err
		}
	}
	return nil
}

func (s *Session) initEWMH() error {
	wid, err := xproto.NewWindowId(s.conn)
	if err != nil {
		return err
	}
	err = xproto.CreateWindowChecked(s.conn, 0, wid, s.root,
		-1, -1, 1, 1, 0, xproto.WindowClassInputOnly, s.screen.RootVisual,
		0, []uint32{}).Check()
	if err != nil {
		return err
	}
	s.check = wid

	s.changeProp32(wid, s.atoms.NetWMCheck, xproto.AtomWindow, uint32(wid))
	s.changePropString(wid, s.atoms.NetWMName, s.atoms.UTF8String, "slab")
	s.changeProp32(s.root, s.atoms.NetWMCheck, xproto.AtomWindow, uint32(wid))

	supported := []uint32{
		uint32(s.atoms.NetSupported),
		uint32(s.atoms.NetWMName),
		uint32(s.atoms.NetWMState),
		uint32(s.atoms.NetWMCheck),
		uint32(s.atoms.NetWMFull),
		uint32(s.atoms.NetActive),
		uint32(s.atoms.NetWMType),
		uint32(s.atoms.NetWMDialog),
		uint32(s.atoms.NetClients),
	}
	s.changeProp32(s.root, s.atoms.NetSupported, xproto.AtomAtom, supported...)
	xproto.DeleteProperty(s.conn, s.root, s.atoms.NetClients)
	return nil
}

// scan adopts windows that already exist on the display: top-levels
// first, transients after so their parents are managed.
func (s *Session) scan() error {
	tree, err := xproto.QueryTree(s.conn, s.root).Reply()
	if err != nil {
		return err
	}

	type found struct {
		win  xproto.Window
		attr *xproto.GetWindowAttributesReply
	}
	var normals, transients []found

	for _, w := range tree.Children {
		attr, err := xproto.GetWindowAttributes(s.conn, w).Reply()
		if err != nil || attr.OverrideRedirect {
			continue
		}
		if s.transientFor(w) != 0 {
			transients = append(transients, found{w, attr})
			continue
		}
		if attr.MapState == xproto.MapStateViewable || s.getWMState(w) == iconicState {
			normals = append(normals, found{w, attr})
		}
	}
	for _, f := range normals {
		s.manage(f.win)
	}
	for _, f := range transients {
		if f.attr.MapState == xproto.MapStateViewable || s.getWMState(f.win) == iconicState {
			s.manage(f.win)
		}
	}
	return nil
}

func (s *Session) cleanup() {
	for _, m := range s.mons {
		m.View(AllTags)
		for len(m.Stack) > 0 {
			s.unmanage(m.Stack[0], false)
		}
	}
	xproto.UngrabKey(s.conn, xproto.GrabAny, s.root, xproto.ModMaskAny)
	xproto.SetInputFocus(s.conn, xproto.InputFocusPointerRoot,
		xproto.Window(xproto.InputFocusPointerRoot), xproto.TimeCurrentTime)
	xproto.DeleteProperty(s.conn, s.root, s.atoms.NetActive)
	if s.check != 0 {
		xproto.DestroyWindow(s.conn, s.check)
	}
}

func (s *Session) screenRect() geom.Rect {
	return geom.Rect{
		W: int(s.screen.WidthInPixels),
		H: int(s.screen.HeightInPixels),
	}
}

// updateGeom reconciles monitors against the detected outputs. Falls back
// to one monitor covering the whole display without Xinerama.
func (s *Session) updateGeom() error {
	var rects []geom.Rect
	if s.xinerama {
		if reply, err := xinerama.QueryScreens(s.conn).Reply(); err == nil {
			for _, si := range reply.ScreenInfo {
				rects = append(rects, geom.Rect{
					X: int(si.XOrg), Y: int(si.YOrg),
					W: int(si.Width), H: int(si.Height),
				})
			}
		}
	}
	if len(rects) == 0 {
		rects = []geom.Rect{s.screenRect()}
	}
	rects = UniqueGeometries(rects)

	mons, dirty := Reconcile(s.mons, rects, s.defaults)
	s.mons = mons
	if s.sel != nil {
		found := false
		for _, m := range s.mons {
			if m == s.sel {
				found = true
				break
			}
		}
		if !found {
			s.sel = s.mons[0]
		}
	}
	if dirty {
		bus.Publish(bus.EventOutputsChanged{Count: len(s.mons)})
	}
	return nil
}
