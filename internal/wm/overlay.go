package wm

import (
	"github.com/slabwm/slab/internal/geom"
)

// The overlay is a per-monitor scratchpad. The first toggle claims the
// focused client for the role; later toggles flip its visibility. An
// overlay is borderless, floating and locked against kill, and occupies
// the top third of the work area. While hidden it carries the zero
// tag-set so no view shows it.

func (s *Session) toggleOverlay() {
	m := s.sel
	if m.Overlay == nil {
		c := m.Sel
		if c == nil || c.IsFullscreen {
			return
		}
		m.Overlay = c
		c.IsFloating = true
		c.IsLocked = true
		c.OldBW = c.BW
		c.BW = 0
		s.showOverlay()
		return
	}
	if m.OverlayShown {
		s.hideOverlay()
	} else {
		s.showOverlay()
	}
}

func (s *Session) showOverlay() {
	m := s.sel
	c := m.Overlay
	if c == nil || m.OverlayShown {
		return
	}
	m.OverlayShown = true
	c.IsSticky = true
	c.Tags = m.TagSet[m.SelTags]
	s.resize(c, geom.Rect{
		X: m.Work.X + 20,
		Y: m.Work.Y,
		W: m.Work.W - 40,
		H: m.Work.H / 3,
	}, false)
	s.raiseWindow(c.Win)
	s.focus(c)
	s.arrange(m)
}

func (s *Session) hideOverlay() {
	m := s.sel
	c := m.Overlay
	if c == nil || !m.OverlayShown {
		return
	}
	m.OverlayShown = false
	c.IsSticky = false
	c.Tags = 0
	s.focus(nil)
	s.arrange(m)
}
