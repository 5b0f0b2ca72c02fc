package wm

import (
	"fmt"
	"slices"

	"github.com/slabwm/slab/internal/geom"
	"github.com/slabwm/slab/internal/layout"
)

// Defaults seed a freshly created monitor and its per-tag state.
type Defaults struct {
	NumTags   int
	MFact     float64
	NMaster   int
	ShowBar   bool
	TopBar    bool
	BarHeight int
	Layout    layout.Layout
}

// Monitor owns the clients of one physical display region.
//
// Clients is the arrangement list: head-insertion order, consumed by the
// layout engine and tab cycling. Stack is most-recently-focused first,
// consumed for focus fallback and z-ordering. Both hold the same set.
type Monitor struct {
	Num  int
	Geom geom.Rect // whole output
	Work geom.Rect // output minus the bar strip

	ShowBar   bool
	TopBar    bool
	BarHeight int

	TagSet  [2]uint
	SelTags int

	Layouts [2]layout.Layout
	SelLt   int
	Symbol  string

	MFact   float64
	NMaster int
	NumTags int

	Clients []*Client
	Stack   []*Client
	Sel     *Client

	Overlay      *Client
	OverlayShown bool

	Pertag *Pertag
}

func NewMonitor(num int, d Defaults) *Monitor {
	floating, _ := layout.ByName(layout.NameFloating)
	m := &Monitor{
		Num:       num,
		ShowBar:   d.ShowBar,
		TopBar:    d.TopBar,
		BarHeight: d.BarHeight,
		TagSet:    [2]uint{1, 1},
		Layouts:   [2]layout.Layout{d.Layout, floating},
		Symbol:    d.Layout.Symbol,
		MFact:     d.MFact,
		NMaster:   d.NMaster,
		NumTags:   d.NumTags,
	}
	m.Pertag = NewPertag(d, floating)
	return m
}

// TagMask is the set of all valid tag bits.
func (m *Monitor) TagMask() uint { return 1<<uint(m.NumTags) - 1 }

// AllTags is the sentinel argument selecting every tag at once.
const AllTags = ^uint(0)

// Visible reports whether c shows under the monitor's active tag-set.
func (m *Monitor) Visible(c *Client) bool {
	return c.Tags&m.TagSet[m.SelTags] != 0 || c.IsSticky
}

// Layout returns the live layout.
func (m *Monitor) Layout() layout.Layout { return m.Layouts[m.SelLt] }

// UpdateWorkArea recomputes Work from Geom and the bar strip.
func (m *Monitor) UpdateWorkArea() {
	m.Work = m.Geom
	if m.ShowBar {
		m.Work.H -= m.BarHeight
		if m.TopBar {
			m.Work.Y += m.BarHeight
		}
	}
}

// Attach inserts c at the head of the arrangement list. Attaching a
// client that is already present is a contract violation.
func (m *Monitor) Attach(c *Client) {
	if slices.Contains(m.Clients, c) {
		panic(fmt.Sprintf("wm: double attach of window %#x", c.Win))
	}
	m.Clients = slices.Insert(m.Clients, 0, c)
	c.Mon = m
}

func (m *Monitor) Detach(c *Client) {
	i := slices.Index(m.Clients, c)
	if i < 0 {
		panic(fmt.Sprintf("wm: detach of unattached window %#x", c.Win))
	}
	m.Clients = slices.Delete(m.Clients, i, i+1)
}

// AttachStack inserts c at the head of the stack list.
func (m *Monitor) AttachStack(c *Client) {
	if slices.Contains(m.Stack, c) {
		panic(fmt.Sprintf("wm: double stack attach of window %#x", c.Win))
	}
	m.Stack = slices.Insert(m.Stack, 0, c)
}

// DetachStack unlinks c and, when it was the focused client, falls back
// to the next visible non-hidden client in stack order.
func (m *Monitor) DetachStack(c *Client) {
	i := slices.Index(m.Stack, c)
	if i < 0 {
		panic(fmt.Sprintf("wm: stack detach of unattached window %#x", c.Win))
	}
	m.Stack = slices.Delete(m.Stack, i, i+1)
	if m.Sel == c {
		m.Sel = m.FocusCandidate(nil)
	}
}

// FocusCandidate resolves c to a focusable client: c itself when it is
// visible and not hidden, otherwise the first qualifying client in stack
// order, otherwise nil.
func (m *Monitor) FocusCandidate(c *Client) *Client {
	if c != nil && m.Visible(c) && !c.IsHidden {
		return c
	}
	for _, s := range m.Stack {
		if m.Visible(s) && !s.IsHidden {
			return s
		}
	}
	return nil
}

// TiledClients returns the visible, non-floating, non-hidden clients in
// arrangement order.
func (m *Monitor) TiledClients() []*Client {
	var out []*Client
	for _, c := range m.Clients {
		if c.Tiled() {
			out = append(out, c)
		}
	}
	return out
}

// NextInStackDir walks the arrangement list cyclically from the focused
// client, skipping invisible clients. dir is +1 or -1.
func (m *Monitor) NextInStackDir(dir int) *Client {
	if m.Sel == nil {
		return nil
	}
	i := slices.Index(m.Clients, m.Sel)
	if i < 0 {
		return nil
	}
	n := len(m.Clients)
	for step := 1; step < n; step++ {
		j := ((i+dir*step)%n + n) % n
		c := m.Clients[j]
		if m.Visible(c) && !c.IsHidden {
			return c
		}
	}
	return nil
}

// WinToClient scans monitors for the client owning w.
func WinToClient(mons []*Monitor, w uint32) *Client {
	for _, m := range mons {
		for _, c := range m.Clients {
			if uint32(c.Win) == w {
				return c
			}
		}
	}
	return nil
}

// RectToMon picks the monitor with the largest overlap with r, defaulting
// to cur.
func RectToMon(mons []*Monitor, cur *Monitor, r geom.Rect) *Monitor {
	best := cur
	area := 0
	for _, m := range mons {
		if a := r.Overlap(m.Geom); a > area {
			area = a
			best = m
		}
	}
	return best
}

// DirToMon returns the next or previous monitor in ring order.
func DirToMon(mons []*Monitor, cur *Monitor, dir int) *Monitor {
	i := slices.Index(mons, cur)
	if i < 0 || len(mons) == 0 {
		return cur
	}
	n := len(mons)
	if dir > 0 {
		return mons[(i+1)%n]
	}
	return mons[(i-1+n)%n]
}
