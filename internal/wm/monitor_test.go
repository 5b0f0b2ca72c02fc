package wm

import (
	"testing"

	"github.com/jezek/xgb/xproto"
	"github.com/slabwm/slab/internal/geom"
	"github.com/slabwm/slab/internal/layout"
)

func testDefaults() Defaults {
	tile, _ := layout.ByName(layout.NameTile)
	return Defaults{
		NumTags:   9,
		MFact:     0.55,
		NMaster:   1,
		ShowBar:   true,
		TopBar:    true,
		BarHeight: 24,
		Layout:    tile,
	}
}

func testMonitor() *Monitor {
	m := NewMonitor(0, testDefaults())
	m.Geom = geom.Rect{W: 1920, H: 1080}
	m.UpdateWorkArea()
	return m
}

func testClient(m *Monitor, win uint32) *Client {
	c := &Client{Win: xproto.Window(win), Tags: m.TagSet[m.SelTags]}
	m.Attach(c)
	m.AttachStack(c)
	return c
}

func TestAttachOrder(t *testing.T) {
	m := testMonitor()
	a := testClient(m, 1)
	b := testClient(m, 2)
	c := testClient(m, 3)

	want := []*Client{c, b, a}
	if len(m.Clients) != 3 {
		t.Fatalf("got %d clients, want 3", len(m.Clients))
	}
	for i, cl := range want {
		if m.Clients[i] != cl {
			t.Errorf("arrangement[%d] = %#x, want %#x", i, m.Clients[i].Win, cl.Win)
		}
	}
}

func TestDoubleAttachPanics(t *testing.T) {
	m := testMonitor()
	c := testClient(m, 1)

	defer func() {
		if recover() == nil {
			t.Fatal("double attach did not panic")
		}
	}()
	m.Attach(c)
}

func TestDetachStackPatchesSel(t *testing.T) {
	m := testMonitor()
	a := testClient(m, 1)
	b := testClient(m, 2)
	m.Sel = b

	m.DetachStack(b)
	if m.Sel != a {
		t.Fatalf("Sel = %v, want fallback to %#x", m.Sel, a.Win)
	}

	m.DetachStack(a)
	if m.Sel != nil {
		t.Fatalf("Sel = %#x, want nil after last detach", m.Sel.Win)
	}
}

func TestFocusCandidateSkipsHiddenAndInvisible(t *testing.T) {
	m := testMonitor()
	a := testClient(m, 1)
	b := testClient(m, 2)
	c := testClient(m, 3)

	// Stack order is c, b, a. Hide c and move b off the active view.
	c.IsHidden = true
	b.Tags = 1 << 5

	if got := m.FocusCandidate(nil); got != a {
		t.Fatalf("candidate = %v, want %#x", got, a.Win)
	}

	// A sticky client is visible on every view.
	b.IsSticky = true
	if got := m.FocusCandidate(nil); got != b {
		t.Fatalf("candidate = %v, want sticky %#x", got, b.Win)
	}
}

func TestFocusCandidatePrefersGivenClient(t *testing.T) {
	m := testMonitor()
	a := testClient(m, 1)
	b := testClient(m, 2)

	if got := m.FocusCandidate(a); got != a {
		t.Fatalf("candidate = %v, want %#x", got, a.Win)
	}
	a.IsHidden = true
	if got := m.FocusCandidate(a); got != b {
		t.Fatalf("candidate = %v, want fallback %#x", got, b.Win)
	}
}

func TestNextInStackDirWrapsAndSkips(t *testing.T) {
	m := testMonitor()
	a := testClient(m, 1)
	b := testClient(m, 2)
	c := testClient(m, 3)
	// Arrangement order is c, b, a.
	m.Sel = c

	if got := m.NextInStackDir(+1); got != b {
		t.Fatalf("next = %v, want %#x", got, b.Win)
	}
	if got := m.NextInStackDir(-1); got != a {
		t.Fatalf("prev (wrap) = %v, want %#x", got, a.Win)
	}

	b.IsHidden = true
	if got := m.NextInStackDir(+1); got != a {
		t.Fatalf("next skipping hidden = %v, want %#x", got, a.Win)
	}

	a.Tags = 1 << 7
	b.Tags = 1 << 7
	if got := m.NextInStackDir(+1); got != nil {
		t.Fatalf("next = %#x, want nil with nothing visible", got.Win)
	}
}

func TestTiledClientsFiltering(t *testing.T) {
	m := testMonitor()
	a := testClient(m, 1)
	b := testClient(m, 2)
	c := testClient(m, 3)
	d := testClient(m, 4)
	b.IsFloating = true
	c.IsHidden = true
	d.Tags = 1 << 3

	tiled := m.TiledClients()
	if len(tiled) != 1 || tiled[0] != a {
		t.Fatalf("tiled = %v, want only %#x", tiled, a.Win)
	}
}

func TestRectToMonPicksLargestOverlap(t *testing.T) {
	d := testDefaults()
	left := NewMonitor(0, d)
	left.Geom = geom.Rect{W: 1920, H: 1080}
	right := NewMonitor(1, d)
	right.Geom = geom.Rect{X: 1920, W: 1280, H: 1024}
	mons := []*Monitor{left, right}

	r := geom.Rect{X: 1800, Y: 100, W: 400, H: 300}
	if got := RectToMon(mons, left, r); got != right {
		t.Fatalf("got monitor %d, want 1", got.Num)
	}

	// No overlap at all keeps the current monitor.
	r = geom.Rect{X: 5000, Y: 5000, W: 10, H: 10}
	if got := RectToMon(mons, left, r); got != left {
		t.Fatalf("got monitor %d, want current", got.Num)
	}
}

func TestDirToMonRing(t *testing.T) {
	d := testDefaults()
	m0 := NewMonitor(0, d)
	m1 := NewMonitor(1, d)
	m2 := NewMonitor(2, d)
	mons := []*Monitor{m0, m1, m2}

	if got := DirToMon(mons, m2, +1); got != m0 {
		t.Fatalf("forward wrap = %d, want 0", got.Num)
	}
	if got := DirToMon(mons, m0, -1); got != m2 {
		t.Fatalf("backward wrap = %d, want 2", got.Num)
	}
}

func TestWorkAreaBarStrip(t *testing.T) {
	m := testMonitor()
	if m.Work.Y != 24 || m.Work.H != 1056 {
		t.Fatalf("top bar work area = %+v", m.Work)
	}
	m.TopBar = false
	m.UpdateWorkArea()
	if m.Work.Y != 0 || m.Work.H != 1056 {
		t.Fatalf("bottom bar work area = %+v", m.Work)
	}
	m.ShowBar = false
	m.UpdateWorkArea()
	if m.Work != m.Geom {
		t.Fatalf("no bar work area = %+v, want %+v", m.Work, m.Geom)
	}
}
