package wm

import (
	"testing"

	"github.com/slabwm/slab/internal/layout"
)

func TestViewRestoresPerTagConfiguration(t *testing.T) {
	m := testMonitor()
	monocle, _ := layout.ByName(layout.NameMonocle)

	// Tweak tag 1's setup, then view tag 2 and tweak that differently.
	m.MFact = 0.70
	m.Pertag.MFacts[m.Pertag.Cur] = 0.70

	m.View(1 << 1)
	if m.MFact != 0.55 {
		t.Fatalf("tag 2 mfact = %v, want default 0.55", m.MFact)
	}
	m.NMaster = 3
	m.Pertag.NMasters[m.Pertag.Cur] = 3
	m.Layouts[m.SelLt] = monocle
	m.Pertag.Layouts[m.Pertag.Cur][m.SelLt] = monocle

	m.View(1 << 0)
	if m.MFact != 0.70 {
		t.Fatalf("back on tag 1 mfact = %v, want 0.70", m.MFact)
	}
	if m.Layout().Name != layout.NameTile {
		t.Fatalf("back on tag 1 layout = %q, want tile", m.Layout().Name)
	}

	m.View(1 << 1)
	if m.NMaster != 3 || m.Layout().Name != layout.NameMonocle {
		t.Fatalf("tag 2 = nmaster %d layout %q, want 3 monocle", m.NMaster, m.Layout().Name)
	}
}

func TestViewZeroMaskTogglesPrevious(t *testing.T) {
	m := testMonitor()
	m.View(1 << 4)
	if m.TagSet[m.SelTags] != 1<<4 {
		t.Fatalf("tagset = %b, want tag 5", m.TagSet[m.SelTags])
	}

	m.View(0)
	if m.TagSet[m.SelTags] != 1<<0 {
		t.Fatalf("tagset after toggle = %b, want tag 1", m.TagSet[m.SelTags])
	}
	if m.Pertag.Cur != 1 {
		t.Fatalf("pertag index = %d, want 1", m.Pertag.Cur)
	}

	m.View(0)
	if m.TagSet[m.SelTags] != 1<<4 || m.Pertag.Cur != 5 {
		t.Fatalf("second toggle = tagset %b index %d, want tag 5", m.TagSet[m.SelTags], m.Pertag.Cur)
	}
}

func TestViewAllTags(t *testing.T) {
	m := testMonitor()
	m.View(AllTags)
	if m.TagSet[m.SelTags] != m.TagMask() {
		t.Fatalf("tagset = %b, want %b", m.TagSet[m.SelTags], m.TagMask())
	}
	if m.Pertag.Cur != 0 {
		t.Fatalf("pertag index = %d, want 0 for the all view", m.Pertag.Cur)
	}
}

func TestViewMultiTagKeepsIndex(t *testing.T) {
	m := testMonitor()
	m.View(1 << 2)
	m.View(1<<3 | 1<<5)
	if m.TagSet[m.SelTags] != 1<<3|1<<5 {
		t.Fatalf("tagset = %b", m.TagSet[m.SelTags])
	}
	if m.Pertag.Cur != 3 {
		t.Fatalf("pertag index = %d, want the last single view's 3", m.Pertag.Cur)
	}
}

func TestToggleViewRejectsEmptyResult(t *testing.T) {
	m := testMonitor()
	changed, _ := m.ToggleView(1 << 0)
	if changed {
		t.Fatal("toggling the only visible tag off must be rejected")
	}
	if m.TagSet[m.SelTags] != 1<<0 {
		t.Fatalf("tagset mutated to %b", m.TagSet[m.SelTags])
	}
}

func TestToggleViewRetargetsIndex(t *testing.T) {
	m := testMonitor()
	m.View(1 << 2)
	m.ToggleView(1 << 6)
	if m.Pertag.Cur != 3 {
		t.Fatalf("index = %d, want 3 still", m.Pertag.Cur)
	}

	// Dropping the current tag retargets to the lowest remaining bit.
	m.ToggleView(1 << 2)
	if m.TagSet[m.SelTags] != 1<<6 {
		t.Fatalf("tagset = %b, want tag 7 only", m.TagSet[m.SelTags])
	}
	if m.Pertag.Cur != 7 {
		t.Fatalf("index = %d, want 7", m.Pertag.Cur)
	}
}

func TestViewToLeftRight(t *testing.T) {
	m := testMonitor()
	if ok, _ := m.ViewToLeft(); ok {
		t.Fatal("left from the first tag must refuse")
	}
	if ok, _ := m.ViewToRight(); !ok {
		t.Fatal("right from the first tag must work")
	}
	if m.TagSet[m.SelTags] != 1<<1 {
		t.Fatalf("tagset = %b, want tag 2", m.TagSet[m.SelTags])
	}

	m.View(1 << 8)
	if ok, _ := m.ViewToRight(); ok {
		t.Fatal("right from the last tag must refuse")
	}

	m.View(1<<1 | 1<<2)
	if ok, _ := m.ViewToLeft(); ok {
		t.Fatal("multi-tag views must refuse edge navigation")
	}
}

func TestTagToLeftRight(t *testing.T) {
	m := testMonitor()
	c := testClient(m, 1)
	m.Sel = c

	if m.TagToLeft() {
		t.Fatal("tag left from the first tag must refuse")
	}
	if !m.TagToRight() {
		t.Fatal("tag right must work")
	}
	if c.Tags != 1<<1 {
		t.Fatalf("client tags = %b, want tag 2", c.Tags)
	}

	m.Sel = nil
	if m.TagToRight() {
		t.Fatal("no focused client must refuse")
	}
}

func TestShiftViewSkipsEmptyTags(t *testing.T) {
	m := testMonitor()
	a := testClient(m, 1)
	a.Tags = 1 << 0
	b := testClient(m, 2)
	b.Tags = 1 << 4

	mask, ok := m.ShiftView(+1)
	if !ok || mask != 1<<4 {
		t.Fatalf("shift = %b ok=%v, want tag 5", mask, ok)
	}
	m.View(mask)

	mask, ok = m.ShiftView(+1)
	if !ok || mask != 1<<0 {
		t.Fatalf("wrap shift = %b ok=%v, want tag 1", mask, ok)
	}

	mask, ok = m.ShiftView(-1)
	if !ok || mask != 1<<0 {
		t.Fatalf("backward shift = %b ok=%v, want tag 1", mask, ok)
	}
}

func TestShiftViewGivesUpWithoutClients(t *testing.T) {
	m := testMonitor()
	if _, ok := m.ShiftView(+1); ok {
		t.Fatal("shift over an empty monitor must give up")
	}
}
