package wm

import (
	"testing"

	"github.com/slabwm/slab/internal/geom"
)

func TestUniqueGeometriesDropsDuplicatesAndContained(t *testing.T) {
	rects := UniqueGeometries([]geom.Rect{
		{W: 1920, H: 1080},
		{W: 1920, H: 1080},
		{X: 1920, W: 1280, H: 1024},
	})
	if len(rects) != 2 {
		t.Fatalf("got %d rects, want 2: %v", len(rects), rects)
	}
}

func TestReconcileGrowth(t *testing.T) {
	d := testDefaults()
	mons, dirty := Reconcile(nil, []geom.Rect{{W: 1920, H: 1080}}, d)
	if !dirty || len(mons) != 1 {
		t.Fatalf("dirty=%v mons=%d, want one new monitor", dirty, len(mons))
	}
	if mons[0].Work.H != 1080-d.BarHeight {
		t.Fatalf("work height = %d, want bar subtracted", mons[0].Work.H)
	}

	mons, dirty = Reconcile(mons, []geom.Rect{
		{W: 1920, H: 1080},
		{X: 1920, W: 1280, H: 1024},
	}, d)
	if !dirty || len(mons) != 2 {
		t.Fatalf("dirty=%v mons=%d, want growth to 2", dirty, len(mons))
	}
	if mons[1].Num != 1 {
		t.Fatalf("new monitor Num = %d, want 1", mons[1].Num)
	}
	if mons[1].Pertag == nil {
		t.Fatal("new monitor missing per-tag state")
	}
}

func TestReconcileGeometryUpdateInPlace(t *testing.T) {
	d := testDefaults()
	mons, _ := Reconcile(nil, []geom.Rect{{W: 1920, H: 1080}}, d)
	orig := mons[0]

	mons, dirty := Reconcile(mons, []geom.Rect{{W: 2560, H: 1440}}, d)
	if !dirty {
		t.Fatal("geometry change must report dirty")
	}
	if mons[0] != orig {
		t.Fatal("resize must keep the monitor identity")
	}
	if mons[0].Geom.W != 2560 || mons[0].Work.H != 1440-d.BarHeight {
		t.Fatalf("geom %+v work %+v not updated", mons[0].Geom, mons[0].Work)
	}

	_, dirty = Reconcile(mons, []geom.Rect{{W: 2560, H: 1440}}, d)
	if dirty {
		t.Fatal("identical outputs must not report dirty")
	}
}

func TestReconcileShrinkMigratesClientsInOrder(t *testing.T) {
	d := testDefaults()
	mons, _ := Reconcile(nil, []geom.Rect{
		{W: 1920, H: 1080},
		{X: 1920, W: 1280, H: 1024},
	}, d)
	first, second := mons[0], mons[1]

	keep := testClient(first, 1)
	a := testClient(second, 2)
	b := testClient(second, 3)
	a.Tags = 1 << 4
	b.Tags = 1 << 5

	mons, dirty := Reconcile(mons, []geom.Rect{{W: 1920, H: 1080}}, d)
	if !dirty || len(mons) != 1 || mons[0] != first {
		t.Fatalf("dirty=%v mons=%d, want shrink to the first monitor", dirty, len(mons))
	}

	// Arrangement of the second monitor was b, a. Migration inserts at
	// the head preserving that relative order.
	want := []*Client{b, a, keep}
	if len(first.Clients) != len(want) {
		t.Fatalf("got %d clients, want %d", len(first.Clients), len(want))
	}
	for i, c := range want {
		if first.Clients[i] != c {
			t.Errorf("arrangement[%d] = %#x, want %#x", i, first.Clients[i].Win, c.Win)
		}
		if first.Clients[i].Mon != first {
			t.Errorf("client %#x still points at the dead monitor", first.Clients[i].Win)
		}
	}

	// Migration keeps each client's tag assignment.
	if a.Tags != 1<<4 || b.Tags != 1<<5 {
		t.Fatalf("tags rewritten: a=%b b=%b", a.Tags, b.Tags)
	}
}
