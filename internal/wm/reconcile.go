package wm

import (
	"slices"

	"github.com/slabwm/slab/internal/geom"
)

// UniqueGeometries drops duplicate output rectangles, keeping first
// occurrences. Mirrored Xinerama screens report the same geometry twice.
func UniqueGeometries(rects []geom.Rect) []geom.Rect {
	var out []geom.Rect
	for _, r := range rects {
		if !slices.Contains(out, r) {
			out = append(out, r)
		}
	}
	return out
}

// Reconcile updates the monitor list against the detected output
// geometries. New outputs get fresh monitors seeded from d; vanished
// outputs have their clients migrated to the first monitor, preserving
// relative order in both lists, before the monitor record is dropped.
// Returns the new list and whether anything changed.
func Reconcile(mons []*Monitor, rects []geom.Rect, d Defaults) ([]*Monitor, bool) {
	dirty := false

	for len(mons) < len(rects) {
		num := 0
		for _, m := range mons {
			if m.Num >= num {
				num = m.Num + 1
			}
		}
		m := NewMonitor(num, d)
		mons = append(mons, m)
		dirty = true
	}

	for i, r := range rects {
		if mons[i].Geom != r {
			mons[i].Geom = r
			mons[i].UpdateWorkArea()
			dirty = true
		}
	}

	for len(mons) > max(1, len(rects)) {
		last := mons[len(mons)-1]
		first := mons[0]
		if len(last.Clients) > 0 {
			dirty = true
		}
		for _, c := range last.Clients {
			c.Mon = first
		}
		first.Clients = slices.Insert(first.Clients, 0, last.Clients...)
		first.Stack = slices.Insert(first.Stack, 0, last.Stack...)
		last.Clients = nil
		last.Stack = nil
		last.Sel = nil
		mons = mons[:len(mons)-1]
		dirty = true
	}

	return mons, dirty
}
