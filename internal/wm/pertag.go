package wm

import (
	"math/bits"

	"github.com/slabwm/slab/internal/layout"
)

// Pertag stores per-tag configuration. Arrays are indexed by tag number,
// with index 0 holding the configuration of the all-tags view.
type Pertag struct {
	Cur  int
	Prev int

	NMasters []int
	MFacts   []float64
	SelLts   []int
	Layouts  [][2]layout.Layout
	ShowBars []bool
}

func NewPertag(d Defaults, floating layout.Layout) *Pertag {
	n := d.NumTags + 1
	p := &Pertag{
		Cur:      1,
		Prev:     1,
		NMasters: make([]int, n),
		MFacts:   make([]float64, n),
		SelLts:   make([]int, n),
		Layouts:  make([][2]layout.Layout, n),
		ShowBars: make([]bool, n),
	}
	for i := 0; i < n; i++ {
		p.NMasters[i] = d.NMaster
		p.MFacts[i] = d.MFact
		p.Layouts[i] = [2]layout.Layout{d.Layout, floating}
		p.ShowBars[i] = d.ShowBar
	}
	return p
}

// load copies the configuration of the current tag index into the
// monitor's live fields. Returns whether the bar visibility differs from
// the monitor's current state.
func (m *Monitor) loadPertag() (barChanged bool) {
	p := m.Pertag
	m.NMaster = p.NMasters[p.Cur]
	m.MFact = p.MFacts[p.Cur]
	m.SelLt = p.SelLts[p.Cur]
	m.Layouts[m.SelLt] = p.Layouts[p.Cur][m.SelLt]
	m.Layouts[m.SelLt^1] = p.Layouts[p.Cur][m.SelLt^1]
	m.Symbol = m.Layouts[m.SelLt].Symbol
	return m.ShowBar != p.ShowBars[p.Cur]
}

// View activates mask. A zero mask toggles back to the previous view.
// Returns whether the per-tag bar visibility changed.
func (m *Monitor) View(mask uint) (barChanged bool) {
	m.SelTags ^= 1
	p := m.Pertag
	if mask&m.TagMask() != 0 {
		m.TagSet[m.SelTags] = mask & m.TagMask()
		p.Prev = p.Cur
		switch {
		case mask == AllTags:
			p.Cur = 0
		case bits.OnesCount(mask) == 1:
			p.Cur = bits.TrailingZeros(mask) + 1
		default:
			// Ambiguous multi-tag view: the last single-tag
			// configuration stays in effect.
		}
	} else {
		p.Prev, p.Cur = p.Cur, p.Prev
	}
	return m.loadPertag()
}

// ToggleView XORs mask into the active tag-set. A result of zero would
// leave nothing visible and is rejected.
func (m *Monitor) ToggleView(mask uint) (changed, barChanged bool) {
	newset := m.TagSet[m.SelTags] ^ (mask & m.TagMask())
	if newset == 0 {
		return false, false
	}
	p := m.Pertag
	m.TagSet[m.SelTags] = newset

	if newset == m.TagMask() {
		p.Prev = p.Cur
		p.Cur = 0
	}
	if p.Cur > 0 && newset&(1<<uint(p.Cur-1)) == 0 {
		p.Prev = p.Cur
		p.Cur = bits.TrailingZeros(newset) + 1
	}
	return true, m.loadPertag()
}

// ViewToLeft shifts a single-tag view one tag down. Refuses multi-tag
// views and the first tag.
func (m *Monitor) ViewToLeft() (ok, barChanged bool) {
	cur := m.TagSet[m.SelTags] & m.TagMask()
	if bits.OnesCount(cur) != 1 || cur <= 1 {
		return false, false
	}
	return true, m.View(cur >> 1)
}

// ViewToRight shifts a single-tag view one tag up.
func (m *Monitor) ViewToRight() (ok, barChanged bool) {
	cur := m.TagSet[m.SelTags] & m.TagMask()
	if bits.OnesCount(cur) != 1 || cur&(m.TagMask()>>1) == 0 {
		return false, false
	}
	return true, m.View(cur << 1)
}

// TagToLeft moves the focused client's single tag one position down.
func (m *Monitor) TagToLeft() bool {
	if m.Sel == nil {
		return false
	}
	cur := m.TagSet[m.SelTags] & m.TagMask()
	if bits.OnesCount(cur) != 1 || cur <= 1 {
		return false
	}
	m.Sel.Tags >>= 1
	return true
}

// TagToRight moves the focused client's single tag one position up.
func (m *Monitor) TagToRight() bool {
	if m.Sel == nil {
		return false
	}
	cur := m.TagSet[m.SelTags] & m.TagMask()
	if bits.OnesCount(cur) != 1 || cur&(m.TagMask()>>1) == 0 {
		return false
	}
	m.Sel.Tags <<= 1
	return true
}

// ShiftView rotates the view toward dir, skipping tags with no clients.
// Gives up after ten attempts. Returns the mask to view.
func (m *Monitor) ShiftView(dir int) (mask uint, ok bool) {
	cur := m.TagSet[m.SelTags] & m.TagMask()
	n := m.NumTags
	step := dir
	for count := 0; count < 10; count++ {
		rot := uint(((step % n) + n) % n)
		next := (cur<<rot | cur>>(uint(n)-rot)) & m.TagMask()
		for _, c := range m.Clients {
			if next&c.Tags != 0 {
				return next, true
			}
		}
		step += dir
	}
	return 0, false
}
