package wm

import "github.com/slabwm/slab/internal/geom"

// State is a point-in-time snapshot of the engine, safe to hand to other
// goroutines. Produce it inside a Dispatch closure.
type State struct {
	SelectedMonitor int            `json:"selected_monitor"`
	Monitors        []MonitorState `json:"monitors"`
}

type MonitorState struct {
	Num          int           `json:"num"`
	Geometry     geom.Rect     `json:"geometry"`
	WorkArea     geom.Rect     `json:"work_area"`
	Tags         uint          `json:"tags"`
	LayoutSymbol string        `json:"layout_symbol"`
	LayoutName   string        `json:"layout_name"`
	MFact        float64       `json:"mfact"`
	NMaster      int           `json:"nmaster"`
	ShowBar      bool          `json:"show_bar"`
	Focused      uint32        `json:"focused,omitempty"`
	Clients      []ClientState `json:"clients"`
}

type ClientState struct {
	Window     uint32    `json:"window"`
	Name       string    `json:"name"`
	Geometry   geom.Rect `json:"geometry"`
	Tags       uint      `json:"tags"`
	Floating   bool      `json:"floating,omitempty"`
	Fullscreen bool      `json:"fullscreen,omitempty"`
	Sticky     bool      `json:"sticky,omitempty"`
	Hidden     bool      `json:"hidden,omitempty"`
	Urgent     bool      `json:"urgent,omitempty"`
}

// State snapshots the monitors and clients.
func (s *Session) State() State {
	st := State{SelectedMonitor: s.sel.Num}
	for _, m := range s.mons {
		ms := MonitorState{
			Num:          m.Num,
			Geometry:     m.Geom,
			WorkArea:     m.Work,
			Tags:         m.TagSet[m.SelTags],
			LayoutSymbol: m.Symbol,
			LayoutName:   string(m.Layout().Name),
			MFact:        m.MFact,
			NMaster:      m.NMaster,
			ShowBar:      m.ShowBar,
		}
		if m.Sel != nil {
			ms.Focused = uint32(m.Sel.Win)
		}
		for _, c := range m.Clients {
			ms.Clients = append(ms.Clients, ClientState{
				Window:     uint32(c.Win),
				Name:       c.Name,
				Geometry:   c.Geom,
				Tags:       c.Tags,
				Floating:   c.IsFloating,
				Fullscreen: c.IsFullscreen,
				Sticky:     c.IsSticky,
				Hidden:     c.IsHidden,
				Urgent:     c.IsUrgent,
			})
		}
		st.Monitors = append(st.Monitors, ms)
	}
	return st
}
