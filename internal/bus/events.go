package bus

// EventFocusChanged fires after focus settles on a new client or on none.
type EventFocusChanged struct {
	Monitor int
	Window  uint32 // 0 when focus reverted to the root
	Name    string
}

// EventViewChanged fires after the active tag-set of a monitor changed.
type EventViewChanged struct {
	Monitor int
	Tags    uint
}

// EventLayoutChanged fires after the live layout of a monitor changed.
type EventLayoutChanged struct {
	Monitor int
	Symbol  string
}

// EventOutputsChanged fires after monitor reconciliation altered the ring.
type EventOutputsChanged struct {
	Count int
}

// EventRedraw asks bar implementations to repaint a monitor.
type EventRedraw struct {
	Monitor int // -1 for all
}
