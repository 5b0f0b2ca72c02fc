package wm

// Keysym values for the names bindings may use, from X11/keysymdef.h.
var keysyms = map[string]uint32{
	"space":     0x0020,
	"comma":     0x002c,
	"period":    0x002e,
	"slash":     0x002f,
	"semicolon": 0x003b,
	"grave":     0x0060,
	"minus":     0x002d,
	"equal":     0x003d,
	"Return":    0xff0d,
	"Tab":       0xff09,
	"Escape":    0xff1b,
	"BackSpace": 0xff08,
	"Left":      0xff51,
	"Up":        0xff52,
	"Right":     0xff53,
	"Down":      0xff54,
	"Prior":     0xff55,
	"Next":      0xff56,
	"Home":      0xff50,
	"End":       0xff57,
	"F1":        0xffbe,
	"F2":        0xffbf,
	"F3":        0xffc0,
	"F4":        0xffc1,
	"F5":        0xffc2,
	"F6":        0xffc3,
	"F7":        0xffc4,
	"F8":        0xffc5,
	"F9":        0xffc6,
	"F10":       0xffc7,
	"F11":       0xffc8,
	"F12":       0xffc9,
}

const keysymNumLock = 0xff7f

// keysymForName resolves a binding key name: single latin letters and
// digits map to their ASCII keysym, everything else goes through the
// table.
func keysymForName(name string) (uint32, bool) {
	if len(name) == 1 {
		ch := name[0]
		if ch >= 'a' && ch <= 'z' || ch >= '0' && ch <= '9' {
			return uint32(ch), true
		}
	}
	sym, ok := keysyms[name]
	return sym, ok
}
