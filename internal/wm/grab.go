package wm

import (
	"fmt"

	"github.com/jezek/xgb/xproto"
)

type keyBinding struct {
	mod    uint16
	keysym uint32
	action string
	arg    string
}

type buttonBinding struct {
	mod    uint16
	button xproto.Button
	action string
	arg    string
}

func parseMods(mods []string) (uint16, error) {
	var mask uint16
	for _, m := range mods {
		switch m {
		case "shift":
			mask |= xproto.ModMaskShift
		case "control":
			mask |= xproto.ModMaskControl
		case "mod1":
			mask |= xproto.ModMask1
		case "mod2":
			mask |= xproto.ModMask2
		case "mod3":
			mask |= xproto.ModMask3
		case "mod4":
			mask |= xproto.ModMask4
		case "mod5":
			mask |= xproto.ModMask5
		default:
			return 0, fmt.Errorf("wm: unknown modifier %q", m)
		}
	}
	return mask, nil
}

func (s *Session) parseBindings() error {
	s.keys = s.keys[:0]
	for _, k := range s.cfg.Keys {
		mod, err := parseMods(k.Mods)
		if err != nil {
			return err
		}
		sym, ok := keysymForName(k.Key)
		if !ok {
			return fmt.Errorf("wm: unknown key %q", k.Key)
		}
		if _, ok := commands[k.Action]; !ok {
			return fmt.Errorf("wm: unknown action %q", k.Action)
		}
		s.keys = append(s.keys, keyBinding{mod: mod, keysym: sym, action: k.Action, arg: k.Arg})
	}

	s.buttons = s.buttons[:0]
	for _, b := range s.cfg.Buttons {
		mod, err := parseMods(b.Mods)
		if err != nil {
			return err
		}
		if _, ok := commands[b.Action]; !ok {
			return fmt.Errorf("wm: unknown action %q", b.Action)
		}
		s.buttons = append(s.buttons, buttonBinding{mod: mod, button: xproto.Button(b.Button), action: b.Action, arg: b.Arg})
	}
	return nil
}

// initKeymap loads the keycode to keysym table, first column only.
func (s *Session) initKeymap() error {
	setup := xproto.Setup(s.conn)
	lo, hi := setup.MinKeycode, setup.MaxKeycode
	reply, err := xproto.GetKeyboardMapping(s.conn, lo, byte(hi-lo+1)).Reply()
	if err != nil {
		return err
	}

	s.keycodes = make(map[xproto.Keycode]uint32)
	per := int(reply.KeysymsPerKeycode)
	for i := 0; i <= int(hi-lo); i++ {
		syms := reply.Keysyms[i*per : (i+1)*per]
		if len(syms) > 0 && syms[0] != 0 {
			s.keycodes[lo+xproto.Keycode(i)] = uint32(syms[0])
		}
	}
	return nil
}

// updateNumlockMask finds which modifier row holds Num_Lock.
func (s *Session) updateNumlockMask() {
	s.numlockMask = 0
	reply, err := xproto.GetModifierMapping(s.conn).Reply()
	if err != nil {
		return
	}
	per := int(reply.KeycodesPerModifier)
	for row := 0; row < 8; row++ {
		for col := 0; col < per; col++ {
			code := reply.Keycodes[row*per+col]
			if code != 0 && s.keycodes[code] == keysymNumLock {
				s.numlockMask = 1 << uint(row)
			}
		}
	}
}

func (s *Session) cleanMask(mask uint16) uint16 {
	return mask &^ (s.numlockMask | xproto.ModMaskLock) &
		(xproto.ModMaskShift | xproto.ModMaskControl |
			xproto.ModMask1 | xproto.ModMask2 | xproto.ModMask3 |
			xproto.ModMask4 | xproto.ModMask5)
}

// modifierCombos are grabbed alongside every binding so numlock and
// capslock do not mask chords.
func (s *Session) modifierCombos() [4]uint16 {
	return [4]uint16{0, xproto.ModMaskLock, s.numlockMask, s.numlockMask | xproto.ModMaskLock}
}

func (s *Session) grabKeys() {
	s.updateNumlockMask()
	xproto.UngrabKey(s.conn, xproto.GrabAny, s.root, xproto.ModMaskAny)
	for _, k := range s.keys {
		for code, sym := range s.keycodes {
			if sym != k.keysym {
				continue
			}
			for _, extra := range s.modifierCombos() {
				xproto.GrabKey(s.conn, true, s.root, k.mod|extra, code,
					xproto.GrabModeAsync, xproto.GrabModeAsync)
			}
		}
	}
}

// grabButtons sets up pointer grabs on a client. Unfocused clients get a
// catch-all synchronous grab so the first click can focus them before
// being replayed.
func (s *Session) grabButtons(c *Client, focused bool) {
	s.updateNumlockMask()
	xproto.UngrabButton(s.conn, xproto.ButtonIndexAny, c.Win, xproto.ModMaskAny)
	if !focused {
		xproto.GrabButton(s.conn, false, c.Win,
			uint16(xproto.EventMaskButtonPress|xproto.EventMaskButtonRelease),
			xproto.GrabModeSync, xproto.GrabModeSync,
			xproto.WindowNone, xproto.CursorNone,
			xproto.ButtonIndexAny, xproto.ModMaskAny)
	}
	for _, b := range s.buttons {
		for _, extra := range s.modifierCombos() {
			xproto.GrabButton(s.conn, false, c.Win,
				uint16(xproto.EventMaskButtonPress|xproto.EventMaskButtonRelease),
				xproto.GrabModeAsync, xproto.GrabModeSync,
				xproto.WindowNone, xproto.CursorNone,
				byte(b.button), b.mod|extra)
		}
	}
}

// grabPointer acquires an exclusive pointer grab for a drag controller.
func (s *Session) grabPointer(cursor xproto.Cursor) bool {
	reply, err := xproto.GrabPointer(s.conn, false, s.root,
		uint16(xproto.EventMaskButtonPress|xproto.EventMaskButtonRelease|xproto.EventMaskPointerMotion),
		xproto.GrabModeAsync, xproto.GrabModeAsync,
		xproto.WindowNone, cursor, xproto.TimeCurrentTime).Reply()
	if err != nil || reply.Status != xproto.GrabStatusSuccess {
		return false
	}
	return true
}

func (s *Session) ungrabPointer() {
	xproto.UngrabPointer(s.conn, xproto.TimeCurrentTime)
}
