// xcursor forked from https://github.com/BurntSushi/xgbutil/blob/master/xcursor/xcursor.go
package xcursor

import (
	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
)

// Cursor font glyphs used by the engine.
const (
	BottomLeftCorner  = 12
	BottomRightCorner = 14
	BottomSide        = 16
	Fleur             = 52
	LeftPtr           = 68
	LeftSide          = 70
	RightSide         = 96
	Sizing            = 120
	TopLeftCorner     = 134
	TopRightCorner    = 136
	TopSide           = 138
)

func CreateCursor(x *xgb.Conn, cursor uint16) (xproto.Cursor, error) {
	return CreateCursorExtra(x, cursor, 0xffff, 0xffff, 0xffff, 0, 0, 0)
}

func CreateCursorExtra(x *xgb.Conn, cursor, foreRed, foreGreen,
	foreBlue, backRed, backGreen, backBlue uint16) (xproto.Cursor, error) {

	fontId, err := xproto.NewFontId(x)
	if err != nil {
		return 0, err
	}

	cursorId, err := xproto.NewCursorId(x)
	if err != nil {
		return 0, err
	}

	err = xproto.OpenFontChecked(x, fontId,
		uint16(len("cursor")), "cursor").Check()
	if err != nil {
		return 0, err
	}

	err = xproto.CreateGlyphCursorChecked(x, cursorId, fontId, fontId,
		cursor, cursor+1,
		foreRed, foreGreen, foreBlue,
		backRed, backGreen, backBlue).Check()
	if err != nil {
		return 0, err
	}

	err = xproto.CloseFontChecked(x, fontId).Check()
	if err != nil {
		return 0, err
	}

	return cursorId, nil
}
