package wm

import (
	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
)

type Atoms struct {
	WMProtocols  xproto.Atom
	WMDelete     xproto.Atom
	WMState      xproto.Atom
	WMTakeFocus  xproto.Atom
	WMName       xproto.Atom
	WMClass      xproto.Atom
	WMHints      xproto.Atom
	WMNormal     xproto.Atom
	WMTransient  xproto.Atom
	UTF8String   xproto.Atom
	NetSupported xproto.Atom
	NetWMName    xproto.Atom
	NetWMState   xproto.Atom
	NetWMCheck   xproto.Atom
	NetWMFull    xproto.Atom
	NetWMType    xproto.Atom
	NetWMDialog  xproto.Atom
	NetActive    xproto.Atom
	NetClients   xproto.Atom
}

// WM_STATE values.
const (
	withdrawnState = 0
	normalState    = 1
	iconicState    = 2
)

// _NET_WM_STATE client message actions.
const (
	netWMStateRemove = 0
	netWMStateAdd    = 1
	netWMStateToggle = 2
)

func internAtom(conn *xgb.Conn, name string) (xproto.Atom, error) {
	reply, err := xproto.InternAtom(conn, false, uint16(len(name)), name).Reply()
	if err != nil {
		return 0, err
	}
	return reply.Atom, nil
}

func InternAtoms(conn *xgb.Conn) (Atoms, error) {
	var a Atoms
	for _, it := range []struct {
		name string
		dst  *xproto.Atom
	}{
		{"WM_PROTOCOLS", &a.WMProtocols},
		{"WM_DELETE_WINDOW", &a.WMDelete},
		{"WM_STATE", &a.WMState},
		{"WM_TAKE_FOCUS", &a.WMTakeFocus},
		{"WM_NAME", &a.WMName},
		{"WM_CLASS", &a.WMClass},
		{"WM_HINTS", &a.WMHints},
		{"WM_NORMAL_HINTS", &a.WMNormal},
		{"WM_TRANSIENT_FOR", &a.WMTransient},
		{"UTF8_STRING", &a.UTF8String},
		{"_NET_SUPPORTED", &a.NetSupported},
		{"_NET_WM_NAME", &a.NetWMName},
		{"_NET_WM_STATE", &a.NetWMState},
		{"_NET_SUPPORTING_WM_CHECK", &a.NetWMCheck},
		{"_NET_WM_STATE_FULLSCREEN", &a.NetWMFull},
		{"_NET_WM_WINDOW_TYPE", &a.NetWMType},
		{"_NET_WM_WINDOW_TYPE_DIALOG", &a.NetWMDialog},
		{"_NET_ACTIVE_WINDOW", &a.NetActive},
		{"_NET_CLIENT_LIST", &a.NetClients},
	} {
		atom, err := internAtom(conn, it.name)
		if err != nil {
			return Atoms{}, err
		}
		*it.dst = atom
	}
	return a, nil
}
