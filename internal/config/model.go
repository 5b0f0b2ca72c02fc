package config

var defaultConfig = Config{
	Tags:         []string{"1", "2", "3", "4", "5", "6", "7", "8", "9"},
	Layout:       "tile",
	MFact:        0.55,
	NMaster:      1,
	ResizeHints:  false,
	Snap:         32,
	BorderWidth:  1,
	BorderNormal: "#444444",
	BorderFocus:  "#005577",
	BorderFloat:  "#775500",
	BarHeight:    24,
	ShowBar:      true,
	TopBar:       true,
	WarpPointer:  true,
	Rules:        []Rule{},
	Keys:         defaultKeys,
	Buttons:      defaultButtons,
}

type Config struct {
	Tags         []string `yaml:"tags" json:"tags"`
	Layout       string   `yaml:"layout" json:"layout"`
	MFact        float64  `yaml:"mfact" json:"mfact"`
	NMaster      int      `yaml:"nmaster" json:"nmaster"`
	ResizeHints  bool     `yaml:"resize_hints" json:"resize_hints"`
	Snap         int      `yaml:"snap" json:"snap"`
	BorderWidth  int      `yaml:"border_width" json:"border_width"`
	BorderNormal string   `yaml:"border_normal" json:"border_normal"`
	BorderFocus  string   `yaml:"border_focus" json:"border_focus"`
	BorderFloat  string   `yaml:"border_float" json:"border_float"`
	BarHeight    int      `yaml:"bar_height" json:"bar_height"`
	ShowBar      bool     `yaml:"show_bar" json:"show_bar"`
	TopBar       bool     `yaml:"top_bar" json:"top_bar"`
	WarpPointer  bool     `yaml:"warp_pointer" json:"warp_pointer"`
	Rules        []Rule   `yaml:"rules" json:"rules"`
	Keys         []Key    `yaml:"keys" json:"keys"`
	Buttons      []Button `yaml:"buttons" json:"buttons"`
}

// Rule matches a new window by class/instance/title substring and applies
// tags, floating state and a target monitor. Empty fields match anything.
type Rule struct {
	UUID     string `yaml:"uuid" json:"uuid"`
	Class    string `yaml:"class" json:"class"`
	Instance string `yaml:"instance" json:"instance"`
	Title    string `yaml:"title" json:"title"`
	Tags     uint   `yaml:"tags" json:"tags"`
	Floating bool   `yaml:"floating" json:"floating"`
	Monitor  int    `yaml:"monitor" json:"monitor"`
}

// Key binds a modifier chord to a named command. Mods entries are "mod1"
// through "mod5", "shift" and "control". Arg is command specific.
type Key struct {
	Mods   []string `yaml:"mods" json:"mods"`
	Key    string   `yaml:"key" json:"key"`
	Action string   `yaml:"action" json:"action"`
	Arg    string   `yaml:"arg,omitempty" json:"arg,omitempty"`
}

// Button binds a pointer button on a client window to a named command.
type Button struct {
	Mods   []string `yaml:"mods" json:"mods"`
	Button int      `yaml:"button" json:"button"`
	Action string   `yaml:"action" json:"action"`
	Arg    string   `yaml:"arg,omitempty" json:"arg,omitempty"`
}

var defaultKeys = []Key{
	{Mods: []string{"mod4"}, Key: "j", Action: "focusstack", Arg: "+1"},
	{Mods: []string{"mod4"}, Key: "k", Action: "focusstack", Arg: "-1"},
	{Mods: []string{"mod4"}, Key: "Return", Action: "zoom"},
	{Mods: []string{"mod4"}, Key: "Tab", Action: "view"},
	{Mods: []string{"mod4", "shift"}, Key: "q", Action: "killclient"},
	{Mods: []string{"mod4"}, Key: "t", Action: "setlayout", Arg: "tile"},
	{Mods: []string{"mod4"}, Key: "f", Action: "setlayout", Arg: "floating"},
	{Mods: []string{"mod4"}, Key: "m", Action: "setlayout", Arg: "monocle"},
	{Mods: []string{"mod4"}, Key: "u", Action: "setlayout", Arg: "bstack"},
	{Mods: []string{"mod4"}, Key: "o", Action: "setlayout", Arg: "bstackhoriz"},
	{Mods: []string{"mod4"}, Key: "space", Action: "togglelayout"},
	{Mods: []string{"mod4", "shift"}, Key: "space", Action: "togglefloating"},
	{Mods: []string{"mod4"}, Key: "h", Action: "setmfact", Arg: "-0.05"},
	{Mods: []string{"mod4"}, Key: "l", Action: "setmfact", Arg: "+0.05"},
	{Mods: []string{"mod4"}, Key: "i", Action: "incnmaster", Arg: "+1"},
	{Mods: []string{"mod4"}, Key: "d", Action: "incnmaster", Arg: "-1"},
	{Mods: []string{"mod4"}, Key: "b", Action: "togglebar"},
	{Mods: []string{"mod4"}, Key: "s", Action: "togglesticky"},
	{Mods: []string{"mod4"}, Key: "e", Action: "togglefullscreen"},
	{Mods: []string{"mod4"}, Key: "n", Action: "hideclient"},
	{Mods: []string{"mod4"}, Key: "grave", Action: "toggleoverlay"},
	{Mods: []string{"mod4"}, Key: "Left", Action: "viewtoleft"},
	{Mods: []string{"mod4"}, Key: "Right", Action: "viewtoright"},
	{Mods: []string{"mod4", "shift"}, Key: "Left", Action: "tagtoleft"},
	{Mods: []string{"mod4", "shift"}, Key: "Right", Action: "tagtoright"},
	{Mods: []string{"mod4", "control"}, Key: "Right", Action: "shiftview", Arg: "+1"},
	{Mods: []string{"mod4", "control"}, Key: "Left", Action: "shiftview", Arg: "-1"},
	{Mods: []string{"mod4"}, Key: "comma", Action: "focusmon", Arg: "-1"},
	{Mods: []string{"mod4"}, Key: "period", Action: "focusmon", Arg: "+1"},
	{Mods: []string{"mod4", "shift"}, Key: "comma", Action: "tagmon", Arg: "-1"},
	{Mods: []string{"mod4", "shift"}, Key: "period", Action: "tagmon", Arg: "+1"},
	{Mods: []string{"mod4"}, Key: "0", Action: "view", Arg: "all"},
	{Mods: []string{"mod4", "shift"}, Key: "0", Action: "tag", Arg: "all"},
	{Mods: []string{"mod4", "shift"}, Key: "e", Action: "quit"},
	{Mods: []string{"mod4"}, Key: "1", Action: "view", Arg: "1"},
	{Mods: []string{"mod4"}, Key: "2", Action: "view", Arg: "2"},
	{Mods: []string{"mod4"}, Key: "3", Action: "view", Arg: "3"},
	{Mods: []string{"mod4"}, Key: "4", Action: "view", Arg: "4"},
	{Mods: []string{"mod4"}, Key: "5", Action: "view", Arg: "5"},
	{Mods: []string{"mod4"}, Key: "6", Action: "view", Arg: "6"},
	{Mods: []string{"mod4"}, Key: "7", Action: "view", Arg: "7"},
	{Mods: []string{"mod4"}, Key: "8", Action: "view", Arg: "8"},
	{Mods: []string{"mod4"}, Key: "9", Action: "view", Arg: "9"},
	{Mods: []string{"mod4", "shift"}, Key: "1", Action: "tag", Arg: "1"},
	{Mods: []string{"mod4", "shift"}, Key: "2", Action: "tag", Arg: "2"},
	{Mods: []string{"mod4", "shift"}, Key: "3", Action: "tag", Arg: "3"},
	{Mods: []string{"mod4", "shift"}, Key: "4", Action: "tag", Arg: "4"},
	{Mods: []string{"mod4", "shift"}, Key: "5", Action: "tag", Arg: "5"},
	{Mods: []string{"mod4", "shift"}, Key: "6", Action: "tag", Arg: "6"},
	{Mods: []string{"mod4", "shift"}, Key: "7", Action: "tag", Arg: "7"},
	{Mods: []string{"mod4", "shift"}, Key: "8", Action: "tag", Arg: "8"},
	{Mods: []string{"mod4", "shift"}, Key: "9", Action: "tag", Arg: "9"},
}

var defaultButtons = []Button{
	{Mods: []string{"mod4"}, Button: 1, Action: "movemouse"},
	{Mods: []string{"mod4"}, Button: 2, Action: "togglefloating"},
	{Mods: []string{"mod4"}, Button: 3, Action: "resizemouse"},
	{Mods: []string{"mod4", "shift"}, Button: 1, Action: "dragtag"},
	{Mods: []string{"mod4", "control"}, Button: 3, Action: "resizeaspect"},
	{Mods: []string{"mod4", "shift"}, Button: 3, Action: "gesture"},
}
