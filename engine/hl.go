package engine

// Color is a 24-bit RGB color. Set false means "unset" (inherit).
type Color struct {
	Value int32
	Set   bool
}

// RGB builds a set Color from an 0xRRGGBB value.
func RGB(v int32) Color { return Color{Value: v, Set: true} }

// HlAttr is a highlight attribute set, indexed by style id. Id 0 always
// denotes "defaults." Missing fg/bg/special inherit the session's global
// defaults at lookup time, not at definition time.
type HlAttr struct {
	Foreground Color
	Background Color
	Special    Color

	Bold          bool
	Italic        bool
	Underline     bool
	Undercurl     bool
	Underdotted   bool
	Underdashed   bool
	Underdouble   bool
	Strikethrough bool
	Reverse       bool

	Blend int // 0-100
}

// Resolved is an HlAttr with fg/bg/special guaranteed set, produced by
// resolving against the session defaults.
type Resolved struct {
	Foreground int32
	Background int32
	Special    int32

	Bold          bool
	Italic        bool
	Underline     bool
	Undercurl     bool
	Underdotted   bool
	Underdashed   bool
	Underdouble   bool
	Strikethrough bool
	Reverse       bool

	Blend int
}

// resolve merges attr against the given defaults (P8). A zero HlAttr (id 0,
// or any id that never set colors) resolves to exactly the defaults.
func resolve(attr HlAttr, defaultFg, defaultBg, defaultSp int32) Resolved {
	r := Resolved{
		Foreground: defaultFg,
		Background: defaultBg,
		Special:    defaultSp,

		Bold:          attr.Bold,
		Italic:        attr.Italic,
		Underline:     attr.Underline,
		Undercurl:     attr.Undercurl,
		Underdotted:   attr.Underdotted,
		Underdashed:   attr.Underdashed,
		Underdouble:   attr.Underdouble,
		Strikethrough: attr.Strikethrough,
		Reverse:       attr.Reverse,
		Blend:         attr.Blend,
	}
	if attr.Foreground.Set {
		r.Foreground = attr.Foreground.Value
	}
	if attr.Background.Set {
		r.Background = attr.Background.Value
	}
	if attr.Special.Set {
		r.Special = attr.Special.Value
	}
	return r
}
