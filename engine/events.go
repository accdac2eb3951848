package engine

// Event is a redraw event decoded off the wire. Concrete event kinds are
// modeled as tagged variants (one struct per kind) rather than a class
// hierarchy, since that is the natural shape for a closed, backend-defined
// set of message kinds (see DESIGN.md).
type Event interface {
	isEvent()
}

type GridResizeEvent struct {
	Grid, Width, Height int
}

type GridLineCell struct {
	Text   string
	HlID   int
	Repeat int
}

type GridLineEvent struct {
	Grid, Row, ColStart int
	Cells               []GridLineCell
}

type GridScrollEvent struct {
	Grid                          int
	Top, Bot, Left, Right         int
	Rows, Cols                    int
}

type GridClearEvent struct{ Grid int }

type GridCursorGotoEvent struct {
	Grid, Row, Col int
}

type GridDestroyEvent struct{ Grid int }

type WinPosEvent struct {
	Grid, Win               int
	StartRow, StartCol      int
	Width, Height           int
}

type WinFloatPosEvent struct {
	Grid, Win             int
	AnchorGrid            int
	Anchor                Anchor
	AnchorRow, AnchorCol  float64
	Focusable             bool
	ZIndex                int
}

type WinViewportEvent struct {
	Grid                  int
	Topline, Botline      int
	Curline, Curcol       int
	LineCount             int
	ScrollDelta           int
}

type WinViewportMarginsEvent struct {
	Grid                             int
	Top, Bottom, Left, Right         int
}

type WinExternalPosEvent struct {
	Grid, Win int
}

type WinHideEvent struct{ Grid int }
type WinCloseEvent struct{ Grid int }

type MsgSetPosEvent struct {
	Grid     int
	Row      int
	Scrolled bool
	SepChar  string
	ZIndex   int
}

type HlAttrDefineEvent struct {
	ID   int
	Attr HlAttr
}

type DefaultColorsSetEvent struct {
	Fg, Bg, Sp int32
}

type HlGroupSetEvent struct {
	Name string
	ID   int
}

type CursorShape int

const (
	CursorBlock CursorShape = iota
	CursorHorizontal
	CursorVertical
)

type CursorModeInfo struct {
	Name          string
	Shape         CursorShape
	CellPercent   int
	BlinkWait     int
	BlinkOn       int
	BlinkOff      int
	AttrID        int
	AttrIDLm      int
}

type ModeInfoSetEvent struct {
	CursorStyleEnabled bool
	Modes              []CursorModeInfo
}

type ModeChangeEvent struct {
	Mode    string
	ModeIdx int
}

type OptionSetEvent struct {
	Name  string
	Value interface{}
}

type SetTitleEvent struct{ Title string }
type SetIconEvent struct{ Icon string }
type BusyStartEvent struct{}
type BusyStopEvent struct{}
type MouseOnEvent struct{}
type MouseOffEvent struct{}
type SuspendEvent struct{}
type RestartEvent struct{}
type NvimExitedEvent struct{}
type FlushEvent struct{}

// Message/cmdline/popupmenu/tabline ext-UI events: stored close to raw
// since rendering a menu panel etc. is out of scope, but the buffers
// themselves must still be tracked per §3/§4.5.
type MsgShowEvent struct {
	Kind    string
	Content string
	Replace bool
}
type MsgClearEvent struct{}
type MsgShowmodeEvent struct{ Content string }
type MsgShowcmdEvent struct{ Content string }
type MsgRulerEvent struct{ Content string }
type MsgHistoryShowEvent struct{ Entries []string }

type CmdlineShowEvent struct {
	Content  string
	Pos      int
	Firstc   string
	Prompt   string
	Indent   int
	Level    int
}
type CmdlineHideEvent struct{}
type CmdlinePosEvent struct {
	Pos   int
	Level int
}

type PopupmenuItem struct {
	Word, Kind, Menu, Info string
}
type PopupmenuShowEvent struct {
	Items     []PopupmenuItem
	Selected  int
	Row, Col  int
	GridID    int
}
type PopupmenuHideEvent struct{}
type PopupmenuSelectEvent struct{ Selected int }

type TablineTab struct {
	Name string
}
type TablineUpdateEvent struct {
	Current int
	Tabs    []TablineTab
}

func (GridResizeEvent) isEvent()         {}
func (GridLineEvent) isEvent()           {}
func (GridScrollEvent) isEvent()         {}
func (GridClearEvent) isEvent()          {}
func (GridCursorGotoEvent) isEvent()     {}
func (GridDestroyEvent) isEvent()        {}
func (WinPosEvent) isEvent()             {}
func (WinFloatPosEvent) isEvent()        {}
func (WinViewportEvent) isEvent()        {}
func (WinViewportMarginsEvent) isEvent() {}
func (WinExternalPosEvent) isEvent()     {}
func (WinHideEvent) isEvent()            {}
func (WinCloseEvent) isEvent()           {}
func (MsgSetPosEvent) isEvent()          {}
func (HlAttrDefineEvent) isEvent()       {}
func (DefaultColorsSetEvent) isEvent()   {}
func (HlGroupSetEvent) isEvent()         {}
func (ModeInfoSetEvent) isEvent()        {}
func (ModeChangeEvent) isEvent()         {}
func (OptionSetEvent) isEvent()          {}
func (SetTitleEvent) isEvent()           {}
func (SetIconEvent) isEvent()            {}
func (BusyStartEvent) isEvent()          {}
func (BusyStopEvent) isEvent()           {}
func (MouseOnEvent) isEvent()            {}
func (MouseOffEvent) isEvent()           {}
func (SuspendEvent) isEvent()            {}
func (RestartEvent) isEvent()            {}
func (NvimExitedEvent) isEvent()         {}
func (FlushEvent) isEvent()              {}
func (MsgShowEvent) isEvent()            {}
func (MsgClearEvent) isEvent()           {}
func (MsgShowmodeEvent) isEvent()        {}
func (MsgShowcmdEvent) isEvent()         {}
func (MsgRulerEvent) isEvent()           {}
func (MsgHistoryShowEvent) isEvent()     {}
func (CmdlineShowEvent) isEvent()        {}
func (CmdlineHideEvent) isEvent()        {}
func (CmdlinePosEvent) isEvent()         {}
func (PopupmenuShowEvent) isEvent()      {}
func (PopupmenuHideEvent) isEvent()      {}
func (PopupmenuSelectEvent) isEvent()    {}
func (TablineUpdateEvent) isEvent()      {}
