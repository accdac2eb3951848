package engine

import (
	engineerrors "github.com/grovetools/nvimgui/errors"
	"github.com/sirupsen/logrus"
)

// EditorState (C8) is the single-threaded interpreter of decoded
// events: the windows map, highlight table, defaults, cursor and mode
// state, and the ext-UI message/cmdline/popupmenu/tabline buffers. It
// is owned exclusively by the render/main thread (§5) — nothing here
// is safe for concurrent access from the I/O thread.
type EditorState struct {
	AnimationLen   float64
	SnapThreshold  float64
	FarScrollLines int

	windows map[int]*RenderedWindow

	hlAttrs            map[int]HlAttr
	hlGroups           map[string]int
	defaultFg          int32
	defaultBg          int32
	defaultSp          int32
	defaultColorsKnown bool

	cursorGrid    int
	cursorRow     int
	cursorCol     int
	mode          string
	modeIdx       int
	cursorStyleOn bool
	cursorModes   []CursorModeInfo

	options map[string]interface{}
	title   string
	icon    string

	msgs       []MsgShowEvent
	showmode   string
	showcmd    string
	ruler      string
	history    []string

	cmdline      CmdlineShowEvent
	cmdlineShown bool
	cmdlinePos   int

	popupmenu      PopupmenuShowEvent
	popupmenuShown bool

	tabline TablineUpdateEvent

	busy      bool
	mouseOn   bool
	suspended bool
	exited    bool

	nextCompositionOrder uint64

	log *logrus.Entry
}

// NewEditorState constructs an EditorState with no windows and the
// highlight table containing only id 0 (the implicit default entry).
// animationLen, snapThreshold and farScrollLines carry the scroll-animation
// knobs of §6 down to every window this state creates.
func NewEditorState(animationLen, snapThreshold float64, farScrollLines int, log *logrus.Entry) *EditorState {
	return &EditorState{
		AnimationLen:   animationLen,
		SnapThreshold:  snapThreshold,
		FarScrollLines: farScrollLines,
		windows:        make(map[int]*RenderedWindow),
		hlAttrs:        make(map[int]HlAttr),
		hlGroups:       make(map[string]int),
		options:        make(map[string]interface{}),
		log:            log,
	}
}

func (s *EditorState) windowOrCreate(grid int) *RenderedWindow {
	w, ok := s.windows[grid]
	if !ok {
		w = NewRenderedWindow(grid, s.AnimationLen, s.SnapThreshold, s.FarScrollLines)
		s.windows[grid] = w
	}
	return w
}

func (s *EditorState) lookupWindow(id int) (*RenderedWindow, bool) {
	w, ok := s.windows[id]
	return w, ok
}

// Window returns the window for grid, if any.
func (s *EditorState) Window(grid int) (*RenderedWindow, bool) {
	return s.lookupWindow(grid)
}

// Windows returns the live window set. Callers must not mutate the
// returned map.
func (s *EditorState) Windows() map[int]*RenderedWindow {
	return s.windows
}

// Exited reports whether a transport-closed / nvim_exited event has
// been processed.
func (s *EditorState) Exited() bool { return s.exited }

// HandleEvent applies a single decoded event, implementing the
// policies of §4.5. It returns an error only for container allocation
// failures (resize / scrollback rebuild); every other malformed-input
// condition is logged and swallowed so one bad event can't wedge the
// render loop.
func (s *EditorState) HandleEvent(e Event) error {
	switch ev := e.(type) {
	case GridResizeEvent:
		s.handleGridResize(ev)
	case GridLineEvent:
		s.handleGridLine(ev)
	case GridScrollEvent:
		w := s.windowOrCreate(ev.Grid)
		w.Scroll(ev.Top, ev.Bot, ev.Left, ev.Right, ev.Rows, ev.Cols)
		w.Dirty = true
	case GridClearEvent:
		if w, ok := s.lookupWindow(ev.Grid); ok {
			w.Clear()
			w.Dirty = true
		}
	case GridCursorGotoEvent:
		s.cursorGrid = ev.Grid
		s.cursorRow = ev.Row
		s.cursorCol = ev.Col
	case GridDestroyEvent:
		delete(s.windows, ev.Grid)

	case WinPosEvent:
		w := s.windowOrCreate(ev.Grid)
		w.WindowType = WindowRoot
		w.Hidden = false
		w.HasPosition = true
		w.DisplayWidth = ev.Width
		w.DisplayHeight = ev.Height
		w.SetPosition(float64(ev.StartRow), float64(ev.StartCol))
	case WinFloatPosEvent:
		w := s.windowOrCreate(ev.Grid)
		w.WindowType = WindowFloating
		w.Hidden = false
		w.HasPosition = true
		s.nextCompositionOrder++
		w.SetFloatPosition(ev.Anchor, ev.AnchorGrid, ev.AnchorRow, ev.AnchorCol, ev.ZIndex, s.nextCompositionOrder, s.lookupWindow)
	case WinViewportEvent:
		if w, ok := s.lookupWindow(ev.Grid); ok {
			w.SetViewport(ev.Topline, ev.Botline, ev.ScrollDelta)
		}
	case WinViewportMarginsEvent:
		if w, ok := s.lookupWindow(ev.Grid); ok {
			w.SetViewportMargins(Margins{Top: ev.Top, Bottom: ev.Bottom, Left: ev.Left, Right: ev.Right})
		}
	case WinExternalPosEvent:
		if w, ok := s.lookupWindow(ev.Grid); ok {
			w.HasPosition = false
		}
	case WinHideEvent:
		if w, ok := s.lookupWindow(ev.Grid); ok {
			w.Hidden = true
		}
	case WinCloseEvent:
		delete(s.windows, ev.Grid)
	case MsgSetPosEvent:
		w := s.windowOrCreate(ev.Grid)
		w.WindowType = WindowMessage
		w.HasPosition = true
		w.ZIndex = ev.ZIndex
		w.SetPosition(float64(ev.Row), 0)

	case HlAttrDefineEvent:
		s.hlAttrs[ev.ID] = ev.Attr
	case DefaultColorsSetEvent:
		s.defaultFg = ev.Fg
		s.defaultBg = ev.Bg
		s.defaultSp = ev.Sp
		s.defaultColorsKnown = true
	case HlGroupSetEvent:
		s.hlGroups[ev.Name] = ev.ID

	case ModeInfoSetEvent:
		s.cursorStyleOn = ev.CursorStyleEnabled
		s.cursorModes = ev.Modes
	case ModeChangeEvent:
		s.mode = ev.Mode
		s.modeIdx = ev.ModeIdx

	case OptionSetEvent:
		s.options[ev.Name] = ev.Value
	case SetTitleEvent:
		s.title = ev.Title
	case SetIconEvent:
		s.icon = ev.Icon

	case BusyStartEvent:
		s.busy = true
	case BusyStopEvent:
		s.busy = false
	case MouseOnEvent:
		s.mouseOn = true
	case MouseOffEvent:
		s.mouseOn = false
	case SuspendEvent:
		s.suspended = true
	case RestartEvent:
		s.reset()
	case NvimExitedEvent:
		s.exited = true

	case FlushEvent:
		// Do not early-return across multiple flushes in a batch: every
		// flush must rebuild scrollback and mark dirty, or rapid
		// successive redraws stutter (§4.5).
		for _, w := range s.windows {
			w.Flush()
		}

	case MsgShowEvent:
		if ev.Replace {
			s.msgs = []MsgShowEvent{ev}
		} else {
			s.msgs = append(s.msgs, ev)
		}
	case MsgClearEvent:
		s.msgs = nil
	case MsgShowmodeEvent:
		s.showmode = ev.Content
	case MsgShowcmdEvent:
		s.showcmd = ev.Content
	case MsgRulerEvent:
		s.ruler = ev.Content
	case MsgHistoryShowEvent:
		s.history = ev.Entries

	case CmdlineShowEvent:
		s.cmdline = ev
		s.cmdlineShown = true
	case CmdlineHideEvent:
		s.cmdlineShown = false
	case CmdlinePosEvent:
		s.cmdlinePos = ev.Pos

	case PopupmenuShowEvent:
		s.popupmenu = ev
		s.popupmenuShown = true
	case PopupmenuHideEvent:
		s.popupmenuShown = false
	case PopupmenuSelectEvent:
		s.popupmenu.Selected = ev.Selected

	case TablineUpdateEvent:
		s.tabline = ev
	}

	return nil
}

// handleGridResize applies a resize and resolves any pending float
// anchor it unblocks. A negative dimension is logged and dropped
// rather than handed to Resize: it's a semantic-event error (§7), not
// the resource-exhausted case (Go reports allocation failure via an
// unrecoverable runtime fatal, not an error value, so there is no
// allocation outcome for this layer to catch and recover from).
//
// display_width/display_height are spec'd as coming from positioning
// events only (they may transiently lag grid_width/grid_height across
// a resize until the next win_pos arrives), so a resize never
// overwrites display dimensions once a win_pos has established them.
// But a brand-new window's display dimensions start at zero, and
// nothing should stay invisible just because its first win_pos hasn't
// arrived yet, so a resize seeds them here until that happens.
func (s *EditorState) handleGridResize(ev GridResizeEvent) {
	if ev.Width < 0 || ev.Height < 0 {
		s.log.WithError(engineerrors.MalformedEventArgs("grid_resize", "negative dimensions")).Debug("dropping grid_resize")
		return
	}
	w := s.windowOrCreate(ev.Grid)
	w.Resize(ev.Width, ev.Height)
	if !w.HasPosition {
		w.DisplayWidth = ev.Width
		w.DisplayHeight = ev.Height
	}
	w.ResolvePendingAnchor(s.lookupWindow)
	w.Valid = true
}

func (s *EditorState) handleGridLine(ev GridLineEvent) {
	w, ok := s.lookupWindow(ev.Grid)
	if !ok {
		return
	}
	col := ev.ColStart
	for _, run := range ev.Cells {
		for i := 0; i < run.Repeat; i++ {
			if col >= w.GridWidth {
				break
			}
			w.SetCell(ev.Row, col, NewCell(run.Text, run.HlID))
			col++
		}
	}
	w.NeedsContent = false
	w.Dirty = true
}

func (s *EditorState) reset() {
	s.windows = make(map[int]*RenderedWindow)
	s.hlAttrs = make(map[int]HlAttr)
	s.hlGroups = make(map[string]int)
	s.defaultColorsKnown = false
	s.msgs = nil
	s.cmdlineShown = false
	s.popupmenuShown = false
}

// GetHlAttr resolves id against the current defaults (P8); id == 0, or
// any id that never defined colors, resolves to exactly
// {fg=defaultFg, bg=defaultBg, sp=defaultSp}.
func (s *EditorState) GetHlAttr(id int) Resolved {
	attr := s.hlAttrs[id]
	return resolve(attr, s.defaultFg, s.defaultBg, s.defaultSp)
}

// CurrentCursorMode returns the active cursor-shape entry, or false if
// cursor styling is disabled or the backend's reported mode index is
// out of range for the modes table mode_info_set last installed.
func (s *EditorState) CurrentCursorMode() (CursorModeInfo, bool) {
	if !s.cursorStyleOn || s.modeIdx < 0 || s.modeIdx >= len(s.cursorModes) {
		return CursorModeInfo{}, false
	}
	return s.cursorModes[s.modeIdx], true
}

// Title and Icon return the last values observed via set_title/set_icon.
func (s *EditorState) Title() string { return s.title }
func (s *EditorState) Icon() string  { return s.icon }

// Messages returns the accumulated msg_show buffer.
func (s *EditorState) Messages() []MsgShowEvent { return s.msgs }

// Option returns the last value an option_set event reported for name,
// e.g. "guifont" or "linespace" — the small subset of UI-relevant
// options a real GUI client needs to pick a font without this package
// taking on font loading itself.
func (s *EditorState) Option(name string) (interface{}, bool) {
	v, ok := s.options[name]
	return v, ok
}

// HlGroupByName resolves a semantic highlight group name (e.g.
// "Cursor", "Visual") to the hl_id hl_group_set last associated with
// it, so a renderer can look up a named group without re-deriving it
// from nvim_get_hl_by_name itself.
func (s *EditorState) HlGroupByName(name string) (int, bool) {
	id, ok := s.hlGroups[name]
	return id, ok
}
