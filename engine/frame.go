package engine

import (
	"fmt"
	"math"
)

// GuiCell is a fully-resolved cell ready for a renderer to draw: text
// plus a style with no unresolved fg/bg/special left to look up.
type GuiCell struct {
	Text           string
	Style          Resolved
	DoubleWidth    bool
	IsContinuation bool
}

// CellAccessor reads a cell at an integer grid coordinate.
type CellAccessor func(row, col int) GuiCell

// ScrollCellAccessor reads a cell at an animation-space coordinate that
// may straddle the live/scrollback boundary (see RenderedWindow.GetScrollCell).
type ScrollCellAccessor func(innerRow, col int) GuiCell

// CursorSnapshot is the cursor state a renderer needs, already adjusted
// for the window it sits in: GridRow has the window's current scroll
// offset subtracted out, so cursor motion and scroll-induced motion
// are distinguishable from ScrollOffset alone.
type CursorSnapshot struct {
	GridRow, GridCol     float64
	ScreenRow, ScreenCol int
	Shape                CursorShape
	CellPercent          int
	BlinkWait            int
	BlinkOn              int
	BlinkOff             int
	Color                int32
	ScrollOffset         float64
}

// GuiWindow is a renderer-facing snapshot of one RenderedWindow: enough
// to draw it without reaching back into EditorState. Cell and
// ScrollCell close over this window's own rings and a highlight
// resolver that reads EditorState's highlight table at call time, so,
// like the GuiFrame holding them, they are valid only until the next
// event-processing call.
type GuiWindow struct {
	ID     int
	Type   WindowType
	Grid   Position
	Width  int
	Height int

	Opacity float64
	ZIndex  int

	HasScrollAnimation     bool
	ScrollPixelOffsetRound int
	ScrollPixelOffsetRaw   float64

	Margins Margins

	Cell       CellAccessor
	ScrollCell ScrollCellAccessor
}

// GuiFrame is the sole output of the core: a borrowed view valid until
// the next event-processing call. Roots and floats are kept separate
// since they draw in two distinct passes (floats always above roots).
type GuiFrame struct {
	Roots  []GuiWindow
	Floats []GuiWindow

	Cursor       CursorSnapshot
	HasCursor    bool
	Exited       bool
	Title        string
	Icon         string
	Busy         bool
	MouseOn      bool
	Mode         string
	Messages     []MsgShowEvent
	CmdlineShown bool
	Cmdline      CmdlineShowEvent

	// GuiFont, Linespace and MouseHide mirror the small set of
	// UI-relevant option_set keys EditorState tracks — enough for a
	// renderer to pick a font and honor mousehide without this package
	// taking on font loading/rendering itself.
	GuiFont   string
	Linespace string
	MouseHide bool
}

// BuildFrame projects the current EditorState into a GuiFrame. The
// returned frame borrows from s and the windows it holds; it must not
// be retained past the next HandleEvent/Animate call.
func BuildFrame(s *EditorState, cellHeight float64) GuiFrame {
	frame := GuiFrame{
		Exited:       s.Exited(),
		Title:        s.Title(),
		Icon:         s.Icon(),
		Busy:         s.busy,
		MouseOn:      s.mouseOn,
		Mode:         s.mode,
		Messages:     s.Messages(),
		CmdlineShown: s.cmdlineShown,
		Cmdline:      s.cmdline,
		GuiFont:      optString(s, "guifont"),
		Linespace:    optString(s, "linespace"),
		MouseHide:    optBool(s, "mousehide"),
	}

	type ordered struct {
		w    *RenderedWindow
		comp uint64
	}
	var roots, floats []*RenderedWindow

	for _, w := range s.windows {
		if !includeInFrame(w) {
			continue
		}
		switch w.WindowType {
		case WindowFloating:
			floats = append(floats, w)
		default:
			roots = append(roots, w)
		}
	}

	sortByID(roots)
	sortFloats(floats)

	for _, w := range roots {
		frame.Roots = append(frame.Roots, s.snapshotWindow(w, cellHeight))
	}
	for _, w := range floats {
		frame.Floats = append(frame.Floats, s.snapshotWindow(w, cellHeight))
	}

	if cursorWin, ok := s.lookupWindow(s.cursorGrid); ok && includeInFrame(cursorWin) {
		frame.Cursor = s.snapshotCursor(cursorWin, cellHeight)
		frame.HasCursor = true
	}

	return frame
}

func optString(s *EditorState, name string) string {
	v, ok := s.Option(name)
	if !ok {
		return ""
	}
	switch val := v.(type) {
	case string:
		return val
	case fmt.Stringer:
		return val.String()
	default:
		return fmt.Sprintf("%v", val)
	}
}

func optBool(s *EditorState, name string) bool {
	v, ok := s.Option(name)
	if !ok {
		return false
	}
	b, _ := v.(bool)
	return b
}

// includeInFrame is the window filter from §4.5: drop hidden, invalid,
// zero-sized, positionless (except grid 1, which Neovim never sends a
// win_pos for but which must always render), or still awaiting its
// first content after resize.
func includeInFrame(w *RenderedWindow) bool {
	if w.Hidden || !w.Valid || w.NeedsContent {
		return false
	}
	if w.GridWidth == 0 || w.GridHeight == 0 {
		return false
	}
	if !w.HasPosition && w.ID != 1 {
		return false
	}
	return true
}

func sortByID(ws []*RenderedWindow) {
	for i := 1; i < len(ws); i++ {
		for j := i; j > 0 && ws[j].ID < ws[j-1].ID; j-- {
			ws[j], ws[j-1] = ws[j-1], ws[j]
		}
	}
}

func sortFloats(ws []*RenderedWindow) {
	for i := 1; i < len(ws); i++ {
		for j := i; j > 0 && floatLess(ws[j], ws[j-1]); j-- {
			ws[j], ws[j-1] = ws[j-1], ws[j]
		}
	}
}

func floatLess(a, b *RenderedWindow) bool {
	if a.ZIndex != b.ZIndex {
		return a.ZIndex < b.ZIndex
	}
	if a.CompositionOrder != b.CompositionOrder {
		return a.CompositionOrder < b.CompositionOrder
	}
	return a.ID < b.ID
}

func (s *EditorState) snapshotWindow(w *RenderedWindow, cellHeight float64) GuiWindow {
	resolve := func(hlID int) Resolved { return s.GetHlAttr(hlID) }
	rawOffset := w.SubLineOffset(cellHeight)

	gw := GuiWindow{
		ID:                     w.ID,
		Type:                   w.WindowType,
		Grid:                   w.GridPosition,
		Width:                  w.DisplayWidth,
		Height:                 w.DisplayHeight,
		Opacity:                1.0,
		ZIndex:                 w.ZIndex,
		HasScrollAnimation:     w.ScrollAnim.Moving(),
		ScrollPixelOffsetRaw:   rawOffset,
		ScrollPixelOffsetRound: int(math.Round(rawOffset)),
		Margins:                w.Margins,
	}

	gw.Cell = func(row, col int) GuiCell {
		c := w.GetCell(row, col)
		return toGuiCell(c, resolve)
	}
	gw.ScrollCell = func(innerRow, col int) GuiCell {
		c := w.GetScrollCell(innerRow, col)
		return toGuiCell(c, resolve)
	}

	return gw
}

func toGuiCell(c Cell, resolve func(int) Resolved) GuiCell {
	return GuiCell{
		Text:           c.Text(),
		Style:          resolve(c.HlID),
		DoubleWidth:    c.DoubleWidth,
		IsContinuation: c.IsContinuation,
	}
}

func (s *EditorState) snapshotCursor(w *RenderedWindow, cellHeight float64) CursorSnapshot {
	scrollOffset := w.ScrollAnim.Position * cellHeight

	snap := CursorSnapshot{
		GridRow:      float64(s.cursorRow) - scrollOffset/cellHeight,
		GridCol:      float64(s.cursorCol),
		ScreenRow:    s.cursorRow,
		ScreenCol:    s.cursorCol,
		ScrollOffset: scrollOffset,
	}

	if mode, ok := s.CurrentCursorMode(); ok {
		snap.Shape = mode.Shape
		snap.CellPercent = mode.CellPercent
		snap.BlinkWait = mode.BlinkWait
		snap.BlinkOn = mode.BlinkOn
		snap.BlinkOff = mode.BlinkOff
		snap.Color = s.GetHlAttr(mode.AttrID).Foreground
	} else {
		snap.Color = s.GetHlAttr(0).Foreground
	}

	return snap
}
