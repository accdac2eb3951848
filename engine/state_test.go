package engine

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestState() *EditorState {
	return NewEditorState(0.3, 0, 0, logrus.NewEntry(logrus.New()))
}

func TestHandleEventGridResizeCreatesAndResizesWindow(t *testing.T) {
	s := newTestState()
	require.NoError(t, s.HandleEvent(GridResizeEvent{Grid: 1, Width: 80, Height: 24}))

	w, ok := s.Window(1)
	require.True(t, ok)
	assert.Equal(t, 80, w.GridWidth)
	assert.Equal(t, 24, w.GridHeight)
	assert.True(t, w.Valid)
}

func TestHandleEventGridResizeSeedsDisplaySizeUntilWinPosArrives(t *testing.T) {
	s := newTestState()
	require.NoError(t, s.HandleEvent(GridResizeEvent{Grid: 1, Width: 80, Height: 24}))

	w, ok := s.Window(1)
	require.True(t, ok)
	assert.Equal(t, 80, w.DisplayWidth)
	assert.Equal(t, 24, w.DisplayHeight)

	// Once win_pos has positioned the window, a later resize (e.g. the
	// buffer growing without an immediate reposition) must not clobber
	// the display size win_pos established.
	require.NoError(t, s.HandleEvent(WinPosEvent{Grid: 1, StartRow: 0, StartCol: 0, Width: 80, Height: 24}))
	require.NoError(t, s.HandleEvent(GridResizeEvent{Grid: 1, Width: 100, Height: 30}))

	assert.Equal(t, 100, w.GridWidth)
	assert.Equal(t, 30, w.GridHeight)
	assert.Equal(t, 80, w.DisplayWidth)
	assert.Equal(t, 24, w.DisplayHeight)
}

func TestHandleEventWinPosSetsDisplaySize(t *testing.T) {
	s := newTestState()
	require.NoError(t, s.HandleEvent(GridResizeEvent{Grid: 1, Width: 80, Height: 24}))
	require.NoError(t, s.HandleEvent(WinPosEvent{Grid: 1, StartRow: 2, StartCol: 3, Width: 40, Height: 10}))

	w, ok := s.Window(1)
	require.True(t, ok)
	assert.Equal(t, 40, w.DisplayWidth)
	assert.Equal(t, 10, w.DisplayHeight)
}

func TestEditorStateThreadsScrollConfigOntoCreatedWindows(t *testing.T) {
	s := NewEditorState(0.3, 0.05, 4, logrus.NewEntry(logrus.New()))
	require.NoError(t, s.HandleEvent(GridResizeEvent{Grid: 1, Width: 10, Height: 10}))

	w, ok := s.Window(1)
	require.True(t, ok)
	assert.Equal(t, 0.05, w.SnapThreshold)
	assert.Equal(t, 4, w.FarScrollLines)
}

func TestHandleEventGridLineWritesCellsAndClearsNeedsContent(t *testing.T) {
	s := newTestState()
	require.NoError(t, s.HandleEvent(GridResizeEvent{Grid: 1, Width: 10, Height: 2}))

	require.NoError(t, s.HandleEvent(GridLineEvent{
		Grid: 1, Row: 0, ColStart: 0,
		Cells: []GridLineCell{{Text: "h", HlID: 3, Repeat: 1}, {Text: "i", Repeat: 1}},
	}))

	w, _ := s.Window(1)
	assert.False(t, w.NeedsContent)
	assert.Equal(t, "h", w.GetCell(0, 0).Text())
	assert.Equal(t, 3, w.GetCell(0, 0).HlID)
	// HlID 0 in a decoded event is an explicit id and is kept; carrying an
	// omitted hl_id forward happens in the wire decoder, before HandleEvent
	assert.Equal(t, "i", w.GetCell(0, 1).Text())
	assert.Equal(t, 0, w.GetCell(0, 1).HlID)
}

func TestHandleEventGridLineStopsAtWindowWidth(t *testing.T) {
	s := newTestState()
	require.NoError(t, s.HandleEvent(GridResizeEvent{Grid: 1, Width: 3, Height: 1}))

	require.NoError(t, s.HandleEvent(GridLineEvent{
		Grid: 1, Row: 0, ColStart: 0,
		Cells: []GridLineCell{{Text: "x", Repeat: 10}},
	}))

	w, _ := s.Window(1)
	assert.Equal(t, "x", w.GetCell(0, 2).Text())
}

func TestCursorGotoStoresGridLocalCoordinates(t *testing.T) {
	s := newTestState()
	require.NoError(t, s.HandleEvent(GridResizeEvent{Grid: 2, Width: 20, Height: 10}))
	require.NoError(t, s.HandleEvent(GridCursorGotoEvent{Grid: 2, Row: 3, Col: 5}))

	assert.Equal(t, 2, s.cursorGrid)
	assert.Equal(t, 3, s.cursorRow)
	assert.Equal(t, 5, s.cursorCol)
}

func TestGetHlAttrZeroResolvesToDefaults(t *testing.T) {
	s := newTestState()
	require.NoError(t, s.HandleEvent(DefaultColorsSetEvent{Fg: 0xffffff, Bg: 0x000000, Sp: 0xff0000}))

	r := s.GetHlAttr(0)
	assert.Equal(t, int32(0xffffff), r.Foreground)
	assert.Equal(t, int32(0x000000), r.Background)
	assert.Equal(t, int32(0xff0000), r.Special)
}

func TestGetHlAttrInheritsUnsetFields(t *testing.T) {
	s := newTestState()
	require.NoError(t, s.HandleEvent(DefaultColorsSetEvent{Fg: 0x111111, Bg: 0x222222, Sp: 0x333333}))
	require.NoError(t, s.HandleEvent(HlAttrDefineEvent{ID: 5, Attr: HlAttr{Foreground: RGB(0xabcdef), Bold: true}}))

	r := s.GetHlAttr(5)
	assert.Equal(t, int32(0xabcdef), r.Foreground)
	assert.Equal(t, int32(0x222222), r.Background) // inherited
	assert.True(t, r.Bold)
}

func TestFlushAppliesToEveryWindowWithoutEarlyReturn(t *testing.T) {
	s := newTestState()
	require.NoError(t, s.HandleEvent(GridResizeEvent{Grid: 1, Width: 10, Height: 4}))
	require.NoError(t, s.HandleEvent(GridResizeEvent{Grid: 2, Width: 10, Height: 4}))
	require.NoError(t, s.HandleEvent(GridScrollEvent{Grid: 1, Top: 0, Bot: 4, Left: 0, Right: 10, Rows: 1, Cols: 0}))
	require.NoError(t, s.HandleEvent(GridScrollEvent{Grid: 2, Top: 0, Bot: 4, Left: 0, Right: 10, Rows: 1, Cols: 0}))
	require.NoError(t, s.HandleEvent(WinViewportEvent{Grid: 1, Topline: 1, Botline: 5, ScrollDelta: 1}))
	require.NoError(t, s.HandleEvent(WinViewportEvent{Grid: 2, Topline: 1, Botline: 5, ScrollDelta: 1}))

	require.NoError(t, s.HandleEvent(FlushEvent{}))
	require.NoError(t, s.HandleEvent(FlushEvent{})) // second flush in the same batch must still apply

	w1, _ := s.Window(1)
	w2, _ := s.Window(2)
	assert.True(t, w1.HasValidScrollback())
	assert.True(t, w2.HasValidScrollback())
}

func TestSetTitleAndIconStoreLatestValue(t *testing.T) {
	s := newTestState()
	require.NoError(t, s.HandleEvent(SetTitleEvent{Title: "a"}))
	require.NoError(t, s.HandleEvent(SetTitleEvent{Title: "b"}))
	require.NoError(t, s.HandleEvent(SetIconEvent{Icon: "icon"}))

	assert.Equal(t, "b", s.Title())
	assert.Equal(t, "icon", s.Icon())
}

func TestOptionAndHlGroupByNameReturnLastSetValue(t *testing.T) {
	s := newTestState()
	_, ok := s.Option("guifont")
	assert.False(t, ok)

	require.NoError(t, s.HandleEvent(OptionSetEvent{Name: "guifont", Value: "Iosevka:h14"}))
	v, ok := s.Option("guifont")
	require.True(t, ok)
	assert.Equal(t, "Iosevka:h14", v)

	_, ok = s.HlGroupByName("Cursor")
	assert.False(t, ok)

	require.NoError(t, s.HandleEvent(HlGroupSetEvent{Name: "Cursor", ID: 5}))
	id, ok := s.HlGroupByName("Cursor")
	require.True(t, ok)
	assert.Equal(t, 5, id)
}

func TestMsgShowReplaceResetsBufferAndClearEmptiesIt(t *testing.T) {
	s := newTestState()
	require.NoError(t, s.HandleEvent(MsgShowEvent{Kind: "echo", Content: "one"}))
	require.NoError(t, s.HandleEvent(MsgShowEvent{Kind: "echo", Content: "two"}))
	assert.Len(t, s.Messages(), 2)

	require.NoError(t, s.HandleEvent(MsgShowEvent{Kind: "echo", Content: "three", Replace: true}))
	assert.Len(t, s.Messages(), 1)
	assert.Equal(t, "three", s.Messages()[0].Content)

	require.NoError(t, s.HandleEvent(MsgClearEvent{}))
	assert.Empty(t, s.Messages())
}

func TestCurrentCursorModeDisabledReturnsFalse(t *testing.T) {
	s := newTestState()
	_, ok := s.CurrentCursorMode()
	assert.False(t, ok)

	require.NoError(t, s.HandleEvent(ModeInfoSetEvent{
		CursorStyleEnabled: true,
		Modes:              []CursorModeInfo{{Name: "normal", Shape: CursorBlock}},
	}))
	require.NoError(t, s.HandleEvent(ModeChangeEvent{Mode: "normal", ModeIdx: 0}))

	mode, ok := s.CurrentCursorMode()
	require.True(t, ok)
	assert.Equal(t, "normal", mode.Name)

	require.NoError(t, s.HandleEvent(ModeChangeEvent{Mode: "unknown", ModeIdx: 99}))
	_, ok = s.CurrentCursorMode()
	assert.False(t, ok)
}

func TestGridResizeNegativeDimensionsDropsEventWithoutPanicking(t *testing.T) {
	s := newTestState()
	assert.NoError(t, s.HandleEvent(GridResizeEvent{Grid: 1, Width: -1, Height: 5}))
	_, ok := s.Window(1)
	assert.False(t, ok)
}

func TestWinFloatPosResolvesPendingAnchorAfterLaterResize(t *testing.T) {
	s := newTestState()
	require.NoError(t, s.HandleEvent(GridResizeEvent{Grid: 1, Width: 80, Height: 24}))
	require.NoError(t, s.HandleEvent(WinFloatPosEvent{
		Grid: 2, AnchorGrid: 1, Anchor: AnchorNW, AnchorRow: 2, AnchorCol: 3, ZIndex: 50,
	}))

	floatBefore, _ := s.Window(2)
	require.NotNil(t, floatBefore.PendingAnchor)

	require.NoError(t, s.HandleEvent(GridResizeEvent{Grid: 2, Width: 10, Height: 5}))

	floatAfter, _ := s.Window(2)
	assert.Nil(t, floatAfter.PendingAnchor)
	assert.Equal(t, Position{Row: 2, Col: 3}, floatAfter.GridPosition)
}

func TestGridDestroyRemovesWindow(t *testing.T) {
	s := newTestState()
	require.NoError(t, s.HandleEvent(GridResizeEvent{Grid: 1, Width: 10, Height: 5}))
	require.NoError(t, s.HandleEvent(GridDestroyEvent{Grid: 1}))

	_, ok := s.Window(1)
	assert.False(t, ok)
}
