package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fillGrid(t *testing.T, w *RenderedWindow) {
	t.Helper()
	for row := 0; row < w.GridHeight; row++ {
		for col := 0; col < w.GridWidth; col++ {
			w.SetCell(row, col, NewCell("x", row+1))
		}
	}
}

// S2: simple scroll.
func TestWindowSimpleScroll(t *testing.T) {
	w := NewRenderedWindow(2, 0.3, 0, 0)
	w.Resize(80, 24)
	fillGrid(t, w)
	w.Flush()

	w.SetViewport(1, 24, 1)
	w.Flush()

	assert.Equal(t, -1.0, w.ScrollAnim.Position)
	cell := w.GetScrollCell(-1, 0)
	assert.False(t, cell.Blank())
}

// S3: margin change forces scrollback rebuild.
func TestWindowMarginChangeRebuildsScrollback(t *testing.T) {
	w := NewRenderedWindow(2, 0.3, 0, 0)
	w.Resize(80, 24)
	fillGrid(t, w)
	w.Flush()
	w.SetViewport(1, 24, 1)
	w.Flush()

	w.SetViewportMargins(Margins{Top: 1, Bottom: 1})
	w.Flush()

	require.NotNil(t, w.ScrollbackLines)
	assert.Equal(t, 44, w.ScrollbackLines.Len())
	assert.Equal(t, 0, w.ScrollDelta)
	assert.Equal(t, 0.0, w.ScrollAnim.Position)

	for i := 0; i < 22; i++ {
		a := w.ScrollbackLines.Get(i)
		b := w.ScrollbackLines.Get(22 + i)
		require.NotNil(t, a)
		require.NotNil(t, b)
		assert.Equal(t, a.Cell(0).Text(), b.Cell(0).Text())
	}
}

// S5: confirmation viewport event with delta 0 must not clobber a pending
// non-zero delta (P4, I4).
func TestWindowConfirmationViewportEventIgnored(t *testing.T) {
	w := NewRenderedWindow(2, 0.3, 0, 0)
	w.Resize(80, 24)
	fillGrid(t, w)
	w.Flush()

	w.SetViewport(1, 24, 3)
	w.SetViewport(1, 24, 0)
	w.Flush()

	assert.Equal(t, -3.0, w.ScrollAnim.Position)
}

// S4: float anchor arrives before resize, recomputed on the first resize.
func TestWindowFloatAnchorBeforeResize(t *testing.T) {
	root := NewRenderedWindow(1, 0.3, 0, 0)
	root.Resize(80, 24)

	float := NewRenderedWindow(5, 0.3, 0, 0)
	lookup := func(id int) (*RenderedWindow, bool) {
		if id == 1 {
			return root, true
		}
		return nil, false
	}

	float.SetFloatPosition(AnchorSE, 1, 10, 20, 50, 1, lookup)
	require.NotNil(t, float.PendingAnchor)

	float.Resize(8, 4)
	float.ResolvePendingAnchor(lookup)

	require.Nil(t, float.PendingAnchor)
	assert.Equal(t, WindowFloating, float.WindowType)
	assert.Equal(t, 50, float.ZIndex)
	assert.Equal(t, 12.0, float.GridPosition.Col)
	assert.Equal(t, 6.0, float.GridPosition.Row)
}

func TestWindowResizeFastPathPreservesContent(t *testing.T) {
	w := NewRenderedWindow(2, 0.3, 0, 0)
	w.Resize(10, 5)
	w.SetCell(0, 0, NewCell("a", 1))
	w.Flush()

	w.Resize(20, 5)

	assert.Equal(t, "a", w.GetCell(0, 0).Text())
	assert.Equal(t, 20, w.GridWidth)
}

func TestWindowResizeShrinkWidthDoesNotPreserve(t *testing.T) {
	w := NewRenderedWindow(2, 0.3, 0, 0)
	w.Resize(10, 5)
	w.SetCell(0, 0, NewCell("a", 1))
	w.Flush()

	w.Resize(5, 5)
	// Shrinking width never preserves (edge color-bleed); cell should be
	// freshly blank, not the old "a".
	assert.Equal(t, " ", w.GetCell(0, 0).Text())
}

func TestWindowGrid1NeverPreservesOnResize(t *testing.T) {
	w := NewRenderedWindow(1, 0.3, 0, 0)
	w.Resize(10, 5)
	w.SetCell(0, 0, NewCell("a", 1))
	w.Flush()

	w.Resize(20, 5)
	assert.Equal(t, " ", w.GetCell(0, 0).Text())
}

func TestWindowScrollFullGridRotatesRing(t *testing.T) {
	w := NewRenderedWindow(2, 0.3, 0, 0)
	w.Resize(10, 5)
	for col := 0; col < 10; col++ {
		w.SetCell(0, col, NewCell("r0", 1))
		w.SetCell(1, col, NewCell("r1", 1))
	}

	w.Scroll(0, 5, 0, 10, 1, 0)

	assert.Equal(t, "r1", w.GetCell(0, 0).Text())
}

// P6: two consecutive flushes with no intervening events and
// scroll_delta==0 are idempotent.
func TestWindowFlushIdempotentOnNoOp(t *testing.T) {
	w := NewRenderedWindow(2, 0.3, 0, 0)
	w.Resize(80, 24)
	fillGrid(t, w)
	w.Flush()

	before := make([]string, w.ScrollbackLines.Len())
	for i := range before {
		before[i] = w.ScrollbackLines.Get(i).Cell(0).Text()
	}

	w.Flush()

	for i := range before {
		assert.Equal(t, before[i], w.ScrollbackLines.Get(i).Cell(0).Text())
	}
	assert.Equal(t, 0.0, w.ScrollAnim.Position)
}

func TestWindowSubLineOffsetUsesTrunc(t *testing.T) {
	w := NewRenderedWindow(2, 0.3, 0, 0)
	w.ScrollAnim.Position = -1.5
	offset := w.SubLineOffset(20)
	// trunc(-1.5) - (-1.5) = -1 - (-1.5) = 0.5, times cell height 20 => 10.
	assert.Equal(t, 10.0, offset)
}

func TestWindowFlushSnapsScrollBeyondFarScrollBudget(t *testing.T) {
	w := NewRenderedWindow(2, 0.3, 0, 1)
	w.Resize(80, 24)
	fillGrid(t, w)
	w.Flush()

	w.SetViewport(1, 24, 1)
	w.Flush()
	assert.Equal(t, -1.0, w.ScrollAnim.Position, "within budget: animates")

	w.SetViewport(2, 25, 3)
	w.Flush()
	assert.Equal(t, 0.0, w.ScrollAnim.Position, "beyond budget: snaps instead of animating")
}

func TestWindowFlushUnboundedFarScrollBudgetAlwaysAnimates(t *testing.T) {
	w := NewRenderedWindow(2, 0.3, 0, 0)
	w.Resize(80, 24)
	fillGrid(t, w)
	w.Flush()

	w.SetViewport(1, 24, 30)
	w.Flush()
	// Clamped to the inner height (24), not snapped to zero: an unbounded
	// budget never takes the snap branch regardless of delta size.
	assert.Equal(t, -24.0, w.ScrollAnim.Position)
}

func TestWindowHasValidScrollbackFalseWhenNeverScrolled(t *testing.T) {
	w := NewRenderedWindow(2, 0.3, 0, 0)
	w.Resize(80, 24)
	fillGrid(t, w)
	w.Flush()

	assert.False(t, w.HasValidScrollback())
}
