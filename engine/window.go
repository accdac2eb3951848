package engine

import "math"

// WindowType classifies a RenderedWindow's role.
type WindowType int

const (
	WindowRoot WindowType = iota
	WindowFloating
	WindowMessage
)

// Anchor is a floating window's corner of reference.
type Anchor int

const (
	AnchorNW Anchor = iota
	AnchorNE
	AnchorSW
	AnchorSE
)

// Margins are the fixed, non-scrolling rows/cols at a window's edges.
type Margins struct {
	Top, Bottom, Left, Right int
}

// AnchorInfo records how a floating window was last positioned relative to
// another grid.
type AnchorInfo struct {
	AnchorGrid int
	AnchorLeft float64
	AnchorTop  float64
	Z          int
}

// PendingAnchor is stashed on a floating window whose dimensions are not yet
// known when a float-position event arrives; it is consumed (and cleared)
// by the first resize that establishes non-zero dimensions (I6).
type PendingAnchor struct {
	Anchor     Anchor
	AnchorGrid int
	AnchorRow  float64
	AnchorCol  float64
	ZIndex     int
	CompIndex  uint64
}

// Position is a fractional (col, row) grid-space coordinate.
type Position struct {
	Col, Row float64
}

// RenderedWindow is the per-grid state machine: live content, scrollback,
// scroll animation, position, and lifecycle flags.
type RenderedWindow struct {
	ID         int
	WindowType WindowType

	GridWidth, GridHeight       int
	DisplayWidth, DisplayHeight int

	GridPosition   Position
	TargetPosition Position
	ColSpring      Spring
	RowSpring      Spring

	ZIndex        int
	Anchor        *AnchorInfo
	PendingAnchor *PendingAnchor

	Margins Margins

	ActualLines     *Ring[*Line]
	ScrollbackLines *Ring[*Line]

	ScrollDelta    int
	HasScrolled    bool
	ScrollAnim     Spring
	AnimationLen   float64
	SnapThreshold  float64
	FarScrollLines int

	CompositionOrder uint64

	Valid        bool
	Hidden       bool
	HasPosition  bool
	NeedsContent bool
	Dirty        bool
}

// NewRenderedWindow constructs a window in its initial, dimensionless state.
// animationLen is the configured scroll-animation length in seconds,
// snapThreshold the residual below which the scroll spring snaps to rest,
// and farScrollLines the row count beyond which Flush snaps a scroll
// instead of animating it (§6).
func NewRenderedWindow(id int, animationLen, snapThreshold float64, farScrollLines int) *RenderedWindow {
	return &RenderedWindow{
		ID:             id,
		WindowType:     WindowRoot,
		AnimationLen:   animationLen,
		SnapThreshold:  snapThreshold,
		FarScrollLines: farScrollLines,
		NeedsContent:   true,
	}
}

func (w *RenderedWindow) innerHeight() int {
	return w.GridHeight - w.Margins.Top - w.Margins.Bottom
}

// Resize implements the resize policy of §4.3: a fast in-place width-only
// growth path, a slow path that reallocates both rings, and a scrollback
// rebuild in both cases driven by margins.
func (w *RenderedWindow) Resize(width, height int) {
	if width == w.GridWidth && height == w.GridHeight {
		return
	}

	// Fast path: same height, strictly wider, existing content, not the
	// outer container (grid 1's statusline/tabline cells shift position on
	// resize and must not be preserved blindly).
	if height == w.GridHeight && width > w.GridWidth && w.ActualLines != nil && w.ID != 1 {
		for i := 0; i < height; i++ {
			line := w.ActualLines.Get(i)
			if line == nil {
				continue
			}
			line.ResizeWidth(width, 0)
		}
		w.GridWidth = width
		w.rebuildScrollbackForResize()
		w.finishResize()
		return
	}

	oldLines := w.ActualLines
	oldWidth, oldHeight := w.GridWidth, w.GridHeight
	preserve := w.ID != 1 && oldLines != nil && width >= oldWidth

	next := NewRing[*Line](height)
	for row := 0; row < height; row++ {
		line := NewLine(width)
		if preserve && row < oldHeight {
			old := oldLines.Get(row)
			if old != nil {
				n := oldWidth
				if width < n {
					n = width
				}
				line.CopyFrom(*old, n)
			}
		}
		next.Set(row, &line)
	}

	w.ActualLines = next
	w.GridWidth = width
	w.GridHeight = height
	w.rebuildScrollbackForResize()
	w.finishResize()
}

// rebuildScrollbackForResize allocates a fresh scrollback of length
// 2*inner_height, duplicating the first half into the second half so a
// negative logical index during a scroll-down animation is immediately
// valid (I3, step 4).
func (w *RenderedWindow) rebuildScrollbackForResize() {
	inner := w.innerHeight()
	if inner <= 0 {
		w.ScrollbackLines = nil
		return
	}
	sb := NewRing[*Line](2 * inner)
	for i := 0; i < inner; i++ {
		line := w.ActualLines.Get(w.Margins.Top + i)
		var copy1, copy2 Line
		if line != nil {
			copy1 = line.Clone()
			copy2 = line.Clone()
		} else {
			copy1 = NewLine(w.GridWidth)
			copy2 = NewLine(w.GridWidth)
		}
		sb.Set(i, &copy1)
		sb.Set(inner+i, &copy2)
	}
	w.ScrollbackLines = sb
}

func (w *RenderedWindow) finishResize() {
	w.ScrollDelta = 0
	w.ScrollAnim.Reset()
	w.Dirty = true
	w.Valid = true
}

// ResolvePendingAnchor applies a stashed PendingAnchor if this resize just
// established non-zero dimensions (I6). It is the caller's job (normally
// EditorState, which owns the grid-id -> window lookup) to invoke this
// right after Resize, since RenderedWindow never holds references to
// other windows directly.
func (w *RenderedWindow) ResolvePendingAnchor(lookup anchorLookup) {
	if w.PendingAnchor == nil || w.GridWidth == 0 || w.GridHeight == 0 {
		return
	}
	pending := *w.PendingAnchor
	w.PendingAnchor = nil
	w.applyFloatAnchor(pending, lookup)
}

// SetCell writes a cell into actual_lines at (row, col), growing nothing —
// callers are expected to have resized already.
func (w *RenderedWindow) SetCell(row, col int, c Cell) {
	if w.ActualLines == nil || row < 0 || row >= w.GridHeight {
		return
	}
	line := w.ActualLines.Get(row)
	if line == nil {
		return
	}
	line.SetCell(col, c)
}

// GetCell reads the live grid at (row, col).
func (w *RenderedWindow) GetCell(row, col int) Cell {
	if w.ActualLines == nil || row < 0 || row >= w.GridHeight {
		return BlankCell(0)
	}
	line := w.ActualLines.Get(row)
	if line == nil {
		return BlankCell(0)
	}
	return line.Cell(col)
}

// Clear blanks every cell of the live grid, as happens on grid_clear.
func (w *RenderedWindow) Clear() {
	if w.ActualLines == nil {
		return
	}
	for row := 0; row < w.GridHeight; row++ {
		line := w.ActualLines.Get(row)
		if line == nil {
			continue
		}
		for col := 0; col < line.Width(); col++ {
			line.SetCell(col, BlankCell(0))
		}
	}
	w.Dirty = true
}

// Scroll moves a rectangular region of the live grid. It never touches the
// scroll animation — that is driven solely by viewport events (§9, sign
// conventions). A full-grid vertical-only scroll rotates the ring in O(1);
// everything else is a row-by-row copy within the region.
func (w *RenderedWindow) Scroll(top, bot, left, right, rows, cols int) {
	if w.ActualLines == nil {
		return
	}
	fullWidth := left == 0 && right >= w.GridWidth
	fullRegion := top == 0 && bot >= w.GridHeight && fullWidth
	if fullRegion && cols == 0 {
		w.ActualLines.Rotate(rows)
		w.Dirty = true
		return
	}

	if rows > 0 {
		for r := top; r < bot-rows; r++ {
			w.copyRowRegion(r, r+rows, left, right)
		}
		w.clearRowRegion(bot-rows, bot, left, right)
	} else if rows < 0 {
		absRows := -rows
		for r := bot - 1; r >= top+absRows; r-- {
			w.copyRowRegion(r, r-absRows, left, right)
		}
		w.clearRowRegion(top, top+absRows, left, right)
	}

	if cols != 0 {
		w.scrollCols(top, bot, left, right, cols)
	}
	w.Dirty = true
}

func (w *RenderedWindow) copyRowRegion(dstRow, srcRow, left, right int) {
	dst := w.ActualLines.Get(dstRow)
	src := w.ActualLines.Get(srcRow)
	if dst == nil || src == nil {
		return
	}
	for c := left; c < right; c++ {
		dst.SetCell(c, src.Cell(c))
	}
}

func (w *RenderedWindow) clearRowRegion(fromRow, toRow, left, right int) {
	for r := fromRow; r < toRow; r++ {
		line := w.ActualLines.Get(r)
		if line == nil {
			continue
		}
		for c := left; c < right; c++ {
			line.SetCell(c, BlankCell(0))
		}
	}
}

func (w *RenderedWindow) scrollCols(top, bot, left, right, cols int) {
	for r := top; r < bot; r++ {
		line := w.ActualLines.Get(r)
		if line == nil {
			continue
		}
		if cols > 0 {
			for c := left; c < right-cols; c++ {
				line.SetCell(c, line.Cell(c+cols))
			}
			for c := right - cols; c < right; c++ {
				line.SetCell(c, BlankCell(0))
			}
		} else {
			absCols := -cols
			for c := right - 1; c >= left+absCols; c-- {
				line.SetCell(c, line.Cell(c-absCols))
			}
			for c := left; c < left+absCols; c++ {
				line.SetCell(c, BlankCell(0))
			}
		}
	}
}

// SetViewport records a pending scroll delta (§4.3). A zero delta is a
// confirmation event and must not clobber a pending non-zero delta (I4).
func (w *RenderedWindow) SetViewport(topline, botline, scrollDelta int) {
	if scrollDelta != 0 {
		w.ScrollDelta = scrollDelta
		w.HasScrolled = true
	}
}

// SetViewportMargins updates the fixed non-scrolling frame. The actual
// scrollback rebuild this may require happens lazily in Flush (P5).
func (w *RenderedWindow) SetViewportMargins(m Margins) {
	w.Margins = m
}

// Flush implements the flush protocol of §4.3.
func (w *RenderedWindow) Flush() {
	innerTop := w.Margins.Top
	innerBottom := w.GridHeight - w.Margins.Bottom
	inner := innerBottom - innerTop
	if inner <= 0 {
		return
	}

	if w.ScrollbackLines == nil || w.ScrollbackLines.Len() != 2*inner {
		w.rebuildScrollbackForResize()
		w.ScrollDelta = 0
		w.ScrollAnim.Reset()
		return
	}

	d := w.ScrollDelta
	w.ScrollDelta = 0

	if d != 0 {
		w.ScrollbackLines.Rotate(d)
	}

	for i := 0; i < inner; i++ {
		src := w.ActualLines.Get(innerTop + i)
		dst := w.ScrollbackLines.Get(i)
		if dst == nil {
			line := NewLine(w.GridWidth)
			dst = &line
			w.ScrollbackLines.Set(i, dst)
		}
		if src != nil {
			dst.CopyFrom(*src, w.GridWidth)
		}
	}

	if d != 0 {
		far := w.FarScrollLines > 0 && (d > w.FarScrollLines || -d > w.FarScrollLines)
		if far {
			// Beyond the configured budget a scroll snaps straight to its
			// destination instead of animating: the scrollback rotation
			// above already lines content up, so resting the spring at
			// rest leaves the window showing its settled content this
			// frame rather than riding in from one end.
			w.ScrollAnim.Reset()
		} else {
			newPos := w.ScrollAnim.Position - float64(d)
			if newPos > float64(inner) {
				newPos = float64(inner)
			}
			if newPos < -float64(inner) {
				newPos = -float64(inner)
			}
			w.ScrollAnim.Position = newPos
		}
	}

	w.NeedsContent = false
}

// GetScrollCell reads the scrollback at a logical inner row during
// animation. innerRow may be -1 to read the extra row above the viewport.
func (w *RenderedWindow) GetScrollCell(innerRow, col int) Cell {
	if w.ScrollbackLines == nil {
		return BlankCell(0)
	}
	idx := int(math.Trunc(w.ScrollAnim.Position)) + innerRow
	line := w.ScrollbackLines.Get(idx)
	if line == nil {
		return BlankCell(0)
	}
	return line.Cell(col)
}

// SubLineOffset is the fractional pixel offset to apply when rendering
// scrollback content: positive when content should shift down on screen.
func (w *RenderedWindow) SubLineOffset(cellHeight float64) float64 {
	pos := w.ScrollAnim.Position
	return (math.Trunc(pos) - pos) * cellHeight
}

// HasValidScrollback reports whether the scrollback ring currently holds
// renderable content, per §4.3: a window that never observed a scroll
// delta (e.g. a permanent side panel) must not animate, to avoid
// statusline jitter.
func (w *RenderedWindow) HasValidScrollback() bool {
	if !w.HasScrolled || w.ScrollbackLines == nil {
		return false
	}
	first := w.ScrollbackLines.Get(0)
	if first == nil || first.Width() == 0 {
		return false
	}
	pos := w.ScrollAnim.Position
	if pos != 0 {
		at := w.ScrollbackLines.Get(int(math.Trunc(pos)))
		if at == nil {
			return false
		}
	}
	return true
}

// Animate advances the scroll spring and reports whether it is still
// moving. Window position is never spring-animated (§4.3): it snaps.
func (w *RenderedWindow) Animate(dt float64) bool {
	length := w.AnimationLen
	if length <= 0 {
		length = 0.3
	}
	return w.ScrollAnim.Update(dt, length, w.SnapThreshold)
}

// anchorLookup looks up another window by id, used only for anchor
// position math; RenderedWindow never holds a direct pointer to another
// window (see DESIGN.md: windows reference each other only by id).
type anchorLookup func(id int) (*RenderedWindow, bool)

// SetFloatPosition resolves a floating window's position given its anchor
// (§4.3). If this window's dimensions are not yet known, the request is
// stashed as a PendingAnchor and applied on the next resize (I6).
func (w *RenderedWindow) SetFloatPosition(anchor Anchor, anchorGrid int, anchorRow, anchorCol float64, zindex int, compIndex uint64, lookup anchorLookup) {
	w.WindowType = WindowFloating
	pending := PendingAnchor{
		Anchor:     anchor,
		AnchorGrid: anchorGrid,
		AnchorRow:  anchorRow,
		AnchorCol:  anchorCol,
		ZIndex:     zindex,
		CompIndex:  compIndex,
	}
	if w.GridWidth == 0 && w.GridHeight == 0 {
		w.PendingAnchor = &pending
		return
	}
	w.applyFloatAnchor(pending, lookup)
}

func (w *RenderedWindow) applyFloatAnchor(p PendingAnchor, lookup anchorLookup) {
	anchorPos := Position{}
	if base, ok := lookup(p.AnchorGrid); ok {
		anchorPos = base.GridPosition
	}

	left := p.AnchorCol
	top := p.AnchorRow

	switch p.Anchor {
	case AnchorNW:
		// no adjustment
	case AnchorNE:
		left = p.AnchorCol - float64(w.GridWidth)
	case AnchorSW:
		top = p.AnchorRow - float64(w.GridHeight)
	case AnchorSE:
		left = p.AnchorCol - float64(w.GridWidth)
		top = p.AnchorRow - float64(w.GridHeight)
	}

	left += anchorPos.Col
	top += anchorPos.Row
	if left < 0 {
		left = 0
	}
	if top < 0 {
		top = 0
	}

	w.GridPosition = Position{Col: left, Row: top}
	w.TargetPosition = w.GridPosition
	w.ZIndex = p.ZIndex
	w.WindowType = WindowFloating
	w.Anchor = &AnchorInfo{AnchorGrid: p.AnchorGrid, AnchorLeft: anchorPos.Col, AnchorTop: anchorPos.Row, Z: p.ZIndex}
	w.HasPosition = true
}

// SetPosition positions a non-floating window (win_pos), snapping
// immediately: window-position animation is currently bypassed (§6).
func (w *RenderedWindow) SetPosition(row, col float64) {
	w.GridPosition = Position{Col: col, Row: row}
	w.TargetPosition = w.GridPosition
	w.HasPosition = true
}
