package debugserver

import "github.com/grovetools/nvimgui/engine"

// wireCell is the JSON-serializable form of a GuiCell: the frame's
// CellAccessor closures can't be marshaled directly, so every visible
// cell in a window is materialized into this shape before the frame
// goes out over the wire.
type wireCell struct {
	Text        string `json:"text"`
	Fg          int32  `json:"fg"`
	Bg          int32  `json:"bg"`
	Bold        bool   `json:"bold,omitempty"`
	Italic      bool   `json:"italic,omitempty"`
	Underline   bool   `json:"underline,omitempty"`
	Reverse     bool   `json:"reverse,omitempty"`
	DoubleWidth bool   `json:"doubleWidth,omitempty"`
}

type wireWindow struct {
	ID     int     `json:"id"`
	Type   int     `json:"type"`
	Row    float64 `json:"row"`
	Col    float64 `json:"col"`
	Width  int     `json:"width"`
	Height int     `json:"height"`
	ZIndex int     `json:"zIndex"`
	Cells  [][]wireCell `json:"cells"`
}

type wireCursor struct {
	GridRow   float64 `json:"gridRow"`
	GridCol   float64 `json:"gridCol"`
	ScreenRow int     `json:"screenRow"`
	ScreenCol int     `json:"screenCol"`
	Shape     int     `json:"shape"`
	Color     int32   `json:"color"`
}

type wireFrame struct {
	Roots     []wireWindow `json:"roots"`
	Floats    []wireWindow `json:"floats"`
	HasCursor bool         `json:"hasCursor"`
	Cursor    wireCursor   `json:"cursor,omitempty"`
	Mode      string       `json:"mode"`
	Title     string       `json:"title"`
	Busy      bool         `json:"busy"`
	Exited    bool         `json:"exited"`
}

func toWireFrame(f engine.GuiFrame) wireFrame {
	wf := wireFrame{
		Mode:      f.Mode,
		Title:     f.Title,
		Busy:      f.Busy,
		Exited:    f.Exited,
		HasCursor: f.HasCursor,
	}
	for _, w := range f.Roots {
		wf.Roots = append(wf.Roots, toWireWindow(w))
	}
	for _, w := range f.Floats {
		wf.Floats = append(wf.Floats, toWireWindow(w))
	}
	if f.HasCursor {
		wf.Cursor = wireCursor{
			GridRow:   f.Cursor.GridRow,
			GridCol:   f.Cursor.GridCol,
			ScreenRow: f.Cursor.ScreenRow,
			ScreenCol: f.Cursor.ScreenCol,
			Shape:     int(f.Cursor.Shape),
			Color:     f.Cursor.Color,
		}
	}
	return wf
}

func toWireWindow(w engine.GuiWindow) wireWindow {
	ww := wireWindow{
		ID:     w.ID,
		Type:   int(w.Type),
		Row:    w.Grid.Row,
		Col:    w.Grid.Col,
		Width:  w.Width,
		Height: w.Height,
		ZIndex: w.ZIndex,
	}

	ww.Cells = make([][]wireCell, w.Height)
	for r := 0; r < w.Height; r++ {
		row := make([]wireCell, w.Width)
		for c := 0; c < w.Width; c++ {
			cell := w.Cell(r, c)
			row[c] = wireCell{
				Text:        cell.Text,
				Fg:          cell.Style.Foreground,
				Bg:          cell.Style.Background,
				Bold:        cell.Style.Bold,
				Italic:      cell.Style.Italic,
				Underline:   cell.Style.Underline,
				Reverse:     cell.Style.Reverse,
				DoubleWidth: cell.DoubleWidth,
			}
		}
		ww.Cells[r] = row
	}

	return ww
}
