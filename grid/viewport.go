package grid

// Viewport tracks the scroll position and visible row/column range over
// a grid's geometry. The visible range is derived state: callers must
// invoke UpdateVisibleRange after anything that moves the scroll or
// changes geometry. Nothing here auto-invalidates.
type Viewport struct {
	CanvasWidth  float64
	CanvasHeight float64
	ScrollX      float64
	ScrollY      float64

	// Inclusive visible bounds, valid after UpdateVisibleRange.
	FirstRow, LastRow int
	FirstCol, LastCol int
}

func NewViewport(width, height float64) *Viewport {
	return &Viewport{CanvasWidth: width, CanvasHeight: height}
}

// Resize updates the canvas dimensions.
func (v *Viewport) Resize(width, height float64) {
	v.CanvasWidth = width
	v.CanvasHeight = height
}

// SetScroll moves the scroll position, clamped to
// [0, content extent - canvas extent].
func (v *Viewport) SetScroll(x, y float64, g *Grid) {
	maxX := max(g.TotalWidth()-v.CanvasWidth, 0)
	maxY := max(g.TotalHeight()-v.CanvasHeight, 0)
	v.ScrollX = min(max(x, 0), maxX)
	v.ScrollY = min(max(y, 0), maxY)
}

// ScrollBy moves the scroll position by a delta, clamped.
func (v *Viewport) ScrollBy(dx, dy float64, g *Grid) {
	v.SetScroll(v.ScrollX+dx, v.ScrollY+dy, g)
}

// UpdateVisibleRange recomputes the first/last visible row and column
// by walking the geometry arrays cumulatively. Linear in row/column
// count; runs once per scroll or structural event, not per frame.
func (v *Viewport) UpdateVisibleRange(g *Grid) {
	v.FirstRow = 0
	v.LastRow = max(g.RowCount()-1, 0)
	y := 0.0
	foundFirst := false
	for row := 0; row < g.RowCount(); row++ {
		h := g.RowHeight(row)
		if !foundFirst && y+h > v.ScrollY {
			v.FirstRow = row
			foundFirst = true
		}
		if y > v.ScrollY+v.CanvasHeight {
			v.LastRow = row
			break
		}
		y += h
	}

	v.FirstCol = 0
	v.LastCol = max(g.ColCount()-1, 0)
	x := 0.0
	foundFirst = false
	for col := 0; col < g.ColCount(); col++ {
		w := g.ColWidth(col)
		if !foundFirst && x+w > v.ScrollX {
			v.FirstCol = col
			foundFirst = true
		}
		if x > v.ScrollX+v.CanvasWidth {
			v.LastCol = col
			break
		}
		x += w
	}
}

func (v *Viewport) VisibleRows() int {
	if v.LastRow < v.FirstRow {
		return 0
	}
	return v.LastRow - v.FirstRow + 1
}

func (v *Viewport) VisibleCols() int {
	if v.LastCol < v.FirstCol {
		return 0
	}
	return v.LastCol - v.FirstCol + 1
}

// CanvasToCell maps a canvas point to the cell under it, subtracting
// header offsets and the scroll position. Reports false if the point
// falls outside every row or column band.
func (v *Viewport) CanvasToCell(canvasX, canvasY float64, g *Grid) (Pos, bool) {
	var offX, offY float64
	if g.ShowHeaders {
		offX = g.RowHeaderWidth
		offY = g.ColHeaderHeight
	}
	gx := canvasX - offX + v.ScrollX
	gy := canvasY - offY + v.ScrollY

	row := -1
	y := 0.0
	for r := 0; r < g.RowCount(); r++ {
		h := g.RowHeight(r)
		if gy >= y && gy < y+h {
			row = r
			break
		}
		y += h
	}

	col := -1
	x := 0.0
	for c := 0; c < g.ColCount(); c++ {
		w := g.ColWidth(c)
		if gx >= x && gx < x+w {
			col = c
			break
		}
		x += w
	}

	if row < 0 || col < 0 {
		return Pos{}, false
	}
	return Pos{row, col}, true
}

// CellToCanvas returns the canvas position of a cell's top-left corner.
func (v *Viewport) CellToCanvas(row, col int, g *Grid) (x, y float64) {
	return g.ColX(col) - v.ScrollX, g.RowY(row) - v.ScrollY
}

// IsCellVisible reports whether a cell lies in the current visible range.
func (v *Viewport) IsCellVisible(row, col int) bool {
	return row >= v.FirstRow && row <= v.LastRow &&
		col >= v.FirstCol && col <= v.LastCol
}

// EnsureVisible adjusts the scroll minimally so the cell's band fits
// inside the canvas area left of the headers, and recomputes the
// visible range if the scroll moved. Reports whether it scrolled.
func (v *Viewport) EnsureVisible(row, col int, g *Grid) bool {
	var offX, offY float64
	if g.ShowHeaders {
		offX = g.RowHeaderWidth
		offY = g.ColHeaderHeight
	}
	viewW := v.CanvasWidth - offX
	viewH := v.CanvasHeight - offY

	cellX := g.ColX(col)
	cellY := g.RowY(row)
	cellW := g.ColWidth(col)
	cellH := g.RowHeight(row)

	sx, sy := v.ScrollX, v.ScrollY
	if cellX < sx {
		sx = cellX
	} else if cellX+cellW > sx+viewW {
		sx = cellX + cellW - viewW
	}
	if cellY < sy {
		sy = cellY
	} else if cellY+cellH > sy+viewH {
		sy = cellY + cellH - viewH
	}

	if sx == v.ScrollX && sy == v.ScrollY {
		return false
	}
	v.SetScroll(sx, sy, g)
	v.UpdateVisibleRange(g)
	return true
}
