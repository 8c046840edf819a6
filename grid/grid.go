package grid

// Default geometry in abstract units. The terminal front end overrides
// these with character-cell sizes at construction. Minimum extents are
// fractions of the default so resizing clamps sensibly at either scale.
const (
	defaultColWidth  = 100.0
	defaultRowHeight = 25.0

	minColFrac = 0.2
	minRowFrac = 0.6
)

// Grid is a sparse, bounded cell store plus row/column geometry. Only
// positions that have been written or styled hold an entry in the map;
// everything else reads as an empty cell.
//
// Grid is not safe for concurrent use. All derived state (viewport
// ranges) is pull-based: callers recompute it after mutating.
type Grid struct {
	rows, cols int
	cells      map[Pos]*Cell

	Columns []Column

	colWidths  []float64
	rowHeights []float64

	defColWidth  float64
	defRowHeight float64

	RowHeaderWidth  float64
	ColHeaderHeight float64
	ShowHeaders     bool

	// Sort state. SortColumn is -1 when unsorted. SortKeys is the
	// multi-column sort list; it is mutually exclusive with plain
	// single-column sort (each clears the other's effect).
	SortColumn    int
	SortAscending bool
	SortKeys      []SortKey

	FrozenRows int
	FrozenCols int

	// Rows hidden by the active filter.
	filtered map[int]struct{}

	ReadOnly           bool
	ShowGridLines      bool
	AlternateRowColors bool
	RowSelection       bool
	ColSelection       bool
}

// New creates a grid with the given dimensions and default geometry.
func New(rows, cols int) *Grid {
	return NewSized(rows, cols, defaultColWidth, defaultRowHeight)
}

// NewSized creates a grid with explicit default column width and row
// height (the terminal shell passes character-cell units here).
func NewSized(rows, cols int, colWidth, rowHeight float64) *Grid {
	g := &Grid{
		rows:            rows,
		cols:            cols,
		cells:           make(map[Pos]*Cell),
		Columns:         make([]Column, cols),
		colWidths:       make([]float64, cols),
		rowHeights:      make([]float64, rows),
		defColWidth:     colWidth,
		defRowHeight:    rowHeight,
		RowHeaderWidth:  60,
		ColHeaderHeight: 30,
		ShowHeaders:     true,
		SortColumn:      -1,
		SortAscending:   true,
		filtered:        make(map[int]struct{}),
		ShowGridLines:   true,
		RowSelection:    true,
		ColSelection:    true,
	}
	for i := range g.Columns {
		c := defaultColumn(i)
		c.Width = colWidth
		g.Columns[i] = c
		g.colWidths[i] = colWidth
	}
	for i := range g.rowHeights {
		g.rowHeights[i] = rowHeight
	}
	return g
}

func (g *Grid) RowCount() int { return g.rows }
func (g *Grid) ColCount() int { return g.cols }

// InBounds reports whether (row, col) is a valid position.
func (g *Grid) InBounds(row, col int) bool {
	return row >= 0 && row < g.rows && col >= 0 && col < g.cols
}

// Cell returns the stored cell at (row, col), or nil if the position
// has never been written.
func (g *Grid) Cell(row, col int) *Cell {
	return g.cells[Pos{row, col}]
}

// CellOrNew returns the cell at (row, col), creating a default one if
// absent. Returns nil out of bounds.
func (g *Grid) CellOrNew(row, col int) *Cell {
	if !g.InBounds(row, col) {
		return nil
	}
	p := Pos{row, col}
	c := g.cells[p]
	if c == nil {
		c = NewCell(Empty())
		g.cells[p] = c
	}
	return c
}

// SetCell stores a cell at (row, col). Out-of-bounds writes are ignored.
func (g *Grid) SetCell(row, col int, c *Cell) {
	if g.InBounds(row, col) {
		g.cells[Pos{row, col}] = c
	}
}

// Value returns the value at (row, col). Missing cells read as Empty.
func (g *Grid) Value(row, col int) Value {
	if c := g.cells[Pos{row, col}]; c != nil {
		return c.Value
	}
	return Empty()
}

// SetValue writes a value at (row, col), creating the cell if needed
// and marking it modified when the value actually changes.
// Out-of-bounds writes are silently ignored.
func (g *Grid) SetValue(row, col int, v Value) {
	c := g.CellOrNew(row, col)
	if c == nil {
		return
	}
	if !c.Value.Equal(v) {
		c.Modified = true
	}
	c.Value = v
}

// ValueString returns the display text of the value at (row, col).
func (g *Grid) ValueString(row, col int) string {
	return g.Value(row, col).String()
}

func (g *Grid) ColWidth(col int) float64 {
	if col >= 0 && col < g.cols {
		return g.colWidths[col]
	}
	return g.defColWidth
}

func (g *Grid) SetColWidth(col int, w float64) {
	if col >= 0 && col < g.cols {
		g.colWidths[col] = max(w, g.defColWidth*minColFrac)
	}
}

// SetDefaultGeometry rebases the grid's unit system. Column widths and
// row heights scale proportionally, so a column resized to 1.5x the old
// default stays 1.5x the new one.
func (g *Grid) SetDefaultGeometry(colWidth, rowHeight float64) {
	if colWidth <= 0 || rowHeight <= 0 {
		return
	}
	cw := colWidth / g.defColWidth
	rh := rowHeight / g.defRowHeight
	for i := range g.colWidths {
		g.colWidths[i] *= cw
		g.Columns[i].Width = g.colWidths[i]
	}
	for i := range g.rowHeights {
		g.rowHeights[i] *= rh
	}
	g.defColWidth = colWidth
	g.defRowHeight = rowHeight
}

func (g *Grid) RowHeight(row int) float64 {
	if row >= 0 && row < g.rows {
		return g.rowHeights[row]
	}
	return g.defRowHeight
}

func (g *Grid) SetRowHeight(row int, h float64) {
	if row >= 0 && row < g.rows {
		g.rowHeights[row] = max(h, g.defRowHeight*minRowFrac)
	}
}

// ColX returns the x position of the left edge of col in content space.
func (g *Grid) ColX(col int) float64 {
	x := 0.0
	for c := 0; c < col && c < g.cols; c++ {
		x += g.colWidths[c]
	}
	return x
}

// RowY returns the y position of the top edge of row in content space.
func (g *Grid) RowY(row int) float64 {
	y := 0.0
	for r := 0; r < row && r < g.rows; r++ {
		y += g.rowHeights[r]
	}
	return y
}

func (g *Grid) TotalWidth() float64 {
	w := 0.0
	for _, cw := range g.colWidths {
		w += cw
	}
	return w
}

func (g *Grid) TotalHeight() float64 {
	h := 0.0
	for _, rh := range g.rowHeights {
		h += rh
	}
	return h
}

// Resize changes the grid dimensions. Cells outside the new bounds are
// discarded; this is destructive and not recorded anywhere.
func (g *Grid) Resize(rows, cols int) {
	if rows < 1 || cols < 1 {
		return
	}
	for p := range g.cells {
		if p.Row >= rows || p.Col >= cols {
			delete(g.cells, p)
		}
	}
	for len(g.colWidths) < cols {
		g.colWidths = append(g.colWidths, g.defColWidth)
		c := defaultColumn(len(g.Columns))
		c.Width = g.defColWidth
		g.Columns = append(g.Columns, c)
	}
	g.colWidths = g.colWidths[:cols]
	g.Columns = g.Columns[:cols]
	for len(g.rowHeights) < rows {
		g.rowHeights = append(g.rowHeights, g.defRowHeight)
	}
	g.rowHeights = g.rowHeights[:rows]
	g.rows, g.cols = rows, cols
}

// Clear removes every stored cell. Geometry and config are kept.
func (g *Grid) Clear() {
	g.cells = make(map[Pos]*Cell)
}

// CellCount returns the number of populated cells.
func (g *Grid) CellCount() int { return len(g.cells) }

// Each calls fn for every populated cell. Iteration order is unspecified.
func (g *Grid) Each(fn func(Pos, *Cell)) {
	for p, c := range g.cells {
		fn(p, c)
	}
}

// InsertRow inserts an empty row before at. Keys at or below shift down
// by one. at > RowCount is ignored.
func (g *Grid) InsertRow(at int) {
	if at < 0 || at > g.rows {
		return
	}
	moved := make(map[Pos]*Cell, len(g.cells))
	for p, c := range g.cells {
		if p.Row >= at {
			p.Row++
		}
		moved[p] = c
	}
	g.cells = moved
	g.rowHeights = append(g.rowHeights, 0)
	copy(g.rowHeights[at+1:], g.rowHeights[at:])
	g.rowHeights[at] = g.defRowHeight
	g.rows++
}

// DeleteRow removes row i. Deleting the last remaining row or an
// out-of-bounds index is ignored.
func (g *Grid) DeleteRow(i int) {
	if i < 0 || i >= g.rows || g.rows <= 1 {
		return
	}
	moved := make(map[Pos]*Cell, len(g.cells))
	for p, c := range g.cells {
		switch {
		case p.Row == i:
			continue
		case p.Row > i:
			p.Row--
		}
		moved[p] = c
	}
	g.cells = moved
	g.rowHeights = append(g.rowHeights[:i], g.rowHeights[i+1:]...)
	g.rows--
}

// InsertColumn inserts an empty column before at. at > ColCount is
// ignored.
func (g *Grid) InsertColumn(at int) {
	if at < 0 || at > g.cols {
		return
	}
	moved := make(map[Pos]*Cell, len(g.cells))
	for p, c := range g.cells {
		if p.Col >= at {
			p.Col++
		}
		moved[p] = c
	}
	g.cells = moved
	g.colWidths = append(g.colWidths, 0)
	copy(g.colWidths[at+1:], g.colWidths[at:])
	g.colWidths[at] = g.defColWidth
	g.Columns = append(g.Columns, Column{})
	copy(g.Columns[at+1:], g.Columns[at:])
	c := defaultColumn(at)
	c.Width = g.defColWidth
	g.Columns[at] = c
	g.cols++
}

// DeleteColumn removes column i. Deleting the last remaining column or
// an out-of-bounds index is ignored.
func (g *Grid) DeleteColumn(i int) {
	if i < 0 || i >= g.cols || g.cols <= 1 {
		return
	}
	moved := make(map[Pos]*Cell, len(g.cells))
	for p, c := range g.cells {
		switch {
		case p.Col == i:
			continue
		case p.Col > i:
			p.Col--
		}
		moved[p] = c
	}
	g.cells = moved
	g.colWidths = append(g.colWidths[:i], g.colWidths[i+1:]...)
	g.Columns = append(g.Columns[:i], g.Columns[i+1:]...)
	g.cols--
}

// ColCell pairs a column index with a cell snapshot, used by the edit
// log to capture a row's content.
type ColCell struct {
	Col  int
	Cell Cell
}

// RowCell pairs a row index with a cell snapshot.
type RowCell struct {
	Row  int
	Cell Cell
}

// RowCells snapshots all populated cells of a row.
func (g *Grid) RowCells(row int) []ColCell {
	var out []ColCell
	for p, c := range g.cells {
		if p.Row == row {
			out = append(out, ColCell{p.Col, *c})
		}
	}
	return out
}

// ColumnCells snapshots all populated cells of a column.
func (g *Grid) ColumnCells(col int) []RowCell {
	var out []RowCell
	for p, c := range g.cells {
		if p.Col == col {
			out = append(out, RowCell{p.Row, *c})
		}
	}
	return out
}

// RestoreRowCells writes a row snapshot back into the store.
func (g *Grid) RestoreRowCells(row int, cells []ColCell) {
	for _, cc := range cells {
		c := cc.Cell
		g.cells[Pos{row, cc.Col}] = &c
	}
}

// RestoreColumnCells writes a column snapshot back into the store.
func (g *Grid) RestoreColumnCells(col int, cells []RowCell) {
	for _, rc := range cells {
		c := rc.Cell
		g.cells[Pos{rc.Row, col}] = &c
	}
}

// FrozenRowExtent returns the cumulative height of the frozen row
// prefix, the y boundary between the fixed and scrolling regions.
func (g *Grid) FrozenRowExtent() float64 {
	y := 0.0
	for r := 0; r < g.FrozenRows && r < g.rows; r++ {
		y += g.rowHeights[r]
	}
	return y
}

// FrozenColExtent returns the cumulative width of the frozen column
// prefix.
func (g *Grid) FrozenColExtent() float64 {
	x := 0.0
	for c := 0; c < g.FrozenCols && c < g.cols; c++ {
		x += g.colWidths[c]
	}
	return x
}

// IsRowEmpty reports whether a row holds no non-empty values.
func (g *Grid) IsRowEmpty(row int) bool {
	for p, c := range g.cells {
		if p.Row == row && !c.Value.IsEmpty() {
			return false
		}
	}
	return true
}

// SwapRows exchanges the values, styles and heights of two rows.
// Used by move-row-up/down; out-of-bounds pairs are ignored.
func (g *Grid) SwapRows(a, b int) {
	if a == b || a < 0 || b < 0 || a >= g.rows || b >= g.rows {
		return
	}
	moved := make(map[Pos]*Cell, len(g.cells))
	for p, c := range g.cells {
		switch p.Row {
		case a:
			p.Row = b
		case b:
			p.Row = a
		}
		moved[p] = c
	}
	g.cells = moved
	g.rowHeights[a], g.rowHeights[b] = g.rowHeights[b], g.rowHeights[a]
}

// ModifiedCount returns the number of cells flagged as modified.
func (g *Grid) ModifiedCount() int {
	n := 0
	for _, c := range g.cells {
		if c.Modified {
			n++
		}
	}
	return n
}

// ClearModified resets the modified flag on every cell.
func (g *Grid) ClearModified() {
	for _, c := range g.cells {
		c.Modified = false
	}
}
