package grid

import "sort"

// Action is one invertible mutation record. Undo applies the stored
// old state; redo re-applies the new state. Structural actions nudge
// the viewport's visible range since row/column counts changed.
type Action interface {
	undo(g *Grid, v *Viewport)
	redo(g *Grid, v *Viewport)
}

// ValueChange captures one cell's value transition.
type ValueChange struct {
	Row, Col int
	Old, New Value
}

// CellClear captures one cell's value before a bulk clear.
type CellClear struct {
	Row, Col int
	Old      Value
}

// RowSnapshot captures a row index with its populated cells.
type RowSnapshot struct {
	Index int
	Cells []ColCell
}

// SetValueAction records a single-cell value write.
type SetValueAction struct {
	Row, Col int
	Old, New Value
}

func (a SetValueAction) undo(g *Grid, _ *Viewport) { g.SetValue(a.Row, a.Col, a.Old) }
func (a SetValueAction) redo(g *Grid, _ *Viewport) { g.SetValue(a.Row, a.Col, a.New) }

// InsertRowAction records a row insertion. Cells holds the row content
// at capture time so redo after an intervening undo restores it.
type InsertRowAction struct {
	Index int
	Cells []ColCell
}

func (a InsertRowAction) undo(g *Grid, v *Viewport) {
	g.DeleteRow(a.Index)
	v.UpdateVisibleRange(g)
}

func (a InsertRowAction) redo(g *Grid, v *Viewport) {
	g.InsertRow(a.Index)
	g.RestoreRowCells(a.Index, a.Cells)
	v.UpdateVisibleRange(g)
}

// DeleteRowAction records a row deletion with its full content.
type DeleteRowAction struct {
	Index int
	Cells []ColCell
}

func (a DeleteRowAction) undo(g *Grid, v *Viewport) {
	g.InsertRow(a.Index)
	g.RestoreRowCells(a.Index, a.Cells)
	v.UpdateVisibleRange(g)
}

func (a DeleteRowAction) redo(g *Grid, v *Viewport) {
	g.DeleteRow(a.Index)
	v.UpdateVisibleRange(g)
}

// InsertColumnAction records a column insertion.
type InsertColumnAction struct {
	Index int
	Cells []RowCell
}

func (a InsertColumnAction) undo(g *Grid, v *Viewport) {
	g.DeleteColumn(a.Index)
	v.UpdateVisibleRange(g)
}

func (a InsertColumnAction) redo(g *Grid, v *Viewport) {
	g.InsertColumn(a.Index)
	g.RestoreColumnCells(a.Index, a.Cells)
	v.UpdateVisibleRange(g)
}

// DeleteColumnAction records a column deletion with its full content.
type DeleteColumnAction struct {
	Index int
	Cells []RowCell
}

func (a DeleteColumnAction) undo(g *Grid, v *Viewport) {
	g.InsertColumn(a.Index)
	g.RestoreColumnCells(a.Index, a.Cells)
	v.UpdateVisibleRange(g)
}

func (a DeleteColumnAction) redo(g *Grid, v *Viewport) {
	g.DeleteColumn(a.Index)
	v.UpdateVisibleRange(g)
}

// DeleteRowsAction records a bulk row deletion as one atomic entry.
// Rows are ordered as captured (ascending index); undo re-inserts in
// that order, redo deletes bottom-up to keep indices stable.
type DeleteRowsAction struct {
	Rows []RowSnapshot
}

func (a DeleteRowsAction) undo(g *Grid, v *Viewport) {
	for _, r := range a.Rows {
		g.InsertRow(r.Index)
		g.RestoreRowCells(r.Index, r.Cells)
	}
	v.UpdateVisibleRange(g)
}

func (a DeleteRowsAction) redo(g *Grid, v *Viewport) {
	idx := make([]int, len(a.Rows))
	for i, r := range a.Rows {
		idx[i] = r.Index
	}
	sort.Sort(sort.Reverse(sort.IntSlice(idx)))
	for _, i := range idx {
		g.DeleteRow(i)
	}
	v.UpdateVisibleRange(g)
}

// ClearCellsAction records a bulk clear (delete key, cut).
type ClearCellsAction struct {
	Cells []CellClear
}

func (a ClearCellsAction) undo(g *Grid, _ *Viewport) {
	for _, c := range a.Cells {
		g.SetValue(c.Row, c.Col, c.Old)
	}
}

func (a ClearCellsAction) redo(g *Grid, _ *Viewport) {
	for _, c := range a.Cells {
		g.SetValue(c.Row, c.Col, Empty())
	}
}

// SetCellsAction records a bulk value write (paste, replace-all).
type SetCellsAction struct {
	Cells []ValueChange
}

func (a SetCellsAction) undo(g *Grid, _ *Viewport) {
	for _, c := range a.Cells {
		g.SetValue(c.Row, c.Col, c.Old)
	}
}

func (a SetCellsAction) redo(g *Grid, _ *Viewport) {
	for _, c := range a.Cells {
		g.SetValue(c.Row, c.Col, c.New)
	}
}

// SetStyleAction records a single-cell style change.
type SetStyleAction struct {
	Row, Col int
	Old, New Style
}

func (a SetStyleAction) undo(g *Grid, _ *Viewport) {
	if c := g.Cell(a.Row, a.Col); c != nil {
		c.Style = a.Old
	}
}

func (a SetStyleAction) redo(g *Grid, _ *Viewport) {
	if c := g.CellOrNew(a.Row, a.Col); c != nil {
		c.Style = a.New
	}
}

// EditLog is the undo/redo history: two stacks of actions. Recording a
// new action invalidates everything on the redo stack.
type EditLog struct {
	undos []Action
	redos []Action
}

func NewEditLog() *EditLog {
	return &EditLog{}
}

// Record pushes an action onto the undo stack and clears redo.
func (l *EditLog) Record(a Action) {
	l.undos = append(l.undos, a)
	l.redos = l.redos[:0]
}

// Undo reverts the most recent action. Reports false when the stack is
// empty.
func (l *EditLog) Undo(g *Grid, v *Viewport) bool {
	if len(l.undos) == 0 {
		return false
	}
	a := l.undos[len(l.undos)-1]
	l.undos = l.undos[:len(l.undos)-1]
	a.undo(g, v)
	l.redos = append(l.redos, a)
	return true
}

// Redo re-applies the most recently undone action.
func (l *EditLog) Redo(g *Grid, v *Viewport) bool {
	if len(l.redos) == 0 {
		return false
	}
	a := l.redos[len(l.redos)-1]
	l.redos = l.redos[:len(l.redos)-1]
	a.redo(g, v)
	l.undos = append(l.undos, a)
	return true
}

func (l *EditLog) CanUndo() bool { return len(l.undos) > 0 }
func (l *EditLog) CanRedo() bool { return len(l.redos) > 0 }

// ClearHistory drops both stacks.
func (l *EditLog) ClearHistory() {
	l.undos = nil
	l.redos = nil
}

// CellStyle returns the style of a cell for undo capture, zero if the
// cell is absent.
func CellStyle(g *Grid, row, col int) Style {
	if c := g.Cell(row, col); c != nil {
		return c.Style
	}
	return Style{}
}
