package app

import (
	"fmt"
	"strings"

	"gridview/clipboardx"
	"gridview/grid"

	"github.com/mattn/go-runewidth"
)

func (a *App) clampPos(p grid.Pos) grid.Pos {
	p.Row = min(max(p.Row, 0), a.grid.RowCount()-1)
	p.Col = min(max(p.Col, 0), a.grid.ColCount()-1)
	return p
}

// setActive moves the active cell, extending the selection from the
// anchor when extend is set, and scrolls it into view.
func (a *App) setActive(p grid.Pos, extend bool) {
	p = a.clampPos(p)
	if extend {
		a.sel.SelectRange(p, a.grid)
	} else {
		a.sel.SelectSingle(p)
	}
	a.active = p
	a.view.EnsureVisible(p.Row, p.Col, a.grid)
}

// moveActive steps the active cell. Vertical moves hop over rows the
// filter hides.
func (a *App) moveActive(dr, dc int, extend bool) {
	p := a.active
	p.Col += dc
	if dr != 0 {
		p.Row = a.nextVisibleRow(p.Row, dr)
	}
	a.setActive(p, extend)
}

// nextVisibleRow walks dir steps of unfiltered rows from row, staying
// put when none remain in that direction.
func (a *App) nextVisibleRow(row, dir int) int {
	steps := dir
	if steps < 0 {
		steps = -steps
	}
	unit := 1
	if dir < 0 {
		unit = -1
	}
	cur := row
	for i := 0; i < steps; i++ {
		next := cur + unit
		for next >= 0 && next < a.grid.RowCount() && a.grid.IsRowFiltered(next) {
			next += unit
		}
		if next < 0 || next >= a.grid.RowCount() {
			break
		}
		cur = next
	}
	return cur
}

// pageRows is the vertical page size: the grid body height in rows.
func (a *App) pageRows() int {
	h := int(a.view.CanvasHeight)
	if a.grid.ShowHeaders {
		h -= int(a.grid.ColHeaderHeight)
	}
	if h < 1 {
		h = 1
	}
	return h
}

func (a *App) canEdit(row, col int) bool {
	if a.grid.ReadOnly {
		return false
	}
	if !a.grid.Column(col).Editable {
		return false
	}
	if c := a.grid.Cell(row, col); c != nil && !c.Editable {
		return false
	}
	return true
}

func (a *App) startEdit(initial string) {
	if !a.canEdit(a.active.Row, a.active.Col) {
		a.setTemporaryError("Cell is read-only")
		return
	}
	a.editing = true
	a.editBuf = []rune(initial)
	a.editPos = len(a.editBuf)
}

// editExisting opens the active cell for editing with its current text.
func (a *App) editExisting() {
	a.startEdit(a.grid.ValueString(a.active.Row, a.active.Col))
}

func (a *App) commitEdit() {
	if !a.editing {
		return
	}
	a.editing = false
	a.setCellText(a.active.Row, a.active.Col, string(a.editBuf))
}

func (a *App) cancelEdit() {
	a.editing = false
	a.editBuf = a.editBuf[:0]
	a.editPos = 0
}

// setCellText parses the text into a typed value and writes it,
// recording the change. Writing the same value back records nothing.
func (a *App) setCellText(row, col int, text string) {
	if !a.canEdit(row, col) {
		return
	}
	old := a.grid.Value(row, col)
	v := grid.ParseToken(text)
	if old.Equal(v) {
		return
	}
	a.grid.SetValue(row, col, v)
	a.log.Record(grid.SetValueAction{Row: row, Col: col, Old: old, New: v})
	a.dirty = true
}

// clearSelected empties every editable selected cell as one undo step.
func (a *App) clearSelected() {
	cells := a.sel.Cells()
	editable := cells[:0]
	for _, p := range cells {
		if a.canEdit(p.Row, p.Col) && !a.grid.Value(p.Row, p.Col).IsEmpty() {
			editable = append(editable, p)
		}
	}
	if len(editable) == 0 {
		return
	}
	changes := grid.ClearValues(editable, a.grid)
	a.log.Record(grid.ClearCellsAction{Cells: changes})
	a.dirty = true
}

func (a *App) copySelection() {
	text := grid.EncodeTSV(a.sel, a.grid)
	clipboardx.Write(text)
	a.setTemporaryMessage(fmt.Sprintf("Copied %d cells", a.sel.Count()))
}

func (a *App) cutSelection() {
	text := grid.EncodeTSV(a.sel, a.grid)
	clipboardx.Write(text)
	a.clearSelected()
	a.setTemporaryMessage(fmt.Sprintf("Cut %d cells", a.sel.Count()))
}

func (a *App) paste() {
	if a.grid.ReadOnly {
		a.setTemporaryError("Grid is read-only")
		return
	}
	text := clipboardx.Read()
	if text == "" {
		a.setTemporaryMessage("Clipboard is empty")
		return
	}
	origin, err := grid.PasteOrigin(a.sel)
	if err != nil {
		a.setTemporaryError(err.Error())
		return
	}
	changes := grid.PasteTSV(text, origin, a.grid)
	if len(changes) == 0 {
		return
	}
	a.log.Record(grid.SetCellsAction{Cells: changes})
	a.dirty = true
	a.setTemporaryMessage(fmt.Sprintf("Pasted %d cells", len(changes)))
}

func (a *App) undo() {
	if a.log.Undo(a.grid, a.view) {
		a.dirty = true
		a.setTemporaryMessage("Undo")
	} else {
		a.setTemporaryMessage("Nothing to undo")
	}
	a.active = a.clampPos(a.active)
	a.sel.SelectSingle(a.active)
}

func (a *App) redo() {
	if a.log.Redo(a.grid, a.view) {
		a.dirty = true
		a.setTemporaryMessage("Redo")
	} else {
		a.setTemporaryMessage("Nothing to redo")
	}
	a.active = a.clampPos(a.active)
	a.sel.SelectSingle(a.active)
}

func (a *App) insertRowBelow() {
	if a.grid.ReadOnly {
		return
	}
	at := a.active.Row + 1
	a.grid.InsertRow(at)
	a.log.Record(grid.InsertRowAction{Index: at})
	a.view.UpdateVisibleRange(a.grid)
	a.dirty = true
	a.setActive(grid.Pos{Row: at, Col: a.active.Col}, false)
}

func (a *App) insertColumnRight() {
	if a.grid.ReadOnly {
		return
	}
	at := a.active.Col + 1
	a.grid.InsertColumn(at)
	a.log.Record(grid.InsertColumnAction{Index: at})
	a.view.UpdateVisibleRange(a.grid)
	a.dirty = true
	a.setActive(grid.Pos{Row: a.active.Row, Col: at}, false)
}

// deleteSelectedRows removes every row the selection touches as one
// undo step. The grid never drops below one row.
func (a *App) deleteSelectedRows() {
	if a.grid.ReadOnly {
		return
	}
	rows := a.sel.Rows()
	if len(rows) == 0 {
		rows = []int{a.active.Row}
	}
	if len(rows) >= a.grid.RowCount() {
		rows = rows[:len(rows)-1]
	}
	if len(rows) == 0 {
		a.setTemporaryError("Cannot delete every row")
		return
	}
	snaps := make([]grid.RowSnapshot, len(rows))
	for i, r := range rows {
		snaps[i] = grid.RowSnapshot{Index: r, Cells: a.grid.RowCells(r)}
	}
	for i := len(rows) - 1; i >= 0; i-- {
		a.grid.DeleteRow(rows[i])
	}
	a.log.Record(grid.DeleteRowsAction{Rows: snaps})
	a.view.UpdateVisibleRange(a.grid)
	a.dirty = true
	a.setActive(a.clampPos(a.active), false)
	a.setTemporaryMessage(fmt.Sprintf("Deleted %d rows", len(rows)))
}

func (a *App) deleteActiveColumn() {
	if a.grid.ReadOnly || a.grid.ColCount() <= 1 {
		return
	}
	col := a.active.Col
	cells := a.grid.ColumnCells(col)
	a.grid.DeleteColumn(col)
	a.log.Record(grid.DeleteColumnAction{Index: col, Cells: cells})
	a.view.UpdateVisibleRange(a.grid)
	a.dirty = true
	a.setActive(a.clampPos(a.active), false)
}

// deleteEmptyRows compacts the grid by dropping rows with no values,
// keeping at least one row.
func (a *App) deleteEmptyRows() {
	if a.grid.ReadOnly {
		return
	}
	var rows []int
	for r := 0; r < a.grid.RowCount(); r++ {
		if a.grid.IsRowEmpty(r) {
			rows = append(rows, r)
		}
	}
	if len(rows) >= a.grid.RowCount() {
		rows = rows[:len(rows)-1]
	}
	if len(rows) == 0 {
		a.setTemporaryMessage("No empty rows")
		return
	}
	snaps := make([]grid.RowSnapshot, len(rows))
	for i, r := range rows {
		snaps[i] = grid.RowSnapshot{Index: r, Cells: a.grid.RowCells(r)}
	}
	for i := len(rows) - 1; i >= 0; i-- {
		a.grid.DeleteRow(rows[i])
	}
	a.log.Record(grid.DeleteRowsAction{Rows: snaps})
	a.view.UpdateVisibleRange(a.grid)
	a.dirty = true
	a.setActive(a.clampPos(a.active), false)
	a.setTemporaryMessage(fmt.Sprintf("Deleted %d empty rows", len(rows)))
}

// moveRow swaps the active row with a neighbor. Recorded as a bulk
// value change so undo swaps the values back.
func (a *App) moveRow(delta int) {
	if a.grid.ReadOnly {
		return
	}
	src := a.active.Row
	dst := src + delta
	if dst < 0 || dst >= a.grid.RowCount() {
		return
	}
	var changes []grid.ValueChange
	for col := 0; col < a.grid.ColCount(); col++ {
		sv := a.grid.Value(src, col)
		dv := a.grid.Value(dst, col)
		if sv.Equal(dv) {
			continue
		}
		changes = append(changes,
			grid.ValueChange{Row: src, Col: col, Old: sv, New: dv},
			grid.ValueChange{Row: dst, Col: col, Old: dv, New: sv})
	}
	a.grid.SwapRows(src, dst)
	if len(changes) > 0 {
		a.log.Record(grid.SetCellsAction{Cells: changes})
		a.dirty = true
	}
	a.setActive(grid.Pos{Row: dst, Col: a.active.Col}, false)
}

// toggleSort cycles a column through ascending, descending and
// unsorted; additive adds or flips the column as a secondary sort key.
// Sorting reorders rows under recorded actions, so it drops history.
func (a *App) toggleSort(col int, additive bool) {
	g := a.grid
	if additive {
		asc := true
		for _, k := range g.SortKeys {
			if k.Col == col {
				asc = !k.Ascending
			}
		}
		g.AddSortKey(col, asc)
	} else {
		switch {
		case g.SortColumn == col && g.SortAscending:
			g.SortByColumn(col, false)
		case g.SortColumn == col:
			g.ClearSort()
		default:
			g.SortByColumn(col, true)
		}
	}
	a.log.ClearHistory()
	a.dirty = true
	a.view.UpdateVisibleRange(g)
	a.setActive(a.active, false)
}

func (a *App) clearSort() {
	a.grid.ClearSort()
	a.setTemporaryMessage("Sort cleared")
}

func (a *App) filterByText(col int, query string) {
	a.grid.FilterByText(col, query)
	a.afterFilter()
}

func (a *App) filterByExpression(col int, src string) {
	if err := a.grid.FilterByExpression(col, src); err != nil {
		a.setTemporaryError(err.Error())
		return
	}
	a.afterFilter()
}

func (a *App) afterFilter() {
	hidden := a.grid.RowCount() - a.grid.VisibleRowCount()
	a.setTemporaryMessage(fmt.Sprintf("Filter: %d rows hidden", hidden))
	a.setActive(a.active, false)
}

func (a *App) clearFilters() {
	a.grid.ClearFilters()
	a.setTemporaryMessage("Filters cleared")
}

// runSearch refreshes the match list for the query and jumps to the
// first match. Regex mode reports pattern errors without losing the
// previous results.
func (a *App) runSearch(query string, useRegex bool) {
	if useRegex {
		if _, err := a.search.SearchRegex(query, false, a.grid); err != nil {
			a.setTemporaryError(err.Error())
			return
		}
	} else {
		a.search.SearchTextOptions(query, false, false, a.grid)
	}
	if p, ok := a.search.CurrentMatch(); ok {
		a.setActive(p, false)
	}
	a.syncFindDialog()
}

func (a *App) nextMatch() {
	if p, ok := a.search.Next(); ok {
		a.setActive(p, false)
	}
	a.syncFindDialog()
}

func (a *App) prevMatch() {
	if p, ok := a.search.Prev(); ok {
		a.setActive(p, false)
	}
	a.syncFindDialog()
}

func (a *App) syncFindDialog() {
	if a.dialog == nil {
		return
	}
	a.dialog.MatchCount = a.search.Count()
	a.dialog.MatchIndex = a.search.Current
}

// replaceCurrentMatch writes the replacement into the match under the
// cursor and records it.
func (a *App) replaceCurrentMatch(replacement string) {
	p, ok := a.search.CurrentMatch()
	if !ok || a.grid.ReadOnly {
		return
	}
	old := a.grid.Value(p.Row, p.Col)
	if !a.search.ReplaceCurrent(replacement, a.grid) {
		return
	}
	a.log.Record(grid.SetValueAction{Row: p.Row, Col: p.Col, Old: old, New: a.grid.Value(p.Row, p.Col)})
	a.dirty = true
	if next, ok := a.search.CurrentMatch(); ok {
		a.setActive(next, false)
	}
	a.syncFindDialog()
}

// replaceAllMatches rewrites every match as one undo step and returns
// the count.
func (a *App) replaceAllMatches(replacement string) int {
	if a.grid.ReadOnly {
		return 0
	}
	positions := append([]grid.Pos(nil), a.search.Results...)
	olds := make([]grid.Value, len(positions))
	for i, p := range positions {
		olds[i] = a.grid.Value(p.Row, p.Col)
	}
	count := a.search.ReplaceAll(replacement, a.grid)
	if count == 0 {
		return 0
	}
	changes := make([]grid.ValueChange, len(positions))
	for i, p := range positions {
		changes[i] = grid.ValueChange{Row: p.Row, Col: p.Col, Old: olds[i], New: a.grid.Value(p.Row, p.Col)}
	}
	a.log.Record(grid.SetCellsAction{Cells: changes})
	a.dirty = true
	a.syncFindDialog()
	a.setTemporaryMessage(fmt.Sprintf("Replaced %d cells", count))
	return count
}

// fitWidth measures a column's widest content, padded and clamped.
func (a *App) fitWidth(col int) int {
	w := runewidth.StringWidth(a.columnLabel(col))
	for row := 0; row < a.grid.RowCount(); row++ {
		if cw := runewidth.StringWidth(a.grid.ValueString(row, col)); cw > w {
			w = cw
		}
	}
	return min(max(w+2, 4), 40)
}

// autoFitColumn sizes a column to its widest content.
func (a *App) autoFitColumn(col int) {
	w := a.fitWidth(col)
	a.grid.SetColWidth(col, float64(w))
	a.setTemporaryMessage(fmt.Sprintf("Column %s width %d", grid.ColumnLetter(col), w))
}

// equalizeColumns resets every column to the default width.
func (a *App) equalizeColumns() {
	w := a.cfg.ColWidth
	for col := 0; col < a.grid.ColCount(); col++ {
		a.grid.SetColWidth(col, w)
	}
	a.view.UpdateVisibleRange(a.grid)
	a.setTemporaryMessage(fmt.Sprintf("All columns width %d", int(w)))
}

func (a *App) autoFitAllColumns() {
	for col := 0; col < a.grid.ColCount(); col++ {
		a.grid.SetColWidth(col, float64(a.fitWidth(col)))
	}
	a.view.UpdateVisibleRange(a.grid)
	a.setTemporaryMessage("Auto-fit all columns")
}

// findModified loads the unsaved cells into the match list and jumps
// to the first one.
func (a *App) findModified() {
	n := a.search.FindModified(a.grid)
	if n == 0 {
		a.setTemporaryMessage("No modified cells")
		return
	}
	if p, ok := a.search.CurrentMatch(); ok {
		a.setActive(p, false)
	}
	a.setTemporaryMessage(fmt.Sprintf("%d modified cells, F3 cycles", n))
}

// freezeAtActive pins every row above and column left of the active
// cell.
func (a *App) freezeAtActive() {
	a.grid.FrozenRows = a.active.Row
	a.grid.FrozenCols = a.active.Col
	a.setTemporaryMessage(fmt.Sprintf("Frozen %d rows, %d cols", a.grid.FrozenRows, a.grid.FrozenCols))
}

func (a *App) unfreeze() {
	a.grid.FrozenRows = 0
	a.grid.FrozenCols = 0
	a.setTemporaryMessage("Unfrozen")
}

// gotoCell jumps to a spreadsheet-style reference like "C12". A bare
// number goes to that row in the current column.
func (a *App) gotoCell(ref string) {
	ref = strings.ToUpper(strings.TrimSpace(ref))
	if ref == "" {
		return
	}
	i := 0
	col := 0
	for i < len(ref) && ref[i] >= 'A' && ref[i] <= 'Z' {
		col = col*26 + int(ref[i]-'A') + 1
		i++
	}
	row := 0
	for i < len(ref) && ref[i] >= '0' && ref[i] <= '9' {
		row = row*10 + int(ref[i]-'0')
		i++
	}
	if i != len(ref) || row == 0 {
		a.setTemporaryError("Bad cell reference: " + ref)
		return
	}
	p := grid.Pos{Row: row - 1, Col: a.active.Col}
	if col > 0 {
		p.Col = col - 1
	}
	a.setActive(p, false)
}
