package app

import (
	"fmt"

	"gridview/grid"
	"gridview/ui"

	"github.com/gdamore/tcell/v2"
)

func (a *App) handleKey(ev *tcell.EventKey) {
	// Dialog gets priority
	if a.dialog != nil {
		a.dialog.HandleKey(ev)
		return
	}

	if a.editing {
		a.handleEditKey(ev)
		return
	}

	// Global keybindings
	switch ev.Key() {
	case tcell.KeyCtrlQ:
		a.handleQuit()
		return
	case tcell.KeyCtrlS:
		a.save()
		return
	case tcell.KeyCtrlH, tcell.KeyF1:
		a.openHelpDialog()
		return
	case tcell.KeyCtrlF:
		a.openFindDialog(false)
		return
	case tcell.KeyCtrlR:
		a.openFindDialog(true)
		return
	case tcell.KeyCtrlG:
		a.openGotoDialog()
		return
	case tcell.KeyCtrlZ:
		a.undo()
		return
	case tcell.KeyCtrlY:
		a.redo()
		return
	case tcell.KeyCtrlC:
		a.copySelection()
		return
	case tcell.KeyCtrlX:
		a.cutSelection()
		return
	case tcell.KeyCtrlV:
		a.paste()
		return
	case tcell.KeyCtrlA:
		a.sel.SelectAll(a.grid)
		return
	case tcell.KeyCtrlE:
		a.openFilterDialog(true)
		return
	case tcell.KeyCtrlL:
		a.clearFilters()
		return
	case tcell.KeyF3:
		if ev.Modifiers()&tcell.ModShift != 0 {
			a.prevMatch()
		} else {
			a.nextMatch()
		}
		return
	case tcell.KeyF4:
		a.toggleSort(a.active.Col, ev.Modifiers()&tcell.ModShift != 0)
		return
	case tcell.KeyF5:
		a.clearSort()
		return
	}

	// Alt chords
	if ev.Modifiers()&tcell.ModAlt != 0 {
		switch ev.Key() {
		case tcell.KeyUp:
			a.moveRow(-1)
			return
		case tcell.KeyDown:
			a.moveRow(1)
			return
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'r':
				a.insertRowBelow()
			case 'd':
				a.deleteSelectedRows()
			case 'c':
				a.insertColumnRight()
			case 'C':
				a.deleteActiveColumn()
			case 'e':
				a.deleteEmptyRows()
			case 'w':
				a.autoFitColumn(a.active.Col)
			case 'W':
				a.autoFitAllColumns()
			case '=':
				a.equalizeColumns()
			case 'm':
				a.findModified()
			case 'z':
				a.freezeAtActive()
			case 'u':
				a.unfreeze()
			case 'f':
				a.openFilterDialog(false)
			case 'x':
				a.exportXLSX()
			}
			return
		}
	}

	extend := ev.Modifiers()&tcell.ModShift != 0
	ctrl := ev.Modifiers()&tcell.ModCtrl != 0

	switch ev.Key() {
	case tcell.KeyUp:
		a.moveActive(-1, 0, extend)
	case tcell.KeyDown:
		a.moveActive(1, 0, extend)
	case tcell.KeyLeft:
		a.moveActive(0, -1, extend)
	case tcell.KeyRight:
		a.moveActive(0, 1, extend)
	case tcell.KeyTab:
		a.moveActive(0, 1, false)
	case tcell.KeyBacktab:
		a.moveActive(0, -1, false)
	case tcell.KeyPgUp:
		a.moveActive(-a.pageRows(), 0, extend)
	case tcell.KeyPgDn:
		a.moveActive(a.pageRows(), 0, extend)
	case tcell.KeyHome:
		if ctrl {
			a.setActive(grid.Pos{}, extend)
		} else {
			a.setActive(grid.Pos{Row: a.active.Row}, extend)
		}
	case tcell.KeyEnd:
		if ctrl {
			a.setActive(grid.Pos{Row: a.grid.RowCount() - 1, Col: a.grid.ColCount() - 1}, extend)
		} else {
			a.setActive(grid.Pos{Row: a.active.Row, Col: a.grid.ColCount() - 1}, extend)
		}
	case tcell.KeyEnter, tcell.KeyF2:
		a.editExisting()
	case tcell.KeyDelete, tcell.KeyBackspace, tcell.KeyBackspace2:
		a.clearSelected()
	case tcell.KeyEscape:
		if a.search.Query != "" {
			a.search.ClearSearch()
			a.setTemporaryMessage("Search cleared")
		} else {
			a.sel.SelectSingle(a.active)
		}
	case tcell.KeyRune:
		if ev.Modifiers() == 0 || ev.Modifiers() == tcell.ModShift {
			// Typing replaces the cell content and starts editing.
			a.startEdit(string(ev.Rune()))
		}
	}
}

func (a *App) handleEditKey(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyEscape:
		a.cancelEdit()
	case tcell.KeyEnter:
		a.commitEdit()
		a.moveActive(1, 0, false)
	case tcell.KeyTab:
		a.commitEdit()
		a.moveActive(0, 1, false)
	case tcell.KeyUp:
		a.commitEdit()
		a.moveActive(-1, 0, false)
	case tcell.KeyDown:
		a.commitEdit()
		a.moveActive(1, 0, false)
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if a.editPos > 0 {
			a.editBuf = append(a.editBuf[:a.editPos-1], a.editBuf[a.editPos:]...)
			a.editPos--
		}
	case tcell.KeyDelete:
		if a.editPos < len(a.editBuf) {
			a.editBuf = append(a.editBuf[:a.editPos], a.editBuf[a.editPos+1:]...)
		}
	case tcell.KeyLeft:
		if a.editPos > 0 {
			a.editPos--
		}
	case tcell.KeyRight:
		if a.editPos < len(a.editBuf) {
			a.editPos++
		}
	case tcell.KeyHome:
		a.editPos = 0
	case tcell.KeyEnd:
		a.editPos = len(a.editBuf)
	case tcell.KeyRune:
		a.editBuf = append(a.editBuf[:a.editPos], append([]rune{ev.Rune()}, a.editBuf[a.editPos:]...)...)
		a.editPos++
	}
}

func (a *App) handleMouse(ev *tcell.EventMouse) {
	x, y := ev.Position()
	_, _, _, gh := a.gridLayout()
	if y >= gh {
		return
	}

	switch {
	case ev.Buttons()&tcell.WheelUp != 0:
		if ev.Modifiers()&tcell.ModShift != 0 {
			a.view.ScrollBy(-3, 0, a.grid)
		} else {
			a.view.ScrollBy(0, -3*a.grid.RowHeight(0), a.grid)
		}
		a.view.UpdateVisibleRange(a.grid)
		return
	case ev.Buttons()&tcell.WheelDown != 0:
		if ev.Modifiers()&tcell.ModShift != 0 {
			a.view.ScrollBy(3, 0, a.grid)
		} else {
			a.view.ScrollBy(0, 3*a.grid.RowHeight(0), a.grid)
		}
		a.view.UpdateVisibleRange(a.grid)
		return
	}

	if ev.Buttons()&tcell.Button1 != 0 {
		if a.mouseDown {
			// Drag extends the selection.
			if p, ok := a.cellAt(x, y); ok {
				a.setActive(p, true)
			}
			return
		}
		a.mouseDown = true

		hdr := a.grid.ShowHeaders
		switch {
		case hdr && y < a.layOffY && x < a.layOffX:
			a.sel.SelectAll(a.grid)
		case hdr && y < a.layOffY:
			if col, ok := a.colAt(x); ok {
				a.toggleSort(col, ev.Modifiers()&tcell.ModShift != 0)
			}
		case hdr && x < a.layOffX:
			line := y - a.layOffY
			if line >= 0 && line < len(a.rowLines) {
				row := a.rowLines[line]
				a.sel.SelectRow(row, a.grid)
				a.active = grid.Pos{Row: row}
			}
		default:
			if p, ok := a.cellAt(x, y); ok {
				switch {
				case ev.Modifiers()&tcell.ModCtrl != 0:
					a.sel.Toggle(p)
					a.active = p
				default:
					a.setActive(p, ev.Modifiers()&tcell.ModShift != 0)
				}
			}
		}
		return
	}

	a.mouseDown = false
}

func (a *App) openHelpDialog() {
	d := ui.NewHelpDialog()
	d.OnCancel = func() { a.dialog = nil }
	a.dialog = d
}

func (a *App) openFindDialog(replace bool) {
	var d *ui.Dialog
	if replace {
		d = ui.NewFindReplaceDialog()
	} else {
		d = ui.NewFindDialog()
	}
	d.Input = a.search.Query
	d.Cursor = len([]rune(d.Input))
	d.OnChange = func(q string) {
		a.runSearch(q, d.UseRegex)
	}
	d.OnNext = a.nextMatch
	d.OnPrev = a.prevMatch
	d.OnSubmit = func(q string) {
		// Enter keeps the matches highlighted and returns to the grid;
		// F3 continues from there.
		a.dialog = nil
	}
	d.OnCancel = func() { a.dialog = nil }
	d.OnReplace = func(repl string) {
		a.replaceCurrentMatch(repl)
	}
	d.OnReplaceAll = func(find, repl string) int {
		a.runSearch(find, d.UseRegex)
		n := a.replaceAllMatches(repl)
		a.dialog = nil
		return n
	}
	a.dialog = d
	if a.search.Query != "" {
		a.syncFindDialog()
	}
}

func (a *App) openGotoDialog() {
	d := ui.NewInputDialog("Go to cell: ")
	d.OnSubmit = func(ref string) {
		a.dialog = nil
		if ref != "" {
			a.gotoCell(ref)
		}
	}
	d.OnCancel = func() { a.dialog = nil }
	a.dialog = d
}

func (a *App) openFilterDialog(expr bool) {
	col := a.active.Col
	var d *ui.Dialog
	if expr {
		d = ui.NewInputDialog(fmt.Sprintf("Filter %s (expr, e.g. value > 10): ", a.columnLabel(col)))
	} else {
		d = ui.NewInputDialog(fmt.Sprintf("Filter %s by text: ", a.columnLabel(col)))
	}
	d.OnSubmit = func(q string) {
		a.dialog = nil
		if q == "" {
			a.clearFilters()
			return
		}
		if expr {
			a.filterByExpression(col, q)
		} else {
			a.filterByText(col, q)
		}
	}
	d.OnCancel = func() { a.dialog = nil }
	a.dialog = d
}
