package app

import (
	"fmt"

	"gridview/config"
	"gridview/grid"
	"gridview/ui"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// colSpan is one rendered column: its grid index and screen extent.
type colSpan struct {
	col  int
	x, w int
}

// cellColor converts a cell's RGBA color to a terminal color, dropping
// the alpha channel.
func cellColor(c grid.Color) tcell.Color {
	return tcell.NewHexColor(int32(c >> 8))
}

func (a *App) render() {
	theme := a.cfg.GetTheme()
	defStyle := tcell.StyleDefault.Background(theme.Background).Foreground(theme.Foreground)
	a.screen.SetStyle(defStyle)
	a.screen.Clear()
	a.screen.HideCursor()

	screenW, screenH := a.screen.Size()
	gx, gy, gw, gh := a.gridLayout()
	a.view.Resize(float64(gw), float64(gh))
	a.view.UpdateVisibleRange(a.grid)

	a.renderGrid(gx, gy, gw, gh, theme)

	a.updateStatus()
	a.statusBar.Theme = theme
	a.statusBar.Render(a.screen, 0, screenH-1, screenW, 1)

	if a.dialog != nil {
		a.dialog.Theme = theme
		switch a.dialog.Type {
		case ui.DialogHelp:
			a.dialog.Render(a.screen, 0, 0, screenW, screenH)
		case ui.DialogConfirm, ui.DialogReloadConfirm:
			a.dialog.Render(a.screen, 0, screenH-2, screenW, 1)
		default:
			h := 1
			if a.dialog.ReplaceMode {
				h = 2
			}
			a.dialog.Render(a.screen, 0, screenH-1-h, screenW, h)
		}
	}

	a.screen.Show()
}

// renderGrid draws the four pane regions: frozen rows and columns stay
// pinned while the rest scrolls. Each unfiltered row takes one screen
// line; filtered rows are compacted away.
func (a *App) renderGrid(gx, gy, gw, gh int, theme *config.ColorScheme) {
	g := a.grid
	v := a.view

	offX, offY := 0, 0
	if g.ShowHeaders {
		offX = int(g.RowHeaderWidth)
		offY = int(g.ColHeaderHeight)
	}
	frozenW := int(g.FrozenColExtent())
	clipX := gx + offX + frozenW
	bodyLines := gh - offY

	a.layOffX = offX
	a.layOffY = offY
	a.layClipX = clipX

	// Rows: frozen ones first, then the scrolled range.
	a.rowLines = a.rowLines[:0]
	for r := 0; r < g.FrozenRows && r < g.RowCount(); r++ {
		if !g.IsRowFiltered(r) {
			a.rowLines = append(a.rowLines, r)
		}
	}
	for r := max(v.FirstRow, g.FrozenRows); r < g.RowCount() && len(a.rowLines) < bodyLines; r++ {
		if !g.IsRowFiltered(r) {
			a.rowLines = append(a.rowLines, r)
		}
	}

	// Columns with their screen extents.
	a.spans = a.spans[:0]
	for c := 0; c < g.FrozenCols && c < g.ColCount(); c++ {
		a.spans = append(a.spans, colSpan{c, gx + offX + int(g.ColX(c)), int(g.ColWidth(c))})
	}
	for c := max(v.FirstCol, g.FrozenCols); c <= v.LastCol && c < g.ColCount(); c++ {
		x := gx + offX + int(g.ColX(c)-v.ScrollX)
		if x >= gx+gw {
			break
		}
		a.spans = append(a.spans, colSpan{c, x, int(g.ColWidth(c))})
	}

	if g.ShowHeaders {
		a.renderColumnHeaders(gx, gy, gw, offX, clipX, theme)
	}

	for i, row := range a.rowLines {
		y := gy + offY + i
		if g.ShowHeaders {
			a.renderRowHeader(row, gx, y, offX, theme)
		}
		for _, sp := range a.spans {
			clip := gx + offX
			if sp.col >= g.FrozenCols {
				clip = clipX
			}
			a.renderCell(row, sp, y, clip, gx+gw, theme)
		}
	}
}

func (a *App) renderColumnHeaders(gx, gy, gw, offX, clipX int, theme *config.ColorScheme) {
	g := a.grid
	headerStyle := tcell.StyleDefault.Background(theme.HeaderBg).Foreground(theme.HeaderFg).Bold(true)

	// Corner above the row gutter; clicking it selects all.
	for x := gx; x < gx+offX && x < gx+gw; x++ {
		a.screen.SetContent(x, gy, ' ', nil, headerStyle)
	}

	for _, sp := range a.spans {
		label := a.columnLabel(sp.col)
		if ind := a.sortIndicator(sp.col); ind != 0 {
			label = runewidth.Truncate(label, sp.w-2, "…") + string(ind)
		}
		label = runewidth.Truncate(" "+label, sp.w, "…")
		label = runewidth.FillRight(label, sp.w)

		clip := gx + offX
		if sp.col >= g.FrozenCols {
			clip = clipX
		}
		x := sp.x
		for _, ch := range label {
			if x >= gx+gw {
				break
			}
			if x >= clip {
				a.screen.SetContent(x, gy, ch, nil, headerStyle)
			}
			x += runewidth.RuneWidth(ch)
		}
	}
}

func (a *App) sortIndicator(col int) rune {
	g := a.grid
	for _, k := range g.SortKeys {
		if k.Col == col {
			if k.Ascending {
				return '▲'
			}
			return '▼'
		}
	}
	if g.SortColumn == col {
		if g.SortAscending {
			return '▲'
		}
		return '▼'
	}
	return 0
}

func (a *App) renderRowHeader(row, gx, y, offX int, theme *config.ColorScheme) {
	headerStyle := tcell.StyleDefault.Background(theme.HeaderBg).Foreground(theme.HeaderFg)
	if row < a.grid.FrozenRows {
		headerStyle = headerStyle.Background(theme.FrozenBg)
	}
	label := fmt.Sprintf("%*d ", offX-1, row+1)
	x := gx
	for _, ch := range label {
		if x >= gx+offX {
			break
		}
		a.screen.SetContent(x, y, ch, nil, headerStyle)
		x++
	}
}

func (a *App) renderCell(row int, sp colSpan, y, clipLo, clipHi int, theme *config.ColorScheme) {
	g := a.grid
	p := grid.Pos{Row: row, Col: sp.col}
	c := g.Cell(row, sp.col)

	style := tcell.StyleDefault.Background(theme.Background).Foreground(theme.Foreground)
	if row < g.FrozenRows || sp.col < g.FrozenCols {
		style = style.Background(theme.FrozenBg)
	} else if g.AlternateRowColors && row%2 == 1 {
		style = style.Background(theme.AltRowBg)
	}

	// Per-cell styling layered under the transient states.
	if c != nil {
		if c.Style.BG != grid.NoColor {
			style = style.Background(cellColor(c.Style.BG))
		}
		if c.Style.FG != grid.NoColor {
			style = style.Foreground(cellColor(c.Style.FG))
		}
		style = style.Bold(c.Style.Bold).Italic(c.Style.Italic)
		if c.Modified {
			style = style.Foreground(theme.ModifiedFg)
		}
	}

	switch {
	case a.search.IsCurrent(p):
		style = style.Background(theme.CurrentMatchBg).Foreground(tcell.ColorBlack)
	case a.search.IsMatch(p):
		style = style.Background(theme.MatchBg)
	case p == a.active:
		style = style.Background(theme.ActiveCellBg)
	case a.sel.Has(p):
		style = style.Background(theme.Selection)
	}

	editingHere := a.editing && p == a.active
	text := ""
	if editingHere {
		text = string(a.editBuf)
	} else {
		text = g.ValueString(row, sp.col)
	}

	pad := sp.w - 1
	if pad < 0 {
		pad = 0
	}
	text = runewidth.Truncate(text, pad, "…")
	if !editingHere && g.Value(row, sp.col).Kind == grid.KindNumber {
		text = runewidth.FillLeft(text, pad)
	} else {
		text = runewidth.FillRight(text, pad)
	}

	x := sp.x
	for _, ch := range text {
		if x >= clipHi {
			break
		}
		if x >= clipLo {
			a.screen.SetContent(x, y, ch, nil, style)
		}
		x += runewidth.RuneWidth(ch)
	}

	// Column separator
	sepX := sp.x + sp.w - 1
	if sepX >= clipLo && sepX < clipHi {
		if g.ShowGridLines {
			sep := tcell.StyleDefault.Background(theme.Background).Foreground(theme.GridLine)
			a.screen.SetContent(sepX, y, '│', nil, sep)
		} else {
			a.screen.SetContent(sepX, y, ' ', nil, style)
		}
	}

	if editingHere {
		cx := sp.x + min(a.editPos, pad)
		if cx >= clipLo && cx < clipHi {
			a.screen.ShowCursor(cx, y)
		}
	}
}

// cellAt maps a screen position to the grid cell rendered there.
func (a *App) cellAt(x, y int) (grid.Pos, bool) {
	line := y - a.layOffY
	if line < 0 || line >= len(a.rowLines) {
		return grid.Pos{}, false
	}
	col, ok := a.colAt(x)
	if !ok {
		return grid.Pos{}, false
	}
	return grid.Pos{Row: a.rowLines[line], Col: col}, true
}

// colAt maps a screen x to the column rendered there. Frozen columns
// win over scrolled ones they overlap.
func (a *App) colAt(x int) (int, bool) {
	for _, sp := range a.spans {
		if sp.col >= a.grid.FrozenCols {
			continue
		}
		if x >= sp.x && x < sp.x+sp.w {
			return sp.col, true
		}
	}
	for _, sp := range a.spans {
		if sp.col < a.grid.FrozenCols {
			continue
		}
		if x >= max(sp.x, a.layClipX) && x < sp.x+sp.w {
			return sp.col, true
		}
	}
	return 0, false
}
