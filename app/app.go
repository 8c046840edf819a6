package app

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gridview/config"
	"gridview/dataio"
	"gridview/grid"
	"gridview/ui"

	"github.com/fsnotify/fsnotify"
	"github.com/gdamore/tcell/v2"
)

// App owns the grid, its viewport and selection, the edit log and the
// search state, and drives them from terminal events. One App, one
// open file.
type App struct {
	screen tcell.Screen
	cfg    *config.Config

	grid   *grid.Grid
	view   *grid.Viewport
	sel    *grid.Selection
	search *grid.Search
	log    *grid.EditLog

	active  grid.Pos
	editing bool
	editBuf []rune
	editPos int

	statusBar *ui.StatusBar
	dialog    *ui.Dialog

	path   string
	format string // "csv" or "json"
	dirty  bool

	// File watching
	watcher  *fsnotify.Watcher
	lastSave time.Time

	quit bool

	// Mouse drag tracking
	mouseDown bool

	// Screen layout from the last render, reused for mouse hit tests.
	rowLines []int // grid row per body screen line
	spans    []colSpan
	layOffX  int
	layOffY  int
	layClipX int

	// Temporary status messages
	statusMessageTime    time.Time
	statusMessageIsError bool
}

func New(cfg *config.Config) *App {
	a := &App{
		cfg:       cfg,
		view:      grid.NewViewport(80, 24),
		sel:       grid.NewSelection(),
		search:    grid.NewSearch(),
		log:       grid.NewEditLog(),
		statusBar: ui.NewStatusBar(),
	}
	a.adoptGrid(grid.NewSized(cfg.Rows, cfg.Cols, cfg.ColWidth, cfg.RowHeight))
	return a
}

// applyShellSettings maps config onto a grid and switches its geometry
// headers to character-cell sizes: one screen row of column header, a
// fixed-width row number gutter.
func (a *App) applyShellSettings(g *grid.Grid) {
	g.SetDefaultGeometry(a.cfg.ColWidth, a.cfg.RowHeight)
	g.RowHeaderWidth = 6
	g.ColHeaderHeight = 1
	g.ShowHeaders = a.cfg.ShowHeaders
	g.ShowGridLines = a.cfg.ShowGridLines
	g.AlternateRowColors = a.cfg.AlternateRows
	g.FrozenRows = a.cfg.FrozenRows
	g.FrozenCols = a.cfg.FrozenCols
	g.ReadOnly = a.cfg.ReadOnly
}

// adoptGrid swaps in a freshly built or loaded grid and resets all
// per-grid state: selection, search, history, scroll.
func (a *App) adoptGrid(g *grid.Grid) {
	a.applyShellSettings(g)
	a.grid = g
	a.sel = grid.NewSelection()
	a.search = grid.NewSearch()
	a.log = grid.NewEditLog()
	a.active = grid.Pos{}
	a.sel.SelectSingle(a.active)
	a.editing = false
	a.dirty = false
	a.view.SetScroll(0, 0, g)
	a.view.UpdateVisibleRange(g)
}

func (a *App) Run(path string) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}

	screen.EnableMouse()
	screen.EnablePaste()
	screen.SetStyle(tcell.StyleDefault)
	screen.Clear()

	a.screen = screen

	if path != "" {
		if err := a.openPath(path); err != nil {
			screen.Fini()
			return err
		}
	}

	if a.cfg.WatchFile && a.path != "" {
		a.setupWatcher(screen)
	}

	for !a.quit {
		a.clearExpiredMessages()
		a.render()

		ev := screen.PollEvent()
		switch ev := ev.(type) {
		case *tcell.EventResize:
			screen.Sync()
		case *tcell.EventKey:
			a.handleKey(ev)
		case *tcell.EventMouse:
			a.handleMouse(ev)
		case *tcell.EventPaste:
			// tcell brackets terminal pastes; the clipboard bridge
			// handles the content via Ctrl+V instead.
		case *FileWatchEvent:
			a.handleFileWatchEvent(ev)
		}
	}

	if a.watcher != nil {
		a.watcher.Close()
	}

	screen.Clear()
	screen.Fini()

	return nil
}

// openPath loads a CSV or JSON records file into a fresh grid.
func (a *App) openPath(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}

	// Per-directory .gridview files override display settings for
	// matching file names.
	config.FindFileOverrides(abs).Apply(a.cfg)

	var g *grid.Grid
	format := "csv"
	switch strings.ToLower(filepath.Ext(abs)) {
	case ".json":
		format = "json"
		data, err := os.ReadFile(abs)
		if err != nil {
			return err
		}
		g = grid.NewSized(a.cfg.Rows, a.cfg.Cols, a.cfg.ColWidth, a.cfg.RowHeight)
		if _, err := dataio.LoadRecords(g, data); err != nil {
			return err
		}
	default:
		g, err = dataio.LoadCSVFile(abs, a.cfg.CSVHeader)
		if err != nil {
			// A missing file opens as a new empty grid under that name.
			if !os.IsNotExist(err) {
				return err
			}
			g = grid.NewSized(a.cfg.Rows, a.cfg.Cols, a.cfg.ColWidth, a.cfg.RowHeight)
		}
	}

	a.adoptGrid(g)
	a.path = abs
	a.format = format
	a.setTemporaryMessage(fmt.Sprintf("Loaded %s (%d cells)", filepath.Base(abs), g.CellCount()))
	return nil
}

func (a *App) save() {
	if a.path == "" {
		d := ui.NewInputDialog("Save as: ")
		d.OnSubmit = func(name string) {
			a.dialog = nil
			if name == "" {
				return
			}
			abs, err := filepath.Abs(name)
			if err != nil {
				abs = name
			}
			a.path = abs
			if strings.ToLower(filepath.Ext(abs)) == ".json" {
				a.format = "json"
			} else {
				a.format = "csv"
			}
			a.saveTo(a.path)
		}
		d.OnCancel = func() { a.dialog = nil }
		a.dialog = d
		return
	}
	a.saveTo(a.path)
}

func (a *App) saveTo(path string) {
	var err error
	switch a.format {
	case "json":
		var data []byte
		data, err = dataio.ExportRecords(a.grid)
		if err == nil {
			err = os.WriteFile(path, data, 0644)
		}
	default:
		err = dataio.SaveCSVFile(a.grid, path, a.cfg.CSVHeader)
	}
	if err != nil {
		a.setTemporaryError("Error saving: " + err.Error())
		return
	}
	a.lastSave = time.Now()
	a.dirty = false
	a.grid.ClearModified()
	a.setTemporaryMessage("Saved " + filepath.Base(path))
}

// exportXLSX writes the grid next to the open file with an .xlsx
// extension.
func (a *App) exportXLSX() {
	base := a.path
	if base == "" {
		base = "untitled"
	}
	out := strings.TrimSuffix(base, filepath.Ext(base)) + ".xlsx"
	if err := dataio.ExportXLSX(a.grid, out); err != nil {
		a.setTemporaryError("Error exporting: " + err.Error())
		return
	}
	a.setTemporaryMessage("Exported " + filepath.Base(out))
}

func (a *App) handleQuit() {
	if !a.dirty {
		a.quit = true
		return
	}
	name := filepath.Base(a.path)
	if a.path == "" {
		name = "untitled"
	}
	d := ui.NewConfirmDialog(name)
	d.OnConfirm = func(answer rune) {
		a.dialog = nil
		switch answer {
		case 'y':
			a.save()
			if !a.dirty {
				a.quit = true
			}
		case 'n':
			a.quit = true
		}
	}
	a.dialog = d
}

func (a *App) reloadFromDisk() {
	if a.path == "" {
		return
	}
	if err := a.openPath(a.path); err != nil {
		a.setTemporaryError("Error reloading: " + err.Error())
		return
	}
	a.setTemporaryMessage("Reloaded " + filepath.Base(a.path))
}

// gridLayout returns the screen rectangle the grid canvas occupies:
// everything above the status bar.
func (a *App) gridLayout() (x, y, w, h int) {
	sw, sh := a.screen.Size()
	return 0, 0, sw, sh - 1
}

func (a *App) updateStatus() {
	s := a.statusBar
	switch {
	case a.editing:
		s.Mode = "EDIT"
	case a.grid.ReadOnly:
		s.Mode = "VIEW"
	default:
		s.Mode = "GRID"
	}
	if a.path != "" {
		s.Filename = filepath.Base(a.path)
	} else {
		s.Filename = ""
	}
	s.Row = a.active.Row
	s.Col = a.active.Col
	s.ColName = a.columnLabel(a.active.Col)
	s.CellKind = kindName(a.grid.Value(a.active.Row, a.active.Col).Kind)
	s.SelCount = a.sel.Count()
	s.RowCount = a.grid.RowCount()
	s.VisibleRows = a.grid.VisibleRowCount()
	s.Modified = a.grid.ModifiedCount()
	s.Dirty = a.dirty
	s.SortInfo = a.sortInfo()
	if a.search.Query != "" {
		s.SearchInfo = fmt.Sprintf("%d/%d", a.search.DisplayIndex(), a.search.Count())
	} else {
		s.SearchInfo = ""
	}
}

func (a *App) columnLabel(col int) string {
	if name := a.grid.Column(col).Name; name != "" {
		return name
	}
	return grid.ColumnLetter(col)
}

func (a *App) sortInfo() string {
	g := a.grid
	arrow := func(asc bool) string {
		if asc {
			return "↑"
		}
		return "↓"
	}
	if len(g.SortKeys) > 0 {
		parts := make([]string, len(g.SortKeys))
		for i, k := range g.SortKeys {
			parts[i] = grid.ColumnLetter(k.Col) + arrow(k.Ascending)
		}
		return strings.Join(parts, " ")
	}
	if g.SortColumn >= 0 {
		return grid.ColumnLetter(g.SortColumn) + arrow(g.SortAscending)
	}
	return ""
}

func kindName(k grid.ValueKind) string {
	switch k {
	case grid.KindText:
		return "text"
	case grid.KindNumber:
		return "number"
	case grid.KindBool:
		return "boolean"
	case grid.KindDate:
		return "date"
	}
	return "empty"
}

func (a *App) setStatusMessage(msg string) {
	a.statusBar.Message = msg
	a.statusMessageTime = time.Time{} // zero time = permanent
	a.statusMessageIsError = false
}

// setTemporaryMessage sets a message that will auto-clear after 5 seconds
func (a *App) setTemporaryMessage(msg string) {
	a.statusBar.Message = msg
	a.statusMessageTime = time.Now()
	a.statusMessageIsError = false
}

// setTemporaryError sets an error message that will auto-clear after 5 seconds
func (a *App) setTemporaryError(msg string) {
	a.statusBar.Message = msg
	a.statusMessageTime = time.Now()
	a.statusMessageIsError = true
}

// clearExpiredMessages clears status messages that have expired
func (a *App) clearExpiredMessages() {
	if !a.statusMessageTime.IsZero() && time.Since(a.statusMessageTime) > 5*time.Second {
		a.statusBar.Message = ""
		a.statusMessageTime = time.Time{}
		a.statusMessageIsError = false
	}
}
