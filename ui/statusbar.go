package ui

import (
	"fmt"

	"gridview/config"

	"github.com/gdamore/tcell/v2"
)

type StatusBar struct {
	Mode     string // "GRID", "EDIT" or "VIEW"
	Filename string
	Row      int
	Col      int
	ColName  string
	CellKind string // kind of the active cell's value
	Message  string // temporary status message
	Theme    *config.ColorScheme

	SelCount    int // number of selected cells (0 = single cell)
	RowCount    int
	VisibleRows int // rows left after filtering
	Modified    int // cells changed since load
	Dirty       bool
	SortInfo    string // e.g. "B↑ D↓"
	SearchInfo  string // e.g. "3/17"
}

func NewStatusBar() *StatusBar {
	return &StatusBar{Mode: "GRID"}
}

func (s *StatusBar) Render(screen tcell.Screen, x, y, width, height int) {
	theme := s.Theme
	if theme == nil {
		theme = config.Themes["monokai"]
	}

	style := tcell.StyleDefault.Background(theme.StatusBarBg).Foreground(theme.StatusBarFg)
	modeStyle := tcell.StyleDefault.Background(theme.StatusBarModeBg).Foreground(tcell.ColorBlack).Bold(true)

	// Clear the line
	for cx := x; cx < x+width; cx++ {
		screen.SetContent(cx, y, ' ', nil, style)
	}

	col := x

	// Mode
	mode := " " + s.Mode + " "
	for _, ch := range mode {
		if col < x+width {
			screen.SetContent(col, y, ch, nil, modeStyle)
			col++
		}
	}

	// Separator
	if col < x+width {
		screen.SetContent(col, y, ' ', nil, style)
		col++
	}

	// If there's a temporary message, show that instead
	if s.Message != "" {
		for _, ch := range s.Message {
			if col < x+width {
				screen.SetContent(col, y, ch, nil, style)
				col++
			}
		}
		return
	}

	// Filename with dirty marker
	fname := s.Filename
	if fname == "" {
		fname = "untitled"
	}
	if s.Dirty {
		fname += " *"
	}
	for _, ch := range fname {
		if col < x+width {
			screen.SetContent(col, y, ch, nil, style)
			col++
		}
	}

	// Right-aligned info
	right := ""
	if s.SearchInfo != "" {
		right += "find " + s.SearchInfo + " │ "
	}
	if s.SortInfo != "" {
		right += "sort " + s.SortInfo + " │ "
	}
	if s.SelCount > 1 {
		right += fmt.Sprintf("%d selected │ ", s.SelCount)
	}
	if s.Modified > 0 {
		right += fmt.Sprintf("%d modified │ ", s.Modified)
	}
	if s.VisibleRows < s.RowCount {
		right += fmt.Sprintf("%d/%d rows │ ", s.VisibleRows, s.RowCount)
	}
	kind := s.CellKind
	if kind == "" {
		kind = "empty"
	}
	right += fmt.Sprintf("%s%d │ %s ", s.ColName, s.Row+1, kind)

	rightRunes := []rune(right)
	rightStart := x + width - len(rightRunes)
	if rightStart > col+2 {
		for i, ch := range rightRunes {
			screen.SetContent(rightStart+i, y, ch, nil, style)
		}
	}
}

func (s *StatusBar) HandleKey(ev *tcell.EventKey) bool     { return false }
func (s *StatusBar) HandleMouse(ev *tcell.EventMouse) bool { return false }
func (s *StatusBar) IsFocused() bool                       { return false }
func (s *StatusBar) SetFocused(f bool)                     {}
