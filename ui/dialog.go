package ui

import (
	"strconv"

	"gridview/config"

	"github.com/gdamore/tcell/v2"
)

type DialogType int

const (
	DialogNone DialogType = iota
	DialogFind
	DialogInput // Generic text input dialog
	DialogConfirm
	DialogReloadConfirm
	DialogHelp
)

type Dialog struct {
	Type    DialogType
	Input   string
	Cursor  int
	focused bool

	// Find state. Match counts are fed back in by the owner after each
	// query change; the dialog only displays them.
	MatchCount int
	MatchIndex int // 0-based, -1 when no matches
	UseRegex   bool

	// Replace state
	ReplaceInput  string
	ReplaceCursor int
	ReplaceActive bool // true when cursor is in replace field
	ReplaceMode   bool // true when find+replace dialog is open

	Theme *config.ColorScheme

	// Callbacks
	OnSubmit     func(value string)
	OnCancel     func()
	OnChange     func(value string) // fired as the find query is edited
	OnNext       func()
	OnPrev       func()
	OnConfirm    func(answer rune) // 'y', 'n', 'c'
	OnReplace    func(replacement string)
	OnReplaceAll func(find, replacement string) int

	// Generic input dialog prompt
	Prompt string
}

func NewFindDialog() *Dialog {
	return &Dialog{
		Type:       DialogFind,
		MatchIndex: -1,
		focused:    true,
	}
}

func NewFindReplaceDialog() *Dialog {
	return &Dialog{
		Type:        DialogFind,
		MatchIndex:  -1,
		ReplaceMode: true,
		focused:     true,
	}
}

func NewInputDialog(prompt string) *Dialog {
	return &Dialog{
		Type:    DialogInput,
		Prompt:  prompt,
		focused: true,
	}
}

func NewConfirmDialog(filename string) *Dialog {
	return &Dialog{
		Type:    DialogConfirm,
		Input:   filename,
		focused: true,
	}
}

func NewReloadConfirmDialog(filename string) *Dialog {
	return &Dialog{
		Type:    DialogReloadConfirm,
		Input:   filename,
		focused: true,
	}
}

func NewHelpDialog() *Dialog {
	return &Dialog{
		Type:    DialogHelp,
		focused: true,
	}
}

func (d *Dialog) Render(screen tcell.Screen, x, y, width, height int) {
	switch d.Type {
	case DialogFind:
		d.renderInputBar(screen, x, y, width, "Find: ")
		if d.ReplaceMode {
			d.renderReplaceBar(screen, x, y+1, width, "Replace: ")
		}
	case DialogInput:
		d.renderInputBar(screen, x, y, width, d.Prompt)
	case DialogConfirm:
		d.renderConfirm(screen, x, y, width)
	case DialogReloadConfirm:
		d.renderReloadConfirm(screen, x, y, width)
	case DialogHelp:
		d.renderHelp(screen, x, y, width, height)
	}
}

func (d *Dialog) theme() *config.ColorScheme {
	if d.Theme != nil {
		return d.Theme
	}
	return config.Themes["monokai"]
}

func (d *Dialog) renderInputBar(screen tcell.Screen, x, y, width int, prompt string) {
	theme := d.theme()
	style := tcell.StyleDefault.Background(theme.DialogInputBg).Foreground(theme.DialogFg)
	promptStyle := style.Foreground(tcell.ColorYellow).Bold(true)
	// Dim the find bar when the replace field is active
	if d.ReplaceMode && d.ReplaceActive {
		promptStyle = style.Foreground(tcell.ColorOlive)
	}

	// Clear line
	for cx := x; cx < x+width; cx++ {
		screen.SetContent(cx, y, ' ', nil, style)
	}

	col := x
	// Prompt
	for _, ch := range prompt {
		if col < x+width {
			screen.SetContent(col, y, ch, nil, promptStyle)
			col++
		}
	}

	// Input text
	for i, ch := range d.Input {
		if col >= x+width {
			break
		}
		if i == d.Cursor && !d.ReplaceActive {
			screen.SetContent(col, y, ch, nil, style.Reverse(true))
		} else {
			screen.SetContent(col, y, ch, nil, style)
		}
		col++
	}

	// Cursor at end
	if !d.ReplaceActive && d.Cursor >= len([]rune(d.Input)) && col < x+width {
		screen.SetContent(col, y, ' ', nil, style.Reverse(true))
		col++
	}

	// Match count for find dialog
	if d.Type == DialogFind {
		var info string
		if d.UseRegex {
			info = " [.*]"
		}
		if d.MatchCount > 0 {
			info += " (" + strconv.Itoa(d.MatchIndex+1) + "/" + strconv.Itoa(d.MatchCount) + ")"
		} else if d.Input != "" {
			info += " (0)"
		}
		if info != "" {
			infoStart := x + width - len(info)
			if infoStart > col {
				infoStyle := style.Foreground(tcell.ColorGray)
				for i, ch := range info {
					screen.SetContent(infoStart+i, y, ch, nil, infoStyle)
				}
			}
		}
	}
}

// renderReplaceBar renders the replace input bar below the find bar
func (d *Dialog) renderReplaceBar(screen tcell.Screen, x, y, width int, prompt string) {
	theme := d.theme()
	style := tcell.StyleDefault.Background(theme.DialogInputBg).Foreground(theme.DialogFg)
	promptStyle := style.Foreground(tcell.ColorYellow).Bold(true)
	if !d.ReplaceActive {
		promptStyle = style.Foreground(tcell.ColorOlive)
	}

	// Clear line
	for cx := x; cx < x+width; cx++ {
		screen.SetContent(cx, y, ' ', nil, style)
	}

	col := x
	for _, ch := range prompt {
		if col < x+width {
			screen.SetContent(col, y, ch, nil, promptStyle)
			col++
		}
	}

	for i, ch := range d.ReplaceInput {
		if col >= x+width {
			break
		}
		if i == d.ReplaceCursor && d.ReplaceActive {
			screen.SetContent(col, y, ch, nil, style.Reverse(true))
		} else {
			screen.SetContent(col, y, ch, nil, style)
		}
		col++
	}

	// Cursor at end
	if d.ReplaceActive && d.ReplaceCursor >= len([]rune(d.ReplaceInput)) && col < x+width {
		screen.SetContent(col, y, ' ', nil, style.Reverse(true))
		col++
	}

	// Hint text
	hint := " Enter=Replace  Ctrl+A=All"
	hintStart := x + width - len(hint)
	if hintStart > col {
		for i, ch := range hint {
			screen.SetContent(hintStart+i, y, ch, nil, style.Foreground(tcell.ColorGray))
		}
	}
}

func (d *Dialog) renderConfirm(screen tcell.Screen, x, y, width int) {
	style := tcell.StyleDefault.Background(tcell.ColorDarkRed).Foreground(tcell.ColorWhite)
	msg := " Save changes to " + d.Input + "? [Y]es [N]o [C]ancel "

	for cx := x; cx < x+width; cx++ {
		screen.SetContent(cx, y, ' ', nil, style)
	}

	col := x
	for _, ch := range msg {
		if col < x+width {
			screen.SetContent(col, y, ch, nil, style)
			col++
		}
	}
}

func (d *Dialog) renderReloadConfirm(screen tcell.Screen, x, y, width int) {
	style := tcell.StyleDefault.Background(tcell.ColorOrange).Foreground(tcell.ColorBlack)
	msg := " Reload " + d.Input + " from disk? Unsaved edits will be lost. [Y]es [C]ancel "

	for cx := x; cx < x+width; cx++ {
		screen.SetContent(cx, y, ' ', nil, style)
	}

	col := x
	for _, ch := range msg {
		if col < x+width {
			screen.SetContent(col, y, ch, nil, style)
			col++
		}
	}
}

func (d *Dialog) renderHelp(screen tcell.Screen, x, y, width, height int) {
	overlayStyle := tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorBlack)
	borderStyle := tcell.StyleDefault.Background(tcell.ColorDarkSlateGray).Foreground(tcell.ColorWhite)
	bgStyle := tcell.StyleDefault.Background(tcell.ColorDarkSlateGray).Foreground(tcell.ColorWhite)
	titleStyle := tcell.StyleDefault.Background(tcell.ColorTeal).Foreground(tcell.ColorBlack).Bold(true)
	categoryStyle := tcell.StyleDefault.Background(tcell.ColorDarkSlateGray).Foreground(tcell.ColorLightCyan).Bold(true)
	keyStyle := tcell.StyleDefault.Background(tcell.ColorDarkSlateGray).Foreground(tcell.ColorYellow)
	descStyle := tcell.StyleDefault.Background(tcell.ColorDarkSlateGray).Foreground(tcell.ColorSilver)
	footerStyle := tcell.StyleDefault.Background(tcell.ColorDarkSlateGray).Foreground(tcell.ColorGray).Italic(true)

	keybindings := []struct {
		category string
		key      string
		desc     string
	}{
		{"FILE", "", ""},
		{"", "Ctrl+S", "Save file"},
		{"", "Alt+X", "Export as .xlsx"},
		{"", "Ctrl+Q", "Quit"},
		{"", "", ""},
		{"EDITING", "", ""},
		{"", "Enter / F2", "Edit active cell"},
		{"", "typing", "Replace cell and edit"},
		{"", "Delete", "Clear selected cells"},
		{"", "Ctrl+Z / Ctrl+Y", "Undo / Redo"},
		{"", "Ctrl+C / X / V", "Copy / Cut / Paste"},
		{"", "Ctrl+A", "Select all"},
		{"", "Alt+R / Alt+D", "Insert row / Delete rows"},
		{"", "Alt+C / Alt+Shift+C", "Insert / Delete column"},
		{"", "Alt+Up/Down", "Move row up/down"},
		{"", "Alt+E", "Delete empty rows"},
		{"", "Alt+W / Alt+Shift+W", "Auto-fit column / all"},
		{"", "Alt+=", "Equal column widths"},
		{"", "Alt+M", "Cycle modified cells"},
		{"", "", ""},
		{"NAVIGATION", "", ""},
		{"", "Arrows / Tab / Enter", "Move active cell"},
		{"", "Shift+Arrow", "Extend selection"},
		{"", "PgUp / PgDn", "Page up / down"},
		{"", "Ctrl+Home / Ctrl+End", "First / last cell"},
		{"", "Ctrl+G", "Go to cell (e.g. C12)"},
		{"", "", ""},
		{"DATA", "", ""},
		{"", "F4 / Shift+F4", "Sort column / add sort key"},
		{"", "F5", "Clear sort"},
		{"", "Alt+F", "Filter column by text"},
		{"", "Ctrl+E", "Filter column by expression"},
		{"", "Ctrl+L", "Clear filters"},
		{"", "Alt+Z / Alt+U", "Freeze at cell / Unfreeze"},
		{"", "", ""},
		{"SEARCH", "", ""},
		{"", "Ctrl+F", "Find"},
		{"", "Ctrl+R", "Find and replace"},
		{"", "F3 / Shift+F3", "Next / Previous match"},
		{"", "Alt+R (in find)", "Toggle regex"},
		{"", "Esc", "Close dialog / Clear search"},
	}

	dialogW := 62
	dialogH := len(keybindings) + 4
	if dialogW > width-4 {
		dialogW = width - 4
	}
	if dialogH > height-2 {
		dialogH = height - 2
	}

	dialogX := x + (width-dialogW)/2
	dialogY := y + (height-dialogH)/2

	// Semi-transparent overlay
	for dy := 0; dy < height; dy++ {
		for dx := 0; dx < width; dx++ {
			screen.SetContent(x+dx, y+dy, '░', nil, overlayStyle)
		}
	}

	// Dialog box background
	for dy := 0; dy < dialogH; dy++ {
		for dx := 0; dx < dialogW; dx++ {
			screen.SetContent(dialogX+dx, dialogY+dy, ' ', nil, bgStyle)
		}
	}

	// Border
	for dx := 0; dx < dialogW; dx++ {
		screen.SetContent(dialogX+dx, dialogY, '─', nil, borderStyle)
		screen.SetContent(dialogX+dx, dialogY+dialogH-1, '─', nil, borderStyle)
	}
	for dy := 0; dy < dialogH; dy++ {
		screen.SetContent(dialogX, dialogY+dy, '│', nil, borderStyle)
		screen.SetContent(dialogX+dialogW-1, dialogY+dy, '│', nil, borderStyle)
	}
	screen.SetContent(dialogX, dialogY, '┌', nil, borderStyle)
	screen.SetContent(dialogX+dialogW-1, dialogY, '┐', nil, borderStyle)
	screen.SetContent(dialogX, dialogY+dialogH-1, '└', nil, borderStyle)
	screen.SetContent(dialogX+dialogW-1, dialogY+dialogH-1, '┘', nil, borderStyle)

	// Title bar
	title := " Keyboard Shortcuts "
	titleX := dialogX + (dialogW-len(title))/2
	for dx := 1; dx < dialogW-1; dx++ {
		screen.SetContent(dialogX+dx, dialogY, '─', nil, titleStyle)
	}
	for i, ch := range title {
		screen.SetContent(titleX+i, dialogY, ch, nil, titleStyle)
	}

	// Keybindings
	row := dialogY + 2
	for _, kb := range keybindings {
		if row >= dialogY+dialogH-2 {
			break
		}

		if kb.category != "" {
			col := dialogX + 3
			for _, ch := range kb.category {
				if col < dialogX+dialogW-3 {
					screen.SetContent(col, row, ch, nil, categoryStyle)
					col++
				}
			}
			row++
			continue
		}

		if kb.key == "" {
			row++
			continue
		}

		col := dialogX + 5
		for _, ch := range kb.key {
			if col < dialogX+dialogW-3 {
				screen.SetContent(col, row, ch, nil, keyStyle)
				col++
			}
		}

		col = dialogX + 28
		for _, ch := range kb.desc {
			if col < dialogX+dialogW-3 {
				screen.SetContent(col, row, ch, nil, descStyle)
				col++
			}
		}

		row++
	}

	// Footer
	footer := "Press ESC or F1 to close"
	footerY := dialogY + dialogH - 1
	footerX := dialogX + (dialogW-len(footer))/2
	for i, ch := range footer {
		screen.SetContent(footerX+i, footerY, ch, nil, footerStyle)
	}
}

func (d *Dialog) HandleKey(ev *tcell.EventKey) bool {
	switch d.Type {
	case DialogConfirm:
		return d.handleConfirmKey(ev)
	case DialogReloadConfirm:
		return d.handleReloadConfirmKey(ev)
	case DialogHelp:
		return d.handleHelpKey(ev)
	}
	return d.handleInputKey(ev)
}

func (d *Dialog) handleConfirmKey(ev *tcell.EventKey) bool {
	ch := ev.Rune()
	switch {
	case ch == 'y' || ch == 'Y':
		if d.OnConfirm != nil {
			d.OnConfirm('y')
		}
	case ch == 'n' || ch == 'N':
		if d.OnConfirm != nil {
			d.OnConfirm('n')
		}
	case ch == 'c' || ch == 'C' || ev.Key() == tcell.KeyEscape:
		if d.OnConfirm != nil {
			d.OnConfirm('c')
		}
	}
	return true
}

func (d *Dialog) handleReloadConfirmKey(ev *tcell.EventKey) bool {
	ch := ev.Rune()
	switch {
	case ch == 'y' || ch == 'Y':
		if d.OnConfirm != nil {
			d.OnConfirm('y')
		}
	case ch == 'c' || ch == 'C' || ev.Key() == tcell.KeyEscape:
		if d.OnConfirm != nil {
			d.OnConfirm('c')
		}
	}
	return true
}

func (d *Dialog) handleHelpKey(ev *tcell.EventKey) bool {
	if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyF1 || ev.Key() == tcell.KeyCtrlH {
		if d.OnCancel != nil {
			d.OnCancel()
		}
	}
	return true
}

func (d *Dialog) changed() {
	if d.Type == DialogFind && d.OnChange != nil {
		d.OnChange(d.Input)
	}
}

func (d *Dialog) handleInputKey(ev *tcell.EventKey) bool {
	// F3/Shift+F3 for find navigation
	if d.Type == DialogFind {
		switch ev.Key() {
		case tcell.KeyF3:
			if ev.Modifiers()&tcell.ModShift != 0 {
				if d.OnPrev != nil {
					d.OnPrev()
				}
			} else if d.OnNext != nil {
				d.OnNext()
			}
			return true
		case tcell.KeyTab, tcell.KeyBacktab:
			// Toggle between find and replace fields
			if d.ReplaceMode {
				d.ReplaceActive = !d.ReplaceActive
			}
			return true
		case tcell.KeyRune:
			if ev.Modifiers()&tcell.ModAlt != 0 && (ev.Rune() == 'r' || ev.Rune() == 'R') {
				d.UseRegex = !d.UseRegex
				d.changed()
				return true
			}
		}
	}

	switch ev.Key() {
	case tcell.KeyEscape:
		if d.OnCancel != nil {
			d.OnCancel()
		}
		return true
	case tcell.KeyEnter:
		if d.ReplaceMode && d.ReplaceActive {
			if d.OnReplace != nil && d.MatchCount > 0 {
				d.OnReplace(d.ReplaceInput)
			}
			return true
		}
		if d.OnSubmit != nil {
			d.OnSubmit(d.Input)
		}
		return true
	case tcell.KeyCtrlA:
		if d.ReplaceMode && d.ReplaceActive {
			if d.OnReplaceAll != nil {
				d.OnReplaceAll(d.Input, d.ReplaceInput)
			}
			return true
		}
		return false
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if d.ReplaceMode && d.ReplaceActive {
			if d.ReplaceCursor > 0 {
				runes := []rune(d.ReplaceInput)
				d.ReplaceInput = string(runes[:d.ReplaceCursor-1]) + string(runes[d.ReplaceCursor:])
				d.ReplaceCursor--
			}
			return true
		}
		if d.Cursor > 0 {
			runes := []rune(d.Input)
			d.Input = string(runes[:d.Cursor-1]) + string(runes[d.Cursor:])
			d.Cursor--
			d.changed()
		}
		return true
	case tcell.KeyDelete:
		if d.ReplaceMode && d.ReplaceActive {
			runes := []rune(d.ReplaceInput)
			if d.ReplaceCursor < len(runes) {
				d.ReplaceInput = string(runes[:d.ReplaceCursor]) + string(runes[d.ReplaceCursor+1:])
			}
			return true
		}
		runes := []rune(d.Input)
		if d.Cursor < len(runes) {
			d.Input = string(runes[:d.Cursor]) + string(runes[d.Cursor+1:])
			d.changed()
		}
		return true
	case tcell.KeyLeft:
		if d.ReplaceMode && d.ReplaceActive {
			if d.ReplaceCursor > 0 {
				d.ReplaceCursor--
			}
			return true
		}
		if d.Cursor > 0 {
			d.Cursor--
		}
		return true
	case tcell.KeyRight:
		if d.ReplaceMode && d.ReplaceActive {
			if d.ReplaceCursor < len([]rune(d.ReplaceInput)) {
				d.ReplaceCursor++
			}
			return true
		}
		if d.Cursor < len([]rune(d.Input)) {
			d.Cursor++
		}
		return true
	case tcell.KeyHome:
		if d.ReplaceMode && d.ReplaceActive {
			d.ReplaceCursor = 0
		} else {
			d.Cursor = 0
		}
		return true
	case tcell.KeyEnd:
		if d.ReplaceMode && d.ReplaceActive {
			d.ReplaceCursor = len([]rune(d.ReplaceInput))
		} else {
			d.Cursor = len([]rune(d.Input))
		}
		return true
	default:
		if ev.Key() == tcell.KeyRune {
			ch := ev.Rune()
			if d.ReplaceMode && d.ReplaceActive {
				runes := []rune(d.ReplaceInput)
				d.ReplaceInput = string(runes[:d.ReplaceCursor]) + string(ch) + string(runes[d.ReplaceCursor:])
				d.ReplaceCursor++
				return true
			}
			runes := []rune(d.Input)
			d.Input = string(runes[:d.Cursor]) + string(ch) + string(runes[d.Cursor:])
			d.Cursor++
			d.changed()
			return true
		}
	}
	return false
}

func (d *Dialog) HandleMouse(ev *tcell.EventMouse) bool { return false }
func (d *Dialog) IsFocused() bool                       { return d.focused }
func (d *Dialog) SetFocused(f bool)                     { d.focused = f }
