package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/gdamore/tcell/v2"
)

type Config struct {
	Rows          int     `json:"rows"`
	Cols          int     `json:"cols"`
	ColWidth      float64 `json:"col_width"`  // character cells
	RowHeight     float64 `json:"row_height"` // screen rows
	Theme         string  `json:"theme"`
	ShowHeaders   bool    `json:"show_headers"`
	ShowGridLines bool    `json:"show_grid_lines"`
	AlternateRows bool    `json:"alternate_row_colors"`
	FrozenRows    int     `json:"frozen_rows"`
	FrozenCols    int     `json:"frozen_cols"`
	ReadOnly      bool    `json:"read_only"`
	CSVHeader     bool    `json:"csv_header"`
	WatchFile     bool    `json:"watch_file"`
}

type ColorScheme struct {
	Name            string
	Background      tcell.Color
	Foreground      tcell.Color
	HeaderBg        tcell.Color
	HeaderFg        tcell.Color
	Selection       tcell.Color
	ActiveCellBg    tcell.Color
	GridLine        tcell.Color
	AltRowBg        tcell.Color
	FrozenBg        tcell.Color
	MatchBg         tcell.Color
	CurrentMatchBg  tcell.Color
	ModifiedFg      tcell.Color
	StatusBarBg     tcell.Color
	StatusBarFg     tcell.Color
	StatusBarModeBg tcell.Color
	DialogBg        tcell.Color
	DialogFg        tcell.Color
	DialogInputBg   tcell.Color
}

var Themes = map[string]*ColorScheme{
	"dark": {
		Name:            "Dark",
		Background:      tcell.ColorBlack,
		Foreground:      tcell.ColorWhite,
		HeaderBg:        tcell.ColorDarkSlateGray,
		HeaderFg:        tcell.ColorWhite,
		Selection:       tcell.ColorDarkBlue,
		ActiveCellBg:    tcell.ColorBlue,
		GridLine:        tcell.ColorGray,
		AltRowBg:        tcell.NewRGBColor(20, 20, 20),
		FrozenBg:        tcell.NewRGBColor(30, 30, 40),
		MatchBg:         tcell.ColorDarkGoldenrod,
		CurrentMatchBg:  tcell.ColorGoldenrod,
		ModifiedFg:      tcell.ColorYellow,
		StatusBarBg:     tcell.ColorDarkBlue,
		StatusBarFg:     tcell.ColorWhite,
		StatusBarModeBg: tcell.ColorBlue,
		DialogBg:        tcell.ColorBlack,
		DialogFg:        tcell.ColorWhite,
		DialogInputBg:   tcell.ColorDarkBlue,
	},
	"light": {
		Name:            "Light",
		Background:      tcell.ColorWhite,
		Foreground:      tcell.ColorBlack,
		HeaderBg:        tcell.ColorLightGray,
		HeaderFg:        tcell.ColorBlack,
		Selection:       tcell.ColorLightBlue,
		ActiveCellBg:    tcell.ColorSkyblue,
		GridLine:        tcell.ColorGray,
		AltRowBg:        tcell.NewRGBColor(245, 245, 245),
		FrozenBg:        tcell.NewRGBColor(235, 235, 245),
		MatchBg:         tcell.ColorKhaki,
		CurrentMatchBg:  tcell.ColorGold,
		ModifiedFg:      tcell.ColorDarkRed,
		StatusBarBg:     tcell.ColorLightBlue,
		StatusBarFg:     tcell.ColorBlack,
		StatusBarModeBg: tcell.ColorBlue,
		DialogBg:        tcell.ColorWhite,
		DialogFg:        tcell.ColorBlack,
		DialogInputBg:   tcell.ColorLightGray,
	},
	"monokai": {
		Name:            "Monokai",
		Background:      tcell.NewRGBColor(39, 40, 34),
		Foreground:      tcell.NewRGBColor(248, 248, 242),
		HeaderBg:        tcell.NewRGBColor(73, 72, 62),
		HeaderFg:        tcell.NewRGBColor(248, 248, 242),
		Selection:       tcell.NewRGBColor(73, 72, 62),
		ActiveCellBg:    tcell.NewRGBColor(102, 105, 90),
		GridLine:        tcell.NewRGBColor(144, 144, 128),
		AltRowBg:        tcell.NewRGBColor(45, 46, 40),
		FrozenBg:        tcell.NewRGBColor(50, 51, 44),
		MatchBg:         tcell.NewRGBColor(130, 110, 20),
		CurrentMatchBg:  tcell.NewRGBColor(230, 219, 116),
		ModifiedFg:      tcell.NewRGBColor(230, 219, 116),
		StatusBarBg:     tcell.NewRGBColor(73, 72, 62),
		StatusBarFg:     tcell.NewRGBColor(248, 248, 242),
		StatusBarModeBg: tcell.NewRGBColor(102, 217, 239),
		DialogBg:        tcell.NewRGBColor(39, 40, 34),
		DialogFg:        tcell.NewRGBColor(248, 248, 242),
		DialogInputBg:   tcell.NewRGBColor(73, 72, 62),
	},
	"nord": {
		Name:            "Nord",
		Background:      tcell.NewRGBColor(46, 52, 64),
		Foreground:      tcell.NewRGBColor(236, 239, 244),
		HeaderBg:        tcell.NewRGBColor(67, 76, 94),
		HeaderFg:        tcell.NewRGBColor(236, 239, 244),
		Selection:       tcell.NewRGBColor(67, 76, 94),
		ActiveCellBg:    tcell.NewRGBColor(94, 129, 172),
		GridLine:        tcell.NewRGBColor(76, 86, 106),
		AltRowBg:        tcell.NewRGBColor(52, 58, 70),
		FrozenBg:        tcell.NewRGBColor(59, 66, 82),
		MatchBg:         tcell.NewRGBColor(235, 203, 139),
		CurrentMatchBg:  tcell.NewRGBColor(208, 135, 112),
		ModifiedFg:      tcell.NewRGBColor(235, 203, 139),
		StatusBarBg:     tcell.NewRGBColor(67, 76, 94),
		StatusBarFg:     tcell.NewRGBColor(236, 239, 244),
		StatusBarModeBg: tcell.NewRGBColor(136, 192, 208),
		DialogBg:        tcell.NewRGBColor(46, 52, 64),
		DialogFg:        tcell.NewRGBColor(236, 239, 244),
		DialogInputBg:   tcell.NewRGBColor(67, 76, 94),
	},
	"gruvbox": {
		Name:            "Gruvbox Dark",
		Background:      tcell.NewRGBColor(40, 40, 40),
		Foreground:      tcell.NewRGBColor(235, 219, 178),
		HeaderBg:        tcell.NewRGBColor(60, 56, 54),
		HeaderFg:        tcell.NewRGBColor(251, 241, 199),
		Selection:       tcell.NewRGBColor(60, 56, 54),
		ActiveCellBg:    tcell.NewRGBColor(102, 92, 84),
		GridLine:        tcell.NewRGBColor(102, 92, 84),
		AltRowBg:        tcell.NewRGBColor(46, 46, 46),
		FrozenBg:        tcell.NewRGBColor(50, 48, 47),
		MatchBg:         tcell.NewRGBColor(215, 153, 33),
		CurrentMatchBg:  tcell.NewRGBColor(250, 189, 47),
		ModifiedFg:      tcell.NewRGBColor(250, 189, 47),
		StatusBarBg:     tcell.NewRGBColor(60, 56, 54),
		StatusBarFg:     tcell.NewRGBColor(235, 219, 178),
		StatusBarModeBg: tcell.NewRGBColor(184, 187, 38),
		DialogBg:        tcell.NewRGBColor(40, 40, 40),
		DialogFg:        tcell.NewRGBColor(235, 219, 178),
		DialogInputBg:   tcell.NewRGBColor(60, 56, 54),
	},
}

func Default() *Config {
	return &Config{
		Rows:          100,
		Cols:          26,
		ColWidth:      12,
		RowHeight:     1,
		Theme:         "monokai",
		ShowHeaders:   true,
		ShowGridLines: false,
		CSVHeader:     true,
		WatchFile:     true,
	}
}

func (c *Config) GetTheme() *ColorScheme {
	theme, ok := Themes[c.Theme]
	if !ok {
		return Themes["monokai"]
	}
	return theme
}

func ConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "gridview", "settings.json")
}

func Load() (*Config, error) {
	path := ConfigPath()
	data, err := os.ReadFile(path)
	if err != nil {
		// If file doesn't exist, return default config
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, err
	}

	cfg := Default()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Save() error {
	path := ConfigPath()
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
