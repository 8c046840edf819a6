package config

import (
	"bufio"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// FileOverrides are per-file display settings from .gridview files.
// Nil pointer fields mean unset.
type FileOverrides struct {
	CSVHeader     *bool
	ReadOnly      *bool
	ShowGridLines *bool
	AlternateRows *bool
	FrozenRows    *int
	FrozenCols    *int
	Theme         string
}

// Apply overlays the overrides onto a config.
func (o *FileOverrides) Apply(c *Config) {
	if o == nil {
		return
	}
	if o.CSVHeader != nil {
		c.CSVHeader = *o.CSVHeader
	}
	if o.ReadOnly != nil {
		c.ReadOnly = *o.ReadOnly
	}
	if o.ShowGridLines != nil {
		c.ShowGridLines = *o.ShowGridLines
	}
	if o.AlternateRows != nil {
		c.AlternateRows = *o.AlternateRows
	}
	if o.FrozenRows != nil {
		c.FrozenRows = *o.FrozenRows
	}
	if o.FrozenCols != nil {
		c.FrozenCols = *o.FrozenCols
	}
	if o.Theme != "" {
		c.Theme = o.Theme
	}
}

// FindFileOverrides searches for .gridview files from the data file's
// directory upward, parses sections whose glob matches the file name,
// and returns the merged overrides. Returns nil when nothing matches.
//
// A .gridview file is INI-shaped:
//
//	root = true
//	[*.csv]
//	csv_header = false
//	frozen_rows = 1
func FindFileOverrides(filePath string) *FileOverrides {
	absPath, err := filepath.Abs(filePath)
	if err != nil {
		return nil
	}

	fileName := filepath.Base(absPath)
	dir := filepath.Dir(absPath)

	// Collect .gridview files from closest to farthest
	var configs []map[string]string
	for {
		ovPath := filepath.Join(dir, ".gridview")
		if props, isRoot := parseOverrideFile(ovPath, fileName); props != nil {
			configs = append(configs, props)
			if isRoot {
				break
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	if len(configs) == 0 {
		return nil
	}

	// Merge: closest file takes precedence (already first in slice).
	// Start from farthest and let closer files overwrite.
	merged := make(map[string]string)
	for i := len(configs) - 1; i >= 0; i-- {
		for k, v := range configs[i] {
			merged[k] = v
		}
	}

	return overridesFromMap(merged)
}

// parseOverrideFile reads a .gridview file and returns the merged
// properties for sections matching fileName. Returns (nil, false) if
// the file doesn't exist. The bool reports whether root = true was set.
func parseOverrideFile(path, fileName string) (map[string]string, bool) {
	f, err := os.Open(path)
	if err != nil {
		return nil, false
	}
	defer f.Close()

	props := make(map[string]string)
	isRoot := false
	inMatchingSection := false
	inPreamble := true // before any section header

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if line == "" || line[0] == '#' || line[0] == ';' {
			continue
		}

		// Section header
		if line[0] == '[' && line[len(line)-1] == ']' {
			inPreamble = false
			pattern := line[1 : len(line)-1]
			inMatchingSection = matchPattern(pattern, fileName)
			continue
		}

		// Key = value
		eqIdx := strings.IndexByte(line, '=')
		if eqIdx < 0 {
			continue
		}
		key := strings.ToLower(strings.TrimSpace(line[:eqIdx]))
		value := strings.ToLower(strings.TrimSpace(line[eqIdx+1:]))

		if inPreamble && key == "root" && value == "true" {
			isRoot = true
			continue
		}

		if inMatchingSection {
			props[key] = value
		}
	}

	if len(props) == 0 {
		return nil, isRoot
	}
	return props, isRoot
}

// matchPattern checks if fileName matches a glob pattern, expanding
// {a,b,c} braces into multiple patterns for filepath.Match.
func matchPattern(pattern, fileName string) bool {
	patterns := expandBraces(pattern)
	for _, p := range patterns {
		if matched, _ := filepath.Match(p, fileName); matched {
			return true
		}
	}
	return false
}

// expandBraces expands brace expressions like "*.{csv,tsv}" into
// ["*.csv", "*.tsv"]. Handles one level of brace expansion.
func expandBraces(pattern string) []string {
	braceStart := strings.IndexByte(pattern, '{')
	if braceStart < 0 {
		return []string{pattern}
	}

	// Find the matching closing brace
	braceEnd := -1
	depth := 0
	for i := braceStart; i < len(pattern); i++ {
		switch pattern[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				braceEnd = i
			}
		}
		if braceEnd >= 0 {
			break
		}
	}

	if braceEnd < 0 {
		return []string{pattern}
	}

	prefix := pattern[:braceStart]
	suffix := pattern[braceEnd+1:]
	alternatives := splitBraceAlternatives(pattern[braceStart+1 : braceEnd])

	var results []string
	for _, alt := range alternatives {
		// Recursively expand in case suffix has more braces
		expanded := expandBraces(prefix + alt + suffix)
		results = append(results, expanded...)
	}
	return results
}

// splitBraceAlternatives splits "a,b,c" respecting nested braces.
func splitBraceAlternatives(s string) []string {
	var parts []string
	depth := 0
	start := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '{':
			depth++
		case '}':
			depth--
		case ',':
			if depth == 0 {
				parts = append(parts, s[start:i])
				start = i + 1
			}
		}
	}
	parts = append(parts, s[start:])
	return parts
}

func overridesFromMap(m map[string]string) *FileOverrides {
	o := &FileOverrides{}
	hasAny := false

	boolKey := func(key string, dst **bool) {
		if v, ok := m[key]; ok {
			b := v == "true"
			*dst = &b
			hasAny = true
		}
	}
	intKey := func(key string, dst **int) {
		if v, ok := m[key]; ok {
			if n, err := strconv.Atoi(v); err == nil && n >= 0 {
				*dst = &n
				hasAny = true
			}
		}
	}

	boolKey("csv_header", &o.CSVHeader)
	boolKey("read_only", &o.ReadOnly)
	boolKey("show_grid_lines", &o.ShowGridLines)
	boolKey("alternate_row_colors", &o.AlternateRows)
	intKey("frozen_rows", &o.FrozenRows)
	intKey("frozen_cols", &o.FrozenCols)
	if v, ok := m["theme"]; ok {
		o.Theme = v
		hasAny = true
	}

	if !hasAny {
		return nil
	}
	return o
}
