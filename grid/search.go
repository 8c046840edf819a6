package grid

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Search holds the query, the ordered match list in row-major scan
// order, and the current match cursor.
type Search struct {
	Query         string
	Results       []Pos
	Current       int // index into Results, -1 when none
	CaseSensitive bool
	WholeWord     bool
}

func NewSearch() *Search {
	return &Search{Current: -1}
}

// SearchText scans every cell for the query with default options
// (case-insensitive substring match) and returns the match count.
func (s *Search) SearchText(query string, g *Grid) int {
	return s.SearchTextOptions(query, false, false, g)
}

// SearchTextOptions scans every cell for the query. Whole-word mode
// requires the query to equal one whitespace-delimited token of the
// cell text; otherwise substring matching applies.
func (s *Search) SearchTextOptions(query string, caseSensitive, wholeWord bool, g *Grid) int {
	s.CaseSensitive = caseSensitive
	s.WholeWord = wholeWord
	s.Query = query
	if !caseSensitive {
		s.Query = strings.ToLower(query)
	}
	s.Results = s.Results[:0]
	s.Current = -1

	if query == "" {
		return 0
	}
	for row := 0; row < g.RowCount(); row++ {
		for col := 0; col < g.ColCount(); col++ {
			text := g.ValueString(row, col)
			if !caseSensitive {
				text = strings.ToLower(text)
			}
			match := false
			if wholeWord {
				for _, word := range strings.Fields(text) {
					if word == s.Query {
						match = true
						break
					}
				}
			} else {
				match = strings.Contains(text, s.Query)
			}
			if match {
				s.Results = append(s.Results, Pos{row, col})
			}
		}
	}
	if len(s.Results) > 0 {
		s.Current = 0
	}
	return len(s.Results)
}

// SearchRegex scans every cell with a compiled regular expression.
// A malformed pattern returns an error and leaves the previous search
// state untouched. The whole-word flag does not apply to patterns.
func (s *Search) SearchRegex(pattern string, caseSensitive bool, g *Grid) (int, error) {
	src := pattern
	if !caseSensitive {
		src = "(?i)" + src
	}
	re, err := regexp.Compile(src)
	if err != nil {
		return 0, fmt.Errorf("invalid search pattern %q: %w", pattern, err)
	}

	s.Query = pattern
	s.CaseSensitive = caseSensitive
	s.WholeWord = false
	s.Results = s.Results[:0]
	s.Current = -1

	for row := 0; row < g.RowCount(); row++ {
		for col := 0; col < g.ColCount(); col++ {
			if re.MatchString(g.ValueString(row, col)) {
				s.Results = append(s.Results, Pos{row, col})
			}
		}
	}
	if len(s.Results) > 0 {
		s.Current = 0
	}
	return len(s.Results), nil
}

// Next advances to the next match, wrapping at the end.
func (s *Search) Next() (Pos, bool) {
	if len(s.Results) == 0 || s.Current < 0 {
		return Pos{}, false
	}
	s.Current = (s.Current + 1) % len(s.Results)
	return s.Results[s.Current], true
}

// Prev steps back to the previous match, wrapping at the start.
func (s *Search) Prev() (Pos, bool) {
	if len(s.Results) == 0 || s.Current < 0 {
		return Pos{}, false
	}
	s.Current--
	if s.Current < 0 {
		s.Current = len(s.Results) - 1
	}
	return s.Results[s.Current], true
}

// CurrentMatch returns the match under the cursor.
func (s *Search) CurrentMatch() (Pos, bool) {
	if s.Current < 0 || s.Current >= len(s.Results) {
		return Pos{}, false
	}
	return s.Results[s.Current], true
}

// FindModified fills the result list with every modified cell in
// row-major order, so next/prev walk the unsaved changes. The query is
// cleared; the results stand alone.
func (s *Search) FindModified(g *Grid) int {
	s.Query = ""
	s.Results = s.Results[:0]
	s.Current = -1
	for row := 0; row < g.RowCount(); row++ {
		for col := 0; col < g.ColCount(); col++ {
			if c := g.Cell(row, col); c != nil && c.Modified {
				s.Results = append(s.Results, Pos{row, col})
			}
		}
	}
	if len(s.Results) > 0 {
		s.Current = 0
	}
	return len(s.Results)
}

// ClearSearch resets query, results and cursor.
func (s *Search) ClearSearch() {
	s.Query = ""
	s.Results = s.Results[:0]
	s.Current = -1
}

// Count returns the number of matches.
func (s *Search) Count() int { return len(s.Results) }

// DisplayIndex returns the 1-based index of the current match for
// status display, or 0 when there is none.
func (s *Search) DisplayIndex() int {
	if s.Current < 0 {
		return 0
	}
	return s.Current + 1
}

// IsMatch reports whether p is in the result list.
func (s *Search) IsMatch(p Pos) bool {
	for _, r := range s.Results {
		if r == p {
			return true
		}
	}
	return false
}

// IsCurrent reports whether p is the match under the cursor.
func (s *Search) IsCurrent(p Pos) bool {
	return s.Current >= 0 && s.Current < len(s.Results) && s.Results[s.Current] == p
}

// replacementValue types a replacement string: number if it parses as
// one, text otherwise.
func replacementValue(replacement string) Value {
	if n, err := strconv.ParseFloat(replacement, 64); err == nil {
		return Number(n)
	}
	return Text(replacement)
}

// ReplaceCurrent writes the replacement into the current match and
// advances to the next one. Reports whether a cell was written.
func (s *Search) ReplaceCurrent(replacement string, g *Grid) bool {
	p, ok := s.CurrentMatch()
	if !ok {
		return false
	}
	g.SetValue(p.Row, p.Col, replacementValue(replacement))
	s.Next()
	return true
}

// ReplaceAll writes the replacement into every match, clears the
// search state, and returns the number of cells written.
func (s *Search) ReplaceAll(replacement string, g *Grid) int {
	count := len(s.Results)
	v := replacementValue(replacement)
	for _, p := range s.Results {
		g.SetValue(p.Row, p.Col, v)
	}
	s.ClearSearch()
	return count
}

// ReplaceInSelection writes the replacement into every selected cell
// whose text contains the search string, and returns the count.
func ReplaceInSelection(search, replacement string, caseSensitive bool, sel *Selection, g *Grid) int {
	needle := search
	if !caseSensitive {
		needle = strings.ToLower(search)
	}
	count := 0
	for _, p := range sel.Cells() {
		text := g.ValueString(p.Row, p.Col)
		if !caseSensitive {
			text = strings.ToLower(text)
		}
		if strings.Contains(text, needle) {
			g.SetValue(p.Row, p.Col, replacementValue(replacement))
			count++
		}
	}
	return count
}
