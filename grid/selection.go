package grid

import "sort"

// Selection is the set of selected cell positions plus an anchor used
// for range extension. It is a view-level index over the grid: it
// never owns or mutates cell data.
type Selection struct {
	cells     map[Pos]struct{}
	anchor    Pos
	hasAnchor bool
}

func NewSelection() *Selection {
	return &Selection{cells: make(map[Pos]struct{})}
}

// Clear empties the selection. The anchor is kept so a following
// shift-select still extends from it.
func (s *Selection) Clear() {
	s.cells = make(map[Pos]struct{})
}

// SelectSingle replaces the selection with one position and anchors
// there.
func (s *Selection) SelectSingle(p Pos) {
	s.cells = map[Pos]struct{}{p: {}}
	s.anchor = p
	s.hasAnchor = true
}

// Toggle adds or removes one position. The toggled position becomes
// the anchor while the selection is non-empty.
func (s *Selection) Toggle(p Pos) {
	if _, ok := s.cells[p]; ok {
		delete(s.cells, p)
	} else {
		s.cells[p] = struct{}{}
	}
	if len(s.cells) > 0 {
		s.anchor = p
		s.hasAnchor = true
	}
}

// SelectRange replaces the selection with the rectangle between the
// anchor and target, clipped to grid bounds. Without an anchor it
// behaves as SelectSingle.
func (s *Selection) SelectRange(target Pos, g *Grid) {
	if !s.hasAnchor {
		s.SelectSingle(target)
		return
	}
	r0, r1 := s.anchor.Row, target.Row
	if r0 > r1 {
		r0, r1 = r1, r0
	}
	c0, c1 := s.anchor.Col, target.Col
	if c0 > c1 {
		c0, c1 = c1, c0
	}
	s.cells = make(map[Pos]struct{})
	for r := max(r0, 0); r <= r1 && r < g.RowCount(); r++ {
		for c := max(c0, 0); c <= c1 && c < g.ColCount(); c++ {
			s.cells[Pos{r, c}] = struct{}{}
		}
	}
}

// SelectAll selects every cell and anchors at the origin.
func (s *Selection) SelectAll(g *Grid) {
	s.cells = make(map[Pos]struct{}, g.RowCount()*g.ColCount())
	for r := 0; r < g.RowCount(); r++ {
		for c := 0; c < g.ColCount(); c++ {
			s.cells[Pos{r, c}] = struct{}{}
		}
	}
	s.anchor = Pos{0, 0}
	s.hasAnchor = true
}

// SelectRow selects a whole row, anchored at its first cell. A no-op
// when the grid forbids row selection.
func (s *Selection) SelectRow(row int, g *Grid) {
	if !g.RowSelection || row < 0 || row >= g.RowCount() {
		return
	}
	s.cells = make(map[Pos]struct{}, g.ColCount())
	for c := 0; c < g.ColCount(); c++ {
		s.cells[Pos{row, c}] = struct{}{}
	}
	s.anchor = Pos{row, 0}
	s.hasAnchor = true
}

// SelectCol selects a whole column, anchored at its first cell. A
// no-op when the grid forbids column selection.
func (s *Selection) SelectCol(col int, g *Grid) {
	if !g.ColSelection || col < 0 || col >= g.ColCount() {
		return
	}
	s.cells = make(map[Pos]struct{}, g.RowCount())
	for r := 0; r < g.RowCount(); r++ {
		s.cells[Pos{r, col}] = struct{}{}
	}
	s.anchor = Pos{0, col}
	s.hasAnchor = true
}

// Has reports whether p is selected.
func (s *Selection) Has(p Pos) bool {
	_, ok := s.cells[p]
	return ok
}

// Count returns the number of selected cells.
func (s *Selection) Count() int { return len(s.cells) }

// Anchor returns the anchor position, if one is set.
func (s *Selection) Anchor() (Pos, bool) {
	return s.anchor, s.hasAnchor
}

// Cells returns the selected positions in row-major order.
func (s *Selection) Cells() []Pos {
	out := make([]Pos, 0, len(s.cells))
	for p := range s.cells {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Row != out[j].Row {
			return out[i].Row < out[j].Row
		}
		return out[i].Col < out[j].Col
	})
	return out
}

// Rows returns the distinct selected row indices in ascending order.
func (s *Selection) Rows() []int {
	seen := make(map[int]struct{})
	for p := range s.cells {
		seen[p.Row] = struct{}{}
	}
	out := make([]int, 0, len(seen))
	for r := range seen {
		out = append(out, r)
	}
	sort.Ints(out)
	return out
}

// Bounds returns the bounding rectangle of the selection as inclusive
// min/max positions. Reports false when empty.
func (s *Selection) Bounds() (min, max Pos, ok bool) {
	if len(s.cells) == 0 {
		return Pos{}, Pos{}, false
	}
	first := true
	for p := range s.cells {
		if first {
			min, max = p, p
			first = false
			continue
		}
		if p.Row < min.Row {
			min.Row = p.Row
		}
		if p.Row > max.Row {
			max.Row = p.Row
		}
		if p.Col < min.Col {
			min.Col = p.Col
		}
		if p.Col > max.Col {
			max.Col = p.Col
		}
	}
	return min, max, true
}
