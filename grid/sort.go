package grid

import (
	"sort"
	"strings"
)

// SortKey is one level of a multi-column sort.
type SortKey struct {
	Col       int
	Ascending bool
}

// valueRank orders mixed variants: Number < Bool < Text < Date, with
// Empty handled separately (always last on its level).
func valueRank(v Value) int {
	switch v.Kind {
	case KindNumber:
		return 0
	case KindBool:
		return 1
	case KindText:
		return 2
	case KindDate:
		return 3
	default:
		return 4
	}
}

// Compare orders two values for an ascending sort level: -1, 0 or 1.
// Within a variant natural order applies (numeric, false<true,
// lexicographic). Mixed variants order by rank.
func Compare(a, b Value) int {
	if ra, rb := valueRank(a), valueRank(b); ra != rb {
		if ra < rb {
			return -1
		}
		return 1
	}
	switch a.Kind {
	case KindNumber:
		switch {
		case a.Num < b.Num:
			return -1
		case a.Num > b.Num:
			return 1
		}
		return 0
	case KindBool:
		switch {
		case !a.Bool && b.Bool:
			return -1
		case a.Bool && !b.Bool:
			return 1
		}
		return 0
	case KindText, KindDate:
		return strings.Compare(a.Str, b.Str)
	default:
		return 0
	}
}

// compareLevel applies one sort level. Empty values sort last in both
// directions; only the non-empty comparison is reversed when descending.
func compareLevel(a, b Value, ascending bool) int {
	ae, be := a.IsEmpty(), b.IsEmpty()
	switch {
	case ae && be:
		return 0
	case ae:
		return 1
	case be:
		return -1
	}
	c := Compare(a, b)
	if !ascending {
		c = -c
	}
	return c
}

// SortByColumn physically reorders rows by the values in col.
// Row heights travel with their rows; column geometry is untouched.
// Clears any active multi-column sort.
func (g *Grid) SortByColumn(col int, ascending bool) {
	if col < 0 || col >= g.cols {
		return
	}
	g.SortColumn = col
	g.SortAscending = ascending
	g.SortKeys = nil
	g.sortRows([]SortKey{{col, ascending}})
}

// AddSortKey adds or updates one level of the multi-column sort and
// re-sorts. The first level doubles as the primary sort column.
func (g *Grid) AddSortKey(col int, ascending bool) {
	if col < 0 || col >= g.cols {
		return
	}
	found := false
	for i, k := range g.SortKeys {
		if k.Col == col {
			g.SortKeys[i].Ascending = ascending
			found = true
			break
		}
	}
	if !found {
		g.SortKeys = append(g.SortKeys, SortKey{col, ascending})
	}
	g.SortColumn = g.SortKeys[0].Col
	g.SortAscending = g.SortKeys[0].Ascending
	g.sortRows(g.SortKeys)
}

// ClearSort drops all sort state without reordering rows.
func (g *Grid) ClearSort() {
	g.SortColumn = -1
	g.SortKeys = nil
}

// sortRows establishes a total row order over the given key levels and
// remaps cells and row heights. The sort is stable: rows whose full key
// tuple compares equal keep their relative order.
func (g *Grid) sortRows(keys []SortKey) {
	if len(keys) == 0 {
		return
	}
	order := make([]int, g.rows)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		ri, rj := order[i], order[j]
		for _, k := range keys {
			c := compareLevel(g.Value(ri, k.Col), g.Value(rj, k.Col), k.Ascending)
			if c != 0 {
				return c < 0
			}
		}
		return false
	})

	// order[new] = old; invert to remap keys old -> new.
	newRow := make([]int, g.rows)
	for n, old := range order {
		newRow[old] = n
	}
	moved := make(map[Pos]*Cell, len(g.cells))
	for p, c := range g.cells {
		p.Row = newRow[p.Row]
		moved[p] = c
	}
	g.cells = moved

	heights := make([]float64, g.rows)
	for old, n := range newRow {
		heights[n] = g.rowHeights[old]
	}
	g.rowHeights = heights
}
