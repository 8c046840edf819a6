package grid

import (
	"errors"
	"strconv"
	"strings"
)

// ErrNoDestination is returned by PasteTSV when neither an anchor nor
// a selected cell gives the paste a starting position.
var ErrNoDestination = errors.New("no cell selected for paste")

// EncodeTSV serializes the bounding rectangle of the selection as
// tab-separated values, one line per row. Cells inside the rectangle
// that are not individually selected serialize as empty fields.
// Embedded tabs or newlines in cell text are not escaped, so such
// cells do not round-trip.
func EncodeTSV(sel *Selection, g *Grid) string {
	lo, hi, ok := sel.Bounds()
	if !ok {
		return ""
	}
	var b strings.Builder
	for row := lo.Row; row <= hi.Row; row++ {
		if row > lo.Row {
			b.WriteByte('\n')
		}
		for col := lo.Col; col <= hi.Col; col++ {
			if col > lo.Col {
				b.WriteByte('\t')
			}
			if sel.Has(Pos{row, col}) {
				b.WriteString(g.ValueString(row, col))
			}
		}
	}
	return b.String()
}

// ParseToken types one pasted field: empty stays empty, numbers parse
// as numbers, exactly "true"/"false" become booleans, everything else
// is text.
func ParseToken(field string) Value {
	if field == "" {
		return Empty()
	}
	if n, err := strconv.ParseFloat(field, 64); err == nil {
		return Number(n)
	}
	if field == "true" || field == "false" {
		return Boolean(field == "true")
	}
	return Text(field)
}

// PasteOrigin resolves where a paste lands: the selection anchor, or
// the row-major first selected cell. Fails when the selection is empty.
func PasteOrigin(sel *Selection) (Pos, error) {
	if p, ok := sel.Anchor(); ok {
		return p, nil
	}
	cells := sel.Cells()
	if len(cells) == 0 {
		return Pos{}, ErrNoDestination
	}
	return cells[0], nil
}

// PasteTSV splits text on newlines then tabs and writes the block into
// the grid starting at origin. Rows and columns that fall outside the
// grid are dropped silently. Returns the applied changes with their
// prior values, for undo capture.
func PasteTSV(text string, origin Pos, g *Grid) []ValueChange {
	if text == "" {
		return nil
	}
	var changes []ValueChange
	lines := strings.Split(strings.TrimSuffix(text, "\n"), "\n")
	for dr, line := range lines {
		row := origin.Row + dr
		if row >= g.RowCount() {
			break
		}
		for dc, field := range strings.Split(line, "\t") {
			col := origin.Col + dc
			if col >= g.ColCount() {
				break
			}
			v := ParseToken(field)
			changes = append(changes, ValueChange{
				Row: row, Col: col,
				Old: g.Value(row, col), New: v,
			})
			g.SetValue(row, col, v)
		}
	}
	return changes
}

// ClearValues empties every given position and returns the prior
// values for undo capture.
func ClearValues(cells []Pos, g *Grid) []CellClear {
	out := make([]CellClear, 0, len(cells))
	for _, p := range cells {
		out = append(out, CellClear{Row: p.Row, Col: p.Col, Old: g.Value(p.Row, p.Col)})
		g.SetValue(p.Row, p.Col, Empty())
	}
	return out
}
