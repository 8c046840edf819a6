package grid

import "fmt"

// DataType is the declared type of a column, used when importing
// untyped data and shown in column configuration.
type DataType int

const (
	TypeText DataType = iota
	TypeNumber
	TypeDate
	TypeBool
)

// Column describes one column of the grid.
type Column struct {
	Name       string // display name shown in the header
	Key        string // internal unique identifier
	Width      float64
	Type       DataType
	Editable   bool
	Visible    bool
	Sortable   bool
	Filterable bool
}

func NewColumn(name, key string) Column {
	return Column{
		Name:       name,
		Key:        key,
		Width:      defaultColWidth,
		Type:       TypeText,
		Editable:   true,
		Visible:    true,
		Sortable:   true,
		Filterable: true,
	}
}

// defaultColumn builds the config for an unnamed column: letter display
// name, col_N internal key.
func defaultColumn(i int) Column {
	return NewColumn(ColumnLetter(i), fmt.Sprintf("col_%d", i))
}

// ColumnLetter converts a zero-based column index to its spreadsheet
// letter name: 0 -> A, 25 -> Z, 26 -> AA.
func ColumnLetter(index int) string {
	var buf [8]byte
	i := len(buf)
	n := index + 1
	for n > 0 {
		i--
		buf[i] = byte('A' + (n-1)%26)
		n = (n - 1) / 26
	}
	return string(buf[i:])
}

// SetColumn replaces the config of column i. Out-of-bounds indexes are
// ignored. The column's width is mirrored into the geometry array.
func (g *Grid) SetColumn(i int, c Column) {
	if i < 0 || i >= g.cols {
		return
	}
	g.Columns[i] = c
	g.colWidths[i] = c.Width
}

// Column returns the config of column i, or a zero Column if out of bounds.
func (g *Grid) Column(i int) Column {
	if i < 0 || i >= len(g.Columns) {
		return Column{}
	}
	return g.Columns[i]
}

// ColumnByKey returns the index of the column with the given internal
// key, or -1 if none matches.
func (g *Grid) ColumnByKey(key string) int {
	for i, c := range g.Columns {
		if c.Key == key {
			return i
		}
	}
	return -1
}
