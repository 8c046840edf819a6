// Package dataio loads and exports grid content in the interchange
// formats: positional JSON records, CSV, and XLSX workbooks.
package dataio

import (
	"encoding/json"
	"fmt"
	"strconv"

	"gridview/grid"
)

// Record is one interchange entry: a position and a typed value.
// On export Value is always a string and Type names the variant; on
// import Value may be a JSON string, number, boolean or null, and the
// declared column type steers string coercion.
type Record struct {
	Row   int    `json:"row"`
	Col   int    `json:"col"`
	Value any    `json:"value"`
	Type  string `json:"type,omitempty"`
}

// LoadRecords populates the grid from a JSON array of records.
// Out-of-bounds positions are skipped, not errors; a malformed payload
// fails without touching the grid. Returns the number of cells loaded.
func LoadRecords(g *grid.Grid, data []byte) (int, error) {
	var records []Record
	if err := json.Unmarshal(data, &records); err != nil {
		return 0, fmt.Errorf("invalid grid data: %w", err)
	}
	loaded := 0
	for _, r := range records {
		if r.Row < 0 || r.Row >= g.RowCount() || r.Col < 0 || r.Col >= g.ColCount() {
			continue
		}
		g.SetValue(r.Row, r.Col, recordValue(r, g.Column(r.Col).Type))
		loaded++
	}
	return loaded, nil
}

// recordValue types one imported value. Strings are coerced per the
// column's declared type; JSON numbers and booleans keep their type.
func recordValue(r Record, colType grid.DataType) grid.Value {
	switch v := r.Value.(type) {
	case nil:
		return grid.Empty()
	case string:
		switch colType {
		case grid.TypeNumber:
			if n, err := strconv.ParseFloat(v, 64); err == nil {
				return grid.Number(n)
			}
			return grid.Text(v)
		case grid.TypeDate:
			return grid.Date(v)
		case grid.TypeBool:
			return grid.Boolean(v == "true" || v == "1")
		default:
			return grid.Text(v)
		}
	case float64:
		return grid.Number(v)
	case bool:
		return grid.Boolean(v)
	default:
		return grid.Text(fmt.Sprint(v))
	}
}

// ExportRecords snapshots every non-empty cell as a JSON array of
// records with string values and explicit type tags.
func ExportRecords(g *grid.Grid) ([]byte, error) {
	return ExportRange(g, 0, g.RowCount()-1, 0, g.ColCount()-1)
}

// ExportRange exports the non-empty cells of an inclusive row/column
// window in row-major order.
func ExportRange(g *grid.Grid, startRow, endRow, startCol, endCol int) ([]byte, error) {
	records := []Record{}
	endRow = min(endRow, g.RowCount()-1)
	endCol = min(endCol, g.ColCount()-1)
	for row := max(startRow, 0); row <= endRow; row++ {
		for col := max(startCol, 0); col <= endCol; col++ {
			v := g.Value(row, col)
			if v.IsEmpty() {
				continue
			}
			records = append(records, Record{
				Row:   row,
				Col:   col,
				Value: v.String(),
				Type:  typeName(v.Kind),
			})
		}
	}
	return json.Marshal(records)
}

func typeName(k grid.ValueKind) string {
	switch k {
	case grid.KindText:
		return "text"
	case grid.KindNumber:
		return "number"
	case grid.KindBool:
		return "boolean"
	case grid.KindDate:
		return "date"
	default:
		return ""
	}
}

// ColumnSpec mirrors grid.Column for JSON column configuration.
type ColumnSpec struct {
	Name       string  `json:"name"`
	Key        string  `json:"key"`
	Width      float64 `json:"width,omitempty"`
	Type       string  `json:"type,omitempty"`
	Editable   *bool   `json:"editable,omitempty"`
	Visible    *bool   `json:"visible,omitempty"`
	Sortable   *bool   `json:"sortable,omitempty"`
	Filterable *bool   `json:"filterable,omitempty"`
}

// LoadColumns applies a JSON array of column specs to the grid,
// left to right. Specs beyond the column count are ignored.
func LoadColumns(g *grid.Grid, data []byte) error {
	var specs []ColumnSpec
	if err := json.Unmarshal(data, &specs); err != nil {
		return fmt.Errorf("invalid column config: %w", err)
	}
	for i, s := range specs {
		if i >= g.ColCount() {
			break
		}
		c := g.Column(i)
		c.Name = s.Name
		c.Key = s.Key
		if s.Width > 0 {
			c.Width = s.Width
		}
		c.Type = parseType(s.Type)
		if s.Editable != nil {
			c.Editable = *s.Editable
		}
		if s.Visible != nil {
			c.Visible = *s.Visible
		}
		if s.Sortable != nil {
			c.Sortable = *s.Sortable
		}
		if s.Filterable != nil {
			c.Filterable = *s.Filterable
		}
		g.SetColumn(i, c)
	}
	return nil
}

func parseType(s string) grid.DataType {
	switch s {
	case "number":
		return grid.TypeNumber
	case "date":
		return grid.TypeDate
	case "boolean", "bool":
		return grid.TypeBool
	default:
		return grid.TypeText
	}
}
