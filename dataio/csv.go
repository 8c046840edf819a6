package dataio

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"gridview/grid"
)

// ReadCSV builds a grid from CSV input. With header set, the first
// record becomes the column names. Field values are typed like pasted
// tokens (number, boolean, text).
func ReadCSV(r io.Reader, header bool) (*grid.Grid, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("read csv: no records")
	}

	var names []string
	if header {
		names = records[0]
		records = records[1:]
	}
	cols := len(names)
	for _, rec := range records {
		cols = max(cols, len(rec))
	}
	rows := max(len(records), 1)
	if cols == 0 {
		return nil, fmt.Errorf("read csv: no columns")
	}

	g := grid.New(rows, cols)
	for i, name := range names {
		c := g.Column(i)
		c.Name = name
		g.SetColumn(i, c)
	}
	for row, rec := range records {
		for col, field := range rec {
			v := grid.ParseToken(field)
			if !v.IsEmpty() {
				g.SetValue(row, col, v)
			}
		}
	}
	g.ClearModified()
	return g, nil
}

// LoadCSVFile reads a grid from a CSV file on disk.
func LoadCSVFile(path string, header bool) (*grid.Grid, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadCSV(f, header)
}

// WriteCSV writes the full grid as CSV, one record per row. With
// header set, a leading record carries the column names.
func WriteCSV(g *grid.Grid, w io.Writer, header bool) error {
	cw := csv.NewWriter(w)
	if header {
		names := make([]string, g.ColCount())
		for i := range names {
			names[i] = g.Column(i).Name
		}
		if err := cw.Write(names); err != nil {
			return err
		}
	}
	rec := make([]string, g.ColCount())
	for row := 0; row < g.RowCount(); row++ {
		for col := range rec {
			rec[col] = g.ValueString(row, col)
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// SaveCSVFile writes the grid to a CSV file on disk.
func SaveCSVFile(g *grid.Grid, path string, header bool) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteCSV(g, f, header); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
