package dataio

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"gridview/grid"
)

const xlsxSheet = "Sheet1"

// ExportXLSX writes the grid to an .xlsx workbook. Column names become
// the first worksheet row, data rows follow; values keep their native
// type so spreadsheet applications see numbers and booleans, not text.
func ExportXLSX(g *grid.Grid, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	for col := 0; col < g.ColCount(); col++ {
		name, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(xlsxSheet, name, g.Column(col).Name); err != nil {
			return err
		}
		// Terminal units are character cells, which map directly onto
		// Excel's character-based column width.
		colName, _ := excelize.ColumnNumberToName(col + 1)
		if err := f.SetColWidth(xlsxSheet, colName, colName, g.ColWidth(col)); err != nil {
			return err
		}
	}

	for row := 0; row < g.RowCount(); row++ {
		for col := 0; col < g.ColCount(); col++ {
			v := g.Value(row, col)
			if v.IsEmpty() {
				continue
			}
			name, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(xlsxSheet, name, cellValue(v)); err != nil {
				return err
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

func cellValue(v grid.Value) any {
	switch v.Kind {
	case grid.KindNumber:
		return v.Num
	case grid.KindBool:
		return v.Bool
	default:
		return v.String()
	}
}
