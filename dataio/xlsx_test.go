package dataio

import (
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"

	"gridview/grid"
)

func TestExportXLSX(t *testing.T) {
	g := grid.New(3, 2)
	c := g.Column(0)
	c.Name = "Item"
	g.SetColumn(0, c)
	g.SetValue(0, 0, grid.Text("widget"))
	g.SetValue(0, 1, grid.Number(9.5))
	g.SetValue(2, 1, grid.Boolean(true))

	path := filepath.Join(t.TempDir(), "out.xlsx")
	if err := ExportXLSX(g, path); err != nil {
		t.Fatalf("export: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("open back: %v", err)
	}
	defer f.Close()

	if got, _ := f.GetCellValue(xlsxSheet, "A1"); got != "Item" {
		t.Errorf("header: got %q", got)
	}
	if got, _ := f.GetCellValue(xlsxSheet, "A2"); got != "widget" {
		t.Errorf("A2: got %q", got)
	}
	if got, _ := f.GetCellValue(xlsxSheet, "B2"); got != "9.5" {
		t.Errorf("B2: got %q", got)
	}
	if got, _ := f.GetCellValue(xlsxSheet, "B4"); got != "TRUE" {
		t.Errorf("B4: got %q", got)
	}
}
