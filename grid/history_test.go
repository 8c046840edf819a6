package grid

import "testing"

func TestUndoRedoSetValue(t *testing.T) {
	g := New(5, 5)
	v := NewViewport(100, 100)
	log := NewEditLog()

	g.SetValue(2, 2, Text("old"))
	log.Record(SetValueAction{Row: 2, Col: 2, Old: Text("old"), New: Text("new")})
	g.SetValue(2, 2, Text("new"))

	if !log.Undo(g, v) {
		t.Fatalf("expected undo to apply")
	}
	if got := g.ValueString(2, 2); got != "old" {
		t.Fatalf("expected old after undo, got %q", got)
	}
	if !log.Redo(g, v) {
		t.Fatalf("expected redo to apply")
	}
	if got := g.ValueString(2, 2); got != "new" {
		t.Fatalf("expected new after redo, got %q", got)
	}
}

func TestUndoEmptyStack(t *testing.T) {
	g := New(2, 2)
	v := NewViewport(10, 10)
	log := NewEditLog()
	if log.Undo(g, v) || log.Redo(g, v) {
		t.Fatalf("expected no-op on empty stacks")
	}
}

func TestRecordClearsRedo(t *testing.T) {
	g := New(5, 5)
	v := NewViewport(10, 10)
	log := NewEditLog()

	log.Record(SetValueAction{Row: 0, Col: 0, Old: Empty(), New: Text("a")})
	g.SetValue(0, 0, Text("a"))
	log.Undo(g, v)
	if !log.CanRedo() {
		t.Fatalf("expected redo available after undo")
	}
	log.Record(SetValueAction{Row: 1, Col: 1, Old: Empty(), New: Text("b")})
	if log.CanRedo() {
		t.Fatalf("new mutation must clear the redo stack")
	}
}

func TestDeleteRowUndoRestoresContent(t *testing.T) {
	g := New(3, 2)
	v := NewViewport(100, 100)
	log := NewEditLog()
	g.SetValue(0, 0, Text("first"))
	g.SetValue(1, 0, Text("second"))
	g.SetValue(1, 1, Number(7))
	g.SetValue(2, 0, Text("third"))

	log.Record(DeleteRowAction{Index: 1, Cells: g.RowCells(1)})
	g.DeleteRow(1)
	if g.RowCount() != 2 || g.ValueString(1, 0) != "third" {
		t.Fatalf("delete did not shift rows")
	}

	log.Undo(g, v)
	if g.RowCount() != 3 {
		t.Fatalf("expected 3 rows after undo, got %d", g.RowCount())
	}
	for i, want := range []string{"first", "second", "third"} {
		if got := g.ValueString(i, 0); got != want {
			t.Errorf("row %d: got %q, want %q", i, got, want)
		}
	}
	if got := g.Value(1, 1); !got.Equal(Number(7)) {
		t.Errorf("expected companion cell restored, got %v", got)
	}

	log.Redo(g, v)
	if g.RowCount() != 2 || g.ValueString(1, 0) != "third" {
		t.Fatalf("redo must delete again")
	}
}

func TestInsertRowUndoRedo(t *testing.T) {
	g := New(2, 1)
	v := NewViewport(100, 100)
	log := NewEditLog()
	g.SetValue(0, 0, Text("a"))
	g.SetValue(1, 0, Text("b"))

	g.InsertRow(1)
	log.Record(InsertRowAction{Index: 1, Cells: g.RowCells(1)})

	log.Undo(g, v)
	if g.RowCount() != 2 || g.ValueString(1, 0) != "b" {
		t.Fatalf("undo of insert must remove the row")
	}
	log.Redo(g, v)
	if g.RowCount() != 3 || g.ValueString(2, 0) != "b" {
		t.Fatalf("redo must re-insert")
	}
}

func TestDeleteColumnUndoRestoresStyles(t *testing.T) {
	g := New(2, 3)
	v := NewViewport(100, 100)
	log := NewEditLog()
	g.SetValue(0, 1, Text("styled"))
	g.Cell(0, 1).Style = Style{Bold: true, FG: 0xff0000ff}

	log.Record(DeleteColumnAction{Index: 1, Cells: g.ColumnCells(1)})
	g.DeleteColumn(1)

	log.Undo(g, v)
	c := g.Cell(0, 1)
	if c == nil || !c.Style.Bold || c.Style.FG != 0xff0000ff {
		t.Fatalf("expected style restored with the column")
	}
}

func TestDeleteRowsBulkUndo(t *testing.T) {
	g := New(5, 1)
	v := NewViewport(100, 100)
	log := NewEditLog()
	for r := 0; r < 5; r++ {
		g.SetValue(r, 0, Number(float64(r)))
	}

	// Delete rows 1 and 3 as one atomic entry (bottom-up).
	act := DeleteRowsAction{Rows: []RowSnapshot{
		{Index: 1, Cells: g.RowCells(1)},
		{Index: 3, Cells: g.RowCells(3)},
	}}
	g.DeleteRow(3)
	g.DeleteRow(1)
	log.Record(act)
	if g.RowCount() != 3 {
		t.Fatalf("expected 3 rows, got %d", g.RowCount())
	}

	log.Undo(g, v)
	if g.RowCount() != 5 {
		t.Fatalf("expected 5 rows after undo, got %d", g.RowCount())
	}
	for r := 0; r < 5; r++ {
		if got := g.Value(r, 0).Num; got != float64(r) {
			t.Errorf("row %d: got %v", r, got)
		}
	}

	log.Redo(g, v)
	if g.RowCount() != 3 {
		t.Fatalf("redo must delete both rows again")
	}
}

func TestClearCellsUndo(t *testing.T) {
	g := New(3, 3)
	v := NewViewport(100, 100)
	log := NewEditLog()
	g.SetValue(0, 0, Text("a"))
	g.SetValue(1, 1, Number(2))

	cleared := ClearValues([]Pos{{0, 0}, {1, 1}}, g)
	log.Record(ClearCellsAction{Cells: cleared})
	if !g.Value(0, 0).IsEmpty() || !g.Value(1, 1).IsEmpty() {
		t.Fatalf("expected cells cleared")
	}

	log.Undo(g, v)
	if g.ValueString(0, 0) != "a" || g.Value(1, 1).Num != 2 {
		t.Fatalf("expected one undo to restore the whole batch")
	}
}

func TestSetStyleUndo(t *testing.T) {
	g := New(2, 2)
	v := NewViewport(10, 10)
	log := NewEditLog()
	g.SetValue(0, 0, Text("x"))

	old := CellStyle(g, 0, 0)
	next := Style{Bold: true, BG: 0x336699ff}
	log.Record(SetStyleAction{Row: 0, Col: 0, Old: old, New: next})
	g.Cell(0, 0).Style = next

	log.Undo(g, v)
	if g.Cell(0, 0).Style != old {
		t.Fatalf("expected old style after undo")
	}
	log.Redo(g, v)
	if g.Cell(0, 0).Style != next {
		t.Fatalf("expected new style after redo")
	}
}
