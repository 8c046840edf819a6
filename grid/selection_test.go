package grid

import "testing"

func TestSelectSingleReplacesSet(t *testing.T) {
	s := NewSelection()
	s.SelectSingle(Pos{1, 1})
	s.SelectSingle(Pos{2, 3})
	if s.Count() != 1 || !s.Has(Pos{2, 3}) {
		t.Fatalf("expected only the last cell selected")
	}
	if a, ok := s.Anchor(); !ok || a != (Pos{2, 3}) {
		t.Fatalf("expected anchor at the selected cell, got %v", a)
	}
}

func TestToggle(t *testing.T) {
	s := NewSelection()
	s.Toggle(Pos{0, 0})
	s.Toggle(Pos{1, 1})
	if s.Count() != 2 {
		t.Fatalf("expected 2 selected, got %d", s.Count())
	}
	if a, _ := s.Anchor(); a != (Pos{1, 1}) {
		t.Fatalf("anchor should follow the toggle, got %v", a)
	}
	s.Toggle(Pos{0, 0})
	if s.Count() != 1 || s.Has(Pos{0, 0}) {
		t.Fatalf("expected cell removed on second toggle")
	}
}

func TestSelectRangeRectangle(t *testing.T) {
	g := New(10, 10)
	s := NewSelection()
	s.SelectSingle(Pos{5, 5})
	s.SelectRange(Pos{2, 8}, g)
	// |5-2|+1 = 4 rows, |5-8|+1 = 4 cols
	if s.Count() != 16 {
		t.Fatalf("expected 16 cells, got %d", s.Count())
	}
	for r := 2; r <= 5; r++ {
		for c := 5; c <= 8; c++ {
			if !s.Has(Pos{r, c}) {
				t.Errorf("missing (%d,%d)", r, c)
			}
		}
	}
}

func TestSelectRangeClipsToBounds(t *testing.T) {
	g := New(4, 4)
	s := NewSelection()
	s.SelectSingle(Pos{2, 2})
	s.SelectRange(Pos{9, 9}, g)
	if s.Count() != 4 {
		t.Fatalf("expected 2x2 clipped rectangle, got %d", s.Count())
	}
}

func TestSelectRangeWithoutAnchor(t *testing.T) {
	g := New(4, 4)
	s := NewSelection()
	s.SelectRange(Pos{1, 2}, g)
	if s.Count() != 1 || !s.Has(Pos{1, 2}) {
		t.Fatalf("expected single-select fallback")
	}
}

func TestBulkSelectAnchors(t *testing.T) {
	g := New(3, 4)
	s := NewSelection()

	s.SelectAll(g)
	if s.Count() != 12 {
		t.Fatalf("expected 12 cells, got %d", s.Count())
	}
	if a, _ := s.Anchor(); a != (Pos{0, 0}) {
		t.Fatalf("select-all anchors at origin, got %v", a)
	}

	s.SelectRow(2, g)
	if s.Count() != 4 {
		t.Fatalf("expected 4 cells in the row, got %d", s.Count())
	}
	if a, _ := s.Anchor(); a != (Pos{2, 0}) {
		t.Fatalf("row select anchors at (row,0), got %v", a)
	}

	s.SelectCol(3, g)
	if s.Count() != 3 {
		t.Fatalf("expected 3 cells in the column, got %d", s.Count())
	}
	if a, _ := s.Anchor(); a != (Pos{0, 3}) {
		t.Fatalf("column select anchors at (0,col), got %v", a)
	}

	s.SelectRow(99, g)
	if s.Count() != 3 {
		t.Fatalf("out-of-bounds row select must be a no-op")
	}
}

func TestCellsRowMajorOrder(t *testing.T) {
	s := NewSelection()
	s.Toggle(Pos{2, 1})
	s.Toggle(Pos{0, 3})
	s.Toggle(Pos{0, 1})
	cells := s.Cells()
	want := []Pos{{0, 1}, {0, 3}, {2, 1}}
	for i := range want {
		if cells[i] != want[i] {
			t.Fatalf("order mismatch at %d: got %v, want %v", i, cells[i], want[i])
		}
	}
}

func TestBounds(t *testing.T) {
	s := NewSelection()
	if _, _, ok := s.Bounds(); ok {
		t.Fatalf("empty selection has no bounds")
	}
	s.Toggle(Pos{3, 1})
	s.Toggle(Pos{1, 4})
	lo, hi, ok := s.Bounds()
	if !ok || lo != (Pos{1, 1}) || hi != (Pos{3, 4}) {
		t.Fatalf("got %v..%v ok=%v", lo, hi, ok)
	}
}

func TestRowsDistinctSorted(t *testing.T) {
	s := NewSelection()
	s.Toggle(Pos{4, 0})
	s.Toggle(Pos{1, 2})
	s.Toggle(Pos{4, 3})
	rows := s.Rows()
	if len(rows) != 2 || rows[0] != 1 || rows[1] != 4 {
		t.Fatalf("got %v", rows)
	}
}
