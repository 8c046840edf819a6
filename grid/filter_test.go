package grid

import "testing"

func filterFixture() *Grid {
	g := New(4, 2)
	g.SetValue(0, 0, Number(5))
	g.SetValue(1, 0, Number(15))
	g.SetValue(2, 0, Text("apple"))
	// row 3 empty
	return g
}

func TestApplyColumnFilter(t *testing.T) {
	g := filterFixture()
	g.ApplyColumnFilter(0, func(v Value) bool { return v.Kind == KindNumber })

	if !g.IsRowFiltered(2) || !g.IsRowFiltered(3) {
		t.Fatalf("expected non-number rows hidden")
	}
	if g.IsRowFiltered(0) || g.IsRowFiltered(1) {
		t.Fatalf("number rows must stay visible")
	}
	if got := g.VisibleRowCount(); got != 2 {
		t.Fatalf("expected 2 visible rows, got %d", got)
	}
}

func TestFilterReplacesPrevious(t *testing.T) {
	g := filterFixture()
	g.ApplyColumnFilter(0, func(v Value) bool { return false }) // hide all
	if g.VisibleRowCount() != 0 {
		t.Fatalf("expected everything hidden")
	}
	g.ApplyColumnFilter(0, func(v Value) bool { return true }) // keep all
	if g.VisibleRowCount() != 4 {
		t.Fatalf("a new filter must replace, not merge: %d visible", g.VisibleRowCount())
	}
}

func TestClearFilters(t *testing.T) {
	g := filterFixture()
	g.FilterNonEmpty(0)
	if !g.IsRowFiltered(3) {
		t.Fatalf("expected empty row hidden")
	}
	g.ClearFilters()
	if g.VisibleRowCount() != 4 {
		t.Fatalf("expected all rows visible after clear")
	}
}

func TestFilterByText(t *testing.T) {
	g := filterFixture()
	g.FilterByText(0, "APP")
	if g.IsRowFiltered(2) {
		t.Fatalf("text filter is case-insensitive")
	}
	if !g.IsRowFiltered(0) {
		t.Fatalf("non-matching rows must hide")
	}
}

func TestFilterSortIndependence(t *testing.T) {
	g := filterFixture()
	g.FilterNonEmpty(0)
	g.SortByColumn(0, true)
	// Sorting remaps rows without consulting the filter; no stored
	// cell may be lost in the remap.
	if g.CellCount() != 3 {
		t.Fatalf("sort must not drop cells, got %d", g.CellCount())
	}
	if g.VisibleRowCount() != 3 {
		t.Fatalf("filter set must survive the sort, got %d visible", g.VisibleRowCount())
	}
}

func TestFilterByExpressionNumbers(t *testing.T) {
	g := filterFixture()
	if err := g.FilterByExpression(0, "value != nil && value > 10"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if g.IsRowFiltered(1) {
		t.Fatalf("15 > 10 must stay visible")
	}
	if !g.IsRowFiltered(0) || !g.IsRowFiltered(2) || !g.IsRowFiltered(3) {
		t.Fatalf("expected other rows hidden")
	}
}

func TestFilterByExpressionText(t *testing.T) {
	g := filterFixture()
	if err := g.FilterByExpression(0, `text contains "app"`); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if g.IsRowFiltered(2) {
		t.Fatalf("expected apple row visible")
	}
	if !g.IsRowFiltered(0) {
		t.Fatalf("expected number row hidden")
	}
}

func TestFilterByExpressionInvalid(t *testing.T) {
	g := filterFixture()
	g.FilterNonEmpty(0)
	before := g.VisibleRowCount()
	if err := g.FilterByExpression(0, "value >"); err == nil {
		t.Fatalf("expected compile error")
	}
	if g.VisibleRowCount() != before {
		t.Fatalf("failed compile must leave the filter untouched")
	}
}
