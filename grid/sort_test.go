package grid

import "testing"

func colValues(g *Grid, col int) []string {
	out := make([]string, g.RowCount())
	for r := range out {
		out[r] = g.ValueString(r, col)
	}
	return out
}

func TestSortMixedTypesAscending(t *testing.T) {
	g := New(4, 1)
	g.SetValue(0, 0, Number(3))
	g.SetValue(1, 0, Number(1))
	g.SetValue(2, 0, Text("x"))
	// row 3 stays empty

	g.SortByColumn(0, true)
	want := []string{"1", "3", "x", ""}
	for i, w := range want {
		if got := g.ValueString(i, 0); got != w {
			t.Errorf("row %d: got %q, want %q", i, got, w)
		}
	}
}

func TestSortDescendingKeepsEmptyLast(t *testing.T) {
	g := New(4, 1)
	g.SetValue(0, 0, Number(3))
	g.SetValue(1, 0, Number(1))
	g.SetValue(2, 0, Text("x"))

	g.SortByColumn(0, false)
	want := []string{"x", "3", "1", ""}
	for i, w := range want {
		if got := g.ValueString(i, 0); got != w {
			t.Errorf("row %d: got %q, want %q", i, got, w)
		}
	}
}

func TestSortFullRankOrder(t *testing.T) {
	g := New(5, 1)
	g.SetValue(0, 0, Date("2024-01-01"))
	g.SetValue(1, 0, Text("abc"))
	g.SetValue(2, 0, Boolean(true))
	g.SetValue(3, 0, Number(9))
	// row 4 empty

	g.SortByColumn(0, true)
	want := []string{"9", "true", "abc", "2024-01-01", ""}
	if got := colValues(g, 0); len(got) != len(want) {
		t.Fatalf("row count changed")
	} else {
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("row %d: got %q, want %q", i, got[i], want[i])
			}
		}
	}
}

func TestSortMovesWholeRows(t *testing.T) {
	g := New(3, 2)
	g.SetValue(0, 0, Number(2))
	g.SetValue(0, 1, Text("two"))
	g.SetValue(1, 0, Number(1))
	g.SetValue(1, 1, Text("one"))
	g.SetValue(2, 0, Number(3))
	g.SetValue(2, 1, Text("three"))
	g.SetRowHeight(1, 50)

	g.SortByColumn(0, true)
	if got := g.ValueString(0, 1); got != "one" {
		t.Fatalf("expected companion cell to travel, got %q", got)
	}
	if got := g.RowHeight(0); got != 50 {
		t.Fatalf("expected row height to travel, got %v", got)
	}
}

func TestSingleSortClearsMultiSort(t *testing.T) {
	g := New(4, 2)
	g.AddSortKey(0, true)
	g.AddSortKey(1, false)
	if len(g.SortKeys) != 2 {
		t.Fatalf("expected 2 sort keys, got %d", len(g.SortKeys))
	}
	g.SortByColumn(0, true)
	if len(g.SortKeys) != 0 {
		t.Fatalf("single-column sort must clear the multi-sort list")
	}
	if g.SortColumn != 0 || !g.SortAscending {
		t.Fatalf("sort state not recorded")
	}
}

func TestMultiSortSecondaryKey(t *testing.T) {
	g := New(4, 2)
	// col 0: group, col 1: rank
	g.SetValue(0, 0, Text("b"))
	g.SetValue(0, 1, Number(1))
	g.SetValue(1, 0, Text("a"))
	g.SetValue(1, 1, Number(2))
	g.SetValue(2, 0, Text("a"))
	g.SetValue(2, 1, Number(1))
	g.SetValue(3, 0, Text("b"))
	g.SetValue(3, 1, Number(2))

	g.AddSortKey(0, true)
	g.AddSortKey(1, false)

	wantGroup := []string{"a", "a", "b", "b"}
	wantRank := []string{"2", "1", "2", "1"}
	for i := range wantGroup {
		if got := g.ValueString(i, 0); got != wantGroup[i] {
			t.Errorf("row %d group: got %q, want %q", i, got, wantGroup[i])
		}
		if got := g.ValueString(i, 1); got != wantRank[i] {
			t.Errorf("row %d rank: got %q, want %q", i, got, wantRank[i])
		}
	}
}

func TestMultiSortStable(t *testing.T) {
	g := New(4, 2)
	// All rows share the sort key; col 1 identifies original order.
	for r := 0; r < 4; r++ {
		g.SetValue(r, 0, Text("same"))
		g.SetValue(r, 1, Number(float64(r)))
	}
	g.AddSortKey(0, true)
	for r := 0; r < 4; r++ {
		if got := g.Value(r, 1).Num; got != float64(r) {
			t.Errorf("row %d: stable sort must keep order, got marker %v", r, got)
		}
	}
}

func TestAddSortKeyUpdatesDirection(t *testing.T) {
	g := New(3, 2)
	g.AddSortKey(1, true)
	g.AddSortKey(1, false)
	if len(g.SortKeys) != 1 {
		t.Fatalf("expected direction update, not a second key; got %d keys", len(g.SortKeys))
	}
	if g.SortKeys[0].Ascending {
		t.Fatalf("expected descending after update")
	}
}

func TestCompareWithinVariants(t *testing.T) {
	cases := []struct {
		a, b Value
		want int
	}{
		{Number(1), Number(2), -1},
		{Number(2), Number(2), 0},
		{Boolean(false), Boolean(true), -1},
		{Text("a"), Text("b"), -1},
		{Date("2024-01-01"), Date("2024-06-01"), -1},
		{Number(1), Text("a"), -1},
		{Boolean(true), Text("a"), -1},
		{Text("z"), Date("2024-01-01"), -1},
	}
	for _, c := range cases {
		if got := Compare(c.a, c.b); got != c.want {
			t.Errorf("Compare(%v, %v) = %d, want %d", c.a, c.b, got, c.want)
		}
	}
}
