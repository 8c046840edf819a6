package grid

import "testing"

func searchFixture() *Grid {
	g := New(4, 3)
	g.SetValue(0, 0, Text("some foo bar"))
	g.SetValue(1, 1, Text("FOO"))
	g.SetValue(2, 0, Text("food"))
	g.SetValue(3, 2, Number(42))
	return g
}

func TestSearchCaseFold(t *testing.T) {
	g := searchFixture()
	s := NewSearch()
	if n := s.SearchText("FOO", g); n != 3 {
		t.Fatalf("expected 3 case-insensitive matches, got %d", n)
	}
	if !s.IsMatch(Pos{0, 0}) || !s.IsMatch(Pos{1, 1}) || !s.IsMatch(Pos{2, 0}) {
		t.Fatalf("missing expected matches: %v", s.Results)
	}
	if s.Current != 0 {
		t.Fatalf("expected cursor on the first match")
	}
}

func TestSearchCaseSensitive(t *testing.T) {
	g := searchFixture()
	s := NewSearch()
	if n := s.SearchTextOptions("FOO", true, false, g); n != 1 {
		t.Fatalf("expected 1 exact-case match, got %d", n)
	}
	if !s.IsMatch(Pos{1, 1}) {
		t.Fatalf("expected only the upper-case cell")
	}
}

func TestSearchWholeWord(t *testing.T) {
	g := searchFixture()
	s := NewSearch()
	if n := s.SearchTextOptions("foo", false, true, g); n != 2 {
		t.Fatalf("expected 2 whole-word matches, got %d", n)
	}
	if s.IsMatch(Pos{2, 0}) {
		t.Fatalf("\"food\" must not whole-word match \"foo\"")
	}
}

func TestSearchEmptyQuery(t *testing.T) {
	g := searchFixture()
	s := NewSearch()
	if n := s.SearchText("", g); n != 0 {
		t.Fatalf("empty query matches nothing, got %d", n)
	}
}

func TestSearchResultsRowMajor(t *testing.T) {
	g := searchFixture()
	s := NewSearch()
	s.SearchText("foo", g)
	want := []Pos{{0, 0}, {1, 1}, {2, 0}}
	for i := range want {
		if s.Results[i] != want[i] {
			t.Fatalf("scan order mismatch at %d: got %v, want %v", i, s.Results[i], want[i])
		}
	}
}

func TestNextPrevCircular(t *testing.T) {
	g := searchFixture()
	s := NewSearch()
	s.SearchText("foo", g)

	p, ok := s.Next()
	if !ok || p != (Pos{1, 1}) {
		t.Fatalf("expected second match, got %v", p)
	}
	s.Next()
	p, ok = s.Next()
	if !ok || p != (Pos{0, 0}) {
		t.Fatalf("expected wrap to first match, got %v", p)
	}
	p, _ = s.Prev()
	if p != (Pos{2, 0}) {
		t.Fatalf("expected wrap back to last match, got %v", p)
	}
}

func TestSearchRegex(t *testing.T) {
	g := searchFixture()
	s := NewSearch()
	n, err := s.SearchRegex(`^foo.?$`, false, g)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 2 {
		t.Fatalf("expected FOO and food, got %d", n)
	}
	n, err = s.SearchRegex(`\d+`, false, g)
	if err != nil || n != 1 {
		t.Fatalf("expected numeric cell text to match, got %d err=%v", n, err)
	}
}

func TestSearchRegexInvalidLeavesStateUntouched(t *testing.T) {
	g := searchFixture()
	s := NewSearch()
	s.SearchText("foo", g)
	before := len(s.Results)

	if _, err := s.SearchRegex("(unclosed", false, g); err == nil {
		t.Fatalf("expected compile error")
	}
	if len(s.Results) != before || s.Query != "foo" || s.Current != 0 {
		t.Fatalf("failed search must not clobber prior state")
	}
}

func TestReplaceCurrentAdvances(t *testing.T) {
	g := searchFixture()
	s := NewSearch()
	s.SearchText("foo", g)

	if !s.ReplaceCurrent("xyz", g) {
		t.Fatalf("expected a replacement")
	}
	if got := g.ValueString(0, 0); got != "xyz" {
		t.Fatalf("got %q", got)
	}
	if s.Current != 1 {
		t.Fatalf("expected cursor advanced, got %d", s.Current)
	}
}

func TestReplaceInfersNumbers(t *testing.T) {
	g := searchFixture()
	s := NewSearch()
	s.SearchText("FOO", g)
	s.ReplaceCurrent("123.5", g)
	if got := g.Value(0, 0); got.Kind != KindNumber || got.Num != 123.5 {
		t.Fatalf("expected numeric replacement, got %v", got)
	}
}

func TestReplaceAllClearsSearch(t *testing.T) {
	g := searchFixture()
	s := NewSearch()
	s.SearchText("foo", g)
	if n := s.ReplaceAll("gone", g); n != 3 {
		t.Fatalf("expected 3 replacements, got %d", n)
	}
	for _, p := range []Pos{{0, 0}, {1, 1}, {2, 0}} {
		if got := g.ValueString(p.Row, p.Col); got != "gone" {
			t.Errorf("%v: got %q", p, got)
		}
	}
	if s.Count() != 0 || s.Query != "" || s.Current != -1 {
		t.Fatalf("replace-all must clear search state")
	}
}

func TestReplaceInSelection(t *testing.T) {
	g := searchFixture()
	sel := NewSelection()
	sel.Toggle(Pos{0, 0})
	sel.Toggle(Pos{3, 2}) // no "foo" here

	n := ReplaceInSelection("foo", "bar", false, sel, g)
	if n != 1 {
		t.Fatalf("expected 1 replacement, got %d", n)
	}
	if got := g.ValueString(0, 0); got != "bar" {
		t.Fatalf("got %q", got)
	}
	if got := g.ValueString(1, 1); got != "FOO" {
		t.Fatalf("unselected cell must be untouched, got %q", got)
	}
}

func TestFindModified(t *testing.T) {
	g := New(4, 3)
	g.SetValue(2, 1, Text("b"))
	g.SetValue(0, 2, Text("a"))
	g.ClearModified()
	g.SetValue(3, 0, Text("c"))
	g.SetValue(1, 1, Text("d"))

	s := NewSearch()
	if n := s.FindModified(g); n != 2 {
		t.Fatalf("expected 2 modified cells, got %d", n)
	}
	want := []Pos{{1, 1}, {3, 0}}
	for i, p := range want {
		if s.Results[i] != p {
			t.Errorf("result %d = %v, want %v", i, s.Results[i], p)
		}
	}
	if p, ok := s.CurrentMatch(); !ok || p != want[0] {
		t.Fatalf("cursor should sit on the first modified cell, got %v", p)
	}
}
