package grid

import "testing"

func TestCopyPasteSingleCell(t *testing.T) {
	g := New(5, 5)
	g.SetValue(2, 2, Text("hello"))
	sel := NewSelection()
	sel.SelectSingle(Pos{2, 2})

	text := EncodeTSV(sel, g)
	if text != "hello" {
		t.Fatalf("expected %q, got %q", "hello", text)
	}

	PasteTSV(text, Pos{0, 0}, g)
	if got := g.ValueString(0, 0); got != "hello" {
		t.Fatalf("expected pasted value, got %q", got)
	}
}

func TestEncodeBoundingRectangleWithGaps(t *testing.T) {
	g := New(5, 5)
	g.SetValue(0, 0, Text("a"))
	g.SetValue(1, 2, Text("b"))
	g.SetValue(0, 1, Text("skipped"))

	sel := NewSelection()
	sel.Toggle(Pos{0, 0})
	sel.Toggle(Pos{1, 2})

	// Rectangle spans rows 0-1, cols 0-2. The unselected populated
	// cell inside the rectangle serializes as an empty field.
	want := "a\t\t\n\t\tb"
	if got := EncodeTSV(sel, g); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestEncodeEmptySelection(t *testing.T) {
	g := New(3, 3)
	if got := EncodeTSV(NewSelection(), g); got != "" {
		t.Fatalf("expected empty string, got %q", got)
	}
}

func TestPasteTyping(t *testing.T) {
	g := New(3, 4)
	PasteTSV("42\ttrue\ttext\t", Pos{0, 0}, g)

	if v := g.Value(0, 0); v.Kind != KindNumber || v.Num != 42 {
		t.Errorf("expected number, got %v", v)
	}
	if v := g.Value(0, 1); v.Kind != KindBool || !v.Bool {
		t.Errorf("expected boolean, got %v", v)
	}
	if v := g.Value(0, 2); v.Kind != KindText || v.Str != "text" {
		t.Errorf("expected text, got %v", v)
	}
	if v := g.Value(0, 3); !v.IsEmpty() {
		t.Errorf("expected empty for blank field, got %v", v)
	}
}

func TestPasteClipsAtBounds(t *testing.T) {
	g := New(2, 2)
	PasteTSV("a\tb\tc\nd\te\tf\ng\th\ti", Pos{1, 1}, g)

	if got := g.ValueString(1, 1); got != "a" {
		t.Fatalf("expected a at origin, got %q", got)
	}
	if g.CellCount() != 1 {
		t.Fatalf("expected everything else clipped, got %d cells", g.CellCount())
	}
	g.Each(func(p Pos, _ *Cell) {
		if p.Row >= g.RowCount() || p.Col >= g.ColCount() {
			t.Fatalf("out-of-bounds key %v stored", p)
		}
	})
}

func TestPasteReturnsChangesForUndo(t *testing.T) {
	g := New(3, 3)
	g.SetValue(0, 0, Text("before"))
	changes := PasteTSV("after\tnew", Pos{0, 0}, g)
	if len(changes) != 2 {
		t.Fatalf("expected 2 changes, got %d", len(changes))
	}
	if changes[0].Old.Str != "before" || changes[0].New.Str != "after" {
		t.Fatalf("change records wrong: %+v", changes[0])
	}
}

func TestPasteOrigin(t *testing.T) {
	sel := NewSelection()
	if _, err := PasteOrigin(sel); err == nil {
		t.Fatalf("expected error with no destination")
	}
	sel.Toggle(Pos{2, 1})
	sel.Toggle(Pos{1, 2})
	sel.Clear() // keeps the anchor
	p, err := PasteOrigin(sel)
	if err != nil || p != (Pos{1, 2}) {
		t.Fatalf("expected anchor as origin, got %v err=%v", p, err)
	}
}

func TestParseToken(t *testing.T) {
	cases := []struct {
		in   string
		want Value
	}{
		{"", Empty()},
		{"3.5", Number(3.5)},
		{"-7", Number(-7)},
		{"true", Boolean(true)},
		{"false", Boolean(false)},
		{"True", Text("True")},
		{"hello", Text("hello")},
	}
	for _, c := range cases {
		if got := ParseToken(c.in); !got.Equal(c.want) {
			t.Errorf("ParseToken(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestTSVRoundTripRectangle(t *testing.T) {
	g := New(4, 4)
	g.SetValue(1, 1, Text("a"))
	g.SetValue(1, 2, Number(2))
	g.SetValue(2, 1, Boolean(true))
	g.SetValue(2, 2, Text("d"))

	sel := NewSelection()
	sel.SelectSingle(Pos{1, 1})
	sel.SelectRange(Pos{2, 2}, g)

	text := EncodeTSV(sel, g)
	PasteTSV(text, Pos{0, 0}, g)

	if g.ValueString(0, 0) != "a" || g.ValueString(0, 1) != "2" ||
		g.ValueString(1, 0) != "true" || g.ValueString(1, 1) != "d" {
		t.Fatalf("round trip mismatch")
	}
	if g.Value(0, 1).Kind != KindNumber || g.Value(1, 0).Kind != KindBool {
		t.Fatalf("types must survive the round trip")
	}
}
