package grid

import "strconv"

// Pos addresses a cell by zero-based row and column.
type Pos struct {
	Row, Col int
}

// ValueKind discriminates the variants of Value.
type ValueKind int

const (
	KindEmpty ValueKind = iota
	KindText
	KindNumber
	KindBool
	KindDate
)

// Value is the typed content of a cell. Exactly one variant is active,
// selected by Kind; the other payload fields are zero.
type Value struct {
	Kind ValueKind
	Str  string // Text and Date payload
	Num  float64
	Bool bool
}

func Empty() Value           { return Value{} }
func Text(s string) Value    { return Value{Kind: KindText, Str: s} }
func Number(n float64) Value { return Value{Kind: KindNumber, Num: n} }
func Boolean(b bool) Value   { return Value{Kind: KindBool, Bool: b} }
func Date(iso string) Value  { return Value{Kind: KindDate, Str: iso} }

func (v Value) IsEmpty() bool { return v.Kind == KindEmpty }

// String renders the value the way it appears in a cell.
func (v Value) String() string {
	switch v.Kind {
	case KindText, KindDate:
		return v.Str
	case KindNumber:
		return strconv.FormatFloat(v.Num, 'f', -1, 64)
	case KindBool:
		return strconv.FormatBool(v.Bool)
	default:
		return ""
	}
}

// Equal reports whether two values have the same variant and payload.
func (v Value) Equal(o Value) bool {
	if v.Kind != o.Kind {
		return false
	}
	switch v.Kind {
	case KindText, KindDate:
		return v.Str == o.Str
	case KindNumber:
		return v.Num == o.Num
	case KindBool:
		return v.Bool == o.Bool
	default:
		return true
	}
}

// Color is a 32-bit RGBA color. The zero value (fully transparent black)
// means "not set" and falls back to the theme.
type Color uint32

const NoColor Color = 0

// Style is the per-cell visual override.
type Style struct {
	BG     Color
	FG     Color
	Bold   bool
	Italic bool
}

// Border is one edge of a cell border.
type Border struct {
	Color Color
	Width float64
}

// Borders holds the optional per-side borders of a cell.
type Borders struct {
	Top, Right, Bottom, Left *Border
}

// Cell is a populated grid cell. Cells absent from the store behave as
// empty, editable, unstyled cells; one is created lazily on first write.
type Cell struct {
	Value    Value
	Editable bool
	Modified bool
	Style    Style
	Borders  Borders
}

func NewCell(v Value) *Cell {
	return &Cell{Value: v, Editable: true}
}
