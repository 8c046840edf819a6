package grid

import (
	"fmt"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// Predicate decides whether a value keeps its row visible.
type Predicate func(Value) bool

// ApplyColumnFilter hides every row whose value in col fails the
// predicate. A new filter replaces the previous one entirely.
func (g *Grid) ApplyColumnFilter(col int, keep Predicate) {
	if col < 0 || col >= g.cols {
		return
	}
	g.filtered = make(map[int]struct{})
	for row := 0; row < g.rows; row++ {
		if !keep(g.Value(row, col)) {
			g.filtered[row] = struct{}{}
		}
	}
}

// ClearFilters unhides all rows.
func (g *Grid) ClearFilters() {
	g.filtered = make(map[int]struct{})
}

// IsRowFiltered reports whether row is hidden by the active filter.
func (g *Grid) IsRowFiltered(row int) bool {
	_, ok := g.filtered[row]
	return ok
}

// VisibleRowCount returns the number of rows not hidden by the filter.
func (g *Grid) VisibleRowCount() int {
	return g.rows - len(g.filtered)
}

// FilterByText keeps rows whose cell text in col contains the query,
// case-insensitively. An empty query keeps everything.
func (g *Grid) FilterByText(col int, query string) {
	q := strings.ToLower(query)
	g.ApplyColumnFilter(col, func(v Value) bool {
		if q == "" {
			return true
		}
		return strings.Contains(strings.ToLower(v.String()), q)
	})
}

// FilterNonEmpty keeps rows with a non-empty value in col.
func (g *Grid) FilterNonEmpty(col int) {
	g.ApplyColumnFilter(col, func(v Value) bool { return !v.IsEmpty() })
}

// filterEnv is the environment visible to filter expressions.
type filterEnv struct {
	Value any    `expr:"value"`
	Text  string `expr:"text"`
}

// CompileFilter compiles an expression like `value > 10` or
// `text contains "x"` into a predicate. The expression sees `value`
// (the typed cell value: number, bool or string; nil when empty) and
// `text` (the display string). It must yield a boolean.
func CompileFilter(src string) (Predicate, error) {
	prog, err := expr.Compile(src, expr.Env(filterEnv{}), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("invalid filter expression: %w", err)
	}
	return func(v Value) bool {
		keep, err := runFilter(prog, v)
		if err != nil {
			return false
		}
		return keep
	}, nil
}

func runFilter(prog *vm.Program, v Value) (bool, error) {
	env := filterEnv{Text: v.String()}
	switch v.Kind {
	case KindNumber:
		env.Value = v.Num
	case KindBool:
		env.Value = v.Bool
	case KindText, KindDate:
		env.Value = v.Str
	}
	out, err := expr.Run(prog, env)
	if err != nil {
		return false, err
	}
	keep, ok := out.(bool)
	return keep && ok, nil
}

// FilterByExpression compiles src and applies it as a column filter.
// A bad expression returns an error and leaves the filter state alone.
func (g *Grid) FilterByExpression(col int, src string) error {
	pred, err := CompileFilter(src)
	if err != nil {
		return err
	}
	g.ApplyColumnFilter(col, pred)
	return nil
}
