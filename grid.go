package xlgrid

import "fmt"

// Grid is a fixed-size matrix of text cells with at most one focused cell.
//
// A Grid is not safe for concurrent use. Callers that share a Grid between
// goroutines must serialize access.
type Grid struct {
	rows, cols int
	cells      [][]string

	focus    CellRef
	hasFocus bool

	listeners []*subscription
}

type subscription struct {
	l Listener
}

// NewGrid creates an empty grid with the given dimensions.
func NewGrid(rows, cols int, opts ...Option) (*Grid, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("grid dimensions %dx%d: %w", rows, cols, ErrInvalidArgument)
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	cells := make([][]string, rows)
	for i := range cells {
		cells[i] = make([]string, cols)
	}
	g := &Grid{rows: rows, cols: cols, cells: cells}
	for _, l := range o.listeners {
		g.listeners = append(g.listeners, &subscription{l: l})
	}
	return g, nil
}

// Rows returns the number of rows.
func (g *Grid) Rows() int { return g.rows }

// Cols returns the number of columns.
func (g *Grid) Cols() int { return g.cols }

// Contains reports whether ref lies inside the grid.
func (g *Grid) Contains(ref CellRef) bool {
	return ref.Row >= 0 && ref.Row < g.rows && ref.Col >= 0 && ref.Col < g.cols
}

func (g *Grid) check(row, col int) error {
	if !g.Contains(CellRef{Row: row, Col: col}) {
		return fmt.Errorf("cell (%d,%d) outside %dx%d grid: %w", row, col, g.rows, g.cols, ErrOutOfRange)
	}
	return nil
}

// Get returns the value of the cell at (row, col).
func (g *Grid) Get(row, col int) (string, error) {
	if err := g.check(row, col); err != nil {
		return "", err
	}
	return g.cells[row][col], nil
}

// Set stores value verbatim in the cell at (row, col). Listeners are
// notified only when the stored value changes.
func (g *Grid) Set(row, col int, value string) error {
	if err := g.check(row, col); err != nil {
		return err
	}
	old := g.cells[row][col]
	if old == value {
		return nil
	}
	g.cells[row][col] = value

	change := CellChange{Ref: CellRef{Row: row, Col: col}, OldValue: old, NewValue: value}
	for _, s := range g.snapshot() {
		s.l.CellChanged(change)
	}
	return nil
}

// Row returns a copy of the values in one row.
func (g *Grid) Row(row int) ([]string, error) {
	if err := g.check(row, 0); err != nil {
		return nil, err
	}
	out := make([]string, g.cols)
	copy(out, g.cells[row])
	return out, nil
}

// Values returns a deep copy of all cell values, row-major.
func (g *Grid) Values() [][]string {
	out := make([][]string, g.rows)
	for i, r := range g.cells {
		out[i] = make([]string, g.cols)
		copy(out[i], r)
	}
	return out
}

// ColumnLabels returns the header label of every column.
func (g *Grid) ColumnLabels() []string {
	labels := make([]string, g.cols)
	for i := range labels {
		labels[i] = MustColumnLabel(i)
	}
	return labels
}

// RowLabels returns the header label of every row.
func (g *Grid) RowLabels() []string {
	labels := make([]string, g.rows)
	for i := range labels {
		labels[i], _ = RowLabel(i)
	}
	return labels
}

// Focus moves the focus to the cell at (row, col). Focusing the cell that
// already has focus does nothing.
func (g *Grid) Focus(row, col int) error {
	if err := g.check(row, col); err != nil {
		return err
	}
	ref := CellRef{Row: row, Col: col}
	if g.hasFocus && g.focus == ref {
		return nil
	}
	change := FocusChange{
		Previous:    g.focus,
		HadPrevious: g.hasFocus,
		Current:     ref,
		HasCurrent:  true,
	}
	g.focus, g.hasFocus = ref, true
	g.notifyFocus(change)
	return nil
}

// Blur clears the focus. It does nothing when no cell is focused.
func (g *Grid) Blur() {
	if !g.hasFocus {
		return
	}
	change := FocusChange{Previous: g.focus, HadPrevious: true}
	g.focus, g.hasFocus = CellRef{}, false
	g.notifyFocus(change)
}

// Focused returns the focused cell, if any.
func (g *Grid) Focused() (CellRef, bool) {
	return g.focus, g.hasFocus
}

// FocusLabel returns the address of the focused cell, e.g. "B3", or ""
// when no cell has focus.
func (g *Grid) FocusLabel() string {
	if !g.hasFocus {
		return ""
	}
	return g.focus.Label()
}

func (g *Grid) notifyFocus(change FocusChange) {
	for _, s := range g.snapshot() {
		s.l.FocusChanged(change)
	}
}

// Subscribe registers l and returns a function that removes it again.
// The returned function is idempotent. A nil listener is ignored.
func (g *Grid) Subscribe(l Listener) (unsubscribe func()) {
	if l == nil {
		return func() {}
	}
	s := &subscription{l: l}
	g.listeners = append(g.listeners, s)
	return func() {
		for i, cur := range g.listeners {
			if cur == s {
				g.listeners = append(g.listeners[:i:i], g.listeners[i+1:]...)
				return
			}
		}
	}
}

// snapshot lets listeners unsubscribe while being notified.
func (g *Grid) snapshot() []*subscription {
	if len(g.listeners) == 0 {
		return nil
	}
	out := make([]*subscription, len(g.listeners))
	copy(out, g.listeners)
	return out
}
