package xlgrid

import (
	"fmt"
	"strings"
)

// Describe returns a human-readable dump of g: its bounds, the focused cell
// and every non-empty cell, row by row. Useful when debugging imports.
func Describe(g *Grid) string {
	var b strings.Builder

	// Grid: A1:C10 (10 rows x 3 cols)
	last := NewCellRef(g.Rows()-1, g.Cols()-1)
	fmt.Fprintf(&b, "Grid: A1:%s (%d rows x %d cols)\n", last.Label(), g.Rows(), g.Cols())

	if focus := g.FocusLabel(); focus != "" {
		fmt.Fprintf(&b, "Focus: %s\n", focus)
	} else {
		b.WriteString("Focus: none\n")
	}

	var lines []string
	for row, values := range g.cells {
		for col, v := range values {
			if v == "" {
				continue
			}
			lines = append(lines, fmt.Sprintf("  %s: %q", NewCellRef(row, col).Label(), v))
		}
	}
	fmt.Fprintf(&b, "Cells: %d\n", len(lines))
	for _, l := range lines {
		b.WriteString(l)
		b.WriteByte('\n')
	}
	return b.String()
}
