package xlgrid

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDescribe_Empty(t *testing.T) {
	g := newTestGrid(t, 10, 3)
	assert.Equal(t, "Grid: A1:C10 (10 rows x 3 cols)\nFocus: none\nCells: 0\n", Describe(g))
}

func TestDescribe_ValuesAndFocus(t *testing.T) {
	g := newTestGrid(t, 3, 28)
	require.NoError(t, g.Set(2, 27, "last"))
	require.NoError(t, g.Set(0, 1, "x,\"y\""))
	require.NoError(t, g.Focus(1, 26))

	output := Describe(g)
	assert.Contains(t, output, "Grid: A1:AB3 (3 rows x 28 cols)")
	assert.Contains(t, output, "Focus: AA2")
	assert.Contains(t, output, "Cells: 2")
	assert.Contains(t, output, `  B1: "x,\"y\""`)

	// Row-major order.
	assert.Less(t, strings.Index(output, "B1:"), strings.Index(output, "AB3:"))
}
