package xlgrid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// --- ColumnLabel Tests ---

func TestColumnLabel_MatchesExcelize(t *testing.T) {
	for col := 0; col < 16384; col++ { // A..XFD
		want, err := excelize.ColumnNumberToName(col + 1)
		require.NoError(t, err)
		got, err := ColumnLabel(col)
		require.NoError(t, err)
		if !assert.Equal(t, want, got, "index %d", col) {
			return
		}
	}
}

func TestColumnLabel_SingleLetters(t *testing.T) {
	for i := 0; i < 26; i++ {
		label, err := ColumnLabel(i)
		require.NoError(t, err)
		assert.Equal(t, string(rune('A'+i)), label, "index %d", i)
	}
}

func TestColumnLabel_Boundaries(t *testing.T) {
	tests := []struct {
		col  int
		want string
	}{
		{0, "A"},
		{25, "Z"},
		{26, "AA"},
		{27, "AB"},
		{51, "AZ"},
		{52, "BA"},
		{675, "YZ"},
		{676, "ZA"},
		{701, "ZZ"},
		{702, "AAA"},
		{703, "AAB"},
		{18277, "ZZZ"},
		{18278, "AAAA"},
		{16383, "XFD"}, // last Excel column
	}
	for _, tt := range tests {
		label, err := ColumnLabel(tt.col)
		require.NoError(t, err)
		assert.Equal(t, tt.want, label, "index %d", tt.col)
	}
}

func TestColumnLabel_Negative(t *testing.T) {
	_, err := ColumnLabel(-1)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestMustColumnLabel_PanicsOnNegative(t *testing.T) {
	assert.Equal(t, "C", MustColumnLabel(2))
	assert.Panics(t, func() { MustColumnLabel(-3) })
}

func TestColumnLabel_InjectiveAndOrdered(t *testing.T) {
	const n = 20000
	seen := make(map[string]int, n)
	prev := ""
	for i := 0; i < n; i++ {
		label := MustColumnLabel(i)
		if j, dup := seen[label]; dup {
			t.Fatalf("label %q produced by %d and %d", label, j, i)
		}
		seen[label] = i

		if prev != "" {
			longer := len(label) > len(prev)
			sameLenGreater := len(label) == len(prev) && label > prev
			assert.True(t, longer || sameLenGreater, "%q (%d) should follow %q", label, i, prev)
		}
		prev = label
	}
}

func TestColumnIndex_RoundTrip(t *testing.T) {
	for i := 0; i < 20000; i += 7 {
		col, err := ColumnIndex(MustColumnLabel(i))
		require.NoError(t, err)
		require.Equal(t, i, col)
	}
}

func TestColumnIndex_Lowercase(t *testing.T) {
	col, err := ColumnIndex("az")
	require.NoError(t, err)
	assert.Equal(t, 51, col)
}

func TestColumnIndex_Invalid(t *testing.T) {
	for _, s := range []string{"", "A1", "-", "Ä"} {
		_, err := ColumnIndex(s)
		assert.ErrorIs(t, err, ErrInvalidArgument, "label %q", s)
	}
}

// --- RowLabel Tests ---

func TestRowLabel(t *testing.T) {
	label, err := RowLabel(0)
	require.NoError(t, err)
	assert.Equal(t, "1", label)

	label, err = RowLabel(49)
	require.NoError(t, err)
	assert.Equal(t, "50", label)

	_, err = RowLabel(-1)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

// --- CellRef Tests ---

func TestCellRef_Label(t *testing.T) {
	assert.Equal(t, "A1", NewCellRef(0, 0).Label())
	assert.Equal(t, "C4", NewCellRef(3, 2).Label())
	assert.Equal(t, "AX50", NewCellRef(49, 49).Label())
	assert.Equal(t, "", NewCellRef(-1, 0).Label())
}

func TestCellRef_String_Negative(t *testing.T) {
	assert.Equal(t, "B3", NewCellRef(2, 1).String())
	assert.Equal(t, "(0,-1)", NewCellRef(0, -1).String())
}

func TestParseCellRef_SimpleCell(t *testing.T) {
	ref, err := ParseCellRef("A1")
	require.NoError(t, err)
	assert.Equal(t, 0, ref.Row)
	assert.Equal(t, 0, ref.Col)
}

func TestParseCellRef_AbsoluteAndLowercase(t *testing.T) {
	ref, err := ParseCellRef("$c$4")
	require.NoError(t, err)
	assert.Equal(t, NewCellRef(3, 2), ref)
}

func TestParseCellRef_MultiLetterCol(t *testing.T) {
	ref, err := ParseCellRef("AZ10")
	require.NoError(t, err)
	assert.Equal(t, 9, ref.Row)
	assert.Equal(t, 51, ref.Col)
}

func TestParseCellRef_Invalid(t *testing.T) {
	for _, s := range []string{"", "A", "123", "A0", "A-1", "1A", "A1B"} {
		_, err := ParseCellRef(s)
		assert.ErrorIs(t, err, ErrInvalidArgument, "ref %q", s)
	}
}

func TestParseCellRef_RoundTrip(t *testing.T) {
	for row := 0; row < 60; row += 3 {
		for col := 0; col < 800; col += 13 {
			ref := NewCellRef(row, col)
			parsed, err := ParseCellRef(ref.Label())
			require.NoError(t, err)
			require.Equal(t, ref, parsed)
		}
	}
}
