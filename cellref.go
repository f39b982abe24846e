package xlgrid

import (
	"fmt"
	"strconv"
	"strings"
)

const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// CellRef addresses a single cell of a Grid.
type CellRef struct {
	Row int // 0-based row index
	Col int // 0-based column index
}

// NewCellRef creates a CellRef from a 0-based row and column.
func NewCellRef(row, col int) CellRef {
	return CellRef{Row: row, Col: col}
}

// ParseCellRef parses an address like "A1", "c4" or "$B$7".
func ParseCellRef(s string) (CellRef, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), "$", "")
	if s == "" {
		return CellRef{}, fmt.Errorf("empty cell reference: %w", ErrInvalidArgument)
	}

	i := 0
	for i < len(s) && isAlpha(s[i]) {
		i++
	}
	if i == 0 || i == len(s) {
		return CellRef{}, fmt.Errorf("invalid cell reference %q: %w", s, ErrInvalidArgument)
	}

	col, err := ColumnIndex(s[:i])
	if err != nil {
		return CellRef{}, fmt.Errorf("invalid cell reference %q: %w", s, err)
	}

	rowStr := s[i:]
	for _, ch := range rowStr {
		if ch < '0' || ch > '9' {
			return CellRef{}, fmt.Errorf("invalid row in cell reference %q: %w", s, ErrInvalidArgument)
		}
	}
	row, err := strconv.Atoi(rowStr)
	if err != nil || row < 1 {
		return CellRef{}, fmt.Errorf("invalid row number in cell reference %q: %w", s, ErrInvalidArgument)
	}

	return CellRef{Row: row - 1, Col: col}, nil
}

func isAlpha(b byte) bool {
	return (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z')
}

// Label formats the reference as column label followed by row label, e.g. "C4".
// Negative components yield an empty string.
func (c CellRef) Label() string {
	col, err := ColumnLabel(c.Col)
	if err != nil {
		return ""
	}
	row, err := RowLabel(c.Row)
	if err != nil {
		return ""
	}
	return col + row
}

// String implements fmt.Stringer.
func (c CellRef) String() string {
	if l := c.Label(); l != "" {
		return l
	}
	return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
}

// ColumnLabel converts a 0-based column index to its spreadsheet label.
// 0→"A", 25→"Z", 26→"AA", 701→"ZZ", 702→"AAA".
//
// Labels are bijective base-26: there is no zero digit, so each step
// shifts the remaining value down by one before taking the next letter.
func ColumnLabel(col int) (string, error) {
	if col < 0 {
		return "", fmt.Errorf("column index %d: %w", col, ErrInvalidArgument)
	}
	var buf [16]byte
	i := len(buf)
	for n := uint64(col) + 1; n > 0; n = (n - 1) / 26 {
		i--
		buf[i] = alphabet[(n-1)%26]
	}
	return string(buf[i:]), nil
}

// MustColumnLabel is like ColumnLabel but panics on a negative index.
func MustColumnLabel(col int) string {
	label, err := ColumnLabel(col)
	if err != nil {
		panic(err)
	}
	return label
}

// ColumnIndex converts a column label back to its 0-based index.
// "A"→0, "Z"→25, "AA"→26. Lowercase letters are accepted.
func ColumnIndex(label string) (int, error) {
	if label == "" {
		return 0, fmt.Errorf("empty column label: %w", ErrInvalidArgument)
	}
	label = strings.ToUpper(label)
	col := 0
	for _, ch := range label {
		if ch < 'A' || ch > 'Z' {
			return 0, fmt.Errorf("invalid column label %q: %w", label, ErrInvalidArgument)
		}
		col = col*26 + int(ch-'A') + 1
		if col < 0 {
			return 0, fmt.Errorf("column label %q overflows: %w", label, ErrInvalidArgument)
		}
	}
	return col - 1, nil
}

// RowLabel converts a 0-based row index to its 1-based decimal label.
func RowLabel(row int) (string, error) {
	if row < 0 {
		return "", fmt.Errorf("row index %d: %w", row, ErrInvalidArgument)
	}
	return strconv.Itoa(row + 1), nil
}
