package xlgrid

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fillGrid creates a grid from row-major values.
func fillGrid(t *testing.T, values [][]string) *Grid {
	t.Helper()
	g := newTestGrid(t, len(values), len(values[0]))
	for i, row := range values {
		for j, v := range row {
			require.NoError(t, g.Set(i, j, v))
		}
	}
	return g
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestWriteCSV_Basic(t *testing.T) {
	g := fillGrid(t, [][]string{
		{"a", "b", "c"},
		{"d", "e", "f"},
	})

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, g))
	assert.Equal(t, "a,b,c\r\nd,e,f\r\n", buf.String())
}

func TestWriteCSV_EmptyCells(t *testing.T) {
	g := newTestGrid(t, 2, 3)
	require.NoError(t, g.Set(1, 1, "x"))
	assert.Equal(t, ",,\r\n,x,\r\n", string(CSV(g)))
}

func TestWriteCSV_DefaultDoesNotEscape(t *testing.T) {
	g := fillGrid(t, [][]string{{"a,b", `say "hi"`}})
	assert.Equal(t, "a,b,say \"hi\"\r\n", string(CSV(g)))
}

func TestWriteCSV_WithQuoting(t *testing.T) {
	g := fillGrid(t, [][]string{
		{"a,b", `say "hi"`, "plain"},
		{"x\ny", "", "z"},
	})
	got := string(CSV(g, WithQuoting(true)))
	// encoding/csv also rewrites the embedded newline as CRLF.
	assert.Equal(t, "\"a,b\",\"say \"\"hi\"\"\",plain\r\n\"x\r\ny\",,z\r\n", got)
}

func TestWriteCSV_WriterError(t *testing.T) {
	g := fillGrid(t, [][]string{{"a"}})

	err := WriteCSV(failingWriter{}, g)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrExportFailed)
	assert.Contains(t, err.Error(), "disk full")

	err = WriteCSV(failingWriter{}, g, WithQuoting(true))
	assert.ErrorIs(t, err, ErrExportFailed)
}

func TestExportFilename(t *testing.T) {
	ts := time.UnixMilli(1700000000123)
	assert.Equal(t, "spreadsheet_1700000000123.csv", ExportFilename(ts, "csv"))
	assert.Equal(t, "spreadsheet_1700000000123.xlsx", ExportFilename(ts, ".xlsx"))
}

func TestSaveCSV(t *testing.T) {
	g := fillGrid(t, [][]string{{"1", "2"}, {"3", "4"}})
	dir := t.TempDir()

	path, err := SaveCSV(dir, g, time.UnixMilli(42))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "spreadsheet_42.csv"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "1,2\r\n3,4\r\n", string(data))
}

func TestSaveCSV_MissingDir(t *testing.T) {
	g := newTestGrid(t, 1, 1)
	_, err := SaveCSV(filepath.Join(t.TempDir(), "missing"), g, time.Now())
	assert.ErrorIs(t, err, ErrExportFailed)
}
