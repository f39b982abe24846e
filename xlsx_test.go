package xlgrid

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestWriteXLSX_Values(t *testing.T) {
	g := newTestGrid(t, 3, 30)
	require.NoError(t, g.Set(0, 0, "Name"))
	require.NoError(t, g.Set(2, 27, "far"))

	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, g))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Sheet1"}, f.GetSheetList())
	v, err := f.GetCellValue("Sheet1", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Name", v)

	v, err = f.GetCellValue("Sheet1", "AB3")
	require.NoError(t, err)
	assert.Equal(t, "far", v)
}

func TestWriteXLSX_SheetName(t *testing.T) {
	g := fillGrid(t, [][]string{{"x"}})

	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, g, WithSheetName("Export")))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, []string{"Export"}, f.GetSheetList())
}

func TestXLSX_RoundTrip(t *testing.T) {
	g := fillGrid(t, [][]string{
		{"a", "", "c"},
		{"", "e,with comma", ""},
	})

	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, g))

	loaded, err := ReadXLSX(&buf, 2, 3, "")
	require.NoError(t, err)
	assert.Equal(t, g.Values(), loaded.Values())
}

func TestReadXLSX_OutOfRange(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	f.SetCellValue("Sheet1", "A1", "in")
	f.SetCellValue("Sheet1", "D1", "out")

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	_, err = ReadXLSX(buf, 2, 3, "Sheet1")
	assert.ErrorIs(t, err, ErrOutOfRange)
}

func TestReadXLSX_MissingSheet(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	_, err = ReadXLSX(buf, 2, 2, "Nope")
	assert.Error(t, err)
}

func TestReadXLSX_InvalidDimensions(t *testing.T) {
	_, err := ReadXLSX(bytes.NewReader(nil), 0, 2, "")
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestSaveXLSX(t *testing.T) {
	g := fillGrid(t, [][]string{{"v"}})
	path, err := SaveXLSX(t.TempDir(), g, time.UnixMilli(7))
	require.NoError(t, err)
	assert.Contains(t, path, "spreadsheet_7.xlsx")

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()
	v, err := f.GetCellValue("Sheet1", "A1")
	require.NoError(t, err)
	assert.Equal(t, "v", v)
}
