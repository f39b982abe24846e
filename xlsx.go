package xlgrid

import (
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"
)

// WriteXLSX writes the values of g to w as a single-sheet workbook.
// Empty cells are left unset.
func WriteXLSX(w io.Writer, g *Grid, opts ...ExportOption) error {
	o := buildExportOptions(opts)

	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	if o.sheetName != sheet {
		if err := f.SetSheetName(sheet, o.sheetName); err != nil {
			return fmt.Errorf("rename sheet %q: %w: %w", o.sheetName, ErrExportFailed, err)
		}
		sheet = o.sheetName
	}

	for i, row := range g.cells {
		for j, v := range row {
			if v == "" {
				continue
			}
			cell := CellRef{Row: i, Col: j}.Label()
			if err := f.SetCellStr(sheet, cell, v); err != nil {
				return fmt.Errorf("set %s: %w: %w", cell, ErrExportFailed, err)
			}
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write xlsx: %w: %w", ErrExportFailed, err)
	}
	return nil
}

// SaveXLSX writes g into dir under ExportFilename(now, "xlsx") and returns
// the path of the created file.
func SaveXLSX(dir string, g *Grid, now time.Time, opts ...ExportOption) (string, error) {
	return saveExport(dir, ExportFilename(now, "xlsx"), func(w io.Writer) error {
		return WriteXLSX(w, g, opts...)
	})
}

// ReadXLSX loads the values of one worksheet into a new rows×cols grid.
// An empty sheet name selects the first sheet. Non-empty cells that fall
// outside the grid are reported with ErrOutOfRange.
func ReadXLSX(r io.Reader, rows, cols int, sheet string, opts ...Option) (*Grid, error) {
	g, err := NewGrid(rows, cols, opts...)
	if err != nil {
		return nil, err
	}

	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	values, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read rows from sheet %q: %w", sheet, err)
	}

	for i, row := range values {
		for j, v := range row {
			if v == "" {
				continue
			}
			if err := g.Set(i, j, v); err != nil {
				return nil, fmt.Errorf("sheet %q: %w", sheet, err)
			}
		}
	}
	return g, nil
}
