package xlgrid

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// ExportFilename returns the download name for an export taken at t,
// e.g. "spreadsheet_1700000000000.csv".
func ExportFilename(t time.Time, ext string) string {
	return fmt.Sprintf("spreadsheet_%d.%s", t.UnixMilli(), strings.TrimPrefix(ext, "."))
}

// WriteCSV serializes g row-major to w: cells joined by ",", every row
// terminated by CRLF, including the last one.
//
// By default values are written as-is with no quoting or escaping. See
// WithQuoting.
func WriteCSV(w io.Writer, g *Grid, opts ...ExportOption) error {
	o := buildExportOptions(opts)
	if o.quoting {
		return writeQuotedCSV(w, g)
	}

	bw := bufio.NewWriter(w)
	for _, row := range g.cells {
		for j, v := range row {
			if j > 0 {
				bw.WriteByte(',')
			}
			bw.WriteString(v)
		}
		bw.WriteString("\r\n")
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write csv: %w: %w", ErrExportFailed, err)
	}
	return nil
}

func writeQuotedCSV(w io.Writer, g *Grid) error {
	cw := csv.NewWriter(w)
	cw.UseCRLF = true
	if err := cw.WriteAll(g.cells); err != nil {
		return fmt.Errorf("write csv: %w: %w", ErrExportFailed, err)
	}
	return nil
}

// CSV returns the CSV serialization of g.
func CSV(g *Grid, opts ...ExportOption) []byte {
	var buf bytes.Buffer
	// bytes.Buffer writes do not fail.
	_ = WriteCSV(&buf, g, opts...)
	return buf.Bytes()
}

// SaveCSV writes g into dir under ExportFilename(now, "csv") and returns the
// path of the created file.
func SaveCSV(dir string, g *Grid, now time.Time, opts ...ExportOption) (string, error) {
	return saveExport(dir, ExportFilename(now, "csv"), func(w io.Writer) error {
		return WriteCSV(w, g, opts...)
	})
}

func saveExport(dir, name string, write func(io.Writer) error) (string, error) {
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create %q: %w: %w", path, ErrExportFailed, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close %q: %w: %w", path, ErrExportFailed, err)
	}
	return path, nil
}
