// Package export renders tables of string cells as TXT, CSV or XLSX.
//
// All three writers take the same [][]string, so a report can be written in
// any format without querying the database again.
package export

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Format is an export file format, named after its file extension.
type Format string

const (
	FormatTXT  Format = "txt"
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// Formats lists the supported formats.
var Formats = []Format{FormatTXT, FormatCSV, FormatXLSX}

// Separator joins the cells of a TXT row.
const Separator = "|"

// ErrUnknownFormat is returned for an unsupported format or file extension.
var ErrUnknownFormat = errors.New("unknown export format")

// Error reports a failed export. It always carries the cause.
type Error struct {
	Path   string
	Format Format
	Err    error
}

func (e *Error) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("export %s: %v", e.Format, e.Err)
	}
	return fmt.Sprintf("export %s to %s: %v", e.Format, e.Path, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Ext returns the file extension of f, with the leading dot.
func (f Format) Ext() string { return "." + string(f) }

// ParseFormat accepts "txt", "CSV", ".xlsx" and so on.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.TrimPrefix(strings.ToLower(strings.TrimSpace(s)), "."))
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// FormatFromPath picks the format from the extension of path.
func FormatFromPath(path string) (Format, error) {
	return ParseFormat(filepath.Ext(path))
}

// WriteTXT writes each row as its cells joined by sep, followed by "\n".
func WriteTXT(w io.Writer, rows [][]string, sep string) error {
	for _, row := range rows {
		if _, err := io.WriteString(w, strings.Join(row, sep)+"\n"); err != nil {
			return &Error{Format: FormatTXT, Err: err}
		}
	}
	return nil
}

// WriteCSV writes rows as RFC 4180 CSV with CRLF line endings.
func WriteCSV(w io.Writer, rows [][]string) error {
	cw := csv.NewWriter(w)
	cw.UseCRLF = true
	if err := cw.WriteAll(rows); err != nil {
		return &Error{Format: FormatCSV, Err: err}
	}
	return nil
}

// WriteXLSX writes rows to the first worksheet of a new workbook, starting at A1.
func WriteXLSX(w io.Writer, rows [][]string) error {
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return &Error{Format: FormatXLSX, Err: err}
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return &Error{Format: FormatXLSX, Err: err}
		}
	}
	if err := f.Write(w); err != nil {
		return &Error{Format: FormatXLSX, Err: err}
	}
	return nil
}

// Write renders rows in format f.
func Write(w io.Writer, f Format, rows [][]string) error {
	switch f {
	case FormatTXT:
		return WriteTXT(w, rows, Separator)
	case FormatCSV:
		return WriteCSV(w, rows)
	case FormatXLSX:
		return WriteXLSX(w, rows)
	}
	return &Error{Format: f, Err: fmt.Errorf("%w: %q", ErrUnknownFormat, f)}
}

// WriteFile writes rows to path in the format given by its extension. The
// parent directory must exist. Nothing is written when rendering fails.
func WriteFile(path string, rows [][]string) error {
	f, err := FormatFromPath(path)
	if err != nil {
		return &Error{Path: path, Err: err}
	}
	if _, err := os.Stat(filepath.Dir(path)); err != nil {
		return &Error{Path: path, Format: f, Err: err}
	}
	var buf bytes.Buffer
	if err := Write(&buf, f, rows); err != nil {
		var ee *Error
		if errors.As(err, &ee) {
			ee.Path = path
			return ee
		}
		return &Error{Path: path, Format: f, Err: err}
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return &Error{Path: path, Format: f, Err: err}
	}
	return nil
}
