// Package fetcher reads and writes the spreadsheet and CSV files the
// pipeline consumes, plus the FTP download path for vendor drops.
package fetcher

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"
)

// Table is an in-memory sheet: a header row plus string-valued data rows.
// Column lookup is by header name, case-insensitive on first access.
type Table struct {
	Header []string
	Rows   [][]string

	colIdx map[string]int
}

// XLSXOptions selects which sheet of a workbook to read. SheetName wins when
// both are set; the zero value reads the first sheet.
type XLSXOptions struct {
	SheetIndex int
	SheetName  string
}

// ReadXLSX loads one sheet of an Excel workbook into a Table. The first
// non-empty row is the header; trailing blank cells are preserved so row
// widths match the header.
func ReadXLSX(path string, opts XLSXOptions) (*Table, error) {
	wb, err := xlsx.OpenFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "fetcher: open workbook %s", path)
	}
	sheet, err := getSheet(wb, opts)
	if err != nil {
		return nil, err
	}
	t := &Table{}
	for _, row := range sheet.Rows {
		cells := rowToStrings(row, len(t.Header))
		if t.Header == nil {
			if isBlankRow(cells) {
				continue
			}
			t.Header = cells
			continue
		}
		if isBlankRow(cells) {
			continue
		}
		t.Rows = append(t.Rows, cells)
	}
	if t.Header == nil {
		return nil, eris.Errorf("fetcher: workbook %s has no header row", path)
	}
	return t, nil
}

// Sheet is one sheet of a workbook to be written.
type Sheet struct {
	Name   string
	Header []string
	Rows   [][]string
}

// WriteXLSX writes a single-sheet workbook. Cells are written as strings so
// FIPS codes and APNs survive round trips without float mangling.
func WriteXLSX(path, sheetName string, header []string, rows [][]string) error {
	return WriteWorkbook(path, []Sheet{{Name: sheetName, Header: header, Rows: rows}})
}

// WriteWorkbook writes a multi-sheet workbook, all cells as strings.
func WriteWorkbook(path string, sheets []Sheet) error {
	wb := xlsx.NewFile()
	for _, s := range sheets {
		sheet, err := wb.AddSheet(s.Name)
		if err != nil {
			return eris.Wrapf(err, "fetcher: add sheet %s", s.Name)
		}
		hr := sheet.AddRow()
		for _, h := range s.Header {
			hr.AddCell().SetString(h)
		}
		for _, row := range s.Rows {
			r := sheet.AddRow()
			for _, v := range row {
				r.AddCell().SetString(v)
			}
		}
	}
	if err := wb.Save(path); err != nil {
		return eris.Wrapf(err, "fetcher: save workbook %s", path)
	}
	return nil
}

// Col returns the named column's value for a row, trimmed. The second result
// is false when the table has no such column.
func (t *Table) Col(row []string, name string) (string, bool) {
	i, ok := t.index(name)
	if !ok || i >= len(row) {
		return "", ok
	}
	return strings.TrimSpace(row[i]), true
}

// HasCol reports whether the header contains the named column.
func (t *Table) HasCol(name string) bool {
	_, ok := t.index(name)
	return ok
}

func (t *Table) index(name string) (int, bool) {
	if t.colIdx == nil {
		t.colIdx = make(map[string]int, len(t.Header))
		for i, h := range t.Header {
			t.colIdx[strings.ToLower(strings.TrimSpace(h))] = i
		}
	}
	i, ok := t.colIdx[strings.ToLower(strings.TrimSpace(name))]
	return i, ok
}

func getSheet(wb *xlsx.File, opts XLSXOptions) (*xlsx.Sheet, error) {
	if opts.SheetName != "" {
		sheet, ok := wb.Sheet[opts.SheetName]
		if !ok {
			return nil, eris.Errorf("fetcher: no sheet named %q", opts.SheetName)
		}
		return sheet, nil
	}
	if opts.SheetIndex < 0 || opts.SheetIndex >= len(wb.Sheets) {
		return nil, eris.Errorf("fetcher: sheet index %d out of range (%d sheets)", opts.SheetIndex, len(wb.Sheets))
	}
	return wb.Sheets[opts.SheetIndex], nil
}

// rowToStrings pads short rows to width so column indexes stay aligned.
func rowToStrings(row *xlsx.Row, width int) []string {
	out := make([]string, 0, len(row.Cells))
	for _, c := range row.Cells {
		out = append(out, c.String())
	}
	for len(out) < width {
		out = append(out, "")
	}
	return out
}

func isBlankRow(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
