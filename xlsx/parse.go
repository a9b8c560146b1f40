package xlsx

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/xuri/excelize/v2"
)

var (
	// ErrNoData is returned when the first sheet has no row after the header.
	ErrNoData = errors.New("xlsx: worksheet is empty or has no data rows")
	// ErrDuplicateHeader is returned when two header cells carry the same name.
	ErrDuplicateHeader = errors.New("xlsx: duplicate header")
)

// ReadFile opens the workbook at path and reads its first sheet as a table.
func ReadFile(path string) (Sheet, error) {
	f, err := os.Open(path)
	if err != nil {
		return Sheet{}, fmt.Errorf("xlsx: open %s: %w", path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return Sheet{}, fmt.Errorf("xlsx: stat %s: %w", path, err)
	}
	return Read(f, info.Size())
}

// Read parses an XLSX from r/size and returns its first sheet as a table.
// Row 1 is the header row; every following row becomes a Row.
func Read(r io.ReaderAt, size int64) (Sheet, error) {
	f, err := excelize.OpenReader(io.NewSectionReader(r, 0, size))
	if err != nil {
		return Sheet{}, fmt.Errorf("xlsx: parse workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return Sheet{}, ErrNoData
	}
	name := sheets[0]

	grid, err := readGrid(f, name)
	if err != nil {
		return Sheet{}, err
	}
	if len(grid) <= 1 {
		return Sheet{}, ErrNoData
	}

	headers := grid[0]
	seen := make(map[string]int, len(headers))
	for i, h := range headers {
		if h == "" {
			continue
		}
		if prev, ok := seen[h]; ok {
			return Sheet{}, fmt.Errorf("%w %q in columns %s and %s",
				ErrDuplicateHeader, h, columnName(prev), columnName(i))
		}
		seen[h] = i
	}

	out := Sheet{
		Name:    name,
		Headers: headers,
		Rows:    make([]Row, 0, len(grid)-1),
	}
	for i, cells := range grid[1:] {
		values := make([]string, len(headers))
		copy(values, cells)
		out.Rows = append(out.Rows, Row{
			Index:    i,
			SheetRow: i + 2,
			Headers:  headers,
			Values:   values,
		})
	}
	return out, nil
}

// readGrid returns the cell text of a sheet as a dense grid anchored at A1.
// Empty rows between data rows come back empty and each row is only as wide
// as its last non-empty cell.
//
// Cells are read with their number format applied, except numbers in the
// General format, which keep their stored value so long IDs and decimals
// are not cut to Excel's display precision.
func readGrid(f *excelize.File, sheet string) ([][]string, error) {
	formatted, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("xlsx: read sheet %q: %w", sheet, err)
	}
	raw, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("xlsx: read sheet %q: %w", sheet, err)
	}

	for r, row := range formatted {
		if r >= len(raw) {
			break
		}
		for c, value := range row {
			if c >= len(raw[r]) || raw[r][c] == value {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				return nil, fmt.Errorf("xlsx: read sheet %q: %w", sheet, err)
			}
			if generalNumber(f, sheet, cell) {
				row[c] = raw[r][c]
			}
		}
	}
	return formatted, nil
}

// generalNumber reports whether cell holds a number shown in the General format.
func generalNumber(f *excelize.File, sheet, cell string) bool {
	typ, err := f.GetCellType(sheet, cell)
	if err != nil || (typ != excelize.CellTypeNumber && typ != excelize.CellTypeUnset) {
		return false
	}
	id, err := f.GetCellStyle(sheet, cell)
	if err != nil {
		return false
	}
	if id == 0 {
		return true
	}
	style, err := f.GetStyle(id)
	if err != nil || style == nil {
		return false
	}
	return style.NumFmt == 0 && style.CustomNumFmt == nil
}

func columnName(i int) string {
	name, err := excelize.ColumnNumberToName(i + 1)
	if err != nil {
		return fmt.Sprint(i + 1)
	}
	return name
}
