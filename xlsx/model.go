package xlsx

import (
	"fmt"
	"strings"
)

// Intermediate representation for a data sheet: a header row followed by
// data rows, all values already formatted as text.

// Row is one data record keyed by the sheet's header row. Values has the same
// length as Headers; missing cells are empty strings.
type Row struct {
	Index    int      // 0-based position among the data rows
	SheetRow int      // 1-based row number in the worksheet
	Headers  []string // shared with every other row of the sheet
	Values   []string
}

// Get returns the value of the named column and whether the column exists.
// Blank header names never match.
func (r Row) Get(column string) (string, bool) {
	if column == "" {
		return "", false
	}
	for i, h := range r.Headers {
		if h == column {
			return r.Values[i], true
		}
	}
	return "", false
}

// Has reports whether the row carries the named column.
func (r Row) Has(column string) bool {
	_, ok := r.Get(column)
	return ok
}

// Map returns a copy of the row as column -> value. Columns with a blank
// header are left out.
func (r Row) Map() map[string]string {
	m := make(map[string]string, len(r.Headers))
	for i, h := range r.Headers {
		if h == "" {
			continue
		}
		m[h] = r.Values[i]
	}
	return m
}

func (r Row) String() string {
	pairs := make([]string, 0, len(r.Headers))
	for i, h := range r.Headers {
		pairs = append(pairs, fmt.Sprintf("%s=%q", h, r.Values[i]))
	}
	return fmt.Sprintf("Index: %d, SheetRow: %d, Values: [%s]", r.Index, r.SheetRow, strings.Join(pairs, ", "))
}

// Sheet is the first worksheet of a workbook read as a table.
type Sheet struct {
	Name    string
	Headers []string
	Rows    []Row // in sheet order
}

func (s Sheet) String() string {
	return fmt.Sprintf("Name: %s, Headers: %v, Rows: %d", s.Name, s.Headers, len(s.Rows))
}
