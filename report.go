package docmerge

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// RowResult is the outcome of one row. Exactly one of Output and Err is set.
type RowResult struct {
	Index    int    // 0-based data row index
	SheetRow int    // 1-based worksheet row
	Template string // selector value as read from the row
	Output   string // written path
	Err      error
}

// OK reports whether the row produced a document.
func (r RowResult) OK() bool {
	return r.Err == nil
}

// Report lists the results of a run in row order.
type Report struct {
	Results []RowResult
}

// Outputs returns the written paths in row order.
func (r Report) Outputs() []string {
	out := make([]string, 0, len(r.Results))
	for _, res := range r.Results {
		if res.OK() {
			out = append(out, res.Output)
		}
	}
	return out
}

// Failures returns the rows that produced no document.
func (r Report) Failures() []RowResult {
	var out []RowResult
	for _, res := range r.Results {
		if !res.OK() {
			out = append(out, res)
		}
	}
	return out
}

const reportSheet = "Report"

var reportHeader = []any{"row", "sheet_row", "template", "output", "status", "error"}

// WriteXLSX saves the report as a workbook with one line per row.
func (r Report) WriteXLSX(path string) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", reportSheet); err != nil {
		return fmt.Errorf("report: %w", err)
	}
	if err := f.SetSheetRow(reportSheet, "A1", &reportHeader); err != nil {
		return fmt.Errorf("report: write header: %w", err)
	}

	for i, res := range r.Results {
		status, msg := "ok", ""
		if !res.OK() {
			status, msg = "failed", res.Err.Error()
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("report: %w", err)
		}
		line := []any{res.Index, res.SheetRow, res.Template, res.Output, status, msg}
		if err := f.SetSheetRow(reportSheet, cell, &line); err != nil {
			return fmt.Errorf("report: write row %d: %w", res.Index, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("report: save %s: %w", path, err)
	}
	return nil
}
