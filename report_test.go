package docmerge

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestReport_OutputsAndFailures(t *testing.T) {
	failure := &RowError{Index: 1, Stage: StageRender, Err: fmt.Errorf("%w: x", ErrTemplateNotFound)}
	report := Report{Results: []RowResult{
		{Index: 0, Output: "a.docx"},
		{Index: 1, Err: failure},
		{Index: 2, Output: "c.docx"},
	}}

	if diff := cmp.Diff([]string{"a.docx", "c.docx"}, report.Outputs()); diff != "" {
		t.Fatalf("outputs mismatch (-want +got):\n%s", diff)
	}
	failures := report.Failures()
	if len(failures) != 1 || failures[0].Index != 1 {
		t.Fatalf("unexpected failures: %+v", failures)
	}
}

func TestReport_WriteXLSX(t *testing.T) {
	report := Report{Results: []RowResult{
		{Index: 0, SheetRow: 2, Template: "letter", Output: "out/a.docx"},
		{Index: 1, SheetRow: 3, Template: "missing", Err: &RowError{Index: 1, Stage: StageRender, Err: ErrTemplateNotFound}},
	}}

	path := filepath.Join(t.TempDir(), "report.xlsx")
	require.NoError(t, report.WriteXLSX(path))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Report")
	require.NoError(t, err)

	want := [][]string{
		{"row", "sheet_row", "template", "output", "status", "error"},
		{"0", "2", "letter", "out/a.docx", "ok"},
		{"1", "3", "missing", "", "failed", "row 1 (render): template not found"},
	}
	if diff := cmp.Diff(want, rows); diff != "" {
		t.Fatalf("report rows mismatch (-want +got):\n%s", diff)
	}
}
