package docmerge

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/unidoc/unioffice/document"
	"github.com/xuri/excelize/v2"

	"github.com/aerissecure/docmerge/docx"
)

// writeSheet saves rows (first row = headers) to an .xlsx in dir.
func writeSheet(t *testing.T, dir string, rows [][]any) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}
	path := filepath.Join(dir, "data.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

// writeDocx saves a single-paragraph document with the given text.
func writeDocx(t *testing.T, path, text string) {
	t.Helper()
	doc := document.New()
	doc.AddParagraph().AddRun().AddText(text)
	require.NoError(t, doc.SaveToFile(path))
}

func readText(t *testing.T, path string) string {
	t.Helper()
	tpl, err := docx.Open(path)
	require.NoError(t, err)
	return tpl.Text()
}

// testConfig returns a Config rooted in a fresh temp dir, with the
// spreadsheet written from rows and the named templates created.
func testConfig(t *testing.T, rows [][]any, templates map[string]string) Config {
	t.Helper()
	root := t.TempDir()
	cfg := DefaultConfig()
	cfg.DataFolder = filepath.Join(root, "data")
	cfg.ExcelPath = writeSheet(t, root, rows)
	cfg.TemplateColumn = "template"
	cfg.OutputColumn = "output"

	dir := cfg.TemplateDir()
	require.NoError(t, os.MkdirAll(dir, 0755))
	for name, text := range templates {
		writeDocx(t, filepath.Join(dir, name+".docx"), text)
	}
	return cfg
}
