package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/unidoc/unioffice/document"
	"github.com/xuri/excelize/v2"
)

func setupData(t *testing.T) (root, excelPath string) {
	t.Helper()
	root = t.TempDir()

	f := excelize.NewFile()
	defer f.Close()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]any{"kind", "file", "name"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]any{"letter", "alice", "Alice"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A3", &[]any{"nope", "bob", "Bob"}))
	excelPath = filepath.Join(root, "data.xlsx")
	require.NoError(t, f.SaveAs(excelPath))

	tplDir := filepath.Join(root, "data", "templates")
	require.NoError(t, os.MkdirAll(tplDir, 0755))
	doc := document.New()
	doc.AddParagraph().AddRun().AddText("Dear {{ name }}")
	require.NoError(t, doc.SaveToFile(filepath.Join(tplDir, "letter.docx")))
	return root, excelPath
}

func TestRootCmd_Flags(t *testing.T) {
	root, excelPath := setupData(t)
	report := filepath.Join(root, "report.xlsx")

	cmd := newRootCmd()
	cmd.SetArgs([]string{
		"--excel", excelPath,
		"--template-column", "kind",
		"--output-column", "file",
		"--data-folder", filepath.Join(root, "data"),
		"--log-folder", filepath.Join(root, "logs"),
		"--report", report,
	})
	require.NoError(t, cmd.Execute())

	assert.FileExists(t, filepath.Join(root, "data", "output", "alice.docx"))
	assert.NoFileExists(t, filepath.Join(root, "data", "output", "bob.docx"))
	assert.FileExists(t, report)

	logs, err := os.ReadDir(filepath.Join(root, "logs"))
	require.NoError(t, err)
	assert.Len(t, logs, 1)
}

func TestRootCmd_ConfigFileWithFlagOverride(t *testing.T) {
	root, excelPath := setupData(t)
	cfgPath := filepath.Join(root, "docmerge.yaml")
	content := "excel_path: " + excelPath + "\n" +
		"template_column: kind\n" +
		"output_column: file\n" +
		"data_folder: " + filepath.Join(root, "data") + "\n"
	require.NoError(t, os.WriteFile(cfgPath, []byte(content), 0644))

	cmd := newRootCmd()
	cmd.SetArgs([]string{
		"--config", cfgPath,
		"--output-folder", "rendered",
		"--log-folder", filepath.Join(root, "logs"),
	})
	require.NoError(t, cmd.Execute())

	assert.FileExists(t, filepath.Join(root, "data", "rendered", "alice.docx"))
}

func TestRootCmd_FatalOnMissingColumn(t *testing.T) {
	root, excelPath := setupData(t)

	cmd := newRootCmd()
	cmd.SetArgs([]string{
		"--excel", excelPath,
		"--template-column", "template",
		"--data-folder", filepath.Join(root, "data"),
		"--log-folder", filepath.Join(root, "logs"),
	})
	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), `["kind" "file" "name"]`)
}
