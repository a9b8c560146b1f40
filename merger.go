// Package docmerge fills DOCX templates with rows read from an XLSX
// spreadsheet, writing one document per row.
package docmerge

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/aerissecure/docmerge/docx"
	"github.com/aerissecure/docmerge/xlsx"
)

// Option configures a Merger.
type Option func(*Merger)

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger *zap.Logger) Option {
	return func(m *Merger) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// Merger renders one document per spreadsheet row. A Merger is single use:
// its default-name counter starts at 1 for every New.
type Merger struct {
	cfg         Config
	templateDir string
	outputDir   string

	sheet  xlsx.Sheet
	engine *docx.Engine
	namer  *Namer
	logger *zap.Logger
}

// New loads the spreadsheet, checks the template column and creates the
// data, template and output folders. Errors wrap ErrLoad, ErrEmptyData or
// ErrMissingColumn when those are the cause.
func New(cfg Config, opts ...Option) (*Merger, error) {
	cfg = cfg.withDefaults()
	m := &Merger{
		cfg:         cfg,
		templateDir: cfg.TemplateDir(),
		outputDir:   cfg.OutputDir(),
		logger:      zap.NewNop(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(m)
		}
	}
	m.logger = m.logger.With(zap.String("run_id", uuid.NewString()))

	m.logger.Info("Configuration",
		zap.String("excel_path", cfg.ExcelPath),
		zap.String("template_column", cfg.TemplateColumn),
		zap.String("output_column", cfg.OutputColumn),
		zap.String("default_output_name", cfg.DefaultOutputName),
		zap.String("data_folder", cfg.DataFolder),
		zap.String("template_folder", m.templateDir),
		zap.String("output_folder", m.outputDir))

	sheet, err := m.load()
	if err != nil {
		return nil, err
	}
	m.sheet = sheet

	if err := m.validateColumn(); err != nil {
		return nil, err
	}
	if err := m.createFolders(); err != nil {
		return nil, err
	}

	engine, err := docx.NewEngine(m.templateDir)
	if err != nil {
		return nil, err
	}
	m.engine = engine
	m.namer = NewNamer(m.outputDir, cfg.OutputColumn, cfg.DefaultOutputName, DocumentExt)
	return m, nil
}

func (m *Merger) load() (xlsx.Sheet, error) {
	m.logger.Info("Reading Excel file...")

	sheet, err := xlsx.ReadFile(m.cfg.ExcelPath)
	if errors.Is(err, xlsx.ErrNoData) {
		m.logger.Warn("Worksheet is empty or has no data rows", zap.String("path", m.cfg.ExcelPath))
		return xlsx.Sheet{}, fmt.Errorf("%w: %s", ErrEmptyData, m.cfg.ExcelPath)
	}
	if err != nil {
		m.logger.Error("Failed to load workbook", zap.Error(err))
		return xlsx.Sheet{}, fmt.Errorf("%w: %w", ErrLoad, err)
	}

	m.logger.Info("Excel file read",
		zap.String("sheet", sheet.Name),
		zap.Strings("headers", sheet.Headers),
		zap.Int("rows", len(sheet.Rows)))
	return sheet, nil
}

func (m *Merger) validateColumn() error {
	m.logger.Info("Checking template column...")

	if len(m.sheet.Rows) == 0 || !m.sheet.Rows[0].Has(m.cfg.TemplateColumn) {
		err := fmt.Errorf("%w: template column %q not found in data headers %q",
			ErrMissingColumn, m.cfg.TemplateColumn, m.sheet.Headers)
		m.logger.Error("Template column check failed", zap.Error(err))
		return err
	}

	m.logger.Info("Template column check passed")
	return nil
}

func (m *Merger) createFolders() error {
	m.logger.Info("Creating necessary folders...")

	for _, dir := range []string{m.cfg.DataFolder, m.templateDir, m.outputDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create folder %s: %w", dir, err)
		}
	}

	m.logger.Info("Folders created")
	return nil
}

// Rows returns the loaded data rows.
func (m *Merger) Rows() []xlsx.Row {
	return m.sheet.Rows
}

// Run processes every row in order. A failing row is logged and recorded in
// the report; it never stops the run.
func (m *Merger) Run() Report {
	report := Report{Results: make([]RowResult, 0, len(m.sheet.Rows))}

	for _, row := range m.sheet.Rows {
		log := m.logger.With(zap.Int("row", row.Index), zap.Int("sheet_row", row.SheetRow))
		log.Info("Processing row...")

		res := m.processRow(row)
		if res.Err != nil {
			log.Error("Error processing row", zap.Error(res.Err))
		} else {
			log.Info("Row processed", zap.String("output", res.Output))
		}
		report.Results = append(report.Results, res)
	}

	m.logger.Info("Run finished",
		zap.Int("rows", len(report.Results)),
		zap.Int("written", len(report.Outputs())),
		zap.Int("failed", len(report.Failures())))
	return report
}

func (m *Merger) processRow(row xlsx.Row) RowResult {
	res := RowResult{Index: row.Index, SheetRow: row.SheetRow}
	res.Template, _ = row.Get(m.cfg.TemplateColumn)

	tpl, err := m.renderRow(row)
	if err != nil {
		res.Err = &RowError{Index: row.Index, Stage: StageRender, Err: err}
		return res
	}

	path := m.namer.Next(row)
	if err := m.save(tpl, path); err != nil {
		res.Err = &RowError{Index: row.Index, Stage: StageSave, Err: err}
		return res
	}
	res.Output = path
	return res
}

// renderRow resolves the row's template and merges the row into it. The
// template is read from disk for every row.
func (m *Merger) renderRow(row xlsx.Row) (*docx.Template, error) {
	m.logger.Debug("Rendering template...", zap.Int("row", row.Index))

	name, _ := row.Get(m.cfg.TemplateColumn)
	if name == "" {
		return nil, fmt.Errorf("%w: column %q is empty", ErrTemplateNotFound, m.cfg.TemplateColumn)
	}
	path := filepath.Join(m.templateDir, name+"."+DocumentExt)
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return nil, fmt.Errorf("%w: template file path %q is invalid or does not exist", ErrTemplateNotFound, path)
	}

	tpl, err := docx.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRender, err)
	}
	if err := tpl.Render(m.engine, docx.Context(row.Map())); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrRender, path, err)
	}

	m.logger.Debug("Template rendered", zap.String("template", path))
	return tpl, nil
}

// save writes tpl to path without replacing an existing file. A default
// name left over from an earlier run therefore fails the row instead of
// being overwritten.
func (m *Merger) save(tpl *docx.Template, path string) error {
	if err := tpl.SaveNew(path); err != nil {
		return fmt.Errorf("%w: %w", ErrSave, err)
	}
	m.logger.Info("Document saved", zap.String("path", path))
	return nil
}
