package docmerge

import (
	"errors"
	"fmt"
)

// Initialization failures. New returns these and no row is processed.
var (
	// ErrLoad indicates the spreadsheet could not be opened or parsed.
	ErrLoad = errors.New("load spreadsheet")
	// ErrEmptyData indicates the spreadsheet has no data rows.
	ErrEmptyData = errors.New("spreadsheet has no data rows")
	// ErrMissingColumn indicates the template column is not in the header row.
	ErrMissingColumn = errors.New("missing column")
)

// Per-row failures. Run records these and moves on to the next row.
var (
	// ErrTemplateNotFound indicates an empty selector or a missing template file.
	ErrTemplateNotFound = errors.New("template not found")
	// ErrRender indicates the template could not be loaded or merged.
	ErrRender = errors.New("render template")
	// ErrSave indicates the rendered document could not be written.
	ErrSave = errors.New("save document")
)

// Stage names the step of row processing that failed.
type Stage string

const (
	StageRender Stage = "render"
	StageSave   Stage = "save"
)

// RowError represents a failure while processing a single row.
type RowError struct {
	Index int   // 0-based data row index
	Stage Stage // render or save
	Err   error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("row %d (%s): %v", e.Index, e.Stage, e.Err)
}

func (e *RowError) Unwrap() error {
	return e.Err
}
