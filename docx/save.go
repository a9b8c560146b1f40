package docx

import (
	"errors"
	"fmt"
	"io"
	"os"
)

// Save writes the document to w.
func (t *Template) Save(w io.Writer) error {
	if t == nil || t.doc == nil {
		return errors.New("docx: template is nil")
	}
	if err := t.doc.Save(w); err != nil {
		return fmt.Errorf("docx: save: %w", err)
	}
	return nil
}

// SaveNew writes the document to a new file at path. It never replaces an
// existing file: if path exists the returned error wraps fs.ErrExist.
// A partially written file is removed.
func (t *Template) SaveNew(path string) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return fmt.Errorf("docx: create %s: %w", path, err)
	}
	if err := t.Save(f); err != nil {
		f.Close()
		os.Remove(path)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return fmt.Errorf("docx: close %s: %w", path, err)
	}
	return nil
}
