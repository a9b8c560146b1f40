package docx

import (
	"fmt"

	"github.com/unidoc/unioffice/document"
)

// Template is a DOCX document whose text carries placeholder markup. After
// Render it holds the merged document until it is saved.
type Template struct {
	Path string // source path, empty when read from a reader
	doc  *document.Document
}

func (t *Template) String() string {
	return fmt.Sprintf("Path: %q, Paragraphs: %d", t.Path, len(t.paragraphs()))
}

// Document exposes the underlying unioffice document.
func (t *Template) Document() *document.Document {
	return t.doc
}
