package docx

import (
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/unidoc/unioffice/document"
	"github.com/unidoc/unioffice/schema/soo/wml"
)

// Open reads the DOCX template at path.
func Open(path string) (*Template, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("docx: open %s: %w", path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("docx: stat %s: %w", path, err)
	}
	t, err := Read(f, info.Size())
	if err != nil {
		return nil, err
	}
	t.Path = path
	return t, nil
}

// Read parses a DOCX template from r/size.
func Read(r io.ReaderAt, size int64) (*Template, error) {
	doc, err := document.Read(r, size)
	if err != nil {
		return nil, fmt.Errorf("docx: parse document: %w", err)
	}
	return &Template{doc: doc}, nil
}

// block is one element of a container: a paragraph or a table.
type block struct {
	p   *wml.CT_P
	tbl *wml.CT_Tbl
}

// container holds sibling blocks: the body, a table cell, a header or a
// footer.
type container []*wml.EG_ContentBlockContent

func (c container) blocks() []block {
	var out []block
	for _, cb := range c {
		for _, p := range cb.P {
			out = append(out, block{p: p})
		}
		for _, tbl := range cb.Tbl {
			out = append(out, block{tbl: tbl})
		}
	}
	return out
}

// remove detaches b from the container.
func (c container) remove(b block) {
	for _, cb := range c {
		if b.p != nil {
			cb.P = slices.DeleteFunc(cb.P, func(p *wml.CT_P) bool { return p == b.p })
		}
		if b.tbl != nil {
			cb.Tbl = slices.DeleteFunc(cb.Tbl, func(tbl *wml.CT_Tbl) bool { return tbl == b.tbl })
		}
	}
}

func blockLevel(elts []*wml.EG_BlockLevelElts) container {
	var c container
	for _, bl := range elts {
		c = append(c, bl.EG_ContentBlockContent...)
	}
	return c
}

// containers returns the top-level containers: the body, then headers, then
// footers.
func (t *Template) containers() []container {
	var out []container
	if body := t.doc.X().Body; body != nil {
		out = append(out, blockLevel(body.EG_BlockLevelElts))
	}
	for _, h := range t.doc.Headers() {
		out = append(out, container(h.X().EG_ContentBlockContent))
	}
	for _, f := range t.doc.Footers() {
		out = append(out, container(f.X().EG_ContentBlockContent))
	}
	return out
}

// cells returns one container per table cell, row by row.
func cells(tbl *wml.CT_Tbl) []container {
	var out []container
	for _, rc := range tbl.EG_ContentRowContent {
		for _, tr := range rc.Tr {
			for _, cc := range tr.EG_ContentCellContent {
				for _, tc := range cc.Tc {
					out = append(out, blockLevel(tc.EG_BlockLevelElts))
				}
			}
		}
	}
	return out
}

// paragraphs returns every paragraph that can carry markup in document
// order, descending into tables at any depth.
func (t *Template) paragraphs() []*wml.CT_P {
	var out []*wml.CT_P
	var walk func(c container)
	walk = func(c container) {
		for _, b := range c.blocks() {
			if b.p != nil {
				out = append(out, b.p)
				continue
			}
			for _, cell := range cells(b.tbl) {
				walk(cell)
			}
		}
	}
	for _, c := range t.containers() {
		walk(c)
	}
	return out
}

// Text returns the document's plain text, one line per paragraph.
func (t *Template) Text() string {
	var sb strings.Builder
	for _, p := range t.paragraphs() {
		sb.WriteString(paragraphText(p))
		sb.WriteString("\n")
	}
	return sb.String()
}
