package docx

import (
	"errors"
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/flosch/pongo2/v6"
	"github.com/unidoc/unioffice/schema/soo/wml"
)

var (
	// controlRe matches a paragraph that holds nothing but one conditional
	// tag. The docxtpl spelling {%p ... %} is accepted as well.
	controlRe = regexp.MustCompile(`^\{%p?\s*((?:if|elif|else|endif)\b[^%]*)%\}$`)
	markerRe  = regexp.MustCompile("\x1e([0-9]+)\x1e")
)

// Render merges data into the template in place. Conditional tags that sit
// in paragraphs of their own keep or drop the blocks between them; every
// remaining paragraph is then rendered on its own.
func (t *Template) Render(engine *Engine, data pongo2.Context) error {
	if t == nil || t.doc == nil {
		return errors.New("docx: template is nil")
	}
	r := &renderer{engine: engine, data: data}
	for _, c := range t.containers() {
		if err := r.container(c); err != nil {
			return err
		}
	}
	return nil
}

type renderer struct {
	engine *Engine
	data   pongo2.Context
	para   int // paragraphs seen so far, for error messages
}

func (r *renderer) container(c container) error {
	if err := r.blocks(c); err != nil {
		return err
	}
	for _, b := range c.blocks() {
		if b.p != nil {
			if err := renderParagraph(r.engine, b.p, r.data); err != nil {
				return fmt.Errorf("docx: paragraph %d: %w", r.para, err)
			}
			r.para++
			continue
		}
		for _, cell := range cells(b.tbl) {
			if err := r.container(cell); err != nil {
				return err
			}
		}
	}
	return nil
}

// blocks evaluates paragraph-level conditionals in c. The sibling blocks are
// turned into a template of markers and control tags; blocks whose marker
// does not survive rendering are removed, as are the control paragraphs.
func (r *renderer) blocks(c container) error {
	blocks := c.blocks()
	var src strings.Builder
	controls := 0
	for i, b := range blocks {
		if b.p != nil {
			if m := controlRe.FindStringSubmatch(strings.TrimSpace(paragraphText(b.p))); m != nil {
				src.WriteString("{% " + m[1] + "%}")
				controls++
				continue
			}
		}
		fmt.Fprintf(&src, "\x1e%d\x1e", i)
	}
	if controls == 0 {
		return nil
	}

	out, err := r.engine.RenderString(src.String(), r.data)
	if err != nil {
		return fmt.Errorf("docx: paragraph block: %w", err)
	}
	kept := make(map[int]bool)
	for _, m := range markerRe.FindAllStringSubmatch(out, -1) {
		i, _ := strconv.Atoi(m[1])
		kept[i] = true
	}
	for i, b := range blocks {
		if !kept[i] {
			c.remove(b)
		}
	}
	// a table cell must keep at least one paragraph
	if len(c.blocks()) == 0 && len(c) > 0 {
		c[0].P = append(c[0].P, wml.NewCT_P())
	}
	return nil
}

// segment is one text element of a run.
type segment struct {
	run *wml.CT_R
	ic  *wml.EG_RunInnerContent
}

func paragraphRuns(p *wml.CT_P) []*wml.CT_R {
	var out []*wml.CT_R
	for _, pc := range p.EG_PContent {
		for _, rc := range pc.EG_ContentRunContent {
			if rc.R != nil {
				out = append(out, rc.R)
			}
		}
	}
	return out
}

func segments(p *wml.CT_P) []segment {
	var out []segment
	for _, r := range paragraphRuns(p) {
		for _, ic := range r.EG_RunInnerContent {
			if ic.T != nil {
				out = append(out, segment{run: r, ic: ic})
			}
		}
	}
	return out
}

func paragraphText(p *wml.CT_P) string {
	var sb strings.Builder
	for _, r := range paragraphRuns(p) {
		for _, ic := range r.EG_RunInnerContent {
			if ic.T != nil {
				sb.WriteString(ic.T.Content)
			}
			if ic.Tab != nil {
				sb.WriteByte('\t')
			}
		}
	}
	return sb.String()
}

// renderParagraph renders the markup of one paragraph. Only text elements
// are rewritten; breaks, tabs and drawings keep their place in the run.
func renderParagraph(engine *Engine, p *wml.CT_P, data pongo2.Context) error {
	segs := segments(p)
	texts := make([]string, len(segs))
	var joined strings.Builder
	for i, s := range segs {
		texts[i] = s.ic.T.Content
		joined.WriteString(texts[i])
	}
	if !hasMarkup(joined.String()) {
		return nil
	}

	merged := mergeSplitTags(texts)

	var nonEmpty []int
	for i, s := range merged {
		if s != "" {
			nonEmpty = append(nonEmpty, i)
		}
	}

	// A statement spread over several text elements ({% if %}a{% endif %}
	// with the body in another run) only parses as a whole.
	if hasBlockTag(joined.String()) && len(nonEmpty) > 1 {
		out, err := engine.RenderString(joined.String(), data)
		if err != nil {
			return err
		}
		for n, i := range nonEmpty {
			if n == 0 {
				segs[i].setText(out)
				continue
			}
			segs[i].setText("")
		}
		clearEmptied(segs, texts, merged)
		return nil
	}

	for i, s := range merged {
		switch {
		case hasMarkup(s):
			out, err := engine.RenderString(s, data)
			if err != nil {
				return err
			}
			segs[i].setText(out)
		case s != texts[i] && s != "":
			segs[i].setText(s)
		}
	}
	clearEmptied(segs, texts, merged)
	return nil
}

// clearEmptied drops the text of elements whose content was moved into an
// earlier element by mergeSplitTags.
func clearEmptied(segs []segment, before, after []string) {
	for i := range segs {
		if after[i] == "" && before[i] != "" {
			segs[i].setText("")
		}
	}
}

// setText replaces the element's text with s. Newlines become line breaks
// placed right after the element in its run.
func (s segment) setText(text string) {
	lines := strings.Split(text, "\n")
	setContent(s.ic.T, lines[0])
	if len(lines) == 1 {
		return
	}

	extra := make([]*wml.EG_RunInnerContent, 0, 2*(len(lines)-1))
	for _, line := range lines[1:] {
		br := wml.NewEG_RunInnerContent()
		br.Br = wml.NewCT_Br()
		extra = append(extra, br)
		if line == "" {
			continue
		}
		t := wml.NewEG_RunInnerContent()
		t.T = wml.NewCT_Text()
		setContent(t.T, line)
		extra = append(extra, t)
	}
	i := slices.Index(s.run.EG_RunInnerContent, s.ic)
	s.run.EG_RunInnerContent = slices.Insert(s.run.EG_RunInnerContent, i+1, extra...)
}

func setContent(t *wml.CT_Text, s string) {
	t.Content = s
	t.SpaceAttr = nil
	if strings.TrimSpace(s) != s {
		preserve := "preserve"
		t.SpaceAttr = &preserve
	}
}
