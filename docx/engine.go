package docx

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/flosch/pongo2/v6"
)

// pongo2 rejects context keys that are not plain identifiers.
var identifierRe = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)

// Engine renders the placeholder markup found in document text. It wraps a
// pongo2 template set so {% include %} resolves against the template folder.
type Engine struct {
	set *pongo2.TemplateSet
}

// NewEngine returns an Engine whose includes are loaded from baseDir.
func NewEngine(baseDir string) (*Engine, error) {
	loader, err := pongo2.NewLocalFileSystemLoader(strings.TrimSpace(baseDir))
	if err != nil {
		return nil, fmt.Errorf("docx: create template loader: %w", err)
	}
	registerDefaultFilters()
	return &Engine{set: pongo2.NewSet("docmerge", loader)}, nil
}

// RenderString renders src against data. Output is not HTML escaped; the
// document writer escapes text when the XML is serialised.
func (e *Engine) RenderString(src string, data pongo2.Context) (string, error) {
	if e == nil || e.set == nil {
		return "", errors.New("docx: engine is nil")
	}
	tmpl, err := e.set.FromString("{% autoescape off %}" + src + "{% endautoescape %}")
	if err != nil {
		return "", fmt.Errorf("docx: parse %q: %w", src, err)
	}
	out, err := tmpl.Execute(data)
	if err != nil {
		return "", fmt.Errorf("docx: execute %q: %w", src, err)
	}
	return out, nil
}

// Context converts a row into template variables. Columns whose names are
// not valid identifiers cannot be referenced from a tag and are skipped.
func Context(row map[string]string) pongo2.Context {
	ctx := make(pongo2.Context, len(row))
	for k, v := range row {
		if !identifierRe.MatchString(k) {
			continue
		}
		ctx[k] = v
	}
	return ctx
}

func registerDefaultFilters() {
	if !pongo2.FilterExists("trim") {
		_ = pongo2.RegisterFilter("trim", filterTrim)
	}
}

func filterTrim(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	if in.Len() <= 0 {
		return pongo2.AsValue(""), nil
	}
	return pongo2.AsValue(strings.TrimSpace(in.String())), nil
}
