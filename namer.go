package docmerge

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/aerissecure/docmerge/xlsx"
)

// Namer picks the destination path of each rendered document.
//
// A row with a non-empty value in the output column is named after that
// value, probing "_1", "_2", ... until the path is free. Every other row gets
// "{base}_{n}" from a counter that starts at 1 and is never checked against
// the disk.
type Namer struct {
	dir    string
	column string
	base   string
	ext    string
	next   int
	exists func(path string) bool
}

// NewNamer returns a Namer writing into dir. column may be empty.
func NewNamer(dir, column, base, ext string) *Namer {
	return &Namer{
		dir:    dir,
		column: column,
		base:   base,
		ext:    ext,
		next:   1,
		exists: pathExists,
	}
}

// Next returns the path for row. The default-name branch consumes a counter
// value whether or not the document is later saved.
func (n *Namer) Next(row xlsx.Row) string {
	if n.column != "" {
		if name, ok := row.Get(n.column); ok && name != "" {
			path := n.path(name)
			for i := 1; n.exists(path); i++ {
				path = n.path(fmt.Sprintf("%s_%d", name, i))
			}
			return path
		}
	}

	path := n.path(fmt.Sprintf("%s_%d", n.base, n.next))
	n.next++
	return path
}

func (n *Namer) path(name string) string {
	return filepath.Join(n.dir, name+"."+n.ext)
}

func pathExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
