package template

import (
	"fmt"
	html "html/template"
	"io/fs"
	"os"
	"path"
	"slices"
)

// Parser is the interface for parsing HTML templates with the functions provided.
type Parser interface {
	AddFn(name string, fn any)
	Has(fp string) bool
	Parse(fps ...string) (*html.Template, error)
}

// Parse implements Parser over an fs.FS.
type Parse struct {
	fs  fs.FS
	fns html.FuncMap
}

// NewParser constructs a Parse with the provided functional options.
// Without WithFS, templates are read from the current working directory.
func NewParser(opts ...ParserOptFn) *Parse {
	p := &Parse{fns: make(html.FuncMap)}
	for _, opt := range opts {
		opt(p)
	}

	if p.fs == nil {
		p.fs = os.DirFS(".")
	}

	return p
}

// Has asserts whether fp names a regular file in the *Parse.fs.
func (p *Parse) Has(fp string) bool {
	if fp == "" {
		return false
	}

	info, err := fs.Stat(p.fs, fp)
	return err == nil && !info.IsDir()
}

// Parse parses files found in the *Parse.fs with those functions provided previously.
// The first file names the returned template.
func (p *Parse) Parse(fps ...string) (*html.Template, error) {
	fps = slices.DeleteFunc(slices.Clone(fps), func(fp string) bool { return fp == "" })
	if len(fps) == 0 {
		return nil, fmt.Errorf("%w", ErrNoFiles)
	}

	tmpl, err := html.New(path.Base(fps[0])).Funcs(p.fns).ParseFS(p.fs, fps...)
	if err != nil {
		return nil, fmt.Errorf("unable to parse %v: %w", fps, err)
	}

	return tmpl, nil
}
