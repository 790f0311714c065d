package view

import (
	"bytes"
	"context"
	"fmt"
	html "html/template"
	"path"
	"slices"
	"sync"

	"github.com/xy-planning-network/trailhead/http/exchange"
	"github.com/xy-planning-network/trailhead/http/media"
	"github.com/xy-planning-network/trailhead/http/template"
	"golang.org/x/text/language"
)

var textHTML = media.MustParse("text/html; charset=utf-8")

// A TemplateResolver resolves view names into html/template backed Views.
type TemplateResolver struct {
	parser  template.Parser
	pool    *sync.Pool
	prefix  string
	suffix  string
	layouts []string
}

// A ResolverOptFn configures a *TemplateResolver when constructing it.
type ResolverOptFn func(*TemplateResolver)

// WithPrefix prepends prefix to view names, e.g., "tmpl/".
func WithPrefix(prefix string) ResolverOptFn {
	return func(tr *TemplateResolver) {
		tr.prefix = prefix
	}
}

// WithSuffix appends suffix to view names, e.g., ".tmpl".
func WithSuffix(suffix string) ResolverOptFn {
	return func(tr *TemplateResolver) {
		tr.suffix = suffix
	}
}

// WithLayouts parses fps ahead of each view's template.
// The first of fps is what gets executed, so it is expected to pull in the view's template,
// e.g., with {{ template "content" . }}.
func WithLayouts(fps ...string) ResolverOptFn {
	return func(tr *TemplateResolver) {
		tr.layouts = fps
	}
}

// NewTemplateResolver constructs a *TemplateResolver reading templates through p.
// Suffix defaults to ".tmpl".
func NewTemplateResolver(p template.Parser, opts ...ResolverOptFn) *TemplateResolver {
	tr := &TemplateResolver{
		parser: p,
		pool:   &sync.Pool{New: func() any { return new(bytes.Buffer) }},
		suffix: ".tmpl",
	}

	for _, opt := range opts {
		opt(tr)
	}

	return tr
}

// ResolveViewName parses the template most specific to locale for name.
// It returns nil and no error when no template exists for name.
func (tr *TemplateResolver) ResolveViewName(ctx context.Context, name string, locale language.Tag) (View, error) {
	if name == "" {
		return nil, nil
	}

	for _, candidate := range localized(name, locale) {
		fp := tr.prefix + candidate + tr.suffix
		if !tr.parser.Has(fp) {
			continue
		}

		fps := append(slices.Clone(tr.layouts), fp)
		tmpl, err := tr.parser.Parse(fps...)
		if err != nil {
			return nil, err
		}

		return &TemplateView{name: path.Base(fps[0]), tmpl: tmpl, pool: tr.pool}, nil
	}

	return nil, nil
}

// localized lists the names to try for name in locale, most specific first.
func localized(name string, locale language.Tag) []string {
	if locale == language.Und {
		return []string{name}
	}

	out := []string{fmt.Sprintf("%s_%s", name, locale)}
	if base, conf := locale.Base(); conf != language.No && base.String() != locale.String() {
		out = append(out, fmt.Sprintf("%s_%s", name, base))
	}

	return append(out, name)
}

// A TemplateView renders a Model by executing a parsed *html.Template.
type TemplateView struct {
	name string
	tmpl *html.Template
	pool *sync.Pool
}

// Render executes the template into a pooled buffer before writing any of it,
// so a failed execution leaves ex.Response untouched.
func (tv *TemplateView) Render(ctx context.Context, model Model, contentType media.MediaType, ex *exchange.Exchange) error {
	b := tv.pool.Get().(*bytes.Buffer)
	b.Reset()
	defer tv.pool.Put(b)

	if err := tv.tmpl.ExecuteTemplate(b, tv.name, model); err != nil {
		return fmt.Errorf("unable to execute %s: %w", tv.name, err)
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	if !contentType.IsConcrete() {
		contentType = textHTML
	}

	if ex.Response.Header().Get("Content-Type") == "" {
		ex.Response.Header().Set("Content-Type", contentType.String())
	}

	_, err := b.WriteTo(ex.Response)
	return err
}
