package components

import (
	"context"

	"github.com/zielvna/serwer/internal/docs"
	"github.com/zielvna/serwer/render"
)

const layoutTemplate = "layout"

var (
	_ render.Page = HomePage{}
	_ render.Page = DocPage{}
	_ render.Page = NotFoundPage{}
)

// HomePage is the landing page: the Hero in the header, then the Features
// and the Sides.
type HomePage struct {
	Layout   Layout
	Hero     Hero
	Features Features
	Sides    Sides
}

func (HomePage) Key(_ context.Context) string {
	return "home"
}

func (HomePage) ExecutedTemplate(_ context.Context) string {
	return layoutTemplate
}

func (HomePage) Templates(_ context.Context) []string {
	return []string{"home.html.tmpl"}
}

func (h HomePage) UseComponents(_ context.Context) []render.Component {
	return []render.Component{h.Layout, h.Hero, h.Features, h.Sides}
}

// DocPage renders a single doc with the sidebar and links to the previous
// and next docs.
type DocPage struct {
	Layout  Layout
	Doc     *docs.Doc
	Sidebar docs.Sidebar
	Prev    *docs.Doc
	Next    *docs.Doc
	EditURL string
}

func (DocPage) Key(_ context.Context) string {
	return "doc"
}

func (DocPage) ExecutedTemplate(_ context.Context) string {
	return layoutTemplate
}

func (DocPage) Templates(_ context.Context) []string {
	return []string{"doc.html.tmpl"}
}

func (d DocPage) UseComponents(_ context.Context) []render.Component {
	return []render.Component{d.Layout, CodeBlock{}}
}

func (DocPage) EmbedCSS(_ context.Context) []render.CSSInline {
	return []render.CSSInline{{TemplatePath: "css/doc.css.tmpl"}}
}

// NotFoundPage is written as the site's 404 document.
type NotFoundPage struct {
	Layout Layout
}

func (NotFoundPage) Key(_ context.Context) string {
	return "not-found"
}

func (NotFoundPage) ExecutedTemplate(_ context.Context) string {
	return layoutTemplate
}

func (NotFoundPage) Templates(_ context.Context) []string {
	return []string{"notfound.html.tmpl"}
}

func (n NotFoundPage) UseComponents(_ context.Context) []render.Component {
	return []render.Component{n.Layout}
}
