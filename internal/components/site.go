// Package components holds the UI components of the Serwer site and the Site
// they render against.
package components

import (
	"context"
	"html/template"
	"io/fs"

	"github.com/Masterminds/sprig/v3"

	"github.com/zielvna/serwer/internal/config"
	"github.com/zielvna/serwer/internal/docs"
	"github.com/zielvna/serwer/internal/highlight"
	"github.com/zielvna/serwer/render"
)

var (
	_ render.Site            = &Site{}
	_ render.FuncMapExtender = &Site{}
	_ render.NotFoundPager   = &Site{}
)

// Site carries everything shared by every page: the configuration, the
// highlighter, and the docs sidebar.
type Site struct {
	*render.CachedSite

	Config      config.Config
	Highlighter *highlight.Highlighter
	Sidebar     docs.Sidebar
}

// NewSite returns a Site rendering the templates in templates.
func NewSite(cfg config.Config, templates fs.FS, highlighter *highlight.Highlighter, sidebar docs.Sidebar) *Site {
	return &Site{
		CachedSite:  render.NewCachedSite(templates),
		Config:      cfg,
		Highlighter: highlighter,
		Sidebar:     sidebar,
	}
}

// FuncMap adds sprig's functions and the site's URL and highlighting helpers
// to every template.
func (s *Site) FuncMap(_ context.Context) template.FuncMap {
	funcs := sprig.HtmlFuncMap()
	funcs["url"] = s.Config.Resolve
	funcs["canonical"] = s.Config.Canonical
	funcs["highlight"] = s.Highlighter.Highlight
	funcs["highlightCSS"] = s.Highlighter.CSS
	return funcs
}

func (s *Site) layout(title, description, path string) Layout {
	layout := Layout{
		Config:      s.Config,
		Title:       title,
		Description: description,
		Path:        path,
	}
	if first := s.Sidebar.First(); first != nil {
		layout.DocsHome = first.Permalink
	}
	return layout
}

// HomePage returns the landing page.
func (s *Site) HomePage() (HomePage, error) {
	hero, err := NewHero(s.Config)
	if err != nil {
		return HomePage{}, err
	}
	return HomePage{
		Layout:   s.layout("", s.Config.Tagline, "/"),
		Hero:     hero,
		Features: NewFeatures(),
		Sides:    NewSides(),
	}, nil
}

// DocPage returns the page for doc.
func (s *Site) DocPage(doc *docs.Doc) DocPage {
	prev, next := s.Sidebar.Neighbours(doc)
	return DocPage{
		Layout:  s.layout(doc.Title, doc.Description, doc.Route),
		Doc:     doc,
		Sidebar: s.Sidebar,
		Prev:    prev,
		Next:    next,
		EditURL: doc.EditURL,
	}
}

// NotFoundPage returns the page served for missing paths.
func (s *Site) NotFoundPage(_ context.Context) render.Page {
	return NotFoundPage{
		Layout: s.layout("Page Not Found", s.Config.Tagline, "/404.html"),
	}
}
