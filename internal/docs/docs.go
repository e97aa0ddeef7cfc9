// Package docs loads the markdown documentation pages: front matter,
// permalinks, link rewriting, highlighted code blocks, and the autogenerated
// sidebar.
package docs

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"path"
	"path/filepath"
	"strings"

	"github.com/adrg/frontmatter"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/zielvna/serwer/internal/config"
	"github.com/zielvna/serwer/internal/highlight"
	"github.com/zielvna/serwer/render"
)

// ErrBrokenMarkdownLink is returned when a document links to a markdown file
// that isn't one of the loaded documents and the configuration says broken
// markdown links should fail the build.
var ErrBrokenMarkdownLink = errors.New("broken markdown link")

// Doc is a single documentation page.
type Doc struct {
	// ID identifies the doc within its directory. It defaults to the file
	// name without its extension.
	ID string

	Title        string
	SidebarLabel string

	// SidebarPosition orders the doc within its category. Docs without
	// one sort after those with one.
	SidebarPosition *float64

	// Category is the top-level directory the doc lives in, or empty for
	// docs at the root.
	Category string

	Description string

	// Source is the path of the markdown file within the docs fs.FS.
	Source string

	// Route is the path of the doc within the site, below the base URL.
	Route string

	// Permalink is the URL path the doc is published at.
	Permalink string

	// EditURL links to the source of the doc, when the configuration has
	// an edit URL.
	EditURL string

	// HasTitleHeading is true when the markdown starts with a level one
	// heading, so the page doesn't need to render the title itself.
	HasTitleHeading bool

	HTML template.HTML
}

// Label is the text the doc is linked with in the sidebar.
func (d *Doc) Label() string {
	if d.SidebarLabel != "" {
		return d.SidebarLabel
	}
	return d.Title
}

type frontMatter struct {
	ID              string   `yaml:"id"`
	Title           string   `yaml:"title"`
	SidebarLabel    string   `yaml:"sidebar_label"`
	SidebarPosition *float64 `yaml:"sidebar_position"`
	Description     string   `yaml:"description"`
}

// Set is every loaded doc, in sidebar order.
type Set struct {
	Docs    []*Doc
	Sidebar Sidebar

	// Warnings lists the broken markdown links that were let through.
	Warnings []string
}

// Load reads every markdown file in fsys and renders it, rewriting links
// between markdown files to permalinks.
func Load(ctx context.Context, fsys fs.FS, cfg config.Config, highlighter *highlight.Highlighter) (*Set, error) {
	sources := map[string][]byte{}
	var docs []*Doc
	err := fs.WalkDir(fsys, ".", func(p string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() || path.Ext(p) != ".md" {
			return nil
		}
		doc, body, err := readDoc(fsys, p, cfg)
		if err != nil {
			return err
		}
		sources[p] = body
		docs = append(docs, doc)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("error reading docs: %w", err)
	}

	index := make(map[string]*Doc, len(docs))
	for _, doc := range docs {
		index[doc.Source] = doc
	}
	links := &linkRewriter{docs: index}
	md := newMarkdown(links, highlighter)

	var broken []string
	for _, doc := range docs {
		source := sources[doc.Source]
		pc := parser.NewContext()
		pc.Set(docSourceKey, doc.Source)
		root := md.Parser().Parse(text.NewReader(source), parser.WithContext(pc))
		if missing, ok := pc.Get(brokenLinksKey).([]string); ok {
			broken = append(broken, missing...)
		}
		applyContentMetadata(doc, root, source)

		var out bytes.Buffer
		err := md.Renderer().Render(&out, source, root)
		if err != nil {
			return nil, fmt.Errorf("error rendering %q: %w", doc.Source, err)
		}
		doc.HTML = template.HTML(out.String()) // #nosec G203
	}

	set := &Set{}
	switch cfg.OnBrokenMarkdownLinks {
	case config.LinkPolicyThrow:
		if len(broken) > 0 {
			return nil, fmt.Errorf("%w: %s", ErrBrokenMarkdownLink, strings.Join(broken, "; "))
		}
	case config.LinkPolicyWarn:
		for _, link := range broken {
			render.Logger(ctx).WarnContext(ctx, "broken markdown link", "link", link)
		}
		set.Warnings = broken
	case config.LinkPolicyIgnore:
	}

	categories, err := readCategories(fsys)
	if err != nil {
		return nil, err
	}
	set.Sidebar = newSidebar(cfg.Docs.SidebarID, docs, categories)
	set.Docs = set.Sidebar.Docs()
	render.Logger(ctx).DebugContext(ctx, "loaded docs", "count", len(set.Docs))
	return set, nil
}

func readDoc(fsys fs.FS, p string, cfg config.Config) (*Doc, []byte, error) {
	f, err := fsys.Open(p)
	if err != nil {
		return nil, nil, fmt.Errorf("error opening %q: %w", p, err)
	}
	defer f.Close()

	var matter frontMatter
	body, err := frontmatter.Parse(f, &matter)
	if err != nil {
		return nil, nil, fmt.Errorf("error parsing front matter of %q: %w", p, err)
	}

	dir := path.Dir(p)
	if dir == "." {
		dir = ""
	}
	id := matter.ID
	if id == "" {
		id = strings.TrimSuffix(path.Base(p), ".md")
	}
	category, _, _ := strings.Cut(dir, "/")
	route := path.Join(cfg.DocsRoute(), dir, id)
	doc := &Doc{
		ID:              id,
		Title:           matter.Title,
		SidebarLabel:    matter.SidebarLabel,
		SidebarPosition: matter.SidebarPosition,
		Category:        category,
		Description:     matter.Description,
		Source:          p,
		Route:           route,
		Permalink:       cfg.Resolve(route),
	}
	if cfg.Docs.EditURL != "" {
		content := strings.TrimPrefix(path.Clean(filepath.ToSlash(cfg.Docs.Path)), "/")
		doc.EditURL = strings.TrimSuffix(cfg.Docs.EditURL, "/") + "/" + path.Join(content, p)
	}
	return doc, body, nil
}

// applyContentMetadata fills in the title and description the front matter
// left out, from the first heading and paragraph of the document.
func applyContentMetadata(doc *Doc, root ast.Node, source []byte) {
	if first := root.FirstChild(); first != nil {
		if heading, ok := first.(*ast.Heading); ok && heading.Level == 1 {
			doc.HasTitleHeading = true
			if doc.Title == "" {
				doc.Title = nodeText(heading, source)
			}
		}
	}
	if doc.Title == "" {
		doc.Title = titleCase(doc.ID)
	}
	if doc.Description != "" {
		return
	}
	for node := root.FirstChild(); node != nil; node = node.NextSibling() {
		if node.Kind() == ast.KindParagraph {
			doc.Description = nodeText(node, source)
			return
		}
	}
}

func nodeText(node ast.Node, source []byte) string {
	var out strings.Builder
	_ = ast.Walk(node, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch t := n.(type) {
		case *ast.Text:
			out.Write(t.Segment.Value(source))
			if t.SoftLineBreak() || t.HardLineBreak() {
				out.WriteByte(' ')
			}
		case *ast.String:
			out.Write(t.Value)
		}
		return ast.WalkContinue, nil
	})
	return strings.TrimSpace(out.String())
}

// titleCase turns a file or directory name like getting-started into
// Getting Started.
func titleCase(name string) string {
	name = strings.NewReplacer("-", " ", "_", " ").Replace(name)
	return cases.Title(language.English).String(name)
}
