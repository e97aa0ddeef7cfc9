package components

import (
	"bytes"
	"context"
	"slices"
	"strings"
	"testing"

	"golang.org/x/net/html"

	"github.com/zielvna/serwer/internal/config"
	"github.com/zielvna/serwer/internal/docs"
	"github.com/zielvna/serwer/internal/highlight"
	"github.com/zielvna/serwer/render"
	"github.com/zielvna/serwer/web"
)

func newTestSite(t *testing.T, cfg config.Config) (*Site, *docs.Set) {
	t.Helper()
	highlighter := highlight.New(cfg.ThemeConfig.Prism.Theme).WithDarkTheme(cfg.ThemeConfig.Prism.DarkTheme)
	set, err := docs.Load(context.Background(), web.Docs(), cfg, highlighter)
	if err != nil {
		t.Fatalf("error loading docs: %s", err)
	}
	return NewSite(cfg, web.Templates(), highlighter, set.Sidebar), set
}

func renderPage[PageType render.Page](t *testing.T, site *Site, page PageType) string {
	t.Helper()
	var out bytes.Buffer
	err := render.Render(context.Background(), &out, site, page)
	if err != nil {
		t.Fatalf("error rendering %T: %s", page, err)
	}
	return out.String()
}

func parse(t *testing.T, document string) *html.Node {
	t.Helper()
	node, err := html.Parse(strings.NewReader(document))
	if err != nil {
		t.Fatalf("error parsing document: %s", err)
	}
	return node
}

// findAll returns every element under node matching match, in document
// order.
func findAll(node *html.Node, match func(*html.Node) bool) []*html.Node {
	var results []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && match(n) {
			results = append(results, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(node)
	return results
}

func find(t *testing.T, node *html.Node, match func(*html.Node) bool) *html.Node {
	t.Helper()
	results := findAll(node, match)
	if len(results) < 1 {
		t.Fatal("no matching element found")
	}
	return results[0]
}

func attr(node *html.Node, key string) string {
	for _, a := range node.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func hasClass(class string) func(*html.Node) bool {
	return func(n *html.Node) bool {
		return slices.Contains(strings.Fields(attr(n, "class")), class)
	}
}

func isTag(tag string) func(*html.Node) bool {
	return func(n *html.Node) bool {
		return n.Data == tag
	}
}

func textOf(node *html.Node) string {
	var out strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			out.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(node)
	return strings.TrimSpace(out.String())
}

func firstElementChild(node *html.Node) *html.Node {
	for c := node.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			return c
		}
	}
	return nil
}

// contains reports whether ancestor contains node.
func contains(ancestor, node *html.Node) bool {
	for n := node; n != nil; n = n.Parent {
		if n == ancestor {
			return true
		}
	}
	return false
}

// precedes reports whether a comes before b in document order.
func precedes(root, a, b *html.Node) bool {
	all := findAll(root, func(*html.Node) bool { return true })
	return slices.Index(all, a) < slices.Index(all, b)
}
