package components

import (
	"context"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/net/html"

	"github.com/zielvna/serwer/internal/config"
	"github.com/zielvna/serwer/internal/docs"
)

func docBySource(t *testing.T, set *docs.Set, source string) *docs.Doc {
	t.Helper()
	for _, doc := range set.Docs {
		if doc.Source == source {
			return doc
		}
	}
	t.Fatalf("no doc loaded from %q", source)
	return nil
}

func TestDocPage(t *testing.T) {
	t.Parallel()

	site, set := newTestSite(t, config.Default())
	doc := docBySource(t, set, "guides/params.md")
	out := renderPage(t, site, site.DocPage(doc))
	parsed := parse(t, out)

	if got := textOf(find(t, parsed, isTag("title"))); got != "Dynamic params | Serwer" {
		t.Errorf("unexpected title %q", got)
	}
	article := find(t, parsed, hasClass("markdown"))
	if got := textOf(find(t, article, isTag("h1"))); got != "Dynamic params" {
		t.Errorf("expected the title heading to be added, got %q", got)
	}
	if links := findAll(article, func(n *html.Node) bool { return n.Data == "a" && attr(n, "href") == "/docs/guides/shared-data" }); len(links) != 1 {
		t.Errorf("expected the markdown link to be rewritten, got %d links", len(links))
	}
	if blocks := findAll(article, hasClass("code-block")); len(blocks) != 1 {
		t.Errorf("expected one highlighted code block, got %d", len(blocks))
	}

	active := findAll(parsed, hasClass("sidebar__link--active"))
	if len(active) != 1 || attr(active[0], "href") != doc.Permalink {
		t.Errorf("expected one active sidebar link to %s, got %d", doc.Permalink, len(active))
	}
	var labels []string
	for _, node := range findAll(parsed, hasClass("sidebar__label")) {
		labels = append(labels, textOf(node))
	}
	if diff := cmp.Diff([]string{"Introduction", "Guides"}, labels); diff != "" {
		t.Errorf("unexpected sidebar categories (-wanted, +got): %s", diff)
	}

	prev := find(t, parsed, hasClass("pagination-nav__link--prev"))
	next := find(t, parsed, hasClass("pagination-nav__link--next"))
	if attr(prev, "href") != "/docs/guides/routing" || attr(next, "href") != "/docs/guides/shared-data" {
		t.Errorf("unexpected pagination %q and %q", attr(prev, "href"), attr(next, "href"))
	}
	edit := find(t, parsed, hasClass("docs__edit"))
	if got := attr(edit, "href"); got != "https://github.com/zielvna/serwer/tree/main/docs/docs/guides/params.md" {
		t.Errorf("unexpected edit URL %q", got)
	}
	docsLink := find(t, find(t, parsed, hasClass("navbar")), hasClass("navbar__link--active"))
	if textOf(docsLink) != "Docs" {
		t.Errorf("expected the Docs navbar item to be active, got %q", textOf(docsLink))
	}
	if !strings.Contains(out, "code-block__copy") {
		t.Error("expected the copy button script in the page")
	}
}

func TestDocPageEnds(t *testing.T) {
	t.Parallel()

	site, set := newTestSite(t, config.Default())

	first := renderPage(t, site, site.DocPage(set.Docs[0]))
	if prev := findAll(parse(t, first), hasClass("pagination-nav__link--prev")); len(prev) != 0 {
		t.Error("expected no previous link on the first doc")
	}
	if heading := findAll(find(t, parse(t, first), hasClass("markdown")), isTag("h1")); len(heading) != 1 {
		t.Errorf("expected exactly one h1 when the doc has its own, got %d", len(heading))
	}

	if next := findAll(parse(t, first), hasClass("pagination-nav__link--next")); len(next) != 1 {
		t.Errorf("expected one next link on the first doc, got %d", len(next))
	}

	last := renderPage(t, site, site.DocPage(set.Docs[len(set.Docs)-1]))
	if prev := findAll(parse(t, last), hasClass("pagination-nav__link--prev")); len(prev) != 1 {
		t.Errorf("expected one previous link on the last doc, got %d", len(prev))
	}
	if next := findAll(parse(t, last), hasClass("pagination-nav__link--next")); len(next) != 0 {
		t.Error("expected no next link on the last doc")
	}
}

func TestNotFoundPage(t *testing.T) {
	t.Parallel()

	site, _ := newTestSite(t, config.Default())
	out := renderPage(t, site, site.NotFoundPage(context.Background()))
	parsed := parse(t, out)
	if got := textOf(find(t, parsed, isTag("h1"))); got != "Page Not Found" {
		t.Errorf("unexpected heading %q", got)
	}
	if got := textOf(find(t, parsed, isTag("title"))); got != "Page Not Found | Serwer" {
		t.Errorf("unexpected title %q", got)
	}
	if active := findAll(parsed, hasClass("navbar__link--active")); len(active) != 0 {
		t.Errorf("expected no active navbar items, got %d", len(active))
	}
}

func TestIcon(t *testing.T) {
	t.Parallel()

	for _, feature := range NewFeatures().Items {
		icon, err := Icon(feature.Icon)
		if err != nil {
			t.Errorf("unexpected error for %q: %s", feature.Icon, err)
		}
		if !strings.HasPrefix(string(icon), "<svg ") {
			t.Errorf("expected an svg for %q, got %s", feature.Icon, icon)
		}
	}
	if _, err := Icon("rocket"); err == nil {
		t.Error("expected an error for an unknown icon")
	}
}
