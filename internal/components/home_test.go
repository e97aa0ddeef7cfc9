package components

import (
	"errors"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/net/html"

	"github.com/zielvna/serwer/internal/config"
)

func renderHome(t *testing.T, cfg config.Config) string {
	t.Helper()
	site, _ := newTestSite(t, cfg)
	page, err := site.HomePage()
	if err != nil {
		t.Fatalf("error building home page: %s", err)
	}
	return renderPage(t, site, page)
}

func TestHomeFeatures(t *testing.T) {
	t.Parallel()

	out := renderHome(t, config.Default())
	features := NewFeatures()
	if len(features.Items) != 4 {
		t.Fatalf("expected 4 features, got %d", len(features.Items))
	}
	for _, feature := range features.Items {
		if got := strings.Count(out, feature.Title); got != 1 {
			t.Errorf("expected title %q once, got %d", feature.Title, got)
		}
		if got := strings.Count(out, feature.Description); got != 1 {
			t.Errorf("expected description %q once, got %d", feature.Description, got)
		}
	}

	doc := parse(t, out)
	var titles []string
	for _, node := range findAll(doc, hasClass("feature")) {
		if icon := findAll(node, hasClass("feature__icon")); len(icon) != 1 || attr(icon[0], "width") != "64" {
			t.Errorf("expected one 64px icon per feature, got %v", icon)
		}
		titles = append(titles, textOf(find(t, node, isTag("h3"))))
	}
	want := []string{"Easy to use", "Dependency-free", "Blazingly fast", "No boilerplate"}
	if diff := cmp.Diff(want, titles); diff != "" {
		t.Errorf("unexpected features (-wanted, +got): %s", diff)
	}
}

func TestHomeSides(t *testing.T) {
	t.Parallel()

	doc := parse(t, renderHome(t, config.Default()))
	sides := findAll(doc, hasClass("side"))
	items := NewSides().Items
	if len(sides) != len(items) {
		t.Fatalf("expected %d sides, got %d", len(items), len(sides))
	}
	for pos, node := range sides {
		item := items[pos]
		first := firstElementChild(node)
		wantFirst := "side__text"
		if item.IsLeftToRight {
			wantFirst = "side__code"
		}
		if !hasClass(wantFirst)(first) {
			t.Errorf("%s: expected %s first, got %q", item.Title, wantFirst, attr(first, "class"))
		}
		if got := hasClass("side--reverse")(node); got != item.IsLeftToRight {
			t.Errorf("%s: expected side--reverse to be %v, got %v", item.Title, item.IsLeftToRight, got)
		}
		code := find(t, node, hasClass("chroma"))
		if got := textOf(code); got != item.Code {
			t.Errorf("%s: unexpected code (-wanted, +got): %s", item.Title, cmp.Diff(item.Code, got))
		}
		if got := textOf(find(t, node, isTag("h2"))); got != item.Title {
			t.Errorf("expected title %q, got %q", item.Title, got)
		}
	}
}

func TestHomeOrder(t *testing.T) {
	t.Parallel()

	doc := parse(t, renderHome(t, config.Default()))
	header := find(t, doc, isTag("header"))
	main := find(t, doc, isTag("main"))
	hero := find(t, doc, hasClass("hero"))
	features := find(t, doc, hasClass("features"))
	sides := findAll(doc, hasClass("side"))

	if !contains(header, hero) {
		t.Error("expected the hero inside <header>")
	}
	if !contains(main, features) {
		t.Error("expected the features inside <main>")
	}
	for _, side := range sides {
		if !contains(main, side) {
			t.Error("expected every side inside <main>")
		}
		if !precedes(doc, features, side) {
			t.Error("expected the features before every side")
		}
	}
	if !precedes(doc, header, main) {
		t.Error("expected <header> before <main>")
	}
}

func TestHeroCallToAction(t *testing.T) {
	t.Parallel()

	type testCase struct {
		links        []config.LinkGroup
		wantHref     string
		wantExternal bool
	}

	tests := map[string]testCase{
		"default": {
			links:    config.Default().ThemeConfig.Footer.Links,
			wantHref: "/docs/introduction/getting-started",
		},
		"internal": {
			links: []config.LinkGroup{
				{Title: "Docs", Items: []config.Link{{Label: "Routing", To: "/docs/guides/routing"}}},
			},
			wantHref: "/docs/guides/routing",
		},
		"external": {
			links: []config.LinkGroup{
				{Title: "More", Items: []config.Link{{Label: "GitHub", Href: "https://github.com/zielvna/serwer"}}},
			},
			wantHref:     "https://github.com/zielvna/serwer",
			wantExternal: true,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			cfg := config.Default()
			cfg.ThemeConfig.Footer.Links = test.links
			cta, err := cfg.CallToAction()
			if err != nil {
				t.Fatalf("unexpected error: %s", err)
			}

			doc := parse(t, renderHome(t, cfg))
			button := find(t, find(t, doc, hasClass("hero")), hasClass("button"))
			if got := attr(button, "href"); got != test.wantHref || got != cta.Target() {
				t.Errorf("expected href %q, the first footer link, got %q", test.wantHref, got)
			}
			if got := attr(button, "target") == "_blank"; got != test.wantExternal {
				t.Errorf("expected external to be %v, got %v", test.wantExternal, got)
			}
			if got := textOf(button); got != "Get started" {
				t.Errorf("expected button text %q, got %q", "Get started", got)
			}
		})
	}
}

func TestHeroWithoutCallToAction(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	cfg.ThemeConfig.Footer.Links = []config.LinkGroup{{Title: "Empty"}}
	_, err := NewHero(cfg)
	if !errors.Is(err, config.ErrNoCallToAction) {
		t.Errorf("expected %v, got %v", config.ErrNoCallToAction, err)
	}
	site, _ := newTestSite(t, cfg)
	_, err = site.HomePage()
	if !errors.Is(err, config.ErrNoCallToAction) {
		t.Errorf("expected %v from the home page, got %v", config.ErrNoCallToAction, err)
	}
}

func TestHomeTagline(t *testing.T) {
	t.Parallel()

	for _, tagline := range []string{"Simplest web framework for Rust", "Fast & friendly <servers>"} {
		cfg := config.Default()
		cfg.Tagline = tagline
		doc := parse(t, renderHome(t, cfg))

		subtitle := textOf(find(t, doc, hasClass("hero__subtitle")))
		description := attr(find(t, doc, func(n *html.Node) bool {
			return n.Data == "meta" && attr(n, "name") == "description"
		}), "content")
		if subtitle != tagline || description != tagline {
			t.Errorf("expected subtitle and description %q, got %q and %q", tagline, subtitle, description)
		}
	}
}

func TestLayout(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	out := renderHome(t, cfg)
	doc := parse(t, out)

	if got := attr(find(t, doc, isTag("html")), "lang"); got != "en" {
		t.Errorf("expected lang en, got %q", got)
	}
	if got := textOf(find(t, doc, isTag("title"))); got != "Serwer" {
		t.Errorf("expected title Serwer, got %q", got)
	}
	canonical := find(t, doc, func(n *html.Node) bool { return n.Data == "link" && attr(n, "rel") == "canonical" })
	if got := attr(canonical, "href"); got != "https://serwerframework.vercel.app/" {
		t.Errorf("unexpected canonical URL %q", got)
	}

	type link struct {
		Label, Href string
		External    bool
	}
	var navbar []link
	for _, node := range findAll(find(t, doc, hasClass("navbar")), hasClass("navbar__link")) {
		navbar = append(navbar, link{Label: textOf(node), Href: attr(node, "href"), External: attr(node, "target") == "_blank"})
	}
	wantNavbar := []link{
		{Label: "Docs", Href: "/docs/introduction/getting-started"},
		{Label: "GitHub", Href: "https://github.com/zielvna/serwer", External: true},
	}
	if diff := cmp.Diff(wantNavbar, navbar); diff != "" {
		t.Errorf("unexpected navbar (-wanted, +got): %s", diff)
	}

	var columns []string
	for _, node := range findAll(doc, hasClass("footer__title")) {
		columns = append(columns, textOf(node))
	}
	if diff := cmp.Diff([]string{"Docs", "Community", "More"}, columns); diff != "" {
		t.Errorf("unexpected footer columns (-wanted, +got): %s", diff)
	}
	copyright := textOf(find(t, doc, hasClass("footer__copyright")))
	if want := "© Copyright " + strconv.Itoa(time.Now().Year()) + ". Jakub Zielonka"; copyright != want {
		t.Errorf("expected copyright %q, got %q", want, copyright)
	}

	theme := strings.Index(out, "--serwer-navbar-height")
	hero := strings.Index(out, ".hero__title")
	custom := strings.Index(out, `href="/css/custom.css"`)
	if theme < 0 || hero < 0 || custom < 0 || theme > hero || hero > custom {
		t.Errorf("expected theme CSS, then component CSS, then custom CSS; got positions %d, %d, %d", theme, hero, custom)
	}
	head := find(t, doc, isTag("head"))
	if scripts := findAll(head, isTag("script")); len(scripts) != 1 || !strings.Contains(textOf(scripts[0]), `"dark"`) {
		t.Errorf("expected the color mode script in <head>, got %d scripts", len(scripts))
	}
}
