// Package linkcheck finds links in rendered pages that point at pages or
// files the site doesn't have.
package linkcheck

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"path"
	"slices"
	"strings"

	"golang.org/x/net/html"

	"github.com/zielvna/serwer/internal/config"
	"github.com/zielvna/serwer/render"
)

// ErrBrokenLinks is returned when broken links were found and the
// configuration says they should fail the build.
var ErrBrokenLinks = errors.New("broken links found")

// BrokenLink is a link on Page to Href, which doesn't exist.
type BrokenLink struct {
	Page string
	Href string
}

func (b BrokenLink) String() string {
	return fmt.Sprintf("%s links to %s", b.Page, b.Href)
}

// Links returns the href of every <a> and <link> element in the HTML
// document read from r, in document order.
func Links(r io.Reader) ([]string, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("error parsing HTML: %w", err)
	}
	var results []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && (n.Data == "a" || n.Data == "link") {
			for _, attr := range n.Attr {
				if attr.Key == "href" {
					results = append(results, attr.Val)
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return results, nil
}

// Checker knows every path of the site and checks links against them. Its
// zero value is not usable; create one with New.
type Checker struct {
	baseURL string
	known   map[string]struct{}
}

// New returns a Checker for a site served under baseURL.
func New(baseURL string) *Checker {
	return &Checker{
		baseURL: baseURL,
		known:   map[string]struct{}{},
	}
}

// Add records paths, relative to the site root, as existing.
func (c *Checker) Add(paths ...string) {
	for _, p := range paths {
		c.known[normalize(p)] = struct{}{}
	}
}

func normalize(p string) string {
	p = path.Clean("/" + p)
	if path.Base(p) == "index.html" {
		p = path.Dir(p)
	}
	return p
}

// Check returns the links in document, rendered at the site path page, that
// point inside the site but not at a known path. External links and links
// to a fragment of the same page are skipped.
func (c *Checker) Check(page string, document []byte) ([]BrokenLink, error) {
	hrefs, err := Links(bytes.NewReader(document))
	if err != nil {
		return nil, fmt.Errorf("error checking %s: %w", page, err)
	}
	base := &url.URL{Path: c.baseURL + strings.TrimPrefix(page, "/")}
	var broken []BrokenLink
	for _, href := range hrefs {
		target, err := url.Parse(href)
		if err != nil {
			broken = append(broken, BrokenLink{Page: page, Href: href})
			continue
		}
		if target.Scheme != "" || target.Host != "" || target.Opaque != "" || target.Path == "" {
			continue
		}
		resolved := base.ResolveReference(target).Path
		if !c.exists(resolved) {
			broken = append(broken, BrokenLink{Page: page, Href: href})
		}
	}
	return broken, nil
}

func (c *Checker) exists(p string) bool {
	if !strings.HasPrefix(p, c.baseURL) {
		return false
	}
	_, ok := c.known[normalize(strings.TrimPrefix(p, c.baseURL))]
	return ok
}

// Apply handles broken links according to policy. It returns the links that
// were let through as warnings, or an error wrapping ErrBrokenLinks when the
// policy is to throw.
func Apply(ctx context.Context, policy config.LinkPolicy, broken []BrokenLink) ([]string, error) {
	if len(broken) < 1 {
		return nil, nil
	}
	messages := make([]string, 0, len(broken))
	for _, link := range broken {
		messages = append(messages, link.String())
	}
	slices.Sort(messages)
	switch policy {
	case config.LinkPolicyThrow:
		return nil, fmt.Errorf("%w: %s", ErrBrokenLinks, strings.Join(messages, "; "))
	case config.LinkPolicyWarn:
		for _, message := range messages {
			render.Logger(ctx).WarnContext(ctx, "broken link", "link", message)
		}
		return messages, nil
	}
	return nil, nil
}
