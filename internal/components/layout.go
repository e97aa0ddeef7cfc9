package components

import (
	"context"
	"strings"

	"github.com/zielvna/serwer/internal/config"
	"github.com/zielvna/serwer/render"
)

const (
	themeCSS        = "css/theme.css.tmpl"
	colorModeJS     = "js/color-mode.js.tmpl"
	colorToggleJS   = "js/color-toggle.js.tmpl"
	navbarLinkClass = "navbar__item navbar__link"
	footerLinkClass = "footer__link-item"
)

var (
	_ render.Component   = Layout{}
	_ render.CSSEmbedder = Layout{}
	_ render.CSSLinker   = Layout{}
	_ render.JSEmbedder  = Layout{}
)

// Layout is the chrome around every page: the document head, the navbar, and
// the footer. It executes the page's "content" template.
type Layout struct {
	Config config.Config

	// Title is the page title, shown before the site title. The home
	// page leaves it empty.
	Title string

	// Description is the page's meta description.
	Description string

	// Path is the page's path within the site, below the base URL.
	Path string

	// DocsHome is the permalink of the first doc, which docSidebar navbar
	// items link to.
	DocsHome string
}

// NavLink is a rendered navbar or footer link.
type NavLink struct {
	Label    string
	Href     string
	External bool
	Active   bool
	Class    string
}

// ClassName returns the link's classes, including the active modifier.
func (n NavLink) ClassName() string {
	if !n.Active {
		return n.Class
	}
	return n.Class + " navbar__link--active"
}

// NavGroup is a titled column of footer links.
type NavGroup struct {
	Title string
	Links []NavLink
}

// FullTitle is the contents of the <title> element.
func (l Layout) FullTitle() string {
	if l.Title == "" {
		return l.Config.Title
	}
	return l.Title + " | " + l.Config.Title
}

// NavItems returns the navbar links for one side of the navbar, "left" or
// "right". Items without a position are on the left.
func (l Layout) NavItems(position string) []NavLink {
	var links []NavLink
	for _, item := range l.Config.ThemeConfig.Navbar.Items {
		itemPosition := item.Position
		if itemPosition == "" {
			itemPosition = "left"
		}
		if itemPosition != position {
			continue
		}
		link := NavLink{Label: item.Label, Class: navbarLinkClass}
		switch {
		case item.Type == "docSidebar":
			link.Href = l.DocsHome
			link.Active = strings.HasPrefix(l.Path, l.Config.DocsRoute()+"/")
		case item.To != "":
			link.Href = l.Config.Resolve(item.To)
			link.Active = l.Path == item.To
		default:
			link.Href = item.Href
			link.External = true
		}
		links = append(links, link)
	}
	return links
}

// FooterGroups returns the footer's link columns.
func (l Layout) FooterGroups() []NavGroup {
	groups := make([]NavGroup, 0, len(l.Config.ThemeConfig.Footer.Links))
	for _, group := range l.Config.ThemeConfig.Footer.Links {
		rendered := NavGroup{Title: group.Title}
		for _, item := range group.Items {
			rendered.Links = append(rendered.Links, NavLink{
				Label:    item.Label,
				Href:     l.Config.Resolve(item.Target()),
				External: item.External(),
				Class:    footerLinkClass,
			})
		}
		groups = append(groups, rendered)
	}
	return groups
}

func (Layout) Templates(_ context.Context) []string {
	return []string{"layout.html.tmpl", "navbar.html.tmpl", "footer.html.tmpl"}
}

// EmbedCSS returns the theme stylesheet, which renders before every other
// stylesheet on the page.
func (Layout) EmbedCSS(_ context.Context) []render.CSSInline {
	return []render.CSSInline{
		{
			TemplatePath: themeCSS,
			CSSInlineRelationCalculator: func(_ context.Context, _ render.CSSInline) render.ResourceRelationship {
				return render.ResourceRelationshipBefore
			},
			CSSLinkRelationCalculator: func(_ context.Context, _ render.CSSLink) render.ResourceRelationship {
				return render.ResourceRelationshipBefore
			},
		},
	}
}

// LinkCSS returns the configured custom stylesheet, which renders after
// every embedded stylesheet so it can override them.
func (l Layout) LinkCSS(_ context.Context) []render.CSSLink {
	if l.Config.Theme.CustomCSS == "" {
		return nil
	}
	return []render.CSSLink{
		{
			Href: l.Config.Resolve(l.Config.Theme.CustomCSS),
			CSSInlineRelationCalculator: func(_ context.Context, _ render.CSSInline) render.ResourceRelationship {
				return render.ResourceRelationshipAfter
			},
		},
	}
}

func (l Layout) EmbedJS(_ context.Context) []render.JSInline {
	scripts := []render.JSInline{{TemplatePath: colorModeJS}}
	if !l.Config.ThemeConfig.ColorMode.DisableSwitch {
		scripts = append(scripts, render.JSInline{TemplatePath: colorToggleJS, PlaceInFooter: true})
	}
	return scripts
}
