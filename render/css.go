package render

import (
	"context"
	"fmt"
	"html/template"
)

// CSSEmbedder is an interface that Components can fulfill to include some CSS
// that should be embedded directly into the rendered HTML, inside a <style>
// element. The contents will be made available to the template as part of
// .CSS.
type CSSEmbedder interface {
	// EmbedCSS returns the CSS templates, without <style> tags, that
	// should be embedded directly in the output HTML.
	EmbedCSS(context.Context) []CSSInline
}

// CSSLinker is an interface that Components can fulfill to include some CSS
// that should be loaded through a <link> element in the template. The
// elements will be made available to the template as part of .CSS.
type CSSLinker interface {
	// LinkCSS returns the CSS files that should be linked to from the
	// output HTML.
	LinkCSS(context.Context) []CSSLink
}

// CSSInline is a CSS template that gets rendered and embedded in the page.
//
// Within a single Component's EmbedCSS output, resources keep the order they
// were returned in, unless they set a relation calculator or
// DisableImplicitOrdering.
type CSSInline struct {
	// TemplatePath is the path to the template, within the Site's
	// TemplateDir, that renders the CSS. It is executed with the same
	// RenderData as the page, minus the rendered resources.
	TemplatePath string

	// DisableImplicitOrdering removes the implicit dependency on the
	// previous resource of the same Component.
	DisableImplicitOrdering bool

	// CSSInlineRelationCalculator, when set, is called with every other
	// inline CSS resource on the page to decide which must come first.
	CSSInlineRelationCalculator func(context.Context, CSSInline) ResourceRelationship

	// CSSLinkRelationCalculator, when set, is called with every linked
	// CSS resource on the page to decide which must come first.
	CSSLinkRelationCalculator func(context.Context, CSSLink) ResourceRelationship
}

// CSSLink is a stylesheet that gets loaded through a <link> element.
type CSSLink struct {
	// Href is the URL of the stylesheet.
	Href string

	// DisableImplicitOrdering removes the implicit dependency on the
	// previous resource of the same Component.
	DisableImplicitOrdering bool

	CSSInlineRelationCalculator func(context.Context, CSSInline) ResourceRelationship
	CSSLinkRelationCalculator   func(context.Context, CSSLink) ResourceRelationship
}

func (c CSSInline) key() string { return "CSSInline(" + c.TemplatePath + ")" }

func (CSSInline) linked() bool { return false }

func (c CSSInline) implicit() bool {
	return !c.DisableImplicitOrdering && c.CSSInlineRelationCalculator == nil && c.CSSLinkRelationCalculator == nil
}

func (c CSSInline) relationTo(ctx context.Context, other resource) ResourceRelationship {
	return cssRelation(ctx, c.CSSInlineRelationCalculator, c.CSSLinkRelationCalculator, other)
}

func (c CSSInline) html(body string) string {
	return fmt.Sprintf("<style>\n%s\n</style>\n", body)
}

func (c CSSLink) key() string { return "CSSLink(" + c.Href + ")" }

func (CSSLink) linked() bool { return true }

func (c CSSLink) implicit() bool {
	return !c.DisableImplicitOrdering && c.CSSInlineRelationCalculator == nil && c.CSSLinkRelationCalculator == nil
}

func (c CSSLink) relationTo(ctx context.Context, other resource) ResourceRelationship {
	return cssRelation(ctx, c.CSSInlineRelationCalculator, c.CSSLinkRelationCalculator, other)
}

func (c CSSLink) html(_ string) string {
	return fmt.Sprintf("<link rel=\"stylesheet\" href=\"%s\">\n", template.HTMLEscapeString(c.Href))
}

func cssRelation(ctx context.Context, inline func(context.Context, CSSInline) ResourceRelationship, link func(context.Context, CSSLink) ResourceRelationship, other resource) ResourceRelationship {
	switch res := other.(type) {
	case CSSInline:
		if inline != nil {
			return inline(ctx, res)
		}
	case CSSLink:
		if link != nil {
			return link(ctx, res)
		}
	}
	return ResourceRelationshipNeutral
}

// cssGroups returns each Component's CSS resources, links and inline blocks as
// separate groups, in Component order.
func cssGroups(ctx context.Context, components []Component) [][]resource {
	var groups [][]resource
	for _, comp := range components {
		if linker, ok := comp.(CSSLinker); ok {
			var group []resource
			for _, link := range linker.LinkCSS(ctx) {
				group = append(group, link)
			}
			groups = append(groups, group)
		}
		if embedder, ok := comp.(CSSEmbedder); ok {
			var group []resource
			for _, inline := range embedder.EmbedCSS(ctx) {
				group = append(group, inline)
			}
			groups = append(groups, group)
		}
	}
	return groups
}
