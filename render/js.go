package render

import (
	"context"
	"fmt"
	"html/template"
	"strings"
)

// JSEmbedder is an interface that Components can fulfill to include some
// JavaScript that should be embedded directly into the rendered HTML. The
// contents will be made available to the template as part of .HeaderJS or
// .FooterJS.
type JSEmbedder interface {
	// EmbedJS returns the JavaScript templates, without <script> tags,
	// that should be embedded directly in the output HTML.
	EmbedJS(context.Context) []JSInline
}

// JSLinker is an interface that Components can fulfill to include some
// JavaScript that should be loaded separately from the HTML document, using a
// <script> tag with a src attribute.
type JSLinker interface {
	// LinkJS returns the JavaScript files that should be linked to from
	// the output HTML.
	LinkJS(context.Context) []JSLink
}

// JSInline is a JavaScript template that gets rendered and embedded in the
// page.
type JSInline struct {
	// TemplatePath is the path to the template, within the Site's
	// TemplateDir, that renders the script.
	TemplatePath string

	// PlaceInFooter puts the script in .FooterJS instead of .HeaderJS.
	PlaceInFooter bool

	// DisableImplicitOrdering removes the implicit dependency on the
	// previous resource of the same Component.
	DisableImplicitOrdering bool

	JSInlineRelationCalculator func(context.Context, JSInline) ResourceRelationship
	JSLinkRelationCalculator   func(context.Context, JSLink) ResourceRelationship
}

// JSLink is a script that gets loaded from a URL.
type JSLink struct {
	// Src is the URL of the script.
	Src string

	// PlaceInFooter puts the script in .FooterJS instead of .HeaderJS.
	PlaceInFooter bool

	// Defer and Module add the matching attributes to the <script>
	// element.
	Defer  bool
	Module bool

	DisableImplicitOrdering bool

	JSInlineRelationCalculator func(context.Context, JSInline) ResourceRelationship
	JSLinkRelationCalculator   func(context.Context, JSLink) ResourceRelationship
}

func (j JSInline) key() string { return "JSInline(" + j.TemplatePath + ")" }

func (JSInline) linked() bool { return false }

func (j JSInline) implicit() bool {
	return !j.DisableImplicitOrdering && j.JSInlineRelationCalculator == nil && j.JSLinkRelationCalculator == nil
}

func (j JSInline) relationTo(ctx context.Context, other resource) ResourceRelationship {
	return jsRelation(ctx, j.JSInlineRelationCalculator, j.JSLinkRelationCalculator, other)
}

func (JSInline) html(body string) string {
	return fmt.Sprintf("<script>\n%s\n</script>\n", body)
}

func (j JSLink) key() string { return "JSLink(" + j.Src + ")" }

func (JSLink) linked() bool { return true }

func (j JSLink) implicit() bool {
	return !j.DisableImplicitOrdering && j.JSInlineRelationCalculator == nil && j.JSLinkRelationCalculator == nil
}

func (j JSLink) relationTo(ctx context.Context, other resource) ResourceRelationship {
	return jsRelation(ctx, j.JSInlineRelationCalculator, j.JSLinkRelationCalculator, other)
}

func (j JSLink) html(_ string) string {
	var attrs strings.Builder
	if j.Module {
		attrs.WriteString(` type="module"`)
	}
	if j.Defer {
		attrs.WriteString(" defer")
	}
	return fmt.Sprintf("<script src=\"%s\"%s></script>\n", template.HTMLEscapeString(j.Src), attrs.String())
}

func jsRelation(ctx context.Context, inline func(context.Context, JSInline) ResourceRelationship, link func(context.Context, JSLink) ResourceRelationship, other resource) ResourceRelationship {
	switch res := other.(type) {
	case JSInline:
		if inline != nil {
			return inline(ctx, res)
		}
	case JSLink:
		if link != nil {
			return link(ctx, res)
		}
	}
	return ResourceRelationshipNeutral
}

// jsGroups returns each Component's JavaScript resources split into header
// and footer groups. Links and inline scripts of a Component are grouped
// separately.
func jsGroups(ctx context.Context, components []Component) (head, foot [][]resource) {
	for _, comp := range components {
		if linker, ok := comp.(JSLinker); ok {
			var headGroup, footGroup []resource
			for _, link := range linker.LinkJS(ctx) {
				if link.PlaceInFooter {
					footGroup = append(footGroup, link)
				} else {
					headGroup = append(headGroup, link)
				}
			}
			head = append(head, headGroup)
			foot = append(foot, footGroup)
		}
		if embedder, ok := comp.(JSEmbedder); ok {
			var headGroup, footGroup []resource
			for _, inline := range embedder.EmbedJS(ctx) {
				if inline.PlaceInFooter {
					footGroup = append(footGroup, inline)
				} else {
					headGroup = append(headGroup, inline)
				}
			}
			head = append(head, headGroup)
			foot = append(foot, footGroup)
		}
	}
	return head, foot
}
