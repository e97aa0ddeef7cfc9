package render

import (
	"context"
	"fmt"
	"html/template"
	"io/fs"
	"strings"
	texttemplate "text/template"
)

type renderedResources struct {
	css    template.HTML
	headJS template.HTML
	footJS template.HTML
}

// renderResources collects the CSS and JavaScript resources of components,
// orders them, and renders each one to HTML.
//
// Inline resources are executed with text/template: their output lands inside
// <style> or <script> elements where HTML escaping would corrupt selectors
// and operators.
func renderResources[SiteType Site, PageType Page](ctx context.Context, site SiteType, funcMap template.FuncMap, components []Component, data RenderData[SiteType, PageType]) (renderedResources, error) {
	var result renderedResources
	headGroups, footGroups := jsGroups(ctx, components)

	css, err := renderGroups(ctx, site, funcMap, cssGroups(ctx, components), data)
	if err != nil {
		return result, fmt.Errorf("error rendering CSS: %w", err)
	}
	head, err := renderGroups(ctx, site, funcMap, headGroups, data)
	if err != nil {
		return result, fmt.Errorf("error rendering header JavaScript: %w", err)
	}
	foot, err := renderGroups(ctx, site, funcMap, footGroups, data)
	if err != nil {
		return result, fmt.Errorf("error rendering footer JavaScript: %w", err)
	}
	result.css = template.HTML(css)     // #nosec G203
	result.headJS = template.HTML(head) // #nosec G203
	result.footJS = template.HTML(foot) // #nosec G203
	return result, nil
}

func renderGroups(ctx context.Context, site Site, funcMap template.FuncMap, groups [][]resource, data any) (string, error) {
	ordered, err := buildGraph(ctx, groups).walk(ctx)
	if err != nil {
		return "", err
	}
	var out strings.Builder
	for _, res := range ordered {
		var body string
		path := resourceTemplatePath(res)
		if path != "" {
			body, err = executeResource(ctx, site, funcMap, path, data)
			if err != nil {
				return "", err
			}
		}
		out.WriteString(res.html(body))
	}
	return out.String(), nil
}

func resourceTemplatePath(res resource) string {
	switch r := res.(type) {
	case CSSInline:
		return r.TemplatePath
	case JSInline:
		return r.TemplatePath
	}
	return ""
}

func executeResource(ctx context.Context, site Site, funcMap template.FuncMap, path string, data any) (string, error) {
	source, err := resourceSource(ctx, site, path)
	if err != nil {
		return "", err
	}
	tmpl, err := texttemplate.New(path).Funcs(texttemplate.FuncMap(funcMap)).Parse(source)
	if err != nil {
		return "", fmt.Errorf("error parsing %q: %w", path, err)
	}
	var out strings.Builder
	err = tmpl.Execute(&out, data)
	if err != nil {
		return "", fmt.Errorf("error executing %q: %w", path, err)
	}
	return strings.TrimSpace(out.String()), nil
}

func resourceSource(ctx context.Context, site Site, path string) (string, error) {
	cache, cacheable := Site(site).(ResourceCacher)
	if cacheable {
		if cached := cache.GetCachedResource(ctx, path); cached != nil {
			return *cached, nil
		}
	}
	contents, err := fs.ReadFile(site.TemplateDir(ctx), path)
	if err != nil {
		return "", fmt.Errorf("error reading %q: %w", path, err)
	}
	if cacheable {
		cache.SetCachedResource(ctx, path, string(contents))
	}
	return string(contents), nil
}
