package render

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"maps"
	"slices"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var (
	// ErrNoTemplatePath is returned when a template path is needed, but
	// none are supplied.
	ErrNoTemplatePath = errors.New("need at least one template path")

	// ErrTemplatePatternMatchesNoFiles is returned when a template path is
	// a pattern, but that pattern doesn't match any files.
	ErrTemplatePatternMatchesNoFiles = errors.New("pattern matches no files")
)

// Component is an interface for a UI component that can be rendered to HTML.
type Component interface {
	// Templates returns a list of paths (or fs.Glob patterns) to
	// html/template contents that need to be parsed before the component
	// can be rendered.
	Templates(context.Context) []string
}

// ComponentUser is an interface that a Component can optionally implement to
// list the Components that it relies upon. These Components will automatically
// have the appropriate methods called if they implement any of the optional
// interfaces.
type ComponentUser interface {
	// UseComponents returns the Components that this Component relies on.
	UseComponents(context.Context) []Component
}

// FuncMapExtender is an interface that Components and Sites can fulfill to
// add to the map of functions available when rendering.
type FuncMapExtender interface {
	// FuncMap returns an html/template.FuncMap containing all the
	// functions that the Component is adding to the FuncMap.
	FuncMap(context.Context) template.FuncMap
}

// Page is an interface for a page that can be passed to Render. It defines a
// single logical page of the site, composed of one or more Components. It
// should contain all the information needed to render the Components to HTML.
type Page interface {
	Component

	// Key is a unique key to use when caching this page so it doesn't need
	// to be re-parsed. A good key is consistent, but unique per set of
	// templates.
	Key(context.Context) string

	// ExecutedTemplate is the template that needs to actually be executed
	// when rendering the page.
	//
	// This is usually not the template for the Component defining the
	// page; it's usually the layout template that the page fills blocks
	// in.
	ExecutedTemplate(context.Context) string
}

// RenderData is the data that is passed to a page when rendering it.
type RenderData[SiteType Site, PageType Page] struct {
	// Site is an instance of the Site type, containing all the
	// configuration and information about a Site.
	Site SiteType

	// Page is the information for a specific page.
	Page PageType

	// CSS holds the <style> and <link> elements for every CSS resource
	// the page and its Components declare, in dependency order.
	CSS template.HTML

	// HeaderJS holds the <script> elements that belong in the document
	// head, in dependency order.
	HeaderJS template.HTML

	// FooterJS holds the <script> elements that belong at the end of the
	// document body, in dependency order.
	FooterJS template.HTML
}

// Render renders the passed Page to the Writer. The page is rendered in full
// before anything is written, so a failing page leaves out untouched and the
// error is returned.
func Render[SiteType Site, PageType Page](ctx context.Context, out io.Writer, site SiteType, page PageType) error {
	ctx, span := Tracer(ctx).Start(ctx, "render.page", trace.WithAttributes(
		attribute.String("render.page.key", page.Key(ctx)),
		attribute.String("render.page.type", fmt.Sprintf("%T", page)),
	))
	defer span.End()

	var buf bytes.Buffer
	err := basicRender(ctx, &buf, site, page)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "render failed")
		Logger(ctx).ErrorContext(ctx, "error rendering page", "page", page.Key(ctx), "error", err)
		return err
	}
	_, err = buf.WriteTo(out)
	if err != nil {
		return fmt.Errorf("error writing rendered %T: %w", page, err)
	}
	return nil
}

func basicRender[SiteType Site, PageType Page](ctx context.Context, output io.Writer, site SiteType, page PageType) error {
	components := walkComponents(ctx, page)
	funcMap := componentFuncMap(ctx, site, components)
	tmpl, err := pageTemplate(ctx, site, page, components, funcMap)
	if err != nil {
		return err
	}

	data := RenderData[SiteType, PageType]{
		Site: site,
		Page: page,
	}
	resources, err := renderResources(ctx, site, funcMap, components, data)
	if err != nil {
		return fmt.Errorf("error rendering resources for %T: %w", page, err)
	}
	data.CSS = resources.css
	data.HeaderJS = resources.headJS
	data.FooterJS = resources.footJS

	executed := page.ExecutedTemplate(ctx)
	err = tmpl.ExecuteTemplate(output, executed, data)
	if err != nil {
		return fmt.Errorf("error executing template %q for %T: %w", executed, page, err)
	}
	return nil
}

// pageTemplate returns the parsed templates of every Component the page
// uses, from the Site's cache when it has one.
func pageTemplate(ctx context.Context, site Site, page Page, components []Component, funcMap template.FuncMap) (*template.Template, error) {
	key := page.Key(ctx)
	cache, cacheable := site.(TemplateCacher)
	if cacheable {
		if cached := cache.GetCachedTemplate(ctx, key); cached != nil {
			return cached, nil
		}
	}
	paths := templatePaths(ctx, components)
	if len(paths) < 1 {
		return nil, fmt.Errorf("error rendering %T: %w", page, ErrNoTemplatePath)
	}
	parsed, err := parseTemplates(site.TemplateDir(ctx), funcMap, paths...)
	if err != nil {
		return nil, fmt.Errorf("error parsing templates %v for page %T: %w", paths, page, err)
	}
	if cacheable {
		cache.SetCachedTemplate(ctx, key, parsed)
	}
	Logger(ctx).DebugContext(ctx, "parsed page templates", "page", key, "templates", paths)
	return parsed, nil
}

// walkComponents returns the component and everything it uses, depth-first,
// parents before children.
func walkComponents(ctx context.Context, component Component) []Component {
	results := []Component{component}
	if user, ok := component.(ComponentUser); ok {
		for _, child := range user.UseComponents(ctx) {
			results = append(results, walkComponents(ctx, child)...)
		}
	}
	return results
}

// templatePaths lists the template paths of components, first use wins.
func templatePaths(ctx context.Context, components []Component) []string {
	var results []string
	for _, comp := range components {
		for _, path := range comp.Templates(ctx) {
			if !slices.Contains(results, path) {
				results = append(results, path)
			}
		}
	}
	return results
}

// componentFuncMap merges the Site's FuncMap with those of components. Later
// Components override earlier ones, and all of them override the Site.
func componentFuncMap(ctx context.Context, site Site, components []Component) template.FuncMap {
	results := template.FuncMap{}
	if extender, ok := site.(FuncMapExtender); ok {
		maps.Copy(results, extender.FuncMap(ctx))
	}
	for _, comp := range components {
		if extender, ok := comp.(FuncMapExtender); ok {
			maps.Copy(results, extender.FuncMap(ctx))
		}
	}
	return results
}

func parseTemplates(fsys fs.FS, funcs template.FuncMap, patterns ...string) (*template.Template, error) {
	var files []string
	for _, pattern := range patterns {
		matches, err := fs.Glob(fsys, pattern)
		if err != nil {
			return nil, fmt.Errorf("error listing files for %q: %w", pattern, err)
		}
		if len(matches) < 1 {
			return nil, fmt.Errorf("error parsing %q: %w", pattern, ErrTemplatePatternMatchesNoFiles)
		}
		files = append(files, matches...)
	}
	tmpl := template.New("").Funcs(funcs)
	for _, file := range files {
		contents, err := fs.ReadFile(fsys, file)
		if err != nil {
			return nil, fmt.Errorf("error reading %q: %w", file, err)
		}
		_, err = tmpl.New(file).Parse(string(contents))
		if err != nil {
			return nil, fmt.Errorf("error parsing %q: %w", file, err)
		}
	}
	return tmpl, nil
}
