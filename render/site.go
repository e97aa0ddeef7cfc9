package render

import (
	"context"
	"html/template"
	"io/fs"
	"sync"
)

// Site is an interface for the singleton that will be used to render HTML.
// Consumers should use it to store the configuration shared by every page,
// and use it to render Pages.
//
// A Site needs to be able to surface the templates it relies on as an fs.FS.
type Site interface {
	// TemplateDir returns an fs.FS containing all the templates needed to
	// render every Page on the Site.
	//
	// The path to templates within the fs.FS should match the output of
	// Templates for Components.
	TemplateDir(ctx context.Context) fs.FS
}

// TemplateCacher is an optional interface for Sites. Those fulfilling it can
// cache their template parsing using the output of Key from each Page to save
// on the overhead of parsing the template each time. The templates being
// parsed for a given key should be the same every time, as should the template
// getting executed, but the data may still be different, so the output HTML
// cannot be safely presumed to be cacheable.
type TemplateCacher interface {
	// GetCachedTemplate returns the *template.Template specified by the
	// passed key. It should return nil if the template hasn't been cached
	// yet.
	GetCachedTemplate(ctx context.Context, key string) *template.Template

	// SetCachedTemplate stores the passed *template.Template under the
	// passed key, for later retrieval with GetCachedTemplate.
	SetCachedTemplate(ctx context.Context, key string, tmpl *template.Template)
}

// ResourceCacher is an optional interface for Sites. Those fulfilling it can
// cache the template sources their CSS and JavaScript resources use, keyed by
// template path, so that they're only read from the fs.FS once.
type ResourceCacher interface {
	// GetCachedResource returns the template source stored under the
	// passed key. It should return nil if nothing has been cached yet.
	GetCachedResource(ctx context.Context, key string) *string

	// SetCachedResource stores the passed template source under the passed
	// key, for later retrieval with GetCachedResource.
	SetCachedResource(ctx context.Context, key, resource string)
}

// NotFoundPager defines an interface that Sites can optionally implement.
// If a Site implements NotFoundPager, builds write the output of NotFoundPage
// as the site's 404 document.
type NotFoundPager interface {
	NotFoundPage(ctx context.Context) Page
}

var _ Site = &CachedSite{}
var _ TemplateCacher = &CachedSite{}
var _ ResourceCacher = &CachedSite{}

// CachedSite can be embedded in other Site implementations. It fulfills Site,
// TemplateCacher, and ResourceCacher, keeping parsed templates and resource
// sources in memory. Every method is safe for concurrent use.
type CachedSite struct {
	templates cache[*template.Template]
	resources cache[string]

	// templateDir is where Render looks for the templates Components
	// need.
	templateDir fs.FS
}

// NewCachedSite returns a CachedSite reading its templates from templates.
func NewCachedSite(templates fs.FS) *CachedSite {
	return &CachedSite{templateDir: templates}
}

// GetCachedTemplate returns the template cached under key, or nil.
func (s *CachedSite) GetCachedTemplate(_ context.Context, key string) *template.Template {
	tmpl, _ := s.templates.get(key)
	return tmpl
}

// SetCachedTemplate caches tmpl under key.
func (s *CachedSite) SetCachedTemplate(_ context.Context, key string, tmpl *template.Template) {
	s.templates.set(key, tmpl)
}

// GetCachedResource returns the resource source cached under key, or nil.
func (s *CachedSite) GetCachedResource(_ context.Context, key string) *string {
	res, ok := s.resources.get(key)
	if !ok {
		return nil
	}
	return &res
}

// SetCachedResource caches the resource source under key.
func (s *CachedSite) SetCachedResource(_ context.Context, key, resource string) {
	s.resources.set(key, resource)
}

// TemplateDir returns the fs.FS passed to NewCachedSite.
func (s *CachedSite) TemplateDir(_ context.Context) fs.FS {
	return s.templateDir
}

// cache is a string-keyed map guarded by a read-write mutex. Its zero value
// is ready to use.
type cache[V any] struct {
	mu      sync.RWMutex
	entries map[string]V
}

func (c *cache[V]) get(key string) (V, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.entries[key]
	return v, ok
}

func (c *cache[V]) set(key string, v V) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.entries == nil {
		c.entries = map[string]V{}
	}
	c.entries[key] = v
}
