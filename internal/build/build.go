// Package build renders the whole site into a directory of static files.
package build

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/zielvna/serwer/internal/components"
	"github.com/zielvna/serwer/internal/config"
	"github.com/zielvna/serwer/internal/docs"
	"github.com/zielvna/serwer/internal/highlight"
	"github.com/zielvna/serwer/internal/linkcheck"
	"github.com/zielvna/serwer/render"
	"github.com/zielvna/serwer/web"
)

const notFoundRoute = "/404.html"

// Options controls what a build produces.
type Options struct {
	// OutDir is the directory the site is written to. It is removed and
	// recreated by every build.
	OutDir string

	// Minify minifies HTML, CSS, JavaScript, and SVG output.
	Minify bool

	// Gzip writes a .gz copy next to every HTML, CSS, JavaScript, SVG,
	// and XML file.
	Gzip bool
}

// Builder builds the site from its configuration and content.
type Builder struct {
	Config    config.Config
	Templates fs.FS
	Docs      fs.FS
	Static    fs.FS
	Options
}

// New returns a Builder for the site's bundled templates and static assets,
// reading docs from wherever the configuration points.
func New(cfg config.Config, opts Options) *Builder {
	return &Builder{
		Config:    cfg,
		Templates: web.Templates(),
		Docs:      docsFS(cfg),
		Static:    web.Static(),
		Options:   opts,
	}
}

// docsFS returns the docs the configuration points at: the bundled ones for
// the default path, otherwise the directory on disk.
func docsFS(cfg config.Config) fs.FS {
	if cfg.BundledDocs() {
		return web.Docs()
	}
	return os.DirFS(cfg.DocsDir())
}

// Report describes a finished build.
type Report struct {
	// Routes lists the path of every rendered page, in render order.
	Routes []string

	// Assets is the number of static assets copied.
	Assets int

	// Files is the number of files written, including .gz copies.
	Files int

	// Warnings lists the broken links and broken markdown links the
	// configuration let through.
	Warnings []string
}

type page struct {
	route string
	body  []byte
}

// Build renders every page, checks their links, and writes the site to
// OutDir. Nothing is written unless every page renders and the link check
// passes.
func (b *Builder) Build(ctx context.Context) (Report, error) {
	return b.run(ctx, true)
}

// Check does everything Build does except writing the output.
func (b *Builder) Check(ctx context.Context) (Report, error) {
	return b.run(ctx, false)
}

func (b *Builder) run(ctx context.Context, write bool) (Report, error) {
	var report Report
	err := stage(ctx, "build", func(ctx context.Context) error {
		trace.SpanFromContext(ctx).SetAttributes(
			attribute.Bool("build.write", write),
			attribute.String("build.out_dir", b.OutDir),
		)
		err := b.Config.Validate()
		if err != nil {
			return err
		}

		highlighter := highlight.New(b.Config.ThemeConfig.Prism.Theme).WithDarkTheme(b.Config.ThemeConfig.Prism.DarkTheme)
		var set *docs.Set
		err = stage(ctx, "build.docs", func(ctx context.Context) error {
			set, err = docs.Load(ctx, b.Docs, b.Config, highlighter)
			return err
		})
		if err != nil {
			return err
		}
		report.Warnings = append(report.Warnings, set.Warnings...)

		site := components.NewSite(b.Config, b.Templates, highlighter, set.Sidebar)
		var pages []page
		err = stage(ctx, "build.render", func(ctx context.Context) error {
			pages, err = b.renderPages(ctx, site, set)
			return err
		})
		if err != nil {
			return err
		}
		for _, p := range pages {
			report.Routes = append(report.Routes, p.route)
		}

		assets, err := staticFiles(b.Static)
		if err != nil {
			return err
		}
		report.Assets = len(assets)
		err = stage(ctx, "build.linkcheck", func(ctx context.Context) error {
			warnings, err := b.checkLinks(ctx, pages, assets)
			report.Warnings = append(report.Warnings, warnings...)
			return err
		})
		if err != nil {
			return err
		}

		if !write {
			return nil
		}
		return stage(ctx, "build.write", func(ctx context.Context) error {
			report.Files, err = b.write(ctx, pages, assets)
			return err
		})
	})
	if err != nil {
		return report, err
	}
	render.Logger(ctx).InfoContext(ctx, "site built",
		"pages", len(report.Routes),
		"assets", report.Assets,
		"files", report.Files,
		"warnings", len(report.Warnings),
		"out", b.OutDir,
	)
	return report, nil
}

// stage runs fn inside a span called name, recording its error.
func stage(ctx context.Context, name string, fn func(context.Context) error) error {
	ctx, span := render.Tracer(ctx).Start(ctx, name)
	defer span.End()
	err := fn(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, name+" failed")
	}
	return err
}

type route struct {
	path   string
	render func(context.Context, io.Writer) error
}

func routes(ctx context.Context, site *components.Site, set *docs.Set) ([]route, error) {
	home, err := site.HomePage()
	if err != nil {
		return nil, err
	}
	results := []route{{
		path: "/",
		render: func(ctx context.Context, w io.Writer) error {
			return render.Render(ctx, w, site, home)
		},
	}}
	for _, doc := range set.Docs {
		docPage := site.DocPage(doc)
		results = append(results, route{
			path: doc.Route,
			render: func(ctx context.Context, w io.Writer) error {
				return render.Render(ctx, w, site, docPage)
			},
		})
	}
	var base render.Site = site
	if pager, ok := base.(render.NotFoundPager); ok {
		notFound := pager.NotFoundPage(ctx)
		results = append(results, route{
			path: notFoundRoute,
			render: func(ctx context.Context, w io.Writer) error {
				return render.Render(ctx, w, site, notFound)
			},
		})
	}
	return results, nil
}

func (b *Builder) renderPages(ctx context.Context, site *components.Site, set *docs.Set) ([]page, error) {
	all, err := routes(ctx, site, set)
	if err != nil {
		return nil, err
	}
	minifier := newMinifier()
	pages := make([]page, 0, len(all))
	for _, r := range all {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		var buf bytes.Buffer
		err := r.render(ctx, &buf)
		if err != nil {
			return nil, fmt.Errorf("error rendering %s: %w", r.path, err)
		}
		body := buf.Bytes()
		if b.Minify {
			body, err = minifier.Bytes(mediaHTML, body)
			if err != nil {
				return nil, fmt.Errorf("error minifying %s: %w", r.path, err)
			}
		}
		render.Logger(ctx).DebugContext(ctx, "rendered page", "route", r.path, "bytes", len(body))
		pages = append(pages, page{route: r.path, body: body})
	}
	return pages, nil
}

func (b *Builder) checkLinks(ctx context.Context, pages []page, assets []string) ([]string, error) {
	checker := linkcheck.New(b.Config.BaseURL)
	checker.Add(sitemapFile)
	for _, p := range pages {
		checker.Add(p.route)
	}
	checker.Add(assets...)
	var broken []linkcheck.BrokenLink
	for _, p := range pages {
		found, err := checker.Check(p.route, p.body)
		if err != nil {
			return nil, err
		}
		broken = append(broken, found...)
	}
	return linkcheck.Apply(ctx, b.Config.OnBrokenLinks, broken)
}

// staticFiles lists every file in fsys.
func staticFiles(fsys fs.FS) ([]string, error) {
	var files []string
	err := fs.WalkDir(fsys, ".", func(p string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !entry.IsDir() {
			files = append(files, p)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("error listing static assets: %w", err)
	}
	return files, nil
}

// outputFile returns the file, relative to the output directory, a route is
// written to.
func outputFile(route string) string {
	if path.Ext(route) == ".html" {
		return strings.TrimPrefix(route, "/")
	}
	return path.Join(strings.TrimPrefix(route, "/"), "index.html")
}

func (b *Builder) write(ctx context.Context, pages []page, assets []string) (int, error) {
	if b.OutDir == "" {
		return 0, errors.New("no output directory set")
	}
	err := Clean(b.OutDir)
	if err != nil {
		return 0, err
	}
	out := &writer{dir: b.OutDir, gzip: b.Gzip}
	for _, p := range pages {
		err := out.write(outputFile(p.route), p.body)
		if err != nil {
			return out.files, err
		}
	}

	minifier := newMinifier()
	for _, asset := range assets {
		if err := ctx.Err(); err != nil {
			return out.files, err
		}
		contents, err := fs.ReadFile(b.Static, asset)
		if err != nil {
			return out.files, fmt.Errorf("error reading %q: %w", asset, err)
		}
		if mediaType, ok := mediaTypes[path.Ext(asset)]; ok && b.Minify {
			contents, err = minifier.Bytes(mediaType, contents)
			if err != nil {
				return out.files, fmt.Errorf("error minifying %q: %w", asset, err)
			}
		}
		err = out.write(asset, contents)
		if err != nil {
			return out.files, err
		}
	}

	sitemap, err := b.sitemap(pages)
	if err != nil {
		return out.files, err
	}
	err = out.write(sitemapFile, sitemap)
	if err != nil {
		return out.files, err
	}
	return out.files, nil
}

// Clean removes dir and everything in it. A missing dir is not an error.
func Clean(dir string) error {
	if dir == "" || filepath.Clean(dir) == string(filepath.Separator) {
		return fmt.Errorf("refusing to clean %q", dir)
	}
	err := os.RemoveAll(dir)
	if err != nil {
		return fmt.Errorf("error cleaning %q: %w", dir, err)
	}
	return nil
}
