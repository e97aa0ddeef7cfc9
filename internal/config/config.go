// Package config holds the site configuration: the single record driving the
// navbar, the footer, theming, and page metadata. It is read once at startup
// and never modified afterwards.
package config

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

var (
	// ErrInvalid is returned, wrapped, for every validation failure.
	ErrInvalid = errors.New("invalid site configuration")

	// ErrNoCallToAction is returned when the footer has no first link
	// for the hero's call to action to point at.
	ErrNoCallToAction = errors.New("footer has no first link to use as the call to action")
)

//go:embed default.yml
var defaultYAML []byte

// LinkPolicy decides what happens when a broken link is found.
type LinkPolicy string

const (
	LinkPolicyThrow  LinkPolicy = "throw"
	LinkPolicyWarn   LinkPolicy = "warn"
	LinkPolicyIgnore LinkPolicy = "ignore"
)

func (p LinkPolicy) valid() bool {
	return p == LinkPolicyThrow || p == LinkPolicyWarn || p == LinkPolicyIgnore
}

// Config is the site configuration.
type Config struct {
	Title                 string      `yaml:"title"`
	Tagline               string      `yaml:"tagline"`
	URL                   string      `yaml:"url"`
	BaseURL               string      `yaml:"baseUrl"`
	Favicon               string      `yaml:"favicon"`
	OrganizationName      string      `yaml:"organizationName"`
	ProjectName           string      `yaml:"projectName"`
	OnBrokenLinks         LinkPolicy  `yaml:"onBrokenLinks"`
	OnBrokenMarkdownLinks LinkPolicy  `yaml:"onBrokenMarkdownLinks"`
	I18n                  I18n        `yaml:"i18n"`
	Docs                  Docs        `yaml:"docs"`
	Theme                 Theme       `yaml:"theme"`
	ThemeConfig           ThemeConfig `yaml:"themeConfig"`

	// Root is the directory relative paths in the configuration resolve
	// against. Load sets it to the directory of the file it read.
	Root string `yaml:"-"`
}

// bundledDocsPath is the default docs.path. It names the docs shipped with
// the site rather than a directory on disk.
const bundledDocsPath = "docs"

type I18n struct {
	DefaultLocale string   `yaml:"defaultLocale"`
	Locales       []string `yaml:"locales"`
}

// Docs configures the documentation pages.
type Docs struct {
	// Path is the directory holding the markdown documents, relative to
	// the configuration file. The default names the bundled docs.
	Path string `yaml:"path"`

	// RouteBasePath is the URL prefix of every doc, below BaseURL.
	RouteBasePath string `yaml:"routeBasePath"`

	// SidebarID names the autogenerated sidebar.
	SidebarID string `yaml:"sidebarId"`

	// EditURL, when set, adds an "Edit this page" link pointing at
	// EditURL joined with Path and the doc's source path.
	EditURL string `yaml:"editUrl"`
}

type Theme struct {
	// CustomCSS is the path, within the static assets, of a stylesheet
	// loaded after the theme's own.
	CustomCSS string `yaml:"customCss"`
}

type ThemeConfig struct {
	ColorMode ColorMode `yaml:"colorMode"`
	Navbar    Navbar    `yaml:"navbar"`
	Footer    Footer    `yaml:"footer"`
	Prism     Prism     `yaml:"prism"`
}

type ColorMode struct {
	DefaultMode               string `yaml:"defaultMode"`
	DisableSwitch             bool   `yaml:"disableSwitch"`
	RespectPrefersColorScheme bool   `yaml:"respectPrefersColorScheme"`
}

type Navbar struct {
	Title string       `yaml:"title"`
	Items []NavbarItem `yaml:"items"`
}

// NavbarItem is a link in the navbar. Items of type docSidebar link to the
// first doc of the sidebar named by SidebarID; other items link to To
// (inside the site) or Href (outside it).
type NavbarItem struct {
	Type      string `yaml:"type"`
	SidebarID string `yaml:"sidebarId"`
	Position  string `yaml:"position"`
	Label     string `yaml:"label"`
	To        string `yaml:"to"`
	Href      string `yaml:"href"`
}

type Footer struct {
	Style     string      `yaml:"style"`
	Links     []LinkGroup `yaml:"links"`
	Copyright string      `yaml:"copyright"`
}

type LinkGroup struct {
	Title string `yaml:"title"`
	Items []Link `yaml:"items"`
}

// Link points inside the site (To) or outside it (Href).
type Link struct {
	Label string `yaml:"label"`
	To    string `yaml:"to"`
	Href  string `yaml:"href"`
}

// Target returns To, or Href when To is empty.
func (l Link) Target() string {
	if l.To != "" {
		return l.To
	}
	return l.Href
}

// External reports whether the link leaves the site.
func (l Link) External() bool {
	return l.To == "" && l.Href != ""
}

type Prism struct {
	Theme     string `yaml:"theme"`
	DarkTheme string `yaml:"darkTheme"`
}

// Default returns the configuration the site ships with.
func Default() Config {
	cfg, err := decode(Config{}, bytes.NewReader(defaultYAML))
	if err != nil {
		panic(fmt.Sprintf("embedded default configuration is invalid: %v", err))
	}
	return cfg
}

// Load reads the YAML file at path over the defaults and validates the
// result. Fields the file doesn't mention keep their default values; fields
// the configuration doesn't know about are an error.
func Load(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("error opening %q: %w", path, err)
	}
	defer f.Close()
	cfg, err := Parse(f)
	if err != nil {
		return Config{}, fmt.Errorf("error loading %q: %w", path, err)
	}
	cfg.Root = filepath.Dir(path)
	return cfg, nil
}

// Parse decodes YAML from r over the defaults and validates the result.
func Parse(r io.Reader) (Config, error) {
	cfg, err := decode(Default(), r)
	if err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func decode(base Config, r io.Reader) (Config, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	err := dec.Decode(&base)
	if err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return base, nil
}

// Validate checks the configuration has the shape the site needs.
func (c Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.Title) == "" {
		errs = append(errs, errors.New("title is required"))
	}
	if u, err := url.Parse(c.URL); err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, fmt.Errorf("url %q must be an absolute URL", c.URL))
	}
	if !strings.HasPrefix(c.BaseURL, "/") || !strings.HasSuffix(c.BaseURL, "/") {
		errs = append(errs, fmt.Errorf("baseUrl %q must start and end with /", c.BaseURL))
	}
	if !c.OnBrokenLinks.valid() {
		errs = append(errs, fmt.Errorf("onBrokenLinks %q must be throw, warn, or ignore", c.OnBrokenLinks))
	}
	if !c.OnBrokenMarkdownLinks.valid() {
		errs = append(errs, fmt.Errorf("onBrokenMarkdownLinks %q must be throw, warn, or ignore", c.OnBrokenMarkdownLinks))
	}
	if !slices.Contains(c.I18n.Locales, c.I18n.DefaultLocale) {
		errs = append(errs, fmt.Errorf("i18n.defaultLocale %q is not in i18n.locales", c.I18n.DefaultLocale))
	}
	if c.Docs.Path == "" || c.Docs.SidebarID == "" {
		errs = append(errs, errors.New("docs.path and docs.sidebarId are required"))
	}
	switch c.ThemeConfig.ColorMode.DefaultMode {
	case "dark", "light":
	default:
		errs = append(errs, fmt.Errorf("themeConfig.colorMode.defaultMode %q must be dark or light", c.ThemeConfig.ColorMode.DefaultMode))
	}
	for i, item := range c.ThemeConfig.Navbar.Items {
		if err := item.validate(c.Docs.SidebarID); err != nil {
			errs = append(errs, fmt.Errorf("themeConfig.navbar.items[%d]: %w", i, err))
		}
	}
	if _, err := c.CallToAction(); err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalid, errors.Join(errs...))
	}
	return nil
}

func (n NavbarItem) validate(sidebarID string) error {
	if n.Label == "" {
		return errors.New("label is required")
	}
	switch n.Position {
	case "", "left", "right":
	default:
		return fmt.Errorf("position %q must be left or right", n.Position)
	}
	if n.Type == "docSidebar" {
		if n.SidebarID != sidebarID {
			return fmt.Errorf("sidebar %q doesn't exist", n.SidebarID)
		}
		return nil
	}
	if n.To == "" && n.Href == "" {
		return errors.New("one of to or href is required")
	}
	return nil
}

// CallToAction returns the first link of the first footer group, which the
// hero's "Get started" button points at.
func (c Config) CallToAction() (Link, error) {
	if len(c.ThemeConfig.Footer.Links) < 1 || len(c.ThemeConfig.Footer.Links[0].Items) < 1 {
		return Link{}, ErrNoCallToAction
	}
	link := c.ThemeConfig.Footer.Links[0].Items[0]
	if link.Target() == "" {
		return Link{}, ErrNoCallToAction
	}
	return link, nil
}

// Resolve turns a site-relative path like /docs/intro into a path under
// BaseURL. Absolute URLs and fragments are returned unchanged.
func (c Config) Resolve(path string) string {
	if path == "" || strings.HasPrefix(path, "#") || strings.Contains(path, "://") || strings.HasPrefix(path, "mailto:") {
		return path
	}
	return c.BaseURL + strings.TrimPrefix(path, "/")
}

// Canonical returns the absolute URL of a site-relative path.
func (c Config) Canonical(path string) string {
	return strings.TrimSuffix(c.URL, "/") + c.Resolve(path)
}

// BundledDocs reports whether the docs are the ones shipped with the site.
func (c Config) BundledDocs() bool {
	return c.Docs.Path == bundledDocsPath
}

// DocsDir returns the directory Docs.Path names, resolved against Root.
func (c Config) DocsDir() string {
	if filepath.IsAbs(c.Docs.Path) {
		return c.Docs.Path
	}
	return filepath.Join(c.Root, c.Docs.Path)
}

// DocsRoute returns the path, below BaseURL, every doc permalink starts with.
func (c Config) DocsRoute() string {
	return "/" + strings.Trim(c.Docs.RouteBasePath, "/")
}
