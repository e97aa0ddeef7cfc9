// Package highlight turns source code into HTML with CSS classes, plus the
// stylesheet for those classes, for the code blocks on the home page and in
// the docs.
package highlight

import (
	"fmt"
	"html/template"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// prismThemes maps the prism theme names the configuration uses onto the
// closest chroma style.
var prismThemes = map[string]string{
	"vsDark":          "onedark",
	"vsLight":         "vs",
	"github":          "github",
	"dracula":         "dracula",
	"duotoneDark":     "paraiso-dark",
	"duotoneLight":    "paraiso-light",
	"nightOwl":        "tokyonight-night",
	"nightOwlLight":   "tokyonight-day",
	"oceanicNext":     "base16-snazzy",
	"okaidia":         "monokai",
	"palenight":       "catppuccin-macchiato",
	"oneDark":         "onedark",
	"oneLight":        "modus-operandi",
	"shadesOfPurple":  "witchhazel",
	"synthwave84":     "rose-pine-moon",
	"ultramin":        "bw",
	"gruvboxMaterial": "gruvbox",
}

// DarkSelector scopes the dark theme's rules to pages in dark mode.
const DarkSelector = `[data-theme="dark"]`

// Highlighter renders code with one chroma style, plus an optional style for
// dark mode. Its zero value is not usable; create one with New.
type Highlighter struct {
	style     *chroma.Style
	dark      *chroma.Style
	formatter *html.Formatter
}

// New returns a Highlighter for the named theme. Prism theme names are
// translated to chroma styles, other names are looked up as chroma styles
// directly, and unknown names fall back to chroma's default style.
func New(theme string) *Highlighter {
	return &Highlighter{
		style:     style(theme),
		formatter: html.New(html.WithClasses(true), html.TabWidth(4)),
	}
}

// WithDarkTheme returns a copy of h whose CSS also carries theme, scoped to
// DarkSelector. An empty theme, or one resolving to the same style, adds
// nothing.
func (h *Highlighter) WithDarkTheme(theme string) *Highlighter {
	dark := *h
	dark.dark = nil
	if theme != "" {
		if s := style(theme); s.Name != h.style.Name {
			dark.dark = s
		}
	}
	return &dark
}

func style(theme string) *chroma.Style {
	name := theme
	if mapped, ok := prismThemes[theme]; ok {
		name = mapped
	}
	return styles.Get(name)
}

// StyleName returns the name of the chroma style in use.
func (h *Highlighter) StyleName() string {
	return h.style.Name
}

// Highlight returns code as highlighted HTML, wrapped in a <pre> element.
// Languages chroma doesn't know are rendered as plain text.
func (h *Highlighter) Highlight(language, code string) (template.HTML, error) {
	lexer := lexers.Get(language)
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)
	iterator, err := lexer.Tokenise(nil, strings.TrimRight(code, "\n"))
	if err != nil {
		return "", fmt.Errorf("error tokenising %s code: %w", language, err)
	}
	var out strings.Builder
	err = h.formatter.Format(&out, h.style, iterator)
	if err != nil {
		return "", fmt.Errorf("error formatting %s code: %w", language, err)
	}
	return template.HTML(out.String()), nil // #nosec G203
}

// CSS returns the stylesheet for the classes Highlight emits, followed by
// the dark theme's rules when there is one.
func (h *Highlighter) CSS() (string, error) {
	var out strings.Builder
	err := h.formatter.WriteCSS(&out, h.style)
	if err != nil {
		return "", fmt.Errorf("error writing %s styles: %w", h.style.Name, err)
	}
	if h.dark == nil {
		return out.String(), nil
	}
	var dark strings.Builder
	err = h.formatter.WriteCSS(&dark, h.dark)
	if err != nil {
		return "", fmt.Errorf("error writing %s styles: %w", h.dark.Name, err)
	}
	out.WriteString(scope(dark.String(), DarkSelector))
	return out.String(), nil
}

// scope prefixes the selector of every rule in css, one rule per line as
// chroma writes them, with selector.
func scope(css, selector string) string {
	var out strings.Builder
	for _, line := range strings.SplitAfter(css, "\n") {
		rule := line
		if strings.HasPrefix(rule, "/*") {
			if end := strings.Index(rule, "*/"); end >= 0 {
				out.WriteString(rule[:end+2] + " ")
				rule = strings.TrimLeft(rule[end+2:], " ")
			}
		}
		if strings.HasPrefix(rule, ".") {
			out.WriteString(selector + " ")
		}
		out.WriteString(rule)
	}
	return out.String()
}
