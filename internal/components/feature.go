package components

import (
	"context"
	"errors"
	"fmt"
	"html/template"

	"github.com/zielvna/serwer/render"
)

// ErrUnknownIcon is returned when a Feature names an icon that doesn't exist.
var ErrUnknownIcon = errors.New("unknown icon")

const iconSize = 64

var icons = map[string]string{
	"lightbulb":     `<path d="M9 18h6"/><path d="M10 22h4"/><path d="M12 2a7 7 0 0 0-4 12.74V17h8v-2.26A7 7 0 0 0 12 2z"/>`,
	"boxes-stacked": `<rect x="2" y="13" width="9" height="8" rx="1"/><rect x="13" y="13" width="9" height="8" rx="1"/><rect x="7.5" y="3" width="9" height="8" rx="1"/>`,
	"gauge-high":    `<path d="M4.93 19.07a10 10 0 1 1 14.14 0"/><path d="M12 14l4.5-5"/><circle cx="12" cy="14" r="1.5"/>`,
	"book":          `<path d="M4 19.5A2.5 2.5 0 0 1 6.5 17H20V2H6.5A2.5 2.5 0 0 0 4 4.5z"/><path d="M4 19.5A2.5 2.5 0 0 0 6.5 22H20v-5"/>`,
}

// Icon returns the named icon as an inline SVG element.
func Icon(name string) (template.HTML, error) {
	paths, ok := icons[name]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownIcon, name)
	}
	return template.HTML(fmt.Sprintf( // #nosec G203
		`<svg class="feature__icon" width="%d" height="%d" viewBox="0 0 24 24" fill="none" stroke="currentColor" stroke-width="2" stroke-linecap="round" stroke-linejoin="round" aria-hidden="true">%s</svg>`,
		iconSize, iconSize, paths,
	)), nil
}

var (
	_ render.Component       = Feature{}
	_ render.FuncMapExtender = Feature{}
)

// Feature is an icon next to a title and a short description.
type Feature struct {
	Icon        string
	Title       string
	Description string
}

func (Feature) Templates(_ context.Context) []string {
	return []string{"feature.html.tmpl"}
}

func (Feature) FuncMap(_ context.Context) template.FuncMap {
	return template.FuncMap{
		"icon": Icon,
	}
}
