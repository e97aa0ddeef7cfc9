package components

import (
	"context"
	"fmt"

	"github.com/zielvna/serwer/internal/config"
	"github.com/zielvna/serwer/render"
)

var (
	_ render.Component   = Hero{}
	_ render.CSSEmbedder = Hero{}
)

// Hero is the banner at the top of the home page: the site title, the
// tagline, and a button pointing at the first footer link.
type Hero struct {
	Title        string
	Tagline      string
	CallToAction config.Link

	// Href is the call to action's target, resolved against the base URL.
	Href string
}

// NewHero builds the Hero from the configuration. It returns
// config.ErrNoCallToAction when the footer has no first link.
func NewHero(cfg config.Config) (Hero, error) {
	link, err := cfg.CallToAction()
	if err != nil {
		return Hero{}, fmt.Errorf("error building hero: %w", err)
	}
	return Hero{
		Title:        cfg.Title,
		Tagline:      cfg.Tagline,
		CallToAction: link,
		Href:         cfg.Resolve(link.Target()),
	}, nil
}

func (Hero) Templates(_ context.Context) []string {
	return []string{"hero.html.tmpl"}
}

func (Hero) EmbedCSS(_ context.Context) []render.CSSInline {
	return []render.CSSInline{{TemplatePath: "css/hero.css.tmpl"}}
}
