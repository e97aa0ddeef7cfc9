package components

import (
	"context"

	"github.com/zielvna/serwer/render"
)

var (
	_ render.ComponentUser = Features{}
	_ render.CSSEmbedder   = Features{}
)

// Features is the grid of selling points on the home page.
type Features struct {
	Items []Feature
}

// NewFeatures returns the four features the home page shows.
func NewFeatures() Features {
	return Features{
		Items: []Feature{
			{
				Icon:        "lightbulb",
				Title:       "Easy to use",
				Description: "Serwer is the simplest web framework to use, making it perfect for both beginners and experienced developers.",
			},
			{
				Icon:        "boxes-stacked",
				Title:       "Dependency-free",
				Description: "Serwer has no dependencies. Everything is built from scratch to suit your needs.",
			},
			{
				Icon:        "gauge-high",
				Title:       "Blazingly fast",
				Description: "Serwer, despite being so simple, is relatively performant compared to other web frameworks.",
			},
			{
				Icon:        "book",
				Title:       "No boilerplate",
				Description: "Serwer has no boilerplate code, so you can start writing your application right away.",
			},
		},
	}
}

func (Features) Templates(_ context.Context) []string {
	return []string{"features.html.tmpl"}
}

func (f Features) UseComponents(_ context.Context) []render.Component {
	components := make([]render.Component, 0, len(f.Items))
	for _, item := range f.Items {
		components = append(components, item)
	}
	return components
}

func (Features) EmbedCSS(_ context.Context) []render.CSSInline {
	return []render.CSSInline{{TemplatePath: "css/features.css.tmpl"}}
}
