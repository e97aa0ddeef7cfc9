package components

import (
	"context"

	"github.com/zielvna/serwer/render"
)

var (
	_ render.ComponentUser = Side{}
	_ render.CSSEmbedder   = Side{}
)

// Side shows a code sample next to a title and description. IsLeftToRight
// puts the code first.
type Side struct {
	Title         string
	Description   string
	IsLeftToRight bool
	Code          string

	// Language is the language Code is highlighted as.
	Language string
}

func (Side) Templates(_ context.Context) []string {
	return []string{"side.html.tmpl"}
}

func (Side) UseComponents(_ context.Context) []render.Component {
	return []render.Component{CodeBlock{}}
}

func (Side) EmbedCSS(_ context.Context) []render.CSSInline {
	return []render.CSSInline{{TemplatePath: "css/side.css.tmpl"}}
}
