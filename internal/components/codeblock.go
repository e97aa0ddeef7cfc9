package components

import (
	"context"

	"github.com/zielvna/serwer/render"
)

var (
	_ render.CSSEmbedder = CodeBlock{}
	_ render.JSEmbedder  = CodeBlock{}
)

// CodeBlock styles highlighted code and adds a copy button to it. It has no
// markup of its own; code is highlighted by the "highlight" template function
// and by the docs renderer.
type CodeBlock struct{}

func (CodeBlock) Templates(_ context.Context) []string {
	return nil
}

func (CodeBlock) EmbedCSS(_ context.Context) []render.CSSInline {
	return []render.CSSInline{{TemplatePath: "css/code-block.css.tmpl"}}
}

func (CodeBlock) EmbedJS(_ context.Context) []render.JSInline {
	return []render.JSInline{{TemplatePath: "js/copy-code.js.tmpl", PlaceInFooter: true}}
}
