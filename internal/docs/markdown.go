package docs

import (
	"net/url"
	"path"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"

	"github.com/zielvna/serwer/internal/highlight"
)

var (
	docSourceKey   = parser.NewContextKey()
	brokenLinksKey = parser.NewContextKey()
)

func newMarkdown(links *linkRewriter, highlighter *highlight.Highlighter) goldmark.Markdown {
	return goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
			parser.WithASTTransformers(util.Prioritized(links, 100)),
		),
		goldmark.WithRendererOptions(
			renderer.WithNodeRenderers(util.Prioritized(&codeBlockRenderer{highlighter: highlighter}, 200)),
		),
	)
}

// linkRewriter points links to markdown files at the permalink of the doc
// they refer to. Links it can't resolve are recorded in the parser context
// under brokenLinksKey.
type linkRewriter struct {
	docs map[string]*Doc
}

func (l *linkRewriter) Transform(node *ast.Document, _ text.Reader, pc parser.Context) {
	from, _ := pc.Get(docSourceKey).(string)
	var broken []string
	_ = ast.Walk(node, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		link, ok := n.(*ast.Link)
		if !ok || !entering {
			return ast.WalkContinue, nil
		}
		dest := string(link.Destination)
		target, fragment, ok := markdownTarget(from, dest)
		if !ok {
			return ast.WalkContinue, nil
		}
		doc, found := l.docs[target]
		if !found {
			broken = append(broken, from+" links to "+dest)
			return ast.WalkContinue, nil
		}
		link.Destination = []byte(doc.Permalink + fragment)
		return ast.WalkContinue, nil
	})
	if len(broken) > 0 {
		pc.Set(brokenLinksKey, broken)
	}
}

// markdownTarget resolves dest, as written in the doc at from, to the path
// of a markdown file in the docs fs.FS. It reports false for anything that
// isn't a link to a markdown file.
func markdownTarget(from, dest string) (target, fragment string, ok bool) {
	u, err := url.Parse(dest)
	if err != nil || u.Scheme != "" || u.Host != "" || !strings.HasSuffix(u.Path, ".md") {
		return "", "", false
	}
	if u.Fragment != "" {
		fragment = "#" + u.Fragment
	}
	if strings.HasPrefix(u.Path, "/") {
		return path.Clean(strings.TrimPrefix(u.Path, "/")), fragment, true
	}
	return path.Join(path.Dir(from), u.Path), fragment, true
}

// codeBlockRenderer renders fenced code blocks with the highlighter, in the
// same markup the home page's code blocks use.
type codeBlockRenderer struct {
	highlighter *highlight.Highlighter
}

func (r *codeBlockRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(ast.KindFencedCodeBlock, r.renderFencedCodeBlock)
}

func (r *codeBlockRenderer) renderFencedCodeBlock(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkSkipChildren, nil
	}
	block := node.(*ast.FencedCodeBlock)
	var code strings.Builder
	lines := block.Lines()
	for i := 0; i < lines.Len(); i++ {
		line := lines.At(i)
		code.Write(line.Value(source))
	}
	highlighted, err := r.highlighter.Highlight(string(block.Language(source)), code.String())
	if err != nil {
		return ast.WalkStop, err
	}
	_, _ = w.WriteString(`<div class="code-block">`)
	_, _ = w.WriteString(string(highlighted))
	_, _ = w.WriteString("</div>\n")
	return ast.WalkSkipChildren, nil
}
