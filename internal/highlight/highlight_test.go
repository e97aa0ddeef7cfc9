package highlight

import (
	"strings"
	"testing"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

func textContent(t *testing.T, markup string) string {
	t.Helper()
	nodes, err := html.ParseFragment(strings.NewReader(markup), &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body})
	if err != nil {
		t.Fatalf("error parsing %q: %s", markup, err)
	}
	var out strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			out.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for _, node := range nodes {
		walk(node)
	}
	return out.String()
}

func TestHighlight(t *testing.T) {
	t.Parallel()

	type testCase struct {
		language string
		code     string
	}

	tests := map[string]testCase{
		"rust": {
			language: "rust",
			code:     "let mut serwer = Serwer::new();\nserwer.listen(7878);",
		},
		"unknown-language": {
			language: "not-a-language",
			code:     "a < b && c > d",
		},
		"trailing-newlines": {
			language: "go",
			code:     "package main\n\n",
		},
	}

	h := New("vsDark")
	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			out, err := h.Highlight(test.language, test.code)
			if err != nil {
				t.Fatalf("unexpected error: %s", err)
			}
			if !strings.Contains(string(out), `class="chroma"`) {
				t.Errorf("expected chroma wrapper, got %s", out)
			}
			want := strings.TrimRight(test.code, "\n")
			if got := strings.TrimRight(textContent(t, string(out)), "\n"); got != want {
				t.Errorf("expected text %q, got %q", want, got)
			}
		})
	}
}

func TestNewStyles(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"vsDark":  "onedark",
		"dracula": "dracula",
		"monokai": "monokai",
		"nope":    "swapoff",
	}
	for theme, want := range tests {
		t.Run(theme, func(t *testing.T) {
			t.Parallel()

			if got := New(theme).StyleName(); got != want {
				t.Errorf("expected style %q, got %q", want, got)
			}
		})
	}
}

func TestCSS(t *testing.T) {
	t.Parallel()

	css, err := New("vsDark").CSS()
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if !strings.Contains(css, ".chroma") {
		t.Errorf("expected .chroma rules, got %s", css)
	}
}

func TestCSSDarkTheme(t *testing.T) {
	t.Parallel()

	light, err := New("github").CSS()
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	css, err := New("github").WithDarkTheme("dracula").CSS()
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if !strings.HasPrefix(css, light) {
		t.Error("expected the light rules to come first")
	}
	dark := strings.TrimPrefix(css, light)
	if !strings.Contains(dark, DarkSelector+" .chroma") || !strings.Contains(dark, "#282a36") {
		t.Errorf("expected scoped dracula rules, got %s", dark)
	}
	for _, line := range strings.Split(strings.TrimSpace(dark), "\n") {
		if !strings.Contains(line, DarkSelector+" .") {
			t.Errorf("expected every dark rule to be scoped, got %q", line)
		}
	}

	for name, theme := range map[string]string{"same-style": "vsDark", "empty": ""} {
		css, err := New("vsDark").WithDarkTheme(theme).CSS()
		if err != nil {
			t.Fatalf("%s: unexpected error: %s", name, err)
		}
		if strings.Contains(css, DarkSelector) {
			t.Errorf("%s: expected no dark rules, got %s", name, css)
		}
	}
}
