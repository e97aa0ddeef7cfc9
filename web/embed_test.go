package web

import (
	"io/fs"
	"testing"
)

func TestEmbeddedFiles(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		fsys  fs.FS
		files []string
	}{
		"templates": {
			fsys:  Templates(),
			files: []string{"layout.html.tmpl", "home.html.tmpl", "doc.html.tmpl", "css/theme.css.tmpl", "js/color-mode.js.tmpl"},
		},
		"docs": {
			fsys:  Docs(),
			files: []string{"introduction/_category_.yml", "introduction/getting-started.md", "guides/params.md"},
		},
		"static": {
			fsys:  Static(),
			files: []string{"css/custom.css", "img/favicon.svg"},
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			for _, file := range test.files {
				if _, err := fs.Stat(test.fsys, file); err != nil {
					t.Errorf("expected %s to be embedded: %s", file, err)
				}
			}
		})
	}

	if len(ExampleConfig()) == 0 {
		t.Error("expected an example configuration")
	}
}
