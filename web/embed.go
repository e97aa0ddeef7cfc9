// Package web holds the site's templates, markdown documents, and static
// assets.
package web

import (
	"embed"
	"io/fs"
)

//go:embed templates all:docs static serwer-docs.yml
var files embed.FS

// Templates returns the html/template, CSS, and JavaScript templates, rooted
// so that component template paths resolve against it.
func Templates() fs.FS {
	return sub("templates")
}

// Docs returns the markdown documents.
func Docs() fs.FS {
	return sub("docs")
}

// Static returns the assets copied into the build output.
func Static() fs.FS {
	return sub("static")
}

// ExampleConfig returns the sample configuration file shipped with the site.
func ExampleConfig() []byte {
	contents, err := files.ReadFile("serwer-docs.yml")
	if err != nil {
		panic(err)
	}
	return contents
}

func sub(dir string) fs.FS {
	fsys, err := fs.Sub(files, dir)
	if err != nil {
		panic(err)
	}
	return fsys
}
