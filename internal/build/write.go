package build

import (
	"bytes"
	"compress/gzip"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"regexp"

	"github.com/google/renameio/v2"
	"github.com/tdewolff/minify/v2"
	mincss "github.com/tdewolff/minify/v2/css"
	minhtml "github.com/tdewolff/minify/v2/html"
	minjs "github.com/tdewolff/minify/v2/js"
	minsvg "github.com/tdewolff/minify/v2/svg"
	minxml "github.com/tdewolff/minify/v2/xml"
)

const (
	mediaHTML = "text/html"
	mediaCSS  = "text/css"
	mediaJS   = "application/javascript"
	mediaSVG  = "image/svg+xml"
	mediaXML  = "application/xml"
)

var mediaTypes = map[string]string{
	".html": mediaHTML,
	".css":  mediaCSS,
	".js":   mediaJS,
	".svg":  mediaSVG,
}

// compressible lists the extensions that get a .gz copy.
var compressible = map[string]bool{
	".html": true,
	".css":  true,
	".js":   true,
	".svg":  true,
	".xml":  true,
}

func newMinifier() *minify.M {
	m := minify.New()
	m.Add(mediaHTML, &minhtml.Minifier{
		KeepDocumentTags: true,
		KeepEndTags:      true,
		KeepQuotes:       true,
	})
	m.AddFunc(mediaCSS, mincss.Minify)
	m.AddFuncRegexp(regexp.MustCompile("^(application|text)/(x-)?(java|ecma)script$"), minjs.Minify)
	m.AddFunc(mediaSVG, minsvg.Minify)
	m.AddFuncRegexp(regexp.MustCompile("[/+]xml$"), minxml.Minify)
	return m
}

// writer writes files below dir atomically, adding gzipped copies when
// enabled.
type writer struct {
	dir   string
	gzip  bool
	files int
}

func (w *writer) write(name string, contents []byte) error {
	full := filepath.Join(w.dir, filepath.FromSlash(name))
	err := os.MkdirAll(filepath.Dir(full), 0o755)
	if err != nil {
		return fmt.Errorf("error creating directory for %q: %w", name, err)
	}
	err = renameio.WriteFile(full, contents, 0o644)
	if err != nil {
		return fmt.Errorf("error writing %q: %w", name, err)
	}
	w.files++
	if !w.gzip || !compressible[path.Ext(name)] {
		return nil
	}

	var buf bytes.Buffer
	gz, err := gzip.NewWriterLevel(&buf, gzip.BestCompression)
	if err != nil {
		return fmt.Errorf("error compressing %q: %w", name, err)
	}
	_, err = gz.Write(contents)
	if err != nil {
		return fmt.Errorf("error compressing %q: %w", name, err)
	}
	err = gz.Close()
	if err != nil {
		return fmt.Errorf("error compressing %q: %w", name, err)
	}
	err = renameio.WriteFile(full+".gz", buf.Bytes(), 0o644)
	if err != nil {
		return fmt.Errorf("error writing %q: %w", name+".gz", err)
	}
	w.files++
	return nil
}
