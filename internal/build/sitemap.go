package build

import (
	"encoding/xml"
	"fmt"
)

const (
	sitemapFile  = "sitemap.xml"
	sitemapXMLNS = "http://www.sitemaps.org/schemas/sitemap/0.9"
)

type urlset struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc        string  `xml:"loc"`
	ChangeFreq string  `xml:"changefreq"`
	Priority   float64 `xml:"priority"`
}

// sitemap lists the canonical URL of every page except the 404 page.
func (b *Builder) sitemap(pages []page) ([]byte, error) {
	set := urlset{XMLNS: sitemapXMLNS}
	for _, p := range pages {
		if p.route == notFoundRoute {
			continue
		}
		set.URLs = append(set.URLs, sitemapURL{
			Loc:        b.Config.Canonical(p.route),
			ChangeFreq: "weekly",
			Priority:   0.5,
		})
	}
	out, err := xml.MarshalIndent(set, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("error encoding sitemap: %w", err)
	}
	contents := append([]byte(xml.Header), out...)
	if b.Minify {
		contents, err = newMinifier().Bytes(mediaXML, contents)
		if err != nil {
			return nil, fmt.Errorf("error minifying sitemap: %w", err)
		}
	}
	return contents, nil
}
