package docs

import (
	"cmp"
	"errors"
	"fmt"
	"io/fs"
	"math"
	"path"
	"slices"

	"gopkg.in/yaml.v3"
)

const categoryFile = "_category_.yml"

// Sidebar is the navigation shown next to every doc.
type Sidebar struct {
	ID         string
	Categories []Category
}

// Category groups the docs of one top-level directory.
type Category struct {
	// Dir is the directory the docs live in, empty for docs at the root.
	Dir   string
	Label string
	Docs  []*Doc

	position float64
}

type categoryMetadata struct {
	Label    string   `yaml:"label"`
	Position *float64 `yaml:"position"`
}

// readCategories reads the _category_.yml file of every top-level directory
// that has one.
func readCategories(fsys fs.FS) (map[string]categoryMetadata, error) {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("error listing docs: %w", err)
	}
	results := map[string]categoryMetadata{}
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		contents, err := fs.ReadFile(fsys, path.Join(entry.Name(), categoryFile))
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("error reading category %q: %w", entry.Name(), err)
		}
		var meta categoryMetadata
		err = yaml.Unmarshal(contents, &meta)
		if err != nil {
			return nil, fmt.Errorf("error parsing category %q: %w", entry.Name(), err)
		}
		results[entry.Name()] = meta
	}
	return results, nil
}

// newSidebar groups docs into one category per top-level directory.
// Categories are ordered by their _category_.yml position, or else the lowest
// position of their docs; docs by position, then title.
func newSidebar(id string, docs []*Doc, meta map[string]categoryMetadata) Sidebar {
	byDir := map[string]*Category{}
	var order []string
	for _, doc := range docs {
		cat, ok := byDir[doc.Category]
		if !ok {
			cat = &Category{Dir: doc.Category, position: math.Inf(1)}
			if doc.Category != "" {
				cat.Label = titleCase(doc.Category)
			}
			if m, ok := meta[doc.Category]; ok {
				if m.Label != "" {
					cat.Label = m.Label
				}
				if m.Position != nil {
					cat.position = *m.Position
				}
			}
			byDir[doc.Category] = cat
			order = append(order, doc.Category)
		}
		cat.Docs = append(cat.Docs, doc)
	}

	sidebar := Sidebar{ID: id}
	for _, dir := range order {
		cat := byDir[dir]
		slices.SortStableFunc(cat.Docs, compareDocs)
		if _, ok := meta[dir]; !ok || meta[dir].Position == nil {
			cat.position = docPosition(cat.Docs[0])
		}
		sidebar.Categories = append(sidebar.Categories, *cat)
	}
	slices.SortStableFunc(sidebar.Categories, func(a, b Category) int {
		if c := cmp.Compare(a.position, b.position); c != 0 {
			return c
		}
		return cmp.Compare(a.Dir, b.Dir)
	})
	return sidebar
}

func docPosition(doc *Doc) float64 {
	if doc.SidebarPosition == nil {
		return math.Inf(1)
	}
	return *doc.SidebarPosition
}

func compareDocs(a, b *Doc) int {
	if c := cmp.Compare(docPosition(a), docPosition(b)); c != 0 {
		return c
	}
	return cmp.Compare(a.Title, b.Title)
}

// Docs returns every doc in the order the sidebar lists them.
func (s Sidebar) Docs() []*Doc {
	var results []*Doc
	for _, cat := range s.Categories {
		results = append(results, cat.Docs...)
	}
	return results
}

// First returns the first doc of the sidebar, or nil if it's empty.
func (s Sidebar) First() *Doc {
	docs := s.Docs()
	if len(docs) < 1 {
		return nil
	}
	return docs[0]
}

// Neighbours returns the docs before and after doc in sidebar order. Either
// is nil at the ends of the sidebar.
func (s Sidebar) Neighbours(doc *Doc) (prev, next *Doc) {
	docs := s.Docs()
	pos := slices.Index(docs, doc)
	if pos < 0 {
		return nil, nil
	}
	if pos > 0 {
		prev = docs[pos-1]
	}
	if pos < len(docs)-1 {
		next = docs[pos+1]
	}
	return prev, next
}
