package screenshots

import (
	"errors"
	"flowweb/internal/domain/content"
	"flowweb/internal/ingest"
	"fmt"
	"os"
	"slices"
)

var ErrGalleryNotFound = errors.New("gallery not found")

// Catalog holds every gallery in the order its name first appeared in the
// input. Screenshots are fully linked: each carries its position and the
// complete gallery list.
type Catalog struct {
	Galleries []content.Gallery
	byName    map[string]int
}

// NewCatalog groups parsed screenshots by gallery name and links siblings.
// When a gallery name shows up with different URLs the first one wins.
func NewCatalog(shots []content.Screenshot) *Catalog {
	c := &Catalog{byName: make(map[string]int)}
	for _, s := range shots {
		i, ok := c.byName[s.GalleryName]
		if !ok {
			i = len(c.Galleries)
			c.byName[s.GalleryName] = i
			c.Galleries = append(c.Galleries, content.Gallery{Name: s.GalleryName, URL: s.GalleryURL})
		}
		g := &c.Galleries[i]
		s.GalleryURL = g.URL
		s.Position = len(g.Screenshots)
		s.Siblings = nil
		g.Screenshots = append(g.Screenshots, s)
	}

	// The sibling list is a snapshot taken before linking, so its entries
	// have no siblings of their own.
	for i := range c.Galleries {
		g := &c.Galleries[i]
		siblings := slices.Clone(g.Screenshots)
		for j := range g.Screenshots {
			g.Screenshots[j].Siblings = siblings
		}
	}
	return c
}

// LoadCatalog parses every file in dir, in name order, into a catalog.
func LoadCatalog(dir string) (*Catalog, error) {
	files, err := ingest.DiscoverSource(dir)
	if err != nil {
		return nil, err
	}
	var all []content.Screenshot
	for _, f := range files {
		raw, err := os.ReadFile(f.Path)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", f.Path, err)
		}
		shots, err := ingest.ParseScreenshots(f.Path, raw)
		if err != nil {
			return nil, err
		}
		all = append(all, shots...)
	}
	return NewCatalog(all), nil
}

func (c *Catalog) Gallery(name string) (content.Gallery, error) {
	i, ok := c.byName[name]
	if !ok {
		return content.Gallery{}, fmt.Errorf("%q: %w", name, ErrGalleryNotFound)
	}
	return c.Galleries[i], nil
}

// Screenshots returns up to n screenshots of the named gallery.
func (c *Catalog) Screenshots(n int, name string) ([]content.Screenshot, error) {
	g, err := c.Gallery(name)
	if err != nil {
		return nil, err
	}
	if n > len(g.Screenshots) {
		n = len(g.Screenshots)
	}
	if n < 0 {
		n = 0
	}
	return slices.Clone(g.Screenshots[:n]), nil
}

// Count is the number of screenshots over all galleries.
func (c *Catalog) Count() int {
	n := 0
	for _, g := range c.Galleries {
		n += len(g.Screenshots)
	}
	return n
}
