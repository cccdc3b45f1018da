package content

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMissingSlug is returned when a record reaches a collection without a slug.
var ErrMissingSlug = errors.New("content item has no slug")

// Slug prefixes that select a collection.
const (
	DocsPrefix  = "/docs"
	BlogPrefix  = "/blog"
	AboutPrefix = "/about"
)

// Collection holds scanned records grouped by top-level area, in scan order.
type Collection struct {
	Docs  []*Item
	Blog  []*Item
	About []*Item
}

// Add classifies it by slug prefix. Records outside the known areas are
// ignored.
func (c *Collection) Add(it *Item) error {
	if it == nil || it.Slug == "" {
		title := ""
		if it != nil {
			title = it.Title
		}
		return fmt.Errorf("%w (title %q)", ErrMissingSlug, title)
	}
	switch {
	case strings.HasPrefix(it.Slug, DocsPrefix):
		c.Docs = append(c.Docs, it)
	case strings.HasPrefix(it.Slug, BlogPrefix):
		c.Blog = append(c.Blog, it)
	case strings.HasPrefix(it.Slug, AboutPrefix):
		c.About = append(c.About, it)
	}
	return nil
}

// Len returns the number of records across all areas.
func (c *Collection) Len() int {
	return len(c.Docs) + len(c.Blog) + len(c.About)
}
