// Package content defines the content-item record shared by the scanner, the
// navigation tree and the posts pipeline, and scans content directories into
// collections of records.
package content

import (
	"bytes"
	"encoding/json"
	"fmt"
	"maps"

	"git.home.luguber.info/inful/docnav/internal/frontmatter"
	"git.home.luguber.info/inful/docnav/internal/markdown"
)

// PageLink points at a neighbouring page.
type PageLink struct {
	Title string `json:"title"`
	Href  string `json:"href"`
}

// Item is a single content page or grouping marker.
//
// Only title, weight, excerpt, href and isPrerelease are read from
// frontmatter; the scanner computes the rest. Any other frontmatter key is
// kept in Extra and written back out next to the known fields.
type Item struct {
	Title         string   `json:"title,omitempty" yaml:"title"`
	Slug          string   `json:"slug" yaml:"-"`
	Weight        *float64 `json:"weight,omitempty" yaml:"weight"`
	IsSection     bool     `json:"isSection,omitempty" yaml:"-"`
	IsRootSection bool     `json:"isRootSection,omitempty" yaml:"-"`
	RootSectionID string   `json:"rootSectionId,omitempty" yaml:"-"`
	SectionID     string   `json:"sectionId,omitempty" yaml:"-"`
	Parent        string   `json:"parent,omitempty" yaml:"-"`
	Href          string   `json:"href,omitempty" yaml:"href"`
	IsPrerelease  bool     `json:"isPrerelease,omitempty" yaml:"isPrerelease"`

	SectionWeight   *float64            `json:"sectionWeight,omitempty" yaml:"-"`
	SectionTitle    string              `json:"sectionTitle,omitempty" yaml:"-"`
	SectionSlug     string              `json:"sectionSlug,omitempty" yaml:"-"`
	TOC             []markdown.TOCEntry `json:"toc,omitempty" yaml:"-"`
	ReadingTime     int                 `json:"readingTime,omitempty" yaml:"-"`
	Excerpt         string              `json:"excerpt,omitempty" yaml:"excerpt"`
	ID              string              `json:"id,omitempty" yaml:"-"`
	IsIndex         bool                `json:"isIndex,omitempty" yaml:"-"`
	ReleaseNoteLink string              `json:"releaseNoteLink,omitempty" yaml:"-"`
	Fingerprint     string              `json:"fingerprint,omitempty" yaml:"-"`
	LastModified    string              `json:"lastModified,omitempty" yaml:"-"`

	NextPage *PageLink `json:"nextPage,omitempty" yaml:"-"`
	PrevPage *PageLink `json:"prevPage,omitempty" yaml:"-"`

	Extra map[string]any `json:"-" yaml:"-"`
}

// Float returns a pointer to v, for use with Weight and SectionWeight.
func Float(v float64) *float64 { return &v }

// IsMarker reports whether the item is a root-section or subsection marker
// rather than a navigable page.
func (it *Item) IsMarker() bool {
	return it.IsSection || it.IsRootSection
}

// WeightValue returns the item weight and whether one was declared.
func (it *Item) WeightValue() (float64, bool) {
	if it.Weight == nil {
		return 0, false
	}
	return *it.Weight, true
}

// Clone returns a copy of the item that can be modified without affecting it.
func (it *Item) Clone() *Item {
	if it == nil {
		return nil
	}
	c := *it
	if it.Extra != nil {
		c.Extra = maps.Clone(it.Extra)
	}
	if it.NextPage != nil {
		next := *it.NextPage
		c.NextPage = &next
	}
	if it.PrevPage != nil {
		prev := *it.PrevPage
		c.PrevPage = &prev
	}
	return &c
}

type itemFields Item

// MarshalJSON writes the known fields followed by any extra frontmatter keys
// that do not collide with them. Keys are emitted in sorted order.
func (it *Item) MarshalJSON() ([]byte, error) {
	known, err := marshalRaw((*itemFields)(it))
	if err != nil {
		return nil, err
	}
	if len(it.Extra) == 0 {
		return known, nil
	}

	merged := map[string]json.RawMessage{}
	if err := json.Unmarshal(known, &merged); err != nil {
		return nil, err
	}
	for k, v := range it.Extra {
		if _, reserved := reservedKeys[k]; reserved {
			continue
		}
		raw, err := marshalRaw(normalizeValue(v))
		if err != nil {
			return nil, fmt.Errorf("marshal frontmatter field %q: %w", k, err)
		}
		merged[k] = raw
	}
	return marshalRaw(merged)
}

// marshalRaw encodes v without HTML escaping so excerpts and titles keep
// their characters as written.
func marshalRaw(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

var reservedKeys = map[string]struct{}{
	"title": {}, "slug": {}, "weight": {}, "isSection": {}, "isRootSection": {},
	"rootSectionId": {}, "sectionId": {}, "parent": {}, "href": {}, "isPrerelease": {},
	"sectionWeight": {}, "sectionTitle": {}, "sectionSlug": {}, "toc": {},
	"readingTime": {}, "excerpt": {}, "id": {}, "isIndex": {}, "releaseNoteLink": {},
	"fingerprint": {}, "lastModified": {}, "nextPage": {}, "prevPage": {},
}

// FromDocument builds an item from a document's frontmatter. Known keys are
// decoded into fields; the others land in Extra.
func FromDocument(doc frontmatter.Document) (*Item, error) {
	it := &Item{}
	if err := doc.Decode(it); err != nil {
		return nil, err
	}
	fields, err := doc.Fields()
	if err != nil {
		return nil, fmt.Errorf("parse frontmatter: %w", err)
	}
	for k, v := range fields {
		if _, reserved := reservedKeys[k]; reserved {
			continue
		}
		if it.Extra == nil {
			it.Extra = make(map[string]any)
		}
		it.Extra[k] = normalizeValue(v)
	}
	return it, nil
}

// normalizeValue converts YAML maps with non-string keys into JSON-friendly maps.
func normalizeValue(v any) any {
	switch val := v.(type) {
	case map[any]any:
		out := make(map[string]any, len(val))
		for k, inner := range val {
			out[fmt.Sprint(k)] = normalizeValue(inner)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, inner := range val {
			out[k] = normalizeValue(inner)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, inner := range val {
			out[i] = normalizeValue(inner)
		}
		return out
	default:
		return v
	}
}
