package navtree

import (
	"bytes"
	"encoding/json"
	"iter"
	"slices"

	"git.home.luguber.info/inful/docnav/internal/content"
)

// Node is one entry of the tree: *Leaf, *Section or *RootSection.
type Node interface {
	Record() *content.Item
	isNode()
}

// Leaf is a page keyed directly under a root section.
type Leaf struct {
	Item *content.Item
}

// Section is a subsection marker and its pages in weight order.
type Section struct {
	Item  *content.Item
	Pages []*content.Item

	// synthetic is set while the marker is a stand-in created for pages
	// that were placed before their subsection record.
	synthetic bool
}

// RootSection is a top-level section and its keyed children.
type RootSection struct {
	Item     *content.Item
	Children Children
}

func (n *Leaf) Record() *content.Item        { return n.Item }
func (n *Section) Record() *content.Item     { return n.Item }
func (n *RootSection) Record() *content.Item { return n.Item }

func (*Leaf) isNode()        {}
func (*Section) isNode()     {}
func (*RootSection) isNode() {}

// Children is an insertion-ordered keyed collection of nodes.
type Children struct {
	keys  []string
	nodes map[string]Node
}

// Len returns the number of children.
func (c *Children) Len() int { return len(c.keys) }

// Keys returns the child keys in order.
func (c *Children) Keys() []string { return slices.Clone(c.keys) }

// Get returns the child stored under key.
func (c *Children) Get(key string) (Node, bool) {
	n, ok := c.nodes[key]
	return n, ok
}

// All iterates over the children in order.
func (c *Children) All() iter.Seq2[string, Node] {
	return func(yield func(string, Node) bool) {
		for _, k := range c.keys {
			if !yield(k, c.nodes[k]) {
				return
			}
		}
	}
}

// Set stores node under key. A new key is appended; an existing key keeps
// its position.
func (c *Children) Set(key string, node Node) {
	if c.nodes == nil {
		c.nodes = make(map[string]Node)
	}
	if _, ok := c.nodes[key]; !ok {
		c.keys = append(c.keys, key)
	}
	c.nodes[key] = node
}

func (c *Children) sortStable(cmp func(a, b Node) int) {
	slices.SortStableFunc(c.keys, func(a, b string) int {
		return cmp(c.nodes[a], c.nodes[b])
	})
}

// MarshalJSON writes the children as an object whose keys follow the stored
// order.
func (c *Children) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range c.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := encode(k)
		if err != nil {
			return nil, err
		}
		val, err := encode(c.nodes[k])
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (n *Leaf) MarshalJSON() ([]byte, error) {
	return encode(struct {
		Item *content.Item `json:"item"`
	}{n.Item})
}

func (n *Section) MarshalJSON() ([]byte, error) {
	pages := n.Pages
	if pages == nil {
		pages = []*content.Item{}
	}
	return encode(struct {
		Item     *content.Item   `json:"item"`
		Children []*content.Item `json:"children"`
	}{n.Item, pages})
}

func (n *RootSection) MarshalJSON() ([]byte, error) {
	return encode(struct {
		Item     *content.Item `json:"item"`
		Children *Children     `json:"children"`
	}{n.Item, &n.Children})
}

// Tree is the navigation tree: root sections in order, welcome first.
type Tree struct {
	roots Children
}

// Len returns the number of root sections, including welcome.
func (t *Tree) Len() int { return t.roots.Len() }

// Keys returns the root section keys in order.
func (t *Tree) Keys() []string { return t.roots.Keys() }

// Root returns the root section registered under key.
func (t *Tree) Root(key string) (*RootSection, bool) {
	n, ok := t.roots.Get(key)
	if !ok {
		return nil, false
	}
	root, ok := n.(*RootSection)
	return root, ok
}

// Roots iterates over the root sections in order.
func (t *Tree) Roots() iter.Seq2[string, Node] {
	return t.roots.All()
}

// MarshalJSON writes the tree as nested objects keyed by section identifier.
func (t *Tree) MarshalJSON() ([]byte, error) {
	return t.roots.MarshalJSON()
}

func encode(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}
