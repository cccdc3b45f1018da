package navtree

import (
	"fmt"

	"git.home.luguber.info/inful/docnav/internal/content"
)

// position is one entry of the flattened tree.
type position struct {
	item *content.Item
	// marker is set for root-section and subsection entries.
	marker bool
	// rootTitle is the title of the root section the entry belongs to.
	rootTitle string
}

// Linearize flattens the tree depth-first: every root section, then its
// children in stored order, with subsection markers ahead of their pages.
func Linearize(t *Tree) ([]*content.Item, error) {
	positions, err := walk(t)
	if err != nil {
		return nil, err
	}
	out := make([]*content.Item, len(positions))
	for i, p := range positions {
		out[i] = p.item
	}
	return out, nil
}

func walk(t *Tree) ([]position, error) {
	if t == nil {
		return nil, &TraversalError{Path: "tree", Reason: "nil tree"}
	}

	var out []position
	for key, n := range t.Roots() {
		root, ok := n.(*RootSection)
		if !ok || root == nil {
			return nil, &TraversalError{Path: key, Reason: fmt.Sprintf("expected root section, got %T", n)}
		}
		if root.Item == nil {
			return nil, &TraversalError{Path: key, Reason: "root section has no item"}
		}
		rootTitle := root.Item.Title
		out = append(out, position{item: root.Item, marker: true, rootTitle: rootTitle})

		for childKey, child := range root.Children.All() {
			path := key + "/" + childKey
			switch node := child.(type) {
			case *Leaf:
				if node == nil || node.Item == nil {
					return nil, &TraversalError{Path: path, Reason: "page has no item"}
				}
				out = append(out, position{item: node.Item, rootTitle: rootTitle})
			case *Section:
				if node == nil || node.Item == nil {
					return nil, &TraversalError{Path: path, Reason: "subsection has no item"}
				}
				out = append(out, position{item: node.Item, marker: true, rootTitle: rootTitle})
				for i, page := range node.Pages {
					if page == nil {
						return nil, &TraversalError{Path: fmt.Sprintf("%s[%d]", path, i), Reason: "nil page"}
					}
					out = append(out, position{item: page, rootTitle: rootTitle})
				}
			default:
				return nil, &TraversalError{Path: path, Reason: fmt.Sprintf("unexpected node %T", child)}
			}
		}
	}
	return out, nil
}
