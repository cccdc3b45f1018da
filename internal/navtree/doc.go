// Package navtree assembles content records into a weight-sorted navigation
// tree, flattens the tree depth-first and links every page to its neighbours.
//
// The tree has three levels: root sections, then subsections or pages keyed
// under a root, then pages inside a subsection. A synthetic welcome root is
// always present and always first.
package navtree
