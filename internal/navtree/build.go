package navtree

import (
	"cmp"
	"fmt"
	"slices"

	"git.home.luguber.info/inful/docnav/internal/content"
)

// Build assembles records into a navigation tree. Records are copied, so the
// inputs are never modified.
//
// Root sections are registered first, then everything else by ascending
// weight with section markers ahead of pages of equal weight. A page lands in
// the subsection named by its sectionId, or directly under its root keyed by
// its title. Children of every root and pages of every subsection end up
// sorted by weight. Any record that cannot be placed fails the whole build.
func Build(records []*content.Item, opts Options) (*Tree, error) {
	opts = opts.withDefaults()

	sorted := make([]*content.Item, 0, len(records))
	for i, r := range records {
		if r == nil {
			return nil, fmt.Errorf("%w: record %d is nil", ErrInvalidRecord, i)
		}
		sorted = append(sorted, r.Clone())
	}
	slices.SortStableFunc(sorted, compareBuildOrder)

	t := &Tree{}
	t.roots.Set(opts.WelcomeKey, &RootSection{Item: welcomeItem(opts)})

	for _, it := range sorted {
		if err := t.place(it); err != nil {
			return nil, err
		}
	}

	for key, n := range t.Roots() {
		root := n.(*RootSection)
		root.Children.sortStable(func(a, b Node) int {
			return compareWeight(a.Record(), b.Record())
		})
		for _, child := range root.Children.All() {
			if sec, ok := child.(*Section); ok {
				slices.SortStableFunc(sec.Pages, compareWeight)
			}
		}
		if key == opts.ReferenceRoot {
			pointToLatestStable(root, opts.SpecificationGroup)
		}
	}

	return t, nil
}

func welcomeItem(opts Options) *content.Item {
	return &content.Item{
		Title:         opts.WelcomeTitle,
		Weight:        content.Float(0),
		IsRootSection: true,
		IsSection:     true,
		RootSectionID: opts.WelcomeKey,
		SectionWeight: content.Float(0),
		Slug:          opts.DocsRoot,
	}
}

func (t *Tree) place(it *content.Item) error {
	switch {
	case it.IsRootSection:
		return t.placeRoot(it)
	case it.Parent != "":
		return t.placeSection(it)
	case !it.IsSection:
		return t.placePage(it)
	default:
		return fmt.Errorf("%w: section %q (%s) is neither a root section nor has a parent", ErrInvalidRecord, it.Title, it.Slug)
	}
}

func (t *Tree) placeRoot(it *content.Item) error {
	key := it.RootSectionID
	if key == "" {
		return fmt.Errorf("%w: root section %q (%s) has no rootSectionId", ErrInvalidRecord, it.Title, it.Slug)
	}
	if existing, ok := t.roots.Get(key); ok {
		return &DuplicateKeyError{Key: key, Slug: it.Slug, Existing: existing.Record().Slug}
	}
	t.roots.Set(key, &RootSection{Item: it})
	return nil
}

func (t *Tree) placeSection(it *content.Item) error {
	root, ok := t.Root(it.Parent)
	if !ok {
		return &MissingParentError{Parent: it.Parent, Title: it.Title, Slug: it.Slug}
	}
	key := it.SectionID
	if key == "" {
		return fmt.Errorf("%w: subsection %q (%s) has no sectionId", ErrInvalidRecord, it.Title, it.Slug)
	}

	existing, ok := root.Children.Get(key)
	if !ok {
		root.Children.Set(key, &Section{Item: it})
		return nil
	}
	// Pages sorted ahead of their marker already opened the slot.
	if sec, isSection := existing.(*Section); isSection && sec.synthetic {
		sec.Item = it
		sec.synthetic = false
		return nil
	}
	return &DuplicateKeyError{Root: it.Parent, Key: key, Slug: it.Slug, Existing: existing.Record().Slug}
}

func (t *Tree) placePage(it *content.Item) error {
	root, ok := t.Root(it.RootSectionID)
	if !ok {
		return &MissingParentError{Parent: it.RootSectionID, Title: it.Title, Slug: it.Slug}
	}

	if it.SectionID == "" {
		if existing, ok := root.Children.Get(it.Title); ok {
			return &DuplicateKeyError{Root: it.RootSectionID, Key: it.Title, Slug: it.Slug, Existing: existing.Record().Slug}
		}
		root.Children.Set(it.Title, &Leaf{Item: it})
		return nil
	}

	existing, ok := root.Children.Get(it.SectionID)
	if !ok {
		sec := &Section{Item: syntheticSection(it), synthetic: true}
		root.Children.Set(it.SectionID, sec)
		existing = sec
	}
	sec, isSection := existing.(*Section)
	if !isSection {
		return &DuplicateKeyError{Root: it.RootSectionID, Key: it.SectionID, Slug: it.Slug, Existing: existing.Record().Slug}
	}
	sec.Pages = append(sec.Pages, it)
	return nil
}

// syntheticSection stands in for a subsection marker until the real record
// is placed, built from what the page knows about its section.
func syntheticSection(page *content.Item) *content.Item {
	title := page.SectionTitle
	if title == "" {
		title = page.SectionID
	}
	return &content.Item{
		Title:     title,
		Slug:      page.SectionSlug,
		Weight:    page.Weight,
		IsSection: true,
		SectionID: page.SectionID,
		Parent:    page.RootSectionID,
	}
}

// pointToLatestStable sets the href of a versioned group to its first
// non-prerelease page, so the group label opens the current version. It
// applies only when the root holds more than one child.
func pointToLatestStable(root *RootSection, group string) {
	if root.Children.Len() <= 1 {
		return
	}
	n, ok := root.Children.Get(group)
	if !ok {
		return
	}
	sec, ok := n.(*Section)
	if !ok {
		return
	}
	for _, p := range sec.Pages {
		if !p.IsPrerelease {
			sec.Item.Href = p.Slug
			return
		}
	}
}

// compareBuildOrder orders root sections first, then by ascending weight,
// then section markers ahead of pages.
func compareBuildOrder(a, b *content.Item) int {
	if a.IsRootSection != b.IsRootSection {
		if a.IsRootSection {
			return -1
		}
		return 1
	}
	if c := compareWeight(a, b); c != 0 {
		return c
	}
	if a.IsSection != b.IsSection {
		if a.IsSection {
			return -1
		}
		return 1
	}
	return 0
}

// compareWeight orders by ascending weight. Records without a weight sort
// after all weighted ones.
func compareWeight(a, b *content.Item) int {
	wa, okA := a.WeightValue()
	wb, okB := b.WeightValue()
	switch {
	case okA && okB:
		return cmp.Compare(wa, wb)
	case okA:
		return -1
	case okB:
		return 1
	default:
		return 0
	}
}
