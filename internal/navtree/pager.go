package navtree

import (
	"git.home.luguber.info/inful/docnav/internal/content"
)

// Paginate flattens the tree and links every page to the nearest pages
// before and after it. The first entry is replaced by the record in records
// whose slug is the docs root.
//
// Markers never get links and are never link targets. When a link skips over
// markers its title names what the reader crosses: the marker being entered
// for next links, the root section being left for previous links. The
// returned items are copies.
func Paginate(records []*content.Item, t *Tree, opts Options) ([]*content.Item, error) {
	opts = opts.withDefaults()

	positions, err := walk(t)
	if err != nil {
		return nil, err
	}
	if len(positions) == 0 {
		return nil, &TraversalError{Path: "tree", Reason: "empty tree"}
	}

	var welcome *content.Item
	for _, r := range records {
		if r != nil && r.Slug == opts.DocsRoot {
			welcome = r
			break
		}
	}
	if welcome == nil {
		return nil, ErrWelcomeNotFound
	}

	out := make([]*content.Item, len(positions))
	for i, p := range positions {
		src := p.item
		if i == 0 {
			src = welcome
		}
		it := src.Clone()
		it.NextPage, it.PrevPage = nil, nil
		out[i] = it
	}

	// The welcome page has content, so it is a valid target.
	isPage := func(i int) bool { return i == 0 || !positions[i].marker }

	for i := 1; i < len(out); i++ {
		if !isPage(i) {
			continue
		}

		for j := i + 1; j < len(out); j++ {
			if !isPage(j) {
				continue
			}
			title := out[j].Title
			if j != i+1 {
				title = out[i+1].Title + " - " + title
			}
			out[i].NextPage = &content.PageLink{Title: title, Href: out[j].Slug}
			break
		}

		for j := i - 1; j >= 0; j-- {
			if !isPage(j) {
				continue
			}
			title := out[j].Title
			if j != i-1 {
				title = positions[j].rootTitle + " - " + title
			}
			out[i].PrevPage = &content.PageLink{Title: title, Href: out[j].Slug}
			break
		}
	}

	return out, nil
}
