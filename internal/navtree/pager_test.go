package navtree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/docnav/internal/content"
)

func paginateSample(t *testing.T) ([]*content.Item, []*content.Item) {
	t.Helper()
	records := sampleRecords()
	tree, err := Build(records, Options{})
	require.NoError(t, err)

	all := append([]*content.Item{welcomeRecord()}, records...)
	out, err := Paginate(all, tree, Options{})
	require.NoError(t, err)
	return records, out
}

func TestLinearize_Order(t *testing.T) {
	tree, err := Build(sampleRecords(), Options{})
	require.NoError(t, err)

	items, err := Linearize(tree)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"Welcome",
		"Concepts", "Overview", "Glossary",
		"Guides", "Basics", "Quickstart", "Install", "FAQ", "Advanced", "Tuning",
	}, titles(items))
}

func TestLinearize_Malformed(t *testing.T) {
	tests := []struct {
		name string
		tree func() *Tree
	}{
		{"nil tree", func() *Tree { return nil }},
		{"root without item", func() *Tree {
			tr := &Tree{}
			tr.roots.Set("x", &RootSection{})
			return tr
		}},
		{"leaf without item", func() *Tree {
			tr := &Tree{}
			r := &RootSection{Item: rootItem("x", 1)}
			r.Children.Set("p", &Leaf{})
			tr.roots.Set("x", r)
			return tr
		}},
		{"nil page in section", func() *Tree {
			tr := &Tree{}
			r := &RootSection{Item: rootItem("x", 1)}
			r.Children.Set("s", &Section{Item: subItem("x", "s", 1), Pages: []*content.Item{nil}})
			tr.roots.Set("x", r)
			return tr
		}},
		{"nested root", func() *Tree {
			tr := &Tree{}
			r := &RootSection{Item: rootItem("x", 1)}
			r.Children.Set("y", &RootSection{Item: rootItem("y", 1)})
			tr.roots.Set("x", r)
			return tr
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items, err := Linearize(tt.tree())
			assert.Nil(t, items)
			var te *TraversalError
			require.ErrorAs(t, err, &te)
		})
	}
}

func TestPaginate_WelcomeSubstituted(t *testing.T) {
	_, out := paginateSample(t)

	require.NotEmpty(t, out)
	assert.Equal(t, "Welcome to the docs", out[0].Title)
	assert.Equal(t, "Start here", out[0].Excerpt)
	assert.Nil(t, out[0].NextPage)
	assert.Nil(t, out[0].PrevPage)
}

func TestPaginate_MarkersHaveNoLinks(t *testing.T) {
	_, out := paginateSample(t)

	for _, it := range out[1:] {
		if it.IsMarker() {
			assert.Nil(t, it.NextPage, it.Slug)
			assert.Nil(t, it.PrevPage, it.Slug)
		}
	}
}

func TestPaginate_Links(t *testing.T) {
	_, out := paginateSample(t)

	bySlug := map[string]*content.Item{}
	for _, it := range out {
		bySlug[it.Slug] = it
	}

	tests := []struct {
		slug string
		next *content.PageLink
		prev *content.PageLink
	}{
		{
			slug: "/docs/concepts/overview",
			next: &content.PageLink{Title: "Glossary", Href: "/docs/concepts/glossary"},
			prev: &content.PageLink{Title: "Welcome - Welcome to the docs", Href: "/docs"},
		},
		{
			// Crossing into a new root and its first subsection.
			slug: "/docs/concepts/glossary",
			next: &content.PageLink{Title: "Guides - Quickstart", Href: "/docs/guides/basics/quickstart"},
			prev: &content.PageLink{Title: "Overview", Href: "/docs/concepts/overview"},
		},
		{
			slug: "/docs/guides/basics/quickstart",
			next: &content.PageLink{Title: "Install", Href: "/docs/guides/basics/install"},
			prev: &content.PageLink{Title: "Concepts - Glossary", Href: "/docs/concepts/glossary"},
		},
		{
			slug: "/docs/guides/faq",
			next: &content.PageLink{Title: "Advanced - Tuning", Href: "/docs/guides/advanced/tuning"},
			prev: &content.PageLink{Title: "Install", Href: "/docs/guides/basics/install"},
		},
		{
			slug: "/docs/guides/advanced/tuning",
			next: nil,
			prev: &content.PageLink{Title: "Guides - FAQ", Href: "/docs/guides/faq"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.slug, func(t *testing.T) {
			it, ok := bySlug[tt.slug]
			require.True(t, ok)
			assert.Equal(t, tt.next, it.NextPage)
			assert.Equal(t, tt.prev, it.PrevPage)
		})
	}
}

func TestPaginate_NextRootLabel(t *testing.T) {
	records := []*content.Item{
		rootItem("a", 1),
		pageItem("a", "", "Last of A", 1),
		rootItem("b", 2),
		subItem("b", "s", 1),
		pageItem("b", "s", "First of B", 1),
	}
	tree, err := Build(records, Options{})
	require.NoError(t, err)

	out, err := Paginate(append(records, welcomeRecord()), tree, Options{})
	require.NoError(t, err)

	var last *content.Item
	for _, it := range out {
		if it.Title == "Last of A" {
			last = it
		}
	}
	require.NotNil(t, last)
	require.NotNil(t, last.NextPage)
	assert.Equal(t, "B - First of B", last.NextPage.Title)
	assert.Equal(t, "/docs/b/s/first-of-b", last.NextPage.Href)
}

func TestPaginate_EveryPageOnceAndLinksResolve(t *testing.T) {
	records, out := paginateSample(t)

	inputSlugs := map[string]bool{"/docs": true}
	for _, r := range records {
		inputSlugs[r.Slug] = true
	}

	seen := map[string]int{}
	for i, it := range out {
		seen[it.Slug]++
		if i == 0 || it.IsMarker() {
			continue
		}
		if it.NextPage != nil {
			assert.True(t, inputSlugs[it.NextPage.Href], it.NextPage.Href)
		}
		if it.PrevPage != nil {
			assert.True(t, inputSlugs[it.PrevPage.Href], it.PrevPage.Href)
		}
	}

	for _, r := range records {
		if !r.IsMarker() {
			assert.Equal(t, 1, seen[r.Slug], r.Slug)
		}
	}
}

func TestPaginate_DoesNotModifyInput(t *testing.T) {
	records, _ := paginateSample(t)
	for _, r := range records {
		assert.Nil(t, r.NextPage, r.Slug)
		assert.Nil(t, r.PrevPage, r.Slug)
	}
}

func TestPaginate_WelcomeNotFound(t *testing.T) {
	records := sampleRecords()
	tree, err := Build(records, Options{})
	require.NoError(t, err)

	_, err = Paginate(records, tree, Options{})
	require.ErrorIs(t, err, ErrWelcomeNotFound)
}
