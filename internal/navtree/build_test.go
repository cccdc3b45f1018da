package navtree

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/docnav/internal/content"
)

func TestBuild_EmptyInputHasWelcome(t *testing.T) {
	tree, err := Build(nil, Options{})
	require.NoError(t, err)

	assert.Equal(t, []string{"welcome"}, tree.Keys())

	data, err := json.Marshal(tree)
	require.NoError(t, err)
	assert.JSONEq(t, `{"welcome":{"item":{"title":"Welcome","slug":"/docs","weight":0,"isSection":true,"isRootSection":true,"rootSectionId":"welcome","sectionWeight":0},"children":{}}}`, string(data))
}

func TestBuild_SubsectionPagesSortedByWeight(t *testing.T) {
	records := []*content.Item{
		rootItem("a", 1),
		subItem("a", "s1", 1),
		pageItem("a", "s1", "Second", 2),
		pageItem("a", "s1", "First", 1),
	}

	tree, err := Build(records, Options{})
	require.NoError(t, err)

	assert.Equal(t, []string{"welcome", "a"}, tree.Keys())
	root, ok := tree.Root("a")
	require.True(t, ok)
	assert.Equal(t, []string{"s1"}, root.Children.Keys())

	n, ok := root.Children.Get("s1")
	require.True(t, ok)
	sec, ok := n.(*Section)
	require.True(t, ok)
	assert.Equal(t, "S1", sec.Item.Title)
	assert.Equal(t, []string{"First", "Second"}, titles(sec.Pages))
}

func TestBuild_MissingParent(t *testing.T) {
	tests := []struct {
		name   string
		record *content.Item
		parent string
	}{
		{
			name:   "subsection with unknown parent",
			record: subItem("ghost", "s", 1),
			parent: "ghost",
		},
		{
			name:   "page declaring unknown parent",
			record: &content.Item{Title: "Lost", Slug: "/docs/ghost/lost", Parent: "ghost", SectionID: "lost"},
			parent: "ghost",
		},
		{
			name:   "page with unknown root section",
			record: pageItem("nowhere", "", "Orphan", 1),
			parent: "nowhere",
		},
		{
			name:   "page without root section",
			record: &content.Item{Title: "Loose", Slug: "/docs/loose"},
			parent: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree, err := Build([]*content.Item{rootItem("a", 1), tt.record}, Options{})
			require.Error(t, err)
			assert.Nil(t, tree)

			var mpe *MissingParentError
			require.ErrorAs(t, err, &mpe)
			assert.Equal(t, tt.parent, mpe.Parent)
			assert.Equal(t, tt.record.Title, mpe.Title)
		})
	}
}

func TestBuild_DuplicateKeys(t *testing.T) {
	tests := []struct {
		name    string
		records []*content.Item
		key     string
	}{
		{
			name:    "two direct pages with one title",
			records: []*content.Item{rootItem("a", 1), pageItem("a", "", "Same", 1), {Title: "Same", Slug: "/docs/a/other", RootSectionID: "a", Weight: content.Float(2)}},
			key:     "Same",
		},
		{
			name:    "two roots with one id",
			records: []*content.Item{rootItem("a", 1), {Title: "A again", Slug: "/docs/a2", IsSection: true, IsRootSection: true, RootSectionID: "a"}},
			key:     "a",
		},
		{
			name:    "root shadowing welcome",
			records: []*content.Item{{Title: "Hi", Slug: "/docs/welcome", IsSection: true, IsRootSection: true, RootSectionID: "welcome"}},
			key:     "welcome",
		},
		{
			name:    "two subsection markers",
			records: []*content.Item{rootItem("a", 1), subItem("a", "s", 1), subItem("a", "s", 2)},
			key:     "s",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Build(tt.records, Options{})
			var dke *DuplicateKeyError
			require.ErrorAs(t, err, &dke)
			assert.Equal(t, tt.key, dke.Key)
		})
	}
}

func TestBuild_InvalidRecords(t *testing.T) {
	_, err := Build([]*content.Item{nil}, Options{})
	require.ErrorIs(t, err, ErrInvalidRecord)

	_, err = Build([]*content.Item{{Title: "Root", Slug: "/docs/r", IsRootSection: true, IsSection: true}}, Options{})
	require.ErrorIs(t, err, ErrInvalidRecord)

	_, err = Build([]*content.Item{{Title: "Floating", Slug: "/docs/f", IsSection: true}}, Options{})
	require.ErrorIs(t, err, ErrInvalidRecord)
}

func TestBuild_PagesBeforeTheirMarker(t *testing.T) {
	// Pages weigh less than their subsection, so they are placed first.
	records := []*content.Item{
		rootItem("a", 1),
		subItem("a", "late", 5),
		pageItem("a", "late", "Early page", 1),
		pageItem("a", "", "Direct", 3),
	}
	records[2].SectionTitle = "Late"

	tree, err := Build(records, Options{})
	require.NoError(t, err)

	root, _ := tree.Root("a")
	assert.Equal(t, []string{"Direct", "late"}, root.Children.Keys())

	n, _ := root.Children.Get("late")
	sec := n.(*Section)
	assert.Equal(t, "/docs/a/late", sec.Item.Slug)
	assert.False(t, sec.synthetic)
	assert.Equal(t, []string{"Early page"}, titles(sec.Pages))
}

func TestBuild_SyntheticSectionWithoutMarker(t *testing.T) {
	page := pageItem("a", "unnamed", "Only", 1)
	page.SectionTitle = "Unnamed"
	page.SectionSlug = "/docs/a/unnamed"

	tree, err := Build([]*content.Item{rootItem("a", 1), page}, Options{})
	require.NoError(t, err)

	root, _ := tree.Root("a")
	n, ok := root.Children.Get("unnamed")
	require.True(t, ok)
	sec := n.(*Section)
	assert.True(t, sec.Item.IsSection)
	assert.Equal(t, "Unnamed", sec.Item.Title)
	assert.Equal(t, "/docs/a/unnamed", sec.Item.Slug)
}

func TestBuild_WeightsMonotonic(t *testing.T) {
	tree, err := Build(sampleRecords(), Options{})
	require.NoError(t, err)

	assert.Equal(t, []string{"welcome", "concepts", "guides"}, tree.Keys())

	for key, n := range tree.Roots() {
		root := n.(*RootSection)
		var last float64
		for childKey, child := range root.Children.All() {
			w, ok := child.Record().WeightValue()
			require.True(t, ok, "%s/%s", key, childKey)
			assert.GreaterOrEqual(t, w, last, "%s/%s", key, childKey)
			last = w

			sec, isSection := child.(*Section)
			if !isSection {
				continue
			}
			var lastPage float64
			for _, p := range sec.Pages {
				pw, _ := p.WeightValue()
				assert.GreaterOrEqual(t, pw, lastPage, p.Title)
				lastPage = pw
			}
		}
	}

	guides, _ := tree.Root("guides")
	// advanced is opened by its weight 1 page but sorts by its own weight.
	assert.Equal(t, []string{"basics", "FAQ", "advanced"}, guides.Children.Keys())
}

func TestBuild_Deterministic(t *testing.T) {
	first, err := Build(sampleRecords(), Options{})
	require.NoError(t, err)
	second, err := Build(sampleRecords(), Options{})
	require.NoError(t, err)

	a, err := json.Marshal(first)
	require.NoError(t, err)
	b, err := json.Marshal(second)
	require.NoError(t, err)
	assert.Equal(t, string(a), string(b))
}

func TestBuild_DoesNotModifyInput(t *testing.T) {
	records := specRecords()
	_, err := Build(records, Options{})
	require.NoError(t, err)

	for _, r := range records {
		assert.Empty(t, r.Href, r.Slug)
	}
}

func specRecords() []*content.Item {
	next := pageItem("reference", "specification", "3.0.0 (Pre-release)", 100)
	next.IsPrerelease = true
	return []*content.Item{
		rootItem("reference", 3),
		subItem("reference", "specification", 1),
		next,
		pageItem("reference", "specification", "2.1.0", 99),
		pageItem("reference", "specification", "2.0.0", 98),
		pageItem("reference", "", "Bindings", 2),
	}
}

func TestBuild_SpecificationPointsAtLatestStable(t *testing.T) {
	tree, err := Build(specRecords(), Options{})
	require.NoError(t, err)

	root, _ := tree.Root("reference")
	n, _ := root.Children.Get("specification")
	sec := n.(*Section)

	assert.Equal(t, []string{"2.0.0", "2.1.0", "3.0.0 (Pre-release)"}, titles(sec.Pages))
	assert.Equal(t, "/docs/reference/specification/2.0.0", sec.Item.Href)
}

func TestBuild_SpecificationHrefEdgeCases(t *testing.T) {
	t.Run("group is the only child of the root", func(t *testing.T) {
		records := []*content.Item{
			rootItem("reference", 1),
			subItem("reference", "specification", 1),
			pageItem("reference", "specification", "2.1.0", 1),
			pageItem("reference", "specification", "2.0.0", 2),
		}
		tree, err := Build(records, Options{})
		require.NoError(t, err)

		root, _ := tree.Root("reference")
		n, _ := root.Children.Get("specification")
		assert.Empty(t, n.Record().Href)
	})

	t.Run("single version next to a sibling", func(t *testing.T) {
		records := []*content.Item{
			rootItem("reference", 1),
			subItem("reference", "specification", 1),
			pageItem("reference", "specification", "2.0.0", 1),
			subItem("reference", "bindings", 2),
			pageItem("reference", "bindings", "Go", 1),
		}
		tree, err := Build(records, Options{})
		require.NoError(t, err)

		root, _ := tree.Root("reference")
		n, _ := root.Children.Get("specification")
		assert.Equal(t, "/docs/reference/specification/2.0.0", n.Record().Href)
	})

	t.Run("only prereleases", func(t *testing.T) {
		a := pageItem("reference", "specification", "3.0.0", 1)
		a.IsPrerelease = true
		b := pageItem("reference", "specification", "4.0.0", 2)
		b.IsPrerelease = true
		records := []*content.Item{
			rootItem("reference", 1),
			subItem("reference", "specification", 1),
			a, b,
			pageItem("reference", "", "Bindings", 2),
		}

		tree, err := Build(records, Options{})
		require.NoError(t, err)

		root, _ := tree.Root("reference")
		n, _ := root.Children.Get("specification")
		assert.Empty(t, n.Record().Href)
	})

	t.Run("custom group names", func(t *testing.T) {
		records := []*content.Item{
			rootItem("api", 1),
			subItem("api", "versions", 1),
			pageItem("api", "versions", "v2", 1),
			pageItem("api", "versions", "v1", 2),
			pageItem("api", "", "Overview", 2),
		}
		tree, err := Build(records, Options{ReferenceRoot: "api", SpecificationGroup: "versions"})
		require.NoError(t, err)

		root, _ := tree.Root("api")
		n, _ := root.Children.Get("versions")
		assert.Equal(t, "/docs/api/versions/v2", n.Record().Href)
	})
}

func TestTree_JSONKeepsOrder(t *testing.T) {
	tree, err := Build(sampleRecords(), Options{})
	require.NoError(t, err)

	data, err := json.Marshal(tree)
	require.NoError(t, err)
	s := string(data)

	assert.Less(t, indexOf(t, s, `"welcome":`), indexOf(t, s, `"concepts":`))
	assert.Less(t, indexOf(t, s, `"concepts":`), indexOf(t, s, `"guides":`))
	assert.Less(t, indexOf(t, s, `"basics":`), indexOf(t, s, `"FAQ":`))
	assert.Less(t, indexOf(t, s, `"FAQ":`), indexOf(t, s, `"advanced":`))

	var decoded map[string]map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &decoded))
	var guidesChildren map[string]map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(decoded["guides"]["children"], &guidesChildren))

	var pages []map[string]any
	require.NoError(t, json.Unmarshal(guidesChildren["basics"]["children"], &pages))
	require.Len(t, pages, 2)
	assert.Equal(t, "Quickstart", pages[0]["title"])

	_, hasChildren := guidesChildren["FAQ"]["children"]
	assert.False(t, hasChildren)
}

func indexOf(t *testing.T, s, sub string) int {
	t.Helper()
	i := strings.Index(s, sub)
	require.GreaterOrEqual(t, i, 0, "%q not found", sub)
	return i
}
