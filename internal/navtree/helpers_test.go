package navtree

import (
	"strings"

	"git.home.luguber.info/inful/docnav/internal/content"
)

func rootItem(id string, weight float64) *content.Item {
	return &content.Item{
		Title:         strings.ToUpper(id[:1]) + id[1:],
		Slug:          "/docs/" + id,
		Weight:        content.Float(weight),
		IsSection:     true,
		IsRootSection: true,
		RootSectionID: id,
	}
}

func subItem(parent, id string, weight float64) *content.Item {
	return &content.Item{
		Title:     strings.ToUpper(id[:1]) + id[1:],
		Slug:      "/docs/" + parent + "/" + id,
		Weight:    content.Float(weight),
		IsSection: true,
		Parent:    parent,
		SectionID: id,
	}
}

func pageItem(rootID, sectionID, title string, weight float64) *content.Item {
	slug := "/docs/" + rootID
	if sectionID != "" {
		slug += "/" + sectionID
	}
	slug += "/" + strings.ReplaceAll(strings.ToLower(title), " ", "-")
	return &content.Item{
		Title:         title,
		Slug:          slug,
		Weight:        content.Float(weight),
		RootSectionID: rootID,
		SectionID:     sectionID,
	}
}

func welcomeRecord() *content.Item {
	return &content.Item{Title: "Welcome to the docs", Slug: "/docs", Excerpt: "Start here", IsIndex: true}
}

func titles(items []*content.Item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Title
	}
	return out
}

// sampleRecords is a small docs site: two roots, subsections, direct pages
// and equal weights.
func sampleRecords() []*content.Item {
	return []*content.Item{
		pageItem("guides", "basics", "Install", 2),
		rootItem("guides", 2),
		pageItem("concepts", "", "Overview", 1),
		subItem("guides", "basics", 1),
		pageItem("guides", "basics", "Quickstart", 1),
		rootItem("concepts", 1),
		pageItem("concepts", "", "Glossary", 5),
		subItem("guides", "advanced", 3),
		pageItem("guides", "advanced", "Tuning", 1),
		pageItem("guides", "", "FAQ", 2),
	}
}
