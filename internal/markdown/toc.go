package markdown

import (
	"bytes"
	"regexp"
	"strconv"
	"strings"

	gmast "github.com/yuin/goldmark/ast"
)

// TOCEntry is one heading in a page's table of contents.
type TOCEntry struct {
	Content string `json:"content"`
	Slug    string `json:"slug"`
	Lvl     int    `json:"lvl"`
	I       int    `json:"i"`
	Seen    int    `json:"seen"`
}

var (
	headingIDPattern = regexp.MustCompile(`\s?\{#([\w\-]+)\}`)
	anchorPattern    = regexp.MustCompile(`\s*<a\s+name="([\w\s\-]+)"[^>]*>(?:</a>)?`)
	htmlTagPattern   = regexp.MustCompile(`</?[^>]+>`)
	punctuation      = regexp.MustCompile("[|$&`~=\\\\/@+*!?({\\[\\]})<>.,;:'\"^。？！，、；：“”【】（）〔〕［］﹃﹄‘’﹁﹂—…－～《》〈〉「」]")
)

// TOC returns the headings of body in document order. Headings with the same
// slug get a numeric suffix so every anchor is unique.
func TOC(body []byte) []TOCEntry {
	root := ParseBody(body)

	entries := make([]TOCEntry, 0)
	seen := make(map[string]int)
	_ = gmast.Walk(root, func(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}
		heading, ok := n.(*gmast.Heading)
		if !ok {
			return gmast.WalkContinue, nil
		}

		raw := headingSource(heading, body)
		slug := HeadingSlug(raw)
		count := seen[slug]
		seen[slug] = count + 1
		if count > 0 {
			slug += "-" + strconv.Itoa(count)
		}

		entries = append(entries, TOCEntry{
			Content: headingContent(raw),
			Slug:    slug,
			Lvl:     heading.Level,
			I:       len(entries),
			Seen:    count,
		})
		return gmast.WalkSkipChildren, nil
	})
	return entries
}

// HeadingSlug returns the anchor for a heading line. An explicit `{#id}` wins,
// then an `<a name="id">` anchor, then the slugified heading text.
func HeadingSlug(heading string) string {
	if m := headingIDPattern.FindStringSubmatch(heading); len(m) == 2 {
		return m[1]
	}
	if m := anchorPattern.FindStringSubmatch(heading); len(m) == 2 {
		return m[1]
	}
	return Slugify(heading)
}

// Slugify lowercases s, turns spaces into hyphens and drops markup and punctuation.
func Slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = htmlTagPattern.ReplaceAllString(s, "")
	s = strings.ReplaceAll(s, "\t", "--")
	s = strings.ReplaceAll(s, " ", "-")
	return punctuation.ReplaceAllString(s, "")
}

func headingSource(h *gmast.Heading, source []byte) string {
	var buf bytes.Buffer
	lines := h.Lines()
	for i := range lines.Len() {
		seg := lines.At(i)
		buf.Write(seg.Value(source))
	}
	return strings.TrimSpace(buf.String())
}

func headingContent(raw string) string {
	raw = headingIDPattern.ReplaceAllString(raw, "")
	raw = anchorPattern.ReplaceAllString(raw, "")
	return strings.TrimSpace(raw)
}
