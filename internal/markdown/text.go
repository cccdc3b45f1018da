package markdown

import (
	"math"
	"strings"

	gmast "github.com/yuin/goldmark/ast"
)

// ExcerptLength is the number of characters kept for generated excerpts.
const ExcerptLength = 200

const wordsPerMinute = 200

// PlainText renders body without markdown syntax. Blocks are separated by
// newlines; images and raw HTML are dropped.
func PlainText(body []byte) string {
	root := ParseBody(body)

	var blocks []string
	var cur strings.Builder
	flush := func() {
		if s := strings.TrimSpace(cur.String()); s != "" {
			blocks = append(blocks, s)
		}
		cur.Reset()
	}

	_ = gmast.Walk(root, func(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
		switch node := n.(type) {
		case *gmast.Image, *gmast.HTMLBlock, *gmast.RawHTML:
			return gmast.WalkSkipChildren, nil
		case *gmast.FencedCodeBlock, *gmast.CodeBlock:
			if entering {
				lines := node.Lines()
				for i := range lines.Len() {
					seg := lines.At(i)
					cur.Write(seg.Value(body))
				}
				flush()
			}
			return gmast.WalkSkipChildren, nil
		case *gmast.Text:
			if entering {
				cur.Write(node.Segment.Value(body))
				if node.SoftLineBreak() || node.HardLineBreak() {
					cur.WriteByte(' ')
				}
			}
		case *gmast.String:
			if entering {
				cur.Write(node.Value)
			}
		default:
			if !entering && n.Type() == gmast.TypeBlock {
				flush()
			}
		}
		return gmast.WalkContinue, nil
	})
	flush()

	return strings.Join(blocks, "\n")
}

// Excerpt returns the first ExcerptLength characters of the plain text of body.
func Excerpt(body []byte) string {
	runes := []rune(PlainText(body))
	if len(runes) > ExcerptLength {
		runes = runes[:ExcerptLength]
	}
	return string(runes)
}

// ReadingTime returns the estimated reading time of body in whole minutes,
// rounded up.
func ReadingTime(body []byte) int {
	words := len(strings.Fields(PlainText(body)))
	return int(math.Ceil(float64(words) / wordsPerMinute))
}
