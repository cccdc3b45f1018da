// Package frontmatter splits YAML frontmatter from markdown content and decodes it.
package frontmatter

import (
	"bytes"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// ErrMissingClosingDelimiter indicates the document opened a frontmatter block
// with `---` but never closed it.
var ErrMissingClosingDelimiter = errors.New("yaml frontmatter start delimiter found but closing delimiter is missing")

// Document is a markdown file split into its frontmatter and body.
type Document struct {
	// Raw is the YAML between the delimiters, without them.
	Raw []byte
	// Body is everything after the closing delimiter.
	Body []byte
	// Has reports whether the file opened with a frontmatter block at all.
	Has bool
	// Newline is the line ending detected on the first line.
	Newline string
}

// Split separates `---` delimited YAML frontmatter from the body. Content
// without an opening delimiter is returned entirely as Body.
func Split(content []byte) (Document, error) {
	nl := detectNewline(content)
	doc := Document{Body: content, Newline: nl}

	delim := []byte("---" + nl)
	if !bytes.HasPrefix(content, delim) {
		return doc, nil
	}
	rest := content[len(delim):]

	// Empty block: "---\n---\n".
	if bytes.HasPrefix(rest, delim) {
		doc.Raw = []byte{}
		doc.Body = rest[len(delim):]
		doc.Has = true
		return doc, nil
	}

	closing := []byte(nl + "---")
	idx := bytes.Index(rest, closing)
	for idx >= 0 {
		after := rest[idx+len(closing):]
		// The closing delimiter must sit on its own line.
		if len(after) == 0 || bytes.HasPrefix(after, []byte(nl)) {
			doc.Raw = rest[:idx+len(nl)]
			doc.Body = bytes.TrimPrefix(after, []byte(nl))
			doc.Has = true
			return doc, nil
		}
		next := bytes.Index(after, closing)
		if next < 0 {
			break
		}
		idx += len(closing) + next
	}
	return Document{Newline: nl}, ErrMissingClosingDelimiter
}

// Fields parses the frontmatter into a generic map. A document without
// frontmatter yields an empty map.
func (d Document) Fields() (map[string]any, error) {
	return ParseYAML(d.Raw)
}

// Decode unmarshals the frontmatter into out.
func (d Document) Decode(out any) error {
	if len(bytes.TrimSpace(d.Raw)) == 0 {
		return nil
	}
	if err := yaml.Unmarshal(d.Raw, out); err != nil {
		return fmt.Errorf("decode frontmatter: %w", err)
	}
	return nil
}

// ParseYAML parses raw YAML frontmatter (without delimiters) into a map.
func ParseYAML(raw []byte) (map[string]any, error) {
	fields := map[string]any{}
	if len(bytes.TrimSpace(raw)) == 0 {
		return fields, nil
	}
	if err := yaml.Unmarshal(raw, &fields); err != nil {
		return nil, err
	}
	if fields == nil {
		fields = map[string]any{}
	}
	return fields, nil
}

func detectNewline(content []byte) string {
	if i := bytes.IndexByte(content, '\n'); i > 0 && content[i-1] == '\r' {
		return "\r\n"
	}
	return "\n"
}
