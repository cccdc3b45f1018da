package convert

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	ferrors "git.home.luguber.info/inful/docnav/internal/foundation/errors"
)

// ErrInvalidContent is returned when data is neither JSON nor YAML.
var ErrInvalidContent = errors.New("invalid content: content must be JSON or YAML")

// ToJSON converts JSON or YAML data to compact JSON. JSON input is passed
// through; YAML mappings keep their key order.
func ToJSON(data []byte) ([]byte, error) {
	if json.Valid(data) {
		var buf bytes.Buffer
		if err := json.Compact(&buf, data); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidContent, err)
	}
	enc := &encoder{active: map[*yaml.Node]bool{}}
	if err := enc.node(&doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidContent, err)
	}
	return enc.buf.Bytes(), nil
}

// maxAliasExpansions bounds alias expansion so nested anchors cannot grow
// the output exponentially.
const maxAliasExpansions = 10000

type encoder struct {
	buf bytes.Buffer
	// active holds the alias targets currently being expanded.
	active   map[*yaml.Node]bool
	expanded int
}

// enter marks the target of alias as being expanded. The returned func
// clears the mark.
func (e *encoder) enter(alias *yaml.Node) (func(), error) {
	target := alias.Alias
	if target == nil {
		return nil, fmt.Errorf("unknown alias at line %d", alias.Line)
	}
	if e.active[target] {
		return nil, fmt.Errorf("alias cycle at line %d", alias.Line)
	}
	e.expanded++
	if e.expanded > maxAliasExpansions {
		return nil, fmt.Errorf("too many alias expansions at line %d", alias.Line)
	}
	e.active[target] = true
	return func() { delete(e.active, target) }, nil
}

func (e *encoder) node(n *yaml.Node) error {
	switch n.Kind {
	case 0:
		e.buf.WriteString("null")
		return nil
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			e.buf.WriteString("null")
			return nil
		}
		return e.node(n.Content[0])
	case yaml.AliasNode:
		leave, err := e.enter(n)
		if err != nil {
			return err
		}
		defer leave()
		return e.node(n.Alias)
	case yaml.SequenceNode:
		e.buf.WriteByte('[')
		for i, c := range n.Content {
			if i > 0 {
				e.buf.WriteByte(',')
			}
			if err := e.node(c); err != nil {
				return err
			}
		}
		e.buf.WriteByte(']')
		return nil
	case yaml.MappingNode:
		return e.mapping(n)
	case yaml.ScalarNode:
		var v any
		if err := n.Decode(&v); err != nil {
			return err
		}
		return writeValue(&e.buf, v)
	default:
		return fmt.Errorf("unsupported YAML node kind %d at line %d", n.Kind, n.Line)
	}
}

type mappingEntry struct {
	key   string
	value *yaml.Node
}

// mapping writes a mapping in document order. Merge keys (<<) are expanded
// in place; later explicit keys override merged ones.
func (e *encoder) mapping(n *yaml.Node) error {
	var entries []mappingEntry
	index := map[string]int{}
	set := func(key string, value *yaml.Node) {
		if i, ok := index[key]; ok {
			entries[i].value = value
			return
		}
		index[key] = len(entries)
		entries = append(entries, mappingEntry{key: key, value: value})
	}

	var collect func(m *yaml.Node) error
	collect = func(m *yaml.Node) error {
		for i := 0; i+1 < len(m.Content); i += 2 {
			k, v := m.Content[i], m.Content[i+1]
			if k.Tag == "!!merge" || (k.Kind == yaml.ScalarNode && k.Value == "<<" && k.Style == 0) {
				if err := e.merge(v, collect); err != nil {
					return err
				}
				continue
			}
			set(k.Value, v)
		}
		return nil
	}
	if err := collect(n); err != nil {
		return err
	}

	e.buf.WriteByte('{')
	for i, en := range entries {
		if i > 0 {
			e.buf.WriteByte(',')
		}
		if err := writeValue(&e.buf, en.key); err != nil {
			return err
		}
		e.buf.WriteByte(':')
		if err := e.node(en.value); err != nil {
			return err
		}
	}
	e.buf.WriteByte('}')
	return nil
}

func (e *encoder) merge(v *yaml.Node, collect func(*yaml.Node) error) error {
	if v.Kind == yaml.AliasNode {
		leave, err := e.enter(v)
		if err != nil {
			return err
		}
		defer leave()
		v = v.Alias
	}
	switch v.Kind {
	case yaml.MappingNode:
		return collect(v)
	case yaml.SequenceNode:
		for _, c := range v.Content {
			if err := e.merge(c, collect); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("merge value at line %d is not a mapping", v.Line)
	}
}

// writeValue encodes a scalar without HTML escaping.
func writeValue(buf *bytes.Buffer, v any) error {
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return err
	}
	buf.Truncate(buf.Len() - 1) // Encode appends a newline
	return nil
}

// WriteJSON reads readPath, converts it and writes compact JSON to writePath.
// Read, conversion and write failures are reported distinctly.
func WriteJSON(readPath, writePath string) error {
	//nolint:gosec // G304: paths come from configuration
	data, err := os.ReadFile(readPath)
	if err != nil {
		return ferrors.WrapError(err, ferrors.CategoryFileSystem, "error while reading file").
			WithContext("path", readPath).
			Build()
	}

	out, err := ToJSON(data)
	if err != nil {
		return ferrors.WrapError(err, ferrors.CategoryConvert, "error while conversion").
			WithContext("path", readPath).
			Build()
	}

	if err := os.WriteFile(writePath, out, 0o644); err != nil {
		return ferrors.WrapError(err, ferrors.CategoryFileSystem, "error while writing file").
			WithContext("path", writePath).
			Build()
	}
	return nil
}
