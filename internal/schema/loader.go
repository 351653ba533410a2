package schema

import (
	"errors"
	"fmt"
	"io"
	"os"

	orderedmap "github.com/wk8/go-ordered-map/v2"
	"gopkg.in/yaml.v3"

	"csv2json/primitive"
)

const (
	keyFields      = "fields"
	keyDisplayName = "displayName"
	keyRoot        = "root"
)

// entry is one key of a parsed document before it is turned into a schema.
// value holds a string, a nested []entry or a literal for anything else.
type entry struct {
	key   string
	value any
	line  int
}

// literal is a non-string scalar, kept for error messages.
type literal struct {
	raw string
}

// LoadFile reads and parses the schema file at path.
func LoadFile(path string) (*Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, &SchemaParseError{Path: path, Kind: ErrNotFound, Err: err}
		}

		return nil, fmt.Errorf("failed to read schema file %s: %w", path, err)
	}

	s, err := parse(path, data)
	if err != nil {
		return nil, err
	}

	s.Path = path

	return s, nil
}

// Load parses a schema from r.
func Load(r io.Reader) (*Schema, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema: %w", err)
	}

	return parse("", data)
}

// Parse parses schema text. YAML is tried first; when it does not yield a
// valid schema the text is read as a legacy literal dictionary.
func Parse(data []byte) (*Schema, error) {
	return parse("", data)
}

func parse(path string, data []byte) (*Schema, error) {
	s, yamlErr := fromEntries(parseYAML(data))
	if yamlErr == nil {
		s.Format = FormatStructured
		return s, nil
	}

	s, legacyErr := fromEntries(parseLegacy(path, data))
	if legacyErr == nil {
		s.Format = FormatLegacy
		return s, nil
	}

	switch {
	case errors.Is(yamlErr, ErrSyntax) && errors.Is(legacyErr, ErrSyntax):
		return nil, &SchemaParseError{
			Path: path,
			Kind: ErrSyntax,
			Err:  errors.Join(unwrapped(yamlErr), unwrapped(legacyErr)),
		}
	case errors.Is(yamlErr, ErrSyntax):
		return nil, withPath(legacyErr, path)
	default:
		return nil, withPath(yamlErr, path)
	}
}

func fromEntries(entries []entry, err error) (*Schema, error) {
	if err != nil {
		return nil, err
	}

	return build(entries)
}

func parseYAML(data []byte) ([]entry, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &SchemaParseError{Kind: ErrSyntax, Err: fmt.Errorf("yaml: %w", err)}
	}

	root := &doc
	if root.Kind == yaml.DocumentNode && len(root.Content) > 0 {
		root = root.Content[0]
	}

	root = resolveAlias(root)
	if root.Kind != yaml.MappingNode {
		return nil, &SchemaParseError{Kind: ErrShape, Err: fmt.Errorf("expected a mapping at line %d", root.Line)}
	}

	return yamlEntries(root)
}

func yamlEntries(node *yaml.Node) ([]entry, error) {
	entries := make([]entry, 0, len(node.Content)/2)

	for i := 0; i+1 < len(node.Content); i += 2 {
		key := resolveAlias(node.Content[i])
		value := resolveAlias(node.Content[i+1])

		if key.Kind != yaml.ScalarNode {
			return nil, &SchemaParseError{Kind: ErrShape, Err: fmt.Errorf("non-scalar key at line %d", key.Line)}
		}

		e := entry{key: key.Value, line: key.Line}

		switch value.Kind {
		case yaml.MappingNode:
			nested, err := yamlEntries(value)
			if err != nil {
				return nil, err
			}

			e.value = nested
		case yaml.ScalarNode:
			if value.Tag == "!!str" {
				e.value = value.Value
			} else {
				e.value = literal{raw: value.Value}
			}
		default:
			e.value = literal{raw: fmt.Sprintf("<%s>", kindName(value.Kind))}
		}

		entries = append(entries, e)
	}

	return entries, nil
}

func resolveAlias(n *yaml.Node) *yaml.Node {
	for n.Kind == yaml.AliasNode && n.Alias != nil {
		n = n.Alias
	}

	return n
}

func kindName(k yaml.Kind) string {
	switch k {
	case yaml.SequenceNode:
		return "sequence"
	case yaml.MappingNode:
		return "mapping"
	case yaml.ScalarNode:
		return "scalar"
	default:
		return "empty"
	}
}

// build turns parsed entries into a schema, applying the "fields" rule.
func build(entries []entry) (*Schema, error) {
	s := &Schema{}
	fields := entries

	if f, ok := lookup(entries, keyFields); ok {
		nested, ok := f.value.([]entry)
		if !ok {
			return nil, &SchemaParseError{Kind: ErrShape, Err: fmt.Errorf("%q must be a mapping (line %d)", keyFields, f.line)}
		}

		fields = nested
		s.DisplayName, _ = stringValue(entries, keyDisplayName)
		s.Root, _ = stringValue(entries, keyRoot)
	} else {
		fields = make([]entry, 0, len(entries))

		for _, e := range entries {
			if isMetadata(e) {
				if e.key == keyDisplayName {
					s.DisplayName = e.value.(string)
				} else {
					s.Root = e.value.(string)
				}

				continue
			}

			fields = append(fields, e)
		}
	}

	s.Fields = orderedmap.New[string, primitive.KindEnum](len(fields))

	for _, e := range fields {
		tag, ok := e.value.(string)
		if !ok {
			return nil, &SchemaParseError{
				Kind: ErrShape,
				Err:  fmt.Errorf("field %q (line %d): type must be a tag string, got %s", e.key, e.line, describe(e.value)),
			}
		}

		kind, err := primitive.ParseKind(tag)
		if err != nil {
			return nil, &SchemaParseError{Kind: ErrUnknownType, Err: fmt.Errorf("field %q (line %d): %w", e.key, e.line, err)}
		}

		s.Fields.Set(e.key, kind)
	}

	return s, nil
}

// isMetadata reports whether a top-level entry of a schema without a
// "fields" key is metadata. A metadata key holding a valid type tag is
// treated as a field.
func isMetadata(e entry) bool {
	if e.key != keyDisplayName && e.key != keyRoot {
		return false
	}

	v, ok := e.value.(string)
	if !ok {
		return false
	}

	_, err := primitive.ParseKind(v)

	return err != nil
}

func lookup(entries []entry, key string) (entry, bool) {
	for _, e := range entries {
		if e.key == key {
			return e, true
		}
	}

	return entry{}, false
}

func stringValue(entries []entry, key string) (string, bool) {
	e, ok := lookup(entries, key)
	if !ok {
		return "", false
	}

	s, ok := e.value.(string)

	return s, ok
}

func describe(v any) string {
	switch x := v.(type) {
	case []entry:
		return "a mapping"
	case literal:
		return x.raw
	default:
		return fmt.Sprintf("%v", v)
	}
}

func withPath(err error, path string) error {
	var spe *SchemaParseError
	if errors.As(err, &spe) && spe.Path == "" {
		spe.Path = path
	}

	return err
}

func unwrapped(err error) error {
	var spe *SchemaParseError
	if errors.As(err, &spe) && spe.Err != nil {
		return spe.Err
	}

	return err
}
