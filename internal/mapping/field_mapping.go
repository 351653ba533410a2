package mapping

import (
	"fmt"
	"iter"

	orderedmap "github.com/wk8/go-ordered-map/v2"
	"gopkg.in/yaml.v3"
)

// FieldMapping is an ordered target → source mapping.
type FieldMapping struct {
	m *orderedmap.OrderedMap[string, string]
}

// Pair is a single target/source entry.
type Pair struct {
	Target string
	Source string
}

func New() *FieldMapping {
	return &FieldMapping{m: orderedmap.New[string, string]()}
}

// FromPairs builds a mapping in pair order.
func FromPairs(pairs ...Pair) *FieldMapping {
	fm := New()
	for _, p := range pairs {
		fm.Set(p.Target, p.Source)
	}

	return fm
}

// FromMap builds a mapping from targets in the given order, taking each
// source from m. Targets missing from m are skipped.
func FromMap(m map[string]string, order ...string) *FieldMapping {
	fm := New()

	for _, target := range order {
		if source, ok := m[target]; ok {
			fm.Set(target, source)
		}
	}

	return fm
}

func (fm *FieldMapping) init() {
	if fm.m == nil {
		fm.m = orderedmap.New[string, string]()
	}
}

// Set maps target to source, replacing an earlier source for target.
func (fm *FieldMapping) Set(target, source string) {
	fm.init()
	fm.m.Set(target, source)
}

func (fm *FieldMapping) Get(target string) (string, bool) {
	if fm.Len() == 0 {
		return "", false
	}

	return fm.m.Get(target)
}

func (fm *FieldMapping) Delete(target string) bool {
	if fm.Len() == 0 {
		return false
	}

	_, ok := fm.m.Delete(target)

	return ok
}

func (fm *FieldMapping) Len() int {
	if fm == nil || fm.m == nil {
		return 0
	}

	return fm.m.Len()
}

// All iterates target, source entries in order.
func (fm *FieldMapping) All() iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		if fm.Len() == 0 {
			return
		}

		for p := fm.m.Oldest(); p != nil; p = p.Next() {
			if !yield(p.Key, p.Value) {
				return
			}
		}
	}
}

func (fm *FieldMapping) Targets() []string {
	targets := make([]string, 0, fm.Len())
	for target := range fm.All() {
		targets = append(targets, target)
	}

	return targets
}

func (fm *FieldMapping) Pairs() []Pair {
	pairs := make([]Pair, 0, fm.Len())
	for target, source := range fm.All() {
		pairs = append(pairs, Pair{Target: target, Source: source})
	}

	return pairs
}

// MarshalJSON encodes the mapping as a JSON object in entry order.
func (fm *FieldMapping) MarshalJSON() ([]byte, error) {
	fm.init()
	return fm.m.MarshalJSON()
}

func (fm *FieldMapping) UnmarshalJSON(data []byte) error {
	fm.m = orderedmap.New[string, string]()
	return fm.m.UnmarshalJSON(data)
}

// MarshalYAML encodes the mapping as a YAML mapping in entry order.
func (fm *FieldMapping) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}

	for target, source := range fm.All() {
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: target},
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: source},
		)
	}

	return node, nil
}

func (fm *FieldMapping) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: mapping must be a YAML mapping", value.Line)
	}

	fm.m = orderedmap.New[string, string](len(value.Content) / 2)

	for i := 0; i+1 < len(value.Content); i += 2 {
		key, val := value.Content[i], value.Content[i+1]
		if key.Kind != yaml.ScalarNode || val.Kind != yaml.ScalarNode {
			return fmt.Errorf("line %d: mapping entries must be plain strings", key.Line)
		}

		fm.m.Set(key.Value, val.Value)
	}

	return nil
}
