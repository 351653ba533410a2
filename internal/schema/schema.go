package schema

import (
	"iter"

	"github.com/davecgh/go-spew/spew"
	orderedmap "github.com/wk8/go-ordered-map/v2"

	"csv2json/primitive"
)

// Format tells which syntax a schema was read from.
type Format int

const (
	FormatStructured Format = iota + 1
	FormatLegacy
)

func (f Format) String() string {
	switch f {
	case FormatStructured:
		return "structured"
	case FormatLegacy:
		return "legacy"
	default:
		return "unknown"
	}
}

// Schema is an ordered mapping of field names to scalar kinds plus the
// optional display metadata.
type Schema struct {
	Fields      *orderedmap.OrderedMap[string, primitive.KindEnum]
	DisplayName string
	Root        string
	Format      Format
	// Path is the file the schema was loaded from, empty for in-memory input.
	Path string
}

// Field is a single schema entry.
type Field struct {
	Name string
	Kind primitive.KindEnum
}

// New builds a structured schema from fields in order.
func New(fields ...Field) *Schema {
	s := &Schema{
		Fields: orderedmap.New[string, primitive.KindEnum](len(fields)),
		Format: FormatStructured,
	}

	for _, f := range fields {
		s.Fields.Set(f.Name, f.Kind)
	}

	return s
}

func (s *Schema) Len() int {
	if s == nil || s.Fields == nil {
		return 0
	}

	return s.Fields.Len()
}

// Kind returns the kind declared for name.
func (s *Schema) Kind(name string) (primitive.KindEnum, bool) {
	if s.Len() == 0 {
		return 0, false
	}

	return s.Fields.Get(name)
}

// All iterates fields in declaration order.
func (s *Schema) All() iter.Seq2[string, primitive.KindEnum] {
	return func(yield func(string, primitive.KindEnum) bool) {
		if s.Len() == 0 {
			return
		}

		for p := s.Fields.Oldest(); p != nil; p = p.Next() {
			if !yield(p.Key, p.Value) {
				return
			}
		}
	}
}

// Names returns the field names in declaration order.
func (s *Schema) Names() []string {
	names := make([]string, 0, s.Len())
	for name := range s.All() {
		names = append(names, name)
	}

	return names
}

// List returns the fields in declaration order.
func (s *Schema) List() []Field {
	fields := make([]Field, 0, s.Len())
	for name, kind := range s.All() {
		fields = append(fields, Field{Name: name, Kind: kind})
	}

	return fields
}

var dumper = spew.ConfigState{
	Indent:                  "  ",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	DisableMethods:          true,
}

// Dump renders the schema for debug logs.
func (s *Schema) Dump() string {
	return dumper.Sdump(struct {
		Path        string
		Format      string
		DisplayName string
		Root        string
		Fields      []Field
	}{s.Path, s.Format.String(), s.DisplayName, s.Root, s.List()})
}
