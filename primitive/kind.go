package primitive

import (
	"fmt"
	"math"
	"reflect"
	"strings"
)

//go:generate go tool stringer -type=KindEnum -output=kind_string.go

type KindEnum int

const (
	_ KindEnum = iota // skip zero value, use it as a default (invalid) value for KindEnum

	KindString
	KindInt
	KindFloat
	KindBool

	// KindTotal is a constant that represents the total number of kinds defined
	KindTotal = int(iota)
)

// tags holds the canonical schema tag of every kind.
var tags = map[KindEnum]string{
	KindString: "str",
	KindInt:    "int",
	KindFloat:  "float",
	KindBool:   "bool",
}

// aliases maps lower-cased spellings seen in schema files to their kind.
// Canonical tags are included so lookups need a single map.
var aliases = map[string]KindEnum{
	"str":     KindString,
	"string":  KindString,
	"object":  KindString,
	"text":    KindString,
	"int":     KindInt,
	"integer": KindInt,
	"int32":   KindInt,
	"int64":   KindInt,
	"float":   KindFloat,
	"float32": KindFloat,
	"float64": KindFloat,
	"double":  KindFloat,
	"number":  KindFloat,
	"decimal": KindFloat,
	"bool":    KindBool,
	"boolean": KindBool,
}

func (k KindEnum) IsValid() bool {
	_, ok := tags[k]
	return ok
}

func (k KindEnum) IsNumber() bool {
	switch k {
	default:
		return false
	case KindInt, KindFloat:
		return true
	}
}

// Tag returns the canonical schema tag ("str", "int", "float", "bool").
func (k KindEnum) Tag() string {
	if tag, ok := tags[k]; ok {
		return tag
	}

	return k.String()
}

// MarshalText renders the kind as its canonical tag.
func (k KindEnum) MarshalText() ([]byte, error) {
	if !k.IsValid() {
		return nil, fmt.Errorf("invalid kind: %s", k)
	}

	return []byte(k.Tag()), nil
}

// UnmarshalText parses a schema tag, see ParseKind.
func (k *KindEnum) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}

	*k = parsed

	return nil
}

// ParseKind resolves a schema type tag. Matching is case-insensitive and
// accepts the common aliases (e.g. "Int64", "string", "double").
func ParseKind(tag string) (KindEnum, error) {
	k, ok := aliases[strings.ToLower(strings.TrimSpace(tag))]
	if !ok {
		return 0, fmt.Errorf("unknown type tag %q", tag)
	}

	return k, nil
}

// Tags returns the canonical tags in kind order.
func Tags() []string {
	out := make([]string, 0, KindTotal-1)
	for k := KindEnum(1); int(k) < KindTotal; k++ {
		out = append(out, k.Tag())
	}

	return out
}

// FromValue reports the kind of a cell value. Nil, NaN and unsupported
// values yield the zero (invalid) kind.
func FromValue(v any) KindEnum {
	if v == nil {
		return 0
	}

	if f, ok := v.(float64); ok && math.IsNaN(f) {
		return 0
	}

	return FromReflectType(reflect.TypeOf(v))
}

func FromReflectType(rtype reflect.Type) KindEnum {
	if rtype == nil {
		return 0
	}

	switch rtype.Kind() {
	default:
		return 0
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return KindInt
	case reflect.Float32, reflect.Float64:
		return KindFloat
	case reflect.Bool:
		return KindBool
	case reflect.String:
		return KindString
	}
}

// IsNull reports whether a cell value counts as missing.
func IsNull(v any) bool {
	switch x := v.(type) {
	case nil:
		return true
	case float64:
		return math.IsNaN(x)
	case float32:
		return math.IsNaN(float64(x))
	default:
		return false
	}
}
