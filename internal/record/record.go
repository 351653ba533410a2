package record

import (
	"fmt"
	"iter"
	"reflect"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Record is an insertion-ordered mapping from column name to cell value.
// Values are nil, string, int64, float64, bool, nested *Record or []any.
type Record struct {
	m *orderedmap.OrderedMap[string, any]
}

// Pair is a single key/value entry of a Record.
type Pair struct {
	Key   string
	Value any
}

func New() *Record {
	return &Record{m: orderedmap.New[string, any]()}
}

// FromPairs builds a record from pairs in order. Later duplicates overwrite
// the value but keep the first position.
func FromPairs(pairs ...Pair) *Record {
	r := &Record{m: orderedmap.New[string, any](len(pairs))}
	for _, p := range pairs {
		r.m.Set(p.Key, p.Value)
	}

	return r
}

// Of builds a record from alternating keys and values.
// It panics when a key is not a string or a value is missing.
func Of(kv ...any) *Record {
	if len(kv)%2 != 0 {
		panic("record.Of: odd number of arguments")
	}

	r := &Record{m: orderedmap.New[string, any](len(kv) / 2)}

	for i := 0; i < len(kv); i += 2 {
		key, ok := kv[i].(string)
		if !ok {
			panic(fmt.Sprintf("record.Of: key %v is %T, not string", kv[i], kv[i]))
		}

		r.m.Set(key, kv[i+1])
	}

	return r
}

func (r *Record) Get(key string) (any, bool) {
	return r.m.Get(key)
}

// Value returns the value stored under key, or nil.
func (r *Record) Value(key string) any {
	return r.m.Value(key)
}

func (r *Record) Has(key string) bool {
	_, ok := r.m.Get(key)
	return ok
}

// Set stores value under key. Existing keys keep their position.
func (r *Record) Set(key string, value any) {
	r.m.Set(key, value)
}

// Delete removes key and reports whether it was present.
func (r *Record) Delete(key string) bool {
	_, ok := r.m.Delete(key)
	return ok
}

func (r *Record) Len() int {
	if r == nil || r.m == nil {
		return 0
	}

	return r.m.Len()
}

func (r *Record) Keys() []string {
	keys := make([]string, 0, r.Len())
	for k := range r.All() {
		keys = append(keys, k)
	}

	return keys
}

// Pairs returns the entries in insertion order.
func (r *Record) Pairs() []Pair {
	pairs := make([]Pair, 0, r.Len())
	for k, v := range r.All() {
		pairs = append(pairs, Pair{Key: k, Value: v})
	}

	return pairs
}

// All iterates entries in insertion order.
func (r *Record) All() iter.Seq2[string, any] {
	return func(yield func(string, any) bool) {
		if r == nil || r.m == nil {
			return
		}

		for p := r.m.Oldest(); p != nil; p = p.Next() {
			if !yield(p.Key, p.Value) {
				return
			}
		}
	}
}

// Clone returns a deep copy: nested records and slices are copied too.
func (r *Record) Clone() *Record {
	out := &Record{m: orderedmap.New[string, any](r.Len())}
	for k, v := range r.All() {
		out.m.Set(k, cloneValue(v))
	}

	return out
}

func cloneValue(v any) any {
	switch x := v.(type) {
	case *Record:
		return x.Clone()
	case []any:
		out := make([]any, len(x))
		for i, e := range x {
			out[i] = cloneValue(e)
		}

		return out
	default:
		return v
	}
}

// Equal reports whether both records hold the same keys in the same order
// with deeply equal values.
func Equal(a, b *Record) bool {
	if a.Len() != b.Len() {
		return false
	}

	pa, pb := a.Pairs(), b.Pairs()
	for i := range pa {
		if pa[i].Key != pb[i].Key || !equalValue(pa[i].Value, pb[i].Value) {
			return false
		}
	}

	return true
}

func equalValue(a, b any) bool {
	switch x := a.(type) {
	case *Record:
		y, ok := b.(*Record)
		return ok && Equal(x, y)
	case []any:
		y, ok := b.([]any)
		if !ok || len(x) != len(y) {
			return false
		}

		for i := range x {
			if !equalValue(x[i], y[i]) {
				return false
			}
		}

		return true
	default:
		return reflect.DeepEqual(a, b)
	}
}

// String renders the record for debugging.
func (r *Record) String() string {
	return fmt.Sprint(r.Pairs())
}
