package reshape

import (
	"fmt"
	"reflect"
	"strings"

	"csv2json/internal/diagnostic"
	"csv2json/internal/record"
	"csv2json/primitive"
)

// Document is a nested, insertion-ordered output document.
type Document = record.Record

type options struct {
	sep  string
	sink diagnostic.Sink
}

type Option func(*options)

// WithDeepNesting nests every level of a dotted name ("a.b.c" becomes
// a → b → c). By default only the first segment nests and the remaining
// segments are concatenated ("a.b.c" becomes a → "bc").
func WithDeepNesting() Option {
	return func(o *options) {
		o.sep = "."
	}
}

// WithSink receives reshape_invariant notes.
func WithSink(sink diagnostic.Sink) Option {
	return func(o *options) {
		o.sink = sink
	}
}

func newOptions(opts []Option) options {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}

	o.sink = diagnostic.OrDiscard(o.sink)

	return o
}

// Reshape builds the nested document for one record. rec is not modified.
// With stripNulls, null values are removed; otherwise they are kept as
// explicit nil.
func Reshape(rec *record.Record, stripNulls bool, opts ...Option) *Document {
	o := newOptions(opts)
	return reshape(rec, stripNulls, o, 0)
}

// ReshapeAll reshapes every record in order.
func ReshapeAll(records []*record.Record, stripNulls bool, opts ...Option) []*Document {
	o := newOptions(opts)
	docs := make([]*Document, len(records))

	for i, rec := range records {
		docs[i] = reshape(rec, stripNulls, o, i+1)
	}

	return docs
}

func reshape(rec *record.Record, stripNulls bool, o options, row int) *Document {
	u := unflattener{sep: o.sep, sink: o.sink, row: row}
	return merge(u.unflatten(rec, ""), stripNulls)
}

type unflattener struct {
	sep  string
	sink diagnostic.Sink
	row  int
}

// unflatten builds a new document where dotted keys are grouped under
// their first segment. A group takes the position of the first key that
// created it.
func (u unflattener) unflatten(rec *record.Record, path string) *Document {
	out := record.New()
	groups := make(map[string]*Document)
	scalars := make(map[string]bool)

	for k, v := range rec.All() {
		if !strings.Contains(k, ".") {
			if _, ok := v.(*record.Record); !ok {
				scalars[k] = true
			}
		}
	}

	for k, v := range rec.All() {
		head, rest, dotted := strings.Cut(k, ".")

		if !dotted {
			doc, ok := v.(*record.Record)
			if !ok {
				out.Set(k, v)
				continue
			}

			if g, ok := groups[k]; ok {
				for kk, vv := range doc.All() {
					u.set(g, kk, vv, join(path, k))
				}

				continue
			}

			g := doc.Clone()
			groups[k] = g
			out.Set(k, g)

			continue
		}

		if scalars[head] {
			u.sink.Report(diagnostic.Info(
				diagnostic.CodeReshapeInvariant, join(path, k),
				fmt.Sprintf("'%s' already holds a value, key kept flat", join(path, head)),
			).AtRow(u.row))
			out.Set(k, v)

			continue
		}

		g, ok := groups[head]
		if !ok {
			g = record.New()
			groups[head] = g
			out.Set(head, g)
		}

		u.set(g, strings.Join(strings.Split(rest, "."), u.sep), v, join(path, head))
	}

	for _, k := range out.Keys() {
		if g, ok := groups[k]; ok {
			out.Set(k, u.unflatten(g, join(path, k)))
		}
	}

	return out
}

func (u unflattener) set(g *Document, key string, v any, path string) {
	if g.Has(key) {
		u.sink.Report(diagnostic.Info(
			diagnostic.CodeReshapeInvariant, join(path, key),
			fmt.Sprintf("duplicate key '%s' under '%s', last value wins", key, path),
		).AtRow(u.row))
	}

	g.Set(key, v)
}

func join(path, key string) string {
	if path == "" {
		return key
	}

	return path + "." + key
}

// merge handles nulls and sequences, top-down. It returns a new document.
func merge(doc *Document, stripNulls bool) *Document {
	out := record.New()

	for k, v := range doc.All() {
		if primitive.IsNull(v) {
			if !stripNulls {
				out.Set(k, nil)
			}

			continue
		}

		switch x := v.(type) {
		case *record.Record:
			if rows, ok := columnar(x); ok {
				out.Set(k, rows)
				continue
			}

			out.Set(k, merge(x, stripNulls))
		default:
			if seq, ok := sequence(v); ok {
				out.Set(k, dedupe(seq))
				continue
			}

			out.Set(k, v)
		}
	}

	return out
}

// columnar converts a document whose children are all sequences of the
// first child's length into a de-duplicated array of row documents.
func columnar(doc *Document) ([]any, bool) {
	if doc.Len() == 0 {
		return nil, false
	}

	keys := make([]string, 0, doc.Len())
	columns := make([][]any, 0, doc.Len())

	for k, v := range doc.All() {
		seq, ok := sequence(v)
		if !ok || (len(columns) > 0 && len(seq) != len(columns[0])) {
			return nil, false
		}

		keys = append(keys, k)
		columns = append(columns, seq)
	}

	rows := make([]any, 0, len(columns[0]))
	seen := make(map[string]struct{}, len(columns[0]))

	for i := range columns[0] {
		row := record.New()
		values := make([]any, len(columns))

		for j, k := range keys {
			row.Set(k, columns[j][i])
			values[j] = columns[j][i]
		}

		key := canonical(values)
		if _, dup := seen[key]; dup {
			continue
		}

		seen[key] = struct{}{}
		rows = append(rows, row)
	}

	return rows, true
}

// sequence reports whether v is a slice or array and returns its elements.
func sequence(v any) ([]any, bool) {
	if s, ok := v.([]any); ok {
		return s, true
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}

	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}

	return out, true
}

// dedupe removes duplicate elements keeping first occurrences.
func dedupe(seq []any) []any {
	out := make([]any, 0, len(seq))
	seen := make(map[string]struct{}, len(seq))

	for _, v := range seq {
		key := canonical(v)
		if _, dup := seen[key]; dup {
			continue
		}

		seen[key] = struct{}{}
		out = append(out, v)
	}

	return out
}
