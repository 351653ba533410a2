package convert

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"reflect"
	"strconv"
	"strings"

	"github.com/segmentio/encoding/json"

	"csv2json/internal/diagnostic"
	"csv2json/internal/record"
)

// Encode writes v as JSON. Records keep their key order, HTML characters
// are not escaped and indent spaces are used per level (0 for a single
// line). Values without a JSON representation (NaN, infinities, complex
// numbers, channels, functions) are left out and reported as
// serialization_skip debug diagnostics.
func Encode(w io.Writer, v any, indent int, sink diagnostic.Sink) error {
	e := &encoder{
		indent: strings.Repeat(" ", indent),
		sink:   diagnostic.OrDiscard(sink),
	}

	var buf bytes.Buffer
	if !e.value(&buf, v, 0, "") {
		buf.WriteString("null")
	}

	buf.WriteByte('\n')

	_, err := w.Write(buf.Bytes())

	return err
}

type encoder struct {
	indent  string
	sink    diagnostic.Sink
	scratch []byte
}

// value appends v to buf. It returns false and writes nothing when v has
// to be skipped.
func (e *encoder) value(buf *bytes.Buffer, v any, depth int, path string) bool {
	switch x := v.(type) {
	case nil:
		buf.WriteString("null")
		return true
	case *record.Record:
		if x == nil {
			buf.WriteString("null")
			return true
		}

		e.object(buf, x, depth, path)

		return true
	case []any:
		e.array(buf, x, depth, path)
		return true
	case float64:
		return e.float(buf, x, 64, path)
	case float32:
		return e.float(buf, float64(x), 32, path)
	case string, bool, int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return e.scalar(buf, v, path)
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Complex64, reflect.Complex128, reflect.Chan, reflect.Func, reflect.UnsafePointer:
		e.skip(v, path, "no JSON representation")
		return false
	case reflect.Slice, reflect.Array:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			return e.scalar(buf, v, path)
		}

		items := make([]any, rv.Len())
		for i := range items {
			items[i] = rv.Index(i).Interface()
		}

		e.array(buf, items, depth, path)

		return true
	}

	return e.scalar(buf, v, path)
}

func (e *encoder) object(buf *bytes.Buffer, r *record.Record, depth int, path string) {
	buf.WriteByte('{')

	n := 0

	for key, v := range r.All() {
		var child bytes.Buffer
		if !e.value(&child, v, depth+1, joinPath(path, key)) {
			continue
		}

		if n > 0 {
			buf.WriteByte(',')
		}

		e.newline(buf, depth+1)
		e.scalar(buf, key, path)
		buf.WriteByte(':')

		if e.indent != "" {
			buf.WriteByte(' ')
		}

		buf.Write(child.Bytes())

		n++
	}

	if n > 0 {
		e.newline(buf, depth)
	}

	buf.WriteByte('}')
}

func (e *encoder) array(buf *bytes.Buffer, items []any, depth int, path string) {
	buf.WriteByte('[')

	n := 0

	for i, v := range items {
		var child bytes.Buffer
		if !e.value(&child, v, depth+1, path+"["+strconv.Itoa(i)+"]") {
			continue
		}

		if n > 0 {
			buf.WriteByte(',')
		}

		e.newline(buf, depth+1)
		buf.Write(child.Bytes())

		n++
	}

	if n > 0 {
		e.newline(buf, depth)
	}

	buf.WriteByte(']')
}

func (e *encoder) float(buf *bytes.Buffer, f float64, bits int, path string) bool {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		e.skip(f, path, "not a finite number")
		return false
	}

	var ok bool
	if bits == 32 {
		ok = e.scalar(buf, float32(f), path)
	} else {
		ok = e.scalar(buf, f, path)
	}

	// keep the float visible downstream: 10 is written as 10.0
	if ok && isIntegral(e.scratch) {
		buf.WriteString(".0")
	}

	return ok
}

func isIntegral(b []byte) bool {
	for i, c := range b {
		if (c < '0' || c > '9') && (i > 0 || c != '-') {
			return false
		}
	}

	return len(b) > 0
}

// scalar appends v without HTML escaping.
func (e *encoder) scalar(buf *bytes.Buffer, v any, path string) bool {
	b, err := json.Append(e.scratch[:0], v, 0)
	if err != nil {
		e.skip(v, path, err.Error())
		return false
	}

	e.scratch = b
	buf.Write(b)

	return true
}

func (e *encoder) newline(buf *bytes.Buffer, depth int) {
	if e.indent == "" {
		return
	}

	buf.WriteByte('\n')

	for range depth {
		buf.WriteString(e.indent)
	}
}

func (e *encoder) skip(v any, path, reason string) {
	e.sink.Report(diagnostic.Debug(
		diagnostic.CodeSerializationSkip, path,
		fmt.Sprintf("dropped %T value at '%s': %s", v, path, reason),
	))
}

func joinPath(path, key string) string {
	if path == "" {
		return key
	}

	return path + "." + key
}
