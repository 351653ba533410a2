package reshape

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"

	"csv2json/internal/record"
)

// canonical renders a value so that equal values get equal keys. Integral
// numbers render the same whatever their type, so 1 and 1.0 are equal.
func canonical(v any) string {
	var b strings.Builder
	writeCanonical(&b, v)

	return b.String()
}

func writeCanonical(b *strings.Builder, v any) {
	switch x := v.(type) {
	case nil:
		b.WriteString("null")
	case string:
		b.WriteString(strconv.Quote(x))
	case bool:
		b.WriteString(strconv.FormatBool(x))
	case *record.Record:
		b.WriteByte('{')

		i := 0
		for k, vv := range x.All() {
			if i > 0 {
				b.WriteByte(',')
			}

			b.WriteString(strconv.Quote(k))
			b.WriteByte(':')
			writeCanonical(b, vv)
			i++
		}

		b.WriteByte('}')
	case []any:
		writeSeq(b, x)
	default:
		writeOther(b, v)
	}
}

func writeSeq(b *strings.Builder, seq []any) {
	b.WriteByte('[')

	for i, e := range seq {
		if i > 0 {
			b.WriteByte(',')
		}

		writeCanonical(b, e)
	}

	b.WriteByte(']')
}

func writeOther(b *strings.Builder, v any) {
	rv := reflect.ValueOf(v)

	switch {
	case rv.CanInt():
		b.WriteString(strconv.FormatInt(rv.Int(), 10))
	case rv.CanUint():
		b.WriteString(strconv.FormatUint(rv.Uint(), 10))
	case rv.CanFloat():
		f := rv.Float()
		if f == math.Trunc(f) && f >= math.MinInt64 && f < math.MaxInt64 {
			b.WriteString(strconv.FormatInt(int64(f), 10))
			return
		}

		b.WriteString(strconv.FormatFloat(f, 'g', -1, 64))
	default:
		if seq, ok := sequence(v); ok {
			writeSeq(b, seq)
			return
		}

		fmt.Fprintf(b, "%T:%v", v, v)
	}
}
