package coerce

import (
	"fmt"
	"strconv"
	"strings"

	"csv2json/internal/diagnostic"
	"csv2json/internal/record"
	"csv2json/internal/schema"
	"csv2json/primitive"
)

type options struct {
	categories primitive.CategoryEnum
}

type Option func(*options)

// WithCategories selects the conversion categories. The default is
// primitive.CategoryDefault.
func WithCategories(c primitive.CategoryEnum) Option {
	return func(o *options) {
		o.categories = c
	}
}

func newOptions(opts []Option) options {
	o := options{categories: primitive.CategoryDefault}
	for _, opt := range opts {
		opt(&o)
	}

	return o
}

// Coerce returns a copy of t with every schema column cast to its declared
// kind. The input table is not modified.
func Coerce(t *record.Table, s *schema.Schema, sink diagnostic.Sink, opts ...Option) *record.Table {
	o := newOptions(opts)
	sink = diagnostic.OrDiscard(sink)
	out := t.Clone()

	for name, kind := range s.All() {
		if !out.HasColumn(name) {
			sink.Report(diagnostic.Warning(
				diagnostic.CodeMissingSchemaColumn, name,
				fmt.Sprintf("column '%s' from schema not found in data", name),
			))

			continue
		}

		converted, row, err := convertColumn(out.Column(name), kind, o.categories)
		if err != nil {
			sink.Report(diagnostic.Warning(
				diagnostic.CodeColumnCoercion, name,
				fmt.Sprintf("could not apply dtype '%s' to column '%s': %v", kind.Tag(), name, err),
			).AtRow(row))

			continue
		}

		out.SetColumn(name, converted)
	}

	return out
}

// convertColumn converts all values or none. On failure it returns the
// 1-based row of the first offending value.
func convertColumn(values []any, kind primitive.KindEnum, categories primitive.CategoryEnum) ([]any, int, error) {
	converted := make([]any, len(values))

	for i, v := range values {
		c, err := primitive.Convert(v, kind, categories)
		if err != nil {
			return nil, i + 1, err
		}

		converted[i] = c
	}

	return converted, 0, nil
}

// Infer returns a copy of t where columns not named by s are typed from
// their content: int, then float, then bool (true/false only). Columns
// whose values do not all fit one kind stay as they are. s may be nil.
func Infer(t *record.Table, s *schema.Schema, sink diagnostic.Sink, opts ...Option) *record.Table {
	o := newOptions(opts)
	sink = diagnostic.OrDiscard(sink)
	out := t.Clone()

	for _, name := range out.Headers {
		if _, ok := s.Kind(name); ok {
			continue
		}

		values := out.Column(name)
		if !hasText(values) {
			continue
		}

		for _, kind := range inferOrder {
			converted, ok := infer(values, kind, o.categories)
			if !ok {
				continue
			}

			out.SetColumn(name, converted)
			sink.Report(diagnostic.Debug(
				diagnostic.CodeTypeInferred, name,
				fmt.Sprintf("inferred dtype '%s' for column '%s'", kind.Tag(), name),
			))

			break
		}
	}

	return out
}

var inferOrder = []primitive.KindEnum{primitive.KindInt, primitive.KindFloat, primitive.KindBool}

func infer(values []any, kind primitive.KindEnum, categories primitive.CategoryEnum) ([]any, bool) {
	// textual bools only: 1/0 and yes/no stay text unless a schema says otherwise
	if kind == primitive.KindBool {
		categories = primitive.CategoryNone
	}

	converted := make([]any, len(values))

	for i, v := range values {
		if s, ok := v.(string); ok && kind.IsNumber() && !looksNumeric(s, kind) {
			return nil, false
		}

		c, err := primitive.Convert(v, kind, categories)
		if err != nil {
			return nil, false
		}

		converted[i] = c
	}

	return converted, true
}

// looksNumeric rejects text that parses as a number but should stay text:
// integers written with a fraction and codes with leading zeros.
func looksNumeric(s string, kind primitive.KindEnum) bool {
	s = strings.TrimSpace(s)
	digits := strings.TrimLeft(s, "+-")

	if len(digits) > 1 && digits[0] == '0' && digits[1] >= '0' && digits[1] <= '9' {
		return false
	}

	if kind == primitive.KindInt {
		_, err := strconv.ParseInt(s, 10, 64)
		return err == nil
	}

	return true
}

func hasText(values []any) bool {
	for _, v := range values {
		if _, ok := v.(string); ok {
			return true
		}
	}

	return false
}
