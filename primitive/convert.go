package primitive

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
)

// ErrNotConvertible is wrapped by every error returned from Convert.
var ErrNotConvertible = errors.New("value is not convertible")

// Convert casts a single cell value to the requested kind. Null values
// (nil, NaN) are returned as nil without error. Integers are returned as
// int64 and floats as float64.
func Convert(v any, to KindEnum, categories CategoryEnum) (any, error) {
	if IsNull(v) {
		return nil, nil
	}

	from := FromValue(v)
	if from == 0 {
		return nil, fmt.Errorf("%w: unsupported value type %T", ErrNotConvertible, v)
	}

	if !to.IsValid() {
		return nil, fmt.Errorf("%w: invalid target kind %s", ErrNotConvertible, to)
	}

	if !IsAllowed(ConversionPair{From: from, To: to}, categories) && !isBaseline(from, to, v) {
		return nil, fmt.Errorf("%w: %s to %s is disabled", ErrNotConvertible, from.Tag(), to.Tag())
	}

	switch to {
	case KindString:
		return toString(v), nil
	case KindInt:
		return toInt(v, categories)
	case KindFloat:
		return toFloat(v, categories)
	case KindBool:
		return toBool(v, categories)
	}

	return nil, fmt.Errorf("%w: %s", ErrNotConvertible, to)
}

// isBaseline covers string -> bool for the literal true/false spellings,
// which need no category.
func isBaseline(from, to KindEnum, v any) bool {
	if from != KindString || to != KindBool {
		return false
	}

	s := strings.ToLower(strings.TrimSpace(v.(string)))

	return s == "true" || s == "false"
}

func toString(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case bool:
		return strconv.FormatBool(x)
	}

	rv := reflect.ValueOf(v)
	switch FromValue(v) {
	case KindFloat:
		return strconv.FormatFloat(rv.Float(), 'f', -1, 64)
	case KindInt:
		if rv.CanInt() {
			return strconv.FormatInt(rv.Int(), 10)
		}

		return strconv.FormatUint(rv.Uint(), 10)
	}

	return fmt.Sprint(v)
}

func toInt(v any, categories CategoryEnum) (any, error) {
	switch x := v.(type) {
	case string:
		s := normalizeNumber(x, categories)

		if n, err := strconv.ParseInt(s, 10, 64); err == nil {
			return n, nil
		}

		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %q is not an integer", ErrNotConvertible, x)
		}

		return floatToInt(f, categories)
	case bool:
		if x {
			return int64(1), nil
		}

		return int64(0), nil
	}

	rv := reflect.ValueOf(v)
	switch FromValue(v) {
	case KindFloat:
		return floatToInt(rv.Float(), categories)
	case KindInt:
		if rv.CanInt() {
			return rv.Int(), nil
		}

		u := rv.Uint()
		if u > math.MaxInt64 {
			return nil, fmt.Errorf("%w: %d overflows int64", ErrNotConvertible, u)
		}

		return int64(u), nil
	}

	return nil, fmt.Errorf("%w: %T to int", ErrNotConvertible, v)
}

func floatToInt(f float64, categories CategoryEnum) (any, error) {
	if math.IsInf(f, 0) || math.IsNaN(f) || f > math.MaxInt64 || f < math.MinInt64 {
		return nil, fmt.Errorf("%w: %v is out of int range", ErrNotConvertible, f)
	}

	if f != math.Trunc(f) && !categories.Has(CategoryUnsafeNumber) {
		return nil, fmt.Errorf("%w: %v has a fractional part", ErrNotConvertible, f)
	}

	return int64(f), nil
}

func toFloat(v any, categories CategoryEnum) (any, error) {
	switch x := v.(type) {
	case string:
		f, err := strconv.ParseFloat(normalizeNumber(x, categories), 64)
		if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
			return nil, fmt.Errorf("%w: %q is not a number", ErrNotConvertible, x)
		}

		return f, nil
	case bool:
		if x {
			return 1.0, nil
		}

		return 0.0, nil
	}

	rv := reflect.ValueOf(v)
	switch FromValue(v) {
	case KindFloat:
		return rv.Float(), nil
	case KindInt:
		if rv.CanInt() {
			return float64(rv.Int()), nil
		}

		return float64(rv.Uint()), nil
	}

	return nil, fmt.Errorf("%w: %T to float", ErrNotConvertible, v)
}

func toBool(v any, categories CategoryEnum) (any, error) {
	switch x := v.(type) {
	case bool:
		return x, nil
	case string:
		s := strings.ToLower(strings.TrimSpace(x))

		switch {
		case s == "true":
			return true, nil
		case s == "false":
			return false, nil
		case categories.Has(CategoryTextualBool) && (s == "yes" || s == "on"):
			return true, nil
		case categories.Has(CategoryTextualBool) && (s == "no" || s == "off"):
			return false, nil
		case categories.Has(CategoryNumericBool) && s == "1":
			return true, nil
		case categories.Has(CategoryNumericBool) && s == "0":
			return false, nil
		}

		return nil, fmt.Errorf("%w: only strings true/false, yes/no, on/off are allowed for bool, got: %q", ErrNotConvertible, x)
	}

	f, err := toFloat(v, categories)
	if err != nil {
		return nil, err
	}

	return f.(float64) != 0, nil
}

// normalizeNumber trims the text and, when enabled, turns a decimal comma
// into a decimal point character-for-character.
func normalizeNumber(s string, categories CategoryEnum) string {
	s = strings.TrimSpace(s)
	if categories.Has(CategoryDecimalComma) {
		s = strings.ReplaceAll(s, ",", ".")
	}

	return s
}
