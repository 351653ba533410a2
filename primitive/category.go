package primitive

type CategoryEnum int

type ConversionPair struct {
	From, To KindEnum
}

const (
	CategoryTextNumber   CategoryEnum = 1 << iota // int, float <-> string: textual number representation
	CategoryDecimalComma                          // string -> int, float: ',' accepted as the decimal separator
	CategoryNumericBool                           // int, float <-> bool: 0, 1 representation of boolean values
	CategoryTextualBool                           // string <-> bool: yes, no, on, off, true, false representation of boolean values
	CategoryUnsafeNumber                          // float -> int with truncation of the fractional part

	CategoryAll  CategoryEnum = (1 << iota) - 1 //all categories combined
	CategoryNone CategoryEnum = 0               // no categories selected

	// CategoryDefault is what the conversion pipeline uses unless configured otherwise.
	CategoryDefault CategoryEnum = CategoryAll &^ CategoryUnsafeNumber
)

var conversionPairs map[CategoryEnum]map[ConversionPair]struct{}

func init() {
	conversionPairs = make(map[CategoryEnum]map[ConversionPair]struct{})

	conversionPairs[CategoryTextNumber] = map[ConversionPair]struct{}{}
	conversionPairs[CategoryDecimalComma] = map[ConversionPair]struct{}{}
	conversionPairs[CategoryNumericBool] = map[ConversionPair]struct{}{}

	for numberKind := KindEnum(0); int(numberKind) < KindTotal; numberKind++ {
		if !numberKind.IsNumber() {
			continue
		}

		conversionPairs[CategoryTextNumber][ConversionPair{numberKind, KindString}] = struct{}{}
		conversionPairs[CategoryTextNumber][ConversionPair{KindString, numberKind}] = struct{}{}
		conversionPairs[CategoryDecimalComma][ConversionPair{KindString, numberKind}] = struct{}{}
		conversionPairs[CategoryNumericBool][ConversionPair{numberKind, KindBool}] = struct{}{}
		conversionPairs[CategoryNumericBool][ConversionPair{KindBool, numberKind}] = struct{}{}
	}

	// string <-> bool: yes, no, on, off, true, false
	conversionPairs[CategoryTextualBool] = map[ConversionPair]struct{}{
		{KindString, KindBool}: {},
		{KindBool, KindString}: {},
	}

	conversionPairs[CategoryUnsafeNumber] = map[ConversionPair]struct{}{
		{KindFloat, KindInt}: {},
	}
}

// Has reports whether every category in other is enabled in c.
func (c CategoryEnum) Has(other CategoryEnum) bool {
	return c&other == other
}

// IsAllowed reports whether the pair is enabled by at least one of the
// selected categories. Identity pairs and the lossless int -> float widening
// are always allowed.
func IsAllowed(pair ConversionPair, categories CategoryEnum) bool {
	if pair.From == pair.To || (pair.From == KindInt && pair.To == KindFloat) {
		return true
	}

	for category, pairs := range conversionPairs {
		if !categories.Has(category) {
			continue
		}

		if _, ok := pairs[pair]; ok {
			return true
		}
	}

	return false
}
