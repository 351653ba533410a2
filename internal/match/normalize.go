package match

import (
	"strings"
	"unicode"
)

// NormalizeIdent normalizes an identifier for fuzzy matching.
// The normalization pipeline:
// 1. Tokenize CamelCase.
// 2. Case-fold to lower.
// 3. Strip separators (_, -, ., spaces).
func NormalizeIdent(s string) string {
	tokens := tokenizeCamelCase(s)

	joined := strings.Join(tokens, "")
	joined = strings.ToLower(joined)
	joined = stripSeparators(joined)

	return joined
}

// fieldSuffixes are stripped from names before synonym scoring, first
// match only.
var fieldSuffixes = []string{"_id", "_name", "_nr", "_no", "_num", "_number"}

// baseName lower-cases s and strips one field suffix.
func baseName(s string) string {
	base := strings.ToLower(s)

	for _, suffix := range fieldSuffixes {
		if strings.HasSuffix(base, suffix) {
			return strings.TrimSuffix(base, suffix)
		}
	}

	return base
}

// synonymTokens splits a base name on underscores and adds the canonical
// word of every part that has one.
func synonymTokens(base string) map[string]struct{} {
	tokens := make(map[string]struct{})

	for _, part := range strings.Split(base, "_") {
		tokens[part] = struct{}{}

		if canonical, ok := variationLookup[part]; ok {
			tokens[canonical] = struct{}{}
		}
	}

	return tokens
}

// tokenizeCamelCase splits a CamelCase or camelCase string into tokens.
// Examples:
//   - "OrderID" -> ["Order", "ID"]
//   - "PostalCode" -> ["Postal", "Code"]
//   - "first_name" -> ["first", "name"]
func tokenizeCamelCase(s string) []string {
	if s == "" {
		return nil
	}

	var tokens []string

	var current strings.Builder

	runes := []rune(s)
	for i := range runes {
		r := runes[i]

		if isSeparator(r) {
			if current.Len() > 0 {
				tokens = append(tokens, current.String())
				current.Reset()
			}

			continue
		}

		if i > 0 && shouldStartNewToken(runes, i) && current.Len() > 0 {
			tokens = append(tokens, current.String())
			current.Reset()
		}

		current.WriteRune(r)
	}

	if current.Len() > 0 {
		tokens = append(tokens, current.String())
	}

	return tokens
}

func isSeparator(r rune) bool {
	return r == '_' || r == '-' || r == ' ' || r == '.'
}

// shouldStartNewToken determines if a new token should start at position i.
func shouldStartNewToken(runes []rune, i int) bool {
	r := runes[i]
	prevRune := runes[i-1]
	isUpper := unicode.IsUpper(r)
	isPrevUpper := unicode.IsUpper(prevRune)

	// "postalCode" -> split before 'C'
	if isUpper && !isPrevUpper && !isSeparator(prevRune) {
		return true
	}

	// "PLZCode" -> "PLZ" + "Code", split before 'C'
	hasNextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])

	return isUpper && isPrevUpper && hasNextLower
}

func stripSeparators(s string) string {
	var result strings.Builder

	result.Grow(len(s))

	for _, r := range s {
		if !isSeparator(r) {
			result.WriteRune(r)
		}
	}

	return result.String()
}
