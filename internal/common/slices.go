package common

// IsEmpty returns true if the slice is empty.
func IsEmpty[S ~[]E, E any](s S) bool {
	return len(s) == 0
}

// IsSingle returns true if the slice has exactly one element.
func IsSingle[S ~[]E, E any](s S) bool {
	return len(s) == 1
}

// IsMultiple returns true if the slice has more than one element.
func IsMultiple[S ~[]E, E any](s S) bool {
	return len(s) > 1
}

// First returns the first element of the slice and true, or the zero value and false if empty.
func First[S ~[]E, E any](s S) (E, bool) {
	if len(s) == 0 {
		var zero E
		return zero, false
	}

	return s[0], true
}

// UniqueFunc returns the elements of s without duplicates, keeping the first
// occurrence of each. Elements are compared by the key returned from key.
func UniqueFunc[S ~[]E, E any, K comparable](s S, key func(E) K) S {
	if len(s) < 2 {
		return s
	}

	seen := make(map[K]struct{}, len(s))
	out := make(S, 0, len(s))

	for _, e := range s {
		k := key(e)
		if _, ok := seen[k]; ok {
			continue
		}

		seen[k] = struct{}{}
		out = append(out, e)
	}

	return out
}

// Unique returns s without duplicates in first-occurrence order.
func Unique[S ~[]E, E comparable](s S) S {
	return UniqueFunc(s, func(e E) E { return e })
}
