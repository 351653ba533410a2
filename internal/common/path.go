package common

import (
	"path/filepath"
	"strings"
)

// Stem returns the file name without directory and extension.
// Returns empty string if p is empty.
func Stem(p string) string {
	if p == "" {
		return ""
	}

	base := filepath.Base(p)

	return strings.TrimSuffix(base, filepath.Ext(base))
}

// ReplaceExt swaps the extension of p for ext (which should include the dot).
func ReplaceExt(p, ext string) string {
	return strings.TrimSuffix(p, filepath.Ext(p)) + ext
}

// Ext returns the lower-cased extension of p, including the dot.
func Ext(p string) string {
	return strings.ToLower(filepath.Ext(p))
}
