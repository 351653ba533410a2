package mapping

import (
	"fmt"
	"slices"

	"csv2json/internal/diagnostic"
)

// Validate checks a mapping against the known targets (schema fields) and
// sources (input headers). A nil targets or sources list skips that side.
func Validate(fm *FieldMapping, targets, sources []string) *diagnostic.Diagnostics {
	res := &diagnostic.Diagnostics{}

	if fm.Len() == 0 {
		res.AddWarning(diagnostic.CodeMappingEmpty, "mapping has no entries", "")
		return res
	}

	for target, source := range fm.All() {
		if targets != nil && !slices.Contains(targets, target) {
			res.AddWarning(diagnostic.CodeUnknownTarget, fmt.Sprintf("target '%s' is not a schema field", target), target)
		}

		if sources != nil && !slices.Contains(sources, source) {
			res.AddWarning(diagnostic.CodeUnknownSource, fmt.Sprintf("source '%s' is not an input column", source), source)
		}
	}

	return res
}
