package mapping

import (
	"fmt"

	"csv2json/internal/diagnostic"
	"csv2json/internal/record"
)

// Apply renames columns: the result holds only mapped targets, in mapping
// order, each taken from its source column. Sources missing from the table
// are reported and skipped. When no entry could be applied the original
// table is returned. An empty mapping returns t as is.
func Apply(t *record.Table, fm *FieldMapping, sink diagnostic.Sink) *record.Table {
	if fm.Len() == 0 {
		return t
	}

	sink = diagnostic.OrDiscard(sink)

	var applied []Pair

	for target, source := range fm.All() {
		if !t.HasColumn(source) {
			sink.Report(diagnostic.Warning(
				diagnostic.CodeMappingSourceMissing, source,
				fmt.Sprintf("source field '%s' for target '%s' not found in input", source, target),
			))

			continue
		}

		applied = append(applied, Pair{Target: target, Source: source})
	}

	if len(applied) == 0 {
		sink.Report(diagnostic.Warning(
			diagnostic.CodeMappingEmpty, "",
			"no fields were mapped, using the original columns",
		))

		return t
	}

	out := &record.Table{
		Headers: make([]string, len(applied)),
		Records: make([]*record.Record, len(t.Records)),
	}

	for i, p := range applied {
		out.Headers[i] = p.Target
	}

	for i, r := range t.Records {
		rec := record.New()
		for _, p := range applied {
			rec.Set(p.Target, r.Value(p.Source))
		}

		out.Records[i] = rec
	}

	return out
}
