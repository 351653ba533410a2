package record

import "slices"

// Table is an ordered sequence of records plus the header list the reader
// produced.
type Table struct {
	Headers []string
	Records []*Record
}

func NewTable(headers ...string) *Table {
	return &Table{Headers: headers}
}

func (t *Table) Len() int {
	return len(t.Records)
}

// Append adds a record and registers any keys missing from Headers.
func (t *Table) Append(r *Record) {
	for k := range r.All() {
		if !slices.Contains(t.Headers, k) {
			t.Headers = append(t.Headers, k)
		}
	}

	t.Records = append(t.Records, r)
}

// HasColumn reports whether the column is in the header or carried by any
// record. A header-only table still has its columns.
func (t *Table) HasColumn(name string) bool {
	if slices.Contains(t.Headers, name) {
		return true
	}

	for _, r := range t.Records {
		if r.Has(name) {
			return true
		}
	}

	return false
}

// Column returns the values of a column by row. Rows without the column
// yield nil.
func (t *Table) Column(name string) []any {
	values := make([]any, len(t.Records))
	for i, r := range t.Records {
		values[i] = r.Value(name)
	}

	return values
}

// SetColumn overwrites the column in every row that carries it.
// values must have one entry per record.
func (t *Table) SetColumn(name string, values []any) {
	for i, r := range t.Records {
		if i >= len(values) {
			return
		}

		if r.Has(name) {
			r.Set(name, values[i])
		}
	}
}

// Clone deep-copies every record.
func (t *Table) Clone() *Table {
	out := &Table{
		Headers: slices.Clone(t.Headers),
		Records: make([]*Record, len(t.Records)),
	}

	for i, r := range t.Records {
		out.Records[i] = r.Clone()
	}

	return out
}
