// Package tabular reads delimited text and Excel workbooks into record
// tables.
//
// Every cell is read as text; empty cells become nil. Typing is left to the
// coerce package. Header names are made unique the way pandas does it: a
// blank header at position i becomes "Unnamed: i" and repeated names get a
// numeric suffix ("col", "col.1", "col.2").
package tabular
