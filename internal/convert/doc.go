// Package convert runs the full conversion: load the schema, read the
// input table, apply a field mapping, type the columns, reshape every row
// into a nested document and write {root: [documents...]} as JSON.
//
// Everything that is not fatal is reported to the converter's diagnostic
// sink and collected on the Result. Fatal problems are a schema that
// cannot be loaded, an unreadable input file, a missing root element name
// and write failures.
package convert
