// Package coerce casts table columns to the kinds a schema declares.
//
// Casting is column-wide best effort: a column either converts completely
// or keeps its original values and a column_coercion warning is reported.
// Null cells never count as failures.
package coerce
