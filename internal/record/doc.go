// Package record holds the tabular data model shared by the reader, the
// coercion stage and the reshaper: an insertion-ordered Record per row and
// a Table of rows with their header list.
package record
