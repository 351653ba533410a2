// Package reshape turns flat records with dotted column names into nested
// documents.
//
// Reshaping runs two passes. Unflatten splits "a.b" into a nested document
// "a" holding key "b". Merge then handles nulls, turns nested documents
// whose children are equally long sequences into arrays of row documents
// and removes duplicate sequence elements, keeping first occurrences.
package reshape
