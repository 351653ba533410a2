// Package match proposes field mappings between target field names and
// source column headers.
//
// Key functions:
//   - AutoMap: deterministic best-effort target to source matching
//   - AutoMapDetailed: the same, with the strategy and score per target
//   - Suggest: Levenshtein ranked alternatives for a name
//   - NormalizeIdent: normalizes identifiers for fuzzy matching
//
// Matching tries, per target and in order: an exact header, a
// case-insensitive header, a fixed table of accepted spellings, and finally
// scoring over synonym tokens. Scores must exceed MinScore to be accepted.
package match
