// Package diagnostic provides structured warnings and notes for the
// conversion pipeline.
//
// Key capabilities:
//   - Column coercion and missing column warnings
//   - Reshape and serialization notes
//   - Auto-mapper explanations with suggestions for unmapped targets
//   - Sinks that collect, bound, log or fan out diagnostics
//
// Non-fatal anomalies never become errors: every stage reports them to a
// Sink and keeps going with a best-effort result.
package diagnostic
