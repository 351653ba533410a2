package diagnostic

import (
	"errors"
	"fmt"
	"strings"

	"csv2json/internal/common"
)

// Codes reported by the pipeline stages.
const (
	CodeSchemaParse          = "schema_parse"
	CodeColumnCoercion       = "column_coercion"
	CodeMissingSchemaColumn  = "missing_schema_column"
	CodeReshapeInvariant     = "reshape_invariant"
	CodeSerializationSkip    = "serialization_skip"
	CodeMappingSourceMissing = "mapping_source_missing"
	CodeMappingEmpty         = "mapping_empty"
	CodeUnmappedTarget       = "unmapped_target"
	CodeUnknownTarget        = "unknown_target"
	CodeUnknownSource        = "unknown_source"
	CodeTypeInferred         = "type_inferred"
)

// Diagnostics holds all diagnostic information from a conversion.
// It is not safe for concurrent use, see Ring for that.
type Diagnostics struct {
	Errors   []Diagnostic
	Warnings []Diagnostic
	Infos    []Diagnostic
	Debugs   []Diagnostic
}

// Diagnostic represents a single diagnostic message.
type Diagnostic struct {
	// Severity of the diagnostic.
	Severity DiagnosticSeverity
	// Code is a unique identifier for this type of diagnostic.
	Code string
	// Message is the human-readable description.
	Message string
	// Column identifies which column or field this relates to (if any).
	Column string
	// Row is the 1-based data row this relates to, 0 when not row specific.
	Row int
	// Suggestions are potential fixes or alternatives.
	Suggestions []string
}

// DiagnosticSeverity represents the severity level of a diagnostic.
type DiagnosticSeverity int

const (
	DiagnosticDebug DiagnosticSeverity = iota
	DiagnosticInfo
	DiagnosticWarning
	DiagnosticError
)

// String returns a human-readable severity name.
func (s DiagnosticSeverity) String() string {
	switch s {
	case DiagnosticDebug:
		return "debug"
	case DiagnosticInfo:
		return "info"
	case DiagnosticWarning:
		return "warning"
	case DiagnosticError:
		return "error"
	default:
		return common.UnknownStr
	}
}

// Debug builds a debug level diagnostic.
func Debug(code, column, message string) Diagnostic {
	return Diagnostic{Severity: DiagnosticDebug, Code: code, Column: column, Message: message}
}

// Info builds an info level diagnostic.
func Info(code, column, message string) Diagnostic {
	return Diagnostic{Severity: DiagnosticInfo, Code: code, Column: column, Message: message}
}

// Warning builds a warning level diagnostic.
func Warning(code, column, message string) Diagnostic {
	return Diagnostic{Severity: DiagnosticWarning, Code: code, Column: column, Message: message}
}

// AtRow returns a copy of d bound to a data row.
func (d Diagnostic) AtRow(row int) Diagnostic {
	d.Row = row
	return d
}

// WithSuggestions returns a copy of d carrying suggestions.
func (d Diagnostic) WithSuggestions(suggestions ...string) Diagnostic {
	d.Suggestions = suggestions
	return d
}

// Report implements Sink by appending d to the slice of its severity.
func (d *Diagnostics) Report(diag Diagnostic) {
	switch diag.Severity {
	case DiagnosticError:
		d.Errors = append(d.Errors, diag)
	case DiagnosticWarning:
		d.Warnings = append(d.Warnings, diag)
	case DiagnosticInfo:
		d.Infos = append(d.Infos, diag)
	default:
		d.Debugs = append(d.Debugs, diag)
	}
}

// AddError adds an error diagnostic.
func (d *Diagnostics) AddError(code, message, column string) {
	d.Report(Diagnostic{Severity: DiagnosticError, Code: code, Message: message, Column: column})
}

// AddWarning adds a warning diagnostic.
func (d *Diagnostics) AddWarning(code, message, column string) {
	d.Report(Warning(code, column, message))
}

// AddInfo adds an info diagnostic.
func (d *Diagnostics) AddInfo(code, message, column string) {
	d.Report(Info(code, column, message))
}

// HasErrors returns true if there are any error diagnostics.
func (d *Diagnostics) HasErrors() bool {
	return len(d.Errors) > 0
}

// HasWarnings returns true if there are any warning diagnostics.
func (d *Diagnostics) HasWarnings() bool {
	return len(d.Warnings) > 0
}

// Len returns the number of diagnostics of every severity.
func (d *Diagnostics) Len() int {
	return len(d.Errors) + len(d.Warnings) + len(d.Infos) + len(d.Debugs)
}

// All returns every diagnostic, most severe first.
func (d *Diagnostics) All() []Diagnostic {
	out := make([]Diagnostic, 0, d.Len())
	out = append(out, d.Errors...)
	out = append(out, d.Warnings...)
	out = append(out, d.Infos...)
	out = append(out, d.Debugs...)

	return out
}

// ByCode returns the diagnostics carrying code, most severe first.
func (d *Diagnostics) ByCode(code string) []Diagnostic {
	var out []Diagnostic

	for _, diag := range d.All() {
		if diag.Code == code {
			out = append(out, diag)
		}
	}

	return out
}

// Merge merges another Diagnostics instance into this one.
func (d *Diagnostics) Merge(other Diagnostics) {
	d.Errors = append(d.Errors, other.Errors...)
	d.Warnings = append(d.Warnings, other.Warnings...)
	d.Infos = append(d.Infos, other.Infos...)
	d.Debugs = append(d.Debugs, other.Debugs...)
}

// IsValid returns true if there are no errors.
func (d *Diagnostics) IsValid() bool {
	return len(d.Errors) == 0
}

// Error returns a combined error from all error diagnostics, or nil if valid.
func (d *Diagnostics) Error() error {
	if d.IsValid() {
		return nil
	}

	var parts []string
	for _, e := range d.Errors {
		parts = append(parts, e.String())
	}

	return errors.New(strings.Join(parts, "; "))
}

// String returns a formatted diagnostic string.
func (d Diagnostic) String() string {
	var prefix []string
	if d.Column != "" {
		prefix = append(prefix, d.Column)
	}

	if d.Row > 0 {
		prefix = append(prefix, fmt.Sprintf("row %d", d.Row))
	}

	msg := d.Message
	if d.Code != "" {
		msg = fmt.Sprintf("[%s] %s", d.Code, msg)
	}

	if len(d.Suggestions) > 0 {
		msg += " (did you mean: " + strings.Join(d.Suggestions, ", ") + "?)"
	}

	if len(prefix) > 0 {
		return strings.Join(prefix, " ") + ": " + msg
	}

	return msg
}
