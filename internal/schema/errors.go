package schema

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound reports a schema file that does not exist.
	ErrNotFound = errors.New("schema not found")
	// ErrSyntax reports text that is neither YAML nor a literal dictionary.
	ErrSyntax = errors.New("schema syntax error")
	// ErrShape reports a well-formed document that is not a field mapping.
	ErrShape = errors.New("schema is not a field mapping")
	// ErrUnknownType reports a field type tag that is not recognized.
	ErrUnknownType = errors.New("unknown field type")
)

// SchemaParseError is returned by every loader function. Kind is one of the
// package sentinels and matches with errors.Is.
type SchemaParseError struct {
	Path string
	Kind error
	Err  error
}

func (e *SchemaParseError) Error() string {
	src := e.Path
	if src == "" {
		src = "<input>"
	}

	if e.Err == nil {
		return fmt.Sprintf("failed to load schema %s: %v", src, e.Kind)
	}

	return fmt.Sprintf("failed to load schema %s: %v: %v", src, e.Kind, e.Err)
}

func (e *SchemaParseError) Is(target error) bool {
	return target == e.Kind
}

func (e *SchemaParseError) Unwrap() error {
	return e.Err
}
