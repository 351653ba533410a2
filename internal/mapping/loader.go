package mapping

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/segmentio/encoding/json"
	"gopkg.in/yaml.v3"

	"csv2json/internal/common"
)

const (
	// FileType marks mapping files written by this tool.
	FileType = "csv2json_mapping"
	// FileVersion is written to new mapping files and assumed when absent.
	FileVersion = "1.0"
)

// ErrInvalidMappingFile is wrapped by errors for files that are not
// mapping files.
var ErrInvalidMappingFile = errors.New("invalid mapping file")

// File is the persisted form of a FieldMapping.
type File struct {
	Version string        `json:"version" yaml:"version"`
	Type    string        `json:"type" yaml:"type"`
	Mapping *FieldMapping `json:"mapping" yaml:"mapping"`
}

// Format selects the mapping file encoding.
type Format int

const (
	FormatJSON Format = iota
	FormatYAML
)

// FormatFor picks the format from the file extension: .yaml and .yml are
// YAML, anything else JSON.
func FormatFor(path string) Format {
	switch common.Ext(path) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// LoadFile loads and parses a mapping file from the given path.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read mapping file %s: %w", path, err)
	}

	f, err := Parse(data, FormatFor(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return f, nil
}

// Parse decodes a mapping file.
func Parse(data []byte, format Format) (*File, error) {
	var f File

	var err error

	switch format {
	case FormatYAML:
		err = yaml.Unmarshal(data, &f)
	default:
		err = json.Unmarshal(data, &f)
	}

	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidMappingFile, err)
	}

	if f.Mapping == nil {
		return nil, fmt.Errorf("%w: missing \"mapping\" key", ErrInvalidMappingFile)
	}

	if f.Type != "" && f.Type != FileType {
		return nil, fmt.Errorf("%w: unexpected type %q", ErrInvalidMappingFile, f.Type)
	}

	applyDefaults(&f)

	return &f, nil
}

// applyDefaults fills in default values for optional fields.
func applyDefaults(f *File) {
	if f.Version == "" {
		f.Version = FileVersion
	}

	if f.Type == "" {
		f.Type = FileType
	}
}

// Marshal serializes fm as a mapping file.
func Marshal(fm *FieldMapping, format Format) ([]byte, error) {
	if fm == nil {
		fm = New()
	}

	f := File{Version: FileVersion, Type: FileType, Mapping: fm}

	if format == FormatYAML {
		return yaml.Marshal(&f)
	}

	var buf bytes.Buffer

	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")

	if err := enc.Encode(&f); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// WriteFile writes fm to path, creating parent directories. The format
// follows the extension.
func WriteFile(fm *FieldMapping, path string) error {
	data, err := Marshal(fm, FormatFor(path))
	if err != nil {
		return fmt.Errorf("failed to marshal mapping: %w", err)
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write mapping file %s: %w", path, err)
	}

	return nil
}
