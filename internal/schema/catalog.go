package schema

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"csv2json/internal/common"
)

// Extensions lists schema file extensions in lookup preference order.
var Extensions = []string{".dt", ".yaml", ".yml", ".json"}

// Entry describes a schema file found by Discover.
type Entry struct {
	// Name is the file stem, which is also the default root element.
	Name        string
	Path        string
	DisplayName string
	Root        string
	Fields      int
	// Err is set when the file could not be loaded.
	Err error
}

// Discover scans dirs for schema files. Files are de-duplicated by stem,
// the first directory (and the preferred extension within it) wins.
// Missing directories are skipped. Entries are sorted by name.
func Discover(dirs ...string) ([]Entry, error) {
	seen := make(map[string]struct{})

	var entries []Entry

	for _, dir := range dirs {
		files, err := os.ReadDir(dir)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}

			return nil, fmt.Errorf("failed to read schema directory %s: %w", dir, err)
		}

		slices.SortStableFunc(files, func(a, b os.DirEntry) int {
			return extRank(a.Name()) - extRank(b.Name())
		})

		for _, f := range files {
			if f.IsDir() || extRank(f.Name()) == len(Extensions) {
				continue
			}

			stem := common.Stem(f.Name())
			if _, ok := seen[stem]; ok {
				continue
			}

			seen[stem] = struct{}{}

			entries = append(entries, describeFile(filepath.Join(dir, f.Name())))
		}
	}

	slices.SortFunc(entries, func(a, b Entry) int {
		return strings.Compare(a.Name, b.Name)
	})

	return entries, nil
}

func describeFile(path string) Entry {
	stem := common.Stem(path)
	e := Entry{Name: stem, Path: path, DisplayName: stem, Root: stem}

	s, err := LoadFile(path)
	if err != nil {
		e.Err = err
		return e
	}

	e.Fields = s.Len()

	if s.DisplayName != "" {
		e.DisplayName = s.DisplayName
	}

	if s.Root != "" {
		e.Root = s.Root
	}

	return e
}

// Resolve finds the schema file for name. A name that is an existing file
// path is returned as is; otherwise every dir is searched for name plus one
// of the Extensions.
func Resolve(name string, dirs ...string) (string, error) {
	if info, err := os.Stat(name); err == nil && !info.IsDir() {
		return name, nil
	}

	for _, dir := range dirs {
		for _, ext := range Extensions {
			candidate := filepath.Join(dir, name+ext)
			if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
				return candidate, nil
			}
		}
	}

	return "", &SchemaParseError{Path: name, Kind: ErrNotFound, Err: fmt.Errorf("searched %s", strings.Join(dirs, ", "))}
}

// extRank returns the preference index of the file's extension, or
// len(Extensions) when it is not a schema file.
func extRank(name string) int {
	if i := slices.Index(Extensions, common.Ext(name)); i >= 0 {
		return i
	}

	return len(Extensions)
}
