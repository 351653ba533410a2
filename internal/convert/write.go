package convert

import (
	"bytes"
	"compress/flate"
	"fmt"
	"os"
	"path/filepath"

	"github.com/klauspost/pgzip"

	"csv2json/internal/common"
)

const (
	dirPerm  = 0o755
	filePerm = 0o644

	// JSON compresses well at the fastest level.
	gzipLevel = flate.BestSpeed
)

// Compress gzips data when path ends in .gz and returns it unchanged
// otherwise.
func Compress(path string, data []byte) ([]byte, error) {
	if common.Ext(path) != ".gz" {
		return data, nil
	}

	var buf bytes.Buffer

	gz, err := pgzip.NewWriterLevel(&buf, gzipLevel)
	if err != nil {
		return nil, err
	}

	gz.Header.Name = filepath.Base(common.ReplaceExt(path, ""))

	if _, err := gz.Write(data); err != nil {
		return nil, fmt.Errorf("compressing %s: %w", path, err)
	}

	if err := gz.Close(); err != nil {
		return nil, fmt.Errorf("compressing %s: %w", path, err)
	}

	return buf.Bytes(), nil
}

// WriteFileAtomic writes data to a temporary file next to path and renames
// it into place, so readers never see a partial file.
func WriteFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)

	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temporary file for %s: %w", path, err)
	}

	cleanup := func() { _ = os.Remove(tmp.Name()) }

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		cleanup()

		return fmt.Errorf("failed to write output file %s: %w", path, err)
	}

	if err := tmp.Chmod(filePerm); err != nil {
		_ = tmp.Close()
		cleanup()

		return fmt.Errorf("failed to write output file %s: %w", path, err)
	}

	if err := tmp.Close(); err != nil {
		cleanup()
		return fmt.Errorf("failed to write output file %s: %w", path, err)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		cleanup()
		return fmt.Errorf("failed to write output file %s: %w", path, err)
	}

	return nil
}
