// Package writer saves fetched file contents to disk.
package writer

import (
	"fmt"
	"io"
	"path/filepath"
)

// FileWriter abstracts the filesystem operations used when saving a file.
type FileWriter interface {
	// Write creates or overwrites a file at the given path with the data read from r.
	Write(path string, r io.Reader) error

	// MkdirAll creates a directory path and all necessary parents.
	MkdirAll(path string) error

	// Exists reports whether the given path exists.
	Exists(path string) bool
}

// Save writes r to path, creating parent directories. An existing file is
// only replaced when overwrite is set.
func Save(fs FileWriter, path string, r io.Reader, overwrite bool) error {
	if !overwrite && fs.Exists(path) {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := fs.MkdirAll(dir); err != nil {
			return fmt.Errorf("creating directory: %w", err)
		}
	}
	if err := fs.Write(path, r); err != nil {
		return fmt.Errorf("writing file %s: %w", path, err)
	}
	return nil
}
