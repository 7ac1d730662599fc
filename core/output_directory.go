package core

import (
	"os"
	"path/filepath"
)

// DefaultOutputDir is where icons are written when ICONS_OUTPUT_DIR is unset.
const DefaultOutputDir = "public/icons"

// OutputDirMode is the permission used when creating the output directory.
const OutputDirMode = 0755

// EnsureOutputDirectory creates dir and any missing parents.
// Returns the cleaned directory path.
func EnsureOutputDirectory(dir string) (string, error) {
	if dir == "" {
		dir = DefaultOutputDir
	}
	dir = filepath.Clean(dir)
	if err := os.MkdirAll(dir, OutputDirMode); err != nil {
		return "", ErrOutputDirUnusable(dir, err)
	}
	return dir, nil
}

// OutputFilePath returns the path of name inside dir.
// Example: OutputFilePath("public/icons", "icon-192.png") -> "public/icons/icon-192.png"
func OutputFilePath(dir, name string) string {
	return filepath.Join(dir, name)
}
