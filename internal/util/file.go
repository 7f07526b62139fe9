package util

import (
	"os"
	"path/filepath"
)

// EnsureDir creates path and its parents. Concurrent callers racing on the same
// path all succeed.
func EnsureDir(path string) error {
	return os.MkdirAll(path, 0o755)
}

// EnsureParent creates the directory holding file.
func EnsureParent(file string) error {
	dir := filepath.Dir(file)
	if dir == "." || dir == "" {
		return nil
	}
	return EnsureDir(dir)
}
