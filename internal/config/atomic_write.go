package config

import (
	"os"
	"path/filepath"
)

// AtomicWrite writes data to a file atomically, creating parent directories
// as needed. An existing file keeps its permissions.
func AtomicWrite(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return err
	}

	perm := os.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		perm = info.Mode().Perm()
	}

	return atomicWriteFile(path, data, perm)
}
