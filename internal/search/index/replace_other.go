//go:build !windows

package index

import (
	"os"
	"path/filepath"
)

// replaceFile atomically renames src over dst and flushes the directory entry.
func replaceFile(src, dst string) error {
	if err := os.Rename(src, dst); err != nil {
		return err
	}
	// Best-effort: not every filesystem supports syncing a directory.
	if d, err := os.Open(filepath.Dir(dst)); err == nil {
		_ = d.Sync()
		_ = d.Close()
	}
	return nil
}
