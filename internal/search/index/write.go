package index

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Write persists c to path. The document is written to a temporary file in
// the same directory and renamed over path, so readers see either the old or
// the new collection, never a truncated one.
func Write(path string, c *Collection) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("%w: cannot create output dir %s: %w", ErrPersistence, dir, err)
	}
	c.Metadata.TotalItems = c.Len()

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(c); err != nil {
		return fmt.Errorf("%w: cannot encode collection: %w", ErrPersistence, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("%w: cannot create temp file in %s: %w", ErrPersistence, dir, err)
	}
	tmpName := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("%w: cannot write %s: %w", ErrPersistence, tmpName, err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("%w: cannot sync %s: %w", ErrPersistence, tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w: cannot close %s: %w", ErrPersistence, tmpName, err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return fmt.Errorf("%w: cannot chmod %s: %w", ErrPersistence, tmpName, err)
	}
	if err := replaceFile(tmpName, path); err != nil {
		return fmt.Errorf("%w: cannot install %s: %w", ErrPersistence, path, err)
	}
	committed = true
	return nil
}
