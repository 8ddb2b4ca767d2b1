package index

import (
	"encoding/json"
	"fmt"
	"os"
)

// Load reads the collection stored at path.
func Load(path string) (*Collection, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: cannot read %s: %w", ErrLoad, path, err)
	}
	var c Collection
	if err := json.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("%w: invalid collection JSON %s: %w", ErrLoad, path, err)
	}
	return &c, nil
}

// Consistent reports whether metadata.total_items matches the index size.
func (c *Collection) Consistent() bool {
	return c.Metadata.TotalItems == c.Len()
}
