package index

import (
	"encoding/json"
	"fmt"
	"time"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/kamusis/skilldex/internal/extract"
)

// Metadata describes one build of a collection.
type Metadata struct {
	Name       string `json:"name"`
	Version    string `json:"version"`
	Created    string `json:"created"`
	TotalItems int    `json:"total_items"`
}

// Entry is one indexed artifact as stored in the collection file.
type Entry struct {
	Type        string   `json:"type"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Keywords    []string `json:"keywords"`
	Category    string   `json:"category"`
	Path        string   `json:"path"`
	ContentHash string   `json:"content_hash,omitempty"`
}

// Collection is the persisted index document. Index keeps insertion order,
// which is also the order queries report results in.
type Collection struct {
	Metadata Metadata                              `json:"metadata"`
	Index    *orderedmap.OrderedMap[string, Entry] `json:"retrieval_index"`
}

// NewCollection returns an empty collection stamped with created.
func NewCollection(name, version string, created time.Time) *Collection {
	return &Collection{
		Metadata: Metadata{
			Name:    name,
			Version: version,
			Created: created.UTC().Format(time.RFC3339),
		},
		Index: orderedmap.New[string, Entry](),
	}
}

// NewEmptyCollection returns a collection with no metadata and no entries.
func NewEmptyCollection() *Collection {
	return &Collection{Index: orderedmap.New[string, Entry]()}
}

// EntryFromRecord tags an extracted record with its type.
func EntryFromRecord(r *extract.Record) Entry {
	return Entry{
		Type:        string(r.Kind),
		Title:       r.Title,
		Description: r.Description,
		Keywords:    r.Keywords,
		Category:    r.Category,
		Path:        r.Path,
		ContentHash: r.ContentHash,
	}
}

// Add appends e under key. Keys must be unique.
func (c *Collection) Add(key string, e Entry) error {
	if c.Index == nil {
		c.Index = orderedmap.New[string, Entry]()
	}
	if _, exists := c.Index.Get(key); exists {
		return fmt.Errorf("duplicate collection key %q", key)
	}
	c.Index.Set(key, e)
	return nil
}

// Len returns the number of entries.
func (c *Collection) Len() int {
	if c == nil || c.Index == nil {
		return 0
	}
	return c.Index.Len()
}

// Get returns the entry stored under key.
func (c *Collection) Get(key string) (Entry, bool) {
	if c == nil || c.Index == nil {
		return Entry{}, false
	}
	return c.Index.Get(key)
}

// Range calls fn for every entry in insertion order until fn returns false.
func (c *Collection) Range(fn func(key string, e Entry) bool) {
	if c == nil || c.Index == nil {
		return
	}
	for pair := c.Index.Oldest(); pair != nil; pair = pair.Next() {
		if !fn(pair.Key, pair.Value) {
			return
		}
	}
}

// Keys returns all keys in insertion order.
func (c *Collection) Keys() []string {
	keys := make([]string, 0, c.Len())
	c.Range(func(key string, _ Entry) bool {
		keys = append(keys, key)
		return true
	})
	return keys
}

// UnmarshalJSON accepts both "retrieval_index" and the older "index" member.
func (c *Collection) UnmarshalJSON(b []byte) error {
	var raw struct {
		Metadata Metadata                              `json:"metadata"`
		Index    *orderedmap.OrderedMap[string, Entry] `json:"retrieval_index"`
		Alias    *orderedmap.OrderedMap[string, Entry] `json:"index"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	c.Metadata = raw.Metadata
	c.Index = raw.Index
	if c.Index == nil {
		c.Index = raw.Alias
	}
	if c.Index == nil {
		return fmt.Errorf("collection has no retrieval_index")
	}
	return nil
}
