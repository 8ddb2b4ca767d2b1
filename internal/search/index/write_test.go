package index

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrite_EmptyCollection(t *testing.T) {
	p := filepath.Join(t.TempDir(), "nested", "dir", "collection.json")
	c := NewCollection("empty", "1.0.0", time.Now())

	require.NoError(t, Write(p, c))

	b, err := os.ReadFile(p)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"retrieval_index": {}`)
	assert.Contains(t, string(b), `"total_items": 0`)
}

func TestWrite_ReplacesWithoutLeftovers(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "collection.json")
	require.NoError(t, os.WriteFile(p, []byte("previous"), 0o644))

	c := NewCollection("demo", "1.0.0", time.Now())
	require.NoError(t, c.Add("doc_0000", Entry{Type: "document", Title: "Fresh", Keywords: []string{"fresh"}, Path: "x.md"}))
	require.NoError(t, Write(p, c))

	b, err := os.ReadFile(p)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"Fresh"`)
	assert.NotContains(t, string(b), "previous")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	for _, e := range entries {
		assert.False(t, strings.Contains(e.Name(), ".tmp-"), "temp file left behind: %s", e.Name())
	}
}

func TestWrite_FailureKeepsPrevious(t *testing.T) {
	dir := t.TempDir()
	// The target is a non-empty directory holding the previous collection,
	// so the final replace fails after the new file has been staged.
	target := filepath.Join(dir, "collection")
	prevPath := filepath.Join(target, "collection.json")

	prev := NewCollection("previous", "1", time.Now())
	require.NoError(t, prev.Add("doc_0000", Entry{Type: "document", Title: "Old", Path: "docs/old.md"}))
	require.NoError(t, Write(prevPath, prev))
	before, err := os.ReadFile(prevPath)
	require.NoError(t, err)

	next := NewCollection("next", "2", time.Now())
	require.NoError(t, next.Add("doc_0000", Entry{Type: "document", Title: "New", Path: "docs/new.md"}))
	err = Write(target, next)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrPersistence))

	after, err := os.ReadFile(prevPath)
	require.NoError(t, err)
	assert.Equal(t, string(before), string(after))
	got, err := Load(prevPath)
	require.NoError(t, err)
	assert.Equal(t, "previous", got.Metadata.Name)
	assert.Equal(t, []string{"doc_0000"}, got.Keys())
	e, _ := got.Get("doc_0000")
	assert.Equal(t, "Old", e.Title)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	for _, e := range entries {
		assert.False(t, strings.Contains(e.Name(), ".tmp-"), "leftover temp file %s", e.Name())
	}
}

func TestCollection_AddRejectsDuplicates(t *testing.T) {
	c := NewCollection("x", "1", time.Now())
	require.NoError(t, c.Add("k", Entry{}))
	assert.Error(t, c.Add("k", Entry{}))
	assert.Equal(t, 1, c.Len())
}
