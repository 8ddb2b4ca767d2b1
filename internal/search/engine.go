package search

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/kamusis/skilldex/internal/logger"
	"github.com/kamusis/skilldex/internal/search/index"
)

// Engine answers read-only queries against one loaded collection.
// It is immutable after construction and safe for concurrent use.
type Engine struct {
	col     *index.Collection
	path    string
	loadErr error
}

// Open loads the collection at path. A missing or malformed file is logged
// and yields an empty engine; Err reports what went wrong.
func Open(ctx context.Context, path string) *Engine {
	col, err := index.Load(path)
	if err != nil {
		logger.G(ctx).WithFields(logrus.Fields{"path": path}).WithError(err).
			Warn("collection unavailable, serving empty results")
		return &Engine{col: index.NewEmptyCollection(), path: path, loadErr: err}
	}
	if !col.Consistent() {
		logger.G(ctx).WithFields(logrus.Fields{
			"path":        path,
			"total_items": col.Metadata.TotalItems,
			"entries":     col.Len(),
		}).Warn("collection metadata disagrees with its index")
	}
	return &Engine{col: col, path: path}
}

// New wraps an already loaded collection.
func New(col *index.Collection) *Engine {
	if col == nil {
		col = index.NewEmptyCollection()
	}
	return &Engine{col: col}
}

// Err returns the load failure, if any.
func (e *Engine) Err() error { return e.loadErr }

// Path returns the collection file the engine was opened from.
func (e *Engine) Path() string { return e.path }

// Len returns the number of entries available to queries.
func (e *Engine) Len() int { return e.col.Len() }

// Search returns the entries of the given type (any type when empty) whose
// title or keywords contain query, case-insensitively, in collection order.
func (e *Engine) Search(query, typeFilter string) []Result {
	q := strings.ToLower(query)
	t := normalizeType(typeFilter)

	out := []Result{}
	e.col.Range(func(key string, en index.Entry) bool {
		if typeMatch(en, t) && keywordMatch(en, q) {
			out = append(out, Result{
				Key:      key,
				Title:    en.Title,
				Type:     en.Type,
				Category: en.Category,
				Path:     en.Path,
				Keywords: firstKeywords(en.Keywords),
			})
		}
		return true
	})
	return out
}

// List returns every entry of the given type (all entries when empty) in
// collection order.
func (e *Engine) List(typeFilter string) []Item {
	t := normalizeType(typeFilter)

	out := []Item{}
	e.col.Range(func(key string, en index.Entry) bool {
		if typeMatch(en, t) {
			out = append(out, Item{
				Key:      key,
				Title:    en.Title,
				Type:     en.Type,
				Category: en.Category,
				Path:     en.Path,
			})
		}
		return true
	})
	return out
}
