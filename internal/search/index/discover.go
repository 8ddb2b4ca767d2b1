package index

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
)

// Source is one configured root to scan.
type Source struct {
	// Root is the directory scanned for artifacts.
	Root string
	// Glob selects artifacts relative to Root, e.g. "*/SKILL.md" or "**/*.md".
	Glob string
	// Type selects the extraction rule set and is stored on every entry.
	Type string
	// Prefix starts every key issued for this source.
	Prefix string
	// Exclude lists patterns, relative to Root, that are never indexed.
	Exclude []string
}

func (s Source) validate() error {
	if s.Root == "" {
		return fmt.Errorf("source root is required")
	}
	if s.Prefix == "" {
		return fmt.Errorf("source %s: key prefix is required", s.Root)
	}
	if s.Glob == "" {
		return fmt.Errorf("source %s: glob is required", s.Root)
	}
	if !doublestar.ValidatePattern(s.Glob) {
		return fmt.Errorf("source %s: invalid glob %q", s.Root, s.Glob)
	}
	for _, ex := range s.Exclude {
		if !doublestar.ValidatePattern(ex) {
			return fmt.Errorf("source %s: invalid exclude pattern %q", s.Root, ex)
		}
	}
	return nil
}

// Discover returns the files under s.Root matching s.Glob, sorted so that
// key issuance does not depend on directory read order.
func Discover(s Source) ([]string, error) {
	info, err := os.Stat(s.Root)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrSourceUnavailable, s.Root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: not a directory: %s", ErrSourceUnavailable, s.Root)
	}

	matches, err := doublestar.Glob(os.DirFS(s.Root), s.Glob)
	if err != nil {
		return nil, fmt.Errorf("%w: cannot glob %s in %s: %w", ErrSourceUnavailable, s.Glob, s.Root, err)
	}
	sort.Strings(matches)

	out := make([]string, 0, len(matches))
	for _, rel := range matches {
		if excluded(rel, s.Exclude) {
			continue
		}
		full := filepath.Join(s.Root, filepath.FromSlash(rel))
		st, err := os.Stat(full)
		if err != nil || st.IsDir() {
			continue
		}
		out = append(out, full)
	}
	return out, nil
}

func excluded(rel string, patterns []string) bool {
	for _, p := range patterns {
		if ok, _ := doublestar.Match(p, rel); ok {
			return true
		}
	}
	return false
}
