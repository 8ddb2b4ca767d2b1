package search

import (
	"strings"

	"github.com/kamusis/skilldex/internal/extract"
	"github.com/kamusis/skilldex/internal/search/index"
)

// keywordMatch reports whether q, already lower-cased, is a substring of the
// entry title or of any of its keywords. The empty query matches everything.
func keywordMatch(e index.Entry, q string) bool {
	if strings.Contains(strings.ToLower(e.Title), q) {
		return true
	}
	for _, kw := range e.Keywords {
		if strings.Contains(strings.ToLower(kw), q) {
			return true
		}
	}
	return false
}

// normalizeType maps the accepted type spellings onto the stored values.
// Unknown filters are kept as given and simply match nothing.
func normalizeType(typeFilter string) string {
	t := strings.TrimSpace(typeFilter)
	if t == "" {
		return ""
	}
	if k, ok := extract.ParseKind(t); ok {
		return string(k)
	}
	return strings.ToLower(t)
}

func typeMatch(e index.Entry, typeFilter string) bool {
	return typeFilter == "" || e.Type == typeFilter
}

func firstKeywords(kws []string) []string {
	n := len(kws)
	if n > maxResultKeywords {
		n = maxResultKeywords
	}
	out := make([]string, n)
	copy(out, kws[:n])
	return out
}
