// Package extract turns a single skill manifest or documentation file into a
// normalized Record: title, description excerpt, bounded keyword set and
// category.
package extract

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/pkg/errors"
	"golang.org/x/text/unicode/norm"
)

// ErrExtraction is matched by every error returned from Extract.
var ErrExtraction = errors.New("extraction failed")

// Error describes why one artifact could not be extracted.
type Error struct {
	Path string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("cannot extract %s: %v", e.Path, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrExtraction) true for every *Error.
func (e *Error) Is(target error) bool { return target == ErrExtraction }

// Extract reads the artifact at path and applies the rule set for kind.
// Failures are returned as *Error; callers skip the artifact.
func Extract(path string, kind Kind, opts Options) (*Record, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, &Error{Path: path, Err: errors.Wrap(err, "read failed")}
	}
	return FromBytes(path, b, kind, opts)
}

// FromBytes extracts a record from content already read from path.
func FromBytes(path string, content []byte, kind Kind, opts Options) (*Record, error) {
	if !utf8.Valid(content) {
		return nil, &Error{Path: path, Err: errors.New("content is not valid UTF-8")}
	}
	text := norm.NFC.String(strings.TrimPrefix(string(content), "\ufeff"))
	lines := splitLines(text)

	var rec *Record
	switch kind {
	case KindSkill:
		rec = extractSkill(lines, opts.descriptionCap())
	case KindDocument:
		rec = extractDocument(path, lines, opts.descriptionCap())
	default:
		return nil, &Error{Path: path, Err: errors.Errorf("unknown artifact kind %q", kind)}
	}
	rec.Kind = kind
	rec.Path = path
	rec.ContentHash = contentHash(content)
	return rec, nil
}

func extractSkill(lines []string, descCap int) *Record {
	h := ParseHeader(lines)

	title, _ := h.Get("name")
	if title == "" {
		title = firstHeading(lines)
	}
	if title == "" {
		title = FallbackSkillTitle
	}

	desc := ""
	if v, ok := h.Get("description"); ok {
		desc = truncate(v, descCap)
	}
	if desc == "" {
		desc = fallbackDescription(lines, descCap)
	}
	if desc == "" {
		desc = FallbackSkillDescription
	}

	kwTitle := title
	if kwTitle == FallbackSkillTitle {
		kwTitle = ""
	}
	found := skillKeywords(kwTitle, desc)
	return &Record{
		Title:       title,
		Description: desc,
		Keywords:    found.result(fallbackSkillKeywords),
		Category:    skillCategory(title, found.list),
	}
}

func extractDocument(path string, lines []string, descCap int) *Record {
	base := filepath.Base(path)
	title := strings.ReplaceAll(strings.TrimSuffix(base, filepath.Ext(base)), "_", " ")
	if hd := firstHeading(lines); hd != "" {
		title = hd
	}
	if strings.TrimSpace(title) == "" {
		title = base
	}

	desc := fallbackDescription(lines, descCap)
	if desc == "" {
		desc = FallbackDocumentDescription
	}

	return &Record{
		Title:       title,
		Description: desc,
		Keywords:    documentKeywords(title).result(fallbackDocumentKeywords),
		Category:    CategoryCoreDocumentation,
	}
}

// fallbackDescription returns the first body line that looks like prose.
func fallbackDescription(lines []string, descCap int) string {
	for _, ln := range lines {
		t := strings.TrimSpace(ln)
		if t == "" || strings.HasPrefix(t, "#") || strings.HasPrefix(t, headerDelimiter) {
			continue
		}
		if utf8.RuneCountInString(t) > 20 {
			return truncate(t, descCap)
		}
	}
	return ""
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}

func splitLines(text string) []string {
	lines := strings.Split(text, "\n")
	for i, ln := range lines {
		lines[i] = strings.TrimSuffix(ln, "\r")
	}
	return lines
}

func contentHash(b []byte) string {
	sum := md5.Sum(b)
	return hex.EncodeToString(sum[:])[:8]
}
