package extract

import "strings"

const (
	headerDelimiter  = "---"
	headerScanLines  = 20
	headingScanLines = 10
)

// Header is the key/value block delimited by "---" lines at the top of a
// skill manifest. Only flat "key: value" pairs are understood.
type Header struct {
	Present bool
	Fields  map[string]string
}

// Get returns the trimmed value of key and whether it was non-empty.
func (h Header) Get(key string) (string, bool) {
	v, ok := h.Fields[key]
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

// ParseHeader parses the header block at the start of lines.
//
// The block exists only when the first line is a standalone "---". At most
// headerScanLines lines after it are inspected, stopping at the closing
// delimiter. A value starting with "|" or ">" is a block scalar: the indented
// or blank lines that follow are trimmed and joined with single spaces.
func ParseHeader(lines []string) Header {
	h := Header{Fields: map[string]string{}}
	if len(lines) == 0 || strings.TrimSpace(strings.TrimPrefix(lines[0], "\ufeff")) != headerDelimiter {
		return h
	}
	h.Present = true

	end := len(lines)
	if end > headerScanLines+1 {
		end = headerScanLines + 1
	}
	for i := 1; i < end; i++ {
		line := lines[i]
		if strings.TrimSpace(line) == headerDelimiter {
			break
		}
		if isIndented(line) {
			continue
		}
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		value = strings.TrimSpace(value)
		if isBlockScalar(value) {
			value = joinBlock(lines[i+1:])
		}
		if _, seen := h.Fields[key]; !seen {
			h.Fields[key] = value
		}
	}
	return h
}

func isIndented(line string) bool {
	return strings.HasPrefix(line, " ") || strings.HasPrefix(line, "\t")
}

func isBlockScalar(value string) bool {
	return strings.HasPrefix(value, "|") || strings.HasPrefix(value, ">")
}

// joinBlock consumes indented or blank lines until the first line that is
// neither.
func joinBlock(lines []string) string {
	var parts []string
	for _, ln := range lines {
		t := strings.TrimSpace(ln)
		if t == "" {
			continue
		}
		if !isIndented(ln) {
			break
		}
		parts = append(parts, t)
	}
	return strings.Join(parts, " ")
}

// firstHeading returns the text of the first level-1 heading within the
// first headingScanLines lines.
func firstHeading(lines []string) string {
	for i, ln := range lines {
		if i >= headingScanLines {
			break
		}
		t := strings.TrimSpace(ln)
		if strings.HasPrefix(t, "# ") {
			return strings.TrimSpace(t[2:])
		}
	}
	return ""
}
