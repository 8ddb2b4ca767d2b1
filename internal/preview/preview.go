// Package preview summarizes an indexed artifact for display: its header
// fields and the outline of its headings.
package preview

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"github.com/yuin/goldmark"
	meta "github.com/yuin/goldmark-meta"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

// Heading is one entry of the document outline.
type Heading struct {
	Level int
	Text  string
}

// Field is one header key with its value rendered as text.
type Field struct {
	Key   string
	Value string
}

// Preview is the parsed view of one Markdown artifact.
type Preview struct {
	Path     string
	Fields   []Field
	Headings []Heading
	// HeaderErr is set when the header block exists but is not valid YAML.
	HeaderErr error
}

// File parses the Markdown file at path.
func File(path string) (*Preview, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot read %s", path)
	}
	p := Parse(src)
	p.Path = path
	return p, nil
}

// Parse builds a preview from Markdown source.
func Parse(src []byte) *Preview {
	md := goldmark.New(goldmark.WithExtensions(meta.Meta))
	pctx := parser.NewContext()
	doc := md.Parser().Parse(text.NewReader(src), parser.WithContext(pctx))

	p := &Preview{}
	fields, err := meta.TryGet(pctx)
	if err != nil {
		p.HeaderErr = errors.Wrap(err, "invalid header block")
	}
	p.Fields = sortedFields(fields)

	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if h, ok := n.(*ast.Heading); ok {
			p.Headings = append(p.Headings, Heading{Level: h.Level, Text: nodeText(h, src)})
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	return p
}

// Outline renders the headings as an indented list.
func (p *Preview) Outline() []string {
	out := make([]string, 0, len(p.Headings))
	for _, h := range p.Headings {
		out = append(out, strings.Repeat("  ", h.Level-1)+h.Text)
	}
	return out
}

func sortedFields(m map[string]any) []Field {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]Field, 0, len(keys))
	for _, k := range keys {
		out = append(out, Field{Key: k, Value: render(m[k])})
	}
	return out
}

func render(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(t)
	case []any:
		parts := make([]string, 0, len(t))
		for _, e := range t {
			parts = append(parts, render(e))
		}
		return strings.Join(parts, ", ")
	default:
		return fmt.Sprint(t)
	}
}

func nodeText(n ast.Node, src []byte) string {
	var b strings.Builder
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch t := c.(type) {
		case *ast.Text:
			b.Write(t.Segment.Value(src))
			if t.SoftLineBreak() {
				b.WriteByte(' ')
			}
		case *ast.String:
			b.Write(t.Value)
		default:
			b.WriteString(nodeText(c, src))
		}
	}
	return strings.TrimSpace(b.String())
}
