package preview

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const manifest = `---
name: Weather Lookup
description: 查询当前天气和获取预报信息的工具
tags:
  - weather
  - forecast
---
# Weather Lookup

Looks up the weather.

## Usage *quick*

### Options

## Limits
`

func TestParse_FieldsAndOutline(t *testing.T) {
	p := Parse([]byte(manifest))
	require.NoError(t, p.HeaderErr)

	assert.Equal(t, []Field{
		{Key: "description", Value: "查询当前天气和获取预报信息的工具"},
		{Key: "name", Value: "Weather Lookup"},
		{Key: "tags", Value: "weather, forecast"},
	}, p.Fields)
	assert.Equal(t, []Heading{
		{Level: 1, Text: "Weather Lookup"},
		{Level: 2, Text: "Usage quick"},
		{Level: 3, Text: "Options"},
		{Level: 2, Text: "Limits"},
	}, p.Headings)
	assert.Equal(t, []string{"Weather Lookup", "  Usage quick", "    Options", "  Limits"}, p.Outline())
}

func TestParse_NoHeader(t *testing.T) {
	p := Parse([]byte("# Plain\n\ntext\n"))
	assert.NoError(t, p.HeaderErr)
	assert.Empty(t, p.Fields)
	assert.Equal(t, []Heading{{Level: 1, Text: "Plain"}}, p.Headings)
}

func TestFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "SKILL.md")
	require.NoError(t, os.WriteFile(path, []byte(manifest), 0o644))

	p, err := File(path)
	require.NoError(t, err)
	assert.Equal(t, path, p.Path)
	assert.Len(t, p.Headings, 4)

	_, err = File(filepath.Join(t.TempDir(), "missing.md"))
	assert.Error(t, err)
}
