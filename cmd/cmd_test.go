package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

// resetFlags restores every flag to its default so runs do not leak state.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	oldOut, oldErr := stdout, stderr
	stdout, stderr = &buf, &buf
	defer func() { stdout, stderr = oldOut, oldErr }()

	resetFlags(rootCmd)
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return buf.String(), err
}

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	p := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
}

// setupWorkspace isolates HOME and returns a config path whose default
// sources point at a small fixture workspace.
func setupWorkspace(t *testing.T) (cfgPath, ws string) {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)
	for _, k := range []string{"SKILLDEX_WORKSPACE_PATH", "SKILLDEX_OUTPUT", "SKILLDEX_DESCRIPTION_CAP", "SKILLDEX_INCLUDE_FALLBACK_TITLES",
		"SKILLDEX_NAME", "SKILLDEX_VERSION", "SKILLDEX_LOCK_TIMEOUT", "SKILLDEX_LOG_LEVEL", "SKILLDEX_LOG_FORMAT"} {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}

	ws = t.TempDir()
	writeFile(t, ws, "skills/weather/SKILL.md", "---\nname: Weather Lookup\ndescription: 查询当前天气和获取预报信息的工具\n---\n# Weather Lookup\n\n## Usage\n")
	writeFile(t, ws, "skills/github/SKILL.md", "---\nname: GitHub Sync\ndescription: integration with the GitHub API\n---\n")
	writeFile(t, ws, "docs/README.md", "# Workspace docs\n")
	writeFile(t, ws, "docs/api_reference.md", "# API Reference\n\nEvery endpoint exposed by the gateway is listed here.\n")

	cfgPath = filepath.Join(t.TempDir(), "skilldex.yaml")
	body := "workspace_path: " + ws + "\noutput: collections/c.json\n"
	require.NoError(t, os.WriteFile(cfgPath, []byte(body), 0o644))
	return cfgPath, ws
}

func TestBuildSearchList(t *testing.T) {
	cfg, ws := setupWorkspace(t)

	out, err := run(t, "build", "--config", cfg)
	require.NoError(t, err, out)
	assert.Contains(t, out, "collection written")
	assert.Contains(t, out, "3 total / 2 skill / 1 document / 0 skipped")
	assert.FileExists(t, filepath.Join(ws, "collections", "c.json"))

	out, err = run(t, "search", "weather", "--config", cfg)
	require.NoError(t, err)
	assert.Contains(t, out, "Weather Lookup")
	assert.Contains(t, out, "category: utility")
	assert.NotContains(t, out, "GitHub Sync")

	out, err = run(t, "search", "api", "skill", "--config", cfg)
	require.NoError(t, err)
	assert.Contains(t, out, "GitHub Sync")
	assert.NotContains(t, out, "API Reference")

	out, err = run(t, "search", "no-such-thing", "--config", cfg)
	require.NoError(t, err)
	assert.Contains(t, out, `no results for "no-such-thing"`)

	out, err = run(t, "list", "documents", "--config", cfg)
	require.NoError(t, err)
	assert.Contains(t, out, "Entries (1):")
	assert.Contains(t, out, "API Reference")
	assert.NotContains(t, out, "Workspace docs")
}

func TestSearchJSON(t *testing.T) {
	cfg, _ := setupWorkspace(t)
	_, err := run(t, "build", "--config", cfg)
	require.NoError(t, err)

	out, err := run(t, "search", "", "--json", "--config", cfg)
	require.NoError(t, err)

	var results []struct {
		Key   string `json:"key"`
		Title string `json:"title"`
		Type  string `json:"type"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &results))
	require.Len(t, results, 3)
	assert.Equal(t, "GitHub Sync", results[0].Title)
	assert.Equal(t, "local_skill_0000", results[0].Key)
	assert.Equal(t, "doc_0002", results[2].Key)
}

func TestSearchWithoutCollection(t *testing.T) {
	cfg, _ := setupWorkspace(t)

	out, err := run(t, "search", "weather", "--config", cfg)
	require.NoError(t, err)
	assert.Contains(t, out, "collection not loaded")
	assert.Contains(t, out, "no results")

	out, err = run(t, "list", "--config", cfg)
	require.NoError(t, err)
	assert.Contains(t, out, "no entries")
}

func TestBuildFlags(t *testing.T) {
	cfg, ws := setupWorkspace(t)
	writeFile(t, ws, "skills/anon/SKILL.md", "tiny\n")

	out, err := run(t, "build", "--config", cfg, "--output", "other/out.json", "--include-fallback", "--description-cap", "10")
	require.NoError(t, err, out)
	assert.Contains(t, out, "4 total / 3 skill")

	b, err := os.ReadFile(filepath.Join(ws, "other", "out.json"))
	require.NoError(t, err)
	assert.Contains(t, string(b), `"title": "unknown"`)
	assert.Contains(t, string(b), `"description": "查询当前天气和获取预"`)

	_, err = run(t, "build", "--config", cfg, "--description-cap", "0")
	assert.Error(t, err)
}

func TestShowAndInfo(t *testing.T) {
	cfg, _ := setupWorkspace(t)
	_, err := run(t, "build", "--config", cfg)
	require.NoError(t, err)

	out, err := run(t, "show", "local_skill_0001", "--config", cfg)
	require.NoError(t, err, out)
	assert.Contains(t, out, "=== Weather Lookup ===")
	assert.Contains(t, out, "name: Weather Lookup")
	assert.Contains(t, out, "Outline:")
	assert.Contains(t, out, "  Usage")

	_, err = run(t, "show", "missing_0001", "--config", cfg)
	assert.Error(t, err)

	out, err = run(t, "info", "--config", cfg)
	require.NoError(t, err)
	assert.Contains(t, out, "Total items: 3")
	assert.Contains(t, out, "core-documentation")
	assert.True(t, strings.Contains(out, "skill") && strings.Contains(out, "document"))
}

func TestDoctorAfterBuild(t *testing.T) {
	cfg, _ := setupWorkspace(t)
	_, err := run(t, "build", "--config", cfg)
	require.NoError(t, err)

	out, err := run(t, "doctor", "--config", cfg)
	require.NoError(t, err, out)
	assert.Contains(t, out, "All checks passed")
	assert.Contains(t, out, "[openclaw_skill]")
}

func TestDoctorReportsOverrideOrigins(t *testing.T) {
	cfg, _ := setupWorkspace(t)
	_, err := run(t, "build", "--config", cfg)
	require.NoError(t, err)
	home := os.Getenv("HOME")
	writeFile(t, home, ".skilldex/.env", "SKILLDEX_DESCRIPTION_CAP=150\n")
	t.Setenv("SKILLDEX_LOG_LEVEL", "warn")

	out, err := run(t, "doctor", "--config", cfg)
	require.NoError(t, err, out)
	assert.Contains(t, out, "SKILLDEX_DESCRIPTION_CAP=150 (from .env)")
	assert.Contains(t, out, "SKILLDEX_LOG_LEVEL=warn (from environment)")
	assert.NotContains(t, out, "SKILLDEX_OUTPUT=")
}

func TestDoctorWithoutOverrides(t *testing.T) {
	cfg, _ := setupWorkspace(t)
	_, err := run(t, "build", "--config", cfg)
	require.NoError(t, err)

	out, err := run(t, "doctor", "--config", cfg)
	require.NoError(t, err, out)
	assert.Contains(t, out, "no SKILLDEX_* overrides")
}

func TestInitDoesNotOverwrite(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)

	out, err := run(t, "init", "--workspace", "/srv/ws")
	require.NoError(t, err, out)
	p := filepath.Join(home, ".skilldex", "skilldex.yaml")
	b, err := os.ReadFile(p)
	require.NoError(t, err)
	assert.Contains(t, string(b), "workspace_path: /srv/ws")
	assert.FileExists(t, filepath.Join(home, ".skilldex", ".env"))

	out, err = run(t, "init")
	require.NoError(t, err)
	assert.Contains(t, out, "config already exists")
	b2, err := os.ReadFile(p)
	require.NoError(t, err)
	assert.Equal(t, string(b), string(b2))
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "Version:    dev")
}
