package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDotEnv_NotExist(t *testing.T) {
	oldHome := os.Getenv("HOME")
	t.Setenv("HOME", t.TempDir())
	t.Cleanup(func() { _ = os.Setenv("HOME", oldHome) })

	m, err := LoadDotEnv()
	if err != nil {
		t.Fatalf("LoadDotEnv: %v", err)
	}
	if len(m) != 0 {
		t.Fatalf("expected empty map, got %v", m)
	}
}

func TestLoadDotEnv_ParsesKeyValue(t *testing.T) {
	oldHome := os.Getenv("HOME")
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Cleanup(func() { _ = os.Setenv("HOME", oldHome) })

	dir := filepath.Join(home, ".skilldex")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("# comment\nA=1\nB=two\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	m, err := LoadDotEnv()
	if err != nil {
		t.Fatalf("LoadDotEnv: %v", err)
	}
	if m["A"] != "1" || m["B"] != "two" {
		t.Fatalf("unexpected map: %v", m)
	}
}

func TestGetConfigValue_EnvOverridesDotEnv(t *testing.T) {
	oldHome := os.Getenv("HOME")
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Cleanup(func() { _ = os.Setenv("HOME", oldHome) })

	dir := filepath.Join(home, ".skilldex")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("K=fromdotenv\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	// env override
	t.Setenv("K", "fromenv")

	v, origin, err := GetConfigValue("K")
	if err != nil {
		t.Fatalf("GetConfigValue: %v", err)
	}
	if v != "fromenv" || origin != OriginEnv {
		t.Fatalf("expected env override, got %q from %q", v, origin)
	}
}

func TestGetConfigValue_Origins(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	dir := filepath.Join(home, ".skilldex")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("SKILLDEX_TEST_ONLY_FILE=f\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("SKILLDEX_TEST_ONLY_FILE", "")
	_ = os.Unsetenv("SKILLDEX_TEST_ONLY_FILE")
	t.Setenv("SKILLDEX_TEST_UNSET", "")
	_ = os.Unsetenv("SKILLDEX_TEST_UNSET")

	v, origin, err := GetConfigValue("SKILLDEX_TEST_ONLY_FILE")
	if err != nil {
		t.Fatalf("GetConfigValue: %v", err)
	}
	if v != "f" || origin != OriginDotEnv {
		t.Fatalf("expected dotenv value, got %q from %q", v, origin)
	}

	v, origin, err = GetConfigValue("SKILLDEX_TEST_UNSET")
	if err != nil {
		t.Fatalf("GetConfigValue: %v", err)
	}
	if v != "" || origin != "" {
		t.Fatalf("expected unset key, got %q from %q", v, origin)
	}
}

func TestEnsureDotEnvTemplate_DoesNotOverwrite(t *testing.T) {
	oldHome := os.Getenv("HOME")
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Cleanup(func() { _ = os.Setenv("HOME", oldHome) })

	dir := filepath.Join(home, ".skilldex")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	p := filepath.Join(dir, ".env")
	if err := os.WriteFile(p, []byte("SKILLDEX_LOG_LEVEL=keep\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := EnsureDotEnvTemplate(); err != nil {
		t.Fatalf("EnsureDotEnvTemplate: %v", err)
	}
	b, err := os.ReadFile(p)
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != "SKILLDEX_LOG_LEVEL=keep\n" {
		t.Fatalf("template overwrote existing file: %q", string(b))
	}
}

func TestEnsureDotEnvTemplate_CreatesWhenMissing(t *testing.T) {
	oldHome := os.Getenv("HOME")
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Cleanup(func() { _ = os.Setenv("HOME", oldHome) })

	dir := filepath.Join(home, ".skilldex")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	p := filepath.Join(dir, ".env")

	if err := EnsureDotEnvTemplate(); err != nil {
		t.Fatalf("EnsureDotEnvTemplate: %v", err)
	}
	b, err := os.ReadFile(p)
	if err != nil {
		t.Fatal(err)
	}
	if len(b) == 0 {
		t.Fatalf("expected non-empty template")
	}
}

func TestExportDotEnv_KeepsExistingEnv(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	dir := filepath.Join(home, ".skilldex")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	body := "SKILLDEX_TEST_FROM_FILE=file\nSKILLDEX_TEST_PRESET=file\n"
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("SKILLDEX_TEST_PRESET", "env")
	t.Setenv("SKILLDEX_TEST_FROM_FILE", "")
	_ = os.Unsetenv("SKILLDEX_TEST_FROM_FILE")

	if err := ExportDotEnv(); err != nil {
		t.Fatalf("ExportDotEnv: %v", err)
	}
	if got := os.Getenv("SKILLDEX_TEST_FROM_FILE"); got != "file" {
		t.Fatalf("expected dotenv value to be exported, got %q", got)
	}
	if got := os.Getenv("SKILLDEX_TEST_PRESET"); got != "env" {
		t.Fatalf("expected environment to win, got %q", got)
	}
}
