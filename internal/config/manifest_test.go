package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"pseudogo/internal/config"
)

func writeManifest(t *testing.T, dir, body string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, "pseudogo.toml"), []byte(body), 0o600); err != nil {
		t.Fatalf("write manifest: %v", err)
	}
}

func TestFindWalksUpParentDirectories(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, root, "[project]\nname = \"demo\"\nentry = \"main.pseudo\"\n")

	nested := filepath.Join(root, "a", "b", "c")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	path, ok, err := config.Find(nested)
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if !ok {
		t.Fatalf("expected to find manifest")
	}
	if filepath.Dir(path) != root {
		t.Fatalf("Find located %q, want a manifest under %q", path, root)
	}
}

func TestFindReportsMissingManifest(t *testing.T) {
	_, ok, err := config.Find(t.TempDir())
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if ok {
		t.Fatalf("expected no manifest to be found")
	}
}

func TestLoadDefaultsMaxDiagnostics(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, "[project]\nname = \"demo\"\nentry = \"main.pseudo\"\n")

	cfg, err := config.Load(filepath.Join(dir, "pseudogo.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Compile.MaxDiagnostics != config.DefaultCompileConfig().MaxDiagnostics {
		t.Fatalf("MaxDiagnostics = %d, want default", cfg.Compile.MaxDiagnostics)
	}
}

func TestLoadRejectsMissingEntry(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, "[project]\nname = \"demo\"\n")

	if _, err := config.Load(filepath.Join(dir, "pseudogo.toml")); err == nil {
		t.Fatalf("expected an error for a manifest missing [project].entry")
	}
}

func TestLoadNearestAndEntryPath(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, "[project]\nname = \"demo\"\nentry = \"src/main.pseudo\"\n")

	manifest, ok, err := config.LoadNearest(dir)
	if err != nil {
		t.Fatalf("LoadNearest: %v", err)
	}
	if !ok {
		t.Fatalf("expected a manifest")
	}
	want := filepath.Join(dir, "src", "main.pseudo")
	if got := manifest.EntryPath(); got != want {
		t.Fatalf("EntryPath() = %q, want %q", got, want)
	}
}
