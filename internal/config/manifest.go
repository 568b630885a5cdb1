// Package config loads the pseudogo.toml project manifest used by
// cmd/pseudogo. The compiler core never reads this package.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

const manifestFileName = "pseudogo.toml"

// NoManifestMessage is printed by the CLI when no manifest can be found and
// the caller did not name a file explicitly.
const NoManifestMessage = "no pseudogo.toml found\nplease specify the source file explicitly, e.g.:\n  pseudogo run path/to/program.pseudo"

// Manifest is a located, parsed pseudogo.toml plus the directory it lives in.
type Manifest struct {
	Path   string
	Root   string
	Config Config
}

// Config is the decoded [project]/[compile] shape of pseudogo.toml.
type Config struct {
	Project ProjectConfig `toml:"project"`
	Compile CompileConfig `toml:"compile"`
}

// ProjectConfig names the coursework project and its entry file.
type ProjectConfig struct {
	Name  string `toml:"name"`
	Entry string `toml:"entry"`
}

// CompileConfig holds compiler-facing defaults sourced from the manifest.
type CompileConfig struct {
	MaxDiagnostics int `toml:"max_diagnostics"`
}

// DefaultCompileConfig mirrors what an absent [compile] table implies.
func DefaultCompileConfig() CompileConfig {
	return CompileConfig{MaxDiagnostics: 200}
}

// Find walks upward from startDir looking for pseudogo.toml, the way the
// teacher's CLI walks parent directories for its own project manifest.
func Find(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, manifestFileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Load parses the manifest at path, applying defaults for absent fields.
func Load(path string) (Config, error) {
	cfg := Config{Compile: DefaultCompileConfig()}
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if !meta.IsDefined("project") {
		return Config{}, fmt.Errorf("%s: missing [project]", path)
	}
	if !meta.IsDefined("project", "name") || strings.TrimSpace(cfg.Project.Name) == "" {
		return Config{}, fmt.Errorf("%s: missing [project].name", path)
	}
	if !meta.IsDefined("project", "entry") || strings.TrimSpace(cfg.Project.Entry) == "" {
		return Config{}, fmt.Errorf("%s: missing [project].entry", path)
	}
	if !meta.IsDefined("compile", "max_diagnostics") || cfg.Compile.MaxDiagnostics <= 0 {
		cfg.Compile.MaxDiagnostics = DefaultCompileConfig().MaxDiagnostics
	}
	return cfg, nil
}

// LoadNearest finds and loads the manifest closest to startDir, returning
// ok=false (with a nil error) when none exists.
func LoadNearest(startDir string) (*Manifest, bool, error) {
	path, ok, err := Find(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	cfg, err := Load(path)
	if err != nil {
		return nil, true, err
	}
	return &Manifest{Path: path, Root: filepath.Dir(path), Config: cfg}, true, nil
}

// EntryPath resolves [project].entry relative to the manifest's directory.
func (m *Manifest) EntryPath() string {
	return filepath.Join(m.Root, filepath.FromSlash(strings.TrimSpace(m.Config.Project.Entry)))
}
