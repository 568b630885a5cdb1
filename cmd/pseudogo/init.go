package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"pseudogo/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init [path|name]",
	Short: "Initialize a new pseudogo project",
	Long: `Initialize a new pseudogo project by creating a project manifest
(pseudogo.toml) and a starter entry file (main.pseudo). If [path|name] is
omitted, initializes the current directory. If a non-existing name is
provided, a directory is created.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	var target string
	if len(args) == 0 || args[0] == "." {
		wd, err := os.Getwd()
		if err != nil {
			return err
		}
		target = wd
	} else {
		arg := args[0]
		if !filepath.IsAbs(arg) {
			wd, err := os.Getwd()
			if err != nil {
				return err
			}
			target = filepath.Join(wd, arg)
		} else {
			target = arg
		}
	}

	if st, err := os.Stat(target); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			if err := os.MkdirAll(target, 0o755); err != nil {
				return fmt.Errorf("failed to create directory %q: %w", target, err)
			}
		} else {
			return err
		}
	} else if !st.IsDir() {
		return fmt.Errorf("%q is not a directory", target)
	}

	name := strings.TrimSpace(filepath.Base(target))
	if name == "" || name == "." || name == string(filepath.Separator) {
		name = "pseudogo-project"
	}

	manifestPath := filepath.Join(target, "pseudogo.toml")
	if _, err := os.Stat(manifestPath); err == nil {
		return fmt.Errorf("project already initialized: %s exists", manifestPath)
	}

	manifest, err := buildDefaultManifest(name)
	if err != nil {
		return fmt.Errorf("failed to build manifest: %w", err)
	}
	if err := os.WriteFile(manifestPath, manifest, 0o600); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}

	mainPath := filepath.Join(target, "main.pseudo")
	createdMain := false
	if _, err := os.Stat(mainPath); errors.Is(err, os.ErrNotExist) {
		if err := os.WriteFile(mainPath, []byte(defaultMainPseudo()), 0o600); err != nil {
			return fmt.Errorf("failed to write main.pseudo: %w", err)
		}
		createdMain = true
	}

	rel := target
	if wd, err := os.Getwd(); err == nil {
		if r, err2 := filepath.Rel(wd, target); err2 == nil {
			rel = r
		}
	}
	fmt.Fprintf(os.Stdout, "Initialized pseudogo project in %s\n", rel)
	fmt.Fprintf(os.Stdout, "  - pseudogo.toml\n")
	if createdMain {
		fmt.Fprintf(os.Stdout, "  - main.pseudo\n")
	} else {
		fmt.Fprintf(os.Stdout, "  - main.pseudo (existing)\n")
	}
	return nil
}

// buildDefaultManifest renders a fresh pseudogo.toml from config.Config
// itself, rather than a hand-written template, so the manifest a new
// project starts with can never drift from what internal/config expects
// to parse back.
func buildDefaultManifest(name string) ([]byte, error) {
	cfg := config.Config{
		Project: config.ProjectConfig{Name: name, Entry: "main.pseudo"},
		Compile: config.DefaultCompileConfig(),
	}
	var buf strings.Builder
	buf.WriteString("# pseudogo project manifest\n")
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return nil, err
	}
	return []byte(buf.String()), nil
}

func defaultMainPseudo() string {
	return `DECLARE Name : STRING
OUTPUT "What is your name?"
INPUT Name
OUTPUT "Hello, ", Name
`
}
