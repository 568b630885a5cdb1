package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"pseudogo/internal/config"
	"pseudogo/internal/diag"
	"pseudogo/internal/source"
)

// loadedFile is one source file registered with its own FileSet, kept
// separate per invocation the way the compiler core takes no shared state
// across calls.
type loadedFile struct {
	fs   *source.FileSet
	fid  source.FileID
	src  []byte
	path string
}

// resolveSourcePath returns the file named in args, or, when args is empty,
// the nearest pseudogo.toml's [project].entry, the way `findSurgeToml`
// lets the teacher's CLI run against a project directory without naming a
// file every time.
func resolveSourcePath(args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	wd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	manifest, ok, err := config.LoadNearest(wd)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", errors.New(config.NoManifestMessage)
	}
	return manifest.EntryPath(), nil
}

func loadFile(path string) (*loadedFile, error) {
	src, err := os.ReadFile(path) // #nosec G304 -- path supplied on the command line
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	fs := source.NewFileSet()
	fid := fs.Add(path, src, 0)
	return &loadedFile{fs: fs, fid: fid, src: src, path: path}, nil
}

// maxDiagnosticsFlag returns the effective --max-diagnostics value: the
// flag as given on the command line, or, if the caller never set it, the
// nearest manifest's [compile].max_diagnostics.
func maxDiagnosticsFlag(cmd *cobra.Command) int {
	flags := cmd.Root().PersistentFlags()
	n, err := flags.GetInt("max-diagnostics")
	if err != nil {
		n = config.DefaultCompileConfig().MaxDiagnostics
	}
	if flags.Changed("max-diagnostics") {
		return n
	}
	if wd, err := os.Getwd(); err == nil {
		if manifest, ok, err := config.LoadNearest(wd); err == nil && ok {
			return manifest.Config.Compile.MaxDiagnostics
		}
	}
	return n
}

func truncateBag(bag *diag.Bag, max int) []diag.Diagnostic {
	items := bag.Items()
	if max <= 0 || max >= len(items) {
		return items
	}
	return items[:max]
}
