// Package diagfmt renders a diag.Bag for a terminal, as JSON, and renders a
// parsed ast.Program as a centered ASCII tree — the three output shapes
// cmd/pseudogo exposes across compile/tokenize/parse/diag.
package diagfmt

// PathMode controls how a file path is displayed in rendered output.
type PathMode uint8

const (
	// PathModeAuto shows the path as registered (short paths verbatim,
	// long ones truncated to their basename).
	PathModeAuto PathMode = iota
	PathModeAbsolute
	PathModeRelative
	PathModeBasename
)

// PrettyOpts configures terminal-pretty diagnostic rendering.
type PrettyOpts struct {
	Color     bool
	Context   int
	PathMode  PathMode
	ShowNotes bool
}

// JSONOpts configures JSON diagnostic rendering.
type JSONOpts struct {
	PathMode     PathMode
	Max          int
	IncludeNotes bool
}
