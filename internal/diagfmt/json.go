package diagfmt

import (
	"encoding/json"
	"io"

	"pseudogo/internal/diag"
	"pseudogo/internal/source"
)

// LocationJSON is the wire location shape: a file path plus a one-based
// line/column half-open range.
type LocationJSON struct {
	File      string `json:"file"`
	StartLine uint32 `json:"line"`
	StartCol  uint32 `json:"column"`
	EndLine   uint32 `json:"end_line"`
	EndCol    uint32 `json:"end_column"`
}

// NoteJSON is a secondary location attached to a diagnostic.
type NoteJSON struct {
	Message  string       `json:"message"`
	Location LocationJSON `json:"location"`
}

// DiagnosticJSON is one diagnostic in wire shape.
type DiagnosticJSON struct {
	Severity string       `json:"severity"`
	Code     string       `json:"code"`
	Message  string       `json:"message"`
	Location LocationJSON `json:"location"`
	Hint     string       `json:"hint,omitempty"`
	Notes    []NoteJSON   `json:"notes,omitempty"`
}

// DiagnosticsOutput is the root JSON object produced for a compile run.
type DiagnosticsOutput struct {
	Diagnostics []DiagnosticJSON `json:"diagnostics"`
	Count       int              `json:"count"`
}

func makeLocation(sp source.Span, fs *source.FileSet, mode PathMode) LocationJSON {
	f := fs.Get(sp.File)
	return LocationJSON{
		File:      formatPath(f.Path, mode, ""),
		StartLine: sp.StartLine,
		StartCol:  sp.StartCol,
		EndLine:   sp.EndLine,
		EndCol:    sp.EndCol,
	}
}

// BuildDiagnosticsOutput turns bag into the JSON-ready struct without
// serializing it, so callers can inspect it before encoding.
func BuildDiagnosticsOutput(bag *diag.Bag, fs *source.FileSet, opts JSONOpts) DiagnosticsOutput {
	items := bag.Items()
	maxItems := len(items)
	if opts.Max > 0 && opts.Max < maxItems {
		maxItems = opts.Max
	}

	out := make([]DiagnosticJSON, 0, maxItems)
	for _, d := range items[:maxItems] {
		dj := DiagnosticJSON{
			Severity: d.Severity.String(),
			Code:     d.Code.ID(),
			Message:  d.Message,
			Location: makeLocation(d.Span, fs, opts.PathMode),
			Hint:     d.Hint,
		}
		if opts.IncludeNotes && len(d.Notes) > 0 {
			dj.Notes = make([]NoteJSON, len(d.Notes))
			for i, n := range d.Notes {
				dj.Notes[i] = NoteJSON{Message: n.Msg, Location: makeLocation(n.Span, fs, opts.PathMode)}
			}
		}
		out = append(out, dj)
	}
	return DiagnosticsOutput{Diagnostics: out, Count: len(out)}
}

// JSON writes bag to w as an indented JSON document.
func JSON(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts JSONOpts) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(BuildDiagnosticsOutput(bag, fs, opts))
}
