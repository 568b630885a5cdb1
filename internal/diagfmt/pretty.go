package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"pseudogo/internal/diag"
	"pseudogo/internal/source"
)

var (
	errorColor   = color.New(color.FgRed, color.Bold)
	warningColor = color.New(color.FgYellow, color.Bold)
	infoColor    = color.New(color.FgCyan, color.Bold)
	locationColor = color.New(color.FgHiBlack)
	caretColor    = color.New(color.FgGreen, color.Bold)
)

func severityLabel(sev diag.Severity) string {
	switch sev {
	case diag.SevError:
		return "ERROR"
	case diag.SevWarning:
		return "WARNING"
	default:
		return "INFO"
	}
}

func severityColor(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return errorColor
	case diag.SevWarning:
		return warningColor
	default:
		return infoColor
	}
}

// Pretty writes bag's diagnostics (call bag.Sort() first) as
// "<path>:<line>:<col>: SEVERITY CODE: message", each followed by a source
// line and a caret underline spanning the diagnostic, and any notes.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	for _, d := range bag.Items() {
		writeOne(w, d.Severity, d.Code, d.Message, d.Span, fs, opts)
		if opts.ShowNotes {
			for _, n := range d.Notes {
				writeOne(w, diag.SevInfo, d.Code, "note: "+n.Msg, n.Span, fs, opts)
			}
		}
	}
}

func writeOne(w io.Writer, sev diag.Severity, code diag.Code, message string, sp source.Span, fs *source.FileSet, opts PrettyOpts) {
	f := fs.Get(sp.File)
	path := formatPath(f.Path, opts.PathMode, "")

	label := severityLabel(sev)
	codeID := code.ID()
	if opts.Color {
		label = severityColor(sev).Sprint(label)
		codeID = severityColor(sev).Sprint(codeID)
	}

	loc := fmt.Sprintf("%s:%d:%d", path, sp.StartLine, sp.StartCol)
	if opts.Color {
		loc = locationColor.Sprint(loc)
	}
	fmt.Fprintf(w, "%s: %s %s: %s\n", loc, label, codeID, message)

	line := f.Line(sp.StartLine)
	if line == "" {
		return
	}
	fmt.Fprintf(w, "  %s\n", line)

	col := int(sp.StartCol)
	if col < 1 {
		col = 1
	}
	width := int(sp.EndCol) - int(sp.StartCol)
	if sp.EndLine != sp.StartLine || width < 1 {
		width = 1
	}
	underline := strings.Repeat(" ", col-1) + strings.Repeat("^", width)
	if opts.Color {
		underline = caretColor.Sprint(underline)
	}
	fmt.Fprintf(w, "  %s\n", underline)
}
