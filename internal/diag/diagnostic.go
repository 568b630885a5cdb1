package diag

import "pseudogo/internal/source"

// Note attaches secondary context to a Diagnostic, e.g. "declared here".
type Note struct {
	Span source.Span
	Msg  string
}

// Diagnostic is the wire-independent record every compiler stage produces.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Span     source.Span
	Hint     string
	Notes    []Note
}
