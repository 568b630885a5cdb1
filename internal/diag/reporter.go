package diag

import (
	"fmt"

	"pseudogo/internal/source"
)

// Reporter is the minimal contract a compiler stage uses to emit
// diagnostics without depending on the Bag directly.
type Reporter interface {
	Report(d Diagnostic)
}

// BagReporter routes diagnostics straight into a Bag.
type BagReporter struct {
	Bag *Bag
}

func (r BagReporter) Report(d Diagnostic) {
	r.Bag.Add(d)
}

// Errorf builds and reports a SevError diagnostic.
func Errorf(r Reporter, code Code, span source.Span, format string, args ...any) {
	r.Report(Diagnostic{Severity: SevError, Code: code, Span: span, Message: fmt.Sprintf(format, args...)})
}

// Warnf builds and reports a SevWarning diagnostic.
func Warnf(r Reporter, code Code, span source.Span, format string, args ...any) {
	r.Report(Diagnostic{Severity: SevWarning, Code: code, Span: span, Message: fmt.Sprintf(format, args...)})
}
