package diag

import (
	"testing"

	"pseudogo/internal/source"
)

func TestBagSortOrdering(t *testing.T) {
	b := NewBag()
	b.Add(Diagnostic{Code: SemUndeclaredIdentifier, Span: source.Span{StartLine: 2, StartCol: 1}})
	b.Add(Diagnostic{Code: SynExpectStatement, Span: source.Span{StartLine: 1, StartCol: 5}})
	b.Add(Diagnostic{Code: LexUnexpectedChar, Span: source.Span{StartLine: 1, StartCol: 1}})

	b.Sort()
	items := b.Items()
	if items[0].Code != LexUnexpectedChar || items[1].Code != SynExpectStatement || items[2].Code != SemUndeclaredIdentifier {
		t.Fatalf("unexpected sort order: %+v", items)
	}
}

func TestBagHasErrors(t *testing.T) {
	b := NewBag()
	b.Add(Diagnostic{Severity: SevWarning})
	if b.HasErrors() {
		t.Fatal("expected no errors from a warning-only bag")
	}
	b.Add(Diagnostic{Severity: SevError})
	if !b.HasErrors() {
		t.Fatal("expected HasErrors true after adding an error")
	}
}

func TestCodeID(t *testing.T) {
	cases := map[Code]string{
		LexKeywordNotUppercase: "SYN001",
		SynMissingEndif:        "SYN018",
		SemUndeclaredIdentifier: "SEM019",
		RunTraceback:           "RUN001",
	}
	for code, want := range cases {
		if got := code.ID(); got != want {
			t.Errorf("Code(%d).ID() = %q, want %q", code, got, want)
		}
	}
}
