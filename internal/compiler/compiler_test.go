package compiler_test

import (
	"strings"
	"testing"

	"pseudogo/internal/compiler"
	"pseudogo/internal/diag"
)

func hasCode(diags []diag.Diagnostic, code diag.Code) bool {
	for _, d := range diags {
		if d.Code == code {
			return true
		}
	}
	return false
}

func TestCompileTotalsHappyPath(t *testing.T) {
	src := "DECLARE Total : INTEGER\nDECLARE Index : INTEGER\nFOR Index <- 1 TO 3\n    Total <- Total + Index\nNEXT Index\nOUTPUT Total\n"
	res := compiler.CompileSource("totals.pseudo", []byte(src))
	if !res.Success {
		t.Fatalf("expected success, got diagnostics: %v", res.Diagnostics)
	}
	if !strings.Contains(res.PythonCode, "for Index in __inclusive_range(1, 3, 1):") {
		t.Fatalf("expected inclusive range loop, got:\n%s", res.PythonCode)
	}
	if !strings.Contains(res.PythonCode, "__output(str(Total))") {
		t.Fatalf("expected OUTPUT lowering, got:\n%s", res.PythonCode)
	}
}

func TestCompileMalformedIf(t *testing.T) {
	src := "DECLARE Score : INTEGER\nIF Score > 10 THEN\n    OUTPUT \"High\"\n"
	res := compiler.CompileSource("malformed_if.pseudo", []byte(src))
	if res.Success {
		t.Fatalf("expected failure")
	}
	if !hasCode(res.Diagnostics, diag.SynMissingEndif) {
		t.Fatalf("expected SYN018, got %v", res.Diagnostics)
	}
}

func TestCompileUndeclaredIdentifier(t *testing.T) {
	src := "Value <- 7\n"
	res := compiler.CompileSource("undeclared.pseudo", []byte(src))
	if res.Success {
		t.Fatalf("expected failure")
	}
	found := false
	for _, d := range res.Diagnostics {
		if d.Code == diag.SemUndeclaredIdentifier && d.Span.StartLine == 1 && d.Span.StartCol == 1 {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected SEM019 at (1,1), got %v", res.Diagnostics)
	}
}

func TestCompileArrayDimMismatch(t *testing.T) {
	src := "DECLARE Grid : ARRAY[1:3, 1:3] OF INTEGER\nDECLARE Value : INTEGER\nValue <- Grid[1]\n"
	res := compiler.CompileSource("dims.pseudo", []byte(src))
	if res.Success {
		t.Fatalf("expected failure")
	}
	if !hasCode(res.Diagnostics, diag.SemArrayDimMismatch) {
		t.Fatalf("expected SEM027, got %v", res.Diagnostics)
	}
}

func TestCompileFileModeViolation(t *testing.T) {
	src := "DECLARE Line : STRING\nOPENFILE \"FileA.txt\" FOR WRITE\nREADFILE \"FileA.txt\", Line\n"
	res := compiler.CompileSource("filemode.pseudo", []byte(src))
	if res.Success {
		t.Fatalf("expected failure")
	}
	if !hasCode(res.Diagnostics, diag.SemReadFileWrongMode) {
		t.Fatalf("expected SEM015, got %v", res.Diagnostics)
	}
}

func TestCompileKeywordCasing(t *testing.T) {
	src := "declare X : INTEGER"
	res := compiler.CompileSource("casing.pseudo", []byte(src))
	if res.Success {
		t.Fatalf("expected failure")
	}
	found := false
	for _, d := range res.Diagnostics {
		if d.Code == diag.LexKeywordNotUppercase && d.Span.StartLine == 1 && d.Span.StartCol == 1 {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected SYN001 at the 'declare' span, got %v", res.Diagnostics)
	}

	fixed := "DECLARE X : INTEGER\n"
	res2 := compiler.CompileSource("casing_fixed.pseudo", []byte(fixed))
	if !res2.Success {
		t.Fatalf("expected fixed source to compile cleanly, got %v", res2.Diagnostics)
	}
}

func TestCompileReporterSinkSeesLiveDiagnostics(t *testing.T) {
	var seen []diag.Diagnostic
	rec := recordingReporter{report: func(d diag.Diagnostic) { seen = append(seen, d) }}

	src := "Value <- 7\n"
	res := compiler.CompileSource("undeclared_live.pseudo", []byte(src), compiler.Options{Reporter: rec})
	if res.Success {
		t.Fatalf("expected failure")
	}
	if len(seen) == 0 {
		t.Fatalf("expected the reporter sink to observe at least one diagnostic")
	}
	if !hasCode(seen, diag.SemUndeclaredIdentifier) {
		t.Fatalf("expected sink to see SEM019, got %v", seen)
	}
	if !hasCode(res.Diagnostics, diag.SemUndeclaredIdentifier) {
		t.Fatalf("expected the returned Bag to still carry SEM019, got %v", res.Diagnostics)
	}
}

type recordingReporter struct {
	report func(diag.Diagnostic)
}

func (r recordingReporter) Report(d diag.Diagnostic) {
	r.report(d)
}
