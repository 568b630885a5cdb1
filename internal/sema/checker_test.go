package sema_test

import (
	"testing"

	"pseudogo/internal/diag"
	"pseudogo/internal/lexer"
	"pseudogo/internal/parser"
	"pseudogo/internal/sema"
	"pseudogo/internal/source"
)

func check(t *testing.T, src string) *diag.Bag {
	t.Helper()
	fs := source.NewFileSet()
	fid := fs.AddVirtual("test.pseudo", []byte(src))
	bag := diag.NewBag()
	rep := diag.BagReporter{Bag: bag}
	toks := lexer.New(fid, []byte(src), rep).Tokenize()
	prog := parser.Parse(fid, toks, rep)
	sema.Check(prog, rep)
	return bag
}

func hasCode(bag *diag.Bag, code diag.Code) bool {
	for _, d := range bag.Items() {
		if d.Code == code {
			return true
		}
	}
	return false
}

func TestCheckDeclareAssignOK(t *testing.T) {
	bag := check(t, "DECLARE X : INTEGER\nX <- 5\n")
	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %v", bag.Items())
	}
}

func TestCheckAssignTypeMismatch(t *testing.T) {
	bag := check(t, "DECLARE X : STRING\nX <- 5\n")
	if !hasCode(bag, diag.SemAssignTypeMismatch) {
		t.Fatalf("expected SEM003, got %v", bag.Items())
	}
}

func TestCheckRealAcceptsInteger(t *testing.T) {
	bag := check(t, "DECLARE X : REAL\nX <- 5\n")
	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %v", bag.Items())
	}
}

func TestCheckUndeclaredIdentifier(t *testing.T) {
	bag := check(t, "X <- 5\n")
	if !hasCode(bag, diag.SemUndeclaredIdentifier) {
		t.Fatalf("expected SEM019, got %v", bag.Items())
	}
}

func TestCheckAssignToConstant(t *testing.T) {
	bag := check(t, "CONSTANT X <- 5\nX <- 6\n")
	if !hasCode(bag, diag.SemAssignToConstant) {
		t.Fatalf("expected SEM025, got %v", bag.Items())
	}
}

func TestCheckIfConditionNotBoolean(t *testing.T) {
	bag := check(t, "DECLARE X : INTEGER\nX <- 1\nIF X THEN\n  OUTPUT X\nENDIF\n")
	if !hasCode(bag, diag.SemIfNotBoolean) {
		t.Fatalf("expected SEM004, got %v", bag.Items())
	}
}

func TestCheckFunctionMissingReturn(t *testing.T) {
	bag := check(t, "FUNCTION F() RETURNS INTEGER\n  OUTPUT 1\nENDFUNCTION\n")
	if !hasCode(bag, diag.SemFunctionMissingReturn) {
		t.Fatalf("expected SEM011, got %v", bag.Items())
	}
}

func TestCheckFunctionWithReturnInsideIf(t *testing.T) {
	bag := check(t, "FUNCTION F(A : INTEGER) RETURNS INTEGER\n  IF A > 0 THEN\n    RETURN A\n  ELSE\n    RETURN 0\n  ENDIF\nENDFUNCTION\n")
	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %v", bag.Items())
	}
}

func TestCheckDuplicateProcedureName(t *testing.T) {
	bag := check(t, "PROCEDURE P()\nENDPROCEDURE\nPROCEDURE P()\nENDPROCEDURE\n")
	if !hasCode(bag, diag.SemDuplicateSymbol) {
		t.Fatalf("expected SEM001, got %v", bag.Items())
	}
}

func TestCheckCallUnknownProcedure(t *testing.T) {
	bag := check(t, "CALL Missing()\n")
	if !hasCode(bag, diag.SemCallUnknownProcedure) {
		t.Fatalf("expected SEM012, got %v", bag.Items())
	}
}

func TestCheckFileModeViolation(t *testing.T) {
	bag := check(t, "DECLARE Line : STRING\nOPENFILE \"data.txt\" FOR READ\nWRITEFILE \"data.txt\", Line\n")
	if !hasCode(bag, diag.SemWriteFileWrongMode) {
		t.Fatalf("expected SEM016, got %v", bag.Items())
	}
}

func TestCheckArrayIndexNotInteger(t *testing.T) {
	bag := check(t, "DECLARE Nums : ARRAY[1:5] OF INTEGER\nDECLARE X : STRING\nX <- \"a\"\nNums[X] <- 1\n")
	if !hasCode(bag, diag.SemArrayIndexNotInteger) {
		t.Fatalf("expected SEM028, got %v", bag.Items())
	}
}

func TestCheckNoCascadeAfterUndeclared(t *testing.T) {
	bag := check(t, "Y <- Y + 1\n")
	count := 0
	for _, d := range bag.Items() {
		if d.Code == diag.SemUndeclaredIdentifier {
			count++
		}
	}
	if count != 2 {
		t.Fatalf("expected 2 SEM019 (one per Y reference), got %d: %v", count, bag.Items())
	}
	if hasCode(bag, diag.SemArithmeticNotNumeric) {
		t.Fatalf("unknown types should not cascade into an arithmetic error: %v", bag.Items())
	}
}
