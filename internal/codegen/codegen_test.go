package codegen_test

import (
	"strings"
	"testing"

	"pseudogo/internal/codegen"
	"pseudogo/internal/diag"
	"pseudogo/internal/lexer"
	"pseudogo/internal/parser"
	"pseudogo/internal/sema"
	"pseudogo/internal/source"
)

func compile(t *testing.T, src string) string {
	t.Helper()
	fs := source.NewFileSet()
	fid := fs.AddVirtual("test.pseudo", []byte(src))
	bag := diag.NewBag()
	rep := diag.BagReporter{Bag: bag}
	toks := lexer.New(fid, []byte(src), rep).Tokenize()
	prog := parser.Parse(fid, toks, rep)
	sema.Check(prog, rep)
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}
	return codegen.Generate(prog)
}

func TestGenerateContainsPrelude(t *testing.T) {
	py := compile(t, "OUTPUT \"hi\"\n")
	if !strings.Contains(py, "class __PseudoArray") {
		t.Fatalf("expected prelude to be embedded, got:\n%s", py)
	}
	if !strings.Contains(py, "__output(str(\"hi\"))") {
		t.Fatalf("expected OUTPUT lowering, got:\n%s", py)
	}
	if !strings.Contains(py, "__main__()") {
		t.Fatalf("expected trailing __main__() call, got:\n%s", py)
	}
}

func TestGenerateDeclareAndArray(t *testing.T) {
	py := compile(t, "DECLARE X : INTEGER\nDECLARE Nums : ARRAY[1:3] OF REAL\nX <- 1\nNums[1] <- 2.5\n")
	if !strings.Contains(py, "X = 0") {
		t.Fatalf("expected scalar default, got:\n%s", py)
	}
	if !strings.Contains(py, "Nums = __PseudoArray([(1, 3)], 0.0)") {
		t.Fatalf("expected array constructor, got:\n%s", py)
	}
	if !strings.Contains(py, "Nums[1] = 2.5") {
		t.Fatalf("expected array element assignment, got:\n%s", py)
	}
}

func TestGenerateForLoop(t *testing.T) {
	py := compile(t, "DECLARE I : INTEGER\nFOR I <- 1 TO 5 STEP 2\n  OUTPUT I\nNEXT I\n")
	if !strings.Contains(py, "for I in __inclusive_range(1, 5, 2):") {
		t.Fatalf("expected inclusive range loop, got:\n%s", py)
	}
}

func TestGenerateRepeatUntil(t *testing.T) {
	py := compile(t, "DECLARE X : INTEGER\nX <- 0\nREPEAT\n  X <- X + 1\nUNTIL X > 3\n")
	if !strings.Contains(py, "while True:") || !strings.Contains(py, "if ((X) > (3)):") || !strings.Contains(py, "break") {
		t.Fatalf("expected REPEAT/UNTIL lowering, got:\n%s", py)
	}
}

func TestGenerateInputCoercion(t *testing.T) {
	py := compile(t, "DECLARE X : INTEGER\nINPUT X\n")
	if !strings.Contains(py, `X = __coerce_input(__input(), "INTEGER")`) {
		t.Fatalf("expected INPUT coercion, got:\n%s", py)
	}
}

func TestGenerateFunctionAndCall(t *testing.T) {
	py := compile(t, "FUNCTION Add(A : INTEGER, B : INTEGER) RETURNS INTEGER\n  RETURN A + B\nENDFUNCTION\nDECLARE Total : INTEGER\nTotal <- Add(1, 2)\n")
	if !strings.Contains(py, "def Add(A, B):") {
		t.Fatalf("expected function definition, got:\n%s", py)
	}
	if !strings.Contains(py, "return ((A) + (B))") {
		t.Fatalf("expected return lowering, got:\n%s", py)
	}
	if !strings.Contains(py, "Total = Add(1, 2)") {
		t.Fatalf("expected call lowering, got:\n%s", py)
	}
}

func TestGenerateBuiltinCall(t *testing.T) {
	py := compile(t, "DECLARE S : STRING\nS <- \"hi\"\nDECLARE N : INTEGER\nN <- LENGTH(S)\n")
	if !strings.Contains(py, "N = __length(S)") {
		t.Fatalf("expected builtin lowering, got:\n%s", py)
	}
}

func TestGenerateCaseOf(t *testing.T) {
	py := compile(t, "DECLARE X : INTEGER\nX <- 1\nCASE OF X\n  1: OUTPUT 1\n  OTHERWISE OUTPUT 0\nENDCASE\n")
	if !strings.Contains(py, "if __case_0 == 1:") || !strings.Contains(py, "else:") {
		t.Fatalf("expected CASE lowering, got:\n%s", py)
	}
}
