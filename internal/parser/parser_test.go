package parser_test

import (
	"testing"

	"pseudogo/internal/ast"
	"pseudogo/internal/diag"
	"pseudogo/internal/lexer"
	"pseudogo/internal/parser"
	"pseudogo/internal/source"
)

func parseSource(t *testing.T, src string) (*ast.Program, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	fid := fs.AddVirtual("test.pseudo", []byte(src))
	bag := diag.NewBag()
	rep := diag.BagReporter{Bag: bag}
	toks := lexer.New(fid, []byte(src), rep).Tokenize()
	prog := parser.Parse(fid, toks, rep)
	return prog, bag
}

func TestParseDeclareAndAssign(t *testing.T) {
	prog, bag := parseSource(t, "DECLARE X : INTEGER\nX <- 5\n")
	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %v", bag.Items())
	}
	if len(prog.Statements) != 2 {
		t.Fatalf("expected 2 statements, got %d", len(prog.Statements))
	}
	decl, ok := prog.Statements[0].(*ast.Declare)
	if !ok || decl.Name != "X" || decl.Type.Basic != ast.TInteger {
		t.Fatalf("unexpected declare: %#v", prog.Statements[0])
	}
	assign, ok := prog.Statements[1].(*ast.Assign)
	if !ok {
		t.Fatalf("unexpected assign: %#v", prog.Statements[1])
	}
	if _, ok := assign.Target.(*ast.Identifier); !ok {
		t.Fatalf("unexpected assign target: %#v", assign.Target)
	}
}

func TestParseArrayDeclare(t *testing.T) {
	prog, bag := parseSource(t, "DECLARE Nums : ARRAY[1:10] OF INTEGER\n")
	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %v", bag.Items())
	}
	decl := prog.Statements[0].(*ast.Declare)
	if !decl.Type.IsArray || decl.Type.Elem != ast.TInteger {
		t.Fatalf("unexpected type: %#v", decl.Type)
	}
	if len(decl.Type.Dims) != 1 || decl.Type.Dims[0] != (ast.Dim{Lower: 1, Upper: 10}) {
		t.Fatalf("unexpected dims: %#v", decl.Type.Dims)
	}
}

func TestParseIfElse(t *testing.T) {
	prog, bag := parseSource(t, "IF X > 0 THEN\n  OUTPUT X\nELSE\n  OUTPUT 0\nENDIF\n")
	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %v", bag.Items())
	}
	ifStmt := prog.Statements[0].(*ast.If)
	if len(ifStmt.Then) != 1 || len(ifStmt.Else) != 1 {
		t.Fatalf("unexpected branches: %#v", ifStmt)
	}
}

func TestParseForNextMismatch(t *testing.T) {
	_, bag := parseSource(t, "FOR I <- 1 TO 10\n  OUTPUT I\nNEXT J\n")
	found := false
	for _, d := range bag.Items() {
		if d.Code == diag.SynForNextMismatch {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected SYN028, got %v", bag.Items())
	}
}

func TestParseCaseClauseMultilineError(t *testing.T) {
	_, bag := parseSource(t, "CASE OF X\n  1:\n    OUTPUT 1\nENDCASE\n")
	found := false
	for _, d := range bag.Items() {
		if d.Code == diag.SynCaseClauseMultiline {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected SYN023, got %v", bag.Items())
	}
}

func TestParseCaseClauseSameLine(t *testing.T) {
	prog, bag := parseSource(t, "CASE OF X\n  1: OUTPUT 1\n  OTHERWISE OUTPUT 0\nENDCASE\n")
	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %v", bag.Items())
	}
	c := prog.Statements[0].(*ast.Case)
	if len(c.Clauses) != 1 || c.Otherwise == nil {
		t.Fatalf("unexpected case: %#v", c)
	}
}

func TestParseExpressionPrecedence(t *testing.T) {
	prog, bag := parseSource(t, "X <- 1 + 2 * 3\n")
	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %v", bag.Items())
	}
	assign := prog.Statements[0].(*ast.Assign)
	bin := assign.Value.(*ast.Binary)
	if bin.Op != ast.BinAdd {
		t.Fatalf("expected top-level '+', got %v", bin.Op)
	}
	if _, ok := bin.Right.(*ast.Binary); !ok {
		t.Fatalf("expected '2 * 3' to bind tighter: %#v", bin.Right)
	}
}

func TestParseFunctionDef(t *testing.T) {
	prog, bag := parseSource(t, "FUNCTION Add(A : INTEGER, B : INTEGER) RETURNS INTEGER\n  RETURN A + B\nENDFUNCTION\n")
	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %v", bag.Items())
	}
	fn := prog.Statements[0].(*ast.FunctionDef)
	if fn.Name != "Add" || len(fn.Params) != 2 || fn.ReturnType.Basic != ast.TInteger {
		t.Fatalf("unexpected function: %#v", fn)
	}
}

func TestParseMissingEndifRecovers(t *testing.T) {
	prog, bag := parseSource(t, "IF X > 0 THEN\n  OUTPUT X\n")
	foundCode := false
	for _, d := range bag.Items() {
		if d.Code == diag.SynMissingEndif {
			foundCode = true
		}
	}
	if !foundCode {
		t.Fatalf("expected SYN018, got %v", bag.Items())
	}
	if len(prog.Statements) != 1 {
		t.Fatalf("expected best-effort AST with 1 statement, got %d", len(prog.Statements))
	}
}
