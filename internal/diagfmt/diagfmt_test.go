package diagfmt_test

import (
	"bytes"
	"strings"
	"testing"

	"pseudogo/internal/compiler"
	"pseudogo/internal/diag"
	"pseudogo/internal/diagfmt"
	"pseudogo/internal/lexer"
	"pseudogo/internal/parser"
	"pseudogo/internal/sema"
	"pseudogo/internal/source"
)

func TestPrettyContainsCodeAndCaret(t *testing.T) {
	fs := source.NewFileSet()
	src := "OUTPUT Value\n"
	fid := fs.AddVirtual("undeclared.pseudo", []byte(src))
	bag := diag.NewBag()
	rep := diag.BagReporter{Bag: bag}
	toks := lexer.New(fid, []byte(src), rep).Tokenize()
	prog := parser.Parse(fid, toks, rep)
	sema.Check(prog, rep)
	bag.Sort()

	var buf bytes.Buffer
	diagfmt.Pretty(&buf, bag, fs, diagfmt.PrettyOpts{Context: 1})
	out := buf.String()
	if !strings.Contains(out, "undeclared.pseudo:1:8: ERROR SEM019") {
		t.Fatalf("expected location prefix and code, got:\n%s", out)
	}
	if !strings.Contains(out, "^") {
		t.Fatalf("expected caret underline, got:\n%s", out)
	}
}

func TestJSONRoundTripsCount(t *testing.T) {
	res := compiler.CompileSource("bad.pseudo", []byte("declare X : INTEGER"))
	fs := source.NewFileSet()
	fid := fs.AddVirtual("bad.pseudo", []byte("declare X : INTEGER"))
	bag := diag.NewBag()
	for _, d := range res.Diagnostics {
		d.Span.File = fid
		bag.Add(d)
	}
	bag.Sort()

	var buf bytes.Buffer
	if err := diagfmt.JSON(&buf, bag, fs, diagfmt.JSONOpts{IncludeNotes: true}); err != nil {
		t.Fatalf("JSON: %v", err)
	}
	if !strings.Contains(buf.String(), `"count"`) {
		t.Fatalf("expected count field, got:\n%s", buf.String())
	}
}

func TestBuildProgramTreeLabelsRoot(t *testing.T) {
	fs := source.NewFileSet()
	src := "DECLARE X : INTEGER\nOUTPUT X\n"
	fid := fs.AddVirtual("tree.pseudo", []byte(src))
	bag := diag.NewBag()
	rep := diag.BagReporter{Bag: bag}
	toks := lexer.New(fid, []byte(src), rep).Tokenize()
	prog := parser.Parse(fid, toks, rep)

	tree := diagfmt.BuildProgramTree(prog, fs)
	if !strings.Contains(tree, "Program (2 statements)") {
		t.Fatalf("expected program root label, got:\n%s", tree)
	}
}

func TestFormatTokensPrettyAndJSON(t *testing.T) {
	fs := source.NewFileSet()
	src := "DECLARE X : INTEGER\n"
	fid := fs.AddVirtual("toks.pseudo", []byte(src))
	bag := diag.NewBag()
	rep := diag.BagReporter{Bag: bag}
	toks := lexer.New(fid, []byte(src), rep).Tokenize()

	var pretty bytes.Buffer
	if err := diagfmt.FormatTokensPretty(&pretty, toks); err != nil {
		t.Fatalf("FormatTokensPretty: %v", err)
	}
	if !strings.Contains(pretty.String(), "keyword") {
		t.Fatalf("expected keyword kind in output, got:\n%s", pretty.String())
	}

	var js bytes.Buffer
	if err := diagfmt.FormatTokensJSON(&js, toks); err != nil {
		t.Fatalf("FormatTokensJSON: %v", err)
	}
	if !strings.Contains(js.String(), `"kind"`) {
		t.Fatalf("expected kind field, got:\n%s", js.String())
	}
}
