// Package compiler is the façade that runs the full pipeline over one
// source file: lex, parse, check, and (only if no errors were reported)
// generate Python. It owns no state across calls and performs no I/O.
package compiler

import (
	"pseudogo/internal/ast"
	"pseudogo/internal/codegen"
	"pseudogo/internal/diag"
	"pseudogo/internal/lexer"
	"pseudogo/internal/parser"
	"pseudogo/internal/sema"
	"pseudogo/internal/source"
)

// Result is the compile envelope returned to every caller: CLI, tests, and
// (eventually) any embedding host.
type Result struct {
	Success     bool
	Diagnostics []diag.Diagnostic
	AST         *ast.Program
	PythonCode  string
}

// Options configures a single Compile call. The zero value is the default:
// no live reporting, diagnostics only arrive through the returned Result.
type Options struct {
	// Reporter, when non-nil, receives every diagnostic as it is produced,
	// in addition to the merged Bag backing Result.Diagnostics. A caller
	// streaming diagnostics to a terminal UI or an LSP client as they
	// happen wants this; the CLI's batch commands do not and pass none.
	Reporter diag.Reporter
}

// tee reports to both a Bag and an optional secondary sink.
type tee struct {
	bag  diag.BagReporter
	sink diag.Reporter
}

func (t tee) Report(d diag.Diagnostic) {
	t.bag.Report(d)
	if t.sink != nil {
		t.sink.Report(d)
	}
}

// Compile runs the full pipeline over src, attributing diagnostics to file.
func Compile(file source.FileID, src []byte, opts ...Options) Result {
	var opt Options
	if len(opts) > 0 {
		opt = opts[0]
	}

	bag := diag.NewBag()
	rep := diag.Reporter(tee{bag: diag.BagReporter{Bag: bag}, sink: opt.Reporter})

	toks := lexer.New(file, src, rep).Tokenize()
	prog := parser.Parse(file, toks, rep)
	sema.Check(prog, rep)

	bag.Sort()

	if bag.HasErrors() {
		return Result{Success: false, Diagnostics: bag.Items(), AST: prog}
	}

	py := codegen.Generate(prog)
	return Result{Success: true, Diagnostics: bag.Items(), AST: prog, PythonCode: py}
}

// CompileSource is a convenience wrapper for callers holding raw text
// rather than a pre-registered source.File.
func CompileSource(name string, src []byte, opts ...Options) Result {
	fs := source.NewFileSet()
	fid := fs.AddVirtual(name, src)
	return Compile(fid, src, opts...)
}
