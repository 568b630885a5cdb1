// Package codegen lowers a checked pseudocode AST into a single Python
// source text: the fixed runtime prelude, translated routine definitions,
// a __main__ function wrapping the top-level body, and a trailing call.
//
// Generate assumes prog has already passed semantic analysis without
// errors; it performs no validation of its own.
package codegen

import (
	"strings"

	"pseudogo/internal/ast"
	"pseudogo/internal/codegen/runtime"
)

type generator struct {
	names *nameGen
	env   *typeEnv
}

// Generate lowers prog into a self-contained Python program.
func Generate(prog *ast.Program) string {
	g := &generator{names: &nameGen{}, env: newTypeEnv()}
	w := &writer{}

	w.line("%s", strings.TrimRight(runtime.Prelude, "\n"))
	w.blank()

	var routines []ast.Stmt
	var mainBody []ast.Stmt
	for _, s := range prog.Statements {
		switch s.(type) {
		case *ast.ProcedureDef, *ast.FunctionDef:
			routines = append(routines, s)
		default:
			mainBody = append(mainBody, s)
		}
	}

	for _, r := range routines {
		g.emitRoutine(w, r)
		w.blank()
	}

	w.line("def __main__():")
	w.indent++
	if len(mainBody) == 0 {
		w.line("pass")
	} else {
		g.emitStatements(w, mainBody)
	}
	w.indent--
	w.blank()
	w.line("__main__()")

	return w.b.String()
}

func (g *generator) emitRoutine(w *writer, s ast.Stmt) {
	saved := g.env
	g.env = newTypeEnv()
	defer func() { g.env = saved }()

	switch n := s.(type) {
	case *ast.ProcedureDef:
		for _, p := range n.Params {
			g.env.define(p.Name, p.Type)
		}
		w.line("def %s(%s):", n.Name, paramList(n.Params))
		w.indent++
		if len(n.Body) == 0 {
			w.line("pass")
		} else {
			g.emitStatements(w, n.Body)
		}
		w.indent--

	case *ast.FunctionDef:
		for _, p := range n.Params {
			g.env.define(p.Name, p.Type)
		}
		w.line("def %s(%s):", n.Name, paramList(n.Params))
		w.indent++
		if len(n.Body) == 0 {
			w.line("return None")
		} else {
			g.emitStatements(w, n.Body)
		}
		w.indent--
	}
}

func paramList(params []ast.Param) string {
	names := make([]string, len(params))
	for i, p := range params {
		names[i] = p.Name
	}
	return strings.Join(names, ", ")
}
