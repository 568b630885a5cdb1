package codegen

import (
	"fmt"
	"strings"

	"pseudogo/internal/ast"
)

func (g *generator) emitStatements(w *writer, stmts []ast.Stmt) {
	for _, s := range stmts {
		g.emitStatement(w, s)
	}
}

func (g *generator) emitBlock(w *writer, stmts []ast.Stmt) {
	w.indent++
	if len(stmts) == 0 {
		w.line("pass")
	} else {
		g.emitStatements(w, stmts)
	}
	w.indent--
}

func (g *generator) emitBlockStmt(w *writer, s ast.Stmt) {
	w.indent++
	if s == nil {
		w.line("pass")
	} else {
		g.emitStatement(w, s)
	}
	w.indent--
}

func (g *generator) emitStatement(w *writer, s ast.Stmt) {
	switch n := s.(type) {
	case *ast.Declare:
		g.env.define(n.Name, n.Type)
		w.line("%s = %s", n.Name, g.defaultValue(n.Type))

	case *ast.Constant:
		w.line("%s = %s", n.Name, g.emitExpr(n.Value))

	case *ast.Assign:
		w.line("%s = %s", g.emitExpr(n.Target), g.emitExpr(n.Value))

	case *ast.Input:
		target := g.emitExpr(n.Target)
		if typeName := g.targetBasicName(n.Target); typeName != "" {
			w.line("%s = __coerce_input(__input(), %q)", target, typeName)
		} else {
			w.line("%s = __input()", target)
		}

	case *ast.Output:
		args := make([]string, len(n.Args))
		for i, a := range n.Args {
			args[i] = fmt.Sprintf("str(%s)", g.emitExpr(a))
		}
		w.line("__output(%s)", strings.Join(args, ", "))

	case *ast.If:
		w.line("if %s:", g.emitExpr(n.Cond))
		g.emitBlock(w, n.Then)
		if n.Else != nil {
			w.line("else:")
			g.emitBlock(w, n.Else)
		}

	case *ast.Case:
		g.emitCase(w, n)

	case *ast.For:
		start := g.emitExpr(n.Start)
		end := g.emitExpr(n.End)
		step := "1"
		if n.Step != nil {
			step = g.emitExpr(n.Step)
		}
		w.line("for %s in __inclusive_range(%s, %s, %s):", n.Iterator, start, end, step)
		g.emitBlock(w, n.Body)

	case *ast.Repeat:
		w.line("while True:")
		w.indent++
		if len(n.Body) == 0 {
			w.line("pass")
		} else {
			g.emitStatements(w, n.Body)
		}
		cond := "True"
		if n.Until != nil {
			cond = g.emitExpr(n.Until)
		}
		w.line("if %s:", cond)
		w.indent++
		w.line("break")
		w.indent--
		w.indent--

	case *ast.While:
		cond := "False"
		if n.Cond != nil {
			cond = g.emitExpr(n.Cond)
		}
		w.line("while %s:", cond)
		g.emitBlock(w, n.Body)

	case *ast.ProcedureDef, *ast.FunctionDef:
		g.emitRoutine(w, n)

	case *ast.CallStmt:
		args := make([]string, len(n.Args))
		for i, a := range n.Args {
			args[i] = g.emitExpr(a)
		}
		w.line("%s(%s)", n.Name, strings.Join(args, ", "))

	case *ast.Return:
		if n.Value == nil {
			w.line("return None")
		} else {
			w.line("return %s", g.emitExpr(n.Value))
		}

	case *ast.OpenFile:
		mode := "READ"
		if n.Mode == ast.FileWrite {
			mode = "WRITE"
		}
		w.line("__openfile(%s, %q)", g.emitExpr(n.File), mode)

	case *ast.ReadFile:
		w.line("%s = __readfile(%s)", g.emitExpr(n.Target), g.emitExpr(n.File))

	case *ast.WriteFile:
		w.line("__writefile(%s, %s)", g.emitExpr(n.File), g.emitExpr(n.Value))

	case *ast.CloseFile:
		w.line("__closefile(%s)", g.emitExpr(n.File))
	}
}

func (g *generator) emitCase(w *writer, n *ast.Case) {
	subjectVar := g.names.nextCaseVar()
	w.line("%s = %s", subjectVar, g.emitExpr(n.Subject))
	for i, cl := range n.Clauses {
		kw := "if"
		if i > 0 {
			kw = "elif"
		}
		w.line("%s %s == %s:", kw, subjectVar, g.emitExpr(cl.Value))
		g.emitBlockStmt(w, cl.Body)
	}
	if n.Otherwise != nil {
		if len(n.Clauses) == 0 {
			w.line("if True:")
		} else {
			w.line("else:")
		}
		g.emitBlockStmt(w, n.Otherwise)
	}
}

func (g *generator) targetBasicName(target ast.Expr) string {
	switch t := target.(type) {
	case *ast.Identifier:
		if typ, ok := g.env.lookup(t.Name); ok && !typ.IsArray {
			return string(typ.Basic)
		}
	case *ast.ArrayAccess:
		if typ, ok := g.env.lookup(t.Name); ok && typ.IsArray {
			return string(typ.Elem)
		}
	}
	return ""
}

func (g *generator) defaultValue(t ast.Type) string {
	if t.IsArray {
		return fmt.Sprintf("__PseudoArray([%s], %s)", dimsLiteral(t.Dims), scalarDefault(t.Elem))
	}
	return scalarDefault(t.Basic)
}

func dimsLiteral(dims []ast.Dim) string {
	parts := make([]string, len(dims))
	for i, d := range dims {
		parts[i] = fmt.Sprintf("(%d, %d)", d.Lower, d.Upper)
	}
	return strings.Join(parts, ", ")
}

func scalarDefault(name ast.BasicName) string {
	switch name {
	case ast.TInteger:
		return "0"
	case ast.TReal:
		return "0.0"
	case ast.TChar:
		return "''"
	case ast.TString:
		return `""`
	case ast.TBoolean:
		return "False"
	}
	return "None"
}
