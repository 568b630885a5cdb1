// Package sema performs static semantic analysis over a parsed program:
// scoped symbol resolution, type inference and compatibility, routine
// signature checking, and file-mode discipline. It never rewrites the AST;
// codegen consumes the same tree once Check reports no errors.
package sema

import (
	"strings"

	"pseudogo/internal/ast"
	"pseudogo/internal/diag"
)

type procSig struct {
	params []ast.Param
}

type funcSig struct {
	params []ast.Param
	ret    ast.Type
}

type checker struct {
	report    diag.Reporter
	scope     *scope
	procs     map[string]procSig
	funcs     map[string]funcSig
	openFiles map[string]ast.FileMode
	inFunc    *funcSig
}

// Check walks prog and reports every semantic diagnostic to report.
func Check(prog *ast.Program, report diag.Reporter) {
	c := &checker{
		report:    report,
		procs:     make(map[string]procSig),
		funcs:     make(map[string]funcSig),
		openFiles: make(map[string]ast.FileMode),
	}
	c.scope = newScope(nil)
	c.registerRoutines(prog.Statements)
	c.checkStatements(prog.Statements)
}

// registerRoutines pre-registers every top-level PROCEDURE/FUNCTION name in
// the global scope and in the signature tables, ahead of the main pass.
func (c *checker) registerRoutines(stmts []ast.Stmt) {
	for _, s := range stmts {
		switch n := s.(type) {
		case *ast.ProcedureDef:
			key := strings.ToUpper(n.Name)
			if _, ok := c.scope.define(symbol{name: n.Name, kind: symRoutine}); !ok {
				diag.Errorf(c.report, diag.SemDuplicateSymbol, n.Sp, "%s %q", diag.SemDuplicateSymbol.Title(), n.Name)
				continue
			}
			c.procs[key] = procSig{params: n.Params}
		case *ast.FunctionDef:
			key := strings.ToUpper(n.Name)
			if _, ok := c.scope.define(symbol{name: n.Name, kind: symRoutine, typ: n.ReturnType}); !ok {
				diag.Errorf(c.report, diag.SemDuplicateSymbol, n.Sp, "%s %q", diag.SemDuplicateSymbol.Title(), n.Name)
				continue
			}
			c.funcs[key] = funcSig{params: n.Params, ret: n.ReturnType}
		}
	}
}

// withChildScope runs fn against a fresh scope nested under the current one
// and a shallow copy of the open-file table, then restores both.
func (c *checker) withChildScope(fn func()) {
	parentScope, parentOpen := c.scope, c.openFiles
	c.scope = newScope(parentScope)
	c.openFiles = make(map[string]ast.FileMode, len(parentOpen))
	for k, v := range parentOpen {
		c.openFiles[k] = v
	}
	fn()
	c.scope, c.openFiles = parentScope, parentOpen
}

func (c *checker) checkStatements(stmts []ast.Stmt) {
	for _, s := range stmts {
		c.checkStatement(s)
	}
}

func (c *checker) checkBlock(stmts []ast.Stmt) {
	c.withChildScope(func() { c.checkStatements(stmts) })
}

func (c *checker) checkBlockStmt(s ast.Stmt) {
	if s == nil {
		return
	}
	c.withChildScope(func() { c.checkStatement(s) })
}

func (c *checker) checkStatement(s ast.Stmt) {
	switch n := s.(type) {
	case *ast.Declare:
		if _, ok := c.scope.define(symbol{name: n.Name, typ: n.Type, kind: symVar}); !ok {
			diag.Errorf(c.report, diag.SemDuplicateSymbol, n.Sp, "%s %q", diag.SemDuplicateSymbol.Title(), n.Name)
		}

	case *ast.Constant:
		valType := c.typeOfExpr(n.Value)
		if _, ok := c.scope.define(symbol{name: n.Name, typ: valType, kind: symConst}); !ok {
			diag.Errorf(c.report, diag.SemDuplicateSymbol, n.Sp, "%s %q", diag.SemDuplicateSymbol.Title(), n.Name)
		}

	case *ast.Assign:
		targetType := c.checkAssignTarget(n.Target)
		valType := c.typeOfExpr(n.Value)
		if !typeAssignable(targetType, valType) {
			diag.Errorf(c.report, diag.SemAssignTypeMismatch, n.Sp, "%s", diag.SemAssignTypeMismatch.Title())
		}

	case *ast.Input:
		c.checkAssignTarget(n.Target)

	case *ast.Output:
		for _, a := range n.Args {
			c.typeOfExpr(a)
		}

	case *ast.If:
		if condType := c.typeOfExpr(n.Cond); !isBooleanType(condType) {
			diag.Errorf(c.report, diag.SemIfNotBoolean, n.Cond.Span(), "%s", diag.SemIfNotBoolean.Title())
		}
		c.checkBlock(n.Then)
		if n.Else != nil {
			c.checkBlock(n.Else)
		}

	case *ast.Case:
		c.typeOfExpr(n.Subject)
		for _, cl := range n.Clauses {
			c.typeOfExpr(cl.Value)
			c.checkBlockStmt(cl.Body)
		}
		c.checkBlockStmt(n.Otherwise)

	case *ast.For:
		c.checkFor(n)

	case *ast.Repeat:
		c.withChildScope(func() {
			c.checkStatements(n.Body)
			if n.Until != nil {
				if condType := c.typeOfExpr(n.Until); !isBooleanType(condType) {
					diag.Errorf(c.report, diag.SemUntilNotBoolean, n.Until.Span(), "%s", diag.SemUntilNotBoolean.Title())
				}
			}
		})

	case *ast.While:
		if n.Cond != nil {
			if condType := c.typeOfExpr(n.Cond); !isBooleanType(condType) {
				diag.Errorf(c.report, diag.SemWhileNotBoolean, n.Cond.Span(), "%s", diag.SemWhileNotBoolean.Title())
			}
		}
		c.checkBlock(n.Body)

	case *ast.ProcedureDef:
		c.withChildScope(func() {
			c.bindParams(n.Params)
			prevFunc := c.inFunc
			c.inFunc = nil
			c.checkStatements(n.Body)
			c.inFunc = prevFunc
		})

	case *ast.FunctionDef:
		sig := funcSig{params: n.Params, ret: n.ReturnType}
		c.withChildScope(func() {
			c.bindParams(n.Params)
			prevFunc := c.inFunc
			c.inFunc = &sig
			c.checkStatements(n.Body)
			c.inFunc = prevFunc
		})
		if !hasReturnStmt(n.Body) {
			diag.Errorf(c.report, diag.SemFunctionMissingReturn, n.Sp, "%s %q", diag.SemFunctionMissingReturn.Title(), n.Name)
		}

	case *ast.CallStmt:
		c.checkCallStmt(n)

	case *ast.Return:
		c.checkReturn(n)

	case *ast.OpenFile:
		c.typeOfExpr(n.File)
		if key, ok := literalStringKey(n.File); ok {
			c.openFiles[key] = n.Mode
		}

	case *ast.ReadFile:
		c.typeOfExpr(n.File)
		c.checkAssignTarget(n.Target)
		if key, ok := literalStringKey(n.File); ok {
			if mode, tracked := c.openFiles[key]; tracked && mode == ast.FileWrite {
				diag.Errorf(c.report, diag.SemReadFileWrongMode, n.Sp, "%s", diag.SemReadFileWrongMode.Title())
			}
		}

	case *ast.WriteFile:
		c.typeOfExpr(n.File)
		c.typeOfExpr(n.Value)
		if key, ok := literalStringKey(n.File); ok {
			if mode, tracked := c.openFiles[key]; tracked && mode == ast.FileRead {
				diag.Errorf(c.report, diag.SemWriteFileWrongMode, n.Sp, "%s", diag.SemWriteFileWrongMode.Title())
			}
		}

	case *ast.CloseFile:
		c.typeOfExpr(n.File)
		if key, ok := literalStringKey(n.File); ok {
			delete(c.openFiles, key)
		}
	}
}

func (c *checker) bindParams(params []ast.Param) {
	seen := make(map[string]bool, len(params))
	for _, prm := range params {
		key := strings.ToUpper(prm.Name)
		if seen[key] {
			diag.Errorf(c.report, diag.SemDuplicateParam, prm.Sp, "%s %q", diag.SemDuplicateParam.Title(), prm.Name)
			continue
		}
		seen[key] = true
		c.scope.define(symbol{name: prm.Name, typ: prm.Type, kind: symParam})
	}
}

func (c *checker) checkFor(n *ast.For) {
	sym, ok := c.scope.lookup(n.Iterator)
	switch {
	case !ok:
		diag.Errorf(c.report, diag.SemForIteratorUndeclared, n.Sp, "%s %q", diag.SemForIteratorUndeclared.Title(), n.Iterator)
	case !isIntegerType(sym.typ) || sym.typ.IsArray:
		diag.Errorf(c.report, diag.SemForIteratorNotInt, n.Sp, "%s %q", diag.SemForIteratorNotInt.Title(), n.Iterator)
	}
	if startType := c.typeOfExpr(n.Start); !isNumericType(startType) {
		diag.Errorf(c.report, diag.SemForBoundsNotNumeric, n.Start.Span(), "%s", diag.SemForBoundsNotNumeric.Title())
	}
	if endType := c.typeOfExpr(n.End); !isNumericType(endType) {
		diag.Errorf(c.report, diag.SemForBoundsNotNumeric, n.End.Span(), "%s", diag.SemForBoundsNotNumeric.Title())
	}
	if n.Step != nil {
		if stepType := c.typeOfExpr(n.Step); !isNumericType(stepType) {
			diag.Errorf(c.report, diag.SemForBoundsNotNumeric, n.Step.Span(), "%s", diag.SemForBoundsNotNumeric.Title())
		}
	}
	c.checkBlock(n.Body)
}

func (c *checker) checkReturn(n *ast.Return) {
	if c.inFunc == nil {
		diag.Errorf(c.report, diag.SemReturnOutsideFunction, n.Sp, "%s", diag.SemReturnOutsideFunction.Title())
		if n.Value != nil {
			c.typeOfExpr(n.Value)
		}
		return
	}
	valType := unknownType
	if n.Value != nil {
		valType = c.typeOfExpr(n.Value)
	}
	if !typeAssignable(c.inFunc.ret, valType) {
		diag.Errorf(c.report, diag.SemReturnTypeMismatch, n.Sp, "%s", diag.SemReturnTypeMismatch.Title())
	}
}

// checkAssignTarget resolves an INPUT or assignment target, reporting
// undeclared identifiers and assignment to a CONSTANT, and returns its type.
func (c *checker) checkAssignTarget(target ast.Expr) ast.Type {
	switch t := target.(type) {
	case *ast.Identifier:
		sym, ok := c.scope.lookup(t.Name)
		if !ok {
			diag.Errorf(c.report, diag.SemUndeclaredIdentifier, t.Sp, "%s %q", diag.SemUndeclaredIdentifier.Title(), t.Name)
			return unknownType
		}
		if sym.kind == symConst {
			diag.Errorf(c.report, diag.SemAssignToConstant, t.Sp, "%s %q", diag.SemAssignToConstant.Title(), t.Name)
		}
		return sym.typ
	case *ast.ArrayAccess:
		return c.typeOfExpr(t)
	}
	return unknownType
}

func literalStringKey(e ast.Expr) (string, bool) {
	lit, ok := e.(*ast.Literal)
	if !ok || lit.Kind != ast.LitString {
		return "", false
	}
	return lit.Text, true
}

func hasReturnStmt(stmts []ast.Stmt) bool {
	for _, s := range stmts {
		if containsReturn(s) {
			return true
		}
	}
	return false
}

func containsReturn(s ast.Stmt) bool {
	switch n := s.(type) {
	case *ast.Return:
		return true
	case *ast.If:
		return hasReturnStmt(n.Then) || hasReturnStmt(n.Else)
	case *ast.Case:
		for _, cl := range n.Clauses {
			if cl.Body != nil && containsReturn(cl.Body) {
				return true
			}
		}
		return n.Otherwise != nil && containsReturn(n.Otherwise)
	case *ast.For:
		return hasReturnStmt(n.Body)
	case *ast.While:
		return hasReturnStmt(n.Body)
	case *ast.Repeat:
		return hasReturnStmt(n.Body)
	}
	return false
}
