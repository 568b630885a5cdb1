package sema

import (
	"strings"

	"pseudogo/internal/ast"
	"pseudogo/internal/diag"
	"pseudogo/internal/source"
)

func (c *checker) typeOfExpr(e ast.Expr) ast.Type {
	switch n := e.(type) {
	case *ast.Literal:
		switch n.Kind {
		case ast.LitInt:
			return ast.BasicType(ast.TInteger)
		case ast.LitReal:
			return ast.BasicType(ast.TReal)
		case ast.LitString:
			return ast.BasicType(ast.TString)
		case ast.LitChar:
			return ast.BasicType(ast.TChar)
		case ast.LitBool:
			return ast.BasicType(ast.TBoolean)
		}
		return unknownType

	case *ast.Identifier:
		sym, ok := c.scope.lookup(n.Name)
		if !ok {
			diag.Errorf(c.report, diag.SemUndeclaredIdentifier, n.Sp, "%s %q", diag.SemUndeclaredIdentifier.Title(), n.Name)
			return unknownType
		}
		return sym.typ

	case *ast.ArrayAccess:
		return c.typeOfArrayAccess(n)

	case *ast.Unary:
		return c.typeOfUnary(n)

	case *ast.Binary:
		return c.typeOfBinary(n)

	case *ast.Call:
		return c.typeOfCall(n)
	}
	return unknownType
}

func (c *checker) typeOfArrayAccess(n *ast.ArrayAccess) ast.Type {
	sym, ok := c.scope.lookup(n.Name)
	if !ok {
		diag.Errorf(c.report, diag.SemUndeclaredIdentifier, n.Sp, "%s %q", diag.SemUndeclaredIdentifier.Title(), n.Name)
		for _, idx := range n.Indices {
			c.typeOfExpr(idx)
		}
		return unknownType
	}
	if !sym.typ.IsArray || len(sym.typ.Dims) != len(n.Indices) {
		diag.Errorf(c.report, diag.SemArrayDimMismatch, n.Sp, "%s %q", diag.SemArrayDimMismatch.Title(), n.Name)
	}
	for _, idx := range n.Indices {
		if idxType := c.typeOfExpr(idx); !isIntegerType(idxType) {
			diag.Errorf(c.report, diag.SemArrayIndexNotInteger, idx.Span(), "%s", diag.SemArrayIndexNotInteger.Title())
		}
	}
	if !sym.typ.IsArray {
		return unknownType
	}
	return ast.BasicType(sym.typ.Elem)
}

func (c *checker) typeOfUnary(n *ast.Unary) ast.Type {
	operandType := c.typeOfExpr(n.Expr)
	switch n.Op {
	case ast.UnaryNot:
		if !isBooleanType(operandType) {
			diag.Errorf(c.report, diag.SemNotRequiresBoolean, n.Sp, "%s", diag.SemNotRequiresBoolean.Title())
		}
		return ast.BasicType(ast.TBoolean)
	case ast.UnaryNeg:
		if !isNumericType(operandType) {
			diag.Errorf(c.report, diag.SemUnaryMinusNotNumeric, n.Sp, "%s", diag.SemUnaryMinusNotNumeric.Title())
			return unknownType
		}
		return operandType
	}
	return unknownType
}

func (c *checker) typeOfBinary(n *ast.Binary) ast.Type {
	leftType := c.typeOfExpr(n.Left)
	rightType := c.typeOfExpr(n.Right)
	switch n.Op {
	case ast.BinAdd, ast.BinSub, ast.BinMul, ast.BinDiv, ast.BinPow:
		if !isNumericType(leftType) || !isNumericType(rightType) {
			diag.Errorf(c.report, diag.SemArithmeticNotNumeric, n.Sp, "%s", diag.SemArithmeticNotNumeric.Title())
			return unknownType
		}
		if n.Op == ast.BinDiv || leftType.Basic == ast.TReal || rightType.Basic == ast.TReal {
			return ast.BasicType(ast.TReal)
		}
		return ast.BasicType(ast.TInteger)

	case ast.BinEq, ast.BinNe, ast.BinLt, ast.BinLe, ast.BinGt, ast.BinGe:
		return ast.BasicType(ast.TBoolean)

	case ast.BinAnd, ast.BinOr:
		if !isBooleanType(leftType) || !isBooleanType(rightType) {
			diag.Errorf(c.report, diag.SemLogicalNotBoolean, n.Sp, "%s", diag.SemLogicalNotBoolean.Title())
		}
		return ast.BasicType(ast.TBoolean)
	}
	return unknownType
}

func (c *checker) typeOfCall(n *ast.Call) ast.Type {
	upperName := strings.ToUpper(n.Name)
	if sig, ok := builtins[upperName]; ok {
		c.checkArgsBasic(n.Sp, sig.params, n.Args)
		return ast.BasicType(sig.ret)
	}
	if sig, ok := c.funcs[upperName]; ok {
		c.checkArgsParams(n.Sp, sig.params, n.Args)
		return sig.ret
	}
	diag.Errorf(c.report, diag.SemUnknownCallTarget, n.Sp, "%s %q", diag.SemUnknownCallTarget.Title(), n.Name)
	for _, a := range n.Args {
		c.typeOfExpr(a)
	}
	return unknownType
}

func (c *checker) checkCallStmt(n *ast.CallStmt) {
	sig, ok := c.procs[strings.ToUpper(n.Name)]
	if !ok {
		diag.Errorf(c.report, diag.SemCallUnknownProcedure, n.Sp, "%s %q", diag.SemCallUnknownProcedure.Title(), n.Name)
		for _, a := range n.Args {
			c.typeOfExpr(a)
		}
		return
	}
	c.checkArgsParams(n.Sp, sig.params, n.Args)
}

func (c *checker) checkArgsBasic(sp source.Span, want []ast.BasicName, args []ast.Expr) {
	if len(want) != len(args) {
		diag.Errorf(c.report, diag.SemArgCountMismatch, sp, "%s", diag.SemArgCountMismatch.Title())
	}
	n := len(want)
	if len(args) < n {
		n = len(args)
	}
	for i := 0; i < n; i++ {
		argType := c.typeOfExpr(args[i])
		if !typeAssignable(ast.BasicType(want[i]), argType) {
			diag.Errorf(c.report, diag.SemArgTypeMismatch, args[i].Span(), "%s", diag.SemArgTypeMismatch.Title())
		}
	}
	for i := n; i < len(args); i++ {
		c.typeOfExpr(args[i])
	}
}

func (c *checker) checkArgsParams(sp source.Span, want []ast.Param, args []ast.Expr) {
	if len(want) != len(args) {
		diag.Errorf(c.report, diag.SemArgCountMismatch, sp, "%s", diag.SemArgCountMismatch.Title())
	}
	n := len(want)
	if len(args) < n {
		n = len(args)
	}
	for i := 0; i < n; i++ {
		argType := c.typeOfExpr(args[i])
		if !typeAssignable(want[i].Type, argType) {
			diag.Errorf(c.report, diag.SemArgTypeMismatch, args[i].Span(), "%s", diag.SemArgTypeMismatch.Title())
		}
	}
	for i := n; i < len(args); i++ {
		c.typeOfExpr(args[i])
	}
}
