package codegen

import (
	"fmt"
	"strconv"
	"strings"

	"pseudogo/internal/ast"
)

func (g *generator) emitExpr(e ast.Expr) string {
	switch n := e.(type) {
	case *ast.Literal:
		return g.emitLiteral(n)
	case *ast.Identifier:
		return n.Name
	case *ast.Unary:
		return g.emitUnary(n)
	case *ast.Binary:
		return g.emitBinary(n)
	case *ast.Call:
		return g.emitCall(n)
	case *ast.ArrayAccess:
		return g.emitArrayAccess(n)
	}
	return "None"
}

func (g *generator) emitLiteral(n *ast.Literal) string {
	switch n.Kind {
	case ast.LitInt, ast.LitReal:
		return n.Text
	case ast.LitString:
		return strconv.Quote(n.Text)
	case ast.LitChar:
		return "'" + strings.ReplaceAll(n.Text, "'", "\\'") + "'"
	case ast.LitBool:
		if n.Bool {
			return "True"
		}
		return "False"
	}
	return "None"
}

func (g *generator) emitUnary(n *ast.Unary) string {
	operand := g.emitExpr(n.Expr)
	switch n.Op {
	case ast.UnaryNeg:
		return fmt.Sprintf("(-(%s))", operand)
	case ast.UnaryNot:
		return fmt.Sprintf("(not (%s))", operand)
	}
	return operand
}

var binaryPySymbol = map[ast.BinaryOp]string{
	ast.BinAdd: "+", ast.BinSub: "-", ast.BinMul: "*", ast.BinDiv: "/", ast.BinPow: "**",
	ast.BinEq: "==", ast.BinNe: "!=", ast.BinLt: "<", ast.BinLe: "<=", ast.BinGt: ">", ast.BinGe: ">=",
	ast.BinAnd: "and", ast.BinOr: "or",
}

func (g *generator) emitBinary(n *ast.Binary) string {
	left := g.emitExpr(n.Left)
	right := g.emitExpr(n.Right)
	return fmt.Sprintf("((%s) %s (%s))", left, binaryPySymbol[n.Op], right)
}

var builtinPyName = map[string]string{
	"DIV": "__div", "MOD": "__mod", "LENGTH": "__length", "LCASE": "__lcase",
	"UCASE": "__ucase", "SUBSTRING": "__substring", "ROUND": "__round", "RANDOM": "__random",
}

func (g *generator) emitCall(n *ast.Call) string {
	args := make([]string, len(n.Args))
	for i, a := range n.Args {
		args[i] = g.emitExpr(a)
	}
	name := n.Name
	if pyName, ok := builtinPyName[strings.ToUpper(n.Name)]; ok {
		name = pyName
	}
	return fmt.Sprintf("%s(%s)", name, strings.Join(args, ", "))
}

func (g *generator) emitArrayAccess(n *ast.ArrayAccess) string {
	indices := make([]string, len(n.Indices))
	for i, idx := range n.Indices {
		indices[i] = g.emitExpr(idx)
	}
	return fmt.Sprintf("%s[%s]", n.Name, strings.Join(indices, ", "))
}
