// Package ast defines the pseudocode abstract syntax tree produced by the
// parser and consumed by the semantic analyzer and code generator.
package ast

import "pseudogo/internal/source"

// Program is the root node: an ordered sequence of top-level statements.
type Program struct {
	Statements []Stmt
}

// Stmt is the tagged variant every statement kind implements.
type Stmt interface {
	stmtNode()
	Span() source.Span
}

// Expr is the tagged variant every expression kind implements.
type Expr interface {
	exprNode()
	Span() source.Span
}

// BasicName enumerates the five built-in scalar type names.
type BasicName string

const (
	TInteger BasicName = "INTEGER"
	TReal    BasicName = "REAL"
	TChar    BasicName = "CHAR"
	TString  BasicName = "STRING"
	TBoolean BasicName = "BOOLEAN"
)

// Dim is one array dimension's inclusive integer bounds.
type Dim struct {
	Lower int
	Upper int
}

// Type is the tagged variant of declared types: either a basic scalar or an
// array of a basic element type with 1 or 2 dimensions.
type Type struct {
	Basic   BasicName // set when Dims == nil
	IsArray bool
	Elem    BasicName // element type when IsArray
	Dims    []Dim
}

func BasicType(name BasicName) Type { return Type{Basic: name} }

func ArrayType(elem BasicName, dims []Dim) Type {
	return Type{IsArray: true, Elem: elem, Dims: dims}
}
