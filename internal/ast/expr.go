package ast

import "pseudogo/internal/source"

// LiteralKind tags the primitive kind of a Literal expression.
type LiteralKind uint8

const (
	LitInt LiteralKind = iota
	LitReal
	LitString
	LitChar
	LitBool
)

// Literal is a constant value written directly in source.
type Literal struct {
	Kind LiteralKind
	Text string // original lexeme, parsed lazily by consumers
	Bool bool   // valid when Kind == LitBool
	Sp   source.Span
}

func (*Literal) exprNode()          {}
func (l *Literal) Span() source.Span { return l.Sp }

// Identifier references a declared symbol by name (case-insensitive).
type Identifier struct {
	Name string
	Sp   source.Span
}

func (*Identifier) exprNode()          {}
func (i *Identifier) Span() source.Span { return i.Sp }

// UnaryOp enumerates the two prefix operators.
type UnaryOp uint8

const (
	UnaryNeg UnaryOp = iota
	UnaryNot
)

// Unary is a prefix `-` or `NOT` expression.
type Unary struct {
	Op   UnaryOp
	Expr Expr
	Sp   source.Span
}

func (*Unary) exprNode()          {}
func (u *Unary) Span() source.Span { return u.Sp }

// BinaryOp enumerates every infix operator the grammar supports.
type BinaryOp uint8

const (
	BinAdd BinaryOp = iota
	BinSub
	BinMul
	BinDiv
	BinPow
	BinEq
	BinNe
	BinLt
	BinLe
	BinGt
	BinGe
	BinAnd
	BinOr
)

// Binary is an infix expression.
type Binary struct {
	Op    BinaryOp
	Left  Expr
	Right Expr
	Sp    source.Span
}

func (*Binary) exprNode()          {}
func (b *Binary) Span() source.Span { return b.Sp }

// Call is a routine or built-in invocation: name(args...).
type Call struct {
	Name string
	Args []Expr
	Sp   source.Span
}

func (*Call) exprNode()          {}
func (c *Call) Span() source.Span { return c.Sp }

// ArrayAccess is name[indices...].
type ArrayAccess struct {
	Name    string
	Indices []Expr
	Sp      source.Span
}

func (*ArrayAccess) exprNode()          {}
func (a *ArrayAccess) Span() source.Span { return a.Sp }
