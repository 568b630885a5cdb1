package parser

import (
	"pseudogo/internal/ast"
	"pseudogo/internal/diag"
	"pseudogo/internal/source"
	"pseudogo/internal/token"
)

// binding gives the left binding power for an infix operator; 0 means the
// current token does not continue an expression.
func (p *Parser) binding(tok token.Token) int {
	switch tok.Kind {
	case token.Plus, token.Minus:
		return 4
	case token.Star, token.Slash:
		return 5
	case token.Caret:
		return 6
	case token.Eq, token.Ne, token.Lt, token.Le, token.Gt, token.Ge:
		return 3
	}
	if tok.Kind == token.Keyword {
		switch tok.Keyword {
		case "OR":
			return 1
		case "AND":
			return 2
		}
	}
	return 0
}

func binaryOpFor(tok token.Token) ast.BinaryOp {
	switch tok.Kind {
	case token.Plus:
		return ast.BinAdd
	case token.Minus:
		return ast.BinSub
	case token.Star:
		return ast.BinMul
	case token.Slash:
		return ast.BinDiv
	case token.Caret:
		return ast.BinPow
	case token.Eq:
		return ast.BinEq
	case token.Ne:
		return ast.BinNe
	case token.Lt:
		return ast.BinLt
	case token.Le:
		return ast.BinLe
	case token.Gt:
		return ast.BinGt
	case token.Ge:
		return ast.BinGe
	}
	switch tok.Keyword {
	case "AND":
		return ast.BinAnd
	case "OR":
		return ast.BinOr
	}
	return ast.BinAdd
}

// parseExpr parses a full expression using precedence climbing; minBP is
// the minimum binding power required to continue consuming infix operators.
func (p *Parser) parseExpr(minBP int) ast.Expr {
	left := p.parseUnary()
	if left == nil {
		return nil
	}
	for {
		tok := p.peek()
		bp := p.binding(tok)
		if bp == 0 || bp < minBP {
			return left
		}
		p.advance()
		nextMin := bp + 1
		if tok.Kind == token.Caret {
			nextMin = bp // right-associative
		}
		right := p.parseExpr(nextMin)
		if right == nil {
			return left
		}
		left = &ast.Binary{
			Op:    binaryOpFor(tok),
			Left:  left,
			Right: right,
			Sp:    left.Span().Cover(right.Span()),
		}
	}
}

func (p *Parser) parseUnary() ast.Expr {
	tok := p.peek()
	if tok.Kind == token.Minus {
		p.advance()
		operand := p.parseUnary()
		if operand == nil {
			return nil
		}
		return &ast.Unary{Op: ast.UnaryNeg, Expr: operand, Sp: tok.Span.Cover(operand.Span())}
	}
	if tok.Is("NOT") {
		p.advance()
		operand := p.parseUnary()
		if operand == nil {
			return nil
		}
		return &ast.Unary{Op: ast.UnaryNot, Expr: operand, Sp: tok.Span.Cover(operand.Span())}
	}
	return p.parsePrimary()
}

func (p *Parser) parsePrimary() ast.Expr {
	tok := p.peek()
	switch tok.Kind {
	case token.IntLit:
		p.advance()
		return &ast.Literal{Kind: ast.LitInt, Text: tok.Text, Sp: tok.Span}
	case token.RealLit:
		p.advance()
		return &ast.Literal{Kind: ast.LitReal, Text: tok.Text, Sp: tok.Span}
	case token.StringLit:
		p.advance()
		return &ast.Literal{Kind: ast.LitString, Text: tok.Text, Sp: tok.Span}
	case token.CharLit:
		p.advance()
		return &ast.Literal{Kind: ast.LitChar, Text: tok.Text, Sp: tok.Span}
	case token.LParen:
		p.advance()
		inner := p.parseExpr(1)
		if inner == nil {
			p.recoverPastRParen()
			return nil
		}
		rparen, ok := p.expectKind(token.RParen, diag.SynExpectRParen)
		if !ok {
			return inner
		}
		return withParenSpan(inner, tok.Span.Cover(rparen.Span))
	case token.Ident:
		p.advance()
		return p.parseCallOrIdent(tok.Text, tok.Span)
	}
	if tok.Kind == token.Keyword {
		switch tok.Keyword {
		case "TRUE", "FALSE":
			p.advance()
			return &ast.Literal{Kind: ast.LitBool, Bool: tok.Keyword == "TRUE", Text: tok.Keyword, Sp: tok.Span}
		}
		if token.BuiltinFunctions[tok.Keyword] {
			p.advance()
			return p.parseCallOrIdent(tok.Keyword, tok.Span)
		}
	}
	diag.Errorf(p.report, diag.SynExpectExpression, p.currentSpan(), "%s, found %s", diag.SynExpectExpression.Title(), p.describeCurrent())
	return nil
}

// recoverPastRParen skips tokens until it finds a closing paren, newline,
// or EOF, used when the inner expression of a parenthesized group failed.
func (p *Parser) recoverPastRParen() {
	for p.peek().Kind != token.RParen && p.peek().Kind != token.Newline && !p.atEOF() {
		p.advance()
	}
	if p.peek().Kind == token.RParen {
		p.advance()
	}
}

// withParenSpan widens sp onto a shallow copy of e so the parenthesized
// group's own span covers its delimiters without mutating the shared node.
func withParenSpan(e ast.Expr, sp source.Span) ast.Expr {
	switch v := e.(type) {
	case *ast.Literal:
		c := *v
		c.Sp = sp
		return &c
	case *ast.Identifier:
		c := *v
		c.Sp = sp
		return &c
	case *ast.Unary:
		c := *v
		c.Sp = sp
		return &c
	case *ast.Binary:
		c := *v
		c.Sp = sp
		return &c
	case *ast.Call:
		c := *v
		c.Sp = sp
		return &c
	case *ast.ArrayAccess:
		c := *v
		c.Sp = sp
		return &c
	}
	return e
}

// parseCallOrIdent consumes optional trailing (args) or [indices] following
// an already-consumed identifier/builtin-name token at headSp.
func (p *Parser) parseCallOrIdent(name string, headSp source.Span) ast.Expr {
	switch p.peek().Kind {
	case token.LParen:
		p.advance()
		var args []ast.Expr
		if p.peek().Kind != token.RParen {
			args = p.parseExprList()
		}
		rparen, ok := p.expectKind(token.RParen, diag.SynExpectRParen)
		sp := headSp
		if ok {
			sp = sp.Cover(rparen.Span)
		}
		return &ast.Call{Name: name, Args: args, Sp: sp}
	case token.LBracket:
		p.advance()
		indices := p.parseExprList()
		rbracket, ok := p.expectKind(token.RBracket, diag.SynExpectRBracket)
		sp := headSp
		if ok {
			sp = sp.Cover(rbracket.Span)
		}
		return &ast.ArrayAccess{Name: name, Indices: indices, Sp: sp}
	}
	return &ast.Identifier{Name: name, Sp: headSp}
}

// parseExprList parses a comma-separated, non-empty list of expressions.
func (p *Parser) parseExprList() []ast.Expr {
	var list []ast.Expr
	first := p.parseExpr(1)
	if first == nil {
		return list
	}
	list = append(list, first)
	for p.peek().Kind == token.Comma {
		p.advance()
		e := p.parseExpr(1)
		if e == nil {
			break
		}
		list = append(list, e)
	}
	return list
}
