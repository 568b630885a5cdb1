package parser

import (
	"strconv"

	"pseudogo/internal/ast"
	"pseudogo/internal/diag"
	"pseudogo/internal/token"
)

// parseType parses a basic type name or an ARRAY[...] OF type.
func (p *Parser) parseType() ast.Type {
	if p.isKeyword("ARRAY") {
		p.advance()
		p.expectKind(token.LBracket, diag.SynExpectLBracket)
		dims := p.parseDims()
		p.expectKind(token.RBracket, diag.SynExpectRBracket)
		p.expectKeyword("OF", diag.SynExpectOf)
		elem := p.parseBasicName()
		return ast.ArrayType(elem, dims)
	}
	return ast.BasicType(p.parseBasicName())
}

func (p *Parser) parseBasicName() ast.BasicName {
	tok := p.peek()
	if tok.Kind == token.Keyword {
		switch tok.Keyword {
		case "INTEGER", "REAL", "CHAR", "STRING", "BOOLEAN":
			p.advance()
			return ast.BasicName(tok.Keyword)
		}
	}
	diag.Errorf(p.report, diag.SynExpectType, p.currentSpan(), "%s, found %s", diag.SynExpectType.Title(), p.describeCurrent())
	return ast.TInteger
}

// parseDims parses a comma-separated list of "lo:hi" bound pairs.
func (p *Parser) parseDims() []ast.Dim {
	dims := []ast.Dim{p.parseOneDim()}
	for p.peek().Kind == token.Comma {
		p.advance()
		dims = append(dims, p.parseOneDim())
	}
	return dims
}

func (p *Parser) parseOneDim() ast.Dim {
	lo := p.parseIntBound()
	p.expectKind(token.Colon, diag.SynExpectColon)
	hi := p.parseIntBound()
	return ast.Dim{Lower: lo, Upper: hi}
}

func (p *Parser) parseIntBound() int {
	neg := false
	if p.peek().Kind == token.Minus {
		neg = true
		p.advance()
	}
	tok, ok := p.expectKind(token.IntLit, diag.SynExpectIntegerBound)
	if !ok {
		return 0
	}
	n, _ := strconv.Atoi(tok.Text)
	if neg {
		n = -n
	}
	return n
}
