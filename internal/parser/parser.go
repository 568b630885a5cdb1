// Package parser implements a Pratt-style expression parser and a
// recursive-descent statement parser that together build the pseudocode
// AST, recovering per-line on syntax errors.
package parser

import (
	"pseudogo/internal/ast"
	"pseudogo/internal/diag"
	"pseudogo/internal/source"
	"pseudogo/internal/token"
)

// Parser consumes a token slice produced by the lexer and builds a Program.
type Parser struct {
	file   source.FileID
	toks   []token.Token
	pos    int
	report diag.Reporter
}

// Parse builds a Program from toks, reporting syntax diagnostics to report.
func Parse(file source.FileID, toks []token.Token, report diag.Reporter) *ast.Program {
	p := &Parser{file: file, toks: toks, report: report}
	return p.parseProgram()
}

func (p *Parser) parseProgram() *ast.Program {
	prog := &ast.Program{}
	p.skipNewlines()
	for !p.atEOF() {
		if stmt := p.parseOneStatement(); stmt != nil {
			prog.Statements = append(prog.Statements, stmt)
		}
		p.skipNewlines()
	}
	return prog
}

// --- token cursor helpers ---

func (p *Parser) peek() token.Token {
	return p.toks[p.pos]
}

func (p *Parser) peekN(n int) token.Token {
	i := p.pos + n
	if i >= len(p.toks) {
		return p.toks[len(p.toks)-1] // EOF
	}
	return p.toks[i]
}

func (p *Parser) atEOF() bool {
	return p.peek().Kind == token.EOF
}

func (p *Parser) advance() token.Token {
	tok := p.toks[p.pos]
	if tok.Kind != token.EOF {
		p.pos++
	}
	return tok
}

func (p *Parser) isKeyword(upper string) bool {
	return p.peek().Is(upper)
}

func (p *Parser) skipNewlines() {
	for p.peek().Kind == token.Newline {
		p.advance()
	}
}

// skipToNewline discards tokens through and including the next NEWLINE (or
// stops at EOF), used to recover after a statement-level syntax error.
func (p *Parser) skipToNewline() {
	for p.peek().Kind != token.Newline && !p.atEOF() {
		p.advance()
	}
	if p.peek().Kind == token.Newline {
		p.advance()
	}
}

func (p *Parser) currentSpan() source.Span {
	return p.peek().Span
}

// prevSpan returns the span of the most recently consumed token, used to
// close off a node's span after a run of advance() calls.
func (p *Parser) prevSpan() source.Span {
	if p.pos == 0 {
		return p.toks[0].Span
	}
	return p.toks[p.pos-1].Span
}

// expectKind consumes and returns the current token if it has kind, else
// reports code at the current token's span and returns false.
func (p *Parser) expectKind(kind token.Kind, code diag.Code) (token.Token, bool) {
	if p.peek().Kind == kind {
		return p.advance(), true
	}
	diag.Errorf(p.report, code, p.currentSpan(), "%s, found %s", code.Title(), p.describeCurrent())
	return token.Token{}, false
}

// expectKeyword consumes and returns the current token if it is the
// keyword upper, else reports code and returns false.
func (p *Parser) expectKeyword(upper string, code diag.Code) (token.Token, bool) {
	if p.isKeyword(upper) {
		return p.advance(), true
	}
	diag.Errorf(p.report, code, p.currentSpan(), "%s, found %s", code.Title(), p.describeCurrent())
	return token.Token{}, false
}

func (p *Parser) describeCurrent() string {
	tok := p.peek()
	switch tok.Kind {
	case token.EOF:
		return "end of file"
	case token.Newline:
		return "end of line"
	case token.Keyword:
		return tok.Keyword
	default:
		if tok.Text != "" {
			return "'" + tok.Text + "'"
		}
		return tok.Kind.String()
	}
}
